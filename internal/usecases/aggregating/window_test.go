package aggregating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/survey-analytics-api/internal/domain"
)

func responseAt(createdAt time.Time, completed bool) *domain.ResponseRecord {
	return &domain.ResponseRecord{
		ID:        "resp-" + createdAt.Format("20060102150405.000"),
		SurveyID:  "survey-1",
		TenantID:  "tenant-1",
		CreatedAt: createdAt,
		Completed: completed,
	}
}

func TestCountWindows(t *testing.T) {
	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		records  []*domain.ResponseRecord
		expected map[string]int
	}{
		{
			name:     "Sem respostas - contagens zero reais",
			records:  nil,
			expected: map[string]int{"24h": 0, "7d": 0, "30d": 0},
		},
		{
			name: "Resposta recente conta em todas as janelas",
			records: []*domain.ResponseRecord{
				responseAt(now.Add(-time.Hour), true),
			},
			expected: map[string]int{"24h": 1, "7d": 1, "30d": 1},
		},
		{
			name: "Respostas espalhadas - janelas aninhadas e monotônicas",
			records: []*domain.ResponseRecord{
				responseAt(now.Add(-time.Hour), true),          // dentro de 24h
				responseAt(now.AddDate(0, 0, -3), false),       // dentro de 7d
				responseAt(now.AddDate(0, 0, -20), true),       // dentro de 30d
				responseAt(now.AddDate(0, 0, -40), true),       // fora de tudo
			},
			expected: map[string]int{"24h": 1, "7d": 2, "30d": 3},
		},
		{
			name: "Limite exato da janela ainda conta",
			records: []*domain.ResponseRecord{
				responseAt(now.Add(-24*time.Hour), true),
			},
			expected: map[string]int{"24h": 1, "7d": 1, "30d": 1},
		},
		{
			name: "Timestamp futuro fica fora de todas as janelas",
			records: []*domain.ResponseRecord{
				responseAt(now.Add(time.Hour), true),
			},
			expected: map[string]int{"24h": 0, "7d": 0, "30d": 0},
		},
		{
			name: "Registro sem timestamp é ignorado",
			records: []*domain.ResponseRecord{
				{ID: "malformed", TenantID: "tenant-1", Completed: true},
				responseAt(now.Add(-time.Hour), true),
			},
			expected: map[string]int{"24h": 1, "7d": 1, "30d": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts := CountWindows(now, tt.records)
			assert.Equal(t, tt.expected, counts)
		})
	}
}

func TestCountWindows_Monotonic(t *testing.T) {
	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

	records := []*domain.ResponseRecord{
		responseAt(now.Add(-30*time.Minute), true),
		responseAt(now.Add(-2*time.Hour), false),
		responseAt(now.AddDate(0, 0, -2), true),
		responseAt(now.AddDate(0, 0, -6), false),
		responseAt(now.AddDate(0, 0, -15), true),
		responseAt(now.AddDate(0, 0, -29), false),
	}

	counts := CountWindows(now, records)

	assert.LessOrEqual(t, counts[domain.Window24h], counts[domain.Window7d])
	assert.LessOrEqual(t, counts[domain.Window7d], counts[domain.Window30d])
}
