package aggregating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/survey-analytics-api/internal/domain"
)

func deviceRecord(class domain.DeviceClass) *domain.ResponseRecord {
	return &domain.ResponseRecord{
		CreatedAt:   time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC),
		DeviceClass: &class,
	}
}

func TestSurveyCategoryDistribution(t *testing.T) {
	tests := []struct {
		name     string
		surveys  []*domain.Survey
		validate func(t *testing.T, dist domain.Distribution)
	}{
		{
			name:    "Sem pesquisas - distribuição vazia para o fallback substituir",
			surveys: nil,
			validate: func(t *testing.T, dist domain.Distribution) {
				assert.True(t, dist.IsEmpty())
				assert.Equal(t, domain.SourceReal, dist.Source)
			},
		},
		{
			name: "Agrupa por categoria com porcentagens truncadas",
			surveys: []*domain.Survey{
				{ID: "s1", Category: "nps"},
				{ID: "s2", Category: "nps"},
				{ID: "s3", Category: "csat"},
			},
			validate: func(t *testing.T, dist domain.Distribution) {
				require.Len(t, dist.Entries, 2)
				assert.Equal(t, "nps", dist.Entries[0].Name)
				assert.Equal(t, 2, dist.Entries[0].Count)
				assert.Equal(t, 66, dist.Entries[0].Percentage)
				assert.Equal(t, "csat", dist.Entries[1].Name)
				assert.Equal(t, 33, dist.Entries[1].Percentage)
			},
		},
		{
			name: "Categoria vazia vira uncategorized",
			surveys: []*domain.Survey{
				{ID: "s1", Category: ""},
				{ID: "s2", Category: "nps"},
			},
			validate: func(t *testing.T, dist domain.Distribution) {
				names := []string{dist.Entries[0].Name, dist.Entries[1].Name}
				assert.Contains(t, names, "uncategorized")
			},
		},
		{
			name: "Empate de contagem ordena por nome",
			surveys: []*domain.Survey{
				{ID: "s1", Category: "beta"},
				{ID: "s2", Category: "alpha"},
			},
			validate: func(t *testing.T, dist domain.Distribution) {
				require.Len(t, dist.Entries, 2)
				assert.Equal(t, "alpha", dist.Entries[0].Name)
				assert.Equal(t, "beta", dist.Entries[1].Name)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, SurveyCategoryDistribution(tt.surveys))
		})
	}
}

func TestSurveyCategoryDistribution_PercentagesNeverExceed100(t *testing.T) {
	surveys := []*domain.Survey{
		{ID: "s1", Category: "a"},
		{ID: "s2", Category: "b"},
		{ID: "s3", Category: "c"},
		{ID: "s4", Category: "a"},
		{ID: "s5", Category: "b"},
		{ID: "s6", Category: "c"},
		{ID: "s7", Category: "c"},
	}

	dist := SurveyCategoryDistribution(surveys)

	sum := 0
	for _, entry := range dist.Entries {
		sum += entry.Percentage
	}
	assert.LessOrEqual(t, sum, 100)
	assert.GreaterOrEqual(t, sum, 100-len(dist.Entries))
}

func TestDeviceDistribution(t *testing.T) {
	t.Run("Agrupa por classe de dispositivo", func(t *testing.T) {
		records := []*domain.ResponseRecord{
			deviceRecord(domain.DeviceMobile),
			deviceRecord(domain.DeviceMobile),
			deviceRecord(domain.DeviceDesktop),
			{CreatedAt: time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)}, // sem classe
		}

		dist := DeviceDistribution(records)

		require.Len(t, dist.Entries, 2)
		assert.Equal(t, string(domain.DeviceMobile), dist.Entries[0].Name)
		assert.Equal(t, 66, dist.Entries[0].Percentage)
	})

	t.Run("Nenhuma resposta com classe - distribuição vazia", func(t *testing.T) {
		records := []*domain.ResponseRecord{
			{CreatedAt: time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)},
		}

		assert.True(t, DeviceDistribution(records).IsEmpty())
	})
}
