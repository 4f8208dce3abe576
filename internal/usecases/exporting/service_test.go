package exporting

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/survey-analytics-api/internal/domain"
	"github.com/vfg2006/survey-analytics-api/internal/usecases/aggregating"
)

func buildSnapshot(t *testing.T) *domain.DashboardSnapshot {
	t.Helper()

	now := time.Date(2024, 3, 20, 15, 0, 0, 0, time.UTC)
	seconds := 120.0
	mobile := domain.DeviceMobile

	records := []*domain.ResponseRecord{
		{
			ID:                "r1",
			TenantID:          "tenant-1",
			CreatedAt:         now.Add(-time.Hour),
			Completed:         true,
			CompletionSeconds: &seconds,
			DeviceClass:       &mobile,
		},
		{
			ID:        "r2",
			TenantID:  "tenant-1",
			CreatedAt: now.Add(-2 * time.Hour),
		},
	}

	surveys := []*domain.Survey{
		{ID: "s1", TenantID: "tenant-1", Category: "nps"},
	}

	return aggregating.NewService().BuildSnapshot(now, "tenant-1", records, surveys)
}

func TestService_Project(t *testing.T) {
	service := NewService()
	snapshot := buildSnapshot(t)

	rows := service.Project(snapshot)
	require.NotEmpty(t, rows)

	bySection := make(map[string][]Row)
	for _, row := range rows {
		bySection[row.Section] = append(bySection[row.Section], row)
	}

	require.Len(t, bySection["windows"], 3)
	assert.Equal(t, "24h", bySection["windows"][0].Key)
	assert.Equal(t, "2", bySection["windows"][0].Value)
	assert.Equal(t, "real", bySection["windows"][0].Source)

	require.Len(t, bySection["completion"], 2)
	assert.Equal(t, "rate", bySection["completion"][0].Key)
	assert.Equal(t, "50", bySection["completion"][0].Value)

	// 7 dias x (responses, completion_rate, revenue)
	assert.Len(t, bySection["trend"], 21)

	// Dias vazios exportam a origem fallback da taxa
	fallbackRates := 0
	for _, row := range bySection["trend"] {
		if strings.HasSuffix(row.Key, "/completion_rate") && row.Source == "fallback" {
			fallbackRates++
		}
	}
	assert.Equal(t, 6, fallbackRates)

	assert.Len(t, bySection["heatmap"], 24)
	require.NotEmpty(t, bySection["categories"])
	assert.Equal(t, "nps", bySection["categories"][0].Key)
}

func TestService_WriteCSV(t *testing.T) {
	service := NewService()
	snapshot := buildSnapshot(t)

	var buf bytes.Buffer
	require.NoError(t, service.WriteCSV(&buf, snapshot))

	reader := csv.NewReader(&buf)
	lines, err := reader.ReadAll()
	require.NoError(t, err)

	require.NotEmpty(t, lines)
	assert.Equal(t, []string{"section", "key", "value", "source"}, lines[0])
	assert.Len(t, lines, len(service.Project(snapshot))+1)
}

func TestService_WriteJSON(t *testing.T) {
	service := NewService()
	snapshot := buildSnapshot(t)

	var buf bytes.Buffer
	require.NoError(t, service.WriteJSON(&buf, snapshot))

	var rows []Row
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	assert.Len(t, rows, len(service.Project(snapshot)))
}
