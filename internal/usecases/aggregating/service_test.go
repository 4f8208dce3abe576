package aggregating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/survey-analytics-api/internal/domain"
	"github.com/vfg2006/survey-analytics-api/pkg/utils"
)

func TestService_BuildSnapshot_ActiveTenant(t *testing.T) {
	service := NewService()
	now := time.Date(2024, 3, 20, 15, 0, 0, 0, time.UTC)

	seventeenth, err := utils.ParseDate("2024-03-17")
	require.NoError(t, err)

	records := []*domain.ResponseRecord{
		responseAt(now.Add(-time.Hour), true),
		responseAt(now.Add(-2*time.Hour), false),
		responseAt(seventeenth.Add(12*time.Hour), true),
	}
	records[0].CompletionSeconds = float64Ptr(120)

	mobile := domain.DeviceMobile
	records[0].DeviceClass = &mobile

	surveys := []*domain.Survey{
		{ID: "s1", TenantID: "tenant-1", Category: "nps"},
	}

	snapshot := service.BuildSnapshot(now, "tenant-1", records, surveys)

	require.NotNil(t, snapshot)
	assert.NotEmpty(t, snapshot.ID)
	assert.Equal(t, "tenant-1", snapshot.TenantID)
	assert.Equal(t, now, snapshot.GeneratedAt)

	assert.Equal(t, 2, snapshot.WindowCounts[domain.Window24h])
	assert.Equal(t, 3, snapshot.WindowCounts[domain.Window7d])
	assert.Equal(t, 3, snapshot.WindowCounts[domain.Window30d])

	assert.Equal(t, domain.SourceReal, snapshot.CompletionRate.Source)
	assert.InDelta(t, 66.67, snapshot.CompletionRate.Value, 0.01)
	assert.Equal(t, domain.SourceReal, snapshot.AvgCompletionSeconds.Source)
	assert.Equal(t, 120.0, snapshot.AvgCompletionSeconds.Value)

	require.Len(t, snapshot.Trend, TrendDays)
	today := snapshot.Trend[TrendDays-1]
	assert.Equal(t, "2024-03-20", today.Date)
	assert.Equal(t, 2, today.Responses)
	assert.Equal(t, domain.SourceReal, today.CompletionRate.Source)
	assert.True(t, today.RevenuePlaceholder.IsFallback())

	assert.Equal(t, domain.SourceReal, snapshot.CategoryDistribution.Source)
	assert.Equal(t, domain.SourceReal, snapshot.DeviceDistribution.Source)
	assert.Len(t, snapshot.Heatmap, 24)
}

func TestService_BuildSnapshot_EmptyDayGetsFallbackRate(t *testing.T) {
	service := NewService()
	now := time.Date(2024, 3, 20, 15, 0, 0, 0, time.UTC)

	records := []*domain.ResponseRecord{
		responseAt(now.Add(-time.Hour), true),
	}

	snapshot := service.BuildSnapshot(now, "tenant-1", records, nil)

	require.Len(t, snapshot.Trend, TrendDays)
	for _, point := range snapshot.Trend[:TrendDays-1] {
		assert.Zero(t, point.Responses)
		assert.True(t, point.CompletionRate.IsFallback())
		assert.Equal(t, FallbackTrendRate, point.CompletionRate.Value)
	}
	assert.False(t, snapshot.Trend[TrendDays-1].CompletionRate.IsFallback())
}

func TestService_BuildSnapshot_Deterministic(t *testing.T) {
	service := NewService()
	now := time.Date(2024, 3, 20, 15, 0, 0, 0, time.UTC)

	records := []*domain.ResponseRecord{
		responseAt(now.Add(-time.Hour), true),
		responseAt(now.AddDate(0, 0, -3), false),
	}

	first := service.BuildSnapshot(now, "tenant-1", records, nil)
	second := service.BuildSnapshot(now, "tenant-1", records, nil)

	// Idênticos exceto pelo ID
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.WindowCounts, second.WindowCounts)
	assert.Equal(t, first.CompletionRate, second.CompletionRate)
	assert.Equal(t, first.Trend, second.Trend)
	assert.Equal(t, first.Heatmap, second.Heatmap)
	assert.Equal(t, first.CategoryDistribution, second.CategoryDistribution)
}

func TestService_FallbackSnapshot(t *testing.T) {
	service := NewService()
	now := time.Date(2024, 3, 20, 15, 0, 0, 0, time.UTC)

	snapshot := service.FallbackSnapshot(now, "tenant-1")

	require.NotNil(t, snapshot)

	// Contagens de janela são zeros reais, não fallback
	for _, label := range domain.WindowLabels {
		assert.Zero(t, snapshot.WindowCounts[label])
	}

	assert.True(t, snapshot.CompletionRate.IsFallback())
	assert.Equal(t, FallbackCompletionRate, snapshot.CompletionRate.Value)
	assert.True(t, snapshot.AvgCompletionSeconds.IsFallback())
	assert.Equal(t, FallbackAvgCompletionSeconds, snapshot.AvgCompletionSeconds.Value)

	assert.Equal(t, domain.SourceFallback, snapshot.CategoryDistribution.Source)
	require.Len(t, snapshot.CategoryDistribution.Entries, 4)
	assert.Equal(t, "Customer Feedback", snapshot.CategoryDistribution.Entries[0].Name)
	assert.Equal(t, 40, snapshot.CategoryDistribution.Entries[0].Percentage)

	assert.Equal(t, domain.SourceFallback, snapshot.DeviceDistribution.Source)
	require.Len(t, snapshot.DeviceDistribution.Entries, 4)
	assert.Equal(t, "mobile", snapshot.DeviceDistribution.Entries[0].Name)
	assert.Equal(t, 65, snapshot.DeviceDistribution.Entries[0].Percentage)

	for _, point := range snapshot.Trend {
		assert.True(t, point.CompletionRate.IsFallback())
	}

	// Heatmap continua sendo a grade real zerada
	for _, cell := range snapshot.Heatmap {
		assert.Zero(t, cell.Responses)
	}
}

func TestService_BuildSnapshot_MalformedRecordOnlySkippedInTimeCalcs(t *testing.T) {
	service := NewService()
	now := time.Date(2024, 3, 20, 15, 0, 0, 0, time.UTC)

	records := []*domain.ResponseRecord{
		{ID: "malformed", TenantID: "tenant-1", Completed: true},
		responseAt(now.Add(-time.Hour), false),
	}

	snapshot := service.BuildSnapshot(now, "tenant-1", records, nil)

	// Fora das janelas e da tendência
	assert.Equal(t, 1, snapshot.WindowCounts[domain.Window24h])
	assert.Equal(t, 1, snapshot.Trend[TrendDays-1].Responses)

	// Mas presente na taxa de conclusão
	assert.Equal(t, domain.SourceReal, snapshot.CompletionRate.Source)
	assert.Equal(t, 50.0, snapshot.CompletionRate.Value)
}
