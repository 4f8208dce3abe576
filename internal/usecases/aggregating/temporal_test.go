package aggregating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/survey-analytics-api/internal/domain"
)

func TestBuildTrendDays(t *testing.T) {
	now := time.Date(2024, 3, 20, 15, 30, 0, 0, time.UTC) // quarta-feira

	t.Run("Sempre devolve 7 dias, do mais antigo para o mais recente", func(t *testing.T) {
		days := BuildTrendDays(now, nil)

		require.Len(t, days, TrendDays)
		assert.Equal(t, "2024-03-14", days[0].Date.Format(time.DateOnly))
		assert.Equal(t, "2024-03-20", days[6].Date.Format(time.DateOnly))

		for _, day := range days {
			assert.Zero(t, day.Responses)
		}
	})

	t.Run("Agrupa respostas pelo dia corrido local", func(t *testing.T) {
		records := []*domain.ResponseRecord{
			responseAt(time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), true),  // meia-noite pertence ao dia 20
			responseAt(time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC), false),
			responseAt(time.Date(2024, 3, 18, 23, 59, 59, 0, time.UTC), true),
			responseAt(time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC), true), // fora da série
		}

		days := BuildTrendDays(now, records)

		require.Len(t, days, TrendDays)
		assert.Equal(t, 2, days[6].Responses)
		assert.Equal(t, 1, days[6].Completed)
		assert.Equal(t, 1, days[4].Responses)

		total := 0
		for _, day := range days {
			total += day.Responses
		}
		assert.Equal(t, 3, total)
	})

	t.Run("Registro sem timestamp é ignorado", func(t *testing.T) {
		records := []*domain.ResponseRecord{
			{ID: "malformed", Completed: true},
		}

		days := BuildTrendDays(now, records)
		for _, day := range days {
			assert.Zero(t, day.Responses)
		}
	})
}

func TestBuildHeatmap(t *testing.T) {
	now := time.Date(2024, 3, 20, 15, 30, 0, 0, time.UTC)

	t.Run("Grade fixa completa com zeros reais", func(t *testing.T) {
		cells := BuildHeatmap(now, nil)

		require.Len(t, cells, 24) // 6 dias x 4 horas
		assert.Equal(t, "Mon", cells[0].Day)
		assert.Equal(t, 9, cells[0].Hour)
		assert.Equal(t, "Sat", cells[len(cells)-1].Day)
		assert.Equal(t, 18, cells[len(cells)-1].Hour)

		for _, cell := range cells {
			assert.Zero(t, cell.Responses)
		}
	})

	t.Run("Conta respostas nas células correspondentes", func(t *testing.T) {
		records := []*domain.ResponseRecord{
			responseAt(time.Date(2024, 3, 18, 9, 15, 0, 0, time.UTC), true),  // segunda 9h
			responseAt(time.Date(2024, 3, 18, 9, 45, 0, 0, time.UTC), false), // segunda 9h
			responseAt(time.Date(2024, 3, 19, 12, 5, 0, 0, time.UTC), true),  // terça 12h
			responseAt(time.Date(2024, 3, 19, 13, 0, 0, 0, time.UTC), true),  // fora da grade de horas
			responseAt(time.Date(2024, 3, 17, 9, 0, 0, 0, time.UTC), true),   // domingo, fora da grade
		}

		cells := BuildHeatmap(now, records)

		total := 0
		for _, cell := range cells {
			total += cell.Responses
		}
		assert.Equal(t, 3, total)

		for _, cell := range cells {
			switch {
			case cell.Day == "Mon" && cell.Hour == 9:
				assert.Equal(t, 2, cell.Responses)
			case cell.Day == "Tue" && cell.Hour == 12:
				assert.Equal(t, 1, cell.Responses)
			default:
				assert.Zero(t, cell.Responses)
			}
		}
	})
}
