package aggregating

import (
	"time"

	"github.com/vfg2006/survey-analytics-api/internal/domain"
)

// TrendDays é o tamanho fixo da série de tendência: os últimos 7 dias
// corridos, incluindo hoje
const TrendDays = 7

// Grade fixa do heatmap de atividade: 6 dias úteis x horas representativas.
// A grade é limitada de propósito; não cobrimos as 168 horas da semana.
var (
	heatmapWeekdays = []time.Weekday{
		time.Monday,
		time.Tuesday,
		time.Wednesday,
		time.Thursday,
		time.Friday,
		time.Saturday,
	}
	heatmapHours = []int{9, 12, 15, 18}
)

// TrendDay acumula as tentativas e conclusões de um dia corrido. A taxa do
// dia é derivada depois, pela política de fallback, porque dias sem
// tentativas recebem placeholder e não zero.
type TrendDay struct {
	Date      time.Time
	Responses int
	Completed int
}

// BuildTrendDays agrupa as respostas por dia corrido no fuso de referência
// de now e devolve exatamente TrendDays entradas, da mais antiga para a
// mais recente. Um registro exatamente na meia-noite pertence ao dia cujo
// intervalo [00:00, 24:00) contém seu timestamp.
func BuildTrendDays(now time.Time, records []*domain.ResponseRecord) []TrendDay {
	loc := now.Location()
	today := dayStart(now, loc)

	days := make([]TrendDay, TrendDays)
	index := make(map[string]int, TrendDays)
	for i := 0; i < TrendDays; i++ {
		date := today.AddDate(0, 0, i-TrendDays+1)
		days[i] = TrendDay{Date: date}
		index[date.Format(time.DateOnly)] = i
	}

	for _, record := range records {
		if !record.HasTimestamp() {
			continue
		}

		key := dayStart(record.CreatedAt, loc).Format(time.DateOnly)
		i, ok := index[key]
		if !ok {
			continue
		}

		days[i].Responses++
		if record.Completed {
			days[i].Completed++
		}
	}

	return days
}

// BuildHeatmap conta as respostas cujo dia da semana e hora locais caem em
// cada célula da grade fixa. Células sem respostas são zeros reais, porque
// o heatmap existe para revelar esparsidade.
func BuildHeatmap(now time.Time, records []*domain.ResponseRecord) []domain.HeatmapCell {
	loc := now.Location()

	counts := make(map[time.Weekday]map[int]int, len(heatmapWeekdays))
	for _, day := range heatmapWeekdays {
		counts[day] = make(map[int]int, len(heatmapHours))
	}

	hourInGrid := make(map[int]bool, len(heatmapHours))
	for _, hour := range heatmapHours {
		hourInGrid[hour] = true
	}

	for _, record := range records {
		if !record.HasTimestamp() {
			continue
		}

		local := record.CreatedAt.In(loc)
		hours, ok := counts[local.Weekday()]
		if !ok || !hourInGrid[local.Hour()] {
			continue
		}
		hours[local.Hour()]++
	}

	cells := make([]domain.HeatmapCell, 0, len(heatmapWeekdays)*len(heatmapHours))
	for _, day := range heatmapWeekdays {
		for _, hour := range heatmapHours {
			cells = append(cells, domain.HeatmapCell{
				Day:       day.String()[:3],
				Hour:      hour,
				Responses: counts[day][hour],
			})
		}
	}

	return cells
}

func dayStart(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
