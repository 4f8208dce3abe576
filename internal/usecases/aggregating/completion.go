package aggregating

import "github.com/vfg2006/survey-analytics-api/internal/domain"

// CompletionStats agrega a taxa de conclusão e a duração média de conclusão
// de um conjunto de respostas. Os campos *Defined indicam se o cálculo real
// existe; quando falsos, a política de fallback fornece o placeholder.
type CompletionStats struct {
	Attempts    int
	Completed   int
	Rate        float64
	RateDefined bool
	AvgSeconds  float64
	AvgDefined  bool
}

// CalculateCompletionStats computa as estatísticas de conclusão sobre a
// lista completa de respostas. Toda resposta é uma tentativa, concluída ou
// não. Respostas concluídas sem duração registrada ficam fora do
// denominador da média, nunca entram como zero.
func CalculateCompletionStats(records []*domain.ResponseRecord) CompletionStats {
	stats := CompletionStats{}

	var durationSum float64
	var durationCount int

	for _, record := range records {
		if record == nil {
			continue
		}

		stats.Attempts++
		if record.Completed {
			stats.Completed++
		}

		if record.HasUsableDuration() {
			durationSum += *record.CompletionSeconds
			durationCount++
		}
	}

	if stats.Attempts > 0 {
		stats.Rate = float64(stats.Completed) / float64(stats.Attempts) * 100
		stats.RateDefined = true
	}

	if durationCount > 0 {
		stats.AvgSeconds = durationSum / float64(durationCount)
		stats.AvgDefined = true
	}

	return stats
}
