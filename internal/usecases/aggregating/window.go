package aggregating

import (
	"time"

	"github.com/vfg2006/survey-analytics-api/internal/domain"
)

// windowDurations mapeia cada rótulo de janela para sua duração. As janelas
// são aninhadas: um registro dentro da menor conta em todas as que a contêm.
var windowDurations = map[string]time.Duration{
	domain.Window24h: 24 * time.Hour,
	domain.Window7d:  7 * 24 * time.Hour,
	domain.Window30d: 30 * 24 * time.Hour,
}

// CountWindows classifica cada resposta nas janelas móveis [now-d, now] e
// devolve a contagem por rótulo. Contagens são independentes por janela,
// não mutuamente exclusivas. Registros com created_at no futuro (clock
// skew) ou ausente ficam fora de todas as janelas. Entrada vazia produz
// contagens zero, que são respostas reais e não fallback.
func CountWindows(now time.Time, records []*domain.ResponseRecord) map[string]int {
	counts := make(map[string]int, len(windowDurations))
	for _, label := range domain.WindowLabels {
		counts[label] = 0
	}

	for _, record := range records {
		if !record.HasTimestamp() || record.CreatedAt.After(now) {
			continue
		}

		age := now.Sub(record.CreatedAt)
		for label, duration := range windowDurations {
			if age <= duration {
				counts[label]++
			}
		}
	}

	return counts
}
