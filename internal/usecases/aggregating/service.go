// Package aggregating contém o motor de agregação de analytics de
// respostas: janelas móveis, estatísticas de conclusão, padrões temporais,
// distribuições categóricas e a política de fallback que os compõe em um
// snapshot imutável de dashboard.
package aggregating

import (
	"time"

	"github.com/google/uuid"
	"github.com/vfg2006/survey-analytics-api/internal/domain"
	"github.com/vfg2006/survey-analytics-api/pkg/utils"
)

// Service implementa Aggregator compondo os calculadores puros deste pacote
type Service struct{}

// NewService cria uma nova instância do motor de agregação
func NewService() Aggregator {
	return &Service{}
}

// BuildSnapshot compõe as métricas derivadas em um DashboardSnapshot. Uma
// única passada de busca alimenta todos os calculadores; nenhum deles faz
// E/S. Registros malformados são ignorados pelos cálculos afetados, nunca
// abortam a execução.
func (s *Service) BuildSnapshot(
	now time.Time,
	tenantID string,
	responses []*domain.ResponseRecord,
	surveys []*domain.Survey,
) *domain.DashboardSnapshot {
	stats := CalculateCompletionStats(responses)
	trendDays := BuildTrendDays(now, responses)

	trend := make([]domain.TrendPoint, 0, len(trendDays))
	for _, day := range trendDays {
		trend = append(trend, domain.TrendPoint{
			Date:               day.Date.Format(time.DateOnly),
			Responses:          day.Responses,
			CompletionRate:     trendRateMetric(day),
			RevenuePlaceholder: revenueMetric(),
		})
	}

	return &domain.DashboardSnapshot{
		ID:                   newSnapshotID(),
		TenantID:             tenantID,
		WindowCounts:         CountWindows(now, responses),
		CompletionRate:       completionRateMetric(stats),
		AvgCompletionSeconds: avgCompletionMetric(stats),
		Trend:                trend,
		CategoryDistribution: orFallbackDistribution(SurveyCategoryDistribution(surveys), fallbackCategoryDistribution),
		DeviceDistribution:   orFallbackDistribution(DeviceDistribution(responses), fallbackDeviceDistribution),
		Heatmap:              BuildHeatmap(now, responses),
		GeneratedAt:          now,
	}
}

// FallbackSnapshot produz o snapshot publicado quando a fonte de dados está
// indisponível e não existe snapshot bom anterior. Equivale a agregar o
// conjunto vazio: contagens de janela zeradas (zeros reais) e todo o resto
// preenchido pela política de fallback.
func (s *Service) FallbackSnapshot(now time.Time, tenantID string) *domain.DashboardSnapshot {
	return s.BuildSnapshot(now, tenantID, nil, nil)
}

func newSnapshotID() string {
	id, err := utils.GenerateID()
	if err != nil {
		return uuid.NewString()
	}
	return id
}
