package aggregating

import (
	"github.com/vfg2006/survey-analytics-api/internal/domain"
	"github.com/vfg2006/survey-analytics-api/pkg/utils"
)

// Placeholders determinísticos da política de fallback. Substituem métricas
// indefinidas para que a camada de apresentação sempre receba um dashboard
// completo; todo valor substituído sai marcado com SourceFallback.
const (
	FallbackCompletionRate       = 75.0
	FallbackAvgCompletionSeconds = 180.0
	FallbackTrendRate            = 75.0
)

// completionRateMetric devolve a taxa real ou o placeholder marcado
func completionRateMetric(stats CompletionStats) domain.Metric {
	if !stats.RateDefined {
		return domain.FallbackMetric(FallbackCompletionRate)
	}
	return domain.RealMetric(utils.RoundWithTwoDecimalPlace(stats.Rate))
}

// avgCompletionMetric devolve a média real ou o placeholder marcado
func avgCompletionMetric(stats CompletionStats) domain.Metric {
	if !stats.AvgDefined {
		return domain.FallbackMetric(FallbackAvgCompletionSeconds)
	}
	return domain.RealMetric(utils.RoundWithTwoDecimalPlace(stats.AvgSeconds))
}

// trendRateMetric calcula a taxa de conclusão de um dia da tendência. Dias
// sem tentativas recebem o placeholder: um zero real sugeriria que todas as
// tentativas falharam.
func trendRateMetric(day TrendDay) domain.Metric {
	if day.Responses == 0 {
		return domain.FallbackMetric(FallbackTrendRate)
	}
	rate := float64(day.Completed) / float64(day.Responses) * 100
	return domain.RealMetric(utils.RoundWithTwoDecimalPlace(rate))
}

// revenueMetric é sempre placeholder: faturamento pertence ao serviço de
// cobrança, a coluna existe só para compor o layout da tendência
func revenueMetric() domain.Metric {
	return domain.FallbackMetric(0)
}

// fallbackCategoryDistribution é o conjunto fixo exibido quando o tenant
// ainda não tem pesquisas
func fallbackCategoryDistribution() domain.Distribution {
	return domain.Distribution{
		Source: domain.SourceFallback,
		Entries: []domain.DistributionEntry{
			{Name: "Customer Feedback", Percentage: 40},
			{Name: "Market Research", Percentage: 30},
			{Name: "Product Research", Percentage: 20},
			{Name: "Other", Percentage: 10},
		},
	}
}

// fallbackDeviceDistribution é o conjunto fixo exibido quando nenhuma
// resposta registrou classe de dispositivo
func fallbackDeviceDistribution() domain.Distribution {
	return domain.Distribution{
		Source: domain.SourceFallback,
		Entries: []domain.DistributionEntry{
			{Name: string(domain.DeviceMobile), Percentage: 65},
			{Name: string(domain.DeviceDesktop), Percentage: 25},
			{Name: string(domain.DeviceTablet), Percentage: 8},
			{Name: string(domain.DeviceOther), Percentage: 2},
		},
	}
}

// orFallbackDistribution substitui distribuições vazias pelo conjunto fixo
func orFallbackDistribution(dist domain.Distribution, fallback func() domain.Distribution) domain.Distribution {
	if dist.IsEmpty() {
		return fallback()
	}
	return dist
}
