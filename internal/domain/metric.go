package domain

// MetricSource indica se um valor derivado veio do cálculo real ou do
// substituto determinístico da política de fallback. Consumidores de
// exportação/relatório usam a marcação para filtrar placeholders.
type MetricSource string

const (
	SourceReal     MetricSource = "real"
	SourceFallback MetricSource = "fallback"
)

// Metric é um valor numérico derivado com a origem marcada no tipo
type Metric struct {
	Value  float64      `json:"value"`
	Source MetricSource `json:"source"`
}

func RealMetric(value float64) Metric {
	return Metric{Value: value, Source: SourceReal}
}

func FallbackMetric(value float64) Metric {
	return Metric{Value: value, Source: SourceFallback}
}

// IsFallback indica se o valor foi substituído pela política de fallback
func (m Metric) IsFallback() bool {
	return m.Source == SourceFallback
}

// DistributionEntry é uma fatia nomeada de uma distribuição categórica
type DistributionEntry struct {
	Name       string `json:"name"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// Distribution agrupa as fatias de uma distribuição com a origem marcada;
// as porcentagens somam 100 menos o resto de arredondamento
type Distribution struct {
	Entries []DistributionEntry `json:"entries"`
	Source  MetricSource        `json:"source"`
}

// IsEmpty indica se a distribuição não possui nenhuma fatia
func (d Distribution) IsEmpty() bool {
	return len(d.Entries) == 0
}
