package domain

import "time"

// Rótulos das janelas móveis calculadas em cada snapshot. A ordem é
// crescente e as janelas são aninhadas (24h ⊂ 7d ⊂ 30d).
const (
	Window24h = "24h"
	Window7d  = "7d"
	Window30d = "30d"
)

// WindowLabels lista os rótulos na ordem de apresentação
var WindowLabels = []string{Window24h, Window7d, Window30d}

// TrendPoint é um dia da série de tendência dos últimos 7 dias corridos
type TrendPoint struct {
	Date      string `json:"date"` // formato 2006-01-02
	Responses int    `json:"responses"`
	// CompletionRate de dias sem tentativas é o placeholder da política de
	// fallback, nunca um zero real
	CompletionRate Metric `json:"completion_rate"`
	// RevenuePlaceholder existe apenas para compor o layout do dashboard;
	// faturamento não é responsabilidade deste serviço
	RevenuePlaceholder Metric `json:"revenue_placeholder"`
}

// HeatmapCell é uma célula da grade fixa de atividade (dia útil x hora).
// Células sem respostas são zeros reais: a grade existe para revelar
// esparsidade.
type HeatmapCell struct {
	Day       string `json:"day"`  // Mon..Sat
	Hour      int    `json:"hour"` // hora local representativa
	Responses int    `json:"responses"`
}

// DashboardSnapshot é o único artefato de saída do motor de agregação.
// Imutável após a construção: cada ciclo produz um snapshot novo que
// substitui o anterior de forma atômica para o consumidor.
type DashboardSnapshot struct {
	ID                   string         `json:"id"`
	TenantID             string         `json:"tenant_id"`
	WindowCounts         map[string]int `json:"window_counts"`
	CompletionRate       Metric         `json:"completion_rate"`
	AvgCompletionSeconds Metric         `json:"avg_completion_seconds"`
	Trend                []TrendPoint   `json:"trend"`
	CategoryDistribution Distribution   `json:"category_distribution"`
	DeviceDistribution   Distribution   `json:"device_distribution"`
	Heatmap              []HeatmapCell  `json:"heatmap"`
	GeneratedAt          time.Time      `json:"generated_at"`
}
