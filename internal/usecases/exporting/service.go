// Package exporting projeta um snapshot de dashboard em linhas achatadas
// para consumo externo (planilhas e integrações). Cada métrica vira uma
// linha com seção, chave, valor e origem (real ou fallback), preservando a
// marcação da política de fallback fora da API.
package exporting

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/survey-analytics-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Row é uma linha da projeção achatada do snapshot
type Row struct {
	Section string `json:"section"`
	Key     string `json:"key"`
	Value   string `json:"value"`
	Source  string `json:"source"`
}

// Exporter projeta snapshots em formatos de exportação
type Exporter interface {
	Project(snapshot *domain.DashboardSnapshot) []Row
	WriteCSV(w io.Writer, snapshot *domain.DashboardSnapshot) error
	WriteJSON(w io.Writer, snapshot *domain.DashboardSnapshot) error
}

type Service struct{}

func NewService() Exporter {
	return &Service{}
}

// Project achata o snapshot em linhas ordenadas por seção, na ordem de
// apresentação do dashboard
func (s *Service) Project(snapshot *domain.DashboardSnapshot) []Row {
	rows := make([]Row, 0, 64)

	rows = append(rows, Row{
		Section: "snapshot",
		Key:     "generated_at",
		Value:   snapshot.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
		Source:  string(domain.SourceReal),
	})

	for _, label := range domain.WindowLabels {
		rows = append(rows, Row{
			Section: "windows",
			Key:     label,
			Value:   strconv.Itoa(snapshot.WindowCounts[label]),
			Source:  string(domain.SourceReal),
		})
	}

	rows = append(rows,
		metricRow("completion", "rate", snapshot.CompletionRate),
		metricRow("completion", "avg_seconds", snapshot.AvgCompletionSeconds),
	)

	for _, point := range snapshot.Trend {
		rows = append(rows,
			Row{
				Section: "trend",
				Key:     point.Date + "/responses",
				Value:   strconv.Itoa(point.Responses),
				Source:  string(domain.SourceReal),
			},
			metricRow("trend", point.Date+"/completion_rate", point.CompletionRate),
			metricRow("trend", point.Date+"/revenue", point.RevenuePlaceholder),
		)
	}

	for _, entry := range snapshot.CategoryDistribution.Entries {
		rows = append(rows, distributionRow("categories", entry, snapshot.CategoryDistribution.Source))
	}

	for _, entry := range snapshot.DeviceDistribution.Entries {
		rows = append(rows, distributionRow("devices", entry, snapshot.DeviceDistribution.Source))
	}

	for _, cell := range snapshot.Heatmap {
		rows = append(rows, Row{
			Section: "heatmap",
			Key:     fmt.Sprintf("%s/%02dh", cell.Day, cell.Hour),
			Value:   strconv.Itoa(cell.Responses),
			Source:  string(domain.SourceReal),
		})
	}

	return rows
}

// WriteCSV escreve a projeção no formato CSV com cabeçalho fixo
func (s *Service) WriteCSV(w io.Writer, snapshot *domain.DashboardSnapshot) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"section", "key", "value", "source"}); err != nil {
		return errors.Wrap(err, "erro ao escrever cabeçalho do CSV")
	}

	for _, row := range s.Project(snapshot) {
		if err := writer.Write([]string{row.Section, row.Key, row.Value, row.Source}); err != nil {
			return errors.Wrap(err, "erro ao escrever linha do CSV")
		}
	}

	writer.Flush()
	return errors.Wrap(writer.Error(), "erro ao finalizar CSV")
}

// WriteJSON escreve a projeção como um array JSON de linhas
func (s *Service) WriteJSON(w io.Writer, snapshot *domain.DashboardSnapshot) error {
	encoder := json.NewEncoder(w)
	if err := encoder.Encode(s.Project(snapshot)); err != nil {
		return errors.Wrap(err, "erro ao serializar exportação JSON")
	}
	return nil
}

func metricRow(section, key string, metric domain.Metric) Row {
	return Row{
		Section: section,
		Key:     key,
		Value:   strconv.FormatFloat(metric.Value, 'f', -1, 64),
		Source:  string(metric.Source),
	}
}

func distributionRow(section string, entry domain.DistributionEntry, source domain.MetricSource) Row {
	return Row{
		Section: section,
		Key:     entry.Name,
		Value:   strconv.Itoa(entry.Percentage),
		Source:  string(source),
	}
}
