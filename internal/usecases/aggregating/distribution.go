package aggregating

import (
	"sort"

	"github.com/vfg2006/survey-analytics-api/internal/domain"
)

// uncategorized rotula pesquisas sem categoria preenchida
const uncategorized = "uncategorized"

// SurveyCategoryDistribution agrupa as pesquisas por categoria e converte em
// fatias percentuais inteiras do total. Lista vazia devolve uma distribuição
// vazia para a política de fallback substituir, em vez de entradas
// degeneradas 0%/100%.
func SurveyCategoryDistribution(surveys []*domain.Survey) domain.Distribution {
	counts := make(map[string]int, len(surveys))
	for _, survey := range surveys {
		if survey == nil {
			continue
		}

		category := survey.Category
		if category == "" {
			category = uncategorized
		}
		counts[category]++
	}

	return buildDistribution(counts)
}

// DeviceDistribution agrupa as respostas por classe de dispositivo, da mesma
// forma que a distribuição de categorias. Respostas sem classe registrada
// ficam de fora do agrupamento.
func DeviceDistribution(records []*domain.ResponseRecord) domain.Distribution {
	counts := make(map[string]int, 4)
	for _, record := range records {
		if record == nil || record.DeviceClass == nil {
			continue
		}
		counts[string(*record.DeviceClass)]++
	}

	return buildDistribution(counts)
}

// buildDistribution converte contagens em fatias ordenadas por contagem
// decrescente. Porcentagens são truncadas para inteiro, então a soma fica
// em 100 menos um pequeno resto de arredondamento, nunca acima.
func buildDistribution(counts map[string]int) domain.Distribution {
	total := 0
	for _, count := range counts {
		total += count
	}

	if total == 0 {
		return domain.Distribution{Source: domain.SourceReal}
	}

	entries := make([]domain.DistributionEntry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, domain.DistributionEntry{
			Name:       name,
			Count:      count,
			Percentage: count * 100 / total,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Name < entries[j].Name
	})

	return domain.Distribution{Entries: entries, Source: domain.SourceReal}
}
