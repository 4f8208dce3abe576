package aggregating

import (
	"time"

	"github.com/vfg2006/survey-analytics-api/internal/domain"
)

// Aggregator define a interface do motor de agregação de analytics de
// respostas. A composição é síncrona e pura: toda a E/S acontece antes,
// no adaptador do event store.
type Aggregator interface {
	// BuildSnapshot compõe um snapshot imutável do dashboard a partir dos
	// registros em memória. Duas execuções sobre a mesma entrada produzem
	// snapshots idênticos exceto por ID e GeneratedAt.
	BuildSnapshot(now time.Time, tenantID string, responses []*domain.ResponseRecord, surveys []*domain.Survey) *domain.DashboardSnapshot

	// FallbackSnapshot produz o snapshot todo-fallback publicado quando a
	// fonte de dados está indisponível e ainda não existe snapshot bom
	FallbackSnapshot(now time.Time, tenantID string) *domain.DashboardSnapshot
}
