package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/survey-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/survey-analytics-api/internal/domain"
)

const (
	dashboardSnapshotsTable = "dashboard_snapshots ds"
)

type SnapshotRepository interface {
	GetByTenantID(ctx context.Context, tenantID string) (*domain.DashboardSnapshot, error)
	SaveOrUpdate(ctx context.Context, snapshot *domain.DashboardSnapshot) error
}

type snapshotRepository struct {
	conn postgres.Queryer
}

func NewSnapshotRepository(conn postgres.Queryer) SnapshotRepository {
	return &snapshotRepository{
		conn: conn,
	}
}

// GetByTenantID retorna o último snapshot persistido do tenant, ou nil
// quando o tenant ainda não tem snapshot
func (r *snapshotRepository) GetByTenantID(ctx context.Context, tenantID string) (*domain.DashboardSnapshot, error) {
	query, args, err := squirrel.
		Select("ds.payload").
		From(dashboardSnapshotsTable).
		Where(squirrel.Eq{"ds.tenant_id": tenantID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var payload []byte
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&payload)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear snapshot: %w", err)
	}

	snapshot := &domain.DashboardSnapshot{}
	if err := json.Unmarshal(payload, snapshot); err != nil {
		return nil, fmt.Errorf("erro ao deserializar JSON do snapshot: %w", err)
	}

	return snapshot, nil
}

// SaveOrUpdate persiste o snapshot como documento JSONB, um por tenant.
// O snapshot anterior é substituído de forma atômica.
func (r *snapshotRepository) SaveOrUpdate(ctx context.Context, snapshot *domain.DashboardSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("erro ao serializar snapshot para JSON: %w", err)
	}

	query := squirrel.StatementBuilder.
		Insert("dashboard_snapshots").
		Columns("tenant_id", "payload", "generated_at").
		Values(
			snapshot.TenantID,
			payload,
			snapshot.GeneratedAt,
		).
		Suffix(`
			ON CONFLICT (tenant_id) DO UPDATE SET
				payload = EXCLUDED.payload,
				generated_at = EXCLUDED.generated_at,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}
