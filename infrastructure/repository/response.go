package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/survey-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/survey-analytics-api/internal/domain"
)

const (
	surveyResponsesTable = "survey_responses sr"
)

type ResponseRepository interface {
	ListByTenant(ctx context.Context, tenantID string, since time.Time) ([]*domain.ResponseRecord, error)
	CountByTenant(ctx context.Context, tenantID string) (int, error)
}

type responseRepository struct {
	conn postgres.Queryer
}

func NewResponseRepository(conn postgres.Queryer) ResponseRepository {
	return &responseRepository{
		conn: conn,
	}
}

// ListByTenant retorna as respostas do tenant criadas a partir de `since`.
// Linhas com created_at NULL também são retornadas (com CreatedAt zerado):
// a decisão de ignorá-las pertence aos calculadores, não ao repositório.
func (r *responseRepository) ListByTenant(ctx context.Context, tenantID string, since time.Time) ([]*domain.ResponseRecord, error) {
	query, args, err := squirrel.
		Select("sr.id, sr.survey_id, sr.tenant_id, sr.created_at, sr.completed, sr.completion_seconds, sr.device_class").
		From(surveyResponsesTable).
		Where(squirrel.Eq{"sr.tenant_id": tenantID}).
		Where(squirrel.Or{
			squirrel.GtOrEq{"sr.created_at": since},
			squirrel.Eq{"sr.created_at": nil},
		}).
		OrderBy("sr.created_at ASC NULLS FIRST").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.ResponseRecord, 0)
	for rows.Next() {
		record, err := r.scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear resposta: %w", err)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}

func (r *responseRepository) CountByTenant(ctx context.Context, tenantID string) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(surveyResponsesTable).
		Where(squirrel.Eq{"sr.tenant_id": tenantID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar respostas: %w", err)
	}

	return count, nil
}

func (r *responseRepository) scanRecord(rows *sql.Rows) (*domain.ResponseRecord, error) {
	record := &domain.ResponseRecord{}
	var createdAt sql.NullTime
	var completionSeconds sql.NullFloat64
	var deviceClass sql.NullString

	err := rows.Scan(
		&record.ID,
		&record.SurveyID,
		&record.TenantID,
		&createdAt,
		&record.Completed,
		&completionSeconds,
		&deviceClass,
	)
	if err != nil {
		return nil, err
	}

	if createdAt.Valid {
		record.CreatedAt = createdAt.Time
	}

	if completionSeconds.Valid {
		record.CompletionSeconds = &completionSeconds.Float64
	}

	if deviceClass.Valid {
		record.DeviceClass = domain.ParseDeviceClass(deviceClass.String)
	}

	return record, nil
}
