package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/survey-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/survey-analytics-api/internal/domain"
)

const (
	surveysTable = "surveys s"
)

type SurveyRepository interface {
	ListByTenant(ctx context.Context, tenantID string) ([]*domain.Survey, error)
}

type surveyRepository struct {
	conn postgres.Queryer
}

func NewSurveyRepository(conn postgres.Queryer) SurveyRepository {
	return &surveyRepository{
		conn: conn,
	}
}

func (r *surveyRepository) ListByTenant(ctx context.Context, tenantID string) ([]*domain.Survey, error) {
	query, args, err := squirrel.
		Select("s.id, s.tenant_id, s.title, s.category, s.created_at, s.response_count").
		From(surveysTable).
		Where(squirrel.Eq{"s.tenant_id": tenantID}).
		OrderBy("s.created_at ASC").
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

	surveys := make([]*domain.Survey, 0)
	for rows.Next() {
		survey, err := r.scanSurvey(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear pesquisa: %w", err)
		}
		surveys = append(surveys, survey)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return surveys, nil
}

func (r *surveyRepository) scanSurvey(rows *sql.Rows) (*domain.Survey, error) {
	survey := &domain.Survey{}
	var category sql.NullString
	var responseCount sql.NullInt64

	err := rows.Scan(
		&survey.ID,
		&survey.TenantID,
		&survey.Title,
		&category,
		&survey.CreatedAt,
		&responseCount,
	)
	if err != nil {
		return nil, err
	}

	if category.Valid {
		survey.Category = category.String
	}

	if responseCount.Valid {
		survey.ResponseCount = int(responseCount.Int64)
	}

	return survey, nil
}
