package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/tourism-microservice/internal/domain"
	"github.com/tourism-microservice/internal/domain/repository"
	"github.com/tourism-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

type chatbotRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewChatbotRepository(db *DB) repository.ChatbotRepository {
	return &chatbotRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *chatbotRepository) FindNearby(
	ctx context.Context,
	lat, lng, radiusKm float64,
	category string,
	limit int,
) ([]domain.PlaceSummary, error) {
	filter := ""
	args := []interface{}{lat, lng, radiusKm, limit}
	if category != "" {
		filter = " AND c.name = $5"
		args = append(args, category)
	}

	query := `
		SELECT id, name, description, category_name, distance FROM (
			SELECT te.id, te.name, te.description, c.name AS category_name,
				` + distanceExpr(1, 2) + ` AS distance
			FROM tourist_entities te
			JOIN categories c ON te.category_id = c.id
			WHERE te.published = TRUE` + filter + `
		) p
		WHERE p.distance < $3
		ORDER BY p.distance
		LIMIT $4`

	return r.selectSummaries(ctx, "nearby", query, args...)
}

func (r *chatbotRepository) FindClosingBetween(
	ctx context.Context,
	category, day string,
	from, to domain.ClockTime,
) ([]domain.PlaceSummary, error) {
	return r.findInWindow(ctx, "closing_time", category, day, from, to)
}

func (r *chatbotRepository) FindOpeningBetween(
	ctx context.Context,
	category, day string,
	from, to domain.ClockTime,
) ([]domain.PlaceSummary, error) {
	return r.findInWindow(ctx, "opening_time", category, day, from, to)
}

// findInWindow ищет объекты, у которых column попадает в [from, to]; окно может переходить через полночь
func (r *chatbotRepository) findInWindow(
	ctx context.Context,
	column, category, day string,
	from, to domain.ClockTime,
) ([]domain.PlaceSummary, error) {
	cond := fmt.Sprintf("oh.%[1]s >= $3::time AND oh.%[1]s <= $4::time", column)
	if to < from {
		cond = fmt.Sprintf("(oh.%[1]s >= $3::time OR oh.%[1]s <= $4::time)", column)
	}

	query := fmt.Sprintf(`
		SELECT te.id, te.name, te.description, c.name AS category_name,
			to_char(oh.%[1]s, 'HH24:MI') AS boundary_time
		FROM tourist_entities te
		JOIN categories c ON te.category_id = c.id
		JOIN operating_hours oh ON oh.place_id = te.id
		WHERE te.published = TRUE AND c.name = $1 AND oh.day_of_week = $2
		AND %[2]s
		ORDER BY oh.%[1]s < $3::time, oh.%[1]s, te.id`, column, cond)

	return r.selectSummaries(ctx, column, query, category, day, from.String(), to.String())
}

func (r *chatbotRepository) FindOpenAt(
	ctx context.Context,
	category, day string,
	at domain.ClockTime,
) ([]domain.PlaceSummary, error) {
	query := `
		SELECT te.id, te.name, te.description, c.name AS category_name,
			to_char(oh.closing_time, 'HH24:MI') AS boundary_time
		FROM tourist_entities te
		JOIN categories c ON te.category_id = c.id
		JOIN operating_hours oh ON oh.place_id = te.id
		WHERE te.published = TRUE AND c.name = $1 AND oh.day_of_week = $2
		AND oh.opening_time <= $3::time AND oh.closing_time >= $3::time
		ORDER BY oh.closing_time, te.id`

	return r.selectSummaries(ctx, "open_at", query, category, day, at.String())
}

func (r *chatbotRepository) FindByCategory(ctx context.Context, category string) ([]domain.PlaceSummary, error) {
	query := `
		SELECT te.id, te.name, te.description, c.name AS category_name
		FROM tourist_entities te
		JOIN categories c ON te.category_id = c.id
		WHERE te.published = TRUE AND c.name = $1
		ORDER BY te.id`

	return r.selectSummaries(ctx, "by_category", query, category)
}

func (r *chatbotRepository) selectSummaries(ctx context.Context, op, query string, args ...interface{}) ([]domain.PlaceSummary, error) {
	var rows []domain.PlaceSummary
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.Error("Chatbot query failed", zap.String("op", op), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return rows, nil
}
