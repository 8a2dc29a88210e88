package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/tourism-microservice/internal/domain"
	"github.com/tourism-microservice/internal/domain/repository"
	"github.com/tourism-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

type suggestionRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewSuggestionRepository(db *DB) repository.SuggestionRepository {
	return &suggestionRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *suggestionRepository) ListActiveTexts(ctx context.Context) ([]string, error) {
	texts := []string{}
	err := r.db.SelectContext(ctx, &texts,
		`SELECT suggestion_text FROM chatbot_suggestions WHERE active = TRUE ORDER BY created_at DESC, id DESC`)
	if err != nil {
		r.logger.Error("Failed to list active suggestions", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return texts, nil
}

func (r *suggestionRepository) List(ctx context.Context) ([]domain.ChatbotSuggestion, error) {
	items := []domain.ChatbotSuggestion{}
	err := r.db.SelectContext(ctx, &items,
		`SELECT id, category, suggestion_text, active, created_at FROM chatbot_suggestions ORDER BY created_at DESC, id DESC`)
	if err != nil {
		r.logger.Error("Failed to list suggestions", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return items, nil
}

func (r *suggestionRepository) GetByID(ctx context.Context, id int64) (*domain.ChatbotSuggestion, error) {
	var s domain.ChatbotSuggestion
	err := r.db.GetContext(ctx, &s,
		`SELECT id, category, suggestion_text, active, created_at FROM chatbot_suggestions WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrSuggestionNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get suggestion", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &s, nil
}

func (r *suggestionRepository) Exists(ctx context.Context, category, text string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM chatbot_suggestions
			WHERE category = $1 AND suggestion_text = $2 AND id <> $3
		)`, category, text, excludeID)
	if err != nil {
		r.logger.Error("Failed to check suggestion duplicate", zap.Error(err))
		return false, errors.ErrDatabaseError
	}
	return exists, nil
}

func (r *suggestionRepository) Create(ctx context.Context, s *domain.ChatbotSuggestion) (int64, error) {
	var id int64
	err := r.db.GetContext(ctx, &id, `
		INSERT INTO chatbot_suggestions (category, suggestion_text, active)
		VALUES ($1, $2, $3)
		RETURNING id`, s.Category, s.SuggestionText, s.Active)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, errors.ErrDuplicateSuggestion
		}
		r.logger.Error("Failed to create suggestion", zap.Error(err))
		return 0, errors.ErrDatabaseError
	}
	return id, nil
}

func (r *suggestionRepository) Update(ctx context.Context, id int64, s *domain.ChatbotSuggestion) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE chatbot_suggestions
		SET category = $1, suggestion_text = $2, active = $3
		WHERE id = $4`, s.Category, s.SuggestionText, s.Active, id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, errors.ErrDuplicateSuggestion
		}
		r.logger.Error("Failed to update suggestion", zap.Int64("id", id), zap.Error(err))
		return 0, errors.ErrDatabaseError
	}
	return res.RowsAffected()
}

func (r *suggestionRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM chatbot_suggestions WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete suggestion", zap.Int64("id", id), zap.Error(err))
		return 0, errors.ErrDatabaseError
	}
	return res.RowsAffected()
}
