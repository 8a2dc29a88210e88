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

type referenceRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewReferenceRepository(db *DB) repository.ReferenceRepository {
	return &referenceRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *referenceRepository) GetDistrictIDByName(ctx context.Context, name string) (int64, error) {
	return r.idByName(ctx, `SELECT id FROM district WHERE name = $1`, name, errors.ErrDistrictNotFound)
}

func (r *referenceRepository) GetCategoryIDByName(ctx context.Context, name string) (int64, error) {
	return r.idByName(ctx, `SELECT id FROM categories WHERE name = $1`, name, errors.ErrCategoryNotFound)
}

func (r *referenceRepository) idByName(ctx context.Context, query, name string, notFound *errors.AppError) (int64, error) {
	var id int64
	err := r.db.GetContext(ctx, &id, query, name)
	if err == sql.ErrNoRows {
		return 0, notFound.WithDetails(map[string]interface{}{"name": name})
	}
	if err != nil {
		r.logger.Error("Failed to resolve reference by name", zap.String("name", name), zap.Error(err))
		return 0, errors.ErrDatabaseError
	}
	return id, nil
}

func (r *referenceRepository) ListSeasons(ctx context.Context) ([]domain.Season, error) {
	seasons := []domain.Season{}
	if err := r.db.SelectContext(ctx, &seasons, `SELECT id, name FROM seasons ORDER BY id`); err != nil {
		r.logger.Error("Failed to list seasons", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return seasons, nil
}

func (r *referenceRepository) ListDistricts(ctx context.Context) ([]domain.District, error) {
	districts := []domain.District{}
	if err := r.db.SelectContext(ctx, &districts, `SELECT id, name FROM district ORDER BY id`); err != nil {
		r.logger.Error("Failed to list districts", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return districts, nil
}

func (r *referenceRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories := []domain.Category{}
	if err := r.db.SelectContext(ctx, &categories, `SELECT id, name FROM categories ORDER BY id`); err != nil {
		r.logger.Error("Failed to list categories", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return categories, nil
}
