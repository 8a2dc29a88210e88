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

const hoursColumns = `id, place_id, day_of_week,
	to_char(opening_time, 'HH24:MI') AS opening_time,
	to_char(closing_time, 'HH24:MI') AS closing_time`

type operatingHoursRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewOperatingHoursRepository(db *DB) repository.OperatingHoursRepository {
	return &operatingHoursRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *operatingHoursRepository) List(ctx context.Context) ([]domain.OperatingHours, error) {
	hours := []domain.OperatingHours{}
	err := r.db.SelectContext(ctx, &hours, `SELECT `+hoursColumns+` FROM operating_hours ORDER BY place_id, id`)
	if err != nil {
		r.logger.Error("Failed to list operating hours", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return hours, nil
}

func (r *operatingHoursRepository) GetByID(ctx context.Context, id int64) (*domain.OperatingHours, error) {
	var h domain.OperatingHours
	err := r.db.GetContext(ctx, &h, `SELECT `+hoursColumns+` FROM operating_hours WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrOperatingHoursNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get operating hours", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &h, nil
}

func (r *operatingHoursRepository) ListByPlaceAndDay(ctx context.Context, placeID int64, day string) ([]domain.OperatingHours, error) {
	hours := []domain.OperatingHours{}
	err := r.db.SelectContext(ctx, &hours,
		`SELECT `+hoursColumns+` FROM operating_hours WHERE place_id = $1 AND day_of_week = $2 ORDER BY opening_time`,
		placeID, day)
	if err != nil {
		r.logger.Error("Failed to list operating hours by day",
			zap.Int64("place_id", placeID), zap.String("day", day), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return hours, nil
}

func (r *operatingHoursRepository) Create(ctx context.Context, h *domain.OperatingHours) (int64, error) {
	var id int64
	err := r.db.GetContext(ctx, &id, `
		INSERT INTO operating_hours (place_id, day_of_week, opening_time, closing_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		h.PlaceID, h.DayOfWeek, h.OpeningTime, h.ClosingTime)
	if err != nil {
		r.logger.Error("Failed to create operating hours", zap.Int64("place_id", h.PlaceID), zap.Error(err))
		return 0, errors.ErrDatabaseError
	}
	return id, nil
}

func (r *operatingHoursRepository) Update(ctx context.Context, id int64, h *domain.OperatingHours) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE operating_hours
		SET place_id = $1, day_of_week = $2, opening_time = $3, closing_time = $4
		WHERE id = $5`,
		h.PlaceID, h.DayOfWeek, h.OpeningTime, h.ClosingTime, id)
	if err != nil {
		r.logger.Error("Failed to update operating hours", zap.Int64("id", id), zap.Error(err))
		return 0, errors.ErrDatabaseError
	}
	return res.RowsAffected()
}

func (r *operatingHoursRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM operating_hours WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete operating hours", zap.Int64("id", id), zap.Error(err))
		return 0, errors.ErrDatabaseError
	}
	return res.RowsAffected()
}
