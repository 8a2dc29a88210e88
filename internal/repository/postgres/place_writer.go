package postgres

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/tourism-microservice/internal/domain"
	"github.com/tourism-microservice/internal/domain/repository"
	"github.com/tourism-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

// pgUniqueViolation - SQLSTATE нарушения уникальности
const pgUniqueViolation = "23505"

// Запросы пишутся с "?" и приводятся к диалекту драйвера через Rebind
const (
	insertPlaceQuery = `
		INSERT INTO tourist_entities
			(name, description, location, latitude, longitude, district_id, category_id, created_by, published)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`

	updatePlaceQuery = `
		UPDATE tourist_entities
		SET name = ?, description = ?, location = ?, latitude = ?, longitude = ?,
			district_id = ?, category_id = ?, published = ?
		WHERE id = ?`

	deleteImagesQuery  = `DELETE FROM tourism_entities_images WHERE tourism_entities_id = ?`
	insertImageQuery   = `INSERT INTO tourism_entities_images (tourism_entities_id, image_path) VALUES (?, ?)`
	deleteSeasonsQuery = `DELETE FROM seasons_relation WHERE tourism_entities_id = ?`
	insertSeasonQuery  = `INSERT INTO seasons_relation (season_id, tourism_entities_id) VALUES (?, ?)`
	deleteHoursQuery   = `DELETE FROM operating_hours WHERE place_id = ?`
	insertHoursQuery   = `
		INSERT INTO operating_hours (place_id, day_of_week, opening_time, closing_time)
		VALUES (?, ?, ?, ?)`
	deletePlaceQuery = `DELETE FROM tourist_entities WHERE id = ?`
)

type placeWriter struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPlaceWriter(db *DB) repository.PlaceWriter {
	return &placeWriter{
		db:     db.DB,
		logger: db.logger,
	}
}

func (w *placeWriter) Create(ctx context.Context, rec *domain.PlaceRecord) (int64, error) {
	var id int64
	err := w.inTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, tx.Rebind(insertPlaceQuery),
			rec.Name, rec.Description, rec.Location, rec.Latitude, rec.Longitude,
			rec.DistrictID, rec.CategoryID, rec.CreatedBy, rec.Published,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert place: %w", err)
		}
		return w.writeChildren(ctx, tx, id, rec, false)
	})
	if err != nil {
		return 0, w.translate(err, "create", zap.String("name", rec.Name))
	}

	w.logger.Info("Place created", zap.Int64("id", id), zap.String("name", rec.Name))
	return id, nil
}

func (w *placeWriter) Update(ctx context.Context, id int64, rec *domain.PlaceRecord) (int64, error) {
	var affected int64
	err := w.inTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, tx.Rebind(updatePlaceQuery),
			rec.Name, rec.Description, rec.Location, rec.Latitude, rec.Longitude,
			rec.DistrictID, rec.CategoryID, rec.Published, id,
		)
		if err != nil {
			return fmt.Errorf("update place: %w", err)
		}
		if affected, err = res.RowsAffected(); err != nil {
			return fmt.Errorf("update place: %w", err)
		}
		if affected == 0 {
			return nil
		}
		return w.writeChildren(ctx, tx, id, rec, true)
	})
	if err != nil {
		return 0, w.translate(err, "update", zap.Int64("id", id))
	}

	w.logger.Info("Place updated", zap.Int64("id", id), zap.Int64("affected", affected))
	return affected, nil
}

func (w *placeWriter) Delete(ctx context.Context, id int64) (int64, error) {
	var affected int64
	err := w.inTx(ctx, func(tx *sqlx.Tx) error {
		for _, q := range []string{deleteImagesQuery, deleteSeasonsQuery, deleteHoursQuery} {
			if _, err := tx.ExecContext(ctx, tx.Rebind(q), id); err != nil {
				return fmt.Errorf("delete children: %w", err)
			}
		}
		res, err := tx.ExecContext(ctx, tx.Rebind(deletePlaceQuery), id)
		if err != nil {
			return fmt.Errorf("delete place: %w", err)
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, w.translate(err, "delete", zap.Int64("id", id))
	}
	return affected, nil
}

// writeChildren заменяет изображения, сезоны и часы работы.
// При обновлении пустой список означает "не менять".
func (w *placeWriter) writeChildren(ctx context.Context, tx *sqlx.Tx, id int64, rec *domain.PlaceRecord, replace bool) error {
	if len(rec.ImagePaths) > 0 {
		if replace {
			if _, err := tx.ExecContext(ctx, tx.Rebind(deleteImagesQuery), id); err != nil {
				return fmt.Errorf("delete images: %w", err)
			}
		}
		for _, p := range rec.ImagePaths {
			if _, err := tx.ExecContext(ctx, tx.Rebind(insertImageQuery), id, p); err != nil {
				return fmt.Errorf("insert image %q: %w", p, err)
			}
		}
	}

	if len(rec.SeasonIDs) > 0 {
		if replace {
			if _, err := tx.ExecContext(ctx, tx.Rebind(deleteSeasonsQuery), id); err != nil {
				return fmt.Errorf("delete seasons: %w", err)
			}
		}
		for _, seasonID := range rec.SeasonIDs {
			if _, err := tx.ExecContext(ctx, tx.Rebind(insertSeasonQuery), seasonID, id); err != nil {
				return fmt.Errorf("insert season %d: %w", seasonID, err)
			}
		}
	}

	if len(rec.Hours) > 0 {
		if _, err := tx.ExecContext(ctx, tx.Rebind(deleteHoursQuery), id); err != nil {
			return fmt.Errorf("delete operating hours: %w", err)
		}
		for _, h := range rec.Hours {
			if _, err := tx.ExecContext(ctx, tx.Rebind(insertHoursQuery),
				id, h.DayOfWeek, h.Opening.String(), h.Closing.String(),
			); err != nil {
				return fmt.Errorf("insert operating hours %s: %w", h.DayOfWeek, err)
			}
		}
	}

	return nil
}

// inTx выполняет fn в транзакции на выделенном соединении пула.
// Соединение возвращается в пул на любом пути выхода.
func (w *placeWriter) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	conn, err := w.db.Connx(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			w.logger.Error("Failed to rollback transaction", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// translate превращает ошибку драйвера в AppError
func (w *placeWriter) translate(err error, op string, fields ...zap.Field) error {
	if isUniqueViolation(err) {
		w.logger.Warn("Place write rejected: duplicate name", append(fields, zap.String("op", op))...)
		return errors.ErrDuplicatePlaceName
	}
	w.logger.Error("Place transaction rolled back", append(fields, zap.String("op", op), zap.Error(err))...)
	return errors.TransactionFailure(err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
