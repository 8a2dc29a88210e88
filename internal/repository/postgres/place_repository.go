package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/tourism-microservice/internal/domain"
	"github.com/tourism-microservice/internal/domain/repository"
	"github.com/tourism-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

// EarthRadiusKm - радиус Земли для формулы большого круга
const EarthRadiusKm = 6371.0

const placeColumns = `
	te.id, te.name, te.description, te.location, te.latitude, te.longitude,
	te.district_id, te.category_id, te.created_by, te.published, te.created_date,
	c.name AS category_name, d.name AS district_name,
	(SELECT string_agg(ti.image_path, ',' ORDER BY ti.id)
		FROM tourism_entities_images ti WHERE ti.tourism_entities_id = te.id) AS images,
	(SELECT string_agg(s.name, ',' ORDER BY s.id)
		FROM seasons_relation sr JOIN seasons s ON s.id = sr.season_id
		WHERE sr.tourism_entities_id = te.id) AS seasons`

const placeFrom = `
	FROM tourist_entities te
	JOIN categories c ON te.category_id = c.id
	JOIN district d ON te.district_id = d.id`

// distanceExpr - расстояние по большому кругу в км от точки ($lat, $lng) до объекта.
// Аргумент acos ограничен [-1, 1], чтобы совпадающие точки не давали NaN.
func distanceExpr(latArg, lngArg int) string {
	return fmt.Sprintf(`(%.1f * acos(LEAST(1.0, GREATEST(-1.0,
		cos(radians($%d)) * cos(radians(te.latitude)) * cos(radians(te.longitude) - radians($%d))
		+ sin(radians($%d)) * sin(radians(te.latitude))))))`, EarthRadiusKm, latArg, lngArg, latArg)
}

// placeRow - строка выборки объекта до преобразования в domain.Place
type placeRow struct {
	ID           int64           `db:"id"`
	Name         string          `db:"name"`
	Description  string          `db:"description"`
	Location     string          `db:"location"`
	Latitude     float64         `db:"latitude"`
	Longitude    float64         `db:"longitude"`
	DistrictID   int64           `db:"district_id"`
	CategoryID   int64           `db:"category_id"`
	CreatedBy    sql.NullInt64   `db:"created_by"`
	Published    bool            `db:"published"`
	CreatedDate  time.Time       `db:"created_date"`
	CategoryName string          `db:"category_name"`
	DistrictName string          `db:"district_name"`
	Images       sql.NullString  `db:"images"`
	Seasons      sql.NullString  `db:"seasons"`
	Distance     sql.NullFloat64 `db:"distance"`
}

func (r placeRow) toDomain() domain.Place {
	p := domain.Place{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		Location:     r.Location,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		DistrictID:   r.DistrictID,
		CategoryID:   r.CategoryID,
		Published:    r.Published,
		CreatedDate:  r.CreatedDate,
		CategoryName: r.CategoryName,
		DistrictName: r.DistrictName,
		Images:       []domain.Image{},
		Seasons:      splitList(r.Seasons),
	}
	if r.CreatedBy.Valid {
		createdBy := r.CreatedBy.Int64
		p.CreatedBy = &createdBy
	}
	for _, path := range splitList(r.Images) {
		p.Images = append(p.Images, domain.Image{ImagePath: path})
	}
	if r.Distance.Valid {
		d := r.Distance.Float64
		p.Distance = &d
	}
	return p
}

func splitList(s sql.NullString) []string {
	if !s.Valid || s.String == "" {
		return nil
	}
	return strings.Split(s.String, ",")
}

type placeRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPlaceRepository(db *DB) repository.PlaceRepository {
	return &placeRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// selectPlaces выполняет запрос и преобразует строки
func (r *placeRepository) selectPlaces(ctx context.Context, op, query string, args ...interface{}) ([]domain.Place, error) {
	var rows []placeRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.Error("Failed to select places", zap.String("op", op), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	places := make([]domain.Place, 0, len(rows))
	for _, row := range rows {
		places = append(places, row.toDomain())
	}
	return places, nil
}

func (r *placeRepository) GetPublished(ctx context.Context) ([]domain.Place, error) {
	query := `SELECT ` + placeColumns + placeFrom + `
		WHERE te.published = TRUE
		ORDER BY te.created_date DESC, te.id DESC`
	return r.selectPlaces(ctx, "published", query)
}

func (r *placeRepository) GetPublishedByCategory(
	ctx context.Context,
	categoryName string,
	districtID *int64,
) ([]domain.Place, error) {
	query := `SELECT ` + placeColumns + placeFrom + `
		WHERE te.published = TRUE AND c.name = $1`
	args := []interface{}{categoryName}

	if districtID != nil {
		query += ` AND te.district_id = $2`
		args = append(args, *districtID)
	}
	query += ` ORDER BY te.created_date DESC, te.id DESC`

	return r.selectPlaces(ctx, "by_category", query, args...)
}

func (r *placeRepository) GetByID(ctx context.Context, id int64, publishedOnly bool) (*domain.Place, error) {
	query := `SELECT ` + placeColumns + placeFrom + ` WHERE te.id = $1`
	if publishedOnly {
		query += ` AND te.published = TRUE`
	}

	var row placeRow
	err := r.db.GetContext(ctx, &row, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrPlaceNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get place by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	place := row.toDomain()

	hoursQuery := `
		SELECT id, place_id, day_of_week,
			to_char(opening_time, 'HH24:MI') AS opening_time,
			to_char(closing_time, 'HH24:MI') AS closing_time
		FROM operating_hours
		WHERE place_id = $1
		ORDER BY array_position(ARRAY['Sunday','Monday','Tuesday','Wednesday','Thursday','Friday','Saturday'], day_of_week),
			opening_time`
	if err := r.db.SelectContext(ctx, &place.OperatingHours, hoursQuery, id); err != nil {
		r.logger.Error("Failed to get operating hours", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &place, nil
}

func (r *placeRepository) GetNearby(
	ctx context.Context,
	lat, lng, radiusKm float64,
	excludeID int64,
) ([]domain.Place, error) {
	query := `
		SELECT * FROM (
			SELECT ` + placeColumns + `, ` + distanceExpr(1, 2) + ` AS distance` + placeFrom + `
			WHERE te.published = TRUE AND te.id <> $4
		) p
		WHERE p.distance < $3
		ORDER BY p.distance`
	return r.selectPlaces(ctx, "nearby", query, lat, lng, radiusKm, excludeID)
}

func (r *placeRepository) GetOpenAt(ctx context.Context, day string, at domain.ClockTime) ([]domain.Place, error) {
	query := `SELECT ` + placeColumns + placeFrom + `
		WHERE te.published = TRUE
		AND EXISTS (
			SELECT 1 FROM operating_hours oh
			WHERE oh.place_id = te.id AND oh.day_of_week = $1
			AND oh.opening_time <= $2::time AND oh.closing_time >= $2::time
		)
		ORDER BY te.created_date DESC, te.id DESC`
	return r.selectPlaces(ctx, "open_at", query, day, at.String())
}

func (r *placeRepository) GetOpenWithin(
	ctx context.Context,
	day string,
	opening, closing domain.ClockTime,
) ([]domain.Place, error) {
	query := `SELECT ` + placeColumns + placeFrom + `
		WHERE te.published = TRUE
		AND EXISTS (
			SELECT 1 FROM operating_hours oh
			WHERE oh.place_id = te.id AND oh.day_of_week = $1
			AND oh.opening_time <= $2::time AND oh.closing_time >= $3::time
		)
		ORDER BY te.name`
	return r.selectPlaces(ctx, "open_within", query, day, opening.String(), closing.String())
}

func (r *placeRepository) GetBySeasonNames(ctx context.Context, seasons []string, categoryID int64) ([]domain.Place, error) {
	query := `SELECT ` + placeColumns + placeFrom + `
		WHERE te.published = TRUE AND te.category_id = $2
		AND EXISTS (
			SELECT 1 FROM seasons_relation sr JOIN seasons s ON s.id = sr.season_id
			WHERE sr.tourism_entities_id = te.id AND s.name = ANY($1)
		)
		ORDER BY te.created_date DESC, te.id DESC`
	return r.selectPlaces(ctx, "by_season_names", query, pq.Array(seasons), categoryID)
}

func (r *placeRepository) GetBySeasonID(ctx context.Context, seasonID int64) ([]domain.Place, error) {
	query := `SELECT ` + placeColumns + placeFrom + `
		WHERE te.published = TRUE
		AND EXISTS (
			SELECT 1 FROM seasons_relation sr
			WHERE sr.tourism_entities_id = te.id AND sr.season_id = $1
		)
		ORDER BY te.created_date DESC, te.id DESC`
	return r.selectPlaces(ctx, "by_season", query, seasonID)
}

func (r *placeRepository) GetByDistrictID(ctx context.Context, districtID int64) ([]domain.Place, error) {
	query := `SELECT ` + placeColumns + placeFrom + `
		WHERE te.published = TRUE AND te.district_id = $1
		ORDER BY te.created_date DESC, te.id DESC`
	return r.selectPlaces(ctx, "by_district", query, districtID)
}

func (r *placeRepository) GetByCategoryID(ctx context.Context, categoryID int64) ([]domain.Place, error) {
	query := `SELECT ` + placeColumns + placeFrom + `
		WHERE te.published = TRUE AND te.category_id = $1
		ORDER BY te.created_date DESC, te.id DESC`
	return r.selectPlaces(ctx, "by_category_id", query, categoryID)
}

func (r *placeRepository) Search(ctx context.Context, f domain.SearchFilter) ([]domain.Place, error) {
	var (
		where  = []string{"te.published = TRUE"}
		args   []interface{}
		argIdx = 1
	)
	next := func(v interface{}) string {
		args = append(args, v)
		placeholder := fmt.Sprintf("$%d", argIdx)
		argIdx++
		return placeholder
	}

	distanceCol := "NULL::double precision"
	hasPoint := f.Latitude != nil && f.Longitude != nil
	if hasPoint {
		latArg, lngArg := argIdx, argIdx+1
		next(*f.Latitude)
		next(*f.Longitude)
		distanceCol = distanceExpr(latArg, lngArg)
	}

	if q := strings.TrimSpace(f.Query); q != "" {
		p := next("%" + q + "%")
		where = append(where, fmt.Sprintf(
			"(te.name ILIKE %[1]s OR te.description ILIKE %[1]s OR c.name ILIKE %[1]s OR d.name ILIKE %[1]s)", p))
	}
	if f.CategoryID != nil {
		where = append(where, "te.category_id = "+next(*f.CategoryID))
	}
	if f.DistrictID != nil {
		where = append(where, "te.district_id = "+next(*f.DistrictID))
	}
	if f.SeasonID != nil {
		where = append(where, fmt.Sprintf(
			"te.category_id = %d AND EXISTS (SELECT 1 FROM seasons_relation sr WHERE sr.tourism_entities_id = te.id AND sr.season_id = %s)",
			domain.CategoryIDAttraction, next(*f.SeasonID)))
	}
	if f.DayOfWeek != "" && f.OpeningTime != "" && f.ClosingTime != "" {
		where = append(where, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM operating_hours oh WHERE oh.place_id = te.id AND oh.day_of_week = %s AND oh.opening_time <= %s::time AND oh.closing_time >= %s::time)",
			next(f.DayOfWeek), next(f.OpeningTime), next(f.ClosingTime)))
	}

	query := `
		SELECT * FROM (
			SELECT ` + placeColumns + `, ` + distanceCol + ` AS distance` + placeFrom + `
			WHERE ` + strings.Join(where, " AND ") + `
		) p`
	if hasPoint && f.RadiusKm != nil {
		query += " WHERE p.distance <= " + next(*f.RadiusKm)
	}
	query += " ORDER BY p.name"

	return r.selectPlaces(ctx, "search", query, args...)
}

func (r *placeRepository) ListAll(ctx context.Context) ([]domain.Place, error) {
	query := `SELECT ` + placeColumns + placeFrom + ` ORDER BY te.id DESC`
	return r.selectPlaces(ctx, "list_all", query)
}

func (r *placeRepository) SearchAll(ctx context.Context, q string) ([]domain.Place, error) {
	query := `SELECT ` + placeColumns + placeFrom + `
		WHERE te.name ILIKE $1 OR te.description ILIKE $1 OR c.name ILIKE $1 OR d.name ILIKE $1
		ORDER BY te.name`
	return r.selectPlaces(ctx, "search_all", query, "%"+strings.TrimSpace(q)+"%")
}

func (r *placeRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM tourist_entities WHERE name = $1 AND id <> $2)`, name, excludeID)
	if err != nil {
		r.logger.Error("Failed to check place name", zap.String("name", name), zap.Error(err))
		return false, errors.ErrDatabaseError
	}
	return exists, nil
}
