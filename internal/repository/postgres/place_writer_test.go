package postgres

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/tourism-microservice/internal/domain"
	"github.com/tourism-microservice/internal/domain/repository"
	"github.com/tourism-microservice/internal/pkg/errors"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// PlaceWriterSuite проверяет транзакционную запись на встроенной SQLite
type PlaceWriterSuite struct {
	suite.Suite
	db     *sqlx.DB
	writer repository.PlaceWriter
	ctx    context.Context
}

func (s *PlaceWriterSuite) SetupTest() {
	path := filepath.Join(s.T().TempDir(), "tourism.db")
	db, err := sqlx.Open("sqlite", path)
	s.Require().NoError(err)

	schema, err := os.ReadFile("testdata/sqlite_schema.sql")
	s.Require().NoError(err)
	_, err = db.Exec(string(schema))
	s.Require().NoError(err)

	s.db = db
	s.writer = NewPlaceWriter(NewDBForTest(db, zap.NewNop()))
	s.ctx = context.Background()
}

func (s *PlaceWriterSuite) TearDownTest() {
	s.db.Close()
}

func (s *PlaceWriterSuite) record(name string, hours []domain.HoursEntry) *domain.PlaceRecord {
	daily, err := domain.ValidateHours(hours)
	s.Require().NoError(err)
	return &domain.PlaceRecord{
		Name:        name,
		Description: "x",
		Location:    "y",
		Latitude:    17.4,
		Longitude:   104.7,
		DistrictID:  1,
		CategoryID:  1,
		Published:   true,
		ImagePaths:  []string{"a.jpg", "b.jpg"},
		SeasonIDs:   []int64{1, 4},
		Hours:       daily,
	}
}

func (s *PlaceWriterSuite) count(query string, args ...interface{}) int {
	var n int
	s.Require().NoError(s.db.Get(&n, query, args...))
	return n
}

func (s *PlaceWriterSuite) TestCreateExpandsEveryday() {
	rec := s.record("Test Falls", []domain.HoursEntry{
		{DayOfWeek: "Everyday", OpeningTime: "08:00", ClosingTime: "18:00"},
	})

	id, err := s.writer.Create(s.ctx, rec)
	s.Require().NoError(err)
	s.Greater(id, int64(0))

	var rows []domain.OperatingHours
	s.Require().NoError(s.db.Select(&rows,
		`SELECT day_of_week, opening_time, closing_time FROM operating_hours WHERE place_id = ? ORDER BY id`, id))
	s.Require().Len(rows, 7)
	for i, r := range rows {
		s.Equal(domain.CanonicalWeek[i], r.DayOfWeek)
		s.Equal("08:00:00", r.OpeningTime)
		s.Equal("18:00:00", r.ClosingTime)
	}

	s.Equal(2, s.count(`SELECT COUNT(*) FROM tourism_entities_images WHERE tourism_entities_id = ?`, id))
	s.Equal(2, s.count(`SELECT COUNT(*) FROM seasons_relation WHERE tourism_entities_id = ?`, id))
}

func (s *PlaceWriterSuite) TestCreateExceptHolidays() {
	rec := s.record("Weekday Museum", []domain.HoursEntry{
		{DayOfWeek: "Except Holidays", OpeningTime: "09:00", ClosingTime: "16:30"},
	})

	id, err := s.writer.Create(s.ctx, rec)
	s.Require().NoError(err)

	var days []string
	s.Require().NoError(s.db.Select(&days, `SELECT day_of_week FROM operating_hours WHERE place_id = ? ORDER BY id`, id))
	s.Equal([]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}, days)
}

func (s *PlaceWriterSuite) TestCreateDuplicateName() {
	_, err := s.writer.Create(s.ctx, s.record("Test Falls", nil))
	s.Require().NoError(err)

	_, err = s.writer.Create(s.ctx, s.record("Test Falls", nil))
	s.Require().Error(err)
	s.Equal(errors.ErrDuplicatePlaceName, err)

	s.Equal(1, s.count(`SELECT COUNT(*) FROM tourist_entities WHERE name = ?`, "Test Falls"))
	s.Equal(2, s.count(`SELECT COUNT(*) FROM tourism_entities_images`))
}

func (s *PlaceWriterSuite) TestUpdateIsIdempotent() {
	id, err := s.writer.Create(s.ctx, s.record("Old Name", []domain.HoursEntry{
		{DayOfWeek: "Monday", OpeningTime: "10:00", ClosingTime: "12:00"},
	}))
	s.Require().NoError(err)

	upd := s.record("New Name", []domain.HoursEntry{
		{DayOfWeek: "Everyday", OpeningTime: "08:00", ClosingTime: "18:00"},
	})
	upd.ImagePaths = []string{"c.jpg"}
	upd.SeasonIDs = []int64{2}

	for i := 0; i < 2; i++ {
		affected, err := s.writer.Update(s.ctx, id, upd)
		s.Require().NoError(err)
		s.Equal(int64(1), affected)
	}

	s.Equal(7, s.count(`SELECT COUNT(*) FROM operating_hours WHERE place_id = ?`, id))
	s.Equal(0, s.count(`SELECT COUNT(*) FROM operating_hours WHERE place_id = ? AND opening_time = '10:00:00'`, id))

	var images []string
	s.Require().NoError(s.db.Select(&images, `SELECT image_path FROM tourism_entities_images WHERE tourism_entities_id = ?`, id))
	s.Equal([]string{"c.jpg"}, images)

	var seasons []int64
	s.Require().NoError(s.db.Select(&seasons, `SELECT season_id FROM seasons_relation WHERE tourism_entities_id = ?`, id))
	s.Equal([]int64{2}, seasons)

	var name string
	s.Require().NoError(s.db.Get(&name, `SELECT name FROM tourist_entities WHERE id = ?`, id))
	s.Equal("New Name", name)
}

func (s *PlaceWriterSuite) TestUpdateWithoutChildrenKeepsThem() {
	id, err := s.writer.Create(s.ctx, s.record("Keeper", []domain.HoursEntry{
		{DayOfWeek: "Sunday", OpeningTime: "10:00", ClosingTime: "12:00"},
	}))
	s.Require().NoError(err)

	upd := s.record("Keeper", nil)
	upd.ImagePaths = nil
	upd.SeasonIDs = nil
	upd.Hours = nil

	_, err = s.writer.Update(s.ctx, id, upd)
	s.Require().NoError(err)

	s.Equal(2, s.count(`SELECT COUNT(*) FROM tourism_entities_images WHERE tourism_entities_id = ?`, id))
	s.Equal(2, s.count(`SELECT COUNT(*) FROM seasons_relation WHERE tourism_entities_id = ?`, id))
	s.Equal(1, s.count(`SELECT COUNT(*) FROM operating_hours WHERE place_id = ?`, id))
}

func (s *PlaceWriterSuite) TestUpdateMissingPlace() {
	affected, err := s.writer.Update(s.ctx, 999, s.record("Ghost", nil))
	s.Require().NoError(err)
	s.Equal(int64(0), affected)
	s.Equal(0, s.count(`SELECT COUNT(*) FROM tourism_entities_images`))
}

func (s *PlaceWriterSuite) TestCreateRollsBackOnFailure() {
	_, err := s.db.Exec(`DROP TABLE operating_hours`)
	s.Require().NoError(err)

	_, err = s.writer.Create(s.ctx, s.record("Broken", []domain.HoursEntry{
		{DayOfWeek: "Monday", OpeningTime: "08:00", ClosingTime: "18:00"},
	}))
	s.Require().Error(err)

	appErr, ok := errors.As(err)
	s.Require().True(ok)
	s.Equal(errors.CodeTransactionFailure, appErr.Code)
	s.Equal(500, appErr.StatusCode)

	s.Equal(0, s.count(`SELECT COUNT(*) FROM tourist_entities`))
	s.Equal(0, s.count(`SELECT COUNT(*) FROM tourism_entities_images`))
	s.Equal(0, s.count(`SELECT COUNT(*) FROM seasons_relation`))
}

func (s *PlaceWriterSuite) TestDeleteRemovesChildren() {
	id, err := s.writer.Create(s.ctx, s.record("Temporary", []domain.HoursEntry{
		{DayOfWeek: "Everyday", OpeningTime: "08:00", ClosingTime: "18:00"},
	}))
	s.Require().NoError(err)

	affected, err := s.writer.Delete(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(int64(1), affected)

	s.Equal(0, s.count(`SELECT COUNT(*) FROM operating_hours`))
	s.Equal(0, s.count(`SELECT COUNT(*) FROM tourism_entities_images`))

	affected, err = s.writer.Delete(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(int64(0), affected)
}

func TestPlaceWriter(t *testing.T) {
	suite.Run(t, new(PlaceWriterSuite))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, isUniqueViolation(assert.AnError))
	assert.True(t, isUniqueViolation(errUnique("UNIQUE constraint failed: tourist_entities.name")))
}

type errUnique string

func (e errUnique) Error() string { return string(e) }

func TestTranslateKeepsAppErrorShape(t *testing.T) {
	w := &placeWriter{logger: zap.NewNop()}
	err := w.translate(errUnique("UNIQUE constraint failed: x"), "create")
	require.Equal(t, errors.ErrDuplicatePlaceName, err)
}
