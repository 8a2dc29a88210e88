package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/tourism-microservice/internal/domain"
	"github.com/tourism-microservice/internal/domain/repository"
	"github.com/tourism-microservice/internal/pkg/errors"
	"github.com/tourism-microservice/internal/pkg/utils"
	"github.com/tourism-microservice/internal/repository/postgres/testhelpers"
)

// Центр поиска в фикстурах
const (
	centerLat = 17.4000
	centerLng = 104.7800
)

// PlaceRepositorySuite tests place reads and chatbot queries with real database
type PlaceRepositorySuite struct {
	suite.Suite
	testDB  *testhelpers.TestDB
	places  repository.PlaceRepository
	chatbot repository.ChatbotRepository
	writer  repository.PlaceWriter
	ctx     context.Context
}

// SetupSuite runs once before all tests
func (s *PlaceRepositorySuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())
	s.ctx = context.Background()

	err := testhelpers.ApplyMigrations(s.testDB.DB.DB, "../../../migrations")
	s.Require().NoError(err, "Failed to apply migrations")

	s.Require().NoError(s.testDB.Cleanup(s.ctx))

	err = testhelpers.LoadFixtures(s.testDB.DB.DB, "testdata/fixtures", []string{"places.sql"})
	s.Require().NoError(err, "Failed to load fixtures")

	s.places = testhelpers.NewPlaceRepositoryForTest(s.testDB.DB, s.testDB.Logger)
	s.chatbot = testhelpers.NewChatbotRepositoryForTest(s.testDB.DB, s.testDB.Logger)
	s.writer = testhelpers.NewPlaceWriterForTest(s.testDB.DB, s.testDB.Logger)
}

// TearDownSuite runs once after all tests
func (s *PlaceRepositorySuite) TearDownSuite() {
	if s.testDB != nil {
		_ = s.testDB.Cleanup(s.ctx)
		s.testDB.Close()
	}
}

func ids(items []domain.PlaceSummary) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func placeIDs(items []domain.Place) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

// ============================================================================
// Chatbot geo radius
// ============================================================================

func (s *PlaceRepositorySuite) TestFindNearby_CategoryWithinRadius() {
	rows, err := s.chatbot.FindNearby(s.ctx, centerLat, centerLng, 10, domain.CategoryAttraction, 10)
	s.NoError(err)
	// 103 дальше 10 км
	s.Equal([]int64{101, 102}, ids(rows))
	for _, r := range rows {
		s.Less(r.Distance, 10.0)
	}
	s.LessOrEqual(rows[0].Distance, rows[1].Distance)
}

func (s *PlaceRepositorySuite) TestFindNearby_AllCategoriesSkipsUnpublished() {
	rows, err := s.chatbot.FindNearby(s.ctx, centerLat, centerLng, 10, "", 10)
	s.NoError(err)
	s.Equal([]int64{104, 106, 101, 102}, ids(rows))
	s.Equal(domain.CategoryAccommodation, rows[0].CategoryName)
}

func (s *PlaceRepositorySuite) TestFindNearby_Limit() {
	rows, err := s.chatbot.FindNearby(s.ctx, centerLat, centerLng, 10, "", 2)
	s.NoError(err)
	s.Equal([]int64{104, 106}, ids(rows))
}

func (s *PlaceRepositorySuite) TestFindNearby_SamePointHasZeroDistance() {
	rows, err := s.chatbot.FindNearby(s.ctx, 17.4050, 104.7800, 10, domain.CategoryAttraction, 10)
	s.NoError(err)
	s.Require().NotEmpty(rows)
	s.Equal(int64(101), rows[0].ID)
	s.InDelta(0, rows[0].Distance, 0.001)
}

func (s *PlaceRepositorySuite) TestFindOpenAt() {
	at, _ := domain.ParseClock("12:00")
	rows, err := s.chatbot.FindOpenAt(s.ctx, domain.CategoryAttraction, domain.Monday, at)
	s.NoError(err)
	s.Equal([]int64{101}, ids(rows))
	s.Equal("17:00", rows[0].BoundaryTime)
}

func (s *PlaceRepositorySuite) TestFindClosingBetween() {
	from, _ := domain.ParseClock("17:10")
	to, _ := domain.ParseClock("17:40")
	rows, err := s.chatbot.FindClosingBetween(s.ctx, domain.CategorySouvenirShop, domain.Monday, from, to)
	s.NoError(err)
	s.Equal([]int64{106}, ids(rows))
	s.Equal("17:30", rows[0].BoundaryTime)
}

func (s *PlaceRepositorySuite) TestFindOpeningBetween_WrapsMidnight() {
	from, _ := domain.ParseClock("23:50")
	to, _ := domain.ParseClock("00:20")
	rows, err := s.chatbot.FindOpeningBetween(s.ctx, domain.CategoryAccommodation, domain.Monday, from, to)
	s.NoError(err)
	s.Equal([]int64{104}, ids(rows))
}

func (s *PlaceRepositorySuite) TestFindByCategory() {
	rows, err := s.chatbot.FindByCategory(s.ctx, domain.CategoryAttraction)
	s.NoError(err)
	s.Equal([]int64{101, 102, 103}, ids(rows))
}

// ============================================================================
// Place reads
// ============================================================================

func (s *PlaceRepositorySuite) TestGetByID_WithChildren() {
	place, err := s.places.GetByID(s.ctx, 101, true)
	s.NoError(err)
	s.Require().NotNil(place)
	s.Equal("พระธาตุพนม", place.Name)
	s.Len(place.Images, 2)
	s.Equal([]string{domain.SeasonYearRound}, place.Seasons)
	s.Require().Len(place.OperatingHours, 2)
	s.Equal(domain.Sunday, place.OperatingHours[0].DayOfWeek)
	s.Equal("08:00", place.OperatingHours[0].OpeningTime)
}

func (s *PlaceRepositorySuite) TestGetByID_UnpublishedHidden() {
	_, err := s.places.GetByID(s.ctx, 105, true)
	s.Equal(errors.ErrPlaceNotFound, err)

	place, err := s.places.GetByID(s.ctx, 105, false)
	s.NoError(err)
	s.False(place.Published)
}

func (s *PlaceRepositorySuite) TestGetNearby_ExcludesSelf() {
	places, err := s.places.GetNearby(s.ctx, 17.4050, 104.7800, 5, 101)
	s.NoError(err)
	s.Equal([]int64{106, 104, 102}, placeIDs(places))
	for _, p := range places {
		s.Require().NotNil(p.Distance)
		s.InDelta(utils.HaversineDistance(17.4050, 104.7800, p.Latitude, p.Longitude), *p.Distance, 0.01)
	}
}

func (s *PlaceRepositorySuite) TestGetOpenAt() {
	at, _ := domain.ParseClock("12:00")
	places, err := s.places.GetOpenAt(s.ctx, domain.Monday, at)
	s.NoError(err)
	s.ElementsMatch([]int64{101, 104, 106}, placeIDs(places))
}

func (s *PlaceRepositorySuite) TestGetBySeasonNames() {
	places, err := s.places.GetBySeasonNames(s.ctx,
		[]string{domain.SeasonRainy, domain.SeasonYearRound}, domain.CategoryIDAttraction)
	s.NoError(err)
	s.Equal([]int64{101}, placeIDs(places))
}

func (s *PlaceRepositorySuite) TestSearch() {
	q := domain.SearchFilter{Query: "ริม"}
	places, err := s.places.Search(s.ctx, q)
	s.NoError(err)
	s.ElementsMatch([]int64{102, 104}, placeIDs(places))

	lat, lng, radius := centerLat, centerLng, 1.0
	places, err = s.places.Search(s.ctx, domain.SearchFilter{Latitude: &lat, Longitude: &lng, RadiusKm: &radius})
	s.NoError(err)
	s.ElementsMatch([]int64{101, 104, 106}, placeIDs(places))

	district := int64(2)
	places, err = s.places.Search(s.ctx, domain.SearchFilter{DistrictID: &district})
	s.NoError(err)
	s.ElementsMatch([]int64{103, 106}, placeIDs(places))
}

func (s *PlaceRepositorySuite) TestExistsByName() {
	exists, err := s.places.ExistsByName(s.ctx, "พระธาตุพนม", 0)
	s.NoError(err)
	s.True(exists)

	exists, err = s.places.ExistsByName(s.ctx, "พระธาตุพนม", 101)
	s.NoError(err)
	s.False(exists)
}

// ============================================================================
// Writer on PostgreSQL
// ============================================================================

func (s *PlaceRepositorySuite) TestWriter_CreateAndDuplicate() {
	hours, err := domain.ValidateHours([]domain.HoursEntry{
		{DayOfWeek: domain.DayGroupEveryday, OpeningTime: "08:00", ClosingTime: "18:00"},
	})
	s.Require().NoError(err)

	rec := &domain.PlaceRecord{
		Name: "Test Falls", Description: "x", Location: "y",
		Latitude: 17.4, Longitude: 104.7, DistrictID: 1, CategoryID: 1,
		Hours: hours,
	}
	id, err := s.writer.Create(s.ctx, rec)
	s.Require().NoError(err)

	n, err := testhelpers.CountHours(s.testDB.DB.DB, id)
	s.NoError(err)
	s.Equal(7, n)

	_, err = s.writer.Create(s.ctx, rec)
	s.Equal(errors.ErrDuplicatePlaceName, err)
}

func TestPlaceRepository(t *testing.T) {
	suite.Run(t, new(PlaceRepositorySuite))
}
