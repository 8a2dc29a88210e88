package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/tourism-microservice/internal/domain"
)

// MockChatbotRepository is a mock of ChatbotRepository
type MockChatbotRepository struct {
	mock.Mock
}

func (m *MockChatbotRepository) FindNearby(ctx context.Context, lat, lng, radiusKm float64, category string, limit int) ([]domain.PlaceSummary, error) {
	args := m.Called(ctx, lat, lng, radiusKm, category, limit)
	return summaries(args.Get(0)), args.Error(1)
}

func (m *MockChatbotRepository) FindClosingBetween(ctx context.Context, category, day string, from, to domain.ClockTime) ([]domain.PlaceSummary, error) {
	args := m.Called(ctx, category, day, from, to)
	return summaries(args.Get(0)), args.Error(1)
}

func (m *MockChatbotRepository) FindOpeningBetween(ctx context.Context, category, day string, from, to domain.ClockTime) ([]domain.PlaceSummary, error) {
	args := m.Called(ctx, category, day, from, to)
	return summaries(args.Get(0)), args.Error(1)
}

func (m *MockChatbotRepository) FindOpenAt(ctx context.Context, category, day string, at domain.ClockTime) ([]domain.PlaceSummary, error) {
	args := m.Called(ctx, category, day, at)
	return summaries(args.Get(0)), args.Error(1)
}

func (m *MockChatbotRepository) FindByCategory(ctx context.Context, category string) ([]domain.PlaceSummary, error) {
	args := m.Called(ctx, category)
	return summaries(args.Get(0)), args.Error(1)
}

func summaries(v interface{}) []domain.PlaceSummary {
	if v == nil {
		return nil
	}
	return v.([]domain.PlaceSummary)
}

func places(v interface{}) []domain.Place {
	if v == nil {
		return nil
	}
	return v.([]domain.Place)
}

// MockPlacesSearchRepository is a mock of PlacesSearchRepository
type MockPlacesSearchRepository struct {
	mock.Mock
}

func (m *MockPlacesSearchRepository) TextSearch(ctx context.Context, query string) ([]domain.ExternalPlace, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExternalPlace), args.Error(1)
}

// MockCompletionRepository is a mock of CompletionRepository
type MockCompletionRepository struct {
	mock.Mock
}

func (m *MockCompletionRepository) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// MockPlaceRepository is a mock of PlaceRepository
type MockPlaceRepository struct {
	mock.Mock
}

func (m *MockPlaceRepository) GetPublished(ctx context.Context) ([]domain.Place, error) {
	args := m.Called(ctx)
	return places(args.Get(0)), args.Error(1)
}

func (m *MockPlaceRepository) GetPublishedByCategory(ctx context.Context, categoryName string, districtID *int64) ([]domain.Place, error) {
	args := m.Called(ctx, categoryName, districtID)
	return places(args.Get(0)), args.Error(1)
}

func (m *MockPlaceRepository) GetByID(ctx context.Context, id int64, publishedOnly bool) (*domain.Place, error) {
	args := m.Called(ctx, id, publishedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Place), args.Error(1)
}

func (m *MockPlaceRepository) GetNearby(ctx context.Context, lat, lng, radiusKm float64, excludeID int64) ([]domain.Place, error) {
	args := m.Called(ctx, lat, lng, radiusKm, excludeID)
	return places(args.Get(0)), args.Error(1)
}

func (m *MockPlaceRepository) GetOpenAt(ctx context.Context, day string, at domain.ClockTime) ([]domain.Place, error) {
	args := m.Called(ctx, day, at)
	return places(args.Get(0)), args.Error(1)
}

func (m *MockPlaceRepository) GetOpenWithin(ctx context.Context, day string, opening, closing domain.ClockTime) ([]domain.Place, error) {
	args := m.Called(ctx, day, opening, closing)
	return places(args.Get(0)), args.Error(1)
}

func (m *MockPlaceRepository) GetBySeasonNames(ctx context.Context, seasons []string, categoryID int64) ([]domain.Place, error) {
	args := m.Called(ctx, seasons, categoryID)
	return places(args.Get(0)), args.Error(1)
}

func (m *MockPlaceRepository) GetBySeasonID(ctx context.Context, seasonID int64) ([]domain.Place, error) {
	args := m.Called(ctx, seasonID)
	return places(args.Get(0)), args.Error(1)
}

func (m *MockPlaceRepository) GetByDistrictID(ctx context.Context, districtID int64) ([]domain.Place, error) {
	args := m.Called(ctx, districtID)
	return places(args.Get(0)), args.Error(1)
}

func (m *MockPlaceRepository) GetByCategoryID(ctx context.Context, categoryID int64) ([]domain.Place, error) {
	args := m.Called(ctx, categoryID)
	return places(args.Get(0)), args.Error(1)
}

func (m *MockPlaceRepository) Search(ctx context.Context, filter domain.SearchFilter) ([]domain.Place, error) {
	args := m.Called(ctx, filter)
	return places(args.Get(0)), args.Error(1)
}

func (m *MockPlaceRepository) ListAll(ctx context.Context) ([]domain.Place, error) {
	args := m.Called(ctx)
	return places(args.Get(0)), args.Error(1)
}

func (m *MockPlaceRepository) SearchAll(ctx context.Context, query string) ([]domain.Place, error) {
	args := m.Called(ctx, query)
	return places(args.Get(0)), args.Error(1)
}

func (m *MockPlaceRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

// MockPlaceWriter is a mock of PlaceWriter
type MockPlaceWriter struct {
	mock.Mock
}

func (m *MockPlaceWriter) Create(ctx context.Context, rec *domain.PlaceRecord) (int64, error) {
	args := m.Called(ctx, rec)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPlaceWriter) Update(ctx context.Context, id int64, rec *domain.PlaceRecord) (int64, error) {
	args := m.Called(ctx, id, rec)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPlaceWriter) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockReferenceRepository is a mock of ReferenceRepository
type MockReferenceRepository struct {
	mock.Mock
}

func (m *MockReferenceRepository) GetDistrictIDByName(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReferenceRepository) GetCategoryIDByName(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReferenceRepository) ListSeasons(ctx context.Context) ([]domain.Season, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Season), args.Error(1)
}

func (m *MockReferenceRepository) ListDistricts(ctx context.Context) ([]domain.District, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.District), args.Error(1)
}

func (m *MockReferenceRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

// MockOperatingHoursRepository is a mock of OperatingHoursRepository
type MockOperatingHoursRepository struct {
	mock.Mock
}

func (m *MockOperatingHoursRepository) List(ctx context.Context) ([]domain.OperatingHours, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OperatingHours), args.Error(1)
}

func (m *MockOperatingHoursRepository) GetByID(ctx context.Context, id int64) (*domain.OperatingHours, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OperatingHours), args.Error(1)
}

func (m *MockOperatingHoursRepository) ListByPlaceAndDay(ctx context.Context, placeID int64, day string) ([]domain.OperatingHours, error) {
	args := m.Called(ctx, placeID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OperatingHours), args.Error(1)
}

func (m *MockOperatingHoursRepository) Create(ctx context.Context, h *domain.OperatingHours) (int64, error) {
	args := m.Called(ctx, h)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOperatingHoursRepository) Update(ctx context.Context, id int64, h *domain.OperatingHours) (int64, error) {
	args := m.Called(ctx, id, h)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOperatingHoursRepository) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockSuggestionRepository is a mock of SuggestionRepository
type MockSuggestionRepository struct {
	mock.Mock
}

func (m *MockSuggestionRepository) ListActiveTexts(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSuggestionRepository) List(ctx context.Context) ([]domain.ChatbotSuggestion, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChatbotSuggestion), args.Error(1)
}

func (m *MockSuggestionRepository) GetByID(ctx context.Context, id int64) (*domain.ChatbotSuggestion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChatbotSuggestion), args.Error(1)
}

func (m *MockSuggestionRepository) Exists(ctx context.Context, category, text string, excludeID int64) (bool, error) {
	args := m.Called(ctx, category, text, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSuggestionRepository) Create(ctx context.Context, s *domain.ChatbotSuggestion) (int64, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSuggestionRepository) Update(ctx context.Context, id int64, s *domain.ChatbotSuggestion) (int64, error) {
	args := m.Called(ctx, id, s)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSuggestionRepository) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockCacheRepository) DeleteByPattern(ctx context.Context, pattern string) (int64, error) {
	args := m.Called(ctx, pattern)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) GetFilters(ctx context.Context) (*domain.Filters, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Filters), args.Error(1)
}

func (m *MockCacheRepository) SetFilters(ctx context.Context, filters *domain.Filters, ttl time.Duration) error {
	return m.Called(ctx, filters, ttl).Error(0)
}

func (m *MockCacheRepository) GetSuggestions(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCacheRepository) SetSuggestions(ctx context.Context, suggestions []string, ttl time.Duration) error {
	return m.Called(ctx, suggestions, ttl).Error(0)
}

func (m *MockCacheRepository) GetPlaces(ctx context.Context, key string) ([]domain.Place, error) {
	args := m.Called(ctx, key)
	return places(args.Get(0)), args.Error(1)
}

func (m *MockCacheRepository) SetPlaces(ctx context.Context, key string, p []domain.Place, ttl time.Duration) error {
	return m.Called(ctx, key, p, ttl).Error(0)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	return m.Called(ctx, stream, group, messageID).Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	return m.Called(ctx, stream, group).Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	return m.Called(ctx, stream, data).Error(0)
}
