package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tourism-microservice/internal/domain"
	"github.com/tourism-microservice/internal/domain/repository"
	"github.com/tourism-microservice/internal/pkg/errors"
	"github.com/tourism-microservice/internal/pkg/utils"
	"github.com/tourism-microservice/internal/usecase/dto"
)

// DefaultNearbyRadiusMeters - радиус по умолчанию для HTTP-поиска соседей
const DefaultNearbyRadiusMeters = 5000

// PlaceUseCase - чтение объектов для публичного и админского API
type PlaceUseCase struct {
	placeRepo    repository.PlaceRepository
	refRepo      repository.ReferenceRepository
	cacheRepo    repository.CacheRepository
	assetBaseURL string
	listingsTTL  time.Duration
	filtersTTL   time.Duration
	clock        utils.Clock
	logger       *zap.Logger
}

// NewPlaceUseCase - cacheRepo может быть nil, тогда листинги читаются напрямую
func NewPlaceUseCase(
	placeRepo repository.PlaceRepository,
	refRepo repository.ReferenceRepository,
	cacheRepo repository.CacheRepository,
	assetBaseURL string,
	listingsTTL time.Duration,
	filtersTTL time.Duration,
	clock utils.Clock,
	logger *zap.Logger,
) *PlaceUseCase {
	return &PlaceUseCase{
		placeRepo:    placeRepo,
		refRepo:      refRepo,
		cacheRepo:    cacheRepo,
		assetBaseURL: strings.TrimRight(assetBaseURL, "/"),
		listingsTTL:  listingsTTL,
		filtersTTL:   filtersTTL,
		clock:        clock,
		logger:       logger,
	}
}

// ListPublished - все опубликованные объекты, новые первыми
func (uc *PlaceUseCase) ListPublished(ctx context.Context) ([]domain.Place, error) {
	return uc.cached(ctx, domain.PlacesCacheKey("published"), func() ([]domain.Place, error) {
		return uc.placeRepo.GetPublished(ctx)
	})
}

// ListByCategory - опубликованные объекты категории, опционально в районе
func (uc *PlaceUseCase) ListByCategory(ctx context.Context, category string, districtID *int64) ([]domain.Place, error) {
	parts := []string{"category", category}
	if districtID != nil {
		parts = append(parts, "district", strconv.FormatInt(*districtID, 10))
	}
	return uc.cached(ctx, domain.PlacesCacheKey(parts...), func() ([]domain.Place, error) {
		return uc.placeRepo.GetPublishedByCategory(ctx, category, districtID)
	})
}

// GetPlace - детальная карточка опубликованного объекта
func (uc *PlaceUseCase) GetPlace(ctx context.Context, id int64) (*domain.Place, error) {
	return uc.getPlace(ctx, id, true)
}

// GetAnyPlace - карточка для админки, включая неопубликованные
func (uc *PlaceUseCase) GetAnyPlace(ctx context.Context, id int64) (*domain.Place, error) {
	return uc.getPlace(ctx, id, false)
}

func (uc *PlaceUseCase) getPlace(ctx context.Context, id int64, publishedOnly bool) (*domain.Place, error) {
	if id <= 0 {
		return nil, errors.ErrInvalidID
	}
	p, err := uc.placeRepo.GetByID(ctx, id, publishedOnly)
	if err != nil {
		return nil, err
	}
	uc.decorate(p)
	return p, nil
}

// Nearby - объект и опубликованные соседи в радиусе radiusMeters
func (uc *PlaceUseCase) Nearby(ctx context.Context, id int64, radiusMeters float64) (*domain.NearbyResult, error) {
	entity, err := uc.GetPlace(ctx, id)
	if err != nil {
		return nil, err
	}

	nearby, err := uc.placeRepo.GetNearby(ctx, entity.Latitude, entity.Longitude,
		utils.MetersToKm(normalizeRadius(radiusMeters)), entity.ID)
	if err != nil {
		uc.logger.Error("Failed to get nearby places", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return &domain.NearbyResult{Entity: entity, NearbyEntities: uc.decorateAll(nearby)}, nil
}

// NearbyByCoordinates - опубликованные объекты вокруг точки
func (uc *PlaceUseCase) NearbyByCoordinates(ctx context.Context, lat, lng, radiusMeters float64) ([]domain.Place, error) {
	if !utils.ValidateCoordinates(lat, lng) {
		return nil, errors.ErrInvalidCoordinates
	}
	places, err := uc.placeRepo.GetNearby(ctx, lat, lng, utils.MetersToKm(normalizeRadius(radiusMeters)), 0)
	if err != nil {
		return nil, err
	}
	return uc.decorateAll(places), nil
}

// CurrentlyOpen - объекты, открытые сейчас по местному времени
func (uc *PlaceUseCase) CurrentlyOpen(ctx context.Context) ([]domain.Place, error) {
	now := uc.clock()
	places, err := uc.placeRepo.GetOpenAt(ctx, domain.WeekdayOf(now), domain.ClockOf(now))
	if err != nil {
		return nil, err
	}
	return uc.decorateAll(places), nil
}

// RealTimeSeason - достопримечательности текущего сезона и круглогодичные
func (uc *PlaceUseCase) RealTimeSeason(ctx context.Context) (*dto.RealTimeSeasonResponse, error) {
	season := domain.SeasonForMonth(uc.clock().Month())
	names := []string{season}
	if season != domain.SeasonYearRound {
		names = append(names, domain.SeasonYearRound)
	}

	places, err := uc.placeRepo.GetBySeasonNames(ctx, names, domain.CategoryIDAttraction)
	if err != nil {
		return nil, err
	}
	return &dto.RealTimeSeasonResponse{Season: season, Places: uc.decorateAll(places)}, nil
}

// OpenWithin - объекты, работающие весь интервал [opening, closing] в день day
func (uc *PlaceUseCase) OpenWithin(ctx context.Context, day, opening, closing string) ([]domain.Place, error) {
	if !domain.IsWeekday(day) {
		return nil, errors.Validation("Invalid day_of_week")
	}
	from, err := domain.ParseClock(opening)
	if err != nil {
		return nil, errors.Validation("Invalid opening_time")
	}
	to, err := domain.ParseClock(closing)
	if err != nil {
		return nil, errors.Validation("Invalid closing_time")
	}

	places, err := uc.placeRepo.GetOpenWithin(ctx, day, from, to)
	if err != nil {
		return nil, err
	}
	return uc.decorateAll(places), nil
}

// Search - единый поиск по опубликованным объектам
func (uc *PlaceUseCase) Search(ctx context.Context, req dto.SearchRequest) ([]domain.Place, error) {
	filter := req.ToFilter()
	if filter.DayOfWeek != "" && !domain.IsWeekday(filter.DayOfWeek) {
		return nil, errors.Validation("Invalid day_of_week")
	}
	if (filter.Latitude == nil) != (filter.Longitude == nil) {
		return nil, errors.ErrInvalidCoordinates.WithMessage("Both lat and lng are required")
	}
	if filter.Latitude != nil && !utils.ValidateCoordinates(*filter.Latitude, *filter.Longitude) {
		return nil, errors.ErrInvalidCoordinates
	}

	places, err := uc.placeRepo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	return uc.decorateAll(places), nil
}

// BySeason - объекты сезона
func (uc *PlaceUseCase) BySeason(ctx context.Context, seasonID int64) ([]domain.Place, error) {
	return uc.list(func() ([]domain.Place, error) { return uc.placeRepo.GetBySeasonID(ctx, seasonID) })
}

// ByDistrict - объекты района
func (uc *PlaceUseCase) ByDistrict(ctx context.Context, districtID int64) ([]domain.Place, error) {
	return uc.list(func() ([]domain.Place, error) { return uc.placeRepo.GetByDistrictID(ctx, districtID) })
}

// ByCategory - объекты категории
func (uc *PlaceUseCase) ByCategory(ctx context.Context, categoryID int64) ([]domain.Place, error) {
	return uc.list(func() ([]domain.Place, error) { return uc.placeRepo.GetByCategoryID(ctx, categoryID) })
}

// ListAll - все объекты для админки
func (uc *PlaceUseCase) ListAll(ctx context.Context) ([]domain.Place, error) {
	return uc.list(func() ([]domain.Place, error) { return uc.placeRepo.ListAll(ctx) })
}

// SearchAll - поиск по имени среди всех объектов для админки
func (uc *PlaceUseCase) SearchAll(ctx context.Context, query string) ([]domain.Place, error) {
	return uc.list(func() ([]domain.Place, error) { return uc.placeRepo.SearchAll(ctx, strings.TrimSpace(query)) })
}

// Filters - справочники сезонов, районов и категорий
func (uc *PlaceUseCase) Filters(ctx context.Context) (*domain.Filters, error) {
	if uc.cacheRepo != nil {
		if cached, err := uc.cacheRepo.GetFilters(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	seasons, err := uc.refRepo.ListSeasons(ctx)
	if err != nil {
		return nil, err
	}
	districts, err := uc.refRepo.ListDistricts(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := uc.refRepo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	filters := &domain.Filters{Seasons: seasons, Districts: districts, Categories: categories}

	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.SetFilters(ctx, filters, uc.filtersTTL); err != nil {
			uc.logger.Warn("Failed to cache filters", zap.Error(err))
		}
	}
	return filters, nil
}

// Seasons - список сезонов
func (uc *PlaceUseCase) Seasons(ctx context.Context) ([]domain.Season, error) {
	return uc.refRepo.ListSeasons(ctx)
}

// Districts - список районов
func (uc *PlaceUseCase) Districts(ctx context.Context) ([]domain.District, error) {
	return uc.refRepo.ListDistricts(ctx)
}

// Categories - список категорий
func (uc *PlaceUseCase) Categories(ctx context.Context) ([]domain.Category, error) {
	return uc.refRepo.ListCategories(ctx)
}

// cached - листинг через кеш; ошибки кеша не ломают чтение
func (uc *PlaceUseCase) cached(ctx context.Context, key string, load func() ([]domain.Place, error)) ([]domain.Place, error) {
	if uc.cacheRepo != nil {
		places, err := uc.cacheRepo.GetPlaces(ctx, key)
		if err != nil {
			uc.logger.Warn("Listing cache unavailable", zap.String("key", key), zap.Error(err))
		} else if places != nil {
			return places, nil
		}
	}

	places, err := uc.list(load)
	if err != nil {
		return nil, err
	}

	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.SetPlaces(ctx, key, places, uc.listingsTTL); err != nil {
			uc.logger.Warn("Failed to cache listing", zap.String("key", key), zap.Error(err))
		}
	}
	return places, nil
}

func (uc *PlaceUseCase) list(load func() ([]domain.Place, error)) ([]domain.Place, error) {
	places, err := load()
	if err != nil {
		return nil, err
	}
	return uc.decorateAll(places), nil
}

// decorate заполняет публичные адреса изображений
func (uc *PlaceUseCase) decorate(p *domain.Place) {
	for i := range p.Images {
		p.Images[i].ImageURL = domain.ImageURL(uc.assetBaseURL, p.Images[i].ImagePath)
	}
	if p.Images == nil {
		p.Images = []domain.Image{}
	}
}

func (uc *PlaceUseCase) decorateAll(places []domain.Place) []domain.Place {
	if places == nil {
		return []domain.Place{}
	}
	for i := range places {
		uc.decorate(&places[i])
	}
	return places
}

// normalizeRadius - некорректный радиус заменяется значением по умолчанию
func normalizeRadius(meters float64) float64 {
	if meters <= 0 {
		return DefaultNearbyRadiusMeters
	}
	return meters
}
