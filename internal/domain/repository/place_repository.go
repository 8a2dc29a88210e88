package repository

import (
	"context"

	"github.com/tourism-microservice/internal/domain"
)

// PlaceRepository определяет методы чтения туристических объектов
type PlaceRepository interface {
	// GetPublished возвращает все опубликованные объекты, новые первыми
	GetPublished(ctx context.Context) ([]domain.Place, error)

	// GetPublishedByCategory возвращает опубликованные объекты категории, опционально в районе
	GetPublishedByCategory(ctx context.Context, categoryName string, districtID *int64) ([]domain.Place, error)

	// GetByID возвращает объект с изображениями, сезонами и часами работы
	GetByID(ctx context.Context, id int64, publishedOnly bool) (*domain.Place, error)

	// GetNearby возвращает опубликованные объекты в радиусе, исключая excludeID
	GetNearby(ctx context.Context, lat, lng, radiusKm float64, excludeID int64) ([]domain.Place, error)

	// GetOpenAt возвращает объекты, открытые в день day во время at
	GetOpenAt(ctx context.Context, day string, at domain.ClockTime) ([]domain.Place, error)

	// GetOpenWithin возвращает объекты, работающие в течение всего окна
	GetOpenWithin(ctx context.Context, day string, opening, closing domain.ClockTime) ([]domain.Place, error)

	// GetBySeasonNames возвращает объекты категории, относящиеся к одному из сезонов
	GetBySeasonNames(ctx context.Context, seasons []string, categoryID int64) ([]domain.Place, error)

	// GetBySeasonID возвращает объекты сезона
	GetBySeasonID(ctx context.Context, seasonID int64) ([]domain.Place, error)

	// GetByDistrictID возвращает объекты района
	GetByDistrictID(ctx context.Context, districtID int64) ([]domain.Place, error)

	// GetByCategoryID возвращает объекты категории
	GetByCategoryID(ctx context.Context, categoryID int64) ([]domain.Place, error)

	// Search - единый поиск по фильтрам
	Search(ctx context.Context, filter domain.SearchFilter) ([]domain.Place, error)

	// ListAll возвращает все объекты, включая неопубликованные
	ListAll(ctx context.Context) ([]domain.Place, error)

	// SearchAll ищет по имени среди всех объектов
	SearchAll(ctx context.Context, query string) ([]domain.Place, error)

	// ExistsByName проверяет занятость имени; excludeID исключает сам объект
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
}

// PlaceWriter - атомарная запись объекта вместе с дочерними строками
type PlaceWriter interface {
	// Create вставляет объект и возвращает его id
	Create(ctx context.Context, rec *domain.PlaceRecord) (int64, error)

	// Update заменяет объект и его дочерние строки, возвращает число затронутых строк
	Update(ctx context.Context, id int64, rec *domain.PlaceRecord) (int64, error)

	// Delete удаляет объект вместе с дочерними строками
	Delete(ctx context.Context, id int64) (int64, error)
}
