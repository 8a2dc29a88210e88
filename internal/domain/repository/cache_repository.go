package repository

import (
	"context"
	"time"

	"github.com/tourism-microservice/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// DeleteByPattern удаляет все ключи по шаблону (SCAN + DEL)
	DeleteByPattern(ctx context.Context, pattern string) (int64, error)

	// Exists проверяет существование ключа
	Exists(ctx context.Context, key string) (bool, error)

	// GetFilters получает справочники фильтров из кеша
	GetFilters(ctx context.Context) (*domain.Filters, error)

	// SetFilters сохраняет справочники фильтров в кеше
	SetFilters(ctx context.Context, filters *domain.Filters, ttl time.Duration) error

	// GetSuggestions получает активные подсказки из кеша
	GetSuggestions(ctx context.Context) ([]string, error)

	// SetSuggestions сохраняет активные подсказки в кеше
	SetSuggestions(ctx context.Context, suggestions []string, ttl time.Duration) error

	// GetPlaces получает список объектов по ключу листинга
	GetPlaces(ctx context.Context, key string) ([]domain.Place, error)

	// SetPlaces сохраняет список объектов по ключу листинга
	SetPlaces(ctx context.Context, key string, places []domain.Place, ttl time.Duration) error
}
