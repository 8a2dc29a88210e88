package repository

import (
	"context"

	"github.com/tourism-microservice/internal/domain"
)

// PlacesSearchRepository - внешний текстовый поиск мест
type PlacesSearchRepository interface {
	TextSearch(ctx context.Context, query string) ([]domain.ExternalPlace, error)
}

// CompletionRepository - генерация ответа языковой моделью
type CompletionRepository interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
