package repository

import (
	"context"

	"github.com/tourism-microservice/internal/domain"
)

// SuggestionRepository - подсказки чат-бота
type SuggestionRepository interface {
	// ListActiveTexts возвращает тексты активных подсказок, новые первыми
	ListActiveTexts(ctx context.Context) ([]string, error)
	List(ctx context.Context) ([]domain.ChatbotSuggestion, error)
	GetByID(ctx context.Context, id int64) (*domain.ChatbotSuggestion, error)
	// Exists проверяет пару (категория, текст); excludeID исключает саму подсказку
	Exists(ctx context.Context, category, text string, excludeID int64) (bool, error)
	Create(ctx context.Context, s *domain.ChatbotSuggestion) (int64, error)
	Update(ctx context.Context, id int64, s *domain.ChatbotSuggestion) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}
