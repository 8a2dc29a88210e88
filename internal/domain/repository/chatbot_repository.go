package repository

import (
	"context"

	"github.com/tourism-microservice/internal/domain"
)

// ChatbotRepository - запросы чат-бота; пустая категория означает все категории
type ChatbotRepository interface {
	// FindNearby - объекты ближе radiusKm по возрастанию расстояния
	FindNearby(ctx context.Context, lat, lng, radiusKm float64, category string, limit int) ([]domain.PlaceSummary, error)

	// FindClosingBetween - объекты, закрывающиеся сегодня в окне [from, to]
	FindClosingBetween(ctx context.Context, category, day string, from, to domain.ClockTime) ([]domain.PlaceSummary, error)

	// FindOpeningBetween - объекты, открывающиеся сегодня в окне [from, to]
	FindOpeningBetween(ctx context.Context, category, day string, from, to domain.ClockTime) ([]domain.PlaceSummary, error)

	// FindOpenAt - объекты, открытые в момент at
	FindOpenAt(ctx context.Context, category, day string, at domain.ClockTime) ([]domain.PlaceSummary, error)

	// FindByCategory - объекты категории по точному имени
	FindByCategory(ctx context.Context, category string) ([]domain.PlaceSummary, error)
}
