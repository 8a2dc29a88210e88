package repository

import (
	"context"

	"github.com/tourism-microservice/internal/domain"
)

// ReferenceRepository - справочники: районы, категории, сезоны
type ReferenceRepository interface {
	GetDistrictIDByName(ctx context.Context, name string) (int64, error)
	GetCategoryIDByName(ctx context.Context, name string) (int64, error)
	ListSeasons(ctx context.Context) ([]domain.Season, error)
	ListDistricts(ctx context.Context) ([]domain.District, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}
