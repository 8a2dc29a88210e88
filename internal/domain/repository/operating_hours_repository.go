package repository

import (
	"context"

	"github.com/tourism-microservice/internal/domain"
)

// OperatingHoursRepository - построчный CRUD часов работы
type OperatingHoursRepository interface {
	List(ctx context.Context) ([]domain.OperatingHours, error)
	GetByID(ctx context.Context, id int64) (*domain.OperatingHours, error)
	ListByPlaceAndDay(ctx context.Context, placeID int64, day string) ([]domain.OperatingHours, error)
	Create(ctx context.Context, h *domain.OperatingHours) (int64, error)
	Update(ctx context.Context, id int64, h *domain.OperatingHours) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}
