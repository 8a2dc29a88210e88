package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tourism-microservice/internal/domain"
	"github.com/tourism-microservice/internal/domain/repository"
	"github.com/tourism-microservice/internal/pkg/errors"
	"github.com/tourism-microservice/internal/usecase/dto"
)

// OperatingHoursUseCase - построчный CRUD часов работы с общей проверкой
type OperatingHoursUseCase struct {
	hoursRepo repository.OperatingHoursRepository
	logger    *zap.Logger
}

func NewOperatingHoursUseCase(hoursRepo repository.OperatingHoursRepository, logger *zap.Logger) *OperatingHoursUseCase {
	return &OperatingHoursUseCase{hoursRepo: hoursRepo, logger: logger}
}

func (uc *OperatingHoursUseCase) List(ctx context.Context) ([]domain.OperatingHours, error) {
	hours, err := uc.hoursRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if hours == nil {
		hours = []domain.OperatingHours{}
	}
	return hours, nil
}

func (uc *OperatingHoursUseCase) Get(ctx context.Context, id int64) (*domain.OperatingHours, error) {
	return uc.hoursRepo.GetByID(ctx, id)
}

// Create добавляет одну строку; пересечение с окнами того же дня даёт 409
func (uc *OperatingHoursUseCase) Create(ctx context.Context, req dto.HoursRequest) (int64, error) {
	h, err := uc.check(ctx, req, 0)
	if err != nil {
		return 0, err
	}

	id, err := uc.hoursRepo.Create(ctx, &domain.OperatingHours{
		PlaceID:     req.PlaceID,
		DayOfWeek:   h.DayOfWeek,
		OpeningTime: h.Opening.String(),
		ClosingTime: h.Closing.String(),
	})
	if err != nil {
		return 0, err
	}

	uc.logger.Info("Operating hours created", zap.Int64("id", id), zap.Int64("place_id", req.PlaceID))
	return id, nil
}

// Update заменяет строку id; сама строка в проверке пересечений не участвует
func (uc *OperatingHoursUseCase) Update(ctx context.Context, id int64, req dto.HoursRequest) error {
	h, err := uc.check(ctx, req, id)
	if err != nil {
		return err
	}

	affected, err := uc.hoursRepo.Update(ctx, id, &domain.OperatingHours{
		PlaceID:     req.PlaceID,
		DayOfWeek:   h.DayOfWeek,
		OpeningTime: h.Opening.String(),
		ClosingTime: h.Closing.String(),
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.ErrOperatingHoursNotFound
	}
	return nil
}

func (uc *OperatingHoursUseCase) Delete(ctx context.Context, id int64) error {
	affected, err := uc.hoursRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.ErrOperatingHoursNotFound
	}
	return nil
}

// check - конкретный день, формат и порядок времени, пересечения с сохранёнными окнами
func (uc *OperatingHoursUseCase) check(ctx context.Context, req dto.HoursRequest, selfID int64) (domain.DailyHours, error) {
	day := strings.TrimSpace(req.DayOfWeek)
	if !domain.IsWeekday(day) {
		return domain.DailyHours{}, errors.ErrInvalidOperatingHours.WithMessage(
			fmt.Sprintf("Invalid day_of_week. Must be one of: %s", strings.Join(domain.CanonicalWeek, ", ")))
	}

	entry := req.Entry()
	entry.DayOfWeek = day
	validated, err := domain.ValidateHours([]domain.HoursEntry{entry})
	if err != nil {
		return domain.DailyHours{}, hoursError(err)
	}
	h := validated[0]

	rows, err := uc.hoursRepo.ListByPlaceAndDay(ctx, req.PlaceID, day)
	if err != nil {
		return domain.DailyHours{}, err
	}
	existing := make([]domain.DailyHours, 0, len(rows))
	for _, row := range rows {
		if row.ID == selfID {
			continue
		}
		d, err := row.ToDailyHours()
		if err != nil {
			uc.logger.Warn("Skipping malformed operating hours row", zap.Int64("id", row.ID), zap.Error(err))
			continue
		}
		existing = append(existing, d)
	}
	if err := domain.CheckOverlap(h, existing); err != nil {
		return domain.DailyHours{}, hoursError(err)
	}
	return h, nil
}
