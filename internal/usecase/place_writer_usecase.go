package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/tourism-microservice/internal/domain"
	"github.com/tourism-microservice/internal/domain/repository"
	"github.com/tourism-microservice/internal/pkg/errors"
	"github.com/tourism-microservice/internal/pkg/utils"
)

// PlaceWriterUseCase - создание, обновление и удаление объектов
type PlaceWriterUseCase struct {
	writer       repository.PlaceWriter
	placeRepo    repository.PlaceRepository
	refRepo      repository.ReferenceRepository
	notifier     PlaceNotifier
	assetBaseURL string
	logger       *zap.Logger
}

func NewPlaceWriterUseCase(
	writer repository.PlaceWriter,
	placeRepo repository.PlaceRepository,
	refRepo repository.ReferenceRepository,
	notifier PlaceNotifier,
	assetBaseURL string,
	logger *zap.Logger,
) *PlaceWriterUseCase {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &PlaceWriterUseCase{
		writer:       writer,
		placeRepo:    placeRepo,
		refRepo:      refRepo,
		notifier:     notifier,
		assetBaseURL: assetBaseURL,
		logger:       logger,
	}
}

// Create проверяет ввод, разрешает ссылки и записывает объект одной транзакцией
func (uc *PlaceWriterUseCase) Create(ctx context.Context, in domain.PlaceInput) (int64, error) {
	if in.Name == "" || in.Description == "" || in.Location == "" {
		return 0, errors.Validation("Name, description, and location are required")
	}
	if err := uc.checkName(ctx, in.Name, 0); err != nil {
		return 0, err
	}

	rec, err := uc.prepare(ctx, in)
	if err != nil {
		return 0, err
	}

	id, err := uc.writer.Create(ctx, rec)
	if err != nil {
		uc.logger.Error("Failed to create place", zap.String("name", in.Name), zap.Error(err))
		return 0, err
	}

	uc.logger.Info("Place created", zap.Int64("id", id), zap.String("name", in.Name))
	uc.notify(ctx, domain.PlaceEventCreated, id, in)
	return id, nil
}

// Update заменяет объект; неизвестный id даёт 404
func (uc *PlaceWriterUseCase) Update(ctx context.Context, id int64, in domain.PlaceInput) error {
	if id <= 0 {
		return errors.ErrInvalidID
	}
	if in.Name != "" {
		if err := uc.checkName(ctx, in.Name, id); err != nil {
			return err
		}
	}

	rec, err := uc.prepare(ctx, in)
	if err != nil {
		return err
	}

	affected, err := uc.writer.Update(ctx, id, rec)
	if err != nil {
		uc.logger.Error("Failed to update place", zap.Int64("id", id), zap.Error(err))
		return err
	}
	if affected == 0 {
		return errors.ErrPlaceNotFound
	}

	uc.logger.Info("Place updated", zap.Int64("id", id))
	uc.notify(ctx, domain.PlaceEventUpdated, id, in)
	return nil
}

// Delete удаляет объект с дочерними строками
func (uc *PlaceWriterUseCase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return errors.ErrInvalidID
	}
	affected, err := uc.writer.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.ErrPlaceNotFound
	}

	uc.logger.Info("Place deleted", zap.Int64("id", id))
	uc.notifier.PlaceChanged(ctx, domain.PlaceEvent{Type: domain.PlaceEventDeleted, ID: id})
	return nil
}

// NameExists - проверка имени для формы админки
func (uc *PlaceWriterUseCase) NameExists(ctx context.Context, name string) (bool, error) {
	if name == "" {
		return false, errors.Validation("Name is required")
	}
	return uc.placeRepo.ExistsByName(ctx, name, 0)
}

func (uc *PlaceWriterUseCase) checkName(ctx context.Context, name string, excludeID int64) error {
	exists, err := uc.placeRepo.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return errors.ErrDuplicatePlaceName
	}
	return nil
}

// prepare - проверки и разрешение ссылок вне транзакции
func (uc *PlaceWriterUseCase) prepare(ctx context.Context, in domain.PlaceInput) (*domain.PlaceRecord, error) {
	if !utils.ValidateCoordinates(in.Latitude, in.Longitude) {
		return nil, errors.ErrInvalidCoordinates
	}

	var hours []domain.DailyHours
	if in.OperatingHours != nil {
		h, err := domain.ValidateHours(in.OperatingHours)
		if err != nil {
			return nil, hoursError(err)
		}
		hours = h
	}

	districtID, err := uc.refRepo.GetDistrictIDByName(ctx, in.DistrictName)
	if err != nil {
		return nil, err
	}
	categoryID, err := uc.refRepo.GetCategoryIDByName(ctx, in.CategoryName)
	if err != nil {
		return nil, err
	}

	return &domain.PlaceRecord{
		Name:        in.Name,
		Description: in.Description,
		Location:    in.Location,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		DistrictID:  districtID,
		CategoryID:  categoryID,
		Published:   in.Published,
		CreatedBy:   in.CreatedBy,
		ImagePaths:  in.ImagePaths,
		SeasonIDs:   in.SeasonIDs,
		Hours:       hours,
	}, nil
}

func (uc *PlaceWriterUseCase) notify(ctx context.Context, eventType string, id int64, in domain.PlaceInput) {
	images := domain.NewImages(uc.assetBaseURL, in.ImagePaths)
	urls := make([]string, 0, len(images))
	for _, img := range images {
		urls = append(urls, img.ImageURL)
	}
	uc.notifier.PlaceChanged(ctx, domain.PlaceEvent{
		Type:         eventType,
		ID:           id,
		Name:         in.Name,
		CategoryName: in.CategoryName,
		Images:       urls,
		Location:     in.Location,
	})
}
