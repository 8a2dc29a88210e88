package place

import (
	"context"

	"go.uber.org/zap"

	"github.com/tourism-microservice/internal/domain"
	"github.com/tourism-microservice/internal/domain/repository"
)

// ListingCacheWorker сбрасывает кеш листингов после любой записи объекта
type ListingCacheWorker struct {
	*eventConsumer
	cacheRepo repository.CacheRepository
}

func NewListingCacheWorker(
	streamRepo repository.StreamRepository,
	cacheRepo repository.CacheRepository,
	stream string,
	consumerGroup string,
	logger *zap.Logger,
) *ListingCacheWorker {
	return &ListingCacheWorker{
		eventConsumer: newEventConsumer("listing-cache", streamRepo, stream, consumerGroup, logger),
		cacheRepo:     cacheRepo,
	}
}

// Start запускает воркер
func (w *ListingCacheWorker) Start(ctx context.Context) error {
	return w.run(ctx, w.handle)
}

func (w *ListingCacheWorker) handle(ctx context.Context, event domain.PlaceEvent) (bool, error) {
	deleted, err := w.cacheRepo.DeleteByPattern(ctx, domain.CachePatternPlaces)
	if err != nil {
		return false, err
	}

	w.Logger().Info("Listing cache invalidated",
		zap.String("type", event.Type),
		zap.Int64("place_id", event.ID),
		zap.Int64("keys", deleted))
	return true, nil
}
