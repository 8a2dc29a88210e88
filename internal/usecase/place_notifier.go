package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/tourism-microservice/internal/domain"
	"github.com/tourism-microservice/internal/domain/repository"
)

// PlaceNotifier - уведомление о закоммиченных изменениях объекта
type PlaceNotifier interface {
	PlaceChanged(ctx context.Context, event domain.PlaceEvent)
}

// StreamNotifier публикует события в Redis Stream; ошибки только логируются
type StreamNotifier struct {
	streamRepo repository.StreamRepository
	stream     string
	logger     *zap.Logger
}

func NewStreamNotifier(streamRepo repository.StreamRepository, stream string, logger *zap.Logger) *StreamNotifier {
	if stream == "" {
		stream = domain.StreamPlaceEvents
	}
	return &StreamNotifier{streamRepo: streamRepo, stream: stream, logger: logger}
}

func (n *StreamNotifier) PlaceChanged(ctx context.Context, event domain.PlaceEvent) {
	if err := n.streamRepo.PublishToStream(ctx, n.stream, event); err != nil {
		n.logger.Warn("Failed to publish place event",
			zap.String("type", event.Type),
			zap.Int64("id", event.ID),
			zap.Error(err))
	}
}

type noopNotifier struct{}

func (noopNotifier) PlaceChanged(context.Context, domain.PlaceEvent) {}
