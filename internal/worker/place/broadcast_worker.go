package place

import (
	"context"

	"go.uber.org/zap"

	"github.com/tourism-microservice/internal/domain"
	"github.com/tourism-microservice/internal/domain/repository"
)

// Broadcaster - рассылка новых объектов клиентам чата
type Broadcaster interface {
	PlaceCreated(event domain.PlaceEvent)
}

// BroadcastWorker пересылает события о новых объектах в socket.io.
// Группа своя у каждого процесса API, чтобы событие дошло до всех подключенных клиентов.
type BroadcastWorker struct {
	*eventConsumer
	broadcaster Broadcaster
}

func NewBroadcastWorker(
	streamRepo repository.StreamRepository,
	broadcaster Broadcaster,
	stream string,
	groupPrefix string,
	logger *zap.Logger,
) *BroadcastWorker {
	group := groupPrefix + "-" + consumerName()
	return &BroadcastWorker{
		eventConsumer: newEventConsumer("place-broadcast", streamRepo, stream, group, logger),
		broadcaster:   broadcaster,
	}
}

// Start запускает воркер
func (w *BroadcastWorker) Start(ctx context.Context) error {
	return w.run(ctx, w.handle)
}

func (w *BroadcastWorker) handle(ctx context.Context, event domain.PlaceEvent) (bool, error) {
	if !event.IsBroadcastable() {
		return false, nil
	}
	w.broadcaster.PlaceCreated(event)
	w.Logger().Debug("New place broadcast", zap.Int64("place_id", event.ID), zap.String("name", event.Name))
	return true, nil
}
