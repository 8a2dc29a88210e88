package place

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/tourism-microservice/internal/domain"
	"github.com/tourism-microservice/internal/domain/repository"
	"github.com/tourism-microservice/internal/pkg/metrics"
	"github.com/tourism-microservice/internal/worker"
)

// Результаты обработки события для метрик
const (
	resultOK      = "ok"
	resultSkipped = "skipped"
	resultInvalid = "invalid"
	resultError   = "error"
)

// eventHandler обрабатывает одно событие; ошибка оставляет сообщение неподтверждённым
type eventHandler func(ctx context.Context, event domain.PlaceEvent) (handled bool, err error)

// eventConsumer - общий цикл чтения stream:place:events
type eventConsumer struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	stream       string
	consumerName string
}

func newEventConsumer(
	name string,
	streamRepo repository.StreamRepository,
	stream string,
	consumerGroup string,
	logger *zap.Logger,
) *eventConsumer {
	if stream == "" {
		stream = domain.StreamPlaceEvents
	}
	return &eventConsumer{
		BaseWorker:   worker.NewBaseWorker(name, consumerGroup, logger),
		streamRepo:   streamRepo,
		stream:       stream,
		consumerName: consumerName(),
	}
}

// consumerName - уникальное имя процесса внутри consumer group
func consumerName() string {
	hostname, _ := os.Hostname()
	return fmt.Sprintf("%s-%d", hostname, os.Getpid())
}

// run блокирует до остановки воркера или отмены ctx
func (c *eventConsumer) run(ctx context.Context, handle eventHandler) error {
	logger := c.Logger()
	logger.Info("Starting place event consumer",
		zap.String("worker", c.Name()),
		zap.String("stream", c.stream),
		zap.String("consumer_group", c.ConsumerGroup()),
		zap.String("consumer_name", c.consumerName))

	if err := c.streamRepo.CreateConsumerGroup(ctx, c.stream, c.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	messages, err := c.streamRepo.ConsumeStream(ctx, c.stream, c.ConsumerGroup(), c.consumerName)
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	for {
		select {
		case <-c.StopChan():
			logger.Info("Worker stopped", zap.String("worker", c.Name()))
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled", zap.String("worker", c.Name()))
			return nil

		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			c.process(ctx, msg, handle)
		}
	}
}

func (c *eventConsumer) process(ctx context.Context, msg domain.StreamMessage, handle eventHandler) {
	logger := c.Logger()

	var event domain.PlaceEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		logger.Warn("Failed to parse place event, skipping",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		// битое сообщение подтверждаем, чтобы не застревало
		c.ack(ctx, msg.ID)
		c.observe(resultInvalid)
		return
	}

	handled, err := handle(ctx, event)
	if err != nil {
		logger.Error("Failed to handle place event",
			zap.String("message_id", msg.ID),
			zap.String("type", event.Type),
			zap.Int64("place_id", event.ID),
			zap.Error(err))
		c.observe(resultError)
		return
	}

	c.ack(ctx, msg.ID)
	if handled {
		c.observe(resultOK)
	} else {
		c.observe(resultSkipped)
	}
}

func (c *eventConsumer) ack(ctx context.Context, id string) {
	if err := c.streamRepo.AckMessage(ctx, c.stream, c.ConsumerGroup(), id); err != nil {
		c.Logger().Warn("Failed to ack message", zap.String("message_id", id), zap.Error(err))
	}
}

func (c *eventConsumer) observe(result string) {
	metrics.PlaceEvents.WithLabelValues(c.Name(), result).Inc()
}
