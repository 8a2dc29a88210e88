package postgres

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type queryStartKey struct{}

// Hooks логирует SQL запросы: все на debug, медленные на warn
type Hooks struct {
	logger *zap.Logger
	slow   time.Duration
}

func NewHooks(logger *zap.Logger, slow time.Duration) *Hooks {
	if slow <= 0 {
		slow = 500 * time.Millisecond
	}
	return &Hooks{logger: logger, slow: slow}
}

func (h *Hooks) Before(ctx context.Context, query string, args ...interface{}) (context.Context, error) {
	return context.WithValue(ctx, queryStartKey{}, time.Now()), nil
}

func (h *Hooks) After(ctx context.Context, query string, args ...interface{}) (context.Context, error) {
	d := h.elapsed(ctx)
	if d > h.slow {
		h.logger.Warn("Slow SQL query",
			zap.String("query", query),
			zap.Int("args", len(args)),
			zap.Duration("took", d),
		)
		return ctx, nil
	}
	h.logger.Debug("SQL query", zap.String("query", query), zap.Duration("took", d))
	return ctx, nil
}

// OnError вызывается sqlhooks при ошибке запроса; ошибка возвращается без изменений
func (h *Hooks) OnError(ctx context.Context, err error, query string, args ...interface{}) error {
	h.logger.Debug("SQL query failed",
		zap.String("query", query),
		zap.Duration("took", h.elapsed(ctx)),
		zap.Error(err),
	)
	return err
}

func (h *Hooks) elapsed(ctx context.Context) time.Duration {
	begin, ok := ctx.Value(queryStartKey{}).(time.Time)
	if !ok {
		return 0
	}
	return time.Since(begin)
}
