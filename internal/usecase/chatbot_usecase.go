package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tourism-microservice/internal/config"
	"github.com/tourism-microservice/internal/domain"
	"github.com/tourism-microservice/internal/domain/repository"
	"github.com/tourism-microservice/internal/pkg/metrics"
	"github.com/tourism-microservice/internal/pkg/utils"
)

// ReplyFunc - канал ответа: emit в сокет или накопление для HTTP
type ReplyFunc func(reply string)

// ChatbotUseCase - маршрутизатор вопросов чат-бота
type ChatbotUseCase struct {
	chatRepo   repository.ChatbotRepository
	places     repository.PlacesSearchRepository
	completion repository.CompletionRepository
	cfg        config.ChatbotConfig
	clock      utils.Clock
	rules      []intentRule
	logger     *zap.Logger
}

// NewChatbotUseCase - places и completion могут быть nil, тогда ступень пропускается
func NewChatbotUseCase(
	chatRepo repository.ChatbotRepository,
	places repository.PlacesSearchRepository,
	completion repository.CompletionRepository,
	cfg config.ChatbotConfig,
	clock utils.Clock,
	logger *zap.Logger,
) *ChatbotUseCase {
	if cfg.RadiusKm <= 0 {
		cfg.RadiusKm = 10
	}
	if cfg.ResultLimit <= 0 {
		cfg.ResultLimit = 10
	}
	if cfg.WindowMinutes <= 0 {
		cfg.WindowMinutes = 30
	}
	if cfg.UpstreamTimeout <= 0 {
		cfg.UpstreamTimeout = 10 * time.Second
	}
	cfg.PlaceBaseURL = strings.TrimRight(cfg.PlaceBaseURL, "/")
	if clock == nil {
		clock = utils.NewClock(utils.LoadLocation(cfg.Timezone))
	}

	return &ChatbotUseCase{
		chatRepo:   chatRepo,
		places:     places,
		completion: completion,
		cfg:        cfg,
		clock:      clock,
		rules:      defaultRules(),
		logger:     logger,
	}
}

// Answer обрабатывает один вопрос. Первое подходящее локальное правило отвечает;
// внешняя цепочка (Google Places, затем AI) запускается после него, если не
// включён StopAfterLocalReply.
func (uc *ChatbotUseCase) Answer(ctx context.Context, q domain.ChatQuery, reply ReplyFunc) {
	q.Text = strings.TrimSpace(q.Text)

	answered := false
	if rule, ok := uc.match(q); ok {
		text, err := rule.handle(ctx, uc, q)
		if err != nil {
			uc.logger.Error("Chatbot rule failed",
				zap.String("rule", rule.name),
				zap.Error(err))
			uc.emit(reply, metrics.SourceError, ReplyProcessingError)
			return
		}
		uc.logger.Debug("Chatbot rule matched", zap.String("rule", rule.name))
		uc.emit(reply, metrics.SourceLocal, text)
		answered = true
	}

	if answered && uc.cfg.StopAfterLocalReply {
		return
	}

	if text, ok := uc.searchExternal(ctx, q.Text); ok {
		uc.emit(reply, metrics.SourceGoogle, text)
		return
	}
	if text, ok := uc.complete(ctx, q.Text); ok {
		uc.emit(reply, metrics.SourceAI, text)
		return
	}
	uc.emit(reply, metrics.SourceNone, ReplyUnavailable)
}

// Ask - синхронный вариант Answer для HTTP
func (uc *ChatbotUseCase) Ask(ctx context.Context, q domain.ChatQuery) []string {
	replies := make([]string, 0, 2)
	uc.Answer(ctx, q, func(r string) {
		replies = append(replies, r)
	})
	return replies
}

func (uc *ChatbotUseCase) match(q domain.ChatQuery) (intentRule, bool) {
	for _, r := range uc.rules {
		if r.applies(q) {
			return r, true
		}
	}
	return intentRule{}, false
}

func (uc *ChatbotUseCase) emit(reply ReplyFunc, source, text string) {
	metrics.ChatbotReplies.WithLabelValues(source).Inc()
	reply(text)
}

// searchExternal - ошибка или таймаут считаются отсутствием данных
func (uc *ChatbotUseCase) searchExternal(ctx context.Context, question string) (string, bool) {
	if uc.places == nil || question == "" {
		return "", false
	}
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.UpstreamTimeout)
	defer cancel()

	places, err := uc.places.TextSearch(ctx, question)
	if err != nil {
		uc.logger.Warn("Places search unavailable", zap.Error(err))
		return "", false
	}
	if len(places) == 0 {
		return "", false
	}
	return formatExternal(places), true
}

func (uc *ChatbotUseCase) complete(ctx context.Context, question string) (string, bool) {
	if uc.completion == nil || question == "" {
		return "", false
	}
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.UpstreamTimeout)
	defer cancel()

	text, err := uc.completion.Complete(ctx, question)
	if err != nil {
		uc.logger.Warn("AI completion unavailable", zap.Error(err))
		return "", false
	}
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}

func (uc *ChatbotUseCase) windowSize() time.Duration {
	return time.Duration(uc.cfg.WindowMinutes) * time.Minute
}
