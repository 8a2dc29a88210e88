package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tourism-microservice/internal/domain"
	"github.com/tourism-microservice/internal/domain/repository"
	"github.com/tourism-microservice/internal/pkg/errors"
	"github.com/tourism-microservice/internal/usecase/dto"
)

// SuggestionUseCase - подсказки чат-бота
type SuggestionUseCase struct {
	suggestionRepo repository.SuggestionRepository
	cacheRepo      repository.CacheRepository
	cacheTTL       time.Duration
	logger         *zap.Logger
}

func NewSuggestionUseCase(
	suggestionRepo repository.SuggestionRepository,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *SuggestionUseCase {
	return &SuggestionUseCase{
		suggestionRepo: suggestionRepo,
		cacheRepo:      cacheRepo,
		cacheTTL:       cacheTTL,
		logger:         logger,
	}
}

// ActiveTexts - тексты активных подсказок, новые первыми
func (uc *SuggestionUseCase) ActiveTexts(ctx context.Context) ([]string, error) {
	if uc.cacheRepo != nil {
		if cached, err := uc.cacheRepo.GetSuggestions(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	texts, err := uc.suggestionRepo.ListActiveTexts(ctx)
	if err != nil {
		return nil, err
	}
	if texts == nil {
		texts = []string{}
	}

	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.SetSuggestions(ctx, texts, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache suggestions", zap.Error(err))
		}
	}
	return texts, nil
}

func (uc *SuggestionUseCase) List(ctx context.Context) ([]domain.ChatbotSuggestion, error) {
	items, err := uc.suggestionRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.ChatbotSuggestion{}
	}
	return items, nil
}

func (uc *SuggestionUseCase) Get(ctx context.Context, id int64) (*domain.ChatbotSuggestion, error) {
	return uc.suggestionRepo.GetByID(ctx, id)
}

func (uc *SuggestionUseCase) Create(ctx context.Context, req dto.SuggestionRequest) (int64, error) {
	s := toSuggestion(req)
	if err := uc.checkUnique(ctx, s, 0); err != nil {
		return 0, err
	}

	id, err := uc.suggestionRepo.Create(ctx, s)
	if err != nil {
		return 0, err
	}
	uc.invalidate(ctx)
	return id, nil
}

func (uc *SuggestionUseCase) Update(ctx context.Context, id int64, req dto.SuggestionRequest) error {
	s := toSuggestion(req)
	if err := uc.checkUnique(ctx, s, id); err != nil {
		return err
	}

	affected, err := uc.suggestionRepo.Update(ctx, id, s)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.ErrSuggestionNotFound
	}
	uc.invalidate(ctx)
	return nil
}

func (uc *SuggestionUseCase) Delete(ctx context.Context, id int64) error {
	affected, err := uc.suggestionRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.ErrSuggestionNotFound
	}
	uc.invalidate(ctx)
	return nil
}

func (uc *SuggestionUseCase) checkUnique(ctx context.Context, s *domain.ChatbotSuggestion, excludeID int64) error {
	if s.Category == "" || s.SuggestionText == "" {
		return errors.Validation("Category and suggestion text are required")
	}
	exists, err := uc.suggestionRepo.Exists(ctx, s.Category, s.SuggestionText, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return errors.ErrDuplicateSuggestion
	}
	return nil
}

func (uc *SuggestionUseCase) invalidate(ctx context.Context) {
	if uc.cacheRepo == nil {
		return
	}
	if err := uc.cacheRepo.Delete(ctx, domain.CacheKeySuggestions); err != nil {
		uc.logger.Warn("Failed to invalidate suggestions cache", zap.Error(err))
	}
}

func toSuggestion(req dto.SuggestionRequest) *domain.ChatbotSuggestion {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return &domain.ChatbotSuggestion{
		Category:       strings.TrimSpace(req.Category),
		SuggestionText: strings.TrimSpace(req.SuggestionText),
		Active:         active,
	}
}
