package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tourism-microservice/internal/domain"
	"github.com/tourism-microservice/internal/pkg/errors"
	"github.com/tourism-microservice/internal/usecase"
	"github.com/tourism-microservice/internal/usecase/dto"
)

func TestSuggestionUseCase_ActiveTexts(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit", func(t *testing.T) {
		repo := &MockSuggestionRepository{}
		cache := &MockCacheRepository{}
		uc := usecase.NewSuggestionUseCase(repo, cache, time.Minute, zap.NewNop())
		cache.On("GetSuggestions", ctx).Return([]string{"cached"}, nil)

		texts, err := uc.ActiveTexts(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{"cached"}, texts)
		repo.AssertNotCalled(t, "ListActiveTexts", mock.Anything)
	})

	t.Run("cache miss loads and stores", func(t *testing.T) {
		repo := &MockSuggestionRepository{}
		cache := &MockCacheRepository{}
		uc := usecase.NewSuggestionUseCase(repo, cache, time.Minute, zap.NewNop())
		cache.On("GetSuggestions", ctx).Return(nil, nil)
		repo.On("ListActiveTexts", ctx).Return([]string{"ที่พักใกล้เคียงฉันตอนนี้"}, nil)
		cache.On("SetSuggestions", ctx, []string{"ที่พักใกล้เคียงฉันตอนนี้"}, time.Minute).Return(nil)

		texts, err := uc.ActiveTexts(ctx)

		require.NoError(t, err)
		assert.Len(t, texts, 1)
		cache.AssertExpectations(t)
	})
}

func TestSuggestionUseCase_CreateInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	repo := &MockSuggestionRepository{}
	cache := &MockCacheRepository{}
	uc := usecase.NewSuggestionUseCase(repo, cache, time.Minute, zap.NewNop())

	repo.On("Exists", ctx, "ที่พัก", "แนะนำที่พัก", int64(0)).Return(false, nil)
	repo.On("Create", ctx, mock.MatchedBy(func(s *domain.ChatbotSuggestion) bool {
		return s.Active && s.SuggestionText == "แนะนำที่พัก"
	})).Return(int64(3), nil)
	cache.On("Delete", ctx, domain.CacheKeySuggestions).Return(nil)

	id, err := uc.Create(ctx, dto.SuggestionRequest{Category: " ที่พัก ", SuggestionText: "แนะนำที่พัก"})

	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
	cache.AssertExpectations(t)
}

func TestSuggestionUseCase_CreateDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := &MockSuggestionRepository{}
	uc := usecase.NewSuggestionUseCase(repo, nil, time.Minute, zap.NewNop())

	repo.On("Exists", ctx, "ที่พัก", "แนะนำที่พัก", int64(0)).Return(true, nil)

	_, err := uc.Create(ctx, dto.SuggestionRequest{Category: "ที่พัก", SuggestionText: "แนะนำที่พัก"})

	assert.Equal(t, errors.ErrDuplicateSuggestion, err)
}

func TestSuggestionUseCase_UpdateNotFound(t *testing.T) {
	ctx := context.Background()
	repo := &MockSuggestionRepository{}
	uc := usecase.NewSuggestionUseCase(repo, nil, time.Minute, zap.NewNop())

	repo.On("Exists", ctx, "c", "t", int64(5)).Return(false, nil)
	repo.On("Update", ctx, int64(5), mock.Anything).Return(int64(0), nil)

	err := uc.Update(ctx, 5, dto.SuggestionRequest{Category: "c", SuggestionText: "t"})

	assert.Equal(t, errors.ErrSuggestionNotFound, err)
}
