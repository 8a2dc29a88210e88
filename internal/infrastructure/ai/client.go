package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	anthropicclient "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
	jetai "go.jetify.com/ai"
	jetapi "go.jetify.com/ai/api"
	jetanthropic "go.jetify.com/ai/provider/anthropic"
	jetopenai "go.jetify.com/ai/provider/openai"
	"go.uber.org/zap"

	"github.com/tourism-microservice/internal/config"
	"github.com/tourism-microservice/internal/domain/repository"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"

	defaultOpenAIModel    = "gpt-4o-mini"
	defaultAnthropicModel = "claude-haiku-4-5-20251001"
	defaultMaxTokens      = 512
)

// systemPrompt - роль ассистента для вопросов, на которые нет локального ответа
const systemPrompt = "คุณเป็นผู้ช่วยแนะนำการท่องเที่ยว ตอบเป็นภาษาไทยอย่างกระชับ"

var (
	ErrEmptyAPIKey     = errors.New("AI provider api key is empty")
	ErrUnknownProvider = errors.New("unknown AI provider")
	ErrEmptyAIResponse = errors.New("empty response from AI")
)

type client struct {
	model     jetapi.LanguageModel
	maxTokens int
	logger    *zap.Logger
}

// NewClient собирает языковую модель выбранного провайдера
func NewClient(cfg *config.AIConfig, logger *zap.Logger) (repository.CompletionRepository, error) {
	model, modelID, err := buildLanguageModel(cfg)
	if err != nil {
		return nil, err
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	logger.Info("AI client initialized",
		zap.String("provider", providerOf(cfg)),
		zap.String("model", modelID))

	return &client{
		model:     model,
		maxTokens: maxTokens,
		logger:    logger,
	}, nil
}

// Complete отправляет вопрос модели и возвращает текст ответа без обработки
func (c *client) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := jetai.GenerateText(ctx,
		[]jetapi.Message{
			&jetapi.SystemMessage{Content: systemPrompt},
			&jetapi.UserMessage{Content: jetapi.ContentFromText(prompt)},
		},
		jetai.WithModel(c.model),
		jetai.WithMaxOutputTokens(c.maxTokens),
	)
	if err != nil {
		c.logger.Warn("AI completion failed", zap.Error(err))
		return "", fmt.Errorf("ai completion: %w", err)
	}
	return textOf(resp)
}

func textOf(resp *jetapi.Response) (string, error) {
	if resp == nil {
		return "", ErrEmptyAIResponse
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if tb, ok := block.(*jetapi.TextBlock); ok {
			sb.WriteString(tb.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyAIResponse
	}
	return sb.String(), nil
}

func providerOf(cfg *config.AIConfig) string {
	p := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if p == "" {
		return ProviderOpenAI
	}
	return p
}

func buildLanguageModel(cfg *config.AIConfig) (jetapi.LanguageModel, string, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, "", ErrEmptyAPIKey
	}
	modelID := strings.TrimSpace(cfg.Model)
	endpoint := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")

	switch providerOf(cfg) {
	case ProviderAnthropic:
		if modelID == "" || strings.HasPrefix(modelID, "gpt-") {
			modelID = defaultAnthropicModel
		}
		opts := []anthropicoption.RequestOption{
			anthropicoption.WithAPIKey(apiKey),
			anthropicoption.WithMaxRetries(0),
		}
		if endpoint != "" {
			opts = append(opts, anthropicoption.WithBaseURL(endpoint))
		}
		c := anthropicclient.NewClient(opts...)
		return jetanthropic.NewLanguageModel(modelID, jetanthropic.WithClient(c)), modelID, nil

	case ProviderOpenAI:
		if modelID == "" {
			modelID = defaultOpenAIModel
		}
		opts := []openaioption.RequestOption{
			openaioption.WithAPIKey(apiKey),
			openaioption.WithMaxRetries(0),
		}
		if endpoint != "" {
			opts = append(opts, openaioption.WithBaseURL(endpoint))
		}
		c := openaiclient.NewClient(opts...)
		return jetopenai.NewLanguageModel(modelID, jetopenai.WithClient(c)), modelID, nil

	default:
		return nil, "", fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}
}
