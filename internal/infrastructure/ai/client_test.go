package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tourism-microservice/internal/config"
)

func TestNewClient_EmptyKey(t *testing.T) {
	_, err := NewClient(&config.AIConfig{Provider: ProviderOpenAI}, zap.NewNop())
	assert.ErrorIs(t, err, ErrEmptyAPIKey)
}

func TestNewClient_UnknownProvider(t *testing.T) {
	_, err := NewClient(&config.AIConfig{Provider: "llama", APIKey: "k"}, zap.NewNop())
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestBuildLanguageModel_ProviderSelection(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.AIConfig
		wantModel string
	}{
		{"default provider is openai", config.AIConfig{APIKey: "k"}, defaultOpenAIModel},
		{"openai explicit model", config.AIConfig{Provider: "OpenAI", APIKey: "k", Model: "gpt-4o"}, "gpt-4o"},
		{"anthropic default model", config.AIConfig{Provider: ProviderAnthropic, APIKey: "k"}, defaultAnthropicModel},
		{"anthropic ignores openai model", config.AIConfig{Provider: ProviderAnthropic, APIKey: "k", Model: "gpt-4o-mini"}, defaultAnthropicModel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, modelID, err := buildLanguageModel(&tt.cfg)
			require.NoError(t, err)
			assert.NotNil(t, model)
			assert.Equal(t, tt.wantModel, modelID)
		})
	}
}

func TestTextOf_NilResponse(t *testing.T) {
	_, err := textOf(nil)
	assert.ErrorIs(t, err, ErrEmptyAIResponse)
}
