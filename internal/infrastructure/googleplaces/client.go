package googleplaces

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tourism-microservice/internal/config"
	"github.com/tourism-microservice/internal/domain"
	"github.com/tourism-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

// textSearchResponse - ответ Places Text Search API
type textSearchResponse struct {
	Status       string                 `json:"status"`
	ErrorMessage string                 `json:"error_message,omitempty"`
	Results      []domain.ExternalPlace `json:"results"`
}

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	language   string
	logger     *zap.Logger
}

// NewClient создает клиент Google Places; timeout ограничивает каждый запрос
func NewClient(cfg *config.GoogleConfig, timeout time.Duration, logger *zap.Logger) repository.PlacesSearchRepository {
	return &client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.PlacesBaseURL, "/"),
		apiKey:     cfg.APIKey,
		language:   cfg.Language,
		logger:     logger,
	}
}

// TextSearch ищет места по произвольному тексту вопроса
func (c *client) TextSearch(ctx context.Context, query string) ([]domain.ExternalPlace, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint := c.baseURL + "/textsearch/json?" + params.Encode()

	c.logger.Debug("Calling Google Places text search", zap.String("query", query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Google Places request failed", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn("Google Places API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("google places API error: status %d", resp.StatusCode)
	}

	var out textSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	switch out.Status {
	case statusOK:
	case statusZeroResults:
		return []domain.ExternalPlace{}, nil
	default:
		c.logger.Warn("Google Places returned non-OK status",
			zap.String("status", out.Status),
			zap.String("error_message", out.ErrorMessage))
		return nil, fmt.Errorf("google places status: %s", out.Status)
	}

	c.logger.Debug("Google Places call successful", zap.Int("results", len(out.Results)))
	return out.Results, nil
}
