package googleplaces

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tourism-microservice/internal/config"
)

func newTestClient(baseURL string, timeout time.Duration) *client {
	cfg := &config.GoogleConfig{
		PlacesBaseURL: baseURL,
		APIKey:        "test_key",
		Language:      "th",
	}
	return NewClient(cfg, timeout, zap.NewNop()).(*client)
}

func TestClient_TextSearch(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/textsearch/json", r.URL.Path)
			assert.Equal(t, "วัดพระธาตุพนม", r.URL.Query().Get("query"))
			assert.Equal(t, "test_key", r.URL.Query().Get("key"))
			assert.Equal(t, "th", r.URL.Query().Get("language"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"OK","results":[{"name":"วัดพระธาตุพนม","formatted_address":"ธาตุพนม นครพนม"}]}`))
		}))
		defer server.Close()

		c := newTestClient(server.URL, 5*time.Second)
		places, err := c.TextSearch(context.Background(), "วัดพระธาตุพนม")
		require.NoError(t, err)
		require.Len(t, places, 1)
		assert.Equal(t, "วัดพระธาตุพนม", places[0].Name)
		assert.Equal(t, "ธาตุพนม นครพนม", places[0].Address)
	})

	t.Run("zero results", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
		}))
		defer server.Close()

		places, err := newTestClient(server.URL, 5*time.Second).TextSearch(context.Background(), "xyz")
		require.NoError(t, err)
		assert.Empty(t, places)
	})

	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`boom`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL, 5*time.Second).TextSearch(context.Background(), "xyz")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 500")
	})

	t.Run("denied status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"bad key"}`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL, 5*time.Second).TextSearch(context.Background(), "xyz")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "REQUEST_DENIED")
	})

	t.Run("timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			w.Write([]byte(`{"status":"OK","results":[]}`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL, 50*time.Millisecond).TextSearch(context.Background(), "xyz")
		assert.Error(t, err)
	})

	t.Run("empty query", func(t *testing.T) {
		_, err := newTestClient("http://localhost", time.Second).TextSearch(context.Background(), "  ")
		assert.Error(t, err)
	})
}
