//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotes-api/internal/adapters/clients"
	"github.com/jsamuelsen/quotes-api/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotes-api/internal/platform/config"
)

func testWebhookConfig() config.WebhookConfig {
	return config.WebhookConfig{
		Timeout: 2 * time.Second,
		Transport: config.TransportConfig{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     30 * time.Second,
		},
	}
}

func TestWebhookClient_PostJSON_Integration(t *testing.T) {
	var received map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client, err := clients.NewWebhookClient(testWebhookConfig(), logger)
	require.NoError(t, err)

	err = client.PostJSON(context.Background(), server.URL, map[string]string{
		"response_type": "in_channel",
		"text":          "> C'est pas faux.\nPerceval de Galles",
	})

	require.NoError(t, err)
	assert.Equal(t, "in_channel", received["response_type"])
}

func TestWebhookClient_PostJSON_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	}))
	defer server.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client, err := clients.NewWebhookClient(testWebhookConfig(), logger)
	require.NoError(t, err)

	err = client.PostJSON(context.Background(), server.URL, map[string]string{"text": "hello"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, clients.ErrDeliveryFailed))
}

func TestWebhookClient_PropagatesRequestIDs(t *testing.T) {
	var gotRequestID, gotCorrelationID string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get(middleware.HeaderRequestID)
		gotCorrelationID = r.Header.Get(middleware.HeaderCorrelationID)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client, err := clients.NewWebhookClient(testWebhookConfig(), logger)
	require.NoError(t, err)

	// Run the post from inside a request handled by the ID middleware so
	// the context carries both identifiers.
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.CorrelationID())
	engine.POST("/trigger", func(c *gin.Context) {
		postErr := client.PostJSON(c.Request.Context(), server.URL, map[string]string{"text": "x"})
		require.NoError(t, postErr)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/trigger", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-42")
	req.Header.Set(middleware.HeaderCorrelationID, "corr-42")
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-42", gotRequestID)
	assert.Equal(t, "corr-42", gotCorrelationID)
}

func TestWebhookClient_Timeout(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer server.Close()

	cfg := testWebhookConfig()
	cfg.Timeout = 200 * time.Millisecond

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client, err := clients.NewWebhookClient(cfg, logger)
	require.NoError(t, err)

	start := time.Now()
	err = client.PostJSON(context.Background(), server.URL, map[string]string{"text": "x"})

	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}
