// Package clients provides instrumented outbound HTTP clients.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotes-api/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotes-api/internal/platform/config"
	"github.com/jsamuelsen/quotes-api/internal/platform/logging"
)

const (
	// instrumentationName is used for OpenTelemetry tracer and meter.
	instrumentationName = "github.com/jsamuelsen/quotes-api/internal/adapters/clients"

	// httpStatusCategoryDivisor divides status code to get category (2xx, 4xx, 5xx).
	httpStatusCategoryDivisor = 100

	// defaultTimeout is the default request timeout if not configured.
	defaultTimeout = 10 * time.Second
)

// ErrDeliveryFailed indicates the webhook endpoint answered with a
// non-2xx status.
var ErrDeliveryFailed = errors.New("webhook delivery failed")

// WebhookClient posts JSON payloads to caller-supplied URLs, such as the
// one-shot response_url a Slack slash command hands us. Every delivery is
// a single attempt: these URLs are short-lived, so a failed post is
// reported to the caller instead of retried.
type WebhookClient struct {
	http   *http.Client
	logger *slog.Logger

	tracer trace.Tracer

	// Metrics
	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
}

// NewWebhookClient creates a new instrumented webhook client.
func NewWebhookClient(cfg config.WebhookConfig, logger *slog.Logger) (*WebhookClient, error) {
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(slog.String("component", "clients.WebhookClient"))

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	tracer := otel.Tracer(instrumentationName)
	meter := otel.Meter(instrumentationName)

	requestDuration, err := meter.Float64Histogram(
		"http.client.request.duration",
		metric.WithDescription("Duration of HTTP client requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration metric: %w", err)
	}

	requestTotal, err := meter.Int64Counter(
		"http.client.request.total",
		metric.WithDescription("Total number of HTTP client requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request counter: %w", err)
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        cfg.Transport.MaxIdleConns,
			MaxIdleConnsPerHost: cfg.Transport.MaxIdleConnsPerHost,
			IdleConnTimeout:     cfg.Transport.IdleConnTimeout,
		},
	}

	return &WebhookClient{
		http:            httpClient,
		logger:          logger,
		tracer:          tracer,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
	}, nil
}

// PostJSON marshals payload and posts it to url. A non-2xx response is
// an ErrDeliveryFailed; the response body is drained and discarded either
// way since webhook endpoints answer with nothing useful.
func (c *WebhookClient) PostJSON(ctx context.Context, url string, payload any) error {
	startTime := time.Now()
	logger := logging.FromContext(ctx).With(
		slog.String("component", "clients.WebhookClient"),
	)

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshalling webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating webhook request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	c.injectHeaders(ctx, req)

	ctx, span := c.tracer.Start(ctx, "HTTP POST webhook",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", http.MethodPost),
			attribute.String("http.url", url),
		),
	)
	defer span.End()

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)

	duration := time.Since(startTime)

	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		c.recordMetrics(ctx, 0, duration, "error")
		logger.Error("webhook delivery failed",
			slog.Duration("duration", duration),
			slog.Any("error", err),
		)

		return fmt.Errorf("posting webhook: %w", err)
	}

	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	statusCategory := fmt.Sprintf("%dxx", resp.StatusCode/httpStatusCategoryDivisor)
	c.recordMetrics(ctx, resp.StatusCode, duration, statusCategory)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", resp.StatusCode))
		logger.Error("webhook endpoint rejected delivery",
			slog.Int("status", resp.StatusCode),
			slog.Duration("duration", duration),
		)

		return fmt.Errorf("%w: status %d", ErrDeliveryFailed, resp.StatusCode)
	}

	logger.Debug("webhook delivered",
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", duration),
	)

	return nil
}

// injectHeaders propagates request and correlation IDs to the webhook
// endpoint for cross-service log correlation.
func (c *WebhookClient) injectHeaders(ctx context.Context, req *http.Request) {
	if requestID := middleware.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(middleware.HeaderRequestID, requestID)
	}

	if correlationID := middleware.CorrelationIDFromContext(ctx); correlationID != "" {
		req.Header.Set(middleware.HeaderCorrelationID, correlationID)
	}
}

// recordMetrics records request metrics.
func (c *WebhookClient) recordMetrics(ctx context.Context, statusCode int, duration time.Duration, result string) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", http.MethodPost),
		attribute.String("result", result),
	}

	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	c.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	c.requestTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}
