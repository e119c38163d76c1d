// Package slack adapts the quote service to a Slack slash command.
//
// Slack gives a command three seconds to answer, so the handler
// acknowledges with an empty 200 immediately and delivers the actual
// quote asynchronously to the response_url carried by the payload.
package slack

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotes-api/internal/app"
	"github.com/jsamuelsen/quotes-api/internal/domain"
	"github.com/jsamuelsen/quotes-api/internal/platform/logging"
)

// unknownErrorText is shown to the Slack user when the failure carries no
// message safe to display.
const unknownErrorText = "Unknown error from API."

// ResponsePoster delivers a JSON payload to a webhook URL.
type ResponsePoster interface {
	PostJSON(ctx context.Context, url string, payload any) error
}

// message is the payload Slack expects on a response_url post.
type message struct {
	ResponseType string `json:"response_type"`
	Text         string `json:"text"`
}

// Handler handles the Slack slash command endpoint.
type Handler struct {
	service *app.QuoteService
	poster  ResponsePoster
	logger  *slog.Logger
}

// NewHandler creates a Slack slash command handler.
func NewHandler(service *app.QuoteService, poster ResponsePoster, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		service: service,
		poster:  poster,
		logger:  logger,
	}
}

// Command handles POST /slack/quote. The form's text field optionally
// names a character to scope the draw; response_url is where the result
// is delivered. A payload without response_url is rejected with 400
// since there is nowhere to answer.
func (h *Handler) Command(c *gin.Context) {
	responseURL := c.PostForm("response_url")
	if responseURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "BAD_REQUEST",
				"message": "response_url is required",
			},
		})

		return
	}

	authorToken := c.PostForm("text")

	// Ack within Slack's deadline, then deliver out of band. The request
	// context dies with the ack, so delivery runs on a detached copy that
	// keeps the trace and log metadata.
	ctx := context.WithoutCancel(c.Request.Context())
	go h.deliver(ctx, responseURL, authorToken)

	c.Status(http.StatusOK)
}

// deliver fetches the quote and posts it to responseURL. Failures turn
// into an ephemeral message so only the invoking user sees them.
func (h *Handler) deliver(ctx context.Context, responseURL, authorToken string) {
	logger := logging.FromContext(ctx)

	quote, err := h.service.RandomQuote(ctx, authorToken)
	if err != nil {
		h.post(ctx, responseURL, message{
			ResponseType: "ephemeral",
			Text:         userFacingError(err),
		})

		return
	}

	logger.InfoContext(ctx, "delivering slack quote",
		slog.String("quote_id", quote.ID),
		slog.String("author", quote.Author.Name),
	)

	h.post(ctx, responseURL, message{
		ResponseType: "in_channel",
		Text:         "> " + quote.Text + "\n" + quote.Author.FullName,
	})
}

func (h *Handler) post(ctx context.Context, responseURL string, msg message) {
	if err := h.poster.PostJSON(ctx, responseURL, msg); err != nil {
		h.logger.ErrorContext(ctx, "posting slack response",
			slog.Any("error", err),
		)
	}
}

// userFacingError picks the text shown to the Slack user. Not-found and
// validation messages are written for humans; anything else is replaced
// with a fixed fallback so storage details stay out of chat.
func userFacingError(err error) string {
	if domain.IsNotFound(err) || domain.IsValidation(err) {
		return err.Error()
	}

	return unknownErrorText
}
