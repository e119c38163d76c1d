// Package mattermost adapts the quote service to a Mattermost slash
// command. Unlike Slack, Mattermost waits for the response, so the
// handler answers synchronously.
package mattermost

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotes-api/internal/app"
	"github.com/jsamuelsen/quotes-api/internal/domain"
)

const (
	// errorUsername is the bot identity shown on error responses.
	errorUsername = "Kaamelott API"

	// errorIconEmoji decorates error responses.
	errorIconEmoji = "robot"

	// unknownErrorText is shown when the failure carries no message safe
	// to display.
	unknownErrorText = "Unknown error from API."
)

// commandRequest is the JSON payload Mattermost sends for a slash command.
type commandRequest struct {
	Token string `json:"token"`
	Text  string `json:"text"`
}

// commandResponse is the synchronous slash command answer.
type commandResponse struct {
	Username     string `json:"username,omitempty"`
	IconURL      string `json:"icon_url,omitempty"`
	IconEmoji    string `json:"icon_emoji,omitempty"`
	ResponseType string `json:"response_type"`
	Text         string `json:"text"`
}

// Handler handles the Mattermost slash command endpoint.
type Handler struct {
	service *app.QuoteService
	token   string
	logger  *slog.Logger
}

// NewHandler creates a Mattermost slash command handler. token is the
// shared secret Mattermost includes with every slash command payload.
func NewHandler(service *app.QuoteService, token string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		service: service,
		token:   token,
		logger:  logger,
	}
}

// Command handles POST /mattermost/quote. The payload token must match
// the configured secret before anything else happens; the text field
// optionally names a character to scope the draw.
func (h *Handler) Command(c *gin.Context) {
	var req commandRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "BAD_REQUEST",
				"message": "malformed slash command payload",
			},
		})

		return
	}

	if h.token == "" || subtle.ConstantTimeCompare([]byte(req.Token), []byte(h.token)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "invalid slash command token",
			},
		})

		return
	}

	quote, err := h.service.RandomQuote(c.Request.Context(), req.Text)
	if err != nil {
		c.JSON(http.StatusOK, errorResponse(err))
		return
	}

	h.logger.InfoContext(c.Request.Context(), "answering mattermost quote",
		slog.String("quote_id", quote.ID),
		slog.String("author", quote.Author.Name),
	)

	c.JSON(http.StatusOK, commandResponse{
		Username:     quote.Author.FullName,
		IconURL:      iconURL(c, quote.Author.Name),
		ResponseType: "in_channel",
		Text:         quote.Text,
	})
}

// errorResponse builds the ephemeral answer shown only to the invoking
// user, under the fixed bot identity.
func errorResponse(err error) commandResponse {
	text := unknownErrorText
	if domain.IsNotFound(err) || domain.IsValidation(err) {
		text = err.Error()
	}

	return commandResponse{
		Username:     errorUsername,
		IconEmoji:    errorIconEmoji,
		ResponseType: "ephemeral",
		Text:         text,
	}
}

// iconURL synthesizes the character icon URL from the request's scheme
// and host.
func iconURL(c *gin.Context, name string) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}

	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	return fmt.Sprintf("%s://%s/icons/%s.jpg", scheme, c.Request.Host, name)
}
