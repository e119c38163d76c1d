package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotes-api/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotes-api/internal/app"
)

// QuoteHandler handles the versioned REST quote endpoints.
type QuoteHandler struct {
	service *app.QuoteService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service *app.QuoteService) *QuoteHandler {
	return &QuoteHandler{service: service}
}

// Random handles GET /api/v1/quote/random.
// An optional ?author= query scopes the draw to one character; the token
// may be a character id or a character name.
func (h *QuoteHandler) Random(c *gin.Context) {
	quote, err := h.service.RandomQuote(c.Request.Context(), c.Query("author"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote, iconURL(c, quote.Author.Name)))
}

// GetByID handles GET /api/v1/quote/:id.
func (h *QuoteHandler) GetByID(c *gin.Context) {
	quote, err := h.service.QuoteByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote, iconURL(c, quote.Author.Name)))
}

// Create handles POST /api/v1/quote.
func (h *QuoteHandler) Create(c *gin.Context) {
	var req dto.CreateQuoteRequest

	if err := dto.BindAndValidate(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.service.CreateQuote(c.Request.Context(), req.Author, req.Quote.Text); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Update handles PATCH /api/v1/quote/:id. Omitted fields keep their
// current values; the author is always re-resolved by the service.
func (h *QuoteHandler) Update(c *gin.Context) {
	var req dto.UpdateQuoteRequest

	if err := dto.BindAndValidate(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	var newText *string
	if req.Quote != nil {
		newText = &req.Quote.Text
	}

	err := h.service.ModifyQuote(c.Request.Context(), c.Param("id"), newText, req.Author)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Delete handles DELETE /api/v1/quote/:id. Deleting an unknown id is a
// no-op and still answers 200.
func (h *QuoteHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteQuote(c.Request.Context(), c.Param("id")); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondBindError maps binding and validation failures to 400/422.
func respondBindError(c *gin.Context, err error) {
	if dto.IsValidationError(err) {
		dto.RespondWithValidationErrors(c, dto.ValidationErrors(err))
		return
	}

	dto.RespondWithErrorCode(c, dto.ErrorCodeBadRequest, "malformed request body")
}

// iconURL synthesizes the character icon URL from the request's scheme and
// host, matching the /icons static route served in front of the API.
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
