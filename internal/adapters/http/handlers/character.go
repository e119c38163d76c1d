package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotes-api/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotes-api/internal/app"
)

// CharacterHandler handles the versioned REST character endpoints.
type CharacterHandler struct {
	service *app.QuoteService
}

// NewCharacterHandler creates a new character handler.
func NewCharacterHandler(service *app.QuoteService) *CharacterHandler {
	return &CharacterHandler{service: service}
}

// GetByToken handles GET /api/v1/character/:id. The path segment accepts
// either a character id or a character name.
func (h *CharacterHandler) GetByToken(c *gin.Context) {
	character, err := h.service.CharacterByToken(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCharacterResponse(character, iconURL(c, character.Name)))
}

// RandomQuote handles GET /api/v1/character/:id/random, returning one of
// the character's quotes picked at random.
func (h *CharacterHandler) RandomQuote(c *gin.Context) {
	quote, err := h.service.QuoteByAuthor(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote, iconURL(c, quote.Author.Name)))
}
