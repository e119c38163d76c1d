package dto

import "github.com/jsamuelsen/quotes-api/internal/domain"

// QuoteBody carries the quote text in request and response payloads.
type QuoteBody struct {
	Text string `json:"text" validate:"required,notempty"`
}

// CreateQuoteRequest is the body of POST /api/v1/quote.
type CreateQuoteRequest struct {
	Quote  QuoteBody `json:"quote"`
	Author string    `json:"author" validate:"required,notempty"`
}

// UpdateQuoteRequest is the body of PATCH /api/v1/quote/:id.
// Both fields are optional; omitted fields keep their current value.
type UpdateQuoteRequest struct {
	Quote  *QuoteBody `json:"quote,omitempty"`
	Author *string    `json:"author,omitempty"`
}

// AuthorResponse is the character display block embedded in responses.
type AuthorResponse struct {
	Name     string `json:"name"`
	FullName string `json:"fullName"`
	IconURL  string `json:"iconUrl"`
}

// QuoteResponse is the response shape for quote reads.
type QuoteResponse struct {
	ID     string         `json:"id"`
	Quote  QuoteBody      `json:"quote"`
	Author AuthorResponse `json:"author"`
}

// CharacterResponse is the response shape for character reads.
type CharacterResponse struct {
	ID        string         `json:"id"`
	Character AuthorResponse `json:"character"`
}

// NewQuoteResponse maps a domain quote to its response shape. The icon
// URL is synthesized by the caller from the request's scheme and host.
func NewQuoteResponse(quote *domain.Quote, iconURL string) *QuoteResponse {
	return &QuoteResponse{
		ID:    quote.ID,
		Quote: QuoteBody{Text: quote.Text},
		Author: AuthorResponse{
			Name:     quote.Author.Name,
			FullName: quote.Author.FullName,
			IconURL:  iconURL,
		},
	}
}

// NewCharacterResponse maps a domain character to its response shape.
func NewCharacterResponse(character *domain.Character, iconURL string) *CharacterResponse {
	return &CharacterResponse{
		ID: character.ID,
		Character: AuthorResponse{
			Name:     character.Name,
			FullName: character.FullName,
			IconURL:  iconURL,
		},
	}
}
