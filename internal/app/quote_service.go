// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jsamuelsen/quotes-api/internal/domain"
	"github.com/jsamuelsen/quotes-api/internal/ports"
)

// QuoteService orchestrates quote-related use cases. It is the only
// component the REST, Slack and Mattermost adapters call, so every write
// path resolves the author through the character repository rather than
// trusting a caller-supplied raw identifier; that keeps the quote→character
// reference valid for front-ends that only ever supply free-text tokens.
//
// It depends on port interfaces, not concrete implementations,
// following the Dependency Inversion Principle.
type QuoteService struct {
	characters ports.CharacterRepository
	quotes     ports.QuoteRepository
	logger     *slog.Logger
}

// QuoteServiceConfig contains configuration for the quote service.
type QuoteServiceConfig struct {
	Characters ports.CharacterRepository
	Quotes     ports.QuoteRepository
	Logger     *slog.Logger
}

// NewQuoteService creates a new quote service with the provided dependencies.
// It panics if either repository is missing; wiring errors should fail at
// startup, not on the first request.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Characters == nil {
		panic("app: QuoteService requires a character repository")
	}

	if cfg.Quotes == nil {
		panic("app: QuoteService requires a quote repository")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteService{
		characters: cfg.Characters,
		quotes:     cfg.Quotes,
		logger:     logger,
	}
}

// RandomQuote returns a quote picked uniformly at random, optionally scoped
// to the character identified by authorToken (id or name). An empty token
// means no scoping. A missing character surfaces as a character not-found,
// distinct from the quote not-found returned when the (possibly scoped) set
// of quotes is empty.
func (s *QuoteService) RandomQuote(ctx context.Context, authorToken string) (*domain.Quote, error) {
	authorID := ""

	if authorToken != "" {
		character, err := s.characters.Resolve(ctx, authorToken)
		if err != nil {
			return nil, err
		}

		authorID = character.ID
	}

	quote, err := s.quotes.GetRandom(ctx, authorID)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "fetched random quote",
		slog.String("quote_id", quote.ID),
		slog.String("author", quote.Author.Name),
	)

	return quote, nil
}

// QuoteByID retrieves a specific quote by its identifier.
func (s *QuoteService) QuoteByID(ctx context.Context, id string) (*domain.Quote, error) {
	quote, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return quote, nil
}

// QuoteByAuthor resolves authorToken to a character and returns one of
// that character's quotes at random.
func (s *QuoteService) QuoteByAuthor(ctx context.Context, authorToken string) (*domain.Quote, error) {
	character, err := s.characters.Resolve(ctx, authorToken)
	if err != nil {
		return nil, err
	}

	quote, err := s.quotes.GetRandom(ctx, character.ID)
	if err != nil {
		return nil, err
	}

	return quote, nil
}

// CharacterByToken resolves a free-text token (id or name) to a character.
func (s *QuoteService) CharacterByToken(ctx context.Context, token string) (*domain.Character, error) {
	return s.characters.Resolve(ctx, token)
}

// CreateQuote validates its inputs, resolves the author and persists a new
// quote. Validation failures never reach storage. A token naming no known
// character fails with character not-found; it is never silently ignored.
func (s *QuoteService) CreateQuote(ctx context.Context, authorToken, text string) error {
	if strings.TrimSpace(text) == "" {
		return domain.NewValidationError("text", "quote text must not be empty")
	}

	if authorToken == "" {
		return domain.NewValidationError("author", "author is required")
	}

	character, err := s.characters.Resolve(ctx, authorToken)
	if err != nil {
		return err
	}

	if err := s.quotes.Create(ctx, character.ID, text); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "created quote",
		slog.String("author", character.Name),
	)

	return nil
}

// ModifyQuote replaces the text and/or author of an existing quote.
// Nil means "keep the current value". The author is re-resolved on every
// modification: when no new token is supplied, the current author is looked
// up again by name rather than reusing a cached id, a direct consequence of
// the denormalized read shape. If that lookup fails the operation aborts
// with character not-found instead of silently keeping the old id.
func (s *QuoteService) ModifyQuote(ctx context.Context, id string, newText, newAuthorToken *string) error {
	current, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		return err
	}

	text := current.Text
	if newText != nil {
		text = *newText
	}

	authorToken := current.Author.Name
	if newAuthorToken != nil {
		authorToken = *newAuthorToken
	}

	character, err := s.characters.Resolve(ctx, authorToken)
	if err != nil {
		return err
	}

	if err := s.quotes.Update(ctx, id, character.ID, text); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "updated quote",
		slog.String("quote_id", id),
		slog.String("author", character.Name),
	)

	return nil
}

// DeleteQuote removes a quote unconditionally. Deleting an id that does
// not exist succeeds and is a no-op.
func (s *QuoteService) DeleteQuote(ctx context.Context, id string) error {
	if err := s.quotes.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "deleted quote",
		slog.String("quote_id", id),
	)

	return nil
}
