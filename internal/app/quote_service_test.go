package app

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotes-api/internal/domain"
	"github.com/jsamuelsen/quotes-api/internal/mocks"
)

// discardLogger returns a logger that discards all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string {
	return &s
}

var perceval = domain.Character{
	ID:       "8d55f6a8-2f5b-4f9e-9c1d-1f2f9f3f4a5b",
	Name:     "perceval",
	FullName: "Perceval de Galles",
}

func newService(characters *mocks.MockCharacterRepository, quotes *mocks.MockQuoteRepository) *QuoteService {
	return NewQuoteService(QuoteServiceConfig{
		Characters: characters,
		Quotes:     quotes,
		Logger:     discardLogger(),
	})
}

func TestNewQuoteService_PanicsWithoutRepositories(t *testing.T) {
	quotes := mocks.NewMockQuoteRepository(t)
	characters := mocks.NewMockCharacterRepository(t)

	assert.Panics(t, func() {
		NewQuoteService(QuoteServiceConfig{Quotes: quotes})
	})
	assert.Panics(t, func() {
		NewQuoteService(QuoteServiceConfig{Characters: characters})
	})
}

func TestNewQuoteService_DefaultsLogger(t *testing.T) {
	svc := NewQuoteService(QuoteServiceConfig{
		Characters: mocks.NewMockCharacterRepository(t),
		Quotes:     mocks.NewMockQuoteRepository(t),
		Logger:     nil, // Should default to slog.Default()
	})

	require.NotNil(t, svc)
}

func TestQuoteService_RandomQuote_Unscoped(t *testing.T) {
	characters := mocks.NewMockCharacterRepository(t)
	quotes := mocks.NewMockQuoteRepository(t)

	expected := &domain.Quote{ID: "q-1", Text: "C'est pas faux", Author: perceval}
	quotes.EXPECT().GetRandom(mock.Anything, "").Return(expected, nil)

	quote, err := newService(characters, quotes).RandomQuote(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, expected, quote)
}

func TestQuoteService_RandomQuote_ScopedToAuthor(t *testing.T) {
	characters := mocks.NewMockCharacterRepository(t)
	quotes := mocks.NewMockQuoteRepository(t)

	characters.EXPECT().Resolve(mock.Anything, "perceval").Return(&perceval, nil)
	expected := &domain.Quote{ID: "q-1", Text: "C'est pas faux", Author: perceval}
	quotes.EXPECT().GetRandom(mock.Anything, perceval.ID).Return(expected, nil)

	quote, err := newService(characters, quotes).RandomQuote(context.Background(), "perceval")

	require.NoError(t, err)
	assert.Equal(t, expected, quote)
}

func TestQuoteService_RandomQuote_CharacterNotFoundShortCircuits(t *testing.T) {
	characters := mocks.NewMockCharacterRepository(t)
	quotes := mocks.NewMockQuoteRepository(t)

	characters.EXPECT().Resolve(mock.Anything, "unknown-name").
		Return(nil, domain.NewNotFoundError("character", "unknown-name"))

	// No GetRandom expectation: the quote repository must not be touched.
	quote, err := newService(characters, quotes).RandomQuote(context.Background(), "unknown-name")

	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
	assert.Nil(t, quote)

	var nfe *domain.NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, "character", nfe.Entity)
}

func TestQuoteService_RandomQuote_NoQuotes(t *testing.T) {
	characters := mocks.NewMockCharacterRepository(t)
	quotes := mocks.NewMockQuoteRepository(t)

	quotes.EXPECT().GetRandom(mock.Anything, "").
		Return(nil, domain.NewNotFoundError("quote", ""))

	quote, err := newService(characters, quotes).RandomQuote(context.Background(), "")

	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
	assert.Nil(t, quote)
}

func TestQuoteService_QuoteByID(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*mocks.MockQuoteRepository)
		errCheck func(error) bool
	}{
		{
			name: "success",
			setup: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().GetByID(mock.Anything, "q-1").
					Return(&domain.Quote{ID: "q-1", Text: "On en a gros", Author: perceval}, nil)
			},
		},
		{
			name: "not found",
			setup: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().GetByID(mock.Anything, "q-1").
					Return(nil, domain.NewNotFoundError("quote", "q-1"))
			},
			errCheck: domain.IsNotFound,
		},
		{
			name: "storage failure",
			setup: func(m *mocks.MockQuoteRepository) {
				m.EXPECT().GetByID(mock.Anything, "q-1").
					Return(nil, domain.NewStorageError("getting quote", assert.AnError))
			},
			errCheck: domain.IsStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			characters := mocks.NewMockCharacterRepository(t)
			quotes := mocks.NewMockQuoteRepository(t)
			tt.setup(quotes)

			quote, err := newService(characters, quotes).QuoteByID(context.Background(), "q-1")

			if tt.errCheck != nil {
				require.Error(t, err)
				assert.True(t, tt.errCheck(err))
				assert.Nil(t, quote)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "q-1", quote.ID)
			}
		})
	}
}

func TestQuoteService_QuoteByAuthor(t *testing.T) {
	characters := mocks.NewMockCharacterRepository(t)
	quotes := mocks.NewMockQuoteRepository(t)

	characters.EXPECT().Resolve(mock.Anything, "perceval").Return(&perceval, nil)
	quotes.EXPECT().GetRandom(mock.Anything, perceval.ID).
		Return(&domain.Quote{ID: "q-1", Text: "C'est pas faux", Author: perceval}, nil)

	quote, err := newService(characters, quotes).QuoteByAuthor(context.Background(), "perceval")

	require.NoError(t, err)
	assert.Equal(t, "C'est pas faux", quote.Text)
	assert.Equal(t, "perceval", quote.Author.Name)
	assert.Equal(t, "Perceval de Galles", quote.Author.FullName)
}

func TestQuoteService_QuoteByAuthor_NoQuotesForCharacter(t *testing.T) {
	characters := mocks.NewMockCharacterRepository(t)
	quotes := mocks.NewMockQuoteRepository(t)

	characters.EXPECT().Resolve(mock.Anything, "perceval").Return(&perceval, nil)
	quotes.EXPECT().GetRandom(mock.Anything, perceval.ID).
		Return(nil, domain.NewNotFoundError("quote", ""))

	quote, err := newService(characters, quotes).QuoteByAuthor(context.Background(), "perceval")

	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
	assert.Nil(t, quote)
}

func TestQuoteService_CharacterByToken(t *testing.T) {
	characters := mocks.NewMockCharacterRepository(t)
	quotes := mocks.NewMockQuoteRepository(t)

	characters.EXPECT().Resolve(mock.Anything, perceval.ID).Return(&perceval, nil)

	character, err := newService(characters, quotes).CharacterByToken(context.Background(), perceval.ID)

	require.NoError(t, err)
	assert.Equal(t, &perceval, character)
}

func TestQuoteService_CreateQuote(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		text     string
		setup    func(*mocks.MockCharacterRepository, *mocks.MockQuoteRepository)
		errCheck func(error) bool
	}{
		{
			name:  "success",
			token: "perceval",
			text:  "C'est pas faux",
			setup: func(c *mocks.MockCharacterRepository, q *mocks.MockQuoteRepository) {
				c.EXPECT().Resolve(mock.Anything, "perceval").Return(&perceval, nil)
				q.EXPECT().Create(mock.Anything, perceval.ID, "C'est pas faux").Return(nil)
			},
		},
		{
			name:     "empty text fails before storage",
			token:    "perceval",
			text:     "",
			setup:    func(*mocks.MockCharacterRepository, *mocks.MockQuoteRepository) {},
			errCheck: domain.IsValidation,
		},
		{
			name:     "whitespace text fails before storage",
			token:    "perceval",
			text:     "   ",
			setup:    func(*mocks.MockCharacterRepository, *mocks.MockQuoteRepository) {},
			errCheck: domain.IsValidation,
		},
		{
			name:     "missing author fails before storage",
			token:    "",
			text:     "C'est pas faux",
			setup:    func(*mocks.MockCharacterRepository, *mocks.MockQuoteRepository) {},
			errCheck: domain.IsValidation,
		},
		{
			name:  "unknown author persists nothing",
			token: "unknown-name",
			text:  "C'est pas faux",
			setup: func(c *mocks.MockCharacterRepository, q *mocks.MockQuoteRepository) {
				c.EXPECT().Resolve(mock.Anything, "unknown-name").
					Return(nil, domain.NewNotFoundError("character", "unknown-name"))
			},
			errCheck: domain.IsNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			characters := mocks.NewMockCharacterRepository(t)
			quotes := mocks.NewMockQuoteRepository(t)
			tt.setup(characters, quotes)

			err := newService(characters, quotes).CreateQuote(context.Background(), tt.token, tt.text)

			if tt.errCheck != nil {
				require.Error(t, err)
				assert.True(t, tt.errCheck(err))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestQuoteService_ModifyQuote_TextOnlyKeepsAuthor(t *testing.T) {
	characters := mocks.NewMockCharacterRepository(t)
	quotes := mocks.NewMockQuoteRepository(t)

	current := &domain.Quote{ID: "q-1", Text: "C'est pas faux", Author: perceval}
	quotes.EXPECT().GetByID(mock.Anything, "q-1").Return(current, nil)

	// The current author is re-resolved by name, not reused from the read.
	characters.EXPECT().Resolve(mock.Anything, "perceval").Return(&perceval, nil)
	quotes.EXPECT().Update(mock.Anything, "q-1", perceval.ID, "Nouveau texte").Return(nil)

	err := newService(characters, quotes).ModifyQuote(context.Background(), "q-1", strPtr("Nouveau texte"), nil)

	require.NoError(t, err)
}

func TestQuoteService_ModifyQuote_AuthorChange(t *testing.T) {
	characters := mocks.NewMockCharacterRepository(t)
	quotes := mocks.NewMockQuoteRepository(t)

	karadoc := domain.Character{
		ID:       "f3b5cbd2-58e8-41a3-9b21-7e0cbb3be0a7",
		Name:     "karadoc",
		FullName: "Karadoc de Vannes",
	}

	current := &domain.Quote{ID: "q-1", Text: "C'est pas faux", Author: perceval}
	quotes.EXPECT().GetByID(mock.Anything, "q-1").Return(current, nil)
	characters.EXPECT().Resolve(mock.Anything, "karadoc").Return(&karadoc, nil)
	quotes.EXPECT().Update(mock.Anything, "q-1", karadoc.ID, "C'est pas faux").Return(nil)

	err := newService(characters, quotes).ModifyQuote(context.Background(), "q-1", nil, strPtr("karadoc"))

	require.NoError(t, err)
}

func TestQuoteService_ModifyQuote_UnknownQuoteAborts(t *testing.T) {
	characters := mocks.NewMockCharacterRepository(t)
	quotes := mocks.NewMockQuoteRepository(t)

	quotes.EXPECT().GetByID(mock.Anything, "q-404").
		Return(nil, domain.NewNotFoundError("quote", "q-404"))

	err := newService(characters, quotes).ModifyQuote(context.Background(), "q-404", strPtr("texte"), nil)

	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestQuoteService_ModifyQuote_UnknownAuthorAborts(t *testing.T) {
	characters := mocks.NewMockCharacterRepository(t)
	quotes := mocks.NewMockQuoteRepository(t)

	current := &domain.Quote{ID: "q-1", Text: "C'est pas faux", Author: perceval}
	quotes.EXPECT().GetByID(mock.Anything, "q-1").Return(current, nil)
	characters.EXPECT().Resolve(mock.Anything, "unknown-name").
		Return(nil, domain.NewNotFoundError("character", "unknown-name"))

	// No Update expectation: the quote must be left untouched.
	err := newService(characters, quotes).ModifyQuote(context.Background(), "q-1", nil, strPtr("unknown-name"))

	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestQuoteService_DeleteQuote_NonExistentIsNoOp(t *testing.T) {
	characters := mocks.NewMockCharacterRepository(t)
	quotes := mocks.NewMockQuoteRepository(t)

	// The repository reports success regardless of prior existence.
	quotes.EXPECT().Delete(mock.Anything, "q-404").Return(nil)

	err := newService(characters, quotes).DeleteQuote(context.Background(), "q-404")

	require.NoError(t, err)
}

func TestQuoteService_DeleteQuote_StorageFailure(t *testing.T) {
	characters := mocks.NewMockCharacterRepository(t)
	quotes := mocks.NewMockQuoteRepository(t)

	quotes.EXPECT().Delete(mock.Anything, "q-1").
		Return(domain.NewStorageError("deleting quote", assert.AnError))

	err := newService(characters, quotes).DeleteQuote(context.Background(), "q-1")

	require.Error(t, err)
	assert.True(t, domain.IsStorage(err))
}
