package mattermost

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotes-api/internal/app"
	"github.com/jsamuelsen/quotes-api/internal/domain"
	"github.com/jsamuelsen/quotes-api/internal/mocks"
)

const commandToken = "mm-secret-token"

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(t *testing.T) (*app.QuoteService, *mocks.MockCharacterRepository, *mocks.MockQuoteRepository) {
	t.Helper()

	characters := mocks.NewMockCharacterRepository(t)
	quotes := mocks.NewMockQuoteRepository(t)
	service := app.NewQuoteService(app.QuoteServiceConfig{
		Characters: characters,
		Quotes:     quotes,
		Logger:     testLogger(),
	})

	return service, characters, quotes
}

func postCommand(t *testing.T, handler *Handler, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	router := gin.New()
	router.POST("/mattermost/quote", handler.Command)

	req := httptest.NewRequest(http.MethodPost, "/mattermost/quote", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Host = "quotes.example.com"

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) commandResponse {
	t.Helper()

	var resp commandResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	return resp
}

func TestCommand_MalformedPayload(t *testing.T) {
	service, _, _ := newService(t)
	handler := NewHandler(service, commandToken, testLogger())

	w := postCommand(t, handler, "{not json", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "BAD_REQUEST")
}

func TestCommand_WrongToken(t *testing.T) {
	service, _, _ := newService(t)
	handler := NewHandler(service, commandToken, testLogger())

	w := postCommand(t, handler, `{"token":"wrong","text":""}`, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestCommand_EmptyConfiguredTokenRejectsEverything(t *testing.T) {
	service, _, _ := newService(t)
	handler := NewHandler(service, "", testLogger())

	w := postCommand(t, handler, `{"token":"","text":""}`, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCommand_AnswersInChannel(t *testing.T) {
	service, _, quotes := newService(t)

	quote := &domain.Quote{
		ID:   "9b2d7b6e-1a34-4f6e-8a3d-2f1e5c7a9b01",
		Text: "C'est pas faux.",
		Author: domain.Character{
			ID:       "3f2504e0-4f89-41d3-9a0c-0305e82c3301",
			Name:     "perceval",
			FullName: "Perceval de Galles",
		},
	}
	quotes.EXPECT().GetRandom(mock.Anything, "").Return(quote, nil)

	handler := NewHandler(service, commandToken, testLogger())

	w := postCommand(t, handler, `{"token":"`+commandToken+`","text":""}`, nil)

	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	assert.Equal(t, "in_channel", resp.ResponseType)
	assert.Equal(t, "C'est pas faux.", resp.Text)
	assert.Equal(t, "Perceval de Galles", resp.Username)
	assert.Equal(t, "http://quotes.example.com/icons/perceval.jpg", resp.IconURL)
	assert.Empty(t, resp.IconEmoji)
}

func TestCommand_ScopesDrawToNamedCharacter(t *testing.T) {
	service, characters, quotes := newService(t)

	character := &domain.Character{
		ID:       "3f2504e0-4f89-41d3-9a0c-0305e82c3301",
		Name:     "karadoc",
		FullName: "Karadoc de Vannes",
	}
	quote := &domain.Quote{
		ID:     "0d9be05f-8a22-4c3a-9f53-6b58e12ab001",
		Text:   "Le gras, c'est la vie.",
		Author: *character,
	}

	characters.EXPECT().Resolve(mock.Anything, "karadoc").Return(character, nil)
	quotes.EXPECT().GetRandom(mock.Anything, character.ID).Return(quote, nil)

	handler := NewHandler(service, commandToken, testLogger())

	w := postCommand(t, handler, `{"token":"`+commandToken+`","text":"karadoc"}`, nil)

	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	assert.Equal(t, "Karadoc de Vannes", resp.Username)
	assert.Equal(t, "Le gras, c'est la vie.", resp.Text)
}

func TestCommand_ForwardedProtoShapesIconURL(t *testing.T) {
	service, _, quotes := newService(t)

	quote := &domain.Quote{
		ID:     "9b2d7b6e-1a34-4f6e-8a3d-2f1e5c7a9b01",
		Text:   "C'est pas faux.",
		Author: domain.Character{Name: "perceval", FullName: "Perceval de Galles"},
	}
	quotes.EXPECT().GetRandom(mock.Anything, "").Return(quote, nil)

	handler := NewHandler(service, commandToken, testLogger())

	w := postCommand(t, handler, `{"token":"`+commandToken+`","text":""}`, map[string]string{
		"X-Forwarded-Proto": "https",
	})

	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	assert.Equal(t, "https://quotes.example.com/icons/perceval.jpg", resp.IconURL)
}

func TestCommand_UnknownCharacterAnswersEphemeral(t *testing.T) {
	service, characters, _ := newService(t)

	notFound := domain.NewNotFoundError("character", "does-not-exist")
	characters.EXPECT().Resolve(mock.Anything, "does-not-exist").Return(nil, notFound)

	handler := NewHandler(service, commandToken, testLogger())

	w := postCommand(t, handler, `{"token":"`+commandToken+`","text":"does-not-exist"}`, nil)

	// Errors still answer 200 so Mattermost renders the message instead of
	// showing a generic command failure.
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	assert.Equal(t, "ephemeral", resp.ResponseType)
	assert.Equal(t, errorUsername, resp.Username)
	assert.Equal(t, errorIconEmoji, resp.IconEmoji)
	assert.Equal(t, notFound.Error(), resp.Text)
}

func TestCommand_StorageFailureUsesFallbackText(t *testing.T) {
	service, _, quotes := newService(t)

	quotes.EXPECT().GetRandom(mock.Anything, "").
		Return(nil, domain.NewStorageError("getting quote", errors.New("connection refused")))

	handler := NewHandler(service, commandToken, testLogger())

	w := postCommand(t, handler, `{"token":"`+commandToken+`","text":""}`, nil)

	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	assert.Equal(t, "ephemeral", resp.ResponseType)
	assert.Equal(t, unknownErrorText, resp.Text)
	assert.NotContains(t, resp.Text, "connection refused")
}

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "not found is shown verbatim",
			err:  domain.NewNotFoundError("character", "merlin"),
			want: domain.NewNotFoundError("character", "merlin").Error(),
		},
		{
			name: "validation is shown verbatim",
			err:  domain.NewValidationError("author", "author is required"),
			want: domain.NewValidationError("author", "author is required").Error(),
		},
		{
			name: "anything else is replaced",
			err:  errors.New("boom"),
			want: unknownErrorText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := errorResponse(tt.err)

			assert.Equal(t, "ephemeral", resp.ResponseType)
			assert.Equal(t, errorUsername, resp.Username)
			assert.Equal(t, errorIconEmoji, resp.IconEmoji)
			assert.Equal(t, tt.want, resp.Text)
		})
	}
}
