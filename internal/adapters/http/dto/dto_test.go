package dto

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotes-api/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// TestNewErrorResponse tests creating a basic error response.
func TestNewErrorResponse(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		message string
		want    *ErrorResponse
	}{
		{
			name:    "basic error response",
			code:    ErrorCodeNotFound,
			message: "quote not found",
			want: &ErrorResponse{
				Error: ErrorDetail{
					Code:    ErrorCodeNotFound,
					Message: "quote not found",
				},
			},
		},
		{
			name:    "validation error response",
			code:    ErrorCodeValidation,
			message: "invalid input",
			want: &ErrorResponse{
				Error: ErrorDetail{
					Code:    ErrorCodeValidation,
					Message: "invalid input",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewErrorResponse(tt.code, tt.message)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestNewErrorResponseWithDetails tests creating an error response with details.
func TestNewErrorResponseWithDetails(t *testing.T) {
	got := NewErrorResponseWithDetails(
		ErrorCodeValidation,
		"validation failed",
		map[string]string{
			"text":   "must not be empty",
			"author": "this field is required",
		},
	)

	assert.Equal(t, ErrorCodeValidation, got.Error.Code)
	assert.Equal(t, "validation failed", got.Error.Message)
	assert.Len(t, got.Error.Details, 2)
	assert.Equal(t, "must not be empty", got.Error.Details["text"])
}

// TestWithTraceID tests adding trace ID to error response.
func TestWithTraceID(t *testing.T) {
	resp := NewErrorResponse(ErrorCodeInternal, "internal error")
	got := resp.WithTraceID("trace-123")

	assert.Equal(t, "trace-123", got.TraceID)
	assert.Same(t, resp, got) // Should return same instance
}

// TestHTTPStatusFromCode tests mapping error codes to HTTP status codes.
func TestHTTPStatusFromCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		want int
	}{
		{
			name: "not found",
			code: ErrorCodeNotFound,
			want: http.StatusNotFound,
		},
		{
			name: "conflict",
			code: ErrorCodeConflict,
			want: http.StatusConflict,
		},
		{
			name: "validation error",
			code: ErrorCodeValidation,
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "bad request",
			code: ErrorCodeBadRequest,
			want: http.StatusBadRequest,
		},
		{
			name: "unauthorized",
			code: ErrorCodeUnauthorized,
			want: http.StatusUnauthorized,
		},
		{
			name: "not acceptable",
			code: ErrorCodeNotAcceptable,
			want: http.StatusNotAcceptable,
		},
		{
			name: "timeout",
			code: ErrorCodeTimeout,
			want: http.StatusGatewayTimeout,
		},
		{
			name: "internal error",
			code: ErrorCodeInternal,
			want: http.StatusInternalServerError,
		},
		{
			name: "unknown code defaults to internal error",
			code: "UNKNOWN_CODE",
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HTTPStatusFromCode(tt.code)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestNewQuoteResponse tests mapping a domain quote to the response shape.
func TestNewQuoteResponse(t *testing.T) {
	quote := &domain.Quote{
		ID:   "0194bb84-1f23-44c7-9f34-16a3fca52e92",
		Text: "C'est pas faux.",
		Author: domain.Character{
			ID:       "8d55f6a8-0d52-4b4f-8b74-d99df23bdb8a",
			Name:     "perceval",
			FullName: "Perceval de Galles",
		},
	}

	got := NewQuoteResponse(quote, "https://example.com/icons/perceval.jpg")

	assert.Equal(t, quote.ID, got.ID)
	assert.Equal(t, "C'est pas faux.", got.Quote.Text)
	assert.Equal(t, "perceval", got.Author.Name)
	assert.Equal(t, "Perceval de Galles", got.Author.FullName)
	assert.Equal(t, "https://example.com/icons/perceval.jpg", got.Author.IconURL)
}

// TestNewCharacterResponse tests mapping a domain character to the response shape.
func TestNewCharacterResponse(t *testing.T) {
	character := &domain.Character{
		ID:       "8d55f6a8-0d52-4b4f-8b74-d99df23bdb8a",
		Name:     "perceval",
		FullName: "Perceval de Galles",
	}

	got := NewCharacterResponse(character, "http://localhost/icons/perceval.jpg")

	assert.Equal(t, character.ID, got.ID)
	assert.Equal(t, "perceval", got.Character.Name)
	assert.Equal(t, "Perceval de Galles", got.Character.FullName)
	assert.Equal(t, "http://localhost/icons/perceval.jpg", got.Character.IconURL)
}

// TestCreateQuoteRequest_Validation tests the create request constraints.
func TestCreateQuoteRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   *CreateQuoteRequest
		wantErr bool
	}{
		{
			name: "valid request",
			input: &CreateQuoteRequest{
				Quote:  QuoteBody{Text: "On en a gros !"},
				Author: "karadoc",
			},
			wantErr: false,
		},
		{
			name: "missing text",
			input: &CreateQuoteRequest{
				Quote:  QuoteBody{Text: ""},
				Author: "karadoc",
			},
			wantErr: true,
		},
		{
			name: "whitespace text",
			input: &CreateQuoteRequest{
				Quote:  QuoteBody{Text: "   "},
				Author: "karadoc",
			},
			wantErr: true,
		},
		{
			name: "missing author",
			input: &CreateQuoteRequest{
				Quote:  QuoteBody{Text: "On en a gros !"},
				Author: "",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.input)

			if tt.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, ErrValidation)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// TestValidator tests validator singleton.
func TestValidator(t *testing.T) {
	v1 := Validator()
	v2 := Validator()

	assert.NotNil(t, v1)
	assert.Same(t, v1, v2) // Should be same instance (singleton)
}

// TestBindAndValidate tests JSON binding and validation.
func TestBindAndValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
		errType error
	}{
		{
			name:    "valid JSON",
			body:    `{"quote":{"text":"C'est pas faux."},"author":"perceval"}`,
			wantErr: false,
		},
		{
			name:    "invalid JSON",
			body:    `{invalid}`,
			wantErr: true,
			errType: ErrBinding,
		},
		{
			name:    "validation fails",
			body:    `{"quote":{"text":""},"author":"perceval"}`,
			wantErr: true,
			errType: ErrValidation,
		},
		{
			name:    "missing author",
			body:    `{"quote":{"text":"C'est pas faux."}}`,
			wantErr: true,
			errType: ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var input CreateQuoteRequest
			err := BindAndValidate(c, &input)

			if tt.wantErr {
				require.Error(t, err)
				if tt.errType != nil {
					require.ErrorIs(t, err, tt.errType)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, "C'est pas faux.", input.Quote.Text)
				assert.Equal(t, "perceval", input.Author)
			}
		})
	}
}

// TestValidationErrors tests extracting field errors.
func TestValidationErrors(t *testing.T) {
	input := &CreateQuoteRequest{
		Quote:  QuoteBody{Text: ""},
		Author: "",
	}

	err := Validate(input)
	require.Error(t, err)

	got := ValidationErrors(err)
	assert.Len(t, got, 2)
	assert.Contains(t, got, "text")
	assert.Contains(t, got, "author")

	t.Run("non-validation error returns empty map", func(t *testing.T) {
		err := errors.New("some error")
		got := ValidationErrors(err)
		assert.Empty(t, got)
	})
}

// TestIsValidationError tests validation error detection.
func TestIsValidationError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "validation error",
			err: func() error {
				return Validate(&CreateQuoteRequest{})
			}(),
			want: true,
		},
		{
			name: "non-validation error",
			err:  errors.New("some error"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsValidationError(tt.err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestValidationMessage tests validation message generation.
func TestValidationMessage(t *testing.T) {
	type testStruct struct {
		Name     string `validate:"required"`
		UUID     string `validate:"uuid"`
		Count    int    `validate:"min=1,max=10"`
		Role     string `validate:"oneof=admin user"`
		Text     string `validate:"min=5,max=100"`
		Username string `validate:"notempty"`
	}

	// Create a struct that will fail all validations
	input := &testStruct{
		Name:     "",
		UUID:     "not-a-uuid",
		Count:    20,
		Role:     "invalid",
		Text:     "abc",
		Username: "  ",
	}

	err := Validator().Struct(input)
	require.Error(t, err)

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)

	// Map expected messages for each field
	expectedMessages := map[string]string{
		"name":     "this field is required",
		"uuid":     "must be a valid UUID",
		"count":    "must be at most 10",
		"role":     "must be one of: admin user",
		"text":     "must be at least 5 characters",
		"username": "must not be empty",
	}

	for _, fe := range validationErrs {
		fieldName := fe.Field()
		message := validationMessage(fe)

		expectedMsg, ok := expectedMessages[fieldName]
		if ok {
			assert.Equal(t, expectedMsg, message, "field: %s", fieldName)
		}
	}
}

// TestMinMaxMessage tests min/max message generation.
func TestMinMaxMessage(t *testing.T) {
	tests := []struct {
		name  string
		tag   string
		param string
		kind  reflect.Kind
		want  string
	}{
		{
			name:  "min for string",
			tag:   "min",
			param: "5",
			kind:  reflect.String,
			want:  "must be at least 5 characters",
		},
		{
			name:  "max for string",
			tag:   "max",
			param: "100",
			kind:  reflect.String,
			want:  "must be at most 100 characters",
		},
		{
			name:  "min for int",
			tag:   "min",
			param: "1",
			kind:  reflect.Int,
			want:  "must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := minMaxMessage(tt.tag, tt.param, tt.kind)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestValidateNotEmpty tests not empty validation.
func TestValidateNotEmpty(t *testing.T) {
	type testStruct struct {
		Name string `validate:"notempty"`
	}

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{
			name:    "non-empty string",
			value:   "hello",
			wantErr: false,
		},
		{
			name:    "empty string",
			value:   "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			value:   "   ",
			wantErr: true,
		},
		{
			name:    "string with spaces but also content",
			value:   "  hello  ",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := &testStruct{Name: tt.value}
			err := Validator().Struct(input)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
