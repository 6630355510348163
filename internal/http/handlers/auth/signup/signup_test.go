package signup

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authservice "github.com/magabrotheeeer/geosentinel/internal/services/auth"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Register(ctx context.Context, name, email, rawPassword string) (string, error) {
	args := m.Called(ctx, name, email, rawPassword)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSignupHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    any
		mockUID        string
		mockErr        error
		wantStatusCode int
		wantMessage    string
	}{
		{
			name:           "valid signup",
			requestBody:    Request{Name: "Alice", Email: "alice@example.com", Password: "secret1"},
			mockUID:        "uid-1",
			wantStatusCode: http.StatusCreated,
			wantMessage:    "Account created successfully",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "invalid request body",
		},
		{
			name:           "validation error - bad email",
			requestBody:    Request{Name: "Alice", Email: "not-an-email", Password: "secret1"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantMessage:    "field Email must be a valid email",
		},
		{
			name:           "validation error - short password",
			requestBody:    Request{Name: "Alice", Email: "alice@example.com", Password: "123"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantMessage:    "field Password is too short",
		},
		{
			name:           "duplicate email",
			requestBody:    Request{Name: "Alice", Email: "taken@example.com", Password: "secret1"},
			mockErr:        authservice.ErrEmailTaken,
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "Email already registered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			handler := New(newNoopLogger(), authMock)

			if tt.mockUID != "" || tt.mockErr != nil {
				req := tt.requestBody.(Request)
				authMock.On("Register", mock.Anything, req.Name, req.Email, req.Password).
					Return(tt.mockUID, tt.mockErr).Once()
			}

			var bodyBytes []byte
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				var err error
				bodyBytes, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(bodyBytes))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantMessage)
			if tt.wantStatusCode == http.StatusCreated {
				assert.Contains(t, rec.Body.String(), `"id":"uid-1"`)
				assert.Contains(t, rec.Body.String(), `"email":"alice@example.com"`)
			}

			authMock.AssertExpectations(t)
		})
	}
}
