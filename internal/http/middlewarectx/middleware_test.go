package middlewarectx_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/geosentinel/internal/http/middlewarectx"
	"github.com/magabrotheeeer/geosentinel/internal/http/session"
	"github.com/magabrotheeeer/geosentinel/internal/models"
	authservice "github.com/magabrotheeeer/geosentinel/internal/services/auth"
)

// Мок для AuthService
type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) ResolveToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// Мок для SettingsProvider
type SettingsProviderMock struct {
	mock.Mock
}

func (m *SettingsProviderMock) Get(ctx context.Context) (*models.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Settings), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okHandler(captured **models.User) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			u, _ := middlewarectx.UserFromContext(r.Context())
			*captured = u
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	activeUser := &models.User{UID: "user-1", Email: "alice@example.com", Role: models.RoleUser}

	tests := []struct {
		name       string
		cookie     string
		setupMocks func(a *AuthServiceMock)
		wantStatus int
		wantBody   string
	}{
		{
			name:   "valid token passes user to context",
			cookie: "good",
			setupMocks: func(a *AuthServiceMock) {
				a.On("ResolveToken", mock.Anything, "good").Return(activeUser, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing cookie",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Not authenticated",
		},
		{
			name:   "invalid token",
			cookie: "bad",
			setupMocks: func(a *AuthServiceMock) {
				a.On("ResolveToken", mock.Anything, "bad").Return(nil, authservice.ErrInvalidToken).Once()
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Invalid token",
		},
		{
			name:   "token of deleted user",
			cookie: "stale",
			setupMocks: func(a *AuthServiceMock) {
				a.On("ResolveToken", mock.Anything, "stale").Return(nil, authservice.ErrUserNotFound).Once()
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "User not found",
		},
		{
			name:   "blocked account",
			cookie: "blocked",
			setupMocks: func(a *AuthServiceMock) {
				a.On("ResolveToken", mock.Anything, "blocked").Return(nil, authservice.ErrAccountBlocked).Once()
			},
			wantStatus: http.StatusForbidden,
			wantBody:   "Your account has been blocked. Please contact support.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := new(AuthServiceMock)
			if tt.setupMocks != nil {
				tt.setupMocks(auth)
			}

			var captured *models.User
			handler := middlewarectx.AuthMiddleware(discardLogger(), auth)(okHandler(&captured))

			req := httptest.NewRequest(http.MethodGet, "/api/requests/my", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: session.CookieName, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
			if tt.wantStatus == http.StatusOK {
				require.NotNil(t, captured)
				assert.Equal(t, "user-1", captured.UID)
			}

			auth.AssertExpectations(t)
		})
	}
}

func withUser(r *http.Request, user *models.User) *http.Request {
	ctx := context.WithValue(r.Context(), middlewarectx.UserKey, user)
	return r.WithContext(ctx)
}

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name       string
		user       *models.User
		roles      []string
		wantStatus int
	}{
		{
			name:       "admin passes admin gate",
			user:       &models.User{UID: "admin-1", Role: models.RoleAdmin},
			roles:      []string{models.RoleAdmin},
			wantStatus: http.StatusOK,
		},
		{
			name:       "regular user is denied",
			user:       &models.User{UID: "user-1", Role: models.RoleUser},
			roles:      []string{models.RoleAdmin},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "no user in context",
			roles:      []string{models.RoleAdmin},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middlewarectx.RequireRoles(discardLogger(), tt.roles...)(okHandler(nil))

			req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
			if tt.user != nil {
				req = withUser(req, tt.user)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestMaintenanceMiddleware(t *testing.T) {
	enabled := &models.Settings{MaintenanceMode: models.MaintenanceMode{
		Enabled:       true,
		Message:       "Scheduled maintenance",
		AllowedEmails: []string{"vip@example.com"},
	}}
	disabled := &models.Settings{}

	tests := []struct {
		name       string
		user       *models.User
		setupMocks func(s *SettingsProviderMock)
		wantStatus int
		wantBody   string
	}{
		{
			name: "maintenance disabled lets everyone through",
			user: &models.User{UID: "user-1", Role: models.RoleUser},
			setupMocks: func(s *SettingsProviderMock) {
				s.On("Get", mock.Anything).Return(disabled, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "regular user rejected during maintenance",
			user: &models.User{UID: "user-1", Email: "alice@example.com", Role: models.RoleUser},
			setupMocks: func(s *SettingsProviderMock) {
				s.On("Get", mock.Anything).Return(enabled, nil).Once()
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `"maintenanceMode":true`,
		},
		{
			name: "admin bypasses maintenance",
			user: &models.User{UID: "admin-1", Role: models.RoleAdmin},
			setupMocks: func(s *SettingsProviderMock) {
				s.On("Get", mock.Anything).Return(enabled, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "allowed email bypasses maintenance case-insensitively",
			user: &models.User{UID: "user-2", Email: "VIP@Example.com", Role: models.RoleUser},
			setupMocks: func(s *SettingsProviderMock) {
				s.On("Get", mock.Anything).Return(enabled, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "settings read failure fails open",
			user: &models.User{UID: "user-1", Role: models.RoleUser},
			setupMocks: func(s *SettingsProviderMock) {
				s.On("Get", mock.Anything).Return(nil, assert.AnError).Once()
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := new(SettingsProviderMock)
			tt.setupMocks(settings)

			handler := middlewarectx.MaintenanceMiddleware(discardLogger(), settings)(okHandler(nil))

			req := httptest.NewRequest(http.MethodGet, "/api/requests/my", nil)
			if tt.user != nil {
				req = withUser(req, tt.user)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}

			settings.AssertExpectations(t)
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := rate.NewLimiter(rate.Limit(0), 2)
	handler := middlewarectx.RateLimitMiddleware(discardLogger(), limiter)(okHandler(nil))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
