// Package middlewarectx содержит HTTP middleware портала: аутентификацию
// по cookie сессии, проверку роли, режим обслуживания и ограничение
// частоты запросов.
//
// AuthMiddleware читает JWT из cookie, разрешает его в актуального
// пользователя и кладёт пользователя в контекст запроса. Последующие
// middleware и обработчики достают его через UserFromContext.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/geosentinel/internal/http/response"
	"github.com/magabrotheeeer/geosentinel/internal/http/session"
	"github.com/magabrotheeeer/geosentinel/internal/lib/sl"
	"github.com/magabrotheeeer/geosentinel/internal/models"
	authservice "github.com/magabrotheeeer/geosentinel/internal/services/auth"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserKey — ключ для пользователя в контексте.
const UserKey Key = "user"

// AuthService описывает интерфейс разрешения cookie-токена в пользователя.
type AuthService interface {
	ResolveToken(ctx context.Context, token string) (*models.User, error)
}

// UserFromContext возвращает аутентифицированного пользователя из контекста.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserKey).(*models.User)
	return user, ok
}

// AuthMiddleware возвращает HTTP middleware, который проверяет JWT из cookie сессии.
//
// Если токен валиден и пользователь активен, пользователь добавляется
// в контекст запроса; иначе возвращается 401, для заблокированной
// учётной записи — 403.
func AuthMiddleware(log *slog.Logger, auth AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AuthMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token := session.TokenFromRequest(r)
			if token == "" {
				log.Info("missing session cookie")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Not authenticated"))
				return
			}

			user, err := auth.ResolveToken(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, authservice.ErrAccountBlocked):
					log.Info("blocked account attempted access")
					render.Status(r, http.StatusForbidden)
					render.JSON(w, r, response.Error("Your account has been blocked. Please contact support."))
				case errors.Is(err, authservice.ErrUserNotFound):
					log.Info("token of unknown user")
					render.Status(r, http.StatusUnauthorized)
					render.JSON(w, r, response.Error("User not found"))
				default:
					log.Error("invalid or expired token", sl.Err(err))
					render.Status(r, http.StatusUnauthorized)
					render.JSON(w, r, response.Error("Invalid token"))
				}
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
