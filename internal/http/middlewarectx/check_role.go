package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/geosentinel/internal/http/response"
)

// RequireRoles возвращает HTTP middleware, пропускающий только
// пользователей с одной из перечисленных ролей.
// Ставится после AuthMiddleware.
func RequireRoles(log *slog.Logger, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireRoles"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			user, ok := UserFromContext(r.Context())
			if !ok {
				log.Error("no user in request context")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Not authenticated"))
				return
			}

			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.Info("access denied", slog.String("role", user.Role))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("Access denied"))
		})
	}
}
