package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/geosentinel/internal/http/response"
	"github.com/magabrotheeeer/geosentinel/internal/lib/sl"
	"github.com/magabrotheeeer/geosentinel/internal/models"
)

// SettingsProvider описывает интерфейс чтения настроек портала.
type SettingsProvider interface {
	Get(ctx context.Context) (*models.Settings, error)
}

// MaintenanceMiddleware возвращает HTTP middleware режима обслуживания.
//
// При включённом режиме запросы получают 503; администраторы и
// пользователи из списка исключений сохраняют доступ. Ошибка чтения
// настроек не блокирует запрос: портал продолжает работать (fail-open).
// Ставится после AuthMiddleware.
func MaintenanceMiddleware(log *slog.Logger, settings SettingsProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.MaintenanceMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			current, err := settings.Get(r.Context())
			if err != nil {
				log.Error("failed to read settings, letting request through", sl.Err(err))
				next.ServeHTTP(w, r)
				return
			}
			if !current.MaintenanceMode.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			if user, ok := UserFromContext(r.Context()); ok {
				if user.IsAdmin() || emailAllowed(user.Email, current.MaintenanceMode.AllowedEmails) {
					next.ServeHTTP(w, r)
					return
				}
			}

			message := current.MaintenanceMode.Message
			if message == "" {
				message = models.DefaultMaintenanceMessage
			}
			log.Info("request rejected, maintenance mode enabled")
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Maintenance(message))
		})
	}
}

func emailAllowed(email string, allowed []string) bool {
	email = strings.ToLower(email)
	for _, a := range allowed {
		if strings.ToLower(a) == email {
			return true
		}
	}
	return false
}
