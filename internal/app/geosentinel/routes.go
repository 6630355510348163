// Package geosentinel предоставляет маршруты портала заявок AOI.
package geosentinel

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/geosentinel/internal/config"
	"github.com/magabrotheeeer/geosentinel/internal/http/handlers/admin/dashboard"
	adminrequests "github.com/magabrotheeeer/geosentinel/internal/http/handlers/admin/requests"
	"github.com/magabrotheeeer/geosentinel/internal/http/handlers/admin/settingsget"
	"github.com/magabrotheeeer/geosentinel/internal/http/handlers/admin/settingsupdate"
	"github.com/magabrotheeeer/geosentinel/internal/http/handlers/admin/userblock"
	"github.com/magabrotheeeer/geosentinel/internal/http/handlers/admin/userremove"
	adminusers "github.com/magabrotheeeer/geosentinel/internal/http/handlers/admin/users"
	"github.com/magabrotheeeer/geosentinel/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/geosentinel/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/geosentinel/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/geosentinel/internal/http/handlers/auth/signup"
	"github.com/magabrotheeeer/geosentinel/internal/http/handlers/health"
	"github.com/magabrotheeeer/geosentinel/internal/http/handlers/request/create"
	"github.com/magabrotheeeer/geosentinel/internal/http/handlers/request/listmy"
	"github.com/magabrotheeeer/geosentinel/internal/http/handlers/request/listuser"
	"github.com/magabrotheeeer/geosentinel/internal/http/handlers/request/read"
	"github.com/magabrotheeeer/geosentinel/internal/http/handlers/request/remove"
	"github.com/magabrotheeeer/geosentinel/internal/http/handlers/request/stats"
	"github.com/magabrotheeeer/geosentinel/internal/http/handlers/request/updatestatus"
	"github.com/magabrotheeeer/geosentinel/internal/http/handlers/user/profile"
	"github.com/magabrotheeeer/geosentinel/internal/http/handlers/user/profileupdate"
	"github.com/magabrotheeeer/geosentinel/internal/http/middlewarectx"
	"github.com/magabrotheeeer/geosentinel/internal/models"
	adminservice "github.com/magabrotheeeer/geosentinel/internal/services/admin"
	authservice "github.com/magabrotheeeer/geosentinel/internal/services/auth"
	requestservice "github.com/magabrotheeeer/geosentinel/internal/services/request"
	settingsservice "github.com/magabrotheeeer/geosentinel/internal/services/settings"
	"github.com/magabrotheeeer/geosentinel/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config,
	db *repository.Storage,
	auth *authservice.AuthService,
	requests *requestservice.RequestService,
	settings *settingsservice.SettingsService,
	admin *adminservice.AdminService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	limiter := rate.NewLimiter(rate.Limit(50), 100)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/signup", signup.New(logger, auth).ServeHTTP)
		r.Post("/auth/login", login.New(logger, auth, cfg.TokenTTL, cfg.CookieSecure).ServeHTTP)
		r.Post("/auth/logout", logout.New(logger, cfg.CookieSecure).ServeHTTP)
		r.Get("/auth/me", me.New(logger, auth).ServeHTTP)

		// Группа пользовательских конечных точек: аутентификация по cookie,
		// режим обслуживания и ограничение частоты запросов.
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.AuthMiddleware(logger, auth))
			r.Use(middlewarectx.MaintenanceMiddleware(logger, settings))
			r.Use(middlewarectx.RateLimitMiddleware(logger, limiter))

			r.Post("/requests", create.New(logger, requests).ServeHTTP)
			r.Get("/requests/my", listmy.New(logger, requests).ServeHTTP)
			r.Get("/requests/stats", stats.New(logger, requests).ServeHTTP)
			r.Get("/requests/{requestId}", read.New(logger, requests).ServeHTTP)
			r.Delete("/requests/{requestId}", remove.New(logger, requests).ServeHTTP)

			r.Get("/users/profile", profile.New(logger).ServeHTTP)
			r.Put("/users/profile", profileupdate.New(logger, auth).ServeHTTP)
		})

		// Группа административных конечных точек: режим обслуживания
		// администраторов не касается.
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.AuthMiddleware(logger, auth))
			r.Use(middlewarectx.RequireRoles(logger, models.RoleAdmin))

			r.Get("/requests/user/{userId}", listuser.New(logger, requests).ServeHTTP)
			r.Patch("/requests/{requestId}/status", updatestatus.New(logger, requests).ServeHTTP)

			r.Get("/admin/dashboard/stats", dashboard.New(logger, admin).ServeHTTP)
			r.Get("/admin/users", adminusers.New(logger, admin).ServeHTTP)
			r.Patch("/admin/users/{userId}/toggle-block", userblock.New(logger, admin).ServeHTTP)
			r.Delete("/admin/users/{userId}", userremove.New(logger, admin).ServeHTTP)
			r.Get("/admin/requests", adminrequests.New(logger, admin).ServeHTTP)
			r.Get("/admin/settings", settingsget.New(logger, settings).ServeHTTP)
			r.Put("/admin/settings", settingsupdate.New(logger, settings).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, db).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
