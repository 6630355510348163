// Package geosentinel собирает приложение портала заявок AOI:
// хранилище, кеш, публикацию событий, сервисы и HTTP-сервер.
package geosentinel

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/geosentinel/internal/cache"
	"github.com/magabrotheeeer/geosentinel/internal/config"
	"github.com/magabrotheeeer/geosentinel/internal/lib/jwt"
	"github.com/magabrotheeeer/geosentinel/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/geosentinel/internal/lib/sl"
	"github.com/magabrotheeeer/geosentinel/internal/migrations"
	adminservice "github.com/magabrotheeeer/geosentinel/internal/services/admin"
	authservice "github.com/magabrotheeeer/geosentinel/internal/services/auth"
	requestservice "github.com/magabrotheeeer/geosentinel/internal/services/request"
	settingsservice "github.com/magabrotheeeer/geosentinel/internal/services/settings"
	"github.com/magabrotheeeer/geosentinel/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и ресурсы приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New инициализирует приложение: подключается к PostgreSQL и Redis,
// применяет миграции, настраивает публикацию событий в RabbitMQ
// и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	// Публикация событий best effort: без RabbitMQ портал продолжает
	// работать, nil-publisher превращает Publish в no-op.
	var publisher *rabbitmq.Publisher
	if cfg.RabbitMQ.URL != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.ConnectRetries, cfg.RabbitMQ.ConnectDelay)
		if err != nil {
			logger.Warn("rabbitmq unavailable, request events disabled", sl.Err(err))
		} else {
			ch, err := rabbitmq.SetupChannel(conn)
			if err != nil {
				logger.Warn("rabbitmq channel setup failed, request events disabled", sl.Err(err))
			} else {
				publisher = rabbitmq.NewPublisher(ch)
			}
		}
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	auth := authservice.NewAuthService(db, jwtMaker)
	requests := requestservice.NewRequestService(logger, db, cacheRedis, publisher)
	settings := settingsservice.NewSettingsService(logger, db, cacheRedis)
	admin := adminservice.NewAdminService(db, db)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, db, auth, requests, settings, admin)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		return err
	}
}
