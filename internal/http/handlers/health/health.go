package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/geosentinel/internal/lib/sl"
)

// Storage описывает интерфейс проверки готовности базы данных.
type Storage interface {
	CheckDatabaseReady(ctx context.Context) error
}

type Handler struct {
	log     *slog.Logger
	storage Storage
}

func New(log *slog.Logger, storage Storage) *Handler {
	return &Handler{
		log:     log,
		storage: storage,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	if err := h.storage.CheckDatabaseReady(r.Context()); err != nil {
		h.log.Error("database is not ready", slog.String("op", op), sl.Err(err))
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, map[string]any{
			"status": "unavailable",
		})
		return
	}

	render.JSON(w, r, map[string]any{
		"status": "ok",
	})
}
