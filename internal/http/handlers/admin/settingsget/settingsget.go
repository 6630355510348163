// Package settingsget реализует HTTP-обработчик чтения настроек портала.
package settingsget

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/geosentinel/internal/http/response"
	"github.com/magabrotheeeer/geosentinel/internal/lib/sl"
	"github.com/magabrotheeeer/geosentinel/internal/models"
)

// Service описывает интерфейс бизнес-логики чтения настроек.
type Service interface {
	Get(ctx context.Context) (*models.Settings, error)
}

// Handler обрабатывает HTTP-запросы чтения настроек.
type Handler struct {
	log      *slog.Logger
	settings Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, settings Service) *Handler {
	return &Handler{
		log:      log,
		settings: settings,
	}
}

// ServeHTTP godoc
// @Summary Настройки портала
// @Description Возвращает настройки режима обслуживания.
// @Tags Admin
// @Produce json
// @Success 200 {object} map[string]any "Настройки"
// @Failure 401 {object} response.ErrorResponse "Не аутентифицирован"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещен"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/admin/settings [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.settingsget"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	settings, err := h.settings.Get(r.Context())
	if err != nil {
		log.Error("failed to load settings", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to load settings"))
		return
	}

	render.JSON(w, r, map[string]any{
		"success": true,
		"data":    settings,
	})
}
