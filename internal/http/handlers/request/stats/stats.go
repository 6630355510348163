// Package stats реализует HTTP-обработчик статистики заявок текущего пользователя.
package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/geosentinel/internal/http/middlewarectx"
	"github.com/magabrotheeeer/geosentinel/internal/http/response"
	"github.com/magabrotheeeer/geosentinel/internal/lib/sl"
	"github.com/magabrotheeeer/geosentinel/internal/models"
)

// Service описывает интерфейс бизнес-логики статистики заявок.
type Service interface {
	StatsForUser(ctx context.Context, userUID string) (*models.RequestStats, error)
}

// Handler обрабатывает HTTP-запросы статистики заявок.
type Handler struct {
	log      *slog.Logger
	requests Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, requests Service) *Handler {
	return &Handler{
		log:      log,
		requests: requests,
	}
}

// ServeHTTP godoc
// @Summary Статистика моих заявок
// @Description Возвращает количество заявок пользователя всего, за 30 дней и разбивку по статусам.
// @Tags Requests
// @Produce json
// @Success 200 {object} map[string]any "Статистика заявок"
// @Failure 401 {object} response.ErrorResponse "Не аутентифицирован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/requests/stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.request.stats"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("Not authenticated"))
		return
	}

	stats, err := h.requests.StatsForUser(r.Context(), user.UID)
	if err != nil {
		log.Error("failed to load request stats", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to load request stats"))
		return
	}

	render.JSON(w, r, stats)
}
