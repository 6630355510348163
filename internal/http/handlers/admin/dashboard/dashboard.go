// Package dashboard реализует HTTP-обработчик сводной статистики
// административной панели.
package dashboard

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

// Service описывает интерфейс бизнес-логики панели.
type Service interface {
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

// Handler обрабатывает HTTP-запросы сводной статистики.
type Handler struct {
	log   *slog.Logger
	admin Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, admin Service) *Handler {
	return &Handler{
		log:   log,
		admin: admin,
	}
}

// ServeHTTP godoc
// @Summary Сводная статистика панели
// @Description Возвращает счетчики пользователей и заявок, последние заявки и последних пользователей.
// @Tags Admin
// @Produce json
// @Success 200 {object} map[string]any "Статистика панели"
// @Failure 401 {object} response.ErrorResponse "Не аутентифицирован"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещен"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/admin/dashboard/stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.dashboard"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	stats, err := h.admin.DashboardStats(r.Context())
	if err != nil {
		log.Error("failed to load dashboard stats", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to load dashboard stats"))
		return
	}

	render.JSON(w, r, map[string]any{
		"success": true,
		"data":    stats,
	})
}
