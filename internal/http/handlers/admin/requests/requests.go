// Package requests реализует HTTP-обработчик списка всех заявок
// административной панели: постранично, с фильтром по статусу и поиском
// по владельцу.
package requests

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/geosentinel/internal/http/response"
	"github.com/magabrotheeeer/geosentinel/internal/lib/sl"
	"github.com/magabrotheeeer/geosentinel/internal/models"
)

// Service описывает интерфейс бизнес-логики списка заявок.
type Service interface {
	ListRequests(ctx context.Context, status, search string, page, limit int) ([]*models.RequestWithOwner, *models.Pagination, error)
}

// Handler обрабатывает HTTP-запросы списка всех заявок.
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
// @Summary Список всех заявок
// @Description Возвращает страницу заявок с данными владельцев, фильтром по статусу и поиском.
// @Tags Admin
// @Produce json
// @Param page query int false "Номер страницы" default(1)
// @Param limit query int false "Размер страницы" default(10)
// @Param status query string false "Фильтр по статусу"
// @Param search query string false "Поиск по имени или почте владельца"
// @Success 200 {object} map[string]any "Страница заявок"
// @Failure 401 {object} response.ErrorResponse "Не аутентифицирован"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещен"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/admin/requests [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.requests"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	status := r.URL.Query().Get("status")
	search := r.URL.Query().Get("search")

	requests, pagination, err := h.admin.ListRequests(r.Context(), status, search, page, limit)
	if err != nil {
		log.Error("failed to list requests", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list requests"))
		return
	}
	if requests == nil {
		requests = []*models.RequestWithOwner{}
	}

	render.JSON(w, r, map[string]any{
		"success": true,
		"data": map[string]any{
			"requests":   requests,
			"pagination": pagination,
		},
	})
}
