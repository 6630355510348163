// Package users реализует HTTP-обработчик списка пользователей
// административной панели: постранично, с поиском и фильтром по блокировке.
package users

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

// Service описывает интерфейс бизнес-логики списка пользователей.
type Service interface {
	ListUsers(ctx context.Context, search, status string, page, limit int) ([]*models.User, *models.Pagination, error)
}

// Handler обрабатывает HTTP-запросы списка пользователей.
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
// @Summary Список пользователей
// @Description Возвращает страницу обычных пользователей с поиском и фильтром по блокировке.
// @Tags Admin
// @Produce json
// @Param page query int false "Номер страницы" default(1)
// @Param limit query int false "Размер страницы" default(10)
// @Param search query string false "Поиск по имени или почте"
// @Param status query string false "Фильтр: blocked или active"
// @Success 200 {object} map[string]any "Страница пользователей"
// @Failure 401 {object} response.ErrorResponse "Не аутентифицирован"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещен"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/admin/users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.users"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	search := r.URL.Query().Get("search")
	status := r.URL.Query().Get("status")

	users, pagination, err := h.admin.ListUsers(r.Context(), search, status, page, limit)
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list users"))
		return
	}
	if users == nil {
		users = []*models.User{}
	}

	render.JSON(w, r, map[string]any{
		"success": true,
		"data": map[string]any{
			"users":      users,
			"pagination": pagination,
		},
	})
}
