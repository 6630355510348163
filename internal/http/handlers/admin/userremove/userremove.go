// Package userremove реализует HTTP-обработчик удаления пользователя
// вместе с его заявками.
package userremove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/geosentinel/internal/http/response"
	"github.com/magabrotheeeer/geosentinel/internal/lib/sl"
	adminservice "github.com/magabrotheeeer/geosentinel/internal/services/admin"
)

// Service описывает интерфейс бизнес-логики удаления пользователя.
type Service interface {
	DeleteUser(ctx context.Context, userUID string) error
}

// Handler обрабатывает HTTP-запросы удаления пользователя.
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
// @Summary Удаление пользователя
// @Description Удаляет пользователя и каскадно все его заявки.
// @Tags Admin
// @Produce json
// @Param userId path string true "UID пользователя"
// @Success 200 {object} response.Response "Пользователь удален"
// @Failure 401 {object} response.ErrorResponse "Не аутентифицирован"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещен или попытка удалить администратора"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/admin/users/{userId} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.userremove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID := chi.URLParam(r, "userId")
	if err := h.admin.DeleteUser(r.Context(), userUID); err != nil {
		switch {
		case errors.Is(err, adminservice.ErrUserNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("User not found"))
		case errors.Is(err, adminservice.ErrCannotDeleteAdmin):
			log.Info("attempt to delete an admin", slog.String("uid", userUID))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("Cannot delete admin users"))
		default:
			log.Error("failed to delete user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to delete user"))
		}
		return
	}

	log.Info("user deleted", slog.String("uid", userUID))
	render.JSON(w, r, response.OK("User and associated requests deleted successfully"))
}
