// Package userblock реализует HTTP-обработчик переключения блокировки
// пользователя. Администраторов блокировать нельзя.
package userblock

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
	"github.com/magabrotheeeer/geosentinel/internal/models"
	adminservice "github.com/magabrotheeeer/geosentinel/internal/services/admin"
)

// Service описывает интерфейс бизнес-логики блокировки пользователя.
type Service interface {
	ToggleBlock(ctx context.Context, userUID string) (*models.User, error)
}

// Handler обрабатывает HTTP-запросы переключения блокировки.
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
// @Summary Переключение блокировки пользователя
// @Description Блокирует активного пользователя или разблокирует заблокированного.
// @Tags Admin
// @Produce json
// @Param userId path string true "UID пользователя"
// @Success 200 {object} map[string]any "Новое состояние блокировки"
// @Failure 401 {object} response.ErrorResponse "Не аутентифицирован"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещен или попытка заблокировать администратора"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/admin/users/{userId}/toggle-block [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.userblock"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID := chi.URLParam(r, "userId")
	updated, err := h.admin.ToggleBlock(r.Context(), userUID)
	if err != nil {
		switch {
		case errors.Is(err, adminservice.ErrUserNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("User not found"))
		case errors.Is(err, adminservice.ErrCannotBlockAdmin):
			log.Info("attempt to block an admin", slog.String("uid", userUID))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("Cannot block admin users"))
		default:
			log.Error("failed to toggle block", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to toggle block"))
		}
		return
	}

	message := "User unblocked successfully"
	if updated.IsBlocked {
		message = "User blocked successfully"
	}
	log.Info("user block toggled", slog.String("uid", userUID), slog.Bool("blocked", updated.IsBlocked))
	render.JSON(w, r, map[string]any{
		"success": true,
		"message": message,
		"data":    map[string]any{"isBlocked": updated.IsBlocked},
	})
}
