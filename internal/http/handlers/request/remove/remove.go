// Package remove реализует HTTP-обработчик удаления заявки.
// Заявку может удалить владелец или администратор.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/geosentinel/internal/http/middlewarectx"
	"github.com/magabrotheeeer/geosentinel/internal/http/response"
	"github.com/magabrotheeeer/geosentinel/internal/lib/sl"
	"github.com/magabrotheeeer/geosentinel/internal/models"
	requestservice "github.com/magabrotheeeer/geosentinel/internal/services/request"
)

// Service описывает интерфейс бизнес-логики удаления заявки.
type Service interface {
	Delete(ctx context.Context, uid string, caller *models.User) error
}

// Handler обрабатывает HTTP-запросы удаления заявки.
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
// @Summary Удаление заявки
// @Description Удаляет заявку по идентификатору. Доступно владельцу и администраторам.
// @Tags Requests
// @Produce json
// @Param requestId path string true "UID заявки"
// @Success 200 {object} response.Response "Заявка удалена"
// @Failure 401 {object} response.ErrorResponse "Не аутентифицирован"
// @Failure 403 {object} response.ErrorResponse "Чужая заявка"
// @Failure 404 {object} response.ErrorResponse "Заявка не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/requests/{requestId} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.request.remove"

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

	uid := chi.URLParam(r, "requestId")
	if err := h.requests.Delete(r.Context(), uid, user); err != nil {
		switch {
		case errors.Is(err, requestservice.ErrNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("Request not found"))
		case errors.Is(err, requestservice.ErrForbidden):
			log.Info("deletion of foreign request denied", slog.String("uid", uid))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("Access denied"))
		default:
			log.Error("failed to delete request", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to delete request"))
		}
		return
	}

	log.Info("request deleted", slog.String("uid", uid))
	render.JSON(w, r, response.OK("Request deleted successfully"))
}
