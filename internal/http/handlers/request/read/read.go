// Package read реализует HTTP-обработчик чтения одной заявки.
// Заявка доступна владельцу и администраторам.
package read

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

// Service описывает интерфейс бизнес-логики чтения заявки.
type Service interface {
	GetByID(ctx context.Context, uid string, caller *models.User) (*models.Request, error)
}

// Handler обрабатывает HTTP-запросы чтения заявки.
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
// @Summary Чтение заявки
// @Description Возвращает заявку по идентификатору. Доступна владельцу и администраторам.
// @Tags Requests
// @Produce json
// @Param requestId path string true "UID заявки"
// @Success 200 {object} map[string]any "Заявка"
// @Failure 401 {object} response.ErrorResponse "Не аутентифицирован"
// @Failure 403 {object} response.ErrorResponse "Чужая заявка"
// @Failure 404 {object} response.ErrorResponse "Заявка не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/requests/{requestId} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.request.read"

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
	req, err := h.requests.GetByID(r.Context(), uid, user)
	if err != nil {
		switch {
		case errors.Is(err, requestservice.ErrNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("Request not found"))
		case errors.Is(err, requestservice.ErrForbidden):
			log.Info("access to foreign request denied", slog.String("uid", uid))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("Access denied"))
		default:
			log.Error("failed to read request", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to read request"))
		}
		return
	}

	render.JSON(w, r, map[string]any{
		"success": true,
		"request": req,
	})
}
