// Package listmy реализует HTTP-обработчик списка заявок текущего пользователя.
package listmy

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

// Service описывает интерфейс бизнес-логики списка заявок.
type Service interface {
	ListMine(ctx context.Context, userUID string) ([]*models.Request, error)
}

// Handler обрабатывает HTTP-запросы списка собственных заявок.
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
// @Summary Мои заявки
// @Description Возвращает заявки текущего пользователя, новые первыми.
// @Tags Requests
// @Produce json
// @Success 200 {object} map[string]any "Список заявок"
// @Failure 401 {object} response.ErrorResponse "Не аутентифицирован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/requests/my [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.request.listmy"

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

	requests, err := h.requests.ListMine(r.Context(), user.UID)
	if err != nil {
		log.Error("failed to list requests", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list requests"))
		return
	}
	if requests == nil {
		requests = []*models.Request{}
	}

	render.JSON(w, r, map[string]any{
		"success":  true,
		"requests": requests,
	})
}
