// Package listuser реализует HTTP-обработчик списка заявок произвольного
// пользователя. Маршрут доступен только администраторам.
package listuser

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/geosentinel/internal/http/response"
	"github.com/magabrotheeeer/geosentinel/internal/lib/sl"
	"github.com/magabrotheeeer/geosentinel/internal/models"
)

// Service описывает интерфейс бизнес-логики списка заявок.
type Service interface {
	ListForUser(ctx context.Context, userUID string) ([]*models.Request, error)
}

// Handler обрабатывает HTTP-запросы списка заявок пользователя.
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
// @Summary Заявки пользователя
// @Description Возвращает заявки указанного пользователя. Только для администраторов.
// @Tags Requests
// @Produce json
// @Param userId path string true "UID пользователя"
// @Success 200 {object} map[string]any "Список заявок"
// @Failure 401 {object} response.ErrorResponse "Не аутентифицирован"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещен"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/requests/user/{userId} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.request.listuser"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID := chi.URLParam(r, "userId")
	requests, err := h.requests.ListForUser(r.Context(), userUID)
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
