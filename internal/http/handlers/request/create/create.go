// Package create реализует HTTP-обработчик создания заявки AOI.
//
// Декодирует JSON с координатами области и диапазоном дат, валидирует
// присутствие полей и делегирует проверку семантики и сохранение
// сервису заявок. Новая заявка получает статус Pending.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/geosentinel/internal/http/middlewarectx"
	"github.com/magabrotheeeer/geosentinel/internal/http/response"
	"github.com/magabrotheeeer/geosentinel/internal/lib/sl"
	"github.com/magabrotheeeer/geosentinel/internal/models"
	requestservice "github.com/magabrotheeeer/geosentinel/internal/services/request"
)

// Service описывает интерфейс бизнес-логики создания заявки.
type Service interface {
	Create(ctx context.Context, userUID string, dummy models.DummyRequest) (*models.Request, error)
}

// Handler обрабатывает HTTP-запросы создания заявки.
type Handler struct {
	log      *slog.Logger
	requests Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, requests Service) *Handler {
	return &Handler{
		log:      log,
		requests: requests,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создание заявки AOI
// @Description Создает заявку на обработку области интереса со статусом Pending.
// @Tags Requests
// @Accept json
// @Produce json
// @Param request body models.DummyRequest true "Координаты области и диапазон дат"
// @Success 201 {object} map[string]any "Заявка создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON, координаты или даты"
// @Failure 401 {object} response.ErrorResponse "Не аутентифицирован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/requests [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.request.create"

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

	var dummy models.DummyRequest
	if err := json.NewDecoder(r.Body).Decode(&dummy); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(dummy); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	created, err := h.requests.Create(r.Context(), user.UID, dummy)
	if err != nil {
		switch {
		case errors.Is(err, requestservice.ErrInvalidArea),
			errors.Is(err, requestservice.ErrInvalidDate),
			errors.Is(err, requestservice.ErrInvalidDateRange):
			log.Info("invalid request data", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
		default:
			log.Error("failed to create request", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create request"))
		}
		return
	}

	log.Info("request created", slog.String("uid", created.UID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]any{
		"success": true,
		"message": "Request submitted successfully",
		"request": created,
	})
}
