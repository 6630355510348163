// Package updatestatus реализует HTTP-обработчик смены статуса заявки.
//
// Маршрут доступен только администраторам. Переход проверяется по
// жизненному циклу Pending → Processing → Completed | Failed; запрещённый
// переход отвечает 422.
package updatestatus

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/geosentinel/internal/http/middlewarectx"
	"github.com/magabrotheeeer/geosentinel/internal/http/response"
	"github.com/magabrotheeeer/geosentinel/internal/lib/sl"
	"github.com/magabrotheeeer/geosentinel/internal/models"
	requestservice "github.com/magabrotheeeer/geosentinel/internal/services/request"
)

// Request — структура входных данных для смены статуса.
type Request struct {
	Status     string `json:"status" validate:"required"`
	AdminNotes string `json:"adminNotes"`
}

// Service описывает интерфейс бизнес-логики смены статуса.
type Service interface {
	UpdateStatus(ctx context.Context, uid, status, adminNotes string, admin *models.User) (*models.Request, error)
}

// Handler обрабатывает HTTP-запросы смены статуса заявки.
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
// @Summary Смена статуса заявки
// @Description Переводит заявку в новый статус согласно жизненному циклу. Только для администраторов.
// @Tags Requests
// @Accept json
// @Produce json
// @Param requestId path string true "UID заявки"
// @Param request body Request true "Целевой статус и заметки администратора"
// @Success 200 {object} map[string]any "Обновленная заявка"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или неизвестный статус"
// @Failure 401 {object} response.ErrorResponse "Не аутентифицирован"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещен"
// @Failure 404 {object} response.ErrorResponse "Заявка не найдена"
// @Failure 422 {object} response.ErrorResponse "Запрещенный переход статуса"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/requests/{requestId}/status [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.request.updatestatus"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	admin, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("Not authenticated"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	uid := chi.URLParam(r, "requestId")
	updated, err := h.requests.UpdateStatus(r.Context(), uid, req.Status, req.AdminNotes, admin)
	if err != nil {
		switch {
		case errors.Is(err, requestservice.ErrNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("Request not found"))
		case errors.Is(err, requestservice.ErrUnknownStatus):
			log.Info("unknown target status", slog.String("status", req.Status))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Unknown status"))
		case errors.Is(err, requestservice.ErrInvalidTransition):
			log.Info("invalid status transition", sl.Err(err))
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(err.Error()))
		default:
			log.Error("failed to update status", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update status"))
		}
		return
	}

	log.Info("status updated", slog.String("uid", uid), slog.String("status", updated.Status))
	render.JSON(w, r, map[string]any{
		"success": true,
		"message": "Status updated successfully",
		"request": updated,
	})
}
