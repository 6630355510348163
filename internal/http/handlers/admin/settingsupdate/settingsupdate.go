// Package settingsupdate реализует HTTP-обработчик обновления настроек
// режима обслуживания.
package settingsupdate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/geosentinel/internal/http/response"
	"github.com/magabrotheeeer/geosentinel/internal/lib/sl"
	"github.com/magabrotheeeer/geosentinel/internal/models"
)

// Service описывает интерфейс бизнес-логики обновления настроек.
type Service interface {
	Update(ctx context.Context, mode models.MaintenanceMode) (*models.Settings, error)
}

// Handler обрабатывает HTTP-запросы обновления настроек.
type Handler struct {
	log      *slog.Logger
	settings Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, settings Service) *Handler {
	return &Handler{
		log:      log,
		settings: settings,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновление настроек портала
// @Description Перезаписывает настройки режима обслуживания и список исключений.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body models.DummySettings true "Новые настройки"
// @Success 200 {object} map[string]any "Обновленные настройки"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Не аутентифицирован"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещен"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/admin/settings [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.settingsupdate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var dummy models.DummySettings
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

	settings, err := h.settings.Update(r.Context(), models.MaintenanceMode{
		Enabled:       dummy.MaintenanceMode.Enabled,
		Message:       dummy.MaintenanceMode.Message,
		AllowedEmails: dummy.MaintenanceMode.AllowedEmails,
	})
	if err != nil {
		log.Error("failed to update settings", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update settings"))
		return
	}

	log.Info("settings updated", slog.Bool("maintenance", settings.MaintenanceMode.Enabled))
	render.JSON(w, r, map[string]any{
		"success": true,
		"message": "Settings updated successfully",
		"data":    settings,
	})
}
