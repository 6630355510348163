// Package profileupdate реализует HTTP-обработчик обновления профиля:
// имени и почты текущего пользователя.
package profileupdate

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
	authservice "github.com/magabrotheeeer/geosentinel/internal/services/auth"
)

// Request — структура входных данных обновления профиля.
type Request struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email"`
}

// Service описывает интерфейс бизнес-логики обновления профиля.
type Service interface {
	UpdateProfile(ctx context.Context, userUID, name, email string) (*models.User, error)
}

// Handler обрабатывает HTTP-запросы обновления профиля.
type Handler struct {
	log      *slog.Logger
	auth     Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, auth Service) *Handler {
	return &Handler{
		log:      log,
		auth:     auth,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновление профиля
// @Description Обновляет имя и почту текущего пользователя. Почта должна оставаться уникальной.
// @Tags Users
// @Accept json
// @Produce json
// @Param request body Request true "Новые данные профиля"
// @Success 200 {object} map[string]any "Обновленный профиль"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или занятая почта"
// @Failure 401 {object} response.ErrorResponse "Не аутентифицирован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/users/profile [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.profileupdate"

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

	updated, err := h.auth.UpdateProfile(r.Context(), user.UID, req.Name, req.Email)
	if err != nil {
		if errors.Is(err, authservice.ErrEmailTaken) {
			log.Info("email already in use", slog.String("email", req.Email))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Email is already in use"))
			return
		}
		log.Error("failed to update profile", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update profile"))
		return
	}

	log.Info("profile updated", slog.String("uid", user.UID))
	render.JSON(w, r, map[string]any{
		"success": true,
		"message": "Profile updated successfully",
		"data":    updated,
	})
}
