// Package signup реализует HTTP-обработчик регистрации пользователей.
//
// Декодирует JSON с именем, почтой и паролем, валидирует поля и делегирует
// создание учётной записи сервису аутентификации. Успешная регистрация
// отвечает 201, занятая почта — 400.
package signup

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/geosentinel/internal/http/response"
	"github.com/magabrotheeeer/geosentinel/internal/lib/sl"
	"github.com/magabrotheeeer/geosentinel/internal/metrics"
	authservice "github.com/magabrotheeeer/geosentinel/internal/services/auth"
)

// Request — структура входных данных для регистрации.
type Request struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, name, email, rawPassword string) (string, error)
}

// Handler обрабатывает HTTP-запросы регистрации.
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
// @Summary Регистрация пользователя
// @Description Создает учетную запись с ролью user. Почта должна быть уникальной.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Данные нового пользователя"
// @Success 201 {object} map[string]any "Учетная запись создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или занятая почта"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/signup [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signup"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	uid, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, authservice.ErrEmailTaken) {
			log.Info("email already registered", slog.String("email", req.Email))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Email already registered"))
			return
		}
		log.Error("failed to register user", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register user"))
		return
	}

	metrics.SignupsTotal.Inc()
	log.Info("user registered", slog.String("uid", uid))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]any{
		"success": true,
		"message": "Account created successfully. You can now log in.",
		"user": map[string]any{
			"id":    uid,
			"name":  req.Name,
			"email": req.Email,
		},
	})
}
