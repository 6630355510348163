// Package login реализует HTTP-обработчик входа пользователей.
//
// Декодирует JSON с почтой и паролем, делегирует проверку сервису
// аутентификации и при успехе выставляет httpOnly cookie с JWT сессии.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/geosentinel/internal/http/response"
	"github.com/magabrotheeeer/geosentinel/internal/http/session"
	"github.com/magabrotheeeer/geosentinel/internal/lib/sl"
	"github.com/magabrotheeeer/geosentinel/internal/metrics"
	"github.com/magabrotheeeer/geosentinel/internal/models"
	authservice "github.com/magabrotheeeer/geosentinel/internal/services/auth"
)

// Request — структура входных данных для входа.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Service описывает интерфейс бизнес-логики входа.
type Service interface {
	Login(ctx context.Context, email, rawPassword string) (string, *models.User, error)
}

// Handler обрабатывает HTTP-запросы входа.
type Handler struct {
	log          *slog.Logger
	auth         Service
	validate     *validator.Validate
	cookieTTL    time.Duration
	cookieSecure bool
}

// New создает новый экземпляр Handler.
// cookieTTL определяет время жизни cookie сессии, cookieSecure включает
// флаг Secure в продакшене.
func New(log *slog.Logger, auth Service, cookieTTL time.Duration, cookieSecure bool) *Handler {
	return &Handler{
		log:          log,
		auth:         auth,
		validate:     validator.New(),
		cookieTTL:    cookieTTL,
		cookieSecure: cookieSecure,
	}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Аутентифицирует пользователя по почте и паролю. Выставляет httpOnly cookie с JWT.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Учетные данные пользователя"
// @Success 200 {object} map[string]any "Успешный вход"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 403 {object} response.ErrorResponse "Учетная запись заблокирована"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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

	token, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, authservice.ErrAccountBlocked):
			log.Info("blocked account attempted login", slog.String("email", req.Email))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("Your account has been blocked. Please contact support."))
		case errors.Is(err, authservice.ErrUserNotFound), errors.Is(err, authservice.ErrInvalidCredentials):
			log.Info("invalid credentials", slog.String("email", req.Email))
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("Invalid email or password"))
		default:
			log.Error("login failed", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("login failed"))
		}
		return
	}

	session.SetTokenCookie(w, token, h.cookieTTL, h.cookieSecure)
	metrics.LoginsTotal.Inc()
	log.Info("login success", slog.String("email", user.Email))
	render.JSON(w, r, map[string]any{
		"success": true,
		"message": "Login successful",
		"user":    user.Public(),
	})
}
