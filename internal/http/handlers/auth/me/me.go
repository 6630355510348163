// Package me реализует HTTP-обработчик проверки текущей сессии.
//
// Обработчик сам разрешает cookie-токен, минуя AuthMiddleware: фронтенд
// опрашивает его при загрузке страницы, и отсутствие сессии — не ошибка,
// а обычный ответ 200 с success=false.
package me

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/geosentinel/internal/http/session"
	"github.com/magabrotheeeer/geosentinel/internal/models"
)

// Service описывает интерфейс разрешения cookie-токена в пользователя.
type Service interface {
	ResolveToken(ctx context.Context, token string) (*models.User, error)
}

// Handler обрабатывает HTTP-запросы проверки сессии.
type Handler struct {
	log  *slog.Logger
	auth Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, auth Service) *Handler {
	return &Handler{
		log:  log,
		auth: auth,
	}
}

// ServeHTTP godoc
// @Summary Текущая сессия
// @Description Возвращает пользователя активной сессии. Без сессии отвечает 200 с user=null.
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]any "Состояние сессии"
// @Router /api/auth/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token := session.TokenFromRequest(r)
	if token == "" {
		render.JSON(w, r, map[string]any{"success": false, "user": nil})
		return
	}

	user, err := h.auth.ResolveToken(r.Context(), token)
	if err != nil {
		log.Info("session token did not resolve")
		render.JSON(w, r, map[string]any{"success": false, "user": nil})
		return
	}

	render.JSON(w, r, map[string]any{
		"success": true,
		"user":    user.Public(),
	})
}
