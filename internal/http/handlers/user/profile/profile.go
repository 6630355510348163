// Package profile реализует HTTP-обработчик чтения профиля текущего пользователя.
package profile

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/geosentinel/internal/http/middlewarectx"
	"github.com/magabrotheeeer/geosentinel/internal/http/response"
)

// Handler обрабатывает HTTP-запросы чтения профиля.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Профиль пользователя
// @Description Возвращает профиль текущего пользователя.
// @Tags Users
// @Produce json
// @Success 200 {object} map[string]any "Профиль"
// @Failure 401 {object} response.ErrorResponse "Не аутентифицирован"
// @Router /api/users/profile [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.profile"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("no user in request context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("Not authenticated"))
		return
	}

	render.JSON(w, r, map[string]any{
		"success": true,
		"message": "Profile fetched successfully",
		"data":    user,
	})
}
