// Package logout реализует HTTP-обработчик выхода: сбрасывает cookie сессии.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/geosentinel/internal/http/response"
	"github.com/magabrotheeeer/geosentinel/internal/http/session"
)

// Handler обрабатывает HTTP-запросы выхода.
type Handler struct {
	log          *slog.Logger
	cookieSecure bool
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, cookieSecure bool) *Handler {
	return &Handler{
		log:          log,
		cookieSecure: cookieSecure,
	}
}

// ServeHTTP godoc
// @Summary Выход пользователя
// @Description Сбрасывает cookie сессии. Идемпотентен: успешен и без активной сессии.
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response "Сессия завершена"
// @Router /api/auth/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	session.ClearTokenCookie(w, h.cookieSecure)
	log.Info("session cleared")
	render.JSON(w, r, response.OK("Logged out successfully"))
}
