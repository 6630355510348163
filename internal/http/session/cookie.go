// Package session управляет cookie сессии с JWT.
// Cookie httpOnly с SameSite=Lax; флаг Secure включается конфигурацией
// в продакшене.
package session

import (
	"net/http"
	"time"
)

// CookieName — имя cookie с JWT сессии.
const CookieName = "token"

// SetTokenCookie выставляет cookie сессии с временем жизни токена.
func SetTokenCookie(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearTokenCookie сбрасывает cookie сессии.
func ClearTokenCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// TokenFromRequest возвращает JWT из cookie запроса.
// Пустая строка означает отсутствие cookie.
func TokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
