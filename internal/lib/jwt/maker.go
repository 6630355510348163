// Package jwt реализует генерацию и парсинг JWT токенов сессии
// с пользовательскими claim полями.
//
// Maker определяет интерфейс для создания и проверки токенов с uid,
// email и ролью пользователя. MakerImpl — конкретная реализация
// с использованием секретного ключа и срока жизни токена.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и парсинга JWT токенов сессии.
type Maker interface {
	// GenerateToken создает токен с uid, email и ролью пользователя.
	GenerateToken(userUID, email, role string) (string, error)
	// ParseToken возвращает *CustomClaims, если токен корректен.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
