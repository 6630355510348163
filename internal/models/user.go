// Package models содержит доменную модель пользователя портала,
// включающую учётные данные, роль и флаг блокировки.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// Роли пользователей. Единственное каноническое представление роли —
// строковый enum, проверяемый одним предикатом IsAdmin.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID                      string     `json:"id"`
	Name                     string     `json:"name"`
	Email                    string     `json:"email"` // Электронная почта (уникальная)
	PasswordHash             string     `json:"-"`
	Role                     string     `json:"role"` // Роль пользователя, admin или user
	IsBlocked                bool       `json:"isBlocked"`
	IsVerified               bool       `json:"isVerified"`
	VerificationToken        *string    `json:"-"`
	VerificationTokenExpires *time.Time `json:"-"`
	ResetPasswordToken       *string    `json:"-"`
	ResetPasswordExpires     *time.Time `json:"-"`
	CreatedAt                time.Time  `json:"createdAt"`
	UpdatedAt                time.Time  `json:"updatedAt"`
}

// IsAdmin сообщает, обладает ли пользователь ролью администратора.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PublicUser — усечённое представление пользователя для ответов API
// (без хэша пароля и служебных токенов).
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// Public возвращает представление пользователя для ответа API.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.UID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
