// Package models содержит структуру глобальных настроек портала.
// Настройки хранятся единственной строкой в базе и создаются лениво
// при первом чтении.
package models

import "time"

// MaintenanceMode описывает состояние режима обслуживания.
// При включённом режиме доступ сохраняют администраторы и пользователи,
// чья почта входит в AllowedEmails.
type MaintenanceMode struct {
	Enabled       bool     `json:"enabled"`
	Message       string   `json:"message"`
	AllowedEmails []string `json:"allowedEmails"`
}

// Settings — глобальные настройки системы (единственная запись).
type Settings struct {
	MaintenanceMode MaintenanceMode `json:"maintenanceMode"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// DefaultMaintenanceMessage — сообщение режима обслуживания по умолчанию.
const DefaultMaintenanceMessage = "System is under maintenance. Please check back later."

// DummySettings используется для приёма настроек из JSON-запроса администратора.
type DummySettings struct {
	MaintenanceMode struct {
		Enabled       bool     `json:"enabled"`
		Message       string   `json:"message"`
		AllowedEmails []string `json:"allowedEmails"`
	} `json:"maintenanceMode" validate:"required"`
}
