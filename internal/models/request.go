// Package models содержит доменные структуры заявки на обработку
// области интереса (AOI), а также вспомогательные типы для приёма
// данных из JSON-запросов.
package models

import "time"

// Coordinates описывает прямоугольную область интереса.
// Валидная область требует north > south и east > west.
type Coordinates struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Request представляет заявку пользователя на обработку AOI.
// Статус меняется только администратором; заявка всегда принадлежит
// ровно одному пользователю.
type Request struct {
	UID         string      `json:"id"`
	UserUID     string      `json:"userId"`
	Coordinates Coordinates `json:"coordinates"`
	DateFrom    time.Time   `json:"dateFrom"`
	DateTo      time.Time   `json:"dateTo"`
	Status      string      `json:"status"`
	ProcessedBy *string     `json:"processedBy,omitempty"` // UID администратора, обработавшего заявку
	ProcessedAt *time.Time  `json:"processedAt,omitempty"`
	AdminNotes  string      `json:"adminNotes,omitempty"`
	CompletedAt *time.Time  `json:"completedAt,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// DummyCoordinates используется для приёма координат из JSON-запроса.
// Поля — указатели, чтобы отличать отсутствующее значение от нуля
// (нулевая широта или долгота — валидная координата).
type DummyCoordinates struct {
	North *float64 `json:"north" validate:"required"`
	South *float64 `json:"south" validate:"required"`
	East  *float64 `json:"east" validate:"required"`
	West  *float64 `json:"west" validate:"required"`
}

// DummyRequest используется для приёма данных новой заявки из JSON-запроса,
// прежде чем конвертировать их в Request. Даты приходят строками
// в формате 2006-01-02, чтобы их можно было валидировать и парсить вручную.
type DummyRequest struct {
	Coordinates DummyCoordinates `json:"coordinates" validate:"required"`
	DateFrom    string           `json:"dateFrom" validate:"required"`
	DateTo      string           `json:"dateTo" validate:"required"`
}

// RequestWithOwner — заявка вместе с именем и почтой владельца,
// используется в административных списках.
type RequestWithOwner struct {
	Request
	OwnerName  string `json:"ownerName"`
	OwnerEmail string `json:"ownerEmail"`
}
