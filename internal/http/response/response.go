// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Каждый ответ несёт флаг
// success и человеко‑читаемое сообщение; обработчики дополняют ответ
// доменными полями через map.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
// Используется в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"invalid request body"`
}

// MaintenanceResponse — ответ 503 при включённом режиме обслуживания.
// Флаг maintenanceMode позволяет клиенту отличить обслуживание
// от прочих ошибок сервера.
type MaintenanceResponse struct {
	Success         bool   `json:"success" example:"false"`
	Message         string `json:"message"`
	MaintenanceMode bool   `json:"maintenanceMode" example:"true"`
}

// OK возвращает успешный Response с сообщением.
func OK(msg string) Response {
	return Response{
		Success: true,
		Message: msg,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Message: msg,
	}
}

// Maintenance возвращает ответ режима обслуживания с переданным сообщением.
func Maintenance(msg string) MaintenanceResponse {
	return MaintenanceResponse{
		Success:         false,
		Message:         msg,
		MaintenanceMode: true,
	}
}

// ValidationError формирует Response на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too short", err.Field()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too long", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Response{
		Success: false,
		Message: strings.Join(errsMsgs, ", "),
	}
}
