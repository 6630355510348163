// Package lifecycle описывает конечный автомат статусов заявки AOI.
//
// Граф переходов: Pending → Processing → Completed,
// Pending/Processing → Failed. Completed и Failed — терминальные состояния.
package lifecycle

import "errors"

// Статусы заявки.
const (
	Pending    = "Pending"
	Processing = "Processing"
	Completed  = "Completed"
	Failed     = "Failed"
)

// ErrInvalidTransition возвращается при попытке недопустимого перехода статуса.
var ErrInvalidTransition = errors.New("invalid status transition")

// Valid сообщает, является ли строка известным статусом.
func Valid(status string) bool {
	switch status {
	case Pending, Processing, Completed, Failed:
		return true
	default:
		return false
	}
}

// CanTransition сообщает, допустим ли переход from → to.
func CanTransition(from, to string) bool {
	switch from {
	case Pending:
		return to == Processing || to == Failed
	case Processing:
		return to == Completed || to == Failed
	default:
		return false
	}
}

// Transition возвращает новый статус или ErrInvalidTransition,
// оставляя статус прежним при недопустимом переходе.
func Transition(from, to string) (string, error) {
	if !CanTransition(from, to) {
		return from, ErrInvalidTransition
	}
	return to, nil
}

// IsTerminal сообщает, является ли статус терминальным.
func IsTerminal(status string) bool {
	return status == Completed || status == Failed
}
