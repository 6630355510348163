// Package models содержит агрегированные представления статистики
// по заявкам и пользователям.
package models

// RequestStats — статистика заявок одного пользователя.
type RequestStats struct {
	TotalRequests   int            `json:"totalRequests"`
	RecentRequests  int            `json:"recentRequests"` // заявки за последние 30 дней
	StatusBreakdown map[string]int `json:"statusBreakdown"`
}

// DashboardSummary — сводные счётчики для административной панели.
type DashboardSummary struct {
	TotalUsers         int `json:"totalUsers"`
	TotalRequests      int `json:"totalRequests"`
	PendingRequests    int `json:"pendingRequests"`
	ProcessingRequests int `json:"processingRequests"`
	CompletedRequests  int `json:"completedRequests"`
	FailedRequests     int `json:"failedRequests"`
	BlockedUsers       int `json:"blockedUsers"`
}

// DashboardStats — полные данные панели: сводка, последние заявки
// и последние зарегистрированные пользователи.
type DashboardStats struct {
	Summary        DashboardSummary    `json:"summary"`
	RecentRequests []*RequestWithOwner `json:"recentRequests"`
	RecentUsers    []*User             `json:"recentUsers"`
}

// Pagination — параметры страницы в ответах со списками.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
}
