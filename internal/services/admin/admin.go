// Package services содержит бизнес-логику административной панели:
// сводная статистика, управление пользователями и общий список заявок.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/geosentinel/internal/lib/lifecycle"
	"github.com/magabrotheeeer/geosentinel/internal/models"
)

// Размеры выборок для административной панели.
const (
	recentRequestsLimit = 10
	recentUsersLimit    = 5
)

// Ошибки административных операций.
var (
	// ErrUserNotFound — пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrCannotBlockAdmin — блокировка администратора запрещена.
	ErrCannotBlockAdmin = errors.New("cannot block an admin account")
	// ErrCannotDeleteAdmin — удаление администратора запрещено.
	ErrCannotDeleteAdmin = errors.New("cannot delete an admin account")
)

// UserRepository описывает административный контракт для работы с пользователями.
type UserRepository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	SetUserBlocked(ctx context.Context, userUID string, blocked bool) (*models.User, error)
	DeleteUser(ctx context.Context, userUID string) (int, error)
	ListUsers(ctx context.Context, search string, blocked *bool, limit, offset int) ([]*models.User, int, error)
	RecentUsers(ctx context.Context, limit int) ([]*models.User, error)
	CountUsersByRole(ctx context.Context, role string) (int, error)
	CountBlockedUsers(ctx context.Context) (int, error)
}

// RequestRepository описывает административный контракт для работы с заявками.
type RequestRepository interface {
	CountRequestsByStatus(ctx context.Context, status string) (int, error)
	ListAllRequests(ctx context.Context, status, search string, limit, offset int) ([]*models.RequestWithOwner, int, error)
	RecentRequests(ctx context.Context, limit int) ([]*models.RequestWithOwner, error)
}

// AdminService реализует операции административной панели.
type AdminService struct {
	users    UserRepository
	requests RequestRepository
}

// NewAdminService создает новый экземпляр AdminService.
func NewAdminService(users UserRepository, requests RequestRepository) *AdminService {
	return &AdminService{
		users:    users,
		requests: requests,
	}
}

// DashboardStats собирает сводку панели: счётчики пользователей и заявок
// по статусам, последние заявки и последних зарегистрированных пользователей.
func (s *AdminService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	const op = "services.admin.DashboardStats"

	stats := &models.DashboardStats{}
	counters := []struct {
		dst  *int
		load func() (int, error)
	}{
		{&stats.Summary.TotalUsers, func() (int, error) { return s.users.CountUsersByRole(ctx, models.RoleUser) }},
		{&stats.Summary.TotalRequests, func() (int, error) { return s.requests.CountRequestsByStatus(ctx, "") }},
		{&stats.Summary.PendingRequests, func() (int, error) { return s.requests.CountRequestsByStatus(ctx, lifecycle.Pending) }},
		{&stats.Summary.ProcessingRequests, func() (int, error) { return s.requests.CountRequestsByStatus(ctx, lifecycle.Processing) }},
		{&stats.Summary.CompletedRequests, func() (int, error) { return s.requests.CountRequestsByStatus(ctx, lifecycle.Completed) }},
		{&stats.Summary.FailedRequests, func() (int, error) { return s.requests.CountRequestsByStatus(ctx, lifecycle.Failed) }},
		{&stats.Summary.BlockedUsers, func() (int, error) { return s.users.CountBlockedUsers(ctx) }},
	}
	for _, c := range counters {
		value, err := c.load()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		*c.dst = value
	}

	recentRequests, err := s.requests.RecentRequests(ctx, recentRequestsLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	stats.RecentRequests = recentRequests

	recentUsers, err := s.users.RecentUsers(ctx, recentUsersLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	stats.RecentUsers = recentUsers
	return stats, nil
}

// ListUsers возвращает страницу обычных пользователей с фильтрами.
// status: "blocked", "active" или пустая строка (без фильтра).
func (s *AdminService) ListUsers(ctx context.Context, search, status string, page, limit int) ([]*models.User, *models.Pagination, error) {
	const op = "services.admin.ListUsers"

	page, limit = normalizePage(page, limit)
	var blocked *bool
	switch status {
	case "blocked":
		v := true
		blocked = &v
	case "active":
		v := false
		blocked = &v
	}

	users, total, err := s.users.ListUsers(ctx, search, blocked, limit, (page-1)*limit)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, paginate(total, page, limit), nil
}

// ToggleBlock инвертирует флаг блокировки пользователя.
// Учётные записи администраторов блокировать запрещено.
func (s *AdminService) ToggleBlock(ctx context.Context, userUID string) (*models.User, error) {
	const op = "services.admin.ToggleBlock"

	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if user.IsAdmin() {
		return nil, ErrCannotBlockAdmin
	}

	updated, err := s.users.SetUserBlocked(ctx, userUID, !user.IsBlocked)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// DeleteUser удаляет пользователя вместе с его заявками (каскадно по FK).
// Учётные записи администраторов удалять запрещено.
func (s *AdminService) DeleteUser(ctx context.Context, userUID string) error {
	const op = "services.admin.DeleteUser"

	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if user.IsAdmin() {
		return ErrCannotDeleteAdmin
	}

	deleted, err := s.users.DeleteUser(ctx, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if deleted == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ListRequests возвращает страницу всех заявок с данными владельцев,
// с фильтром по статусу и поиском по имени/почте владельца.
func (s *AdminService) ListRequests(ctx context.Context, status, search string, page, limit int) ([]*models.RequestWithOwner, *models.Pagination, error) {
	const op = "services.admin.ListRequests"

	page, limit = normalizePage(page, limit)
	requests, total, err := s.requests.ListAllRequests(ctx, status, search, limit, (page-1)*limit)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	return requests, paginate(total, page, limit), nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

func paginate(total, page, limit int) *models.Pagination {
	pages := (total + limit - 1) / limit
	return &models.Pagination{Total: total, Page: page, Pages: pages}
}
