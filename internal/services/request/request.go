// Package services содержит бизнес-логику жизненного цикла заявок AOI:
// создание, чтение, смену статуса и агрегированную статистику.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/geosentinel/internal/lib/lifecycle"
	"github.com/magabrotheeeer/geosentinel/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/geosentinel/internal/lib/sl"
	"github.com/magabrotheeeer/geosentinel/internal/metrics"
	"github.com/magabrotheeeer/geosentinel/internal/models"
)

// Формат дат в JSON-запросах.
const dateLayout = "2006-01-02"

// Время жизни кеша статистики заявок пользователя.
const statsTTL = time.Minute

// Ошибки бизнес-уровня, транслируемые обработчиками в HTTP-статусы.
var (
	// ErrNotFound — заявка не найдена.
	ErrNotFound = errors.New("request not found")
	// ErrForbidden — заявка принадлежит другому пользователю.
	ErrForbidden = errors.New("access denied")
	// ErrInvalidArea — область не ориентирована: север должен быть больше
	// юга, восток больше запада.
	ErrInvalidArea = errors.New("invalid coordinates: north must exceed south and east must exceed west")
	// ErrInvalidDate — дата не соответствует формату 2006-01-02.
	ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")
	// ErrInvalidDateRange — dateFrom должен быть строго раньше dateTo.
	ErrInvalidDateRange = errors.New("dateFrom must be before dateTo")
	// ErrUnknownStatus — целевой статус не входит в перечень статусов заявки.
	ErrUnknownStatus = errors.New("unknown status")
	// ErrInvalidTransition — переход статуса нарушает жизненный цикл заявки.
	ErrInvalidTransition = lifecycle.ErrInvalidTransition
)

// RequestRepository описывает контракт для работы с заявками в базе данных.
type RequestRepository interface {
	CreateRequest(ctx context.Context, req models.Request) (*models.Request, error)
	GetRequest(ctx context.Context, uid string) (*models.Request, error)
	ListRequestsByUser(ctx context.Context, userUID string) ([]*models.Request, error)
	UpdateRequestStatus(ctx context.Context, uid, status, adminNotes, processedBy string, completedAt *time.Time) (*models.Request, error)
	DeleteRequest(ctx context.Context, uid string) (int, error)
	RequestStatsByUser(ctx context.Context, userUID string) (*models.RequestStats, error)
}

// Cache описывает контракт JSON-кеша для статистики.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Publisher описывает контракт публикации событий жизненного цикла заявки.
type Publisher interface {
	Publish(routingKey string, event rabbitmq.RequestEvent) error
}

// RequestService реализует операции жизненного цикла заявок.
// Публикация событий и кеш статистики работают по принципу best effort:
// их ошибки логируются, но не прерывают операцию.
type RequestService struct {
	log       *slog.Logger
	requests  RequestRepository
	cache     Cache
	publisher Publisher
}

// NewRequestService создает новый экземпляр RequestService.
func NewRequestService(log *slog.Logger, requests RequestRepository, cache Cache, publisher Publisher) *RequestService {
	return &RequestService{
		log:       log,
		requests:  requests,
		cache:     cache,
		publisher: publisher,
	}
}

func statsKey(userUID string) string {
	return "stats:" + userUID
}

// Create валидирует и сохраняет новую заявку со статусом Pending.
// Требования к данным: north > south, east > west, даты в формате
// 2006-01-02, dateFrom строго раньше dateTo.
func (s *RequestService) Create(ctx context.Context, userUID string, dummy models.DummyRequest) (*models.Request, error) {
	const op = "services.request.Create"

	coords := models.Coordinates{
		North: *dummy.Coordinates.North,
		South: *dummy.Coordinates.South,
		East:  *dummy.Coordinates.East,
		West:  *dummy.Coordinates.West,
	}
	if coords.North <= coords.South || coords.East <= coords.West {
		return nil, ErrInvalidArea
	}

	dateFrom, err := time.Parse(dateLayout, dummy.DateFrom)
	if err != nil {
		return nil, ErrInvalidDate
	}
	dateTo, err := time.Parse(dateLayout, dummy.DateTo)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if !dateFrom.Before(dateTo) {
		return nil, ErrInvalidDateRange
	}

	created, err := s.requests.CreateRequest(ctx, models.Request{
		UserUID:     userUID,
		Coordinates: coords,
		DateFrom:    dateFrom,
		DateTo:      dateTo,
		Status:      lifecycle.Pending,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	metrics.RequestsCreatedTotal.Inc()
	s.invalidateStats(userUID)
	if err := s.publisher.Publish(rabbitmq.RoutingKeyCreated, rabbitmq.RequestEvent{
		RequestUID: created.UID,
		UserUID:    created.UserUID,
		Status:     created.Status,
		OccurredAt: time.Now().UTC(),
	}); err != nil {
		s.log.Warn("failed to publish request.created event", sl.Err(err))
	}
	return created, nil
}

// ListMine возвращает заявки пользователя, новые первыми.
func (s *RequestService) ListMine(ctx context.Context, userUID string) ([]*models.Request, error) {
	const op = "services.request.ListMine"
	result, err := s.requests.ListRequestsByUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListForUser возвращает заявки произвольного пользователя.
// Проверка роли администратора выполняется на уровне маршрутизации.
func (s *RequestService) ListForUser(ctx context.Context, userUID string) ([]*models.Request, error) {
	const op = "services.request.ListForUser"
	result, err := s.requests.ListRequestsByUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetByID возвращает заявку, доступную вызывающему: владельцу или
// администратору. Чужая заявка для обычного пользователя — ErrForbidden.
func (s *RequestService) GetByID(ctx context.Context, uid string, caller *models.User) (*models.Request, error) {
	const op = "services.request.GetByID"
	req, err := s.requests.GetRequest(ctx, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if req.UserUID != caller.UID && !caller.IsAdmin() {
		return nil, ErrForbidden
	}
	return req, nil
}

// UpdateStatus переводит заявку в новый статус согласно жизненному циклу
// Pending → Processing → Completed | Failed. Фиксирует администратора
// и момент обработки; для Completed проставляет completedAt.
func (s *RequestService) UpdateStatus(ctx context.Context, uid, status, adminNotes string, admin *models.User) (*models.Request, error) {
	const op = "services.request.UpdateStatus"

	if !lifecycle.Valid(status) {
		return nil, ErrUnknownStatus
	}

	req, err := s.requests.GetRequest(ctx, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := lifecycle.Transition(req.Status, status); err != nil {
		return nil, fmt.Errorf("cannot change status from %s to %s: %w", req.Status, status, err)
	}

	var completedAt *time.Time
	if status == lifecycle.Completed {
		now := time.Now().UTC()
		completedAt = &now
	}
	updated, err := s.requests.UpdateRequestStatus(ctx, uid, status, adminNotes, admin.UID, completedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	metrics.StatusTransitionsTotal.WithLabelValues(status).Inc()
	s.invalidateStats(updated.UserUID)
	if err := s.publisher.Publish(rabbitmq.RoutingKeyStatusChanged, rabbitmq.RequestEvent{
		RequestUID: updated.UID,
		UserUID:    updated.UserUID,
		Status:     updated.Status,
		OccurredAt: time.Now().UTC(),
	}); err != nil {
		s.log.Warn("failed to publish request.status_changed event", sl.Err(err))
	}
	return updated, nil
}

// Delete удаляет заявку, доступную вызывающему: владельцу или администратору.
func (s *RequestService) Delete(ctx context.Context, uid string, caller *models.User) error {
	const op = "services.request.Delete"
	req, err := s.requests.GetRequest(ctx, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if req.UserUID != caller.UID && !caller.IsAdmin() {
		return ErrForbidden
	}
	if _, err := s.requests.DeleteRequest(ctx, uid); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidateStats(req.UserUID)
	return nil
}

// StatsForUser возвращает агрегированную статистику заявок пользователя,
// кешируя результат на минуту.
func (s *RequestService) StatsForUser(ctx context.Context, userUID string) (*models.RequestStats, error) {
	const op = "services.request.StatsForUser"

	key := statsKey(userUID)
	cached := &models.RequestStats{}
	found, err := s.cache.Get(key, cached)
	if err != nil {
		s.log.Warn("failed to read stats cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	stats, err := s.requests.RequestStatsByUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(key, stats, statsTTL); err != nil {
		s.log.Warn("failed to write stats cache", sl.Err(err))
	}
	return stats, nil
}

func (s *RequestService) invalidateStats(userUID string) {
	if err := s.cache.Invalidate(statsKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate stats cache", sl.Err(err))
	}
}
