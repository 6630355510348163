// Package services содержит бизнес-логику настроек портала:
// единственная запись с режимом обслуживания и списком исключений.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/geosentinel/internal/lib/sl"
	"github.com/magabrotheeeer/geosentinel/internal/models"
)

// Ключ и время жизни кеша настроек. Настройки читаются на каждом
// запросе портала, поэтому короткий TTL снимает нагрузку с базы,
// не задерживая включение режима обслуживания надолго.
const (
	cacheKey = "settings"
	cacheTTL = 30 * time.Second
)

// SettingsRepository описывает контракт для работы с настройками в базе данных.
type SettingsRepository interface {
	GetSettings(ctx context.Context) (*models.Settings, error)
	UpdateSettings(ctx context.Context, mode models.MaintenanceMode) (*models.Settings, error)
}

// Cache описывает контракт JSON-кеша настроек.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// SettingsService отвечает за чтение и обновление настроек системы.
type SettingsService struct {
	log      *slog.Logger
	settings SettingsRepository
	cache    Cache
}

// NewSettingsService создает новый экземпляр SettingsService.
func NewSettingsService(log *slog.Logger, settings SettingsRepository, cache Cache) *SettingsService {
	return &SettingsService{
		log:      log,
		settings: settings,
		cache:    cache,
	}
}

// Get возвращает настройки системы, кешируя их на 30 секунд.
// Отсутствующая запись создаётся со значениями по умолчанию.
func (s *SettingsService) Get(ctx context.Context) (*models.Settings, error) {
	const op = "services.settings.Get"

	cached := &models.Settings{}
	found, err := s.cache.Get(cacheKey, cached)
	if err != nil {
		s.log.Warn("failed to read settings cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(cacheKey, settings, cacheTTL); err != nil {
		s.log.Warn("failed to write settings cache", sl.Err(err))
	}
	return settings, nil
}

// Update перезаписывает настройки режима обслуживания и сбрасывает кеш.
// Пустое сообщение заменяется сообщением по умолчанию, почтовые адреса
// исключений нормализуются к нижнему регистру.
func (s *SettingsService) Update(ctx context.Context, mode models.MaintenanceMode) (*models.Settings, error) {
	const op = "services.settings.Update"

	if strings.TrimSpace(mode.Message) == "" {
		mode.Message = models.DefaultMaintenanceMessage
	}
	normalized := make([]string, 0, len(mode.AllowedEmails))
	for _, email := range mode.AllowedEmails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			normalized = append(normalized, email)
		}
	}
	mode.AllowedEmails = normalized

	settings, err := s.settings.UpdateSettings(ctx, mode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate settings cache", sl.Err(err))
	}
	return settings, nil
}
