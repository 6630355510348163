package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/magabrotheeeer/geosentinel/internal/models"
)

// GetSettings возвращает единственную запись настроек, лениво создавая
// её со значениями по умолчанию при первом чтении.
func (s *Storage) GetSettings(ctx context.Context) (*models.Settings, error) {
	const op = "storage.GetSettings"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := s.DB.ExecContext(ctx,
		`INSERT INTO settings (id) VALUES (1) ON CONFLICT (id) DO NOTHING`); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT maintenance_enabled, maintenance_message, allowed_emails, updated_at
			  FROM settings
			  WHERE id = 1`
	settings := &models.Settings{}
	var allowedEmails pgtype.FlatArray[string]
	m := pgtype.NewMap()
	if err := s.DB.QueryRowContext(ctx, query).Scan(
		&settings.MaintenanceMode.Enabled,
		&settings.MaintenanceMode.Message,
		m.SQLScanner(&allowedEmails),
		&settings.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	settings.MaintenanceMode.AllowedEmails = allowedEmails
	return settings, nil
}

// UpdateSettings перезаписывает настройки режима обслуживания
// и возвращает актуальную запись.
func (s *Storage) UpdateSettings(ctx context.Context, mode models.MaintenanceMode) (*models.Settings, error) {
	const op = "storage.UpdateSettings"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO settings (id, maintenance_enabled, maintenance_message, allowed_emails, updated_at)
			  VALUES (1, $1, $2, $3, now())
			  ON CONFLICT (id) DO UPDATE
			  SET maintenance_enabled = EXCLUDED.maintenance_enabled,
			      maintenance_message = EXCLUDED.maintenance_message,
			      allowed_emails = EXCLUDED.allowed_emails,
			      updated_at = now()
			  RETURNING maintenance_enabled, maintenance_message, allowed_emails, updated_at`
	settings := &models.Settings{}
	var allowedEmails pgtype.FlatArray[string]
	m := pgtype.NewMap()
	if err := s.DB.QueryRowContext(ctx, query,
		mode.Enabled, mode.Message, emailsLiteral(mode.AllowedEmails),
	).Scan(
		&settings.MaintenanceMode.Enabled,
		&settings.MaintenanceMode.Message,
		m.SQLScanner(&allowedEmails),
		&settings.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	settings.MaintenanceMode.AllowedEmails = allowedEmails
	return settings, nil
}

// emailsLiteral формирует текстовый литерал массива PostgreSQL.
// Почтовые адреса не содержат кавычек и запятых, поэтому простое
// экранирование кавычками достаточно.
func emailsLiteral(emails []string) string {
	if len(emails) == 0 {
		return "{}"
	}
	out := "{"
	for i, e := range emails {
		if i > 0 {
			out += ","
		}
		out += `"` + e + `"`
	}
	return out + "}"
}
