package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/magabrotheeeer/geosentinel/internal/models"
)

const requestColumns = `uid, user_uid, north, south, east, west, date_from, date_to,
			      status, processed_by, processed_at, admin_notes, completed_at,
			      created_at, updated_at`

func scanRequest(row interface{ Scan(...any) error }, extra ...any) (*models.Request, error) {
	r := &models.Request{}
	var processedBy sql.NullString
	var processedAt, completedAt sql.NullTime
	dest := []any{&r.UID, &r.UserUID, &r.Coordinates.North, &r.Coordinates.South,
		&r.Coordinates.East, &r.Coordinates.West, &r.DateFrom, &r.DateTo,
		&r.Status, &processedBy, &processedAt, &r.AdminNotes, &completedAt,
		&r.CreatedAt, &r.UpdatedAt}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if processedBy.Valid {
		r.ProcessedBy = &processedBy.String
	}
	if processedAt.Valid {
		r.ProcessedAt = &processedAt.Time
	}
	if completedAt.Valid {
		r.CompletedAt = &completedAt.Time
	}
	return r, nil
}

// CreateRequest вставляет новую заявку и возвращает созданную запись.
func (s *Storage) CreateRequest(ctx context.Context, req models.Request) (*models.Request, error) {
	const op = "storage.CreateRequest"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO requests (user_uid, north, south, east, west, date_from, date_to, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING ` + requestColumns
	created, err := scanRequest(s.DB.QueryRowContext(ctx, query,
		req.UserUID, req.Coordinates.North, req.Coordinates.South,
		req.Coordinates.East, req.Coordinates.West, req.DateFrom, req.DateTo, req.Status))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// GetRequest возвращает заявку по её UID.
func (s *Storage) GetRequest(ctx context.Context, uid string) (*models.Request, error) {
	const op = "storage.GetRequest"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + requestColumns + ` FROM requests WHERE uid = $1`
	r, err := scanRequest(s.DB.QueryRowContext(ctx, query, uid))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return r, nil
}

// ListRequestsByUser возвращает заявки пользователя, новые первыми.
func (s *Storage) ListRequestsByUser(ctx context.Context, userUID string) ([]*models.Request, error) {
	const op = "storage.ListRequestsByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + requestColumns + `
			  FROM requests
			  WHERE user_uid = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateRequestStatus обновляет статус заявки, фиксирует обработавшего
// администратора и момент обработки; completedAt проставляется для
// завершённых заявок. Возвращает обновлённую запись.
//
// Конкурентные обновления одной заявки разрешаются по принципу
// last-write-wins: токена оптимистичной блокировки нет.
func (s *Storage) UpdateRequestStatus(ctx context.Context, uid, status, adminNotes, processedBy string, completedAt *time.Time) (*models.Request, error) {
	const op = "storage.UpdateRequestStatus"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE requests
			  SET status = $1,
			      admin_notes = CASE WHEN $2 <> '' THEN $2 ELSE admin_notes END,
			      processed_by = $3,
			      processed_at = now(),
			      completed_at = $4,
			      updated_at = now()
			  WHERE uid = $5
			  RETURNING ` + requestColumns
	r, err := scanRequest(s.DB.QueryRowContext(ctx, query, status, adminNotes, processedBy, completedAt, uid))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return r, nil
}

// DeleteRequest удаляет заявку по UID и возвращает количество удалённых строк.
func (s *Storage) DeleteRequest(ctx context.Context, uid string) (int, error) {
	const op = "storage.DeleteRequest"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM requests WHERE uid = $1`, uid)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RequestStatsByUser агрегирует статистику заявок пользователя:
// общее количество, количество за последние 30 дней и разбивку по статусам.
func (s *Storage) RequestStatsByUser(ctx context.Context, userUID string) (*models.RequestStats, error) {
	const op = "storage.RequestStatsByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	stats := &models.RequestStats{StatusBreakdown: map[string]int{}}

	query := `SELECT status,
			      count(*),
			      count(*) FILTER (WHERE created_at >= now() - INTERVAL '30 days')
			  FROM requests
			  WHERE user_uid = $1
			  GROUP BY status`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var status string
		var total, recent int
		if err = rows.Scan(&status, &total, &recent); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		stats.StatusBreakdown[status] = total
		stats.TotalRequests += total
		stats.RecentRequests += recent
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}

// CountRequestsByStatus подсчитывает заявки; пустой статус означает все заявки.
func (s *Storage) CountRequestsByStatus(ctx context.Context, status string) (int, error) {
	const op = "storage.CountRequestsByStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	err := s.DB.QueryRowContext(ctx,
		`SELECT count(*) FROM requests WHERE ($1 = '' OR status = $1)`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// ListAllRequests возвращает страницу заявок с данными владельцев,
// с фильтром по статусу и поиском по имени/почте владельца,
// вместе с общим количеством.
func (s *Storage) ListAllRequests(ctx context.Context, status, search string, limit, offset int) ([]*models.RequestWithOwner, int, error) {
	const op = "storage.ListAllRequests"
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	filter := ` FROM requests r
			  JOIN users u ON u.uid = r.user_uid
			  WHERE ($1 = '' OR r.status = $1)
			  	AND ($2 = '' OR u.name ILIKE '%' || $2 || '%' OR u.email ILIKE '%' || $2 || '%')`

	var total int
	if err := s.DB.QueryRowContext(ctx, `SELECT count(*)`+filter, status, search).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT r.uid, r.user_uid, r.north, r.south, r.east, r.west,
			      r.date_from, r.date_to, r.status, r.processed_by, r.processed_at,
			      r.admin_notes, r.completed_at, r.created_at, r.updated_at,
			      u.name, u.email` + filter + `
			  ORDER BY r.created_at DESC
			  LIMIT $3 OFFSET $4`
	rows, err := s.DB.QueryContext(ctx, query, status, search, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.RequestWithOwner
	for rows.Next() {
		item := &models.RequestWithOwner{}
		r, err := scanRequest(rows, &item.OwnerName, &item.OwnerEmail)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		item.Request = *r
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, total, nil
}

// RecentRequests возвращает последние заявки с данными владельцев.
func (s *Storage) RecentRequests(ctx context.Context, limit int) ([]*models.RequestWithOwner, error) {
	const op = "storage.RecentRequests"
	items, _, err := s.ListAllRequests(ctx, "", "", limit, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}
