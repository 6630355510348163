package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/geosentinel/internal/models"
)

// ErrDuplicateEmail возвращается при попытке зарегистрировать уже занятую почту.
var ErrDuplicateEmail = errors.New("email already registered")

const userColumns = `uid, name, email, password_hash, role, is_blocked, is_verified,
			      verification_token, verification_token_expires,
			      reset_password_token, reset_password_expires, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	var verificationToken, resetToken sql.NullString
	var verificationExpires, resetExpires sql.NullTime
	if err := row.Scan(&u.UID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&u.IsBlocked, &u.IsVerified, &verificationToken, &verificationExpires,
		&resetToken, &resetExpires, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	if verificationToken.Valid {
		u.VerificationToken = &verificationToken.String
	}
	if verificationExpires.Valid {
		u.VerificationTokenExpires = &verificationExpires.Time
	}
	if resetToken.Valid {
		u.ResetPasswordToken = &resetToken.String
	}
	if resetExpires.Valid {
		u.ResetPasswordExpires = &resetExpires.Time
	}
	return u, nil
}

// RegisterUser сохраняет нового пользователя в базу данных и возвращает его UID.
// Конфликт по уникальной почте транслируется в ErrDuplicateEmail.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO users (name, email, password_hash, role)
			  VALUES ($1, $2, $3, $4)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Role).Scan(&newID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return "", fmt.Errorf("%s: %w", op, ErrDuplicateEmail)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUserByEmail возвращает пользователя по его почте.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE email = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE uid = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, userUID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// UpdateUserProfile обновляет имя и почту пользователя.
// Конфликт по уникальной почте транслируется в ErrDuplicateEmail.
func (s *Storage) UpdateUserProfile(ctx context.Context, userUID, name, email string) (*models.User, error) {
	const op = "storage.UpdateUserProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET name = $1, email = $2, updated_at = now()
			  WHERE uid = $3
			  RETURNING ` + userColumns
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, name, email, userUID))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, fmt.Errorf("%s: %w", op, ErrDuplicateEmail)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// SetUserBlocked выставляет флаг блокировки и возвращает обновлённого пользователя.
func (s *Storage) SetUserBlocked(ctx context.Context, userUID string, blocked bool) (*models.User, error) {
	const op = "storage.SetUserBlocked"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET is_blocked = $1, updated_at = now()
			  WHERE uid = $2
			  RETURNING ` + userColumns
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, blocked, userUID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// DeleteUser удаляет пользователя; его заявки удаляются каскадно (FK).
// Возвращает количество удалённых строк.
func (s *Storage) DeleteUser(ctx context.Context, userUID string) (int, error) {
	const op = "storage.DeleteUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM users WHERE uid = $1`, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListUsers возвращает страницу обычных пользователей с фильтрами
// по поиску (имя/почта) и статусу блокировки, вместе с общим количеством.
// blocked == nil означает отсутствие фильтра по блокировке.
func (s *Storage) ListUsers(ctx context.Context, search string, blocked *bool, limit, offset int) ([]*models.User, int, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	filter := ` WHERE role = 'user'
			  	AND ($1 = '' OR name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%')
			  	AND ($2::boolean IS NULL OR is_blocked = $2)`

	var total int
	if err := s.DB.QueryRowContext(ctx, `SELECT count(*) FROM users`+filter, search, blocked).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT ` + userColumns + ` FROM users` + filter + `
			  ORDER BY created_at DESC
			  LIMIT $3 OFFSET $4`
	rows, err := s.DB.QueryContext(ctx, query, search, blocked, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, total, nil
}

// RecentUsers возвращает последних зарегистрированных обычных пользователей.
func (s *Storage) RecentUsers(ctx context.Context, limit int) ([]*models.User, error) {
	const op = "storage.RecentUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE role = 'user'
			  ORDER BY created_at DESC
			  LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountUsersByRole подсчитывает пользователей с заданной ролью.
func (s *Storage) CountUsersByRole(ctx context.Context, role string) (int, error) {
	const op = "storage.CountUsersByRole"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	err := s.DB.QueryRowContext(ctx, `SELECT count(*) FROM users WHERE role = $1`, role).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// CountBlockedUsers подсчитывает заблокированных пользователей.
func (s *Storage) CountBlockedUsers(ctx context.Context) (int, error) {
	const op = "storage.CountBlockedUsers"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	err := s.DB.QueryRowContext(ctx, `SELECT count(*) FROM users WHERE is_blocked = true`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
