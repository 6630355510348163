// Package repository реализует хранилище данных на основе PostgreSQL
// для управления пользователями, заявками AOI и настройками системы.
// Предоставляет методы создания, чтения, обновления, удаления
// и агрегирования записей.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями, заявками и настройками.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func (s *Storage) CheckDatabaseReady(ctx context.Context) error {
	var exists bool
	err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'requests'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table requests missing or query error: %w", err)
	}
	return nil
}
