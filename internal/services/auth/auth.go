// Package services содержит логику бизнес-уровня для работы
// с пользователями и аутентификацией по cookie-сессии.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/geosentinel/internal/lib/jwt"
	"github.com/magabrotheeeer/geosentinel/internal/lib/password"
	"github.com/magabrotheeeer/geosentinel/internal/models"
	"github.com/magabrotheeeer/geosentinel/internal/storage/repository"
)

// Ошибки аутентификации и авторизации, транслируемые обработчиками
// в HTTP-статусы через errors.Is.
var (
	// ErrEmailTaken — почта уже зарегистрирована.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUserNotFound — пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials — неверный пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountBlocked — учётная запись заблокирована.
	ErrAccountBlocked = errors.New("account blocked")
	// ErrInvalidToken — токен отсутствует, подделан или истёк.
	ErrInvalidToken = errors.New("invalid token")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по почте или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUser возвращает пользователя по UID или ошибку, если не найден.
	GetUser(ctx context.Context, userUID string) (*models.User, error)

	// UpdateUserProfile обновляет имя и почту пользователя.
	UpdateUserProfile(ctx context.Context, userUID, name, email string) (*models.User, error)
}

// AuthService отвечает за регистрацию, вход и разрешение cookie-токена
// в пользователя.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля
// и дефолтной ролью "user". Возвращает UID созданной записи.
func (s *AuthService) Register(ctx context.Context, name, email, rawPassword string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		Name:         name,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hashed,
		Role:         models.RoleUser, // дефолтная роль при регистрации
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return "", ErrEmailTaken
		}
		return "", err
	}
	return uid, nil
}

// Login проверяет пароль пользователя и генерирует JWT сессии.
// Заблокированная учётная запись отклоняется до проверки пароля.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", nil, ErrUserNotFound
	}
	if user.IsBlocked {
		return "", nil, ErrAccountBlocked
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.UID, user.Email, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, user, nil
}

// UpdateProfile обновляет имя и почту пользователя.
// Занятая почта транслируется в ErrEmailTaken.
func (s *AuthService) UpdateProfile(ctx context.Context, userUID, name, email string) (*models.User, error) {
	user, err := s.users.UpdateUserProfile(ctx, userUID, name, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// ResolveToken проверяет JWT из cookie и возвращает актуального
// пользователя из хранилища.
//
// Последовательность отказов: невалидный токен, отсутствующий
// пользователь, заблокированная учётная запись.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.users.GetUser(ctx, claims.UserUID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if user.IsBlocked {
		return nil, ErrAccountBlocked
	}
	return user, nil
}
