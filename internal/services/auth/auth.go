// Package services содержит логику бизнес-уровня для работы с пользователями:
// регистрацию, аутентификацию, принятие соглашения и резолв токена.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/trading-signals/internal/lib/errs"
	"github.com/magabrotheeeer/trading-signals/internal/lib/jwt"
	"github.com/magabrotheeeer/trading-signals/internal/lib/password"
	"github.com/magabrotheeeer/trading-signals/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его ID.
	RegisterUser(ctx context.Context, user models.User) (int64, error)

	// GetUserByEmail возвращает пользователя по email или errs.ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUser возвращает пользователя по ID или errs.ErrUserNotFound.
	GetUser(ctx context.Context, userID int64) (*models.User, error)

	// UpdateConsent записывает принятие соглашения.
	UpdateConsent(ctx context.Context, userID int64, consentText, consentIP string, acceptedAt time.Time) error
}

// AuthService отвечает за регистрацию, авторизацию, соглашение и проверку JWT.
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

// Register создает нового пользователя с хэшированием пароля и сразу
// выдаёт сессионный токен.
func (s *AuthService) Register(ctx context.Context, username, email, rawPassword string) (string, *models.PublicUser, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", nil, err
	}
	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
	}
	newID, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return "", nil, err
	}
	token, err := s.jwtMaker.GenerateToken(newID, username)
	if err != nil {
		return "", nil, err
	}
	public := models.PublicUser{
		ID:       newID,
		Username: username,
		Email:    email,
	}
	return token, &public, nil
}

// Login проверяет пароль пользователя и генерирует JWT.
//
// Несуществующий email и неверный пароль возвращают одну и ту же ошибку,
// чтобы по ответу нельзя было перечислять зарегистрированные адреса.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return "", errs.ErrInvalidCredentials
		}
		return "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", errs.ErrInvalidCredentials
	}
	return s.jwtMaker.GenerateToken(user.ID, user.Username)
}

// ResolveToken проверяет JWT и возвращает актуальную запись пользователя.
//
// Пользователь всегда перечитывается из хранилища, а не берётся из claims:
// так изменение consent-статуса видно сразу, без перевыпуска токена.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*models.User, error) {
	const op = "services.auth.ResolveToken"
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, errs.ErrInvalidToken)
	}
	user, err := s.users.GetUser(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// AcceptConsent фиксирует принятие соглашения: текст, момент и IP источника.
// Повторный вызов перезаписывает предыдущую запись.
func (s *AuthService) AcceptConsent(ctx context.Context, userID int64, consentText, consentIP string) error {
	return s.users.UpdateConsent(ctx, userID, consentText, consentIP, time.Now().UTC())
}
