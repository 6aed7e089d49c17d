// Package auth содержит логику бизнес-уровня для регистрации, входа
// и работы со списком активных токенов пользователя.
package auth

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/account-service/internal/lib/jwt"
	"github.com/magabrotheeeer/account-service/internal/lib/password"
	"github.com/magabrotheeeer/account-service/internal/models"
)

// ErrInvalidCredentials возвращается при любом сбое входа: неверный пароль,
// отсутствующий пользователь, ошибка хранилища. Причины намеренно не различаются.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidToken возвращается, когда токен не прошёл проверку подписи
// или отсутствует в списке активных токенов пользователя.
var ErrInvalidToken = errors.New("invalid or revoked token")

// UserRepository описывает контракт для работы с пользователями и токенами в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user models.User) (string, error)

	// GetUser возвращает пользователя по UID или ошибку, если не найден.
	GetUser(ctx context.Context, userUID string) (*models.User, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// AddToken добавляет токен в список активных токенов пользователя.
	AddToken(ctx context.Context, userUID, token string) error

	// RemoveToken удаляет один токен и возвращает количество удалённых строк.
	RemoveToken(ctx context.Context, userUID, token string) (int64, error)

	// RemoveAllTokens очищает список активных токенов пользователя.
	RemoveAllTokens(ctx context.Context, userUID string) error

	// TokenIsActive проверяет присутствие токена в списке активных.
	TokenIsActive(ctx context.Context, userUID, token string) (bool, error)
}

// AuthService отвечает за регистрацию, вход, выход и резолвинг bearer-токенов.
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

// RegisterInput — данные нового пользователя.
type RegisterInput struct {
	Username string
	Password string
	Name     string
	Email    string
	Phone    string
}

// Register создает нового пользователя с хэшированием пароля и дефолтной ролью "user",
// сразу выдаёт первый токен и добавляет его в список активных.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, string, error) {
	hashed, err := password.GetHash(in.Password)
	if err != nil {
		return "", "", err
	}
	user := models.User{
		Username:     in.Username,
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hashed,
		Role:         models.RoleUser, // дефолтная роль при регистрации
	}
	uid, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return "", "", err
	}

	token, err := s.jwtMaker.GenerateToken(in.Username, models.RoleUser, uid)
	if err != nil {
		return "", "", err
	}
	if err := s.users.AddToken(ctx, uid, token); err != nil {
		return "", "", err
	}
	return uid, token, nil
}

// Login проверяет пароль пользователя, генерирует JWT и добавляет его
// в список активных токенов. Любой сбой сводится к ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (*models.User, string, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.Username, user.Role, user.UID)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := s.users.AddToken(ctx, user.UID, token); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	return user, token, nil
}

// Authenticate резолвит bearer-токен в запись пользователя: проверяет подпись,
// членство в списке активных токенов и загружает актуальную запись из хранилища.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	active, err := s.users.TokenIsActive(ctx, claims.UserUID, token)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, ErrInvalidToken
	}
	return s.users.GetUser(ctx, claims.UserUID)
}

// Logout отзывает один конкретный токен пользователя.
func (s *AuthService) Logout(ctx context.Context, userUID, token string) error {
	_, err := s.users.RemoveToken(ctx, userUID, token)
	return err
}

// LogoutAll отзывает все активные токены пользователя.
func (s *AuthService) LogoutAll(ctx context.Context, userUID string) error {
	return s.users.RemoveAllTokens(ctx, userUID)
}
