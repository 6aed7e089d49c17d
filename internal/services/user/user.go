// Package user содержит бизнес-логику чтения и администрирования
// учётных записей: список, получение, обновление и удаление.
package user

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/account-service/internal/lib/password"
	"github.com/magabrotheeeer/account-service/internal/lib/sl"
	"github.com/magabrotheeeer/account-service/internal/models"
	"github.com/magabrotheeeer/account-service/internal/storage"
)

// ErrNotFound возвращается, когда запись пользователя отсутствует.
var ErrNotFound = errors.New("user not found")

// UserRepository описывает контракт хранилища для операций над пользователями.
type UserRepository interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	SaveUser(ctx context.Context, user *models.User) (int64, error)
	DeleteUser(ctx context.Context, userUID string) (int64, error)
}

// Cache описывает контракт кэша записей пользователей.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// UserService реализует операции над учётными записями поверх хранилища
// с кэшированием записей по UID.
type UserService struct {
	users    UserRepository
	cache    Cache
	cacheTTL time.Duration
	log      *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(users UserRepository, cache Cache, cacheTTL time.Duration, log *slog.Logger) *UserService {
	return &UserService{
		users:    users,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

func cacheKey(userUID string) string {
	return "user:" + userUID
}

// List возвращает все записи пользователей без пагинации.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.users.ListUsers(ctx)
}

// Get возвращает пользователя по UID, сначала заглядывая в кэш.
func (s *UserService) Get(ctx context.Context, userUID string) (*models.User, error) {
	var cached models.User
	found, err := s.cache.Get(cacheKey(userUID), &cached)
	if err != nil {
		// Кэш не является источником истины, идём в хранилище
		s.log.Warn("cache lookup failed", sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.cache.Set(cacheKey(userUID), user, s.cacheTTL); err != nil {
		s.log.Warn("cache set failed", sl.Err(err))
	}
	return user, nil
}

// Apply применяет частичное обновление к уже загруженной записи пользователя
// и сохраняет её. Пароль, если передан, перехэшируется здесь.
func (s *UserService) Apply(ctx context.Context, user *models.User, upd *models.Update) (*models.User, error) {
	upd.ApplyTo(user)
	if upd.Password != nil {
		hashed, err := password.GetHash(*upd.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
	}

	if _, err := s.users.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	if err := s.cache.Invalidate(cacheKey(user.UID)); err != nil {
		s.log.Warn("cache invalidate failed", sl.Err(err))
	}
	return user, nil
}

// UpdateByUID применяет частичное обновление к пользователю по UID.
// Существование записи проверяется до каких-либо изменений.
func (s *UserService) UpdateByUID(ctx context.Context, userUID string, upd *models.Update) (*models.User, error) {
	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Apply(ctx, user, upd)
}

// Delete удаляет пользователя по UID. Возвращает ErrNotFound,
// если ни одна запись не была удалена.
func (s *UserService) Delete(ctx context.Context, userUID string) error {
	rowsAffected, err := s.users.DeleteUser(ctx, userUID)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	if err := s.cache.Invalidate(cacheKey(userUID)); err != nil {
		s.log.Warn("cache invalidate failed", sl.Err(err))
	}
	return nil
}
