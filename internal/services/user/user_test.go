package user_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/account-service/internal/lib/password"
	"github.com/magabrotheeeer/account-service/internal/models"
	userservice "github.com/magabrotheeeer/account-service/internal/services/user"
	"github.com/magabrotheeeer/account-service/internal/storage"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) SaveUser(ctx context.Context, user *models.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserRepoMock) DeleteUser(ctx context.Context, userUID string) (int64, error) {
	args := m.Called(ctx, userUID)
	return args.Get(0).(int64), args.Error(1)
}

// Мок для Cache
type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	if args.Bool(0) {
		*result.(*models.User) = args.Get(2).(models.User)
	}
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newService(repo *UserRepoMock, cache *CacheMock) *userservice.UserService {
	return userservice.NewUserService(repo, cache, time.Minute, newNoopLogger())
}

func TestUserService_Get(t *testing.T) {
	stored := &models.User{UID: "uid-1", Username: "user1", Role: models.RoleUser}

	t.Run("cache miss loads from storage and fills cache", func(t *testing.T) {
		repo := new(UserRepoMock)
		cache := new(CacheMock)
		svc := newService(repo, cache)

		cache.On("Get", "user:uid-1", mock.Anything).Return(false, nil).Once()
		repo.On("GetUser", mock.Anything, "uid-1").Return(stored, nil).Once()
		cache.On("Set", "user:uid-1", stored, time.Minute).Return(nil).Once()

		got, err := svc.Get(context.Background(), "uid-1")
		assert.NoError(t, err)
		assert.Equal(t, stored.UID, got.UID)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("cache hit skips storage", func(t *testing.T) {
		repo := new(UserRepoMock)
		cache := new(CacheMock)
		svc := newService(repo, cache)

		cache.On("Get", "user:uid-1", mock.Anything).Return(true, nil, *stored).Once()

		got, err := svc.Get(context.Background(), "uid-1")
		assert.NoError(t, err)
		assert.Equal(t, stored.Username, got.Username)
		repo.AssertNotCalled(t, "GetUser")
	})

	t.Run("missing user maps to ErrNotFound", func(t *testing.T) {
		repo := new(UserRepoMock)
		cache := new(CacheMock)
		svc := newService(repo, cache)

		cache.On("Get", "user:ghost", mock.Anything).Return(false, nil).Once()
		repo.On("GetUser", mock.Anything, "ghost").
			Return(nil, storage.ErrUserNotFound).Once()

		got, err := svc.Get(context.Background(), "ghost")
		assert.ErrorIs(t, err, userservice.ErrNotFound)
		assert.Nil(t, got)
	})

	t.Run("cache failure falls through to storage", func(t *testing.T) {
		repo := new(UserRepoMock)
		cache := new(CacheMock)
		svc := newService(repo, cache)

		cache.On("Get", "user:uid-1", mock.Anything).
			Return(false, errors.New("redis down")).Once()
		repo.On("GetUser", mock.Anything, "uid-1").Return(stored, nil).Once()
		cache.On("Set", "user:uid-1", stored, time.Minute).Return(nil).Once()

		got, err := svc.Get(context.Background(), "uid-1")
		assert.NoError(t, err)
		assert.Equal(t, stored.UID, got.UID)
	})
}

func TestUserService_Apply(t *testing.T) {
	newName := "New Name"
	newPassword := "newpassword123"

	t.Run("updates fields and invalidates cache", func(t *testing.T) {
		repo := new(UserRepoMock)
		cache := new(CacheMock)
		svc := newService(repo, cache)

		user := &models.User{UID: "uid-1", Username: "user1", Name: "Old Name"}
		upd := &models.Update{Name: &newName}

		repo.On("SaveUser", mock.Anything, user).Return(int64(1), nil).Once()
		cache.On("Invalidate", "user:uid-1").Return(nil).Once()

		got, err := svc.Apply(context.Background(), user, upd)
		assert.NoError(t, err)
		assert.Equal(t, newName, got.Name)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("password update is rehashed", func(t *testing.T) {
		repo := new(UserRepoMock)
		cache := new(CacheMock)
		svc := newService(repo, cache)

		user := &models.User{UID: "uid-1", Username: "user1", PasswordHash: "oldhash"}
		upd := &models.Update{Password: &newPassword}

		repo.On("SaveUser", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.PasswordHash != "oldhash" &&
				u.PasswordHash != newPassword &&
				password.CompareHash(u.PasswordHash, newPassword) == nil
		})).Return(int64(1), nil).Once()
		cache.On("Invalidate", "user:uid-1").Return(nil).Once()

		_, err := svc.Apply(context.Background(), user, upd)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestUserService_UpdateByUID(t *testing.T) {
	newName := "New Name"

	t.Run("missing user is rejected before save", func(t *testing.T) {
		repo := new(UserRepoMock)
		cache := new(CacheMock)
		svc := newService(repo, cache)

		repo.On("GetUser", mock.Anything, "ghost").
			Return(nil, storage.ErrUserNotFound).Once()

		got, err := svc.UpdateByUID(context.Background(), "ghost", &models.Update{Name: &newName})
		assert.ErrorIs(t, err, userservice.ErrNotFound)
		assert.Nil(t, got)
		repo.AssertNotCalled(t, "SaveUser")
	})

	t.Run("existing user is updated", func(t *testing.T) {
		repo := new(UserRepoMock)
		cache := new(CacheMock)
		svc := newService(repo, cache)

		stored := &models.User{UID: "uid-1", Username: "user1", Name: "Old Name"}
		repo.On("GetUser", mock.Anything, "uid-1").Return(stored, nil).Once()
		repo.On("SaveUser", mock.Anything, stored).Return(int64(1), nil).Once()
		cache.On("Invalidate", "user:uid-1").Return(nil).Once()

		got, err := svc.UpdateByUID(context.Background(), "uid-1", &models.Update{Name: &newName})
		assert.NoError(t, err)
		assert.Equal(t, newName, got.Name)
	})
}

func TestUserService_Delete(t *testing.T) {
	t.Run("deleted user invalidates cache", func(t *testing.T) {
		repo := new(UserRepoMock)
		cache := new(CacheMock)
		svc := newService(repo, cache)

		repo.On("DeleteUser", mock.Anything, "uid-1").Return(int64(1), nil).Once()
		cache.On("Invalidate", "user:uid-1").Return(nil).Once()

		err := svc.Delete(context.Background(), "uid-1")
		assert.NoError(t, err)
		cache.AssertExpectations(t)
	})

	t.Run("zero rows affected maps to ErrNotFound", func(t *testing.T) {
		repo := new(UserRepoMock)
		cache := new(CacheMock)
		svc := newService(repo, cache)

		repo.On("DeleteUser", mock.Anything, "ghost").Return(int64(0), nil).Once()

		err := svc.Delete(context.Background(), "ghost")
		assert.ErrorIs(t, err, userservice.ErrNotFound)
		cache.AssertNotCalled(t, "Invalidate")
	})
}
