package logout

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/account-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/account-service/internal/models"
)

// Мок сервиса с методом Logout
type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Logout(ctx context.Context, userUID, token string) error {
	args := m.Called(ctx, userUID, token)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newRequest(user *models.User, token string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/users/logout", nil)
	ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
	if user != nil {
		ctx = context.WithValue(ctx, middlewarectx.User, user)
	}
	if token != "" {
		ctx = context.WithValue(ctx, middlewarectx.Token, token)
	}
	return req.WithContext(ctx)
}

func TestLogoutHandler_ServeHTTP(t *testing.T) {
	logger := newNoopLogger()

	user := &models.User{UID: "uid-1", Username: "user1"}

	tests := []struct {
		name           string
		user           *models.User
		token          string
		mockCall       bool
		mockErr        error
		wantStatusCode int
		wantError      string
	}{
		{
			name:           "token revoked",
			user:           user,
			token:          "token123",
			mockCall:       true,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "no user in context",
			user:           nil,
			token:          "token123",
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "authentication required",
		},
		{
			name:           "revocation failure",
			user:           user,
			token:          "token123",
			mockCall:       true,
			mockErr:        errors.New("connection refused"),
			wantStatusCode: http.StatusBadRequest,
			wantError:      "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(AuthServiceMock)
			if tt.mockCall {
				serviceMock.On("Logout", mock.Anything, tt.user.UID, tt.token).
					Return(tt.mockErr).Once()
			}

			handler := New(logger, serviceMock)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, newRequest(tt.user, tt.token))

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err := json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			if tt.wantError != "" {
				assert.Equal(t, "Error", got["status"])
				assert.Equal(t, tt.wantError, got["error"])
			} else {
				assert.Equal(t, "OK", got["status"])
				// Тело успешного ответа содержит пустой объект data
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Empty(t, data)
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
