package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUpdate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
		check   func(t *testing.T, upd *Update)
	}{
		{
			name: "all allowed fields",
			body: `{"name":"Alice","phone":"+1234567","username":"alice","email":"a@example.com","password":"secret"}`,
			check: func(t *testing.T, upd *Update) {
				require.NotNil(t, upd.Name)
				assert.Equal(t, "Alice", *upd.Name)
				require.NotNil(t, upd.Password)
				assert.Equal(t, "secret", *upd.Password)
			},
		},
		{
			name: "subset of fields",
			body: `{"email":"new@example.com"}`,
			check: func(t *testing.T, upd *Update) {
				require.NotNil(t, upd.Email)
				assert.Equal(t, "new@example.com", *upd.Email)
				assert.Nil(t, upd.Name)
				assert.Nil(t, upd.Username)
			},
		},
		{
			name:  "empty object",
			body:  `{}`,
			check: func(t *testing.T, upd *Update) {},
		},
		{
			name:    "unknown field rejects whole update",
			body:    `{"name":"Alice","role":"superadmin"}`,
			wantErr: ErrUnknownField,
		},
		{
			name:    "id is not updatable",
			body:    `{"id":"some-uid"}`,
			wantErr: ErrUnknownField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upd, err := ParseUpdate([]byte(tt.body))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, upd)
				return
			}
			require.NoError(t, err)
			tt.check(t, upd)
		})
	}
}

func TestParseUpdate_InvalidJSON(t *testing.T) {
	upd, err := ParseUpdate([]byte(`{bad json`))
	require.Error(t, err)
	assert.Nil(t, upd)
}

func TestUpdate_ApplyTo(t *testing.T) {
	name := "New Name"
	email := "new@example.com"
	password := "raw-password"
	upd := &Update{Name: &name, Email: &email, Password: &password}

	user := &User{
		UID:          "uid-1",
		Username:     "alice",
		Name:         "Old Name",
		Email:        "old@example.com",
		Phone:        "+1234567",
		PasswordHash: "old-hash",
		Role:         RoleUser,
	}
	upd.ApplyTo(user)

	assert.Equal(t, "New Name", user.Name)
	assert.Equal(t, "new@example.com", user.Email)
	// Поля без обновления не трогаем
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "+1234567", user.Phone)
	// Пароль применяет сервисный слой, не ApplyTo
	assert.Equal(t, "old-hash", user.PasswordHash)
}
