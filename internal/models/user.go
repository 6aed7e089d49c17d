// Package models содержит доменную модель пользователя сервиса аккаунтов
// и проекции, в которых пользователь отдаётся наружу.
package models

import "time"

// RoleSuperadmin — единственная роль с правами администрирования пользователей.
const RoleSuperadmin = "superadmin"

// RoleUser — роль по умолчанию при регистрации.
const RoleUser = "user"

// User представляет зарегистрированного пользователя системы.
// PasswordHash никогда не сериализуется в ответах.
type User struct {
	UID          string    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsSuperadmin сообщает, имеет ли пользователь административные права.
func (u *User) IsSuperadmin() bool {
	return u.Role == RoleSuperadmin
}

// PublicUser — проекция пользователя для списка пользователей:
// без роли, телефона и каких-либо данных о пароле и токенах.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// Public возвращает проекцию пользователя для выдачи в общем списке.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.UID,
		Username: u.Username,
		Name:     u.Name,
		Email:    u.Email,
	}
}

// LoginUser — проекция пользователя в ответе на успешный вход.
type LoginUser struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// LoginView возвращает проекцию пользователя для ответа на вход.
func (u *User) LoginView() LoginUser {
	return LoginUser{
		Username: u.Username,
		Name:     u.Name,
		Email:    u.Email,
	}
}
