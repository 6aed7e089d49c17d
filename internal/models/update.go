package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownField возвращается, когда в теле обновления встречается поле
// вне разрешённого списка. Обновление в этом случае не применяется целиком.
var ErrUnknownField = errors.New("unknown update field")

// allowedUpdates — список полей, которые пользователь может менять
// через PATCH-запросы. Любой другой ключ отклоняет запрос целиком.
var allowedUpdates = map[string]struct{}{
	"name":     {},
	"phone":    {},
	"username": {},
	"email":    {},
	"password": {},
}

// Update — типизированное частичное обновление пользователя.
// nil-поле означает "не менять". Password содержит сырой пароль,
// хэширование выполняет сервисный слой.
type Update struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// ParseUpdate разбирает тело запроса в Update, предварительно проверив,
// что каждый ключ входит в разрешённый список. Проверка "всё или ничего":
// один неизвестный ключ — и ни одно поле не применяется.
func ParseUpdate(data []byte) (*Update, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for key := range raw {
		if _, ok := allowedUpdates[key]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, key)
		}
	}

	var upd Update
	if err := json.Unmarshal(data, &upd); err != nil {
		return nil, err
	}
	return &upd, nil
}

// ApplyTo переносит заполненные поля обновления в запись пользователя.
// Пароль не трогает: его хэширует сервисный слой.
func (upd *Update) ApplyTo(user *User) {
	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Phone != nil {
		user.Phone = *upd.Phone
	}
	if upd.Username != nil {
		user.Username = *upd.Username
	}
	if upd.Email != nil {
		user.Email = *upd.Email
	}
}
