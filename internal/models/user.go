// Package models содержит доменные структуры приложения:
// пользователей, подписки и торговые сигналы. Структуры используются
// в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID              int64      // Уникальный идентификатор пользователя
	Username        string     // Имя пользователя (уникальное)
	Email           string     // Электронная почта (уникальная)
	PasswordHash    string     // Хэш пароля пользователя
	ConsentAccepted bool       // Принято ли пользовательское соглашение
	ConsentText     *string    // Текст соглашения, показанный пользователю
	ConsentAt       *time.Time // Момент принятия соглашения
	ConsentIP       *string    // IP-адрес, с которого принято соглашение
	CreatedAt       time.Time  // Дата регистрации
}

// PublicUser содержит поля пользователя, которые можно отдавать клиенту.
type PublicUser struct {
	ID              int64  `json:"id"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	ConsentAccepted bool   `json:"consent_accepted"`
}

// Public возвращает представление пользователя без чувствительных полей.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:              u.ID,
		Username:        u.Username,
		Email:           u.Email,
		ConsentAccepted: u.ConsentAccepted,
	}
}
