// Package errs определяет ошибки бизнес-уровня, общие для сервисов
// и HTTP-обработчиков. Обработчики сопоставляют их с кодами ответа
// через errors.Is; все прочие ошибки считаются сбоем хранилища.
package errs

import "errors"

var (
	// ErrUserExists — username или email уже заняты.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials — неверная пара email/пароль.
	// Текст одинаков для несуществующего email и неверного пароля.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken — токен не прошёл проверку подписи или истёк.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrUserNotFound — пользователь из токена не найден в хранилище.
	ErrUserNotFound = errors.New("user not found")
	// ErrConsentRequired — операция требует принятого соглашения.
	ErrConsentRequired = errors.New("consent required")
	// ErrSubscriptionRequired — операция требует активной подписки.
	ErrSubscriptionRequired = errors.New("subscription required")
	// ErrInvalidPlanType — тарифный план вне перечисления.
	ErrInvalidPlanType = errors.New("invalid subscription type")
)
