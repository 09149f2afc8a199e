package models

import "time"

// Типы тарифных планов. Закрытое перечисление: длительность каждого
// плана зашита в бизнес-логику и не настраивается.
const (
	PlanMonthly  = "monthly"
	PlanSixMonth = "6month"
	PlanYearly   = "yearly"
)

// Subscription представляет подписку пользователя на сервис.
// Активной считается запись с IsActive = true и EndDate в будущем;
// просроченные записи не деактивируются явно, срок проверяется при чтении.
type Subscription struct {
	ID        int64     `json:"id"`         // Идентификатор записи
	UserID    int64     `json:"-"`          // Владелец подписки
	PlanType  string    `json:"type"`       // Тарифный план: monthly, 6month, yearly
	StartDate time.Time `json:"start_date"` // Дата начала подписки
	EndDate   time.Time `json:"end_date"`   // Расчётная дата окончания
	IsActive  bool      `json:"active"`     // Флаг активности записи
}

// ValidPlanType сообщает, входит ли план в перечисление тарифов.
func ValidPlanType(planType string) bool {
	switch planType {
	case PlanMonthly, PlanSixMonth, PlanYearly:
		return true
	}
	return false
}
