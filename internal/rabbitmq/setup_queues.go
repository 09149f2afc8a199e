package rabbitmq

// Exchange — имя exchange для событий приложения.
const Exchange = "signals"

// RoutingKeySubscriptionCreated — ключ маршрутизации событий о новых подписках.
const RoutingKeySubscriptionCreated = "subscription.created"

// QueueConfig описывает очередь и её ключ маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetEventQueues возвращает очереди, объявляемые при старте.
func GetEventQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "subscriptions.created", RoutingKey: RoutingKeySubscriptionCreated},
	}
}
