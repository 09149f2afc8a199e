// Package services содержит бизнес-логику жизненного цикла подписок.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/trading-signals/internal/lib/errs"
	"github.com/magabrotheeeer/trading-signals/internal/lib/metrics"
	"github.com/magabrotheeeer/trading-signals/internal/lib/sl"
	"github.com/magabrotheeeer/trading-signals/internal/models"
	"github.com/magabrotheeeer/trading-signals/internal/rabbitmq"
)

// activeCacheTTL — время жизни кеша активной подписки. Короткое, чтобы
// ленивая проверка срока действия не отставала от реального времени.
const activeCacheTTL = time.Minute

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	// CreateSubscription атомарно деактивирует прежние подписки и вставляет новую.
	CreateSubscription(ctx context.Context, sub models.Subscription) (*models.Subscription, error)
	// GetActiveSubscription возвращает активную непросроченную подписку или (nil, nil).
	GetActiveSubscription(ctx context.Context, userID int64, now time.Time) (*models.Subscription, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// EventPublisher публикует события жизненного цикла подписок.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// SubscriptionCreatedEvent — сообщение для внешних воркеров уведомлений.
type SubscriptionCreatedEvent struct {
	UserID   int64     `json:"user_id"`
	Username string    `json:"username"`
	PlanType string    `json:"plan_type"`
	EndDate  time.Time `json:"end_date"`
}

// SubscriptionService реализует бизнес-логику подписок, включая кеширование
// активной записи и публикацию событий.
type SubscriptionService struct {
	repo      SubscriptionRepository
	cache     Cache
	publisher EventPublisher
	log       *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, cache Cache, publisher EventPublisher, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		log:       log,
	}
}

// Subscribe оформляет подписку выбранного тарифа для пользователя.
//
// Требует принятого соглашения. Дата окончания считается календарной
// арифметикой: месяц, полгода или год от текущего момента.
func (s *SubscriptionService) Subscribe(ctx context.Context, user *models.User, planType string) (*models.Subscription, error) {
	if !models.ValidPlanType(planType) {
		return nil, errs.ErrInvalidPlanType
	}
	if !user.ConsentAccepted {
		return nil, errs.ErrConsentRequired
	}

	now := time.Now().UTC()
	var endDate time.Time
	switch planType {
	case models.PlanMonthly:
		endDate = now.AddDate(0, 1, 0)
	case models.PlanSixMonth:
		endDate = now.AddDate(0, 6, 0)
	case models.PlanYearly:
		endDate = now.AddDate(1, 0, 0)
	}

	sub := models.Subscription{
		UserID:    user.ID,
		PlanType:  planType,
		StartDate: now,
		EndDate:   endDate,
		IsActive:  true,
	}
	created, err := s.repo.CreateSubscription(ctx, sub)
	if err != nil {
		return nil, err
	}
	metrics.SubscriptionsCreated.WithLabelValues(planType).Inc()
	s.log.Info("created new subscription",
		slog.Int64("id", created.ID),
		slog.String("plan_type", planType))

	cacheKey := activeCacheKey(user.ID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), sl.Err(err))
	}

	event := SubscriptionCreatedEvent{
		UserID:   user.ID,
		Username: user.Username,
		PlanType: created.PlanType,
		EndDate:  created.EndDate,
	}
	// Подписка уже зафиксирована в базе: сбой публикации не отменяет её.
	if err := s.publisher.Publish(rabbitmq.RoutingKeySubscriptionCreated, event); err != nil {
		s.log.Warn("failed to publish subscription event", sl.Err(err))
	}

	return created, nil
}

// GetActive возвращает активную непросроченную подписку пользователя
// или nil, если таковой нет. Отсутствие подписки не является ошибкой.
func (s *SubscriptionService) GetActive(ctx context.Context, userID int64) (*models.Subscription, error) {
	now := time.Now().UTC()
	cacheKey := activeCacheKey(userID)

	var cached models.Subscription
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read cache", slog.String("key", cacheKey), sl.Err(err))
	}
	// Кешированная запись могла истечь между записью и чтением.
	if found && cached.EndDate.After(now) {
		return &cached, nil
	}

	result, err := s.repo.GetActiveSubscription(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	if result != nil {
		if err := s.cache.Set(cacheKey, result, activeCacheTTL); err != nil {
			s.log.Warn("failed to add to cache", slog.String("key", cacheKey), sl.Err(err))
		}
	}
	return result, nil
}

func activeCacheKey(userID int64) string {
	return fmt.Sprintf("subscription:active:%d", userID)
}
