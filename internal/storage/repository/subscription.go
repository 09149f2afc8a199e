package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/trading-signals/internal/models"
)

// CreateSubscription деактивирует все прежние активные подписки
// пользователя и вставляет новую активную запись. Обе операции
// выполняются в одной транзакции: при сбое между шагами у пользователя
// остаётся ноль активных подписок, но никогда не две.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (*models.Subscription, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deactivate := `UPDATE subscriptions
				   SET is_active = false
				   WHERE user_id = $1
				     AND is_active = true`
	if _, err = tx.ExecContext(ctx, deactivate, sub.UserID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	insert := `INSERT INTO subscriptions (user_id, plan_type, start_date, end_date, is_active)
			   VALUES ($1, $2, $3, $4, $5)
			   RETURNING id`
	if err = tx.QueryRowContext(ctx, insert,
		sub.UserID, sub.PlanType, sub.StartDate, sub.EndDate, sub.IsActive).Scan(&sub.ID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &sub, nil
}

// GetActiveSubscription возвращает самую позднюю (по дате окончания)
// активную и непросроченную подписку пользователя. Отсутствие подписки
// не является ошибкой: возвращается (nil, nil).
func (s *Storage) GetActiveSubscription(ctx context.Context, userID int64, now time.Time) (*models.Subscription, error) {
	const op = "storage.GetActiveSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, plan_type, start_date, end_date, is_active
			  FROM subscriptions
			  WHERE user_id = $1
			    AND is_active = true
			    AND end_date > $2
			  ORDER BY end_date DESC
			  LIMIT 1`
	row := s.DB.QueryRowContext(ctx, query, userID, now)

	var result models.Subscription
	if err := row.Scan(&result.ID, &result.UserID, &result.PlanType,
		&result.StartDate, &result.EndDate, &result.IsActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// CountActiveSubscriptions возвращает число активных записей пользователя.
// Инвариант хранилища: не больше одной.
func (s *Storage) CountActiveSubscriptions(ctx context.Context, userID int64) (int, error) {
	const op = "storage.CountActiveSubscriptions"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*) FROM subscriptions WHERE user_id = $1 AND is_active = true`
	var count int
	if err := s.DB.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
