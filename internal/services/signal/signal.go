// Package services содержит бизнес-логику приёма и выдачи торговых сигналов.
package services

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/trading-signals/internal/lib/errs"
	"github.com/magabrotheeeer/trading-signals/internal/lib/metrics"
	"github.com/magabrotheeeer/trading-signals/internal/models"
)

// recentLimit — сколько последних сигналов отдаётся клиенту.
const recentLimit = 200

// SignalRepository определяет методы для работы с сигналами в хранилище.
type SignalRepository interface {
	// SaveSignal вставляет новый сигнал и возвращает его ID.
	SaveSignal(ctx context.Context, signal models.Signal) (int64, error)
	// ListRecentSignals возвращает последние сигналы, сначала самые новые.
	ListRecentSignals(ctx context.Context, limit int) ([]*models.Signal, error)
}

// SubscriptionChecker отдаёт активную подписку пользователя, если она есть.
type SubscriptionChecker interface {
	GetActive(ctx context.Context, userID int64) (*models.Subscription, error)
}

// SignalService реализует приём вебхуков и выдачу сохранённых сигналов.
type SignalService struct {
	repo          SignalRepository
	subscriptions SubscriptionChecker
	log           *slog.Logger
}

// NewSignalService создает новый экземпляр SignalService.
func NewSignalService(repo SignalRepository, subscriptions SubscriptionChecker, log *slog.Logger) *SignalService {
	return &SignalService{
		repo:          repo,
		subscriptions: subscriptions,
		log:           log,
	}
}

// Ingest сохраняет сигнал от внешнего источника.
//
// Тикер берётся из поля symbol, затем ticker; категория — из signal,
// затем type, иначе "signal". Отсутствие любого из полей не ошибка:
// тело сохраняется дословно в любом случае.
func (s *SignalService) Ingest(ctx context.Context, raw json.RawMessage) (int64, error) {
	var fields map[string]any
	_ = json.Unmarshal(raw, &fields)

	signal := models.Signal{
		UID:        uuid.New().String(),
		Symbol:     stringField(fields, "symbol", "ticker"),
		SignalType: "signal",
		Payload:    raw,
	}
	if t := stringField(fields, "signal", "type"); t != nil {
		signal.SignalType = *t
	}

	id, err := s.repo.SaveSignal(ctx, signal)
	if err != nil {
		return 0, err
	}
	metrics.SignalsIngested.Inc()
	s.log.Info("stored incoming signal",
		slog.Int64("id", id),
		slog.String("type", signal.SignalType))
	return id, nil
}

// ListRecent возвращает последние сигналы для пользователя с активной
// подпиской; без неё — errs.ErrSubscriptionRequired, даже если сигналы есть.
func (s *SignalService) ListRecent(ctx context.Context, userID int64) ([]*models.Signal, error) {
	active, err := s.subscriptions.GetActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, errs.ErrSubscriptionRequired
	}
	return s.repo.ListRecentSignals(ctx, recentLimit)
}

// stringField возвращает первое присутствующее строковое поле из перечисленных.
func stringField(fields map[string]any, keys ...string) *string {
	for _, key := range keys {
		if v, ok := fields[key]; ok {
			if str, ok := v.(string); ok {
				return &str
			}
		}
	}
	return nil
}
