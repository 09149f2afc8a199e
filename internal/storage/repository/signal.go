package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/trading-signals/internal/models"
)

// SaveSignal вставляет новый сигнал и возвращает его ID.
// Payload сохраняется дословно в колонку jsonb.
func (s *Storage) SaveSignal(ctx context.Context, signal models.Signal) (int64, error) {
	const op = "storage.SaveSignal"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO signals (uid, symbol, signal_type, payload)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		signal.UID, signal.Symbol, signal.SignalType, []byte(signal.Payload)).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListRecentSignals возвращает последние сигналы, сначала самые новые.
func (s *Storage) ListRecentSignals(ctx context.Context, limit int) ([]*models.Signal, error) {
	const op = "storage.ListRecentSignals"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, uid, symbol, signal_type, payload, created_at
			  FROM signals
			  ORDER BY created_at DESC, id DESC
			  LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Signal
	for rows.Next() {
		var item models.Signal
		var symbol sql.NullString
		var payload []byte
		if err := rows.Scan(&item.ID, &item.UID, &symbol,
			&item.SignalType, &payload, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if symbol.Valid {
			item.Symbol = &symbol.String
		}
		item.Payload = payload
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
