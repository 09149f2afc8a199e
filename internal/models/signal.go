package models

import (
	"encoding/json"
	"time"
)

// Signal представляет торговый сигнал, принятый от внешнего вебхука.
// Payload хранится дословно в том виде, в котором пришёл от источника.
type Signal struct {
	ID         int64           `json:"id"`
	UID        string          `json:"uid"`     // Серверный uuid записи
	Symbol     *string         `json:"symbol"`  // Тикер инструмента, может отсутствовать
	SignalType string          `json:"type"`    // Категория сигнала, по умолчанию "signal"
	Payload    json.RawMessage `json:"payload"` // Исходное тело вебхука
	CreatedAt  time.Time       `json:"created_at"`
}
