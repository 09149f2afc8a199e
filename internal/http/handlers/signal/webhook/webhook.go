// Package webhook реализует приём торговых сигналов от внешнего источника.
//
// Endpoint не требует аутентификации: источник — сторонний сервис алертов.
// Тело запроса сохраняется дословно; отсутствие необязательных полей
// не приводит к ошибке, клиенту отвечает только сбой хранилища.
package webhook

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/trading-signals/internal/http/response"
	"github.com/magabrotheeeer/trading-signals/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики приёма сигналов.
type Service interface {
	Ingest(ctx context.Context, raw json.RawMessage) (int64, error)
}

// Handler обрабатывает входящие вебхуки с сигналами.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Принять торговый сигнал
// @Description Сохраняет произвольный JSON-алерт от внешнего сервиса.
// @Tags Signals
// @Accept  json
// @Produce  json
// @Success 200 {object} map[string]any "Сигнал принят"
// @Failure 400 {object} response.ErrorResponse "Тело запроса не является JSON"
// @Failure 500 {object} response.ErrorResponse "Сбой хранилища"
// @Router /webhook [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.signal.webhook"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("failed to read webhook body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to read request body"))
		return
	}
	defer func() {
		_ = r.Body.Close()
	}()

	// Колонка payload имеет тип jsonb: невалидный JSON не сохранить дословно.
	if !json.Valid(body) {
		log.Error("webhook body is not valid json")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	id, err := h.service.Ingest(r.Context(), body)
	if err != nil {
		log.Error("failed to store signal", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to store signal"))
		return
	}

	log.Info("signal accepted", slog.Int64("id", id))
	render.JSON(w, r, map[string]any{"ok": true})
}
