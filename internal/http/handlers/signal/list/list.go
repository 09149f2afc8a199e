// Package list реализует HTTP-обработчик выдачи последних торговых сигналов.
// Доступен только пользователям с активной подпиской.
package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/trading-signals/internal/http/middlewarectx"
	"github.com/magabrotheeeer/trading-signals/internal/http/response"
	"github.com/magabrotheeeer/trading-signals/internal/lib/errs"
	"github.com/magabrotheeeer/trading-signals/internal/lib/sl"
	"github.com/magabrotheeeer/trading-signals/internal/models"
)

// Service описывает интерфейс бизнес-логики выдачи сигналов.
type Service interface {
	ListRecent(ctx context.Context, userID int64) ([]*models.Signal, error)
}

// Handler обрабатывает HTTP-запросы списка сигналов.
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
// @Summary Последние торговые сигналы
// @Tags Signals
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} map[string]any "Список сигналов, сначала самые новые"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 402 {object} response.ErrorResponse "Нет активной подписки"
// @Router /signals [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.signal.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	signals, err := h.service.ListRecent(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, errs.ErrSubscriptionRequired) {
			log.Error("no active subscription", slog.Int64("user_id", user.ID))
			w.WriteHeader(http.StatusPaymentRequired)
			render.JSON(w, r, response.Error("subscription required"))
			return
		}
		log.Error("failed to list signals", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	if signals == nil {
		signals = []*models.Signal{}
	}
	render.JSON(w, r, response.OKWithData(map[string]any{
		"signals": signals,
	}))
}
