// Package accept реализует HTTP-обработчик принятия пользовательского соглашения.
//
// Вместе с флагом сохраняются точный текст соглашения, момент принятия
// и IP-адрес источника запроса — для аудита. Повторное принятие
// перезаписывает предыдущую запись.
package accept

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/trading-signals/internal/http/middlewarectx"
	"github.com/magabrotheeeer/trading-signals/internal/http/response"
	"github.com/magabrotheeeer/trading-signals/internal/lib/sl"
)

// Request — входные данные для принятия соглашения.
type Request struct {
	ConsentText string `json:"consent_text" validate:"required"`
}

// Service описывает интерфейс бизнес-логики принятия соглашения.
type Service interface {
	AcceptConsent(ctx context.Context, userID int64, consentText, consentIP string) error
}

// Handler обрабатывает HTTP-запросы на принятие соглашения.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Принять пользовательское соглашение
// @Tags Consent
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param request body Request true "Текст соглашения, показанный пользователю"
// @Success 200 {object} map[string]any "Соглашение принято"
// @Failure 400 {object} response.ErrorResponse "Пустой текст соглашения"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /accept-consent [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.consent.accept"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.AcceptConsent(r.Context(), user.ID, req.ConsentText, clientIP(r)); err != nil {
		log.Error("failed to accept consent", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not record consent"))
		return
	}

	log.Info("consent accepted", slog.Int64("user_id", user.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"consent_accepted": true,
	}))
}

// clientIP возвращает адрес источника: первый элемент X-Forwarded-For,
// если заголовок задан, иначе адрес соединения.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
