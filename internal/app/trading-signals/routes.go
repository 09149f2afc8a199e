// Package tradingsignals предоставляет маршруты для основного приложения.
package tradingsignals

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/trading-signals/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/trading-signals/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/trading-signals/internal/http/handlers/consent/accept"
	"github.com/magabrotheeeer/trading-signals/internal/http/handlers/health"
	"github.com/magabrotheeeer/trading-signals/internal/http/handlers/signal/list"
	"github.com/magabrotheeeer/trading-signals/internal/http/handlers/signal/webhook"
	"github.com/magabrotheeeer/trading-signals/internal/http/handlers/subscription/create"
	"github.com/magabrotheeeer/trading-signals/internal/http/handlers/user/me"
	"github.com/magabrotheeeer/trading-signals/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/trading-signals/internal/services/auth"
	signalservice "github.com/magabrotheeeer/trading-signals/internal/services/signal"
	subservice "github.com/magabrotheeeer/trading-signals/internal/services/subscription"
	"github.com/magabrotheeeer/trading-signals/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *repository.Storage,
	authService *authservice.AuthService,
	subscriptionService *subservice.SubscriptionService,
	signalService *signalservice.SignalService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Открытые конечные точки
	r.Get("/", health.New(logger, db).ServeHTTP)
	r.Post("/signup", register.New(logger, authService).ServeHTTP)
	r.Post("/login", login.New(logger, authService).ServeHTTP)

	// Webhook endpoint (без аутентификации: источник — внешний сервис алертов)
	r.Post("/webhook", webhook.New(logger, signalService).ServeHTTP)

	// Группа с JWT аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(authService, logger))
		r.Post("/accept-consent", accept.New(logger, authService).ServeHTTP)
		r.Post("/subscribe", create.New(logger, subscriptionService).ServeHTTP)
		r.Get("/me", me.New(logger, subscriptionService).ServeHTTP)
		r.Get("/signals", list.New(logger, signalService).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
