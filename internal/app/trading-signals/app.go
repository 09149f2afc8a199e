// Package tradingsignals собирает приложение: хранилище, миграции, кеш,
// брокер событий, сервисы и HTTP-сервер.
package tradingsignals

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/trading-signals/internal/cache"
	"github.com/magabrotheeeer/trading-signals/internal/config"
	"github.com/magabrotheeeer/trading-signals/internal/lib/jwt"
	"github.com/magabrotheeeer/trading-signals/internal/migrations"
	"github.com/magabrotheeeer/trading-signals/internal/rabbitmq"
	authservice "github.com/magabrotheeeer/trading-signals/internal/services/auth"
	signalservice "github.com/magabrotheeeer/trading-signals/internal/services/signal"
	subservice "github.com/magabrotheeeer/trading-signals/internal/services/subscription"
	"github.com/magabrotheeeer/trading-signals/internal/storage/repository"
)

// App держит ресурсы приложения с явным временем жизни.
type App struct {
	server     *http.Server
	logger     *slog.Logger
	db         *repository.Storage
	cache      *cache.Cache
	rabbitConn *amqp.Connection
}

// New инициализирует все зависимости и возвращает готовое приложение.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.Postgres.StorageConnectionString())
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConn)
	if err != nil {
		return nil, err
	}

	rabbitConn, err := rabbitmq.Connect(cfg.RabbitMQURL, 5, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rabbitCh, err := rabbitmq.SetupChannel(rabbitConn, rabbitmq.GetEventQueues())
	if err != nil {
		return nil, err
	}
	publisher := rabbitmq.NewPublisher(rabbitCh)

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker)
	subscriptionService := subservice.NewSubscriptionService(db, cacheRedis, publisher, logger)
	signalService := signalservice.NewSignalService(db, subscriptionService, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, db, authService, subscriptionService, signalService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:     srv,
		logger:     logger,
		db:         db,
		cache:      cacheRedis,
		rabbitConn: rabbitConn,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до остановки контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		_ = a.cache.Db.Close()
		_ = a.rabbitConn.Close()
		return err
	}
}
