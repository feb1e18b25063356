package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/az9589317-spec/artghar/internal/cache"
	"github.com/az9589317-spec/artghar/internal/config"
	"github.com/az9589317-spec/artghar/internal/consumer"
	"github.com/az9589317-spec/artghar/internal/gateway"
	h "github.com/az9589317-spec/artghar/internal/http"
	"github.com/az9589317-spec/artghar/internal/notifier"
	"github.com/az9589317-spec/artghar/internal/publisher"
	"github.com/az9589317-spec/artghar/internal/repository"
	"github.com/az9589317-spec/artghar/internal/service"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "artghar").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// storage
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	db, err := repository.ConnectMongoDB(connectCtx, cfg.MongoURI, cfg.MongoDB)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := db.Client().Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("error disconnecting mongodb")
		}
	}()

	indexCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	err = repository.EnsureIndexes(indexCtx, db)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure indexes")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()

	// repositories
	cartRepo := repository.NewMongoCartRepository(db)
	checkoutRepo := repository.NewMongoCheckoutRepository(db)
	orderRepo := repository.NewMongoOrderRepository(db)
	outboxRepo := repository.NewMongoOutboxRepository(db)
	catalogRepo := repository.NewMongoCatalogRepository(db)

	// services
	cartCache := cache.NewRedisCache(redisClient)
	cartService := service.NewCartService(cartRepo, catalogRepo, cartCache, logger)
	catalogService := service.NewCatalogService(catalogRepo, logger)
	orderService := service.NewOrderService(orderRepo, logger)

	paymentGateway := gateway.NewClient("", cfg.RazorpayKeyID, cfg.RazorpayKeySecret, 15*time.Second, logger)
	checkoutService := service.NewCheckoutService(checkoutRepo, orderRepo, outboxRepo, cartService, paymentGateway, logger)

	// background pipeline: outbox -> kafka -> email
	poller := publisher.NewOutboxPoller(outboxRepo, checkoutService, logger, cfg.KafkaBrokers...)
	go poller.Run(ctx)

	emailSender := notifier.NewEmailClient("", cfg.ResendAPIKey, cfg.OrderNotificationEmail, 15*time.Second, logger)
	orderConsumer := consumer.NewConsumer(emailSender, logger, cfg.KafkaBrokers...)
	defer orderConsumer.Close()
	go orderConsumer.Run(ctx)

	// http
	router := h.NewRouter(h.RouterConfig{
		RequestTimeout: cfg.RequestTimeout,
		AdminToken:     cfg.AdminToken,
	}, h.Handlers{
		Cart:     h.NewCartHandler(cartService, cfg.RequestTimeout),
		Checkout: h.NewCheckoutHandler(checkoutService, cfg.RequestTimeout),
		Orders:   h.NewOrdersHandler(orderService, cfg.RequestTimeout),
		Catalog:  h.NewCatalogHandler(catalogService, cfg.RequestTimeout),
		Admin:    h.NewAdminHandler(orderService, catalogService, cfg.RequestTimeout),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      otelhttp.NewHandler(router, "artghar"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.ServerPort).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited")
}
