package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KeHamTruyen/SoCo-DATN-sub000/internal/client"
	"github.com/KeHamTruyen/SoCo-DATN-sub000/internal/config"
	"github.com/KeHamTruyen/SoCo-DATN-sub000/internal/domain"
	"github.com/KeHamTruyen/SoCo-DATN-sub000/internal/event"
	handler "github.com/KeHamTruyen/SoCo-DATN-sub000/internal/handler/http"
	memrepo "github.com/KeHamTruyen/SoCo-DATN-sub000/internal/repository/memory"
	redisrepo "github.com/KeHamTruyen/SoCo-DATN-sub000/internal/repository/redis"
	"github.com/KeHamTruyen/SoCo-DATN-sub000/internal/service"
	"github.com/KeHamTruyen/SoCo-DATN-sub000/pkg/health"
	"github.com/KeHamTruyen/SoCo-DATN-sub000/pkg/httpclient"
	pkgkafka "github.com/KeHamTruyen/SoCo-DATN-sub000/pkg/kafka"
)

// builtinVouchers are the platform's always-on codes, installed at startup
// when seeding is enabled.
var builtinVouchers = []domain.Voucher{
	{Code: "WELCOME10", Kind: domain.VoucherPercentage, Magnitude: 0.10},
	{Code: "FREESHIP", Kind: domain.VoucherFixedShipping},
}

// App wires together all dependencies and runs the commerce engine.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	rdb        *redis.Client
	producer   *pkgkafka.Producer
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("addr", cfg.RedisAddr),
		slog.Int("db", cfg.RedisDB),
	)

	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Build the dependency graph.
	cartRepo := memrepo.NewCartRepository()
	voucherRepo := redisrepo.NewVoucherRepository(rdb)

	if cfg.SeedVouchers {
		if err := voucherRepo.Seed(ctx, builtinVouchers); err != nil {
			return nil, fmt.Errorf("seed vouchers: %w", err)
		}
		logger.Info("voucher table seeded", slog.Int("count", len(builtinVouchers)))
	}

	eventProducer := event.NewProducer(producer, logger)
	cartService := service.NewCartService(cartRepo, eventProducer, logger)

	baseClient := httpclient.New(httpclient.DefaultConfig())
	orderHTTP := httpclient.NewCircuitBreakerClient(
		baseClient,
		httpclient.DefaultCircuitBreakerConfig("order"),
		logger,
	)
	orderClient := client.NewOrderServiceClient(orderHTTP, cfg.OrderServiceURL, logger)

	pricing := domain.PricingConfig{
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		BaseShippingFee:       cfg.BaseShippingFee,
	}

	checkoutService := service.NewCheckoutService(
		cartService, voucherRepo, orderClient, eventProducer, logger, pricing,
	)

	healthHandler := health.NewHandler()
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	healthHandler.Register("kafka", func(ctx context.Context) error {
		return producer.Ping(ctx)
	})

	router := handler.NewRouter(cartService, checkoutService, healthHandler, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		rdb:        rdb,
		producer:   producer,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
