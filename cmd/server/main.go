package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appsync "github.com/pickhero/commerce-sync/internal/application/sync"
	"github.com/pickhero/commerce-sync/internal/domain/commerce"
	"github.com/pickhero/commerce-sync/internal/infrastructure/config"
	"github.com/pickhero/commerce-sync/internal/infrastructure/lock"
	"github.com/pickhero/commerce-sync/internal/infrastructure/logger"
	"github.com/pickhero/commerce-sync/internal/infrastructure/metrics"
	"github.com/pickhero/commerce-sync/internal/infrastructure/persistence"
	"github.com/pickhero/commerce-sync/internal/infrastructure/pickhero"
	"github.com/pickhero/commerce-sync/internal/infrastructure/queue"
	"github.com/pickhero/commerce-sync/internal/interfaces/http/handler"
	"github.com/pickhero/commerce-sync/internal/interfaces/http/router"
)

// webhookPath is where the warehouse delivers order-status callbacks,
// relative to the configured public base URL.
const webhookPath = "/webhooks/pickhero/order-status-changed"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("starting commerce sync",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database", zap.Error(err))
		}
	}()

	if err := persistence.Migrate(db.DB); err != nil {
		log.Fatal("failed to migrate schema", zap.Error(err))
	}
	log.Info("database ready")

	metrics.Register()

	// Per-order lock: distributed when Redis is configured, in-process
	// otherwise.
	var locker lock.OrderLocker = lock.NewMemoryOrderLocker()
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		locker = lock.NewRedisOrderLocker(redisClient)
		log.Info("redis order lock enabled", zap.String("addr", cfg.Redis.Addr()))
	}

	// Local stores and repositories.
	bus := commerce.NewOrderSavedBus(log)
	orderStore := persistence.NewGormOrderStore(db.DB, bus)
	variantStore := persistence.NewGormVariantStore(db.DB)
	syncRepo := persistence.NewGormOrderSyncRepository(db.DB)
	regRepo := persistence.NewGormWebhookRegistrationRepository(db.DB)

	// Warehouse API client.
	client := pickhero.NewClient(pickhero.Config{
		BaseURL: cfg.PickHero.APIBaseURL,
		Token:   cfg.PickHero.APIToken,
		Debug:   cfg.PickHero.Debug,
	}, log)

	// Application services.
	settings := appsync.SettingsFromConfig(cfg.PickHero)
	guard := appsync.NewPushGuard()

	resolver := appsync.NewResolver(client.Products(), client.Customers(), variantStore, settings, log)
	transformer := appsync.NewTransformer(settings.PushPrices, appsync.WithOrderURL(adminOrderURL(cfg.PickHero.WebhookBaseURL)))

	orchestrator := appsync.NewOrderSyncService(
		settings, client.Orders(), orderStore, syncRepo,
		resolver, transformer, locker, guard, log,
	)
	webhookService := appsync.NewWebhookService(
		settings.SyncOrderStatus,
		strings.TrimRight(cfg.PickHero.WebhookBaseURL, "/")+webhookPath,
		regRepo, client.Webhooks(), orderStore, syncRepo,
		settings.StatusMappings, guard, log,
	)

	// Background queue: order saves enqueue, workers call the
	// orchestrator with a fresh read of the order.
	syncQueue := queue.NewSyncQueue(cfg.Queue.Workers, cfg.Queue.BufferSize, orchestrator.HandleOrderChange, log)
	syncQueue.Start(context.Background())

	token := bus.Subscribe(func(_ context.Context, orderID int64) {
		if guard.Suppressed(orderID) {
			return
		}
		syncQueue.Enqueue(orderID)
	})

	engine := router.New(router.Config{
		Logger: log,
		Public: []router.Registrar{
			handler.NewWebhookHandler(webhookService, log),
		},
		Admin: []router.Registrar{
			handler.NewOrderSyncHandler(orchestrator, log),
			handler.NewWebhookAdminHandler(webhookService, log),
		},
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.App.Port),
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	bus.Unsubscribe(token)
	syncQueue.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("http server shutdown", zap.Error(err))
	}
	log.Info("stopped")
}

// adminOrderURL builds the back-link the warehouse shows next to an
// order. Empty base disables the link.
func adminOrderURL(baseURL string) func(*commerce.Order) string {
	base := strings.TrimRight(baseURL, "/")
	return func(order *commerce.Order) string {
		if base == "" {
			return ""
		}
		return fmt.Sprintf("%s/admin/orders/%d", base, order.ID)
	}
}
