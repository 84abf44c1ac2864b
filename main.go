package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"kawther/internal/config"
	"kawther/internal/events"
	"kawther/internal/handlers"
	"kawther/internal/logging"
	"kawther/internal/middleware"
	"kawther/internal/repositories"
	"kawther/internal/seed"
	"kawther/internal/services"
	"kawther/internal/store"
	"kawther/pkg/rabbitmq"
)

// App is the wired storefront: HTTP surface, session store and event publisher.
type App struct {
	Fiber     *fiber.App
	Store     *store.Store
	slots     repositories.SlotStore
	publisher events.Publisher
	logger    *zap.Logger
}

// NewApp builds the slot store, loads the session state and registers every route.
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	slots, err := newSlotStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	st := store.New(slots, cfg.Storage.KeyPrefix, logger.Named("store"))
	if err := st.Load(ctx); err != nil {
		slots.Close()
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	publisher, err := events.NewPublisher(cfg.Events, logger.Named("events"))
	if err != nil {
		slots.Close()
		return nil, err
	}

	// --- Services ---
	rules := services.PricingRulesFromConfig(cfg.Pricing)
	productService := services.NewProductService(st, seed.Categories(), logger)
	cartService := services.NewCartService(st, rules, logger)
	couponService := services.NewCouponService(st, logger)
	orderService := services.NewOrderService(st, rules, publisher, logger)
	authService := services.NewAuthService(st, cfg.Auth.JWTSecret, cfg.Auth.AdminEmail, logger)

	// --- Handlers ---
	productHandler := handlers.NewProductHandler(productService, logger)
	cartHandler := handlers.NewCartHandler(cartService, logger)
	couponHandler := handlers.NewCouponHandler(couponService, logger)
	orderHandler := handlers.NewOrderHandler(orderService, seed.DeliverySlots(), logger)
	authHandler := handlers.NewAuthHandler(authService, logger)

	app := fiber.New(fiber.Config{AppName: "kawther"})
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)
	productHandler.RegisterRoutes(apiV1)
	cartHandler.RegisterRoutes(apiV1)
	orderHandler.RegisterRoutes(apiV1)

	admin := apiV1.Group("/admin", middleware.AuthRequired(authService, logger), middleware.AdminRequired())
	productHandler.RegisterAdminRoutes(admin)
	couponHandler.RegisterAdminRoutes(admin)
	orderHandler.RegisterAdminRoutes(admin)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"time":    time.Now().Format(time.RFC3339),
			"storage": cfg.Storage.Backend,
			"events":  cfg.Events.Broker,
		})
	})

	return &App{
		Fiber:     app,
		Store:     st,
		slots:     slots,
		publisher: publisher,
		logger:    logger,
	}, nil
}

// Close releases the publisher and the slot store.
func (a *App) Close() error {
	return errors.Join(a.publisher.Close(), a.slots.Close())
}

func newSlotStore(ctx context.Context, cfg *config.Config) (repositories.SlotStore, error) {
	switch cfg.Storage.Backend {
	case "memory":
		return repositories.NewMemorySlotStore(), nil
	case "database":
		db, err := repositories.OpenDatabase(cfg.Database)
		if err != nil {
			return nil, err
		}
		return repositories.NewGORMSlotStore(db), nil
	case "redis":
		slots := repositories.NewRedisSlotStore(cfg.Redis)
		if err := slots.Ping(ctx); err != nil {
			slots.Close()
			return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.Redis.Addr, err)
		}
		return slots, nil
	}
	return nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
}

// startOrderConsumer logs order notifications from the RabbitMQ queue.
func startOrderConsumer(cfg config.EventsConfig, logger *zap.Logger) (*rabbitmq.Client, error) {
	client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: rabbitmq.OrderQueue}, logger)
	if err != nil {
		return nil, err
	}
	if err := client.Consume(events.OrderNotificationHandler(logger)); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	app, err := NewApp(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("failed to create app", zap.Error(err))
	}

	if cfg.Events.Consume && cfg.Events.Broker == "rabbitmq" {
		consumer, err := startOrderConsumer(cfg.Events, logger.Named("consumer"))
		if err != nil {
			logger.Error("failed to start order consumer", zap.Error(err))
		} else {
			defer consumer.Close()
		}
	}

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("starting server", zap.String("port", cfg.Server.Port), zap.String("storage", cfg.Storage.Backend))
		if err := app.Fiber.Listen(cfg.Server.Port); err != nil {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")

	if err := app.Fiber.Shutdown(); err != nil {
		logger.Error("error during fiber shutdown", zap.Error(err))
	}
	if err := app.Close(); err != nil {
		logger.Error("error releasing resources", zap.Error(err))
	}
	logger.Info("server gracefully stopped")
}
