package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/frahmantamala/payment-gateway/internal"
	"github.com/frahmantamala/payment-gateway/internal/bank"
	"github.com/frahmantamala/payment-gateway/internal/core/events"
	"github.com/frahmantamala/payment-gateway/internal/payment"
	"github.com/frahmantamala/payment-gateway/internal/payment/memstore"
	paymentpostgres "github.com/frahmantamala/payment-gateway/internal/payment/postgres"
	"github.com/frahmantamala/payment-gateway/internal/payment/redisstore"
	"github.com/frahmantamala/payment-gateway/internal/transport/rest"
	"github.com/frahmantamala/payment-gateway/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle payment API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config         *internal.Config
	DB             *sqlx.DB
	Router         *chi.Mux
	PaymentHandler *payment.Handler
	EventBus       *events.EventBus
	Logger         *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr, "storage_backend", deps.Config.Storage.Backend)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.EventBus.Drain(ctx); err != nil {
			deps.Logger.Error("event bus drain error", "error", err)
		}
		if deps.DB != nil {
			if err := deps.DB.Close(); err != nil {
				deps.Logger.Error("database close error", "error", err)
			}
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func setupRoutes(deps *Dependencies) {
	var sqlDB *sql.DB
	if deps.DB != nil {
		sqlDB = deps.DB.DB
	}
	rest.RegisterAllRoutes(deps.Router, sqlDB, deps.PaymentHandler, deps.Logger)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	log := logger.LoggerWrapper()

	var (
		db   *sqlx.DB
		repo payment.Repository
	)

	switch config.Storage.Backend {
	case internal.StorageBackendPostgres:
		db, err = initDB(config.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to open gorm connection: %w", err)
		}
		repo = paymentpostgres.NewPaymentRepository(gormDB)
	case internal.StorageBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		repo = redisstore.New(client)
	default:
		repo = memstore.New()
	}

	registry, err := buildBankRegistry(config.Bank, log)
	if err != nil {
		return nil, fmt.Errorf("failed to build bank registry: %w", err)
	}

	eventBus := events.NewEventBus(log)
	registerAuditHandler(eventBus, log)

	paymentService := payment.NewPaymentService(repo, registry, eventBus, log)
	paymentHandler := payment.NewHandler(paymentService, log)

	return &Dependencies{
		Config:         config,
		Logger:         log,
		DB:             db,
		Router:         chi.NewRouter(),
		PaymentHandler: paymentHandler,
		EventBus:       eventBus,
	}, nil
}

func buildBankRegistry(cfg internal.BankConfig, log *slog.Logger) (*bank.Registry, error) {
	registry := bank.NewRegistry()

	if err := registry.Register(bank.ProviderSimulator, bank.NewSimulatorClient(cfg.SimulatorURL, cfg.Timeout, log)); err != nil {
		return nil, err
	}
	if err := registry.Register(bank.ProviderStripe, bank.NewMockStripeClient(log)); err != nil {
		return nil, err
	}

	log.Info("bank registry ready", "providers", registry.Providers())
	return registry, nil
}

// registerAuditHandler writes an audit line for every processed payment.
func registerAuditHandler(bus *events.EventBus, log *slog.Logger) {
	bus.Subscribe(events.EventTypePaymentProcessed, func(ctx context.Context, event events.Event) error {
		log.Info("audit: payment processed",
			"event_id", event.EventID(),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload())
		return nil
	})
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
