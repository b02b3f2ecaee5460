package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hrops/backoffice/internal"
	"github.com/hrops/backoffice/internal/advance"
	advancePostgres "github.com/hrops/backoffice/internal/advance/postgres"
	"github.com/hrops/backoffice/internal/assignment"
	assignmentPostgres "github.com/hrops/backoffice/internal/assignment/postgres"
	"github.com/hrops/backoffice/internal/core/events"
	employeePostgres "github.com/hrops/backoffice/internal/employee/postgres"
	"github.com/hrops/backoffice/internal/increment"
	incrementPostgres "github.com/hrops/backoffice/internal/increment/postgres"
	"github.com/hrops/backoffice/internal/notification"
	"github.com/hrops/backoffice/internal/transport/rest"
	"github.com/hrops/backoffice/pkg/logger"
	"github.com/hrops/backoffice/pkg/timeutil"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := setupRoutes(deps); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up routes: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
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
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if sqlDB, err := deps.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
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

func setupRoutes(deps *Dependencies) error {
	publicKey, err := deps.Config.Security.GetPublicKey()
	if err != nil {
		return fmt.Errorf("failed to parse JWT public key: %w", err)
	}

	clock := timeutil.SystemClock{}

	eventBus := events.NewEventBus(deps.Logger)
	dispatcher := notification.NewDispatcher(notification.NewLogSender(deps.Logger), deps.Logger)
	dispatcher.Register(eventBus)

	employeeRepo := employeePostgres.NewEmployeeRepository(deps.DB)
	assignmentRepo := assignmentPostgres.NewAssignmentRepository(deps.DB)
	advanceRepo := advancePostgres.NewAdvanceRepository(deps.DB)
	incrementRepo := incrementPostgres.NewIncrementRepository(deps.DB)

	assignmentService := assignment.NewService(assignmentRepo, clock, deps.Logger)
	advanceService := advance.NewService(advanceRepo, eventBus, clock, deps.Logger)
	incrementService := increment.NewService(incrementRepo, employeeRepo, eventBus, clock, deps.Logger)

	assignmentHandler := assignment.NewHandler(assignmentService)
	advanceHandler := advance.NewHandler(advanceService)
	incrementHandler := increment.NewHandler(incrementService)

	sqlDB, err := deps.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to unwrap sql.DB: %w", err)
	}

	rest.RegisterAllRoutes(deps.Router, sqlDB, publicKey,
		assignmentHandler, advanceHandler, incrementHandler, deps.Logger)
	return nil
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Logging.Format, config.Logging.Level)
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: lg,
		DB:     db,
		Router: chi.NewRouter(),
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(gormPostgres.Open(cfg.Source), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
