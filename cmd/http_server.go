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

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/cloudnative-amadeus/extrahours/internal"
	"github.com/cloudnative-amadeus/extrahours/internal/approval"
	approvalPostgres "github.com/cloudnative-amadeus/extrahours/internal/approval/postgres"
	"github.com/cloudnative-amadeus/extrahours/internal/auth"
	authPostgres "github.com/cloudnative-amadeus/extrahours/internal/auth/postgres"
	"github.com/cloudnative-amadeus/extrahours/internal/core/events"
	"github.com/cloudnative-amadeus/extrahours/internal/department"
	departmentPostgres "github.com/cloudnative-amadeus/extrahours/internal/department/postgres"
	"github.com/cloudnative-amadeus/extrahours/internal/extrahour"
	extrahourPostgres "github.com/cloudnative-amadeus/extrahours/internal/extrahour/postgres"
	"github.com/cloudnative-amadeus/extrahours/internal/hourtype"
	hourtypePostgres "github.com/cloudnative-amadeus/extrahours/internal/hourtype/postgres"
	"github.com/cloudnative-amadeus/extrahours/internal/summary"
	"github.com/cloudnative-amadeus/extrahours/internal/transport/rest"
	"github.com/cloudnative-amadeus/extrahours/internal/user"
	userPostgres "github.com/cloudnative-amadeus/extrahours/internal/user/postgres"
	"github.com/cloudnative-amadeus/extrahours/pkg/logger"
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
	Config   *internal.Config
	DB       *sqlx.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	EventBus *events.EventBus
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Handlers, deps.Config.Server.AllowedOrigins, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

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
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.EventBus.Drain(ctx); err != nil {
			slog.Error("Event bus drain error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Format)
	lg := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// GORM rides on the same connection pool as sqlx
	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm connection: %w", err)
	}

	guard := auth.NewGuard(config.Security.PrincipalAdminEmail, lg)

	authRepo := authPostgres.NewRepository(gormDB)
	tokens := auth.NewJWTTokenGenerator(config.Security)
	authService := auth.NewService(authRepo, tokens)
	authHandler := auth.NewHandler(authService)

	hourTypeRepo := hourtypePostgres.NewExtraHourTypeRepository(gormDB)
	hourTypeService := hourtype.NewService(hourTypeRepo, lg)
	hourTypeHandler := hourtype.NewHandler(hourTypeService)

	eventBus := events.NewEventBus(lg)
	auditHandler := extrahour.NewEventHandler(lg)
	auditHandler.RegisterEventHandlers(eventBus)

	extraHourRepo := extrahourPostgres.NewExtraHourRepository(gormDB)
	extraHourService := extrahour.NewService(extraHourRepo, hourTypeService, eventBus, lg)
	extraHourHandler := extrahour.NewHandler(extraHourService)

	approvalRepo := approvalPostgres.NewApprovalRepository(gormDB)
	approvalService := approval.NewService(approvalRepo, lg)
	approvalHandler := approval.NewHandler(approvalService)

	summaryService := summary.NewService(extraHourRepo, lg)
	summaryHandler := summary.NewHandler(summaryService)

	userRepo := userPostgres.NewUserRepository(gormDB)
	userService := user.NewService(userRepo, guard, config.Security.BCryptCost, lg)
	userHandler := user.NewHandler(userService)

	departmentRepo := departmentPostgres.NewDepartmentRepository(gormDB)
	departmentService := department.NewService(departmentRepo, lg)
	departmentHandler := department.NewHandler(departmentService)

	return &Dependencies{
		Config:   config,
		Logger:   lg,
		DB:       db,
		Router:   chi.NewRouter(),
		EventBus: eventBus,
		Handlers: rest.Handlers{
			Auth:       authHandler,
			Guard:      guard,
			User:       userHandler,
			ExtraHour:  extraHourHandler,
			Approval:   approvalHandler,
			Summary:    summaryHandler,
			HourType:   hourTypeHandler,
			Department: departmentHandler,
		},
	}, nil
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

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
