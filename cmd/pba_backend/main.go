package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/personal_banking_app/internal/adapters/database/pgsql"
	"github.com/SscSPs/personal_banking_app/internal/core/services"
	"github.com/SscSPs/personal_banking_app/internal/handlers"
	"github.com/SscSPs/personal_banking_app/internal/middleware"
	"github.com/SscSPs/personal_banking_app/pkg/config"
	"github.com/SscSPs/personal_banking_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	registerCustomValidations(logger)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	homeHandler := handlers.NewHomeHandler()
	r.GET("/", homeHandler.Home)
	r.GET("/health", homeHandler.Health)

	setupAPIV1Routes(r, cfg, dbPool, logger)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations using a temporary
// database/sql connection over the pgx stdlib driver.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// registerCustomValidations extends gin's validator engine with a "dateonly"
// rule for YYYY-MM-DD fields.
func registerCustomValidations(logger *slog.Logger) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		logger.Warn("Could not access validator engine, skipping custom validations")
		return
	}
	_ = v.RegisterValidation("dateonly", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})
}

func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, dbPool *pgxpool.Pool, logger *slog.Logger) {
	v1 := r.Group("/api/v1")

	addAuthAPI(v1, cfg, dbPool, logger)

	// Everything below requires a valid bearer token.
	protected := v1.Group("", middleware.AuthMiddleware(cfg.JWTSecret))
	addUserAPI(protected, dbPool)
	addAccountAPI(protected, dbPool)
}

func addAuthAPI(v1 *gin.RouterGroup, cfg *config.Config, dbPool *pgxpool.Pool, logger *slog.Logger) {
	userService := services.NewUserService(pgsql.NewUserRepository(dbPool))
	authHandler := handlers.NewAuthHandler(userService, cfg)

	rate, err := limiter.NewRateFromFormatted(cfg.LoginRateLimit)
	if err != nil {
		logger.Warn("Invalid LOGIN_RATE_LIMIT, falling back to 10-M", slog.String("value", cfg.LoginRateLimit))
		rate, _ = limiter.NewRateFromFormatted("10-M")
	}
	loginLimiter := limiter.New(memorystore.NewStore(), rate)

	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", middleware.RateLimit(loginLimiter), authHandler.Login)
}

func addUserAPI(v1 *gin.RouterGroup, dbPool *pgxpool.Pool) {
	userService := services.NewUserService(pgsql.NewUserRepository(dbPool))
	userHandler := handlers.NewUserHandler(userService)

	users := v1.Group("/users")
	users.GET("/me", userHandler.GetMe)
}

func addAccountAPI(v1 *gin.RouterGroup, dbPool *pgxpool.Pool) {
	accountRepo := pgsql.NewAccountRepository(dbPool)
	ledgerRepo := pgsql.NewLedgerRepository(dbPool, accountRepo)

	accountService := services.NewAccountService(accountRepo, ledgerRepo)
	accountHandler := handlers.NewAccountHandler(accountService)

	transactionService := services.NewTransactionService(accountRepo, ledgerRepo)
	transactionHandler := handlers.NewTransactionHandler(transactionService)

	accounts := v1.Group("/accounts")
	{
		accounts.GET("", accountHandler.ListAccounts)
		accounts.GET("/:kind", accountHandler.GetAccount)
		accounts.GET("/:kind/entries", accountHandler.ListAccountEntries)

		accounts.POST("/:kind/deposit", transactionHandler.Deposit)
		accounts.POST("/:kind/withdraw", transactionHandler.Withdraw)
		accounts.POST("/:kind/purchase", transactionHandler.Purchase)
		accounts.POST("/:kind/transfer", transactionHandler.Transfer)
	}
}
