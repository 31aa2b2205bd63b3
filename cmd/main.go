package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/andriarm/wallet-tracker/internal/handlers"
	"github.com/andriarm/wallet-tracker/internal/jwt"
	"github.com/andriarm/wallet-tracker/internal/logger"
	"github.com/andriarm/wallet-tracker/internal/middlewares"
	"github.com/andriarm/wallet-tracker/internal/repositories"
	"github.com/andriarm/wallet-tracker/internal/services"

	_ "github.com/andriarm/wallet-tracker/docs"
	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title wallet-tracker API
// @version 1.0.0
// @description Personal finance tracker: wallets, income and expense transactions, and consistent running balances
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort, logLevel,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns, migrationsDir,
		redisHost, redisPort, redisDB, redisPassword, summaryTTLSecond,
		kafkaAddr, kafkaTopic,
		jwtSecret, jwtExpSecond,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort, logLevel,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns, migrationsDir,
		redisHost, redisPort, redisDB, redisPassword, summaryTTLSecond,
		kafkaAddr, kafkaTopic,
		jwtSecret, jwtExpSecond,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns all
// application, database, Redis, Kafka, logging, and JWT configuration.
func parseConfig(path string) (
	appHost, appPort, logLevel string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int, migrationsDir string,
	redisHost string, redisPort, redisDB int, redisPassword string,
	summaryTTLSecond int,
	kafkaAddr, kafkaTopic string,
	jwtSecretKey string, jwtExpSecond int,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	appHost = getEnv("APP_HOST", "localhost")
	appPort = getEnv("APP_PORT", "8080")
	logLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	pgHost = getEnv("POSTGRES_HOST", "localhost")
	pgUser = getEnv("POSTGRES_USER", "user")
	pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	pgDB = getEnv("POSTGRES_DB", "database")
	migrationsDir = getEnv("MIGRATIONS_DIR", "migrations")
	if pgPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return
	}
	if pgMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return
	}
	if pgMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return
	}

	// Redis config
	redisHost = getEnv("REDIS_HOST", "localhost")
	redisPassword = getEnv("REDIS_PASSWORD", "")
	if redisPort, err = strconv.Atoi(getEnv("REDIS_PORT", "6379")); err != nil {
		return
	}
	if redisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	if summaryTTLSecond, err = strconv.Atoi(getEnv("SUMMARY_CACHE_TTL_SECOND", "300")); err != nil {
		return
	}

	// Kafka config; empty address disables event publishing
	kafkaAddr = getEnv("KAFKA_ADDR", "")
	kafkaTopic = getEnv("KAFKA_TOPIC", "ledger-events")

	// JWT config
	jwtSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if jwtExpSecond, err = strconv.Atoi(getEnv("JWT_EXP_SECOND", "3600")); err != nil {
		return
	}

	return
}

// run initializes the logger, database, Redis, Kafka, and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context,
	appHost, appPort, logLevel string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int, migrationsDir string,
	redisHost string, redisPort, redisDB int, redisPassword string,
	summaryTTLSecond int,
	kafkaAddr, kafkaTopic string,
	jwtSecretKey string, jwtExpSecond int,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", logLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		pgUser, pgPassword, pgHost, pgPort, pgDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		logger.Log.Errorw("PostgreSQL connection error", "error", err)
		return err
	}
	defer db.Close()
	db.SetMaxOpenConns(pgMaxOpenConns)
	db.SetMaxIdleConns(pgMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		logger.Log.Errorw("PostgreSQL ping failed", "error", err)
		return err
	}

	// Run migrations
	driver, err := migratepg.WithInstance(db.DB, &migratepg.Config{})
	if err != nil {
		logger.Log.Errorw("failed to create migration driver", "error", err)
		return err
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsDir, pgDB, driver)
	if err != nil {
		logger.Log.Errorw("failed to create migrator", "error", err)
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		logger.Log.Errorw("failed to apply migrations", "error", err)
		return err
	}
	logger.Log.Info("Migrations applied")

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", redisHost, redisPort),
		Password: redisPassword,
		DB:       redisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Log.Errorw("Redis connection error", "error", err)
		return err
	}
	defer rdb.Close()

	// Kafka writer for ledger events; left nil when no broker is configured
	var eventWriter services.KafkaWriter
	if kafkaAddr != "" {
		w := &kafka.Writer{
			Addr:     kafka.TCP(kafkaAddr),
			Topic:    kafkaTopic,
			Balancer: &kafka.LeastBytes{},
		}
		defer w.Close()
		eventWriter = w
		logger.Log.Infof("Kafka writer configured for %s, topic %s", kafkaAddr, kafkaTopic)
	} else {
		logger.Log.Warn("Kafka not configured, ledger events will not be published")
	}

	// Initialize JWT service
	jwtSvc := jwt.New(jwtSecretKey, time.Duration(jwtExpSecond)*time.Second)

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)
	walletReadRepo := repositories.NewWalletReadRepository(db)
	walletWriteRepo := repositories.NewWalletWriteRepository(db, middlewares.GetTxFromContext)
	transactionReadRepo := repositories.NewTransactionReadRepository(db)
	transactionWriteRepo := repositories.NewTransactionWriteRepository(db, middlewares.GetTxFromContext)
	summaryCacheRepo := repositories.NewSummaryCacheRepository(rdb, time.Duration(summaryTTLSecond)*time.Second)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, jwtSvc)
	ledgerService := services.NewLedgerService(
		walletReadRepo, walletWriteRepo,
		transactionReadRepo, transactionWriteRepo,
		summaryCacheRepo, eventWriter,
	)
	queryService := services.NewQueryService(walletReadRepo, transactionReadRepo, summaryCacheRepo)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	// Public routes
	r.Post("/register", handlers.NewRegisterHandler(authService))
	r.Post("/login", handlers.NewLoginHandler(authService))

	// Protected routes with JWT middleware; every mutating route also runs
	// inside a per-request database transaction.
	txMiddleware := middlewares.TxMiddleware(db)
	r.Group(func(r chi.Router) {
		r.Use(middlewares.AuthMiddleware(jwtSvc))

		r.Get("/wallets", handlers.NewListWalletsHandler(queryService))
		r.Get("/wallets/{walletID}", handlers.NewGetWalletHandler(queryService))
		r.Get("/wallets/{walletID}/reconcile", handlers.NewReconcileWalletHandler(ledgerService))
		r.Get("/transactions", handlers.NewListTransactionsHandler(queryService))
		r.Get("/summary", handlers.NewSummaryHandler(queryService))

		r.With(txMiddleware).Post("/wallets", handlers.NewCreateWalletHandler(ledgerService))
		r.With(txMiddleware).Put("/wallets/{walletID}", handlers.NewUpdateWalletHandler(ledgerService))
		r.With(txMiddleware).Delete("/wallets/{walletID}", handlers.NewDeleteWalletHandler(ledgerService))
		r.With(txMiddleware).Post("/transactions", handlers.NewCreateTransactionHandler(ledgerService))
		r.With(txMiddleware).Put("/transactions/{transactionID}", handlers.NewUpdateTransactionHandler(ledgerService))
		r.With(txMiddleware).Delete("/transactions/{transactionID}", handlers.NewDeleteTransactionHandler(ledgerService))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", appHost, appPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", appHost, appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", appHost, appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
