package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	httpapi "swiftpay-backend/internal/api/http"
	"swiftpay-backend/internal/config"
	"swiftpay-backend/internal/jobs"
	"swiftpay-backend/internal/logger"
	"swiftpay-backend/internal/repository/postgres"
	"swiftpay-backend/internal/scheduler"
	"swiftpay-backend/internal/security"
	"swiftpay-backend/internal/service"
	"swiftpay-backend/internal/storage"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting SwiftPay Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Minute,
	)

	// Initialize Storage
	fileStore, err := storage.NewLocalFileStore(cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize file storage", "error", err)
		log.Fatalf("Failed to initialize file storage: %v", err)
	}
	logger.Info("File storage initialized", "upload_dir", cfg.Storage.UploadDir)

	// Initialize Services
	emailSvc := service.NewEmailService(
		cfg.Email.APIKey,
		cfg.Email.From,
		cfg.Email.FromName,
		cfg.Email.Enabled,
	)
	authSvc := service.NewAuthService(store.Accounts, tokenManager)
	accountSvc := service.NewAccountService(store.Accounts, store.Deposits)
	transferSvc := service.NewTransferService(store.Ledger, store.Transactions, store.Accounts, emailSvc, cfg.Ledger.AllowOverdraft)
	depositSvc := service.NewDepositService(store.Ledger, store.Deposits)
	requestSvc := service.NewRequestService(store.Requests, store.Ledger, store.Accounts, emailSvc, cfg.Ledger.AllowOverdraft)

	// Initialize Scheduler
	jobRunner := jobs.NewJobRunner(db, store, &jobs.Services{Email: emailSvc}, cfg)
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	// Set up HTTP server
	router := httpapi.NewRouter(httpapi.RouterDeps{
		AuthSvc:     authSvc,
		AccountSvc:  accountSvc,
		TransferSvc: transferSvc,
		DepositSvc:  depositSvc,
		RequestSvc:  requestSvc,
		Tokens:      tokenManager,
		Files:       fileStore,
		MaxFileSize: cfg.Storage.MaxFileSize * 1024 * 1024,
		DB:          db,
	})

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
