// ============================================================================
// cmd/server/main.go
// Result portal HTTP server entry point
// ============================================================================

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"resultportal/internal/auth"
	"resultportal/internal/logging"
	"resultportal/internal/observability"
	"resultportal/internal/records"
	"resultportal/internal/server"
	"resultportal/internal/shared"
	"resultportal/internal/students"
)

const serviceName = "resultportal"

func main() {
	// 1. Load configuration
	_ = shared.LoadEnv("")
	config, err := shared.LoadServiceConfig(serviceName)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Build the logger
	logger, err := logging.New(config.LogLevel, config.Environment)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// 3. Error reporting (no-op without a DSN)
	if err := observability.Init(config.SentryDSN, config.Environment, serviceName); err != nil {
		logger.Warn("sentry init failed, continuing without it", zap.Error(err))
	}
	defer observability.Flush()

	// 4. Connect to MongoDB
	client, db, err := shared.ConnectMongoDB(&config.MongoDB)
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := shared.DisconnectMongoDB(client); err != nil {
			logger.Error("failed to disconnect from MongoDB", zap.Error(err))
		}
	}()
	logger.Info("connected to MongoDB", zap.String("database", config.MongoDB.Database))

	// 5. Build the repository and ensure indexes
	repo := records.NewMongoRepository(client, db, logger)
	indexCtx, indexCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := repo.EnsureIndexes(indexCtx); err != nil {
		indexCancel()
		logger.Fatal("failed to ensure indexes", zap.Error(err))
	}
	indexCancel()

	// 6. Wire services and router
	tokenTTL := time.Duration(config.Security.JWTExpirationHours) * time.Hour
	authService := auth.NewService(repo, config.Security.JWTSecret, tokenTTL, logger)
	studentService := students.NewService(repo, logger)

	router := server.SetupRoutes(server.Deps{
		Config:         config,
		AuthService:    authService,
		StudentService: studentService,
		Pinger:         server.MongoPinger(client),
	})

	httpServer := &http.Server{
		Addr:         ":" + config.HTTP.Port,
		Handler:      router,
		ReadTimeout:  config.HTTP.ReadTimeout,
		WriteTimeout: config.HTTP.WriteTimeout,
		IdleTimeout:  config.HTTP.IdleTimeout,
	}

	// 7. Start serving and wait for a shutdown signal
	go func() {
		logger.Info("server listening", zap.String("port", config.HTTP.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.HTTP.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
