// Package main is the entry point for the RM Entrenador API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/rm-entrenador/backend/config"
	"github.com/rm-entrenador/backend/internal/application/adapter"
	"github.com/rm-entrenador/backend/internal/application/usecase/auth"
	"github.com/rm-entrenador/backend/internal/application/usecase/client"
	"github.com/rm-entrenador/backend/internal/application/usecase/dashboard"
	"github.com/rm-entrenador/backend/internal/application/usecase/ingest"
	"github.com/rm-entrenador/backend/internal/application/usecase/payment"
	"github.com/rm-entrenador/backend/internal/application/usecase/reminder"
	"github.com/rm-entrenador/backend/internal/domain/entity"
	"github.com/rm-entrenador/backend/internal/infra/db"
	"github.com/rm-entrenador/backend/internal/infra/server/router"
	"github.com/rm-entrenador/backend/internal/integration/adapters"
	"github.com/rm-entrenador/backend/internal/integration/email"
	"github.com/rm-entrenador/backend/internal/integration/email/templates"
	"github.com/rm-entrenador/backend/internal/integration/entrypoint/controller"
	"github.com/rm-entrenador/backend/internal/integration/entrypoint/middleware"
	"github.com/rm-entrenador/backend/internal/integration/persistence"
	"github.com/rm-entrenador/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	slog.Info("Starting RM Entrenador API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.AutoMigrate(
		&model.ClientModel{},
		&model.PaymentModel{},
		&model.EmailQueueModel{},
	); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	// Initialize Redis for the dashboard stats cache. The cache is an
	// optimization; the app keeps running without it.
	var statsCache adapter.StatsCache
	redisClient, err := db.NewRedisClient(&cfg.Redis)
	if err != nil {
		slog.Warn("Redis connection failed, dashboard stats will not be cached", "error", err)
	} else {
		statsCache = adapters.NewRedisStatsCache(redisClient, cfg.Redis.StatsTTL)
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Error("Failed to close redis connection", "error", err)
			}
		}()
	}

	// Repositories
	clientRepo := persistence.NewClientRepository(database.DB())
	paymentRepo := persistence.NewPaymentRepository(database.DB())
	emailQueueRepo := persistence.NewEmailQueueRepository(database.DB())

	// Adapters and services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	emailService := email.NewService(emailQueueRepo, cfg.Email.ContactPhone)

	classifierOpts := entity.ClassifierOptions{}

	// Use cases
	loginUseCase := auth.NewLoginUseCase(tokenService, cfg.Admin.Username, cfg.Admin.PasswordHash)

	listClientsUseCase := client.NewListClientsUseCase(clientRepo)
	createClientUseCase := client.NewCreateClientUseCase(clientRepo, statsCache, cfg.Plans.Tiers)
	updateClientUseCase := client.NewUpdateClientUseCase(clientRepo, statsCache, cfg.Plans.Tiers)
	deleteClientUseCase := client.NewDeleteClientUseCase(clientRepo, statsCache)

	listPaymentsUseCase := payment.NewListPaymentsUseCase(paymentRepo, clientRepo, classifierOpts)
	createPaymentUseCase := payment.NewCreatePaymentUseCase(paymentRepo, clientRepo, statsCache)
	updatePaymentUseCase := payment.NewUpdatePaymentUseCase(paymentRepo, clientRepo, statsCache)
	deletePaymentUseCase := payment.NewDeletePaymentUseCase(paymentRepo, statsCache)

	overviewUseCase := dashboard.NewGetOverviewUseCase(clientRepo, paymentRepo, statsCache, classifierOpts, cfg.Plans.Tiers)
	sendRemindersUseCase := reminder.NewSendDueRemindersUseCase(clientRepo, paymentRepo, emailService, classifierOpts)

	importClientsUseCase := ingest.NewImportClientsUseCase(clientRepo, statsCache)
	importPaymentsUseCase := ingest.NewImportPaymentsUseCase(paymentRepo, clientRepo, statsCache)

	// Controllers and middleware
	healthController := controller.NewHealthController(database.HealthCheck)
	authController := controller.NewAuthController(loginUseCase)
	clientController := controller.NewClientController(listClientsUseCase, createClientUseCase, updateClientUseCase, deleteClientUseCase)
	paymentController := controller.NewPaymentController(listPaymentsUseCase, createPaymentUseCase, updatePaymentUseCase, deletePaymentUseCase)
	dashboardController := controller.NewDashboardController(overviewUseCase)
	reminderController := controller.NewReminderController(sendRemindersUseCase)
	ingestController := controller.NewIngestController(importClientsUseCase, importPaymentsUseCase)

	loginRateLimiter := middleware.NewRateLimiter()
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Email worker
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	if cfg.Email.WorkerEnabled {
		renderer, err := templates.NewRenderer()
		if err != nil {
			slog.Error("Failed to initialize email templates", "error", err)
			os.Exit(1)
		}

		sender := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
		worker := email.NewWorker(emailQueueRepo, sender, renderer, email.WorkerConfig{
			PollInterval:  cfg.Email.PollInterval,
			BatchSize:     cfg.Email.BatchSize,
			RetentionDays: cfg.Email.RetentionDays,
		})

		go worker.Start(workerCtx)
	} else {
		slog.Info("Email worker disabled")
	}

	// Setup router
	r := router.NewRouter(
		healthController,
		authController,
		clientController,
		paymentController,
		dashboardController,
		reminderController,
		ingestController,
		loginRateLimiter,
		authMiddleware,
	)
	engine := r.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}
