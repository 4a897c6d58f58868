// Package main is the entry point for the scheduled reminder job.
// It queues overdue-plan emails on a cron schedule; the API server's email
// worker (or a concurrently running API instance) drains the queue.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/rm-entrenador/backend/config"
	"github.com/rm-entrenador/backend/internal/application/usecase/reminder"
	"github.com/rm-entrenador/backend/internal/domain/entity"
	"github.com/rm-entrenador/backend/internal/infra/db"
	"github.com/rm-entrenador/backend/internal/integration/email"
	"github.com/rm-entrenador/backend/internal/integration/persistence"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	slog.Info("Starting reminder scheduler",
		"cron", cfg.Reminder.CronSpec,
	)

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

	clientRepo := persistence.NewClientRepository(database.DB())
	paymentRepo := persistence.NewPaymentRepository(database.DB())
	emailQueueRepo := persistence.NewEmailQueueRepository(database.DB())
	emailService := email.NewService(emailQueueRepo, cfg.Email.ContactPhone)

	sendUseCase := reminder.NewSendDueRemindersUseCase(clientRepo, paymentRepo, emailService, entity.ClassifierOptions{})

	run := func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Reminder.RunTimeout)
		defer cancel()

		output, err := sendUseCase.Execute(ctx, reminder.SendDueRemindersInput{})
		if err != nil {
			slog.Error("Reminder run failed", "error", err)
			return
		}
		slog.Info("Reminder run completed",
			"queued", output.Queued,
			"skipped", output.Skipped,
			"failed", output.Failed,
		)
	}

	// The cron spec carries a seconds field.
	scheduler := cron.New(cron.WithSeconds())
	if _, err := scheduler.AddFunc(cfg.Reminder.CronSpec, run); err != nil {
		slog.Error("Invalid cron spec", "cron", cfg.Reminder.CronSpec, "error", err)
		os.Exit(1)
	}

	scheduler.Start()
	slog.Info("Reminder scheduler started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Stopping reminder scheduler...")
	<-scheduler.Stop().Done()
	slog.Info("Reminder scheduler exited properly")
}
