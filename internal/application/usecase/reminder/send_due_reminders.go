// Package reminder contains the overdue-plan reminder use case.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rm-entrenador/backend/internal/application/adapter"
	"github.com/rm-entrenador/backend/internal/application/usecase/dashboard"
	"github.com/rm-entrenador/backend/internal/domain/entity"
	"github.com/rm-entrenador/backend/internal/domain/valueobject"
)

// SendDueRemindersInput represents the input for the reminder run. Today
// overrides the reference date, mirroring the dashboard override.
type SendDueRemindersInput struct {
	Today *time.Time
}

// SendDueRemindersOutput summarizes a reminder run.
type SendDueRemindersOutput struct {
	Queued  int
	Skipped int
	Failed  int
}

// SendDueRemindersUseCase queues an overdue-plan email for every client
// whose plan is due today or already expired, however long ago. One
// failing client never aborts the run; the remaining reminders are
// still queued.
type SendDueRemindersUseCase struct {
	clientRepo   adapter.ClientRepository
	paymentRepo  adapter.PaymentRepository
	emailService adapter.EmailService
	opts         entity.ClassifierOptions
}

// NewSendDueRemindersUseCase creates a new SendDueRemindersUseCase instance.
func NewSendDueRemindersUseCase(clientRepo adapter.ClientRepository, paymentRepo adapter.PaymentRepository, emailService adapter.EmailService, opts entity.ClassifierOptions) *SendDueRemindersUseCase {
	return &SendDueRemindersUseCase{
		clientRepo:   clientRepo,
		paymentRepo:  paymentRepo,
		emailService: emailService,
		opts:         opts,
	}
}

// Execute performs the reminder run.
func (uc *SendDueRemindersUseCase) Execute(ctx context.Context, input SendDueRemindersInput) (*SendDueRemindersOutput, error) {
	today := time.Now().UTC()
	if input.Today != nil {
		today = *input.Today
	}

	clients, err := uc.clientRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	payments, err := uc.paymentRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	// The reminder run only needs per-client statuses; the tier
	// enumeration matters only to the distribution stats.
	overview := dashboard.Reconcile(clients, payments, today, uc.opts, nil)

	output := &SendDueRemindersOutput{}
	for _, ec := range overview.Clients {
		if !shouldRemind(ec, today) {
			continue
		}

		if ec.Client.Email == "" {
			slog.Info("skipping reminder for client without email",
				"client_id", ec.Client.ID,
				"client_name", ec.Client.Name,
			)
			output.Skipped++
			continue
		}

		err := uc.emailService.QueuePaymentOverdueEmail(ctx, adapter.QueuePaymentOverdueInput{
			ClientName:  ec.Client.Name,
			ClientEmail: ec.Client.Email,
			Status:      string(ec.Status),
			PlanTier:    ec.Client.PlanTier,
			DueDate:     formatDueDate(ec.DueDate),
			DaysOverdue: ec.DaysOverdue,
		})
		if err != nil {
			slog.Error("failed to queue overdue reminder",
				"client_id", ec.Client.ID,
				"error", err,
			)
			output.Failed++
			continue
		}
		output.Queued++
	}

	slog.Info("reminder run finished",
		"queued", output.Queued,
		"skipped", output.Skipped,
		"failed", output.Failed,
	)
	return output, nil
}

// shouldRemind reports whether a client gets a reminder: the due date
// must be today or already behind, with no upper bound on how far
// behind. Lapsed clients keep getting chased.
func shouldRemind(ec dashboard.EnrichedClient, today time.Time) bool {
	switch ec.Status {
	case entity.StatusOverdue, entity.StatusNotRenewed:
		return true
	case entity.StatusPending:
		return ec.DueDate != nil && valueobject.DaysBetween(*ec.DueDate, today) >= 0
	default:
		return false
	}
}

func formatDueDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("02/01/2006")
}
