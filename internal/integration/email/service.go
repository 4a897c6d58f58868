// Package email provides email sending functionality.
package email

import (
	"context"
	"fmt"

	"github.com/rm-entrenador/backend/internal/application/adapter"
	"github.com/rm-entrenador/backend/internal/domain/entity"
	domainerror "github.com/rm-entrenador/backend/internal/domain/error"
)

// Service handles email queueing operations.
type Service struct {
	queue        adapter.EmailQueueRepository
	contactPhone string
}

// NewService creates a new email service. contactPhone is the WhatsApp
// number shown in reminder emails for renewals.
func NewService(queue adapter.EmailQueueRepository, contactPhone string) *Service {
	return &Service{
		queue:        queue,
		contactPhone: contactPhone,
	}
}

// QueuePaymentOverdueEmail queues an overdue-plan reminder email. A
// recipient with a reminder still in flight is not queued again, so
// repeated runs on the same day produce one email per client.
func (s *Service) QueuePaymentOverdueEmail(ctx context.Context, input adapter.QueuePaymentOverdueInput) error {
	if s.hasReminderInFlight(ctx, input.ClientEmail) {
		return nil
	}

	subject := fmt.Sprintf("%s, tu plan está vencido - RM Entrenador", input.ClientName)

	templateData := map[string]interface{}{
		"client_name":   input.ClientName,
		"status":        input.Status,
		"plan_tier":     input.PlanTier,
		"due_date":      input.DueDate,
		"days_overdue":  input.DaysOverdue,
		"contact_phone": s.contactPhone,
	}

	job := entity.NewEmailJob(
		entity.TemplatePaymentOverdue,
		input.ClientEmail,
		input.ClientName,
		subject,
		templateData,
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue overdue reminder email",
			err,
		)
	}

	return nil
}

// hasReminderInFlight reports whether the recipient already has an
// overdue reminder waiting in the queue. A failed lookup does not
// block queueing.
func (s *Service) hasReminderInFlight(ctx context.Context, email string) bool {
	jobs, err := s.queue.GetByRecipient(ctx, email)
	if err != nil {
		return false
	}
	for _, job := range jobs {
		if job.TemplateType != entity.TemplatePaymentOverdue {
			continue
		}
		if job.Status == entity.EmailStatusPending || job.Status == entity.EmailStatusProcessing {
			return true
		}
	}
	return false
}

// Ensure Service implements adapter.EmailService.
var _ adapter.EmailService = (*Service)(nil)
