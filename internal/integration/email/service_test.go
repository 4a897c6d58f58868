// Package email provides email sending functionality.
package email

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/rm-entrenador/backend/internal/application/adapter"
	"github.com/rm-entrenador/backend/internal/domain/entity"
)

type fakeQueueRepo struct {
	jobs        []*entity.EmailJob
	createErr   error
	recipErr    error
	deletedDays []int
}

func (r *fakeQueueRepo) Create(ctx context.Context, job *entity.EmailJob) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.jobs = append(r.jobs, job)
	return nil
}

func (r *fakeQueueRepo) GetPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error) {
	return nil, nil
}

func (r *fakeQueueRepo) Update(ctx context.Context, job *entity.EmailJob) error { return nil }

func (r *fakeQueueRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.EmailJob, error) {
	return nil, nil
}

func (r *fakeQueueRepo) GetByRecipient(ctx context.Context, email string) ([]*entity.EmailJob, error) {
	if r.recipErr != nil {
		return nil, r.recipErr
	}
	var out []*entity.EmailJob
	for _, job := range r.jobs {
		if job.RecipientEmail == email {
			out = append(out, job)
		}
	}
	return out, nil
}

func (r *fakeQueueRepo) DeleteOldSentJobs(ctx context.Context, olderThanDays int) (int64, error) {
	r.deletedDays = append(r.deletedDays, olderThanDays)
	return 2, nil
}

func overdueInput(email string) adapter.QueuePaymentOverdueInput {
	return adapter.QueuePaymentOverdueInput{
		ClientName:  "Ana",
		ClientEmail: email,
		Status:      string(entity.StatusOverdue),
		PlanTier:    "mensual",
		DueDate:     "05/03/2024",
		DaysOverdue: 10,
	}
}

func TestQueuePaymentOverdueEmail(t *testing.T) {
	queue := &fakeQueueRepo{}
	service := NewService(queue, "+54 11 5555-0000")

	if err := service.QueuePaymentOverdueEmail(context.Background(), overdueInput("ana@example.com")); err != nil {
		t.Fatalf("QueuePaymentOverdueEmail() error = %v", err)
	}

	if len(queue.jobs) != 1 {
		t.Fatalf("expected 1 job queued, got %d", len(queue.jobs))
	}
	job := queue.jobs[0]
	if job.TemplateType != entity.TemplatePaymentOverdue {
		t.Errorf("expected template %s, got %s", entity.TemplatePaymentOverdue, job.TemplateType)
	}
	if job.RecipientEmail != "ana@example.com" {
		t.Errorf("expected recipient ana@example.com, got %s", job.RecipientEmail)
	}
	if job.TemplateData["contact_phone"] != "+54 11 5555-0000" {
		t.Errorf("expected contact phone in template data, got %v", job.TemplateData["contact_phone"])
	}
}

func TestQueuePaymentOverdueEmail_SkipsRecipientWithReminderInFlight(t *testing.T) {
	queue := &fakeQueueRepo{}
	service := NewService(queue, "")

	if err := service.QueuePaymentOverdueEmail(context.Background(), overdueInput("ana@example.com")); err != nil {
		t.Fatalf("first queue error = %v", err)
	}
	if err := service.QueuePaymentOverdueEmail(context.Background(), overdueInput("ana@example.com")); err != nil {
		t.Fatalf("second queue error = %v", err)
	}

	if len(queue.jobs) != 1 {
		t.Errorf("expected the pending reminder to suppress a second job, got %d", len(queue.jobs))
	}
}

func TestQueuePaymentOverdueEmail_SentReminderDoesNotSuppress(t *testing.T) {
	queue := &fakeQueueRepo{}
	service := NewService(queue, "")

	if err := service.QueuePaymentOverdueEmail(context.Background(), overdueInput("ana@example.com")); err != nil {
		t.Fatalf("first queue error = %v", err)
	}
	queue.jobs[0].MarkSent("provider-1")

	if err := service.QueuePaymentOverdueEmail(context.Background(), overdueInput("ana@example.com")); err != nil {
		t.Fatalf("second queue error = %v", err)
	}

	if len(queue.jobs) != 2 {
		t.Errorf("expected a new job after the previous one was sent, got %d", len(queue.jobs))
	}
}

func TestQueuePaymentOverdueEmail_QueuesDespiteLookupFailure(t *testing.T) {
	queue := &fakeQueueRepo{recipErr: errors.New("lookup unavailable")}
	service := NewService(queue, "")

	if err := service.QueuePaymentOverdueEmail(context.Background(), overdueInput("ana@example.com")); err != nil {
		t.Fatalf("QueuePaymentOverdueEmail() error = %v", err)
	}
	if len(queue.jobs) != 1 {
		t.Errorf("expected 1 job queued, got %d", len(queue.jobs))
	}
}

func TestQueuePaymentOverdueEmail_CreateFailure(t *testing.T) {
	queue := &fakeQueueRepo{createErr: errors.New("insert failed")}
	service := NewService(queue, "")

	if err := service.QueuePaymentOverdueEmail(context.Background(), overdueInput("ana@example.com")); err == nil {
		t.Error("expected an error when the queue insert fails")
	}
}

func TestWorkerCleanupOldJobs(t *testing.T) {
	queue := &fakeQueueRepo{}
	worker := NewWorker(queue, NewMockEmailSender(), nil, WorkerConfig{RetentionDays: 30})

	worker.cleanupOldJobs(context.Background())

	if len(queue.deletedDays) != 1 || queue.deletedDays[0] != 30 {
		t.Errorf("expected one cleanup with 30 day retention, got %v", queue.deletedDays)
	}
}

func TestWorkerCleanupOldJobs_DisabledWithoutRetention(t *testing.T) {
	queue := &fakeQueueRepo{}
	worker := NewWorker(queue, NewMockEmailSender(), nil, WorkerConfig{})

	worker.cleanupOldJobs(context.Background())

	if len(queue.deletedDays) != 0 {
		t.Errorf("expected no cleanup when retention is unset, got %v", queue.deletedDays)
	}
}
