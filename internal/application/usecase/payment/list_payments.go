// Package payment contains payment-related use cases.
package payment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rm-entrenador/backend/internal/application/adapter"
	"github.com/rm-entrenador/backend/internal/domain/entity"
)

// ListPaymentsInput represents the input for listing payments. When
// ClientID is set, only that client's payments are returned. Today
// overrides the reference date used to derive each row's status.
type ListPaymentsInput struct {
	ClientID *uuid.UUID
	Today    *time.Time
}

// PaymentRow is a payment joined with its owning client's name and the
// status derived from the payment's own dates.
type PaymentRow struct {
	Payment    *entity.Payment
	ClientName string
	Status     entity.PaymentStatus
}

// ListPaymentsOutput represents the output of listing payments.
type ListPaymentsOutput struct {
	Payments []PaymentRow
}

// ListPaymentsUseCase handles listing payments logic. Each row is
// classified on its own dates, not on the client's governing payment, so
// an old payment of a renewed client still shows its historical standing.
type ListPaymentsUseCase struct {
	paymentRepo adapter.PaymentRepository
	clientRepo  adapter.ClientRepository
	opts        entity.ClassifierOptions
}

// NewListPaymentsUseCase creates a new ListPaymentsUseCase instance.
func NewListPaymentsUseCase(paymentRepo adapter.PaymentRepository, clientRepo adapter.ClientRepository, opts entity.ClassifierOptions) *ListPaymentsUseCase {
	return &ListPaymentsUseCase{
		paymentRepo: paymentRepo,
		clientRepo:  clientRepo,
		opts:        opts,
	}
}

// Execute performs the payment listing.
func (uc *ListPaymentsUseCase) Execute(ctx context.Context, input ListPaymentsInput) (*ListPaymentsOutput, error) {
	today := time.Now().UTC()
	if input.Today != nil {
		today = *input.Today
	}

	var (
		payments []*entity.Payment
		err      error
	)

	if input.ClientID != nil {
		payments, err = uc.paymentRepo.FindByClientID(ctx, *input.ClientID)
	} else {
		payments, err = uc.paymentRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	clients, err := uc.clientRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.Name
	}

	rows := make([]PaymentRow, len(payments))
	for i, p := range payments {
		rows[i] = PaymentRow{
			Payment:    p,
			ClientName: names[p.ClientID],
			Status:     p.Status(today, uc.opts),
		}
	}

	return &ListPaymentsOutput{
		Payments: rows,
	}, nil
}
