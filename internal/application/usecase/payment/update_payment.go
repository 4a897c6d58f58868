// Package payment contains payment-related use cases.
package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rm-entrenador/backend/internal/application/adapter"
	"github.com/rm-entrenador/backend/internal/domain/entity"
	domainerror "github.com/rm-entrenador/backend/internal/domain/error"
)

// UpdatePaymentInput represents the input for payment update.
type UpdatePaymentInput struct {
	PaymentID uuid.UUID
	ClientID  uuid.UUID
	Amount    decimal.Decimal
	PayDate   *time.Time
	DueDate   *time.Time
	PlanTier  string
	Phone     string
}

// UpdatePaymentOutput represents the output of payment update.
type UpdatePaymentOutput struct {
	Payment *entity.Payment
}

// UpdatePaymentUseCase handles payment update logic.
type UpdatePaymentUseCase struct {
	paymentRepo adapter.PaymentRepository
	clientRepo  adapter.ClientRepository
	statsCache  adapter.StatsCache
}

// NewUpdatePaymentUseCase creates a new UpdatePaymentUseCase instance.
func NewUpdatePaymentUseCase(paymentRepo adapter.PaymentRepository, clientRepo adapter.ClientRepository, statsCache adapter.StatsCache) *UpdatePaymentUseCase {
	return &UpdatePaymentUseCase{
		paymentRepo: paymentRepo,
		clientRepo:  clientRepo,
		statsCache:  statsCache,
	}
}

// Execute performs the payment update.
func (uc *UpdatePaymentUseCase) Execute(ctx context.Context, input UpdatePaymentInput) (*UpdatePaymentOutput, error) {
	payment, err := uc.paymentRepo.FindByID(ctx, input.PaymentID)
	if err != nil {
		if errors.Is(err, domainerror.ErrPaymentNotFound) {
			return nil, domainerror.NewPaymentError(
				domainerror.ErrCodePaymentNotFound,
				"payment not found",
				domainerror.ErrPaymentNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find payment: %w", err)
	}

	if input.ClientID != payment.ClientID {
		if _, err := uc.clientRepo.FindByID(ctx, input.ClientID); err != nil {
			if errors.Is(err, domainerror.ErrClientNotFound) {
				return nil, domainerror.NewPaymentError(
					domainerror.ErrCodePaymentClientNotFound,
					"referenced client not found",
					domainerror.ErrPaymentClientNotFound,
				)
			}
			return nil, fmt.Errorf("failed to find client: %w", err)
		}
	}

	amount := input.Amount
	if amount.IsNegative() {
		amount = decimal.Zero
	}

	payment.ClientID = input.ClientID
	payment.Amount = amount
	payment.PayDate = input.PayDate
	payment.DueDate = input.DueDate
	payment.PlanTier = input.PlanTier
	payment.Phone = input.Phone
	payment.UpdatedAt = time.Now().UTC()

	if err := uc.paymentRepo.Update(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	invalidateStats(ctx, uc.statsCache)

	return &UpdatePaymentOutput{
		Payment: payment,
	}, nil
}
