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

// CreatePaymentInput represents the input for payment creation.
type CreatePaymentInput struct {
	ClientID uuid.UUID
	Amount   decimal.Decimal
	PayDate  *time.Time
	DueDate  *time.Time
	PlanTier string
	Phone    string
}

// CreatePaymentOutput represents the output of payment creation.
type CreatePaymentOutput struct {
	Payment *entity.Payment
}

// CreatePaymentUseCase handles payment creation logic.
type CreatePaymentUseCase struct {
	paymentRepo adapter.PaymentRepository
	clientRepo  adapter.ClientRepository
	statsCache  adapter.StatsCache
}

// NewCreatePaymentUseCase creates a new CreatePaymentUseCase instance.
func NewCreatePaymentUseCase(paymentRepo adapter.PaymentRepository, clientRepo adapter.ClientRepository, statsCache adapter.StatsCache) *CreatePaymentUseCase {
	return &CreatePaymentUseCase{
		paymentRepo: paymentRepo,
		clientRepo:  clientRepo,
		statsCache:  statsCache,
	}
}

// Execute performs the payment creation. The referenced client must exist;
// amounts are clamped at zero rather than rejected so that partially filled
// rows imported from the spreadsheet era remain writable.
func (uc *CreatePaymentUseCase) Execute(ctx context.Context, input CreatePaymentInput) (*CreatePaymentOutput, error) {
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

	amount := input.Amount
	if amount.IsNegative() {
		amount = decimal.Zero
	}

	payment := entity.NewPayment(
		input.ClientID,
		amount,
		input.PayDate,
		input.DueDate,
		input.PlanTier,
		input.Phone,
	)

	if err := uc.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	invalidateStats(ctx, uc.statsCache)

	return &CreatePaymentOutput{
		Payment: payment,
	}, nil
}

// invalidateStats drops the cached dashboard overview after a mutation.
func invalidateStats(ctx context.Context, cache adapter.StatsCache) {
	if cache != nil {
		_ = cache.Invalidate(ctx)
	}
}
