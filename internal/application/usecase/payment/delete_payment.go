// Package payment contains payment-related use cases.
package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rm-entrenador/backend/internal/application/adapter"
	domainerror "github.com/rm-entrenador/backend/internal/domain/error"
)

// DeletePaymentInput represents the input for payment deletion.
type DeletePaymentInput struct {
	PaymentID uuid.UUID
}

// DeletePaymentOutput represents the output of payment deletion.
type DeletePaymentOutput struct {
	Success bool
}

// DeletePaymentUseCase handles payment deletion logic.
type DeletePaymentUseCase struct {
	paymentRepo adapter.PaymentRepository
	statsCache  adapter.StatsCache
}

// NewDeletePaymentUseCase creates a new DeletePaymentUseCase instance.
func NewDeletePaymentUseCase(paymentRepo adapter.PaymentRepository, statsCache adapter.StatsCache) *DeletePaymentUseCase {
	return &DeletePaymentUseCase{
		paymentRepo: paymentRepo,
		statsCache:  statsCache,
	}
}

// Execute performs the payment deletion.
func (uc *DeletePaymentUseCase) Execute(ctx context.Context, input DeletePaymentInput) (*DeletePaymentOutput, error) {
	if _, err := uc.paymentRepo.FindByID(ctx, input.PaymentID); err != nil {
		if errors.Is(err, domainerror.ErrPaymentNotFound) {
			return nil, domainerror.NewPaymentError(
				domainerror.ErrCodePaymentNotFound,
				"payment not found",
				domainerror.ErrPaymentNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find payment: %w", err)
	}

	if err := uc.paymentRepo.Delete(ctx, input.PaymentID); err != nil {
		return nil, fmt.Errorf("failed to delete payment: %w", err)
	}

	invalidateStats(ctx, uc.statsCache)

	return &DeletePaymentOutput{
		Success: true,
	}, nil
}
