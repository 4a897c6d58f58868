// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment represents one subscription payment event tied to a client.
// PayDate may be absent, signifying no confirmed payment yet; DueDate is
// the sole temporal anchor for overdue determination.
type Payment struct {
	ID        uuid.UUID
	ClientID  uuid.UUID
	Amount    decimal.Decimal
	PayDate   *time.Time
	DueDate   *time.Time
	PlanTier  string // plan tier snapshot at time of payment
	Phone     string // contact snapshot
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewPayment creates a new Payment entity.
func NewPayment(clientID uuid.UUID, amount decimal.Decimal, payDate, dueDate *time.Time, planTier, phone string) *Payment {
	now := time.Now().UTC()

	return &Payment{
		ID:        uuid.New(),
		ClientID:  clientID,
		Amount:    amount,
		PayDate:   payDate,
		DueDate:   dueDate,
		PlanTier:  planTier,
		Phone:     phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Status derives the payment's subscription status as of today.
func (p *Payment) Status(today time.Time, opts ClassifierOptions) PaymentStatus {
	return ClassifyPaymentStatus(p.PayDate, p.DueDate, today, opts)
}
