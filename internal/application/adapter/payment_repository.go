// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/rm-entrenador/backend/internal/domain/entity"
)

// PaymentRepository defines the interface for payment persistence operations.
type PaymentRepository interface {
	// Create creates a new payment in the database.
	Create(ctx context.Context, payment *entity.Payment) error

	// FindByID retrieves a payment by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)

	// FindAll retrieves all payments. No ordering is guaranteed; callers
	// that need the most recent payment must order explicitly.
	FindAll(ctx context.Context) ([]*entity.Payment, error)

	// FindByClientID retrieves all payments owned by a client.
	FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*entity.Payment, error)

	// Update updates an existing payment in the database.
	Update(ctx context.Context, payment *entity.Payment) error

	// Delete removes a payment from the database (soft delete).
	Delete(ctx context.Context, id uuid.UUID) error
}
