// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/rm-entrenador/backend/internal/domain/entity"
)

// ClientRepository defines the interface for client persistence operations.
type ClientRepository interface {
	// Create creates a new client in the database.
	Create(ctx context.Context, client *entity.Client) error

	// FindByID retrieves a client by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Client, error)

	// FindByName retrieves a client by its exact name. Returns (nil, nil)
	// when no client matches; absence is a normal condition for imports.
	FindByName(ctx context.Context, name string) (*entity.Client, error)

	// FindAll retrieves all clients, ordered by name.
	FindAll(ctx context.Context) ([]*entity.Client, error)

	// Update updates an existing client in the database.
	Update(ctx context.Context, client *entity.Client) error

	// Delete removes a client from the database (soft delete).
	Delete(ctx context.Context, id uuid.UUID) error
}
