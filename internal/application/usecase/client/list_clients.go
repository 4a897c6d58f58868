// Package client contains client-related use cases.
package client

import (
	"context"

	"github.com/rm-entrenador/backend/internal/application/adapter"
	"github.com/rm-entrenador/backend/internal/domain/entity"
)

// ListClientsInput represents the input for listing clients.
type ListClientsInput struct{}

// ListClientsOutput represents the output of listing clients.
type ListClientsOutput struct {
	Clients []*entity.Client
}

// ListClientsUseCase handles listing clients logic.
type ListClientsUseCase struct {
	clientRepo adapter.ClientRepository
}

// NewListClientsUseCase creates a new ListClientsUseCase instance.
func NewListClientsUseCase(clientRepo adapter.ClientRepository) *ListClientsUseCase {
	return &ListClientsUseCase{
		clientRepo: clientRepo,
	}
}

// Execute performs the client listing. Clients are returned ordered by
// name, matching the order the spreadsheet backend produced.
func (uc *ListClientsUseCase) Execute(ctx context.Context, _ ListClientsInput) (*ListClientsOutput, error) {
	clients, err := uc.clientRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	return &ListClientsOutput{
		Clients: clients,
	}, nil
}
