// Package client contains client-related use cases.
package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rm-entrenador/backend/internal/application/adapter"
	"github.com/rm-entrenador/backend/internal/domain/entity"
	domainerror "github.com/rm-entrenador/backend/internal/domain/error"
)

// UpdateClientInput represents the input for client update. The edit
// operation is a full replace of the mutable fields; the ID is immutable.
type UpdateClientInput struct {
	ClientID          uuid.UUID
	Name              string
	Email             string
	Phone             string
	PlanTier          string
	BirthDate         *time.Time
	Schedule          string
	StartDate         *time.Time
	LastAnthropometry *time.Time
	PlanURL           string
}

// UpdateClientOutput represents the output of client update.
type UpdateClientOutput struct {
	Client *entity.Client
}

// UpdateClientUseCase handles client update logic.
type UpdateClientUseCase struct {
	clientRepo adapter.ClientRepository
	statsCache adapter.StatsCache
	planTiers  []string
}

// NewUpdateClientUseCase creates a new UpdateClientUseCase instance.
func NewUpdateClientUseCase(clientRepo adapter.ClientRepository, statsCache adapter.StatsCache, planTiers []string) *UpdateClientUseCase {
	return &UpdateClientUseCase{
		clientRepo: clientRepo,
		statsCache: statsCache,
		planTiers:  planTiers,
	}
}

// Execute performs the client update.
func (uc *UpdateClientUseCase) Execute(ctx context.Context, input UpdateClientInput) (*UpdateClientOutput, error) {
	client, err := uc.clientRepo.FindByID(ctx, input.ClientID)
	if err != nil {
		if errors.Is(err, domainerror.ErrClientNotFound) {
			return nil, domainerror.NewClientError(
				domainerror.ErrCodeClientNotFound,
				"client not found",
				domainerror.ErrClientNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find client: %w", err)
	}

	if strings.TrimSpace(input.Name) == "" {
		return nil, domainerror.NewClientError(
			domainerror.ErrCodeMissingClientName,
			"client name is required",
			domainerror.ErrMissingClientName,
		)
	}

	if input.PlanTier != "" && !isValidPlanTier(input.PlanTier, uc.planTiers) {
		return nil, domainerror.NewClientError(
			domainerror.ErrCodeInvalidPlanTier,
			fmt.Sprintf("plan tier must be one of: %s", strings.Join(uc.planTiers, ", ")),
			domainerror.ErrInvalidPlanTier,
		)
	}

	client.Name = strings.TrimSpace(input.Name)
	client.Email = strings.TrimSpace(input.Email)
	client.Phone = strings.TrimSpace(input.Phone)
	client.PlanTier = input.PlanTier
	client.BirthDate = input.BirthDate
	client.Schedule = input.Schedule
	client.StartDate = input.StartDate
	client.LastAnthropometry = input.LastAnthropometry
	client.PlanURL = input.PlanURL
	client.UpdatedAt = time.Now().UTC()

	if err := uc.clientRepo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	invalidateStats(ctx, uc.statsCache)

	return &UpdateClientOutput{
		Client: client,
	}, nil
}
