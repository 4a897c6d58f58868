// Package client contains client-related use cases.
package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rm-entrenador/backend/internal/application/adapter"
	"github.com/rm-entrenador/backend/internal/domain/entity"
	domainerror "github.com/rm-entrenador/backend/internal/domain/error"
)

// CreateClientInput represents the input for client creation.
type CreateClientInput struct {
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

// CreateClientOutput represents the output of client creation.
type CreateClientOutput struct {
	Client *entity.Client
}

// CreateClientUseCase handles client creation logic.
type CreateClientUseCase struct {
	clientRepo adapter.ClientRepository
	statsCache adapter.StatsCache
	planTiers  []string
}

// NewCreateClientUseCase creates a new CreateClientUseCase instance.
func NewCreateClientUseCase(clientRepo adapter.ClientRepository, statsCache adapter.StatsCache, planTiers []string) *CreateClientUseCase {
	return &CreateClientUseCase{
		clientRepo: clientRepo,
		statsCache: statsCache,
		planTiers:  planTiers,
	}
}

// Execute performs the client creation.
func (uc *CreateClientUseCase) Execute(ctx context.Context, input CreateClientInput) (*CreateClientOutput, error) {
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

	client := entity.NewClient(
		strings.TrimSpace(input.Name),
		strings.TrimSpace(input.Email),
		strings.TrimSpace(input.Phone),
		input.PlanTier,
		input.Schedule,
		input.PlanURL,
		input.BirthDate,
		input.StartDate,
		input.LastAnthropometry,
	)

	if err := uc.clientRepo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	invalidateStats(ctx, uc.statsCache)

	return &CreateClientOutput{
		Client: client,
	}, nil
}

// isValidPlanTier reports whether tier is one of the configured labels.
func isValidPlanTier(tier string, tiers []string) bool {
	for _, t := range tiers {
		if t == tier {
			return true
		}
	}
	return false
}

// invalidateStats drops the cached dashboard overview after a mutation.
// Cache errors are ignored; the overview is recomputed on miss.
func invalidateStats(ctx context.Context, cache adapter.StatsCache) {
	if cache != nil {
		_ = cache.Invalidate(ctx)
	}
}
