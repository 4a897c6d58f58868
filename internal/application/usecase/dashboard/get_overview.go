// Package dashboard contains the payment reconciliation and overview use cases.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/rm-entrenador/backend/internal/application/adapter"
	"github.com/rm-entrenador/backend/internal/domain/entity"
)

// GetOverviewInput represents the input for the dashboard overview.
// Today overrides the reference date used for classification, mainly for
// inspecting what the dashboard looked like on a past date. Overridden
// requests never touch the cache.
type GetOverviewInput struct {
	Today *time.Time
}

// GetOverviewOutput represents the output of the dashboard overview.
type GetOverviewOutput struct {
	Overview Overview
}

// GetOverviewUseCase computes the reconciled dashboard overview, caching
// the result per calendar day. The cache key carries the date because a
// client can cross into Overdue or NotRenewed overnight without any write.
type GetOverviewUseCase struct {
	clientRepo  adapter.ClientRepository
	paymentRepo adapter.PaymentRepository
	statsCache  adapter.StatsCache
	opts        entity.ClassifierOptions
	planTiers   []string
}

// NewGetOverviewUseCase creates a new GetOverviewUseCase instance.
func NewGetOverviewUseCase(clientRepo adapter.ClientRepository, paymentRepo adapter.PaymentRepository, statsCache adapter.StatsCache, opts entity.ClassifierOptions, planTiers []string) *GetOverviewUseCase {
	return &GetOverviewUseCase{
		clientRepo:  clientRepo,
		paymentRepo: paymentRepo,
		statsCache:  statsCache,
		opts:        opts,
		planTiers:   planTiers,
	}
}

// Execute computes the dashboard overview.
func (uc *GetOverviewUseCase) Execute(ctx context.Context, input GetOverviewInput) (*GetOverviewOutput, error) {
	today := time.Now().UTC()
	cacheable := uc.statsCache != nil
	if input.Today != nil {
		today = *input.Today
		cacheable = false
	}

	cacheKey := fmt.Sprintf("dashboard:overview:%s", today.Format("2006-01-02"))

	if cacheable {
		if payload, ok, err := uc.statsCache.Get(ctx, cacheKey); err != nil {
			slog.Warn("stats cache read failed", "error", err)
		} else if ok {
			var cached Overview
			if err := json.Unmarshal(payload, &cached); err == nil {
				return &GetOverviewOutput{Overview: cached}, nil
			}
			slog.Warn("discarding undecodable cached overview", "key", cacheKey)
		}
	}

	clients, err := uc.clientRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	payments, err := uc.paymentRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	overview := Reconcile(clients, payments, today, uc.opts, uc.planTiers)

	if cacheable {
		if payload, err := json.Marshal(overview); err == nil {
			if err := uc.statsCache.Set(ctx, cacheKey, payload); err != nil {
				slog.Warn("stats cache write failed", "error", err)
			}
		}
	}

	return &GetOverviewOutput{Overview: overview}, nil
}
