package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rm-entrenador/backend/internal/application/adapter"
	"github.com/rm-entrenador/backend/internal/domain/entity"
	domainerror "github.com/rm-entrenador/backend/internal/domain/error"
	"github.com/rm-entrenador/backend/internal/domain/valueobject"
)

// ImportPaymentsInput carries the raw rows of a payment export.
type ImportPaymentsInput struct {
	Rows []map[string]string
}

// ImportPaymentsOutput summarizes an import run.
type ImportPaymentsOutput struct {
	Created int
	Skipped int
}

// ImportPaymentsUseCase inserts payments from exported rows. The client
// reference cell may hold a client id or a client name; both are resolved.
// Rows referencing an unknown client are skipped, not failed, so one stale
// reference cannot block the rest of the export.
type ImportPaymentsUseCase struct {
	paymentRepo adapter.PaymentRepository
	clientRepo  adapter.ClientRepository
	statsCache  adapter.StatsCache
}

// NewImportPaymentsUseCase creates a new ImportPaymentsUseCase instance.
func NewImportPaymentsUseCase(paymentRepo adapter.PaymentRepository, clientRepo adapter.ClientRepository, statsCache adapter.StatsCache) *ImportPaymentsUseCase {
	return &ImportPaymentsUseCase{
		paymentRepo: paymentRepo,
		clientRepo:  clientRepo,
		statsCache:  statsCache,
	}
}

// Execute performs the import.
func (uc *ImportPaymentsUseCase) Execute(ctx context.Context, input ImportPaymentsInput) (*ImportPaymentsOutput, error) {
	output := &ImportPaymentsOutput{}

	for i, raw := range input.Rows {
		row := normalizeRow(raw)

		client, err := uc.resolveClient(ctx, row[colClientRef])
		if err != nil {
			return nil, err
		}
		if client == nil {
			slog.Warn("skipping payment row with unknown client",
				"row", i,
				"client_ref", row[colClientRef],
			)
			output.Skipped++
			continue
		}

		payment := entity.NewPayment(
			client.ID,
			valueobject.ParseFlexibleAmount(row[colAmount]),
			valueobject.ParseFlexibleDate(row[colPayDate]),
			valueobject.ParseFlexibleDate(row[colDueDate]),
			row[colPlanTier],
			row[colPhone],
		)

		if err := uc.paymentRepo.Create(ctx, payment); err != nil {
			return nil, fmt.Errorf("failed to create payment for %q: %w", client.Name, err)
		}
		output.Created++
	}

	if output.Created > 0 && uc.statsCache != nil {
		_ = uc.statsCache.Invalidate(ctx)
	}

	slog.Info("payment import finished",
		"created", output.Created,
		"skipped", output.Skipped,
	)
	return output, nil
}

// resolveClient resolves a reference cell holding either a client id or a
// client name. Returns nil without error when nothing matches.
func (uc *ImportPaymentsUseCase) resolveClient(ctx context.Context, ref string) (*entity.Client, error) {
	if ref == "" {
		return nil, nil
	}

	if id, err := uuid.Parse(ref); err == nil {
		client, err := uc.clientRepo.FindByID(ctx, id)
		if err == nil {
			return client, nil
		}
		if !errors.Is(err, domainerror.ErrClientNotFound) {
			return nil, fmt.Errorf("failed to resolve client %q: %w", ref, err)
		}
	}

	client, err := uc.clientRepo.FindByName(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve client %q: %w", ref, err)
	}
	return client, nil
}
