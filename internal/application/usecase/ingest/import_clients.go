package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rm-entrenador/backend/internal/application/adapter"
	"github.com/rm-entrenador/backend/internal/domain/entity"
	"github.com/rm-entrenador/backend/internal/domain/valueobject"
)

// ImportClientsInput carries the raw rows of a client export.
type ImportClientsInput struct {
	Rows []map[string]string
}

// ImportClientsOutput summarizes an import run.
type ImportClientsOutput struct {
	Created int
	Updated int
	Skipped int
}

// ImportClientsUseCase upserts clients from exported rows. Rows are matched
// to existing clients by name, since the exports carry no stable ids.
// Malformed cells degrade to empty values instead of failing the row.
type ImportClientsUseCase struct {
	clientRepo adapter.ClientRepository
	statsCache adapter.StatsCache
}

// NewImportClientsUseCase creates a new ImportClientsUseCase instance.
func NewImportClientsUseCase(clientRepo adapter.ClientRepository, statsCache adapter.StatsCache) *ImportClientsUseCase {
	return &ImportClientsUseCase{
		clientRepo: clientRepo,
		statsCache: statsCache,
	}
}

// Execute performs the import.
func (uc *ImportClientsUseCase) Execute(ctx context.Context, input ImportClientsInput) (*ImportClientsOutput, error) {
	output := &ImportClientsOutput{}

	for i, raw := range input.Rows {
		row := normalizeRow(raw)

		name := row[colName]
		if name == "" {
			slog.Warn("skipping client row without name", "row", i)
			output.Skipped++
			continue
		}

		existing, err := uc.clientRepo.FindByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to look up client %q: %w", name, err)
		}

		if existing == nil {
			client := entity.NewClient(
				name,
				row[colEmail],
				row[colPhone],
				row[colPlanTier],
				row[colSchedule],
				row[colPlanURL],
				valueobject.ParseFlexibleDate(row[colBirthDate]),
				valueobject.ParseFlexibleDate(row[colStartDate]),
				valueobject.ParseFlexibleDate(row[colLastAntro]),
			)
			if err := uc.clientRepo.Create(ctx, client); err != nil {
				return nil, fmt.Errorf("failed to create client %q: %w", name, err)
			}
			output.Created++
			continue
		}

		applyRow(existing, row)
		if err := uc.clientRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update client %q: %w", name, err)
		}
		output.Updated++
	}

	if output.Created > 0 || output.Updated > 0 {
		if uc.statsCache != nil {
			_ = uc.statsCache.Invalidate(ctx)
		}
	}

	slog.Info("client import finished",
		"created", output.Created,
		"updated", output.Updated,
		"skipped", output.Skipped,
	)
	return output, nil
}

// applyRow overwrites the fields present in the row, leaving the rest of
// the client untouched so a partial export cannot blank existing data.
func applyRow(client *entity.Client, row map[string]string) {
	if v, ok := row[colEmail]; ok && v != "" {
		client.Email = v
	}
	if v, ok := row[colPhone]; ok && v != "" {
		client.Phone = v
	}
	if v, ok := row[colPlanTier]; ok && v != "" {
		client.PlanTier = v
	}
	if v, ok := row[colSchedule]; ok && v != "" {
		client.Schedule = v
	}
	if v, ok := row[colPlanURL]; ok && v != "" {
		client.PlanURL = v
	}
	if d := valueobject.ParseFlexibleDate(row[colBirthDate]); d != nil {
		client.BirthDate = d
	}
	if d := valueobject.ParseFlexibleDate(row[colStartDate]); d != nil {
		client.StartDate = d
	}
	if d := valueobject.ParseFlexibleDate(row[colLastAntro]); d != nil {
		client.LastAnthropometry = d
	}
	client.UpdatedAt = time.Now().UTC()
}
