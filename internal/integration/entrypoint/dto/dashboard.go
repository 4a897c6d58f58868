// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/rm-entrenador/backend/internal/application/usecase/dashboard"
)

// EnrichedClientResponse is a client row on the dashboard: the client
// joined with its governing payment and derived status.
type EnrichedClientResponse struct {
	ClientResponse
	Status      string  `json:"estado"`
	Amount      *string `json:"monto,omitempty"`
	PayDate     *string `json:"fecha_de_pago,omitempty"`
	DueDate     *string `json:"fecha_de_vencimiento,omitempty"`
	DaysOverdue int     `json:"dias_vencido"`
}

// PlanShareResponse is one plan tier's slice of the active client base.
type PlanShareResponse struct {
	Count   int `json:"cantidad"`
	Percent int `json:"porcentaje"`
}

// OverviewStatsResponse holds the dashboard header aggregates.
type OverviewStatsResponse struct {
	TotalClients     int                          `json:"total_alumnos"`
	StatusCounts     map[string]int               `json:"estados"`
	CollectedAmount  string                       `json:"monto_cobrado"`
	PendingAmount    string                       `json:"monto_pendiente"`
	OverdueAmount    string                       `json:"monto_vencido"`
	LoyaltyPercent   int                          `json:"fidelidad"`
	PlanDistribution map[string]PlanShareResponse `json:"distribucion_planes"`
	TopPlanTier      string                       `json:"modalidad_principal,omitempty"`
}

// OverviewResponse represents the dashboard overview response.
type OverviewResponse struct {
	Clients []EnrichedClientResponse `json:"alumnos"`
	Stats   OverviewStatsResponse    `json:"stats"`
}

// ToOverviewResponse converts a reconciled overview to its response DTO.
func ToOverviewResponse(o dashboard.Overview) OverviewResponse {
	clients := make([]EnrichedClientResponse, len(o.Clients))
	for i, ec := range o.Clients {
		row := EnrichedClientResponse{
			ClientResponse: ToClientResponse(ec.Client),
			Status:         string(ec.Status),
			PayDate:        formatDate(ec.PayDate),
			DueDate:        formatDate(ec.DueDate),
			DaysOverdue:    ec.DaysOverdue,
		}
		if ec.Payment != nil {
			amount := ec.Payment.Amount.StringFixed(2)
			row.Amount = &amount
		}
		clients[i] = row
	}

	counts := make(map[string]int, len(o.Stats.StatusCounts))
	for status, n := range o.Stats.StatusCounts {
		counts[string(status)] = n
	}

	distribution := make(map[string]PlanShareResponse, len(o.Stats.PlanDistribution))
	for tier, share := range o.Stats.PlanDistribution {
		distribution[tier] = PlanShareResponse{Count: share.Count, Percent: share.Percent}
	}

	return OverviewResponse{
		Clients: clients,
		Stats: OverviewStatsResponse{
			TotalClients:     o.Stats.TotalClients,
			StatusCounts:     counts,
			CollectedAmount:  o.Stats.CollectedAmount.StringFixed(2),
			PendingAmount:    o.Stats.PendingAmount.StringFixed(2),
			OverdueAmount:    o.Stats.OverdueAmount.StringFixed(2),
			LoyaltyPercent:   o.Stats.LoyaltyPercent,
			PlanDistribution: distribution,
			TopPlanTier:      o.Stats.TopPlanTier,
		},
	}
}
