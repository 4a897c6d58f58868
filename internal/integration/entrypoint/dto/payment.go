// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/rm-entrenador/backend/internal/application/usecase/payment"
	"github.com/rm-entrenador/backend/internal/domain/entity"
)

// PaymentRequest represents the request body for payment creation and
// update. Monto is a string because historical exports carry values like
// "$12,000"; it degrades to zero when unparseable.
type PaymentRequest struct {
	ClientID string `json:"alumno_id" binding:"required,uuid"`
	Amount   string `json:"monto"`
	PayDate  string `json:"fecha_de_pago"`
	DueDate  string `json:"fecha_de_vencimiento"`
	PlanTier string `json:"modalidad"`
	Phone    string `json:"whatsapp"`
}

// PaymentResponse represents a single payment in API responses. List
// rows additionally carry the owning client's name and the status
// derived from the payment's dates.
type PaymentResponse struct {
	ID         string    `json:"id"`
	ClientID   string    `json:"alumno_id"`
	ClientName string    `json:"nombre,omitempty"`
	Amount     string    `json:"monto"`
	PayDate    *string   `json:"fecha_de_pago,omitempty"`
	DueDate    *string   `json:"fecha_de_vencimiento,omitempty"`
	PlanTier   string    `json:"modalidad,omitempty"`
	Phone      string    `json:"whatsapp,omitempty"`
	Status     string    `json:"estado,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PaymentListResponse represents the response for listing payments.
type PaymentListResponse struct {
	Payments []PaymentResponse `json:"pagos"`
}

// ToPaymentResponse converts a domain Payment entity to a PaymentResponse DTO.
func ToPaymentResponse(p *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID.String(),
		ClientID:  p.ClientID.String(),
		Amount:    p.Amount.StringFixed(2),
		PayDate:   formatDate(p.PayDate),
		DueDate:   formatDate(p.DueDate),
		PlanTier:  p.PlanTier,
		Phone:     p.Phone,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ToPaymentListResponse converts joined payment rows to a PaymentListResponse.
func ToPaymentListResponse(rows []payment.PaymentRow) PaymentListResponse {
	out := make([]PaymentResponse, len(rows))
	for i, row := range rows {
		out[i] = ToPaymentResponse(row.Payment)
		out[i].ClientName = row.ClientName
		out[i].Status = string(row.Status)
	}
	return PaymentListResponse{
		Payments: out,
	}
}
