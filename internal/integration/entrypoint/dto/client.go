// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/rm-entrenador/backend/internal/domain/entity"
)

// displayDate is the date layout used on the wire. The app has always
// shown dates day-first; the parser also accepts ISO input.
const displayDate = "02/01/2006"

// ClientRequest represents the request body for client creation and update.
// Date fields accept DD/MM/YYYY or YYYY-MM-DD; malformed dates are treated
// as absent.
type ClientRequest struct {
	Name              string `json:"nombre" binding:"required"`
	Email             string `json:"email"`
	Phone             string `json:"whatsapp"`
	PlanTier          string `json:"modalidad"`
	BirthDate         string `json:"fecha_de_nacimiento"`
	Schedule          string `json:"dias"`
	StartDate         string `json:"fecha_de_inicio"`
	LastAnthropometry string `json:"ultima_antro"`
	PlanURL           string `json:"plan"`
}

// ClientResponse represents a single client in API responses.
type ClientResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"nombre"`
	Email             string    `json:"email,omitempty"`
	Phone             string    `json:"whatsapp,omitempty"`
	PlanTier          string    `json:"modalidad,omitempty"`
	BirthDate         *string   `json:"fecha_de_nacimiento,omitempty"`
	Schedule          string    `json:"dias,omitempty"`
	StartDate         *string   `json:"fecha_de_inicio,omitempty"`
	LastAnthropometry *string   `json:"ultima_antro,omitempty"`
	PlanURL           string    `json:"plan,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ClientListResponse represents the response for listing clients.
type ClientListResponse struct {
	Clients []ClientResponse `json:"alumnos"`
}

// ToClientResponse converts a domain Client entity to a ClientResponse DTO.
func ToClientResponse(c *entity.Client) ClientResponse {
	return ClientResponse{
		ID:                c.ID.String(),
		Name:              c.Name,
		Email:             c.Email,
		Phone:             c.Phone,
		PlanTier:          c.PlanTier,
		BirthDate:         formatDate(c.BirthDate),
		Schedule:          c.Schedule,
		StartDate:         formatDate(c.StartDate),
		LastAnthropometry: formatDate(c.LastAnthropometry),
		PlanURL:           c.PlanURL,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

// ToClientListResponse converts a list of clients to a ClientListResponse.
func ToClientListResponse(clients []*entity.Client) ClientListResponse {
	out := make([]ClientResponse, len(clients))
	for i, c := range clients {
		out[i] = ToClientResponse(c)
	}
	return ClientListResponse{
		Clients: out,
	}
}

// formatDate renders a date pointer in the display layout, or nil.
func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(displayDate)
	return &s
}
