// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Client represents a gym member (alumno) tracked by the trainer.
type Client struct {
	ID                uuid.UUID
	Name              string
	Email             string
	Phone             string
	PlanTier          string // one of the configured plan tiers (modalidad)
	BirthDate         *time.Time
	Schedule          string // free-text "<days> - <HH:MM>" summary
	StartDate         *time.Time
	LastAnthropometry *time.Time
	PlanURL           string // external plan-document reference
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         *time.Time // Soft-delete support
}

// NewClient creates a new Client entity.
func NewClient(name, email, phone, planTier, schedule, planURL string, birthDate, startDate, lastAnthro *time.Time) *Client {
	now := time.Now().UTC()

	return &Client{
		ID:                uuid.New(),
		Name:              name,
		Email:             email,
		Phone:             phone,
		PlanTier:          planTier,
		BirthDate:         birthDate,
		Schedule:          schedule,
		StartDate:         startDate,
		LastAnthropometry: lastAnthro,
		PlanURL:           planURL,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}
