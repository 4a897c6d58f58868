// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rm-entrenador/backend/internal/domain/entity"
)

// ClientModel represents the clients table in the database.
type ClientModel struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name              string         `gorm:"type:varchar(255);not null;index"`
	Email             string         `gorm:"type:varchar(255)"`
	Phone             string         `gorm:"type:varchar(50)"`
	PlanTier          string         `gorm:"type:varchar(50)"`
	BirthDate         *time.Time     `gorm:"type:date"`
	Schedule          string         `gorm:"type:varchar(255)"`
	StartDate         *time.Time     `gorm:"type:date"`
	LastAnthropometry *time.Time     `gorm:"type:date"`
	PlanURL           string         `gorm:"type:text"`
	CreatedAt         time.Time      `gorm:"not null"`
	UpdatedAt         time.Time      `gorm:"not null"`
	DeletedAt         gorm.DeletedAt `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the ClientModel.
func (ClientModel) TableName() string {
	return "clients"
}

// ToEntity converts a ClientModel to a domain Client entity.
func (m *ClientModel) ToEntity() *entity.Client {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Client{
		ID:                m.ID,
		Name:              m.Name,
		Email:             m.Email,
		Phone:             m.Phone,
		PlanTier:          m.PlanTier,
		BirthDate:         m.BirthDate,
		Schedule:          m.Schedule,
		StartDate:         m.StartDate,
		LastAnthropometry: m.LastAnthropometry,
		PlanURL:           m.PlanURL,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
		DeletedAt:         deletedAt,
	}
}

// ClientFromEntity creates a ClientModel from a domain Client entity.
func ClientFromEntity(client *entity.Client) *ClientModel {
	var deletedAt gorm.DeletedAt
	if client.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *client.DeletedAt, Valid: true}
	}

	return &ClientModel{
		ID:                client.ID,
		Name:              client.Name,
		Email:             client.Email,
		Phone:             client.Phone,
		PlanTier:          client.PlanTier,
		BirthDate:         client.BirthDate,
		Schedule:          client.Schedule,
		StartDate:         client.StartDate,
		LastAnthropometry: client.LastAnthropometry,
		PlanURL:           client.PlanURL,
		CreatedAt:         client.CreatedAt,
		UpdatedAt:         client.UpdatedAt,
		DeletedAt:         deletedAt,
	}
}
