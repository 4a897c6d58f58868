// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rm-entrenador/backend/internal/domain/entity"
)

// PaymentModel represents the payments table in the database.
type PaymentModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ClientID  uuid.UUID       `gorm:"type:uuid;not null;index;column:alumno_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PayDate   *time.Time      `gorm:"type:date"`
	DueDate   *time.Time      `gorm:"type:date;index"`
	PlanTier  string          `gorm:"type:varchar(50)"`
	Phone     string          `gorm:"type:varchar(50)"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
	DeletedAt gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the PaymentModel.
func (PaymentModel) TableName() string {
	return "payments"
}

// ToEntity converts a PaymentModel to a domain Payment entity.
func (m *PaymentModel) ToEntity() *entity.Payment {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Payment{
		ID:        m.ID,
		ClientID:  m.ClientID,
		Amount:    m.Amount,
		PayDate:   m.PayDate,
		DueDate:   m.DueDate,
		PlanTier:  m.PlanTier,
		Phone:     m.Phone,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: deletedAt,
	}
}

// PaymentFromEntity creates a PaymentModel from a domain Payment entity.
func PaymentFromEntity(payment *entity.Payment) *PaymentModel {
	var deletedAt gorm.DeletedAt
	if payment.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *payment.DeletedAt, Valid: true}
	}

	return &PaymentModel{
		ID:        payment.ID,
		ClientID:  payment.ClientID,
		Amount:    payment.Amount,
		PayDate:   payment.PayDate,
		DueDate:   payment.DueDate,
		PlanTier:  payment.PlanTier,
		Phone:     payment.Phone,
		CreatedAt: payment.CreatedAt,
		UpdatedAt: payment.UpdatedAt,
		DeletedAt: deletedAt,
	}
}
