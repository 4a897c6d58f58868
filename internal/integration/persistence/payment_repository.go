// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rm-entrenador/backend/internal/application/adapter"
	"github.com/rm-entrenador/backend/internal/domain/entity"
	domainerror "github.com/rm-entrenador/backend/internal/domain/error"
	"github.com/rm-entrenador/backend/internal/integration/persistence/model"
)

// paymentRepository implements the adapter.PaymentRepository interface.
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository instance.
func NewPaymentRepository(db *gorm.DB) adapter.PaymentRepository {
	return &paymentRepository{
		db: db,
	}
}

// Create creates a new payment in the database.
func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	paymentModel := model.PaymentFromEntity(payment)
	result := r.db.WithContext(ctx).Create(paymentModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a payment by its ID.
func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var paymentModel model.PaymentModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&paymentModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrPaymentNotFound
		}
		return nil, result.Error
	}
	return paymentModel.ToEntity(), nil
}

// FindAll retrieves all payments.
func (r *paymentRepository) FindAll(ctx context.Context) ([]*entity.Payment, error) {
	var paymentModels []model.PaymentModel
	result := r.db.WithContext(ctx).Find(&paymentModels)
	if result.Error != nil {
		return nil, result.Error
	}

	payments := make([]*entity.Payment, len(paymentModels))
	for i, pm := range paymentModels {
		payments[i] = pm.ToEntity()
	}
	return payments, nil
}

// FindByClientID retrieves all payments owned by a client.
func (r *paymentRepository) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*entity.Payment, error) {
	var paymentModels []model.PaymentModel
	result := r.db.WithContext(ctx).
		Where("alumno_id = ?", clientID).
		Order("created_at DESC").
		Find(&paymentModels)
	if result.Error != nil {
		return nil, result.Error
	}

	payments := make([]*entity.Payment, len(paymentModels))
	for i, pm := range paymentModels {
		payments[i] = pm.ToEntity()
	}
	return payments, nil
}

// Update updates an existing payment in the database.
func (r *paymentRepository) Update(ctx context.Context, payment *entity.Payment) error {
	paymentModel := model.PaymentFromEntity(payment)
	result := r.db.WithContext(ctx).Save(paymentModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes a payment from the database (soft delete).
func (r *paymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.PaymentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
