package persistence

import (
	"context"
	"errors"

	"github.com/pickhero/commerce-sync/internal/domain/sync"
	"github.com/pickhero/commerce-sync/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderSyncRepository implements sync.OrderSyncRepository using GORM
type GormOrderSyncRepository struct {
	db *gorm.DB
}

// NewGormOrderSyncRepository creates a new GormOrderSyncRepository
func NewGormOrderSyncRepository(db *gorm.DB) *GormOrderSyncRepository {
	return &GormOrderSyncRepository{db: db}
}

// FindByOrderID returns the sync record for an order. A missing record
// means the order was never synced, so a fresh unsaved record is returned
// instead of an error.
func (r *GormOrderSyncRepository) FindByOrderID(ctx context.Context, orderID int64) (*sync.OrderSyncStatus, error) {
	var model models.OrderSyncStatusModel
	if err := r.db.WithContext(ctx).First(&model, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return sync.NewOrderSyncStatus(orderID), nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a sync record
func (r *GormOrderSyncRepository) Save(ctx context.Context, status *sync.OrderSyncStatus) error {
	model := models.OrderSyncStatusModelFromDomain(status)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return err
	}
	status.ID = model.ID
	return nil
}

// DeleteByOrderID removes the sync record for an order
func (r *GormOrderSyncRepository) DeleteByOrderID(ctx context.Context, orderID int64) error {
	return r.db.WithContext(ctx).
		Delete(&models.OrderSyncStatusModel{}, "order_id = ?", orderID).Error
}

// Ensure GormOrderSyncRepository implements OrderSyncRepository
var _ sync.OrderSyncRepository = (*GormOrderSyncRepository)(nil)
