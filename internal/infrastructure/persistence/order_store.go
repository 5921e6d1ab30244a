package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/pickhero/commerce-sync/internal/domain/commerce"
	"github.com/pickhero/commerce-sync/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderStore implements commerce.OrderStore using GORM. Every
// successful write publishes on the post-save bus so sync components can
// react to order changes.
type GormOrderStore struct {
	db  *gorm.DB
	bus *commerce.OrderSavedBus
}

// NewGormOrderStore creates a new GormOrderStore
func NewGormOrderStore(db *gorm.DB, bus *commerce.OrderSavedBus) *GormOrderStore {
	return &GormOrderStore{db: db, bus: bus}
}

// FindByID returns the order with its line items loaded
func (s *GormOrderStore) FindByID(ctx context.Context, id int64) (*commerce.Order, error) {
	var model models.OrderModel
	if err := s.db.WithContext(ctx).Preload("LineItems").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", commerce.ErrOrderNotFound, id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByReference returns the order with the given reference, or nil
func (s *GormOrderStore) FindByReference(ctx context.Context, reference string) (*commerce.Order, error) {
	return s.findOne(ctx, "reference = ?", reference)
}

// FindByNumber returns the order with the given number, or nil
func (s *GormOrderStore) FindByNumber(ctx context.Context, number string) (*commerce.Order, error) {
	return s.findOne(ctx, "number = ?", number)
}

func (s *GormOrderStore) findOne(ctx context.Context, query string, arg any) (*commerce.Order, error) {
	var model models.OrderModel
	if err := s.db.WithContext(ctx).Preload("LineItems").First(&model, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save persists the order and notifies post-save subscribers
func (s *GormOrderStore) Save(ctx context.Context, order *commerce.Order) error {
	model := models.OrderModelFromDomain(order)
	if err := s.db.WithContext(ctx).Save(model).Error; err != nil {
		return err
	}
	order.ID = model.ID
	s.bus.Publish(ctx, order.ID)
	return nil
}

// UpdateStatus changes the order status handle. Setting the status it
// already has is a no-op and publishes no notification.
func (s *GormOrderStore) UpdateStatus(ctx context.Context, orderID int64, statusHandle string) error {
	result := s.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ? AND status_handle <> ?", orderID, statusHandle).
		Update("status_handle", statusHandle)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return nil
	}
	s.bus.Publish(ctx, orderID)
	return nil
}

// Ensure GormOrderStore implements OrderStore
var _ commerce.OrderStore = (*GormOrderStore)(nil)
