package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/pickhero/commerce-sync/internal/domain/commerce"
	"github.com/pickhero/commerce-sync/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormVariantStore implements commerce.VariantStore using GORM
type GormVariantStore struct {
	db *gorm.DB
}

// NewGormVariantStore creates a new GormVariantStore
func NewGormVariantStore(db *gorm.DB) *GormVariantStore {
	return &GormVariantStore{db: db}
}

// FindByID returns the variant with its product loaded
func (s *GormVariantStore) FindByID(ctx context.Context, id int64) (*commerce.Variant, error) {
	var model models.VariantModel
	if err := s.db.WithContext(ctx).Preload("Product").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", commerce.ErrVariantNotFound, id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySKU returns the variant with the given SKU, or nil
func (s *GormVariantStore) FindBySKU(ctx context.Context, sku string) (*commerce.Variant, error) {
	var model models.VariantModel
	if err := s.db.WithContext(ctx).Preload("Product").First(&model, "sku = ?", sku).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns variants ordered by ID for batch processing
func (s *GormVariantStore) List(ctx context.Context, limit, offset int) ([]*commerce.Variant, error) {
	query := s.db.WithContext(ctx).Preload("Product").Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var variantModels []models.VariantModel
	if err := query.Find(&variantModels).Error; err != nil {
		return nil, err
	}

	variants := make([]*commerce.Variant, len(variantModels))
	for i := range variantModels {
		variants[i] = variantModels[i].ToDomain()
	}
	return variants, nil
}

// UpdateStock sets the absolute stock level of a variant
func (s *GormVariantStore) UpdateStock(ctx context.Context, variantID int64, qty int) error {
	result := s.db.WithContext(ctx).
		Model(&models.VariantModel{}).
		Where("id = ?", variantID).
		Update("stock", qty)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", commerce.ErrVariantNotFound, variantID)
	}
	return nil
}

// Ensure GormVariantStore implements VariantStore
var _ commerce.VariantStore = (*GormVariantStore)(nil)
