package persistence

import (
	"context"
	"errors"

	"github.com/pickhero/commerce-sync/internal/domain/sync"
	"github.com/pickhero/commerce-sync/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormWebhookRegistrationRepository implements sync.WebhookRegistrationRepository using GORM
type GormWebhookRegistrationRepository struct {
	db *gorm.DB
}

// NewGormWebhookRegistrationRepository creates a new GormWebhookRegistrationRepository
func NewGormWebhookRegistrationRepository(db *gorm.DB) *GormWebhookRegistrationRepository {
	return &GormWebhookRegistrationRepository{db: db}
}

// FindByType returns the registration for a topic, or nil when none exists
func (r *GormWebhookRegistrationRepository) FindByType(ctx context.Context, topic sync.WebhookTopic) (*sync.WebhookRegistration, error) {
	var model models.WebhookRegistrationModel
	if err := r.db.WithContext(ctx).First(&model, "type = ?", string(topic)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a registration
func (r *GormWebhookRegistrationRepository) Save(ctx context.Context, reg *sync.WebhookRegistration) error {
	model := models.WebhookRegistrationModelFromDomain(reg)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return err
	}
	reg.ID = model.ID
	return nil
}

// DeleteByType removes the registration for a topic
func (r *GormWebhookRegistrationRepository) DeleteByType(ctx context.Context, topic sync.WebhookTopic) error {
	return r.db.WithContext(ctx).
		Delete(&models.WebhookRegistrationModel{}, "type = ?", string(topic)).Error
}

// Ensure GormWebhookRegistrationRepository implements WebhookRegistrationRepository
var _ sync.WebhookRegistrationRepository = (*GormWebhookRegistrationRepository)(nil)
