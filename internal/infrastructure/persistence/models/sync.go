package models

import (
	"time"

	"github.com/pickhero/commerce-sync/internal/domain/sync"
)

// OrderSyncStatusModel is the persistence model for order sync records.
type OrderSyncStatusModel struct {
	ID                  uint   `gorm:"primaryKey;autoIncrement"`
	OrderID             int64  `gorm:"uniqueIndex;not null"`
	ExternalOrderID     string `gorm:"size:64;index"`
	ExternalOrderNumber string `gorm:"size:64"`
	Pushed              bool   `gorm:"not null;default:false"`
	StockAllocated      bool   `gorm:"not null;default:false"`
	Processed           bool   `gorm:"not null;default:false"`
	SubmissionCount     int    `gorm:"not null;default:0"`
	PublicStatusPage    string `gorm:"type:text"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName specifies the table name
func (OrderSyncStatusModel) TableName() string {
	return "order_sync_statuses"
}

// ToDomain converts the model to a domain entity
func (m *OrderSyncStatusModel) ToDomain() *sync.OrderSyncStatus {
	return &sync.OrderSyncStatus{
		ID:                  m.ID,
		OrderID:             m.OrderID,
		ExternalOrderID:     m.ExternalOrderID,
		ExternalOrderNumber: m.ExternalOrderNumber,
		Pushed:              m.Pushed,
		StockAllocated:      m.StockAllocated,
		Processed:           m.Processed,
		SubmissionCount:     m.SubmissionCount,
		PublicStatusPage:    m.PublicStatusPage,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// OrderSyncStatusModelFromDomain converts a domain entity to a model
func OrderSyncStatusModelFromDomain(s *sync.OrderSyncStatus) *OrderSyncStatusModel {
	return &OrderSyncStatusModel{
		ID:                  s.ID,
		OrderID:             s.OrderID,
		ExternalOrderID:     s.ExternalOrderID,
		ExternalOrderNumber: s.ExternalOrderNumber,
		Pushed:              s.Pushed,
		StockAllocated:      s.StockAllocated,
		Processed:           s.Processed,
		SubmissionCount:     s.SubmissionCount,
		PublicStatusPage:    s.PublicStatusPage,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}

// WebhookRegistrationModel is the persistence model for webhook registrations.
type WebhookRegistrationModel struct {
	ID                uint   `gorm:"primaryKey;autoIncrement"`
	Type              string `gorm:"size:64;uniqueIndex;not null"`
	ExternalWebhookID string `gorm:"size:64"`
	Secret            string `gorm:"size:128;not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName specifies the table name
func (WebhookRegistrationModel) TableName() string {
	return "webhook_registrations"
}

// ToDomain converts the model to a domain entity
func (m *WebhookRegistrationModel) ToDomain() *sync.WebhookRegistration {
	return &sync.WebhookRegistration{
		ID:                m.ID,
		Type:              sync.WebhookTopic(m.Type),
		ExternalWebhookID: m.ExternalWebhookID,
		Secret:            m.Secret,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// WebhookRegistrationModelFromDomain converts a domain entity to a model
func WebhookRegistrationModelFromDomain(r *sync.WebhookRegistration) *WebhookRegistrationModel {
	return &WebhookRegistrationModel{
		ID:                r.ID,
		Type:              string(r.Type),
		ExternalWebhookID: r.ExternalWebhookID,
		Secret:            r.Secret,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}
