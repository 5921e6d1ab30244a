package sync

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"
)

// WebhookTopic identifies a class of callbacks the warehouse can deliver.
type WebhookTopic string

// Supported webhook topics.
const (
	TopicOrderStatusChanged WebhookTopic = "order_status_changed"
)

// WebhookRegistration records a webhook registered with the warehouse
// system. One registration exists per topic; the signing secret is
// generated locally and never derived from the warehouse.
type WebhookRegistration struct {
	ID                uint
	Type              WebhookTopic
	ExternalWebhookID string
	Secret            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewWebhookRegistration creates a registration for the topic with a
// freshly generated signing secret.
func NewWebhookRegistration(topic WebhookTopic) (*WebhookRegistration, error) {
	secret, err := NewWebhookSecret()
	if err != nil {
		return nil, err
	}
	return &WebhookRegistration{Type: topic, Secret: secret}, nil
}

// NewWebhookSecret returns 16 random bytes hex encoded.
func NewWebhookSecret() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// WebhookRegistrationRepository persists webhook registrations.
type WebhookRegistrationRepository interface {
	// FindByType returns the registration for the topic, or nil when none
	// exists. Absence is not an error.
	FindByType(ctx context.Context, topic WebhookTopic) (*WebhookRegistration, error)

	// Save inserts or updates the registration.
	Save(ctx context.Context, reg *WebhookRegistration) error

	// DeleteByType removes the registration for the topic if present.
	DeleteByType(ctx context.Context, topic WebhookTopic) error
}
