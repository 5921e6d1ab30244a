package pickhero

import (
	"context"
	"strconv"
)

// Webhook topics supported by the warehouse.
const (
	TopicOrderStatusChanged = "order_status_changed"
)

// Webhook is a warehouse-side webhook registration.
type Webhook struct {
	ID       int64  `json:"id"`
	URL      string `json:"url"`
	Topic    string `json:"topic"`
	IsActive bool   `json:"is_active"`
}

// WebhooksResource handles webhook registration and management.
type WebhooksResource struct {
	client *Client
}

// List returns webhooks matching the given parameters.
// Available filters: topic, is_active.
func (r *WebhooksResource) List(ctx context.Context, params ListParams) ([]Webhook, error) {
	var env struct {
		Data []Webhook `json:"data"`
	}
	if err := r.client.get(ctx, "webhooks", params.Values(), &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Get returns a single webhook by its warehouse ID.
func (r *WebhooksResource) Get(ctx context.Context, id int64) (*Webhook, error) {
	var env struct {
		Data Webhook `json:"data"`
	}
	if err := r.client.get(ctx, "webhooks/"+strconv.FormatInt(id, 10), nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Create registers a new webhook for the topic. The secret, when given,
// is used by the warehouse to sign delivery payloads.
func (r *WebhooksResource) Create(ctx context.Context, url, topic, secret string) (*Webhook, error) {
	payload := map[string]string{
		"url":   url,
		"topic": topic,
	}
	if secret != "" {
		payload["secret"] = secret
	}

	var env struct {
		Data Webhook `json:"data"`
	}
	if err := r.client.post(ctx, "webhooks", payload, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Delete removes a webhook registration.
func (r *WebhooksResource) Delete(ctx context.Context, id int64) error {
	return r.client.delete(ctx, "webhooks/"+strconv.FormatInt(id, 10))
}

// Enable activates a webhook. Enabling clears the warehouse-side error log.
func (r *WebhooksResource) Enable(ctx context.Context, id int64) error {
	return r.client.post(ctx, "webhooks/"+strconv.FormatInt(id, 10)+"/enable", struct{}{}, nil)
}

// Disable deactivates a webhook.
func (r *WebhooksResource) Disable(ctx context.Context, id int64) error {
	return r.client.post(ctx, "webhooks/"+strconv.FormatInt(id, 10)+"/disable", struct{}{}, nil)
}

// FindByTopic returns all webhooks registered for a topic.
func (r *WebhooksResource) FindByTopic(ctx context.Context, topic string) ([]Webhook, error) {
	return r.List(ctx, ListParams{Filters: map[string]string{"topic": topic}})
}
