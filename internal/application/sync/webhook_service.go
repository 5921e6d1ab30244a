package sync

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/pickhero/commerce-sync/internal/domain/commerce"
	syncdomain "github.com/pickhero/commerce-sync/internal/domain/sync"
	"github.com/pickhero/commerce-sync/internal/infrastructure/pickhero"
)

// WebhookService handles inbound order-status callbacks from the
// warehouse and manages the warehouse-side webhook registration.
type WebhookService struct {
	enabled     bool
	endpointURL string
	regs        syncdomain.WebhookRegistrationRepository
	webhooks    WebhookGateway
	store       commerce.OrderStore
	repo        syncdomain.OrderSyncRepository
	mappings    syncdomain.StatusMappingTable
	guard       *PushGuard
	logger      *zap.Logger
}

// NewWebhookService creates the service. endpointURL is the full public
// URL the warehouse should deliver order-status callbacks to.
func NewWebhookService(
	enabled bool,
	endpointURL string,
	regs syncdomain.WebhookRegistrationRepository,
	webhooks WebhookGateway,
	store commerce.OrderStore,
	repo syncdomain.OrderSyncRepository,
	mappings syncdomain.StatusMappingTable,
	guard *PushGuard,
	logger *zap.Logger,
) *WebhookService {
	return &WebhookService{
		enabled:     enabled,
		endpointURL: endpointURL,
		regs:        regs,
		webhooks:    webhooks,
		store:       store,
		repo:        repo,
		mappings:    mappings,
		guard:       guard,
		logger:      logger,
	}
}

// ---------------------------------------------------------------------------
// Inbound deliveries
// ---------------------------------------------------------------------------

// orderStatusEvent is the body of an order_status_changed delivery.
type orderStatusEvent struct {
	Data struct {
		ExternalID string `json:"external_id"`
		Status     string `json:"status"`
	} `json:"data"`
}

// HandleOrderStatusChanged processes one delivery. A nil return means the
// delivery was accepted, including benign no-ops like partial payloads or
// unknown orders; the warehouse must not redeliver those. Returned errors
// map to HTTP statuses at the handler: ErrSyncDisabled to an ignored 400,
// ErrWebhookNotRegistered and ErrMalformedPayload to 400,
// ErrInvalidSignature to 401, the rest to 500.
func (s *WebhookService) HandleOrderStatusChanged(ctx context.Context, body []byte, signature string) error {
	if !s.enabled {
		return syncdomain.ErrSyncDisabled
	}

	// Without a registration there is no secret to verify against; the
	// endpoint is public, so such deliveries must not reach order state.
	reg, err := s.regs.FindByType(ctx, syncdomain.TopicOrderStatusChanged)
	if err != nil {
		return err
	}
	if reg == nil {
		return syncdomain.ErrWebhookNotRegistered
	}

	var event orderStatusEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("%w: %v", syncdomain.ErrMalformedPayload, err)
	}

	if reg.Secret != "" && !VerifySignature(body, signature, reg.Secret) {
		return syncdomain.ErrInvalidSignature
	}

	externalID := event.Data.ExternalID
	wmsStatus := event.Data.Status
	if externalID == "" || wmsStatus == "" {
		// The warehouse sends partial events for some transitions.
		s.logger.Debug("webhook delivery without order fields, ignored")
		return nil
	}

	order, err := s.findOrder(ctx, externalID)
	if err != nil {
		return err
	}
	if order == nil {
		s.logger.Info("webhook for unknown order",
			zap.String("external_id", externalID),
			zap.String("warehouse_status", wmsStatus),
		)
		return nil
	}

	if handle, ok := s.mappings.Resolve(wmsStatus); ok && handle != order.StatusHandle {
		// The status write below notifies post-save subscribers; hold the
		// guard so that does not bounce a push back to the warehouse.
		release := s.guard.Suppress(order.ID)
		defer release()

		if err := s.store.UpdateStatus(ctx, order.ID, handle); err != nil {
			return err
		}
		s.logger.Info("order status updated via webhook",
			zap.Int64("order_id", order.ID),
			zap.String("warehouse_status", wmsStatus),
			zap.String("status", handle),
		)
	}

	status, err := s.repo.FindByOrderID(ctx, order.ID)
	if err != nil {
		return err
	}
	status.MarkProcessed()
	return s.repo.Save(ctx, status)
}

// findOrder resolves the warehouse external identifier to a local order,
// by reference first, then by order number.
func (s *WebhookService) findOrder(ctx context.Context, externalID string) (*commerce.Order, error) {
	order, err := s.store.FindByReference(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if order != nil {
		return order, nil
	}
	return s.store.FindByNumber(ctx, externalID)
}

// VerifySignature checks an x-webhook-signature header value: the hex
// HMAC-SHA256 of the raw body under the shared secret, compared in
// constant time.
func VerifySignature(body []byte, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ---------------------------------------------------------------------------
// Registration management
// ---------------------------------------------------------------------------

// RegistrationStatus describes the current webhook registration as seen
// from both sides.
type RegistrationStatus struct {
	Registered bool
	Active     bool
	URL        string
	ExternalID string
}

// Register (re)registers the order-status webhook: any existing
// registration is removed first, then a fresh secret is generated and a
// new webhook created at the warehouse.
func (s *WebhookService) Register(ctx context.Context) (*syncdomain.WebhookRegistration, error) {
	if err := s.Remove(ctx); err != nil {
		return nil, err
	}

	reg, err := syncdomain.NewWebhookRegistration(syncdomain.TopicOrderStatusChanged)
	if err != nil {
		return nil, err
	}

	hook, err := s.webhooks.Create(ctx, s.endpointURL, pickhero.TopicOrderStatusChanged, reg.Secret)
	if err != nil {
		return nil, err
	}
	if hook.ID == 0 {
		return nil, fmt.Errorf("warehouse did not return a webhook id")
	}

	reg.ExternalWebhookID = strconv.FormatInt(hook.ID, 10)
	if err := s.regs.Save(ctx, reg); err != nil {
		return nil, err
	}

	s.logger.Info("webhook registered",
		zap.String("url", s.endpointURL),
		zap.String("external_webhook_id", reg.ExternalWebhookID),
	)
	return reg, nil
}

// Remove deletes the registration on both sides. A registration the
// warehouse already lost is fine; removing an unregistered webhook is a
// no-op.
func (s *WebhookService) Remove(ctx context.Context) error {
	reg, err := s.regs.FindByType(ctx, syncdomain.TopicOrderStatusChanged)
	if err != nil {
		return err
	}
	if reg == nil {
		return nil
	}

	if id, err := strconv.ParseInt(reg.ExternalWebhookID, 10, 64); err == nil && id != 0 {
		if err := s.webhooks.Delete(ctx, id); err != nil && !pickhero.IsNotFound(err) {
			return err
		}
	}

	if err := s.regs.DeleteByType(ctx, syncdomain.TopicOrderStatusChanged); err != nil {
		return err
	}
	s.logger.Info("webhook removed", zap.String("external_webhook_id", reg.ExternalWebhookID))
	return nil
}

// Status checks the registration against the warehouse. When the
// warehouse no longer knows the webhook, the stale local record is
// deleted so the next status call reports unregistered.
func (s *WebhookService) Status(ctx context.Context) (*RegistrationStatus, error) {
	reg, err := s.regs.FindByType(ctx, syncdomain.TopicOrderStatusChanged)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return &RegistrationStatus{}, nil
	}

	id, err := strconv.ParseInt(reg.ExternalWebhookID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt webhook registration id %q: %w", reg.ExternalWebhookID, err)
	}

	hook, err := s.webhooks.Get(ctx, id)
	if err != nil {
		if pickhero.IsNotFound(err) {
			s.logger.Warn("warehouse lost webhook registration, clearing local record",
				zap.String("external_webhook_id", reg.ExternalWebhookID),
			)
			if err := s.regs.DeleteByType(ctx, syncdomain.TopicOrderStatusChanged); err != nil {
				return nil, err
			}
			return &RegistrationStatus{}, nil
		}
		return nil, err
	}

	return &RegistrationStatus{
		Registered: true,
		Active:     hook.IsActive,
		URL:        hook.URL,
		ExternalID: reg.ExternalWebhookID,
	}, nil
}
