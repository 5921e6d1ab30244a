package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	syncdomain "github.com/pickhero/commerce-sync/internal/domain/sync"
	"github.com/pickhero/commerce-sync/internal/infrastructure/metrics"
)

// signatureHeader carries the warehouse's HMAC over the raw body.
const signatureHeader = "x-webhook-signature"

// maxWebhookBody bounds inbound delivery size.
const maxWebhookBody = 1 << 20

// OrderStatusWebhookService processes one inbound delivery.
type OrderStatusWebhookService interface {
	HandleOrderStatusChanged(ctx context.Context, body []byte, signature string) error
}

// WebhookHandler receives order-status callbacks from the warehouse.
type WebhookHandler struct {
	service OrderStatusWebhookService
	logger  *zap.Logger
}

// NewWebhookHandler creates the handler.
func NewWebhookHandler(service OrderStatusWebhookService, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{service: service, logger: logger}
}

// RegisterRoutes mounts the public callback endpoint.
func (h *WebhookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/webhooks/pickhero/order-status-changed", h.OrderStatusChanged)
}

// OrderStatusChanged handles one delivery. The warehouse only looks at
// the status code; the body keeps the legacy OK/IGNORED/ERROR shape.
func (h *WebhookHandler) OrderStatusChanged(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		metrics.WebhooksReceivedTotal.WithLabelValues(metrics.WebhookResultError).Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"status": "ERROR"})
		return
	}

	err = h.service.HandleOrderStatusChanged(c.Request.Context(), body, c.GetHeader(signatureHeader))
	switch {
	case err == nil:
		metrics.WebhooksReceivedTotal.WithLabelValues(metrics.WebhookResultOK).Inc()
		c.JSON(http.StatusOK, gin.H{"status": "OK"})

	case errors.Is(err, syncdomain.ErrSyncDisabled):
		metrics.WebhooksReceivedTotal.WithLabelValues(metrics.WebhookResultIgnored).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"status": "IGNORED"})

	case errors.Is(err, syncdomain.ErrWebhookNotRegistered):
		metrics.WebhooksReceivedTotal.WithLabelValues(metrics.WebhookResultError).Inc()
		h.logger.Warn("webhook delivery without registration", zap.String("remote_addr", c.ClientIP()))
		c.JSON(http.StatusBadRequest, gin.H{"status": "ERROR"})

	case errors.Is(err, syncdomain.ErrInvalidSignature):
		metrics.WebhooksReceivedTotal.WithLabelValues(metrics.WebhookResultError).Inc()
		h.logger.Warn("webhook delivery with bad signature", zap.String("remote_addr", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, gin.H{"status": "ERROR"})

	case errors.Is(err, syncdomain.ErrMalformedPayload):
		metrics.WebhooksReceivedTotal.WithLabelValues(metrics.WebhookResultError).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"status": "ERROR"})

	default:
		metrics.WebhooksReceivedTotal.WithLabelValues(metrics.WebhookResultError).Inc()
		h.logger.Error("webhook delivery failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "ERROR"})
	}
}
