package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appsync "github.com/pickhero/commerce-sync/internal/application/sync"
	syncdomain "github.com/pickhero/commerce-sync/internal/domain/sync"
)

// WebhookAdminService manages the warehouse-side webhook registration.
type WebhookAdminService interface {
	Register(ctx context.Context) (*syncdomain.WebhookRegistration, error)
	Remove(ctx context.Context) error
	Status(ctx context.Context) (*appsync.RegistrationStatus, error)
}

// WebhookAdminHandler exposes webhook registration management for
// back-office use.
type WebhookAdminHandler struct {
	service WebhookAdminService
	logger  *zap.Logger
}

// NewWebhookAdminHandler creates the handler.
func NewWebhookAdminHandler(service WebhookAdminService, logger *zap.Logger) *WebhookAdminHandler {
	return &WebhookAdminHandler{service: service, logger: logger}
}

// RegisterRoutes mounts the webhook admin endpoints.
func (h *WebhookAdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	webhook := rg.Group("/webhook")
	webhook.GET("/status", h.Status)
	webhook.POST("/register", h.Register)
	webhook.DELETE("", h.Remove)
}

// RegistrationResponse describes the webhook registration state.
type RegistrationResponse struct {
	Registered bool   `json:"registered"`
	Active     bool   `json:"active"`
	URL        string `json:"url,omitempty"`
	ExternalID string `json:"external_id,omitempty"`
}

// Status reports the registration as seen by both sides; a registration
// the warehouse lost is cleared and reported as unregistered.
func (h *WebhookAdminHandler) Status(c *gin.Context) {
	status, err := h.service.Status(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, RegistrationResponse{
		Registered: status.Registered,
		Active:     status.Active,
		URL:        status.URL,
		ExternalID: status.ExternalID,
	})
}

// Register (re)registers the order-status webhook with a fresh secret.
func (h *WebhookAdminHandler) Register(c *gin.Context) {
	reg, err := h.service.Register(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, RegistrationResponse{
		Registered: true,
		Active:     true,
		ExternalID: reg.ExternalWebhookID,
	})
}

// Remove deletes the registration on both sides.
func (h *WebhookAdminHandler) Remove(c *gin.Context) {
	if err := h.service.Remove(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": true})
}
