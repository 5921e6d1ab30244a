package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	syncdomain "github.com/pickhero/commerce-sync/internal/domain/sync"
)

// OrderSyncService is the slice of the orchestrator the admin endpoints
// need.
type OrderSyncService interface {
	Status(ctx context.Context, orderID int64) (*syncdomain.OrderSyncStatus, error)
	Submit(ctx context.Context, orderID int64, force bool) (bool, error)
	TriggerProcessing(ctx context.Context, orderID int64) error
	Unlink(ctx context.Context, orderID int64) error
}

// OrderSyncHandler exposes per-order sync actions for back-office use.
type OrderSyncHandler struct {
	service OrderSyncService
	logger  *zap.Logger
}

// NewOrderSyncHandler creates the handler.
func NewOrderSyncHandler(service OrderSyncService, logger *zap.Logger) *OrderSyncHandler {
	return &OrderSyncHandler{service: service, logger: logger}
}

// RegisterRoutes mounts the order sync endpoints.
func (h *OrderSyncHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders/:id/sync")
	orders.GET("", h.Status)
	orders.POST("/push", h.Push)
	orders.POST("/process", h.Process)
	orders.POST("/unlink", h.Unlink)
}

// SyncStatusResponse is the admin view of one order's sync record.
type SyncStatusResponse struct {
	OrderID             int64  `json:"order_id"`
	ExternalID          string `json:"external_id"`
	ExternalOrderID     string `json:"external_order_id,omitempty"`
	ExternalOrderNumber string `json:"external_order_number,omitempty"`
	Pushed              bool   `json:"pushed"`
	StockAllocated      bool   `json:"stock_allocated"`
	Processed           bool   `json:"processed"`
	SubmissionCount     int    `json:"submission_count"`
	PublicStatusPage    string `json:"public_status_page,omitempty"`
}

func newSyncStatusResponse(status *syncdomain.OrderSyncStatus) SyncStatusResponse {
	return SyncStatusResponse{
		OrderID:             status.OrderID,
		ExternalID:          status.ExternalID(),
		ExternalOrderID:     status.ExternalOrderID,
		ExternalOrderNumber: status.ExternalOrderNumber,
		Pushed:              status.Pushed,
		StockAllocated:      status.StockAllocated,
		Processed:           status.Processed,
		SubmissionCount:     status.SubmissionCount,
		PublicStatusPage:    status.PublicStatusPage,
	}
}

// PushRequest is the optional body of the push endpoint.
type PushRequest struct {
	Force bool `json:"force"`
}

// Status returns the order's sync record. Never-synced orders yield a
// zero record rather than a 404.
func (h *OrderSyncHandler) Status(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	status, err := h.service.Status(c.Request.Context(), orderID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSyncStatusResponse(status))
}

// Push submits the order to the warehouse. With force set it resubmits
// an already pushed order.
func (h *OrderSyncHandler) Push(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	var req PushRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
			return
		}
	}

	submitted, err := h.service.Submit(c.Request.Context(), orderID, req.Force)
	if err != nil {
		writeError(c, err)
		return
	}

	status, err := h.service.Status(c.Request.Context(), orderID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"submitted": submitted,
		"sync":      newSyncStatusResponse(status),
	})
}

// Process triggers warehouse-side stock allocation for the order.
func (h *OrderSyncHandler) Process(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	if err := h.service.TriggerProcessing(c.Request.Context(), orderID); err != nil {
		writeError(c, err)
		return
	}

	status, err := h.service.Status(c.Request.Context(), orderID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sync": newSyncStatusResponse(status)})
}

// Unlink detaches the order from its warehouse counterpart.
func (h *OrderSyncHandler) Unlink(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}

	if err := h.service.Unlink(c.Request.Context(), orderID); err != nil {
		writeError(c, err)
		return
	}

	status, err := h.service.Status(c.Request.Context(), orderID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sync": newSyncStatusResponse(status)})
}

func (h *OrderSyncHandler) orderID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid order id"})
		return 0, false
	}
	return id, true
}
