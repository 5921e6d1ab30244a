package sync

import (
	"context"
	"fmt"
	"time"
)

// ---------------------------------------------------------------------------
// Order sync record
// ---------------------------------------------------------------------------

// OrderSyncStatus tracks the synchronization state of a single local order
// against the warehouse system. One record exists per order; a missing
// record means the order has never been synced.
//
// The flags are independent booleans rather than a linear state enum:
// Processed can be set by a webhook without StockAllocated having been set
// by a local processing trigger.
type OrderSyncStatus struct {
	ID                  uint
	OrderID             int64
	ExternalOrderID     string
	ExternalOrderNumber string
	Pushed              bool
	StockAllocated      bool
	Processed           bool
	SubmissionCount     int
	PublicStatusPage    string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NewOrderSyncStatus creates a fresh record for the given order.
func NewOrderSyncStatus(orderID int64) *OrderSyncStatus {
	return &OrderSyncStatus{OrderID: orderID}
}

// BindOrder sets the order this record belongs to. Rebinding an already
// bound record to a different order is an error.
func (s *OrderSyncStatus) BindOrder(orderID int64) error {
	if s.OrderID != 0 && s.OrderID != orderID {
		return fmt.Errorf("%w: have %d, got %d", ErrOrderIDMismatch, s.OrderID, orderID)
	}
	s.OrderID = orderID
	return nil
}

// ExternalID returns the identifier sent to the warehouse system for this
// order. The warehouse forbids changing an external identifier once
// assigned, so each resubmission after an unlink must produce a new one:
// "42" for the first submission, "42-1" after one unlink, and so on.
func (s *OrderSyncStatus) ExternalID() string {
	if s.SubmissionCount == 0 {
		return fmt.Sprintf("%d", s.OrderID)
	}
	return fmt.Sprintf("%d-%d", s.OrderID, s.SubmissionCount)
}

// Linked reports whether the order has a warehouse-side counterpart.
func (s *OrderSyncStatus) Linked() bool {
	return s.ExternalOrderID != ""
}

// MarkPushed records a successful submission and captures the identifiers
// assigned by the warehouse.
func (s *OrderSyncStatus) MarkPushed(externalID, externalNumber, statusPage string) {
	s.Pushed = true
	s.ExternalOrderID = externalID
	s.ExternalOrderNumber = externalNumber
	if statusPage != "" {
		s.PublicStatusPage = statusPage
	}
}

// MarkProcessed records that the warehouse allocated stock and started
// processing the order.
func (s *OrderSyncStatus) MarkProcessed() {
	s.StockAllocated = true
	s.Processed = true
}

// Unlink resets the record so the order can be resubmitted as a new
// warehouse order. This is the only operation that advances
// SubmissionCount, which in turn changes the value of ExternalID.
func (s *OrderSyncStatus) Unlink() {
	s.SubmissionCount++
	s.ExternalOrderID = ""
	s.ExternalOrderNumber = ""
	s.PublicStatusPage = ""
	s.Pushed = false
	s.StockAllocated = false
	s.Processed = false
}

// ---------------------------------------------------------------------------
// Repository
// ---------------------------------------------------------------------------

// OrderSyncRepository persists order sync records.
type OrderSyncRepository interface {
	// FindByOrderID returns the record for the order, or a fresh unsaved
	// record when none exists yet. Absence is not an error.
	FindByOrderID(ctx context.Context, orderID int64) (*OrderSyncStatus, error)

	// Save inserts or updates the record.
	Save(ctx context.Context, status *OrderSyncStatus) error

	// DeleteByOrderID removes the record for the order if present.
	DeleteByOrderID(ctx context.Context, orderID int64) error
}
