package sync

import "errors"

// Domain errors for order synchronization
var (
	// ErrOrderIDMismatch is returned when a sync record is bound to a
	// different order than the one it was loaded for
	ErrOrderIDMismatch = errors.New("sync: record already bound to another order")

	// ErrOrderNotFound is returned when the referenced local order does not exist
	ErrOrderNotFound = errors.New("sync: order not found")

	// ErrWebhookNotRegistered is returned when an inbound webhook arrives
	// for a topic with no local registration
	ErrWebhookNotRegistered = errors.New("sync: webhook not registered")

	// ErrInvalidSignature is returned when an inbound webhook signature
	// does not match the registered secret
	ErrInvalidSignature = errors.New("sync: invalid webhook signature")

	// ErrMalformedPayload is returned when an inbound webhook body cannot
	// be parsed
	ErrMalformedPayload = errors.New("sync: malformed webhook payload")

	// ErrSyncDisabled is returned when a sync operation is invoked while
	// the feature is switched off in configuration
	ErrSyncDisabled = errors.New("sync: order synchronization disabled")

	// ErrLockNotAcquired is returned when the per-order lock is already held
	ErrLockNotAcquired = errors.New("sync: order lock not acquired")
)
