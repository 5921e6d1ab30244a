package sync

import (
	syncdomain "github.com/pickhero/commerce-sync/internal/domain/sync"
)

// Settings carries the behaviour toggles for the warehouse integration.
// It is assembled once at startup and treated as read-only afterwards.
type Settings struct {
	// PushOrders enables outbound order submission on status changes.
	PushOrders bool

	// OrderStatusToPush lists local status handles that trigger a submit.
	OrderStatusToPush []string

	// OrderStatusToProcess lists local status handles that trigger the
	// warehouse process action.
	OrderStatusToProcess []string

	// PushPrices includes unit prices in order rows and product payloads.
	PushPrices bool

	// CreateMissingProducts creates warehouse products on the fly during
	// order submission instead of failing.
	CreateMissingProducts bool

	// SyncOrderStatus enables inbound webhook handling.
	SyncOrderStatus bool

	// StatusMappings translates warehouse statuses to local handles.
	StatusMappings syncdomain.StatusMappingTable

	// FieldMappings adds extra catalog fields to product payloads.
	FieldMappings []FieldMapping
}

func (s Settings) shouldPush(statusHandle string) bool {
	return containsHandle(s.OrderStatusToPush, statusHandle)
}

func (s Settings) shouldProcess(statusHandle string) bool {
	return containsHandle(s.OrderStatusToProcess, statusHandle)
}

func containsHandle(handles []string, handle string) bool {
	for _, h := range handles {
		if h == handle {
			return true
		}
	}
	return false
}
