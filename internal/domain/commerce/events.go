package commerce

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// OrderSavedHandler receives the identifier of an order that was just
// persisted.
type OrderSavedHandler func(ctx context.Context, orderID int64)

// OrderSavedBus is an in-memory post-save notification channel. The store
// publishes after every successful order write; interested components
// subscribe at startup and unsubscribe at shutdown.
//
// Handlers run synchronously on the publisher's goroutine, so they must
// stay fast and hand real work off to a queue.
type OrderSavedBus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[int]OrderSavedHandler
	logger   *zap.Logger
}

// NewOrderSavedBus creates an empty bus.
func NewOrderSavedBus(logger *zap.Logger) *OrderSavedBus {
	return &OrderSavedBus{
		handlers: make(map[int]OrderSavedHandler),
		logger:   logger,
	}
}

// Subscribe registers a handler and returns a token for Unsubscribe.
func (b *OrderSavedBus) Subscribe(h OrderSavedHandler) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.handlers[b.nextID] = h
	b.logger.Debug("order-saved handler subscribed", zap.Int("token", b.nextID))
	return b.nextID
}

// Unsubscribe removes a previously registered handler.
func (b *OrderSavedBus) Unsubscribe(token int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.handlers, token)
	b.logger.Debug("order-saved handler unsubscribed", zap.Int("token", token))
}

// Publish notifies all subscribers of a saved order.
func (b *OrderSavedBus) Publish(ctx context.Context, orderID int64) {
	b.mu.RLock()
	handlers := make([]OrderSavedHandler, 0, len(b.handlers))
	for _, h := range b.handlers {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		b.dispatch(ctx, h, orderID)
	}
}

// dispatch runs one handler, isolating panics from the publisher.
func (b *OrderSavedBus) dispatch(ctx context.Context, h OrderSavedHandler, orderID int64) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("order-saved handler panicked",
				zap.Int64("order_id", orderID),
				zap.Any("panic", r),
			)
		}
	}()
	h(ctx, orderID)
}
