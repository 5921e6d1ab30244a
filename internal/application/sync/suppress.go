package sync

import "sync"

// PushGuard suppresses outbound auto-push per order while an inbound
// webhook applies a status change to that order. Without it the local
// status update would re-trigger a push back to the warehouse that just
// reported the change.
type PushGuard struct {
	mu   sync.Mutex
	held map[int64]int
}

// NewPushGuard creates an empty guard.
func NewPushGuard() *PushGuard {
	return &PushGuard{held: make(map[int64]int)}
}

// Suppress marks the order as suppressed and returns a release function.
// The release function is safe to call more than once. Nested suppression
// of the same order stays in effect until every release has run.
func (g *PushGuard) Suppress(orderID int64) func() {
	g.mu.Lock()
	g.held[orderID]++
	g.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			g.held[orderID]--
			if g.held[orderID] <= 0 {
				delete(g.held, orderID)
			}
			g.mu.Unlock()
		})
	}
}

// Suppressed reports whether auto-push for the order is currently held.
func (g *PushGuard) Suppressed(orderID int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.held[orderID] > 0
}
