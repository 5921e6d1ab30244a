// Package queue decouples order-change detection from the outbound API
// calls. Enqueue carries only the order identifier; the consumer re-fetches
// current order state before acting.
package queue

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler consumes one queued order sync job. Errors are handled inside
// the handler; the queue never retries.
type Handler func(ctx context.Context, orderID int64)

type job struct {
	id      uuid.UUID
	orderID int64
}

// SyncQueue is an in-process work queue with per-order serialization.
// Jobs are sharded onto worker lanes by order ID, so two jobs for the
// same order never run concurrently and are consumed in enqueue order.
type SyncQueue struct {
	handler Handler
	logger  *zap.Logger
	lanes   []chan job

	mu      sync.Mutex
	started bool
	stopped bool
	wg      sync.WaitGroup
}

// NewSyncQueue creates a queue with the given number of worker lanes.
func NewSyncQueue(workers, bufferSize int, handler Handler, logger *zap.Logger) *SyncQueue {
	if workers < 1 {
		workers = 1
	}
	if bufferSize < 1 {
		bufferSize = 256
	}

	lanes := make([]chan job, workers)
	for i := range lanes {
		lanes[i] = make(chan job, bufferSize)
	}
	return &SyncQueue{
		handler: handler,
		logger:  logger,
		lanes:   lanes,
	}
}

// Start launches the worker goroutines.
func (q *SyncQueue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started {
		return
	}
	q.started = true

	for i, lane := range q.lanes {
		q.wg.Add(1)
		go q.run(ctx, i, lane)
	}
	q.logger.Info("sync queue started", zap.Int("workers", len(q.lanes)))
}

// Stop closes the lanes and waits for in-flight jobs to finish.
func (q *SyncQueue) Stop() {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return
	}
	q.stopped = true
	for _, lane := range q.lanes {
		close(lane)
	}
	q.mu.Unlock()

	q.wg.Wait()
	q.logger.Info("sync queue stopped")
}

// Enqueue schedules a sync job for the order. Returns false when the
// queue is already stopped or the order's lane is full. The send happens
// under the mutex Stop closes the lanes under, so it can never hit a
// closed channel.
func (q *SyncQueue) Enqueue(orderID int64) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.stopped {
		return false
	}

	j := job{id: uuid.New(), orderID: orderID}
	select {
	case q.lanes[q.laneFor(orderID)] <- j:
		q.logger.Debug("sync job enqueued",
			zap.String("job_id", j.id.String()),
			zap.Int64("order_id", orderID),
		)
		return true
	default:
		q.logger.Error("sync queue lane full, job dropped",
			zap.Int64("order_id", orderID),
		)
		return false
	}
}

// laneFor maps an order to its lane. Same order, same lane.
func (q *SyncQueue) laneFor(orderID int64) int {
	n := int(orderID % int64(len(q.lanes)))
	if n < 0 {
		n = -n
	}
	return n
}

func (q *SyncQueue) run(ctx context.Context, lane int, jobs <-chan job) {
	defer q.wg.Done()
	for j := range jobs {
		q.process(ctx, lane, j)
	}
}

// process runs one job, isolating handler panics from the worker.
func (q *SyncQueue) process(ctx context.Context, lane int, j job) {
	defer func() {
		if r := recover(); r != nil {
			q.logger.Error("sync job panicked",
				zap.String("job_id", j.id.String()),
				zap.Int64("order_id", j.orderID),
				zap.Int("lane", lane),
				zap.Any("panic", r),
			)
		}
	}()
	q.handler(ctx, j.orderID)
}
