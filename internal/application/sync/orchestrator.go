package sync

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/pickhero/commerce-sync/internal/domain/commerce"
	syncdomain "github.com/pickhero/commerce-sync/internal/domain/sync"
	"github.com/pickhero/commerce-sync/internal/infrastructure/lock"
	"github.com/pickhero/commerce-sync/internal/infrastructure/metrics"
	"github.com/pickhero/commerce-sync/internal/infrastructure/pickhero"
)

// OrderSyncService drives the per-order sync state machine: submit,
// resubmit after unlink, and trigger warehouse processing. Every mutation
// of a sync record happens under the per-order lock, so two concurrent
// submissions can never both see an unsynced record.
type OrderSyncService struct {
	settings    Settings
	orders      OrderGateway
	store       commerce.OrderStore
	repo        syncdomain.OrderSyncRepository
	resolver    *Resolver
	transformer *Transformer
	locker      lock.OrderLocker
	guard       *PushGuard
	logger      *zap.Logger
}

// NewOrderSyncService creates the orchestrator.
func NewOrderSyncService(
	settings Settings,
	orders OrderGateway,
	store commerce.OrderStore,
	repo syncdomain.OrderSyncRepository,
	resolver *Resolver,
	transformer *Transformer,
	locker lock.OrderLocker,
	guard *PushGuard,
	logger *zap.Logger,
) *OrderSyncService {
	return &OrderSyncService{
		settings:    settings,
		orders:      orders,
		store:       store,
		repo:        repo,
		resolver:    resolver,
		transformer: transformer,
		locker:      locker,
		guard:       guard,
		logger:      logger,
	}
}

// ---------------------------------------------------------------------------
// Order change entry point
// ---------------------------------------------------------------------------

// HandleOrderChange reacts to a saved order. It runs on a background
// worker, so failures are logged and counted rather than propagated; one
// bad order must not crash the pipeline.
func (s *OrderSyncService) HandleOrderChange(ctx context.Context, orderID int64) {
	if s.guard.Suppressed(orderID) {
		s.logger.Debug("auto-push suppressed for order", zap.Int64("order_id", orderID))
		return
	}
	if !s.settings.PushOrders {
		return
	}

	order, err := s.store.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, commerce.ErrOrderNotFound) {
			s.logger.Warn("order vanished before sync", zap.Int64("order_id", orderID))
			return
		}
		s.logger.Error("load order for sync", zap.Int64("order_id", orderID), zap.Error(err))
		metrics.SyncFailuresTotal.Inc()
		return
	}

	// Push and process checks are independent; one transition can
	// satisfy both.
	if s.settings.shouldPush(order.StatusHandle) {
		if _, err := s.Submit(ctx, orderID, false); err != nil {
			s.logger.Error("submit order",
				zap.Int64("order_id", orderID),
				zap.String("status", order.StatusHandle),
				zap.Error(err),
			)
			metrics.SyncFailuresTotal.Inc()
		}
	}

	if s.settings.shouldProcess(order.StatusHandle) {
		if err := s.TriggerProcessing(ctx, orderID); err != nil {
			s.logger.Error("trigger order processing",
				zap.Int64("order_id", orderID),
				zap.String("status", order.StatusHandle),
				zap.Error(err),
			)
			metrics.SyncFailuresTotal.Inc()
		}
	}
}

// ---------------------------------------------------------------------------
// Submission
// ---------------------------------------------------------------------------

// Submit pushes the order to the warehouse. Already pushed orders are a
// no-op unless force is set. The returned bool reports whether a remote
// call was actually made.
func (s *OrderSyncService) Submit(ctx context.Context, orderID int64, force bool) (bool, error) {
	handle, err := s.locker.Acquire(ctx, orderID)
	if err != nil {
		return false, err
	}
	defer handle.Release(ctx)

	status, err := s.repo.FindByOrderID(ctx, orderID)
	if err != nil {
		return false, err
	}
	return s.submitLocked(ctx, status, force)
}

// submitLocked performs the actual submission. Callers must hold the
// order lock.
func (s *OrderSyncService) submitLocked(ctx context.Context, status *syncdomain.OrderSyncStatus, force bool) (bool, error) {
	if status.Pushed && !force {
		return false, nil
	}

	order, err := s.store.FindByID(ctx, status.OrderID)
	if err != nil {
		return false, err
	}

	customerID, err := s.resolver.EnsureCustomerExists(ctx, order)
	if err != nil {
		return false, err
	}

	productIDs, err := s.resolver.EnsureProductsExist(ctx, s.transformer.CollectLineItems(order))
	if err != nil {
		return false, err
	}

	payload, err := s.transformer.OrderPayload(order, status.ExternalID(), customerID, productIDs)
	if err != nil {
		return false, err
	}

	var remote *pickhero.Order
	if status.Linked() {
		// Rows are immutable after create, so the update path never
		// sends them.
		remote, err = s.orders.Update(ctx, status.ExternalID(), pickhero.IDExternal, payload)
	} else {
		remote, err = s.orders.Create(ctx, payload)
	}
	if err != nil {
		return false, err
	}

	status.MarkPushed(strconv.FormatInt(remote.ID, 10), remote.Number, remote.PublicStatusPage)
	if err := s.repo.Save(ctx, status); err != nil {
		return false, err
	}

	metrics.OrdersPushedTotal.Inc()
	s.logger.Info("order pushed to warehouse",
		zap.Int64("order_id", status.OrderID),
		zap.String("external_id", status.ExternalID()),
		zap.Int64("warehouse_order_id", remote.ID),
	)
	return true, nil
}

// ---------------------------------------------------------------------------
// Processing
// ---------------------------------------------------------------------------

// TriggerProcessing asks the warehouse to allocate stock and create a
// picklist for the order, submitting it first when necessary. The
// warehouse refuses to process orders outside concept status with a
// validation error; that refusal is logged and tolerated since it means
// processing already happened remotely.
func (s *OrderSyncService) TriggerProcessing(ctx context.Context, orderID int64) error {
	handle, err := s.locker.Acquire(ctx, orderID)
	if err != nil {
		return err
	}
	defer handle.Release(ctx)

	status, err := s.repo.FindByOrderID(ctx, orderID)
	if err != nil {
		return err
	}

	if !status.Pushed {
		if _, err := s.submitLocked(ctx, status, false); err != nil {
			return err
		}
	}
	if status.Processed {
		return nil
	}

	if err := s.orders.Process(ctx, status.ExternalID(), pickhero.IDExternal); err != nil {
		if !pickhero.IsValidationError(err) {
			return err
		}
		s.logger.Warn("warehouse refused processing",
			zap.Int64("order_id", orderID),
			zap.String("external_id", status.ExternalID()),
			zap.Error(err),
		)
	}

	status.MarkProcessed()
	if err := s.repo.Save(ctx, status); err != nil {
		return err
	}

	metrics.ProcessingTriggeredTotal.Inc()
	s.logger.Info("order processing triggered",
		zap.Int64("order_id", orderID),
		zap.String("external_id", status.ExternalID()),
	)
	return nil
}

// ---------------------------------------------------------------------------
// Unlink and status
// ---------------------------------------------------------------------------

// Unlink detaches the order from its warehouse counterpart so the next
// submit creates a fresh remote order under a new external identifier.
func (s *OrderSyncService) Unlink(ctx context.Context, orderID int64) error {
	handle, err := s.locker.Acquire(ctx, orderID)
	if err != nil {
		return err
	}
	defer handle.Release(ctx)

	status, err := s.repo.FindByOrderID(ctx, orderID)
	if err != nil {
		return err
	}

	status.Unlink()
	if err := s.repo.Save(ctx, status); err != nil {
		return err
	}

	metrics.OrdersUnlinkedTotal.Inc()
	s.logger.Info("order unlinked from warehouse",
		zap.Int64("order_id", orderID),
		zap.Int("submission_count", status.SubmissionCount),
	)
	return nil
}

// Status returns the sync record for the order. A never-synced order
// yields a fresh zero record.
func (s *OrderSyncService) Status(ctx context.Context, orderID int64) (*syncdomain.OrderSyncStatus, error) {
	return s.repo.FindByOrderID(ctx, orderID)
}
