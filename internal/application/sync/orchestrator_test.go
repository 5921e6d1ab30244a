package sync

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pickhero/commerce-sync/internal/infrastructure/lock"
	"github.com/pickhero/commerce-sync/internal/infrastructure/pickhero"
)

type orchestratorFixture struct {
	service   *OrderSyncService
	orders    *fakeOrderGateway
	products  *fakeProductGateway
	customers *fakeCustomerGateway
	store     *fakeOrderStore
	repo      *fakeSyncRepo
	guard     *PushGuard
}

func newOrchestratorFixture(settings Settings) *orchestratorFixture {
	orders := &fakeOrderGateway{nextNumber: "PH-1001"}
	products := newFakeProductGateway()
	customers := newFakeCustomerGateway()
	store := newFakeOrderStore(testOrder())
	repo := newFakeSyncRepo()
	guard := NewPushGuard()
	logger := zap.NewNop()

	resolver := NewResolver(products, customers, testVariants(), settings, logger)
	transformer := NewTransformer(settings.PushPrices)

	service := NewOrderSyncService(
		settings, orders, store, repo,
		resolver, transformer,
		lock.NewMemoryOrderLocker(), guard, logger,
	)
	return &orchestratorFixture{
		service:   service,
		orders:    orders,
		products:  products,
		customers: customers,
		store:     store,
		repo:      repo,
		guard:     guard,
	}
}

func pushSettings() Settings {
	return Settings{
		PushOrders:            true,
		OrderStatusToPush:     []string{"new"},
		OrderStatusToProcess:  []string{"paid"},
		PushPrices:            true,
		CreateMissingProducts: true,
	}
}

func TestOrderSyncService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("first submit creates the remote order", func(t *testing.T) {
		f := newOrchestratorFixture(pushSettings())

		submitted, err := f.service.Submit(ctx, 42, false)
		require.NoError(t, err)
		assert.True(t, submitted)
		assert.Equal(t, 1, f.orders.createCalls)
		assert.Equal(t, "42", f.orders.createdPayloads[0].ExternalID)

		status, err := f.service.Status(ctx, 42)
		require.NoError(t, err)
		assert.True(t, status.Pushed)
		assert.Equal(t, "9001", status.ExternalOrderID)
		assert.Equal(t, "PH-1001", status.ExternalOrderNumber)
	})

	t.Run("second submit is a no-op", func(t *testing.T) {
		f := newOrchestratorFixture(pushSettings())

		_, err := f.service.Submit(ctx, 42, false)
		require.NoError(t, err)
		submitted, err := f.service.Submit(ctx, 42, false)
		require.NoError(t, err)

		assert.False(t, submitted)
		assert.Equal(t, 1, f.orders.createCalls)
		assert.Zero(t, f.orders.updateCalls)
	})

	t.Run("force on a linked order updates in place", func(t *testing.T) {
		f := newOrchestratorFixture(pushSettings())

		_, err := f.service.Submit(ctx, 42, false)
		require.NoError(t, err)
		submitted, err := f.service.Submit(ctx, 42, true)
		require.NoError(t, err)

		assert.True(t, submitted)
		assert.Equal(t, 1, f.orders.createCalls)
		require.Equal(t, 1, f.orders.updateCalls)
		assert.Equal(t, "42", f.orders.updatedIDs[0])
		assert.Equal(t, pickhero.IDExternal, f.orders.updatedIDTypes[0])
	})

	t.Run("unlink then resubmit uses a fresh external id", func(t *testing.T) {
		f := newOrchestratorFixture(pushSettings())

		_, err := f.service.Submit(ctx, 42, false)
		require.NoError(t, err)
		require.NoError(t, f.service.Unlink(ctx, 42))

		submitted, err := f.service.Submit(ctx, 42, false)
		require.NoError(t, err)
		assert.True(t, submitted)

		// Unlink cleared the link, so this is a create, not an update.
		require.Equal(t, 2, f.orders.createCalls)
		assert.Equal(t, "42-1", f.orders.createdPayloads[1].ExternalID)
		assert.Zero(t, f.orders.updateCalls)
	})

	t.Run("resolution failure leaves the record untouched", func(t *testing.T) {
		settings := pushSettings()
		settings.CreateMissingProducts = false
		f := newOrchestratorFixture(settings)

		_, err := f.service.Submit(ctx, 42, false)
		require.Error(t, err)
		assert.Zero(t, f.orders.createCalls)

		status, err := f.service.Status(ctx, 42)
		require.NoError(t, err)
		assert.False(t, status.Pushed)
	})
}

func TestOrderSyncService_TriggerProcessing(t *testing.T) {
	ctx := context.Background()

	t.Run("submits first when not yet pushed", func(t *testing.T) {
		f := newOrchestratorFixture(pushSettings())

		require.NoError(t, f.service.TriggerProcessing(ctx, 42))
		assert.Equal(t, 1, f.orders.createCalls)
		assert.Equal(t, 1, f.orders.processCalls)

		status, err := f.service.Status(ctx, 42)
		require.NoError(t, err)
		assert.True(t, status.Pushed)
		assert.True(t, status.StockAllocated)
		assert.True(t, status.Processed)
	})

	t.Run("never processes twice", func(t *testing.T) {
		f := newOrchestratorFixture(pushSettings())

		require.NoError(t, f.service.TriggerProcessing(ctx, 42))
		require.NoError(t, f.service.TriggerProcessing(ctx, 42))
		assert.Equal(t, 1, f.orders.processCalls)
	})

	t.Run("validation refusal is tolerated", func(t *testing.T) {
		f := newOrchestratorFixture(pushSettings())
		f.orders.processErr = &pickhero.APIError{
			StatusCode: 422,
			Message:    "order is not in concept status",
		}

		require.NoError(t, f.service.TriggerProcessing(ctx, 42))

		status, err := f.service.Status(ctx, 42)
		require.NoError(t, err)
		assert.True(t, status.Processed)
	})

	t.Run("other errors propagate", func(t *testing.T) {
		f := newOrchestratorFixture(pushSettings())
		f.orders.processErr = &pickhero.APIError{StatusCode: 500, Message: "boom"}

		require.Error(t, f.service.TriggerProcessing(ctx, 42))

		status, err := f.service.Status(ctx, 42)
		require.NoError(t, err)
		assert.False(t, status.Processed)
	})
}

func TestOrderSyncService_HandleOrderChange(t *testing.T) {
	ctx := context.Background()

	t.Run("pushes orders in the configured status", func(t *testing.T) {
		f := newOrchestratorFixture(pushSettings())

		f.service.HandleOrderChange(ctx, 42)
		assert.Equal(t, 1, f.orders.createCalls)
		assert.Zero(t, f.orders.processCalls)
	})

	t.Run("push and process checks are independent", func(t *testing.T) {
		settings := pushSettings()
		settings.OrderStatusToPush = []string{"new", "paid"}
		f := newOrchestratorFixture(settings)
		f.store.orders[42].StatusHandle = "paid"

		f.service.HandleOrderChange(ctx, 42)
		assert.Equal(t, 1, f.orders.createCalls)
		assert.Equal(t, 1, f.orders.processCalls)
	})

	t.Run("does nothing while suppressed", func(t *testing.T) {
		f := newOrchestratorFixture(pushSettings())
		release := f.guard.Suppress(42)
		defer release()

		f.service.HandleOrderChange(ctx, 42)
		assert.Zero(t, f.orders.createCalls)
	})

	t.Run("does nothing when pushing is disabled", func(t *testing.T) {
		settings := pushSettings()
		settings.PushOrders = false
		f := newOrchestratorFixture(settings)

		f.service.HandleOrderChange(ctx, 42)
		assert.Zero(t, f.orders.createCalls)
	})

	t.Run("swallows submission errors", func(t *testing.T) {
		f := newOrchestratorFixture(pushSettings())
		f.orders.createErr = &pickhero.APIError{StatusCode: 503, Message: "maintenance"}

		f.service.HandleOrderChange(ctx, 42)

		status, err := f.service.Status(ctx, 42)
		require.NoError(t, err)
		assert.False(t, status.Pushed)
	})

	t.Run("ignores vanished orders", func(t *testing.T) {
		f := newOrchestratorFixture(pushSettings())

		f.service.HandleOrderChange(ctx, 9999)
		assert.Zero(t, f.orders.createCalls)
	})
}
