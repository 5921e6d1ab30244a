package persistence

import (
	"context"
	"testing"

	"github.com/pickhero/commerce-sync/internal/domain/commerce"
	"github.com/pickhero/commerce-sync/internal/domain/sync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func TestGormOrderSyncRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGormOrderSyncRepository(newTestDB(t))

	t.Run("missing record yields a fresh one", func(t *testing.T) {
		status, err := repo.FindByOrderID(ctx, 42)
		require.NoError(t, err)
		require.NotNil(t, status)
		assert.Equal(t, int64(42), status.OrderID)
		assert.Zero(t, status.ID)
		assert.False(t, status.Pushed)
		assert.Equal(t, 0, status.SubmissionCount)
	})

	t.Run("save then reload", func(t *testing.T) {
		status := sync.NewOrderSyncStatus(42)
		status.MarkPushed("ph-1", "PH-0001", "https://status.example/x")
		require.NoError(t, repo.Save(ctx, status))
		assert.NotZero(t, status.ID)

		loaded, err := repo.FindByOrderID(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, status.ID, loaded.ID)
		assert.True(t, loaded.Pushed)
		assert.Equal(t, "ph-1", loaded.ExternalOrderID)
		assert.Equal(t, "PH-0001", loaded.ExternalOrderNumber)
		assert.Equal(t, "https://status.example/x", loaded.PublicStatusPage)
	})

	t.Run("unlink round trip", func(t *testing.T) {
		status, err := repo.FindByOrderID(ctx, 42)
		require.NoError(t, err)

		status.Unlink()
		require.NoError(t, repo.Save(ctx, status))

		loaded, err := repo.FindByOrderID(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, 1, loaded.SubmissionCount)
		assert.Equal(t, "42-1", loaded.ExternalID())
		assert.False(t, loaded.Pushed)
		assert.Empty(t, loaded.ExternalOrderID)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.DeleteByOrderID(ctx, 42))

		status, err := repo.FindByOrderID(ctx, 42)
		require.NoError(t, err)
		assert.Zero(t, status.ID)
	})
}

func TestGormWebhookRegistrationRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGormWebhookRegistrationRepository(newTestDB(t))

	t.Run("absent registration is nil", func(t *testing.T) {
		reg, err := repo.FindByType(ctx, sync.TopicOrderStatusChanged)
		require.NoError(t, err)
		assert.Nil(t, reg)
	})

	t.Run("save then reload", func(t *testing.T) {
		reg, err := sync.NewWebhookRegistration(sync.TopicOrderStatusChanged)
		require.NoError(t, err)
		reg.ExternalWebhookID = "77"
		require.NoError(t, repo.Save(ctx, reg))

		loaded, err := repo.FindByType(ctx, sync.TopicOrderStatusChanged)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, "77", loaded.ExternalWebhookID)
		assert.Len(t, loaded.Secret, 32)
	})

	t.Run("delete by type", func(t *testing.T) {
		require.NoError(t, repo.DeleteByType(ctx, sync.TopicOrderStatusChanged))

		reg, err := repo.FindByType(ctx, sync.TopicOrderStatusChanged)
		require.NoError(t, err)
		assert.Nil(t, reg)
	})
}

func TestGormOrderStore(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	bus := commerce.NewOrderSavedBus(zap.NewNop())
	store := NewGormOrderStore(db, bus)

	var saved []int64
	bus.Subscribe(func(_ context.Context, orderID int64) {
		saved = append(saved, orderID)
	})

	order := &commerce.Order{
		Number:       "a1b2c3",
		Reference:    "1001",
		StatusHandle: "new",
		Email:        "jan@example.com",
		ShippingAddress: &commerce.Address{
			FirstName:    "Jan",
			LastName:     "Jansen",
			AddressLine1: "Keizersgracht 1",
			PostalCode:   "1015 CC",
			Locality:     "Amsterdam",
			CountryCode:  "NL",
		},
		LineItems: []commerce.LineItem{
			{VariantID: 1, SKU: "SKU1", Qty: 2},
		},
	}
	require.NoError(t, store.Save(ctx, order))
	require.NotZero(t, order.ID)
	assert.Equal(t, []int64{order.ID}, saved)

	t.Run("find by id loads lines and addresses", func(t *testing.T) {
		loaded, err := store.FindByID(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, loaded.ShippingAddress)
		assert.Equal(t, "Keizersgracht 1", loaded.ShippingAddress.AddressLine1)
		assert.Nil(t, loaded.BillingAddress)
		require.Len(t, loaded.LineItems, 1)
		assert.Equal(t, "SKU1", loaded.LineItems[0].SKU)
	})

	t.Run("find by reference", func(t *testing.T) {
		loaded, err := store.FindByReference(ctx, "1001")
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, order.ID, loaded.ID)

		missing, err := store.FindByReference(ctx, "9999")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("status update publishes once", func(t *testing.T) {
		saved = nil
		require.NoError(t, store.UpdateStatus(ctx, order.ID, "shipped"))
		assert.Equal(t, []int64{order.ID}, saved)

		// Same status again is a no-op write with no notification.
		require.NoError(t, store.UpdateStatus(ctx, order.ID, "shipped"))
		assert.Equal(t, []int64{order.ID}, saved)

		loaded, err := store.FindByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, "shipped", loaded.StatusHandle)
	})

	t.Run("unknown order id", func(t *testing.T) {
		_, err := store.FindByID(ctx, 99999)
		assert.ErrorIs(t, err, commerce.ErrOrderNotFound)
	})
}
