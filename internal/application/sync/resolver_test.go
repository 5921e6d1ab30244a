package sync

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pickhero/commerce-sync/internal/domain/commerce"
	"github.com/pickhero/commerce-sync/internal/infrastructure/pickhero"
)

func testVariants() *fakeVariantStore {
	product := &commerce.Product{ID: 3, Title: "Coffee Beans", ImageURL: "https://cdn.example.com/beans.jpg"}
	return newFakeVariantStore(
		&commerce.Variant{ID: 11, SKU: "SKU1", Title: "250g", Price: decimal.NewFromFloat(12.50), Weight: 0.25, Product: product},
		&commerce.Variant{ID: 12, SKU: "SKU2", Title: "1kg", Price: decimal.NewFromFloat(40), Weight: 1, Product: product},
	)
}

func newTestResolver(products *fakeProductGateway, customers *fakeCustomerGateway, settings Settings) *Resolver {
	return NewResolver(products, customers, testVariants(), settings, zap.NewNop())
}

func TestResolver_EnsureProductsExist(t *testing.T) {
	ctx := context.Background()
	items := testOrder().LineItems

	t.Run("creates missing products once per variant", func(t *testing.T) {
		products := newFakeProductGateway()
		r := newTestResolver(products, newFakeCustomerGateway(), Settings{CreateMissingProducts: true})

		ids, err := r.EnsureProductsExist(ctx, items)
		require.NoError(t, err)
		require.Len(t, ids, 2)
		require.Len(t, products.created, 2)
		assert.Equal(t, "Coffee Beans - 250g", products.created[0]["name"])
		assert.Equal(t, "SKU1", products.created[0]["product_code"])
		assert.Equal(t, "11", products.created[0]["external_id"])
	})

	t.Run("repeated resolution creates no duplicates", func(t *testing.T) {
		products := newFakeProductGateway()
		r := newTestResolver(products, newFakeCustomerGateway(), Settings{CreateMissingProducts: true})

		first, err := r.EnsureProductsExist(ctx, items)
		require.NoError(t, err)
		second, err := r.EnsureProductsExist(ctx, items)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Len(t, products.created, 2, "second pass must update, not create")
		assert.Len(t, products.updated, 2)
	})

	t.Run("existing products get updated catalog data", func(t *testing.T) {
		products := newFakeProductGateway()
		products.byExternalID["11"] = &pickhero.Product{ID: 900, ExternalID: "11"}
		r := newTestResolver(products, newFakeCustomerGateway(), Settings{CreateMissingProducts: true})

		ids, err := r.EnsureProductsExist(ctx, items[:1])
		require.NoError(t, err)
		assert.Equal(t, int64(900), ids[11])

		payload, ok := products.updated["900"]
		require.True(t, ok)
		assert.Equal(t, "SKU1", payload["product_code"])
		_, hasExternal := payload["external_id"]
		assert.False(t, hasExternal, "external_id is immutable and must not be sent on update")
	})

	t.Run("missing product fails when auto-create is off", func(t *testing.T) {
		r := newTestResolver(newFakeProductGateway(), newFakeCustomerGateway(), Settings{})

		_, err := r.EnsureProductsExist(ctx, items)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SKU1")
	})

	t.Run("field mappings land in the payload", func(t *testing.T) {
		products := newFakeProductGateway()
		r := newTestResolver(products, newFakeCustomerGateway(), Settings{
			CreateMissingProducts: true,
			FieldMappings: []FieldMapping{
				{PickHeroField: "weight", LocalField: "weight"},
				{PickHeroField: "image_url", LocalField: "product.imageUrl"},
			},
		})

		_, err := r.EnsureProductsExist(ctx, items[:1])
		require.NoError(t, err)
		require.Len(t, products.created, 1)
		assert.Equal(t, 0.25, products.created[0]["weight"])
		assert.Equal(t, "https://cdn.example.com/beans.jpg", products.created[0]["image_url"])
	})
}

func TestResolver_EnsureCustomerExists(t *testing.T) {
	ctx := context.Background()

	t.Run("guest order resolves to zero", func(t *testing.T) {
		r := newTestResolver(newFakeProductGateway(), newFakeCustomerGateway(), Settings{})
		order := testOrder()
		order.CustomerID = 0

		id, err := r.EnsureCustomerExists(ctx, order)
		require.NoError(t, err)
		assert.Zero(t, id)
	})

	t.Run("existing customer is reused", func(t *testing.T) {
		customers := newFakeCustomerGateway()
		customers.byExternalID["7"] = &pickhero.Customer{ID: 777, ExternalID: "7"}
		r := newTestResolver(newFakeProductGateway(), customers, Settings{})

		id, err := r.EnsureCustomerExists(ctx, testOrder())
		require.NoError(t, err)
		assert.Equal(t, int64(777), id)
		assert.Empty(t, customers.created)
	})

	t.Run("missing customer is created from billing address", func(t *testing.T) {
		customers := newFakeCustomerGateway()
		r := newTestResolver(newFakeProductGateway(), customers, Settings{})

		id, err := r.EnsureCustomerExists(ctx, testOrder())
		require.NoError(t, err)
		assert.Equal(t, int64(701), id)

		require.Len(t, customers.created, 1)
		payload := customers.created[0]
		assert.Equal(t, "7", payload["external_id"])
		assert.Equal(t, "Jan Jansen", payload["name"])
		assert.Equal(t, "jan@example.com", payload["email"])
		assert.Equal(t, "Stationsplein 1", payload["address"])
		_, hasContact := payload["contact_name"]
		assert.False(t, hasContact, "contact name only applies with an organization")
	})

	t.Run("falls back to shipping address", func(t *testing.T) {
		customers := newFakeCustomerGateway()
		r := newTestResolver(newFakeProductGateway(), customers, Settings{})
		order := testOrder()
		order.BillingAddress = nil
		order.ShippingAddress.Organization = "ACME BV"

		_, err := r.EnsureCustomerExists(ctx, order)
		require.NoError(t, err)
		require.Len(t, customers.created, 1)
		assert.Equal(t, "ACME BV", customers.created[0]["name"])
		assert.Equal(t, "Jan Jansen", customers.created[0]["contact_name"])
		assert.Equal(t, "+31612345678", customers.created[0]["telephone"])
	})
}
