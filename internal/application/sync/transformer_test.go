package sync

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pickhero/commerce-sync/internal/domain/commerce"
	"github.com/pickhero/commerce-sync/internal/infrastructure/pickhero"
)

func testOrder() *commerce.Order {
	return &commerce.Order{
		ID:           42,
		Number:       "a1b2c3d4e5",
		Reference:    "1001",
		StatusHandle: "new",
		Email:        "jan@example.com",
		Message:      "please deliver after 17:00",
		CustomerID:   7,
		ShippingAddress: &commerce.Address{
			FirstName:    "Jan",
			LastName:     "Jansen",
			AddressLine1: "Stationsplein 1",
			PostalCode:   "1012 AB",
			Locality:     "Amsterdam",
			CountryCode:  "NL",
			Phone:        "+31612345678",
		},
		BillingAddress: &commerce.Address{
			FirstName:    "Jan",
			LastName:     "Jansen",
			AddressLine1: "Stationsplein 1",
			PostalCode:   "1012 AB",
			Locality:     "Amsterdam",
			CountryCode:  "NL",
		},
		LineItems: []commerce.LineItem{
			{ID: 1, VariantID: 11, SKU: "SKU1", Qty: 2, Price: decimal.NewFromFloat(12.50), Note: "gift wrap"},
			{ID: 2, VariantID: 12, SKU: "SKU2", Qty: 1, Price: decimal.NewFromFloat(5.00)},
		},
	}
}

func testProductIDs() map[int64]int64 {
	return map[int64]int64{11: 501, 12: 502}
}

func TestTransformer_OrderPayload(t *testing.T) {
	tr := NewTransformer(true, WithOrderURL(func(o *commerce.Order) string {
		return "https://shop.example.com/admin/orders/42"
	}))

	payload, err := tr.OrderPayload(testOrder(), "42", 701, testProductIDs())
	require.NoError(t, err)

	assert.Equal(t, "42", payload.ExternalID)
	assert.Equal(t, "1001", payload.ExternalNumber)
	assert.Equal(t, "1001", payload.Reference)
	assert.Equal(t, "https://shop.example.com/admin/orders/42", payload.ExternalURL)
	assert.Equal(t, "jan@example.com", payload.EmailAddress)
	assert.Equal(t, "please deliver after 17:00", payload.CustomerRemarks)
	assert.Equal(t, "+31612345678", payload.Telephone)
	assert.Equal(t, int64(701), payload.CustomerID)

	require.Len(t, payload.Rows, 2)
	assert.Equal(t, int64(501), payload.Rows[0].ProductID)
	assert.Equal(t, 2, payload.Rows[0].Quantity)
	assert.Equal(t, "gift wrap", payload.Rows[0].Remarks)
	require.NotNil(t, payload.Rows[0].Price)
	assert.True(t, payload.Rows[0].Price.Equal(decimal.NewFromFloat(12.50)))

	assert.Equal(t, "Jan Jansen", payload.Delivery["name"])
	assert.Equal(t, "Stationsplein 1", payload.Delivery["address"])
	assert.Equal(t, "1012 AB", payload.Delivery["zipcode"])
	assert.Equal(t, "Amsterdam", payload.Delivery["city"])
	assert.Equal(t, "NL", payload.Delivery["country"])
	_, hasEmpty := payload.Delivery["address2"]
	assert.False(t, hasEmpty, "empty address fields must be omitted")
}

func TestTransformer_OrderPayload_NoPrices(t *testing.T) {
	tr := NewTransformer(false)

	payload, err := tr.OrderPayload(testOrder(), "42", 0, testProductIDs())
	require.NoError(t, err)
	for _, row := range payload.Rows {
		assert.Nil(t, row.Price)
	}
	assert.Zero(t, payload.CustomerID)
}

func TestTransformer_InvoiceCollapse(t *testing.T) {
	tr := NewTransformer(false)

	t.Run("identical billing collapses", func(t *testing.T) {
		payload, err := tr.OrderPayload(testOrder(), "42", 0, testProductIDs())
		require.NoError(t, err)
		assert.Equal(t, pickhero.AddressFields{"same_as_delivery": true}, payload.Invoice)
	})

	t.Run("missing billing collapses", func(t *testing.T) {
		order := testOrder()
		order.BillingAddress = nil
		payload, err := tr.OrderPayload(order, "42", 0, testProductIDs())
		require.NoError(t, err)
		assert.Equal(t, pickhero.AddressFields{"same_as_delivery": true}, payload.Invoice)
	})

	t.Run("different billing is embedded", func(t *testing.T) {
		order := testOrder()
		order.BillingAddress.Organization = "ACME BV"
		order.BillingAddress.AddressLine1 = "Keizersgracht 100"
		payload, err := tr.OrderPayload(order, "42", 0, testProductIDs())
		require.NoError(t, err)
		assert.Equal(t, "ACME BV", payload.Invoice["name"])
		assert.Equal(t, "Jan Jansen", payload.Invoice["contact_name"])
		assert.Equal(t, "Keizersgracht 100", payload.Invoice["address"])
		_, collapsed := payload.Invoice["same_as_delivery"]
		assert.False(t, collapsed)
	})

	t.Run("name-only difference still collapses", func(t *testing.T) {
		order := testOrder()
		order.BillingAddress.FullName = "J. Jansen Holding"
		payload, err := tr.OrderPayload(order, "42", 0, testProductIDs())
		require.NoError(t, err)
		assert.Equal(t, pickhero.AddressFields{"same_as_delivery": true}, payload.Invoice)
	})
}

func TestTransformer_UnresolvedVariantFails(t *testing.T) {
	tr := NewTransformer(false)

	_, err := tr.OrderPayload(testOrder(), "42", 0, map[int64]int64{11: 501})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "variant 12")
}

func TestTransformer_Hooks(t *testing.T) {
	t.Run("line item hook can add rows", func(t *testing.T) {
		tr := NewTransformer(false, WithLineItemsHook(func(_ *commerce.Order, items []commerce.LineItem) []commerce.LineItem {
			return append(items, commerce.LineItem{VariantID: 13, SKU: "BOX", Qty: 1})
		}))

		ids := testProductIDs()
		ids[13] = 503
		payload, err := tr.OrderPayload(testOrder(), "42", 0, ids)
		require.NoError(t, err)
		require.Len(t, payload.Rows, 3)
		assert.Equal(t, int64(503), payload.Rows[2].ProductID)
	})

	t.Run("address hook can override fields", func(t *testing.T) {
		tr := NewTransformer(false, WithAddressHook(func(_ *commerce.Order, kind AddressKind, fields pickhero.AddressFields) pickhero.AddressFields {
			if kind == AddressDelivery {
				fields["country"] = "BE"
			}
			return fields
		}))

		payload, err := tr.OrderPayload(testOrder(), "42", 0, testProductIDs())
		require.NoError(t, err)
		assert.Equal(t, "BE", payload.Delivery["country"])
	})
}
