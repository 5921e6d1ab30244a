package sync

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/pickhero/commerce-sync/internal/domain/commerce"
	"github.com/pickhero/commerce-sync/internal/infrastructure/pickhero"
)

func TestApplyFieldMappings(t *testing.T) {
	variant := &commerce.Variant{
		ID:     11,
		SKU:    "SKU1",
		Title:  "250g",
		Price:  decimal.NewFromFloat(12.50),
		Weight: 0.25,
		Stock:  4,
		Product: &commerce.Product{
			Title:       "Coffee Beans",
			Description: "Single origin",
			ImageURL:    "https://cdn.example.com/beans.jpg",
		},
	}

	tests := []struct {
		name    string
		mapping FieldMapping
		want    any
	}{
		{"variant string field", FieldMapping{"product_code_supplier", "sku"}, "SKU1"},
		{"variant price", FieldMapping{"purchase_price", "price"}, decimal.NewFromFloat(12.50)},
		{"variant dimension", FieldMapping{"weight", "weight"}, 0.25},
		{"variant stock", FieldMapping{"initial_stock", "stock"}, 4},
		{"product title", FieldMapping{"name", "product.title"}, "Coffee Beans"},
		{"product description", FieldMapping{"description", "product.description"}, "Single origin"},
		{"product image camel case", FieldMapping{"image_url", "product.imageUrl"}, "https://cdn.example.com/beans.jpg"},
		{"product image snake case", FieldMapping{"image_url", "product.image_url"}, "https://cdn.example.com/beans.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := pickhero.ProductPayload{}
			applyFieldMappings(payload, variant, []FieldMapping{tt.mapping})
			assert.Equal(t, tt.want, payload[tt.mapping.PickHeroField])
		})
	}

	t.Run("unknown and empty fields are skipped", func(t *testing.T) {
		bare := &commerce.Variant{ID: 12, SKU: "SKU2"}
		payload := pickhero.ProductPayload{}
		applyFieldMappings(payload, bare, []FieldMapping{
			{PickHeroField: "gtin", LocalField: "barcode"},
			{PickHeroField: "weight", LocalField: "weight"},
			{PickHeroField: "name", LocalField: "product.title"},
			{PickHeroField: "", LocalField: "sku"},
		})
		assert.Empty(t, payload)
	})
}
