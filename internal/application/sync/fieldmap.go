package sync

import (
	"strings"

	"github.com/pickhero/commerce-sync/internal/domain/commerce"
	"github.com/pickhero/commerce-sync/internal/infrastructure/pickhero"
)

// FieldMapping routes one local catalog field into the warehouse product
// payload under a configurable key. LocalField addresses a variant field
// by name ("sku", "price", "weight", ...) or a parent product field with
// a "product." prefix ("product.title", "product.imageUrl").
type FieldMapping struct {
	PickHeroField string
	LocalField    string
}

// applyFieldMappings evaluates the mappings against a variant and writes
// the resolved values into the payload. Unresolvable fields and empty
// values are skipped rather than sent as nulls.
func applyFieldMappings(payload pickhero.ProductPayload, variant *commerce.Variant, mappings []FieldMapping) {
	for _, m := range mappings {
		if m.PickHeroField == "" || m.LocalField == "" {
			continue
		}
		value := resolveLocalField(variant, m.LocalField)
		if value == nil {
			continue
		}
		payload[m.PickHeroField] = value
	}
}

func resolveLocalField(variant *commerce.Variant, field string) any {
	if rest, ok := strings.CutPrefix(field, "product."); ok {
		return resolveProductField(variant.Product, rest)
	}

	switch field {
	case "sku":
		return nonEmpty(variant.SKU)
	case "title":
		return nonEmpty(variant.Title)
	case "price":
		return variant.Price
	case "weight":
		return nonZero(variant.Weight)
	case "length":
		return nonZero(variant.Length)
	case "width":
		return nonZero(variant.Width)
	case "height":
		return nonZero(variant.Height)
	case "stock":
		return variant.Stock
	default:
		return nil
	}
}

func resolveProductField(product *commerce.Product, field string) any {
	if product == nil {
		return nil
	}
	switch field {
	case "title":
		return nonEmpty(product.Title)
	case "description":
		return nonEmpty(product.Description)
	case "imageUrl", "image_url":
		return nonEmpty(product.ImageURL)
	default:
		return nil
	}
}

func nonEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nonZero(f float64) any {
	if f == 0 {
		return nil
	}
	return f
}
