package sync

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/pickhero/commerce-sync/internal/domain/commerce"
	"github.com/pickhero/commerce-sync/internal/infrastructure/pickhero"
)

// Resolver makes sure the warehouse knows every product and customer an
// order refers to before the order itself is submitted. All lookups go by
// external identifier, so repeated resolution of an unchanged order never
// creates duplicate remote records.
type Resolver struct {
	products  ProductGateway
	customers CustomerGateway
	variants  commerce.VariantStore
	settings  Settings
	logger    *zap.Logger
}

// NewResolver creates a resolver.
func NewResolver(
	products ProductGateway,
	customers CustomerGateway,
	variants commerce.VariantStore,
	settings Settings,
	logger *zap.Logger,
) *Resolver {
	return &Resolver{
		products:  products,
		customers: customers,
		variants:  variants,
		settings:  settings,
		logger:    logger,
	}
}

// EnsureProductsExist resolves every line item's variant to a warehouse
// product ID. Existing products are updated with current catalog data;
// missing ones are created when automatic creation is enabled, otherwise
// resolution fails.
func (r *Resolver) EnsureProductsExist(ctx context.Context, items []commerce.LineItem) (map[int64]int64, error) {
	ids := make(map[int64]int64, len(items))

	for _, item := range items {
		if _, done := ids[item.VariantID]; done {
			continue
		}

		variant, err := r.variants.FindByID(ctx, item.VariantID)
		if err != nil {
			return nil, fmt.Errorf("resolve variant %d: %w", item.VariantID, err)
		}

		externalID := strconv.FormatInt(variant.ID, 10)
		existing, err := r.products.FindByExternalID(ctx, externalID)
		if err != nil {
			return nil, err
		}

		if existing != nil {
			payload := productPayload(variant, "", r.settings.FieldMappings)
			if _, err := r.products.Update(ctx, strconv.FormatInt(existing.ID, 10), pickhero.IDInternal, payload); err != nil {
				return nil, fmt.Errorf("update product %q: %w", variant.SKU, err)
			}
			r.logger.Debug("warehouse product updated",
				zap.String("sku", variant.SKU),
				zap.Int64("product_id", existing.ID),
			)
			ids[item.VariantID] = existing.ID
			continue
		}

		if !r.settings.CreateMissingProducts {
			return nil, fmt.Errorf("product %q is unknown to the warehouse and automatic creation is disabled", variant.SKU)
		}

		payload := productPayload(variant, externalID, r.settings.FieldMappings)
		created, err := r.products.Create(ctx, payload)
		if err != nil {
			return nil, fmt.Errorf("create product %q: %w", variant.SKU, err)
		}
		r.logger.Info("warehouse product created",
			zap.String("sku", variant.SKU),
			zap.Int64("product_id", created.ID),
		)
		ids[item.VariantID] = created.ID
	}

	return ids, nil
}

// EnsureCustomerExists resolves the order's buyer to a warehouse customer
// ID, creating the customer from the billing address (falling back to
// shipping) when absent. Orders without a buyer resolve to zero, meaning
// the order is submitted without a customer link.
func (r *Resolver) EnsureCustomerExists(ctx context.Context, order *commerce.Order) (int64, error) {
	if order.CustomerID == 0 {
		return 0, nil
	}

	externalID := strconv.FormatInt(order.CustomerID, 10)
	existing, err := r.customers.FindByExternalID(ctx, externalID)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return existing.ID, nil
	}

	created, err := r.customers.Create(ctx, customerPayload(order, externalID))
	if err != nil {
		return 0, fmt.Errorf("create customer %s: %w", externalID, err)
	}
	r.logger.Info("warehouse customer created",
		zap.String("external_id", externalID),
		zap.Int64("customer_id", created.ID),
	)
	return created.ID, nil
}

// productPayload builds a product create/update body from a variant.
// externalID is only set on create; the warehouse forbids changing it.
func productPayload(variant *commerce.Variant, externalID string, mappings []FieldMapping) pickhero.ProductPayload {
	payload := pickhero.ProductPayload{
		"name":         variant.DisplayName(),
		"product_code": variant.SKU,
		"price":        variant.Price,
	}
	if externalID != "" {
		payload["external_id"] = externalID
	}
	applyFieldMappings(payload, variant, mappings)
	return payload
}

// customerPayload synthesizes a customer from the order's addresses.
func customerPayload(order *commerce.Order, externalID string) pickhero.CustomerPayload {
	addr := order.BillingAddress
	if addr == nil {
		addr = order.ShippingAddress
	}

	payload := pickhero.CustomerPayload{"external_id": externalID}

	setField := func(key, value string) {
		if value != "" {
			payload[key] = value
		}
	}

	setField("email", order.Email)
	if addr != nil {
		setField("name", addr.PrimaryName())
		setField("contact_name", addr.ContactName())
		setField("telephone", addr.Phone)
		setField("address", addr.AddressLine1)
		setField("address2", addr.AddressLine2)
		setField("zipcode", addr.PostalCode)
		setField("city", addr.Locality)
		setField("region", addr.Region)
		setField("country", addr.CountryCode)
	}
	return payload
}
