package pickhero

import (
	"context"

	"github.com/shopspring/decimal"
)

// Product is a warehouse-side product.
type Product struct {
	ID          int64           `json:"id"`
	ExternalID  string          `json:"external_id"`
	Name        string          `json:"name"`
	ProductCode string          `json:"product_code"`
	Price       decimal.Decimal `json:"price"`
}

// ProductPayload is the request body for product create and update calls.
// Field-mapping configuration can contribute arbitrary keys, so the
// payload stays an open map.
type ProductPayload map[string]any

// ProductsResource handles product CRUD.
//
// Available filters: company_id, external_id, supplier_id, name,
// product_code, product_code_supplier, gtin, country_of_origin,
// requires_serial_number, trashed.
type ProductsResource struct {
	client *Client
}

// List returns products matching the given parameters.
func (r *ProductsResource) List(ctx context.Context, params ListParams) ([]Product, error) {
	var env struct {
		Data []Product `json:"data"`
	}
	if err := r.client.get(ctx, "products", params.Values(), &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Get returns a single product by ID or external_id.
func (r *ProductsResource) Get(ctx context.Context, id string, idType IDType) (*Product, error) {
	var env struct {
		Data Product `json:"data"`
	}
	if err := r.client.get(ctx, "products/"+FormatID(id, idType), nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Create creates a new product. Required fields: name, product_code, price.
func (r *ProductsResource) Create(ctx context.Context, payload ProductPayload) (*Product, error) {
	var env struct {
		Data Product `json:"data"`
	}
	if err := r.client.post(ctx, "products", payload, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Update modifies an existing product. The external_id cannot be changed
// once set.
func (r *ProductsResource) Update(ctx context.Context, id string, idType IDType, payload ProductPayload) (*Product, error) {
	var env struct {
		Data Product `json:"data"`
	}
	if err := r.client.patch(ctx, "products/"+FormatID(id, idType), payload, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Delete soft deletes a product.
func (r *ProductsResource) Delete(ctx context.Context, id string, idType IDType) error {
	return r.client.delete(ctx, "products/"+FormatID(id, idType))
}

// Restore restores a soft-deleted product.
func (r *ProductsResource) Restore(ctx context.Context, id string, idType IDType) error {
	return r.client.post(ctx, "products/"+FormatID(id, idType)+"/restore", struct{}{}, nil)
}

// FindByExternalID returns the product with the given external identifier,
// or nil when none exists. Absence is not an error.
func (r *ProductsResource) FindByExternalID(ctx context.Context, externalID string) (*Product, error) {
	products, err := r.List(ctx, ListParams{Filters: map[string]string{"external_id": externalID}})
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, nil
	}
	return &products[0], nil
}

// FindByProductCode returns the product with the given product code (SKU),
// or nil when none exists.
func (r *ProductsResource) FindByProductCode(ctx context.Context, productCode string) (*Product, error) {
	products, err := r.List(ctx, ListParams{Filters: map[string]string{"product_code": productCode}})
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, nil
	}
	return &products[0], nil
}
