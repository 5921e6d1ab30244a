package pickhero

import "context"

// StockRecord is a stock quantity for one product at one location.
type StockRecord struct {
	ID         int64    `json:"id"`
	ProductID  int64    `json:"product_id"`
	LocationID int64    `json:"location_id"`
	Quantity   int      `json:"quantity"`
	Product    *Product `json:"product,omitempty"`
}

// StockResource handles stock level queries.
//
// Available filters: product_id, location_id, location.warehouse_id,
// product.external_id, product.product_code, warehouse_id, min_quantity,
// has_stock.
type StockResource struct {
	client *Client
}

// List returns stock records matching the given parameters.
func (r *StockResource) List(ctx context.Context, params ListParams) ([]StockRecord, error) {
	var env struct {
		Data []StockRecord `json:"data"`
	}
	if err := r.client.get(ctx, "stock", params.Values(), &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// GetByProductCode returns stock records for a product code (SKU) across
// all locations.
func (r *StockResource) GetByProductCode(ctx context.Context, productCode string) ([]StockRecord, error) {
	return r.List(ctx, ListParams{
		Filters: map[string]string{"product.product_code": productCode},
		Include: "product,location,location.warehouse",
	})
}

// GetByExternalProductID returns stock records for a product external
// identifier across all locations.
func (r *StockResource) GetByExternalProductID(ctx context.Context, externalID string) ([]StockRecord, error) {
	return r.List(ctx, ListParams{
		Filters: map[string]string{"product.external_id": externalID},
		Include: "product,location,location.warehouse",
	})
}

// AvailableByProductCode sums the stock quantity for a product code
// across all locations.
func (r *StockResource) AvailableByProductCode(ctx context.Context, productCode string) (int, error) {
	records, err := r.GetByProductCode(ctx, productCode)
	if err != nil {
		return 0, err
	}
	return SumQuantities(records), nil
}

// SumQuantities aggregates quantities across stock records.
func SumQuantities(records []StockRecord) int {
	total := 0
	for _, rec := range records {
		total += rec.Quantity
	}
	return total
}

// AggregateByProductCode groups stock records by their product code and
// sums quantities per code. Records without an embedded product are
// skipped.
func AggregateByProductCode(records []StockRecord) map[string]int {
	totals := make(map[string]int)
	for _, rec := range records {
		if rec.Product == nil || rec.Product.ProductCode == "" {
			continue
		}
		totals[rec.Product.ProductCode] += rec.Quantity
	}
	return totals
}
