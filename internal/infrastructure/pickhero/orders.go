package pickhero

import (
	"context"

	"github.com/shopspring/decimal"
)

// Order is a warehouse-side order.
type Order struct {
	ID               int64  `json:"id"`
	ExternalID       string `json:"external_id"`
	Number           string `json:"number"`
	Reference        string `json:"reference"`
	Status           string `json:"status"`
	CustomerID       int64  `json:"customer_id"`
	PublicStatusPage string `json:"public_status_page"`
}

// OrderRow is one line of an order payload. Rows cannot be changed after
// the order is created.
type OrderRow struct {
	ProductID int64            `json:"product_id"`
	Quantity  int              `json:"quantity"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	Remarks   string           `json:"remarks,omitempty"`
}

// AddressFields is a sparse address object. Extension hooks may add or
// override keys before the payload is sent.
type AddressFields map[string]any

// OrderPayload is the request body for order create and update calls.
type OrderPayload struct {
	ExternalID      string        `json:"external_id"`
	ExternalNumber  string        `json:"external_number"`
	ExternalURL     string        `json:"external_url,omitempty"`
	Reference       string        `json:"reference,omitempty"`
	EmailAddress    string        `json:"email_address,omitempty"`
	CustomerRemarks string        `json:"customer_remarks,omitempty"`
	Telephone       string        `json:"telephone,omitempty"`
	CustomerID      int64         `json:"customer_id,omitempty"`
	Delivery        AddressFields `json:"delivery,omitempty"`
	Invoice         AddressFields `json:"invoice,omitempty"`
	Rows            []OrderRow    `json:"rows,omitempty"`
}

// OrdersResource handles order creation, updates, and processing.
//
// Available filters: company_id, external_id, status, customer_id, number,
// reference, delivery_name, delivery_city, delivery_country.
type OrdersResource struct {
	client *Client
}

// List returns orders matching the given parameters.
func (r *OrdersResource) List(ctx context.Context, params ListParams) ([]Order, error) {
	var env struct {
		Data []Order `json:"data"`
	}
	if err := r.client.get(ctx, "orders", params.Values(), &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Get returns a single order by ID or external_id.
func (r *OrdersResource) Get(ctx context.Context, id string, idType IDType) (*Order, error) {
	var env struct {
		Data Order `json:"data"`
	}
	if err := r.client.get(ctx, "orders/"+FormatID(id, idType), nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Create creates a new order. Each row requires product_id and quantity.
func (r *OrdersResource) Create(ctx context.Context, payload OrderPayload) (*Order, error) {
	var env struct {
		Data Order `json:"data"`
	}
	if err := r.client.post(ctx, "orders", payload, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Update modifies an existing order. The external_id cannot be changed
// once set and rows cannot be modified through this endpoint.
func (r *OrdersResource) Update(ctx context.Context, id string, idType IDType, payload OrderPayload) (*Order, error) {
	payload.Rows = nil
	var env struct {
		Data Order `json:"data"`
	}
	if err := r.client.patch(ctx, "orders/"+FormatID(id, idType), payload, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Process triggers stock allocation and picklist creation. Only orders in
// concept status can be processed; anything else yields a validation error.
func (r *OrdersResource) Process(ctx context.Context, id string, idType IDType) error {
	return r.client.post(ctx, "orders/"+FormatID(id, idType)+"/process", struct{}{}, nil)
}

// FindByExternalID returns orders carrying the given external identifier.
func (r *OrdersResource) FindByExternalID(ctx context.Context, externalID string) ([]Order, error) {
	return r.List(ctx, ListParams{Filters: map[string]string{"external_id": externalID}})
}

// FindByReference returns orders carrying the given reference.
func (r *OrdersResource) FindByReference(ctx context.Context, reference string) ([]Order, error) {
	return r.List(ctx, ListParams{Filters: map[string]string{"reference": reference}})
}
