package pickhero

import (
	"context"
	"strconv"
)

// Shipment is a warehouse-side shipment. Read only.
type Shipment struct {
	ID           int64  `json:"id"`
	OrderID      int64  `json:"order_id"`
	ExternalID   string `json:"external_id"`
	TrackingCode string `json:"tracking_code"`
	Carrier      string `json:"carrier"`
}

// ShipmentsResource provides read-only access to shipment data.
//
// Available filters: order_id, external_id, tracking_code.
type ShipmentsResource struct {
	client *Client
}

// List returns shipments matching the given parameters.
func (r *ShipmentsResource) List(ctx context.Context, params ListParams) ([]Shipment, error) {
	var env struct {
		Data []Shipment `json:"data"`
	}
	if err := r.client.get(ctx, "shipments", params.Values(), &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Get returns a single shipment by ID or external_id.
func (r *ShipmentsResource) Get(ctx context.Context, id string, idType IDType) (*Shipment, error) {
	var env struct {
		Data Shipment `json:"data"`
	}
	if err := r.client.get(ctx, "shipments/"+FormatID(id, idType), nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// FindByOrderID returns the shipments belonging to a warehouse order.
func (r *ShipmentsResource) FindByOrderID(ctx context.Context, orderID int64) ([]Shipment, error) {
	return r.List(ctx, ListParams{
		Filters: map[string]string{"order_id": strconv.FormatInt(orderID, 10)},
	})
}
