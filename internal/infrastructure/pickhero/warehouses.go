package pickhero

import "context"

// Warehouse is a physical warehouse in the WMS.
type Warehouse struct {
	ID         int64  `json:"id"`
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
}

// WarehousesResource provides access to warehouse data.
//
// Available filters: external_id, name, trashed.
type WarehousesResource struct {
	client *Client
}

// List returns warehouses matching the given parameters.
func (r *WarehousesResource) List(ctx context.Context, params ListParams) ([]Warehouse, error) {
	var env struct {
		Data []Warehouse `json:"data"`
	}
	if err := r.client.get(ctx, "warehouses", params.Values(), &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Get returns a single warehouse by ID or external_id.
func (r *WarehousesResource) Get(ctx context.Context, id string, idType IDType) (*Warehouse, error) {
	var env struct {
		Data Warehouse `json:"data"`
	}
	if err := r.client.get(ctx, "warehouses/"+FormatID(id, idType), nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// AllIDs returns the IDs of all warehouses.
func (r *WarehousesResource) AllIDs(ctx context.Context) ([]int64, error) {
	warehouses, err := r.List(ctx, ListParams{Sort: "name"})
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(warehouses))
	for _, w := range warehouses {
		ids = append(ids, w.ID)
	}
	return ids, nil
}
