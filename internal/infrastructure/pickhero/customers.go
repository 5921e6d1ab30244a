package pickhero

import "context"

// Customer is a warehouse-side customer.
type Customer struct {
	ID         int64  `json:"id"`
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
}

// CustomerPayload is the request body for customer create and update
// calls. Only non-empty fields are included.
type CustomerPayload map[string]string

// CustomersResource handles customer CRUD.
//
// Available filters: company_id, external_id, name, email, telephone.
type CustomersResource struct {
	client *Client
}

// List returns customers matching the given parameters.
func (r *CustomersResource) List(ctx context.Context, params ListParams) ([]Customer, error) {
	var env struct {
		Data []Customer `json:"data"`
	}
	if err := r.client.get(ctx, "customers", params.Values(), &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Get returns a single customer by ID or external_id.
func (r *CustomersResource) Get(ctx context.Context, id string, idType IDType) (*Customer, error) {
	var env struct {
		Data Customer `json:"data"`
	}
	if err := r.client.get(ctx, "customers/"+FormatID(id, idType), nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Create creates a new customer.
func (r *CustomersResource) Create(ctx context.Context, payload CustomerPayload) (*Customer, error) {
	var env struct {
		Data Customer `json:"data"`
	}
	if err := r.client.post(ctx, "customers", payload, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Update modifies an existing customer.
func (r *CustomersResource) Update(ctx context.Context, id string, idType IDType, payload CustomerPayload) (*Customer, error) {
	var env struct {
		Data Customer `json:"data"`
	}
	if err := r.client.patch(ctx, "customers/"+FormatID(id, idType), payload, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Delete removes a customer.
func (r *CustomersResource) Delete(ctx context.Context, id string, idType IDType) error {
	return r.client.delete(ctx, "customers/"+FormatID(id, idType))
}

// FindByExternalID returns the customer with the given external
// identifier, or nil when none exists. Absence is not an error.
func (r *CustomersResource) FindByExternalID(ctx context.Context, externalID string) (*Customer, error) {
	customers, err := r.List(ctx, ListParams{Filters: map[string]string{"external_id": externalID}})
	if err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		return nil, nil
	}
	return &customers[0], nil
}

// FindByEmail returns the customer with the given email address, or nil
// when none exists.
func (r *CustomersResource) FindByEmail(ctx context.Context, email string) (*Customer, error) {
	customers, err := r.List(ctx, ListParams{Filters: map[string]string{"email": email}})
	if err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		return nil, nil
	}
	return &customers[0], nil
}
