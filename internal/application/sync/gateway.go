package sync

import (
	"context"

	"github.com/pickhero/commerce-sync/internal/infrastructure/pickhero"
)

// The services in this package talk to the warehouse through narrow
// gateway interfaces instead of the full API client, so tests can swap
// in fakes per resource.

// OrderGateway is the slice of the warehouse API the orchestrator needs.
type OrderGateway interface {
	Create(ctx context.Context, payload pickhero.OrderPayload) (*pickhero.Order, error)
	Update(ctx context.Context, id string, idType pickhero.IDType, payload pickhero.OrderPayload) (*pickhero.Order, error)
	Process(ctx context.Context, id string, idType pickhero.IDType) error
	FindByExternalID(ctx context.Context, externalID string) ([]pickhero.Order, error)
}

// ProductGateway is the slice of the warehouse API the resolver and the
// product exporter need.
type ProductGateway interface {
	Create(ctx context.Context, payload pickhero.ProductPayload) (*pickhero.Product, error)
	Update(ctx context.Context, id string, idType pickhero.IDType, payload pickhero.ProductPayload) (*pickhero.Product, error)
	FindByExternalID(ctx context.Context, externalID string) (*pickhero.Product, error)
}

// CustomerGateway is the slice of the warehouse API the resolver needs.
type CustomerGateway interface {
	Create(ctx context.Context, payload pickhero.CustomerPayload) (*pickhero.Customer, error)
	FindByExternalID(ctx context.Context, externalID string) (*pickhero.Customer, error)
}

// StockGateway is the slice of the warehouse API the stock importer needs.
type StockGateway interface {
	List(ctx context.Context, params pickhero.ListParams) ([]pickhero.StockRecord, error)
	GetByProductCode(ctx context.Context, productCode string) ([]pickhero.StockRecord, error)
}

// WebhookGateway is the slice of the warehouse API the webhook service
// needs for registration management.
type WebhookGateway interface {
	Create(ctx context.Context, url, topic, secret string) (*pickhero.Webhook, error)
	Get(ctx context.Context, id int64) (*pickhero.Webhook, error)
	Delete(ctx context.Context, id int64) error
}

// The concrete API client satisfies every gateway.
var (
	_ OrderGateway    = (*pickhero.OrdersResource)(nil)
	_ ProductGateway  = (*pickhero.ProductsResource)(nil)
	_ CustomerGateway = (*pickhero.CustomersResource)(nil)
	_ StockGateway    = (*pickhero.StockResource)(nil)
	_ WebhookGateway  = (*pickhero.WebhooksResource)(nil)
)
