package sync

import (
	"context"
	"sort"
	"strconv"

	"github.com/pickhero/commerce-sync/internal/domain/commerce"
	syncdomain "github.com/pickhero/commerce-sync/internal/domain/sync"
	"github.com/pickhero/commerce-sync/internal/infrastructure/pickhero"
)

// ---------------------------------------------------------------------------
// Warehouse gateway fakes
// ---------------------------------------------------------------------------

type fakeOrderGateway struct {
	createCalls  int
	updateCalls  int
	processCalls int

	createdPayloads []pickhero.OrderPayload
	updatedPayloads []pickhero.OrderPayload
	updatedIDs      []string
	updatedIDTypes  []pickhero.IDType

	createErr  error
	processErr error

	nextID     int64
	nextNumber string
	statusPage string
}

func (g *fakeOrderGateway) Create(_ context.Context, payload pickhero.OrderPayload) (*pickhero.Order, error) {
	g.createCalls++
	g.createdPayloads = append(g.createdPayloads, payload)
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.nextID++
	return &pickhero.Order{
		ID:               9000 + g.nextID,
		ExternalID:       payload.ExternalID,
		Number:           g.nextNumber,
		Status:           "concept",
		PublicStatusPage: g.statusPage,
	}, nil
}

func (g *fakeOrderGateway) Update(_ context.Context, id string, idType pickhero.IDType, payload pickhero.OrderPayload) (*pickhero.Order, error) {
	g.updateCalls++
	g.updatedPayloads = append(g.updatedPayloads, payload)
	g.updatedIDs = append(g.updatedIDs, id)
	g.updatedIDTypes = append(g.updatedIDTypes, idType)
	return &pickhero.Order{
		ID:         9000 + g.nextID,
		ExternalID: payload.ExternalID,
		Number:     g.nextNumber,
	}, nil
}

func (g *fakeOrderGateway) Process(_ context.Context, _ string, _ pickhero.IDType) error {
	g.processCalls++
	return g.processErr
}

func (g *fakeOrderGateway) FindByExternalID(_ context.Context, _ string) ([]pickhero.Order, error) {
	return nil, nil
}

type fakeProductGateway struct {
	byExternalID map[string]*pickhero.Product

	created []pickhero.ProductPayload
	updated map[string]pickhero.ProductPayload

	createErr error
	nextID    int64
}

func newFakeProductGateway() *fakeProductGateway {
	return &fakeProductGateway{
		byExternalID: make(map[string]*pickhero.Product),
		updated:      make(map[string]pickhero.ProductPayload),
		nextID:       500,
	}
}

func (g *fakeProductGateway) Create(_ context.Context, payload pickhero.ProductPayload) (*pickhero.Product, error) {
	g.created = append(g.created, payload)
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.nextID++
	product := &pickhero.Product{ID: g.nextID}
	if ext, ok := payload["external_id"].(string); ok {
		product.ExternalID = ext
		g.byExternalID[ext] = product
	}
	if code, ok := payload["product_code"].(string); ok {
		product.ProductCode = code
	}
	return product, nil
}

func (g *fakeProductGateway) Update(_ context.Context, id string, _ pickhero.IDType, payload pickhero.ProductPayload) (*pickhero.Product, error) {
	g.updated[id] = payload
	parsed, _ := strconv.ParseInt(id, 10, 64)
	return &pickhero.Product{ID: parsed}, nil
}

func (g *fakeProductGateway) FindByExternalID(_ context.Context, externalID string) (*pickhero.Product, error) {
	return g.byExternalID[externalID], nil
}

type fakeCustomerGateway struct {
	byExternalID map[string]*pickhero.Customer
	created      []pickhero.CustomerPayload
	nextID       int64
}

func newFakeCustomerGateway() *fakeCustomerGateway {
	return &fakeCustomerGateway{
		byExternalID: make(map[string]*pickhero.Customer),
		nextID:       700,
	}
}

func (g *fakeCustomerGateway) Create(_ context.Context, payload pickhero.CustomerPayload) (*pickhero.Customer, error) {
	g.created = append(g.created, payload)
	g.nextID++
	customer := &pickhero.Customer{ID: g.nextID, ExternalID: payload["external_id"]}
	g.byExternalID[customer.ExternalID] = customer
	return customer, nil
}

func (g *fakeCustomerGateway) FindByExternalID(_ context.Context, externalID string) (*pickhero.Customer, error) {
	return g.byExternalID[externalID], nil
}

type fakeStockGateway struct {
	records []pickhero.StockRecord
}

func (g *fakeStockGateway) List(_ context.Context, _ pickhero.ListParams) ([]pickhero.StockRecord, error) {
	return g.records, nil
}

func (g *fakeStockGateway) GetByProductCode(_ context.Context, code string) ([]pickhero.StockRecord, error) {
	var matched []pickhero.StockRecord
	for _, rec := range g.records {
		if rec.Product != nil && rec.Product.ProductCode == code {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

type fakeWebhookGateway struct {
	hooks       map[int64]*pickhero.Webhook
	deleted     []int64
	lastSecret  string
	nextID      int64
	createErr   error
}

func newFakeWebhookGateway() *fakeWebhookGateway {
	return &fakeWebhookGateway{hooks: make(map[int64]*pickhero.Webhook), nextID: 80}
}

func (g *fakeWebhookGateway) Create(_ context.Context, url, topic, secret string) (*pickhero.Webhook, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.nextID++
	g.lastSecret = secret
	hook := &pickhero.Webhook{ID: g.nextID, URL: url, Topic: topic, IsActive: true}
	g.hooks[hook.ID] = hook
	return hook, nil
}

func (g *fakeWebhookGateway) Get(_ context.Context, id int64) (*pickhero.Webhook, error) {
	hook, ok := g.hooks[id]
	if !ok {
		return nil, &pickhero.APIError{StatusCode: 404, Message: "webhook not found"}
	}
	return hook, nil
}

func (g *fakeWebhookGateway) Delete(_ context.Context, id int64) error {
	g.deleted = append(g.deleted, id)
	if _, ok := g.hooks[id]; !ok {
		return &pickhero.APIError{StatusCode: 404, Message: "webhook not found"}
	}
	delete(g.hooks, id)
	return nil
}

// ---------------------------------------------------------------------------
// Local store fakes
// ---------------------------------------------------------------------------

type fakeOrderStore struct {
	orders map[int64]*commerce.Order

	statusUpdates  []string
	onUpdateStatus func(orderID int64, handle string)
}

func newFakeOrderStore(orders ...*commerce.Order) *fakeOrderStore {
	store := &fakeOrderStore{orders: make(map[int64]*commerce.Order)}
	for _, o := range orders {
		store.orders[o.ID] = o
	}
	return store
}

func (s *fakeOrderStore) FindByID(_ context.Context, id int64) (*commerce.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, commerce.ErrOrderNotFound
	}
	return order, nil
}

func (s *fakeOrderStore) FindByReference(_ context.Context, reference string) (*commerce.Order, error) {
	for _, o := range s.orders {
		if o.Reference == reference {
			return o, nil
		}
	}
	return nil, nil
}

func (s *fakeOrderStore) FindByNumber(_ context.Context, number string) (*commerce.Order, error) {
	for _, o := range s.orders {
		if o.Number == number {
			return o, nil
		}
	}
	return nil, nil
}

func (s *fakeOrderStore) Save(_ context.Context, order *commerce.Order) error {
	s.orders[order.ID] = order
	return nil
}

func (s *fakeOrderStore) UpdateStatus(_ context.Context, orderID int64, handle string) error {
	order, ok := s.orders[orderID]
	if !ok {
		return commerce.ErrOrderNotFound
	}
	if order.StatusHandle == handle {
		return nil
	}
	order.StatusHandle = handle
	s.statusUpdates = append(s.statusUpdates, handle)
	if s.onUpdateStatus != nil {
		s.onUpdateStatus(orderID, handle)
	}
	return nil
}

type fakeVariantStore struct {
	byID map[int64]*commerce.Variant

	stockUpdates map[int64]int
}

func newFakeVariantStore(variants ...*commerce.Variant) *fakeVariantStore {
	store := &fakeVariantStore{
		byID:         make(map[int64]*commerce.Variant),
		stockUpdates: make(map[int64]int),
	}
	for _, v := range variants {
		store.byID[v.ID] = v
	}
	return store
}

func (s *fakeVariantStore) FindByID(_ context.Context, id int64) (*commerce.Variant, error) {
	variant, ok := s.byID[id]
	if !ok {
		return nil, commerce.ErrVariantNotFound
	}
	return variant, nil
}

func (s *fakeVariantStore) FindBySKU(_ context.Context, sku string) (*commerce.Variant, error) {
	for _, v := range s.byID {
		if v.SKU == sku {
			return v, nil
		}
	}
	return nil, nil
}

func (s *fakeVariantStore) List(_ context.Context, limit, offset int) ([]*commerce.Variant, error) {
	ids := make([]int64, 0, len(s.byID))
	for id := range s.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var page []*commerce.Variant
	for i := offset; i < len(ids) && len(page) < limit; i++ {
		page = append(page, s.byID[ids[i]])
	}
	return page, nil
}

func (s *fakeVariantStore) UpdateStock(_ context.Context, variantID int64, qty int) error {
	variant, ok := s.byID[variantID]
	if !ok {
		return commerce.ErrVariantNotFound
	}
	variant.Stock = qty
	s.stockUpdates[variantID] = qty
	return nil
}

// ---------------------------------------------------------------------------
// Repository fakes
// ---------------------------------------------------------------------------

type fakeSyncRepo struct {
	records map[int64]*syncdomain.OrderSyncStatus
	saves   int
}

func newFakeSyncRepo() *fakeSyncRepo {
	return &fakeSyncRepo{records: make(map[int64]*syncdomain.OrderSyncStatus)}
}

func (r *fakeSyncRepo) FindByOrderID(_ context.Context, orderID int64) (*syncdomain.OrderSyncStatus, error) {
	if status, ok := r.records[orderID]; ok {
		clone := *status
		return &clone, nil
	}
	return syncdomain.NewOrderSyncStatus(orderID), nil
}

func (r *fakeSyncRepo) Save(_ context.Context, status *syncdomain.OrderSyncStatus) error {
	r.saves++
	clone := *status
	r.records[status.OrderID] = &clone
	return nil
}

func (r *fakeSyncRepo) DeleteByOrderID(_ context.Context, orderID int64) error {
	delete(r.records, orderID)
	return nil
}

type fakeRegRepo struct {
	reg *syncdomain.WebhookRegistration
}

func (r *fakeRegRepo) FindByType(_ context.Context, topic syncdomain.WebhookTopic) (*syncdomain.WebhookRegistration, error) {
	if r.reg == nil || r.reg.Type != topic {
		return nil, nil
	}
	return r.reg, nil
}

func (r *fakeRegRepo) Save(_ context.Context, reg *syncdomain.WebhookRegistration) error {
	r.reg = reg
	return nil
}

func (r *fakeRegRepo) DeleteByType(_ context.Context, topic syncdomain.WebhookTopic) error {
	if r.reg != nil && r.reg.Type == topic {
		r.reg = nil
	}
	return nil
}

// Interface conformance for the fakes.
var (
	_ OrderGateway                            = (*fakeOrderGateway)(nil)
	_ ProductGateway                          = (*fakeProductGateway)(nil)
	_ CustomerGateway                         = (*fakeCustomerGateway)(nil)
	_ StockGateway                            = (*fakeStockGateway)(nil)
	_ WebhookGateway                          = (*fakeWebhookGateway)(nil)
	_ commerce.OrderStore                     = (*fakeOrderStore)(nil)
	_ commerce.VariantStore                   = (*fakeVariantStore)(nil)
	_ syncdomain.OrderSyncRepository          = (*fakeSyncRepo)(nil)
	_ syncdomain.WebhookRegistrationRepository = (*fakeRegRepo)(nil)
)
