package sync

import (
	"fmt"

	"github.com/pickhero/commerce-sync/internal/domain/commerce"
	"github.com/pickhero/commerce-sync/internal/infrastructure/pickhero"
)

// AddressKind tells an AddressHook which side of the order it is shaping.
type AddressKind string

// Address kinds passed to hooks.
const (
	AddressDelivery AddressKind = "delivery"
	AddressInvoice  AddressKind = "invoice"
)

// LineItemsHook lets collaborators replace or extend the line items of an
// order before submission, for example to inject packaging materials.
type LineItemsHook func(order *commerce.Order, items []commerce.LineItem) []commerce.LineItem

// AddressHook lets collaborators add or override address fields before
// the payload is sent.
type AddressHook func(order *commerce.Order, kind AddressKind, fields pickhero.AddressFields) pickhero.AddressFields

// Transformer maps local orders and addresses into warehouse payloads.
type Transformer struct {
	pushPrices bool
	orderURL   func(*commerce.Order) string
	lineItems  LineItemsHook
	address    AddressHook
}

// TransformerOption configures a Transformer.
type TransformerOption func(*Transformer)

// WithOrderURL sets the back-link builder for the external_url field.
func WithOrderURL(fn func(*commerce.Order) string) TransformerOption {
	return func(t *Transformer) { t.orderURL = fn }
}

// WithLineItemsHook installs a line-item modification hook.
func WithLineItemsHook(hook LineItemsHook) TransformerOption {
	return func(t *Transformer) { t.lineItems = hook }
}

// WithAddressHook installs an address modification hook.
func WithAddressHook(hook AddressHook) TransformerOption {
	return func(t *Transformer) { t.address = hook }
}

// NewTransformer creates a transformer. Prices are included in order rows
// only when pushPrices is set.
func NewTransformer(pushPrices bool, opts ...TransformerOption) *Transformer {
	t := &Transformer{pushPrices: pushPrices}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// CollectLineItems returns the order's line items after the modification
// hook has run.
func (t *Transformer) CollectLineItems(order *commerce.Order) []commerce.LineItem {
	items := order.LineItems
	if t.lineItems != nil {
		items = t.lineItems(order, items)
	}
	return items
}

// OrderPayload builds the create/update request body for an order.
// externalID must come from the order's sync record so resubmissions get
// a fresh identifier. productIDs maps local variant IDs to warehouse
// product IDs, resolved beforehand.
func (t *Transformer) OrderPayload(order *commerce.Order, externalID string, customerID int64, productIDs map[int64]int64) (pickhero.OrderPayload, error) {
	payload := pickhero.OrderPayload{
		ExternalID:      externalID,
		ExternalNumber:  order.ShortNumber(),
		Reference:       order.ShortNumber(),
		EmailAddress:    order.Email,
		CustomerRemarks: order.Message,
		CustomerID:      customerID,
	}

	if t.orderURL != nil {
		payload.ExternalURL = t.orderURL(order)
	}

	if order.ShippingAddress != nil {
		payload.Telephone = order.ShippingAddress.Phone
		payload.Delivery = t.AddressFields(order, AddressDelivery, *order.ShippingAddress)
	} else if order.BillingAddress != nil {
		payload.Telephone = order.BillingAddress.Phone
	}

	payload.Invoice = t.invoiceFields(order)

	rows, err := t.rows(order, productIDs)
	if err != nil {
		return pickhero.OrderPayload{}, err
	}
	payload.Rows = rows

	return payload, nil
}

// invoiceFields embeds the billing address only when it points somewhere
// other than the delivery address. Identical or absent billing collapses
// to a same_as_delivery marker so the warehouse prints one address block.
func (t *Transformer) invoiceFields(order *commerce.Order) pickhero.AddressFields {
	billing := order.BillingAddress
	shipping := order.ShippingAddress

	if billing == nil || (shipping != nil && billing.Equal(*shipping)) {
		return pickhero.AddressFields{"same_as_delivery": true}
	}
	return t.AddressFields(order, AddressInvoice, *billing)
}

// AddressFields produces a sparse address object, omitting empty fields,
// and runs the address hook when one is installed.
func (t *Transformer) AddressFields(order *commerce.Order, kind AddressKind, addr commerce.Address) pickhero.AddressFields {
	fields := pickhero.AddressFields{}

	setField := func(key, value string) {
		if value != "" {
			fields[key] = value
		}
	}

	setField("name", addr.PrimaryName())
	setField("contact_name", addr.ContactName())
	setField("address", addr.AddressLine1)
	setField("address2", addr.AddressLine2)
	setField("zipcode", addr.PostalCode)
	setField("city", addr.Locality)
	setField("region", addr.Region)
	setField("country", addr.CountryCode)

	if t.address != nil {
		fields = t.address(order, kind, fields)
	}
	return fields
}

func (t *Transformer) rows(order *commerce.Order, productIDs map[int64]int64) ([]pickhero.OrderRow, error) {
	items := t.CollectLineItems(order)
	rows := make([]pickhero.OrderRow, 0, len(items))
	for _, item := range items {
		productID, ok := productIDs[item.VariantID]
		if !ok {
			return nil, fmt.Errorf("no warehouse product resolved for variant %d (sku %q)", item.VariantID, item.SKU)
		}
		row := pickhero.OrderRow{
			ProductID: productID,
			Quantity:  item.Qty,
			Remarks:   item.Note,
		}
		if t.pushPrices {
			price := item.Price
			row.Price = &price
		}
		rows = append(rows, row)
	}
	return rows, nil
}
