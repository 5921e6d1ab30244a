package commerce

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Domain errors for the local order store
var (
	ErrOrderNotFound   = errors.New("commerce: order not found")
	ErrVariantNotFound = errors.New("commerce: variant not found")
)

// ---------------------------------------------------------------------------
// Entities
// ---------------------------------------------------------------------------

// Address is a postal address attached to an order.
type Address struct {
	FirstName    string
	LastName     string
	FullName     string
	Organization string
	AddressLine1 string
	AddressLine2 string
	PostalCode   string
	Locality     string
	Region       string
	CountryCode  string
	Phone        string
}

// Equal reports whether two addresses point at the same physical location.
// Only the delivery-relevant fields participate; names and phone numbers do
// not. Comparison is exact and case sensitive.
func (a Address) Equal(b Address) bool {
	return a.AddressLine1 == b.AddressLine1 &&
		a.AddressLine2 == b.AddressLine2 &&
		a.PostalCode == b.PostalCode &&
		a.Locality == b.Locality &&
		a.CountryCode == b.CountryCode
}

// PrimaryName resolves the name to present on shipping documents.
// Organization beats person name; a precomposed full name beats the
// first/last combination.
func (a Address) PrimaryName() string {
	if a.Organization != "" {
		return a.Organization
	}
	if a.FullName != "" {
		return a.FullName
	}
	name := strings.TrimSpace(a.FirstName + " " + a.LastName)
	return name
}

// ContactName resolves the person behind an organization address. Empty
// when the address carries no organization, since the primary name already
// identifies the person in that case.
func (a Address) ContactName() string {
	if a.Organization == "" {
		return ""
	}
	if a.FullName != "" {
		return a.FullName
	}
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// LineItem is a purchased quantity of one variant.
type LineItem struct {
	ID          int64
	VariantID   int64
	SKU         string
	Description string
	Qty         int
	Price       decimal.Decimal
	Note        string
}

// Order is a local commerce order.
type Order struct {
	ID              int64
	Number          string
	Reference       string
	StatusHandle    string
	Email           string
	Message         string
	CustomerID      int64
	ShippingAddress *Address
	BillingAddress  *Address
	LineItems       []LineItem
	DateOrdered     time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ShortNumber returns the human-facing order reference, falling back to
// the full number when no short reference was assigned.
func (o *Order) ShortNumber() string {
	if o.Reference != "" {
		return o.Reference
	}
	return o.Number
}

// Product groups variants under a shared title and media.
type Product struct {
	ID          int64
	Title       string
	Description string
	ImageURL    string
}

// Variant is a sellable unit of a product.
type Variant struct {
	ID      int64
	SKU     string
	Title   string
	Price   decimal.Decimal
	Weight  float64
	Length  float64
	Width   float64
	Height  float64
	Stock   int
	Product *Product
}

// DisplayName composes the name pushed to external systems.
func (v *Variant) DisplayName() string {
	if v.Product == nil || v.Product.Title == "" {
		return v.Title
	}
	if v.Title == "" {
		return v.Product.Title
	}
	return v.Product.Title + " - " + v.Title
}

// ---------------------------------------------------------------------------
// Stores
// ---------------------------------------------------------------------------

// OrderStore is the boundary to the host order system.
type OrderStore interface {
	// FindByID returns the order, or ErrOrderNotFound.
	FindByID(ctx context.Context, id int64) (*Order, error)

	// FindByReference returns the order with the given reference, or nil
	// when none matches. Absence is not an error.
	FindByReference(ctx context.Context, reference string) (*Order, error)

	// FindByNumber returns the order with the given number, or nil when
	// none matches.
	FindByNumber(ctx context.Context, number string) (*Order, error)

	// Save persists the order and notifies post-save subscribers.
	Save(ctx context.Context, order *Order) error

	// UpdateStatus changes the order's status handle and notifies
	// post-save subscribers. Updating to the current status is a no-op.
	UpdateStatus(ctx context.Context, orderID int64, statusHandle string) error
}

// VariantStore is the boundary to the host product catalog.
type VariantStore interface {
	// FindByID returns the variant, or ErrVariantNotFound.
	FindByID(ctx context.Context, id int64) (*Variant, error)

	// FindBySKU returns the variant with the given SKU, or nil when none
	// matches.
	FindBySKU(ctx context.Context, sku string) (*Variant, error)

	// List returns variants ordered by ID for batch processing.
	List(ctx context.Context, limit, offset int) ([]*Variant, error)

	// UpdateStock sets the absolute stock level of a variant.
	UpdateStock(ctx context.Context, variantID int64, qty int) error
}
