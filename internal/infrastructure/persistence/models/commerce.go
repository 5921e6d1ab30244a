package models

import (
	"time"

	"github.com/pickhero/commerce-sync/internal/domain/commerce"
	"github.com/shopspring/decimal"
)

// AddressModel stores an order address as prefixed columns on the order row.
type AddressModel struct {
	FirstName    string `gorm:"size:128"`
	LastName     string `gorm:"size:128"`
	FullName     string `gorm:"size:255"`
	Organization string `gorm:"size:255"`
	AddressLine1 string `gorm:"size:255"`
	AddressLine2 string `gorm:"size:255"`
	PostalCode   string `gorm:"size:32"`
	Locality     string `gorm:"size:128"`
	Region       string `gorm:"size:128"`
	CountryCode  string `gorm:"size:2"`
	Phone        string `gorm:"size:32"`
}

// isZero reports whether no address was stored.
func (a AddressModel) isZero() bool {
	return a == AddressModel{}
}

// ToDomain converts the model to a domain address, nil when unset.
func (a AddressModel) ToDomain() *commerce.Address {
	if a.isZero() {
		return nil
	}
	return &commerce.Address{
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		FullName:     a.FullName,
		Organization: a.Organization,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		PostalCode:   a.PostalCode,
		Locality:     a.Locality,
		Region:       a.Region,
		CountryCode:  a.CountryCode,
		Phone:        a.Phone,
	}
}

// AddressModelFromDomain converts a domain address to a model.
func AddressModelFromDomain(a *commerce.Address) AddressModel {
	if a == nil {
		return AddressModel{}
	}
	return AddressModel{
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		FullName:     a.FullName,
		Organization: a.Organization,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		PostalCode:   a.PostalCode,
		Locality:     a.Locality,
		Region:       a.Region,
		CountryCode:  a.CountryCode,
		Phone:        a.Phone,
	}
}

// LineItemModel is the persistence model for order lines.
type LineItemModel struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	OrderID     int64           `gorm:"index;not null"`
	VariantID   int64           `gorm:"not null"`
	SKU         string          `gorm:"size:64;not null"`
	Description string          `gorm:"size:255"`
	Qty         int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2)"`
	Note        string          `gorm:"type:text"`
}

// TableName specifies the table name
func (LineItemModel) TableName() string {
	return "order_line_items"
}

// OrderModel is the persistence model for local commerce orders.
type OrderModel struct {
	ID              int64        `gorm:"primaryKey;autoIncrement"`
	Number          string       `gorm:"size:64;uniqueIndex;not null"`
	Reference       string       `gorm:"size:64;index"`
	StatusHandle    string       `gorm:"size:64;index;not null"`
	Email           string       `gorm:"size:255"`
	Message         string       `gorm:"type:text"`
	CustomerID      int64        `gorm:"index"`
	ShippingAddress AddressModel `gorm:"embedded;embeddedPrefix:shipping_"`
	BillingAddress  AddressModel `gorm:"embedded;embeddedPrefix:billing_"`
	LineItems       []LineItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	DateOrdered     time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the table name
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the model to a domain entity
func (m *OrderModel) ToDomain() *commerce.Order {
	items := make([]commerce.LineItem, len(m.LineItems))
	for i, li := range m.LineItems {
		items[i] = commerce.LineItem{
			ID:          li.ID,
			VariantID:   li.VariantID,
			SKU:         li.SKU,
			Description: li.Description,
			Qty:         li.Qty,
			Price:       li.Price,
			Note:        li.Note,
		}
	}
	return &commerce.Order{
		ID:              m.ID,
		Number:          m.Number,
		Reference:       m.Reference,
		StatusHandle:    m.StatusHandle,
		Email:           m.Email,
		Message:         m.Message,
		CustomerID:      m.CustomerID,
		ShippingAddress: m.ShippingAddress.ToDomain(),
		BillingAddress:  m.BillingAddress.ToDomain(),
		LineItems:       items,
		DateOrdered:     m.DateOrdered,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// OrderModelFromDomain converts a domain entity to a model
func OrderModelFromDomain(o *commerce.Order) *OrderModel {
	items := make([]LineItemModel, len(o.LineItems))
	for i, li := range o.LineItems {
		items[i] = LineItemModel{
			ID:          li.ID,
			OrderID:     o.ID,
			VariantID:   li.VariantID,
			SKU:         li.SKU,
			Description: li.Description,
			Qty:         li.Qty,
			Price:       li.Price,
			Note:        li.Note,
		}
	}
	return &OrderModel{
		ID:              o.ID,
		Number:          o.Number,
		Reference:       o.Reference,
		StatusHandle:    o.StatusHandle,
		Email:           o.Email,
		Message:         o.Message,
		CustomerID:      o.CustomerID,
		ShippingAddress: AddressModelFromDomain(o.ShippingAddress),
		BillingAddress:  AddressModelFromDomain(o.BillingAddress),
		LineItems:       items,
		DateOrdered:     o.DateOrdered,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// ProductModel is the persistence model for catalog products.
type ProductModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Title       string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`
	ImageURL    string `gorm:"size:1024"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name
func (ProductModel) TableName() string {
	return "products"
}

// VariantModel is the persistence model for sellable variants.
type VariantModel struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	ProductID int64           `gorm:"index;not null"`
	SKU       string          `gorm:"size:64;uniqueIndex;not null"`
	Title     string          `gorm:"size:255"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2)"`
	Weight    float64
	Length    float64
	Width     float64
	Height    float64
	Stock     int           `gorm:"not null;default:0"`
	Product   *ProductModel `gorm:"foreignKey:ProductID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name
func (VariantModel) TableName() string {
	return "variants"
}

// ToDomain converts the model to a domain entity
func (m *VariantModel) ToDomain() *commerce.Variant {
	v := &commerce.Variant{
		ID:     m.ID,
		SKU:    m.SKU,
		Title:  m.Title,
		Price:  m.Price,
		Weight: m.Weight,
		Length: m.Length,
		Width:  m.Width,
		Height: m.Height,
		Stock:  m.Stock,
	}
	if m.Product != nil {
		v.Product = &commerce.Product{
			ID:          m.Product.ID,
			Title:       m.Product.Title,
			Description: m.Product.Description,
			ImageURL:    m.Product.ImageURL,
		}
	}
	return v
}
