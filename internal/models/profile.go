// internal/models/profile.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ShippingAddress struct {
	BaseModel
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	FullName string    `json:"full_name" gorm:"size:255;not null"`
	Email    string    `json:"email" gorm:"size:255;not null"`
	Phone    string    `json:"phone" gorm:"size:20;not null"`
	Address  string    `json:"address" gorm:"size:255;not null"`
	City     string    `json:"city" gorm:"size:100;not null"`
	Country  string    `json:"country" gorm:"size:100;not null"`
	Zipcode  string    `json:"zipcode" gorm:"size:20;not null"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// Order is created once at checkout and never deleted through normal
// operation. The shipping fields are a value copy taken at checkout time;
// later edits to the address book do not touch historical orders.
type Order struct {
	BaseModel
	UserID         uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	TxRef          string         `json:"tx_ref" gorm:"uniqueIndex;size:12;not null"`
	DeliveryStatus DeliveryStatus `json:"delivery_status" gorm:"type:varchar(20);default:'PENDING'"`
	PaymentStatus  PaymentStatus  `json:"payment_status" gorm:"type:varchar(20);default:'PENDING'"`
	DateDelivered  *time.Time     `json:"date_delivered"`

	// Shipping snapshot
	FullName string `json:"full_name" gorm:"size:255;not null"`
	Email    string `json:"email" gorm:"size:255;not null"`
	Phone    string `json:"phone" gorm:"size:20;not null"`
	Address  string `json:"address" gorm:"size:255;not null"`
	City     string `json:"city" gorm:"size:100;not null"`
	Country  string `json:"country" gorm:"size:100;not null"`
	Zipcode  string `json:"zipcode" gorm:"size:20;not null"`

	// Computed at query time from the attached items, never stored.
	Subtotal decimal.Decimal `json:"subtotal" gorm:"-"`
	Total    decimal.Decimal `json:"total" gorm:"-"`

	// Relationships
	User       User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	OrderItems []OrderItem `json:"order_items,omitempty" gorm:"foreignKey:OrderID"`
}

// ComputeTotals fills Subtotal and Total from the loaded items. Total
// currently equals the subtotal; delivery and tax surcharges would be
// added here.
func (o *Order) ComputeTotals() {
	subtotal := decimal.Zero
	for i := range o.OrderItems {
		subtotal = subtotal.Add(o.OrderItems[i].LineTotal())
	}
	o.Subtotal = subtotal
	o.Total = subtotal
}

// OrderItem serves two phases of the same line item: OrderID is null while
// the item sits in the cart and is set exactly once at checkout, after
// which the row is immutable history. At most one pending row may exist
// per (user, product); a partial unique index backs that up.
type OrderItem struct {
	BaseModel
	UserID    uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID  `json:"product_id" gorm:"type:uuid;not null;index"`
	OrderID   *uuid.UUID `json:"order_id" gorm:"type:uuid;index"`
	Quantity  int        `json:"quantity" gorm:"not null"`

	// Relationships
	User    User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Order   *Order  `json:"-" gorm:"foreignKey:OrderID"`
}

func (i *OrderItem) Pending() bool {
	return i.OrderID == nil
}

// LineTotal is quantity x the product's current price. The product must
// be preloaded.
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.Product.PriceCurrent.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
