// internal/models/order.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryDetails is a value object embedded into an order at creation time.
// All fields except Notes are mandatory for checkout.
type DeliveryDetails struct {
	FullName   string `json:"full_name" gorm:"size:255"`
	Phone      string `json:"phone" gorm:"size:20"`
	Address    string `json:"address" gorm:"size:512"`
	City       string `json:"city" gorm:"size:100"`
	PostalCode string `json:"postal_code" gorm:"size:20"`
	Notes      string `json:"notes" gorm:"type:text"`
}

// PaymentSummary is what survives of the payment selection: the wallet number
// for gcash, last-4 and holder name for card, nothing for cash on delivery.
// Full card data is validated at checkout and never stored.
type PaymentSummary struct {
	GcashNumber string `json:"gcash_number,omitempty" gorm:"size:11"`
	CardLast4   string `json:"card_last4,omitempty" gorm:"size:4"`
	CardName    string `json:"card_name,omitempty" gorm:"size:255"`
}

// Order is an immutable snapshot of a completed checkout. Only the status
// field and its companion timestamps change after creation.
type Order struct {
	BaseModel
	BuyerID         uuid.UUID       `json:"buyer_id" gorm:"type:uuid;not null;index"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
	Total           decimal.Decimal `json:"total" gorm:"type:decimal(12,2);not null"`
	DeliveryDetails DeliveryDetails `json:"delivery_details" gorm:"embedded;embeddedPrefix:delivery_"`
	PaymentMethod   PaymentMethod   `json:"payment_method" gorm:"type:varchar(10);not null"`
	PaymentDetails  PaymentSummary  `json:"payment_details" gorm:"embedded;embeddedPrefix:payment_"`
	Status          OrderStatus     `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	ShippedAt       *time.Time      `json:"shipped_at"`
	CompletedAt     *time.Time      `json:"completed_at"`
}

// OrderItem is one line of an order's item snapshot. SellerID is denormalized
// from the product at checkout so the seller fan-out is an indexed join
// instead of a scan over every buyer's orders.
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID       `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `json:"product_id" gorm:"type:uuid;not null;index"`
	SellerID  uuid.UUID       `json:"seller_id" gorm:"type:uuid;not null;index"`
	Name      string          `json:"name" gorm:"size:255;not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	ImageURL  string          `json:"image" gorm:"size:512"`
}

func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SoldBy reports whether any line item of the order belongs to the seller.
func (o *Order) SoldBy(sellerID uuid.UUID) bool {
	for _, item := range o.Items {
		if item.SellerID == sellerID {
			return true
		}
	}
	return false
}

// SellerOrderItem is the derived, read-time fan-out row shown to a seller:
// one entry per matching line item across all buyers' orders. It is never
// persisted.
type SellerOrderItem struct {
	OrderID       uuid.UUID       `json:"order_id"`
	BuyerID       uuid.UUID       `json:"buyer_id"`
	BuyerName     string          `json:"buyer_name"`
	BuyerPhone    string          `json:"buyer_phone"`
	BuyerAddress  string          `json:"buyer_address"`
	BuyerNotes    string          `json:"buyer_notes"`
	ProductID     uuid.UUID       `json:"product_id"`
	ProductName   string          `json:"product_name"`
	ProductImage  string          `json:"product_image"`
	Quantity      int             `json:"quantity"`
	LineTotal     decimal.Decimal `json:"line_total"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Status        OrderStatus     `json:"status"`
	OrderedAt     time.Time       `json:"ordered_at"`
}
