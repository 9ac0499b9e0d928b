// internal/models/cart.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is one product reference in a buyer's cart. Name, price and image
// are denormalized snapshots taken when the item was added; a product appears
// at most once per buyer.
type CartItem struct {
	BaseModel
	BuyerID   uuid.UUID       `json:"buyer_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_buyer_product"`
	ProductID uuid.UUID       `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_buyer_product"`
	Name      string          `json:"name" gorm:"size:255;not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Quantity  int             `json:"quantity" gorm:"not null;default:1"`
	ImageURL  string          `json:"image" gorm:"size:512"`
}

func (c *CartItem) Subtotal() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}
