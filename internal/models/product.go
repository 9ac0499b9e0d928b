// internal/models/product.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	SellerID    uuid.UUID       `json:"seller_id" gorm:"type:uuid;not null;index"`
	Name        string          `json:"name" gorm:"size:255;not null"`
	Description string          `json:"description" gorm:"type:text"`
	Category    string          `json:"category" gorm:"size:100;index"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Stock       int             `json:"stock" gorm:"not null;default:0;check:stock >= 0"`
	ImageURL    string          `json:"image" gorm:"size:512"`

	// Relationships
	Seller User `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
}

func (p *Product) InStock() bool {
	return p.Stock > 0
}

func (p *Product) OwnedBy(userID uuid.UUID) bool {
	return p.SellerID == userID
}
