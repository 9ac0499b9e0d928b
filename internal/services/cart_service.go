// internal/services/cart_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greeniecart/greeniecart-backend/internal/models"
	"github.com/greeniecart/greeniecart-backend/internal/store"
	"github.com/greeniecart/greeniecart-backend/internal/utils"
)

type CartService struct {
	store store.Store
}

type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"omitempty,min=1"`
}

// CartView is a buyer's cart with its running subtotal.
type CartView struct {
	Items    []models.CartItem `json:"items"`
	Subtotal decimal.Decimal   `json:"subtotal"`
}

func NewCartService(st store.Store) *CartService {
	return &CartService{store: st}
}

func (s *CartService) ListItems(buyerID uuid.UUID) (*CartView, error) {
	items, err := s.store.Carts().List(buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart: %w", err)
	}
	if items == nil {
		items = []models.CartItem{}
	}

	subtotal := decimal.Zero
	for i := range items {
		subtotal = subtotal.Add(items[i].Subtotal())
	}

	return &CartView{Items: items, Subtotal: subtotal}, nil
}

// AddItem puts a product into the buyer's cart with a denormalized snapshot
// of its name, price and image. Sellers cannot buy their own products, a
// product appears at most once per cart, and sold-out products are rejected.
func (s *CartService) AddItem(buyerID uuid.UUID, req *AddCartItemRequest) (*models.CartItem, error) {
	if buyerID == uuid.Nil {
		return nil, models.ErrUnauthenticated
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrValidationFailed, err)
	}

	product, err := s.store.Products().Get(req.ProductID)
	if err != nil {
		return nil, err
	}

	if product.OwnedBy(buyerID) {
		return nil, models.ErrOwnProduct
	}
	if !product.InStock() {
		return nil, models.ErrOutOfStock
	}

	_, err = s.store.Carts().FindByProduct(buyerID, req.ProductID)
	if err == nil {
		return nil, models.ErrDuplicateItem
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to check cart: %w", err)
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	item := &models.CartItem{
		BuyerID:   buyerID,
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  quantity,
		ImageURL:  product.ImageURL,
	}

	if err := s.store.Carts().Create(item); err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	return item, nil
}

// SetQuantity changes how many units of a cart line the buyer wants. Values
// below one leave the line untouched and return it as-is.
func (s *CartService) SetQuantity(buyerID, itemID uuid.UUID, quantity int) (*models.CartItem, error) {
	item, err := s.store.Carts().Get(buyerID, itemID)
	if err != nil {
		return nil, err
	}

	if quantity < 1 {
		return item, nil
	}

	if err := s.store.Carts().UpdateQuantity(buyerID, itemID, quantity); err != nil {
		return nil, fmt.Errorf("failed to update quantity: %w", err)
	}

	item.Quantity = quantity
	return item, nil
}

// RemoveItem deletes a cart line. Removing a line that is already gone is a
// no-op; only a failed lookup is an error, so a delete is never issued blind.
func (s *CartService) RemoveItem(buyerID, itemID uuid.UUID) error {
	_, err := s.store.Carts().Get(buyerID, itemID)
	if errors.Is(err, models.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrRemovalFailed, err)
	}

	if err := s.store.Carts().Delete(buyerID, itemID); err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}
