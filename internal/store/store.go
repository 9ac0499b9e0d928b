// internal/store/store.go

// Package store defines the narrow persistence surface of the cart, checkout
// and order lifecycle core. Services depend on these interfaces so the
// workflow can run against Postgres in production and against the in-memory
// implementation in tests.
package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/greeniecart/greeniecart-backend/internal/models"
)

type Store interface {
	Products() ProductStore
	Carts() CartStore
	Orders() OrderStore

	// Transact runs fn against a transactional view of the store. All writes
	// made inside fn are applied atomically; any error rolls them back.
	Transact(fn func(Store) error) error
}

type ProductStore interface {
	// Get returns the product or models.ErrNotFound.
	Get(id uuid.UUID) (*models.Product, error)

	// DecrementStock atomically subtracts qty from the product's stock,
	// guarded so stock never goes negative. Returns
	// models.ErrInsufficientStock when the guard fails and
	// models.ErrNotFound when the product is gone.
	DecrementStock(id uuid.UUID, qty int) error
}

type CartStore interface {
	List(buyerID uuid.UUID) ([]models.CartItem, error)
	Get(buyerID, itemID uuid.UUID) (*models.CartItem, error)
	// FindByProduct returns the buyer's entry for the product, or
	// models.ErrNotFound when the product is not in the cart.
	FindByProduct(buyerID, productID uuid.UUID) (*models.CartItem, error)
	Create(item *models.CartItem) error
	UpdateQuantity(buyerID, itemID uuid.UUID, qty int) error
	Delete(buyerID, itemID uuid.UUID) error
	DeleteBatch(buyerID uuid.UUID, itemIDs []uuid.UUID) error
}

type OrderStore interface {
	Create(order *models.Order) error
	// Get returns the order with its line items, or models.ErrNotFound.
	Get(orderID uuid.UUID) (*models.Order, error)
	// ListByBuyer returns the buyer's orders newest first.
	ListByBuyer(buyerID uuid.UUID) ([]models.Order, error)

	// UpdateStatus conditionally moves an order from one status to another,
	// stamping the transition timestamp. Returns models.ErrUpdateFailed when
	// the order is not currently in the from status (lost race or stale
	// read).
	UpdateStatus(orderID uuid.UUID, from, to models.OrderStatus, at time.Time) error

	// ListItemsBySeller produces the seller fan-out: one row per line item
	// across every buyer's orders referencing the seller's products, newest
	// order first.
	ListItemsBySeller(sellerID uuid.UUID) ([]models.SellerOrderItem, error)
}
