// internal/services/fulfillment_service.go
package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/greeniecart/greeniecart-backend/internal/models"
	"github.com/greeniecart/greeniecart-backend/internal/store"
)

// FulfillmentService is the seller-side view of the order ledger: the
// received-orders list fanned out per line item, and the rollup stats card.
type FulfillmentService struct {
	store      store.Store
	aggregator *Aggregator
}

func NewFulfillmentService(st store.Store, aggregator *Aggregator) *FulfillmentService {
	return &FulfillmentService{
		store:      st,
		aggregator: aggregator,
	}
}

// ListReceived returns one entry per line item of the seller's products
// across all buyers' orders, newest order first. Sellers with no sales get
// an empty list.
func (s *FulfillmentService) ListReceived(sellerID uuid.UUID) ([]models.SellerOrderItem, error) {
	items, err := s.store.Orders().ListItemsBySeller(sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list received orders: %w", err)
	}
	if items == nil {
		items = []models.SellerOrderItem{}
	}
	return items, nil
}

// Stats returns the seller's dashboard rollup.
func (s *FulfillmentService) Stats(sellerID uuid.UUID) (*SellerStats, error) {
	return s.aggregator.Stats(sellerID)
}
