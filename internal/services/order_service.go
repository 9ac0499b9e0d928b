// internal/services/order_service.go
package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/greeniecart/greeniecart-backend/internal/models"
	"github.com/greeniecart/greeniecart-backend/internal/store"
)

// OrderService covers the order ledger after checkout: the buyer's history
// and the seller-driven forward-only status transitions.
type OrderService struct {
	store  store.Store
	events *Aggregator
	now    func() time.Time
}

func NewOrderService(st store.Store, events *Aggregator) *OrderService {
	return &OrderService{
		store:  st,
		events: events,
		now:    time.Now,
	}
}

// ListOrders returns the buyer's orders, newest first.
func (s *OrderService) ListOrders(buyerID uuid.UUID) ([]models.Order, error) {
	orders, err := s.store.Orders().ListByBuyer(buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// GetOrder returns a single order. A buyer sees their own orders; a seller
// sees any order containing one of their line items.
func (s *OrderService) GetOrder(userID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.store.Orders().Get(orderID)
	if err != nil {
		return nil, err
	}

	if order.BuyerID != userID && !order.SoldBy(userID) {
		return nil, models.ErrForbidden
	}
	return order, nil
}

// MarkShipped moves an order to shipped, stamping the shipment time. Only a
// seller owning a line item of the order may ship it.
func (s *OrderService) MarkShipped(sellerID, orderID uuid.UUID) (*models.Order, error) {
	return s.transition(orderID, models.OrderStatusShipped, func(o *models.Order) bool {
		return o.SoldBy(sellerID)
	})
}

// MarkCompleted is the buyer confirming receipt of a shipped order. Orders
// that have not shipped cannot be completed, and sellers cannot complete on
// the buyer's behalf.
func (s *OrderService) MarkCompleted(buyerID, orderID uuid.UUID) (*models.Order, error) {
	return s.transition(orderID, models.OrderStatusCompleted, func(o *models.Order) bool {
		return o.BuyerID == buyerID
	})
}

func (s *OrderService) transition(orderID uuid.UUID, to models.OrderStatus, allowed func(*models.Order) bool) (*models.Order, error) {
	order, err := s.store.Orders().Get(orderID)
	if err != nil {
		return nil, err
	}

	if !allowed(order) {
		return nil, models.ErrForbidden
	}
	if !order.Status.CanTransition(to) {
		return nil, fmt.Errorf("%s to %s: %w", order.Status, to, models.ErrInvalidTransition)
	}

	from := order.Status
	at := s.now()
	if err := s.store.Orders().UpdateStatus(orderID, from, to, at); err != nil {
		return nil, err
	}

	order.Status = to
	switch to {
	case models.OrderStatusShipped:
		order.ShippedAt = &at
	case models.OrderStatusCompleted:
		order.CompletedAt = &at
	}

	if s.events != nil {
		s.events.Publish(OrderEvent{
			Type:  OrderEventStatusChanged,
			Order: *order,
			From:  from,
			To:    to,
			At:    at,
		})
	}

	return order, nil
}
