// internal/store/memory.go
package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/greeniecart/greeniecart-backend/internal/models"
)

// MemoryStore is an in-memory Store implementation with the same semantics
// as the Postgres one: guarded stock decrements, conditional status updates
// and all-or-nothing Transact. Used by service tests.
type MemoryStore struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	products map[uuid.UUID]models.Product
	carts    map[uuid.UUID]models.CartItem
	orders   map[uuid.UUID]models.Order

	now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: make(map[uuid.UUID]models.Product),
		carts:    make(map[uuid.UUID]models.CartItem),
		orders:   make(map[uuid.UUID]models.Order),
		now:      time.Now,
	}
}

func (s *MemoryStore) Products() ProductStore { return &memProducts{s: s} }
func (s *MemoryStore) Carts() CartStore       { return &memCarts{s: s} }
func (s *MemoryStore) Orders() OrderStore     { return &memOrders{s: s} }

// Transact serializes transactions and restores a snapshot of the maps when
// fn fails, so partial writes never become visible.
func (s *MemoryStore) Transact(fn func(Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	backup := s.snapshot()
	if err := fn(s); err != nil {
		s.restore(backup)
		return err
	}
	return nil
}

type memSnapshot struct {
	products map[uuid.UUID]models.Product
	carts    map[uuid.UUID]models.CartItem
	orders   map[uuid.UUID]models.Order
}

func (s *MemoryStore) snapshot() memSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := memSnapshot{
		products: make(map[uuid.UUID]models.Product, len(s.products)),
		carts:    make(map[uuid.UUID]models.CartItem, len(s.carts)),
		orders:   make(map[uuid.UUID]models.Order, len(s.orders)),
	}
	for id, p := range s.products {
		snap.products[id] = p
	}
	for id, c := range s.carts {
		snap.carts[id] = c
	}
	for id, o := range s.orders {
		o.Items = append([]models.OrderItem(nil), o.Items...)
		snap.orders[id] = o
	}
	return snap
}

func (s *MemoryStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = snap.products
	s.carts = snap.carts
	s.orders = snap.orders
}

// SeedProduct inserts a product, assigning an ID if missing. Test helper.
func (s *MemoryStore) SeedProduct(p models.Product) models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
	}
	s.products[p.ID] = p
	return p
}

// SeedCartItem inserts a cart row directly. Test helper.
func (s *MemoryStore) SeedCartItem(c models.CartItem) models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now()
	}
	s.carts[c.ID] = c
	return c
}

// SeedOrder inserts an order directly. Test helper.
func (s *MemoryStore) SeedOrder(o models.Order) models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = s.now()
	}
	for i := range o.Items {
		if o.Items[i].ID == uuid.Nil {
			o.Items[i].ID = uuid.New()
		}
		o.Items[i].OrderID = o.ID
	}
	s.orders[o.ID] = o
	return o
}

// SetClock overrides the timestamp source. Test helper.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Products

type memProducts struct {
	s *MemoryStore
}

func (p *memProducts) Get(id uuid.UUID) (*models.Product, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	product, ok := p.s.products[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &product, nil
}

func (p *memProducts) DecrementStock(id uuid.UUID, qty int) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	product, ok := p.s.products[id]
	if !ok {
		return models.ErrNotFound
	}
	if product.Stock < qty {
		return models.ErrInsufficientStock
	}
	product.Stock -= qty
	product.UpdatedAt = p.s.now()
	p.s.products[id] = product
	return nil
}

// Carts

type memCarts struct {
	s *MemoryStore
}

func (c *memCarts) List(buyerID uuid.UUID) ([]models.CartItem, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	var items []models.CartItem
	for _, item := range c.s.carts {
		if item.BuyerID == buyerID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (c *memCarts) Get(buyerID, itemID uuid.UUID) (*models.CartItem, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	item, ok := c.s.carts[itemID]
	if !ok || item.BuyerID != buyerID {
		return nil, models.ErrNotFound
	}
	return &item, nil
}

func (c *memCarts) FindByProduct(buyerID, productID uuid.UUID) (*models.CartItem, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	for _, item := range c.s.carts {
		if item.BuyerID == buyerID && item.ProductID == productID {
			found := item
			return &found, nil
		}
	}
	return nil, models.ErrNotFound
}

func (c *memCarts) Create(item *models.CartItem) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.CreatedAt = c.s.now()
	item.UpdatedAt = item.CreatedAt
	c.s.carts[item.ID] = *item
	return nil
}

func (c *memCarts) UpdateQuantity(buyerID, itemID uuid.UUID, qty int) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	item, ok := c.s.carts[itemID]
	if !ok || item.BuyerID != buyerID {
		return models.ErrNotFound
	}
	item.Quantity = qty
	item.UpdatedAt = c.s.now()
	c.s.carts[itemID] = item
	return nil
}

func (c *memCarts) Delete(buyerID, itemID uuid.UUID) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	item, ok := c.s.carts[itemID]
	if ok && item.BuyerID == buyerID {
		delete(c.s.carts, itemID)
	}
	return nil
}

func (c *memCarts) DeleteBatch(buyerID uuid.UUID, itemIDs []uuid.UUID) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	for _, id := range itemIDs {
		item, ok := c.s.carts[id]
		if ok && item.BuyerID == buyerID {
			delete(c.s.carts, id)
		}
	}
	return nil
}

// Orders

type memOrders struct {
	s *MemoryStore
}

func (o *memOrders) Create(order *models.Order) error {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.CreatedAt = o.s.now()
	order.UpdatedAt = order.CreatedAt
	for i := range order.Items {
		if order.Items[i].ID == uuid.Nil {
			order.Items[i].ID = uuid.New()
		}
		order.Items[i].OrderID = order.ID
		order.Items[i].CreatedAt = order.CreatedAt
	}
	stored := *order
	stored.Items = append([]models.OrderItem(nil), order.Items...)
	o.s.orders[order.ID] = stored
	return nil
}

func (o *memOrders) Get(orderID uuid.UUID) (*models.Order, error) {
	o.s.mu.RLock()
	defer o.s.mu.RUnlock()
	order, ok := o.s.orders[orderID]
	if !ok {
		return nil, models.ErrNotFound
	}
	order.Items = append([]models.OrderItem(nil), order.Items...)
	return &order, nil
}

func (o *memOrders) ListByBuyer(buyerID uuid.UUID) ([]models.Order, error) {
	o.s.mu.RLock()
	defer o.s.mu.RUnlock()
	var orders []models.Order
	for _, order := range o.s.orders {
		if order.BuyerID == buyerID {
			order.Items = append([]models.OrderItem(nil), order.Items...)
			orders = append(orders, order)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (o *memOrders) UpdateStatus(orderID uuid.UUID, from, to models.OrderStatus, at time.Time) error {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	order, ok := o.s.orders[orderID]
	if !ok || order.Status != from {
		return models.ErrUpdateFailed
	}
	order.Status = to
	order.UpdatedAt = at
	switch to {
	case models.OrderStatusShipped:
		ts := at
		order.ShippedAt = &ts
	case models.OrderStatusCompleted:
		ts := at
		order.CompletedAt = &ts
	}
	o.s.orders[orderID] = order
	return nil
}

func (o *memOrders) ListItemsBySeller(sellerID uuid.UUID) ([]models.SellerOrderItem, error) {
	o.s.mu.RLock()
	defer o.s.mu.RUnlock()
	var orders []models.Order
	for _, order := range o.s.orders {
		orders = append(orders, order)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	var items []models.SellerOrderItem
	for _, order := range orders {
		for _, line := range order.Items {
			if line.SellerID != sellerID {
				continue
			}
			items = append(items, models.SellerOrderItem{
				OrderID:       order.ID,
				BuyerID:       order.BuyerID,
				BuyerName:     order.DeliveryDetails.FullName,
				BuyerPhone:    order.DeliveryDetails.Phone,
				BuyerAddress:  joinAddress(order.DeliveryDetails.Address, order.DeliveryDetails.City, order.DeliveryDetails.PostalCode),
				BuyerNotes:    order.DeliveryDetails.Notes,
				ProductID:     line.ProductID,
				ProductName:   line.Name,
				ProductImage:  line.ImageURL,
				Quantity:      line.Quantity,
				LineTotal:     line.LineTotal(),
				PaymentMethod: order.PaymentMethod,
				Status:        order.Status,
				OrderedAt:     order.CreatedAt,
			})
		}
	}
	return items, nil
}
