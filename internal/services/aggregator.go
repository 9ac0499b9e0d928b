// internal/services/aggregator.go
package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/greeniecart/greeniecart-backend/internal/models"
	"github.com/greeniecart/greeniecart-backend/internal/store"
)

// SellerStats is the rollup card shown on a seller's fulfillment dashboard.
// Sales and earnings are keyed by order date; item counters move with order
// status. All figures count line items, not orders.
type SellerStats struct {
	TodaySales      decimal.Decimal `json:"today_sales"`
	MonthEarnings   decimal.Decimal `json:"month_earnings"`
	PendingToShip   int             `json:"pending_to_ship"`
	TotalOrders     int             `json:"total_orders"`
	CompletedOrders int             `json:"completed_orders"`
}

type OrderEventType string

const (
	OrderEventPlaced        OrderEventType = "placed"
	OrderEventStatusChanged OrderEventType = "status_changed"
)

// OrderEvent is published after an order mutation commits. The order snapshot
// carries its line items so the aggregator can fan the change out per seller.
type OrderEvent struct {
	Type  OrderEventType
	Order models.Order
	From  models.OrderStatus
	To    models.OrderStatus
	At    time.Time
}

// sellerRollup is the incremental per-seller aggregate. dayTotals accumulates
// line totals keyed by order date ("2006-01-02") so today/this-month figures
// fall out without rescanning the ledger. seen maps order IDs already folded
// in to their last known status, which makes replayed events harmless.
type sellerRollup struct {
	totalItems     int
	completedItems int
	pendingToShip  int
	dayTotals      map[string]decimal.Decimal
	seen           map[uuid.UUID]models.OrderStatus
}

func newSellerRollup() *sellerRollup {
	return &sellerRollup{
		dayTotals: make(map[string]decimal.Decimal),
		seen:      make(map[uuid.UUID]models.OrderStatus),
	}
}

// Aggregator keeps seller rollups current by consuming order events. A
// seller's rollup is primed lazily from the store on first request; events
// for unprimed sellers are dropped since priming will read them anyway.
type Aggregator struct {
	store  store.Store
	events chan OrderEvent
	now    func() time.Time

	mu      sync.Mutex
	rollups map[uuid.UUID]*sellerRollup

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

func NewAggregator(st store.Store) *Aggregator {
	a := &Aggregator{
		store:   st,
		events:  make(chan OrderEvent, 256),
		now:     time.Now,
		rollups: make(map[uuid.UUID]*sellerRollup),
		done:    make(chan struct{}),
	}
	a.wg.Add(1)
	go a.consume()
	return a
}

// Publish hands an event to the aggregator. When the buffer is full the
// cached rollups are discarded instead of blocking the request path; they
// re-prime from the store on next read.
func (a *Aggregator) Publish(evt OrderEvent) {
	select {
	case a.events <- evt:
	default:
		logrus.Warn("order event buffer full, resetting seller rollups")
		a.mu.Lock()
		a.rollups = make(map[uuid.UUID]*sellerRollup)
		a.mu.Unlock()
	}
}

// Close drains queued events and stops the consumer. Safe to call twice.
func (a *Aggregator) Close() {
	a.closeOnce.Do(func() { close(a.done) })
	a.wg.Wait()
}

func (a *Aggregator) consume() {
	defer a.wg.Done()
	for {
		select {
		case evt := <-a.events:
			a.apply(evt)
		case <-a.done:
			// Drain what's already queued before exiting.
			for {
				select {
				case evt := <-a.events:
					a.apply(evt)
				default:
					return
				}
			}
		}
	}
}

func (a *Aggregator) apply(evt OrderEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Group the order's lines per seller so each rollup sees the order once.
	bySeller := make(map[uuid.UUID][]models.OrderItem)
	for _, item := range evt.Order.Items {
		bySeller[item.SellerID] = append(bySeller[item.SellerID], item)
	}

	for sellerID, items := range bySeller {
		rollup, ok := a.rollups[sellerID]
		if !ok {
			continue // unprimed seller, priming reads the store directly
		}

		switch evt.Type {
		case OrderEventPlaced:
			if _, dup := rollup.seen[evt.Order.ID]; dup {
				continue
			}
			rollup.applyPlaced(evt.Order.ID, evt.Order.CreatedAt, evt.Order.Status, items)
		case OrderEventStatusChanged:
			last, known := rollup.seen[evt.Order.ID]
			if !known || last != evt.From {
				continue // stale or replayed transition
			}
			rollup.applyTransition(evt.Order.ID, evt.From, evt.To, items)
		}
	}
}

// applyPlaced folds a seller's lines of a newly visible order into the rollup.
func (r *sellerRollup) applyPlaced(orderID uuid.UUID, orderedAt time.Time, status models.OrderStatus, items []models.OrderItem) {
	day := orderedAt.Format("2006-01-02")
	total, ok := r.dayTotals[day]
	if !ok {
		total = decimal.Zero
	}

	for _, item := range items {
		r.totalItems += item.Quantity
		total = total.Add(item.LineTotal())

		switch {
		case status.AwaitingShipment():
			r.pendingToShip += item.Quantity
		case status == models.OrderStatusCompleted:
			r.completedItems += item.Quantity
		}
	}

	r.dayTotals[day] = total
	r.seen[orderID] = status
}

func (r *sellerRollup) applyTransition(orderID uuid.UUID, from, to models.OrderStatus, items []models.OrderItem) {
	for _, item := range items {
		if from.AwaitingShipment() && !to.AwaitingShipment() {
			r.pendingToShip -= item.Quantity
		}
		if to == models.OrderStatusCompleted {
			r.completedItems += item.Quantity
		}
	}
	r.seen[orderID] = to
}

// Stats returns the seller's current rollup, priming it from the store on
// first access. A seller with no sales gets all-zero stats, not an error.
func (a *Aggregator) Stats(sellerID uuid.UUID) (*SellerStats, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	rollup, ok := a.rollups[sellerID]
	if !ok {
		items, err := a.store.Orders().ListItemsBySeller(sellerID)
		if err != nil {
			return nil, fmt.Errorf("failed to prime seller rollup: %w", err)
		}
		rollup = newSellerRollup()
		for _, item := range items {
			rollup.totalItems += item.Quantity

			day := item.OrderedAt.Format("2006-01-02")
			total, found := rollup.dayTotals[day]
			if !found {
				total = decimal.Zero
			}
			rollup.dayTotals[day] = total.Add(item.LineTotal)

			switch {
			case item.Status.AwaitingShipment():
				rollup.pendingToShip += item.Quantity
			case item.Status == models.OrderStatusCompleted:
				rollup.completedItems += item.Quantity
			}
			rollup.seen[item.OrderID] = item.Status
		}
		a.rollups[sellerID] = rollup
	}

	return rollup.stats(a.now()), nil
}

func (r *sellerRollup) stats(now time.Time) *SellerStats {
	today := now.Format("2006-01-02")
	month := now.Format("2006-01")

	todaySales := decimal.Zero
	monthEarnings := decimal.Zero
	for day, total := range r.dayTotals {
		if day == today {
			todaySales = todaySales.Add(total)
		}
		if len(day) >= len(month) && day[:len(month)] == month {
			monthEarnings = monthEarnings.Add(total)
		}
	}

	return &SellerStats{
		TodaySales:      todaySales,
		MonthEarnings:   monthEarnings,
		PendingToShip:   r.pendingToShip,
		TotalOrders:     r.totalItems,
		CompletedOrders: r.completedItems,
	}
}
