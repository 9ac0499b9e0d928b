// internal/services/fulfillment_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/greeniecart/greeniecart-backend/internal/models"
	"github.com/greeniecart/greeniecart-backend/internal/store"
)

type FulfillmentServiceTestSuite struct {
	suite.Suite
	store      *store.MemoryStore
	aggregator *Aggregator
	service    *FulfillmentService

	seller uuid.UUID
	buyer  uuid.UUID
}

func (suite *FulfillmentServiceTestSuite) SetupTest() {
	suite.store = store.NewMemoryStore()
	suite.aggregator = NewAggregator(suite.store)
	suite.service = NewFulfillmentService(suite.store, suite.aggregator)

	suite.seller = uuid.New()
	suite.buyer = uuid.New()
}

func (suite *FulfillmentServiceTestSuite) TearDownTest() {
	suite.aggregator.Close()
}

func (suite *FulfillmentServiceTestSuite) seedOrder(status models.OrderStatus, createdAt time.Time, qty int, price string) models.Order {
	return suite.store.SeedOrder(models.Order{
		BaseModel: models.BaseModel{CreatedAt: createdAt},
		BuyerID:   suite.buyer,
		Status:    status,
		PaymentMethod: models.PaymentMethodCOD,
		DeliveryDetails: models.DeliveryDetails{
			FullName: "Maria Santos",
			Phone:    "09171234567",
			Address:  "12 Mabini St",
			City:     "Quezon City",
		},
		Items: []models.OrderItem{
			{
				ProductID: uuid.New(),
				SellerID:  suite.seller,
				Name:      "Calamansi Soap",
				Price:     decimal.RequireFromString(price),
				Quantity:  qty,
			},
		},
	})
}

func (suite *FulfillmentServiceTestSuite) TestStatsForSellerWithNoSales() {
	stats, err := suite.service.Stats(suite.seller)
	suite.NoError(err)
	suite.True(stats.TodaySales.IsZero())
	suite.True(stats.MonthEarnings.IsZero())
	suite.Zero(stats.PendingToShip)
	suite.Zero(stats.TotalOrders)
	suite.Zero(stats.CompletedOrders)
}

func (suite *FulfillmentServiceTestSuite) TestStatsRollup() {
	now := time.Now()
	suite.seedOrder(models.OrderStatusPending, now, 2, "85.00")              // today: 170
	suite.seedOrder(models.OrderStatusPaid, now.AddDate(0, 0, -3), 1, "25.00") // this month
	suite.seedOrder(models.OrderStatusCompleted, now.AddDate(0, -2, 0), 4, "10.00") // older

	stats, err := suite.service.Stats(suite.seller)
	suite.NoError(err)

	suite.True(stats.TodaySales.Equal(decimal.RequireFromString("170.00")), "today sales %s", stats.TodaySales)
	// Month earnings include today's order plus the 3-day-old one, assuming
	// both fall inside the current month when run; day 3 of a month can push
	// the second into last month, so only assert the lower bound.
	suite.True(stats.MonthEarnings.GreaterThanOrEqual(decimal.RequireFromString("170.00")))
	suite.Equal(3, stats.PendingToShip) // pending(2) + paid(1)
	suite.Equal(7, stats.TotalOrders)
	suite.Equal(4, stats.CompletedOrders)
}

func (suite *FulfillmentServiceTestSuite) TestStatsCountPerLineItemUnit() {
	suite.seedOrder(models.OrderStatusPending, time.Now(), 5, "10.00")

	stats, err := suite.service.Stats(suite.seller)
	suite.NoError(err)
	suite.Equal(5, stats.TotalOrders)
	suite.Equal(5, stats.PendingToShip)
}

func (suite *FulfillmentServiceTestSuite) TestIncrementalPlacedEvent() {
	// Prime an empty rollup first.
	_, err := suite.service.Stats(suite.seller)
	suite.NoError(err)

	order := suite.seedOrder(models.OrderStatusPending, time.Now(), 2, "85.00")
	suite.aggregator.Publish(OrderEvent{Type: OrderEventPlaced, Order: order, At: order.CreatedAt})
	suite.aggregator.Close() // flush the event queue

	stats, err := suite.service.Stats(suite.seller)
	suite.NoError(err)
	suite.Equal(2, stats.TotalOrders)
	suite.Equal(2, stats.PendingToShip)
	suite.True(stats.TodaySales.Equal(decimal.RequireFromString("170.00")))
}

func (suite *FulfillmentServiceTestSuite) TestIncrementalPlacedEventIsDeduplicated() {
	_, err := suite.service.Stats(suite.seller)
	suite.NoError(err)

	order := suite.seedOrder(models.OrderStatusPending, time.Now(), 2, "85.00")
	evt := OrderEvent{Type: OrderEventPlaced, Order: order, At: order.CreatedAt}
	suite.aggregator.Publish(evt)
	suite.aggregator.Publish(evt)
	suite.aggregator.Close()

	stats, err := suite.service.Stats(suite.seller)
	suite.NoError(err)
	suite.Equal(2, stats.TotalOrders)
}

func (suite *FulfillmentServiceTestSuite) TestIncrementalStatusChange() {
	order := suite.seedOrder(models.OrderStatusPending, time.Now(), 2, "85.00")

	// Prime with the pending order in place.
	stats, err := suite.service.Stats(suite.seller)
	suite.NoError(err)
	suite.Equal(2, stats.PendingToShip)

	shipped := order
	shipped.Status = models.OrderStatusShipped
	suite.aggregator.Publish(OrderEvent{
		Type:  OrderEventStatusChanged,
		Order: shipped,
		From:  models.OrderStatusPending,
		To:    models.OrderStatusShipped,
		At:    time.Now(),
	})

	completed := shipped
	completed.Status = models.OrderStatusCompleted
	suite.aggregator.Publish(OrderEvent{
		Type:  OrderEventStatusChanged,
		Order: completed,
		From:  models.OrderStatusShipped,
		To:    models.OrderStatusCompleted,
		At:    time.Now(),
	})
	suite.aggregator.Close()

	stats, err = suite.service.Stats(suite.seller)
	suite.NoError(err)
	suite.Equal(0, stats.PendingToShip)
	suite.Equal(2, stats.CompletedOrders)
	suite.Equal(2, stats.TotalOrders)
	// Earnings stay keyed to the order date.
	suite.True(stats.TodaySales.Equal(decimal.RequireFromString("170.00")))
}

func (suite *FulfillmentServiceTestSuite) TestStaleTransitionIgnored() {
	order := suite.seedOrder(models.OrderStatusPending, time.Now(), 2, "85.00")

	_, err := suite.service.Stats(suite.seller)
	suite.NoError(err)

	// A transition whose from-status does not match the recorded one.
	suite.aggregator.Publish(OrderEvent{
		Type:  OrderEventStatusChanged,
		Order: order,
		From:  models.OrderStatusShipped,
		To:    models.OrderStatusCompleted,
		At:    time.Now(),
	})
	suite.aggregator.Close()

	stats, err := suite.service.Stats(suite.seller)
	suite.NoError(err)
	suite.Equal(2, stats.PendingToShip)
	suite.Equal(0, stats.CompletedOrders)
}

func (suite *FulfillmentServiceTestSuite) TestListReceivedFansOutPerLineItem() {
	other := uuid.New()
	now := time.Now()

	suite.store.SeedOrder(models.Order{
		BaseModel: models.BaseModel{CreatedAt: now},
		BuyerID:   suite.buyer,
		Status:    models.OrderStatusPending,
		PaymentMethod: models.PaymentMethodGcash,
		DeliveryDetails: models.DeliveryDetails{
			FullName:   "Maria Santos",
			Phone:      "09171234567",
			Address:    "12 Mabini St",
			City:       "Quezon City",
			PostalCode: "1100",
		},
		Items: []models.OrderItem{
			{SellerID: suite.seller, Name: "Calamansi Soap", Price: decimal.RequireFromString("85.00"), Quantity: 2},
			{SellerID: other, Name: "Someone Else's", Price: decimal.RequireFromString("50.00"), Quantity: 1},
		},
	})

	items, err := suite.service.ListReceived(suite.seller)
	suite.NoError(err)
	suite.Len(items, 1)
	suite.Equal("Calamansi Soap", items[0].ProductName)
	suite.Equal("Maria Santos", items[0].BuyerName)
	suite.Equal("12 Mabini St, Quezon City, 1100", items[0].BuyerAddress)
	suite.Equal(models.PaymentMethodGcash, items[0].PaymentMethod)
	suite.True(items[0].LineTotal.Equal(decimal.RequireFromString("170.00")))
}

func (suite *FulfillmentServiceTestSuite) TestListReceivedEmptyForNewSeller() {
	items, err := suite.service.ListReceived(uuid.New())
	suite.NoError(err)
	suite.NotNil(items)
	suite.Empty(items)
}

func TestFulfillmentServiceSuite(t *testing.T) {
	suite.Run(t, new(FulfillmentServiceTestSuite))
}
