// internal/services/order_service_test.go
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

type OrderServiceTestSuite struct {
	suite.Suite
	store   *store.MemoryStore
	service *OrderService

	buyer  uuid.UUID
	seller uuid.UUID
	order  models.Order
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.store = store.NewMemoryStore()
	suite.service = NewOrderService(suite.store, nil)

	suite.buyer = uuid.New()
	suite.seller = uuid.New()
	suite.order = suite.store.SeedOrder(models.Order{
		BuyerID: suite.buyer,
		Status:  models.OrderStatusPending,
		Total:   decimal.RequireFromString("170.00"),
		Items: []models.OrderItem{
			{
				ProductID: uuid.New(),
				SellerID:  suite.seller,
				Name:      "Calamansi Soap",
				Price:     decimal.RequireFromString("85.00"),
				Quantity:  2,
			},
		},
	})
}

func (suite *OrderServiceTestSuite) TestListOrdersNewestFirst() {
	// Force distinct timestamps around the order seeded in SetupTest.
	suite.store.SetClock(func() time.Time { return time.Now().Add(-time.Hour) })
	older := suite.store.SeedOrder(models.Order{
		BuyerID: suite.buyer,
		Status:  models.OrderStatusCompleted,
	})
	suite.store.SetClock(func() time.Time { return time.Now().Add(time.Hour) })
	newer := suite.store.SeedOrder(models.Order{
		BuyerID: suite.buyer,
		Status:  models.OrderStatusPending,
	})

	orders, err := suite.service.ListOrders(suite.buyer)
	suite.NoError(err)
	suite.Len(orders, 3)
	suite.Equal(newer.ID, orders[0].ID)
	suite.Equal(older.ID, orders[2].ID)
}

func (suite *OrderServiceTestSuite) TestGetOrderVisibility() {
	// Buyer sees their order
	order, err := suite.service.GetOrder(suite.buyer, suite.order.ID)
	suite.NoError(err)
	suite.Equal(suite.order.ID, order.ID)

	// Seller of a line item sees it too
	order, err = suite.service.GetOrder(suite.seller, suite.order.ID)
	suite.NoError(err)
	suite.Equal(suite.order.ID, order.ID)

	// Anyone else does not
	_, err = suite.service.GetOrder(uuid.New(), suite.order.ID)
	suite.ErrorIs(err, models.ErrForbidden)
}

func (suite *OrderServiceTestSuite) TestMarkShipped() {
	order, err := suite.service.MarkShipped(suite.seller, suite.order.ID)
	suite.NoError(err)
	suite.Equal(models.OrderStatusShipped, order.Status)
	suite.NotNil(order.ShippedAt)
	suite.Nil(order.CompletedAt)

	// Persisted too
	stored, err := suite.store.Orders().Get(suite.order.ID)
	suite.NoError(err)
	suite.Equal(models.OrderStatusShipped, stored.Status)
}

func (suite *OrderServiceTestSuite) TestMarkShippedFromPaid() {
	paid := suite.store.SeedOrder(models.Order{
		BuyerID: suite.buyer,
		Status:  models.OrderStatusPaid,
		Items:   []models.OrderItem{{SellerID: suite.seller, Quantity: 1}},
	})

	order, err := suite.service.MarkShipped(suite.seller, paid.ID)
	suite.NoError(err)
	suite.Equal(models.OrderStatusShipped, order.Status)
}

func (suite *OrderServiceTestSuite) TestMarkShippedByStrangerForbidden() {
	_, err := suite.service.MarkShipped(uuid.New(), suite.order.ID)
	suite.ErrorIs(err, models.ErrForbidden)
}

func (suite *OrderServiceTestSuite) TestMarkCompletedRequiresShipped() {
	_, err := suite.service.MarkCompleted(suite.buyer, suite.order.ID)
	suite.ErrorIs(err, models.ErrInvalidTransition)

	_, err = suite.service.MarkShipped(suite.seller, suite.order.ID)
	suite.NoError(err)

	order, err := suite.service.MarkCompleted(suite.buyer, suite.order.ID)
	suite.NoError(err)
	suite.Equal(models.OrderStatusCompleted, order.Status)
	suite.NotNil(order.CompletedAt)
}

func (suite *OrderServiceTestSuite) TestCompletionIsBuyerOnly() {
	_, err := suite.service.MarkShipped(suite.seller, suite.order.ID)
	suite.NoError(err)

	// The seller cannot confirm receipt on the buyer's behalf.
	_, err = suite.service.MarkCompleted(suite.seller, suite.order.ID)
	suite.ErrorIs(err, models.ErrForbidden)

	order, err := suite.service.MarkCompleted(suite.buyer, suite.order.ID)
	suite.NoError(err)
	suite.Equal(models.OrderStatusCompleted, order.Status)
}

func (suite *OrderServiceTestSuite) TestShippingIsSellerOnly() {
	_, err := suite.service.MarkShipped(suite.buyer, suite.order.ID)
	suite.ErrorIs(err, models.ErrForbidden)
}

func (suite *OrderServiceTestSuite) TestCompletedIsTerminal() {
	_, err := suite.service.MarkShipped(suite.seller, suite.order.ID)
	suite.NoError(err)
	_, err = suite.service.MarkCompleted(suite.buyer, suite.order.ID)
	suite.NoError(err)

	_, err = suite.service.MarkShipped(suite.seller, suite.order.ID)
	suite.ErrorIs(err, models.ErrInvalidTransition)
	_, err = suite.service.MarkCompleted(suite.buyer, suite.order.ID)
	suite.ErrorIs(err, models.ErrInvalidTransition)
}

func (suite *OrderServiceTestSuite) TestMarkShippedTwice() {
	_, err := suite.service.MarkShipped(suite.seller, suite.order.ID)
	suite.NoError(err)

	_, err = suite.service.MarkShipped(suite.seller, suite.order.ID)
	suite.ErrorIs(err, models.ErrInvalidTransition)
}

func (suite *OrderServiceTestSuite) TestLostRaceReturnsUpdateFailed() {
	// Another request ships the order between the read and the update.
	err := suite.store.Orders().UpdateStatus(suite.order.ID, models.OrderStatusPending, models.OrderStatusShipped, time.Now())
	suite.NoError(err)

	err = suite.store.Orders().UpdateStatus(suite.order.ID, models.OrderStatusPending, models.OrderStatusShipped, time.Now())
	suite.ErrorIs(err, models.ErrUpdateFailed)
}

func (suite *OrderServiceTestSuite) TestUnknownOrder() {
	_, err := suite.service.MarkShipped(suite.seller, uuid.New())
	suite.ErrorIs(err, models.ErrNotFound)
}

func TestOrderServiceSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}
