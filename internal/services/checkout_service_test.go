// internal/services/checkout_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/greeniecart/greeniecart-backend/internal/models"
	"github.com/greeniecart/greeniecart-backend/internal/store"
)

type CheckoutServiceTestSuite struct {
	suite.Suite
	store   *store.MemoryStore
	service *CheckoutService

	buyer   uuid.UUID
	seller  uuid.UUID
	soap    models.Product
	straw   models.Product
	inCart  models.CartItem
	inCart2 models.CartItem
}

func (suite *CheckoutServiceTestSuite) SetupTest() {
	suite.store = store.NewMemoryStore()
	suite.service = NewCheckoutService(suite.store, nil, nil, nil)

	suite.buyer = uuid.New()
	suite.seller = uuid.New()

	suite.soap = suite.store.SeedProduct(models.Product{
		SellerID: suite.seller,
		Name:     "Calamansi Soap",
		Price:    decimal.RequireFromString("85.00"),
		Stock:    10,
	})
	suite.straw = suite.store.SeedProduct(models.Product{
		SellerID: suite.seller,
		Name:     "Bamboo Straw",
		Price:    decimal.RequireFromString("25.00"),
		Stock:    2,
	})

	suite.inCart = suite.store.SeedCartItem(models.CartItem{
		BuyerID:   suite.buyer,
		ProductID: suite.soap.ID,
		Name:      suite.soap.Name,
		Price:     suite.soap.Price,
		Quantity:  2,
	})
	suite.inCart2 = suite.store.SeedCartItem(models.CartItem{
		BuyerID:   suite.buyer,
		ProductID: suite.straw.ID,
		Name:      suite.straw.Name,
		Price:     suite.straw.Price,
		Quantity:  1,
	})
}

func (suite *CheckoutServiceTestSuite) validRequest(items ...CheckoutItem) *CheckoutRequest {
	return &CheckoutRequest{
		Items: items,
		Delivery: DeliveryRequest{
			FullName:   "Maria Santos",
			Phone:      "09171234567",
			Address:    "12 Mabini St, Brgy. San Isidro",
			City:       "Quezon City",
			PostalCode: "1100",
		},
		Payment: PaymentRequest{Method: models.PaymentMethodCOD},
	}
}

func (suite *CheckoutServiceTestSuite) TestCheckoutHappyPath() {
	req := suite.validRequest(
		CheckoutItem{CartItemID: suite.inCart.ID, Quantity: 2},
		CheckoutItem{CartItemID: suite.inCart2.ID, Quantity: 1},
	)

	order, err := suite.service.Checkout(suite.buyer, req)
	suite.NoError(err)
	suite.Equal(models.OrderStatusPending, order.Status)
	suite.Len(order.Items, 2)
	suite.True(order.Total.Equal(decimal.RequireFromString("195.00")))
	suite.Equal(suite.seller, order.Items[0].SellerID)
	suite.Nil(order.ShippedAt)

	// Stock was decremented
	soap, err := suite.store.Products().Get(suite.soap.ID)
	suite.NoError(err)
	suite.Equal(8, soap.Stock)

	straw, err := suite.store.Products().Get(suite.straw.ID)
	suite.NoError(err)
	suite.Equal(1, straw.Stock)

	// Purchased cart lines were cleared
	items, err := suite.store.Carts().List(suite.buyer)
	suite.NoError(err)
	suite.Empty(items)

	// The order is in the buyer's history
	orders, err := suite.store.Orders().ListByBuyer(suite.buyer)
	suite.NoError(err)
	suite.Len(orders, 1)
}

func (suite *CheckoutServiceTestSuite) TestCheckoutPartialSelectionKeepsRest() {
	req := suite.validRequest(CheckoutItem{CartItemID: suite.inCart.ID, Quantity: 1})

	_, err := suite.service.Checkout(suite.buyer, req)
	suite.NoError(err)

	// Only the purchased line was cleared
	items, err := suite.store.Carts().List(suite.buyer)
	suite.NoError(err)
	suite.Len(items, 1)
	suite.Equal(suite.inCart2.ID, items[0].ID)
}

func (suite *CheckoutServiceTestSuite) TestCheckoutWithoutIdentity() {
	req := suite.validRequest(CheckoutItem{CartItemID: suite.inCart.ID, Quantity: 1})
	_, err := suite.service.Checkout(uuid.Nil, req)
	suite.ErrorIs(err, models.ErrUnauthenticated)

	// Nothing was touched
	soap, err := suite.store.Products().Get(suite.soap.ID)
	suite.NoError(err)
	suite.Equal(10, soap.Stock)
}

func (suite *CheckoutServiceTestSuite) TestCheckoutEmptySelection() {
	req := suite.validRequest()
	_, err := suite.service.Checkout(suite.buyer, req)
	suite.ErrorIs(err, models.ErrEmptySelection)
}

func (suite *CheckoutServiceTestSuite) TestCheckoutInsufficientStockRollsBackEverything() {
	// Second line asks for more straws than exist.
	req := suite.validRequest(
		CheckoutItem{CartItemID: suite.inCart.ID, Quantity: 2},
		CheckoutItem{CartItemID: suite.inCart2.ID, Quantity: 5},
	)

	_, err := suite.service.Checkout(suite.buyer, req)
	suite.ErrorIs(err, models.ErrInsufficientStock)
	suite.Contains(err.Error(), `"Bamboo Straw"`)

	// The soap decrement from the first line was rolled back
	soap, err := suite.store.Products().Get(suite.soap.ID)
	suite.NoError(err)
	suite.Equal(10, soap.Stock)

	// Cart untouched, no order created
	items, err := suite.store.Carts().List(suite.buyer)
	suite.NoError(err)
	suite.Len(items, 2)

	orders, err := suite.store.Orders().ListByBuyer(suite.buyer)
	suite.NoError(err)
	suite.Empty(orders)
}

func (suite *CheckoutServiceTestSuite) TestCheckoutVanishedProduct() {
	// Product deleted between adding to cart and checkout.
	ghost := suite.store.SeedCartItem(models.CartItem{
		BuyerID:   suite.buyer,
		ProductID: uuid.New(),
		Name:      "Ghost Candle",
		Price:     decimal.RequireFromString("120.00"),
		Quantity:  1,
	})

	req := suite.validRequest(CheckoutItem{CartItemID: ghost.ID, Quantity: 1})
	_, err := suite.service.Checkout(suite.buyer, req)
	suite.ErrorIs(err, models.ErrProductUnavailable)
	suite.Contains(err.Error(), `"Ghost Candle"`)
}

func (suite *CheckoutServiceTestSuite) TestCheckoutSequentialBuyersDrainStock() {
	// Two buyers want the last two straws; a third request finds none left.
	otherBuyer := uuid.New()
	otherLine := suite.store.SeedCartItem(models.CartItem{
		BuyerID:   otherBuyer,
		ProductID: suite.straw.ID,
		Name:      suite.straw.Name,
		Price:     suite.straw.Price,
		Quantity:  1,
	})

	_, err := suite.service.Checkout(suite.buyer, suite.validRequest(CheckoutItem{CartItemID: suite.inCart2.ID, Quantity: 2}))
	suite.NoError(err)

	_, err = suite.service.Checkout(otherBuyer, suite.validRequest(CheckoutItem{CartItemID: otherLine.ID, Quantity: 1}))
	suite.ErrorIs(err, models.ErrInsufficientStock)

	straw, err := suite.store.Products().Get(suite.straw.ID)
	suite.NoError(err)
	suite.Equal(0, straw.Stock)
}

func (suite *CheckoutServiceTestSuite) TestCheckoutRequestedQuantityOverridesCartLine() {
	req := suite.validRequest(CheckoutItem{CartItemID: suite.inCart.ID, Quantity: 5})

	order, err := suite.service.Checkout(suite.buyer, req)
	suite.NoError(err)
	suite.Equal(5, order.Items[0].Quantity)

	soap, err := suite.store.Products().Get(suite.soap.ID)
	suite.NoError(err)
	suite.Equal(5, soap.Stock)
}

func (suite *CheckoutServiceTestSuite) TestCheckoutGcashValidation() {
	req := suite.validRequest(CheckoutItem{CartItemID: suite.inCart.ID, Quantity: 1})
	req.Payment = PaymentRequest{Method: models.PaymentMethodGcash, GcashNumber: "0917123456"} // 10 digits

	_, err := suite.service.Checkout(suite.buyer, req)
	suite.ErrorIs(err, models.ErrValidationFailed)

	req.Payment.GcashNumber = "09171234567"
	order, err := suite.service.Checkout(suite.buyer, req)
	suite.NoError(err)
	suite.Equal("09171234567", order.PaymentDetails.GcashNumber)
	suite.Empty(order.PaymentDetails.CardLast4)
}

func (suite *CheckoutServiceTestSuite) TestCheckoutCardValidation() {
	req := suite.validRequest(CheckoutItem{CartItemID: suite.inCart.ID, Quantity: 1})
	req.Payment = PaymentRequest{
		Method:     models.PaymentMethodCard,
		CardNumber: "4111 1111 1111",
		CardName:   "Maria Santos",
		CardExpiry: "12/27",
		CardCVC:    "123",
	}

	// Too few digits
	_, err := suite.service.Checkout(suite.buyer, req)
	suite.ErrorIs(err, models.ErrValidationFailed)

	// Missing field
	req.Payment.CardNumber = "4111 1111 1111 1111"
	req.Payment.CardExpiry = ""
	_, err = suite.service.Checkout(suite.buyer, req)
	suite.ErrorIs(err, models.ErrValidationFailed)

	// Valid card: only last-4 and name survive
	req.Payment.CardExpiry = "12/27"
	order, err := suite.service.Checkout(suite.buyer, req)
	suite.NoError(err)
	suite.Equal("1111", order.PaymentDetails.CardLast4)
	suite.Equal("Maria Santos", order.PaymentDetails.CardName)
	suite.Empty(order.PaymentDetails.GcashNumber)
}

func (suite *CheckoutServiceTestSuite) TestCheckoutUnknownPaymentMethod() {
	req := suite.validRequest(CheckoutItem{CartItemID: suite.inCart.ID, Quantity: 1})
	req.Payment = PaymentRequest{Method: "paypal"}

	_, err := suite.service.Checkout(suite.buyer, req)
	suite.ErrorIs(err, models.ErrValidationFailed)
}

func (suite *CheckoutServiceTestSuite) TestCheckoutRequiresDelivery() {
	req := suite.validRequest(CheckoutItem{CartItemID: suite.inCart.ID, Quantity: 1})
	req.Delivery.Phone = "1234"

	_, err := suite.service.Checkout(suite.buyer, req)
	suite.ErrorIs(err, models.ErrValidationFailed)
}

func (suite *CheckoutServiceTestSuite) TestCheckoutForeignCartLine() {
	// Selecting someone else's cart line fails without touching stock.
	stranger := uuid.New()
	req := suite.validRequest(CheckoutItem{CartItemID: suite.inCart.ID, Quantity: 1})

	_, err := suite.service.Checkout(stranger, req)
	suite.ErrorIs(err, models.ErrNotFound)

	soap, err := suite.store.Products().Get(suite.soap.ID)
	suite.NoError(err)
	suite.Equal(10, soap.Stock)
}

func TestCheckoutServiceSuite(t *testing.T) {
	suite.Run(t, new(CheckoutServiceTestSuite))
}
