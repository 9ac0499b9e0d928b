// internal/services/cart_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/greeniecart/greeniecart-backend/internal/models"
	"github.com/greeniecart/greeniecart-backend/internal/store"
)

type CartServiceTestSuite struct {
	suite.Suite
	store   *store.MemoryStore
	service *CartService

	buyer  uuid.UUID
	seller uuid.UUID
	soap   models.Product
}

func (suite *CartServiceTestSuite) SetupTest() {
	suite.store = store.NewMemoryStore()
	suite.service = NewCartService(suite.store)

	suite.buyer = uuid.New()
	suite.seller = uuid.New()
	suite.soap = suite.store.SeedProduct(models.Product{
		SellerID: suite.seller,
		Name:     "Calamansi Soap",
		Price:    decimal.RequireFromString("85.00"),
		Stock:    10,
	})
}

func (suite *CartServiceTestSuite) TestAddItemSnapshotsProduct() {
	item, err := suite.service.AddItem(suite.buyer, &AddCartItemRequest{ProductID: suite.soap.ID})
	suite.NoError(err)
	suite.Equal("Calamansi Soap", item.Name)
	suite.True(item.Price.Equal(suite.soap.Price))
	suite.Equal(1, item.Quantity)
}

func (suite *CartServiceTestSuite) TestAddItemRejectsDuplicate() {
	_, err := suite.service.AddItem(suite.buyer, &AddCartItemRequest{ProductID: suite.soap.ID})
	suite.NoError(err)

	_, err = suite.service.AddItem(suite.buyer, &AddCartItemRequest{ProductID: suite.soap.ID})
	suite.ErrorIs(err, models.ErrDuplicateItem)

	view, err := suite.service.ListItems(suite.buyer)
	suite.NoError(err)
	suite.Len(view.Items, 1)
}

func (suite *CartServiceTestSuite) TestAddItemRejectsOwnProduct() {
	_, err := suite.service.AddItem(suite.seller, &AddCartItemRequest{ProductID: suite.soap.ID})
	suite.ErrorIs(err, models.ErrOwnProduct)
}

func (suite *CartServiceTestSuite) TestAddItemRejectsOutOfStock() {
	soldOut := suite.store.SeedProduct(models.Product{
		SellerID: suite.seller,
		Name:     "Bamboo Straw",
		Price:    decimal.RequireFromString("25.00"),
		Stock:    0,
	})

	_, err := suite.service.AddItem(suite.buyer, &AddCartItemRequest{ProductID: soldOut.ID})
	suite.ErrorIs(err, models.ErrOutOfStock)
}

func (suite *CartServiceTestSuite) TestAddItemWithoutIdentity() {
	_, err := suite.service.AddItem(uuid.Nil, &AddCartItemRequest{ProductID: suite.soap.ID})
	suite.ErrorIs(err, models.ErrUnauthenticated)
}

func (suite *CartServiceTestSuite) TestAddItemUnknownProduct() {
	_, err := suite.service.AddItem(suite.buyer, &AddCartItemRequest{ProductID: uuid.New()})
	suite.ErrorIs(err, models.ErrNotFound)
}

func (suite *CartServiceTestSuite) TestSetQuantity() {
	item, err := suite.service.AddItem(suite.buyer, &AddCartItemRequest{ProductID: suite.soap.ID})
	suite.NoError(err)

	updated, err := suite.service.SetQuantity(suite.buyer, item.ID, 4)
	suite.NoError(err)
	suite.Equal(4, updated.Quantity)

	view, err := suite.service.ListItems(suite.buyer)
	suite.NoError(err)
	suite.Equal(4, view.Items[0].Quantity)
	suite.True(view.Subtotal.Equal(decimal.RequireFromString("340.00")))
}

func (suite *CartServiceTestSuite) TestSetQuantityBelowOneIsNoop() {
	item, err := suite.service.AddItem(suite.buyer, &AddCartItemRequest{ProductID: suite.soap.ID, Quantity: 3})
	suite.NoError(err)

	updated, err := suite.service.SetQuantity(suite.buyer, item.ID, 0)
	suite.NoError(err)
	suite.Equal(3, updated.Quantity)

	view, err := suite.service.ListItems(suite.buyer)
	suite.NoError(err)
	suite.Equal(3, view.Items[0].Quantity)
}

func (suite *CartServiceTestSuite) TestRemoveItem() {
	item, err := suite.service.AddItem(suite.buyer, &AddCartItemRequest{ProductID: suite.soap.ID})
	suite.NoError(err)

	suite.NoError(suite.service.RemoveItem(suite.buyer, item.ID))

	view, err := suite.service.ListItems(suite.buyer)
	suite.NoError(err)
	suite.Empty(view.Items)
}

func (suite *CartServiceTestSuite) TestRemoveMissingItemIsIdempotent() {
	suite.NoError(suite.service.RemoveItem(suite.buyer, uuid.New()))
}

func (suite *CartServiceTestSuite) TestCartsAreIsolatedPerBuyer() {
	otherBuyer := uuid.New()

	item, err := suite.service.AddItem(suite.buyer, &AddCartItemRequest{ProductID: suite.soap.ID})
	suite.NoError(err)

	// Another buyer can add the same product and cannot touch this line.
	_, err = suite.service.AddItem(otherBuyer, &AddCartItemRequest{ProductID: suite.soap.ID})
	suite.NoError(err)

	_, err = suite.service.SetQuantity(otherBuyer, item.ID, 5)
	assert.ErrorIs(suite.T(), err, models.ErrNotFound)
}

func TestCartServiceSuite(t *testing.T) {
	suite.Run(t, new(CartServiceTestSuite))
}
