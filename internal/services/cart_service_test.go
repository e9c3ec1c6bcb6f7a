package services_test

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/javajoker/storefront/internal/models"
	"github.com/javajoker/storefront/internal/services"
)

func (suite *ServiceTestSuite) TestAddItemMergesQuantities() {
	collection := suite.fixtures.Collection("Mugs")
	mug := suite.fixtures.Product(collection.ID, "Mug", "20.00")
	cart := suite.fixtures.Cart()

	first, err := suite.carts.AddItem(suite.ctx, cart.ID, &services.AddCartItemRequest{ProductID: mug.ID, Quantity: 2})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, first.Quantity)

	second, err := suite.carts.AddItem(suite.ctx, cart.ID, &services.AddCartItemRequest{ProductID: mug.ID, Quantity: 3})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), first.ID, second.ID)
	assert.Equal(suite.T(), 5, second.Quantity)
	assert.Equal(suite.T(), mug.ID, second.Product.ID)

	items, err := suite.carts.ListItems(suite.ctx, cart.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), items, 1)
	assert.Equal(suite.T(), 5, items[0].Quantity)
}

func (suite *ServiceTestSuite) TestAddItemKeepsProductsApart() {
	collection := suite.fixtures.Collection("Mugs")
	mug := suite.fixtures.Product(collection.ID, "Mug", "20.00")
	cup := suite.fixtures.Product(collection.ID, "Cup", "5.50")
	cart := suite.fixtures.Cart()
	other := suite.fixtures.Cart()

	for _, req := range []services.AddCartItemRequest{
		{ProductID: mug.ID, Quantity: 1},
		{ProductID: cup.ID, Quantity: 4},
	} {
		_, err := suite.carts.AddItem(suite.ctx, cart.ID, &req)
		require.NoError(suite.T(), err)
	}
	_, err := suite.carts.AddItem(suite.ctx, other.ID, &services.AddCartItemRequest{ProductID: mug.ID, Quantity: 7})
	require.NoError(suite.T(), err)

	items, err := suite.carts.ListItems(suite.ctx, cart.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), items, 2)
	assert.Equal(suite.T(), 1, items[0].Quantity)
	assert.Equal(suite.T(), 4, items[1].Quantity)
}

func (suite *ServiceTestSuite) TestAddItemConcurrentIncrements() {
	const adds = 50

	collection := suite.fixtures.Collection("Mugs")
	mug := suite.fixtures.Product(collection.ID, "Mug", "20.00")
	cart := suite.fixtures.Cart()

	var g errgroup.Group
	for i := 0; i < adds; i++ {
		g.Go(func() error {
			_, err := suite.carts.AddItem(suite.ctx, cart.ID, &services.AddCartItemRequest{ProductID: mug.ID, Quantity: 1})
			return err
		})
	}
	require.NoError(suite.T(), g.Wait())

	items, err := suite.carts.ListItems(suite.ctx, cart.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), items, 1)
	assert.Equal(suite.T(), adds, items[0].Quantity)
}

func (suite *ServiceTestSuite) TestAddItemUnknownProduct() {
	cart := suite.fixtures.Cart()

	_, err := suite.carts.AddItem(suite.ctx, cart.ID, &services.AddCartItemRequest{ProductID: 999, Quantity: 1})

	var validationErr *services.ValidationError
	require.ErrorAs(suite.T(), err, &validationErr)
	assert.Equal(suite.T(), "product_id", validationErr.Field)

	var count int64
	suite.db.Model(&models.CartItem{}).Count(&count)
	assert.Zero(suite.T(), count)
}

func (suite *ServiceTestSuite) TestAddItemUnknownCart() {
	collection := suite.fixtures.Collection("Mugs")
	mug := suite.fixtures.Product(collection.ID, "Mug", "20.00")

	_, err := suite.carts.AddItem(suite.ctx, uuid.New(), &services.AddCartItemRequest{ProductID: mug.ID, Quantity: 1})
	assert.ErrorIs(suite.T(), err, services.ErrNotFound)
}

func (suite *ServiceTestSuite) TestAddItemQuantityLimit() {
	collection := suite.fixtures.Collection("Mugs")
	mug := suite.fixtures.Product(collection.ID, "Mug", "20.00")
	cart := suite.fixtures.Cart()

	full, err := suite.carts.AddItem(suite.ctx, cart.ID, &services.AddCartItemRequest{ProductID: mug.ID, Quantity: models.MaxCartItemQuantity})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.MaxCartItemQuantity, full.Quantity)

	_, err = suite.carts.AddItem(suite.ctx, cart.ID, &services.AddCartItemRequest{ProductID: mug.ID, Quantity: 1})
	var validationErr *services.ValidationError
	require.ErrorAs(suite.T(), err, &validationErr)
	assert.Equal(suite.T(), "quantity", validationErr.Field)
	assert.Equal(suite.T(), services.ReasonQuantityLimit, validationErr.Reason)

	items, err := suite.carts.ListItems(suite.ctx, cart.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), items, 1)
	assert.Equal(suite.T(), models.MaxCartItemQuantity, items[0].Quantity)

	total, err := suite.carts.GetCart(suite.ctx, cart.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "655340.00", total.TotalPrice().StringFixed(2))
}

func (suite *ServiceTestSuite) TestUpdateItemOverwritesQuantity() {
	collection := suite.fixtures.Collection("Mugs")
	mug := suite.fixtures.Product(collection.ID, "Mug", "20.00")
	cart := suite.fixtures.Cart()

	item, err := suite.carts.AddItem(suite.ctx, cart.ID, &services.AddCartItemRequest{ProductID: mug.ID, Quantity: 4})
	require.NoError(suite.T(), err)

	updated, err := suite.carts.UpdateItem(suite.ctx, cart.ID, item.ID, &services.UpdateCartItemRequest{Quantity: 1})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, updated.Quantity)

	_, err = suite.carts.UpdateItem(suite.ctx, suite.fixtures.Cart().ID, item.ID, &services.UpdateCartItemRequest{Quantity: 2})
	assert.ErrorIs(suite.T(), err, services.ErrNotFound)
}

func (suite *ServiceTestSuite) TestCartTotalPrice() {
	collection := suite.fixtures.Collection("Mugs")
	mug := suite.fixtures.Product(collection.ID, "Mug", "20.00")
	cup := suite.fixtures.Product(collection.ID, "Cup", "5.50")

	empty, err := suite.carts.CreateCart(suite.ctx)
	require.NoError(suite.T(), err)
	loaded, err := suite.carts.GetCart(suite.ctx, empty.ID)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), loaded.TotalPrice().IsZero())

	_, err = suite.carts.AddItem(suite.ctx, empty.ID, &services.AddCartItemRequest{ProductID: mug.ID, Quantity: 2})
	require.NoError(suite.T(), err)
	_, err = suite.carts.AddItem(suite.ctx, empty.ID, &services.AddCartItemRequest{ProductID: cup.ID, Quantity: 3})
	require.NoError(suite.T(), err)

	loaded, err = suite.carts.GetCart(suite.ctx, empty.ID)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), loaded.Items, 2)
	assert.True(suite.T(), decimal.RequireFromString("56.50").Equal(loaded.TotalPrice()), loaded.TotalPrice().String())
}

func (suite *ServiceTestSuite) TestDeleteCartRemovesItems() {
	collection := suite.fixtures.Collection("Mugs")
	mug := suite.fixtures.Product(collection.ID, "Mug", "20.00")
	cart := suite.fixtures.Cart()

	_, err := suite.carts.AddItem(suite.ctx, cart.ID, &services.AddCartItemRequest{ProductID: mug.ID, Quantity: 1})
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.carts.DeleteCart(suite.ctx, cart.ID))

	_, err = suite.carts.GetCart(suite.ctx, cart.ID)
	assert.ErrorIs(suite.T(), err, services.ErrNotFound)

	var count int64
	suite.db.Model(&models.CartItem{}).Count(&count)
	assert.Zero(suite.T(), count)

	assert.ErrorIs(suite.T(), suite.carts.DeleteCart(suite.ctx, cart.ID), services.ErrNotFound)
}

func (suite *ServiceTestSuite) TestDeleteItemScopedByCart() {
	collection := suite.fixtures.Collection("Mugs")
	mug := suite.fixtures.Product(collection.ID, "Mug", "20.00")
	cart := suite.fixtures.Cart()
	other := suite.fixtures.Cart()

	item, err := suite.carts.AddItem(suite.ctx, cart.ID, &services.AddCartItemRequest{ProductID: mug.ID, Quantity: 1})
	require.NoError(suite.T(), err)

	assert.ErrorIs(suite.T(), suite.carts.DeleteItem(suite.ctx, other.ID, item.ID), services.ErrNotFound)
	assert.NoError(suite.T(), suite.carts.DeleteItem(suite.ctx, cart.ID, item.ID))

	_, err = suite.carts.GetItem(suite.ctx, cart.ID, item.ID)
	assert.ErrorIs(suite.T(), err, services.ErrNotFound)
}
