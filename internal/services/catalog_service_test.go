package services_test

import (
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/storefront/internal/models"
	"github.com/javajoker/storefront/internal/services"
	"github.com/javajoker/storefront/internal/utils"
)

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func (suite *ServiceTestSuite) TestCollectionProductCount() {
	mugs := suite.fixtures.Collection("Mugs")
	empty := suite.fixtures.Collection("Empty")
	suite.fixtures.Product(mugs.ID, "Mug", "20.00")
	suite.fixtures.Product(mugs.ID, "Cup", "5.50")

	collections, err := suite.collections.ListCollections(suite.ctx)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), collections, 2)
	assert.Equal(suite.T(), int64(2), collections[0].ProductCount)
	assert.Equal(suite.T(), int64(0), collections[1].ProductCount)

	got, err := suite.collections.GetCollection(suite.ctx, empty.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Empty", got.Title)
	assert.Equal(suite.T(), int64(0), got.ProductCount)

	_, err = suite.collections.GetCollection(suite.ctx, 999)
	assert.ErrorIs(suite.T(), err, services.ErrNotFound)
}

func (suite *ServiceTestSuite) TestUpdateCollection() {
	mugs := suite.fixtures.Collection("Mugs")
	suite.fixtures.Product(mugs.ID, "Mug", "20.00")

	updated, err := suite.collections.UpdateCollection(suite.ctx, mugs.ID, &services.CollectionRequest{Title: "Cups"})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Cups", updated.Title)
	assert.Equal(suite.T(), int64(1), updated.ProductCount)

	_, err = suite.collections.UpdateCollection(suite.ctx, 999, &services.CollectionRequest{Title: "x"})
	assert.ErrorIs(suite.T(), err, services.ErrNotFound)
}

func (suite *ServiceTestSuite) TestDeleteCollectionGuard() {
	mugs := suite.fixtures.Collection("Mugs")
	empty := suite.fixtures.Collection("Empty")
	suite.fixtures.Product(mugs.ID, "Mug", "20.00")

	err := suite.collections.DeleteCollection(suite.ctx, mugs.ID)
	assert.ErrorIs(suite.T(), err, services.ErrCollectionNotEmpty)

	_, err = suite.collections.GetCollection(suite.ctx, mugs.ID)
	assert.NoError(suite.T(), err)

	assert.NoError(suite.T(), suite.collections.DeleteCollection(suite.ctx, empty.ID))
	assert.ErrorIs(suite.T(), suite.collections.DeleteCollection(suite.ctx, empty.ID), services.ErrNotFound)
}

func (suite *ServiceTestSuite) TestDeleteProductGuard() {
	mugs := suite.fixtures.Collection("Mugs")
	ordered := suite.fixtures.Product(mugs.ID, "Mug", "20.00")
	free := suite.fixtures.Product(mugs.ID, "Cup", "5.50")
	suite.fixtures.OrderItem(ordered, 1)
	suite.fixtures.Review(free.ID, "ann")
	cart := suite.fixtures.Cart()
	_, err := suite.carts.AddItem(suite.ctx, cart.ID, &services.AddCartItemRequest{ProductID: free.ID, Quantity: 1})
	require.NoError(suite.T(), err)

	err = suite.products.DeleteProduct(suite.ctx, ordered.ID)
	assert.ErrorIs(suite.T(), err, services.ErrProductInUse)
	_, err = suite.products.GetProduct(suite.ctx, ordered.ID)
	assert.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.products.DeleteProduct(suite.ctx, free.ID))
	_, err = suite.products.GetProduct(suite.ctx, free.ID)
	assert.ErrorIs(suite.T(), err, services.ErrNotFound)

	var reviews, items int64
	suite.db.Model(&models.Review{}).Count(&reviews)
	suite.db.Model(&models.CartItem{}).Count(&items)
	assert.Zero(suite.T(), reviews)
	assert.Zero(suite.T(), items)
}

func (suite *ServiceTestSuite) TestCreateProduct() {
	mugs := suite.fixtures.Collection("Mugs")

	product, err := suite.products.CreateProduct(suite.ctx, &services.ProductRequest{
		Title:      "Mug",
		Slug:       "mug",
		Inventory:  3,
		UnitPrice:  price("12.40"),
		Collection: mugs.ID,
	})
	require.NoError(suite.T(), err)
	assert.NotZero(suite.T(), product.ID)
	assert.False(suite.T(), product.LastUpdate.IsZero())

	_, err = suite.products.CreateProduct(suite.ctx, &services.ProductRequest{
		Title:      "Orphan",
		Slug:       "orphan",
		UnitPrice:  price("1"),
		Collection: 999,
	})
	var validationErr *services.ValidationError
	require.ErrorAs(suite.T(), err, &validationErr)
	assert.Equal(suite.T(), "collection", validationErr.Field)
}

func (suite *ServiceTestSuite) TestUpdateProduct() {
	mugs := suite.fixtures.Collection("Mugs")
	cups := suite.fixtures.Collection("Cups")
	mug := suite.fixtures.Product(mugs.ID, "Mug", "20.00")

	updated, err := suite.products.UpdateProduct(suite.ctx, mug.ID, &services.ProductRequest{
		Title:       "Big Mug",
		Slug:        "big-mug",
		Description: "holds more",
		UnitPrice:   price("25.00"),
		Collection:  cups.ID,
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Big Mug", updated.Title)
	assert.Equal(suite.T(), cups.ID, updated.CollectionID)
	assert.Zero(suite.T(), updated.Inventory)

	_, err = suite.products.UpdateProduct(suite.ctx, 999, &services.ProductRequest{Title: "x", Slug: "x", UnitPrice: price("1"), Collection: cups.ID})
	assert.ErrorIs(suite.T(), err, services.ErrNotFound)
}

func (suite *ServiceTestSuite) TestSearchProducts() {
	mugs := suite.fixtures.Collection("Mugs")
	shirts := suite.fixtures.Collection("Shirts")
	suite.fixtures.Product(mugs.ID, "Coffee Mug", "20.00")
	suite.fixtures.Product(mugs.ID, "Tea Cup", "5.50")
	suite.fixtures.Product(shirts.ID, "Coffee Shirt", "30.00")

	page := utils.PaginationParams{Page: 1, PageSize: 10}

	tests := []struct {
		name     string
		query    services.ProductQuery
		expected []string
	}{
		{"all", services.ProductQuery{PaginationParams: page}, []string{"Coffee Mug", "Tea Cup", "Coffee Shirt"}},
		{"search is case insensitive", services.ProductQuery{PaginationParams: withSearch(page, "coffee")}, []string{"Coffee Mug", "Coffee Shirt"}},
		{"search matches description", services.ProductQuery{PaginationParams: withSearch(page, "CUP DESC")}, []string{"Tea Cup"}},
		{"collection", services.ProductQuery{PaginationParams: page, CollectionID: &shirts.ID}, []string{"Coffee Shirt"}},
		{"price range inclusive", services.ProductQuery{PaginationParams: page, PriceMin: price("5.50"), PriceMax: price("20")}, []string{"Coffee Mug", "Tea Cup"}},
		{"ordering descending", services.ProductQuery{PaginationParams: withOrdering(page, "-unit_price")}, []string{"Coffee Shirt", "Coffee Mug", "Tea Cup"}},
		{"unknown ordering falls back to id", services.ProductQuery{PaginationParams: withOrdering(page, "title")}, []string{"Coffee Mug", "Tea Cup", "Coffee Shirt"}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			products, total, err := suite.products.SearchProducts(suite.ctx, tt.query)
			require.NoError(suite.T(), err)
			assert.Equal(suite.T(), int64(len(tt.expected)), total)
			assert.Equal(suite.T(), tt.expected, titles(products))
		})
	}
}

func (suite *ServiceTestSuite) TestSearchProductsMatchesWildcardsLiterally() {
	mugs := suite.fixtures.Collection("Mugs")
	suite.fixtures.Product(mugs.ID, "Mug", "20.00")
	suite.fixtures.Product(mugs.ID, "50% off", "10.00")
	suite.fixtures.Product(mugs.ID, "Mug_Large", "25.00")

	page := utils.PaginationParams{Page: 1, PageSize: 10}

	tests := []struct {
		search   string
		expected []string
	}{
		{"%", []string{"50% off"}},
		{"50%", []string{"50% off"}},
		{"_", []string{"Mug_Large"}},
		{"mug_", []string{"Mug_Large"}},
		{`\`, []string{}},
	}

	for _, tt := range tests {
		suite.Run(tt.search, func() {
			products, total, err := suite.products.SearchProducts(suite.ctx, services.ProductQuery{PaginationParams: withSearch(page, tt.search)})
			require.NoError(suite.T(), err)
			assert.Equal(suite.T(), int64(len(tt.expected)), total)
			assert.Equal(suite.T(), tt.expected, titles(products))
		})
	}
}

func (suite *ServiceTestSuite) TestSearchProductsPaginates() {
	mugs := suite.fixtures.Collection("Mugs")
	for _, title := range []string{"A", "B", "C", "D", "E"} {
		suite.fixtures.Product(mugs.ID, title, "1.00")
	}

	products, total, err := suite.products.SearchProducts(suite.ctx, services.ProductQuery{
		PaginationParams: utils.PaginationParams{Page: 2, PageSize: 2},
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(5), total)
	assert.Equal(suite.T(), []string{"C", "D"}, titles(products))
}

func (suite *ServiceTestSuite) TestReviewsScopedByProduct() {
	mugs := suite.fixtures.Collection("Mugs")
	a := suite.fixtures.Product(mugs.ID, "A", "1.00")
	b := suite.fixtures.Product(mugs.ID, "B", "1.00")
	suite.fixtures.Review(b.ID, "bob")

	created, err := suite.reviews.CreateReview(suite.ctx, a.ID, &services.ReviewRequest{Name: "ann", Description: "great"})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), a.ID, created.ProductID)

	reviews, err := suite.reviews.ListReviews(suite.ctx, a.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), reviews, 1)
	assert.Equal(suite.T(), "ann", reviews[0].Name)

	_, err = suite.reviews.GetReview(suite.ctx, b.ID, created.ID)
	assert.ErrorIs(suite.T(), err, services.ErrNotFound)
	assert.ErrorIs(suite.T(), suite.reviews.DeleteReview(suite.ctx, b.ID, created.ID), services.ErrNotFound)

	updated, err := suite.reviews.UpdateReview(suite.ctx, a.ID, created.ID, &services.ReviewRequest{Name: "ann", Description: "still great"})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "still great", updated.Description)

	_, err = suite.reviews.ListReviews(suite.ctx, 999)
	assert.ErrorIs(suite.T(), err, services.ErrNotFound)

	require.NoError(suite.T(), suite.reviews.DeleteReview(suite.ctx, a.ID, created.ID))
}

func withSearch(p utils.PaginationParams, search string) utils.PaginationParams {
	p.Search = search
	return p
}

func withOrdering(p utils.PaginationParams, ordering string) utils.PaginationParams {
	p.Ordering = ordering
	return p
}

func titles(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Title)
	}
	return out
}
