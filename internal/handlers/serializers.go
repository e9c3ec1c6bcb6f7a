// internal/handlers/serializers.go
package handlers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/javajoker/storefront/internal/models"
)

// Money renders a decimal amount as a JSON string with two places.
type Money decimal.Decimal

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + decimal.Decimal(m).StringFixed(2) + `"`), nil
}

// ExactMoney renders a computed amount without rounding, padded to at least
// two places: 0.9995 stays "0.9995", 1 becomes "1.00".
type ExactMoney decimal.Decimal

func (m ExactMoney) MarshalJSON() ([]byte, error) {
	d := decimal.Decimal(m)
	places := int32(2)
	for places < -d.Exponent() && !d.Equal(d.Truncate(places)) {
		places++
	}
	return []byte(`"` + d.StringFixed(places) + `"`), nil
}

type CollectionResponse struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	ProductCount int64  `json:"product_count"`
}

type ProductResponse struct {
	ID           uint       `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Description  string     `json:"description"`
	Inventory    int        `json:"inventory"`
	UnitPrice    Money      `json:"unit_price"`
	Tax          ExactMoney `json:"tax"`
	PriceWithTax ExactMoney `json:"price_with_tax"`
	Collection   uint       `json:"collection"`
}

type ReviewResponse struct {
	ID          uint      `json:"id"`
	Date        time.Time `json:"date"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

type CartResponse struct {
	ID         uuid.UUID          `json:"id"`
	Items      []CartItemResponse `json:"items"`
	TotalPrice Money              `json:"total_price"`
}

type SimpleProductResponse struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	UnitPrice Money  `json:"unit_price"`
}

type CartItemResponse struct {
	ID         uint                  `json:"id"`
	Product    SimpleProductResponse `json:"product"`
	Quantity   int                   `json:"quantity"`
	TotalPrice Money                 `json:"total_price"`
}

type AddCartItemResponse struct {
	ID        uint `json:"id"`
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type UpdateCartItemResponse struct {
	ID       uint `json:"id"`
	Quantity int  `json:"quantity"`
}

func newCollectionResponse(collection *models.Collection) CollectionResponse {
	return CollectionResponse{
		ID:           collection.ID,
		Title:        collection.Title,
		ProductCount: collection.ProductCount,
	}
}

func newProductResponse(product *models.Product) ProductResponse {
	return ProductResponse{
		ID:           product.ID,
		Title:        product.Title,
		Slug:         product.Slug,
		Description:  product.Description,
		Inventory:    product.Inventory,
		UnitPrice:    Money(product.UnitPrice),
		Tax:          ExactMoney(product.Tax()),
		PriceWithTax: ExactMoney(product.PriceWithTax()),
		Collection:   product.CollectionID,
	}
}

func newReviewResponse(review *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:          review.ID,
		Date:        review.Date,
		Name:        review.Name,
		Description: review.Description,
	}
}

func newCartResponse(cart *models.Cart) CartResponse {
	items := make([]CartItemResponse, 0, len(cart.Items))
	for i := range cart.Items {
		items = append(items, newCartItemResponse(&cart.Items[i]))
	}
	return CartResponse{
		ID:         cart.ID,
		Items:      items,
		TotalPrice: Money(cart.TotalPrice()),
	}
}

func newCartItemResponse(item *models.CartItem) CartItemResponse {
	return CartItemResponse{
		ID: item.ID,
		Product: SimpleProductResponse{
			ID:        item.Product.ID,
			Title:     item.Product.Title,
			UnitPrice: Money(item.Product.UnitPrice),
		},
		Quantity:   item.Quantity,
		TotalPrice: Money(item.TotalPrice()),
	}
}

// cartItemOperation selects the representation of a cart item.
type cartItemOperation int

const (
	cartItemRead cartItemOperation = iota
	cartItemAdd
	cartItemUpdate
)

var cartItemSerializers = map[cartItemOperation]func(*models.CartItem) interface{}{
	cartItemRead: func(item *models.CartItem) interface{} {
		return newCartItemResponse(item)
	},
	cartItemAdd: func(item *models.CartItem) interface{} {
		return AddCartItemResponse{ID: item.ID, ProductID: item.ProductID, Quantity: item.Quantity}
	},
	cartItemUpdate: func(item *models.CartItem) interface{} {
		return UpdateCartItemResponse{ID: item.ID, Quantity: item.Quantity}
	},
}

func serializeCartItem(op cartItemOperation, item *models.CartItem) interface{} {
	return cartItemSerializers[op](item)
}
