// internal/models/cart.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Cart struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"-"`

	// Relationships
	Items []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TotalPrice sums every line. Items must be loaded with their product.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].TotalPrice())
	}
	return total
}

// MaxCartItemQuantity bounds a single line, merged adds included.
const MaxCartItemQuantity = 32767

type CartItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CartID    uuid.UUID `json:"-" gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product"`
	ProductID uint      `json:"product_id" gorm:"not null;uniqueIndex:idx_cart_items_cart_product;index"`
	Quantity  int       `json:"quantity" gorm:"not null;check:chk_cart_items_quantity,quantity > 0 AND quantity <= 32767"`

	// Relationships
	Product Product `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (i *CartItem) TotalPrice() decimal.Decimal {
	return LineTotal(i.Quantity, i.Product.UnitPrice)
}
