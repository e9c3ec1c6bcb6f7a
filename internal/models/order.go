// internal/models/order.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Orders are written by checkout tooling outside this service; the API only
// reads order items to decide whether a product may be deleted.
type Order struct {
	BaseModel
	PlacedAt      time.Time     `json:"placed_at" gorm:"autoCreateTime"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"type:varchar(20);default:'pending';index"`

	// Relationships
	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:RESTRICT"`
}

type OrderItem struct {
	BaseModel
	OrderID   uint            `json:"order_id" gorm:"not null;index"`
	ProductID uint            `json:"product_id" gorm:"not null;index"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null"`

	// Relationships
	Product Product `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
}
