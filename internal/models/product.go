// internal/models/product.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Collection struct {
	BaseModel
	Title string `json:"title" gorm:"size:255;not null"`

	// Filled by queries that annotate the row; never stored.
	ProductCount int64 `json:"product_count" gorm:"->;-:migration"`
}

type Product struct {
	BaseModel
	Title        string          `json:"title" gorm:"size:255;not null"`
	Slug         string          `json:"slug" gorm:"size:255;not null;index"`
	Description  string          `json:"description" gorm:"type:text"`
	Inventory    int             `json:"inventory" gorm:"not null;default:0"`
	UnitPrice    decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	CollectionID uint            `json:"collection" gorm:"not null;index"`
	LastUpdate   time.Time       `json:"-" gorm:"autoUpdateTime;index"`

	// Relationships
	Collection Collection `json:"-" gorm:"foreignKey:CollectionID;constraint:OnDelete:RESTRICT"`
	Reviews    []Review   `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (p *Product) Tax() decimal.Decimal {
	return CalculateTax(p.UnitPrice)
}

func (p *Product) PriceWithTax() decimal.Decimal {
	return PriceWithTax(p.UnitPrice)
}

type Review struct {
	BaseModel
	ProductID   uint      `json:"-" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Date        time.Time `json:"date" gorm:"autoCreateTime"`
}
