// internal/models/pricing.go
package models

import "github.com/shopspring/decimal"

// TaxRate is the flat sales tax applied to every product.
var TaxRate = decimal.New(5, -2)

// CalculateTax returns unitPrice * TaxRate without rounding.
func CalculateTax(unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(TaxRate)
}

// PriceWithTax returns unitPrice plus its tax.
func PriceWithTax(unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Add(CalculateTax(unitPrice))
}

// LineTotal is quantity * unitPrice.
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}
