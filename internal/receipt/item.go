package receipt

import "github.com/shopspring/decimal"

// LineItem is the aggregated quantity and discount for one barcode on a receipt
type LineItem struct {
	Barcode  string
	Name     string
	Unit     string
	Price    decimal.Decimal
	Quantity decimal.Decimal
	Discount decimal.Decimal
}

// Gross is price times quantity before any discount
func (i LineItem) Gross() decimal.Decimal {
	return i.Price.Mul(i.Quantity)
}

// Subtotal is the amount charged for the line
func (i LineItem) Subtotal() decimal.Decimal {
	return i.Gross().Sub(i.Discount)
}

// UnitLabel pluralizes the unit when more than one is bought
func (i LineItem) UnitLabel() string {
	if i.Quantity.GreaterThan(decimal.NewFromInt(1)) {
		return i.Unit + "s"
	}
	return i.Unit
}
