package receipt

import (
	"errors"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/zombor/receipt-printer/internal/catalog"
)

// ErrUnsupportedPromotion is returned by NewRule for promotion types it does not know
var ErrUnsupportedPromotion = errors.New("unsupported promotion type")

// Rule is a promotion that can price a discount for a line item.
// New promotion kinds implement Rule and are added to NewRule.
type Rule interface {
	Kind() catalog.PromotionType
	Covers(barcode string) bool
	Discount(item LineItem) decimal.Decimal
}

// NewRule converts a stored promotion into a Rule
func NewRule(p catalog.Promotion) (Rule, error) {
	switch p.Type {
	case catalog.BuyTwoGetOneFree:
		return BuyTwoGetOneFree{Barcodes: slices.Clone(p.Barcodes)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPromotion, p.Type)
	}
}

// BuyTwoGetOneFree discounts one unit for every complete group of three
type BuyTwoGetOneFree struct {
	Barcodes []string
}

var groupSize = decimal.NewFromInt(3)

// Kind implements Rule
func (BuyTwoGetOneFree) Kind() catalog.PromotionType {
	return catalog.BuyTwoGetOneFree
}

// Covers implements Rule
func (r BuyTwoGetOneFree) Covers(barcode string) bool {
	return slices.Contains(r.Barcodes, barcode)
}

// Discount returns floor(quantity / 3) * price
func (r BuyTwoGetOneFree) Discount(item LineItem) decimal.Decimal {
	free, _ := item.Quantity.QuoRem(groupSize, 0)
	return free.Mul(item.Price)
}
