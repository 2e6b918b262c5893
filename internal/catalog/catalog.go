package catalog

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// PromotionType identifies the kind of discount a promotion grants
type PromotionType string

// BuyTwoGetOneFree gives away one unit for every complete group of three
const BuyTwoGetOneFree PromotionType = "BUY_TWO_GET_ONE_FREE"

// ErrInvalidItem is returned for items with no barcode, a negative price,
// or a barcode that appears more than once in a catalog.
var ErrInvalidItem = errors.New("invalid catalog item")

// Item is a catalog entry keyed by barcode
type Item struct {
	Barcode string          `json:"barcode"`
	Name    string          `json:"name"`
	Unit    string          `json:"unit"`
	Price   decimal.Decimal `json:"price"`
}

// Validate checks a single item
func (i Item) Validate() error {
	if i.Barcode == "" {
		return fmt.Errorf("%w: barcode is required", ErrInvalidItem)
	}
	if i.Price.IsNegative() {
		return fmt.Errorf("%w: %s has negative price %s", ErrInvalidItem, i.Barcode, i.Price)
	}
	return nil
}

// ValidateItems checks every item and that no barcode repeats
func ValidateItems(items []Item) error {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if _, ok := seen[item.Barcode]; ok {
			return fmt.Errorf("%w: duplicate barcode %s", ErrInvalidItem, item.Barcode)
		}
		seen[item.Barcode] = struct{}{}
	}
	return nil
}

// Promotion is a discount policy plus the barcodes it applies to
type Promotion struct {
	Type     PromotionType `json:"type"`
	Barcodes []string      `json:"barcodes"`
}
