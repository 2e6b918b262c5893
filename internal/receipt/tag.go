package receipt

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/zombor/receipt-printer/internal/catalog"
)

// ErrInvalidTagFormat is returned for tags with an empty barcode or a quantity
// that is not a positive number.
var ErrInvalidTagFormat = errors.New("invalid tag format")

const tagSeparator = "-"

// Tag is a single scanned token
type Tag struct {
	Barcode  string
	Quantity decimal.Decimal
}

// ParseTag parses "<barcode>" or "<barcode>-<quantity>"
func ParseTag(raw string) (Tag, error) {
	barcode, qty, hasQty := strings.Cut(strings.TrimSpace(raw), tagSeparator)
	if barcode == "" {
		return Tag{}, fmt.Errorf("%w: %q has no barcode", ErrInvalidTagFormat, raw)
	}
	if !hasQty {
		return Tag{Barcode: barcode, Quantity: decimal.NewFromInt(1)}, nil
	}

	quantity, err := decimal.NewFromString(qty)
	if err != nil {
		return Tag{}, fmt.Errorf("%w: %q has non-numeric quantity", ErrInvalidTagFormat, raw)
	}
	if !quantity.IsPositive() {
		return Tag{}, fmt.Errorf("%w: %q has non-positive quantity", ErrInvalidTagFormat, raw)
	}
	return Tag{Barcode: barcode, Quantity: quantity}, nil
}

// buildLineItems aggregates tags into one line item per known barcode,
// in the order each barcode was first seen. Unknown barcodes are dropped.
func buildLineItems(tags []string, items []catalog.Item) ([]LineItem, error) {
	index := make(map[string]catalog.Item, len(items))
	for _, item := range items {
		index[item.Barcode] = item
	}

	lineItems := make([]LineItem, 0)
	positions := make(map[string]int)
	for _, raw := range tags {
		tag, err := ParseTag(raw)
		if err != nil {
			return nil, err
		}

		if pos, ok := positions[tag.Barcode]; ok {
			lineItems[pos].Quantity = lineItems[pos].Quantity.Add(tag.Quantity)
			continue
		}

		entry, ok := index[tag.Barcode]
		if !ok {
			slog.Debug("Skipping unknown barcode", "barcode", tag.Barcode)
			continue
		}
		positions[tag.Barcode] = len(lineItems)
		lineItems = append(lineItems, LineItem{
			Barcode:  entry.Barcode,
			Name:     entry.Name,
			Unit:     entry.Unit,
			Price:    entry.Price,
			Quantity: tag.Quantity,
		})
	}
	return lineItems, nil
}
