package receipt

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/zombor/receipt-printer/internal/catalog"
)

// rulesFrom converts promotions to rules, keeping source order and dropping
// types that are not supported.
func rulesFrom(promotions []catalog.Promotion) []Rule {
	rules := make([]Rule, 0, len(promotions))
	for _, p := range promotions {
		rule, err := NewRule(p)
		if err != nil {
			slog.Debug("Ignoring promotion", "type", p.Type, "error", err)
			continue
		}
		rules = append(rules, rule)
	}
	return rules
}

// selectRule picks the first buy-two-get-one-free rule that covers any of the items
func selectRule(items []LineItem, rules []Rule) Rule {
	for _, rule := range rules {
		if rule.Kind() != catalog.BuyTwoGetOneFree {
			continue
		}
		for _, item := range items {
			if rule.Covers(item.Barcode) {
				return rule
			}
		}
	}
	return nil
}

// Discounts computes the discount per barcode for the given items
func Discounts(items []LineItem, rules []Rule) map[string]decimal.Decimal {
	discounts := make(map[string]decimal.Decimal)
	rule := selectRule(items, rules)
	if rule == nil {
		return discounts
	}
	for _, item := range items {
		if rule.Covers(item.Barcode) {
			discounts[item.Barcode] = rule.Discount(item)
		}
	}
	return discounts
}

// ApplyDiscounts returns a copy of items with discounts set from the map.
// Items without an entry get a zero discount.
func ApplyDiscounts(items []LineItem, discounts map[string]decimal.Decimal) []LineItem {
	result := make([]LineItem, len(items))
	for i, item := range items {
		item.Discount = discounts[item.Barcode]
		result[i] = item
	}
	return result
}
