package receipt

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	receiptHeader    = "***<store earning no money>Receipt ***"
	receiptSeparator = "----------------------"
	receiptFooter    = "**********************"
)

// Summary holds the receipt totals
type Summary struct {
	Total    decimal.Decimal
	Discount decimal.Decimal
}

// Summarize adds up subtotals and discounts across items
func Summarize(items []LineItem) Summary {
	var summary Summary
	for _, item := range items {
		summary.Total = summary.Total.Add(item.Subtotal())
		summary.Discount = summary.Discount.Add(item.Discount)
	}
	return summary
}

// Format renders items and their totals as receipt text
func Format(items []LineItem) string {
	var b strings.Builder
	b.WriteString(receiptHeader + "\n")
	for _, item := range items {
		b.WriteString(formatLine(item) + "\n")
	}

	summary := Summarize(items)
	b.WriteString(receiptSeparator + "\n")
	fmt.Fprintf(&b, "Total：%s(yuan)\n", summary.Total.StringFixed(2))
	fmt.Fprintf(&b, "Discounted prices：%s(yuan)\n", summary.Discount.StringFixed(2))
	b.WriteString(receiptFooter)
	return b.String()
}

func formatLine(item LineItem) string {
	return fmt.Sprintf("Name：%s，Quantity：%s %s，Unit：%s(yuan)，Subtotal：%s(yuan)",
		item.Name,
		item.Quantity.String(),
		item.UnitLabel(),
		item.Price.StringFixed(2),
		item.Subtotal().StringFixed(2),
	)
}
