package receipt

import (
	"fmt"
	"log/slog"

	"github.com/zombor/receipt-printer/internal/catalog"
)

// ItemSource provides the catalog of items that tags are resolved against
type ItemSource interface {
	LoadAllItems() ([]catalog.Item, error)
}

// PromotionSource provides the promotions that may apply to a receipt
type PromotionSource interface {
	LoadPromotions() ([]catalog.Promotion, error)
}

// Service prints receipts
type Service struct {
	items      ItemSource
	promotions PromotionSource
}

// NewService creates a new Service reading from the given sources on every call.
// Wrap the sources in catalog.NewCached to load them only once.
func NewService(items ItemSource, promotions PromotionSource) *Service {
	return &Service{
		items:      items,
		promotions: promotions,
	}
}

// LineItems resolves tags against the catalog and applies the promotion
func (s *Service) LineItems(tags []string) ([]LineItem, error) {
	items, err := s.items.LoadAllItems()
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	if err := catalog.ValidateItems(items); err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	promotions, err := s.promotions.LoadPromotions()
	if err != nil {
		return nil, fmt.Errorf("loading promotions: %w", err)
	}

	lineItems, err := buildLineItems(tags, items)
	if err != nil {
		return nil, fmt.Errorf("parsing tags: %w", err)
	}

	discounts := Discounts(lineItems, rulesFrom(promotions))
	return ApplyDiscounts(lineItems, discounts), nil
}

// PrintReceipt converts tags into receipt text
func (s *Service) PrintReceipt(tags []string) (string, error) {
	lineItems, err := s.LineItems(tags)
	if err != nil {
		return "", err
	}
	slog.Debug("Printing receipt", "tags", len(tags), "line_items", len(lineItems))
	return Format(lineItems), nil
}
