package catalog

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// Source provides catalog items and promotions
type Source interface {
	LoadAllItems() ([]Item, error)
	LoadPromotions() ([]Promotion, error)
}

// Cached loads a Source once and serves copies of the result afterwards.
// It is safe for concurrent use; there is no way to refresh it.
type Cached struct {
	source Source

	once       sync.Once
	items      []Item
	promotions []Promotion
	err        error
}

// NewCached wraps source so it is only read on first use
func NewCached(source Source) *Cached {
	return &Cached{source: source}
}

func (c *Cached) load() {
	c.once.Do(func() {
		items, err := c.source.LoadAllItems()
		if err != nil {
			c.err = fmt.Errorf("loading items: %w", err)
			return
		}
		promotions, err := c.source.LoadPromotions()
		if err != nil {
			c.err = fmt.Errorf("loading promotions: %w", err)
			return
		}
		c.items = items
		c.promotions = promotions
		slog.Debug("Catalog loaded", "items", len(items), "promotions", len(promotions))
	})
}

// LoadAllItems returns the cached items
func (c *Cached) LoadAllItems() ([]Item, error) {
	c.load()
	if c.err != nil {
		return nil, c.err
	}
	return slices.Clone(c.items), nil
}

// LoadPromotions returns the cached promotions
func (c *Cached) LoadPromotions() ([]Promotion, error) {
	c.load()
	if c.err != nil {
		return nil, c.err
	}
	promotions := make([]Promotion, len(c.promotions))
	for i, p := range c.promotions {
		promotions[i] = Promotion{Type: p.Type, Barcodes: slices.Clone(p.Barcodes)}
	}
	return promotions, nil
}

// Import replaces the contents of db with everything in source
func Import(db DB, source Source) (int, int, error) {
	items, err := source.LoadAllItems()
	if err != nil {
		return 0, 0, fmt.Errorf("loading items: %w", err)
	}
	promotions, err := source.LoadPromotions()
	if err != nil {
		return 0, 0, fmt.Errorf("loading promotions: %w", err)
	}

	if err := db.Reset(); err != nil {
		return 0, 0, fmt.Errorf("resetting catalog: %w", err)
	}
	for i := range items {
		if err := db.SaveItem(&items[i]); err != nil {
			return 0, 0, fmt.Errorf("saving item %s: %w", items[i].Barcode, err)
		}
	}
	for i := range promotions {
		if err := db.SavePromotion(&promotions[i]); err != nil {
			return 0, 0, fmt.Errorf("saving promotion %d: %w", i, err)
		}
	}
	return len(items), len(promotions), nil
}
