package catalog

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const (
	itemBucketName      = "items"
	promotionBucketName = "promotions"
)

// DB defines the interface for catalog storage operations
type DB interface {
	// SaveItem stores an item, replacing any item with the same barcode
	SaveItem(item *Item) error

	// GetItem retrieves an item by barcode
	GetItem(barcode string) (*Item, error)

	// LoadAllItems returns every stored item ordered by barcode
	LoadAllItems() ([]Item, error)

	// SavePromotion appends a promotion
	SavePromotion(promotion *Promotion) error

	// LoadPromotions returns promotions in the order they were saved
	LoadPromotions() ([]Promotion, error)

	// Reset removes all items and promotions
	Reset() error

	// Close closes the database connection
	Close() error
}

// BoltDB implements the DB interface using BoltDB
type BoltDB struct {
	db *bbolt.DB
}

// NewBoltDB creates a new BoltDB instance
func NewBoltDB(path string) (*BoltDB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(createBuckets)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &BoltDB{db: db}, nil
}

func createBuckets(tx *bbolt.Tx) error {
	if _, err := tx.CreateBucketIfNotExists([]byte(itemBucketName)); err != nil {
		return err
	}
	if _, err := tx.CreateBucketIfNotExists([]byte(promotionBucketName)); err != nil {
		return err
	}
	return nil
}

// SaveItem stores an item keyed by its barcode
func (b *BoltDB) SaveItem(item *Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(itemBucketName))
		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("marshaling item: %w", err)
		}
		return bucket.Put([]byte(item.Barcode), data)
	})
}

// GetItem retrieves an item by barcode
func (b *BoltDB) GetItem(barcode string) (*Item, error) {
	var item *Item
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(itemBucketName))
		data := bucket.Get([]byte(barcode))
		if data == nil {
			return fmt.Errorf("item not found: %s", barcode)
		}
		return json.Unmarshal(data, &item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// LoadAllItems returns all items
func (b *BoltDB) LoadAllItems() ([]Item, error) {
	items := make([]Item, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(itemBucketName))
		return bucket.ForEach(func(k, v []byte) error {
			var item Item
			if err := json.Unmarshal(v, &item); err != nil {
				return fmt.Errorf("unmarshaling item: %w", err)
			}
			items = append(items, item)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// SavePromotion appends a promotion under the bucket's next sequence number.
// Keys are big-endian so iteration order matches insertion order.
func (b *BoltDB) SavePromotion(promotion *Promotion) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(promotionBucketName))
		seq, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("allocating promotion key: %w", err)
		}
		data, err := json.Marshal(promotion)
		if err != nil {
			return fmt.Errorf("marshaling promotion: %w", err)
		}
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)
		return bucket.Put(key, data)
	})
}

// LoadPromotions returns all promotions
func (b *BoltDB) LoadPromotions() ([]Promotion, error) {
	promotions := make([]Promotion, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(promotionBucketName))
		return bucket.ForEach(func(k, v []byte) error {
			var promotion Promotion
			if err := json.Unmarshal(v, &promotion); err != nil {
				return fmt.Errorf("unmarshaling promotion: %w", err)
			}
			promotions = append(promotions, promotion)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return promotions, nil
}

// Reset drops and recreates both buckets
func (b *BoltDB) Reset() error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{itemBucketName, promotionBucketName} {
			if err := tx.DeleteBucket([]byte(name)); err != nil && !errors.Is(err, bbolt.ErrBucketNotFound) {
				return fmt.Errorf("deleting bucket %s: %w", name, err)
			}
		}
		return createBuckets(tx)
	})
}

// Close closes the database connection
func (b *BoltDB) Close() error {
	return b.db.Close()
}
