package catalog

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

var _ = Describe("BoltDB", func() {
	var (
		tmpDir string
		dbPath string
		db     *BoltDB
	)

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		dbPath = filepath.Join(tmpDir, "test.db")
		var err error
		db, err = NewBoltDB(dbPath)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Describe("SaveItem", func() {
		var (
			item *Item
			err  error
		)

		BeforeEach(func() {
			item = &Item{
				Barcode: "ITEM000001",
				Name:    "Sprite",
				Unit:    "bottle",
				Price:   decimal.RequireFromString("3.00"),
			}
		})

		JustBeforeEach(func() {
			err = db.SaveItem(item)
		})

		When("saving succeeds", func() {
			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should save the item to the database", func() {
				saved, getErr := db.GetItem("ITEM000001")
				Expect(getErr).NotTo(HaveOccurred())
				Expect(saved.Name).To(Equal("Sprite"))
				Expect(saved.Price.Equal(decimal.NewFromInt(3))).To(BeTrue())
			})
		})

		When("an item with the same barcode exists", func() {
			BeforeEach(func() {
				Expect(db.SaveItem(&Item{Barcode: "ITEM000001", Name: "Old", Unit: "can", Price: decimal.NewFromInt(1)})).To(Succeed())
			})

			It("should replace it", func() {
				items, loadErr := db.LoadAllItems()
				Expect(loadErr).NotTo(HaveOccurred())
				Expect(items).To(HaveLen(1))
				Expect(items[0].Name).To(Equal("Sprite"))
			})
		})

		When("the barcode is empty", func() {
			BeforeEach(func() {
				item.Barcode = ""
			})

			It("should return ErrInvalidItem", func() {
				Expect(err).To(MatchError(ErrInvalidItem))
			})
		})

		When("the price is negative", func() {
			BeforeEach(func() {
				item.Price = decimal.RequireFromString("-0.01")
			})

			It("should return ErrInvalidItem", func() {
				Expect(err).To(MatchError(ErrInvalidItem))
			})

			It("should not save the item", func() {
				_, getErr := db.GetItem("ITEM000001")
				Expect(getErr).To(HaveOccurred())
			})
		})
	})

	Describe("GetItem", func() {
		When("item does not exist", func() {
			It("should return an error", func() {
				_, err := db.GetItem("missing")
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("item not found"))
			})
		})
	})

	Describe("LoadAllItems", func() {
		var (
			items []Item
			err   error
		)

		JustBeforeEach(func() {
			items, err = db.LoadAllItems()
		})

		When("no items exist", func() {
			It("should return an empty list", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(items).To(BeEmpty())
			})
		})

		When("items exist", func() {
			BeforeEach(func() {
				Expect(db.SaveItem(&Item{Barcode: "B", Name: "Second", Unit: "bag", Price: decimal.NewFromInt(2)})).To(Succeed())
				Expect(db.SaveItem(&Item{Barcode: "A", Name: "First", Unit: "bag", Price: decimal.NewFromInt(1)})).To(Succeed())
			})

			It("should return them ordered by barcode", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(items).To(HaveLen(2))
				Expect(items[0].Barcode).To(Equal("A"))
				Expect(items[1].Barcode).To(Equal("B"))
			})
		})
	})

	Describe("LoadPromotions", func() {
		var (
			promotions []Promotion
			err        error
		)

		JustBeforeEach(func() {
			promotions, err = db.LoadPromotions()
		})

		When("promotions were saved", func() {
			BeforeEach(func() {
				Expect(db.SavePromotion(&Promotion{Type: BuyTwoGetOneFree, Barcodes: []string{"Z"}})).To(Succeed())
				Expect(db.SavePromotion(&Promotion{Type: "HALF_PRICE", Barcodes: []string{"A"}})).To(Succeed())
				Expect(db.SavePromotion(&Promotion{Type: BuyTwoGetOneFree, Barcodes: []string{"A", "B"}})).To(Succeed())
			})

			It("should return them in insertion order", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(promotions).To(HaveLen(3))
				Expect(promotions[0].Barcodes).To(Equal([]string{"Z"}))
				Expect(promotions[1].Type).To(Equal(PromotionType("HALF_PRICE")))
				Expect(promotions[2].Barcodes).To(Equal([]string{"A", "B"}))
			})
		})
	})

	Describe("Reset", func() {
		BeforeEach(func() {
			Expect(db.SaveItem(&Item{Barcode: "A", Name: "First", Unit: "bag", Price: decimal.NewFromInt(1)})).To(Succeed())
			Expect(db.SavePromotion(&Promotion{Type: BuyTwoGetOneFree, Barcodes: []string{"A"}})).To(Succeed())
		})

		It("should remove all items and promotions", func() {
			Expect(db.Reset()).To(Succeed())

			items, err := db.LoadAllItems()
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(BeEmpty())

			promotions, err := db.LoadPromotions()
			Expect(err).NotTo(HaveOccurred())
			Expect(promotions).To(BeEmpty())
		})
	})

	Describe("Close and reopen", func() {
		It("should persist items", func() {
			Expect(db.SaveItem(&Item{Barcode: "A", Name: "First", Unit: "bag", Price: decimal.RequireFromString("1.25")})).To(Succeed())
			Expect(db.Close()).To(Succeed())

			var err error
			db, err = NewBoltDB(dbPath)
			Expect(err).NotTo(HaveOccurred())

			item, err := db.GetItem("A")
			Expect(err).NotTo(HaveOccurred())
			Expect(item.Price.String()).To(Equal("1.25"))
		})
	})
})
