// Package seed holds the storefront's initial dataset. It is used whenever a persisted slot is
// missing or cannot be decoded.
package seed

import (
	"github.com/shopspring/decimal"

	"kawther/internal/models"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func dp(v int64) *decimal.Decimal {
	x := decimal.NewFromInt(v)
	return &x
}

// Categories returns the static category list.
func Categories() []models.Category {
	return []models.Category{
		{ID: "cat-frozen", Slug: "frozen", ColorToken: "frozen", Icon: "snowflake", NameAr: "مجمدات", NameEn: "Frozen"},
		{ID: "cat-meat", Slug: "meat", ColorToken: "meat", Icon: "meat", NameAr: "لحوم", NameEn: "Meat"},
		{ID: "cat-grocery", Slug: "grocery", ColorToken: "grocery", Icon: "wheat", NameAr: "بقالة", NameEn: "Grocery"},
	}
}

var (
	halfKiloKilo = []models.WeightOption{
		{LabelAr: "نصف كيلو", LabelEn: "500 g", Grams: 500, PriceDelta: d(0)},
		{LabelAr: "١ كيلو", LabelEn: "1 kg", Grams: 1000, PriceDelta: d(180)},
	}
	packs = []models.WeightOption{
		{LabelAr: "عبوة ٤٠٠ جم", LabelEn: "400 g pack", Grams: 400, PriceDelta: d(0)},
		{LabelAr: "عبوة ٨٠٠ جم", LabelEn: "800 g pack", Grams: 800, PriceDelta: d(70)},
	}
	sacks = []models.WeightOption{
		{LabelAr: "١ كيلو", LabelEn: "1 kg", Grams: 1000, PriceDelta: d(0)},
		{LabelAr: "٥ كيلو", LabelEn: "5 kg", Grams: 5000, PriceDelta: d(160)},
	}
)

func options(src []models.WeightOption) []models.WeightOption {
	return append([]models.WeightOption(nil), src...)
}

// Products returns a fresh copy of the initial catalog.
func Products() []models.Product {
	return []models.Product{
		{
			ID: "p-frozen-chicken", Slug: "frozen-chicken-breast",
			NameAr: "صدور دجاج مجمدة", NameEn: "Frozen Chicken Breast",
			DescAr: "صدور دجاج منزوعة العظم مجمدة سريعا", DescEn: "Boneless chicken breast, quick frozen",
			CategoryID: "cat-frozen", Price: d(165), CompareAtPrice: dp(190), Currency: "EGP",
			Images: []string{"/images/frozen-chicken.jpg"}, SKU: "KW-FRZ-001",
			WeightOptions: options(halfKiloKilo), StockQty: 40, IsFrozen: true,
			Badges: []models.Badge{models.BadgeBestseller, models.BadgeOffer}, Tags: []string{"chicken", "poultry"},
		},
		{
			ID: "p-frozen-vegetables", Slug: "mixed-vegetables",
			NameAr: "خضروات مشكلة", NameEn: "Mixed Vegetables",
			DescAr: "بسلة وجزر وذرة مجمدة", DescEn: "Frozen peas, carrots and corn",
			CategoryID: "cat-frozen", Price: d(45), Currency: "EGP",
			Images: []string{"/images/mixed-vegetables.jpg"}, SKU: "KW-FRZ-002",
			WeightOptions: options(packs), StockQty: 120, IsFrozen: true,
			Badges: []models.Badge{models.BadgeNew}, Tags: []string{"vegetables"},
		},
		{
			ID: "p-frozen-shrimp", Slug: "frozen-shrimp",
			NameAr: "جمبري مجمد", NameEn: "Frozen Shrimp",
			DescAr: "جمبري مقشر ومنظف", DescEn: "Peeled and deveined shrimp",
			CategoryID: "cat-frozen", Price: d(320), Currency: "EGP",
			Images: []string{"/images/frozen-shrimp.jpg"}, SKU: "KW-FRZ-003",
			WeightOptions: options(halfKiloKilo), StockQty: 8, IsFrozen: true,
			Badges: []models.Badge{}, Tags: []string{"seafood"},
		},
		{
			ID: "p-beef-minced", Slug: "minced-beef",
			NameAr: "لحم بقري مفروم", NameEn: "Minced Beef",
			DescAr: "لحم بقري طازج مفروم", DescEn: "Freshly minced beef",
			CategoryID: "cat-meat", Price: d(210), Currency: "EGP",
			Images: []string{"/images/minced-beef.jpg"}, SKU: "KW-MT-001",
			WeightOptions: options(halfKiloKilo), StockQty: 25,
			Badges: []models.Badge{models.BadgeBestseller}, Tags: []string{"beef"},
		},
		{
			ID: "p-lamb-chops", Slug: "lamb-chops",
			NameAr: "ريش ضأن", NameEn: "Lamb Chops",
			DescAr: "ريش ضأن بلدي", DescEn: "Local lamb chops",
			CategoryID: "cat-meat", Price: d(290), Currency: "EGP",
			Images: []string{"/images/lamb-chops.jpg"}, SKU: "KW-MT-002",
			WeightOptions: options(halfKiloKilo), StockQty: 0,
			Badges: []models.Badge{models.BadgeNew}, Tags: []string{"lamb"},
		},
		{
			ID: "p-rice", Slug: "egyptian-rice",
			NameAr: "أرز مصري", NameEn: "Egyptian Rice",
			DescAr: "أرز مصري حبة عريضة", DescEn: "Medium grain Egyptian rice",
			CategoryID: "cat-grocery", Price: d(38), Currency: "EGP",
			Images: []string{"/images/rice.jpg"}, SKU: "KW-GR-001",
			WeightOptions: options(sacks), StockQty: 300,
			Badges: []models.Badge{models.BadgeBestseller}, Tags: []string{"rice", "staples"},
		},
		{
			ID: "p-lentils", Slug: "yellow-lentils",
			NameAr: "عدس أصفر", NameEn: "Yellow Lentils",
			DescAr: "عدس أصفر مجروش", DescEn: "Split yellow lentils",
			CategoryID: "cat-grocery", Price: d(55), CompareAtPrice: dp(60), Currency: "EGP",
			Images: []string{"/images/lentils.jpg"}, SKU: "KW-GR-002",
			WeightOptions: options(sacks), StockQty: 150,
			Badges: []models.Badge{models.BadgeOffer}, Tags: []string{"legumes"},
		},
	}
}

// Coupons returns the initial coupon list.
func Coupons() []models.Coupon {
	return []models.Coupon{
		{Code: "WELCOME10", Type: models.CouponPercent, Value: d(10), Active: true, MinSubtotal: d(300)},
		{Code: "KAWTHER50", Type: models.CouponFixed, Value: d(50), Active: true, MinSubtotal: d(500)},
		{Code: "BIGORDER15", Type: models.CouponPercent, Value: d(15), Active: true, MinSubtotal: d(2000)},
		{Code: "SUMMER20", Type: models.CouponPercent, Value: d(20), Active: false, MinSubtotal: d(0)},
	}
}

// DeliverySlots returns the selectable delivery windows. The first one is the default.
func DeliverySlots() []models.DeliverySlot {
	return []models.DeliverySlot{
		{Value: "morning", LabelAr: "صباحا ٩ - ١٢", LabelEn: "Morning 9 - 12"},
		{Value: "afternoon", LabelAr: "ظهرا ١٢ - ٤", LabelEn: "Afternoon 12 - 4"},
		{Value: "evening", LabelAr: "مساء ٤ - ٩", LabelEn: "Evening 4 - 9"},
	}
}
