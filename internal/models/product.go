package models

import "github.com/shopspring/decimal"

// Badge is a merchandising marker shown on a product card.
type Badge string

const (
	BadgeNew        Badge = "new"
	BadgeBestseller Badge = "bestseller"
	BadgeOffer      Badge = "offer"
)

// LowStockThreshold is the quantity at or below which an in-stock product is flagged as running low.
const LowStockThreshold = 10

// WeightOption is a selectable package size. PriceDelta is added to the product's base price.
type WeightOption struct {
	LabelAr    string          `json:"label_ar" validate:"required"`
	LabelEn    string          `json:"label_en" validate:"required"`
	Grams      int             `json:"grams" validate:"gt=0"`
	PriceDelta decimal.Decimal `json:"price_delta"`
}

// Product represents a product in the store.
type Product struct {
	ID             string           `json:"id"`
	Slug           string           `json:"slug" validate:"required,min=2,max=120"`
	NameAr         string           `json:"name_ar" validate:"required,max=200"`
	NameEn         string           `json:"name_en" validate:"required,max=200"`
	DescAr         string           `json:"desc_ar" validate:"omitempty,max=2000"`
	DescEn         string           `json:"desc_en" validate:"omitempty,max=2000"`
	CategoryID     string           `json:"category_id" validate:"required"`
	Price          decimal.Decimal  `json:"price"`
	CompareAtPrice *decimal.Decimal `json:"compare_at_price,omitempty"`
	Currency       string           `json:"currency"`
	Images         []string         `json:"images"`
	SKU            string           `json:"sku" validate:"required"`
	WeightOptions  []WeightOption   `json:"weight_options" validate:"required,min=1,dive"`
	StockQty       int              `json:"stock_qty" validate:"gte=0"`
	IsFrozen       bool             `json:"is_frozen"`
	Badges         []Badge          `json:"badges" validate:"dive,oneof=new bestseller offer"`
	Tags           []string         `json:"tags"`
}

// HasBadge reports whether the product carries the given badge.
func (p *Product) HasBadge(b Badge) bool {
	for _, have := range p.Badges {
		if have == b {
			return true
		}
	}
	return false
}

// WeightOption returns the option at index i, or false if i is out of range.
func (p *Product) WeightOption(i int) (WeightOption, bool) {
	if i < 0 || i >= len(p.WeightOptions) {
		return WeightOption{}, false
	}
	return p.WeightOptions[i], true
}

func (p *Product) IsOutOfStock() bool { return p.StockQty == 0 }

func (p *Product) IsLowStock() bool {
	return p.StockQty > 0 && p.StockQty <= LowStockThreshold
}
