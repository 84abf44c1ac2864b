package services

import (
	"strings"

	"github.com/shopspring/decimal"

	"kawther/internal/config"
	"kawther/internal/models"
)

var hundred = decimal.NewFromInt(100)

// PricingRules are the fee constants the pricing engine applies.
type PricingRules struct {
	ShippingFee           decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	ColdChainFee          decimal.Decimal
	Currency              string
}

// PricingRulesFromConfig copies the pricing section of the configuration.
func PricingRulesFromConfig(cfg config.PricingConfig) PricingRules {
	return PricingRules{
		ShippingFee:           cfg.ShippingFee,
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		ColdChainFee:          cfg.ColdChainFee,
		Currency:              cfg.Currency,
	}
}

// ResolveCartItems joins cart lines with the catalog and prices them. Lines whose product is gone
// are dropped. A line whose weight option index no longer exists is kept at the base price with an
// empty selected weight.
func ResolveCartItems(cart models.Cart, products []models.Product) []models.ResolvedCartItem {
	byID := make(map[string]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	resolved := make([]models.ResolvedCartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			continue
		}
		weight, _ := product.WeightOption(item.WeightOptionIndex)
		itemPrice := product.Price.Add(weight.PriceDelta)
		resolved = append(resolved, models.ResolvedCartItem{
			CartItem:       item,
			Product:        *product,
			SelectedWeight: weight,
			ItemPrice:      itemPrice,
			LineTotal:      itemPrice.Mul(decimal.NewFromInt(int64(item.Qty))),
		})
	}
	return resolved
}

// FindActiveCoupon looks up an active coupon by code, ignoring case.
func FindActiveCoupon(coupons []models.Coupon, code string) *models.Coupon {
	if code == "" {
		return nil
	}
	for i := range coupons {
		if coupons[i].Active && strings.EqualFold(coupons[i].Code, code) {
			c := coupons[i]
			return &c
		}
	}
	return nil
}

// Discount returns what coupon takes off subtotal. It is zero below the coupon's minimum.
// Fixed discounts are not capped at the subtotal.
func Discount(coupon *models.Coupon, subtotal decimal.Decimal) decimal.Decimal {
	if coupon == nil || subtotal.LessThan(coupon.MinSubtotal) {
		return decimal.Zero
	}
	switch coupon.Type {
	case models.CouponPercent:
		return subtotal.Mul(coupon.Value).Div(hundred).Round(0)
	case models.CouponFixed:
		return coupon.Value
	}
	return decimal.Zero
}

// ComputeTotals derives the cart totals from resolved lines and the coupon in effect (nil for none).
// It has no side effects.
func ComputeTotals(items []models.ResolvedCartItem, coupon *models.Coupon, rules PricingRules) models.CartTotals {
	subtotal := decimal.Zero
	hasFrozen := false
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal)
		if item.Product.IsFrozen {
			hasFrozen = true
		}
	}

	isFreeShipping := subtotal.GreaterThanOrEqual(rules.FreeShippingThreshold)
	shipping := rules.ShippingFee
	if isFreeShipping {
		shipping = decimal.Zero
	}
	coldChain := decimal.Zero
	if hasFrozen {
		coldChain = rules.ColdChainFee
	}
	discount := Discount(coupon, subtotal)

	return models.CartTotals{
		Subtotal:       subtotal,
		Shipping:       shipping,
		ColdChain:      coldChain,
		Discount:       discount,
		Total:          subtotal.Add(shipping).Add(coldChain).Sub(discount),
		HasFrozen:      hasFrozen,
		IsFreeShipping: isFreeShipping,
	}
}

// PriceCart resolves the cart against the catalog and coupon list and computes its totals.
func PriceCart(cart models.Cart, products []models.Product, coupons []models.Coupon, rules PricingRules) models.CartView {
	items := ResolveCartItems(cart, products)
	coupon := FindActiveCoupon(coupons, cart.CouponCode)
	return models.CartView{
		Items:         items,
		Totals:        ComputeTotals(items, coupon, rules),
		AppliedCoupon: coupon,
	}
}
