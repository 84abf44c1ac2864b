package models

import "github.com/shopspring/decimal"

// CartItem is one (product, weight option) selection. Qty is always positive while in a cart.
type CartItem struct {
	ProductID         string `json:"product_id"`
	WeightOptionIndex int    `json:"weight_option_index"`
	Qty               int    `json:"qty"`
}

// Cart is the session's cart. CouponCode holds the canonical code of the applied coupon, if any.
type Cart struct {
	Items      []CartItem `json:"items"`
	CouponCode string     `json:"coupon_code,omitempty"`
}

// IndexOf returns the position of the line for (productID, weightOptionIndex), or -1.
func (c *Cart) IndexOf(productID string, weightOptionIndex int) int {
	for i, item := range c.Items {
		if item.ProductID == productID && item.WeightOptionIndex == weightOptionIndex {
			return i
		}
	}
	return -1
}

// ResolvedCartItem is a cart line joined with its product and priced.
type ResolvedCartItem struct {
	CartItem
	Product        Product         `json:"product"`
	SelectedWeight WeightOption    `json:"selected_weight"`
	ItemPrice      decimal.Decimal `json:"item_price"`
	LineTotal      decimal.Decimal `json:"line_total"`
}

// CartTotals is the derived pricing summary of a cart.
type CartTotals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	Shipping       decimal.Decimal `json:"shipping"`
	ColdChain      decimal.Decimal `json:"cold_chain"`
	Discount       decimal.Decimal `json:"discount"`
	Total          decimal.Decimal `json:"total"`
	HasFrozen      bool            `json:"has_frozen"`
	IsFreeShipping bool            `json:"is_free_shipping"`
}

// CartView is what the cart page renders: resolved lines, totals and the coupon currently in effect.
type CartView struct {
	Items         []ResolvedCartItem `json:"items"`
	Totals        CartTotals         `json:"totals"`
	AppliedCoupon *Coupon            `json:"applied_coupon,omitempty"`
}
