package models

import "github.com/shopspring/decimal"

type CouponType string

const (
	CouponPercent CouponType = "percent"
	CouponFixed   CouponType = "fixed"
)

// Coupon is a discount code. Code is unique case-insensitively.
type Coupon struct {
	Code        string          `json:"code" validate:"required,min=2,max=40"`
	Type        CouponType      `json:"type" validate:"required,oneof=percent fixed"`
	Value       decimal.Decimal `json:"value"`
	Active      bool            `json:"active"`
	MinSubtotal decimal.Decimal `json:"min_subtotal"`
}

// CouponResult is the outcome of applying a code to the cart.
type CouponResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
