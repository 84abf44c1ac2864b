package services

import "errors"

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrProductExists       = errors.New("product already exists")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrCouponNotFound      = errors.New("coupon not found")
	ErrCouponExists        = errors.New("coupon already exists")
	ErrInvalidWeightOption = errors.New("invalid weight option")
	ErrInvalidQuantity     = errors.New("quantity must be positive")
	ErrInvalidStatus       = errors.New("invalid order status")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidToken        = errors.New("invalid token")
)
