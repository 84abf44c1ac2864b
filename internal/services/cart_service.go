package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"kawther/internal/models"
	"kawther/internal/store"
)

// CartService handles the session cart and coupon application.
type CartService struct {
	store  *store.Store
	rules  PricingRules
	logger *zap.Logger
}

// NewCartService creates a new CartService.
func NewCartService(st *store.Store, rules PricingRules, logger *zap.Logger) *CartService {
	return &CartService{
		store:  st,
		rules:  rules,
		logger: logger,
	}
}

// GetCart returns the priced cart.
func (s *CartService) GetCart() models.CartView {
	st := s.store.Snapshot()
	return PriceCart(st.Cart, st.Products, st.Coupons, s.rules)
}

// AddItem adds qty of a product in the given weight option, merging with an existing line.
func (s *CartService) AddItem(ctx context.Context, productID string, weightOptionIndex, qty int) (models.CartView, error) {
	if qty <= 0 {
		return models.CartView{}, ErrInvalidQuantity
	}
	err := s.store.Update(ctx, func(st *store.State) error {
		product := st.ProductByID(productID)
		if product == nil {
			return fmt.Errorf("product %s: %w", productID, ErrProductNotFound)
		}
		if _, ok := product.WeightOption(weightOptionIndex); !ok {
			return fmt.Errorf("product %s option %d: %w", productID, weightOptionIndex, ErrInvalidWeightOption)
		}
		if i := st.Cart.IndexOf(productID, weightOptionIndex); i >= 0 {
			st.Cart.Items[i].Qty += qty
			return nil
		}
		st.Cart.Items = append(st.Cart.Items, models.CartItem{
			ProductID:         productID,
			WeightOptionIndex: weightOptionIndex,
			Qty:               qty,
		})
		return nil
	})
	if err != nil {
		return models.CartView{}, err
	}
	return s.GetCart(), nil
}

// UpdateItemQty sets the quantity of a line. A quantity of zero or less removes it.
func (s *CartService) UpdateItemQty(ctx context.Context, productID string, weightOptionIndex, qty int) (models.CartView, error) {
	if qty <= 0 {
		return s.RemoveItem(ctx, productID, weightOptionIndex)
	}
	err := s.store.Update(ctx, func(st *store.State) error {
		if i := st.Cart.IndexOf(productID, weightOptionIndex); i >= 0 {
			st.Cart.Items[i].Qty = qty
		}
		return nil
	})
	if err != nil {
		return models.CartView{}, err
	}
	return s.GetCart(), nil
}

// RemoveItem drops a line. Removing a line that is not there is not an error.
func (s *CartService) RemoveItem(ctx context.Context, productID string, weightOptionIndex int) (models.CartView, error) {
	err := s.store.Update(ctx, func(st *store.State) error {
		if i := st.Cart.IndexOf(productID, weightOptionIndex); i >= 0 {
			st.Cart.Items = append(st.Cart.Items[:i], st.Cart.Items[i+1:]...)
		}
		return nil
	})
	if err != nil {
		return models.CartView{}, err
	}
	return s.GetCart(), nil
}

// ClearCart empties the cart and drops the coupon.
func (s *CartService) ClearCart(ctx context.Context) error {
	return s.store.Update(ctx, func(st *store.State) error {
		st.Cart = models.Cart{Items: []models.CartItem{}}
		return nil
	})
}

// ApplyCoupon validates code against the current subtotal and stores its canonical code on the cart.
// A rejected code leaves the cart unchanged; the returned error is only for storage failures.
func (s *CartService) ApplyCoupon(ctx context.Context, code string) (models.CouponResult, error) {
	var result models.CouponResult
	err := s.store.Update(ctx, func(st *store.State) error {
		totals := ComputeTotals(ResolveCartItems(st.Cart, st.Products), nil, s.rules)
		coupon, res := ValidateCoupon(st.Coupons, code, totals.Subtotal, s.rules.Currency)
		result = res
		if coupon != nil {
			st.Cart.CouponCode = coupon.Code
		}
		return nil
	})
	if err != nil {
		return models.CouponResult{}, err
	}
	if !result.Success {
		s.logger.Debug("coupon rejected", zap.String("code", code), zap.String("reason", result.Message))
	}
	return result, nil
}

// RemoveCoupon clears the stored coupon code.
func (s *CartService) RemoveCoupon(ctx context.Context) error {
	return s.store.Update(ctx, func(st *store.State) error {
		st.Cart.CouponCode = ""
		return nil
	})
}
