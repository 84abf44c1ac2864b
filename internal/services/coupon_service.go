package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"kawther/internal/models"
	"kawther/internal/store"
)

const (
	msgInvalidCoupon = "Invalid coupon code"
	msgCouponApplied = "Coupon applied!"
)

// ValidateCoupon checks code against the active coupons for a cart with the given subtotal.
// It returns the matching coupon only when it can be applied.
func ValidateCoupon(coupons []models.Coupon, code string, subtotal decimal.Decimal, currency string) (*models.Coupon, models.CouponResult) {
	coupon := FindActiveCoupon(coupons, strings.TrimSpace(code))
	if coupon == nil {
		return nil, models.CouponResult{Success: false, Message: msgInvalidCoupon}
	}
	if subtotal.LessThan(coupon.MinSubtotal) {
		return nil, models.CouponResult{
			Success: false,
			Message: fmt.Sprintf("Minimum order %s %s required", coupon.MinSubtotal.String(), currency),
		}
	}
	return coupon, models.CouponResult{Success: true, Message: msgCouponApplied}
}

// CouponService handles coupon administration.
type CouponService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewCouponService creates a new CouponService.
func NewCouponService(st *store.Store, logger *zap.Logger) *CouponService {
	return &CouponService{
		store:  st,
		logger: logger,
	}
}

// GetAllCoupons returns every coupon, active or not.
func (s *CouponService) GetAllCoupons() []models.Coupon {
	return s.store.Snapshot().Coupons
}

// CreateCoupon adds a coupon. Codes are unique ignoring case.
func (s *CouponService) CreateCoupon(ctx context.Context, coupon models.Coupon) error {
	coupon.Code = strings.TrimSpace(coupon.Code)
	return s.store.Update(ctx, func(st *store.State) error {
		if couponIndex(st.Coupons, coupon.Code) >= 0 {
			return fmt.Errorf("coupon %s: %w", coupon.Code, ErrCouponExists)
		}
		st.Coupons = append(st.Coupons, coupon)
		return nil
	})
}

// UpdateCoupon replaces the coupon with the same code.
func (s *CouponService) UpdateCoupon(ctx context.Context, coupon models.Coupon) error {
	return s.store.Update(ctx, func(st *store.State) error {
		i := couponIndex(st.Coupons, coupon.Code)
		if i < 0 {
			return fmt.Errorf("coupon %s: %w", coupon.Code, ErrCouponNotFound)
		}
		coupon.Code = st.Coupons[i].Code
		st.Coupons[i] = coupon
		return nil
	})
}

// DeleteCoupon removes a coupon by code. A cart holding that code stops getting the discount.
func (s *CouponService) DeleteCoupon(ctx context.Context, code string) error {
	err := s.store.Update(ctx, func(st *store.State) error {
		i := couponIndex(st.Coupons, code)
		if i < 0 {
			return fmt.Errorf("coupon %s: %w", code, ErrCouponNotFound)
		}
		st.Coupons = append(st.Coupons[:i], st.Coupons[i+1:]...)
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("coupon deleted", zap.String("code", code))
	return nil
}

func couponIndex(coupons []models.Coupon, code string) int {
	for i := range coupons {
		if strings.EqualFold(coupons[i].Code, code) {
			return i
		}
	}
	return -1
}
