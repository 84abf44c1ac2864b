package services_test

import (
	"context"
	"testing"

	"kawther/internal/models"
	"kawther/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestValidateCoupon(t *testing.T) {
	coupons := []models.Coupon{
		{Code: "SAVE", Type: models.CouponFixed, Value: dec(25), Active: true, MinSubtotal: dec(100)},
		{Code: "GONE", Type: models.CouponFixed, Value: dec(25), Active: false, MinSubtotal: dec(0)},
	}

	tests := []struct {
		name     string
		code     string
		subtotal int64
		success  bool
		message  string
	}{
		{"unknown", "NOPE", 500, false, "Invalid coupon code"},
		{"empty", "", 500, false, "Invalid coupon code"},
		{"inactive", "GONE", 500, false, "Invalid coupon code"},
		{"below minimum", "SAVE", 99, false, "Minimum order 100 USD required"},
		{"at minimum", "SAVE", 100, true, "Coupon applied!"},
		{"case insensitive", "save", 150, true, "Coupon applied!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coupon, res := services.ValidateCoupon(coupons, tt.code, dec(tt.subtotal), "USD")
			assert.Equal(t, tt.success, res.Success)
			assert.Equal(t, tt.message, res.Message)
			if tt.success {
				require.NotNil(t, coupon)
				assert.Equal(t, "SAVE", coupon.Code)
			} else {
				assert.Nil(t, coupon)
			}
		})
	}
}

func TestCouponService_CRUD(t *testing.T) {
	st, _ := newTestStore(t)
	svc := services.NewCouponService(st, zap.NewNop())
	ctx := context.Background()

	assert.Len(t, svc.GetAllCoupons(), 4)

	newCoupon := models.Coupon{Code: " RAMADAN ", Type: models.CouponPercent, Value: dec(5), Active: true, MinSubtotal: dec(0)}
	require.NoError(t, svc.CreateCoupon(ctx, newCoupon))

	err := svc.CreateCoupon(ctx, models.Coupon{Code: "ramadan", Type: models.CouponFixed, Value: dec(1)})
	assert.ErrorIs(t, err, services.ErrCouponExists)

	all := svc.GetAllCoupons()
	require.Len(t, all, 5)
	assert.Equal(t, "RAMADAN", all[4].Code)

	require.NoError(t, svc.UpdateCoupon(ctx, models.Coupon{Code: "ramadan", Type: models.CouponPercent, Value: dec(7), Active: false}))
	updated := svc.GetAllCoupons()[4]
	assert.Equal(t, "RAMADAN", updated.Code)
	assert.False(t, updated.Active)
	assert.True(t, updated.Value.Equal(dec(7)))

	assert.ErrorIs(t, svc.UpdateCoupon(ctx, models.Coupon{Code: "NONE"}), services.ErrCouponNotFound)

	require.NoError(t, svc.DeleteCoupon(ctx, "Ramadan"))
	assert.Len(t, svc.GetAllCoupons(), 4)
	assert.ErrorIs(t, svc.DeleteCoupon(ctx, "RAMADAN"), services.ErrCouponNotFound)
}
