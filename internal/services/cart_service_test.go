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

func setupCartService(t *testing.T) (*services.CartService, *services.CouponService, *flakySlotStore) {
	t.Helper()
	st, slots := newTestStore(t)
	replaceCatalog(t, st, []models.Product{testProduct("p1"), testProduct("p2")}, nil)
	return services.NewCartService(st, testRules(), zap.NewNop()), services.NewCouponService(st, zap.NewNop()), slots
}

func TestCartService_AddItemMergesLines(t *testing.T) {
	cartSvc, _, _ := setupCartService(t)
	ctx := context.Background()

	_, err := cartSvc.AddItem(ctx, "p1", 1, 2)
	require.NoError(t, err)
	_, err = cartSvc.AddItem(ctx, "p1", 0, 1)
	require.NoError(t, err)
	view, err := cartSvc.AddItem(ctx, "p1", 1, 1)
	require.NoError(t, err)

	require.Len(t, view.Items, 2)
	assert.Equal(t, 3, view.Items[0].Qty)
	assert.Equal(t, 1, view.Items[0].WeightOptionIndex)
	assert.Equal(t, 1, view.Items[1].Qty)
	assertDec(t, 3*120+100, view.Totals.Subtotal, "subtotal")
}

func TestCartService_AddItemErrors(t *testing.T) {
	cartSvc, _, _ := setupCartService(t)
	ctx := context.Background()

	_, err := cartSvc.AddItem(ctx, "p1", 0, 0)
	assert.ErrorIs(t, err, services.ErrInvalidQuantity)

	_, err = cartSvc.AddItem(ctx, "missing", 0, 1)
	assert.ErrorIs(t, err, services.ErrProductNotFound)

	_, err = cartSvc.AddItem(ctx, "p1", 2, 1)
	assert.ErrorIs(t, err, services.ErrInvalidWeightOption)

	assert.Empty(t, cartSvc.GetCart().Items)
}

func TestCartService_UpdateAndRemove(t *testing.T) {
	cartSvc, _, _ := setupCartService(t)
	ctx := context.Background()

	_, err := cartSvc.AddItem(ctx, "p1", 0, 1)
	require.NoError(t, err)
	_, err = cartSvc.AddItem(ctx, "p2", 0, 1)
	require.NoError(t, err)

	view, err := cartSvc.UpdateItemQty(ctx, "p1", 0, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, view.Items[0].Qty)

	view, err = cartSvc.UpdateItemQty(ctx, "p1", 0, 0)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "p2", view.Items[0].ProductID)

	view, err = cartSvc.RemoveItem(ctx, "p2", 0)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	_, err = cartSvc.RemoveItem(ctx, "p2", 0)
	assert.NoError(t, err)
}

func TestCartService_ClearCartDropsCoupon(t *testing.T) {
	cartSvc, _, _ := setupCartService(t)
	ctx := context.Background()

	_, err := cartSvc.AddItem(ctx, "p1", 0, 4)
	require.NoError(t, err)
	res, err := cartSvc.ApplyCoupon(ctx, "WELCOME10")
	require.NoError(t, err)
	require.True(t, res.Success)

	require.NoError(t, cartSvc.ClearCart(ctx))
	view := cartSvc.GetCart()
	assert.Empty(t, view.Items)
	assert.Nil(t, view.AppliedCoupon)
	assertDec(t, 0, view.Totals.Total, "total")
}

func TestCartService_ApplyCoupon(t *testing.T) {
	cartSvc, _, _ := setupCartService(t)
	ctx := context.Background()

	_, err := cartSvc.AddItem(ctx, "p1", 0, 2)
	require.NoError(t, err)

	res, err := cartSvc.ApplyCoupon(ctx, "NOPE")
	require.NoError(t, err)
	assert.Equal(t, models.CouponResult{Success: false, Message: "Invalid coupon code"}, res)

	res, err = cartSvc.ApplyCoupon(ctx, "SUMMER20")
	require.NoError(t, err)
	assert.False(t, res.Success, "inactive coupons are invalid")

	res, err = cartSvc.ApplyCoupon(ctx, "WELCOME10")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Minimum order 300 EGP required", res.Message)
	assert.Nil(t, cartSvc.GetCart().AppliedCoupon)

	_, err = cartSvc.AddItem(ctx, "p1", 0, 1)
	require.NoError(t, err)
	res, err = cartSvc.ApplyCoupon(ctx, "  welcome10 ")
	require.NoError(t, err)
	assert.Equal(t, models.CouponResult{Success: true, Message: "Coupon applied!"}, res)

	view := cartSvc.GetCart()
	require.NotNil(t, view.AppliedCoupon)
	assert.Equal(t, "WELCOME10", view.AppliedCoupon.Code)
	assertDec(t, 30, view.Totals.Discount, "discount")
}

func TestCartService_CouponMinimumNotMet(t *testing.T) {
	st, _ := newTestStore(t)
	product := testProduct("p999")
	product.Price = dec(999)
	replaceCatalog(t, st, []models.Product{product}, []models.Coupon{
		{Code: "BIG", Type: models.CouponPercent, Value: dec(10), Active: true, MinSubtotal: dec(1000)},
	})
	cartSvc := services.NewCartService(st, testRules(), zap.NewNop())
	ctx := context.Background()

	_, err := cartSvc.AddItem(ctx, "p999", 0, 1)
	require.NoError(t, err)

	res, err := cartSvc.ApplyCoupon(ctx, "BIG")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Minimum order 1000 EGP required", res.Message)

	view := cartSvc.GetCart()
	assert.Nil(t, view.AppliedCoupon)
	assertDec(t, 999, view.Totals.Subtotal, "subtotal")
	assertDec(t, 0, view.Totals.Discount, "discount")
}

func TestCartService_ApplyThenRemoveCouponRestoresTotals(t *testing.T) {
	cartSvc, _, _ := setupCartService(t)
	ctx := context.Background()

	_, err := cartSvc.AddItem(ctx, "p1", 1, 5)
	require.NoError(t, err)
	before := cartSvc.GetCart().Totals

	res, err := cartSvc.ApplyCoupon(ctx, "KAWTHER50")
	require.NoError(t, err)
	require.True(t, res.Success)
	withCoupon := cartSvc.GetCart().Totals
	assertDec(t, 50, withCoupon.Discount, "discount")
	assert.True(t, withCoupon.Total.Equal(before.Total.Sub(dec(50))))

	require.NoError(t, cartSvc.RemoveCoupon(ctx))
	assert.Equal(t, before, cartSvc.GetCart().Totals)
}

func TestCartService_DeletedCouponStopsDiscount(t *testing.T) {
	cartSvc, couponSvc, _ := setupCartService(t)
	ctx := context.Background()

	_, err := cartSvc.AddItem(ctx, "p1", 0, 6)
	require.NoError(t, err)
	res, err := cartSvc.ApplyCoupon(ctx, "KAWTHER50")
	require.NoError(t, err)
	require.True(t, res.Success)

	require.NoError(t, couponSvc.DeleteCoupon(ctx, "KAWTHER50"))
	view := cartSvc.GetCart()
	assert.Nil(t, view.AppliedCoupon)
	assertDec(t, 0, view.Totals.Discount, "discount")
}

func TestCartService_DiscountRecomputedWhenSubtotalDrops(t *testing.T) {
	cartSvc, _, _ := setupCartService(t)
	ctx := context.Background()

	_, err := cartSvc.AddItem(ctx, "p1", 0, 6)
	require.NoError(t, err)
	res, err := cartSvc.ApplyCoupon(ctx, "KAWTHER50")
	require.NoError(t, err)
	require.True(t, res.Success)

	view, err := cartSvc.UpdateItemQty(ctx, "p1", 0, 2)
	require.NoError(t, err)
	require.NotNil(t, view.AppliedCoupon)
	assertDec(t, 0, view.Totals.Discount, "discount below minimum")
}

func TestCartService_StorageFailureLeavesCartUntouched(t *testing.T) {
	cartSvc, _, slots := setupCartService(t)
	ctx := context.Background()

	_, err := cartSvc.AddItem(ctx, "p1", 0, 1)
	require.NoError(t, err)

	slots.fail = true
	_, err = cartSvc.AddItem(ctx, "p2", 0, 1)
	assert.Error(t, err)
	_, err = cartSvc.UpdateItemQty(ctx, "p1", 0, 9)
	assert.Error(t, err)

	view := cartSvc.GetCart()
	require.Len(t, view.Items, 1)
	assert.Equal(t, "p1", view.Items[0].ProductID)
	assert.Equal(t, 1, view.Items[0].Qty)
}
