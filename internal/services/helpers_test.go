package services_test

import (
	"context"
	"errors"
	"testing"

	"kawther/internal/models"
	"kawther/internal/repositories"
	"kawther/internal/services"
	"kawther/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func assertDec(t *testing.T, want int64, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, got.Equal(dec(want)), "%s: want %d, got %s", field, want, got.String())
}

func testRules() services.PricingRules {
	return services.PricingRules{
		ShippingFee:           dec(50),
		FreeShippingThreshold: dec(1500),
		ColdChainFee:          dec(30),
		Currency:              "EGP",
	}
}

// flakySlotStore fails writes while fail is set.
type flakySlotStore struct {
	*repositories.MemorySlotStore
	fail bool
}

func (f *flakySlotStore) PutAll(ctx context.Context, entries map[string][]byte) error {
	if f.fail {
		return errors.New("storage unavailable")
	}
	return f.MemorySlotStore.PutAll(ctx, entries)
}

func newTestStore(t *testing.T) (*store.Store, *flakySlotStore) {
	t.Helper()
	slots := &flakySlotStore{MemorySlotStore: repositories.NewMemorySlotStore()}
	st := store.New(slots, "test-", zap.NewNop())
	require.NoError(t, st.Load(context.Background()))
	return st, slots
}

// testProduct is a frozen product priced 100 with options +0 and +20.
func testProduct(id string) models.Product {
	return models.Product{
		ID:         id,
		Slug:       id,
		NameAr:     "منتج " + id,
		NameEn:     "Product " + id,
		CategoryID: "cat-frozen",
		Price:      dec(100),
		Currency:   "EGP",
		SKU:        "SKU-" + id,
		WeightOptions: []models.WeightOption{
			{LabelAr: "صغير", LabelEn: "small", Grams: 500, PriceDelta: dec(0)},
			{LabelAr: "كبير", LabelEn: "large", Grams: 1000, PriceDelta: dec(20)},
		},
		StockQty: 5,
		IsFrozen: true,
	}
}

// replaceCatalog swaps the seeded products and coupons for the given ones.
func replaceCatalog(t *testing.T, st *store.Store, products []models.Product, coupons []models.Coupon) {
	t.Helper()
	require.NoError(t, st.Update(context.Background(), func(s *store.State) error {
		s.Products = products
		if coupons != nil {
			s.Coupons = coupons
		}
		return nil
	}))
}
