package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunleaf/sunleaf-api/internal/models"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func activePromo(discount int64, promoType string) *models.PromoCode {
	return &models.PromoCode{
		Code:     "TEST",
		Discount: decimal.NewFromInt(discount),
		Type:     promoType,
		IsActive: true,
	}
}

func TestEvaluate_PercentageDiscount(t *testing.T) {
	promo := activePromo(10, models.PromoTypePercentage)

	amount, err := Evaluate(promo, decimal.NewFromFloat(250.00), now)

	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromFloat(25.00)), "got %s", amount)
}

func TestEvaluate_PercentageRoundsToCents(t *testing.T) {
	promo := activePromo(10, models.PromoTypePercentage)

	amount, err := Evaluate(promo, decimal.NewFromFloat(33.33), now)

	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromFloat(3.33)), "got %s", amount)

	amount, err = Evaluate(promo, decimal.NewFromFloat(0.05), now)

	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromFloat(0.01)), "half-cent should round up, got %s", amount)
}

func TestEvaluate_FixedDiscount(t *testing.T) {
	promo := activePromo(50, models.PromoTypeFixed)

	amount, err := Evaluate(promo, decimal.NewFromFloat(400.00), now)

	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(50)), "got %s", amount)
}

func TestEvaluate_FixedDiscountNotCappedAtSubtotal(t *testing.T) {
	// Observed behavior: a flat discount can exceed the subtotal.
	promo := activePromo(50, models.PromoTypeFixed)

	amount, err := Evaluate(promo, decimal.NewFromFloat(30.00), now)

	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(50)), "got %s", amount)
}

func TestEvaluate_Inactive(t *testing.T) {
	promo := activePromo(10, models.PromoTypePercentage)
	promo.IsActive = false

	_, err := Evaluate(promo, decimal.NewFromInt(100), now)

	assert.ErrorIs(t, err, ErrInactive)
}

func TestEvaluate_Expired(t *testing.T) {
	promo := activePromo(10, models.PromoTypePercentage)
	expired := now.Add(-time.Hour)
	promo.ExpiresAt = &expired

	_, err := Evaluate(promo, decimal.NewFromInt(100), now)

	assert.ErrorIs(t, err, ErrExpired)
}

func TestEvaluate_FutureExpiryStillValid(t *testing.T) {
	promo := activePromo(10, models.PromoTypePercentage)
	future := now.Add(time.Hour)
	promo.ExpiresAt = &future

	_, err := Evaluate(promo, decimal.NewFromInt(100), now)

	assert.NoError(t, err)
}

func TestEvaluate_UsageLimitExhausted(t *testing.T) {
	promo := activePromo(10, models.PromoTypePercentage)
	promo.MaxUses = 100
	promo.UsedCount = 100

	_, err := Evaluate(promo, decimal.NewFromInt(100), now)

	assert.ErrorIs(t, err, ErrExhausted)
}

func TestEvaluate_ZeroMaxUsesIsUnlimited(t *testing.T) {
	promo := activePromo(10, models.PromoTypePercentage)
	promo.MaxUses = 0
	promo.UsedCount = 1_000_000

	_, err := Evaluate(promo, decimal.NewFromInt(100), now)

	assert.NoError(t, err)
}

func TestEvaluate_MinPurchase(t *testing.T) {
	promo := activePromo(50, models.PromoTypeFixed)
	promo.MinPurchase = decimal.NewFromInt(500)

	_, err := Evaluate(promo, decimal.NewFromFloat(400.00), now)

	var minErr *MinPurchaseError
	require.ErrorAs(t, err, &minErr)
	assert.True(t, minErr.Min.Equal(decimal.NewFromInt(500)))
	assert.Contains(t, err.Error(), "minimum order amount 500")
}

func TestEvaluate_RuleOrder(t *testing.T) {
	// An inactive code fails on activity before the minimum-purchase check.
	promo := activePromo(50, models.PromoTypeFixed)
	promo.IsActive = false
	promo.MinPurchase = decimal.NewFromInt(500)

	_, err := Evaluate(promo, decimal.NewFromInt(100), now)

	assert.ErrorIs(t, err, ErrInactive)
}
