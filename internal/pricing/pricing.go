// Package pricing evaluates promo-code eligibility and discount amounts
// against an order subtotal. It is pure: the caller supplies the promo row
// and the current time, nothing here touches the store.
package pricing

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sunleaf/sunleaf-api/internal/models"
)

var (
	ErrInactive  = errors.New("promo code is not active")
	ErrExpired   = errors.New("promo code has expired")
	ErrExhausted = errors.New("promo code usage limit exhausted")
)

// MinPurchaseError reports a subtotal below the code's minimum, carrying the
// required minimum so the caller can surface it.
type MinPurchaseError struct {
	Min decimal.Decimal
}

func (e *MinPurchaseError) Error() string {
	return fmt.Sprintf("minimum order amount %s", e.Min)
}

var percent = decimal.NewFromInt(100)

// Evaluate checks the code's eligibility rules in order (active, expiry,
// usage limit, minimum purchase) and returns the discount amount rounded to
// two decimal places. A FIXED discount is returned flat and is deliberately
// not capped at the subtotal.
func Evaluate(promo *models.PromoCode, subtotal decimal.Decimal, now time.Time) (decimal.Decimal, error) {
	if !promo.IsActive {
		return decimal.Zero, ErrInactive
	}

	if promo.ExpiresAt != nil && promo.ExpiresAt.Before(now) {
		return decimal.Zero, ErrExpired
	}

	if promo.MaxUses > 0 && promo.UsedCount >= promo.MaxUses {
		return decimal.Zero, ErrExhausted
	}

	if subtotal.LessThan(promo.MinPurchase) {
		return decimal.Zero, &MinPurchaseError{Min: promo.MinPurchase}
	}

	var amount decimal.Decimal
	if promo.Type == models.PromoTypePercentage {
		amount = subtotal.Mul(promo.Discount).Div(percent)
	} else {
		amount = promo.Discount
	}

	return amount.Round(2), nil
}
