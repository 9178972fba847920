package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidOrderStatus(t *testing.T) {
	for _, status := range []string{
		OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled,
	} {
		assert.True(t, IsValidOrderStatus(status), status)
	}

	assert.False(t, IsValidOrderStatus("INVALID_STATE"))
	assert.False(t, IsValidOrderStatus("pending"))
	assert.False(t, IsValidOrderStatus(""))
}

func TestIsValidCategory(t *testing.T) {
	assert.True(t, IsValidCategory(CategoryCoffee))
	assert.True(t, IsValidCategory(CategoryTea))
	assert.True(t, IsValidCategory(CategorySweets))
	assert.False(t, IsValidCategory("coffee"))
	assert.False(t, IsValidCategory("DECOR"))
}

func TestIsValidPromoType(t *testing.T) {
	assert.True(t, IsValidPromoType(PromoTypePercentage))
	assert.True(t, IsValidPromoType(PromoTypeFixed))
	assert.False(t, IsValidPromoType("AMOUNT"))
}
