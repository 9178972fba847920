package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeReviewStats_Empty(t *testing.T) {
	stats := ComputeReviewStats(nil)

	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0.0, stats.AverageRating)
	for star := 1; star <= 5; star++ {
		assert.Equal(t, 0, stats.Distribution[star])
	}
}

func TestComputeReviewStats_AverageRoundsToOneDecimal(t *testing.T) {
	// Ratings [5,5,4]: mean 4.666... rounds to 4.7.
	stats := ComputeReviewStats(map[int]int{5: 2, 4: 1})

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 4.7, stats.AverageRating)
}

func TestComputeReviewStats_Distribution(t *testing.T) {
	stats := ComputeReviewStats(map[int]int{1: 1, 3: 2, 5: 3})

	assert.Equal(t, 6, stats.Total)
	assert.Equal(t, map[int]int{1: 1, 2: 0, 3: 2, 4: 0, 5: 3}, stats.Distribution)
	assert.Equal(t, 3.7, stats.AverageRating) // (1 + 6 + 15) / 6 = 3.666...
}

func TestComputeReviewStats_SingleRating(t *testing.T) {
	stats := ComputeReviewStats(map[int]int{4: 1})

	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 4.0, stats.AverageRating)
}
