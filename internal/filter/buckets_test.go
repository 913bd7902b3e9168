package filter

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPriceBucketBoundaries(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{0, PriceBucketLow},
		{50, PriceBucketLow},
		{100, PriceBucketLow}, // верхняя граница включительно
		{100.01, PriceBucketMid},
		{300, PriceBucketMid},
		{500, PriceBucketMid},
		{500.01, PriceBucketHigh},
		{1000, PriceBucketHigh},
		{1000.01, PriceBucketTop},
		{250000, PriceBucketTop},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PriceBucket(tt.price), "price %v", tt.price)
	}
}

// Корзины образуют полное непересекающееся разбиение: любая неотрицательная
// цена попадает ровно в одну из четырёх меток.
func TestPriceBucketPartition(t *testing.T) {
	known := map[string]bool{
		PriceBucketLow:  true,
		PriceBucketMid:  true,
		PriceBucketHigh: true,
		PriceBucketTop:  true,
	}
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		price := rng.Float64() * 5000
		got := PriceBucket(price)
		assert.True(t, known[got], "price %v mapped to unknown bucket %q", price, got)
	}
}

func TestRecencyBucket(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		ts   time.Time
		want string
	}{
		{"two hours ago", now.Add(-2 * time.Hour), BucketToday},
		{"exactly one day", now.AddDate(0, 0, -1), BucketToday},
		{"five days ago", now.AddDate(0, 0, -5), BucketThisWeek},
		{"exactly seven days", now.AddDate(0, 0, -7), BucketThisWeek},
		{"three weeks ago", now.AddDate(0, 0, -21), BucketMonth},
		{"half a year ago", now.AddDate(0, 0, -180), BucketYear},
		{"exactly 365 days", now.AddDate(0, 0, -365), BucketYear},
		{"two years ago", now.AddDate(-2, 0, 0), BucketOlder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RecencyBucket(tt.ts, now))
		})
	}
}
