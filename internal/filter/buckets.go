package filter

import "time"

// Метки ценовых корзин. Верхние границы включительные: ровно 100 → "0-100",
// ровно 500 → "101-500", ровно 1000 → "501-1000".
const (
	PriceBucketLow  = "0-100"
	PriceBucketMid  = "101-500"
	PriceBucketHigh = "501-1000"
	PriceBucketTop  = "1000+"
)

// Метки корзин давности. BucketOlder — внутренний фолбэк, в фильтрах
// пользователю не предлагается.
const (
	BucketToday    = "today"
	BucketThisWeek = "this-week"
	BucketMonth    = "this-month"
	BucketYear     = "this-year"
	BucketOlder    = "older"
)

// PriceBucket классифицирует неотрицательную цену в одну из четырёх корзин.
func PriceBucket(price float64) string {
	switch {
	case price <= 100:
		return PriceBucketLow
	case price <= 500:
		return PriceBucketMid
	case price <= 1000:
		return PriceBucketHigh
	default:
		return PriceBucketTop
	}
}

// RecencyBucket классифицирует момент ts по числу полных прошедших суток
// относительно now.
func RecencyBucket(ts, now time.Time) string {
	days := int(now.Sub(ts).Hours() / 24)
	switch {
	case days <= 1:
		return BucketToday
	case days <= 7:
		return BucketThisWeek
	case days <= 30:
		return BucketMonth
	case days <= 365:
		return BucketYear
	default:
		return BucketOlder
	}
}
