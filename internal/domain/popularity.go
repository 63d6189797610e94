package domain

import "time"

// trendingCoefficient boosts movies an admin flagged as trending.
func trendingCoefficient(m *Movie) float64 {
	if m.IsTrending {
		return 1.5
	}
	return 1.0
}

// PopularityScore ranks movies for the related-titles strip.
//
// Formula:
//
//	Score = (Base * Trending Coefficient) + Recency + Conversion
//
// Base: views/1000 + downloads/100
//
// Trending Coefficient: 1.5 when IsTrending, otherwise 1.0
//
// Recency (age of CreatedAt):
//   - Within 1 week: +5
//   - Within 1 month: +3
//   - Within 3 months: +1
//   - Older: +0
//
// Conversion: (downloads/views) * 10, 0 when views is 0
func PopularityScore(m *Movie, now time.Time) float64 {
	if m == nil {
		return 0
	}

	base := float64(m.Views)/1000 + float64(m.Downloads)/100
	score := base*trendingCoefficient(m) + recencyScore(m, now) + conversionScore(m)

	return roundTo2Decimals(score)
}

// ageInDays returns whole days since CreatedAt, never negative.
func ageInDays(m *Movie, now time.Time) int {
	days := now.Sub(m.CreatedTime()).Hours() / 24
	if days < 0 {
		return 0
	}
	return int(days)
}

func recencyScore(m *Movie, now time.Time) float64 {
	switch days := ageInDays(m, now); {
	case days <= 7:
		return 5
	case days <= 30:
		return 3
	case days <= 90:
		return 1
	default:
		return 0
	}
}

func conversionScore(m *Movie) float64 {
	if m.Views == 0 {
		return 0
	}
	return float64(m.Downloads) / float64(m.Views) * 10
}

func roundTo2Decimals(value float64) float64 {
	return float64(int(value*100+0.5)) / 100
}
