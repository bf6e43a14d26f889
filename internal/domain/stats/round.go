package stats

import "github.com/shopspring/decimal"

const displayPlaces int32 = 1

// mean returns sum/count rounded half away from zero to one decimal place.
func mean(sum, count int) decimal.Decimal {
	if count <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(sum)).
		Div(decimal.NewFromInt(int64(count))).
		Round(displayPlaces)
}

func percent(part, whole int) decimal.Decimal {
	if whole <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part) * 100).
		Div(decimal.NewFromInt(int64(whole))).
		Round(displayPlaces)
}

func toFloat(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
