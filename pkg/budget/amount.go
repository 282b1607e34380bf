package budget

import (
	"fmt"
	"math"
)

// maxAmount is the largest accepted magnitude for any monetary input.
const maxAmount = 1e8

// CleanAmount validates and normalizes a monetary amount. A nil amount
// passes through as nil. Negative values are normalized to their absolute
// value and the result is rounded to 2 decimal places.
func CleanAmount(v *float64) (*float64, error) {
	return cleanAmount(v, false)
}

func cleanAmount(v *float64, keepNegative bool) (*float64, error) {
	if v == nil {
		return nil, nil
	}
	value := *v
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, value)
	}
	if math.Abs(value) > maxAmount {
		return nil, fmt.Errorf("%w: %v", ErrAmountTooLarge, value)
	}
	if value < 0 && !keepNegative {
		value = math.Abs(value)
	}
	value = round2(value)
	return &value, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
