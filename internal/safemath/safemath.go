// Package safemath provides overflow-checked arithmetic for position
// and key calculations.
package safemath

import "math"

// AddInt64 adds two signed positions, reporting overflow instead of
// wrapping.
func AddInt64(a, b int64) (int64, bool) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, false
	}
	if b < 0 && a < math.MinInt64-b {
		return 0, false
	}
	return a + b, true
}
