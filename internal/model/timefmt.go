package model

import (
	"fmt"
	"math"
)

// FormatTime renders seconds as "M:SS".
//
// Minutes are unbounded, seconds are zero-padded to two digits and
// fractional seconds are truncated toward zero:
//
//	FormatTime(0)     // "0:00"
//	FormatTime(65)    // "1:05"
//	FormatTime(599.9) // "9:59"
//	FormatTime(3600)  // "60:00"
//
// Negative and NaN inputs render as "0:00".
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	if math.IsInf(seconds, 1) || seconds > math.MaxInt64/2 {
		seconds = math.MaxInt64 / 2
	}
	total := int64(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
