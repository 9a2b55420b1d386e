package models

import (
	"math"

	"github.com/spf13/cast"
)

// ClampInt coerces an arbitrary numeric input into a non-negative integer.
// Non-finite values become 0, fractional values are floored, negatives
// become 0. Idempotent: ClampInt(ClampInt(x)) == ClampInt(x).
func ClampInt(v interface{}) int {
	f := cast.ToFloat64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	n := int(math.Floor(f))
	if n < 0 {
		return 0
	}
	return n
}
