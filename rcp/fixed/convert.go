package fixed

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

var ErrOverflow = errors.New("fixed: value out of range")

// FromFloat converts f to a fixed-point value with frac fractional bits,
// truncating towards zero.  Unlike the unchecked conversions it fails with
// ErrOverflow if the scaled value doesn't fit in bits, instead of wrapping.
func FromFloat[T constraints.Integer](f float64, frac, bits uint) (T, error) {
	scaled := math.Trunc(f * float64(uint64(1)<<frac))

	var lo, hi float64
	var t T
	if ^t < 0 { // signed
		lo = -math.Ldexp(1, int(bits-1))
		hi = math.Ldexp(1, int(bits-1)) - 1
	} else {
		lo = 0
		hi = math.Ldexp(1, int(bits)) - 1
	}
	if math.IsNaN(scaled) || scaled < lo || scaled > hi {
		return 0, fmt.Errorf("%w: %v in %d.%d format", ErrOverflow, f, bits-frac, frac)
	}
	return T(scaled), nil
}

// Float is the inverse of FromFloat.  It is exact for all representable
// values with up to 53 significant bits.
func Float[T constraints.Integer](x T, frac uint) float64 {
	return float64(x) / float64(uint64(1)<<frac)
}
