// Package safe provides helpers for safe numeric conversions with overflow checks.
package safe

import (
	"fmt"
	"math"
)

// Integer is the set of integer kinds the conversions accept.
type Integer interface {
	~int | ~int32 | ~int64 | ~uint | ~uint16 | ~uint32 | ~uint64
}

func toUnsigned[T Integer](v T, limit uint64, kind string) (uint64, error) {
	if v < 0 || uint64(v) > limit {
		return 0, fmt.Errorf("value %d out of %s range", v, kind)
	}
	return uint64(v), nil
}

// Uint16 converts an integer to uint16, e.g. a peer uid scanned from an int column.
func Uint16[T Integer](v T) (uint16, error) {
	out, err := toUnsigned(v, math.MaxUint16, "uint16")
	return uint16(out), err
}

// Uint32 converts an integer to uint32 with range validation.
func Uint32[T Integer](v T) (uint32, error) {
	out, err := toUnsigned(v, math.MaxUint32, "uint32")
	return uint32(out), err
}

// Uint64 converts an integer to uint64 while guarding against negatives.
func Uint64[T Integer](v T) (uint64, error) {
	return toUnsigned(v, math.MaxUint64, "uint64")
}
