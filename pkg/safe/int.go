package safe

import (
	"fmt"
	"math"
)

// Int64 converts an integer to int64, rejecting unsigned values above MaxInt64.
func Int64[T Integer](v T) (int64, error) {
	if v > 0 && uint64(v) > math.MaxInt64 {
		return 0, fmt.Errorf("value %d out of int64 range", v)
	}
	return int64(v), nil
}
