package normalizer

import (
	"errors"
	"fmt"
	"math"

	"github.com/baditaflorin/go_range_normalizer/internal/ports"
)

var (
	// ErrDegenerateRange means min == max, which divides by zero.
	ErrDegenerateRange = errors.New("degenerate range: min equals max")
	// ErrNonPositiveBound means a logarithmic range has a bound <= 0.
	ErrNonPositiveBound = errors.New("logarithmic range requires positive bounds")
	// ErrNotFinite means a bound is NaN or infinite.
	ErrNotFinite = errors.New("range bound is not finite")
)

// CheckRange reports whether [min, max] is usable by the given strategy.
// Constructors never call it; callers that want strict behaviour do.
func CheckRange[T ports.Sample](normalizerType NormalizerType, min, max T) error {
	for _, bound := range []T{min, max} {
		f := float64(bound)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: [%v, %v]", ErrNotFinite, min, max)
		}
	}

	switch normalizerType {
	case LinearNormalizerType:
	case LogNormalizerType:
		if min <= 0 || max <= 0 {
			return fmt.Errorf("%w: [%v, %v]", ErrNonPositiveBound, min, max)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownNormalizerType, normalizerType)
	}

	if min == max {
		return fmt.Errorf("%w: [%v, %v]", ErrDegenerateRange, min, max)
	}
	return nil
}
