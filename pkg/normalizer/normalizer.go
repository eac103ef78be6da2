// Package normalizer maps sample values between an arbitrary [min, max] range
// and the canonical [0, 1] range.
//
// Two strategies are provided:
//
//	Linear: to = (v - min) / (max - min)    from = v*(max - min) + min
//	Log:    to = ln(v / min) / ln(max/min)  from = exp(ln(max/min) * v) * min
//
// Neither strategy validates or clamps its input. A degenerate range (min == max)
// or a non-positive bound for Log produces NaN or ±Inf results rather than errors;
// use CheckRange or WithStrictRange to reject such ranges up front.
//
// Use NewLinear / NewLog when the strategy is known at compile time, and New or
// the Boxed constructors when it is chosen at runtime.
package normalizer

import (
	adapter "github.com/baditaflorin/go_range_normalizer/internal/adapters/normalizer"
	"github.com/baditaflorin/go_range_normalizer/internal/ports"
)

// Sample is the set of numeric types a normalizer can operate on.
type Sample = ports.Sample

// Normalizer maps values to and from the [0, 1] range.
type Normalizer[T Sample] = ports.Normalizer[T]

// Provider builds a strategy either as a value or behind the Normalizer interface.
type Provider[T Sample, N Normalizer[T]] = ports.Provider[T, N]

// Linear is the affine strategy.
type Linear[T Sample] = adapter.Linear[T]

// Log is the logarithmic strategy.
type Log[T Sample] = adapter.Log[T]

// LinearProvider builds Linear normalizers.
type LinearProvider[T Sample] = adapter.LinearProvider[T]

// LogProvider builds Log normalizers.
type LogProvider[T Sample] = adapter.LogProvider[T]

// Type selects a strategy at runtime.
type Type = adapter.NormalizerType

const (
	// LinearType selects the Linear strategy.
	LinearType = adapter.LinearNormalizerType
	// LogType selects the Log strategy.
	LogType = adapter.LogNormalizerType
)

var (
	ErrUnknownType      = adapter.ErrUnknownNormalizerType
	ErrDegenerateRange  = adapter.ErrDegenerateRange
	ErrNonPositiveBound = adapter.ErrNonPositiveBound
	ErrNotFinite        = adapter.ErrNotFinite
)

// NewLinear creates a Linear normalizer value.
func NewLinear[T Sample](min, max T) Linear[T] {
	return adapter.NewLinear(min, max)
}

// BoxedLinear creates a Linear normalizer behind the Normalizer interface.
func BoxedLinear[T Sample](min, max T) Normalizer[T] {
	return adapter.BoxedLinear(min, max)
}

// NewLog creates a Log normalizer value.
func NewLog[T Sample](min, max T) Log[T] {
	return adapter.NewLog(min, max)
}

// BoxedLog creates a Log normalizer behind the Normalizer interface.
func BoxedLog[T Sample](min, max T) Normalizer[T] {
	return adapter.BoxedLog(min, max)
}

// Boxed builds a normalizer through any provider.
func Boxed[T Sample, N Normalizer[T], P Provider[T, N]](provider P, min, max T) Normalizer[T] {
	return provider.Boxed(min, max)
}

// New creates a normalizer whose strategy is selected at runtime.
// The range itself is not validated.
func New[T Sample](t Type, min, max T) (Normalizer[T], error) {
	return adapter.NewNormalizerFactory[T]().CreateNormalizer(t, min, max)
}

// ParseType resolves "linear", "log" or "logarithmic".
func ParseType(name string) (Type, error) {
	return adapter.ParseNormalizerType(name)
}

// CheckRange reports whether [min, max] is a usable range for the strategy.
func CheckRange[T Sample](t Type, min, max T) error {
	return adapter.CheckRange(t, min, max)
}
