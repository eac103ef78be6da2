package normalizer

import (
	"math"

	"github.com/baditaflorin/go_range_normalizer/internal/ports"
)

// Log implements logarithmic normalization between [min, max] and [0, 1].
// Both bounds are expected to be strictly positive.
type Log[T ports.Sample] struct {
	min T
	max T
	a   T
	b   T
}

// NewLog creates a logarithmic normalizer for the given range.
// The coefficients are derived once here: a = min and b = -ln(min/max).
// Non-positive bounds yield NaN coefficients, which then propagate to every result.
func NewLog[T ports.Sample](min, max T) Log[T] {
	zero, one := T(0), T(1)
	return Log[T]{
		min: min,
		max: max,
		a:   min,
		b:   ln(min/max) / (zero - one),
	}
}

// BoxedLog creates a logarithmic normalizer behind the ports.Normalizer interface.
func BoxedLog[T ports.Sample](min, max T) ports.Normalizer[T] {
	n := NewLog(min, max)
	return &n
}

// ToNormal maps value from [min, max] into [0, 1] on a logarithmic scale.
func (n Log[T]) ToNormal(value T) T {
	return ln(value/n.a) / n.b
}

// FromNormal maps value from [0, 1] back into [min, max].
func (n Log[T]) FromNormal(value T) T {
	return exp(n.b*value) * n.a
}

// Min returns the lower bound of the range.
func (n Log[T]) Min() T { return n.min }

// Max returns the upper bound of the range.
func (n Log[T]) Max() T { return n.max }

// A returns the scale coefficient (equal to min).
func (n Log[T]) A() T { return n.a }

// B returns the exponent coefficient, ln(max/min).
func (n Log[T]) B() T { return n.b }

// LogProvider builds logarithmic normalizers.
type LogProvider[T ports.Sample] struct{}

// New implements ports.Provider.
func (LogProvider[T]) New(min, max T) Log[T] {
	return NewLog(min, max)
}

// Boxed implements ports.Provider.
func (LogProvider[T]) Boxed(min, max T) ports.Normalizer[T] {
	return BoxedLog(min, max)
}

func ln[T ports.Sample](v T) T {
	return T(math.Log(float64(v)))
}

func exp[T ports.Sample](v T) T {
	return T(math.Exp(float64(v)))
}
