package normalizer

import (
	"github.com/baditaflorin/go_range_normalizer/internal/ports"
)

// Linear implements affine normalization between [min, max] and [0, 1].
type Linear[T ports.Sample] struct {
	min T
	max T
}

// NewLinear creates a linear normalizer for the given range.
// A range with min == max divides by zero in both directions.
func NewLinear[T ports.Sample](min, max T) Linear[T] {
	return Linear[T]{min: min, max: max}
}

// BoxedLinear creates a linear normalizer behind the ports.Normalizer interface.
func BoxedLinear[T ports.Sample](min, max T) ports.Normalizer[T] {
	n := NewLinear(min, max)
	return &n
}

// ToNormal maps value from [min, max] into [0, 1].
func (n Linear[T]) ToNormal(value T) T {
	return (value - n.min) / (n.max - n.min)
}

// FromNormal maps value from [0, 1] back into [min, max].
func (n Linear[T]) FromNormal(value T) T {
	return value*(n.max-n.min) + n.min
}

// Min returns the lower bound of the range.
func (n Linear[T]) Min() T { return n.min }

// Max returns the upper bound of the range.
func (n Linear[T]) Max() T { return n.max }

// LinearProvider builds linear normalizers.
type LinearProvider[T ports.Sample] struct{}

// New implements ports.Provider.
func (LinearProvider[T]) New(min, max T) Linear[T] {
	return NewLinear(min, max)
}

// Boxed implements ports.Provider.
func (LinearProvider[T]) Boxed(min, max T) ports.Normalizer[T] {
	return BoxedLinear(min, max)
}
