package ports

import "golang.org/x/exp/constraints"

// Sample is the numeric capability set a normalizer operates on.
type Sample interface {
	constraints.Float
}

// Normalizer defines the interface for mapping values between a range and [0, 1].
// Implementations do not clamp or validate their input.
type Normalizer[T Sample] interface {
	// ToNormal maps a value from [min, max] into [0, 1].
	ToNormal(value T) T
	// FromNormal maps a value from [0, 1] back into [min, max].
	FromNormal(value T) T
}

// Provider builds a normalization strategy either as a concrete value or
// behind the Normalizer interface.
type Provider[T Sample, N Normalizer[T]] interface {
	New(min, max T) N
	Boxed(min, max T) Normalizer[T]
}
