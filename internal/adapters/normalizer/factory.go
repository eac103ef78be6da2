package normalizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/baditaflorin/go_range_normalizer/internal/ports"
)

// ErrUnknownNormalizerType is returned for a type the factory cannot build.
var ErrUnknownNormalizerType = errors.New("unknown normalizer type")

// NormalizerType selects a normalization strategy.
type NormalizerType int

const (
	// LinearNormalizerType maps values with an affine function
	LinearNormalizerType NormalizerType = iota
	// LogNormalizerType maps values on a logarithmic scale
	LogNormalizerType
)

// String returns the configuration name of the type.
func (t NormalizerType) String() string {
	switch t {
	case LinearNormalizerType:
		return "linear"
	case LogNormalizerType:
		return "log"
	default:
		return fmt.Sprintf("NormalizerType(%d)", int(t))
	}
}

// ParseNormalizerType resolves a configuration name into a NormalizerType.
func ParseNormalizerType(name string) (NormalizerType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linear":
		return LinearNormalizerType, nil
	case "log", "logarithmic":
		return LogNormalizerType, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownNormalizerType, name)
	}
}

// NormalizerFactory creates normalizers whose strategy is only known at runtime.
type NormalizerFactory[T ports.Sample] struct{}

// NewNormalizerFactory creates a new normalizer factory
func NewNormalizerFactory[T ports.Sample]() *NormalizerFactory[T] {
	return &NormalizerFactory[T]{}
}

// CreateNormalizer creates a normalizer of the specified type for [min, max].
func (f *NormalizerFactory[T]) CreateNormalizer(normalizerType NormalizerType, min, max T) (ports.Normalizer[T], error) {
	switch normalizerType {
	case LinearNormalizerType:
		return LinearProvider[T]{}.Boxed(min, max), nil
	case LogNormalizerType:
		return LogProvider[T]{}.Boxed(min, max), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownNormalizerType, normalizerType)
	}
}
