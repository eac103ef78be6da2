package normalizer

import (
	"github.com/baditaflorin/go_range_normalizer/internal/adapters/logger"
	"github.com/baditaflorin/go_range_normalizer/internal/core/domain"
	"github.com/baditaflorin/go_range_normalizer/internal/core/mapping"
	"github.com/baditaflorin/go_range_normalizer/internal/ports"
	"github.com/baditaflorin/l"
)

// Direction tells which way a Mapper maps a value.
type Direction = domain.Direction

const (
	ToNormal   = domain.ToNormal
	FromNormal = domain.FromNormal
)

// Result is the outcome of a single Mapper call.
type Result = domain.Result

// Mapper wraps a runtime-selected float64 normalizer with logging and result reporting.
type Mapper struct {
	mapper *mapping.Mapper
}

// MapperOption defines a functional option for configuring a Mapper.
type MapperOption func(*mapperConfig)

type mapperConfig struct {
	Logger ports.Logger
	Strict bool
}

// WithLogger sets a custom logger for the mapper.
func WithLogger(l l.Logger) MapperOption {
	return func(cfg *mapperConfig) {
		cfg.Logger = logger.FromExisting(l)
	}
}

// WithStrictRange rejects degenerate or out-of-domain ranges at construction.
func WithStrictRange(strict bool) MapperOption {
	return func(cfg *mapperConfig) {
		cfg.Strict = strict
	}
}

// NewMapper creates a named mapper for the given strategy and range.
// Without WithLogger nothing is logged.
func NewMapper(name string, t Type, min, max float64, opts ...MapperOption) (*Mapper, error) {
	config := &mapperConfig{}
	for _, opt := range opts {
		opt(config)
	}

	if config.Logger == nil {
		config.Logger = logger.NewNopLogger()
	}

	m, err := mapping.NewMapper(mapping.Config{
		Name:   name,
		Type:   t,
		Min:    min,
		Max:    max,
		Strict: config.Strict,
	}, config.Logger)
	if err != nil {
		return nil, err
	}

	return &Mapper{mapper: m}, nil
}

// ToNormal maps value into [0, 1].
func (m *Mapper) ToNormal(value float64) Result {
	return m.mapper.Apply(domain.ToNormal, value)
}

// FromNormal maps value back into [min, max].
func (m *Mapper) FromNormal(value float64) Result {
	return m.mapper.Apply(domain.FromNormal, value)
}

// Apply maps value in the given direction. An unknown direction yields a
// non-finite NaN result.
func (m *Mapper) Apply(direction Direction, value float64) Result {
	return m.mapper.Apply(direction, value)
}

// Normalizer returns the underlying type-erased normalizer.
func (m *Mapper) Normalizer() Normalizer[float64] {
	return m.mapper.Normalizer()
}
