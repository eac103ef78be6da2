package mapping

import (
	"errors"
	"fmt"
	"math"

	"github.com/baditaflorin/go_range_normalizer/internal/adapters/normalizer"
	"github.com/baditaflorin/go_range_normalizer/internal/core/domain"
	"github.com/baditaflorin/go_range_normalizer/internal/ports"
)

// Config describes a named normalizer selected at runtime.
type Config struct {
	Name   string
	Type   normalizer.NormalizerType
	Min    float64
	Max    float64
	Strict bool
}

// Validate checks if the configuration is valid.
// Range bounds are only checked when Strict is set.
func (c Config) Validate() error {
	if c.Name == "" {
		return errors.New("normalizer name must not be empty")
	}
	if c.Strict {
		if err := normalizer.CheckRange(c.Type, c.Min, c.Max); err != nil {
			return fmt.Errorf("normalizer %q: %w", c.Name, err)
		}
	}
	return nil
}

// Mapper applies a runtime-selected normalizer and reports each mapping as a domain.Result.
type Mapper struct {
	config     Config
	logger     ports.Logger
	normalizer ports.Normalizer[float64]
}

// NewMapper creates a mapper, building its normalizer through the factory.
func NewMapper(config Config, logger ports.Logger) (*Mapper, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	n, err := normalizer.NewNormalizerFactory[float64]().CreateNormalizer(config.Type, config.Min, config.Max)
	if err != nil {
		return nil, fmt.Errorf("normalizer %q: %w", config.Name, err)
	}

	logger.Debug("Created normalizer",
		"name", config.Name,
		"type", config.Type.String(),
		"min", config.Min,
		"max", config.Max,
	)

	return &Mapper{
		config:     config,
		logger:     logger,
		normalizer: n,
	}, nil
}

// Config returns the configuration the mapper was built with.
func (m *Mapper) Config() Config {
	return m.config
}

// Normalizer returns the underlying type-erased normalizer.
func (m *Mapper) Normalizer() ports.Normalizer[float64] {
	return m.normalizer
}

// Apply maps value in the given direction. Non-finite outputs are reported, not rejected.
// An unknown direction yields a NaN output with Finite unset.
func (m *Mapper) Apply(direction domain.Direction, value float64) domain.Result {
	result := domain.Result{
		Name:      m.config.Name,
		Type:      m.config.Type.String(),
		Min:       m.config.Min,
		Max:       m.config.Max,
		Direction: direction,
		Input:     value,
	}

	var output float64
	switch direction {
	case domain.ToNormal:
		output = m.normalizer.ToNormal(value)
	case domain.FromNormal:
		output = m.normalizer.FromNormal(value)
	default:
		m.logger.Warn("Unknown mapping direction",
			"name", m.config.Name,
			"direction", direction.String(),
			"input", value,
		)
		result.Output = math.NaN()
		return result
	}

	finite := !math.IsNaN(output) && !math.IsInf(output, 0)
	if !finite {
		m.logger.Warn("Mapping produced a non-finite value",
			"name", m.config.Name,
			"direction", direction.String(),
			"input", value,
		)
	} else {
		m.logger.Debug("Mapped value",
			"name", m.config.Name,
			"direction", direction.String(),
			"input", value,
			"output", output,
		)
	}

	result.Output = output
	result.Finite = finite
	return result
}
