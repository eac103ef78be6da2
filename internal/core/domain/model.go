package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDirection is returned when a direction name cannot be parsed.
var ErrUnknownDirection = errors.New("unknown direction")

// Direction tells which way a value is mapped.
type Direction int

const (
	// ToNormal maps from [min, max] into [0, 1]
	ToNormal Direction = iota
	// FromNormal maps from [0, 1] back into [min, max]
	FromNormal
)

func (d Direction) String() string {
	switch d {
	case ToNormal:
		return "to_normal"
	case FromNormal:
		return "from_normal"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection resolves "to_normal" or "from_normal".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "to_normal", "to-normal", "normalize":
		return ToNormal, nil
	case "from_normal", "from-normal", "denormalize":
		return FromNormal, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
	}
}

// Result holds the outcome of a single mapping.
type Result struct {
	Name      string
	Type      string
	Min       float64
	Max       float64
	Direction Direction
	Input     float64
	Output    float64
	// Finite is false when Output is NaN or infinite.
	Finite bool
}
