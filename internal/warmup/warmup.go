package warmup

import (
	"context"
	"math"
	"time"

	"github.com/baditaflorin/go_range_normalizer/internal/ports"
)

// WarmupConfig defines configuration for warming up registered normalizers
type WarmupConfig struct {
	// Number of interior sample points between 0 and 1
	Samples int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Relative tolerance for the round-trip check
	Tolerance float64
}

// DefaultWarmupConfig returns the default warmup configuration
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Samples:   64,
		Duration:  5 * time.Second,
		Tolerance: 1e-9,
	}
}

// Report summarizes the warmup of one normalizer.
type Report struct {
	Name string
	// Evaluated counts the sample points that were mapped in both directions.
	Evaluated int
	// NonFinite counts sample points whose mapping was NaN or infinite.
	NonFinite int
	// MaxRoundTripError is the largest relative error of FromNormal(ToNormal(v)).
	MaxRoundTripError float64
}

// Healthy reports whether every sample mapped to a finite value within tolerance.
func (r Report) Healthy(tolerance float64) bool {
	return r.Evaluated > 0 && r.NonFinite == 0 && r.MaxRoundTripError <= tolerance
}

type entry struct {
	name       string
	normalizer ports.Normalizer[float64]
}

// Manager exercises registered normalizers once before they serve traffic.
// Problems are logged, never rejected: a permissive range stays in service.
type Manager struct {
	logger  ports.Logger
	entries []entry
	config  WarmupConfig
}

// NewManager creates a new warmup manager
func NewManager(logger ports.Logger, config WarmupConfig) *Manager {
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterNormalizer adds a normalizer to be warmed up
func (wm *Manager) RegisterNormalizer(name string, n ports.Normalizer[float64]) {
	wm.entries = append(wm.entries, entry{name: name, normalizer: n})
}

// WarmUp runs the warmup for all registered normalizers and returns one report each.
func (wm *Manager) WarmUp(ctx context.Context) []Report {
	startTime := time.Now()
	wm.logger.Info("Starting normalizer warmup",
		"components", len(wm.entries),
		"samples", wm.config.Samples,
	)

	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	reports := make([]Report, 0, len(wm.entries))
	for _, e := range wm.entries {
		select {
		case <-ctx.Done():
			wm.logger.Warn("Warmup interrupted", "error", ctx.Err())
			return reports
		default:
		}

		report := wm.warmUpNormalizer(e)
		if report.Healthy(wm.config.Tolerance) {
			wm.logger.Debug("Normalizer warmed up",
				"name", report.Name,
				"max_round_trip_error", report.MaxRoundTripError,
			)
		} else {
			wm.logger.Warn("Normalizer produces non-finite or inexact values",
				"name", report.Name,
				"non_finite", report.NonFinite,
				"max_round_trip_error", report.MaxRoundTripError,
			)
		}
		reports = append(reports, report)
	}

	wm.logger.Info("Normalizer warmup completed",
		"duration", time.Since(startTime),
	)
	return reports
}

// warmUpNormalizer walks [0, 1] and checks that every point survives a round trip.
func (wm *Manager) warmUpNormalizer(e entry) Report {
	report := Report{Name: e.name}
	steps := wm.config.Samples + 1
	if steps < 1 {
		steps = 1
	}

	for i := 0; i <= steps; i++ {
		normal := float64(i) / float64(steps)
		value := e.normalizer.FromNormal(normal)
		back := e.normalizer.ToNormal(value)
		report.Evaluated++

		if !finite(value) || !finite(back) {
			report.NonFinite++
			continue
		}
		again := e.normalizer.FromNormal(back)
		if diff := relativeError(again, value); diff > report.MaxRoundTripError {
			report.MaxRoundTripError = diff
		}
	}
	return report
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func relativeError(got, want float64) float64 {
	if got == want {
		return 0
	}
	return math.Abs(got-want) / math.Max(1, math.Abs(want))
}
