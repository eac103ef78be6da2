package normalizer

import (
	"errors"
	"math"
	"testing"
)

func TestPublicLinear(t *testing.T) {
	n := NewLinear(0.0, 10.0)
	if got := n.ToNormal(5); got != 0.5 {
		t.Errorf("ToNormal(5) = %v, want 0.5", got)
	}
	if got := n.FromNormal(0.5); got != 5 {
		t.Errorf("FromNormal(0.5) = %v, want 5", got)
	}
}

func TestPublicLog(t *testing.T) {
	n := NewLog(1.0, 100.0)
	if got := n.ToNormal(10); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("ToNormal(10) = %v, want 0.5", got)
	}
}

func TestRuntimeSelectionMatchesStatic(t *testing.T) {
	tests := []struct {
		name     string
		typ      string
		min, max float64
		static   Normalizer[float64]
	}{
		{name: "linear", typ: "linear", min: -2, max: 2, static: NewLinear(-2.0, 2.0)},
		{name: "log", typ: "log", min: 20, max: 20000, static: NewLog(20.0, 20000.0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			typ, err := ParseType(tc.typ)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			dynamic, err := New(typ, tc.min, tc.max)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, v := range []float64{tc.min, (tc.min + tc.max) / 2, tc.max} {
				if got, want := dynamic.ToNormal(v), tc.static.ToNormal(v); got != want {
					t.Errorf("ToNormal(%v) = %v, want %v", v, got, want)
				}
			}
		})
	}
}

func TestBoxedThroughProvider(t *testing.T) {
	n := Boxed[float64, Log[float64]](LogProvider[float64]{}, 1, 1000)
	if got := n.FromNormal(n.ToNormal(31.6)); math.Abs(got-31.6) > 1e-9 {
		t.Errorf("round trip = %v, want 31.6", got)
	}

	l := Boxed[float32, Linear[float32]](LinearProvider[float32]{}, 0, 4)
	if got := l.ToNormal(1); got != 0.25 {
		t.Errorf("ToNormal(1) = %v, want 0.25", got)
	}
}

func TestCheckRangeIsOptIn(t *testing.T) {
	n, err := New(LinearType, 1.0, 1.0)
	if err != nil {
		t.Fatalf("New must not validate the range: %v", err)
	}
	if !math.IsNaN(n.ToNormal(1)) {
		t.Errorf("expected NaN for degenerate range")
	}
	if err := CheckRange(LinearType, 1.0, 1.0); !errors.Is(err, ErrDegenerateRange) {
		t.Errorf("expected ErrDegenerateRange, got %v", err)
	}
}

func TestMapper(t *testing.T) {
	m, err := NewMapper("frequency", LogType, 20, 20000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := m.ToNormal(20000)
	if math.Abs(result.Output-1) > 1e-12 || !result.Finite {
		t.Errorf("unexpected result: %+v", result)
	}
	back := m.FromNormal(result.Output)
	if math.Abs(back.Output-20000) > 1e-6 {
		t.Errorf("round trip = %v, want 20000", back.Output)
	}
}

func TestMapperStrictRange(t *testing.T) {
	if _, err := NewMapper("gain", LogType, 0, 1, WithStrictRange(true)); !errors.Is(err, ErrNonPositiveBound) {
		t.Errorf("expected ErrNonPositiveBound, got %v", err)
	}

	m, err := NewMapper("gain", LogType, 0, 1)
	if err != nil {
		t.Fatalf("permissive mapper must accept the range: %v", err)
	}
	if result := m.ToNormal(0.5); result.Finite {
		t.Errorf("expected non-finite output, got %+v", result)
	}
}
