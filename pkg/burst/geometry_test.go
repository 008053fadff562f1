package burst

import (
	"math"
	"testing"

	"pgregory.net/rapid"

	"github.com/gonewx/fireworks/pkg/rng"
)

func countArc(start, arcLength, count, randomness float64) []float64 {
	var angles []float64
	ParticleArc(rng.NewSeeded(1), start, arcLength, count, randomness, func(a float64) {
		angles = append(angles, a)
	})
	return angles
}

func countBurst(count, arcLength float64) int {
	n := 0
	Burst(rng.NewSeeded(1), count, func(float64, float64) { n++ }, 0, arcLength)
	return n
}

func TestParticleArcCounts(t *testing.T) {
	tests := []struct {
		name      string
		start     float64
		arcLength float64
		count     float64
		want      int
	}{
		{"crossette", 0.3, FullCircle, 4, 4},
		{"crackle", 0, FullCircle, 32, 32},
		{"single", 0, FullCircle, 1, 1},
		{"clockwise", 1, -math.Pi, 6, 6},
		{"fractional ring", 0, FullCircle, 2.2 * FullCircle, 14},
		{"zero count", 0, FullCircle, 0, 0},
		{"zero arc", 0, 0, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(countArc(tt.start, tt.arcLength, tt.count, 0.5)); got != tt.want {
				t.Errorf("ParticleArc calls = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParticleArcEvenSpacing(t *testing.T) {
	angles := countArc(0.5, FullCircle, 12, 0)
	step := FullCircle / 12
	for i, a := range angles {
		if want := 0.5 + float64(i)*step; math.Abs(a-want) > 1e-9 {
			t.Errorf("angle[%d] = %v, want %v", i, a, want)
		}
	}
}

func TestParticleArcClockwise(t *testing.T) {
	angles := countArc(0, -math.Pi, 4, 0)
	for i := 1; i < len(angles); i++ {
		if angles[i] >= angles[i-1] {
			t.Fatalf("angles not decreasing: %v", angles)
		}
	}
}

func TestParticleArcProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 400).Draw(t, "count")
		start := rapid.Float64Range(-10, 10).Draw(t, "start")
		arc := rapid.Float64Range(0.01, 4*math.Pi).Draw(t, "arc")
		randomness := rapid.Float64Range(0, 2).Draw(t, "randomness")
		if rapid.Bool().Draw(t, "clockwise") {
			arc = -arc
		}

		angles := countArc(start, arc, float64(n), randomness)
		if len(angles) != n {
			t.Fatalf("calls = %d, want %d", len(angles), n)
		}
		delta := arc / float64(n)
		for i, a := range angles {
			base := start + float64(i)*delta
			jitter := (a - base) / delta
			if jitter < -1e-9 || jitter > randomness+1e-9 {
				t.Fatalf("angle[%d] jitter %v outside [0, %v] steps", i, jitter, randomness)
			}
		}
	})
}

func TestBurstCountBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(6, 1000).Draw(t, "count")
		n := countBurst(float64(count), FullCircle)

		circumference := math.Pi * math.Sqrt(float64(count)/math.Pi)
		if n < count {
			t.Fatalf("Burst(%d) emitted %d, want at least %d", count, n, count)
		}
		if upper := float64(count) + 1.5*circumference + 2; float64(n) > upper {
			t.Fatalf("Burst(%d) emitted %d, want at most %.1f", count, n, upper)
		}
	})
}

func TestBurstMonotonic(t *testing.T) {
	prev := 0
	for count := 6; count <= 1000; count++ {
		n := countBurst(float64(count), FullCircle)
		if n < prev {
			t.Fatalf("Burst(%d) = %d, less than Burst(%d) = %d", count, n, count-1, prev)
		}
		prev = n
	}
}

func TestBurstSpeedMultiplier(t *testing.T) {
	Burst(rng.NewSeeded(5), 200, func(_ float64, mult float64) {
		if mult < 0 || mult > 1 {
			t.Fatalf("speedMult = %v, want [0, 1]", mult)
		}
	}, 0, FullCircle)
}

func TestBurstHalfArc(t *testing.T) {
	full := countBurst(300, FullCircle)
	half := countBurst(300, math.Pi)
	if half >= full || half < full/3 {
		t.Errorf("half-arc burst = %d, full = %d", half, full)
	}

	var angles []float64
	start := 1.0
	Burst(rng.NewSeeded(2), 300, func(a, _ float64) { angles = append(angles, a) }, start, math.Pi)
	for _, a := range angles {
		if a < start {
			t.Fatalf("angle %v before start %v", a, start)
		}
	}
}

func TestBurstZero(t *testing.T) {
	if n := countBurst(0, FullCircle); n != 0 {
		t.Errorf("Burst(0) = %d, want 0", n)
	}
}
