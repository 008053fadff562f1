package particle

import (
	"math"
	"testing"
)

func TestSparkAddAndReturn(t *testing.T) {
	store := NewSparkStore()
	a := store.Add(1, 2, Gold, 0, 2, 300)
	b := store.Add(1, 2, Gold, math.Pi/2, 1, 300)

	if math.Abs(a.SpeedY-2) > 1e-9 || math.Abs(a.SpeedX) > 1e-9 {
		t.Errorf("a speed = (%v, %v), want (0, 2)", a.SpeedX, a.SpeedY)
	}
	if math.Abs(b.SpeedX-1) > 1e-9 {
		t.Errorf("b SpeedX = %v, want 1", b.SpeedX)
	}
	if a.PrevX != 1 || a.PrevY != 2 {
		t.Errorf("prev = (%v, %v), want (1, 2)", a.PrevX, a.PrevY)
	}

	store.ReturnInstance(a)
	store.ReturnInstance(a)
	if store.Len() != 1 || store.PoolLen() != 1 {
		t.Errorf("Len/PoolLen = %d/%d, want 1/1", store.Len(), store.PoolLen())
	}
	if got := store.Active(Gold); len(got) != 1 || got[0] != b {
		t.Errorf("gold bucket = %v, want only b", got)
	}

	c := store.Add(0, 0, White, 0, 0, 10)
	if c != a {
		t.Error("expected pooled spark to be reused")
	}
	if c.Color != White || c.Life != 10 {
		t.Errorf("reused spark = %+v", c)
	}
}

func TestSparkReset(t *testing.T) {
	store := NewSparkStore()
	for i := 0; i < 5; i++ {
		store.Add(0, 0, Red, 0, 1, 10)
	}
	store.Reset()
	if store.Len() != 0 || store.PoolLen() != 5 {
		t.Errorf("after Reset Len/PoolLen = %d/%d, want 0/5", store.Len(), store.PoolLen())
	}
}

func TestFlashQueueDrain(t *testing.T) {
	q := NewFlashQueue()
	q.Add(1, 2, 25)
	q.Add(3, 4, 46)

	var radii []float64
	q.Drain(func(f *Flash) { radii = append(radii, f.Radius) })

	if len(radii) != 2 || radii[0] != 25 || radii[1] != 46 {
		t.Errorf("drained radii = %v, want [25 46]", radii)
	}
	if q.Len() != 0 {
		t.Errorf("Len() after drain = %d, want 0", q.Len())
	}
	if f := q.Add(0, 0, 1); f.Radius != 1 {
		t.Errorf("reused flash radius = %v, want 1", f.Radius)
	}
}

func TestColorHelpers(t *testing.T) {
	tests := []struct {
		name  string
		color Color
		hex   string
		valid bool
	}{
		{"red", Red, "#993122", true},
		{"purple2", Purple2, "#e4b0f2", true},
		{"yellow", Yellow, "#EECA57", true},
		{"invisible", Invisible, "", true},
		{"none", NoColor, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.color.Hex(); got != tt.hex {
				t.Errorf("Hex() = %q, want %q", got, tt.hex)
			}
			if got := tt.color.Valid(); got != tt.valid {
				t.Errorf("Valid() = %v, want %v", got, tt.valid)
			}
			if tt.valid {
				parsed, err := ParseColor(tt.name)
				if err != nil || parsed != tt.color {
					t.Errorf("ParseColor(%q) = %v, %v", tt.name, parsed, err)
				}
			}
		})
	}

	if _, err := ParseColor("mauve"); err == nil {
		t.Error("ParseColor(mauve) should fail")
	}
	if p, ok := Red.Paired(); !ok || p != Pink {
		t.Errorf("Red.Paired() = %v, %v", p, ok)
	}
	if _, ok := Gold.Paired(); ok {
		t.Error("Gold should have no pair")
	}
}

func TestSoundLatch(t *testing.T) {
	var nilLatch *SoundLatch
	if !nilLatch.First() || !nilLatch.First() {
		t.Error("nil latch should always fire")
	}
	l := &SoundLatch{}
	if !l.First() {
		t.Error("first call should fire")
	}
	if l.First() {
		t.Error("second call should not fire")
	}
}
