package particle

import (
	"fmt"
	"math"

	"github.com/gonewx/fireworks/pkg/rng"
)

// Star drag factors per 60Hz frame.
const (
	StarAirDrag      = 0.98
	StarAirDragHeavy = 0.992
	DefaultStarSize  = 3.0
)

// Star is a visible (or invisible) point with a trail, optional color
// transition, strobing, spark emission and a death effect.
type Star struct {
	Visible bool
	Heavy   bool

	X, Y         float64
	PrevX, PrevY float64
	Color        Color

	SpeedX, SpeedY float64
	Life, FullLife float64
	Size           float64

	SpinAngle  float64
	SpinSpeed  float64
	SpinRadius float64

	// Spark emission. SparkFreq is the ms between sparks; 0 disables emission.
	SparkFreq          float64
	SparkSpeed         float64
	SparkTimer         float64
	SparkColor         Color
	SparkLife          float64
	SparkLifeVariation float64

	Strobe     bool
	StrobeFreq float64

	// SecondColor takes over once Life drops below TransitionTime.
	SecondColor    Color
	TransitionTime float64
	ColorChanged   bool

	Death DeathEffect

	slot   int
	active bool
}

// Active reports whether the star is live in a bucket.
func (s *Star) Active() bool { return s.active }

// StarStore owns every live star (bucketed by color) and the free pool.
type StarStore struct {
	active  [colorCount][]*Star
	pool    []*Star
	rng     rng.Source
	handler DeathHandler
}

// NewStarStore creates an empty store drawing spin angles from r.
func NewStarStore(r rng.Source) *StarStore {
	return &StarStore{rng: r}
}

// SetDeathHandler installs the dispatcher for death effects.
func (s *StarStore) SetDeathHandler(h DeathHandler) {
	s.handler = h
}

// Add activates a star with default size and no speed offset.
func (s *StarStore) Add(x, y float64, c Color, angle, speed, life float64) *Star {
	return s.AddOffset(x, y, c, angle, speed, life, 0, 0, DefaultStarSize)
}

// AddOffset activates a star moving at speed along angle (0 points down the
// y axis, π points up) plus the given velocity offset. Every field is
// reinitialized whether the record is fresh or recycled.
func (s *StarStore) AddOffset(x, y float64, c Color, angle, speed, life, speedOffX, speedOffY, size float64) *Star {
	if !c.Valid() {
		panic(fmt.Sprintf("particle: star added with invalid color %v", c))
	}

	var star *Star
	if n := len(s.pool); n > 0 {
		star = s.pool[n-1]
		s.pool[n-1] = nil
		s.pool = s.pool[:n-1]
	} else {
		star = &Star{}
	}

	*star = Star{
		Visible:            true,
		X:                  x,
		Y:                  y,
		PrevX:              x,
		PrevY:              y,
		Color:              c,
		SpeedX:             math.Sin(angle)*speed + speedOffX,
		SpeedY:             math.Cos(angle)*speed + speedOffY,
		Life:               life,
		FullLife:           life,
		Size:               size,
		SpinAngle:          rng.Angle(s.rng),
		SpinSpeed:          0.8,
		SparkSpeed:         1,
		SparkColor:         c,
		SparkLife:          750,
		SparkLifeVariation: 0.25,
	}
	s.attach(star)
	return star
}

// ReturnInstance runs the star's death effect exactly once, clears its
// transient state and moves it to the pool. Returning a pooled star is a no-op.
func (s *StarStore) ReturnInstance(star *Star) {
	if !star.active {
		return
	}
	s.detach(star)

	if s.handler != nil && star.Death.Kind != EffectNone {
		s.handler.HandleDeath(star)
	}

	star.Death = DeathEffect{}
	star.SecondColor = NoColor
	star.TransitionTime = 0
	star.ColorChanged = false
	s.pool = append(s.pool, star)
}

// Recolor moves a live star to the bucket of c.
func (s *StarStore) Recolor(star *Star, c Color) {
	if !c.Valid() {
		panic(fmt.Sprintf("particle: star recolored to invalid color %v", c))
	}
	if star.active {
		s.detach(star)
	}
	star.Color = c
	s.attach(star)
}

// Active returns the live stars of one color. The slice is only valid until
// the next mutation of the store.
func (s *StarStore) Active(c Color) []*Star {
	if c >= colorCount {
		return nil
	}
	return s.active[c]
}

// Len counts live stars over every color.
func (s *StarStore) Len() int {
	n := 0
	for _, bucket := range s.active {
		n += len(bucket)
	}
	return n
}

// PoolLen counts recycled stars waiting for reuse.
func (s *StarStore) PoolLen() int { return len(s.pool) }

// Reset drops every live star into the pool without running death effects.
func (s *StarStore) Reset() {
	for c := range s.active {
		for _, star := range s.active[c] {
			star.active = false
			star.Death = DeathEffect{}
			s.pool = append(s.pool, star)
		}
		s.active[c] = s.active[c][:0]
	}
}

func (s *StarStore) attach(star *Star) {
	star.slot = len(s.active[star.Color])
	star.active = true
	s.active[star.Color] = append(s.active[star.Color], star)
}

// detach swap-removes the star from its bucket.
func (s *StarStore) detach(star *Star) {
	bucket := s.active[star.Color]
	last := len(bucket) - 1
	if star.slot != last {
		moved := bucket[last]
		bucket[star.slot] = moved
		moved.slot = star.slot
	}
	bucket[last] = nil
	s.active[star.Color] = bucket[:last]
	star.active = false
}
