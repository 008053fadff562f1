package particle

import (
	"fmt"
	"math"
)

const (
	SparkAirDrag   = 0.9
	SparkDrawWidth = 0.75
)

// Spark is a short-lived trail particle with no effects of its own.
type Spark struct {
	X, Y           float64
	PrevX, PrevY   float64
	Color          Color
	SpeedX, SpeedY float64
	Life           float64

	slot   int
	active bool
}

// SparkStore owns every live spark (bucketed by color) and the free pool.
type SparkStore struct {
	active [colorCount][]*Spark
	pool   []*Spark
}

func NewSparkStore() *SparkStore {
	return &SparkStore{}
}

// Add activates a spark moving at speed along angle.
func (s *SparkStore) Add(x, y float64, c Color, angle, speed, life float64) *Spark {
	if !c.Valid() {
		panic(fmt.Sprintf("particle: spark added with invalid color %v", c))
	}

	var spark *Spark
	if n := len(s.pool); n > 0 {
		spark = s.pool[n-1]
		s.pool[n-1] = nil
		s.pool = s.pool[:n-1]
	} else {
		spark = &Spark{}
	}

	*spark = Spark{
		X:      x,
		Y:      y,
		PrevX:  x,
		PrevY:  y,
		Color:  c,
		SpeedX: math.Sin(angle) * speed,
		SpeedY: math.Cos(angle) * speed,
		Life:   life,
	}
	spark.slot = len(s.active[c])
	spark.active = true
	s.active[c] = append(s.active[c], spark)
	return spark
}

// ReturnInstance moves a live spark to the pool. Returning a pooled spark is a no-op.
func (s *SparkStore) ReturnInstance(spark *Spark) {
	if !spark.active {
		return
	}
	bucket := s.active[spark.Color]
	last := len(bucket) - 1
	if spark.slot != last {
		moved := bucket[last]
		bucket[spark.slot] = moved
		moved.slot = spark.slot
	}
	bucket[last] = nil
	s.active[spark.Color] = bucket[:last]
	spark.active = false
	s.pool = append(s.pool, spark)
}

// Active returns the live sparks of one color; valid until the next mutation.
func (s *SparkStore) Active(c Color) []*Spark {
	if c >= colorCount {
		return nil
	}
	return s.active[c]
}

func (s *SparkStore) Len() int {
	n := 0
	for _, bucket := range s.active {
		n += len(bucket)
	}
	return n
}

func (s *SparkStore) PoolLen() int { return len(s.pool) }

// Reset drops every live spark into the pool.
func (s *SparkStore) Reset() {
	for c := range s.active {
		for _, spark := range s.active[c] {
			spark.active = false
			s.pool = append(s.pool, spark)
		}
		s.active[c] = s.active[c][:0]
	}
}
