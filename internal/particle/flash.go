package particle

// Flash is a one-frame glow drawn where a shell bursts.
type Flash struct {
	X, Y   float64
	Radius float64
}

// FlashQueue collects the flashes of the current frame.
type FlashQueue struct {
	active []*Flash
	pool   []*Flash
}

func NewFlashQueue() *FlashQueue {
	return &FlashQueue{}
}

// Add queues a flash of the given radius.
func (q *FlashQueue) Add(x, y, radius float64) *Flash {
	var f *Flash
	if n := len(q.pool); n > 0 {
		f = q.pool[n-1]
		q.pool = q.pool[:n-1]
	} else {
		f = &Flash{}
	}
	f.X, f.Y, f.Radius = x, y, radius
	q.active = append(q.active, f)
	return f
}

// Active returns the queued flashes.
func (q *FlashQueue) Active() []*Flash { return q.active }

func (q *FlashQueue) Len() int { return len(q.active) }

// Drain hands every queued flash to fn (which may be nil) and recycles them.
func (q *FlashQueue) Drain(fn func(f *Flash)) {
	for i, f := range q.active {
		if fn != nil {
			fn(f)
		}
		q.pool = append(q.pool, f)
		q.active[i] = nil
	}
	q.active = q.active[:0]
}
