package debug_utils

import (
	"sync"

	"github.com/gorustyt/gonavgrid/navgrid"
)

// DebugPoint is one annotation recorded during a build.
type DebugPoint struct {
	Pos   navgrid.Position
	Z     float64
	Kind  navgrid.MarkKind
	Color Colorb
}

// PointLift raises debug points above the surface so they stay visible.
const PointLift = 10

// Counter is a navgrid.Observer that only tallies marks per kind.
type Counter struct {
	mu     sync.Mutex
	counts map[navgrid.MarkKind]int
}

func NewCounter() *Counter {
	return &Counter{counts: make(map[navgrid.MarkKind]int)}
}

func (c *Counter) Mark(_ navgrid.Position, _ float64, kind navgrid.MarkKind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[kind]++
}

func (c *Counter) Count(kind navgrid.MarkKind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[kind]
}

func (c *Counter) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.counts)
}

// Recorder is a navgrid.Observer that keeps every mark in order. Memory grows
// with the number of marks, use a Counter when only totals are needed.
type Recorder struct {
	mu      sync.Mutex
	points  []DebugPoint
	counter *Counter
}

func NewRecorder() *Recorder {
	return &Recorder{counter: NewCounter()}
}

func (r *Recorder) Mark(pos navgrid.Position, z float64, kind navgrid.MarkKind) {
	r.mu.Lock()
	r.points = append(r.points, DebugPoint{Pos: pos, Z: z + PointLift, Kind: kind, Color: MarkColor(kind)})
	r.mu.Unlock()
	r.counter.Mark(pos, z, kind)
}

// Points returns a copy of the recorded marks.
func (r *Recorder) Points() []DebugPoint {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]DebugPoint(nil), r.points...)
}

func (r *Recorder) Count(kind navgrid.MarkKind) int {
	return r.counter.Count(kind)
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	r.points = nil
	r.mu.Unlock()
	r.counter.Reset()
}

// MultiObserver fans marks out to several observers.
type MultiObserver []navgrid.Observer

func (m MultiObserver) Mark(pos navgrid.Position, z float64, kind navgrid.MarkKind) {
	for _, o := range m {
		o.Mark(pos, z, kind)
	}
}
