// Package history keeps a bounded trend of recent readings per location
// with min/peak/avg statistics for the sparkline view.
package history

import (
	"math"
	"time"

	"github.com/luki/templog/internal/status"
)

// Point is a single reading in a location's trend.
type Point struct {
	Temp   float64
	Time   time.Time
	Status status.Status
}

// Buffer stores a ring buffer of readings for one location.
type Buffer struct {
	Points []Point
	Max    int // capacity
	Min    float64
	Peak   float64
}

// NewBuffer creates a new buffer with the given capacity.
func NewBuffer(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{
		Points: make([]Point, 0, capacity),
		Max:    capacity,
		Min:    math.MaxFloat64,
		Peak:   -math.MaxFloat64,
	}
}

// Push adds a reading, dropping the oldest one when full. Min and Peak
// cover every reading ever pushed, not only the retained window.
func (b *Buffer) Push(p Point) {
	if len(b.Points) >= b.Max {
		copy(b.Points, b.Points[1:])
		b.Points[len(b.Points)-1] = p
	} else {
		b.Points = append(b.Points, p)
	}

	if p.Temp < b.Min {
		b.Min = p.Temp
	}
	if p.Temp > b.Peak {
		b.Peak = p.Temp
	}
}

// Last returns the most recent point, or false if empty.
func (b *Buffer) Last() (Point, bool) {
	if len(b.Points) == 0 {
		return Point{}, false
	}
	return b.Points[len(b.Points)-1], true
}

// Avg returns the average temperature across the retained points.
func (b *Buffer) Avg() float64 {
	if len(b.Points) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range b.Points {
		sum += p.Temp
	}
	return sum / float64(len(b.Points))
}

// LastNPoints returns a copy of the last n points.
func (b *Buffer) LastNPoints(n int) []Point {
	if n <= 0 || len(b.Points) == 0 {
		return nil
	}
	start := len(b.Points) - n
	if start < 0 {
		start = 0
	}
	out := make([]Point, len(b.Points[start:]))
	copy(out, b.Points[start:])
	return out
}

// Store manages trends for all locations, keyed by location name.
type Store struct {
	Data     map[string]*Buffer
	Capacity int
}

// NewStore creates a store with the given per-location capacity.
func NewStore(capacity int) *Store {
	return &Store{
		Data:     make(map[string]*Buffer),
		Capacity: capacity,
	}
}

// Record adds a reading for the given location.
func (s *Store) Record(name string, temp float64, t time.Time, st status.Status) {
	b, ok := s.Data[name]
	if !ok {
		b = NewBuffer(s.Capacity)
		s.Data[name] = b
	}
	b.Push(Point{Temp: temp, Time: t, Status: st})
}

// Get returns the buffer for a location, or nil.
func (s *Store) Get(name string) *Buffer {
	return s.Data[name]
}
