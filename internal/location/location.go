// Package location holds the static registry of monitored facility zones
// and their acceptable temperature ranges.
package location

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/luki/templog/internal/status"
)

// Type is the kind of equipment a location represents.
type Type string

const (
	Freezer      Type = "freezer"
	Refrigerator Type = "refrigerator"
	HotHolding   Type = "hot-holding"
)

// Valid reports whether t is a known location type.
func (t Type) Valid() bool {
	switch t {
	case Freezer, Refrigerator, HotHolding:
		return true
	}
	return false
}

var (
	ErrUnknownLocation = errors.New("unknown location")
	ErrInvalidLocation = errors.New("invalid location")
)

// Location is a monitored zone. Temperatures are in °F.
type Location struct {
	ID      string
	Name    string
	MinTemp float64
	MaxTemp float64
	Type    Type
}

// Classify returns the status of temp against this location's range.
func (l Location) Classify(temp float64) status.Status {
	return status.Classify(temp, l.MinTemp, l.MaxTemp)
}

// RangeText renders the acceptable range, e.g. "-10°F to 0°F".
func (l Location) RangeText() string {
	return fmtTemp(l.MinTemp) + "°F to " + fmtTemp(l.MaxTemp) + "°F"
}

func fmtTemp(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Defaults returns the seeded set of facility locations.
func Defaults() []Location {
	return []Location{
		{ID: "1", Name: "Walk-in Freezer", MinTemp: -10, MaxTemp: 0, Type: Freezer},
		{ID: "2", Name: "Main Refrigerator", MinTemp: 33, MaxTemp: 40, Type: Refrigerator},
		{ID: "3", Name: "Hot Food Station", MinTemp: 135, MaxTemp: 165, Type: HotHolding},
	}
}

// Registry is the read-only set of locations for the process lifetime.
type Registry struct {
	locations []Location
	byID      map[string]int
}

// NewRegistry validates locs and builds a registry that preserves their order.
func NewRegistry(locs []Location) (*Registry, error) {
	if len(locs) == 0 {
		return nil, fmt.Errorf("%w: no locations configured", ErrInvalidLocation)
	}

	r := &Registry{
		locations: make([]Location, 0, len(locs)),
		byID:      make(map[string]int, len(locs)),
	}
	for _, l := range locs {
		switch {
		case l.ID == "":
			return nil, fmt.Errorf("%w: empty id for %q", ErrInvalidLocation, l.Name)
		case l.Name == "":
			return nil, fmt.Errorf("%w: empty name for id %q", ErrInvalidLocation, l.ID)
		case !l.Type.Valid():
			return nil, fmt.Errorf("%w: %q has unknown type %q", ErrInvalidLocation, l.Name, l.Type)
		case l.MinTemp > l.MaxTemp:
			return nil, fmt.Errorf("%w: %q min %v above max %v", ErrInvalidLocation, l.Name, l.MinTemp, l.MaxTemp)
		}
		if _, dup := r.byID[l.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidLocation, l.ID)
		}
		r.byID[l.ID] = len(r.locations)
		r.locations = append(r.locations, l)
	}
	return r, nil
}

// All returns a copy of every location in seed order.
func (r *Registry) All() []Location {
	out := make([]Location, len(r.locations))
	copy(out, r.locations)
	return out
}

// Find looks up a location by id.
func (r *Registry) Find(id string) (Location, error) {
	i, ok := r.byID[id]
	if !ok {
		return Location{}, fmt.Errorf("%w: %q", ErrUnknownLocation, id)
	}
	return r.locations[i], nil
}

// Len returns the number of registered locations.
func (r *Registry) Len() int {
	return len(r.locations)
}
