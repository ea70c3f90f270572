package store

import (
	"github.com/luki/templog/internal/location"
	"github.com/luki/templog/internal/status"
)

// Bucket is one label→count pair of an aggregation view.
type Bucket struct {
	Label string
	Count int
}

// Counts is an ordered aggregation view, suitable for charts.
type Counts []Bucket

// Total sums every bucket.
func (c Counts) Total() int {
	n := 0
	for _, b := range c {
		n += b.Count
	}
	return n
}

// Map returns the view as a label→count mapping.
func (c Counts) Map() map[string]int {
	m := make(map[string]int, len(c))
	for _, b := range c {
		m[b.Label] = b.Count
	}
	return m
}

// CountByLocation counts logs per location name. Every location gets a
// bucket, in registry order, even when it has no logs. Names that match no
// location are appended in first-seen order so the total always equals
// len(logs).
func CountByLocation(logs []TemperatureLog, locations []location.Location) Counts {
	out := make(Counts, 0, len(locations))
	idx := make(map[string]int, len(locations))
	for _, l := range locations {
		if _, ok := idx[l.Name]; ok {
			continue
		}
		idx[l.Name] = len(out)
		out = append(out, Bucket{Label: l.Name})
	}

	for _, lg := range logs {
		i, ok := idx[lg.LocationName]
		if !ok {
			i = len(out)
			idx[lg.LocationName] = i
			out = append(out, Bucket{Label: lg.LocationName})
		}
		out[i].Count++
	}
	return out
}

// CountByStatus counts logs per status label, always including safe,
// warning and danger.
func CountByStatus(logs []TemperatureLog) Counts {
	statuses := status.All()
	out := make(Counts, 0, len(statuses))
	idx := make(map[status.Status]int, len(statuses))
	for _, s := range statuses {
		idx[s] = len(out)
		out = append(out, Bucket{Label: s.Label()})
	}

	for _, lg := range logs {
		i, ok := idx[lg.Status]
		if !ok {
			i = len(out)
			idx[lg.Status] = i
			out = append(out, Bucket{Label: lg.Status.Label()})
		}
		out[i].Count++
	}
	return out
}
