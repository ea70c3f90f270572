// Package status classifies a temperature reading against a location's
// acceptable range.
package status

// Status is the classification of a single reading.
type Status string

const (
	Safe    Status = "safe"
	Warning Status = "warning"
	Danger  Status = "danger"
)

// Buffer is the tolerance band in °F outside the safe range that still
// counts as a warning rather than danger.
const Buffer = 2.0

var all = []Status{Safe, Warning, Danger}

// All returns every status in display order.
func All() []Status {
	out := make([]Status, len(all))
	copy(out, all)
	return out
}

// Classify maps a temperature and an inclusive [minTemp, maxTemp] range to
// a status.
func Classify(temp, minTemp, maxTemp float64) Status {
	if temp >= minTemp && temp <= maxTemp {
		return Safe
	}
	if (temp >= minTemp-Buffer && temp < minTemp) ||
		(temp > maxTemp && temp <= maxTemp+Buffer) {
		return Warning
	}
	return Danger
}

// Label returns the human-readable name of the status.
func (s Status) Label() string {
	switch s {
	case Safe:
		return "Safe"
	case Warning:
		return "Warning"
	case Danger:
		return "Danger"
	default:
		return string(s)
	}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	for _, v := range all {
		if s == v {
			return true
		}
	}
	return false
}
