// Package store keeps the append-only, in-memory audit trail of temperature
// logs for the lifetime of the process.
package store

import (
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"

	"github.com/luki/templog/internal/status"
)

// TemperatureLog is one recorded reading. LocationName is copied from the
// location at submission time and Status is derived once on creation.
type TemperatureLog struct {
	ID           snowflake.ID
	LocationName string
	Temperature  float64 // °F
	Timestamp    time.Time
	CheckedBy    string
	Notes        string
	Status       status.Status
}

// Store is the append-only log list. There is deliberately no update or
// delete.
type Store struct {
	node   *snowflake.Node
	logs   []TemperatureLog // insertion order, oldest first
	lastID snowflake.ID
}

// New creates an empty store generating IDs on the given snowflake node
// (0-1023).
func New(node int64) (*Store, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, fmt.Errorf("id generator: %w", err)
	}
	return &Store{node: n}, nil
}

// Append assigns a fresh ID to entry, stores it and returns the stored copy.
// IDs strictly increase in insertion order.
func (s *Store) Append(entry TemperatureLog) TemperatureLog {
	id := s.node.Generate()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	entry.ID = id
	s.logs = append(s.logs, entry)
	return entry
}

// All returns every log, most recently appended first.
func (s *Store) All() []TemperatureLog {
	out := make([]TemperatureLog, len(s.logs))
	for i, l := range s.logs {
		out[len(s.logs)-1-i] = l
	}
	return out
}

// Len returns the number of stored logs.
func (s *Store) Len() int {
	return len(s.logs)
}
