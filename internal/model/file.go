package model

import (
	"fmt"
	"strings"
)

// FileRecord is the host's view of one document flowing through the pipeline.
type FileRecord struct {
	ID       int      // FAM file id
	Name     string   // Full path of the source document
	Pages    int      // Page count, 0 when unknown
	Size     int64    // Size in bytes, 0 when unknown
	Priority Priority // Queue priority the file was added with
}

// Priority mirrors the host queue priorities. The numeric values are part of
// persisted task settings and must not change.
type Priority int32

const (
	PriorityDefault Priority = iota
	PriorityLow
	PriorityBelowNormal
	PriorityNormal
	PriorityAboveNormal
	PriorityHigh
)

var priorityNames = []string{"default", "low", "below_normal", "normal", "above_normal", "high"}

func (p Priority) String() string {
	if p < 0 || int(p) >= len(priorityNames) {
		return fmt.Sprintf("priority(%d)", int32(p))
	}
	return priorityNames[p]
}

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool { return p >= PriorityDefault && p <= PriorityHigh }

// ParsePriority accepts the names produced by String, case-insensitively.
func ParsePriority(s string) (Priority, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PriorityDefault, nil
	}
	for i, name := range priorityNames {
		if name == s {
			return Priority(i), nil
		}
	}
	return PriorityDefault, fmt.Errorf("unknown priority %q", s)
}

func (p Priority) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid priority %d", int32(p))
	}
	return []byte(p.String()), nil
}

func (p *Priority) UnmarshalText(text []byte) error {
	v, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ActionStatus is the per-action processing state of a file.
type ActionStatus string

const (
	StatusUnattempted ActionStatus = "unattempted"
	StatusPending     ActionStatus = "pending"
	StatusProcessing  ActionStatus = "processing"
	StatusCompleted   ActionStatus = "completed"
	StatusFailed      ActionStatus = "failed"
	StatusSkipped     ActionStatus = "skipped"
)
