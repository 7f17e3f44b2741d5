package task

import (
	"fmt"
	"time"

	"file-processing-tasks/internal/model"
)

// Category is the host component category every task registers under.
const Category = "File processors"

// Result is the outcome of ProcessFile.
type Result int

const (
	ResultSuccessful Result = iota
	ResultCancelled
	ResultError
)

var resultNames = []string{"successful", "cancelled", "error"}

func (r Result) String() string {
	if r < 0 || int(r) >= len(resultNames) {
		return fmt.Sprintf("result(%d)", int(r))
	}
	return resultNames[r]
}

func (r Result) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

type nopProgress struct{}

func (nopProgress) Start(int, string)    {}
func (nopProgress) CompleteItem(string) {}

// NopProgress discards progress updates.
var NopProgress ProgressStatus = nopProgress{}

// ComponentInfo describes one registered task type.
type ComponentInfo struct {
	TypeName    string `json:"type_name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// EncodeInput is a task type plus an optional JSON settings document.
type EncodeInput struct {
	TypeName string
	Settings []byte
}

// EncodeOutput is a persisted component.
type EncodeOutput struct {
	TypeName   string
	Component  []byte
	Configured bool
}

// DecodeOutput is the readable form of a persisted component.
type DecodeOutput struct {
	TypeName    string
	Description string
	Settings    any
	Configured  bool
}

// ProcessInput selects a task either by Component or by TypeName plus
// Settings, and the file to run it on.
type ProcessInput struct {
	TypeName  string
	Settings  []byte
	Component []byte

	FilePath string
	Pages    int
	Priority model.Priority
	// Action is the FAM action the status is recorded under. Defaults to the
	// task type name.
	Action string
	// RunID lets the caller pick the id Cancel accepts. A uuid is generated
	// when empty.
	RunID string
}

// ProcessOutput is the outcome of one run.
type ProcessOutput struct {
	RunID    string
	File     model.FileRecord
	Action   string
	Result   Result
	Status   model.ActionStatus
	Metadata map[string]string
	Duration time.Duration
}
