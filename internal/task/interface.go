package task

import (
	"context"
	"io"

	"file-processing-tasks/internal/fam"
	"file-processing-tasks/internal/model"
)

// Task is one file-processing stage the host pipeline can discover,
// configure, persist and run once per document.
type Task interface {
	Component
	Persistable
	Processor
}

// Component covers discovery, configuration and copying.
type Component interface {
	// TypeName is the registry key; also used as the license component name.
	TypeName() string
	// Description is the categorized-component name shown by the host.
	Description() string
	IsConfigured() bool

	// Settings returns a copy of the current settings, suitable for JSON.
	Settings() any
	// Configure merges a JSON settings document into the current settings.
	Configure(settingsJSON []byte) error

	Clone() Task
	CopyFrom(src Task) error
	ValidateLicense(checker fam.LicenseChecker) error
}

// Persistable is the versioned stream contract.
type Persistable interface {
	IsDirty() bool
	Save(w io.Writer, clearDirty bool) error
	Load(r io.Reader) error
}

// Processor is the per-file lifecycle. Standby and Cancel may be called from a
// different goroutine than the other methods and must not block.
type Processor interface {
	Init(ctx context.Context, actionID int, host fam.Host) error
	ProcessFile(ctx context.Context, rec model.FileRecord, actionID int, host fam.Host, progress ProgressStatus) (Result, error)
	Standby() bool
	Cancel()
	Close() error
}

// ProgressStatus receives coarse progress from ProcessFile.
type ProgressStatus interface {
	Start(totalItems int, text string)
	CompleteItem(text string)
}

// UseCase is the invoker behind the HTTP API and the CLI.
type UseCase interface {
	ListComponents(ctx context.Context) []ComponentInfo
	EncodeSettings(ctx context.Context, input EncodeInput) (EncodeOutput, error)
	DecodeSettings(ctx context.Context, component []byte) (DecodeOutput, error)
	Process(ctx context.Context, sc model.Scope, input ProcessInput) (ProcessOutput, error)
	// Cancel requests cancellation of an in-flight run.
	Cancel(ctx context.Context, runID string) error
}
