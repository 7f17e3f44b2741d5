package fam

import (
	"context"

	"file-processing-tasks/internal/model"
)

// Database is the subset of the host's file-action-management database that
// tasks are allowed to touch.
type Database interface {
	// AddFile registers path (or returns the existing record) and, when action
	// is non-empty, queues it as pending on that action.
	AddFile(ctx context.Context, path string, action string, priority model.Priority) (model.FileRecord, error)
	GetFile(ctx context.Context, fileID int) (model.FileRecord, error)
	SetStatusForFile(ctx context.Context, fileID int, action string, status model.ActionStatus) error
	GetStatusForFile(ctx context.Context, fileID int, action string) (model.ActionStatus, error)

	// ReserveCounter atomically reserves count consecutive values of the named
	// counter and returns the first one. A counter that does not exist yet
	// starts at startAt.
	ReserveCounter(ctx context.Context, name string, count int64, startAt int64) (int64, error)

	SetMetadataField(ctx context.Context, fileID int, field, value string) error
	GetMetadataField(ctx context.Context, fileID int, field string) (string, error)
}

// TagExpander resolves path tags and functions against a file record.
type TagExpander interface {
	Expand(template string, rec model.FileRecord) (string, error)
}

// LicenseChecker reports whether a component may run.
type LicenseChecker interface {
	IsLicensed(component string) bool
}

// Host bundles every handle the orchestrator passes to a task.
type Host interface {
	Database
	TagExpander
	LicenseChecker
}

// MetadataLister is implemented by hosts that can enumerate a file's metadata
// fields.
type MetadataLister interface {
	ListMetadata(ctx context.Context, fileID int) (map[string]string, error)
}
