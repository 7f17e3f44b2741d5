// Package splitmime splits an email message into its bodies and attachments
// and optionally queues each part on another action.
package splitmime

import (
	"file-processing-tasks/internal/task"
	"file-processing-tasks/internal/task/base"
	"file-processing-tasks/pkg/log"
)

const (
	TypeName    = "split_mime"
	Description = "Core: Split MIME file"

	CurrentVersion uint32 = 3

	// SourceDocIDField is set on every queued part to the id of the message it
	// was split from.
	SourceDocIDField = "SourceDocID"
)

// Task is the MIME splitting task.
type Task interface {
	task.Task
	CurrentSettings() Settings
	SetSettings(s Settings) error
}

type Deps struct {
	Logger log.Logger
}

type implTask struct {
	base.Core
	settings Settings
	l        log.Logger
}

func New(deps Deps) Task {
	if deps.Logger == nil {
		deps.Logger = log.NewNop()
	}
	return &implTask{settings: DefaultSettings(), l: deps.Logger}
}
