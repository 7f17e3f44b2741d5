// Package bates reserves a contiguous range of Bates numbers for each document
// and records it in a metadata field, optionally stamping the PDF.
package bates

import (
	"file-processing-tasks/internal/task"
	"file-processing-tasks/internal/task/base"
	"file-processing-tasks/pkg/log"
	"file-processing-tasks/pkg/pdftool"
)

const (
	TypeName    = "bates"
	Description = "Core: Apply Bates number"

	CurrentVersion uint32 = 3
)

// Task is the Bates numbering task.
type Task interface {
	task.Task
	CurrentSettings() Settings
	SetSettings(s Settings) error
}

// Deps are the collaborators injected at construction. PDFTool is only
// required when stamping is enabled.
type Deps struct {
	Logger  log.Logger
	PDFTool pdftool.Runner
}

type implTask struct {
	base.Core
	settings Settings
	l        log.Logger
	pdf      pdftool.Runner
}

// New creates a Bates task with default settings.
func New(deps Deps) Task {
	if deps.Logger == nil {
		deps.Logger = log.NewNop()
	}
	return &implTask{
		settings: DefaultSettings(),
		l:        deps.Logger,
		pdf:      deps.PDFTool,
	}
}
