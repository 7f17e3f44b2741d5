// Package modifypdf drives the external PDF tool to strip annotations and
// turn URLs into hyperlinks.
package modifypdf

import (
	"file-processing-tasks/internal/task"
	"file-processing-tasks/internal/task/base"
	"file-processing-tasks/pkg/log"
	"file-processing-tasks/pkg/pdftool"
)

const (
	TypeName    = "modify_pdf"
	Description = "Core: Modify PDF file"

	CurrentVersion uint32 = 3
)

type Task interface {
	task.Task
	CurrentSettings() Settings
	SetSettings(s Settings) error
}

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

func New(deps Deps) Task {
	if deps.Logger == nil {
		deps.Logger = log.NewNop()
	}
	return &implTask{settings: DefaultSettings(), l: deps.Logger, pdf: deps.PDFTool}
}
