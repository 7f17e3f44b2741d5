// Package transformxml applies element and attribute removals, namespace
// stripping and re-indentation to an XML document.
package transformxml

import (
	"github.com/beevik/etree"

	"file-processing-tasks/internal/task"
	"file-processing-tasks/internal/task/base"
	"file-processing-tasks/pkg/log"
)

const (
	TypeName    = "transform_xml"
	Description = "Core: Transform XML"

	CurrentVersion uint32 = 3
)

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

	// compiled from settings.RemoveElements by Init
	paths []etree.Path
}

func New(deps Deps) Task {
	if deps.Logger == nil {
		deps.Logger = log.NewNop()
	}
	return &implTask{settings: DefaultSettings(), l: deps.Logger}
}
