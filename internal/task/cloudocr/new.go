// Package cloudocr recognizes document text with Google Cloud Vision and
// writes it next to the source document.
package cloudocr

import (
	"file-processing-tasks/internal/task"
	"file-processing-tasks/internal/task/base"
	"file-processing-tasks/pkg/log"
)

const (
	TypeName    = "cloud_ocr"
	Description = "Core: OCR document (cloud)"

	CurrentVersion uint32 = 4
)

type Task interface {
	task.Task
	CurrentSettings() Settings
	SetSettings(s Settings) error
}

// Deps are shared between a task and its clones. Cache is required.
type Deps struct {
	Logger log.Logger
	Cache  *ClientCache
}

type implTask struct {
	base.Core
	settings Settings
	l        log.Logger
	cache    *ClientCache

	client Recognizer
}

func New(deps Deps) Task {
	if deps.Logger == nil {
		deps.Logger = log.NewNop()
	}
	return &implTask{settings: DefaultSettings(), l: deps.Logger, cache: deps.Cache}
}
