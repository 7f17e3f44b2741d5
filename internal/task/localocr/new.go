// Package localocr recognizes image text on the local machine with Tesseract.
package localocr

import (
	"context"

	"file-processing-tasks/internal/task"
	"file-processing-tasks/internal/task/base"
	"file-processing-tasks/pkg/log"
)

const (
	TypeName    = "local_ocr"
	Description = "Core: OCR document (Tesseract)"

	CurrentVersion uint32 = 2
)

type Task interface {
	task.Task
	CurrentSettings() Settings
	SetSettings(s Settings) error
}

// Engine recognizes one normalized (PNG or JPEG) image. *tesseract.Engine
// implements it.
type Engine interface {
	Recognize(ctx context.Context, image []byte, languages []string, pageSegMode int) (string, error)
}

type Deps struct {
	Logger log.Logger
	Engine Engine
}

type implTask struct {
	base.Core
	settings Settings
	l        log.Logger
	engine   Engine
}

func New(deps Deps) Task {
	if deps.Logger == nil {
		deps.Logger = log.NewNop()
	}
	return &implTask{settings: DefaultSettings(), l: deps.Logger, engine: deps.Engine}
}
