// Package catalog registers every built-in task with a registry.
package catalog

import (
	"file-processing-tasks/internal/task"
	"file-processing-tasks/internal/task/bates"
	"file-processing-tasks/internal/task/cloudocr"
	"file-processing-tasks/internal/task/localocr"
	"file-processing-tasks/internal/task/modifypdf"
	"file-processing-tasks/internal/task/registry"
	"file-processing-tasks/internal/task/splitmime"
	"file-processing-tasks/internal/task/transformxml"
	"file-processing-tasks/pkg/log"
	"file-processing-tasks/pkg/pdftool"
)

// Deps are shared by every task the catalog creates. Nil collaborators leave
// the tasks that need them unable to Init.
type Deps struct {
	Logger    log.Logger
	PDFTool   pdftool.Runner
	OCRCache  *cloudocr.ClientCache
	OCREngine localocr.Engine
}

// Register adds all built-in tasks to reg.
func Register(reg *registry.Registry, deps Deps) error {
	factories := []registry.Factory{
		func() task.Task { return bates.New(bates.Deps{Logger: deps.Logger, PDFTool: deps.PDFTool}) },
		func() task.Task { return splitmime.New(splitmime.Deps{Logger: deps.Logger}) },
		func() task.Task { return transformxml.New(transformxml.Deps{Logger: deps.Logger}) },
		func() task.Task { return cloudocr.New(cloudocr.Deps{Logger: deps.Logger, Cache: deps.OCRCache}) },
		func() task.Task { return localocr.New(localocr.Deps{Logger: deps.Logger, Engine: deps.OCREngine}) },
		func() task.Task { return modifypdf.New(modifypdf.Deps{Logger: deps.Logger, PDFTool: deps.PDFTool}) },
	}
	for _, f := range factories {
		if err := reg.Register(f); err != nil {
			return err
		}
	}
	return nil
}
