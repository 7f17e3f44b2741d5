package usecase

import (
	"sync"
	"time"

	"file-processing-tasks/internal/fam"
	"file-processing-tasks/internal/task"
	"file-processing-tasks/internal/task/registry"
	pkgLog "file-processing-tasks/pkg/log"
)

type implUseCase struct {
	l    pkgLog.Logger
	reg  *registry.Registry
	host fam.Host
	now  func() time.Time

	mu      sync.Mutex
	runs    map[string]*run
	actions map[string]int
}

// New creates a new task UseCase instance.
func New(l pkgLog.Logger, reg *registry.Registry, host fam.Host) task.UseCase {
	if l == nil {
		l = pkgLog.NewNop()
	}
	return &implUseCase{
		l:       l,
		reg:     reg,
		host:    host,
		now:     time.Now,
		runs:    make(map[string]*run),
		actions: make(map[string]int),
	}
}
