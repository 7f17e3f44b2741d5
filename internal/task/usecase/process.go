package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"file-processing-tasks/internal/fam"
	"file-processing-tasks/internal/model"
	"file-processing-tasks/internal/task"
	pkgErrors "file-processing-tasks/pkg/errors"
	pkgLog "file-processing-tasks/pkg/log"
)

type run struct {
	t      task.Task
	cancel context.CancelFunc
}

// Process runs one task on one file the way the host pipeline would: the file
// is registered, the task is checked and then driven through
// Init, ProcessFile and Close while the action status is kept current.
func (uc *implUseCase) Process(ctx context.Context, sc model.Scope, input task.ProcessInput) (task.ProcessOutput, error) {
	if strings.TrimSpace(input.FilePath) == "" {
		return task.ProcessOutput{}, task.ErrFilePathEmpty
	}

	t, err := uc.buildTask(input)
	if err != nil {
		return task.ProcessOutput{}, err
	}
	if err := t.ValidateLicense(uc.host); err != nil {
		return task.ProcessOutput{}, err
	}
	if !t.IsConfigured() {
		return task.ProcessOutput{}, pkgErrors.Tag("RUN-001", task.ErrNotConfigured, "unable to process file").With("type", t.TypeName())
	}

	action := input.Action
	if action == "" {
		action = t.TypeName()
	}
	rec, err := uc.host.AddFile(ctx, input.FilePath, "", input.Priority)
	if err != nil {
		return task.ProcessOutput{}, pkgErrors.Tag("RUN-002", err, "unable to register file").With("file", input.FilePath)
	}
	if input.Pages > 0 {
		rec.Pages = input.Pages
	}

	runID := input.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	ctx = pkgLog.WithRunID(ctx, runID)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if !uc.track(runID, &run{t: t, cancel: cancel}) {
		return task.ProcessOutput{}, pkgErrors.Tag("RUN-004", task.ErrRunExists, "unable to start run").With("run", runID)
	}
	defer uc.untrack(runID)

	uc.l.Infof(ctx, "usecase.Process: client=%s type=%s action=%s file=%s", sc.ClientID, t.TypeName(), action, rec.Name)

	if err := uc.host.SetStatusForFile(ctx, rec.ID, action, model.StatusProcessing); err != nil {
		return task.ProcessOutput{}, pkgErrors.Tag("RUN-003", err, "unable to update file status").With("action", action)
	}

	start := uc.now()
	res, runErr := uc.runTask(ctx, t, rec, uc.actionID(action))
	out := task.ProcessOutput{
		RunID:    runID,
		File:     rec,
		Action:   action,
		Result:   res,
		Status:   statusFor(res),
		Duration: uc.now().Sub(start),
	}

	// Status and metadata are recorded on a fresh context so a cancelled run
	// still leaves the file in a consistent state.
	bg := context.WithoutCancel(ctx)
	if err := uc.host.SetStatusForFile(bg, rec.ID, action, out.Status); err != nil {
		uc.l.Errorf(ctx, "usecase.Process: set status %s: %v", out.Status, err)
	}
	if lister, ok := uc.host.(fam.MetadataLister); ok {
		if md, err := lister.ListMetadata(bg, rec.ID); err == nil {
			out.Metadata = md
		}
	}

	if runErr != nil {
		uc.l.Errorf(ctx, "usecase.Process: type=%s file=%s: %v", t.TypeName(), rec.Name, runErr)
		return out, runErr
	}
	uc.l.Infof(ctx, "usecase.Process: type=%s file=%s result=%s duration=%s", t.TypeName(), rec.Name, res, out.Duration)
	return out, nil
}

func (uc *implUseCase) runTask(ctx context.Context, t task.Task, rec model.FileRecord, actionID int) (res task.Result, err error) {
	if err := t.Init(ctx, actionID, uc.host); err != nil {
		return task.ResultError, err
	}
	defer func() {
		if cerr := t.Close(); cerr != nil && err == nil {
			res, err = task.ResultError, cerr
		}
	}()
	return t.ProcessFile(ctx, rec, actionID, uc.host, task.NopProgress)
}

// Cancel requests cancellation of an in-flight run. The task's own flag is
// set first so a run between steps stops without waiting on the context.
func (uc *implUseCase) Cancel(ctx context.Context, runID string) error {
	uc.mu.Lock()
	r, ok := uc.runs[runID]
	uc.mu.Unlock()
	if !ok {
		return task.ErrRunNotFound
	}

	uc.l.Infof(ctx, "usecase.Cancel: run=%s type=%s", runID, r.t.TypeName())
	r.t.Cancel()
	r.cancel()
	return nil
}

func (uc *implUseCase) track(runID string, r *run) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if _, ok := uc.runs[runID]; ok {
		return false
	}
	uc.runs[runID] = r
	return true
}

func (uc *implUseCase) untrack(runID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	delete(uc.runs, runID)
}

// actionID hands out stable ids per action name, starting at 1.
func (uc *implUseCase) actionID(action string) int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	id, ok := uc.actions[action]
	if !ok {
		id = len(uc.actions) + 1
		uc.actions[action] = id
	}
	return id
}

// statusFor maps a result to the action status the host records. A cancelled
// file goes back to pending so the orchestrator can pick it up again.
func statusFor(res task.Result) model.ActionStatus {
	switch res {
	case task.ResultSuccessful:
		return model.StatusCompleted
	case task.ResultCancelled:
		return model.StatusPending
	default:
		return model.StatusFailed
	}
}
