package localocr

import (
	"context"
	"os"
	"path/filepath"

	"file-processing-tasks/internal/fam"
	"file-processing-tasks/internal/model"
	"file-processing-tasks/internal/task"
	pkgErrors "file-processing-tasks/pkg/errors"
	"file-processing-tasks/pkg/imageconv"
)

func (t *implTask) Init(ctx context.Context, actionID int, host fam.Host) error {
	if err := t.settings.Validate(); err != nil {
		return pkgErrors.Wrap("LOCR-007", err, "local OCR task is not configured")
	}
	if t.engine == nil {
		return pkgErrors.Wrap("LOCR-008", task.ErrNotConfigured, "no OCR engine is available")
	}
	t.Begin(actionID)
	return nil
}

func (t *implTask) ProcessFile(ctx context.Context, rec model.FileRecord, actionID int, host fam.Host, progress task.ProgressStatus) (task.Result, error) {
	if !t.Initialized() {
		return task.ResultError, pkgErrors.Wrap("LOCR-009", task.ErrNotInitialized, "ProcessFile called before Init")
	}
	if t.CancelRequested(ctx) {
		return task.ResultCancelled, nil
	}
	if progress == nil {
		progress = task.NopProgress
	}
	s := t.settings

	out, err := host.Expand(s.OutputFile, rec)
	if err != nil {
		return task.ResultError, pkgErrors.Tag("LOCR-010", err, "unable to expand output file").With("template", s.OutputFile)
	}
	data, err := os.ReadFile(rec.Name)
	if err != nil {
		return task.ResultError, pkgErrors.Tag("LOCR-011", err, "unable to read source image").With("file", rec.Name)
	}

	progress.Start(2, "Recognizing "+filepath.Base(rec.Name))
	img, format, err := imageconv.Normalize(data)
	if err != nil {
		return task.ResultError, pkgErrors.Tag("LOCR-012", err, "unable to prepare image").With("file", rec.Name)
	}
	progress.CompleteItem(format)

	if t.CancelRequested(ctx) {
		return task.ResultCancelled, nil
	}
	text, err := t.engine.Recognize(ctx, img, s.Languages, int(s.PageSegMode))
	if err != nil {
		if ctx.Err() != nil {
			return task.ResultCancelled, nil
		}
		return task.ResultError, pkgErrors.Tag("LOCR-013", err, "text recognition failed").With("file", rec.Name)
	}
	if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
		return task.ResultError, pkgErrors.Tag("LOCR-014", err, "unable to write OCR output").With("file", out)
	}
	progress.CompleteItem(filepath.Base(out))

	t.l.Debugf(ctx, "localocr.ProcessFile: file=%s format=%s out=%s", rec.Name, format, out)
	return task.ResultSuccessful, nil
}

func (t *implTask) Close() error {
	t.End()
	return nil
}
