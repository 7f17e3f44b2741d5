package modifypdf

import (
	"context"
	"path/filepath"

	"file-processing-tasks/internal/fam"
	"file-processing-tasks/internal/model"
	"file-processing-tasks/internal/task"
	pkgErrors "file-processing-tasks/pkg/errors"
)

func (t *implTask) Init(ctx context.Context, actionID int, host fam.Host) error {
	if !t.IsConfigured() {
		return pkgErrors.Wrap("PDF-007", task.ErrNotConfigured, "no PDF modification is enabled")
	}
	if t.pdf == nil {
		return pkgErrors.Wrap("PDF-008", task.ErrNotConfigured, "the PDF tool is not available")
	}
	t.Begin(actionID)
	return nil
}

func (t *implTask) ProcessFile(ctx context.Context, rec model.FileRecord, actionID int, host fam.Host, progress task.ProgressStatus) (task.Result, error) {
	if !t.Initialized() {
		return task.ResultError, pkgErrors.Wrap("PDF-009", task.ErrNotInitialized, "ProcessFile called before Init")
	}
	if t.CancelRequested(ctx) {
		return task.ResultCancelled, nil
	}
	if progress == nil {
		progress = task.NopProgress
	}
	s := t.settings

	in, err := host.Expand(s.PDFFile, rec)
	if err != nil {
		return task.ResultError, pkgErrors.Tag("PDF-010", err, "unable to expand PDF file").With("template", s.PDFFile)
	}
	out := in
	if s.OutputFile != "" {
		if out, err = host.Expand(s.OutputFile, rec); err != nil {
			return task.ResultError, pkgErrors.Tag("PDF-011", err, "unable to expand output file").With("template", s.OutputFile)
		}
	}

	progress.Start(1, "Modifying "+filepath.Base(in))
	output, err := t.pdf.Run(ctx, s.Args(in, out)...)
	if err != nil {
		if ctx.Err() != nil {
			return task.ResultCancelled, nil
		}
		return task.ResultError, pkgErrors.Tag("PDF-012", err, "PDF tool failed").With("file", in).With("stderr", output.Stderr)
	}
	progress.CompleteItem(filepath.Base(out))

	t.l.Debugf(ctx, "modifypdf.ProcessFile: in=%s out=%s took=%s", in, out, output.Duration)
	return task.ResultSuccessful, nil
}

func (t *implTask) Close() error {
	t.End()
	return nil
}
