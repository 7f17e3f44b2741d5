package bates

import (
	"context"
	"strconv"

	"file-processing-tasks/internal/fam"
	"file-processing-tasks/internal/model"
	"file-processing-tasks/internal/task"
	pkgErrors "file-processing-tasks/pkg/errors"
)

func (t *implTask) Init(ctx context.Context, actionID int, host fam.Host) error {
	if err := t.settings.Validate(); err != nil {
		return pkgErrors.Wrap("BATES-007", err, "Bates task is not configured")
	}
	if t.settings.StampPDF && t.pdf == nil {
		return pkgErrors.Wrap("BATES-008", task.ErrNotConfigured, "PDF stamping requires the PDF tool")
	}
	t.Begin(actionID)
	return nil
}

func (t *implTask) ProcessFile(ctx context.Context, rec model.FileRecord, actionID int, host fam.Host, progress task.ProgressStatus) (task.Result, error) {
	if !t.Initialized() {
		return task.ResultError, pkgErrors.Wrap("BATES-009", task.ErrNotInitialized, "ProcessFile called before Init")
	}
	if t.CancelRequested(ctx) {
		return task.ResultCancelled, nil
	}
	if progress == nil {
		progress = task.NopProgress
	}

	s := t.settings
	count := int64(1)
	if s.NumberPages && rec.Pages > 1 {
		count = int64(rec.Pages)
	}
	progress.Start(1, "Applying Bates number")

	first, err := host.ReserveCounter(ctx, s.CounterName, count, s.StartAt)
	if err != nil {
		return task.ResultError, pkgErrors.Tag("BATES-010", err, "unable to reserve Bates numbers").
			With("counter", s.CounterName).
			With("count", strconv.FormatInt(count, 10))
	}

	value := s.Format(first)
	last := s.Format(first + count - 1)
	if count > 1 {
		value += "-" + last
	}

	// The metadata field is written last so a failed stamp leaves the file
	// without a Bates value. The reserved range is not returned.
	if s.StampPDF {
		if t.CancelRequested(ctx) {
			return task.ResultCancelled, nil
		}
		args := []string{"bates", "--in", rec.Name, "--out", rec.Name, "--first", s.Format(first), "--last", last}
		if _, err := t.pdf.Run(ctx, args...); err != nil {
			if ctx.Err() != nil {
				return task.ResultCancelled, nil
			}
			return task.ResultError, pkgErrors.Tag("BATES-012", err, "unable to stamp Bates number").With("file", rec.Name)
		}
	}

	if err := host.SetMetadataField(ctx, rec.ID, s.MetadataField, value); err != nil {
		return task.ResultError, pkgErrors.Wrapf("BATES-011", err, "unable to store Bates number for file %d", rec.ID)
	}

	t.l.Debugf(ctx, "bates.ProcessFile: file=%s value=%s", rec.Name, value)
	progress.CompleteItem(value)
	return task.ResultSuccessful, nil
}

func (t *implTask) Close() error {
	t.End()
	return nil
}
