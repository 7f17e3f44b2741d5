package cloudocr

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"file-processing-tasks/internal/fam"
	"file-processing-tasks/internal/model"
	"file-processing-tasks/internal/task"
	pkgErrors "file-processing-tasks/pkg/errors"
	"file-processing-tasks/pkg/gvision"
)

const pageSeparator = "\f"

// Sidecar is the JSON written next to the text output when write_json is set.
type Sidecar struct {
	Source string         `json:"source"`
	Pages  []gvision.Page `json:"pages"`
}

func (t *implTask) Init(ctx context.Context, actionID int, host fam.Host) error {
	if err := t.settings.Validate(); err != nil {
		return pkgErrors.Wrap("OCR-007", err, "OCR task is not configured")
	}
	if t.cache == nil {
		return pkgErrors.Wrap("OCR-008", task.ErrNotConfigured, "OCR client cache is missing")
	}
	t.client = nil
	t.Begin(actionID)
	return nil
}

func (t *implTask) ProcessFile(ctx context.Context, rec model.FileRecord, actionID int, host fam.Host, progress task.ProgressStatus) (task.Result, error) {
	if !t.Initialized() {
		return task.ResultError, pkgErrors.Wrap("OCR-009", task.ErrNotInitialized, "ProcessFile called before Init")
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
		return task.ResultError, pkgErrors.Tag("OCR-010", err, "unable to expand output file").With("template", s.OutputFile)
	}
	data, err := os.ReadFile(rec.Name)
	if err != nil {
		return task.ResultError, pkgErrors.Tag("OCR-011", err, "unable to read source document").With("file", rec.Name)
	}

	if t.client == nil {
		client, err := t.cache.Get(ctx, s.key(), int(s.RequestsPerMinute))
		if err != nil {
			return task.ResultError, pkgErrors.Tag("OCR-012", err, "unable to create OCR client").
				With("credentials", s.CredentialsFile).
				With("bucket", s.Bucket)
		}
		t.client = client
	}

	progress.Start(2, "Recognizing "+filepath.Base(rec.Name))
	pages, err := t.recognize(ctx, rec.Name, data)
	if err != nil {
		if ctx.Err() != nil {
			return task.ResultCancelled, nil
		}
		return task.ResultError, pkgErrors.Tag("OCR-013", err, "text recognition failed").With("file", rec.Name)
	}
	progress.CompleteItem("recognized")

	if t.CancelRequested(ctx) {
		return task.ResultCancelled, nil
	}
	if err := writeOutput(out, rec.Name, pages, s.WriteJSON); err != nil {
		return task.ResultError, pkgErrors.Tag("OCR-014", err, "unable to write OCR output").With("file", out)
	}
	progress.CompleteItem(filepath.Base(out))

	t.l.Debugf(ctx, "cloudocr.ProcessFile: file=%s pages=%d out=%s", rec.Name, len(pages), out)
	return task.ResultSuccessful, nil
}

func (t *implTask) recognize(ctx context.Context, name string, data []byte) ([]gvision.Page, error) {
	s := t.settings
	mimeType, isFile := fileMimeType(name)
	switch {
	case !isFile:
		page, err := t.client.RecognizeImage(ctx, data, s.Languages)
		if err != nil {
			return nil, err
		}
		return []gvision.Page{page}, nil
	case s.Bucket == "":
		return t.client.RecognizeFile(ctx, data, mimeType, s.Languages)
	default:
		return t.client.RecognizeFileAsync(ctx, data, mimeType, s.Bucket, s.Languages)
	}
}

// fileMimeType reports whether name must go through file annotation rather
// than image annotation.
func fileMimeType(name string) (string, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return gvision.MimeTypePDF, true
	case ".tif", ".tiff":
		return gvision.MimeTypeTIFF, true
	case ".gif":
		return gvision.MimeTypeGIF, true
	}
	return "", false
}

func writeOutput(out, source string, pages []gvision.Page, withJSON bool) error {
	texts := make([]string, len(pages))
	for i, p := range pages {
		texts[i] = p.Text
	}
	if err := os.WriteFile(out, []byte(strings.Join(texts, pageSeparator)), 0o644); err != nil {
		return err
	}
	if !withJSON {
		return nil
	}
	b, err := json.MarshalIndent(Sidecar{Source: source, Pages: pages}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(out+".json", b, 0o644)
}

func (t *implTask) Close() error {
	t.client = nil
	t.End()
	return nil
}
