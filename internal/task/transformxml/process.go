package transformxml

import (
	"context"
	"os"
	"path/filepath"

	"github.com/beevik/etree"

	"file-processing-tasks/internal/fam"
	"file-processing-tasks/internal/model"
	"file-processing-tasks/internal/task"
	pkgErrors "file-processing-tasks/pkg/errors"
)

func (t *implTask) Init(ctx context.Context, actionID int, host fam.Host) error {
	if err := t.settings.Validate(); err != nil {
		return pkgErrors.Wrap("XML-007", err, "XML transform task is not configured")
	}
	paths, err := t.settings.compilePaths()
	if err != nil {
		return pkgErrors.Wrap("XML-008", err, "unable to compile element paths")
	}
	t.paths = paths
	t.Begin(actionID)
	return nil
}

func (t *implTask) ProcessFile(ctx context.Context, rec model.FileRecord, actionID int, host fam.Host, progress task.ProgressStatus) (task.Result, error) {
	if !t.Initialized() {
		return task.ResultError, pkgErrors.Wrap("XML-009", task.ErrNotInitialized, "ProcessFile called before Init")
	}
	if t.CancelRequested(ctx) {
		return task.ResultCancelled, nil
	}
	if progress == nil {
		progress = task.NopProgress
	}
	s := t.settings

	in, err := host.Expand(s.InputFile, rec)
	if err != nil {
		return task.ResultError, pkgErrors.Tag("XML-010", err, "unable to expand input file").With("template", s.InputFile)
	}
	out, err := host.Expand(s.OutputFile, rec)
	if err != nil {
		return task.ResultError, pkgErrors.Tag("XML-011", err, "unable to expand output file").With("template", s.OutputFile)
	}

	progress.Start(2, "Transforming "+filepath.Base(in))
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(in); err != nil {
		return task.ResultError, pkgErrors.Tag("XML-012", err, "unable to read XML").With("file", in)
	}
	if doc.Root() == nil {
		return task.ResultError, pkgErrors.New("XML-013", "document has no root element").With("file", in)
	}

	removed := removeElements(doc, t.paths)
	elems := doc.FindElements("//*")
	removeAttributes(elems, s.RemoveAttributes)
	if s.StripNamespaces {
		stripNamespaces(elems)
	}
	if s.SortAttributes {
		sortAttributes(elems)
	}
	indent(doc, s.Indent)
	progress.CompleteItem("transformed")

	if t.CancelRequested(ctx) {
		return task.ResultCancelled, nil
	}
	if err := writeAtomic(doc, out); err != nil {
		return task.ResultError, pkgErrors.Tag("XML-014", err, "unable to write XML").With("file", out)
	}
	progress.CompleteItem(filepath.Base(out))

	t.l.Debugf(ctx, "transformxml.ProcessFile: in=%s out=%s removed=%d", in, out, removed)
	return task.ResultSuccessful, nil
}

// writeAtomic writes doc next to path and renames it into place so readers
// never see a partial document.
func writeAtomic(doc *etree.Document, path string) error {
	f, err := os.CreateTemp(filepath.Dir(path), ".transformxml-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := doc.WriteTo(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func (t *implTask) Close() error {
	t.paths = nil
	t.End()
	return nil
}
