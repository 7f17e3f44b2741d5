package splitmime

import (
	"context"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jhillyerd/enmime"

	"file-processing-tasks/internal/fam"
	"file-processing-tasks/internal/model"
	"file-processing-tasks/internal/task"
	pkgErrors "file-processing-tasks/pkg/errors"
)

type part struct {
	name    string
	content []byte
}

func (t *implTask) Init(ctx context.Context, actionID int, host fam.Host) error {
	if err := t.settings.Validate(); err != nil {
		return pkgErrors.Wrap("MIME-007", err, "split task is not configured")
	}
	t.Begin(actionID)
	return nil
}

func (t *implTask) ProcessFile(ctx context.Context, rec model.FileRecord, actionID int, host fam.Host, progress task.ProgressStatus) (task.Result, error) {
	if !t.Initialized() {
		return task.ResultError, pkgErrors.Wrap("MIME-008", task.ErrNotInitialized, "ProcessFile called before Init")
	}
	if t.CancelRequested(ctx) {
		return task.ResultCancelled, nil
	}
	if progress == nil {
		progress = task.NopProgress
	}
	s := t.settings

	dir, err := host.Expand(s.OutputDirectory, rec)
	if err != nil {
		return task.ResultError, pkgErrors.Tag("MIME-009", err, "unable to expand output directory").With("template", s.OutputDirectory)
	}

	parts, err := t.readParts(rec.Name)
	if err != nil {
		return task.ResultError, pkgErrors.Tag("MIME-010", err, "unable to parse MIME file").With("file", rec.Name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return task.ResultError, pkgErrors.Tag("MIME-011", err, "unable to create output directory").With("dir", dir)
	}

	progress.Start(len(parts), "Splitting "+filepath.Base(rec.Name))
	for _, p := range parts {
		if t.CancelRequested(ctx) {
			return task.ResultCancelled, nil
		}
		path := filepath.Join(dir, p.name)
		if err := os.WriteFile(path, p.content, 0o644); err != nil {
			return task.ResultError, pkgErrors.Tag("MIME-012", err, "unable to write part").With("path", path)
		}
		if s.QueueAction != "" {
			if err := t.queuePart(ctx, host, path, rec.ID); err != nil {
				return task.ResultError, err
			}
		}
		progress.CompleteItem(p.name)
	}

	t.l.Debugf(ctx, "splitmime.ProcessFile: file=%s parts=%d dir=%s", rec.Name, len(parts), dir)
	return task.ResultSuccessful, nil
}

func (t *implTask) queuePart(ctx context.Context, host fam.Host, path string, sourceID int) error {
	s := t.settings
	partRec, err := host.AddFile(ctx, path, s.QueueAction, s.Priority)
	if err != nil {
		return pkgErrors.Tag("MIME-013", err, "unable to queue part").With("path", path).With("action", s.QueueAction)
	}
	if err := host.SetMetadataField(ctx, partRec.ID, SourceDocIDField, strconv.Itoa(sourceID)); err != nil {
		return pkgErrors.Tag("MIME-014", err, "unable to link part to its source").With("path", path)
	}
	return nil
}

// readParts returns the parts to write in message order: bodies first, then
// attachments, then inline parts.
func (t *implTask) readParts(path string) ([]part, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	env, err := enmime.ReadEnvelope(f)
	if err != nil {
		return nil, err
	}

	names := nameSet{}
	var parts []part
	if t.settings.WriteBody {
		if env.Text != "" {
			parts = append(parts, part{name: names.unique("body.txt"), content: []byte(env.Text)})
		}
		if env.HTML != "" {
			parts = append(parts, part{name: names.unique("body.html"), content: []byte(env.HTML)})
		}
	}

	add := func(ps []*enmime.Part) {
		for _, p := range ps {
			name := sanitizeName(p.FileName)
			if name == "" {
				name = fallbackName(len(parts)+1, p.ContentType)
			}
			parts = append(parts, part{name: names.unique(name), content: p.Content})
		}
	}
	add(env.Attachments)
	if t.settings.IncludeInline {
		add(env.Inlines)
	}
	return parts, nil
}

func (t *implTask) Close() error {
	t.End()
	return nil
}
