package registry

import (
	"bytes"
	"fmt"
	"io"

	"file-processing-tasks/internal/task"
	pkgErrors "file-processing-tasks/pkg/errors"
	"file-processing-tasks/pkg/settingsio"
)

// Component streams start with Magic, then the envelope version, the registry
// type name and the task's own settings stream as a length-prefixed blob.
const (
	Magic           = "FPTC"
	EnvelopeVersion = 1
)

// SaveComponent writes t as a component. t's dirty flag is cleared.
func (r *Registry) SaveComponent(w io.Writer, t task.Task) error {
	if _, err := r.Lookup(t.TypeName()); err != nil {
		return pkgErrors.Wrap("REG-004", err, "unable to save component")
	}

	var settings bytes.Buffer
	if err := t.Save(&settings, true); err != nil {
		return pkgErrors.Tag("REG-005", err, "unable to save component").With("type", t.TypeName())
	}

	if _, err := io.WriteString(w, Magic); err != nil {
		return pkgErrors.Wrap("REG-006", err, "unable to save component")
	}
	sw := settingsio.NewWriter(w)
	sw.Version(EnvelopeVersion)
	sw.String(t.TypeName())
	sw.Bytes(settings.Bytes())
	return pkgErrors.Wrap("REG-006", sw.Err(), "unable to save component")
}

// LoadComponent reads a component written by SaveComponent and returns the
// restored task.
func (r *Registry) LoadComponent(rd io.Reader) (task.Task, error) {
	magic := make([]byte, len(Magic))
	if _, err := io.ReadFull(rd, magic); err != nil {
		return nil, pkgErrors.Wrap("REG-007", fmt.Errorf("%w: %v", ErrBadMagic, err), "unable to load component")
	}
	if string(magic) != Magic {
		return nil, pkgErrors.Wrap("REG-007", ErrBadMagic, "unable to load component")
	}

	sr := settingsio.NewReader(rd)
	sr.Version(EnvelopeVersion)
	typeName := sr.String()
	blob := sr.Bytes()
	if err := sr.Err(); err != nil {
		return nil, pkgErrors.Wrap("REG-008", err, "unable to load component")
	}

	t, err := r.New(typeName)
	if err != nil {
		return nil, err
	}
	if err := t.Load(bytes.NewReader(blob)); err != nil {
		return nil, pkgErrors.Tag("REG-009", err, "unable to load component settings").With("type", typeName)
	}
	return t, nil
}
