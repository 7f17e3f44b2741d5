package bates

import (
	"io"

	"file-processing-tasks/internal/fam"
	"file-processing-tasks/internal/task"
	"file-processing-tasks/internal/task/base"
	pkgErrors "file-processing-tasks/pkg/errors"
)

func (t *implTask) TypeName() string    { return TypeName }
func (t *implTask) Description() string { return Description }

func (t *implTask) IsConfigured() bool { return t.settings.Validate() == nil }

func (t *implTask) Settings() any             { return t.settings }
func (t *implTask) CurrentSettings() Settings { return t.settings }

func (t *implTask) SetSettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return pkgErrors.Wrap("BATES-001", err, "invalid Bates settings")
	}
	t.settings = s
	t.MarkDirty()
	return nil
}

func (t *implTask) Configure(data []byte) error {
	s := t.settings
	if err := base.DecodeSettings(data, &s, "BATES-002"); err != nil {
		return err
	}
	return t.SetSettings(s)
}

func (t *implTask) Clone() task.Task {
	return &implTask{settings: t.settings, l: t.l, pdf: t.pdf}
}

func (t *implTask) CopyFrom(src task.Task) error {
	other, ok := src.(*implTask)
	if !ok {
		return pkgErrors.Wrap("BATES-003", task.ErrTypeMismatch, "unable to copy Bates task")
	}
	t.settings = other.settings
	t.MarkDirty()
	return nil
}

func (t *implTask) ValidateLicense(checker fam.LicenseChecker) error {
	return base.ValidateLicense(checker, TypeName, "BATES-004")
}

func (t *implTask) Save(w io.Writer, clearDirty bool) error {
	if err := base.SaveVersioned(w, CurrentVersion, "BATES-005", t.settings.write); err != nil {
		return err
	}
	if clearDirty {
		t.ClearDirty()
	}
	return nil
}

func (t *implTask) Load(r io.Reader) error {
	s := DefaultSettings()
	if err := base.LoadVersioned(r, CurrentVersion, "BATES-006", s.read); err != nil {
		return err
	}
	t.settings = s
	t.ClearDirty()
	return nil
}
