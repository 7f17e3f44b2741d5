package cloudocr

import (
	"io"

	"file-processing-tasks/internal/fam"
	"file-processing-tasks/internal/task"
	"file-processing-tasks/internal/task/base"
	pkgErrors "file-processing-tasks/pkg/errors"
)

func (t *implTask) TypeName() string    { return TypeName }
func (t *implTask) Description() string { return Description }
func (t *implTask) IsConfigured() bool  { return t.settings.Validate() == nil }

func (t *implTask) Settings() any             { return t.settings.clone() }
func (t *implTask) CurrentSettings() Settings { return t.settings.clone() }

func (t *implTask) SetSettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return pkgErrors.Wrap("OCR-001", err, "invalid OCR settings")
	}
	t.settings = s.clone()
	t.MarkDirty()
	return nil
}

func (t *implTask) Configure(data []byte) error {
	s := t.settings.clone()
	if err := base.DecodeSettings(data, &s, "OCR-002"); err != nil {
		return err
	}
	return t.SetSettings(s)
}

func (t *implTask) Clone() task.Task {
	return &implTask{settings: t.settings.clone(), l: t.l, cache: t.cache}
}

func (t *implTask) CopyFrom(src task.Task) error {
	other, ok := src.(*implTask)
	if !ok {
		return pkgErrors.Wrap("OCR-003", task.ErrTypeMismatch, "unable to copy OCR task")
	}
	t.settings = other.settings.clone()
	t.MarkDirty()
	return nil
}

func (t *implTask) ValidateLicense(checker fam.LicenseChecker) error {
	return base.ValidateLicense(checker, TypeName, "OCR-004")
}

func (t *implTask) Save(w io.Writer, clearDirty bool) error {
	if err := base.SaveVersioned(w, CurrentVersion, "OCR-005", t.settings.write); err != nil {
		return err
	}
	if clearDirty {
		t.ClearDirty()
	}
	return nil
}

func (t *implTask) Load(r io.Reader) error {
	s := DefaultSettings()
	if err := base.LoadVersioned(r, CurrentVersion, "OCR-006", s.read); err != nil {
		return err
	}
	t.settings = s
	t.ClearDirty()
	return nil
}
