package base

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"file-processing-tasks/internal/task"
	pkgErrors "file-processing-tasks/pkg/errors"
	"file-processing-tasks/pkg/settingsio"
)

// SaveVersioned tags the stream with version and lets write emit the fields.
func SaveVersioned(w io.Writer, version uint32, code string, write func(*settingsio.Writer)) error {
	sw := settingsio.NewWriter(w)
	sw.Version(version)
	write(sw)
	return pkgErrors.Wrap(code, sw.Err(), "unable to save settings")
}

// LoadVersioned reads the version tag and lets read pull the fields present in
// that version. read is not called when the tag itself is invalid.
func LoadVersioned(r io.Reader, current uint32, code string, read func(version uint32, sr *settingsio.Reader)) error {
	sr := settingsio.NewReader(r)
	v := sr.Version(current)
	if sr.Err() == nil {
		read(v, sr)
	}
	if err := sr.Err(); err != nil {
		return pkgErrors.Tag(code, err, "unable to load settings").With("version", fmt.Sprint(v))
	}
	return nil
}

// DecodeSettings merges a JSON document into dst. Unknown fields are rejected
// so a typo does not silently leave a default in place.
func DecodeSettings(data []byte, dst any, code string) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return pkgErrors.Wrap(code, fmt.Errorf("%w: %v", task.ErrInvalidSetting, err), "unable to parse settings")
	}
	return nil
}

// CloneStrings copies a string slice. The copy is never nil, matching what
// settingsio.Reader.Strings returns for an empty list.
func CloneStrings(s []string) []string {
	return append(make([]string, 0, len(s)), s...)
}
