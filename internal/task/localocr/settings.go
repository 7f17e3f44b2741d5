package localocr

import (
	"fmt"

	"file-processing-tasks/internal/task"
	"file-processing-tasks/internal/task/base"
	"file-processing-tasks/pkg/settingsio"
)

// Tesseract page segmentation modes run from 0 to 13; 3 is fully automatic.
// Mode 0 only detects orientation and script and yields no text, so it is
// not accepted.
const (
	DefaultPageSegMode = 3
	minPageSegMode     = 1
	maxPageSegMode     = 13
)

type Settings struct {
	// v1
	Languages  []string `json:"languages"`
	OutputFile string   `json:"output_file"`
	// v2
	PageSegMode int32 `json:"page_seg_mode"`
}

func DefaultSettings() Settings {
	return Settings{
		Languages:   []string{"eng"},
		OutputFile:  "<SourceDocName>.txt",
		PageSegMode: DefaultPageSegMode,
	}
}

func (s Settings) clone() Settings {
	s.Languages = base.CloneStrings(s.Languages)
	return s
}

func (s Settings) Validate() error {
	switch {
	case len(s.Languages) == 0:
		return fmt.Errorf("%w: at least one language is required", task.ErrInvalidSetting)
	case s.OutputFile == "":
		return fmt.Errorf("%w: output_file is empty", task.ErrInvalidSetting)
	case s.PageSegMode < minPageSegMode || s.PageSegMode > maxPageSegMode:
		return fmt.Errorf("%w: page_seg_mode must be between %d and %d", task.ErrInvalidSetting, minPageSegMode, maxPageSegMode)
	}
	return nil
}

func (s Settings) write(w *settingsio.Writer) {
	w.Strings(s.Languages)
	w.String(s.OutputFile)
	w.Int32(s.PageSegMode)
}

func (s *Settings) read(version uint32, r *settingsio.Reader) {
	s.Languages = r.Strings()
	s.OutputFile = r.String()
	if version >= 2 {
		s.PageSegMode = r.Int32()
	}
}
