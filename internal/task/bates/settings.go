package bates

import (
	"fmt"

	"file-processing-tasks/internal/task"
	"file-processing-tasks/pkg/settingsio"
)

const maxDigits = 18

// Settings of the Bates task. Fields are grouped by the stream version that
// introduced them.
type Settings struct {
	// v1
	CounterName string `json:"counter_name"`
	Prefix      string `json:"prefix"`
	Digits      int32  `json:"digits"`
	// v2
	Suffix      string `json:"suffix"`
	StartAt     int64  `json:"start_at"`
	NumberPages bool   `json:"number_pages"`
	// v3
	MetadataField string `json:"metadata_field"`
	StampPDF      bool   `json:"stamp_pdf"`
}

func DefaultSettings() Settings {
	return Settings{
		CounterName:   "BatesNumber",
		Digits:        6,
		StartAt:       1,
		NumberPages:   true,
		MetadataField: "BatesNumber",
	}
}

// Validate reports the first setting that prevents the task from running.
func (s Settings) Validate() error {
	switch {
	case s.CounterName == "":
		return fmt.Errorf("%w: counter_name is empty", task.ErrInvalidSetting)
	case s.Digits < 1 || s.Digits > maxDigits:
		return fmt.Errorf("%w: digits must be between 1 and %d", task.ErrInvalidSetting, maxDigits)
	case s.StartAt < 0:
		return fmt.Errorf("%w: start_at must not be negative", task.ErrInvalidSetting)
	case s.MetadataField == "":
		return fmt.Errorf("%w: metadata_field is empty", task.ErrInvalidSetting)
	}
	return nil
}

// Format renders n with the configured prefix, padding and suffix.
func (s Settings) Format(n int64) string {
	return fmt.Sprintf("%s%0*d%s", s.Prefix, int(s.Digits), n, s.Suffix)
}

func (s Settings) write(w *settingsio.Writer) {
	w.String(s.CounterName)
	w.String(s.Prefix)
	w.Int32(s.Digits)

	w.String(s.Suffix)
	w.Int64(s.StartAt)
	w.Bool(s.NumberPages)

	w.String(s.MetadataField)
	w.Bool(s.StampPDF)
}

func (s *Settings) read(version uint32, r *settingsio.Reader) {
	s.CounterName = r.String()
	s.Prefix = r.String()
	s.Digits = r.Int32()
	if version >= 2 {
		s.Suffix = r.String()
		s.StartAt = r.Int64()
		s.NumberPages = r.Bool()
	}
	if version >= 3 {
		s.MetadataField = r.String()
		s.StampPDF = r.Bool()
	}
}
