package cloudocr

import (
	"fmt"

	"file-processing-tasks/internal/task"
	"file-processing-tasks/internal/task/base"
	"file-processing-tasks/pkg/gvision"
	"file-processing-tasks/pkg/settingsio"
)

type Settings struct {
	// v1
	CredentialsFile string `json:"credentials_file"`
	Bucket          string `json:"bucket"`
	// v2
	Languages []string `json:"languages"`
	// v3
	OutputFile string `json:"output_file"`
	// v4
	WriteJSON         bool  `json:"write_json"`
	RequestsPerMinute int32 `json:"requests_per_minute"`
}

func DefaultSettings() Settings {
	return Settings{
		Languages:         []string{},
		OutputFile:        "<SourceDocName>.txt",
		RequestsPerMinute: gvision.DefaultRequestsPerMinute,
	}
}

func (s Settings) clone() Settings {
	s.Languages = base.CloneStrings(s.Languages)
	return s
}

func (s Settings) Validate() error {
	switch {
	case s.OutputFile == "":
		return fmt.Errorf("%w: output_file is empty", task.ErrInvalidSetting)
	case s.RequestsPerMinute < 1:
		return fmt.Errorf("%w: requests_per_minute must be positive", task.ErrInvalidSetting)
	}
	return nil
}

func (s Settings) key() ClientKey {
	return ClientKey{CredentialsFile: s.CredentialsFile, Bucket: s.Bucket}
}

func (s Settings) write(w *settingsio.Writer) {
	w.String(s.CredentialsFile)
	w.String(s.Bucket)
	w.Strings(s.Languages)
	w.String(s.OutputFile)
	w.Bool(s.WriteJSON)
	w.Int32(s.RequestsPerMinute)
}

func (s *Settings) read(version uint32, r *settingsio.Reader) {
	s.CredentialsFile = r.String()
	s.Bucket = r.String()
	if version >= 2 {
		s.Languages = r.Strings()
	}
	if version >= 3 {
		s.OutputFile = r.String()
	}
	if version >= 4 {
		s.WriteJSON = r.Bool()
		s.RequestsPerMinute = r.Int32()
	}
}
