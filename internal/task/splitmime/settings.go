package splitmime

import (
	"fmt"

	"file-processing-tasks/internal/model"
	"file-processing-tasks/internal/task"
	"file-processing-tasks/pkg/settingsio"
)

const DefaultOutputDirectory = "$DirOf(<SourceDocName>)/$FileNoExtOf(<SourceDocName>)_parts"

type Settings struct {
	// v1
	OutputDirectory string `json:"output_directory"`
	QueueAction     string `json:"queue_action"`
	// v2
	Priority model.Priority `json:"priority"`
	// v3
	WriteBody     bool `json:"write_body"`
	IncludeInline bool `json:"include_inline"`
}

func DefaultSettings() Settings {
	return Settings{
		OutputDirectory: DefaultOutputDirectory,
		Priority:        model.PriorityDefault,
		WriteBody:       true,
		IncludeInline:   true,
	}
}

func (s Settings) Validate() error {
	if s.OutputDirectory == "" {
		return fmt.Errorf("%w: output_directory is empty", task.ErrInvalidSetting)
	}
	if !s.Priority.Valid() {
		return fmt.Errorf("%w: priority %d is out of range", task.ErrInvalidSetting, s.Priority)
	}
	return nil
}

func (s Settings) write(w *settingsio.Writer) {
	w.String(s.OutputDirectory)
	w.String(s.QueueAction)
	w.Int32(int32(s.Priority))
	w.Bool(s.WriteBody)
	w.Bool(s.IncludeInline)
}

func (s *Settings) read(version uint32, r *settingsio.Reader) {
	s.OutputDirectory = r.String()
	s.QueueAction = r.String()
	if version >= 2 {
		s.Priority = model.Priority(r.Int32())
	}
	if version >= 3 {
		s.WriteBody = r.Bool()
		s.IncludeInline = r.Bool()
	}
}
