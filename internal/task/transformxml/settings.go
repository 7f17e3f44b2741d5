package transformxml

import (
	"fmt"

	"github.com/beevik/etree"

	"file-processing-tasks/internal/task"
	"file-processing-tasks/internal/task/base"
	"file-processing-tasks/pkg/settingsio"
)

const (
	IndentCompact = 0
	IndentTabs    = -1
	maxIndent     = 16
)

type Settings struct {
	// v1
	InputFile        string   `json:"input_file"`
	OutputFile       string   `json:"output_file"`
	RemoveAttributes []string `json:"remove_attributes"`
	// v2
	RemoveElements []string `json:"remove_elements"`
	Indent         int32    `json:"indent"`
	// v3
	StripNamespaces bool `json:"strip_namespaces"`
	SortAttributes  bool `json:"sort_attributes"`
}

func DefaultSettings() Settings {
	return Settings{
		InputFile:        "<SourceDocName>.xml",
		OutputFile:       "<SourceDocName>.xml",
		RemoveAttributes: []string{},
		RemoveElements:   []string{},
		Indent:           2,
	}
}

func (s Settings) clone() Settings {
	s.RemoveAttributes = base.CloneStrings(s.RemoveAttributes)
	s.RemoveElements = base.CloneStrings(s.RemoveElements)
	return s
}

func (s Settings) Validate() error {
	if s.InputFile == "" || s.OutputFile == "" {
		return fmt.Errorf("%w: input_file and output_file are required", task.ErrInvalidSetting)
	}
	if s.Indent < IndentTabs || s.Indent > maxIndent {
		return fmt.Errorf("%w: indent must be between %d and %d", task.ErrInvalidSetting, IndentTabs, maxIndent)
	}
	for _, a := range s.RemoveAttributes {
		if a == "" {
			return fmt.Errorf("%w: empty attribute name", task.ErrInvalidSetting)
		}
	}
	_, err := s.compilePaths()
	return err
}

func (s Settings) compilePaths() ([]etree.Path, error) {
	paths := make([]etree.Path, 0, len(s.RemoveElements))
	for _, p := range s.RemoveElements {
		compiled, err := etree.CompilePath(p)
		if err != nil {
			return nil, fmt.Errorf("%w: element path %q: %v", task.ErrInvalidSetting, p, err)
		}
		paths = append(paths, compiled)
	}
	return paths, nil
}

func (s Settings) write(w *settingsio.Writer) {
	w.String(s.InputFile)
	w.String(s.OutputFile)
	w.Strings(s.RemoveAttributes)

	w.Strings(s.RemoveElements)
	w.Int32(s.Indent)

	w.Bool(s.StripNamespaces)
	w.Bool(s.SortAttributes)
}

func (s *Settings) read(version uint32, r *settingsio.Reader) {
	s.InputFile = r.String()
	s.OutputFile = r.String()
	s.RemoveAttributes = r.Strings()
	if version >= 2 {
		s.RemoveElements = r.Strings()
		s.Indent = r.Int32()
	}
	if version >= 3 {
		s.StripNamespaces = r.Bool()
		s.SortAttributes = r.Bool()
	}
}
