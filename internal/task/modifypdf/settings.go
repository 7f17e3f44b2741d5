package modifypdf

import (
	"fmt"

	"file-processing-tasks/internal/task"
	"file-processing-tasks/pkg/settingsio"
)

type Settings struct {
	// v1
	PDFFile           string `json:"pdf_file"`
	RemoveAnnotations bool   `json:"remove_annotations"`
	// v2
	ApplyHyperlinks  bool   `json:"apply_hyperlinks"`
	HyperlinkAddress string `json:"hyperlink_address"`
	// v3
	// OutputFile is empty to modify the document in place.
	OutputFile string `json:"output_file"`
}

func DefaultSettings() Settings {
	return Settings{PDFFile: "<SourceDocName>"}
}

func (s Settings) Validate() error {
	if s.PDFFile == "" {
		return fmt.Errorf("%w: pdf_file is empty", task.ErrInvalidSetting)
	}
	return nil
}

// HasModification reports whether running the task would change anything.
func (s Settings) HasModification() bool {
	return s.RemoveAnnotations || s.ApplyHyperlinks
}

// Args builds the tool command line for in and out.
func (s Settings) Args(in, out string) []string {
	args := []string{"modify", "--in", in, "--out", out}
	if s.RemoveAnnotations {
		args = append(args, "--remove-annotations")
	}
	if s.ApplyHyperlinks {
		args = append(args, "--hyperlinks")
		if s.HyperlinkAddress != "" {
			args = append(args, "--hyperlink-address", s.HyperlinkAddress)
		}
	}
	return args
}

func (s Settings) write(w *settingsio.Writer) {
	w.String(s.PDFFile)
	w.Bool(s.RemoveAnnotations)
	w.Bool(s.ApplyHyperlinks)
	w.String(s.HyperlinkAddress)
	w.String(s.OutputFile)
}

func (s *Settings) read(version uint32, r *settingsio.Reader) {
	s.PDFFile = r.String()
	s.RemoveAnnotations = r.Bool()
	if version >= 2 {
		s.ApplyHyperlinks = r.Bool()
		s.HyperlinkAddress = r.String()
	}
	if version >= 3 {
		s.OutputFile = r.String()
	}
}
