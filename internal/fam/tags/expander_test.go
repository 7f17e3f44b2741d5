package tags_test

import (
	"errors"
	"testing"
	"time"

	"file-processing-tasks/internal/fam/tags"
	"file-processing-tasks/internal/model"
)

func TestExpand(t *testing.T) {
	e := tags.New(tags.Options{
		FPSFileDir: "/opt/fps",
		Now:        func() time.Time { return time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC) },
		LookupEnv: func(k string) (string, bool) {
			if k == "OUT_ROOT" {
				return "/data/out", true
			}
			return "", false
		},
	})
	rec := model.FileRecord{ID: 3, Name: "/in/batch/letter.eml"}

	tests := []struct {
		name     string
		template string
		want     string
		wantErr  error
	}{
		{name: "source doc", template: "<SourceDocName>.txt", want: "/in/batch/letter.eml.txt"},
		{name: "fps dir", template: "<FPSFileDir>/tool.exe", want: "/opt/fps/tool.exe"},
		{name: "dir of", template: "$DirOf(<SourceDocName>)", want: "/in/batch"},
		{name: "nested", template: "$DirOf(<SourceDocName>)/$FileNoExtOf(<SourceDocName>)_parts", want: "/in/batch/letter_parts"},
		{name: "change ext", template: "$ChangeExt(<SourceDocName>, xml)", want: "/in/batch/letter.xml"},
		{name: "change ext with dot", template: "$ChangeExt(<SourceDocName>,.pdf)", want: "/in/batch/letter.pdf"},
		{name: "insert before ext", template: "$InsertBeforeExt(<SourceDocName>,_ocr)", want: "/in/batch/letter_ocr.eml"},
		{name: "ext of", template: "$ExtOf(<SourceDocName>)", want: ".eml"},
		{name: "file of", template: "$FileOf(<SourceDocName>)", want: "letter.eml"},
		{name: "env", template: "$Env(OUT_ROOT)/x", want: "/data/out/x"},
		{name: "now default", template: "$Now()", want: "2024-05-01-15-30-00"},
		{name: "now layout", template: "$Now(2006)", want: "2024"},
		{name: "literal dollar", template: "cost$5", want: "cost$5"},
		{name: "literal lt", template: "a<b", want: "a<b"},
		{name: "unknown tag", template: "<Nope>", wantErr: tags.ErrUnknownTag},
		{name: "unknown function", template: "$Nope(x)", wantErr: tags.ErrUnknownFunction},
		{name: "bad arity", template: "$DirOf(a,b)", wantErr: tags.ErrArgCount},
		{name: "unterminated", template: "$DirOf(<SourceDocName>", wantErr: tags.ErrUnterminated},
		{name: "env missing", template: "$Env(MISSING)", wantErr: tags.ErrEnvNotSet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Expand(tt.template, rec)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q want %q", got, tt.want)
			}
		})
	}
}
