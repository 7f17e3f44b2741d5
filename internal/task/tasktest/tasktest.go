// Package tasktest holds fakes and assertions shared by the task packages'
// tests.
package tasktest

import (
	"bytes"
	"context"
	"reflect"
	"sync"
	"testing"

	"file-processing-tasks/internal/task"
	"file-processing-tasks/pkg/pdftool"
	"file-processing-tasks/pkg/settingsio"
)

// RoundTrip saves src, loads the stream into dst and checks that the settings
// survived unchanged and that both dirty flags were cleared.
func RoundTrip(t *testing.T, src, dst task.Task) {
	t.Helper()
	var buf bytes.Buffer
	if err := src.Save(&buf, true); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if src.IsDirty() {
		t.Fatal("Save(clearDirty=true) left the source dirty")
	}
	if err := dst.Load(&buf); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if dst.IsDirty() {
		t.Fatal("Load left the task dirty")
	}
	if !reflect.DeepEqual(src.Settings(), dst.Settings()) {
		t.Fatalf("settings differ after round trip:\n got  %+v\n want %+v", dst.Settings(), src.Settings())
	}
}

// Stream builds a settings stream tagged with version.
func Stream(version uint32, write func(w *settingsio.Writer)) *bytes.Buffer {
	var buf bytes.Buffer
	w := settingsio.NewWriter(&buf)
	w.Version(version)
	write(w)
	return &buf
}

// Progress records progress callbacks.
type Progress struct {
	mu    sync.Mutex
	Total int
	Items []string
}

func (p *Progress) Start(total int, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Total = total
}

func (p *Progress) CompleteItem(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Items = append(p.Items, text)
}

// PDFTool is a pdftool.Runner that records invocations.
type PDFTool struct {
	mu    sync.Mutex
	Calls [][]string
	Out   pdftool.Output
	Err   error
}

func (f *PDFTool) Run(ctx context.Context, args ...string) (pdftool.Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, append([]string(nil), args...))
	if err := ctx.Err(); err != nil {
		return pdftool.Output{}, err
	}
	return f.Out, f.Err
}

// LastCall returns the arguments of the most recent Run, or nil.
func (f *PDFTool) LastCall() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Calls) == 0 {
		return nil
	}
	return f.Calls[len(f.Calls)-1]
}
