package cloudocr_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"file-processing-tasks/internal/fam/memory"
	"file-processing-tasks/internal/model"
	"file-processing-tasks/internal/task"
	"file-processing-tasks/internal/task/cloudocr"
	"file-processing-tasks/internal/task/tasktest"
	pkgErrors "file-processing-tasks/pkg/errors"
	"file-processing-tasks/pkg/gvision"
	"file-processing-tasks/pkg/settingsio"
)

type fakeRecognizer struct {
	mu    sync.Mutex
	calls []string
	pages []gvision.Page
	err   error
}

func (f *fakeRecognizer) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeRecognizer) RecognizeImage(ctx context.Context, image []byte, languages []string) (gvision.Page, error) {
	f.record("image")
	if f.err != nil {
		return gvision.Page{}, f.err
	}
	return gvision.Page{Number: 1, Text: "image text"}, nil
}

func (f *fakeRecognizer) RecognizeFile(ctx context.Context, data []byte, mimeType string, languages []string) ([]gvision.Page, error) {
	f.record("file:" + mimeType)
	return f.pages, f.err
}

func (f *fakeRecognizer) RecognizeFileAsync(ctx context.Context, data []byte, mimeType, bucket string, languages []string) ([]gvision.Page, error) {
	f.record("async:" + bucket)
	return f.pages, f.err
}

func newTask(t *testing.T, rec *fakeRecognizer, settings string) cloudocr.Task {
	t.Helper()
	cache := cloudocr.NewClientCache(func(ctx context.Context, key cloudocr.ClientKey, rpm int) (cloudocr.Recognizer, error) {
		return rec, nil
	})
	tk := cloudocr.New(cloudocr.Deps{Cache: cache})
	if settings != "" {
		if err := tk.Configure([]byte(settings)); err != nil {
			t.Fatalf("Configure: %v", err)
		}
	}
	return tk
}

func writeSource(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSettingsRoundTrip(t *testing.T) {
	src := newTask(t, &fakeRecognizer{}, `{"credentials_file":"/k.json","bucket":"b","languages":["en","vi"],"output_file":"<SourceDocName>.ocr","write_json":true,"requests_per_minute":30}`)
	tasktest.RoundTrip(t, src, cloudocr.New(cloudocr.Deps{}))
}

func TestLoadOlderVersions(t *testing.T) {
	tests := []struct {
		version uint32
		write   func(w *settingsio.Writer)
		want    func(s *cloudocr.Settings)
	}{
		{
			version: 1,
			write: func(w *settingsio.Writer) {
				w.String("/k.json")
				w.String("b")
			},
			want: func(s *cloudocr.Settings) { s.CredentialsFile, s.Bucket = "/k.json", "b" },
		},
		{
			version: 3,
			write: func(w *settingsio.Writer) {
				w.String("")
				w.String("")
				w.Strings([]string{"de"})
				w.String("out.txt")
			},
			want: func(s *cloudocr.Settings) { s.Languages, s.OutputFile = []string{"de"}, "out.txt" },
		},
	}
	for _, tt := range tests {
		tk := cloudocr.New(cloudocr.Deps{})
		if err := tk.Load(tasktest.Stream(tt.version, tt.write)); err != nil {
			t.Fatalf("v%d: Load: %v", tt.version, err)
		}
		want := cloudocr.DefaultSettings()
		tt.want(&want)
		if got := tk.CurrentSettings(); !reflect.DeepEqual(got, want) {
			t.Fatalf("v%d: got %+v, want %+v", tt.version, got, want)
		}
	}
}

func TestProcessFile(t *testing.T) {
	ctx := context.Background()
	pages := []gvision.Page{{Number: 1, Text: "one"}, {Number: 2, Text: "two"}}

	tests := []struct {
		name     string
		source   string
		settings string
		wantCall string
		wantText string
	}{
		{name: "image", source: "scan.png", wantCall: "image", wantText: "image text"},
		{name: "pdf without bucket", source: "doc.pdf", wantCall: "file:application/pdf", wantText: "one\ftwo"},
		{name: "tiff with bucket", source: "doc.TIF", settings: `{"bucket":"stage"}`, wantCall: "async:stage", wantText: "one\ftwo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &fakeRecognizer{pages: pages}
			tk := newTask(t, rec, tt.settings)
			path := writeSource(t, tt.source)
			host := memory.New(memory.Options{})
			fr, _ := host.AddFile(ctx, path, "", model.PriorityDefault)

			if err := tk.Init(ctx, 1, host); err != nil {
				t.Fatalf("Init: %v", err)
			}
			defer tk.Close()
			res, err := tk.ProcessFile(ctx, fr, 1, host, nil)
			if err != nil || res != task.ResultSuccessful {
				t.Fatalf("ProcessFile: %v %v", res, err)
			}
			if len(rec.calls) != 1 || rec.calls[0] != tt.wantCall {
				t.Fatalf("unexpected calls %v", rec.calls)
			}
			got, err := os.ReadFile(path + ".txt")
			if err != nil || string(got) != tt.wantText {
				t.Fatalf("unexpected output %q (%v)", got, err)
			}
		})
	}

	t.Run("json sidecar", func(t *testing.T) {
		tk := newTask(t, &fakeRecognizer{pages: pages}, `{"write_json":true}`)
		path := writeSource(t, "doc.pdf")
		host := memory.New(memory.Options{})
		fr, _ := host.AddFile(ctx, path, "", model.PriorityDefault)
		_ = tk.Init(ctx, 1, host)
		if _, err := tk.ProcessFile(ctx, fr, 1, host, nil); err != nil {
			t.Fatalf("ProcessFile: %v", err)
		}
		b, err := os.ReadFile(path + ".txt.json")
		if err != nil {
			t.Fatalf("sidecar: %v", err)
		}
		var sc cloudocr.Sidecar
		if err := json.Unmarshal(b, &sc); err != nil || sc.Source != path || !reflect.DeepEqual(sc.Pages, pages) {
			t.Fatalf("unexpected sidecar %+v (%v)", sc, err)
		}
	})

	t.Run("recognition error", func(t *testing.T) {
		tk := newTask(t, &fakeRecognizer{err: gvision.ErrAnnotation}, "")
		path := writeSource(t, "scan.jpg")
		host := memory.New(memory.Options{})
		fr, _ := host.AddFile(ctx, path, "", model.PriorityDefault)
		_ = tk.Init(ctx, 1, host)
		res, err := tk.ProcessFile(ctx, fr, 1, host, nil)
		if res != task.ResultError || pkgErrors.CodeOf(err) != "OCR-013" || !errors.Is(err, gvision.ErrAnnotation) {
			t.Fatalf("expected OCR-013, got %v %v", res, err)
		}
	})

	t.Run("cancel before start", func(t *testing.T) {
		rec := &fakeRecognizer{pages: pages}
		tk := newTask(t, rec, "")
		host := memory.New(memory.Options{})
		_ = tk.Init(ctx, 1, host)
		tk.Cancel()
		res, err := tk.ProcessFile(ctx, model.FileRecord{ID: 1, Name: "x.pdf"}, 1, host, nil)
		if err != nil || res != task.ResultCancelled || len(rec.calls) != 0 {
			t.Fatalf("expected cancelled without calls, got %v %v %v", res, err, rec.calls)
		}
	})

	t.Run("missing cache", func(t *testing.T) {
		tk := cloudocr.New(cloudocr.Deps{})
		if err := tk.Init(ctx, 1, memory.New(memory.Options{})); !errors.Is(err, task.ErrNotConfigured) {
			t.Fatalf("expected ErrNotConfigured, got %v", err)
		}
	})
}

func TestClonesShareTheCache(t *testing.T) {
	ctx := context.Background()
	var builds int
	cache := cloudocr.NewClientCache(func(ctx context.Context, key cloudocr.ClientKey, rpm int) (cloudocr.Recognizer, error) {
		builds++
		return &fakeRecognizer{pages: []gvision.Page{{Number: 1}}}, nil
	})
	a := cloudocr.New(cloudocr.Deps{Cache: cache})
	b := a.Clone()

	host := memory.New(memory.Options{})
	for _, tk := range []task.Task{a, b} {
		path := writeSource(t, "doc.pdf")
		fr, _ := host.AddFile(ctx, path, "", model.PriorityDefault)
		_ = tk.Init(ctx, 1, host)
		if _, err := tk.ProcessFile(ctx, fr, 1, host, nil); err != nil {
			t.Fatalf("ProcessFile: %v", err)
		}
		_ = tk.Close()
	}
	if builds != 1 {
		t.Fatalf("expected the clone to reuse the cached client, builds=%d", builds)
	}
}
