package bates_test

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"testing"

	"file-processing-tasks/internal/fam/memory"
	"file-processing-tasks/internal/model"
	"file-processing-tasks/internal/task"
	"file-processing-tasks/internal/task/bates"
	"file-processing-tasks/internal/task/splitmime"
	"file-processing-tasks/internal/task/tasktest"
	pkgErrors "file-processing-tasks/pkg/errors"
	"file-processing-tasks/pkg/pdftool"
	"file-processing-tasks/pkg/settingsio"
)

func TestSettingsRoundTrip(t *testing.T) {
	src := bates.New(bates.Deps{})
	err := src.Configure([]byte(`{"prefix":"ABC","digits":8,"suffix":"-X","start_at":100,"number_pages":false,"stamp_pdf":true}`))
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if !src.IsDirty() {
		t.Fatal("Configure should mark the task dirty")
	}
	tasktest.RoundTrip(t, src, bates.New(bates.Deps{}))
}

func TestLoadOlderVersions(t *testing.T) {
	t.Run("v1 keeps later defaults", func(t *testing.T) {
		stream := tasktest.Stream(1, func(w *settingsio.Writer) {
			w.String("Counter")
			w.String("P")
			w.Int32(4)
		})
		tk := bates.New(bates.Deps{})
		if err := tk.Load(stream); err != nil {
			t.Fatalf("Load: %v", err)
		}
		want := bates.DefaultSettings()
		want.CounterName, want.Prefix, want.Digits = "Counter", "P", 4
		if got := tk.CurrentSettings(); got != want {
			t.Fatalf("got %+v, want %+v", got, want)
		}
	})

	t.Run("v2 keeps v3 defaults", func(t *testing.T) {
		stream := tasktest.Stream(2, func(w *settingsio.Writer) {
			w.String("Counter")
			w.String("")
			w.Int32(6)
			w.String("S")
			w.Int64(50)
			w.Bool(false)
		})
		tk := bates.New(bates.Deps{})
		if err := tk.Load(stream); err != nil {
			t.Fatalf("Load: %v", err)
		}
		got := tk.CurrentSettings()
		if got.Suffix != "S" || got.StartAt != 50 || got.NumberPages || got.MetadataField != "BatesNumber" || got.StampPDF {
			t.Fatalf("unexpected settings %+v", got)
		}
	})

	t.Run("newer version rejected", func(t *testing.T) {
		tk := bates.New(bates.Deps{})
		err := tk.Load(tasktest.Stream(bates.CurrentVersion+1, func(*settingsio.Writer) {}))
		if !errors.Is(err, settingsio.ErrUnsupportedVersion) || pkgErrors.CodeOf(err) != "BATES-006" {
			t.Fatalf("expected tagged unsupported version, got %v", err)
		}
	})

	t.Run("truncated stream leaves settings untouched", func(t *testing.T) {
		tk := bates.New(bates.Deps{})
		stream := tasktest.Stream(3, func(w *settingsio.Writer) { w.String("only") })
		if err := tk.Load(stream); !errors.Is(err, settingsio.ErrCorrupt) {
			t.Fatalf("expected ErrCorrupt, got %v", err)
		}
		if tk.CurrentSettings() != bates.DefaultSettings() {
			t.Fatal("failed load must not apply partial settings")
		}
	})
}

func TestConfigure(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{name: "zero digits", doc: `{"digits":0}`, wantErr: task.ErrInvalidSetting},
		{name: "too many digits", doc: `{"digits":19}`, wantErr: task.ErrInvalidSetting},
		{name: "empty counter", doc: `{"counter_name":""}`, wantErr: task.ErrInvalidSetting},
		{name: "unknown field", doc: `{"digitz":3}`, wantErr: task.ErrInvalidSetting},
		{name: "valid", doc: `{"digits":18}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := bates.New(bates.Deps{})
			err := tk.Configure([]byte(tt.doc))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr != nil && tk.CurrentSettings() != bates.DefaultSettings() {
				t.Fatal("rejected configuration must not change settings")
			}
		})
	}
}

func TestCloneAndCopy(t *testing.T) {
	src := bates.New(bates.Deps{})
	_ = src.Configure([]byte(`{"prefix":"A"}`))

	clone := src.Clone().(bates.Task)
	_ = clone.Configure([]byte(`{"prefix":"B"}`))
	if src.CurrentSettings().Prefix != "A" {
		t.Fatal("clone must not share settings with its source")
	}

	dst := bates.New(bates.Deps{})
	if err := dst.CopyFrom(clone); err != nil {
		t.Fatalf("CopyFrom: %v", err)
	}
	if dst.CurrentSettings().Prefix != "B" || !dst.IsDirty() {
		t.Fatalf("unexpected copy %+v", dst.CurrentSettings())
	}

	if err := dst.CopyFrom(splitmime.New(splitmime.Deps{})); !errors.Is(err, task.ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
}

func TestProcessFile(t *testing.T) {
	ctx := context.Background()

	t.Run("numbers every page", func(t *testing.T) {
		host := memory.New(memory.Options{})
		rec, _ := host.AddFile(ctx, "/docs/a.pdf", "", model.PriorityDefault)
		rec.Pages = 3

		tk := bates.New(bates.Deps{})
		_ = tk.Configure([]byte(`{"prefix":"DOC","digits":4,"start_at":10}`))
		if err := tk.Init(ctx, 1, host); err != nil {
			t.Fatalf("Init: %v", err)
		}
		defer tk.Close()

		progress := &tasktest.Progress{}
		res, err := tk.ProcessFile(ctx, rec, 1, host, progress)
		if err != nil || res != task.ResultSuccessful {
			t.Fatalf("ProcessFile: %v %v", res, err)
		}
		got, _ := host.GetMetadataField(ctx, rec.ID, "BatesNumber")
		if got != "DOC0010-DOC0012" {
			t.Fatalf("unexpected value %q", got)
		}
		if !slices.Equal(progress.Items, []string{"DOC0010-DOC0012"}) {
			t.Fatalf("unexpected progress %v", progress.Items)
		}

		rec2, _ := host.AddFile(ctx, "/docs/b.pdf", "", model.PriorityDefault)
		if _, err := tk.ProcessFile(ctx, rec2, 1, host, nil); err != nil {
			t.Fatalf("ProcessFile: %v", err)
		}
		got, _ = host.GetMetadataField(ctx, rec2.ID, "BatesNumber")
		if got != "DOC0013" {
			t.Fatalf("expected the next number, got %q", got)
		}
	})

	t.Run("stamps the PDF", func(t *testing.T) {
		host := memory.New(memory.Options{})
		rec, _ := host.AddFile(ctx, "/docs/a.pdf", "", model.PriorityDefault)
		tool := &tasktest.PDFTool{}

		tk := bates.New(bates.Deps{PDFTool: tool})
		_ = tk.Configure([]byte(`{"stamp_pdf":true,"digits":3}`))
		if err := tk.Init(ctx, 1, host); err != nil {
			t.Fatalf("Init: %v", err)
		}
		if _, err := tk.ProcessFile(ctx, rec, 1, host, nil); err != nil {
			t.Fatalf("ProcessFile: %v", err)
		}
		want := []string{"bates", "--in", "/docs/a.pdf", "--out", "/docs/a.pdf", "--first", "001", "--last", "001"}
		if !slices.Equal(tool.LastCall(), want) {
			t.Fatalf("unexpected args %v", tool.LastCall())
		}
	})

	t.Run("failed stamp leaves no Bates value", func(t *testing.T) {
		host := memory.New(memory.Options{})
		rec, _ := host.AddFile(ctx, "/docs/a.pdf", "", model.PriorityDefault)
		tool := &tasktest.PDFTool{Err: pdftool.ErrToolFailed}

		tk := bates.New(bates.Deps{PDFTool: tool})
		_ = tk.Configure([]byte(`{"stamp_pdf":true}`))
		if err := tk.Init(ctx, 1, host); err != nil {
			t.Fatalf("Init: %v", err)
		}
		res, err := tk.ProcessFile(ctx, rec, 1, host, nil)
		if res != task.ResultError || pkgErrors.CodeOf(err) != "BATES-012" {
			t.Fatalf("expected BATES-012, got %v %v", res, err)
		}
		if v, _ := host.GetMetadataField(ctx, rec.ID, "BatesNumber"); v != "" {
			t.Fatalf("failed stamp must not store a value, got %q", v)
		}
	})

	t.Run("cancel while stamping", func(t *testing.T) {
		host := memory.New(memory.Options{})
		rec, _ := host.AddFile(ctx, "/docs/a.pdf", "", model.PriorityDefault)
		runCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		tk := bates.New(bates.Deps{PDFTool: cancellingTool(cancel)})
		_ = tk.Configure([]byte(`{"stamp_pdf":true}`))
		if err := tk.Init(runCtx, 1, host); err != nil {
			t.Fatalf("Init: %v", err)
		}
		res, err := tk.ProcessFile(runCtx, rec, 1, host, nil)
		if err != nil || res != task.ResultCancelled {
			t.Fatalf("expected cancelled, got %v %v", res, err)
		}
		if v, _ := host.GetMetadataField(ctx, rec.ID, "BatesNumber"); v != "" {
			t.Fatalf("cancelled stamp must not store a value, got %q", v)
		}
	})

	t.Run("stamping without a tool fails Init", func(t *testing.T) {
		tk := bates.New(bates.Deps{})
		_ = tk.Configure([]byte(`{"stamp_pdf":true}`))
		err := tk.Init(ctx, 1, memory.New(memory.Options{}))
		if !errors.Is(err, task.ErrNotConfigured) {
			t.Fatalf("expected ErrNotConfigured, got %v", err)
		}
	})

	t.Run("cancel before start", func(t *testing.T) {
		host := memory.New(memory.Options{})
		rec, _ := host.AddFile(ctx, "/docs/a.pdf", "", model.PriorityDefault)
		tk := bates.New(bates.Deps{})
		_ = tk.Init(ctx, 1, host)
		tk.Cancel()

		res, err := tk.ProcessFile(ctx, rec, 1, host, nil)
		if err != nil || res != task.ResultCancelled {
			t.Fatalf("expected cancelled, got %v %v", res, err)
		}
		if v, _ := host.GetMetadataField(ctx, rec.ID, "BatesNumber"); v != "" {
			t.Fatalf("cancelled run must not reserve numbers, got %q", v)
		}
	})

	t.Run("unknown file is a tagged error", func(t *testing.T) {
		host := memory.New(memory.Options{})
		tk := bates.New(bates.Deps{})
		_ = tk.Init(ctx, 1, host)
		res, err := tk.ProcessFile(ctx, model.FileRecord{ID: 42, Name: "x"}, 1, host, nil)
		if res != task.ResultError || pkgErrors.CodeOf(err) != "BATES-011" {
			t.Fatalf("expected BATES-011, got %v %v", res, err)
		}
	})

	t.Run("requires Init", func(t *testing.T) {
		tk := bates.New(bates.Deps{})
		_, err := tk.ProcessFile(ctx, model.FileRecord{}, 1, memory.New(memory.Options{}), nil)
		if !errors.Is(err, task.ErrNotInitialized) {
			t.Fatalf("expected ErrNotInitialized, got %v", err)
		}
	})
}

// cancellingTool cancels the run while the tool is "running".
type cancellingTool context.CancelFunc

func (f cancellingTool) Run(ctx context.Context, args ...string) (pdftool.Output, error) {
	f()
	return pdftool.Output{}, ctx.Err()
}

func TestLicense(t *testing.T) {
	tk := bates.New(bates.Deps{})
	host := memory.New(memory.Options{DisabledComponents: []string{bates.TypeName}})
	if err := tk.ValidateLicense(host); !errors.Is(err, task.ErrNotLicensed) {
		t.Fatalf("expected ErrNotLicensed, got %v", err)
	}
	if err := tk.ValidateLicense(memory.New(memory.Options{})); err != nil {
		t.Fatalf("unexpected %v", err)
	}
}

func TestSaveWithoutClearingDirty(t *testing.T) {
	tk := bates.New(bates.Deps{})
	_ = tk.Configure([]byte(`{"prefix":"Z"}`))
	var buf bytes.Buffer
	if err := tk.Save(&buf, false); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !tk.IsDirty() {
		t.Fatal("Save(clearDirty=false) must keep the dirty flag")
	}
}
