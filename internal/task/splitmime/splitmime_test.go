package splitmime_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"file-processing-tasks/internal/fam/memory"
	"file-processing-tasks/internal/model"
	"file-processing-tasks/internal/task"
	"file-processing-tasks/internal/task/splitmime"
	"file-processing-tasks/internal/task/tasktest"
	pkgErrors "file-processing-tasks/pkg/errors"
	"file-processing-tasks/pkg/settingsio"
)

const message = `From: sender@example.com
To: receiver@example.com
Subject: Quarterly report
MIME-Version: 1.0
Content-Type: multipart/mixed; boundary="outer"

--outer
Content-Type: multipart/alternative; boundary="inner"

--inner
Content-Type: text/plain; charset=utf-8

Hello plain
--inner
Content-Type: text/html; charset=utf-8

<p>Hello html</p>
--inner--
--outer
Content-Type: application/pdf; name="report.pdf"
Content-Disposition: attachment; filename="report.pdf"
Content-Transfer-Encoding: base64

JVBERi0xLjQ=
--outer
Content-Type: application/pdf; name="report.pdf"
Content-Disposition: attachment; filename="report.pdf"
Content-Transfer-Encoding: base64

JVBERi0xLjU=
--outer
Content-Type: application/octet-stream
Content-Disposition: attachment; filename="bad:name?.bin"

raw
--outer--
`

func writeMessage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mail.eml")
	if err := os.WriteFile(path, []byte(message), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

func TestSettingsRoundTrip(t *testing.T) {
	src := splitmime.New(splitmime.Deps{})
	if err := src.Configure([]byte(`{"queue_action":"OCR","priority":"above_normal","write_body":false}`)); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if src.CurrentSettings().Priority != model.PriorityAboveNormal {
		t.Fatalf("priority not parsed: %+v", src.CurrentSettings())
	}
	tasktest.RoundTrip(t, src, splitmime.New(splitmime.Deps{}))
}

func TestLoadV1(t *testing.T) {
	tk := splitmime.New(splitmime.Deps{})
	err := tk.Load(tasktest.Stream(1, func(w *settingsio.Writer) {
		w.String("/out")
		w.String("Next")
	}))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := splitmime.DefaultSettings()
	want.OutputDirectory, want.QueueAction = "/out", "Next"
	if got := tk.CurrentSettings(); got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestConfigureRejectsBadPriority(t *testing.T) {
	tk := splitmime.New(splitmime.Deps{})
	if err := tk.Configure([]byte(`{"priority":"urgent"}`)); !errors.Is(err, task.ErrInvalidSetting) {
		t.Fatalf("expected ErrInvalidSetting, got %v", err)
	}
	if err := tk.Configure([]byte(`{"output_directory":""}`)); !errors.Is(err, task.ErrInvalidSetting) {
		t.Fatalf("expected ErrInvalidSetting, got %v", err)
	}
}

func TestProcessFile(t *testing.T) {
	ctx := context.Background()

	t.Run("writes bodies and attachments and queues parts", func(t *testing.T) {
		path := writeMessage(t)
		host := memory.New(memory.Options{})
		rec, _ := host.AddFile(ctx, path, "", model.PriorityDefault)

		tk := splitmime.New(splitmime.Deps{})
		if err := tk.Configure([]byte(`{"queue_action":"OCR","priority":"high"}`)); err != nil {
			t.Fatalf("Configure: %v", err)
		}
		if err := tk.Init(ctx, 1, host); err != nil {
			t.Fatalf("Init: %v", err)
		}
		defer tk.Close()

		progress := &tasktest.Progress{}
		res, err := tk.ProcessFile(ctx, rec, 1, host, progress)
		if err != nil || res != task.ResultSuccessful {
			t.Fatalf("ProcessFile: %v %v", res, err)
		}

		dir := filepath.Join(filepath.Dir(path), "mail_parts")
		if got := strings.TrimSpace(readFile(t, filepath.Join(dir, "body.txt"))); got != "Hello plain" {
			t.Fatalf("unexpected text body %q", got)
		}
		if got := readFile(t, filepath.Join(dir, "body.html")); !strings.Contains(got, "Hello html") {
			t.Fatalf("unexpected html body %q", got)
		}
		if got := readFile(t, filepath.Join(dir, "report.pdf")); got != "%PDF-1.4" {
			t.Fatalf("unexpected first attachment %q", got)
		}
		if got := readFile(t, filepath.Join(dir, "report(1).pdf")); got != "%PDF-1.5" {
			t.Fatalf("unexpected duplicate attachment %q", got)
		}
		if got := strings.TrimSpace(readFile(t, filepath.Join(dir, "bad_name_.bin"))); got != "raw" {
			t.Fatalf("unexpected sanitized attachment %q", got)
		}

		if progress.Total != 5 || len(progress.Items) != 5 {
			t.Fatalf("unexpected progress %d %v", progress.Total, progress.Items)
		}

		queue := host.Queue()
		if len(queue) != 5 {
			t.Fatalf("expected 5 queued parts, got %d", len(queue))
		}
		for _, q := range queue {
			if q.Action != "OCR" || q.Priority != model.PriorityHigh {
				t.Fatalf("unexpected queue entry %+v", q)
			}
			src, err := host.GetMetadataField(ctx, q.FileID, splitmime.SourceDocIDField)
			if err != nil || src != strconv.Itoa(rec.ID) {
				t.Fatalf("part %d not linked to source: %q %v", q.FileID, src, err)
			}
		}
	})

	t.Run("skips bodies when disabled", func(t *testing.T) {
		path := writeMessage(t)
		host := memory.New(memory.Options{})
		rec, _ := host.AddFile(ctx, path, "", model.PriorityDefault)

		out := filepath.Join(t.TempDir(), "parts")
		tk := splitmime.New(splitmime.Deps{})
		_ = tk.SetSettings(splitmime.Settings{OutputDirectory: out, WriteBody: false})
		_ = tk.Init(ctx, 1, host)
		if _, err := tk.ProcessFile(ctx, rec, 1, host, nil); err != nil {
			t.Fatalf("ProcessFile: %v", err)
		}
		if _, err := os.Stat(filepath.Join(out, "body.txt")); !os.IsNotExist(err) {
			t.Fatalf("body should not be written, stat err %v", err)
		}
		if len(host.Queue()) != 0 {
			t.Fatal("nothing should be queued without a queue action")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		host := memory.New(memory.Options{})
		tk := splitmime.New(splitmime.Deps{})
		_ = tk.Init(ctx, 1, host)
		res, err := tk.ProcessFile(ctx, model.FileRecord{ID: 1, Name: filepath.Join(t.TempDir(), "none.eml")}, 1, host, nil)
		if res != task.ResultError || pkgErrors.CodeOf(err) != "MIME-010" || !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("expected MIME-010 wrapping ErrNotExist, got %v %v", res, err)
		}
	})

	t.Run("cancel before start", func(t *testing.T) {
		path := writeMessage(t)
		host := memory.New(memory.Options{})
		rec, _ := host.AddFile(ctx, path, "", model.PriorityDefault)
		tk := splitmime.New(splitmime.Deps{})
		_ = tk.Init(ctx, 1, host)

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		res, err := tk.ProcessFile(cctx, rec, 1, host, nil)
		if err != nil || res != task.ResultCancelled {
			t.Fatalf("expected cancelled, got %v %v", res, err)
		}
		if _, err := os.Stat(filepath.Join(filepath.Dir(path), "mail_parts")); !os.IsNotExist(err) {
			t.Fatal("cancelled run must not create output")
		}
	})
}
