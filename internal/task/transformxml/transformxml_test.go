package transformxml_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"file-processing-tasks/internal/fam/memory"
	"file-processing-tasks/internal/model"
	"file-processing-tasks/internal/task"
	"file-processing-tasks/internal/task/tasktest"
	"file-processing-tasks/internal/task/transformxml"
	pkgErrors "file-processing-tasks/pkg/errors"
	"file-processing-tasks/pkg/settingsio"
)

func writeXML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.xml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, settings string, path string) (string, error) {
	t.Helper()
	ctx := context.Background()
	host := memory.New(memory.Options{})
	rec, _ := host.AddFile(ctx, path, "", model.PriorityDefault)

	tk := transformxml.New(transformxml.Deps{})
	base := `{"input_file":"<SourceDocName>","output_file":"$InsertBeforeExt(<SourceDocName>,_out)"}`
	if err := tk.Configure([]byte(base)); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if settings != "" {
		if err := tk.Configure([]byte(settings)); err != nil {
			t.Fatalf("Configure: %v", err)
		}
	}
	if err := tk.Init(ctx, 1, host); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer tk.Close()

	res, err := tk.ProcessFile(ctx, rec, 1, host, nil)
	if err != nil {
		return "", err
	}
	if res != task.ResultSuccessful {
		t.Fatalf("unexpected result %v", res)
	}
	out, err := os.ReadFile(filepath.Join(filepath.Dir(path), "doc_out.xml"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	return string(out), nil
}

func TestSettingsRoundTrip(t *testing.T) {
	src := transformxml.New(transformxml.Deps{})
	err := src.Configure([]byte(`{"remove_attributes":["tmp"],"remove_elements":["//secret","./a/b[@id='1']"],"indent":-1,"strip_namespaces":true,"sort_attributes":true}`))
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}
	tasktest.RoundTrip(t, src, transformxml.New(transformxml.Deps{}))
}

func TestLoadV1(t *testing.T) {
	tk := transformxml.New(transformxml.Deps{})
	err := tk.Load(tasktest.Stream(1, func(w *settingsio.Writer) {
		w.String("in.xml")
		w.String("out.xml")
		w.Strings([]string{"a"})
	}))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := tk.CurrentSettings()
	want := transformxml.DefaultSettings()
	want.InputFile, want.OutputFile, want.RemoveAttributes = "in.xml", "out.xml", []string{"a"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestInvalidPathMakesTaskUnconfigured(t *testing.T) {
	tk := transformxml.New(transformxml.Deps{})
	if err := tk.Configure([]byte(`{"remove_elements":["//a[@"]}`)); !errors.Is(err, task.ErrInvalidSetting) {
		t.Fatalf("expected ErrInvalidSetting, got %v", err)
	}
	if !tk.IsConfigured() {
		t.Fatal("rejected configuration must leave the previous settings in place")
	}

	loaded := transformxml.New(transformxml.Deps{})
	err := loaded.Load(tasktest.Stream(2, func(w *settingsio.Writer) {
		w.String("in.xml")
		w.String("out.xml")
		w.Strings(nil)
		w.Strings([]string{"//a[@"})
		w.Int32(2)
	}))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.IsConfigured() {
		t.Fatal("a stored invalid path must leave the task unconfigured")
	}
	if err := loaded.Init(context.Background(), 1, memory.New(memory.Options{})); pkgErrors.CodeOf(err) != "XML-007" {
		t.Fatalf("expected XML-007, got %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	src := transformxml.New(transformxml.Deps{})
	_ = src.Configure([]byte(`{"remove_attributes":["a"]}`))
	clone := src.Clone().(transformxml.Task)
	s := clone.CurrentSettings()
	s.RemoveAttributes[0] = "changed"
	if src.CurrentSettings().RemoveAttributes[0] != "a" {
		t.Fatal("settings slices must not be shared")
	}
}

func TestProcessFile(t *testing.T) {
	t.Run("removes and sorts", func(t *testing.T) {
		path := writeXML(t, `<?xml version="1.0" encoding="UTF-8"?><root b="2" a="1"><secret>x</secret><item id="1" tmp="y"><name>A</name></item></root>`)
		out, err := run(t, `{"remove_elements":["//secret"],"remove_attributes":["tmp"],"sort_attributes":true,"indent":2}`, path)
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		for _, want := range []string{`<root a="1" b="2">`, "\n  <item id=\"1\">", "\n    <name>A</name>"} {
			if !strings.Contains(out, want) {
				t.Fatalf("expected %q in output:\n%s", want, out)
			}
		}
		if strings.Contains(out, "secret") || strings.Contains(out, "tmp=") {
			t.Fatalf("removed content still present:\n%s", out)
		}
	})

	t.Run("strips namespaces compactly", func(t *testing.T) {
		path := writeXML(t, `<ns:root xmlns:ns="urn:x" xmlns="urn:d"><ns:a ns:k="v">t</ns:a></ns:root>`)
		out, err := run(t, `{"strip_namespaces":true,"indent":0}`, path)
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		if out != `<root><a k="v">t</a></root>` {
			t.Fatalf("unexpected output %q", out)
		}
	})

	t.Run("malformed input", func(t *testing.T) {
		path := writeXML(t, `<root><open></root>`)
		_, err := run(t, "", path)
		if pkgErrors.CodeOf(err) != "XML-012" {
			t.Fatalf("expected XML-012, got %v", err)
		}
		if _, statErr := os.Stat(filepath.Join(filepath.Dir(path), "doc_out.xml")); !os.IsNotExist(statErr) {
			t.Fatal("no output may be written for malformed input")
		}
	})

	t.Run("cancel before start", func(t *testing.T) {
		ctx := context.Background()
		path := writeXML(t, `<root/>`)
		host := memory.New(memory.Options{})
		rec, _ := host.AddFile(ctx, path, "", model.PriorityDefault)
		tk := transformxml.New(transformxml.Deps{})
		_ = tk.Init(ctx, 1, host)
		tk.Cancel()
		if res, err := tk.ProcessFile(ctx, rec, 1, host, nil); err != nil || res != task.ResultCancelled {
			t.Fatalf("expected cancelled, got %v %v", res, err)
		}
	})
}
