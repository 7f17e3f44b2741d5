package splitmime

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitizeName(t *testing.T) {
	tests := map[string]string{
		"report.pdf":       "report.pdf",
		"bad:name?.bin":    "bad_name_.bin",
		`..\..\evil.exe`:   "evil.exe",
		"../../etc/passwd": "passwd",
		" trailing. ":      "trailing",
		"tab\there.txt":    "tab_here.txt",
		"":                 "",
	}
	for in, want := range tests {
		if got := sanitizeName(in); got != want {
			t.Errorf("sanitizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeNameTruncates(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "ascii", in: strings.Repeat("a", 300) + ".pdf"},
		// 3-byte runes put the byte limit inside a rune.
		{name: "multibyte", in: strings.Repeat("日", 100) + ".pdf"},
		{name: "two byte runes", in: "x" + strings.Repeat("é", 150) + ".txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeName(tt.in)
			if len(got) > maxNameLen {
				t.Fatalf("length %d exceeds %d", len(got), maxNameLen)
			}
			if !utf8.ValidString(got) {
				t.Fatalf("truncated name is not valid UTF-8: %q", got)
			}
			if ext := tt.in[strings.LastIndexByte(tt.in, '.'):]; !strings.HasSuffix(got, ext) {
				t.Fatalf("extension lost: %q", got)
			}
		})
	}
}

func TestNameSetUnique(t *testing.T) {
	s := nameSet{}
	got := []string{s.unique("a.pdf"), s.unique("A.pdf"), s.unique("a.pdf"), s.unique("b")}
	want := []string{"a.pdf", "A(1).pdf", "a(2).pdf", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unique #%d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFallbackName(t *testing.T) {
	if got := fallbackName(3, "application/x-unknown-thing"); got != "part_3.bin" {
		t.Fatalf("unexpected %q", got)
	}
}
