package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"":        Info,
		"debug":   Debug,
		"WARNING": Warn,
		" error ": Error,
		"bogus":   Info,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestStdLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Warn, Writer: &buf})

	log.Info("hidden", nil)
	log.Warn("shown", map[string]any{"k": "v"})

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered: %q", out)
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "k=v") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestStdLogger_JSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Format: FormatJSON, App: "vet-records", Writer: &buf}).
		With(map[string]any{"component": "pdf"})

	log.Error("render failed", map[string]any{"error": errors.New("boom")})

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if entry["app"] != "vet-records" || entry["component"] != "pdf" {
		t.Fatalf("missing base fields: %v", entry)
	}
	if entry["error"] != "boom" || entry["level"] != "error" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestFormatText_QuotesSpaces(t *testing.T) {
	got := formatText(map[string]any{"msg": "two words", "a": 1})
	if got != `a=1 msg="two words"` {
		t.Fatalf("got %q", got)
	}
}
