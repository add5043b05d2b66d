package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("OUTPUT_DIR", t.TempDir())
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	return cmd.Execute()
}

func writeInput(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "record.json")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestCommands_RenderEveryKind(t *testing.T) {
	cases := []struct {
		name string
		args []string
		body string
	}{
		{"booklet", nil, `{"animal":{"name":"Milo"}}`},
		{"invoice", nil, `{"items":[{"description":"Transport","quantity":"1","unit_price":"25"}]}`},
		{"attestation", nil, `{"animal":{"name":"Rex"},"certifications":{"health":true}}`},
		{"idcard", []string{"--variant", "basse"}, `{"identification":{"chip_id":"250269612345678"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out.pdf")
			args := append([]string{tc.name, "--in", writeInput(t, tc.body), "--out", out}, tc.args...)
			if err := execute(t, args...); err != nil {
				t.Fatal(err)
			}
			data, err := os.ReadFile(out)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.HasPrefix(data, []byte("%PDF")) {
				t.Fatal("expected a pdf")
			}
		})
	}
}

func TestCommands_Errors(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.pdf")
	if err := execute(t, "idcard", "--in", writeInput(t, `{}`), "--out", out, "--variant", "middle"); err == nil {
		t.Fatal("expected invalid variant error")
	}
	if err := execute(t, "booklet", "--in", writeInput(t, `{"animal":{}}`), "--out", out); err == nil {
		t.Fatal("expected validation error for missing name")
	}
	if err := execute(t, "booklet", "--in", filepath.Join(t.TempDir(), "missing.json"), "--out", out); err == nil {
		t.Fatal("expected read error")
	}
}
