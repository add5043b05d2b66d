package files

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	portfiles "vet-records/internal/ports/files"
)

func TestLocal(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "photos"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "photos", "rex.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLocal(dir)
	if !l.Exists("photos/rex.png") || !l.Exists(filepath.Join(dir, "photos", "rex.png")) {
		t.Fatalf("relative and absolute refs should resolve")
	}
	if l.Exists("") || l.Exists("photos") || l.Exists("photos/none.png") {
		t.Fatalf("empty, directory and missing refs must not exist")
	}
	b, err := l.ReadBytes("photos/rex.png")
	if err != nil || string(b) != "png" {
		t.Fatalf("ReadBytes = %q, %v", b, err)
	}
	if _, err := l.ReadBytes("photos/none.png"); !errors.Is(err, portfiles.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	l.MaxBytes = 1
	if _, err := l.ReadBytes("photos/rex.png"); err == nil {
		t.Fatalf("expected size error")
	}
}

func TestChain_RoutesByScheme(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/stamp.png" {
			_, _ = w.Write([]byte("remote"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "sig.png"), []byte("local"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := &Chain{Local: NewLocal(dir), Remote: NewRemote(nil, time.Second)}

	if !c.Exists(srv.URL + "/stamp.png") {
		t.Fatalf("remote ref should exist")
	}
	if c.Exists(srv.URL + "/missing.png") {
		t.Fatalf("missing remote ref should not exist")
	}
	if b, err := c.ReadBytes(srv.URL + "/stamp.png"); err != nil || string(b) != "remote" {
		t.Fatalf("remote ReadBytes = %q, %v", b, err)
	}
	if b, err := c.ReadBytes("sig.png"); err != nil || string(b) != "local" {
		t.Fatalf("local ReadBytes = %q, %v", b, err)
	}

	empty := &Chain{}
	if empty.Exists("x.png") {
		t.Fatalf("nil resolvers must report missing")
	}
}
