package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte("payload"))
		case "/big":
			_, _ = w.Write(make([]byte, 64))
		default:
			http.Error(w, "nope", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New(2 * time.Second)
	ctx := context.Background()

	got, err := c.GetBytes(ctx, srv.URL+"/ok")
	if err != nil || string(got) != "payload" {
		t.Fatalf("GetBytes ok: %q %v", got, err)
	}

	_, err = c.GetBytes(ctx, srv.URL+"/missing")
	var he *HTTPError
	if !errors.As(err, &he) || he.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 HTTPError, got %v", err)
	}

	c.MaxBytes = 16
	if _, err := c.GetBytes(ctx, srv.URL+"/big"); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestHead(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/photo.png" {
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New(0)
	if err := c.Head(context.Background(), srv.URL+"/photo.png"); err != nil {
		t.Fatalf("Head: %v", err)
	}
	if err := c.Head(context.Background(), srv.URL+"/other.png"); err == nil {
		t.Fatalf("expected error for missing resource")
	}
}

func TestRejectsLocalPaths(t *testing.T) {
	if IsRemote("/tmp/photo.png") {
		t.Fatalf("local path reported as remote")
	}
	if _, err := New(0).GetBytes(context.Background(), "/tmp/photo.png"); err == nil {
		t.Fatalf("expected error")
	}
}
