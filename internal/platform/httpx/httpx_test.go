package httpx

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"vet-records/internal/platform/logger"
)

func TestServePDF_StreamsAndRemoves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 test"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	ServePDF(rec, logger.Nop(), path, `Carnet_Sante_"Rex".pdf`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="Carnet_Sante__Rex_.pdf"` {
		t.Fatalf("Content-Disposition = %q", got)
	}
	if rec.Body.String() != "%PDF-1.4 test" {
		t.Fatalf("body = %q", rec.Body.String())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("file should be removed after serving")
	}
}

func TestServePDF_EmptyPath(t *testing.T) {
	rec := httptest.NewRecorder()
	ServePDF(rec, nil, "", "x.pdf")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}
