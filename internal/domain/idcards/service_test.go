package idcards

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"vet-records/internal/adapters/storage/memory"
	"vet-records/internal/pdfdoc"
	"vet-records/internal/platform/logger"
)

type noFiles struct{}

func (noFiles) Exists(string) bool               { return false }
func (noFiles) ReadBytes(string) ([]byte, error) { return nil, errors.New("no files") }

func newTestService(t *testing.T) *Service {
	t.Helper()
	gen := pdfdoc.NewGenerator(nil, t.TempDir(), logger.Nop())
	svc := NewService(memory.NewDocumentStore(), gen, noFiles{}, pdfdoc.DefaultRenderConfig())
	svc.now = func() time.Time { return time.Date(2024, 3, 5, 11, 0, 0, 0, time.UTC) }
	return svc
}

func TestParseVariant(t *testing.T) {
	cases := map[string]Variant{
		"":         VariantComplete,
		"complete": VariantComplete,
		"upper":    VariantUpper,
		"Haute":    VariantUpper,
		"lower":    VariantLower,
		"basse":    VariantLower,
	}
	for in, want := range cases {
		got, err := ParseVariant(in)
		if err != nil || got != want {
			t.Fatalf("ParseVariant(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseVariant("middle"); err != ErrInvalidVariant {
		t.Fatalf("expected ErrInvalidVariant, got %v", err)
	}
}

func TestService_CreateAppliesDefaults(t *testing.T) {
	svc := newTestService(t)
	c, err := svc.Create(context.Background(), Card{Identification: Identification{ChipID: " 250269612345678 "}})
	if err != nil {
		t.Fatal(err)
	}
	a := c.Animal
	if a.Species != "CHAT" || a.HairType != "COURT" || a.Sex != "MALE" || a.Sterilized != "NON" || a.OriginCountry != "FRANCE" {
		t.Fatalf("unexpected defaults %#v", a)
	}
	if c.Identification.ChipID != "250269612345678" {
		t.Fatalf("chip not trimmed: %q", c.Identification.ChipID)
	}
	if _, err := svc.GetByID(context.Background(), c.ID); err != nil {
		t.Fatal(err)
	}
}

func TestService_CreateWithoutChip(t *testing.T) {
	svc := newTestService(t)
	c, err := svc.Create(context.Background(), Card{Animal: Animal{Name: "Minou"}})
	if err != nil {
		t.Fatalf("a card without chip must be accepted, got %v", err)
	}
	if c.Identification.ChipID != "" || ReducedID(c.Identification.ChipID) != "" {
		t.Fatalf("unexpected chip %q", c.Identification.ChipID)
	}
	data, err := os.ReadFile(svc.BuildPDF(c, c.ID, VariantComplete))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("expected a pdf, got %q", data[:min(len(data), 16)])
	}
}

func TestService_BuildPDFAllVariants(t *testing.T) {
	svc := newTestService(t)
	c := sampleCard()
	for _, v := range []Variant{VariantUpper, VariantLower, VariantComplete} {
		data, err := os.ReadFile(svc.BuildPDF(c, "abc", v))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF")) {
			t.Fatalf("%s: expected a pdf", v)
		}
	}
}

func TestDownloadName(t *testing.T) {
	c := Card{Animal: Animal{Name: "Petit Minou"}}
	if got := DownloadName(c, VariantLower); got != "Carte_Identification_Basse_Petit_Minou.pdf" {
		t.Fatalf("got %q", got)
	}
	if got := DownloadName(Card{}, VariantComplete); got != "Carte_Identification_Complete_Animal.pdf" {
		t.Fatalf("got %q", got)
	}
}
