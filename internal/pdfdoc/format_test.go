package pdfdoc

import (
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatDate(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"2024-03-05", "05/03/2024"},
		{"2024-3-5", "05/03/2024"},
		{"", ""},
		{"March 5", "March 5"},
		{"2024-13-40", "2024-13-40"},
		{"05/03/2024", "05/03/2024"},
	}
	for _, tc := range cases {
		if got := FormatDate(tc.in); got != tc.want {
			t.Fatalf("FormatDate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatMoneyAndQuantity(t *testing.T) {
	if got := FormatMoney(decimal.RequireFromString("12.5")); got != "12.50 €" {
		t.Fatalf("FormatMoney = %q", got)
	}
	if got := FormatQuantity(decimal.RequireFromString("2.000")); got != "2" {
		t.Fatalf("FormatQuantity = %q", got)
	}
	if got := FormatQuantity(decimal.RequireFromString("1.5")); got != "1.5" {
		t.Fatalf("FormatQuantity = %q", got)
	}
}

func TestHeadTail(t *testing.T) {
	if got := Tail("250268712345678", 8); got != "12345678" {
		t.Fatalf("Tail = %q", got)
	}
	if got := Tail("1234", 8); got != "1234" {
		t.Fatalf("Tail short = %q", got)
	}
	if got := Head("3f2a9c1e-aaaa", 8); got != "3f2a9c1e" {
		t.Fatalf("Head = %q", got)
	}
}

func TestJoinNonEmpty(t *testing.T) {
	if got := JoinNonEmpty(", ", "12 rue A", " ", "75001 Paris"); got != "12 rue A, 75001 Paris" {
		t.Fatalf("JoinNonEmpty = %q", got)
	}
}

func TestDocumentNumber(t *testing.T) {
	at := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	re := regexp.MustCompile(`^FAC-20240305-[1-9][0-9]{3}$`)
	for i := 0; i < 50; i++ {
		if n := DocumentNumber("FAC", at); !re.MatchString(n) {
			t.Fatalf("unexpected number %q", n)
		}
	}
}

func TestRenderConfigDefaults(t *testing.T) {
	var cfg RenderConfig
	if !cfg.Tax().Equal(decimal.RequireFromString("0.2")) {
		t.Fatalf("default tax = %s", cfg.Tax())
	}
	page := cfg.Page("x", UniformMargins(20))
	if page.Size != "A4" || page.Margins.Left != 20 {
		t.Fatalf("unexpected page %+v", page)
	}
	m := UniformMargins(10)
	cfg.Margins = &m
	if got := cfg.Page("x", UniformMargins(20)); got.Margins.Top != 10 {
		t.Fatalf("override ignored: %+v", got)
	}
}
