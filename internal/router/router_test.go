package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"vet-records/internal/domain/booklets"
	"vet-records/internal/domain/invoices"
	"vet-records/internal/router"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(router.Options{
		UploadDir: t.TempDir(),
		OutputDir: t.TempDir(),
	}))
	t.Cleanup(ts.Close)
	return ts
}

func doReq(t *testing.T, baseURL, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, baseURL+path, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp, data
}

func expectPDF(t *testing.T, resp *http.Response, body []byte, filename string) {
	t.Helper()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", resp.StatusCode, string(body))
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !bytes.HasPrefix(body, []byte("%PDF")) {
		t.Fatal("body is not a pdf")
	}
	if filename != "" && !strings.Contains(resp.Header.Get("Content-Disposition"), filename) {
		t.Fatalf("unexpected disposition %q", resp.Header.Get("Content-Disposition"))
	}
}

func TestHTTP_Health(t *testing.T) {
	ts := newServer(t)
	resp, body := doReq(t, ts.URL, http.MethodGet, "/health", nil)
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Fatalf("unexpected health %d %q", resp.StatusCode, string(body))
	}
}

func TestHTTP_EndToEnd_BookletAndInvoice(t *testing.T) {
	ts := newServer(t)

	// 1) Crear carnet
	resp, body := doReq(t, ts.URL, http.MethodPost, "/booklets", map[string]any{
		"animal": map[string]any{"name": "Milo", "species": "Chien", "breed": "Beagle"},
		"owner":  map[string]any{"name": "Jean Dupont", "postal_code": "75001", "city": "Paris"},
		"vaccinations": []map[string]any{
			{"type": "Rage", "date": "2024-03-05"},
			{"type": "", "date": "2024-03-06"},
		},
	})
	expectPDF(t, resp, body, "Carnet_Sante_Milo.pdf")

	// 2) Listar y recuperar
	resp, body = doReq(t, ts.URL, http.MethodGet, "/booklets", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 listing booklets, got %d", resp.StatusCode)
	}
	var list []booklets.Booklet
	if err := json.Unmarshal(body, &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || len(list[0].Vaccinations) != 1 {
		t.Fatalf("unexpected booklets %#v", list)
	}
	bookletID := list[0].ID

	resp, body = doReq(t, ts.URL, http.MethodGet, "/booklets/"+bookletID+"/pdf", nil)
	expectPDF(t, resp, body, "Carnet_Sante_Milo.pdf")

	// 3) Factura a partir del carnet
	resp, body = doReq(t, ts.URL, http.MethodPost, "/invoices", map[string]any{
		"booklet_id": bookletID,
		"issuer":     map[string]any{"name": "Pet Taxi"},
		"items": []map[string]any{
			{"description": "Transport", "quantity": "2", "unit_price": "30.50"},
			{"description": "Attente", "quantity": "1", "unit_price": "30", "total": "999"},
			{"description": "", "quantity": "5", "unit_price": "1"},
		},
	})
	expectPDF(t, resp, body, "_Milo.pdf")

	resp, body = doReq(t, ts.URL, http.MethodGet, "/invoices", nil)
	var invs []invoices.Invoice
	if err := json.Unmarshal(body, &invs); err != nil || len(invs) != 1 {
		t.Fatalf("unexpected invoices %s (%v)", string(body), err)
	}
	inv := invs[0]
	if len(inv.Items) != 2 || !inv.Totals.TotalWithTax.Equal(decimal.RequireFromString("109.2")) {
		t.Fatalf("unexpected totals %#v", inv.Totals)
	}
	if inv.Animal == nil || inv.Animal.Name != "Milo" || inv.Animal.City != "75001 Paris" {
		t.Fatalf("expected animal snapshot, got %#v", inv.Animal)
	}

	resp, body = doReq(t, ts.URL, http.MethodGet, "/invoices/"+inv.ID+"/pdf", nil)
	expectPDF(t, resp, body, inv.Number)

	// 4) Borrar carnet
	resp, _ = doReq(t, ts.URL, http.MethodDelete, "/booklets/"+bookletID, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	resp, _ = doReq(t, ts.URL, http.MethodGet, "/booklets/"+bookletID, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.StatusCode)
	}
}

func TestHTTP_AttestationAndIDCard(t *testing.T) {
	ts := newServer(t)

	resp, body := doReq(t, ts.URL, http.MethodPost, "/attestations", map[string]any{
		"vet":            map[string]any{"full_name": "Claire Martin"},
		"animal":         map[string]any{"name": "Rex"},
		"certifications": map[string]any{"health": true},
		"city":           "Lyon",
		"stamp":          "data:image/png;base64,@@not-base64@@",
	})
	expectPDF(t, resp, body, "Attestation_Veterinaire_Rex_")

	card := map[string]any{
		"identification": map[string]any{"chip_id": "250269612345678"},
		"animal":         map[string]any{"name": "Minou"},
	}
	resp, body = doReq(t, ts.URL, http.MethodPost, "/id-cards?variant=middle", card)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid variant, got %d body=%s", resp.StatusCode, string(body))
	}
	resp, body = doReq(t, ts.URL, http.MethodPost, "/id-cards?variant=basse", card)
	expectPDF(t, resp, body, "Carte_Identification_Basse_Minou.pdf")

	resp, body = doReq(t, ts.URL, http.MethodPost, "/id-cards", map[string]any{"animal": map[string]any{"name": "Minou"}})
	expectPDF(t, resp, body, "Carte_Identification_Complete_Minou.pdf")

	resp, body = doReq(t, ts.URL, http.MethodGet, "/stats", nil)
	var stats map[string]int
	if err := json.Unmarshal(body, &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats["attestations"] != 1 || stats["id_cards"] != 2 || stats["booklets"] != 0 {
		t.Fatalf("unexpected stats %v", stats)
	}
}

func TestHTTP_UnknownRecords(t *testing.T) {
	ts := newServer(t)
	for _, path := range []string{"/booklets/nope", "/invoices/nope/pdf", "/attestations/nope/pdf", "/id-cards/nope/pdf"} {
		resp, _ := doReq(t, ts.URL, http.MethodGet, path, nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, resp.StatusCode)
		}
	}
	resp, _ := doReq(t, ts.URL, http.MethodPost, "/booklets", map[string]any{"unknown": 1})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown fields, got %d", resp.StatusCode)
	}
}
