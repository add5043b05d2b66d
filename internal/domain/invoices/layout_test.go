package invoices

import (
	"testing"

	"vet-records/internal/pdfdoc"
)

func itemsTable(blocks []pdfdoc.Block) *pdfdoc.Table {
	for _, b := range blocks {
		if t, ok := b.(*pdfdoc.Table); ok && len(t.Rows) > 0 && t.Rows[0].Cells[0].Text.String() == "Description" {
			return t
		}
	}
	return nil
}

func TestLayout_EmptyItemsKeepHeader(t *testing.T) {
	blocks := Layout(Invoice{Number: "FAC-1"}, pdfdoc.LayoutInput{Config: pdfdoc.DefaultRenderConfig()})

	tbl := itemsTable(blocks)
	if tbl == nil {
		t.Fatal("expected items table")
	}
	if len(tbl.DataRows()) != 0 {
		t.Fatalf("expected no data rows, got %d", len(tbl.DataRows()))
	}
	if !pdfdoc.ContainsText(blocks, "0.00 €") {
		t.Fatal("expected zero totals")
	}
	if !pdfdoc.ContainsText(blocks, "TVA (20%):") {
		t.Fatal("expected tax label")
	}
}

func TestLayout_ItemsAndTotals(t *testing.T) {
	inv := Invoice{
		Number: "FAC-1",
		Items: []LineItem{
			{Description: "Transport", Quantity: d("2"), UnitPrice: d("45.5")},
			{Description: "Cage", Quantity: d("1.5"), UnitPrice: d("10")},
		},
	}
	blocks := Layout(inv, pdfdoc.LayoutInput{Config: pdfdoc.DefaultRenderConfig()})

	rows := itemsTable(blocks).DataRows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if got := rows[0].Cells[3].Text.String(); got != "91.00 €" {
		t.Fatalf("line total = %q", got)
	}
	if got := rows[1].Cells[1].Text.String(); got != "1.5" {
		t.Fatalf("quantity = %q", got)
	}
	// 106 HT, 21.20 TVA, 127.20 TTC
	for _, want := range []string{"106.00 €", "21.20 €", "127.20 €"} {
		if !pdfdoc.ContainsText(blocks, want) {
			t.Fatalf("missing %q", want)
		}
	}
	if got := pdfdoc.CountKind(blocks, pdfdoc.KindBarcode); got != 1 {
		t.Fatalf("expected QR code, got %d barcodes", got)
	}
}

func TestLayout_BlankClientFieldsOmitted(t *testing.T) {
	inv := Invoice{Client: Client{Name: "Marie", Phone: "0600"}}
	blocks := Layout(inv, pdfdoc.LayoutInput{Config: pdfdoc.DefaultRenderConfig()})

	if !pdfdoc.ContainsText(blocks, "Téléphone: 0600") {
		t.Fatal("expected phone line")
	}
	for _, absent := range []string{"Adresse:", "Ville:", "Email:", "Notes:", "Animal:"} {
		if pdfdoc.ContainsText(blocks, absent) {
			t.Fatalf("%q should be absent", absent)
		}
	}
}

func TestLayout_AnimalFromSnapshotOrDelivery(t *testing.T) {
	inv := Invoice{Delivery: Delivery{Species: "Chat", Breed: "Persan"}}
	blocks := Layout(inv, pdfdoc.LayoutInput{Config: pdfdoc.DefaultRenderConfig()})
	if !pdfdoc.ContainsText(blocks, "Animal: Chat - Persan") {
		t.Fatal("expected animal from delivery")
	}

	inv.Animal = &AnimalSnapshot{Name: "Rex", Species: "Chien", Breed: "Labrador"}
	blocks = Layout(inv, pdfdoc.LayoutInput{Config: pdfdoc.DefaultRenderConfig()})
	if !pdfdoc.ContainsText(blocks, "Animal: Rex (Chien - Labrador)") {
		t.Fatal("expected animal from snapshot")
	}
}
