package booklets

import (
	"testing"
	"time"

	"vet-records/internal/pdfdoc"
)

func tableWithHeader(blocks []pdfdoc.Block, first string) *pdfdoc.Table {
	for _, b := range blocks {
		t, ok := b.(*pdfdoc.Table)
		if !ok || len(t.Rows) == 0 || len(t.Rows[0].Cells) == 0 {
			continue
		}
		if t.Rows[0].Cells[0].Text.String() == first {
			return t
		}
	}
	return nil
}

func sampleBooklet() Booklet {
	return Booklet{
		ID: "0f4b5c2a-1111-2222-3333-444455556666",
		Animal: Animal{
			Name:    "Rex",
			Species: "Chien",
			Breed:   "Labrador",
		},
		Owner: Owner{Name: "Marie Dupont", Phone: "0600000000"},
		Vaccinations: []Vaccination{
			{Type: "Rage", Date: "2024-03-05", BoosterDate: "2025-03-05", LotNumber: "L1"},
			{Type: "CHPPiL", Date: "2024-04-01"},
		},
		CreatedAt: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
	}
}

func TestLayout_VaccinationsWithoutParasites(t *testing.T) {
	blocks := Layout(sampleBooklet(), pdfdoc.LayoutInput{RecordID: "0f4b5c2a", Config: pdfdoc.DefaultRenderConfig()})

	vacc := tableWithHeader(blocks, "Vaccin")
	if vacc == nil {
		t.Fatal("expected vaccination table")
	}
	if got := len(vacc.DataRows()); got != 2 {
		t.Fatalf("expected 2 vaccination rows, got %d", got)
	}
	if got := vacc.DataRows()[0].Cells[1].Text.String(); got != "05/03/2024" {
		t.Fatalf("expected formatted date, got %q", got)
	}

	// El tratamiento antiparasitario vacío no emite tabla ni sección.
	if tableWithHeader(blocks, "Type") != nil {
		t.Fatal("parasite table should be absent")
	}
	if pdfdoc.ContainsText(blocks, "TRAITEMENTS ANTIPARASITAIRES") {
		t.Fatal("parasite section should be absent")
	}
}

func TestLayout_BlankFieldsHaveNoRow(t *testing.T) {
	blocks := Layout(sampleBooklet(), pdfdoc.LayoutInput{Config: pdfdoc.DefaultRenderConfig()})

	if _, ok := pdfdoc.FindInfoRow(blocks, "Race"); !ok {
		t.Fatal("expected Race row")
	}
	for _, label := range []string{"Âge", "Sexe", "Stérilisé(e)", "Poids", "Numéro d'identification", "Email", "Adresse"} {
		if _, ok := pdfdoc.FindInfoRow(blocks, label); ok {
			t.Fatalf("row %q should be absent", label)
		}
	}
	if pdfdoc.ContainsText(blocks, "CABINET VÉTÉRINAIRE") {
		t.Fatal("cabinet section should be absent without a cabinet name")
	}
	if pdfdoc.ContainsText(blocks, "INFORMATIONS DE SANTÉ") {
		t.Fatal("health section should be absent without notes")
	}
}

func TestLayout_WeightAndAddress(t *testing.T) {
	b := sampleBooklet()
	b.Animal.Weight = "32"
	b.Owner.Address = "1 rue des Lilas"
	b.Owner.PostalCode = "75001"
	b.Owner.City = "Paris"

	blocks := Layout(b, pdfdoc.LayoutInput{Config: pdfdoc.DefaultRenderConfig()})

	if row, ok := pdfdoc.FindInfoRow(blocks, "Poids"); !ok || row.Value != "32 kg" {
		t.Fatalf("unexpected weight row %#v", row)
	}
	if row, ok := pdfdoc.FindInfoRow(blocks, "Adresse"); !ok || row.Value != "1 rue des Lilas, 75001 Paris" {
		t.Fatalf("unexpected address row %#v", row)
	}
}

func TestLayout_ConsultationLog(t *testing.T) {
	blocks := Layout(Booklet{Animal: Animal{Name: "Mia"}}, pdfdoc.LayoutInput{Config: pdfdoc.DefaultRenderConfig()})

	logs := 0
	for _, b := range blocks {
		tbl, ok := b.(*pdfdoc.Table)
		if !ok || len(tbl.Rows) == 0 || tbl.Rows[0].Cells[0].Text.String() != "Date" || len(tbl.Rows[0].Cells) != 6 {
			continue
		}
		logs++
		if got := len(tbl.DataRows()); got != consultationRows {
			t.Fatalf("expected %d blank rows, got %d", consultationRows, got)
		}
	}
	if logs != consultationPages {
		t.Fatalf("expected %d consultation tables, got %d", consultationPages, logs)
	}
	// portada, identidad, salud, veterinario + 3 páginas de consultas
	if got := pdfdoc.CountKind(blocks, pdfdoc.KindPageBreak); got != 3+consultationPages {
		t.Fatalf("unexpected page breaks: %d", got)
	}
}

func TestLayout_MissingPhotoIsSkipped(t *testing.T) {
	b := sampleBooklet()
	b.PhotoRef = "photo_rex.jpg"
	blocks := Layout(b, pdfdoc.LayoutInput{Files: noFiles{}, Config: pdfdoc.DefaultRenderConfig()})
	if got := pdfdoc.CountKind(blocks, pdfdoc.KindImage); got != 0 {
		t.Fatalf("expected no images, got %d", got)
	}
}

func TestLayout_CoverFooterUsesRecordID(t *testing.T) {
	blocks := Layout(sampleBooklet(), pdfdoc.LayoutInput{RecordID: "abcdef1234", Config: pdfdoc.DefaultRenderConfig()})
	if !pdfdoc.ContainsText(blocks, "Numéro de carnet : abcdef12") {
		t.Fatal("expected footer with the first 8 chars of the id")
	}
	if !pdfdoc.ContainsText(blocks, "Créé le 05/03/2024") {
		t.Fatal("expected creation date in the footer")
	}
}
