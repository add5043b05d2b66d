package attestations

import (
	"testing"
	"time"

	"vet-records/internal/pdfdoc"
)

func checked(blocks []pdfdoc.Block) []bool {
	var out []bool
	for _, b := range blocks {
		if c, ok := b.(*pdfdoc.CheckLine); ok {
			out = append(out, c.Checked)
		}
	}
	return out
}

func countChecked(blocks []pdfdoc.Block) int {
	n := 0
	for _, c := range checked(blocks) {
		if c {
			n++
		}
	}
	return n
}

func sample() Attestation {
	return Attestation{
		Number:    "ATT-20240305-1234",
		Vet:       Vet{FullName: "Claire Martin", Registration: "12345"},
		Animal:    Animal{Name: "Rex", Species: "Chien"},
		Date:      "2024-03-05",
		City:      "Lyon",
		CreatedAt: time.Date(2024, 3, 5, 11, 0, 0, 0, time.UTC),
	}
}

func TestLayout_CertificationMarkers(t *testing.T) {
	cfg := pdfdoc.LayoutInput{Config: pdfdoc.DefaultRenderConfig()}

	a := sample()
	if got := countChecked(Layout(a, cfg)); got != 0 {
		t.Fatalf("all false: expected 0 checked, got %d", got)
	}

	a.Certifications = Certifications{Health: true, Vaccination: true, DiseaseFree: true, TransportFit: true}
	if got := countChecked(Layout(a, cfg)); got != 4 {
		t.Fatalf("all true: expected 4 checked, got %d", got)
	}

	// Cada casilla cambia solo su propia línea.
	for i := 0; i < 4; i++ {
		var c Certifications
		switch i {
		case 0:
			c.Health = true
		case 1:
			c.Vaccination = true
		case 2:
			c.DiseaseFree = true
		case 3:
			c.TransportFit = true
		}
		a.Certifications = c
		lines := checked(Layout(a, cfg))
		if len(lines) != 4 {
			t.Fatalf("expected 4 lines, got %d", len(lines))
		}
		for j, v := range lines {
			if v != (j == i) {
				t.Fatalf("flag %d toggled line %d: %v", i, j, lines)
			}
		}
	}
}

func TestLayout_CheckLineTextsInOrder(t *testing.T) {
	blocks := Layout(sample(), pdfdoc.LayoutInput{Config: pdfdoc.DefaultRenderConfig()})
	i := 0
	for _, b := range blocks {
		if c, ok := b.(*pdfdoc.CheckLine); ok {
			if c.Text != CertificationTexts[i] {
				t.Fatalf("line %d = %q", i, c.Text)
			}
			i++
		}
	}
}

func TestLayout_NoImagesWithoutRefs(t *testing.T) {
	blocks := Layout(sample(), pdfdoc.LayoutInput{Files: noFiles{}, Config: pdfdoc.DefaultRenderConfig()})
	if got := pdfdoc.CountKind(blocks, pdfdoc.KindImage); got != 0 {
		t.Fatalf("expected 0 images, got %d", got)
	}
	if got := pdfdoc.CountKind(blocks, pdfdoc.KindBarcode); got != 1 {
		t.Fatalf("expected PDF417 code, got %d barcodes", got)
	}
}

func TestLayout_AnimalTableSkipsBlankRows(t *testing.T) {
	blocks := Layout(sample(), pdfdoc.LayoutInput{Config: pdfdoc.DefaultRenderConfig()})

	if !pdfdoc.ContainsText(blocks, "Espèce :") {
		t.Fatal("expected species row")
	}
	for _, absent := range []string{"Race :", "Sexe :", "Couleur :", "Pucé :", "Propriétaire :", "Identification :"} {
		if pdfdoc.ContainsText(blocks, absent) {
			t.Fatalf("%q should be absent", absent)
		}
	}
	if !pdfdoc.ContainsText(blocks, "Fait à Lyon, le 05/03/2024") {
		t.Fatal("expected date line")
	}
	if !pdfdoc.ContainsText(blocks, "Dr. Claire Martin") {
		t.Fatal("expected vet name")
	}
}
