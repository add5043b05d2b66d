package booklets

import (
	"fmt"
	"strings"

	"vet-records/internal/pdfdoc"
)

const consultationPages = 3
const consultationRows = 15

var rowWidths = [2]float64{50, 110}

func DefaultPalette() pdfdoc.Palette {
	return pdfdoc.Palette{
		Primary:   pdfdoc.Hex("#2C3E50"),
		Secondary: pdfdoc.Hex("#3498DB"),
		Accent:    pdfdoc.Hex("#E74C3C"),
		Success:   pdfdoc.Hex("#27AE60"),
		Light:     pdfdoc.Hex("#F8F9FA"),
	}
}

func styleSheet(p pdfdoc.Palette) *pdfdoc.StyleSheet {
	base := pdfdoc.DefaultStyle()
	return pdfdoc.NewStyleSheet(map[string]pdfdoc.Style{
		pdfdoc.StyleTitle: {
			Family: base.Family, Bold: true, Size: 24, Color: p.Primary,
			Align: pdfdoc.AlignCenter, SpaceAfter: 10,
		},
		pdfdoc.StyleSection: {
			Family: base.Family, Bold: true, Size: 18, Color: p.Primary,
			Fill:    pdfdoc.Hex("#E8F4F8").Ptr(),
			Border:  &pdfdoc.Border{Width: 0.35, Color: p.Secondary, Radius: 1.5},
			Padding: 2.8, SpaceBefore: 7, SpaceAfter: 5,
		},
		pdfdoc.StyleSubsection: {
			Family: base.Family, Bold: true, Size: 14, Color: p.Secondary,
			SpaceBefore: 5, SpaceAfter: 3,
		},
		pdfdoc.StyleBody: {
			Family: base.Family, Size: 11, Leading: 14, Color: pdfdoc.Black, SpaceAfter: 2,
		},
		pdfdoc.StyleLabel: {
			Family: base.Family, Bold: true, Size: 10, Color: p.Primary,
		},
		pdfdoc.StyleValue: {
			Family: base.Family, Size: 11, Color: pdfdoc.Black,
			Fill:   p.Light.Ptr(),
			Border: &pdfdoc.Border{Width: 0.2, Color: pdfdoc.Hex("#EEEEEE")},
		},
		pdfdoc.StyleTableHeader: {
			Family: base.Family, Bold: true, Size: 10, Color: pdfdoc.White,
		},
		pdfdoc.StyleFooter: {
			Family: base.Family, Italic: true, Size: 10, Color: pdfdoc.Grey,
			Align: pdfdoc.AlignCenter, SpaceBefore: 15,
		},
	})
}

// Page devuelve la geometría del carnet: A4 con márgenes de 20mm.
func Page(b Booklet, cfg pdfdoc.RenderConfig) pdfdoc.PageConfig {
	return cfg.Page("Carnet de santé - "+pdfdoc.OrDefault(b.Animal.Name, "Animal"), pdfdoc.UniformMargins(20))
}

// Layout arma el carnet completo: portada, identidad, salud, veterinario y
// las páginas de consultas en blanco.
func Layout(b Booklet, in pdfdoc.LayoutInput) []pdfdoc.Block {
	p := in.Config.PaletteOr(DefaultPalette())
	sheet := styleSheet(p)

	return pdfdoc.Concat(
		cover(b, in, p, sheet),
		[]pdfdoc.Block{&pdfdoc.PageBreak{}},
		identityPage(b, sheet),
		[]pdfdoc.Block{&pdfdoc.PageBreak{}},
		healthPage(b, p, sheet),
		[]pdfdoc.Block{&pdfdoc.PageBreak{}},
		vetPage(b, in, p, sheet),
		consultationLog(p, sheet),
	)
}

func cover(b Booklet, in pdfdoc.LayoutInput, p pdfdoc.Palette, sheet *pdfdoc.StyleSheet) []pdfdoc.Block {
	header := &pdfdoc.Table{
		Widths: []float64{100, 60},
		Rows: []pdfdoc.Row{{Cells: []pdfdoc.Cell{
			pdfdoc.TextCell("CLINIQUE VÉTÉRINAIRE", sheet.Style(pdfdoc.StyleLabel).WithSize(12)),
			pdfdoc.TextCell("CARNET DE SANTÉ", sheet.Style(pdfdoc.StyleLabel).WithSize(12).WithColor(p.Secondary).WithAlign(pdfdoc.AlignRight)),
		}}},
		Style: pdfdoc.TableStyle{
			Padding:    2,
			HeaderRule: &pdfdoc.Border{Width: 0.7, Color: p.Secondary},
			VAlign:     pdfdoc.VAlignMiddle,
		},
	}

	name := sheet.Style(pdfdoc.StyleTitle).WithSize(28).WithColor(p.Accent)
	owner := sheet.Style(pdfdoc.StyleBody).WithAlign(pdfdoc.AlignCenter).WithSize(12)

	blocks := []pdfdoc.Block{
		header,
		pdfdoc.Space(15),
		pdfdoc.P("CARNET DE SANTÉ ANIMAL", sheet.Style(pdfdoc.StyleTitle)),
		pdfdoc.P(strings.ToUpper(pdfdoc.OrDefault(b.Animal.Name, "Animal")), name),
		pdfdoc.Space(5),
		pdfdoc.WithFrame(
			pdfdoc.ImageBlock(in.Files, b.PhotoRef, 70, 70, true),
			pdfdoc.Border{Width: 0.7, Color: p.Secondary, Radius: 2},
		),
		pdfdoc.Space(8),
		keyFacts(b, p, sheet),
		pdfdoc.Space(8),
	}
	if b.Owner.Name != "" {
		blocks = append(blocks, pdfdoc.RichP(owner, pdfdoc.Line{pdfdoc.B("Propriétaire : "), pdfdoc.R(b.Owner.Name)}))
	}
	created := b.CreatedAt
	if created.IsZero() {
		created = in.Config.Clock()
	}
	footer := fmt.Sprintf("Numéro de carnet : %s • Créé le %s",
		pdfdoc.OrDefault(pdfdoc.Head(pdfdoc.OrDefault(in.RecordID, b.ID), 8), "-"),
		pdfdoc.FormatDay(created))
	return append(blocks, pdfdoc.P(footer, sheet.Style(pdfdoc.StyleFooter)))
}

// keyFacts es la tabla de la portada; cada dato ausente se muestra como "-".
func keyFacts(b Booklet, p pdfdoc.Palette, sheet *pdfdoc.StyleSheet) pdfdoc.Block {
	label := sheet.Style(pdfdoc.StyleLabel).WithColor(pdfdoc.White)
	value := sheet.Style(pdfdoc.StyleBody).WithoutSpacing()
	facts := [][2]string{
		{"Espèce", b.Animal.Species},
		{"Race", b.Animal.Breed},
		{"Âge", b.Animal.Age},
		{"Identification", b.Animal.Identification},
	}
	rows := make([]pdfdoc.Row, 0, len(facts))
	for _, f := range facts {
		rows = append(rows, pdfdoc.Row{Cells: []pdfdoc.Cell{
			pdfdoc.TextCell(f[0], label),
			pdfdoc.TextCell(pdfdoc.OrDefault(f[1], "-"), value),
		}})
	}
	return &pdfdoc.Table{
		Widths: []float64{60, 60},
		Rows:   rows,
		Style: pdfdoc.TableStyle{
			Grid:            &pdfdoc.Border{Width: 0.2, Color: pdfdoc.LightGrey},
			Padding:         2.5,
			FirstColumnFill: p.Secondary.Ptr(),
			AlternateFill:   p.Light.Ptr(),
			VAlign:          pdfdoc.VAlignMiddle,
			Align:           pdfdoc.AlignCenter,
		},
	}
}

func identityPage(b Booklet, sheet *pdfdoc.StyleSheet) []pdfdoc.Block {
	weight := ""
	if b.Animal.Weight != "" {
		weight = b.Animal.Weight + " kg"
	}
	identity := pdfdoc.Section("IDENTIFICATION DE L'ANIMAL", pdfdoc.Stack(3,
		pdfdoc.LabeledRow("Nom", b.Animal.Name, rowWidths, sheet),
		pdfdoc.LabeledRow("Espèce", b.Animal.Species, rowWidths, sheet),
		pdfdoc.LabeledRow("Race", b.Animal.Breed, rowWidths, sheet),
		pdfdoc.LabeledRow("Âge", b.Animal.Age, rowWidths, sheet),
		pdfdoc.LabeledRow("Sexe", b.Animal.Sex, rowWidths, sheet),
		pdfdoc.LabeledRow("Stérilisé(e)", b.Animal.Sterilized, rowWidths, sheet),
		pdfdoc.LabeledRow("Poids", weight, rowWidths, sheet),
		pdfdoc.LabeledRow("Numéro d'identification", b.Animal.Identification, rowWidths, sheet),
	), false, sheet)

	o := b.Owner
	if o.Name == "" && o.Phone == "" && o.Email == "" && o.Address == "" && o.PostalCode == "" && o.City == "" {
		return identity
	}
	address := pdfdoc.JoinNonEmpty(", ", o.Address, pdfdoc.JoinNonEmpty(" ", o.PostalCode, o.City))
	owner := pdfdoc.Section("PROPRIÉTAIRE", pdfdoc.Stack(3,
		pdfdoc.LabeledRow("Nom", o.Name, rowWidths, sheet),
		pdfdoc.LabeledRow("Téléphone", o.Phone, rowWidths, sheet),
		pdfdoc.LabeledRow("Email", o.Email, rowWidths, sheet),
		pdfdoc.LabeledRow("Adresse", address, rowWidths, sheet),
	), false, sheet)
	return pdfdoc.Concat(identity, owner)
}

func healthPage(b Booklet, p pdfdoc.Palette, sheet *pdfdoc.StyleSheet) []pdfdoc.Block {
	var out []pdfdoc.Block

	h := b.Health
	if h.Allergies != "" || h.History != "" || h.Treatment != "" {
		var body []pdfdoc.Block
		notes := []struct{ title, text string }{
			{"Allergies connues", h.Allergies},
			{"Antécédents médicaux", h.History},
			{"Traitement en cours", h.Treatment},
		}
		for _, n := range notes {
			if n.text == "" {
				continue
			}
			body = append(body,
				pdfdoc.P(n.title, sheet.Style(pdfdoc.StyleSubsection)),
				pdfdoc.P(n.text, sheet.Style(pdfdoc.StyleBody)),
			)
		}
		out = append(out, pdfdoc.Section("INFORMATIONS DE SANTÉ", body, false, sheet)...)
	}

	if t := vaccinationTable(b.Vaccinations, p, sheet); t != nil {
		out = append(out, pdfdoc.Section("VACCINATIONS", []pdfdoc.Block{t}, false, sheet)...)
	}
	if t := parasiteTable(b.ParasiteTreatments, p, sheet); t != nil {
		out = append(out, pdfdoc.Section("TRAITEMENTS ANTIPARASITAIRES", []pdfdoc.Block{t}, false, sheet)...)
	}
	return out
}

func vaccinationTable(vs []Vaccination, p pdfdoc.Palette, sheet *pdfdoc.StyleSheet) pdfdoc.Block {
	rows := make([][]string, 0, len(vs))
	for _, v := range vs {
		rows = append(rows, []string{v.Type, pdfdoc.FormatDate(v.Date), pdfdoc.FormatDate(v.BoosterDate), v.LotNumber})
	}
	return pdfdoc.RecordTable(pdfdoc.TableSpec{
		Headers:    []string{"Vaccin", "Date", "Rappel", "N° Lot"},
		Rows:       rows,
		Widths:     []float64{50, 30, 30, 50},
		HeaderFill: p.Secondary,
		Aligns:     []pdfdoc.Align{pdfdoc.AlignLeft, pdfdoc.AlignCenter, pdfdoc.AlignCenter, pdfdoc.AlignLeft},
		Alternate:  p.Light.Ptr(),
		Sheet:      sheet,
	})
}

func parasiteTable(ps []ParasiteTreatment, p pdfdoc.Palette, sheet *pdfdoc.StyleSheet) pdfdoc.Block {
	rows := make([][]string, 0, len(ps))
	for _, t := range ps {
		rows = append(rows, []string{t.Type, t.Product, pdfdoc.FormatDate(t.Date), pdfdoc.FormatDate(t.NextDate)})
	}
	return pdfdoc.RecordTable(pdfdoc.TableSpec{
		Headers:    []string{"Type", "Produit", "Date", "Prochaine date"},
		Rows:       rows,
		Widths:     []float64{40, 50, 30, 40},
		HeaderFill: p.Success,
		Aligns:     []pdfdoc.Align{pdfdoc.AlignLeft, pdfdoc.AlignLeft, pdfdoc.AlignCenter, pdfdoc.AlignCenter},
		Alternate:  p.Light.Ptr(),
		Sheet:      sheet,
	})
}

func vetPage(b Booklet, in pdfdoc.LayoutInput, p pdfdoc.Palette, sheet *pdfdoc.StyleSheet) []pdfdoc.Block {
	var out []pdfdoc.Block
	c := b.Cabinet
	if c.Name != "" {
		out = pdfdoc.Section("CABINET VÉTÉRINAIRE", pdfdoc.Stack(3,
			pdfdoc.LabeledRow("Cabinet", c.Name, rowWidths, sheet),
			pdfdoc.LabeledRow("Téléphone", c.Phone, rowWidths, sheet),
			pdfdoc.LabeledRow("Adresse", c.Address, rowWidths, sheet),
			pdfdoc.LabeledRow("Email", c.Email, rowWidths, sheet),
		), false, sheet)
	}

	stamp := pdfdoc.ImageBlock(in.Files, b.StampRef, 40, 40, false)
	signature := pdfdoc.ImageBlock(in.Files, b.SignatureRef, 60, 25, false)
	if stamp != nil || signature != nil {
		out = append(out, pdfdoc.Space(5))
		out = append(out, pdfdoc.Compact(
			pdfdoc.Aligned(signature, pdfdoc.AlignRight),
			pdfdoc.Aligned(stamp, pdfdoc.AlignRight),
		)...)
	}

	label := sheet.Style(pdfdoc.StyleLabel).WithColor(pdfdoc.White).WithSize(12)
	body := sheet.Style(pdfdoc.StyleBody).WithoutSpacing().WithColor(pdfdoc.White)
	urgent := &pdfdoc.Table{
		Widths: []float64{160},
		Rows: []pdfdoc.Row{
			{Cells: []pdfdoc.Cell{pdfdoc.TextCell("Contact d'urgence", label)}},
			{Cells: []pdfdoc.Cell{pdfdoc.TextCell(pdfdoc.OrDefault(b.Owner.Name, "Non renseigné"), body)}},
			{Cells: []pdfdoc.Cell{pdfdoc.TextCell("Tél : "+pdfdoc.OrDefault(b.Owner.Phone, "Non spécifié"), body)}},
			{Cells: []pdfdoc.Cell{pdfdoc.TextCell("Vétérinaire traitant : "+pdfdoc.OrDefault(c.Name, "Non renseigné"), body)}},
		},
		Style: pdfdoc.TableStyle{
			Box:        &pdfdoc.Border{Width: 0.5, Color: p.Accent, Radius: 2},
			Padding:    2.5,
			HeaderFill: p.Accent.Ptr(),
			HeaderRows: 1,
		},
	}
	// el cuerpo lleva el mismo fondo que el encabezado
	for i := 1; i < len(urgent.Rows); i++ {
		urgent.Rows[i].Fill = p.Accent.Ptr()
	}
	return append(out, pdfdoc.Space(10), urgent)
}

// consultationLog son las páginas rayadas que el veterinario completa a mano.
func consultationLog(p pdfdoc.Palette, sheet *pdfdoc.StyleSheet) []pdfdoc.Block {
	blank := make([][]string, consultationRows)
	for i := range blank {
		blank[i] = make([]string, 6)
	}
	note := sheet.Style(pdfdoc.StyleBody).WithItalic(true).WithSize(9).WithColor(pdfdoc.Grey).WithAlign(pdfdoc.AlignRight)

	var out []pdfdoc.Block
	for page := 1; page <= consultationPages; page++ {
		out = append(out, &pdfdoc.PageBreak{})
		out = append(out, pdfdoc.Section(fmt.Sprintf("JOURNAL DES CONSULTATIONS - Page %d", page), []pdfdoc.Block{
			pdfdoc.RecordTable(pdfdoc.TableSpec{
				Headers:      []string{"Date", "Motif", "Traitement", "Observations", "Vétérinaire", "Signature"},
				Rows:         blank,
				Widths:       []float64{20, 35, 30, 35, 25, 25},
				HeaderFill:   p.Primary,
				MinRowHeight: 8,
				Sheet:        sheet,
			}),
			pdfdoc.Space(4),
			pdfdoc.P("À compléter par le vétérinaire lors de chaque consultation. Conserver ce carnet avec vos documents importants.", note),
		}, false, sheet)...)
	}
	return out
}
