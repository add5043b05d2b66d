package attestations

import (
	"fmt"

	"vet-records/internal/pdfdoc"
)

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
	family := pdfdoc.DefaultStyle().Family
	return pdfdoc.NewStyleSheet(map[string]pdfdoc.Style{
		pdfdoc.StyleTitle:      {Family: family, Bold: true, Size: 18, Color: p.Primary, Align: pdfdoc.AlignCenter, SpaceAfter: 6},
		pdfdoc.StyleSection:    {Family: family, Bold: true, Size: 14, Color: p.Primary, Align: pdfdoc.AlignCenter, SpaceBefore: 5, SpaceAfter: 3.5},
		pdfdoc.StyleSubsection: {Family: family, Bold: true, Size: 13, Color: p.Primary, SpaceAfter: 4},
		pdfdoc.StyleBody:       {Family: family, Size: 10, Leading: 15, Color: pdfdoc.Black, Align: pdfdoc.AlignJustify},
		pdfdoc.StyleLabel:      {Family: family, Bold: true, Size: 10, Color: p.Primary},
		pdfdoc.StyleValue: {
			Family: family, Size: 10, Color: pdfdoc.Black,
			Fill:   p.Light.Ptr(),
			Border: &pdfdoc.Border{Width: 0.35, Color: pdfdoc.Hex("#EEEEEE"), Radius: 1},
		},
		pdfdoc.StyleTableHeader: {Family: family, Bold: true, Size: 10, Color: pdfdoc.White},
		pdfdoc.StyleFooter:      {Family: family, Italic: true, Size: 6, Color: pdfdoc.Grey, Align: pdfdoc.AlignCenter},
	})
}

// Page: una página A4 con márgenes de 10mm.
func Page(a Attestation, cfg pdfdoc.RenderConfig) pdfdoc.PageConfig {
	return cfg.Page("Attestation Vétérinaire - "+pdfdoc.OrDefault(a.Animal.Name, "Animal"), pdfdoc.UniformMargins(10))
}

func Layout(a Attestation, in pdfdoc.LayoutInput) []pdfdoc.Block {
	p := in.Config.PaletteOr(DefaultPalette())
	sheet := styleSheet(p)
	body := sheet.Style(pdfdoc.StyleBody)

	blocks := []pdfdoc.Block{
		cabinetHeader(a.Vet, p, sheet),
		pdfdoc.Space(5),
		&pdfdoc.Rule{Thickness: 0.35, Color: p.Secondary, SpaceBefore: 1.5, SpaceAfter: 1.5},
		pdfdoc.Space(3),
		pdfdoc.P("ATTESTATION VÉTÉRINAIRE", sheet.Style(pdfdoc.StyleTitle)),
		pdfdoc.RichP(body, pdfdoc.Line{
			pdfdoc.R("Je soussigné(e), "),
			pdfdoc.B("Dr. " + pdfdoc.OrDefault(a.Vet.FullName, "[Nom et prénom]")),
			pdfdoc.R(", vétérinaire diplômé(e) et dûment inscrit(e) à l'Ordre National des Vétérinaires sous le numéro "),
			pdfdoc.B(pdfdoc.OrDefault(a.Vet.Registration, "[Numéro d'inscription]")),
			pdfdoc.R(", certifie avoir procédé ce jour à un examen clinique complet de l'animal dont les caractéristiques sont décrites ci-après :"),
		}),
		pdfdoc.Space(8),
		animalTable(a, p, sheet),
		pdfdoc.Space(5),
		pdfdoc.P("RÉSULTATS DE L'EXAMEN CLINIQUE :", sheet.Style(pdfdoc.StyleSubsection)),
	}

	for i, checked := range a.Certifications.Flags() {
		blocks = append(blocks, &pdfdoc.CheckLine{
			Checked:        checked,
			Text:           CertificationTexts[i],
			Style:          body.WithAlign(pdfdoc.AlignLeft),
			CheckedColor:   p.Success,
			UncheckedColor: pdfdoc.Grey,
		}, pdfdoc.Space(1.5))
	}

	created := a.CreatedAt
	if created.IsZero() {
		created = in.Config.Clock()
	}
	date := pdfdoc.FormatDate(a.Date)
	if date == "" {
		date = pdfdoc.FormatDay(created)
	}
	plain := body.WithoutSpacing().WithAlign(pdfdoc.AlignLeft)

	blocks = append(blocks,
		pdfdoc.Space(7),
		pdfdoc.P("La présente attestation est établie pour servir et valoir ce que de droit.",
			plain.WithItalic(true).WithAlign(pdfdoc.AlignCenter)),
		pdfdoc.Space(3),
		&pdfdoc.Table{
			Widths: []float64{95, 95},
			Rows: []pdfdoc.Row{{Cells: []pdfdoc.Cell{
				pdfdoc.TextCell(fmt.Sprintf("Fait à %s, le %s", pdfdoc.OrDefault(a.City, "[Ville]"), date), plain.WithBold(true)),
				pdfdoc.TextCell("Signature du vétérinaire", plain.WithAlign(pdfdoc.AlignRight)),
			}}},
			Style: pdfdoc.TableStyle{Padding: 3, VAlign: pdfdoc.VAlignBottom},
		},
		pdfdoc.Aligned(pdfdoc.ImageBlock(in.Files, a.SignatureRef, 60, 25, false), pdfdoc.AlignRight),
		pdfdoc.Aligned(pdfdoc.ImageBlock(in.Files, a.StampRef, 30, 30, false), pdfdoc.AlignCenter),
		pdfdoc.Space(7),
		pdfdoc.P(fmt.Sprintf("N° d'attestation: %s • Document certifié conforme • Établi le %s • ID: %s",
			pdfdoc.OrDefault(a.Number, "NON-001"),
			pdfdoc.FormatTimestamp(created),
			pdfdoc.Head(pdfdoc.OrDefault(in.RecordID, a.ID), 8),
		), sheet.Style(pdfdoc.StyleFooter)),
		pdfdoc.Space(2),
		&pdfdoc.Barcode{Symbology: pdfdoc.SymbologyPDF417, Value: pdfdoc.OrDefault(a.Number, "NON-001"), Width: 60, Height: 12, Align: pdfdoc.AlignCenter},
	)
	return pdfdoc.Compact(blocks...)
}

func cabinetHeader(v Vet, p pdfdoc.Palette, sheet *pdfdoc.StyleSheet) pdfdoc.Block {
	text := pdfdoc.Text{pdfdoc.Line{pdfdoc.B("CABINET VÉTÉRINAIRE")}}
	var name, address, phone, email string
	if v.FullName != "" {
		name = "Dr. " + v.FullName
	}
	if v.Address != "" {
		address = "Adresse : " + v.Address
	}
	if v.Phone != "" {
		phone = "Téléphone: " + v.Phone
	}
	if v.Email != "" {
		email = "Email: " + v.Email
	}
	if l := pdfdoc.JoinNonEmpty(" • ", name, address); l != "" {
		text = append(text, pdfdoc.Line{pdfdoc.R(l)})
	}
	if l := pdfdoc.JoinNonEmpty(" • ", phone, email); l != "" {
		text = append(text, pdfdoc.Line{pdfdoc.R(l)})
	}

	st := sheet.Style(pdfdoc.StyleBody).WithoutSpacing().WithColor(p.Primary).WithAlign(pdfdoc.AlignCenter)
	st.Leading = 0
	return &pdfdoc.Table{
		Widths: []float64{160},
		Rows: []pdfdoc.Row{{
			Cells: []pdfdoc.Cell{{Text: text, Style: st}},
			Fill:  pdfdoc.Hex("#F0F8FF").Ptr(),
		}},
		Style: pdfdoc.TableStyle{
			Box:     &pdfdoc.Border{Width: 0.35, Color: p.Secondary, Radius: 2},
			Padding: 3,
			Align:   pdfdoc.AlignCenter,
		},
	}
}

// animalTable solo incluye las filas con valor; sin filas no hay tabla.
func animalTable(a Attestation, p pdfdoc.Palette, sheet *pdfdoc.StyleSheet) pdfdoc.Block {
	fields := [][2]string{
		{"Nom de l'animal :", a.Animal.Name},
		{"Espèce :", a.Animal.Species},
		{"Race :", a.Animal.Breed},
		{"Sexe :", a.Animal.Sex},
		{"Couleur :", a.Animal.Color},
		{"Pucé :", a.Animal.Microchipped},
		{"Propriétaire :", a.OwnerName},
		{"Identification :", a.Animal.Identification},
	}
	label := sheet.Style(pdfdoc.StyleLabel).WithoutSpacing()
	value := sheet.Style(pdfdoc.StyleBody).WithoutSpacing().WithAlign(pdfdoc.AlignLeft)

	var rows []pdfdoc.Row
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		rows = append(rows, pdfdoc.Row{Cells: []pdfdoc.Cell{
			pdfdoc.TextCell(f[0], label),
			pdfdoc.TextCell(f[1], value),
		}})
	}
	if len(rows) == 0 {
		return nil
	}
	return &pdfdoc.Table{
		Widths: []float64{50, 100},
		Rows:   rows,
		Style: pdfdoc.TableStyle{
			Grid:            &pdfdoc.Border{Width: 0.2, Color: pdfdoc.Hex("#DDDDDD")},
			Padding:         2.8,
			FirstColumnFill: pdfdoc.Hex("#E8F4F8").Ptr(),
			AlternateFill:   p.Light.Ptr(),
			VAlign:          pdfdoc.VAlignTop,
			Align:           pdfdoc.AlignCenter,
		},
	}
}
