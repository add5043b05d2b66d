package idcards

import (
	"strings"

	"vet-records/internal/pdfdoc"
)

// ReducedIDLen es la cantidad de caracteres del chip en la parte desprendible.
const ReducedIDLen = 8

// ReducedID devuelve los últimos 8 caracteres del chip (o el chip completo).
func ReducedID(chip string) string {
	return pdfdoc.Tail(chip, ReducedIDLen)
}

var (
	blueDark   = pdfdoc.Hex("#2F4858")
	blueLight  = pdfdoc.Hex("#F4F8FB")
	blueBorder = pdfdoc.Hex("#4A90E2")
	cardBorder = pdfdoc.Hex("#B0BEC5")
)

func DefaultPalette() pdfdoc.Palette {
	return pdfdoc.Palette{
		Primary:   blueDark,
		Secondary: blueBorder,
		Accent:    pdfdoc.Hex("#2E86DE"),
		Success:   pdfdoc.Hex("#1F3A5F"),
		Light:     blueLight,
	}
}

func styleSheet(p pdfdoc.Palette) *pdfdoc.StyleSheet {
	family := pdfdoc.DefaultStyle().Family
	return pdfdoc.NewStyleSheet(map[string]pdfdoc.Style{
		pdfdoc.StyleTitle:      {Family: family, Bold: true, Size: 12, Leading: 16, Color: p.Success, Align: pdfdoc.AlignCenter, SpaceAfter: 3.5},
		pdfdoc.StyleSection:    {Family: family, Bold: true, Size: 9, Color: pdfdoc.Black},
		pdfdoc.StyleSubsection: {Family: family, Italic: true, Size: 9, Color: pdfdoc.Grey, Align: pdfdoc.AlignCenter, SpaceAfter: 5.5},
		pdfdoc.StyleBody:       {Family: family, Size: 8.5, Leading: 12, Color: pdfdoc.Black},
		pdfdoc.StyleLabel:      {Family: family, Bold: true, Size: 8, Color: pdfdoc.Black},
		pdfdoc.StyleValue:      {Family: family, Size: 8, Color: pdfdoc.Black},
		pdfdoc.StyleFooter:     {Family: family, Size: 7, Color: pdfdoc.Grey, Align: pdfdoc.AlignCenter},
	})
}

// Page depende de la variante: 12mm para la parte alta, 20mm para la baja
// y 10mm para la carta completa.
func Page(c Card, cfg pdfdoc.RenderConfig, v Variant) pdfdoc.PageConfig {
	title := "Carte Identification - " + pdfdoc.OrDefault(c.Animal.Name, "Animal")
	switch v {
	case VariantUpper:
		return cfg.Page(title, pdfdoc.UniformMargins(12))
	case VariantLower:
		return cfg.Page(title, pdfdoc.UniformMargins(20))
	default:
		return cfg.Page(title, pdfdoc.UniformMargins(10))
	}
}

// Layout arma la variante pedida. La completa es un único flujo: parte alta,
// línea punteada y parte baja.
func Layout(c Card, v Variant, in pdfdoc.LayoutInput) []pdfdoc.Block {
	p := in.Config.PaletteOr(DefaultPalette())
	sheet := styleSheet(p)

	switch v {
	case VariantUpper:
		return upper(c, in, p, sheet)
	case VariantLower:
		return lower(c, in, p, sheet)
	default:
		return pdfdoc.Concat(
			upper(c, in, p, sheet),
			[]pdfdoc.Block{&pdfdoc.Rule{Thickness: 0.35, Color: pdfdoc.Black, Dashed: true, SpaceBefore: 5, SpaceAfter: 5}},
			lower(c, in, p, sheet),
		)
	}
}

func upper(c Card, in pdfdoc.LayoutInput, p pdfdoc.Palette, sheet *pdfdoc.StyleSheet) []pdfdoc.Block {
	white := sheet.Style(pdfdoc.StyleBody).WithoutSpacing().WithSize(9).WithColor(pdfdoc.White).WithAlign(pdfdoc.AlignCenter)
	header := &pdfdoc.Table{
		Widths: []float64{170},
		Rows: []pdfdoc.Row{{
			Cells: []pdfdoc.Cell{{Style: white, Text: pdfdoc.Text{
				pdfdoc.Line{pdfdoc.B("SOCIÉTÉ D'IDENTIFICATION DES CARNIVORES DOMESTIQUES")},
				pdfdoc.Line{pdfdoc.R("112-114 Avenue Gabriel Péri - 94246 L'Haÿ-les-Roses Cedex")},
				pdfdoc.Line{pdfdoc.B("0 810 778 778")},
			}}},
			MinHeight: 22,
			Fill:      p.Primary.Ptr(),
		}},
		Style: pdfdoc.TableStyle{Padding: 2, VAlign: pdfdoc.VAlignMiddle, Align: pdfdoc.AlignCenter},
	}

	created := c.CreatedAt
	if created.IsZero() {
		created = in.Config.Clock()
	}
	body := sheet.Style(pdfdoc.StyleBody)

	intro := pdfdoc.RichP(body,
		pdfdoc.Line{pdfdoc.R("Madame, Monsieur,")},
		pdfdoc.Line{},
		pdfdoc.Line{pdfdoc.R("Nous avons le plaisir de vous adresser la carte d'identification de votre animal " +
			"suite à l'enregistrement de son identification et de vos coordonnées dans le " +
			"Fichier National des Carnivores Domestiques (chiens, chats, furets) :")},
		pdfdoc.Line{pdfdoc.R("- La partie basse peut être détachée et conservée avec vous.")},
		pdfdoc.Line{pdfdoc.R("- La partie haute est indispensable pour effectuer toutes les modifications souhaitées dans notre base de données I-CaD.")},
	)

	login := &pdfdoc.Table{
		Widths: []float64{170},
		Rows: []pdfdoc.Row{{Cells: []pdfdoc.Cell{{
			Style: body.WithoutSpacing().WithSize(9).WithColor(pdfdoc.Black),
			Text: pdfdoc.Text{
				pdfdoc.Line{pdfdoc.B("IDENTIFIANT : "), pdfdoc.R(c.Identification.ChipID)},
				pdfdoc.Line{pdfdoc.B("MOT DE PASSE : "), pdfdoc.R(c.Identification.Password)},
			},
		}}, Fill: p.Light.Ptr()}},
		Style: pdfdoc.TableStyle{
			Box:        &pdfdoc.Border{Width: 0.2, Color: pdfdoc.LightGrey},
			LeftAccent: &pdfdoc.Border{Width: 1.4, Color: p.Secondary},
			Padding:    3.5,
			Align:      pdfdoc.AlignCenter,
		},
	}

	a := c.Animal
	vet := pdfdoc.JoinNonEmpty(" ", c.Vet.Name, c.Vet.Contact)

	return pdfdoc.Compact(
		header,
		pdfdoc.Space(3),
		pdfdoc.P(created.Format("02/01/2006 15:04:05"), body.WithoutSpacing().WithSize(8)),
		pdfdoc.Space(3),
		intro,
		pdfdoc.Space(4),
		login,
		pdfdoc.Space(6),
		sectionTable("IDENTIFICATION DU PROPRIÉTAIRE", [][2]string{
			{"Nom et prénom", c.Owner.Name},
			{"Adresse", c.Owner.Address},
			{"Téléphone", c.Owner.Phone1},
			{"Téléphone 2", c.Owner.Phone2},
			{"Email", c.Owner.Email},
			{"Vétérinaire traitant", vet},
		}, p, sheet),
		pdfdoc.Space(4),
		sectionTable("IDENTIFICATION DE L'ANIMAL", [][2]string{
			{"N°", c.Identification.ChipID},
			{"Date", pdfdoc.FormatDate(c.Identification.Date)},
			{"Emplacement", c.Identification.Location},
		}, p, sheet),
		pdfdoc.Space(4),
		sectionTable("DESCRIPTION DU "+speciesLabel(a.Species), [][2]string{
			{"Nom", a.Name},
			{"Date de naissance", pdfdoc.FormatDate(a.BirthDate)},
			{"Race", a.Breed},
			{"Robe", a.Coat},
			{"Poil", a.HairType},
			{"Sexe", sexLabel(a.Sex)},
			{"Stérilisé", sterilizedLabel(a.Sterilized)},
			{"Pays d'origine", a.OriginCountry},
		}, p, sheet),
		pdfdoc.Space(8),
		pdfdoc.P("Document généré automatiquement - Veterinary Pro", sheet.Style(pdfdoc.StyleFooter)),
	)
}

// sectionTable omite las filas vacías; sin filas devuelve nil.
func sectionTable(title string, fields [][2]string, p pdfdoc.Palette, sheet *pdfdoc.StyleSheet) pdfdoc.Block {
	label := sheet.Style(pdfdoc.StyleLabel)
	value := sheet.Style(pdfdoc.StyleValue)

	rows := []pdfdoc.Row{{Cells: []pdfdoc.Cell{
		pdfdoc.TextCell(title, sheet.Style(pdfdoc.StyleSection)),
		pdfdoc.TextCell("", value),
	}}}
	for _, f := range fields {
		if strings.TrimSpace(f[1]) == "" {
			continue
		}
		rows = append(rows, pdfdoc.Row{
			Cells: []pdfdoc.Cell{pdfdoc.TextCell(f[0], label), pdfdoc.TextCell(f[1], value)},
			Fill:  p.Light.Ptr(),
		})
	}
	if len(rows) == 1 {
		return nil
	}
	return &pdfdoc.Table{
		Widths: []float64{60, 110},
		Rows:   rows,
		Style: pdfdoc.TableStyle{
			Grid:       &pdfdoc.Border{Width: 0.1, Color: pdfdoc.LightGrey},
			LeftAccent: &pdfdoc.Border{Width: 1.4, Color: p.Secondary},
			Padding:    2,
			HeaderRows: 1,
			HeaderFill: pdfdoc.WhiteSmoke.Ptr(),
			Align:      pdfdoc.AlignCenter,
		},
	}
}

func lower(c Card, in pdfdoc.LayoutInput, p pdfdoc.Palette, sheet *pdfdoc.StyleSheet) []pdfdoc.Block {
	chip := c.Identification.ChipID
	a := c.Animal

	info := pdfdoc.Text{{pdfdoc.B("NOM DE L'ANIMAL : "), {Text: strings.ToUpper(a.Name), Bold: true, Size: 14}}, {}}
	add := func(label, value string) {
		if value != "" {
			info = append(info, pdfdoc.Line{pdfdoc.B(label + " : "), pdfdoc.R(value)})
		}
	}
	add("IDENTIFICATION", chip)
	add("NOM DU PROPRIÉTAIRE", c.Owner.Name)
	add("NÉ(E) LE", pdfdoc.FormatDate(a.BirthDate))
	add("RACE", strings.ToUpper(a.Breed))
	add("COULEUR", strings.ToUpper(a.Coat))

	infoStyle := sheet.Style(pdfdoc.StyleBody).WithoutSpacing().WithSize(9.5).WithColor(pdfdoc.Hex("#263238")).WithAlign(pdfdoc.AlignRight)
	infoStyle.Leading = 15
	numStyle := sheet.Style(pdfdoc.StyleBody).WithoutSpacing().WithSize(20).WithBold(true).WithColor(p.Accent).WithAlign(pdfdoc.AlignCenter)

	card := &pdfdoc.Table{
		Widths: []float64{50, 110},
		Rows: []pdfdoc.Row{{
			Cells: []pdfdoc.Cell{
				{Text: pdfdoc.Plain(ReducedID(chip)), Style: numStyle, Fill: pdfdoc.Hex("#EEF6FD").Ptr(), VAlign: pdfdoc.VAlignMiddle},
				{Text: info, Style: infoStyle},
			},
			MinHeight: 40,
		}},
		Style: pdfdoc.TableStyle{
			Box:     &pdfdoc.Border{Width: 0.4, Color: cardBorder, Radius: 2},
			Padding: 5,
			VAlign:  pdfdoc.VAlignMiddle,
			Align:   pdfdoc.AlignCenter,
		},
	}

	created := c.CreatedAt
	if created.IsZero() {
		created = in.Config.Clock()
	}

	var code pdfdoc.Block
	if isPrintableASCII(chip) {
		code = &pdfdoc.Barcode{Symbology: pdfdoc.SymbologyCode128, Value: chip, Width: 70, Height: 12, Align: pdfdoc.AlignCenter}
	}

	return pdfdoc.Compact(
		pdfdoc.RichP(sheet.Style(pdfdoc.StyleTitle),
			pdfdoc.Line{pdfdoc.R("PARTIE BASSE DE LA CARTE D'IDENTIFICATION À DÉTACHER")},
			pdfdoc.Line{pdfdoc.R("ET À CONSERVER AVEC VOUS")},
		),
		pdfdoc.P("[ne sert en aucun cas à effectuer de modifications dans notre fichier ou de changement de détenteur]",
			sheet.Style(pdfdoc.StyleSubsection)),
		&pdfdoc.Rule{Thickness: 0.35, Color: cardBorder, Dashed: true},
		pdfdoc.Space(10),
		card,
		pdfdoc.Space(6),
		code,
		pdfdoc.Space(6),
		pdfdoc.P("Carte générée le "+pdfdoc.FormatDay(created)+" - Document informatif", sheet.Style(pdfdoc.StyleFooter).WithSize(8)),
	)
}

func isPrintableASCII(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 0x20 || r > 0x7E {
			return false
		}
	}
	return true
}

func speciesLabel(s string) string {
	switch strings.ToUpper(s) {
	case "CHIEN", "AUTRE":
		return strings.ToUpper(s)
	default:
		return "CHAT"
	}
}

func sexLabel(s string) string {
	switch strings.ToUpper(s) {
	case "":
		return ""
	case "MALE", "MÂLE":
		return "MÂLE"
	default:
		return "FEMELLE"
	}
}

func sterilizedLabel(s string) string {
	switch strings.ToUpper(s) {
	case "":
		return ""
	case "OUI":
		return "OUI"
	default:
		return "NON"
	}
}
