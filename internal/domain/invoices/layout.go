package invoices

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"vet-records/internal/pdfdoc"
)

func DefaultPalette() pdfdoc.Palette {
	return pdfdoc.Palette{
		Primary:   pdfdoc.Hex("#198754"),
		Secondary: pdfdoc.Hex("#2C3E50"),
		Accent:    pdfdoc.Hex("#FF6B6B"),
		Success:   pdfdoc.Hex("#E8F5E9"),
		Light:     pdfdoc.Hex("#F8F9FA"),
	}
}

func styleSheet(p pdfdoc.Palette) *pdfdoc.StyleSheet {
	family := pdfdoc.DefaultStyle().Family
	return pdfdoc.NewStyleSheet(map[string]pdfdoc.Style{
		pdfdoc.StyleTitle:       {Family: family, Bold: true, Size: 24, Color: p.Primary, Align: pdfdoc.AlignCenter, SpaceAfter: 2},
		pdfdoc.StyleSection:     {Family: family, Bold: true, Size: 11, Color: pdfdoc.Black, SpaceAfter: 3.5},
		pdfdoc.StyleSubsection:  {Family: family, Bold: true, Size: 16, Color: p.Secondary, Align: pdfdoc.AlignCenter, SpaceAfter: 7},
		pdfdoc.StyleBody:        {Family: family, Size: 10, Color: pdfdoc.Black},
		pdfdoc.StyleLabel:       {Family: family, Bold: true, Size: 9, Color: p.Secondary},
		pdfdoc.StyleValue:       {Family: family, Size: 10, Color: pdfdoc.Black},
		pdfdoc.StyleTableHeader: {Family: family, Bold: true, Size: 9, Color: pdfdoc.White},
		pdfdoc.StyleFooter:      {Family: family, Size: 8, Color: pdfdoc.Grey, Align: pdfdoc.AlignCenter},
	})
}

// Page: A4, márgenes de 15mm.
func Page(inv Invoice, cfg pdfdoc.RenderConfig) pdfdoc.PageConfig {
	return cfg.Page("Facture "+inv.Number, pdfdoc.UniformMargins(15))
}

// Layout arma la factura en un único flujo: encabezado, cliente/entrega,
// prestaciones, totales, condiciones, pie y código QR con el número.
func Layout(inv Invoice, in pdfdoc.LayoutInput) []pdfdoc.Block {
	p := in.Config.PaletteOr(DefaultPalette())
	sheet := styleSheet(p)
	body := sheet.Style(pdfdoc.StyleBody)

	created := inv.CreatedAt
	if created.IsZero() {
		created = in.Config.Clock()
	}

	// Las líneas guardadas se recalculan igual que al crear.
	items, totals := ComputeTotals(inv.Items, in.Config.Tax())

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.Description,
			pdfdoc.FormatQuantity(it.Quantity),
			pdfdoc.FormatMoney(it.UnitPrice),
			pdfdoc.FormatMoney(it.Total),
		})
	}

	return pdfdoc.Compact(
		header(inv, created, p, sheet),
		pdfdoc.Space(10),
		parties(inv, p, sheet),
		pdfdoc.Space(8),
		pdfdoc.P("DÉTAILS DES PRESTATIONS", sheet.Style(pdfdoc.StyleSection)),
		pdfdoc.RecordTable(pdfdoc.TableSpec{
			Headers:       []string{"Description", "Qté", "Prix unitaire", "Total HT"},
			Rows:          rows,
			Widths:        []float64{90, 20, 30, 20},
			HeaderFill:    p.Primary,
			Aligns:        []pdfdoc.Align{pdfdoc.AlignLeft, pdfdoc.AlignCenter, pdfdoc.AlignRight, pdfdoc.AlignRight},
			Sheet:         sheet,
			KeepWhenEmpty: true,
		}),
		pdfdoc.Space(10),
		totalsBlock(totals, in.Config.Tax(), p, body),
		pdfdoc.Space(12),
		conditions(inv, created, body),
		pdfdoc.Space(15),
		footer(inv, sheet),
		pdfdoc.Space(4),
		&pdfdoc.Barcode{Symbology: pdfdoc.SymbologyQR, Value: pdfdoc.OrDefault(inv.Number, in.RecordID), Width: 22, Height: 22, Align: pdfdoc.AlignRight},
	)
}

func header(inv Invoice, created time.Time, p pdfdoc.Palette, sheet *pdfdoc.StyleSheet) pdfdoc.Block {
	small := sheet.Style(pdfdoc.StyleBody).WithoutSpacing()

	issuer := pdfdoc.Text{pdfdoc.Line{pdfdoc.B(pdfdoc.OrDefault(inv.Issuer.Name, "Entreprise"))}}
	if inv.Issuer.Address != "" {
		issuer = append(issuer, pdfdoc.Line{pdfdoc.R(inv.Issuer.Address)})
	}
	for _, l := range inv.Issuer.Localities {
		issuer = append(issuer, pdfdoc.Line{pdfdoc.R(pdfdoc.JoinNonEmpty(" ", l.PostalCode, l.City))})
	}
	if contact := contactLine(inv.Issuer.Phone, inv.Issuer.Email); contact != "" {
		issuer = append(issuer, pdfdoc.Line{pdfdoc.R(contact)})
	}
	if inv.Issuer.SIRET != "" {
		issuer = append(issuer, pdfdoc.Line{pdfdoc.R("SIRET: " + inv.Issuer.SIRET)})
	}
	if inv.Issuer.VATID != "" {
		issuer = append(issuer, pdfdoc.Line{pdfdoc.R("TVA: " + inv.Issuer.VATID)})
	}

	number := pdfdoc.Text{
		pdfdoc.Line{pdfdoc.B("FACTURE")},
		pdfdoc.Line{{Text: inv.Number, Bold: true, Size: 13}},
		pdfdoc.Line{pdfdoc.R("Date: " + pdfdoc.FormatDay(created))},
	}

	return &pdfdoc.Table{
		Widths: []float64{100, 60},
		Rows: []pdfdoc.Row{{Cells: []pdfdoc.Cell{
			{Text: issuer, Style: small},
			{Text: number, Style: small.WithSize(12).WithAlign(pdfdoc.AlignRight)},
		}}},
		Style: pdfdoc.TableStyle{
			Padding:    3,
			HeaderRule: &pdfdoc.Border{Width: 0.7, Color: p.Primary},
			VAlign:     pdfdoc.VAlignTop,
		},
	}
}

func contactLine(phone, email string) string {
	var tel, mail string
	if phone != "" {
		tel = "Tél: " + phone
	}
	if email != "" {
		mail = "Email: " + email
	}
	return pdfdoc.JoinNonEmpty(" • ", tel, mail)
}

// labeled agrega "Label: valor" solo si el valor no está vacío.
func labeled(t pdfdoc.Text, label, value string) pdfdoc.Text {
	if value == "" {
		return t
	}
	return append(t, pdfdoc.Line{pdfdoc.B(label + ": "), pdfdoc.R(value)})
}

// parties es la tabla lado a lado cliente / entrega.
func parties(inv Invoice, p pdfdoc.Palette, sheet *pdfdoc.StyleSheet) pdfdoc.Block {
	value := sheet.Style(pdfdoc.StyleValue).WithoutSpacing()
	head := sheet.Style(pdfdoc.StyleSection).WithoutSpacing()

	var client pdfdoc.Text
	if c := inv.Client; c.Name != "" {
		client = labeled(client, "Nom", c.Name)
		client = labeled(client, "Adresse", c.Address)
		client = labeled(client, "Ville", pdfdoc.JoinNonEmpty(" ", c.PostalCode, c.City))
		client = labeled(client, "Téléphone", c.Phone)
		client = labeled(client, "Email", c.Email)
	}

	d := inv.Delivery
	var delivery pdfdoc.Text
	switch {
	case inv.Animal != nil:
		name := inv.Animal.Name
		if kind := pdfdoc.JoinNonEmpty(" - ", inv.Animal.Species, inv.Animal.Breed); kind != "" {
			name = pdfdoc.JoinNonEmpty(" ", name, "("+kind+")")
		}
		delivery = labeled(delivery, "Animal", name)
	case d.Species != "" || d.Breed != "":
		delivery = labeled(delivery, "Animal", pdfdoc.JoinNonEmpty(" - ", d.Species, d.Breed))
	}
	delivery = labeled(delivery, "Date", pdfdoc.FormatDate(d.Date))
	delivery = labeled(delivery, "Heure prise en charge", d.PickupTime)
	delivery = labeled(delivery, "Heure livraison estimée", d.DeliveryTime)
	if d.Notes != "" {
		delivery = append(delivery, pdfdoc.Line{{Text: "Notes: ", Bold: true, Italic: true, Size: 9}, {Text: d.Notes, Italic: true, Size: 9}})
	}

	return &pdfdoc.Table{
		Widths: []float64{80, 80},
		Rows: []pdfdoc.Row{
			{Cells: []pdfdoc.Cell{
				pdfdoc.TextCell("INFORMATIONS DU CLIENT", head),
				pdfdoc.TextCell("DÉTAILS DE LA LIVRAISON", head),
			}},
			{Cells: []pdfdoc.Cell{
				{Text: client, Style: value},
				{Text: delivery, Style: value},
			}},
		},
		Style: pdfdoc.TableStyle{
			Grid:       &pdfdoc.Border{Width: 0.2, Color: p.Light},
			Padding:    3.5,
			HeaderRows: 1,
			HeaderFill: p.Light.Ptr(),
			VAlign:     pdfdoc.VAlignTop,
		},
	}
}

// TaxLabel devuelve "TVA (20%):" para la tasa dada.
func TaxLabel(rate decimal.Decimal) string {
	return fmt.Sprintf("TVA (%s%%):", rate.Mul(decimal.NewFromInt(100)).String())
}

func totalsBlock(t Totals, rate decimal.Decimal, p pdfdoc.Palette, body pdfdoc.Style) pdfdoc.Block {
	label := body.WithoutSpacing()
	amount := label.WithAlign(pdfdoc.AlignRight)
	strong := label.WithBold(true).WithSize(12)
	return &pdfdoc.Table{
		Widths: []float64{100, 60},
		Rows: []pdfdoc.Row{
			{Cells: []pdfdoc.Cell{pdfdoc.TextCell("Sous-total HT:", label), pdfdoc.TextCell(pdfdoc.FormatMoney(t.Subtotal), amount)}},
			{Cells: []pdfdoc.Cell{pdfdoc.TextCell(TaxLabel(rate), label), pdfdoc.TextCell(pdfdoc.FormatMoney(t.Tax), amount)}},
			{
				Cells: []pdfdoc.Cell{pdfdoc.TextCell("TOTAL TTC:", strong), pdfdoc.TextCell(pdfdoc.FormatMoney(t.TotalWithTax), strong.WithAlign(pdfdoc.AlignRight))},
				Fill:  p.Success.Ptr(),
			},
		},
		Style: pdfdoc.TableStyle{Padding: 3.5, VAlign: pdfdoc.VAlignMiddle},
	}
}

func conditions(inv Invoice, created time.Time, body pdfdoc.Style) pdfdoc.Block {
	var text pdfdoc.Text
	text = labeled(text, "Conditions de paiement", inv.Payment.Terms)
	text = labeled(text, "Mentions", inv.Payment.Mentions)
	text = append(text, pdfdoc.Line{{Text: "Facture émise le " + pdfdoc.FormatTimestamp(created), Italic: true}})

	return &pdfdoc.Table{
		Widths: []float64{160},
		Rows: []pdfdoc.Row{{
			Cells: []pdfdoc.Cell{{Text: text, Style: body.WithoutSpacing().WithSize(9)}},
			Fill:  pdfdoc.Hex("#F9F9F9").Ptr(),
		}},
		Style: pdfdoc.TableStyle{
			Box:     &pdfdoc.Border{Width: 0.2, Color: pdfdoc.LightGrey},
			Padding: 5,
		},
	}
}

func footer(inv Invoice, sheet *pdfdoc.StyleSheet) pdfdoc.Block {
	parts := []string{inv.Issuer.Name}
	for _, l := range inv.Issuer.Localities {
		parts = append(parts, pdfdoc.JoinNonEmpty(" ", l.PostalCode, l.City))
	}
	text := pdfdoc.Text{}
	if line := pdfdoc.JoinNonEmpty(" • ", parts...); line != "" {
		text = append(text, pdfdoc.Line{pdfdoc.R(line)})
	}
	if contact := contactLine(inv.Issuer.Phone, inv.Issuer.Email); contact != "" {
		text = append(text, pdfdoc.Line{pdfdoc.R(contact)})
	}
	if len(text) == 0 {
		return nil
	}
	return &pdfdoc.Paragraph{Text: text, Style: sheet.Style(pdfdoc.StyleFooter)}
}
