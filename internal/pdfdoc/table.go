package pdfdoc

import (
	pdftable "github.com/lvillar/gofpdf/table"
)

func columnWidths(widths []float64, cols int, avail float64) []float64 {
	out := make([]float64, cols)
	fixed, free := 0.0, 0
	for i := 0; i < cols; i++ {
		if i < len(widths) && widths[i] > 0 {
			out[i] = widths[i]
			fixed += widths[i]
		} else {
			free++
		}
	}
	if free > 0 {
		rest := (avail - fixed) / float64(free)
		if rest < 5 {
			rest = 5
		}
		for i := range out {
			if out[i] == 0 {
				out[i] = rest
			}
		}
	}
	total := 0.0
	for _, v := range out {
		total += v
	}
	if total > avail && total > 0 {
		k := avail / total
		for i := range out {
			out[i] *= k
		}
	}
	return out
}

func maxCells(rows []Row) int {
	n := 0
	for _, r := range rows {
		if len(r.Cells) > n {
			n = len(r.Cells)
		}
	}
	return n
}

// laidRow es una fila ya partida en líneas visuales. split marca los tramos
// de una fila repartida entre páginas.
type laidRow struct {
	cells  [][]visualLine
	height float64
	split  bool
}

func (w *pageWriter) table(t *Table) {
	cols := maxCells(t.Rows)
	if cols == 0 {
		return
	}
	ts := t.Style
	widths := columnWidths(t.Widths, cols, w.contentWidth())
	totalW := 0.0
	for _, v := range widths {
		totalW += v
	}
	x0 := w.margin.Left
	switch ts.Align {
	case AlignCenter:
		x0 += (w.contentWidth() - totalW) / 2
	case AlignRight:
		x0 += w.contentWidth() - totalW
	}
	pad := ts.Padding
	grid := w.fitsGrid(t, widths)

	laid := make([]laidRow, len(t.Rows))
	for ri, row := range t.Rows {
		lr := laidRow{cells: make([][]visualLine, cols)}
		h := row.MinHeight
		for ci := 0; ci < cols && ci < len(row.Cells); ci++ {
			c := row.Cells[ci]
			lines := w.wrap(c.Text, c.Style, widths[ci]-2*pad)
			lr.cells[ci] = lines
			if ch := linesHeight(lines) + 2*pad; ch > h {
				h = ch
			}
			if grid {
				if gh := w.gridRowHeight(c, pad); gh > h {
					h = gh
				}
			}
		}
		if h < 2*pad+1 {
			h = 2*pad + 1
		}
		lr.height = h
		laid[ri] = lr
	}

	headerRows := ts.HeaderRows
	if headerRows > len(t.Rows) {
		headerRows = len(t.Rows)
	}
	headerH := 0.0
	for i := 0; i < headerRows; i++ {
		headerH += laid[i].height
	}

	// Evita dejar el encabezado solo al pie de la página.
	first := headerH
	if headerRows < len(laid) {
		first += laid[headerRows].height
	} else if len(laid) > 0 && headerRows == 0 {
		first = laid[0].height
	}
	if first <= w.usableHeight() {
		w.ensure(first)
	}

	if grid {
		w.gridTable(t, laid, widths, x0, totalW)
		return
	}

	segTop := w.y
	bodyTop := w.margin.Top
	newPage := func(ri int) {
		w.finishSegment(ts, x0, totalW, segTop)
		w.addPage()
		segTop = w.y
		if ri >= headerRows {
			for hr := 0; hr < headerRows; hr++ {
				w.tableRow(t, hr, laid[hr], widths, x0, totalW)
			}
		}
		bodyTop = w.y
	}
	for ri := range t.Rows {
		lr := laid[ri]
		room := w.usableHeight()
		if ri >= headerRows {
			room -= headerH
		}
		if w.y+lr.height > w.bottom() && w.y > bodyTop+0.01 && lr.height <= room {
			newPage(ri)
		}
		// Fila más alta que la página: lo que no entra pasa a la siguiente.
		for w.y+lr.height > w.bottom() {
			fresh := w.y <= bodyTop+0.01
			head, rest, ok := splitRow(lr, w.bottom()-w.y, pad, fresh)
			if !ok {
				if fresh {
					// Solo queda alto mínimo: se recorta al pie.
					lr.height = w.bottom() - w.y
					break
				}
				newPage(ri)
				continue
			}
			w.tableRow(t, ri, head, widths, x0, totalW)
			lr = rest
			newPage(ri)
		}
		w.tableRow(t, ri, lr, widths, x0, totalW)
	}
	w.finishSegment(ts, x0, totalW, segTop)
}

// splitRow reparte las líneas de cada celda entre lo que cabe en avail y el
// resto. Con force cada celda avanza al menos una línea aunque no quepa.
func splitRow(lr laidRow, avail, pad float64, force bool) (head, rest laidRow, ok bool) {
	head = laidRow{cells: make([][]visualLine, len(lr.cells)), split: true}
	rest = laidRow{cells: make([][]visualLine, len(lr.cells)), split: true}
	room := avail - 2*pad
	taken := 0
	for ci, lines := range lr.cells {
		used, n := 0.0, 0
		for n < len(lines) && used+lines[n].height <= room {
			used += lines[n].height
			n++
		}
		if n == 0 && force && len(lines) > 0 {
			used, n = lines[0].height, 1
		}
		taken += n
		head.cells[ci], rest.cells[ci] = lines[:n], lines[n:]
		if h := used + 2*pad; h > head.height {
			head.height = h
		}
		if h := linesHeight(lines[n:]) + 2*pad; h > rest.height {
			rest.height = h
		}
	}
	if taken == 0 {
		return laidRow{}, lr, false
	}
	if head.height < avail {
		head.height = avail
	}
	if rest.height < 2*pad+1 {
		rest.height = 2*pad + 1
	}
	return head, rest, true
}

func (w *pageWriter) cellFill(t *Table, ri, ci int) *Color {
	ts := t.Style
	row := t.Rows[ri]
	if ci < len(row.Cells) && row.Cells[ci].Fill != nil {
		return row.Cells[ci].Fill
	}
	if row.Fill != nil {
		return row.Fill
	}
	if ri < ts.HeaderRows {
		return ts.HeaderFill
	}
	if ci == 0 && ts.FirstColumnFill != nil {
		return ts.FirstColumnFill
	}
	if ts.AlternateFill != nil && (ri-ts.HeaderRows)%2 == 1 {
		return ts.AlternateFill
	}
	return nil
}

func (w *pageWriter) tableRow(t *Table, ri int, lr laidRow, widths []float64, x0, totalW float64) {
	ts := t.Style
	row := t.Rows[ri]
	x := x0
	for ci, cw := range widths {
		if fill := w.cellFill(t, ri, ci); fill != nil {
			setColor(w.pdf.SetFillColor, *fill)
			w.pdf.Rect(x, w.y, cw, lr.height, "F")
		}
		if ts.Grid != nil {
			setColor(w.pdf.SetDrawColor, ts.Grid.Color)
			w.pdf.SetLineWidth(ts.Grid.Width)
			w.pdf.Rect(x, w.y, cw, lr.height, "D")
		}
		if ci < len(row.Cells) {
			c := row.Cells[ci]
			lines := lr.cells[ci]
			va := c.VAlign
			if va == "" {
				va = ts.VAlign
			}
			if lr.split {
				va = VAlignTop
			}
			textH := linesHeight(lines)
			y := w.y + ts.Padding
			switch va {
			case VAlignMiddle:
				y = w.y + (lr.height-textH)/2
			case VAlignBottom:
				y = w.y + lr.height - ts.Padding - textH
			}
			for _, l := range lines {
				w.drawLine(l, x+ts.Padding, y, cw-2*ts.Padding, c.Style.Align)
				y += l.height
			}
		}
		x += cw
	}
	if ri == 0 && ts.HeaderRule != nil {
		w.hline(x0, x0+totalW, w.y+lr.height, *ts.HeaderRule, false)
	}
	w.y += lr.height
}

func (w *pageWriter) finishSegment(ts TableStyle, x0, totalW, top float64) {
	h := w.y - top
	if h <= 0 {
		return
	}
	if ts.Box != nil {
		w.box(x0, top, totalW, h, nil, ts.Box)
	}
	if ts.LeftAccent != nil {
		setColor(w.pdf.SetDrawColor, ts.LeftAccent.Color)
		w.pdf.SetLineWidth(ts.LeftAccent.Width)
		lx := x0 + ts.LeftAccent.Width/2
		w.pdf.Line(lx, top, lx, w.y)
	}
}

// ---- tablas de registros sobre gofpdf/table ----

// fitsGrid indica si la tabla puede delegarse en gofpdf/table: cuadrícula
// completa, sin marco ni acento, y cada celda en una sola línea con un único
// formato. gofpdf/table dibuja siempre el borde de cada celda y centra el
// texto en vertical, así que lo demás queda para el motor propio.
func (w *pageWriter) fitsGrid(t *Table, widths []float64) bool {
	ts := t.Style
	if ts.Grid == nil || ts.Box != nil || ts.LeftAccent != nil || ts.HeaderRule != nil {
		return false
	}
	for _, row := range t.Rows {
		for ci, c := range row.Cells {
			run, ok := singleRun(c.Text)
			if !ok || c.Style.Align == AlignJustify {
				return false
			}
			va := c.VAlign
			if va == "" {
				va = ts.VAlign
			}
			if va != VAlignMiddle && row.MinHeight > 0 {
				return false
			}
			w.setFont(fontFor(c.Style, run))
			if w.pdf.GetStringWidth(w.tr(run.Text)) > widths[ci]-2*ts.Padding {
				return false
			}
		}
	}
	return true
}

// singleRun junta los runs de una única línea lógica cuando comparten formato.
func singleRun(t Text) (Run, bool) {
	if len(t) == 0 {
		return Run{}, true
	}
	if len(t) > 1 {
		return Run{}, false
	}
	var out Run
	for i, r := range t[0] {
		if i == 0 {
			out = r
			continue
		}
		if r.Bold != out.Bold || r.Italic != out.Italic || r.Size != out.Size || !sameColor(r.Color, out.Color) {
			return Run{}, false
		}
		out.Text += r.Text
	}
	return out, true
}

func sameColor(a, b *Color) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// gridRowHeight replica el alto que gofpdf/table calcula para una fila:
// 1,5 veces el cuerpo de la fuente más el relleno, con un mínimo de 5 mm.
func (w *pageWriter) gridRowHeight(c Cell, pad float64) float64 {
	run, _ := singleRun(c.Text)
	w.setFont(fontFor(c.Style, run))
	_, unit := w.pdf.GetFontSize()
	h := unit*1.5 + 2*pad
	if h < 5 {
		h = 5
	}
	return h
}

func rgb(c Color) *pdftable.RGBColor {
	return &pdftable.RGBColor{R: c.R, G: c.G, B: c.B}
}

func (w *pageWriter) gridTable(t *Table, laid []laidRow, widths []float64, x0, totalW float64) {
	ts := t.Style
	style := pdftable.TableStyle{
		Border:      &pdftable.BorderStyle{Width: ts.Grid.Width, Color: *rgb(ts.Grid.Color)},
		CellPadding: pdftable.UniformPadding(ts.Padding),
	}
	if ts.HeaderFill != nil {
		style.HeaderStyle = &pdftable.CellStyle{FillColor: rgb(*ts.HeaderFill)}
	}
	if ts.AlternateFill != nil {
		style.AlternateRows = &pdftable.AlternateStyle{Odd: pdftable.CellStyle{FillColor: rgb(*ts.AlternateFill)}}
	}
	tb := pdftable.New(w.pdf).
		SetColumnWidths(widths...).
		SetPosition(x0, w.y).
		SetWidth(totalW).
		SetStyle(style)

	for ri, row := range t.Rows {
		var r *pdftable.Row
		if ri < ts.HeaderRows {
			r = tb.AddHeaderRow()
		} else {
			r = tb.AddRow()
		}
		r.SetMinHeight(laid[ri].height)
		if row.Fill != nil {
			r.SetStyle(pdftable.CellStyle{FillColor: rgb(*row.Fill)})
		}
		for ci := range widths {
			if ci >= len(row.Cells) {
				r.AddCell("")
				continue
			}
			c := row.Cells[ci]
			run, _ := singleRun(c.Text)
			f := fontFor(c.Style, run)
			color := c.Style.Color
			if run.Color != nil {
				color = *run.Color
			}
			align := c.Style.Align
			if align == "" {
				align = AlignLeft
			}
			cs := pdftable.CellStyle{
				TextColor: rgb(color),
				Font:      &pdftable.FontSpec{Family: f.family, Style: f.style, Size: f.size},
				Align:     string(align),
			}
			switch {
			case c.Fill != nil:
				cs.FillColor = rgb(*c.Fill)
			case ci == 0 && ri >= ts.HeaderRows && row.Fill == nil && ts.FirstColumnFill != nil:
				cs.FillColor = rgb(*ts.FirstColumnFill)
			}
			r.AddCell(w.tr(run.Text)).SetStyle(cs)
		}
	}

	// Con color negro gofpdf/table no toca el trazo; se fija antes.
	setColor(w.pdf.SetDrawColor, ts.Grid.Color)
	w.pdf.SetLineWidth(ts.Grid.Width)
	if err := tb.Render(); err != nil {
		w.pdf.SetError(err)
		return
	}
	w.y = w.pdf.GetY()
}

func infoRowTable(r *InfoRow) *Table {
	valueBox := r.ValueStyle.Fill
	label := r.LabelStyle.WithoutSpacing()
	label.Fill, label.Border = nil, nil
	value := r.ValueStyle.WithoutSpacing()
	value.Fill, value.Border = nil, nil
	return &Table{
		Widths: []float64{r.Widths[0], r.Widths[1]},
		Rows: []Row{{
			Cells: []Cell{
				{Text: Plain(r.Label), Style: label},
				{Text: Plain(r.Value), Style: value, Fill: valueBox},
			},
		}},
		Style: TableStyle{Padding: 1.5, VAlign: VAlignMiddle},
	}
}
