package pdfdoc

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	gofpdf "github.com/lvillar/gofpdf"
	"github.com/lvillar/gofpdf/contrib/gofpdi"
)

// Renderer pagina una secuencia de bloques y devuelve el PDF serializado.
type Renderer interface {
	Render(blocks []Block, page PageConfig) ([]byte, error)
}

// Backend es el Renderer basado en gofpdf. No guarda estado entre llamadas:
// cada Render crea su propio documento.
type Backend struct {
	Creator string
}

func NewBackend() *Backend {
	return &Backend{Creator: "vet-records"}
}

func (b *Backend) Render(blocks []Block, page PageConfig) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("pdf render panic: %v", r)
		}
	}()

	size := page.Size
	if size == "" {
		size = "A4"
	}
	pdf := gofpdf.NewDocument(
		gofpdf.WithPageSize(size),
		gofpdf.WithOrientation(gofpdf.OrientationPortrait),
		gofpdf.WithUnit(gofpdf.UnitMillimeter),
	)
	if pdf.Err() {
		return nil, fmt.Errorf("pdf setup: %w", pdf.Error())
	}
	w := newPageWriter(pdf, page)
	if page.Title != "" {
		pdf.SetTitle(page.Title, true)
	}
	pdf.SetCreator(b.Creator, true)
	if err := w.letterhead(page.Letterhead); err != nil {
		return nil, err
	}

	w.addPage()
	for i, blk := range blocks {
		if isNil(blk) {
			continue
		}
		w.draw(blk)
		if pdf.Err() {
			return nil, fmt.Errorf("pdf render block %d (%s): %w", i, blk.Kind(), pdf.Error())
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

// pageWriter lleva el cursor vertical propio; el salto automático de gofpdf
// está desactivado.
type pageWriter struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	margin Margins
	pageW  float64
	pageH  float64
	y      float64
	images int
}

func newPageWriter(pdf *gofpdf.Fpdf, page PageConfig) *pageWriter {
	m := page.Margins
	pdf.SetMargins(m.Left, m.Top, m.Right)
	pdf.SetAutoPageBreak(false, m.Bottom)
	pdf.SetCellMargin(0)
	pw, ph := pdf.GetPageSize()
	return &pageWriter{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		margin: m,
		pageW:  pw,
		pageH:  ph,
	}
}

func (w *pageWriter) letterhead(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		// Membrete configurado pero ausente: se ignora.
		return nil
	}
	imp := gofpdi.NewImporter()
	tpl := imp.ImportPage(w.pdf, path, 1, "/MediaBox")
	if w.pdf.Err() {
		return fmt.Errorf("pdf letterhead %s: %w", path, w.pdf.Error())
	}
	w.pdf.SetHeaderFunc(func() {
		imp.UseImportedTemplate(w.pdf, tpl, 0, 0, w.pageW, w.pageH)
	})
	return nil
}

func (w *pageWriter) contentWidth() float64 { return w.pageW - w.margin.Left - w.margin.Right }
func (w *pageWriter) bottom() float64       { return w.pageH - w.margin.Bottom }
func (w *pageWriter) usableHeight() float64 { return w.bottom() - w.margin.Top }

func (w *pageWriter) addPage() {
	w.pdf.AddPage()
	w.y = w.margin.Top
}

// ensure abre página nueva si h no entra y la página actual ya tiene contenido.
func (w *pageWriter) ensure(h float64) {
	if w.y+h > w.bottom() && w.y > w.margin.Top+0.01 {
		w.addPage()
	}
}

func (w *pageWriter) draw(b Block) {
	switch v := b.(type) {
	case *Paragraph:
		w.paragraph(v)
	case *Spacer:
		w.y += v.Height
		if w.y > w.bottom() {
			w.addPage()
		}
	case *Rule:
		w.rule(v)
	case *PageBreak:
		w.addPage()
	case *Table:
		w.table(v)
	case *InfoRow:
		w.table(infoRowTable(v))
	case *Image:
		w.image(v)
	case *Barcode:
		w.barcode(v)
	case *CheckLine:
		w.checkLine(v)
	default:
		w.pdf.SetError(fmt.Errorf("unsupported block %T", b))
	}
}

// ---- texto ----

type fontSpec struct {
	family string
	style  string
	size   float64
}

type piece struct {
	text  string
	font  fontSpec
	color Color
	width float64
}

type visualLine struct {
	pieces []piece
	width  float64
	height float64
}

func (w *pageWriter) setFont(f fontSpec) {
	w.pdf.SetFont(f.family, f.style, f.size)
}

func setColor(set func(r, g, b int), c Color) {
	set(c.R, c.G, c.B)
}

func fontFor(st Style, run Run) fontSpec {
	family := st.Family
	if family == "" {
		family = "Helvetica"
	}
	style := ""
	if st.Bold || run.Bold {
		style += "B"
	}
	if st.Italic || run.Italic {
		style += "I"
	}
	size := st.Size
	if run.Size > 0 {
		size = run.Size
	}
	if size <= 0 {
		size = 10
	}
	return fontSpec{family: family, style: style, size: size}
}

func lineHeight(st Style, size float64) float64 {
	lead := size * 1.25
	if st.Leading > lead {
		lead = st.Leading
	}
	return lead * ptToMM
}

// wrap parte el texto en líneas visuales que caben en width, respetando el
// formato de cada run.
func (w *pageWriter) wrap(t Text, st Style, width float64) []visualLine {
	var out []visualLine
	baseSize := st.Size
	if baseSize <= 0 {
		baseSize = 10
	}
	minH := lineHeight(st, baseSize)
	for _, line := range t {
		cur := visualLine{height: minH}
		flush := func() {
			cur.width = trimmedWidth(w, cur.pieces)
			out = append(out, cur)
			cur = visualLine{height: minH}
		}
		for _, run := range line {
			f := fontFor(st, run)
			w.setFont(f)
			color := st.Color
			if run.Color != nil {
				color = *run.Color
			}
			h := lineHeight(st, f.size)
			for _, tok := range strings.SplitAfter(run.Text, " ") {
				if tok == "" {
					continue
				}
				txt := w.tr(tok)
				tw := w.pdf.GetStringWidth(txt)
				solid := w.pdf.GetStringWidth(strings.TrimRight(txt, " "))
				if len(cur.pieces) > 0 && cur.width+solid > width {
					flush()
				}
				if len(cur.pieces) == 0 && strings.TrimSpace(tok) == "" {
					continue
				}
				cur.pieces = append(cur.pieces, piece{text: txt, font: f, color: color, width: tw})
				cur.width += tw
				if h > cur.height {
					cur.height = h
				}
			}
		}
		flush()
	}
	return out
}

func trimmedWidth(w *pageWriter, pieces []piece) float64 {
	total := 0.0
	for i, p := range pieces {
		if i == len(pieces)-1 {
			w.setFont(p.font)
			total += w.pdf.GetStringWidth(strings.TrimRight(p.text, " "))
			continue
		}
		total += p.width
	}
	return total
}

func linesHeight(lines []visualLine) float64 {
	h := 0.0
	for _, l := range lines {
		h += l.height
	}
	return h
}

func (w *pageWriter) drawLine(l visualLine, x, y, width float64, align Align) {
	lx := x
	switch align {
	case AlignCenter:
		lx += (width - l.width) / 2
	case AlignRight:
		lx += width - l.width
	}
	for _, p := range l.pieces {
		w.setFont(p.font)
		setColor(w.pdf.SetTextColor, p.color)
		w.pdf.SetXY(lx, y)
		w.pdf.CellFormat(p.width, l.height, p.text, "", 0, "L", false, 0, "")
		lx += p.width
	}
}

func (w *pageWriter) paragraph(p *Paragraph) {
	st := p.Style
	w.y += st.SpaceBefore
	boxed := st.Fill != nil || st.Border != nil
	pad := 0.0
	if boxed {
		pad = st.Padding
	}
	x := w.margin.Left
	width := w.contentWidth()
	lines := w.wrap(p.Text, st, width-2*pad)
	h := linesHeight(lines) + 2*pad

	if boxed {
		w.ensure(h)
		w.box(x, w.y, width, h, st.Fill, st.Border)
		y := w.y + pad
		for _, l := range lines {
			w.drawLine(l, x+pad, y, width-2*pad, st.Align)
			y += l.height
		}
		w.y += h
	} else {
		if h <= w.usableHeight() {
			w.ensure(h)
		}
		for _, l := range lines {
			if w.y+l.height > w.bottom() {
				w.addPage()
			}
			w.drawLine(l, x, w.y, width, st.Align)
			w.y += l.height
		}
	}
	w.y += st.SpaceAfter
}

// ---- formas ----

func (w *pageWriter) box(x, y, width, h float64, fill *Color, border *Border) {
	radius := 0.0
	if border != nil {
		radius = border.Radius
	}
	style := ""
	if fill != nil {
		setColor(w.pdf.SetFillColor, *fill)
		style += "F"
	}
	if border != nil && border.Width > 0 {
		setColor(w.pdf.SetDrawColor, border.Color)
		w.pdf.SetLineWidth(border.Width)
		style += "D"
	}
	if style == "" {
		return
	}
	if radius > 0 {
		w.pdf.RoundedRect(x, y, width, h, radius, "1234", style)
		return
	}
	w.pdf.Rect(x, y, width, h, style)
}

func (w *pageWriter) hline(x1, x2, y float64, b Border, dashed bool) {
	setColor(w.pdf.SetDrawColor, b.Color)
	w.pdf.SetLineWidth(b.Width)
	if dashed {
		w.pdf.SetDashPattern([]float64{2, 1.5}, 0)
	}
	w.pdf.Line(x1, y, x2, y)
	if dashed {
		w.pdf.SetDashPattern([]float64{}, 0)
	}
}

func (w *pageWriter) rule(r *Rule) {
	w.y += r.SpaceBefore
	th := r.Thickness
	if th <= 0 {
		th = 0.3
	}
	w.ensure(th)
	w.hline(w.margin.Left, w.pageW-w.margin.Right, w.y, Border{Width: th, Color: r.Color}, r.Dashed)
	w.y += th + r.SpaceAfter
}

// ---- imágenes y códigos ----

func alignX(align Align, x, avail, w float64) float64 {
	switch align {
	case AlignCenter:
		return x + (avail-w)/2
	case AlignRight:
		return x + avail - w
	}
	return x
}

func (w *pageWriter) image(img *Image) {
	w.images++
	name := fmt.Sprintf("img%d", w.images)
	info := w.pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: img.Format}, bytes.NewReader(img.Data))
	if w.pdf.Err() || info == nil {
		return
	}
	iw, ih := img.Width, img.Height
	ratio := info.Width() / info.Height()
	switch {
	case iw <= 0 && ih <= 0:
		iw = 40
		ih = iw / ratio
	case ih <= 0:
		ih = iw / ratio
	case iw <= 0:
		iw = ih * ratio
	default:
		// Ajusta dentro de la caja conservando proporción.
		if iw/ih > ratio {
			iw = ih * ratio
		} else {
			ih = iw / ratio
		}
	}
	pad := 0.0
	if img.Framed {
		pad = 3
	}
	total := ih + 2*pad
	w.ensure(total)
	x := alignX(img.Align, w.margin.Left, w.contentWidth(), iw+2*pad)
	if img.Framed {
		frame := img.Frame
		w.box(x, w.y, iw+2*pad, total, nil, &frame)
	}
	w.pdf.ImageOptions(name, x+pad, w.y+pad, iw, ih, false, gofpdf.ImageOptions{ImageType: img.Format}, 0, "")
	w.y += total + 2
}

const checkBox = 3.5

func (w *pageWriter) checkLine(c *CheckLine) {
	st := c.Style
	color := c.UncheckedColor
	if c.Checked {
		color = c.CheckedColor
	}
	st = st.WithColor(color)
	w.y += st.SpaceBefore
	textX := w.margin.Left + checkBox + 3
	lines := w.wrap(Plain(c.Text), st, w.pageW-w.margin.Right-textX)
	h := linesHeight(lines)
	if h < checkBox {
		h = checkBox
	}
	w.ensure(h)

	firstH := checkBox
	if len(lines) > 0 {
		firstH = lines[0].height
	}
	bx, by := w.margin.Left, w.y+(firstH-checkBox)/2
	w.pdf.SetLineWidth(0.3)
	setColor(w.pdf.SetDrawColor, color)
	if c.Checked {
		setColor(w.pdf.SetFillColor, color)
		w.pdf.Rect(bx, by, checkBox, checkBox, "FD")
		setColor(w.pdf.SetDrawColor, White)
		w.pdf.SetLineWidth(0.5)
		w.pdf.Line(bx+0.7, by+checkBox*0.55, bx+checkBox*0.42, by+checkBox-0.8)
		w.pdf.Line(bx+checkBox*0.42, by+checkBox-0.8, bx+checkBox-0.6, by+0.7)
	} else {
		w.pdf.Rect(bx, by, checkBox, checkBox, "D")
		w.pdf.Line(bx+0.8, by+0.8, bx+checkBox-0.8, by+checkBox-0.8)
		w.pdf.Line(bx+checkBox-0.8, by+0.8, bx+0.8, by+checkBox-0.8)
	}

	y := w.y
	for _, l := range lines {
		w.drawLine(l, textX, y, w.pageW-w.margin.Right-textX, st.Align)
		y += l.height
	}
	w.y += h + st.SpaceAfter
}
