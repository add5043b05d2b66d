package pdfdoc

import (
	"strings"

	"vet-records/internal/ports/files"
)

// Kind identifica el tipo de un bloque de layout.
type Kind string

const (
	KindParagraph Kind = "paragraph"
	KindSpacer    Kind = "spacer"
	KindRule      Kind = "rule"
	KindTable     Kind = "table"
	KindInfoRow   Kind = "info-row"
	KindImage     Kind = "image"
	KindBarcode   Kind = "barcode"
	KindCheckLine Kind = "check-line"
	KindPageBreak Kind = "page-break"
)

// Block es una unidad de contenido que el backend pagina.
type Block interface {
	Kind() Kind
}

// Run es un tramo de texto con formato propio dentro de una línea.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	Size   float64 // pt; 0 => tamaño del estilo
	Color  *Color
}

// R crea un run sin formato extra; B uno en negrita.
func R(s string) Run { return Run{Text: s} }
func B(s string) Run { return Run{Text: s, Bold: true} }

// Line es una línea lógica (termina en salto forzado).
type Line []Run

// Text son líneas lógicas; el backend parte cada una según el ancho disponible.
type Text []Line

// Plain construye Text a partir de un string, una línea por "\n".
func Plain(s string) Text {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "\n")
	out := make(Text, 0, len(parts))
	for _, p := range parts {
		out = append(out, Line{R(p)})
	}
	return out
}

// Lines arma Text con una línea por argumento.
func Lines(lines ...Line) Text {
	return Text(lines)
}

// String devuelve el texto plano, líneas separadas por "\n".
func (t Text) String() string {
	var sb strings.Builder
	for i, l := range t {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, r := range l {
			sb.WriteString(r.Text)
		}
	}
	return sb.String()
}

type Paragraph struct {
	Text  Text
	Style Style
}

func (*Paragraph) Kind() Kind { return KindParagraph }

// P es el atajo para un párrafo de texto plano.
func P(text string, st Style) *Paragraph {
	return &Paragraph{Text: Plain(text), Style: st}
}

// RichP arma un párrafo con runs mixtos.
func RichP(st Style, lines ...Line) *Paragraph {
	return &Paragraph{Text: Lines(lines...), Style: st}
}

type Spacer struct {
	Height float64 // mm
}

func (*Spacer) Kind() Kind { return KindSpacer }

func Space(h float64) *Spacer { return &Spacer{Height: h} }

// Rule es una línea horizontal a lo ancho del área útil.
type Rule struct {
	Thickness   float64 // mm
	Color       Color
	Dashed      bool
	SpaceBefore float64
	SpaceAfter  float64
}

func (*Rule) Kind() Kind { return KindRule }

type PageBreak struct{}

func (*PageBreak) Kind() Kind { return KindPageBreak }

type Cell struct {
	Text   Text
	Style  Style
	Fill   *Color
	VAlign VAlign
}

// TextCell es el atajo para una celda de texto plano.
func TextCell(s string, st Style) Cell {
	return Cell{Text: Plain(s), Style: st}
}

type Row struct {
	Cells     []Cell
	MinHeight float64 // mm
	Fill      *Color
}

// TableStyle reúne las decoraciones de tabla que usan los documentos.
type TableStyle struct {
	Grid       *Border // líneas internas y externas de cada celda
	Box        *Border // marco exterior; Radius > 0 lo redondea
	LeftAccent *Border // barra vertical sobre el borde izquierdo
	HeaderRule *Border // línea bajo la primera fila

	Padding    float64 // mm, interno de cada celda
	HeaderRows int     // filas que se repiten tras un salto de página

	HeaderFill      *Color
	FirstColumnFill *Color
	AlternateFill   *Color

	VAlign VAlign
	Align  Align // posición horizontal de la tabla en la página
}

type Table struct {
	Widths []float64 // mm; 0 o faltante => reparto del resto
	Rows   []Row
	Style  TableStyle
}

func (*Table) Kind() Kind { return KindTable }

// DataRows devuelve las filas que no son de encabezado.
func (t *Table) DataRows() []Row {
	if t.Style.HeaderRows >= len(t.Rows) {
		return nil
	}
	return t.Rows[t.Style.HeaderRows:]
}

// InfoRow es una fila etiqueta/valor; el valor va en una caja coloreada.
type InfoRow struct {
	Label      string
	Value      string
	Widths     [2]float64
	LabelStyle Style
	ValueStyle Style
}

func (*InfoRow) Kind() Kind { return KindInfoRow }

// Image lleva los bytes ya leídos; el backend no toca el sistema de archivos.
type Image struct {
	Ref    string
	Data   []byte
	Format string // "PNG", "JPG", "GIF"
	Width  float64
	Height float64
	Framed bool
	Frame  Border
	Align  Align
}

func (*Image) Kind() Kind { return KindImage }

type Symbology string

const (
	SymbologyQR      Symbology = "qr"
	SymbologyCode128 Symbology = "code128"
	SymbologyPDF417  Symbology = "pdf417"
)

type Barcode struct {
	Symbology Symbology
	Value     string
	Width     float64
	Height    float64
	Align     Align
}

func (*Barcode) Kind() Kind { return KindBarcode }

// CheckLine es una línea de certificación con casilla marcada o no.
type CheckLine struct {
	Checked        bool
	Text           string
	Style          Style
	CheckedColor   Color
	UncheckedColor Color
}

func (*CheckLine) Kind() Kind { return KindCheckLine }

// LayoutInput es lo que recibe cada builder además del registro.
type LayoutInput struct {
	RecordID string
	Files    files.Resolver
	Config   RenderConfig
}
