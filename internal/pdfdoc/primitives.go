package pdfdoc

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"reflect"
	"strings"

	"golang.org/x/image/draw"

	"vet-records/internal/ports/files"
)

// Compact descarta los bloques nil (incluidos punteros nil tipados) y
// conserva el orden del resto.
func Compact(blocks ...Block) []Block {
	out := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		if isNil(b) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func isNil(b Block) bool {
	if b == nil {
		return true
	}
	v := reflect.ValueOf(b)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Concat une secuencias de bloques y filtra nils.
func Concat(groups ...[]Block) []Block {
	var all []Block
	for _, g := range groups {
		all = append(all, g...)
	}
	return Compact(all...)
}

// LabeledRow devuelve nil cuando el valor está vacío: un campo opcional
// ausente desaparece del documento en lugar de dejar una fila vacía.
func LabeledRow(label, value string, widths [2]float64, sheet *StyleSheet) Block {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &InfoRow{
		Label:      label,
		Value:      value,
		Widths:     widths,
		LabelStyle: sheet.Style(StyleLabel),
		ValueStyle: sheet.Style(StyleValue),
	}
}

// Section emite título (+ regla si bordered) y el cuerpo, aun si está vacío.
func Section(title string, body []Block, bordered bool, sheet *StyleSheet) []Block {
	heading := sheet.Style(StyleSection)
	out := []Block{P(title, heading)}
	if bordered {
		rule := heading.Color
		if heading.Border != nil {
			rule = heading.Border.Color
		}
		out = append(out, &Rule{Thickness: 0.35, Color: rule, SpaceBefore: 1.5, SpaceAfter: 3.5})
	}
	return append(out, Compact(body...)...)
}

// Stack filtra nils e intercala un espacio de gap mm entre los bloques.
func Stack(gap float64, blocks ...Block) []Block {
	kept := Compact(blocks...)
	out := make([]Block, 0, 2*len(kept))
	for _, b := range kept {
		out = append(out, b)
		if gap > 0 {
			out = append(out, Space(gap))
		}
	}
	return out
}

// TableSpec describe una tabla de sub-registros (vacunas, ítems, etc.).
type TableSpec struct {
	Headers      []string
	Rows         [][]string
	Widths       []float64
	HeaderFill   Color
	Aligns       []Align // por columna; vacío => izquierda
	MinRowHeight float64
	Alternate    *Color
	Sheet        *StyleSheet

	// KeepWhenEmpty conserva la tabla con solo encabezado cuando no hay filas.
	KeepWhenEmpty bool
}

// RecordTable arma encabezado + una fila por registro. Sin filas devuelve nil,
// salvo KeepWhenEmpty.
func RecordTable(ts TableSpec) Block {
	if len(ts.Rows) == 0 && !ts.KeepWhenEmpty {
		return nil
	}
	headerStyle := ts.Sheet.Style(StyleTableHeader).WithoutSpacing()
	bodyStyle := ts.Sheet.Style(StyleBody).WithoutSpacing().WithSize(9)

	header := Row{Cells: make([]Cell, len(ts.Headers))}
	for i, h := range ts.Headers {
		header.Cells[i] = TextCell(h, headerStyle.WithAlign(AlignCenter))
	}
	rows := []Row{header}
	for _, rec := range ts.Rows {
		row := Row{Cells: make([]Cell, len(ts.Headers)), MinHeight: ts.MinRowHeight}
		for i := range ts.Headers {
			v := ""
			if i < len(rec) {
				v = rec[i]
			}
			st := bodyStyle
			if i < len(ts.Aligns) && ts.Aligns[i] != "" {
				st = st.WithAlign(ts.Aligns[i])
			}
			row.Cells[i] = TextCell(v, st)
		}
		rows = append(rows, row)
	}
	fill := ts.HeaderFill
	return &Table{
		Widths: ts.Widths,
		Rows:   rows,
		Style: TableStyle{
			Grid:          &Border{Width: 0.2, Color: Hex("#DDDDDD")},
			Padding:       2,
			HeaderRows:    1,
			HeaderFill:    &fill,
			AlternateFill: ts.Alternate,
			VAlign:        VAlignMiddle,
		},
	}
}

// ImageBlock lee la referencia a través del resolver. Devuelve nil si la
// referencia está vacía, no existe, no se puede leer o no es PNG/JPEG/GIF.
func ImageBlock(res files.Resolver, ref string, w, h float64, framed bool) Block {
	ref = strings.TrimSpace(ref)
	if ref == "" || res == nil || !res.Exists(ref) {
		return nil
	}
	data, err := res.ReadBytes(ref)
	if err != nil || len(data) == 0 {
		return nil
	}
	data, format, ok := normalizeImage(data)
	if !ok {
		return nil
	}
	return &Image{
		Ref:    ref,
		Data:   data,
		Format: format,
		Width:  w,
		Height: h,
		Framed: framed,
		Frame:  Border{Width: 0.5, Color: LightGrey, Radius: 2},
		Align:  AlignCenter,
	}
}

// normalizeImage valida los bytes y reescribe los PNG a 8 bits sin
// entrelazado, que es lo que acepta el backend.
func normalizeImage(data []byte) ([]byte, string, bool) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", false
	}
	switch format {
	case "jpeg":
		return data, "JPG", true
	case "gif":
		return data, "GIF", true
	case "png":
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, "", false
		}
		rgba := image.NewNRGBA(img.Bounds())
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
		var buf bytes.Buffer
		if err := png.Encode(&buf, rgba); err != nil {
			return nil, "", false
		}
		return buf.Bytes(), "PNG", true
	default:
		return nil, "", false
	}
}

// CountKind cuenta los bloques de un tipo (útil para verificar documentos).
func CountKind(blocks []Block, k Kind) int {
	n := 0
	for _, b := range blocks {
		if !isNil(b) && b.Kind() == k {
			n++
		}
	}
	return n
}

// FindInfoRow busca la fila con esa etiqueta.
func FindInfoRow(blocks []Block, label string) (*InfoRow, bool) {
	for _, b := range blocks {
		if r, ok := b.(*InfoRow); ok && r.Label == label {
			return r, true
		}
	}
	return nil, false
}

// ContainsText indica si algún párrafo, celda, fila o check contiene s.
func ContainsText(blocks []Block, s string) bool {
	for _, b := range blocks {
		switch v := b.(type) {
		case *Paragraph:
			if strings.Contains(v.Text.String(), s) {
				return true
			}
		case *InfoRow:
			if strings.Contains(v.Label, s) || strings.Contains(v.Value, s) {
				return true
			}
		case *CheckLine:
			if strings.Contains(v.Text, s) {
				return true
			}
		case *Table:
			for _, r := range v.Rows {
				for _, c := range r.Cells {
					if strings.Contains(c.Text.String(), s) {
						return true
					}
				}
			}
		}
	}
	return false
}

// WithFrame cambia el marco de un bloque de imagen; otros bloques (o nil)
// pasan sin cambios.
func WithFrame(b Block, frame Border) Block {
	img, ok := b.(*Image)
	if !ok || img == nil {
		return b
	}
	img.Framed = true
	img.Frame = frame
	return img
}

// Aligned cambia la alineación horizontal de una imagen.
func Aligned(b Block, a Align) Block {
	if img, ok := b.(*Image); ok && img != nil {
		img.Align = a
	}
	return b
}
