package pdfdoc

import (
	"sort"
	"strconv"
	"strings"
)

// Nombres estándar de estilos que cada tipo de documento define en su hoja.
const (
	StyleTitle       = "title"
	StyleSection     = "section"
	StyleSubsection  = "subsection"
	StyleBody        = "body"
	StyleLabel       = "label"
	StyleValue       = "value"
	StyleTableHeader = "table-header"
	StyleFooter      = "footer"
)

// ptToMM convierte puntos tipográficos a milímetros (unidad de página).
const ptToMM = 25.4 / 72

// Color es un color RGB 0-255.
type Color struct {
	R, G, B int
}

var (
	Black      = Color{0, 0, 0}
	White      = Color{255, 255, 255}
	Grey       = Color{128, 128, 128}
	LightGrey  = Color{211, 211, 211}
	WhiteSmoke = Color{245, 245, 245}
)

// Hex parsea "#RRGGBB". Un valor inválido devuelve negro.
func Hex(s string) Color {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return Black
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Black
	}
	return Color{R: int(v >> 16 & 0xFF), G: int(v >> 8 & 0xFF), B: int(v & 0xFF)}
}

// Ptr devuelve un puntero a una copia del color (útil para campos opcionales).
func (c Color) Ptr() *Color {
	return &c
}

// Palette asocia colores con roles semánticos. Cada tipo de documento tiene la suya.
type Palette struct {
	Primary   Color
	Secondary Color
	Accent    Color
	Success   Color
	Light     Color
}

type Align string

const (
	AlignLeft    Align = "L"
	AlignCenter  Align = "C"
	AlignRight   Align = "R"
	AlignJustify Align = "J"
)

type VAlign string

const (
	VAlignTop    VAlign = "T"
	VAlignMiddle VAlign = "M"
	VAlignBottom VAlign = "B"
)

// Border describe un trazo. Width en mm; Radius > 0 redondea las esquinas.
type Border struct {
	Width  float64
	Color  Color
	Radius float64
}

// Style es un descriptor de párrafo/celda. Es dato puro: los primitivos lo leen,
// nadie lo modifica después de definido.
type Style struct {
	Family  string
	Bold    bool
	Italic  bool
	Size    float64 // pt
	Leading float64 // pt; 0 => 1.25 * Size
	Color   Color
	Align   Align

	Fill    *Color
	Border  *Border
	Padding float64 // mm, solo si Fill o Border

	SpaceBefore float64 // mm
	SpaceAfter  float64 // mm
}

func (s Style) WithAlign(a Align) Style {
	s.Align = a
	return s
}

func (s Style) WithColor(c Color) Style {
	s.Color = c
	return s
}

func (s Style) WithSize(size float64) Style {
	s.Size = size
	return s
}

func (s Style) WithBold(b bool) Style {
	s.Bold = b
	return s
}

func (s Style) WithItalic(i bool) Style {
	s.Italic = i
	return s
}

// WithoutSpacing quita los espacios antes/después (para celdas de tabla).
func (s Style) WithoutSpacing() Style {
	s.SpaceBefore = 0
	s.SpaceAfter = 0
	return s
}

func (s Style) clone() Style {
	if s.Fill != nil {
		f := *s.Fill
		s.Fill = &f
	}
	if s.Border != nil {
		b := *s.Border
		s.Border = &b
	}
	return s
}

// DefaultStyle es el estilo usado cuando una hoja no define el nombre pedido.
func DefaultStyle() Style {
	return Style{Family: "Helvetica", Size: 10, Color: Black, Align: AlignLeft}
}

// StyleSheet es un registro inmutable de estilos con nombre.
type StyleSheet struct {
	styles map[string]Style
}

// NewStyleSheet copia los estilos recibidos; mutar el mapa original después
// no afecta a la hoja.
func NewStyleSheet(styles map[string]Style) *StyleSheet {
	cp := make(map[string]Style, len(styles))
	for name, st := range styles {
		cp[name] = st.clone()
	}
	return &StyleSheet{styles: cp}
}

func (s *StyleSheet) Get(name string) (Style, bool) {
	if s == nil {
		return Style{}, false
	}
	st, ok := s.styles[name]
	if !ok {
		return Style{}, false
	}
	return st.clone(), true
}

// Style devuelve el estilo con ese nombre, o el de "body", o DefaultStyle.
func (s *StyleSheet) Style(name string) Style {
	if st, ok := s.Get(name); ok {
		return st
	}
	if st, ok := s.Get(StyleBody); ok {
		return st
	}
	return DefaultStyle()
}

func (s *StyleSheet) Names() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.styles))
	for k := range s.styles {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
