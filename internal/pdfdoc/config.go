package pdfdoc

import (
	"time"

	"github.com/shopspring/decimal"
)

// Margins en mm.
type Margins struct {
	Top, Right, Bottom, Left float64
}

func UniformMargins(v float64) Margins {
	return Margins{Top: v, Right: v, Bottom: v, Left: v}
}

// PageConfig es la geometría que recibe el backend junto con los bloques.
// Orientación siempre vertical.
type PageConfig struct {
	Title      string
	Size       string // "A4", "Letter", ...
	Margins    Margins
	Letterhead string // PDF opcional usado como fondo de cada página
}

// RenderConfig es la configuración inmutable que recibe cada builder.
// Los valores cero se completan con los defaults del tipo de documento.
type RenderConfig struct {
	PageSize   string
	Margins    *Margins
	TaxRate    decimal.Decimal
	Letterhead string
	Palette    *Palette
	Now        func() time.Time
}

var defaultTaxRate = decimal.RequireFromString("0.20")

func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		PageSize: "A4",
		TaxRate:  defaultTaxRate,
		Now:      time.Now,
	}
}

// Page arma la geometría usando los márgenes del documento salvo override.
func (c RenderConfig) Page(title string, defaults Margins) PageConfig {
	m := defaults
	if c.Margins != nil {
		m = *c.Margins
	}
	size := c.PageSize
	if size == "" {
		size = "A4"
	}
	return PageConfig{Title: title, Size: size, Margins: m, Letterhead: c.Letterhead}
}

// PaletteOr devuelve la paleta configurada o la del documento.
func (c RenderConfig) PaletteOr(p Palette) Palette {
	if c.Palette != nil {
		return *c.Palette
	}
	return p
}

// Tax devuelve la tasa configurada (20% si no se definió).
func (c RenderConfig) Tax() decimal.Decimal {
	if c.TaxRate.IsZero() {
		return defaultTaxRate
	}
	return c.TaxRate
}

func (c RenderConfig) Clock() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}
