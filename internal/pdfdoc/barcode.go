package pdfdoc

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/pdf417"
	"github.com/boombuler/barcode/qr"
	gofpdf "github.com/lvillar/gofpdf"
	"golang.org/x/image/draw"
)

// pxPerMM fija la resolución del PNG intermedio (unos 300 dpi).
const pxPerMM = 12

// encodeBarcode codifica el valor y lo escala a múltiplos enteros del módulo
// para que las barras queden nítidas.
func encodeBarcode(sym Symbology, value string, wmm, hmm float64) (image.Image, error) {
	var (
		bc  barcode.Barcode
		err error
	)
	switch sym {
	case SymbologyQR:
		bc, err = qr.Encode(value, qr.M, qr.Auto)
	case SymbologyCode128:
		bc, err = code128.Encode(value)
	case SymbologyPDF417:
		bc, err = pdf417.Encode(value, 2)
	default:
		return nil, fmt.Errorf("unknown symbology %q", sym)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s %q: %w", sym, value, err)
	}

	b := bc.Bounds()
	kx := int(math.Ceil(wmm * pxPerMM / float64(b.Dx())))
	ky := int(math.Ceil(hmm * pxPerMM / float64(b.Dy())))
	if kx < 1 {
		kx = 1
	}
	if ky < 1 {
		ky = 1
	}
	scaled, err := barcode.Scale(bc, b.Dx()*kx, b.Dy()*ky)
	if err != nil {
		return nil, fmt.Errorf("scale %s: %w", sym, err)
	}

	// gofpdf no acepta PNG de 16 bits; boombuler pinta en Gray16.
	gray := image.NewGray(scaled.Bounds())
	draw.Draw(gray, gray.Bounds(), scaled, scaled.Bounds().Min, draw.Src)
	return gray, nil
}

// barcode registra el código como imagen del propio documento; nada queda
// retenido entre renders.
func (w *pageWriter) barcode(b *Barcode) {
	bw, bh := b.Width, b.Height
	if bw <= 0 {
		bw = 30
	}
	if bh <= 0 {
		bh = bw
	}
	img, err := encodeBarcode(b.Symbology, b.Value, bw, bh)
	if err != nil {
		w.pdf.SetError(err)
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		w.pdf.SetError(fmt.Errorf("barcode png: %w", err))
		return
	}

	w.images++
	name := fmt.Sprintf("bc%d", w.images)
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	w.pdf.RegisterImageOptionsReader(name, opts, &buf)
	if w.pdf.Err() {
		return
	}
	w.ensure(bh)
	x := alignX(b.Align, w.margin.Left, w.contentWidth(), bw)
	w.pdf.ImageOptions(name, x, w.y, bw, bh, false, opts, 0, "")
	w.y += bh + 2
}
