package pdfdoc

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"vet-records/internal/platform/logger"
)

// Document es lo que un builder entrega al generador.
type Document struct {
	// Name se usa como patrón del archivo temporal (sin extensión).
	Name   string
	Page   PageConfig
	Blocks []Block
}

// Generator convierte documentos en archivos PDF. Nunca devuelve error:
// si el backend falla, escribe un documento de error en su lugar.
type Generator struct {
	backend Renderer
	dir     string
	log     logger.Logger
}

func NewGenerator(backend Renderer, dir string, log logger.Logger) *Generator {
	if backend == nil {
		backend = NewBackend()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Generator{backend: backend, dir: dir, log: log}
}

// Generate devuelve la ruta de un PDF completo recién creado. El llamador
// es dueño del archivo (enviarlo y borrarlo). Solo devuelve "" si no se
// pudo crear el archivo temporal.
func (g *Generator) Generate(doc Document) string {
	data, err := g.render(Compact(doc.Blocks...), doc.Page)
	if err != nil {
		g.log.Error("pdf generation failed", map[string]any{
			"document": doc.Name,
			"error":    err.Error(),
		})
		data, err = g.render(ErrorBlocks(err), PageConfig{
			Title:   "Erreur de génération",
			Size:    "A4",
			Margins: UniformMargins(20),
		})
		if err != nil {
			g.log.Error("error document failed", map[string]any{"document": doc.Name, "error": err.Error()})
			data = minimalPDF("ERREUR DE GENERATION")
		}
	}

	f, err := os.CreateTemp(g.dir, tempPattern(doc.Name))
	if err != nil {
		g.log.Error("pdf temp file failed", map[string]any{"document": doc.Name, "error": err.Error()})
		return ""
	}
	path := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		g.log.Error("pdf write failed", map[string]any{"path": path, "error": err.Error()})
		return ""
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		g.log.Error("pdf close failed", map[string]any{"path": path, "error": err.Error()})
		return ""
	}
	g.log.Debug("pdf generated", map[string]any{"document": doc.Name, "path": path, "bytes": len(data)})
	return path
}

func (g *Generator) render(blocks []Block, page PageConfig) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("renderer panic: %v", r)
		}
	}()
	out, err = g.backend.Render(blocks, page)
	if err == nil && !bytes.HasPrefix(out, []byte("%PDF")) {
		err = fmt.Errorf("renderer returned %d bytes without PDF header", len(out))
	}
	return out, err
}

// ErrorBlocks es el documento de reemplazo con el mensaje de error.
func ErrorBlocks(cause error) []Block {
	msg := "inconnue"
	if cause != nil {
		msg = cause.Error()
	}
	title := Style{Family: "Helvetica", Bold: true, Size: 18, Color: Hex("#E74C3C"), Align: AlignCenter, SpaceAfter: 8}
	body := Style{Family: "Helvetica", Size: 11, Color: Black}
	return []Block{
		P("ERREUR DE GÉNÉRATION", title),
		P("Erreur: "+msg, body),
	}
}

func tempPattern(name string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
	if name == "" {
		name = "document"
	}
	return name + "-*.pdf"
}

// minimalPDF arma a mano un PDF de una página con una línea de texto ASCII.
func minimalPDF(text string) []byte {
	text = strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`).Replace(text)
	content := fmt.Sprintf("BT /F1 16 Tf 72 770 Td (%s) Tj ET", text)
	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
	}
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}
