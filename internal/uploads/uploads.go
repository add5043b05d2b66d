package uploads

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"vet-records/internal/platform/logger"
)

// MaxPhotoSide es el lado máximo de las fotos guardadas (se conserva proporción).
const MaxPhotoSide = 800

var ErrInvalidDataURL = errors.New("invalid data url")

// Store guarda en disco las imágenes recibidas como data URL y devuelve la
// referencia (nombre de archivo relativo a Dir) que se persiste en el registro.
type Store struct {
	Dir string
	log logger.Logger
	now func() time.Time
}

func New(dir string, log logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{Dir: dir, log: log, now: time.Now}
}

// DecodeDataURL separa "data:<mime>;base64,<payload>".
func DecodeDataURL(s string) (string, []byte, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "data:") {
		return "", nil, ErrInvalidDataURL
	}
	header, payload, ok := strings.Cut(s[len("data:"):], ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return "", nil, ErrInvalidDataURL
	}
	mime := strings.TrimSuffix(header, ";base64")
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}
	if len(data) == 0 {
		return "", nil, ErrInvalidDataURL
	}
	return mime, data, nil
}

// SavePhoto reduce la imagen para que entre en 800x800 y la guarda.
// Devuelve "" (y lo registra) si el contenido no es una imagen válida.
func (s *Store) SavePhoto(animal, dataURL string) string {
	if strings.TrimSpace(dataURL) == "" {
		return ""
	}
	_, raw, err := DecodeDataURL(dataURL)
	if err != nil {
		s.log.Warn("photo upload rejected", map[string]any{"error": err.Error()})
		return ""
	}
	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		s.log.Warn("photo decode failed", map[string]any{"error": err.Error()})
		return ""
	}
	img = Thumbnail(img, MaxPhotoSide, MaxPhotoSide)

	var buf bytes.Buffer
	ext := "png"
	if format == "jpeg" {
		ext = "jpg"
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	} else {
		err = png.Encode(&buf, img)
	}
	if err != nil {
		s.log.Error("photo encode failed", map[string]any{"error": err.Error()})
		return ""
	}
	return s.write(fmt.Sprintf("photo_%s", safeName(animal)), ext, buf.Bytes())
}

// SaveImage guarda tal cual una imagen (cachet, firma). prefix da el nombre.
func (s *Store) SaveImage(prefix, dataURL string) string {
	if strings.TrimSpace(dataURL) == "" {
		return ""
	}
	_, raw, err := DecodeDataURL(dataURL)
	if err != nil {
		s.log.Warn("image upload rejected", map[string]any{"prefix": prefix, "error": err.Error()})
		return ""
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		s.log.Warn("image upload is not an image", map[string]any{"prefix": prefix, "error": err.Error()})
		return ""
	}
	ext := format
	if ext == "jpeg" {
		ext = "jpg"
	}
	return s.write(safeName(prefix), ext, raw)
}

func (s *Store) write(base, ext string, data []byte) string {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		s.log.Error("upload dir failed", map[string]any{"dir": s.Dir, "error": err.Error()})
		return ""
	}
	name := fmt.Sprintf("%s_%s_%s.%s", base, s.now().Format("20060102_150405"), uuid.NewString()[:8], ext)
	if err := os.WriteFile(filepath.Join(s.Dir, name), data, 0o644); err != nil {
		s.log.Error("upload write failed", map[string]any{"file": name, "error": err.Error()})
		return ""
	}
	s.log.Debug("upload saved", map[string]any{"file": name, "bytes": len(data)})
	return name
}

// Thumbnail reduce img para que entre en maxW x maxH; nunca agranda.
func Thumbnail(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return img
	}
	scale := float64(maxW) / float64(w)
	if s := float64(maxH) / float64(h); s < scale {
		scale = s
	}
	nw, nh := int(float64(w)*scale), int(float64(h)*scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	out := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, s)
	if out == "" {
		return "file"
	}
	return out
}
