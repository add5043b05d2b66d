package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"vet-records/internal/platform/logger"
)

// WriteJSON responde con status y v serializado.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// DecodeJSON decodifica el body rechazando campos desconocidos.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// QueryLimit lee ?limit= (1-200); fuera de rango usa def.
func QueryLimit(r *http.Request, def int) int {
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			return n
		}
	}
	return def
}

// ServePDF envía el archivo como adjunto y lo borra después. Un path vacío
// significa que el generador ni siquiera pudo crear el archivo.
func ServePDF(w http.ResponseWriter, log logger.Logger, path, downloadName string) {
	if path == "" {
		http.Error(w, "pdf generation failed", http.StatusInternalServerError)
		return
	}
	defer func() {
		if err := os.Remove(path); err != nil && log != nil {
			log.Warn("pdf cleanup failed", map[string]any{"path": path, "error": err.Error()})
		}
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		http.Error(w, "pdf read failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, sanitizeFilename(downloadName)))
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func sanitizeFilename(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '"', '\\', '/', '\r', '\n':
			return '_'
		}
		return r
	}, name)
	if name == "" {
		return "document.pdf"
	}
	return name
}
