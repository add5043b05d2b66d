package pdfdoc

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var isoLayouts = []string{"2006-01-02", "2006-1-2"}

// FormatDate convierte "YYYY-MM-DD" en "DD/MM/YYYY". Cualquier otro valor
// (incluido uno con guiones que no parsea) se devuelve tal cual.
func FormatDate(s string) string {
	if s == "" {
		return ""
	}
	if !strings.Contains(s, "-") {
		return s
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return s
}

// FormatDay formatea un instante como "DD/MM/YYYY".
func FormatDay(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatTimestamp formatea un instante como "DD/MM/YYYY à HH:MM".
func FormatTimestamp(t time.Time) string {
	return t.Format("02/01/2006") + " à " + t.Format("15:04")
}

func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2) + " €"
}

// FormatQuantity muestra enteros sin decimales y el resto tal cual.
func FormatQuantity(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return d.Truncate(0).String()
	}
	return d.String()
}

// OrDefault devuelve def cuando v está vacío.
func OrDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// JoinNonEmpty une las partes no vacías.
func JoinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// Head devuelve los primeros n runes de s.
func Head(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Tail devuelve los últimos n runes de s (o s completo si es más corto).
func Tail(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}

// YesNo traduce un booleano de formulario al texto del documento.
func YesNo(v bool) string {
	if v {
		return "Oui"
	}
	return "Non"
}
