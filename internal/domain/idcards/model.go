package idcards

import (
	"errors"
	"strings"
	"time"
)

type Owner struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone1  string `json:"phone1"`
	Phone2  string `json:"phone2"`
	Email   string `json:"email"`
}

// Vet es el veterinario tratante.
type Vet struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// Identification son los datos del chip y las credenciales del titular.
type Identification struct {
	ChipID   string `json:"chip_id"`
	Password string `json:"password"`
	Date     string `json:"date"`
	Location string `json:"location"`
}

type Animal struct {
	Name          string `json:"name"`
	Species       string `json:"species"` // CHAT, CHIEN, AUTRE
	BirthDate     string `json:"birth_date"`
	Breed         string `json:"breed"`
	Coat          string `json:"coat"`
	HairType      string `json:"hair_type"`
	Sex           string `json:"sex"`        // MALE, FEMELLE
	Sterilized    string `json:"sterilized"` // OUI, NON
	OriginCountry string `json:"origin_country"`
}

type Card struct {
	ID     string `json:"id"`
	Number string `json:"number"`

	Owner          Owner          `json:"owner"`
	Vet            Vet            `json:"vet"`
	Identification Identification `json:"identification"`
	Animal         Animal         `json:"animal"`

	CreatedAt time.Time `json:"created_at"`
}

// Variant elige qué parte de la carta se imprime. No se guarda con la carta.
type Variant string

const (
	VariantUpper    Variant = "upper"
	VariantLower    Variant = "lower"
	VariantComplete Variant = "complete"
)

var ErrInvalidVariant = errors.New("invalid variant")

// ParseVariant acepta también los nombres del formulario (haute, basse).
// Vacío equivale a complete.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "complete":
		return VariantComplete, nil
	case "upper", "haute":
		return VariantUpper, nil
	case "lower", "basse":
		return VariantLower, nil
	default:
		return "", ErrInvalidVariant
	}
}

// Label es el sufijo usado en el nombre del archivo descargado.
func (v Variant) Label() string {
	switch v {
	case VariantUpper:
		return "Haute"
	case VariantLower:
		return "Basse"
	default:
		return "Complete"
	}
}
