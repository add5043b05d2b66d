package attestations

import "time"

type Vet struct {
	FullName     string `json:"full_name"`
	Registration string `json:"registration"` // número de inscripción en la Orden
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
}

type Animal struct {
	Name           string `json:"name"`
	Species        string `json:"species"`
	Breed          string `json:"breed"`
	Sex            string `json:"sex"`
	Color          string `json:"color"`
	Microchipped   string `json:"microchipped"`
	Identification string `json:"identification"`
}

// Certifications son las cuatro casillas del examen clínico.
type Certifications struct {
	Health       bool `json:"health"`
	Vaccination  bool `json:"vaccination"`
	DiseaseFree  bool `json:"disease_free"`
	TransportFit bool `json:"transport_fit"`
}

// CertificationTexts en el mismo orden que Certifications.Flags.
var CertificationTexts = [4]string{
	"L'animal est en bonne santé générale et ne présente aucun signe de maladie apparente",
	"Les vaccinations obligatoires sont à jour conformément à la réglementation en vigueur",
	"L'animal ne présente aucun signe de maladie contagieuse au moment de l'examen",
	"L'animal est apte au transport auquel il est destiné",
}

func (c Certifications) Flags() [4]bool {
	return [4]bool{c.Health, c.Vaccination, c.DiseaseFree, c.TransportFit}
}

type Attestation struct {
	ID     string `json:"id"`
	Number string `json:"number"`

	Vet            Vet            `json:"vet"`
	Animal         Animal         `json:"animal"`
	OwnerName      string         `json:"owner_name"`
	Certifications Certifications `json:"certifications"`

	Date string `json:"date"` // YYYY-MM-DD
	City string `json:"city"`

	StampRef     string `json:"stamp_ref,omitempty"`
	SignatureRef string `json:"signature_ref,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
