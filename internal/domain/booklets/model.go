package booklets

import "time"

// Animal agrupa la identidad del animal tal como se carga en el formulario.
type Animal struct {
	Name           string `json:"name"`
	Species        string `json:"species"`
	Breed          string `json:"breed"`
	Age            string `json:"age"`
	Sex            string `json:"sex"`
	Sterilized     string `json:"sterilized"`
	Weight         string `json:"weight"` // kg
	Identification string `json:"identification"`
}

type Owner struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
}

// Cabinet es el cabinet veterinario de referencia.
type Cabinet struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

type Health struct {
	Allergies string `json:"allergies"`
	History   string `json:"history"`
	Treatment string `json:"treatment"`
}

type Vaccination struct {
	Type        string `json:"type"`
	Date        string `json:"date"`
	BoosterDate string `json:"booster_date"`
	LotNumber   string `json:"lot_number"`
}

type ParasiteTreatment struct {
	Type     string `json:"type"`
	Product  string `json:"product"`
	Date     string `json:"date"`
	NextDate string `json:"next_date"`
}

// Booklet es el carnet de salud persistido en la colección "booklets".
type Booklet struct {
	ID string `json:"id"`

	Animal  Animal  `json:"animal"`
	Owner   Owner   `json:"owner"`
	Cabinet Cabinet `json:"cabinet"`
	Health  Health  `json:"health"`

	Vaccinations       []Vaccination       `json:"vaccinations"`
	ParasiteTreatments []ParasiteTreatment `json:"parasite_treatments"`

	// Referencias débiles a archivos subidos; pueden no existir.
	PhotoRef     string `json:"photo_ref,omitempty"`
	StampRef     string `json:"stamp_ref,omitempty"`
	SignatureRef string `json:"signature_ref,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
