package invoices

import (
	"time"

	"github.com/shopspring/decimal"
)

// Locality es una línea "código postal + ciudad" del emisor.
type Locality struct {
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
}

// MaxLocalities es la cantidad de líneas de dirección del emisor que se imprimen.
const MaxLocalities = 3

type Issuer struct {
	Name       string     `json:"name"`
	SIRET      string     `json:"siret"`
	VATID      string     `json:"vat_id"`
	Address    string     `json:"address"`
	Localities []Locality `json:"localities"`
	Phone      string     `json:"phone"`
	Email      string     `json:"email"`
}

type Client struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
}

// Delivery describe el traslado del animal facturado.
type Delivery struct {
	Date         string `json:"date"`
	PickupTime   string `json:"pickup_time"`
	DeliveryTime string `json:"delivery_time"`
	Species      string `json:"species"`
	Breed        string `json:"breed"`
	Notes        string `json:"notes"`
}

// LineItem.Total siempre se recalcula como Quantity * UnitPrice.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

type Payment struct {
	Terms    string `json:"terms"`
	Mentions string `json:"mentions"`
}

// AnimalSnapshot es la copia del carnet tomada al crear la factura.
type AnimalSnapshot struct {
	Name    string `json:"name"`
	Species string `json:"species"`
	Breed   string `json:"breed"`
	Owner   string `json:"owner"`
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

type Totals struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	TotalWithTax decimal.Decimal `json:"total_with_tax"`
}

type Invoice struct {
	ID        string `json:"id"`
	Number    string `json:"number"`
	BookletID string `json:"booklet_id,omitempty"`

	Issuer   Issuer     `json:"issuer"`
	Client   Client     `json:"client"`
	Delivery Delivery   `json:"delivery"`
	Items    []LineItem `json:"items"`
	Payment  Payment    `json:"payment"`

	Animal *AnimalSnapshot `json:"animal,omitempty"`
	Totals Totals          `json:"totals"`

	CreatedAt time.Time `json:"created_at"`
}
