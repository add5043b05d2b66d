package idcards

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"vet-records/internal/pdfdoc"
	"vet-records/internal/ports/files"
	"vet-records/internal/ports/store"
)

var ErrNotFound = errors.New("id card not found")

type Service struct {
	col   *store.Collection[Card]
	gen   *pdfdoc.Generator
	files files.Resolver
	cfg   pdfdoc.RenderConfig
	now   func() time.Time
}

func NewService(st store.DocumentStore, gen *pdfdoc.Generator, res files.Resolver, cfg pdfdoc.RenderConfig) *Service {
	return &Service{
		col:   store.NewCollection[Card](st, store.IDCards),
		gen:   gen,
		files: res,
		cfg:   cfg,
		now:   time.Now,
	}
}

// Create guarda la carta con los valores por defecto del formulario.
func (s *Service) Create(ctx context.Context, in Card) (Card, error) {
	// Sin chip la carta sale igual; la parte baja queda sin código de barras.
	c := Normalize(in)
	c.ID = uuid.NewString()
	c.CreatedAt = s.now()
	c.Number = pdfdoc.DocumentNumber("CART", c.CreatedAt)

	if err := s.col.Insert(ctx, c.ID, c, c.CreatedAt); err != nil {
		return Card{}, err
	}
	return c, nil
}

func Normalize(in Card) Card {
	c := in
	c.Owner = Owner{
		Name:    strings.TrimSpace(in.Owner.Name),
		Address: strings.TrimSpace(in.Owner.Address),
		Phone1:  strings.TrimSpace(in.Owner.Phone1),
		Phone2:  strings.TrimSpace(in.Owner.Phone2),
		Email:   strings.TrimSpace(in.Owner.Email),
	}
	c.Vet = Vet{Name: strings.TrimSpace(in.Vet.Name), Contact: strings.TrimSpace(in.Vet.Contact)}
	c.Identification = Identification{
		ChipID:   strings.TrimSpace(in.Identification.ChipID),
		Password: strings.TrimSpace(in.Identification.Password),
		Date:     strings.TrimSpace(in.Identification.Date),
		Location: strings.TrimSpace(in.Identification.Location),
	}
	c.Animal = Animal{
		Name:          strings.TrimSpace(in.Animal.Name),
		Species:       strings.ToUpper(pdfdoc.OrDefault(strings.TrimSpace(in.Animal.Species), "CHAT")),
		BirthDate:     strings.TrimSpace(in.Animal.BirthDate),
		Breed:         strings.TrimSpace(in.Animal.Breed),
		Coat:          strings.TrimSpace(in.Animal.Coat),
		HairType:      pdfdoc.OrDefault(strings.TrimSpace(in.Animal.HairType), "COURT"),
		Sex:           strings.ToUpper(pdfdoc.OrDefault(strings.TrimSpace(in.Animal.Sex), "MALE")),
		Sterilized:    strings.ToUpper(pdfdoc.OrDefault(strings.TrimSpace(in.Animal.Sterilized), "NON")),
		OriginCountry: pdfdoc.OrDefault(strings.TrimSpace(in.Animal.OriginCountry), "FRANCE"),
	}
	return c
}

func (s *Service) GetByID(ctx context.Context, id string) (Card, error) {
	c, err := s.col.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return Card{}, ErrNotFound
	}
	return c, err
}

func (s *Service) List(ctx context.Context, limit int) ([]Card, error) {
	return s.col.List(ctx, limit)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.col.Count(ctx)
}

// BuildPDF genera la variante pedida de la carta.
func (s *Service) BuildPDF(c Card, recordID string, v Variant) string {
	return s.gen.Generate(pdfdoc.Document{
		Name:   "carte-" + string(v),
		Page:   Page(c, s.cfg, v),
		Blocks: Layout(c, v, pdfdoc.LayoutInput{RecordID: recordID, Files: s.files, Config: s.cfg}),
	})
}

// DownloadName: Carte_Identification_<Haute|Basse|Complete>_<Nom>.pdf
func DownloadName(c Card, v Variant) string {
	name := strings.ReplaceAll(pdfdoc.OrDefault(c.Animal.Name, "Animal"), " ", "_")
	return "Carte_Identification_" + v.Label() + "_" + name + ".pdf"
}
