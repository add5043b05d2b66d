package attestations

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

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("attestation not found")
)

type Service struct {
	col   *store.Collection[Attestation]
	gen   *pdfdoc.Generator
	files files.Resolver
	cfg   pdfdoc.RenderConfig
	now   func() time.Time
}

func NewService(st store.DocumentStore, gen *pdfdoc.Generator, res files.Resolver, cfg pdfdoc.RenderConfig) *Service {
	return &Service{
		col:   store.NewCollection[Attestation](st, store.Attestations),
		gen:   gen,
		files: res,
		cfg:   cfg,
		now:   time.Now,
	}
}

func (s *Service) Create(ctx context.Context, in Attestation) (Attestation, error) {
	a := Normalize(in)
	if a.Animal.Name == "" {
		return Attestation{}, ErrInvalidInput
	}
	a.ID = uuid.NewString()
	a.CreatedAt = s.now()
	a.Number = pdfdoc.DocumentNumber("ATT", a.CreatedAt)

	if err := s.col.Insert(ctx, a.ID, a, a.CreatedAt); err != nil {
		return Attestation{}, err
	}
	return a, nil
}

func Normalize(in Attestation) Attestation {
	a := in
	a.Vet = Vet{
		FullName:     strings.TrimSpace(in.Vet.FullName),
		Registration: strings.TrimSpace(in.Vet.Registration),
		Address:      strings.TrimSpace(in.Vet.Address),
		Phone:        strings.TrimSpace(in.Vet.Phone),
		Email:        strings.TrimSpace(in.Vet.Email),
	}
	a.Animal = Animal{
		Name:           strings.TrimSpace(in.Animal.Name),
		Species:        strings.TrimSpace(in.Animal.Species),
		Breed:          strings.TrimSpace(in.Animal.Breed),
		Sex:            strings.TrimSpace(in.Animal.Sex),
		Color:          strings.TrimSpace(in.Animal.Color),
		Microchipped:   strings.TrimSpace(in.Animal.Microchipped),
		Identification: strings.TrimSpace(in.Animal.Identification),
	}
	a.OwnerName = strings.TrimSpace(in.OwnerName)
	a.Date = strings.TrimSpace(in.Date)
	a.City = strings.TrimSpace(in.City)
	a.StampRef = strings.TrimSpace(in.StampRef)
	a.SignatureRef = strings.TrimSpace(in.SignatureRef)
	return a
}

func (s *Service) GetByID(ctx context.Context, id string) (Attestation, error) {
	a, err := s.col.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return Attestation{}, ErrNotFound
	}
	return a, err
}

func (s *Service) List(ctx context.Context, limit int) ([]Attestation, error) {
	return s.col.List(ctx, limit)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.col.Count(ctx)
}

func (s *Service) BuildPDF(a Attestation, recordID string) string {
	return s.gen.Generate(pdfdoc.Document{
		Name:   "attestation",
		Page:   Page(a, s.cfg),
		Blocks: Layout(a, pdfdoc.LayoutInput{RecordID: recordID, Files: s.files, Config: s.cfg}),
	})
}

// DownloadName: Attestation_Veterinaire_<Nom>_<YYYYMMDD>.pdf
func DownloadName(a Attestation) string {
	at := a.CreatedAt
	if at.IsZero() {
		at = time.Now()
	}
	name := strings.ReplaceAll(pdfdoc.OrDefault(a.Animal.Name, "Animal"), " ", "_")
	return "Attestation_Veterinaire_" + name + "_" + at.Format("20060102") + ".pdf"
}
