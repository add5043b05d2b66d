package booklets

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
	ErrNotFound     = errors.New("booklet not found")
)

type Service struct {
	col   *store.Collection[Booklet]
	gen   *pdfdoc.Generator
	files files.Resolver
	cfg   pdfdoc.RenderConfig
	now   func() time.Time
}

func NewService(st store.DocumentStore, gen *pdfdoc.Generator, res files.Resolver, cfg pdfdoc.RenderConfig) *Service {
	return &Service{
		col:   store.NewCollection[Booklet](st, store.Booklets),
		gen:   gen,
		files: res,
		cfg:   cfg,
		now:   time.Now,
	}
}

// Create normaliza el carnet, descarta vacunas/antiparasitarios sin tipo y lo guarda.
func (s *Service) Create(ctx context.Context, in Booklet) (Booklet, error) {
	b := Normalize(in)
	if b.Animal.Name == "" {
		return Booklet{}, ErrInvalidInput
	}
	b.ID = uuid.NewString()
	b.CreatedAt = s.now()

	if err := s.col.Insert(ctx, b.ID, b, b.CreatedAt); err != nil {
		return Booklet{}, err
	}
	return b, nil
}

// Normalize recorta espacios y descarta entradas repetidas vacías.
func Normalize(in Booklet) Booklet {
	b := in
	b.Animal = Animal{
		Name:           strings.TrimSpace(in.Animal.Name),
		Species:        strings.TrimSpace(in.Animal.Species),
		Breed:          strings.TrimSpace(in.Animal.Breed),
		Age:            strings.TrimSpace(in.Animal.Age),
		Sex:            strings.TrimSpace(in.Animal.Sex),
		Sterilized:     strings.TrimSpace(in.Animal.Sterilized),
		Weight:         strings.TrimSpace(in.Animal.Weight),
		Identification: strings.TrimSpace(in.Animal.Identification),
	}
	b.Owner = Owner{
		Name:       strings.TrimSpace(in.Owner.Name),
		Phone:      strings.TrimSpace(in.Owner.Phone),
		Email:      strings.TrimSpace(in.Owner.Email),
		Address:    strings.TrimSpace(in.Owner.Address),
		PostalCode: strings.TrimSpace(in.Owner.PostalCode),
		City:       strings.TrimSpace(in.Owner.City),
	}
	b.Cabinet = Cabinet{
		Name:    strings.TrimSpace(in.Cabinet.Name),
		Phone:   strings.TrimSpace(in.Cabinet.Phone),
		Address: strings.TrimSpace(in.Cabinet.Address),
		Email:   strings.TrimSpace(in.Cabinet.Email),
	}
	b.Health = Health{
		Allergies: strings.TrimSpace(in.Health.Allergies),
		History:   strings.TrimSpace(in.Health.History),
		Treatment: strings.TrimSpace(in.Health.Treatment),
	}

	b.Vaccinations = make([]Vaccination, 0, len(in.Vaccinations))
	for _, v := range in.Vaccinations {
		v = Vaccination{
			Type:        strings.TrimSpace(v.Type),
			Date:        strings.TrimSpace(v.Date),
			BoosterDate: strings.TrimSpace(v.BoosterDate),
			LotNumber:   strings.TrimSpace(v.LotNumber),
		}
		if v.Type != "" {
			b.Vaccinations = append(b.Vaccinations, v)
		}
	}
	b.ParasiteTreatments = make([]ParasiteTreatment, 0, len(in.ParasiteTreatments))
	for _, p := range in.ParasiteTreatments {
		p = ParasiteTreatment{
			Type:     strings.TrimSpace(p.Type),
			Product:  strings.TrimSpace(p.Product),
			Date:     strings.TrimSpace(p.Date),
			NextDate: strings.TrimSpace(p.NextDate),
		}
		if p.Type != "" {
			b.ParasiteTreatments = append(b.ParasiteTreatments, p)
		}
	}
	b.PhotoRef = strings.TrimSpace(in.PhotoRef)
	b.StampRef = strings.TrimSpace(in.StampRef)
	b.SignatureRef = strings.TrimSpace(in.SignatureRef)
	return b
}

func (s *Service) GetByID(ctx context.Context, id string) (Booklet, error) {
	b, err := s.col.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return Booklet{}, ErrNotFound
	}
	return b, err
}

// List devuelve los carnets más recientes primero.
func (s *Service) List(ctx context.Context, limit int) ([]Booklet, error) {
	return s.col.List(ctx, limit)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.col.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.col.Count(ctx)
}

// BuildPDF genera el carnet y devuelve la ruta del PDF. Nunca falla: ante un
// error de render el archivo contiene la página de error.
func (s *Service) BuildPDF(b Booklet, recordID string) string {
	in := pdfdoc.LayoutInput{RecordID: recordID, Files: s.files, Config: s.cfg}
	return s.gen.Generate(pdfdoc.Document{
		Name:   "carnet",
		Page:   Page(b, s.cfg),
		Blocks: Layout(b, in),
	})
}

// DownloadName es el nombre de archivo sugerido al descargar.
func DownloadName(b Booklet) string {
	return "Carnet_Sante_" + strings.ReplaceAll(pdfdoc.OrDefault(b.Animal.Name, "Animal"), " ", "_") + ".pdf"
}
