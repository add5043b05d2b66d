package invoices

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"vet-records/internal/domain/booklets"
	"vet-records/internal/pdfdoc"
	"vet-records/internal/ports/files"
	"vet-records/internal/ports/store"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("invoice not found")
)

// BookletSource permite copiar los datos del animal desde un carnet.
type BookletSource interface {
	GetByID(ctx context.Context, id string) (booklets.Booklet, error)
}

type Service struct {
	col      *store.Collection[Invoice]
	booklets BookletSource
	gen      *pdfdoc.Generator
	files    files.Resolver
	cfg      pdfdoc.RenderConfig
	now      func() time.Time
}

func NewService(st store.DocumentStore, bk BookletSource, gen *pdfdoc.Generator, res files.Resolver, cfg pdfdoc.RenderConfig) *Service {
	return &Service{
		col:      store.NewCollection[Invoice](st, store.Invoices),
		booklets: bk,
		gen:      gen,
		files:    res,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Create descarta las líneas sin descripción, recalcula totales, numera la
// factura y copia el animal del carnet indicado (si existe).
func (s *Service) Create(ctx context.Context, in Invoice) (Invoice, error) {
	inv := Normalize(in)
	for _, it := range inv.Items {
		if it.Quantity.IsNegative() || it.UnitPrice.IsNegative() {
			return Invoice{}, ErrInvalidInput
		}
	}

	inv.Items, inv.Totals = ComputeTotals(inv.Items, s.cfg.Tax())
	inv.ID = uuid.NewString()
	inv.CreatedAt = s.now()
	inv.Number = pdfdoc.DocumentNumber("FAC", inv.CreatedAt)

	inv.Animal = nil
	if inv.BookletID != "" && s.booklets != nil {
		// un carnet inexistente no impide facturar
		if b, err := s.booklets.GetByID(ctx, inv.BookletID); err == nil {
			inv.Animal = Snapshot(b)
		}
	}

	if err := s.col.Insert(ctx, inv.ID, inv, inv.CreatedAt); err != nil {
		return Invoice{}, err
	}
	return inv, nil
}

// Snapshot copia los datos del animal y del dueño.
func Snapshot(b booklets.Booklet) *AnimalSnapshot {
	return &AnimalSnapshot{
		Name:    b.Animal.Name,
		Species: b.Animal.Species,
		Breed:   b.Animal.Breed,
		Owner:   b.Owner.Name,
		Address: b.Owner.Address,
		City:    pdfdoc.JoinNonEmpty(" ", b.Owner.PostalCode, b.Owner.City),
		Phone:   b.Owner.Phone,
		Email:   b.Owner.Email,
	}
}

func Normalize(in Invoice) Invoice {
	inv := in
	inv.BookletID = strings.TrimSpace(in.BookletID)
	inv.Issuer.Name = strings.TrimSpace(in.Issuer.Name)
	inv.Issuer.SIRET = strings.TrimSpace(in.Issuer.SIRET)
	inv.Issuer.VATID = strings.TrimSpace(in.Issuer.VATID)
	inv.Issuer.Address = strings.TrimSpace(in.Issuer.Address)
	inv.Issuer.Phone = strings.TrimSpace(in.Issuer.Phone)
	inv.Issuer.Email = strings.TrimSpace(in.Issuer.Email)

	inv.Issuer.Localities = nil
	for _, l := range in.Issuer.Localities {
		l = Locality{PostalCode: strings.TrimSpace(l.PostalCode), City: strings.TrimSpace(l.City)}
		if l.PostalCode == "" && l.City == "" {
			continue
		}
		if len(inv.Issuer.Localities) == MaxLocalities {
			break
		}
		inv.Issuer.Localities = append(inv.Issuer.Localities, l)
	}

	inv.Client = Client{
		Name:       strings.TrimSpace(in.Client.Name),
		Phone:      strings.TrimSpace(in.Client.Phone),
		Email:      strings.TrimSpace(in.Client.Email),
		Address:    strings.TrimSpace(in.Client.Address),
		PostalCode: strings.TrimSpace(in.Client.PostalCode),
		City:       strings.TrimSpace(in.Client.City),
	}
	inv.Delivery = Delivery{
		Date:         strings.TrimSpace(in.Delivery.Date),
		PickupTime:   strings.TrimSpace(in.Delivery.PickupTime),
		DeliveryTime: strings.TrimSpace(in.Delivery.DeliveryTime),
		Species:      strings.TrimSpace(in.Delivery.Species),
		Breed:        strings.TrimSpace(in.Delivery.Breed),
		Notes:        strings.TrimSpace(in.Delivery.Notes),
	}
	inv.Payment = Payment{
		Terms:    strings.TrimSpace(in.Payment.Terms),
		Mentions: strings.TrimSpace(in.Payment.Mentions),
	}

	inv.Items = make([]LineItem, 0, len(in.Items))
	for _, it := range in.Items {
		it.Description = strings.TrimSpace(it.Description)
		if it.Description == "" {
			continue
		}
		inv.Items = append(inv.Items, it)
	}
	return inv
}

func (s *Service) GetByID(ctx context.Context, id string) (Invoice, error) {
	inv, err := s.col.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return Invoice{}, ErrNotFound
	}
	return inv, err
}

func (s *Service) List(ctx context.Context, limit int) ([]Invoice, error) {
	return s.col.List(ctx, limit)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.col.Count(ctx)
}

// BuildPDF genera la factura; ver pdfdoc.Generator para la degradación.
func (s *Service) BuildPDF(inv Invoice, recordID string) string {
	return s.gen.Generate(pdfdoc.Document{
		Name:   "facture",
		Page:   Page(inv, s.cfg),
		Blocks: Layout(inv, pdfdoc.LayoutInput{RecordID: recordID, Files: s.files, Config: s.cfg}),
	})
}

func DownloadName(inv Invoice) string {
	animal := "Animal"
	if inv.Animal != nil && inv.Animal.Name != "" {
		animal = strings.ReplaceAll(inv.Animal.Name, " ", "_")
	}
	return "Facture_" + pdfdoc.OrDefault(inv.Number, "FAC") + "_" + animal + ".pdf"
}
