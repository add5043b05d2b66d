package router

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	filesadapter "vet-records/internal/adapters/files"
	mem "vet-records/internal/adapters/storage/memory"
	_ "vet-records/internal/docs"
	"vet-records/internal/domain/attestations"
	"vet-records/internal/domain/booklets"
	"vet-records/internal/domain/idcards"
	"vet-records/internal/domain/invoices"
	"vet-records/internal/middleware"
	"vet-records/internal/pdfdoc"
	"vet-records/internal/platform/httpx"
	"vet-records/internal/platform/logger"
	"vet-records/internal/ports/files"
	"vet-records/internal/ports/store"
	"vet-records/internal/uploads"
)

type Options struct {
	// Opcional: si viene nil se usa el store in-memory.
	Store store.DocumentStore

	Logger logger.Logger
	Render pdfdoc.RenderConfig

	// Files resuelve fotos, sellos y firmas. Nil => disco bajo UploadDir.
	Files     files.Resolver
	UploadDir string
	// OutputDir es donde el generador deja los PDF temporales.
	OutputDir string
	// Renderer permite cambiar el backend en tests. Nil => gofpdf.
	Renderer pdfdoc.Renderer
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	st := opts.Store
	if st == nil {
		st = mem.NewDocumentStore()
	}
	if opts.UploadDir == "" {
		opts.UploadDir = "static/uploads"
	}
	if opts.OutputDir == "" {
		opts.OutputDir = os.TempDir()
	}
	res := opts.Files
	if res == nil {
		res = filesadapter.NewLocal(opts.UploadDir)
	}
	if opts.Render.PageSize == "" {
		opts.Render = pdfdoc.DefaultRenderConfig()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))
	r.Use(middleware.RequestLog(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/stats", statsHandler(st, log))
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	gen := pdfdoc.NewGenerator(opts.Renderer, opts.OutputDir, log.With(map[string]any{"component": "pdf"}))
	up := uploads.New(opts.UploadDir, log.With(map[string]any{"component": "uploads"}))

	// Services por módulo
	bookletsSvc := booklets.NewService(st, gen, res, opts.Render)
	invoicesSvc := invoices.NewService(st, bookletsSvc, gen, res, opts.Render)
	attestationsSvc := attestations.NewService(st, gen, res, opts.Render)
	cardsSvc := idcards.NewService(st, gen, res, opts.Render)

	// Rutas por módulo
	booklets.RegisterRoutes(r, bookletsSvc, up, log)
	invoices.RegisterRoutes(r, invoicesSvc, log)
	attestations.RegisterRoutes(r, attestationsSvc, up, log)
	idcards.RegisterRoutes(r, cardsSvc, log)

	return r
}

// statsHandler godoc
// @Summary Cantidad de documentos por colección
// @Tags system
// @Produce json
// @Success 200 {object} map[string]int
// @Router /stats [get]
func statsHandler(st store.DocumentStore, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := make(map[string]int, len(store.Collections()))
		for _, c := range store.Collections() {
			n, err := st.Count(r.Context(), c)
			if err != nil {
				log.Error("stats count failed", map[string]any{"collection": c, "error": err})
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			out[c] = n
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}
