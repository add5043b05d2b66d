package idcards

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vet-records/internal/platform/httpx"
	"vet-records/internal/platform/logger"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/id-cards", func(cr chi.Router) {
		cr.Post("/", createCardHandler(svc, log))
		cr.Get("/", listCardsHandler(svc))
		cr.Get("/{cardID}/pdf", cardPDFHandler(svc, log))
	})
}

type createCardRequest struct {
	Owner          Owner          `json:"owner"`
	Vet            Vet            `json:"vet"`
	Identification Identification `json:"identification"`
	Animal         Animal         `json:"animal"`
}

// createCardHandler godoc
// @Summary Crear carta de identificación
// @Description Guarda la carta y devuelve la variante pedida: upper (parte alta), lower (parte desprendible) o complete. El chip es opcional; sin él no se imprime código de barras.
// @Tags id-cards
// @Accept json
// @Produce application/pdf
// @Param variant query string false "upper | lower | complete (por defecto complete)"
// @Param payload body createCardRequest true "Datos de la carta"
// @Success 200 {file} file "PDF de la carta"
// @Failure 400 {string} string "invalid json / invalid variant"
// @Failure 500 {string} string "internal error"
// @Router /id-cards [post]
func createCardHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := ParseVariant(r.URL.Query().Get("variant"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var req createCardRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Create(r.Context(), Card{
			Owner:          req.Owner,
			Vet:            req.Vet,
			Identification: req.Identification,
			Animal:         req.Animal,
		})
		if err != nil {
			log.Error("id card create failed", map[string]any{"error": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		httpx.ServePDF(w, log, svc.BuildPDF(c, c.ID, v), DownloadName(c, v))
	}
}

// listCardsHandler godoc
// @Summary Listar cartas de identificación
// @Tags id-cards
// @Produce json
// @Param limit query int false "Máximo (1-200). Por defecto 50"
// @Success 200 {array} Card
// @Router /id-cards [get]
func listCardsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), httpx.QueryLimit(r, 50))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if items == nil {
			items = []Card{}
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	}
}

// cardPDFHandler godoc
// @Summary Descargar PDF de la carta
// @Tags id-cards
// @Produce application/pdf
// @Param cardID path string true "ID de la carta"
// @Param variant query string false "upper | lower | complete"
// @Success 200 {file} file "PDF"
// @Failure 400 {string} string "invalid variant"
// @Failure 404 {string} string "id card not found"
// @Router /id-cards/{cardID}/pdf [get]
func cardPDFHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := ParseVariant(r.URL.Query().Get("variant"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		c, err := svc.GetByID(r.Context(), chi.URLParam(r, "cardID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		httpx.ServePDF(w, log, svc.BuildPDF(c, c.ID, v), DownloadName(c, v))
	}
}
