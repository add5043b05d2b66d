package booklets

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"vet-records/internal/platform/httpx"
	"vet-records/internal/platform/logger"
	"vet-records/internal/uploads"
)

func RegisterRoutes(r chi.Router, svc *Service, up *uploads.Store, log logger.Logger) {
	r.Route("/booklets", func(br chi.Router) {
		br.Post("/", createBookletHandler(svc, up, log))
		br.Get("/", listBookletsHandler(svc))
		br.Get("/{bookletID}", getBookletHandler(svc))
		br.Delete("/{bookletID}", deleteBookletHandler(svc))
		br.Get("/{bookletID}/pdf", bookletPDFHandler(svc, log))
	})
}

// Las imágenes llegan como data URL y se guardan antes de persistir el carnet.
type createBookletRequest struct {
	Animal             Animal              `json:"animal"`
	Owner              Owner               `json:"owner"`
	Cabinet            Cabinet             `json:"cabinet"`
	Health             Health              `json:"health"`
	Vaccinations       []Vaccination       `json:"vaccinations"`
	ParasiteTreatments []ParasiteTreatment `json:"parasite_treatments"`
	Photo              string              `json:"photo"`
	Stamp              string              `json:"stamp"`
	Signature          string              `json:"signature"`
}

// createBookletHandler godoc
// @Summary Crear carnet de salud
// @Description Guarda el carnet (foto, sello y firma opcionales como data URL) y devuelve el PDF generado. Las vacunas y tratamientos sin tipo se descartan.
// @Tags booklets
// @Accept json
// @Produce application/pdf
// @Param payload body createBookletRequest true "Datos del carnet"
// @Success 200 {file} file "PDF del carnet"
// @Failure 400 {string} string "invalid json / animal.name requerido"
// @Failure 500 {string} string "internal error"
// @Router /booklets [post]
func createBookletHandler(svc *Service, up *uploads.Store, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createBookletRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Animal.Name) == "" {
			http.Error(w, "animal.name is required", http.StatusBadRequest)
			return
		}

		in := Booklet{
			Animal:             req.Animal,
			Owner:              req.Owner,
			Cabinet:            req.Cabinet,
			Health:             req.Health,
			Vaccinations:       req.Vaccinations,
			ParasiteTreatments: req.ParasiteTreatments,
		}
		if up != nil {
			in.PhotoRef = up.SavePhoto(req.Animal.Name, req.Photo)
			in.StampRef = up.SaveImage("stamp", req.Stamp)
			in.SignatureRef = up.SaveImage("signature", req.Signature)
		}

		b, err := svc.Create(r.Context(), in)
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				log.Error("booklet create failed", map[string]any{"error": err})
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		httpx.ServePDF(w, log, svc.BuildPDF(b, b.ID), DownloadName(b))
	}
}

// listBookletsHandler godoc
// @Summary Listar carnets
// @Description Lista los carnets guardados, los más recientes primero.
// @Tags booklets
// @Produce json
// @Param limit query int false "Máximo de carnets (1-200). Por defecto 50"
// @Success 200 {array} Booklet
// @Failure 500 {string} string "internal error"
// @Router /booklets [get]
func listBookletsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), httpx.QueryLimit(r, 50))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if items == nil {
			items = []Booklet{}
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	}
}

// getBookletHandler godoc
// @Summary Obtener carnet
// @Tags booklets
// @Produce json
// @Param bookletID path string true "ID del carnet"
// @Success 200 {object} Booklet
// @Failure 404 {string} string "booklet not found"
// @Router /booklets/{bookletID} [get]
func getBookletHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := svc.GetByID(r.Context(), chi.URLParam(r, "bookletID"))
		if err != nil {
			writeLookupError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, b)
	}
}

// deleteBookletHandler godoc
// @Summary Eliminar carnet
// @Tags booklets
// @Param bookletID path string true "ID del carnet"
// @Success 204 "sin contenido"
// @Failure 404 {string} string "booklet not found"
// @Router /booklets/{bookletID} [delete]
func deleteBookletHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "bookletID")); err != nil {
			writeLookupError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// bookletPDFHandler godoc
// @Summary Descargar PDF del carnet
// @Description Regenera el PDF a partir del carnet guardado.
// @Tags booklets
// @Produce application/pdf
// @Param bookletID path string true "ID del carnet"
// @Success 200 {file} file "PDF del carnet"
// @Failure 404 {string} string "booklet not found"
// @Router /booklets/{bookletID}/pdf [get]
func bookletPDFHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := svc.GetByID(r.Context(), chi.URLParam(r, "bookletID"))
		if err != nil {
			writeLookupError(w, err)
			return
		}
		httpx.ServePDF(w, log, svc.BuildPDF(b, b.ID), DownloadName(b))
	}
}

func writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}
