package attestations

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vet-records/internal/platform/httpx"
	"vet-records/internal/platform/logger"
	"vet-records/internal/uploads"
)

func RegisterRoutes(r chi.Router, svc *Service, up *uploads.Store, log logger.Logger) {
	r.Route("/attestations", func(ar chi.Router) {
		ar.Post("/", createAttestationHandler(svc, up, log))
		ar.Get("/", listAttestationsHandler(svc))
		ar.Get("/{attestationID}/pdf", attestationPDFHandler(svc, log))
	})
}

type createAttestationRequest struct {
	Vet            Vet            `json:"vet"`
	Animal         Animal         `json:"animal"`
	OwnerName      string         `json:"owner_name"`
	Certifications Certifications `json:"certifications"`
	Date           string         `json:"date"`
	City           string         `json:"city"`
	Stamp          string         `json:"stamp"`     // data URL opcional
	Signature      string         `json:"signature"` // data URL opcional (pad de firma)
}

// createAttestationHandler godoc
// @Summary Crear attestation veterinaria
// @Description Guarda la attestation y devuelve el PDF de una página. Sello y firma se envían como data URL; si no se pueden decodificar se omiten.
// @Tags attestations
// @Accept json
// @Produce application/pdf
// @Param payload body createAttestationRequest true "Datos de la attestation"
// @Success 200 {file} file "PDF de la attestation"
// @Failure 400 {string} string "invalid json / animal.name requerido"
// @Failure 500 {string} string "internal error"
// @Router /attestations [post]
func createAttestationHandler(svc *Service, up *uploads.Store, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAttestationRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := Attestation{
			Vet:            req.Vet,
			Animal:         req.Animal,
			OwnerName:      req.OwnerName,
			Certifications: req.Certifications,
			Date:           req.Date,
			City:           req.City,
		}
		if up != nil {
			in.StampRef = up.SaveImage("cachet_attestation", req.Stamp)
			in.SignatureRef = up.SaveImage("signature_attestation", req.Signature)
		}

		a, err := svc.Create(r.Context(), in)
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				log.Error("attestation create failed", map[string]any{"error": err})
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		httpx.ServePDF(w, log, svc.BuildPDF(a, a.ID), DownloadName(a))
	}
}

// listAttestationsHandler godoc
// @Summary Listar attestations
// @Tags attestations
// @Produce json
// @Param limit query int false "Máximo (1-200). Por defecto 50"
// @Success 200 {array} Attestation
// @Router /attestations [get]
func listAttestationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), httpx.QueryLimit(r, 50))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if items == nil {
			items = []Attestation{}
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	}
}

// attestationPDFHandler godoc
// @Summary Descargar PDF de la attestation
// @Tags attestations
// @Produce application/pdf
// @Param attestationID path string true "ID de la attestation"
// @Success 200 {file} file "PDF"
// @Failure 404 {string} string "attestation not found"
// @Router /attestations/{attestationID}/pdf [get]
func attestationPDFHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "attestationID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		httpx.ServePDF(w, log, svc.BuildPDF(a, a.ID), DownloadName(a))
	}
}
