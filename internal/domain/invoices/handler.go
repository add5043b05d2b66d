package invoices

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vet-records/internal/platform/httpx"
	"vet-records/internal/platform/logger"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/invoices", func(ir chi.Router) {
		ir.Post("/", createInvoiceHandler(svc, log))
		ir.Get("/", listInvoicesHandler(svc))
		ir.Get("/{invoiceID}", getInvoiceHandler(svc))
		ir.Get("/{invoiceID}/pdf", invoicePDFHandler(svc, log))
	})
}

// Los totales no se aceptan en la entrada: siempre se recalculan.
type createInvoiceRequest struct {
	BookletID string     `json:"booklet_id"`
	Issuer    Issuer     `json:"issuer"`
	Client    Client     `json:"client"`
	Delivery  Delivery   `json:"delivery"`
	Items     []LineItem `json:"items"`
	Payment   Payment    `json:"payment"`
}

// createInvoiceHandler godoc
// @Summary Crear factura
// @Description Guarda la factura y devuelve el PDF. Si se envía booklet_id se copian los datos del animal del carnet. Las líneas sin descripción se descartan y los totales se recalculan (TVA 20%).
// @Tags invoices
// @Accept json
// @Produce application/pdf
// @Param payload body createInvoiceRequest true "Datos de la factura"
// @Success 200 {file} file "PDF de la factura"
// @Failure 400 {string} string "invalid json / cantidades negativas"
// @Failure 500 {string} string "internal error"
// @Router /invoices [post]
func createInvoiceHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createInvoiceRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		inv, err := svc.Create(r.Context(), Invoice{
			BookletID: req.BookletID,
			Issuer:    req.Issuer,
			Client:    req.Client,
			Delivery:  req.Delivery,
			Items:     req.Items,
			Payment:   req.Payment,
		})
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				log.Error("invoice create failed", map[string]any{"error": err})
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		httpx.ServePDF(w, log, svc.BuildPDF(inv, inv.ID), DownloadName(inv))
	}
}

// listInvoicesHandler godoc
// @Summary Listar facturas
// @Tags invoices
// @Produce json
// @Param limit query int false "Máximo de facturas (1-200). Por defecto 50"
// @Success 200 {array} Invoice
// @Router /invoices [get]
func listInvoicesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), httpx.QueryLimit(r, 50))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if items == nil {
			items = []Invoice{}
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	}
}

// getInvoiceHandler godoc
// @Summary Obtener factura
// @Tags invoices
// @Produce json
// @Param invoiceID path string true "ID de la factura"
// @Success 200 {object} Invoice
// @Failure 404 {string} string "invoice not found"
// @Router /invoices/{invoiceID} [get]
func getInvoiceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inv, err := svc.GetByID(r.Context(), chi.URLParam(r, "invoiceID"))
		if err != nil {
			writeLookupError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, inv)
	}
}

// invoicePDFHandler godoc
// @Summary Descargar PDF de la factura
// @Tags invoices
// @Produce application/pdf
// @Param invoiceID path string true "ID de la factura"
// @Success 200 {file} file "PDF de la factura"
// @Failure 404 {string} string "invoice not found"
// @Router /invoices/{invoiceID}/pdf [get]
func invoicePDFHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inv, err := svc.GetByID(r.Context(), chi.URLParam(r, "invoiceID"))
		if err != nil {
			writeLookupError(w, err)
			return
		}
		httpx.ServePDF(w, log, svc.BuildPDF(inv, inv.ID), DownloadName(inv))
	}
}

func writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}
