package handler

import (
	"encoding/json"
	"net/http"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/service"

	"github.com/go-chi/chi/v5"
)

type DonationHandler struct {
	svc *service.DonationService
}

func NewDonationHandler(s *service.DonationService) *DonationHandler {
	return &DonationHandler{svc: s}
}

type createDonationRequest struct {
	DonorName   string `json:"donorName"`
	AmountCents int64  `json:"amountCents"`
	Currency    string `json:"currency"`
	Message     string `json:"message"`
}

// @Summary Registrar una donación
// @Description Queda pending hasta que el proveedor confirme el cobro. Con token se asocia al usuario.
// @Tags donations
// @Accept json
// @Produce json
// @Param body body createDonationRequest true "monto en centavos y moneda (default CAD)"
// @Success 201 {object} models.Donation
// @Failure 400 {object} map[string]string
// @Router /donations [post]
func (h *DonationHandler) Create(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req createDonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "body inválido", http.StatusBadRequest)
		return
	}

	data := service.CreateDonationData{
		DonorName:   req.DonorName,
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		Message:     req.Message,
	}
	if id := UserIDFromContext(r.Context()); !id.IsZero() {
		data.DonorID = &id
	}

	d, err := h.svc.Create(r.Context(), data)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(d)
}

// @Summary Confirmar cobro de una donación (admin / callback del proveedor)
// @Description Idempotente: repetirlo devuelve la donación ya capturada.
// @Tags donations
// @Security BearerAuth
// @Produce json
// @Param reference path string true "referencia de la donación"
// @Success 200 {object} models.Donation
// @Failure 404 {object} map[string]string
// @Router /admin/donations/{reference}/capture [post]
func (h *DonationHandler) Capture(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	d, err := h.svc.Capture(r.Context(), chi.URLParam(r, "reference"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(d)
}

// @Summary Listar donaciones (admin)
// @Tags donations
// @Security BearerAuth
// @Produce json
// @Param status query string false "pending|captured|all (default: all)"
// @Param limit query int false "límite (default: 50)"
// @Param offset query int false "offset (default: 0)"
// @Success 200 {array} models.Donation
// @Router /admin/donations [get]
func (h *DonationHandler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	limit, offset := page(r, 50)
	items, err := h.svc.List(r.Context(), r.URL.Query().Get("status"), limit, offset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(items)
}

// @Summary Totales capturados por moneda (admin)
// @Tags donations
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.DonationTotal
// @Router /admin/donations/totals [get]
func (h *DonationHandler) Totals(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	totals, err := h.svc.Totals(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(totals)
}
