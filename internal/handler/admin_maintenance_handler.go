package handler

import (
	"net/http"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/service"

	"github.com/go-chi/chi/v5"
)

// AdminMaintenanceHandler expone endpoints de mantenimiento.
type AdminMaintenanceHandler struct {
	svc *service.AdminMaintenanceService
}

// NewAdminMaintenanceHandler crea el handler.
func NewAdminMaintenanceHandler(svc *service.AdminMaintenanceService) *AdminMaintenanceHandler {
	return &AdminMaintenanceHandler{svc: svc}
}

// @Summary Resumen de estados
// @Description Conteo por estado de bookings y de cada tipo de match.
// @Tags admin-maintenance
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.MaintenanceSummary
// @Failure 500 {string} string "error interno"
// @Router /admin/maintenance/summary [get]
// GET /admin/maintenance/summary
func (h *AdminMaintenanceHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summary(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// @Summary Correr el sweeper ahora
// @Description Vence matches pendientes/activos fuera de plazo y completa bookings confirmados ya terminados.
// @Tags admin-maintenance
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.SweepResult
// @Failure 500 {string} string "error interno"
// @Router /admin/maintenance/sweep [post]
// POST /admin/maintenance/sweep
func (h *AdminMaintenanceHandler) PostSweep(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Sweep(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Helper para montar rutas en main.go
func MountAdminMaintenanceRoutes(r chi.Router, h *AdminMaintenanceHandler) {
	r.Route("/admin/maintenance", func(r chi.Router) {
		r.Get("/summary", h.GetSummary)
		r.Post("/sweep", h.PostSweep)
	})
}
