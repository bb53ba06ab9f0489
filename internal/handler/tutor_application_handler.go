package handler

import (
	"encoding/json"
	"net/http"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/models"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/service"
)

type TutorApplicationHandler struct {
	svc *service.TutorApplicationService
}

func NewTutorApplicationHandler(s *service.TutorApplicationService) *TutorApplicationHandler {
	return &TutorApplicationHandler{svc: s}
}

// ===== USER: postular y listar mis solicitudes =====

// @Summary Postular como tutor
// @Tags tutor-applications
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.TutorApplicationRequest true "motivación"
// @Success 201 {object} models.TutorApplication
// @Failure 409 {object} map[string]string "ya hay una solicitud abierta"
// @Router /me/tutor-application [post]
func (h *TutorApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req models.TutorApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Motivation == "" {
		http.Error(w, "body inválido (motivation requerido)", http.StatusBadRequest)
		return
	}

	app, err := h.svc.Apply(r.Context(), userID, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(app)
}

// @Summary Listar mis solicitudes de tutor
// @Tags tutor-applications
// @Security BearerAuth
// @Produce json
// @Param status query string false "pending|approved|rejected|all (default: all)"
// @Param limit query int false "límite (default: 20)"
// @Param offset query int false "offset (default: 0)"
// @Success 200 {array} models.TutorApplication
// @Router /me/tutor-applications [get]
func (h *TutorApplicationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	limit, offset := page(r, 20)
	items, err := h.svc.ListMine(r.Context(), userID, r.URL.Query().Get("status"), limit, offset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(items)
}

// ===== ADMIN: listar / aprobar / rechazar =====

// @Summary Listar solicitudes de tutor (admin)
// @Tags tutor-applications
// @Security BearerAuth
// @Produce json
// @Param status query string false "pending|approved|rejected|all (default: pending)"
// @Param limit query int false "límite (default: 20)"
// @Param offset query int false "offset (default: 0)"
// @Success 200 {array} models.TutorApplication
// @Router /admin/tutor-applications [get]
func (h *TutorApplicationHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	status := r.URL.Query().Get("status")
	if status == "" {
		status = models.TutorApplicationPending
	}
	limit, offset := page(r, 20)

	items, err := h.svc.ListAll(r.Context(), status, limit, offset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(items)
}

// @Summary Aprobar solicitud de tutor
// @Description El usuario pasa a trainer.
// @Tags tutor-applications
// @Security BearerAuth
// @Produce json
// @Param id path string true "applicationId (ObjectID)"
// @Success 200 {object} models.TutorApplication
// @Failure 409 {object} map[string]string "la solicitud no está pending"
// @Router /admin/tutor-applications/{id}/approve [post]
func (h *TutorApplicationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	adminID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	app, err := h.svc.Approve(r.Context(), adminID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(app)
}

// @Summary Rechazar solicitud de tutor
// @Description El usuario vuelve a trainee.
// @Tags tutor-applications
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "applicationId (ObjectID)"
// @Param body body models.RejectTutorApplication true "Motivo de rechazo"
// @Success 200 {object} models.TutorApplication
// @Failure 409 {object} map[string]string "la solicitud no está pending"
// @Router /admin/tutor-applications/{id}/reject [post]
func (h *TutorApplicationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	adminID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var body models.RejectTutorApplication
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "body inválido", http.StatusBadRequest)
		return
	}

	app, err := h.svc.Reject(r.Context(), adminID, id, body.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(app)
}
