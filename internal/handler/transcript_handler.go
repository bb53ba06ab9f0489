package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/service"
)

type TranscriptHandler struct {
	svc *service.TranscriptService
}

func NewTranscriptHandler(s *service.TranscriptService) *TranscriptHandler {
	return &TranscriptHandler{svc: s}
}

// @Summary Mi transcript
// @Description Resumen por skill, récord H2H y nivel CEFR estimado.
// @Tags transcripts
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Transcript
// @Router /me/transcript [get]
func (h *TranscriptHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	t, err := h.svc.Build(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(t)
}

// @Summary Archivar mi transcript
// @Description Guarda el JSON en el bucket y devuelve un link firmado.
// @Tags transcripts
// @Security BearerAuth
// @Produce json
// @Success 201 {object} models.TranscriptArchive
// @Failure 503 {object} map[string]string "storage no configurado"
// @Router /me/transcript/archive [post]
func (h *TranscriptHandler) Archive(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	a, err := h.svc.Archive(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(a)
}

// @Summary Mis transcripts archivados
// @Tags transcripts
// @Security BearerAuth
// @Produce json
// @Param limit query int false "límite (default: 20)"
// @Success 200 {array} models.TranscriptArchive
// @Router /me/transcripts [get]
func (h *TranscriptHandler) ListArchives(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 20
	}
	items, err := h.svc.ListArchives(r.Context(), userID, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(items)
}
