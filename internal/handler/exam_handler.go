package handler

import (
	"encoding/json"
	"net/http"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/models"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/service"

	"github.com/go-chi/chi/v5"
)

type ExamHandler struct {
	exams   *service.ExamService
	history *service.HistoryService
}

func NewExamHandler(exams *service.ExamService, history *service.HistoryService) *ExamHandler {
	return &ExamHandler{exams: exams, history: history}
}

func examKind(r *http.Request) models.ExamKind {
	return models.ExamKind(chi.URLParam(r, "kind"))
}

// @Summary Listar exámenes de práctica
// @Tags exams
// @Produce json
// @Param kind path string true "reading|writing|listening|speaking|image"
// @Param level query string false "nivel CEFR (A1..C2)"
// @Param limit query int false "límite (default: 20)"
// @Param offset query int false "offset (default: 0)"
// @Success 200 {array} models.Exam
// @Router /exams/{kind} [get]
func (h *ExamHandler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	limit, offset := page(r, 20)
	items, err := h.exams.List(r.Context(), examKind(r), r.URL.Query().Get("level"), limit, offset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(items)
}

// @Summary Obtener un examen (sin respuestas)
// @Tags exams
// @Produce json
// @Param kind path string true "reading|writing|listening|speaking|image"
// @Param id path string true "examId (ObjectID)"
// @Success 200 {object} models.Exam
// @Failure 404 {object} map[string]string
// @Router /exams/{kind}/{id} [get]
func (h *ExamHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	e, err := h.exams.Get(r.Context(), examKind(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(e)
}

// @Summary Cargar un examen (ADMIN)
// @Tags exams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param kind path string true "reading|writing|listening|speaking|image"
// @Param body body models.Exam true "examen con respuestas"
// @Success 201 {object} models.Exam
// @Router /admin/exams/{kind} [post]
func (h *ExamHandler) Create(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req models.Exam
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "body inválido", http.StatusBadRequest)
		return
	}

	e, err := h.exams.Create(r.Context(), examKind(r), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(e)
}

type attemptRequest struct {
	Answers []string `json:"answers"`
}

// @Summary Enviar un intento de examen
// @Description Corrige, guarda el History y sube el progreso de la skill.
// @Tags exams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param kind path string true "reading|writing|listening|speaking|image"
// @Param id path string true "examId (ObjectID)"
// @Param body body attemptRequest true "respuestas en orden"
// @Success 201 {object} models.AttemptResult
// @Router /me/exams/{kind}/{id}/attempts [post]
func (h *ExamHandler) SubmitAttempt(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req attemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "body inválido", http.StatusBadRequest)
		return
	}

	res, err := h.history.SubmitAttempt(r.Context(), userID, examKind(r), id, req.Answers)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(res)
}

// @Summary Mi historial
// @Tags exams
// @Security BearerAuth
// @Produce json
// @Param testModelName query string false "TCFReading|TCFWriting|...|WritingMatch|ImageMatch"
// @Param limit query int false "límite (default: 50)"
// @Param offset query int false "offset (default: 0)"
// @Success 200 {array} models.HistoryEntry
// @Router /me/history [get]
func (h *ExamHandler) MyHistory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	limit, offset := page(r, 50)
	items, err := h.history.List(r.Context(), userID, r.URL.Query().Get("testModelName"), limit, offset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(items)
}
