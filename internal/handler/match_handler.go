package handler

import (
	"encoding/json"
	"net/http"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/models"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/service"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MatchHandler sirve los dos tipos de partida H2H (writing / image) bajo
// /matches/{kind}.
type MatchHandler struct {
	svc *service.MatchService
}

func NewMatchHandler(s *service.MatchService) *MatchHandler {
	return &MatchHandler{svc: s}
}

func matchKind(r *http.Request) models.MatchKind {
	return models.MatchKind(chi.URLParam(r, "kind"))
}

type createMatchRequest struct {
	OpponentID string `json:"opponentId"`
	ExamID     string `json:"examId"`
}

// @Summary Desafiar a otro usuario
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param kind path string true "writing|image"
// @Param body body createMatchRequest true "oponente y examen"
// @Success 201 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /matches/{kind} [post]
func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req createMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "body inválido", http.StatusBadRequest)
		return
	}
	opponentID, err := primitive.ObjectIDFromHex(req.OpponentID)
	if err != nil {
		http.Error(w, "opponentId inválido", http.StatusBadRequest)
		return
	}
	examID, err := primitive.ObjectIDFromHex(req.ExamID)
	if err != nil {
		http.Error(w, "examId inválido", http.StatusBadRequest)
		return
	}

	m, err := h.svc.Create(r.Context(), matchKind(r), userID, opponentID, examID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(m)
}

// @Summary Mis partidas
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param kind path string true "writing|image"
// @Param status query string false "pending|active|completed (default: todas)"
// @Param limit query int false "límite (default: 20)"
// @Param offset query int false "offset (default: 0)"
// @Success 200 {array} models.Match
// @Router /matches/{kind} [get]
func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	limit, offset := page(r, 20)
	items, err := h.svc.List(r.Context(), matchKind(r), userID, r.URL.Query().Get("status"), limit, offset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(items)
}

// @Summary Obtener una partida
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param kind path string true "writing|image"
// @Param id path string true "matchId (ObjectID)"
// @Success 200 {object} models.Match
// @Failure 403 {object} map[string]string
// @Router /matches/{kind}/{id} [get]
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	m, err := h.svc.Get(r.Context(), matchKind(r), userID, isAdmin(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(m)
}

type matchAction func(svc *service.MatchService, r *http.Request, kind models.MatchKind, userID, id primitive.ObjectID) (*models.Match, error)

// transition resuelve usuario, id y kind, y corre la acción sobre la partida.
func (h *MatchHandler) transition(action matchAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		m, err := action(h.svc, r, matchKind(r), userID, id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		_ = json.NewEncoder(w).Encode(m)
	}
}

// @Summary Aceptar un desafío (solo el oponente)
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param kind path string true "writing|image"
// @Param id path string true "matchId (ObjectID)"
// @Success 200 {object} models.Match
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /matches/{kind}/{id}/accept [post]
func (h *MatchHandler) Accept() http.HandlerFunc {
	return h.transition(func(svc *service.MatchService, r *http.Request, kind models.MatchKind, userID, id primitive.ObjectID) (*models.Match, error) {
		return svc.Accept(r.Context(), kind, userID, id)
	})
}

// @Summary Rechazar / cancelar un desafío pendiente
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param kind path string true "writing|image"
// @Param id path string true "matchId (ObjectID)"
// @Success 200 {object} models.Match
// @Failure 409 {object} map[string]string
// @Router /matches/{kind}/{id}/withdraw [post]
func (h *MatchHandler) Withdraw() http.HandlerFunc {
	return h.transition(func(svc *service.MatchService, r *http.Request, kind models.MatchKind, userID, id primitive.ObjectID) (*models.Match, error) {
		return svc.Withdraw(r.Context(), kind, userID, id)
	})
}

type answerRequest struct {
	QuestionIndex int    `json:"questionIndex"`
	Answer        string `json:"answer"`
}

// @Summary Responder la pregunta actual
// @Description questionIndex debe ser la pregunta actual del jugador.
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param kind path string true "writing|image"
// @Param id path string true "matchId (ObjectID)"
// @Param body body answerRequest true "respuesta"
// @Success 200 {object} models.Match
// @Failure 409 {object} map[string]string
// @Router /matches/{kind}/{id}/answers [post]
func (h *MatchHandler) SubmitAnswer() http.HandlerFunc {
	return h.transition(func(svc *service.MatchService, r *http.Request, kind models.MatchKind, userID, id primitive.ObjectID) (*models.Match, error) {
		var req answerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, service.ErrInvalidInput
		}
		return svc.SubmitAnswer(r.Context(), kind, userID, id, req.QuestionIndex, req.Answer)
	})
}

// @Summary Terminar la partida (timer del cliente)
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param kind path string true "writing|image"
// @Param id path string true "matchId (ObjectID)"
// @Success 200 {object} models.Match
// @Failure 409 {object} map[string]string
// @Router /matches/{kind}/{id}/finish [post]
func (h *MatchHandler) Finish() http.HandlerFunc {
	return h.transition(func(svc *service.MatchService, r *http.Request, kind models.MatchKind, userID, id primitive.ObjectID) (*models.Match, error) {
		return svc.Finish(r.Context(), kind, userID, id)
	})
}
