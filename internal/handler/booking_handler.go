package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/service"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingHandler struct {
	svc *service.BookingService
}

func NewBookingHandler(s *service.BookingService) *BookingHandler {
	return &BookingHandler{svc: s}
}

type createBookingRequest struct {
	TrainerID       string    `json:"trainerId"`
	ScheduledAt     time.Time `json:"scheduledAt"`
	DurationMinutes int       `json:"durationMinutes"`
	Topic           string    `json:"topic"`
}

// @Summary Reservar sesión con un tutor
// @Tags bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body createBookingRequest true "tutor, fecha (RFC 3339) y duración"
// @Success 201 {object} models.Booking
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "body inválido", http.StatusBadRequest)
		return
	}
	trainerID, err := primitive.ObjectIDFromHex(req.TrainerID)
	if err != nil {
		http.Error(w, "trainerId inválido", http.StatusBadRequest)
		return
	}

	b, err := h.svc.Create(r.Context(), userID, service.CreateBookingData{
		TrainerID:       trainerID,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
		Topic:           req.Topic,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(b)
}

// @Summary Mis sesiones (como trainee o tutor)
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Param status query string false "pending|confirmed|completed (default: todas)"
// @Param limit query int false "límite (default: 20)"
// @Param offset query int false "offset (default: 0)"
// @Success 200 {array} models.Booking
// @Router /bookings [get]
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	limit, offset := page(r, 20)
	items, err := h.svc.List(r.Context(), userID, r.URL.Query().Get("status"), limit, offset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(items)
}

// @Summary Obtener una sesión
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Param id path string true "bookingId (ObjectID)"
// @Success 200 {object} models.Booking
// @Failure 403 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	b, err := h.svc.Get(r.Context(), userID, isAdmin(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(b)
}

type rsvpRequest struct {
	Attending bool `json:"attending"`
}

// @Summary Confirmar / retirar asistencia
// @Description Con los dos RSVP en true la sesión pasa a confirmed.
// @Tags bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "bookingId (ObjectID)"
// @Param body body rsvpRequest true "asistencia"
// @Success 200 {object} models.Booking
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/rsvp [post]
func (h *BookingHandler) RSVP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req rsvpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "body inválido", http.StatusBadRequest)
		return
	}

	b, err := h.svc.RSVP(r.Context(), userID, id, req.Attending)
	if err != nil {
		writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(b)
}

// @Summary Marcar sesión como completada
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Param id path string true "bookingId (ObjectID)"
// @Success 200 {object} models.Booking
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/complete [post]
func (h *BookingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	b, err := h.svc.Complete(r.Context(), userID, isAdmin(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(b)
}
