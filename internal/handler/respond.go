package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/models"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/service"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Utilidad pequeña para respuestas JSON.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor traduce errores de servicio / modelo a códigos HTTP.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, models.ErrNegativeScore):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, models.ErrNotParticipant),
		errors.Is(err, models.ErrOnlyOpponent):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrNotPending),
		errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrStaleAnswer),
		errors.Is(err, models.ErrPlayerFinished),
		errors.Is(err, models.ErrMatchExpired),
		errors.Is(err, models.ErrMatchInProgress):
		return http.StatusConflict
	case errors.Is(err, service.ErrStorageDisabled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		log.Printf("[http] %s %s: %v", r.Method, r.URL.Path, err)
		http.Error(w, "internal error", code)
		return
	}
	http.Error(w, err.Error(), code)
}

// currentUser corta con 401 si no hay usuario en el contexto.
func currentUser(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id := UserIDFromContext(r.Context())
	if id.IsZero() {
		http.Error(w, "no user in context", http.StatusUnauthorized)
		return id, false
	}
	return id, true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		http.Error(w, "id inválido", http.StatusBadRequest)
		return id, false
	}
	return id, true
}

// page lee limit/offset con el default de cada endpoint.
func page(r *http.Request, defLimit int) (int, int) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 {
		limit = defLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
