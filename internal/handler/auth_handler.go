package handler

import (
	"encoding/json"
	"net/http"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(s *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: s}
}

type registerRequest struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	UserType      string `json:"userType"`
	LanguageLevel string `json:"languageLevel"`
}

// @Summary Register
// @Description Crea un usuario nuevo (trainee o pendingTutor)
// @Tags auth
// @Accept json
// @Produce json
// @Param body body registerRequest true "datos"
// @Success 201 {object} models.User
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	u, err := h.svc.Register(r.Context(), service.RegisterUserData{
		Username:      req.Username,
		Email:         req.Email,
		Password:      req.Password,
		UserType:      req.UserType,
		LanguageLevel: req.LanguageLevel,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(u)
}

type loginRequest struct {
	// email o username
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

// @Summary Login
// @Description Acepta email o username en identifier
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "credenciales"
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	identifier := req.Identifier
	if identifier == "" {
		identifier = req.Email
	}

	token, u, err := h.svc.Login(r.Context(), identifier, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"token": token,
		"user":  u,
	})
}

// @Summary Mi perfil
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.User
// @Router /me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	u, err := h.svc.GetUserByID(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(u)
}

type updateProfileRequest struct {
	Username      *string `json:"username"`
	Email         *string `json:"email"`
	Password      *string `json:"password"`
	ProfileImage  *string `json:"profileImage"`
	LanguageLevel *string `json:"languageLevel"`
}

// @Summary Actualizar mi perfil
// @Description Todos los campos son opcionales.
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body updateProfileRequest true "datos a actualizar"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /me [put]
func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	u, err := h.svc.UpdateProfile(r.Context(), userID, service.UpdateProfileData{
		Username:      req.Username,
		Email:         req.Email,
		Password:      req.Password,
		ProfileImage:  req.ProfileImage,
		LanguageLevel: req.LanguageLevel,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(u)
}

// @Summary Listar usuarios (ADMIN)
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param userType query string false "trainee|trainer|admin|pendingTutor (default: todos)"
// @Param q query string false "búsqueda por email/username"
// @Param limit query int false "límite (default: 20)"
// @Param offset query int false "offset (default: 0)"
// @Success 200 {array} models.User
// @Router /users [get]
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	limit, offset := page(r, 20)
	users, err := h.svc.ListUsers(r.Context(), r.URL.Query().Get("userType"), r.URL.Query().Get("q"), limit, offset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(users)
}

// @Summary Obtener usuario por id (ADMIN)
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path string true "userId (ObjectID)"
// @Success 200 {object} models.User
// @Router /users/{id} [get]
func (h *AuthHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	u, err := h.svc.GetUserByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(u)
}

type adminUpdateRequest struct {
	UserType      *string `json:"userType"`
	LanguageLevel *string `json:"languageLevel"`
}

// @Summary Cambiar tipo / nivel de un usuario (ADMIN)
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "userId (ObjectID)"
// @Param body body adminUpdateRequest true "datos a actualizar"
// @Success 200 {object} models.User
// @Router /users/{id} [put]
func (h *AuthHandler) AdminUpdateUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req adminUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	u, err := h.svc.AdminUpdateUser(r.Context(), id, service.AdminUpdateData{
		UserType:      req.UserType,
		LanguageLevel: req.LanguageLevel,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(u)
}

// @Summary Listar tutores
// @Tags users
// @Produce json
// @Param q query string false "búsqueda por email/username"
// @Param limit query int false "límite (default: 20)"
// @Param offset query int false "offset (default: 0)"
// @Success 200 {array} models.User
// @Router /trainers [get]
func (h *AuthHandler) ListTrainers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	limit, offset := page(r, 20)
	users, err := h.svc.ListTrainers(r.Context(), r.URL.Query().Get("q"), limit, offset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(users)
}
