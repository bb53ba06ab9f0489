package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/models"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func validClaims(id primitive.ObjectID, role string) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":  id.Hex(),
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
}

// echoUser responde con el userId/role que dejó el middleware.
func echoUser(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"userId": UserIDFromContext(r.Context()).Hex(),
		"role":   RoleFromContext(r.Context()),
	})
}

func TestJWTAuth(t *testing.T) {
	id := primitive.NewObjectID()
	good := signToken(t, testSecret, validClaims(id, models.UserTypeTrainee))

	tests := []struct {
		name     string
		header   string
		query    string
		wantCode int
	}{
		{"header bearer", "Bearer " + good, "", http.StatusOK},
		{"token por query (websocket)", "", "?token=" + good, http.StatusOK},
		{"sin token", "", "", http.StatusUnauthorized},
		{"otro secreto", "Bearer " + signToken(t, "otro", validClaims(id, "trainee")), "", http.StatusUnauthorized},
		{"expirado", "Bearer " + signToken(t, testSecret, jwt.MapClaims{
			"sub": id.Hex(), "exp": time.Now().Add(-time.Minute).Unix(),
		}), "", http.StatusUnauthorized},
		{"sub no es ObjectID", "Bearer " + signToken(t, testSecret, jwt.MapClaims{
			"sub": "42", "exp": time.Now().Add(time.Hour).Unix(),
		}), "", http.StatusUnauthorized},
		{"basura", "Bearer abc.def.ghi", "", http.StatusUnauthorized},
	}

	h := JWTAuth(testSecret)(http.HandlerFunc(echoUser))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("code = %d, want %d (%s)", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}
}

func TestJWTAuthPutsUserInContext(t *testing.T) {
	id := primitive.NewObjectID()
	var gotID primitive.ObjectID
	var gotRole string

	h := JWTAuth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = UserIDFromContext(r.Context())
		gotRole = RoleFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, validClaims(id, models.UserTypeTrainer)))
	h.ServeHTTP(httptest.NewRecorder(), req)

	if gotID != id || gotRole != models.UserTypeTrainer {
		t.Fatalf("got %s/%s, want %s/%s", gotID.Hex(), gotRole, id.Hex(), models.UserTypeTrainer)
	}
}

func TestAdminOnly(t *testing.T) {
	id := primitive.NewObjectID()
	h := JWTAuth(testSecret)(AdminOnly()(http.HandlerFunc(echoUser)))

	tests := []struct {
		role     string
		wantCode int
	}{
		{models.UserTypeAdmin, http.StatusOK},
		{models.UserTypeTrainer, http.StatusForbidden},
		{models.UserTypeTrainee, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, validClaims(id, tt.role)))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.wantCode {
				t.Fatalf("code = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}

type lookupUsers struct {
	byID map[primitive.ObjectID]models.User
	err  error
}

func (l lookupUsers) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	if l.err != nil {
		return nil, l.err
	}
	u, ok := l.byID[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	return &u, nil
}

func TestCurrentRoleOverridesToken(t *testing.T) {
	admin := models.User{ID: primitive.NewObjectID(), UserType: models.UserTypeAdmin}
	demoted := models.User{ID: primitive.NewObjectID(), UserType: models.UserTypeTrainee}
	users := lookupUsers{byID: map[primitive.ObjectID]models.User{admin.ID: admin, demoted.ID: demoted}}

	tests := []struct {
		name     string
		users    lookupUsers
		userID   primitive.ObjectID
		wantCode int
	}{
		{"sigue siendo admin", users, admin.ID, http.StatusOK},
		{"admin degradado", users, demoted.ID, http.StatusForbidden},
		{"usuario borrado", users, primitive.NewObjectID(), http.StatusUnauthorized},
		{"falla la base", lookupUsers{err: errors.New("mongo down")}, admin.ID, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := JWTAuth(testSecret)(CurrentRole(tt.users)(AdminOnly()(http.HandlerFunc(echoUser))))

			// el token todavía dice admin
			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, validClaims(tt.userID, models.UserTypeAdmin)))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.wantCode {
				t.Fatalf("code = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}

func TestOptionalJWT(t *testing.T) {
	id := primitive.NewObjectID()
	var got primitive.ObjectID
	h := OptionalJWT(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = UserIDFromContext(r.Context())
	}))

	tests := []struct {
		name   string
		header string
		want   primitive.ObjectID
	}{
		{"anónimo", "", primitive.NilObjectID},
		{"token válido", "Bearer " + signToken(t, testSecret, validClaims(id, "trainee")), id},
		{"token inválido sigue anónimo", "Bearer nope", primitive.NilObjectID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got = primitive.NilObjectID
			req := httptest.NewRequest(http.MethodPost, "/donations", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != http.StatusOK {
				t.Fatalf("code = %d", rec.Code)
			}
			if got != tt.want {
				t.Fatalf("user = %s, want %s", got.Hex(), tt.want.Hex())
			}
		})
	}
}

func TestCaller(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	if _, _, ok := Caller(req); ok {
		t.Fatal("expected no caller without token")
	}

	id := primitive.NewObjectID()
	req = withUser(req, id, models.UserTypeAdmin)
	got, role, ok := Caller(req)
	if !ok || got != id || role != models.UserTypeAdmin {
		t.Fatalf("Caller = %s %s %v", got.Hex(), role, ok)
	}
}
