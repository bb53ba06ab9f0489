package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/models"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ctxKey string

const (
	CtxUserID   ctxKey = "userId"
	CtxUserRole ctxKey = "role"
)

// bearerToken saca el token del header Authorization o, para el websocket
// (el navegador no deja mandar headers), del query param ?token=.
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return r.URL.Query().Get("token")
}

// parseToken valida firma y expiración y devuelve sub (ObjectID) y role.
func parseToken(secret []byte, tokenStr string) (primitive.ObjectID, string, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return primitive.NilObjectID, "", errInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return primitive.NilObjectID, "", errInvalidToken
	}

	subVal, _ := claims["sub"].(string)
	userID, err := primitive.ObjectIDFromHex(subVal)
	if err != nil {
		return primitive.NilObjectID, "", errInvalidToken
	}
	role, _ := claims["role"].(string)
	return userID, role, nil
}

var errInvalidToken = errors.New("invalid token")

func withUser(r *http.Request, userID primitive.ObjectID, role string) *http.Request {
	ctx := context.WithValue(r.Context(), CtxUserID, userID)
	ctx = context.WithValue(ctx, CtxUserRole, role)
	return r.WithContext(ctx)
}

// JWTAuth devuelve un middleware que valida el token JWT y
// mete userId (ObjectID) y role en el contexto.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	secretBytes := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r)
			if tokenStr == "" {
				http.Error(w, "missing or invalid Authorization header", http.StatusUnauthorized)
				return
			}

			userID, role, err := parseToken(secretBytes, tokenStr)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, withUser(r, userID, role))
		})
	}
}

// OptionalJWT mete el usuario si viene un token válido y si no sigue como anónimo
// (donaciones).
func OptionalJWT(secret string) func(http.Handler) http.Handler {
	secretBytes := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tokenStr := bearerToken(r); tokenStr != "" {
				if userID, role, err := parseToken(secretBytes, tokenStr); err == nil {
					r = withUser(r, userID, role)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserLookup trae el usuario actual desde la base.
type UserLookup interface {
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// CurrentRole reemplaza el role del token por el userType guardado, así un
// usuario degradado pierde permisos sin esperar a que venza el token.
// Va después de JWTAuth.
func CurrentRole(users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := UserIDFromContext(r.Context())
			if userID.IsZero() {
				next.ServeHTTP(w, r)
				return
			}

			u, err := users.GetUserByID(r.Context(), userID)
			if errors.Is(err, service.ErrNotFound) {
				http.Error(w, "user no longer exists", http.StatusUnauthorized)
				return
			}
			if err != nil {
				writeError(w, r, err)
				return
			}
			next.ServeHTTP(w, withUser(r, userID, u.UserType))
		})
	}
}

// AdminOnly solo deja pasar a userType == "admin".
func AdminOnly() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if RoleFromContext(r.Context()) != models.UserTypeAdmin {
				http.Error(w, "admin only", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserIDFromContext helper para sacar el userId del contexto.
func UserIDFromContext(ctx context.Context) primitive.ObjectID {
	if id, ok := ctx.Value(CtxUserID).(primitive.ObjectID); ok {
		return id
	}
	return primitive.NilObjectID
}

func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(CtxUserRole).(string)
	return role
}

func isAdmin(r *http.Request) bool {
	return RoleFromContext(r.Context()) == models.UserTypeAdmin
}

// Caller adapta el contexto al formato que usa /graphql.
func Caller(r *http.Request) (primitive.ObjectID, string, bool) {
	id := UserIDFromContext(r.Context())
	if id.IsZero() {
		return id, "", false
	}
	return id, RoleFromContext(r.Context()), true
}
