package gql

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/graphql-go/graphql"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CallerFunc saca el usuario autenticado del request (lo pone el middleware JWT).
type CallerFunc func(r *http.Request) (primitive.ObjectID, string, bool)

type Handler struct {
	schema graphql.Schema
	caller CallerFunc
}

func NewHandler(schema graphql.Schema, caller CallerFunc) *Handler {
	return &Handler{schema: schema, caller: caller}
}

type request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName"`
}

// ServeHTTP godoc
// @Summary Endpoint GraphQL (queries y mutations sobre exámenes, sesiones y partidas)
// @Tags graphql
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /graphql [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, role, ok := h.caller(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if req.Query == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}

	ctx := withCaller(r.Context(), Caller{UserID: userID, Role: role})
	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})
	if result.HasErrors() {
		log.Printf("[graphql] %s: %v", req.OperationName, result.Errors)
	}

	_ = json.NewEncoder(w).Encode(result)
}
