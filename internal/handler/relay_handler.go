package handler

import (
	"log"
	"net/http"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/relay"

	"github.com/gorilla/websocket"
)

type RelayHandler struct {
	hub      *relay.Hub
	upgrader websocket.Upgrader
}

// NewRelayHandler acepta los orígenes de ALLOWED_ORIGINS ("*" = cualquiera).
func NewRelayHandler(hub *relay.Hub, allowedOrigins []string) *RelayHandler {
	return &RelayHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			// clientes que no son navegador
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// @Summary Relay en tiempo real (WebSocket)
// @Description Chat, pizarra y señalización de llamadas por sala (booking:<id>, writing-match:<id>, image-match:<id>). Mensajes JSON {event, room, to, from, data}.
// @Tags relay
// @Param token query string true "JWT (el navegador no permite el header Authorization en WS)"
// @Success 101
// @Router /ws [get]
func (h *RelayHandler) Serve(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade ya respondió con el error
		log.Printf("[relay] no se pudo abrir WebSocket: %v", err)
		return
	}

	h.hub.Serve(r.Context(), conn, userID, RoleFromContext(r.Context()))
}
