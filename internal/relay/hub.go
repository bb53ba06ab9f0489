package relay

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/metrics"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoomAuthorizer decide si un usuario puede entrar a una sala.
type RoomAuthorizer interface {
	CanJoin(ctx context.Context, userID primitive.ObjectID, role, room string) (bool, error)
}

// Broker reparte entregas entre instancias de la API.
type Broker interface {
	Publish(ctx context.Context, d Delivery) error
	Run(ctx context.Context, deliver func(Delivery)) error
}

// Hub mantiene las salas y rutea los mensajes del relay (chat, pizarra y
// señalización de llamadas). Sin broker todo se entrega en el proceso.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	rooms   map[string]map[*Client]struct{}

	auth   RoomAuthorizer
	broker Broker
}

func NewHub(auth RoomAuthorizer, broker Broker) *Hub {
	return &Hub{
		clients: map[*Client]struct{}{},
		rooms:   map[string]map[*Client]struct{}{},
		auth:    auth,
		broker:  broker,
	}
}

// Run escucha el broker hasta que se cancele ctx. Sin broker vuelve enseguida.
func (h *Hub) Run(ctx context.Context) error {
	if h.broker == nil {
		return nil
	}
	log.Println("[relay] fan-out por Redis activo")
	return h.broker.Run(ctx, h.deliverLocal)
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	metrics.RelayConnections.Inc()
}

// unregister saca al cliente de todas sus salas y cierra su canal de envío.
func (h *Hub) unregister(ctx context.Context, c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	rooms := make([]string, 0, len(c.rooms))
	for room := range c.rooms {
		rooms = append(rooms, room)
		h.removeFromRoom(c, room)
	}
	close(c.send)
	h.mu.Unlock()
	metrics.RelayConnections.Dec()

	for _, room := range rooms {
		h.route(ctx, Delivery{Room: room, Envelope: Envelope{Event: EventUserLeft, Room: room, From: c.UserID}})
	}
}

// removeFromRoom requiere h.mu tomado.
func (h *Hub) removeFromRoom(c *Client, room string) {
	delete(c.rooms, room)
	if members, ok := h.rooms[room]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

func (h *Hub) isMember(c *Client, room string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := c.rooms[room]
	return ok
}

// Dispatch procesa un mensaje entrante del cliente c.
func (h *Hub) Dispatch(ctx context.Context, c *Client, env Envelope) {
	env.From = c.UserID
	metrics.RelayMessages.WithLabelValues(env.Event).Inc()

	switch env.Event {
	case EventJoinRoom:
		h.join(ctx, c, env.Room)

	case EventLeaveRoom:
		h.leave(ctx, c, env.Room)

	case EventChatMessage:
		if h.requireMember(c, env.Room) {
			h.route(ctx, Delivery{Room: env.Room, Envelope: env})
		}

	case EventDrawing, EventClearCanvas, EventCallEnded:
		if h.requireMember(c, env.Room) {
			h.route(ctx, Delivery{Room: env.Room, ExcludeConn: c.ID, Envelope: env})
		}

	case EventCallUser, EventAnswerCall:
		if !h.requireMember(c, env.Room) {
			return
		}
		if env.To == "" {
			h.sendTo(c, errorEnvelope(env.Room, "missing recipient"))
			return
		}
		if env.Event == EventAnswerCall {
			env.Event = EventCallAccepted
		}
		h.route(ctx, Delivery{Room: env.Room, ToUser: env.To, ExcludeConn: c.ID, Envelope: env})

	default:
		h.sendTo(c, errorEnvelope(env.Room, "unknown event "+env.Event))
	}
}

func (h *Hub) join(ctx context.Context, c *Client, room string) {
	if room == "" {
		h.sendTo(c, errorEnvelope(room, "room is required"))
		return
	}
	if h.auth != nil {
		ok, err := h.auth.CanJoin(ctx, c.userOID, c.Role, room)
		if err != nil {
			log.Printf("[relay] autorizando %s en %s: %v", c.UserID, room, err)
			h.sendTo(c, errorEnvelope(room, "could not verify room access"))
			return
		}
		if !ok {
			h.sendTo(c, errorEnvelope(room, "not allowed to join room"))
			return
		}
	}

	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	members, ok := h.rooms[room]
	if !ok {
		members = map[*Client]struct{}{}
		h.rooms[room] = members
	}
	members[c] = struct{}{}
	c.rooms[room] = struct{}{}
	h.mu.Unlock()

	h.sendTo(c, Envelope{Event: EventRoomJoined, Room: room, From: ServerSender})
	h.route(ctx, Delivery{
		Room:        room,
		ExcludeConn: c.ID,
		Envelope:    Envelope{Event: EventUserJoined, Room: room, From: c.UserID},
	})
}

func (h *Hub) leave(ctx context.Context, c *Client, room string) {
	if !h.requireMember(c, room) {
		return
	}
	h.mu.Lock()
	h.removeFromRoom(c, room)
	h.mu.Unlock()

	h.route(ctx, Delivery{Room: room, Envelope: Envelope{Event: EventUserLeft, Room: room, From: c.UserID}})
}

func (h *Hub) requireMember(c *Client, room string) bool {
	if room != "" && h.isMember(c, room) {
		return true
	}
	h.sendTo(c, errorEnvelope(room, "join the room first"))
	return false
}

// Notify empuja un evento del servidor a una sala (match-updated, booking-updated).
func (h *Hub) Notify(room, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[relay] notify %s: %v", event, err)
		return
	}
	h.route(context.Background(), Delivery{
		Room:     room,
		Envelope: Envelope{Event: event, Room: room, From: ServerSender, Data: data},
	})
}

// route entrega vía broker si hay (la instancia local la recibe de vuelta por
// la suscripción) o directo en el proceso.
func (h *Hub) route(ctx context.Context, d Delivery) {
	if h.broker != nil {
		err := h.broker.Publish(ctx, d)
		if err == nil {
			return
		}
		log.Printf("[relay] broker publish falló, entrega local: %v", err)
	}
	h.deliverLocal(d)
}

func (h *Hub) deliverLocal(d Delivery) {
	msg, err := json.Marshal(d.Envelope)
	if err != nil {
		log.Printf("[relay] marshal %s: %v", d.Envelope.Event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[d.Room] {
		if c.ID == d.ExcludeConn {
			continue
		}
		if d.ToUser != "" && c.UserID != d.ToUser {
			continue
		}
		c.enqueue(msg)
	}
}

// sendTo responde solo a c (errores, confirmaciones).
func (h *Hub) sendTo(c *Client, env Envelope) {
	msg, err := json.Marshal(env)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[c]; ok {
		c.enqueue(msg)
	}
}
