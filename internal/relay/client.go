package relay

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 * 1024 // los trazos de la pizarra pueden ser grandes
	sendBuffer     = 64
)

// Client es una conexión websocket. Un usuario puede tener varias.
type Client struct {
	ID     string
	UserID string
	Role   string

	userOID primitive.ObjectID
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte

	// salas a las que entró; protegido por hub.mu
	rooms map[string]struct{}
}

func newClient(h *Hub, conn *websocket.Conn, userID primitive.ObjectID, role string) *Client {
	return &Client{
		ID:      uuid.NewString(),
		UserID:  userID.Hex(),
		Role:    role,
		userOID: userID,
		hub:     h,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		rooms:   map[string]struct{}{},
	}
}

// enqueue no bloquea: si el cliente no consume, el mensaje se descarta.
// Se llama con hub.mu tomado (lectura o escritura), así send no está cerrado.
func (c *Client) enqueue(msg []byte) {
	select {
	case c.send <- msg:
	default:
		log.Printf("[relay] cliente %s lento, mensaje descartado", c.ID)
	}
}

// Serve atiende una conexión ya upgradeada hasta que se cierre.
func (h *Hub) Serve(ctx context.Context, conn *websocket.Conn, userID primitive.ObjectID, role string) {
	c := newClient(h, conn, userID, role)
	h.register(c)
	log.Printf("[relay] conexión %s (user %s)", c.ID, c.UserID)

	go c.writePump()
	c.readPump(ctx)
}

func (c *Client) readPump(ctx context.Context) {
	defer func() {
		c.hub.unregister(ctx, c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[relay] conexión %s: %v", c.ID, err)
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil || env.Event == "" {
			c.hub.sendTo(c, errorEnvelope("", "invalid message"))
			continue
		}
		c.hub.Dispatch(ctx, c, env)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
