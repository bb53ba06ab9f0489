package relay

import "encoding/json"

// Eventos que entran desde el cliente.
const (
	EventJoinRoom    = "join room"
	EventLeaveRoom   = "leave room"
	EventChatMessage = "chat message"
	EventDrawing     = "drawing"
	EventClearCanvas = "clear-canvas"
	EventCallUser    = "callUser"
	EventAnswerCall  = "answerCall"
	EventCallEnded   = "call-ended"
)

// Eventos que solo emite el servidor.
const (
	EventRoomJoined   = "room joined"
	EventUserJoined   = "user joined"
	EventUserLeft     = "user left"
	EventCallAccepted = "callAccepted"
	EventError        = "error"
)

// ServerSender es el `from` de las notificaciones que no vienen de un usuario.
const ServerSender = "server"

// Envelope es el mensaje JSON que viaja por el websocket en ambos sentidos.
// From siempre lo pone el servidor.
type Envelope struct {
	Event string          `json:"event"`
	Room  string          `json:"room,omitempty"`
	To    string          `json:"to,omitempty"`
	From  string          `json:"from,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Delivery es una entrega a una sala. Es lo que se publica en Redis cuando hay
// varias instancias.
type Delivery struct {
	Room string `json:"room"`
	// ToUser limita la entrega a las conexiones de ese usuario.
	ToUser string `json:"toUser,omitempty"`
	// ExcludeConn no recibe la entrega (el que la originó).
	ExcludeConn string   `json:"excludeConn,omitempty"`
	Envelope    Envelope `json:"envelope"`
}

func errorEnvelope(room, msg string) Envelope {
	data, _ := json.Marshal(map[string]string{"message": msg})
	return Envelope{Event: EventError, Room: room, From: ServerSender, Data: data}
}
