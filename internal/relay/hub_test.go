package relay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testRoom = "booking:65f0c0ffee0000000000beef"

// allowRooms deja entrar a cada usuario solo a sus salas.
type allowRooms map[primitive.ObjectID][]string

func (a allowRooms) CanJoin(_ context.Context, userID primitive.ObjectID, role, room string) (bool, error) {
	if role == "admin" {
		return true, nil
	}
	for _, r := range a[userID] {
		if r == room {
			return true, nil
		}
	}
	return false, nil
}

type failingAuth struct{}

func (failingAuth) CanJoin(context.Context, primitive.ObjectID, string, string) (bool, error) {
	return false, errors.New("mongo down")
}

func connect(h *Hub, role string) *Client {
	c := newClient(h, nil, primitive.NewObjectID(), role)
	h.register(c)
	return c
}

func recv(t *testing.T, c *Client) Envelope {
	t.Helper()
	select {
	case msg := <-c.send:
		var env Envelope
		if err := json.Unmarshal(msg, &env); err != nil {
			t.Fatalf("bad message %s: %v", msg, err)
		}
		return env
	case <-time.After(time.Second):
		t.Fatalf("client %s: no message", c.UserID)
	}
	return Envelope{}
}

// recvEvent descarta mensajes hasta encontrar event (entregas asíncronas vía broker).
func recvEvent(t *testing.T, c *Client, event string) Envelope {
	t.Helper()
	for i := 0; i < 8; i++ {
		if env := recv(t, c); env.Event == event {
			return env
		}
	}
	t.Fatalf("client %s never got %s", c.UserID, event)
	return Envelope{}
}

func expectNone(t *testing.T, c *Client) {
	t.Helper()
	select {
	case msg := <-c.send:
		t.Fatalf("client %s got unexpected %s", c.UserID, msg)
	default:
	}
}

func joinAll(t *testing.T, h *Hub, room string, clients ...*Client) {
	t.Helper()
	for _, c := range clients {
		h.Dispatch(context.Background(), c, Envelope{Event: EventJoinRoom, Room: room})
	}
	// vaciar room joined / user joined
	for _, c := range clients {
		for len(c.send) > 0 {
			<-c.send
		}
	}
}

func TestJoinRoom(t *testing.T) {
	ctx := context.Background()
	h := NewHub(nil, nil)
	a, b := connect(h, "trainee"), connect(h, "trainer")

	h.Dispatch(ctx, a, Envelope{Event: EventJoinRoom, Room: testRoom})
	if env := recv(t, a); env.Event != EventRoomJoined || env.Room != testRoom {
		t.Fatalf("a got %+v, want room joined", env)
	}

	h.Dispatch(ctx, b, Envelope{Event: EventJoinRoom, Room: testRoom})
	if env := recv(t, b); env.Event != EventRoomJoined {
		t.Fatalf("b got %+v, want room joined", env)
	}
	if env := recv(t, a); env.Event != EventUserJoined || env.From != b.UserID {
		t.Fatalf("a got %+v, want user joined from b", env)
	}
	expectNone(t, b)
}

func TestJoinRoomAuthorization(t *testing.T) {
	ctx := context.Background()
	member := primitive.NewObjectID()
	auth := allowRooms{member: {testRoom}}

	tests := []struct {
		name    string
		auth    RoomAuthorizer
		user    primitive.ObjectID
		role    string
		room    string
		wantEvt string
	}{
		{"participant", auth, member, "trainee", testRoom, EventRoomJoined},
		{"outsider", auth, primitive.NewObjectID(), "trainee", testRoom, EventError},
		{"admin", auth, primitive.NewObjectID(), "admin", testRoom, EventRoomJoined},
		{"empty room", auth, member, "trainee", "", EventError},
		{"lookup failure", failingAuth{}, member, "trainee", testRoom, EventError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHub(tt.auth, nil)
			c := newClient(h, nil, tt.user, tt.role)
			h.register(c)

			h.Dispatch(ctx, c, Envelope{Event: EventJoinRoom, Room: tt.room})
			if env := recv(t, c); env.Event != tt.wantEvt {
				t.Errorf("got %+v, want %s", env, tt.wantEvt)
			}
			if joined := h.isMember(c, tt.room); joined != (tt.wantEvt == EventRoomJoined) {
				t.Errorf("member = %v", joined)
			}
		})
	}
}

func TestRoomRouting(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		event       string
		wantSender  bool
		wantOther   bool
		deliveredAs string
	}{
		{"chat goes to everyone", EventChatMessage, true, true, EventChatMessage},
		{"drawing skips sender", EventDrawing, false, true, EventDrawing},
		{"clear canvas skips sender", EventClearCanvas, false, true, EventClearCanvas},
		{"call ended skips sender", EventCallEnded, false, true, EventCallEnded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHub(nil, nil)
			sender, other, outsider := connect(h, "trainee"), connect(h, "trainer"), connect(h, "trainee")
			joinAll(t, h, testRoom, sender, other)

			h.Dispatch(ctx, sender, Envelope{
				Event: tt.event,
				Room:  testRoom,
				From:  "spoofed",
				Data:  json.RawMessage(`{"text":"bonjour"}`),
			})

			if tt.wantSender {
				env := recv(t, sender)
				if env.Event != tt.deliveredAs || env.From != sender.UserID {
					t.Errorf("sender got %+v", env)
				}
			}
			expectNone(t, sender)

			if tt.wantOther {
				env := recv(t, other)
				if env.Event != tt.deliveredAs || env.From != sender.UserID || string(env.Data) != `{"text":"bonjour"}` {
					t.Errorf("other got %+v", env)
				}
			}
			expectNone(t, outsider)
		})
	}
}

func TestCallSignaling(t *testing.T) {
	ctx := context.Background()
	h := NewHub(nil, nil)
	caller, callee, third := connect(h, "trainee"), connect(h, "trainer"), connect(h, "admin")
	joinAll(t, h, testRoom, caller, callee, third)

	offer := json.RawMessage(`{"signal":"offer"}`)
	h.Dispatch(ctx, caller, Envelope{Event: EventCallUser, Room: testRoom, To: callee.UserID, Data: offer})
	if env := recv(t, callee); env.Event != EventCallUser || env.From != caller.UserID {
		t.Fatalf("callee got %+v", env)
	}
	expectNone(t, third)
	expectNone(t, caller)

	h.Dispatch(ctx, callee, Envelope{Event: EventAnswerCall, Room: testRoom, To: caller.UserID})
	if env := recv(t, caller); env.Event != EventCallAccepted || env.From != callee.UserID {
		t.Fatalf("caller got %+v, want callAccepted", env)
	}
	expectNone(t, third)

	h.Dispatch(ctx, caller, Envelope{Event: EventCallUser, Room: testRoom})
	if env := recv(t, caller); env.Event != EventError {
		t.Errorf("missing recipient: got %+v", env)
	}
}

func TestSendWithoutJoining(t *testing.T) {
	ctx := context.Background()
	h := NewHub(nil, nil)
	c := connect(h, "trainee")

	for _, evt := range []string{EventChatMessage, EventDrawing, EventCallUser, EventLeaveRoom} {
		h.Dispatch(ctx, c, Envelope{Event: evt, Room: testRoom, To: "x"})
		if env := recv(t, c); env.Event != EventError {
			t.Errorf("%s: got %+v, want error", evt, env)
		}
	}

	h.Dispatch(ctx, c, Envelope{Event: "teleport", Room: testRoom})
	if env := recv(t, c); env.Event != EventError {
		t.Errorf("unknown event: got %+v", env)
	}
}

func TestLeaveAndDisconnect(t *testing.T) {
	ctx := context.Background()
	h := NewHub(nil, nil)
	a, b := connect(h, "trainee"), connect(h, "trainer")
	joinAll(t, h, testRoom, a, b)

	h.Dispatch(ctx, a, Envelope{Event: EventLeaveRoom, Room: testRoom})
	if env := recv(t, b); env.Event != EventUserLeft || env.From != a.UserID {
		t.Fatalf("b got %+v, want user left", env)
	}
	h.Dispatch(ctx, b, Envelope{Event: EventChatMessage, Room: testRoom})
	recv(t, b)
	expectNone(t, a)

	h.Dispatch(ctx, a, Envelope{Event: EventJoinRoom, Room: testRoom})
	recv(t, a)
	recv(t, b)

	h.unregister(ctx, b)
	if env := recv(t, a); env.Event != EventUserLeft || env.From != b.UserID {
		t.Fatalf("a got %+v after disconnect", env)
	}
	if _, ok := <-b.send; ok {
		t.Error("send channel of a disconnected client must be closed")
	}
	// una segunda baja no paniquea
	h.unregister(ctx, b)
}

func TestNotify(t *testing.T) {
	h := NewHub(nil, nil)
	a := connect(h, "trainee")
	joinAll(t, h, testRoom, a)

	h.Notify(testRoom, "booking-updated", map[string]string{"status": "confirmed"})
	env := recv(t, a)
	if env.Event != "booking-updated" || env.From != ServerSender || !strings.Contains(string(env.Data), "confirmed") {
		t.Errorf("got %+v", env)
	}

	// sala sin miembros: no hace nada
	h.Notify("booking:000000000000000000000000", "booking-updated", nil)
	expectNone(t, a)
}

// fakeBroker entrega en el mismo proceso, como lo haría Redis con una sola instancia.
type fakeBroker struct {
	deliveries chan Delivery
	published  int
}

func (b *fakeBroker) Publish(_ context.Context, d Delivery) error {
	b.published++
	b.deliveries <- d
	return nil
}

func (b *fakeBroker) Run(ctx context.Context, deliver func(Delivery)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case d := <-b.deliveries:
			deliver(d)
		}
	}
}

func TestHubWithBroker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	broker := &fakeBroker{deliveries: make(chan Delivery, 16)}
	h := NewHub(nil, broker)
	go h.Run(ctx)

	a, b := connect(h, "trainee"), connect(h, "trainer")
	h.Dispatch(ctx, a, Envelope{Event: EventJoinRoom, Room: testRoom})
	recvEvent(t, a, EventRoomJoined)
	h.Dispatch(ctx, b, Envelope{Event: EventJoinRoom, Room: testRoom})
	recvEvent(t, b, EventRoomJoined)
	if env := recvEvent(t, a, EventUserJoined); env.From != b.UserID {
		t.Fatalf("a got %+v", env)
	}

	h.Dispatch(ctx, a, Envelope{Event: EventChatMessage, Room: testRoom})
	if env := recvEvent(t, b, EventChatMessage); env.From != a.UserID {
		t.Fatalf("b got %+v", env)
	}
	recvEvent(t, a, EventChatMessage)
	if broker.published < 3 {
		t.Errorf("published %d deliveries through the broker", broker.published)
	}
}

func TestServeWebsocket(t *testing.T) {
	h := NewHub(nil, nil)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, _ := primitive.ObjectIDFromHex(r.URL.Query().Get("user"))
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		h.Serve(r.Context(), conn, userID, "trainee")
	}))
	defer srv.Close()

	dial := func(user primitive.ObjectID) *websocket.Conn {
		url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?user=" + user.Hex()
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			t.Fatalf("dial: %v", err)
		}
		return conn
	}
	read := func(conn *websocket.Conn) Envelope {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var env Envelope
		if err := conn.ReadJSON(&env); err != nil {
			t.Fatalf("read: %v", err)
		}
		return env
	}

	alice, bob := primitive.NewObjectID(), primitive.NewObjectID()
	ca, cb := dial(alice), dial(bob)
	defer ca.Close()
	defer cb.Close()

	ca.WriteJSON(Envelope{Event: EventJoinRoom, Room: testRoom})
	if env := read(ca); env.Event != EventRoomJoined {
		t.Fatalf("alice got %+v", env)
	}
	cb.WriteJSON(Envelope{Event: EventJoinRoom, Room: testRoom})
	if env := read(cb); env.Event != EventRoomJoined {
		t.Fatalf("bob got %+v", env)
	}
	if env := read(ca); env.Event != EventUserJoined || env.From != bob.Hex() {
		t.Fatalf("alice got %+v, want user joined", env)
	}

	cb.WriteJSON(Envelope{Event: EventChatMessage, Room: testRoom, Data: json.RawMessage(`"salut"`)})
	if env := read(ca); env.Event != EventChatMessage || env.From != bob.Hex() || string(env.Data) != `"salut"` {
		t.Errorf("alice got %+v", env)
	}
	if env := read(cb); env.Event != EventChatMessage {
		t.Errorf("bob got %+v", env)
	}

	cb.WriteMessage(websocket.TextMessage, []byte("not json"))
	if env := read(cb); env.Event != EventError {
		t.Errorf("bob got %+v, want error", env)
	}
}
