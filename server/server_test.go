package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nathoo/emberfall/engine"
	"github.com/nathoo/emberfall/engine/dice"
	"github.com/nathoo/emberfall/player"
	"github.com/nathoo/emberfall/store"
	"github.com/nathoo/emberfall/types"
	"github.com/nathoo/emberfall/world"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	db := store.NewMemory()
	w := world.NewRepo(db)
	ps := player.NewStore(db)

	rooms := []*types.Room{
		{ID: "hall", Name: "Grand Hall", Description: "A grand hall.",
			Exits: map[string]string{"north": "garden"}},
		{ID: "garden", Name: "Garden", Description: "A peaceful garden.",
			Exits: map[string]string{"south": "hall"}},
	}
	for _, room := range rooms {
		if err := w.SaveRoom(ctx, room); err != nil {
			t.Fatalf("seed room: %v", err)
		}
	}

	srv := New(engine.New(w, ps, dice.New(1)), ps, "hall",
		slog.New(slog.NewTextHandler(testWriter{t}, nil)))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

// testWriter routes server logs through the test log.
type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimSpace(string(p)))
	return len(p), nil
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, frame clientFrame) {
	t.Helper()
	if err := conn.WriteJSON(frame); err != nil {
		t.Fatalf("write frame: %v", err)
	}
}

func recv(t *testing.T, conn *websocket.Conn) serverFrame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	var frame serverFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		t.Fatalf("unmarshal frame %q: %v", raw, err)
	}
	return frame
}

func TestHello_CreatesPlayer(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, ts)

	send(t, conn, clientFrame{Type: "hello", PlayerID: "p1", Name: "Tester"})
	frame := recv(t, conn)

	if frame.Type != frameWelcome {
		t.Fatalf("frame type = %q, want welcome", frame.Type)
	}
	if frame.Player == nil || frame.Player.Name != "Tester" || frame.Player.Location != "hall" {
		t.Errorf("welcome player = %+v, want Tester in hall", frame.Player)
	}
}

func TestHello_ReconnectKeepsPlayer(t *testing.T) {
	ts := newTestServer(t)

	conn := dial(t, ts)
	send(t, conn, clientFrame{Type: "hello", PlayerID: "p1", Name: "Tester"})
	recv(t, conn)
	send(t, conn, clientFrame{Type: "command", Input: "go north"})
	recv(t, conn)
	conn.Close()

	conn2 := dial(t, ts)
	send(t, conn2, clientFrame{Type: "hello", PlayerID: "p1"})
	frame := recv(t, conn2)
	if frame.Player == nil || frame.Player.Location != "garden" {
		t.Errorf("reconnected player = %+v, want location garden", frame.Player)
	}
}

func TestCommand_ResolvesTurn(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, ts)

	send(t, conn, clientFrame{Type: "hello", PlayerID: "p1", Name: "Tester"})
	recv(t, conn)

	send(t, conn, clientFrame{Type: "command", Input: "look"})
	frame := recv(t, conn)

	if frame.Type != frameTurn {
		t.Fatalf("frame type = %q, want turn", frame.Type)
	}
	if len(frame.Events) == 0 || frame.Events[0].Type != types.EventRoomLook {
		t.Errorf("events = %+v, want room_look first", frame.Events)
	}
	if frame.Events[0].RoomName != "Grand Hall" {
		t.Errorf("room name = %q, want Grand Hall", frame.Events[0].RoomName)
	}
}

func TestIntent_StructuredAction(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, ts)

	send(t, conn, clientFrame{Type: "hello", PlayerID: "p1", Name: "Tester"})
	recv(t, conn)

	send(t, conn, clientFrame{Type: "intent", Action: types.ActionMove, Direction: "north"})
	frame := recv(t, conn)

	if frame.Type != frameTurn {
		t.Fatalf("frame type = %q, want turn", frame.Type)
	}
	if frame.Player == nil || frame.Player.Location != "garden" {
		t.Errorf("player after move = %+v, want location garden", frame.Player)
	}
}

func TestCommand_BeforeHelloRejected(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, ts)

	send(t, conn, clientFrame{Type: "command", Input: "look"})
	frame := recv(t, conn)
	if frame.Type != frameError || !strings.Contains(frame.Message, "hello") {
		t.Errorf("frame = %+v, want hello-first error", frame)
	}
}

func TestUnknownFrameType(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, ts)

	send(t, conn, clientFrame{Type: "teleport"})
	frame := recv(t, conn)
	if frame.Type != frameError {
		t.Errorf("frame = %+v, want error", frame)
	}
}

func TestMalformedFrame(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, ts)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	frame := recv(t, conn)
	if frame.Type != frameError || frame.Message != "malformed frame" {
		t.Errorf("frame = %+v, want malformed frame error", frame)
	}
}
