package server

import (
	"context"
	"encoding/json"

	"github.com/gorilla/websocket"

	"github.com/nathoo/emberfall/cli"
	"github.com/nathoo/emberfall/types"
)

// Client frame types.
const (
	frameHello   = "hello"   // bind the session to a player, creating it if new
	frameCommand = "command" // raw text command, parsed server-side
	frameIntent  = "intent"  // structured action
)

// Server frame types.
const (
	frameWelcome = "welcome"
	frameTurn    = "turn"
	frameError   = "error"
)

// clientFrame is one message from the client.
type clientFrame struct {
	Type     string `json:"type"`
	PlayerID string `json:"player_id,omitempty"`
	Name     string `json:"name,omitempty"`
	Input    string `json:"input,omitempty"`

	Action    types.Action `json:"action,omitempty"`
	Target    string       `json:"target,omitempty"`
	Direction string       `json:"direction,omitempty"`
}

// serverFrame is one message to the client.
type serverFrame struct {
	Type    string        `json:"type"`
	Message string        `json:"message,omitempty"`
	Events  []types.Event `json:"events,omitempty"`
	Player  *types.Player `json:"player,omitempty"`
}

// session is one player's WebSocket connection. Outgoing frames go through
// the send channel so only writePump touches the socket writer.
type session struct {
	server   *Server
	ws       *websocket.Conn
	send     chan []byte
	playerID string
}

func newSession(s *Server, ws *websocket.Conn) *session {
	return &session{
		server: s,
		ws:     ws,
		send:   make(chan []byte, 64),
	}
}

// readPump reads client frames until the connection drops.
func (c *session) readPump() {
	defer func() {
		close(c.send)
		c.ws.Close()
	}()

	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.server.log.Warn("read failed", "err", err, "player", c.playerID)
			}
			return
		}

		var frame clientFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			c.reply(serverFrame{Type: frameError, Message: "malformed frame"})
			continue
		}
		c.handleFrame(frame)
	}
}

// writePump drains the send channel onto the socket.
func (c *session) writePump() {
	defer c.ws.Close()
	for msg := range c.send {
		if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	c.ws.WriteMessage(websocket.CloseMessage, []byte{})
}

func (c *session) handleFrame(frame clientFrame) {
	switch frame.Type {
	case frameHello:
		c.handleHello(frame)

	case frameCommand:
		c.handleTurn(cli.Parse(frame.Input))

	case frameIntent:
		c.handleTurn(types.Intent{
			Action:    frame.Action,
			Target:    frame.Target,
			Direction: frame.Direction,
		})

	default:
		c.reply(serverFrame{Type: frameError,
			Message: "unknown frame type: " + frame.Type})
	}
}

// handleHello binds the session to a player, creating one on first contact.
func (c *session) handleHello(frame clientFrame) {
	if frame.PlayerID == "" {
		c.reply(serverFrame{Type: frameError, Message: "hello requires player_id"})
		return
	}

	ctx := context.Background()
	p, err := c.server.players.Load(ctx, frame.PlayerID)
	if err != nil {
		c.server.log.Error("player load failed", "err", err, "player", frame.PlayerID)
		c.reply(serverFrame{Type: frameError, Message: "internal error"})
		return
	}
	if p == nil {
		name := frame.Name
		if name == "" {
			name = frame.PlayerID
		}
		p, err = c.server.players.Create(ctx, frame.PlayerID, name, c.server.startRoom)
		if err != nil {
			c.server.log.Error("player create failed", "err", err, "player", frame.PlayerID)
			c.reply(serverFrame{Type: frameError, Message: "internal error"})
			return
		}
		c.server.log.Info("player created", "player", p.ID, "name", p.Name)
	}

	c.playerID = p.ID
	c.reply(serverFrame{Type: frameWelcome, Player: p})
}

// handleTurn runs one engine turn and sends the result.
func (c *session) handleTurn(intent types.Intent) {
	if c.playerID == "" {
		c.reply(serverFrame{Type: frameError, Message: "say hello first"})
		return
	}

	res, err := c.server.engine.HandleTurn(context.Background(), c.playerID, intent)
	if err != nil {
		c.server.log.Error("turn failed", "err", err, "player", c.playerID)
		c.reply(serverFrame{Type: frameError, Message: "internal error"})
		return
	}

	c.reply(serverFrame{Type: frameTurn, Events: res.Events, Player: res.Player})
}

// reply queues a frame for the client. A full queue drops the connection
// rather than blocking the engine.
func (c *session) reply(frame serverFrame) {
	raw, err := json.Marshal(frame)
	if err != nil {
		c.server.log.Error("marshal frame failed", "err", err)
		return
	}
	select {
	case c.send <- raw:
	default:
		c.server.log.Warn("send queue full, dropping connection", "player", c.playerID)
		c.ws.Close()
	}
}
