// Package server exposes the game engine over WebSocket. Each connection
// owns one player session; a client sends intent frames and receives the
// resolved turn's event log.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/nathoo/emberfall/engine"
	"github.com/nathoo/emberfall/player"
)

// Server routes WebSocket sessions onto the engine.
type Server struct {
	engine    *engine.Engine
	players   *player.Store
	startRoom string
	log       *slog.Logger
	upgrader  websocket.Upgrader
}

// New creates a server. New players created over the wire start in startRoom.
func New(eng *engine.Engine, players *player.Store, startRoom string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		engine:    eng,
		players:   players,
		startRoom: startRoom,
		log:       log,
		upgrader: websocket.Upgrader{
			// TODO: restrict origins once a web client domain exists.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP handler with the /ws and /healthz endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("websocket upgrade failed", "err", err, "remote", r.RemoteAddr)
		return
	}

	s.log.Info("client connected", "remote", ws.RemoteAddr().String())

	sess := newSession(s, ws)
	go sess.writePump()
	sess.readPump()

	s.log.Info("client disconnected",
		"remote", ws.RemoteAddr().String(), "player", sess.playerID)
}
