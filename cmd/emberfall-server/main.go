// emberfall-server exposes the adventure engine over WebSocket.
// All configuration comes from the environment; see server.Config.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/nathoo/emberfall/engine"
	"github.com/nathoo/emberfall/engine/dice"
	"github.com/nathoo/emberfall/loader"
	"github.com/nathoo/emberfall/player"
	"github.com/nathoo/emberfall/server"
	"github.com/nathoo/emberfall/store"
	"github.com/nathoo/emberfall/world"
)

func main() {
	cfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("config failed", "err", err)
		os.Exit(1)
	}

	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(log)

	db, err := openStore(cfg)
	if err != nil {
		log.Error("store init failed", "err", err, "backend", cfg.Backend)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("store ready", "backend", cfg.Backend)

	defs, err := loader.Load(cfg.WorldDir)
	if err != nil {
		log.Error("world load failed", "err", err, "dir", cfg.WorldDir)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := loader.Seed(ctx, db, defs); err != nil {
		log.Error("world seed failed", "err", err)
		os.Exit(1)
	}
	log.Info("world loaded", "title", defs.World.Title,
		"rooms", len(defs.Rooms), "entities", len(defs.Entities))

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	w := world.NewRepo(db)
	ps := player.NewStore(db)
	eng := engine.New(w, ps, dice.New(seed))

	srv := server.New(eng, ps, defs.World.Start, log)

	log.Info("listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, srv.Handler()); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func openStore(cfg server.Config) (store.Store, error) {
	switch cfg.Backend {
	case "sqlite":
		return store.NewSQLite(cfg.SQLitePath)
	case "postgres":
		return store.NewPostgres(cfg.PostgresURL)
	default:
		return store.NewMemory(), nil
	}
}
