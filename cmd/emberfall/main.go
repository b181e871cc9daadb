// Emberfall is a deterministic turn-based adventure engine.
// Usage: emberfall [--version] [--plain] [--script <file>] [--seed <n>]
// [--db <file>] [--player <id>] <world_directory>
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/nathoo/emberfall/cli"
	"github.com/nathoo/emberfall/engine"
	"github.com/nathoo/emberfall/engine/dice"
	"github.com/nathoo/emberfall/loader"
	"github.com/nathoo/emberfall/player"
	"github.com/nathoo/emberfall/store"
	"github.com/nathoo/emberfall/tui"
	"github.com/nathoo/emberfall/world"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	plain := false
	var worldDir string
	var scriptFile string
	var dbPath string
	playerID := "hero"
	seed := int64(0)

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("emberfall %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--script":
			scriptFile = flagValue(args, &i)
		case "--db":
			dbPath = flagValue(args, &i)
		case "--player":
			playerID = flagValue(args, &i)
		case "--seed":
			n, err := strconv.ParseInt(flagValue(args, &i), 10, 64)
			if err != nil {
				fatalf("--seed requires an integer: %v", err)
			}
			seed = n
		default:
			if worldDir == "" {
				worldDir = args[i]
			}
		}
	}

	if worldDir == "" {
		fmt.Fprintf(os.Stderr, "Usage: emberfall [--version] [--plain] [--script <file>] [--seed <n>] [--db <file>] [--player <id>] <world_directory>\n")
		os.Exit(1)
	}

	defs, err := loader.Load(worldDir)
	if err != nil {
		fatalf("Error loading world: %v", err)
	}

	// In-memory by default; --db gives a persistent world on SQLite.
	var db store.Store
	if dbPath != "" {
		db, err = store.NewSQLite(dbPath)
		if err != nil {
			fatalf("Error opening database: %v", err)
		}
	} else {
		db = store.NewMemory()
	}
	defer db.Close()

	ctx := context.Background()
	if err := loader.Seed(ctx, db, defs); err != nil {
		fatalf("Error seeding world: %v", err)
	}

	w := world.NewRepo(db)
	ps := player.NewStore(db)

	p, err := ps.Load(ctx, playerID)
	if err != nil {
		fatalf("Error loading player: %v", err)
	}
	if p == nil {
		if _, err := ps.Create(ctx, playerID, playerID, defs.World.Start); err != nil {
			fatalf("Error creating player: %v", err)
		}
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	eng := engine.New(w, ps, dice.New(seed))

	title := fmt.Sprintf("%s v%s by %s", defs.World.Title, defs.World.Version, defs.World.Author)

	// Script mode: read commands from a file, force plain, echo input.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fatalf("Error opening script: %v", err)
		}
		defer f.Close()
		fmt.Printf("%s\n\n", title)
		c := cli.New(eng, playerID)
		c.Intro = defs.World.Intro
		c.In = f
		c.EchoInput = true
		if err := c.Run(ctx); err != nil {
			fatalf("Error: %v", err)
		}
		return
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if plain || !isTerminal() {
		fmt.Printf("%s\n\n", title)
		c := cli.New(eng, playerID)
		c.Intro = defs.World.Intro
		if err := c.Run(ctx); err != nil {
			fatalf("Error: %v", err)
		}
		return
	}

	if err := tui.Run(eng, playerID, title, defs.World.Intro); err != nil {
		fatalf("Error: %v", err)
	}
}

// flagValue returns the argument following args[*i], advancing the index.
func flagValue(args []string, i *int) string {
	if *i+1 >= len(args) {
		fatalf("%s requires a value", args[*i])
	}
	*i++
	return args[*i]
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
