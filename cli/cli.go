// Package cli provides terminal I/O, command parsing, and event rendering
// for local Emberfall play.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/emberfall/engine"
	"github.com/nathoo/emberfall/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	PlayerID  string
	Intro     string
	In        io.Reader
	Out       io.Writer
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine and player.
func New(eng *engine.Engine, playerID string) *CLI {
	return &CLI{
		Engine:   eng,
		PlayerID: playerID,
		In:       os.Stdin,
		Out:      os.Stdout,
	}
}

// Run starts the game loop. It shows the intro, describes the starting
// room, then loops: prompt, input, dispatch, output.
func (c *CLI) Run(ctx context.Context) error {
	if c.Intro != "" {
		c.printLine(c.Intro)
		c.printLine("")
	}

	if err := c.step(ctx, types.Intent{Action: types.ActionLook}); err != nil {
		return err
	}

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return nil
			}
			continue
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		if err := c.step(ctx, Parse(input)); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// step resolves one turn and prints its events. Store failures are fatal;
// gameplay failures arrive as renderable error events.
func (c *CLI) step(ctx context.Context, intent types.Intent) error {
	res, err := c.Engine.HandleTurn(ctx, c.PlayerID, intent)
	if err != nil {
		return err
	}
	for _, line := range RenderAll(res.Events) {
		c.printLine(line)
	}
	return nil
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	switch strings.Fields(input)[0] {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/help":
		c.cmdHelp()

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", input))
	}
	return false
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /quit             — Exit game (progress is saved automatically)",
		"  /help             — Show this help",
		"",
		"Game commands:",
		"  look (l)              — Describe the room",
		"  go <dir>              — Move (or just type n/s/e/w/u/d)",
		"  attack <mob>          — Fight something",
		"  flee                  — Try to escape the room",
		"  take/get <item>       — Pick something up",
		"  use <item>            — Drink or apply a consumable",
		"  equip/wield <item>    — Equip a weapon or armor",
		"  open [lootbox]        — Open a lootbox you carry",
		"  talk <npc>            — Talk to someone",
		"  inventory (i)         — Check what you're carrying",
		"  stats                 — Show your character sheet",
		"  allocate <stat>       — Spend a stat point",
		"  again (g)             — Repeat your last command",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
