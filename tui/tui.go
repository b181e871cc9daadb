package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/emberfall/cli"
	"github.com/nathoo/emberfall/engine"
	"github.com/nathoo/emberfall/types"
)

// rawLine stores an unstyled output line with its classification, so we
// can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed player input
	isSystem bool // true for system messages
}

// Model is the Bubble Tea model for the Emberfall TUI.
type Model struct {
	engine   *engine.Engine
	playerID string
	title    string
	intro    string

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine // accumulated narrative lines (unstyled, for re-wrapping)
	player   *types.Player

	width    int
	height   int
	ready    bool
	quitting bool
	lastCmd  string
}

// turnMsg carries a resolved turn (or meta output) into the Update loop.
type turnMsg struct {
	input    string    // echoed player input (empty for intro)
	lines    []rawLine // classified output lines
	isSystem bool
	player   *types.Player // updated snapshot, nil when unchanged
	err      error
}

// New creates a TUI model wired to the given engine and player.
func New(eng *engine.Engine, playerID, title, intro string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	return Model{
		engine:   eng,
		playerID: playerID,
		title:    title,
		intro:    intro,
		input:    ti,
		history:  NewHistory(100),
	}
}

// Run starts the Bubble Tea program.
func Run(eng *engine.Engine, playerID, title, intro string) error {
	m := New(eng, playerID, title, intro)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init returns the initial command that produces intro text and first look.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initialOutput())
}

func (m Model) initialOutput() tea.Cmd {
	return func() tea.Msg {
		var lines []rawLine
		if m.title != "" {
			lines = append(lines, rawLine{text: m.title, kind: kindRoomDesc})
			lines = append(lines, rawLine{})
		}
		if m.intro != "" {
			lines = append(lines, rawLine{text: m.intro, kind: kindRoomDesc})
			lines = append(lines, rawLine{})
		}

		res, err := m.engine.HandleTurn(context.Background(), m.playerID, types.Intent{Action: types.ActionLook})
		if err != nil {
			return turnMsg{err: err}
		}
		lines = append(lines, classifyEvents(res.Events)...)
		return turnMsg{lines: lines, player: res.Player}
	}
}

// Update handles messages (key presses, window resize, turn output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
				m.history.ResetCursor()
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case turnMsg:
		if msg.err != nil {
			m.quitting = true
			return m, tea.Quit
		}
		m = m.appendOutput(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m, nil
	}

	m.history.Push(input)
	m.history.ResetCursor()

	// Handle "again" / "g".
	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			m = m.appendOutput(turnMsg{
				input: input, lines: []rawLine{{text: "Nothing to repeat."}}, isSystem: true,
			})
			return m, nil
		}
		input = m.lastCmd
	} else {
		m.lastCmd = input
	}

	// Meta-commands.
	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		var lines []rawLine
		for _, l := range output {
			lines = append(lines, rawLine{text: l})
		}
		m = m.appendOutput(turnMsg{input: input, lines: lines, isSystem: true})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	// Game command.
	res, err := m.engine.HandleTurn(context.Background(), m.playerID, cli.Parse(input))
	if err != nil {
		m.quitting = true
		return m, tea.Quit
	}
	m = m.appendOutput(turnMsg{
		input:  input,
		lines:  classifyEvents(res.Events),
		player: res.Player,
	})
	return m, nil
}

// classifyEvents renders a turn's events and tags each line for styling.
func classifyEvents(evs []types.Event) []rawLine {
	var lines []rawLine
	for _, ev := range evs {
		kind := kindForEvent(ev.Type)
		for _, text := range cli.Render(ev) {
			lines = append(lines, rawLine{text: text, kind: kind})
		}
	}
	return lines
}

// appendOutput adds lines to the narrative and refreshes the viewport.
func (m Model) appendOutput(msg turnMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{
			text: "> " + msg.input, isInput: true,
		})
	}

	for _, rl := range msg.lines {
		rl.isSystem = rl.isSystem || msg.isSystem
		m.rawLines = append(m.rawLines, rl)
	}

	// Blank line separator between turns.
	m.rawLines = append(m.rawLines, rawLine{})

	if msg.player != nil {
		m.player = msg.player
	}

	m.refreshViewport()
	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current
// width and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordWrap(rl.text, width)

		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wLen := len(word)

		if i == 0 {
			result.WriteString(word)
			lineLen = wLen
			continue
		}

		if lineLen+1+wLen > width {
			result.WriteString("\n")
			result.WriteString(word)
			lineLen = wLen
		} else {
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}

	return result.String()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	switch strings.Fields(input)[0] {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/help":
		return m.cmdHelp(), false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", input)}, false
	}
}

func (m *Model) cmdHelp() []string {
	return []string{
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
		"",
		"Navigation: PgUp/PgDn to scroll, Up/Down for command history",
	}
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (those drive input history instead).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
