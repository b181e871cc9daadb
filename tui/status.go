package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// roomDisplayName derives a human-readable name from a room ID.
// "great_hall" -> "Great Hall", "rat_warrens" -> "Rat Warrens".
func roomDisplayName(id string) string {
	words := strings.Split(id, "_")
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// renderStatusBar produces a full-width inverted status line showing the
// current room on the left and the character's vitals on the right.
func (m Model) renderStatusBar() string {
	if m.player == nil {
		return styleStatusBar.Width(m.width).Render(" Emberfall")
	}

	p := m.player
	left := fmt.Sprintf(" %s — %s", p.Name, roomDisplayName(p.Location))

	right := fmt.Sprintf("Lv %d | XP %d | HP %d/%d ", p.Level, p.XP, p.HP, p.MaxHP)
	if p.StatPointsAvailable > 0 {
		candidate := fmt.Sprintf("Lv %d | XP %d | HP %d/%d | +%d pts ",
			p.Level, p.XP, p.HP, p.MaxHP, p.StatPointsAvailable)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
