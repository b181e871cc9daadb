package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/emberfall/types"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleRoomDesc = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleYouSee = lipgloss.NewStyle().
			Bold(true)

	styleExits = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleCombat = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	styleHazard = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208"))

	styleReward = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	styleDialogue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleSkillCheck = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindRoomDesc lineKind = iota
	kindCombat
	kindHazard
	kindReward
	kindDialogue
	kindError
	kindInfo
	kindSkillCheck
)

// kindForEvent maps an engine event type to a display style. Every line
// rendered from the same event shares its kind.
func kindForEvent(t types.EventType) lineKind {
	switch t {
	case types.EventError:
		return kindError

	case types.EventPlayerAttack, types.EventEntityAttack,
		types.EventEntityDeath, types.EventPlayerDeath,
		types.EventFleeSuccess, types.EventFleeFailure:
		return kindCombat

	case types.EventHazardDamage:
		return kindHazard

	case types.EventXPGained, types.EventLevelUp, types.EventSkillLevelUp,
		types.EventLootDropped, types.EventLootboxOpened,
		types.EventStatAllocated:
		return kindReward

	case types.EventNPCTalk:
		return kindDialogue

	case types.EventInventory, types.EventPlayerStats,
		types.EventItemPickup, types.EventItemUsed, types.EventItemEquipped:
		return kindInfo

	case types.EventSkillCheck:
		return kindSkillCheck

	default:
		return kindRoomDesc
	}
}

// renderLineKind applies the style for a line's kind. Room look output
// gets per-prefix sub-styling so entity and exit lines stand apart from
// the description.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindError:
		return styleError.Render(line)
	case kindCombat:
		return styleCombat.Render(line)
	case kindHazard:
		return styleHazard.Render(line)
	case kindReward:
		return styleReward.Render(line)
	case kindDialogue:
		return styleDialogue.Render(line)
	case kindInfo:
		return styleRoomDesc.Render(line)
	case kindSkillCheck:
		return styleSkillCheck.Render(line)
	default:
		switch {
		case strings.HasPrefix(line, "You see: "):
			return styledYouSee(line)
		case strings.HasPrefix(line, "Exits: "),
			strings.HasPrefix(line, "On the ground: "):
			return styleExits.Render(line)
		default:
			return styleRoomDesc.Render(line)
		}
	}
}

// styledYouSee renders "You see: rat, king." with the names bold.
func styledYouSee(line string) string {
	const prefix = "You see: "
	if !strings.HasPrefix(line, prefix) {
		return styleRoomDesc.Render(line)
	}
	return styleRoomDesc.Render(prefix) + styleYouSee.Render(line[len(prefix):])
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
