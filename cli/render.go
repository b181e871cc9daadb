package cli

import (
	"fmt"
	"strings"

	"github.com/nathoo/emberfall/types"
)

// Render turns one event into display lines. Unknown event types render
// nothing rather than crashing the client on a newer server.
func Render(ev types.Event) []string {
	switch ev.Type {
	case types.EventError:
		return []string{ev.Message}

	case types.EventPlayerMoved:
		return []string{fmt.Sprintf("You head %s.", ev.Direction)}

	case types.EventRoomLook:
		return renderLook(ev)

	case types.EventPlayerAttack:
		return []string{fmt.Sprintf("You hit the %s for %d damage. (%d/%d HP)",
			ev.TargetName, ev.Damage, ev.HP, ev.MaxHP)}

	case types.EventEntityAttack:
		return []string{fmt.Sprintf("The %s hits you for %d damage. (%d/%d HP)",
			ev.TargetName, ev.Damage, ev.HP, ev.MaxHP)}

	case types.EventEntityDeath:
		return []string{fmt.Sprintf("The %s dies.", ev.TargetName)}

	case types.EventPlayerDeath:
		return []string{"You die. Your story ends here."}

	case types.EventXPGained:
		return []string{fmt.Sprintf("You gain %d XP.", ev.XP)}

	case types.EventLevelUp:
		return []string{fmt.Sprintf("You reach level %d! You have %d stat points to allocate.",
			ev.Level, ev.StatPoints)}

	case types.EventSkillCheck:
		outcome := "failure"
		if ev.Success {
			outcome = "success"
		}
		return []string{fmt.Sprintf("[%s] roll %d vs %d: %s",
			ev.Skill, ev.Roll, ev.Threshold, outcome)}

	case types.EventSkillLevelUp:
		return []string{fmt.Sprintf("Your %s skill rises to %d.", ev.Skill, ev.SkillLevel)}

	case types.EventHazardDamage:
		return []string{fmt.Sprintf("The environment tears at you for %d damage. (%d/%d HP)",
			ev.Damage, ev.HP, ev.MaxHP)}

	case types.EventItemSpawned:
		return []string{fmt.Sprintf("Something glints nearby: %s.", itemName(ev.Item))}

	case types.EventItemPickup:
		return []string{fmt.Sprintf("You pick up the %s.", itemName(ev.Item))}

	case types.EventItemUsed:
		return []string{fmt.Sprintf("You use the %s and recover %d HP. (%d/%d HP)",
			itemName(ev.Item), ev.Healed, ev.HP, ev.MaxHP)}

	case types.EventItemEquipped:
		return []string{fmt.Sprintf("You equip the %s.", itemName(ev.Item))}

	case types.EventLootDropped:
		if ev.TargetName != "" {
			return []string{fmt.Sprintf("The %s drops a %s.", ev.TargetName, itemName(ev.Item))}
		}
		return []string{fmt.Sprintf("Inside you find a %s.", itemName(ev.Item))}

	case types.EventLootboxOpened:
		return []string{fmt.Sprintf("You crack open the %s.", itemName(ev.Item))}

	case types.EventInventory:
		return renderInventory(ev)

	case types.EventPlayerStats:
		return renderStats(ev)

	case types.EventStatAllocated:
		return []string{fmt.Sprintf("Your %s rises to %d. (%d points left)",
			ev.Stat, ev.Value, ev.StatPoints)}

	case types.EventNPCTalk:
		return []string{ev.Message}

	case types.EventFleeSuccess:
		return []string{fmt.Sprintf("You break away and flee %s!", ev.Direction)}

	case types.EventFleeFailure:
		return []string{"You fail to get away!"}
	}
	return nil
}

// RenderAll flattens a turn's events into display lines.
func RenderAll(evs []types.Event) []string {
	var lines []string
	for _, ev := range evs {
		lines = append(lines, Render(ev)...)
	}
	return lines
}

func renderLook(ev types.Event) []string {
	lines := []string{fmt.Sprintf("— %s —", ev.RoomName)}
	if ev.Description != "" {
		lines = append(lines, ev.Description)
	}
	if len(ev.Entities) > 0 {
		names := make([]string, len(ev.Entities))
		for i, ref := range ev.Entities {
			if ref.HP > 0 {
				names[i] = fmt.Sprintf("%s (%d/%d HP)", ref.Name, ref.HP, ref.MaxHP)
			} else {
				names[i] = fmt.Sprintf("%s (dead)", ref.Name)
			}
		}
		lines = append(lines, "You see: "+strings.Join(names, ", "))
	}
	if len(ev.Items) > 0 {
		names := make([]string, len(ev.Items))
		for i, item := range ev.Items {
			names[i] = item.Name
		}
		lines = append(lines, "On the ground: "+strings.Join(names, ", "))
	}
	if len(ev.Exits) > 0 {
		lines = append(lines, "Exits: "+strings.Join(ev.Exits, ", "))
	}
	return lines
}

func renderInventory(ev types.Event) []string {
	if len(ev.Items) == 0 {
		return []string{fmt.Sprintf("You are carrying nothing. (0/%d slots)", ev.Capacity)}
	}
	lines := []string{fmt.Sprintf("You are carrying (%d/%d slots):", len(ev.Items), ev.Capacity)}
	for _, item := range ev.Items {
		lines = append(lines, "  "+item.Name)
	}
	return lines
}

func renderStats(ev types.Event) []string {
	lines := []string{
		fmt.Sprintf("Level %d — %d XP — %d/%d HP", ev.Level, ev.XP, ev.HP, ev.MaxHP),
	}
	if ev.Stats != nil {
		lines = append(lines,
			fmt.Sprintf("STR %d  DEX %d  CON %d  INT %d  WIS %d  CHA %d",
				ev.Stats.Strength, ev.Stats.Dexterity, ev.Stats.Constitution,
				ev.Stats.Intelligence, ev.Stats.Wisdom, ev.Stats.Charisma))
	}
	if len(ev.Skills) > 0 {
		var parts []string
		for _, skill := range []string{"improvise", "dodge", "flee"} {
			if lvl, ok := ev.Skills[skill]; ok {
				parts = append(parts, fmt.Sprintf("%s %d", skill, lvl))
			}
		}
		if len(parts) > 0 {
			lines = append(lines, "Skills: "+strings.Join(parts, ", "))
		}
	}
	if ev.StatPoints > 0 {
		lines = append(lines, fmt.Sprintf("Unspent stat points: %d", ev.StatPoints))
	}
	return lines
}

func itemName(item *types.ItemInstance) string {
	if item == nil {
		return "something"
	}
	return item.Name
}
