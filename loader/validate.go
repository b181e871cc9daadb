package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/nathoo/emberfall/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

var validItemTypes = map[types.ItemType]bool{
	types.ItemWeapon:     true,
	types.ItemArmor:      true,
	types.ItemConsumable: true,
	types.ItemLootbox:    true,
	types.ItemMisc:       true,
}

var validTiers = map[types.Tier]bool{
	types.TierIron:   true,
	types.TierBronze: true,
	types.TierSilver: true,
	types.TierGold:   true,
}

// validate checks the compiled defs for referential integrity.
func validate(defs *Defs) error {
	ve := &ValidationError{}

	if defs.World.Title == "" {
		ve.Errors = append(ve.Errors, "World.title is required")
	}
	if defs.World.Start == "" {
		ve.Errors = append(ve.Errors, "World.start is required")
	} else if _, ok := defs.Rooms[defs.World.Start]; !ok {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"start room %q not found in defined rooms", defs.World.Start))
	}

	for roomID, room := range defs.Rooms {
		for dir, target := range room.Exits {
			if _, ok := defs.Rooms[target]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"room %q exit %q points to undefined room %q", roomID, dir, target))
			}
		}
		for _, entID := range room.Entities {
			if _, ok := defs.Entities[entID]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"room %q lists undefined entity %q", roomID, entID))
			}
		}
		if room.HazardLevel < 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"room %q has negative hazard level %d", roomID, room.HazardLevel))
		}
	}

	for entID, ent := range defs.Entities {
		if ent.Name == "" {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf("entity %q has no name", entID))
		}
		if ent.HP <= 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"entity %q has non-positive hp %d", entID, ent.HP))
		}
		if ent.LootTable != "" {
			if _, ok := defs.LootTables[ent.LootTable]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"entity %q references undefined loot table %q", entID, ent.LootTable))
			}
		}
	}

	for itemID, item := range defs.Items {
		if !validItemTypes[item.Type] {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"item %q has unknown type %q", itemID, item.Type))
		}
		if item.Tier != "" && !validTiers[item.Tier] {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"item %q has unknown tier %q", itemID, item.Tier))
		}
	}

	for tableID, table := range defs.LootTables {
		if len(table.Entries) == 0 {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf("loot table %q is empty", tableID))
		}
		for _, entry := range table.Entries {
			if _, ok := defs.Items[entry.ItemID]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"loot table %q references undefined item %q", tableID, entry.ItemID))
			}
			if entry.Weight < 0 {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"loot table %q entry %q has negative weight", tableID, entry.ItemID))
			}
		}
	}

	for _, w := range ve.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}
