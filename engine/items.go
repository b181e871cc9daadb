package engine

import (
	"context"
	"fmt"

	"github.com/nathoo/emberfall/engine/resolve"
	"github.com/nathoo/emberfall/engine/rules"
	"github.com/nathoo/emberfall/player"
	"github.com/nathoo/emberfall/types"
	"github.com/nathoo/emberfall/world"
)

// pickup moves an item from the room floor into the inventory by value
// copy. A full inventory is a terminal error naming the capacity.
func (e *Engine) pickup(ctx context.Context, p *types.Player, intent types.Intent) ([]types.Event, error) {
	room, evs, err := e.currentRoom(ctx, p)
	if room == nil {
		return evs, err
	}

	idx, rerr := resolve.Item(room.Items, intent.Target)
	if rerr != nil {
		return []types.Event{types.ErrorEvent(rerr.Error())}, nil
	}

	capacity := player.Capacity(p)
	if len(p.Inventory) >= capacity {
		return []types.Event{{
			Type:     types.EventError,
			Message:  fmt.Sprintf("your inventory is full (capacity %d)", capacity),
			Capacity: capacity,
		}}, nil
	}

	item := room.Items[idx]
	room.Items = append(room.Items[:idx], room.Items[idx+1:]...)
	if err := e.world.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	p.Inventory = append(p.Inventory, item)

	return []types.Event{{Type: types.EventItemPickup, Item: &item}}, nil
}

// use applies a consumable from the inventory: heal clamped to max HP,
// then the item is gone.
func (e *Engine) use(p *types.Player, intent types.Intent) ([]types.Event, error) {
	idx, rerr := resolve.Item(p.Inventory, intent.Target)
	if rerr != nil {
		return []types.Event{types.ErrorEvent(rerr.Error())}, nil
	}
	item := p.Inventory[idx]
	if item.Type != types.ItemConsumable {
		return []types.Event{types.ErrorEvent(fmt.Sprintf("the %s is not usable", item.Name))}, nil
	}

	healed := item.Stats.HealAmount
	if p.HP+healed > p.MaxHP {
		healed = p.MaxHP - p.HP
	}
	p.HP += healed
	p.Inventory = append(p.Inventory[:idx], p.Inventory[idx+1:]...)

	return []types.Event{{
		Type:   types.EventItemUsed,
		Item:   &item,
		Healed: healed,
		HP:     p.HP,
		MaxHP:  p.MaxHP,
	}}, nil
}

// equip installs an inventory item into its slot, swapping any current
// occupant back into the inventory. Weapon-typed items without an
// explicit slot default to the weapon slot. Max HP is recomputed after
// the swap.
func (e *Engine) equip(p *types.Player, intent types.Intent) ([]types.Event, error) {
	idx, rerr := resolve.Item(p.Inventory, intent.Target)
	if rerr != nil {
		return []types.Event{types.ErrorEvent(rerr.Error())}, nil
	}
	item := p.Inventory[idx]

	slot := item.Slot
	if slot == "" && item.Type == types.ItemWeapon {
		slot = "weapon"
	}
	slotPtr := p.Equipment.Slot(slot)
	if slotPtr == nil {
		return []types.Event{types.ErrorEvent(fmt.Sprintf("the %s cannot be equipped", item.Name))}, nil
	}

	// Inventory may transiently exceed capacity mid-swap; the removed
	// item goes back in before the turn ends.
	p.Inventory = append(p.Inventory[:idx], p.Inventory[idx+1:]...)
	if *slotPtr != nil {
		p.Inventory = append(p.Inventory, **slotPtr)
	}
	installed := item
	*slotPtr = &installed

	p.MaxHP = rules.MaxHP(p.Level, p.Stats.Constitution)
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}

	return []types.Event{{
		Type: types.EventItemEquipped,
		Item: &installed,
		Slot: slot,
	}}, nil
}

// open consumes a lootbox: the tier's loot table must exist, one item is
// rolled into the inventory, and tier-scaled XP feeds the level-up loop.
// A table entry pointing at a missing catalog item degrades to no item —
// the box is already spent.
func (e *Engine) open(ctx context.Context, p *types.Player, intent types.Intent) ([]types.Event, error) {
	idx, rerr := e.findLootbox(p, intent.Target)
	if rerr != "" {
		return []types.Event{types.ErrorEvent(rerr)}, nil
	}
	box := p.Inventory[idx]

	tableID := "lootbox_" + string(box.Tier)
	table, err := e.world.LootTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return []types.Event{types.ErrorEvent(fmt.Sprintf("no loot table exists for a %s lootbox", box.Tier))}, nil
	}

	p.Inventory = append(p.Inventory[:idx], p.Inventory[idx+1:]...)
	p.Statistics.LootboxesOpened++
	evs := []types.Event{{Type: types.EventLootboxOpened, Item: &box}}

	if i := rules.RollLoot(e.rng, table.Entries); i >= 0 {
		template, err := e.world.Item(ctx, table.Entries[i].ItemID)
		if err != nil {
			return nil, err
		}
		if template != nil {
			inst := world.NewInstance(*template)
			p.Inventory = append(p.Inventory, inst)
			evs = append(evs, types.Event{Type: types.EventLootDropped, Item: &inst})
		}
	}

	return append(evs, awardXP(p, rules.LootboxXP(box.Tier))...), nil
}

// findLootbox locates the lootbox to open: by target match when given,
// otherwise the first lootbox carried. Returns an error message instead
// of an index when nothing qualifies.
func (e *Engine) findLootbox(p *types.Player, target string) (int, string) {
	if target != "" {
		idx, rerr := resolve.Item(p.Inventory, target)
		if rerr != nil {
			return -1, rerr.Error()
		}
		if p.Inventory[idx].Type != types.ItemLootbox {
			return -1, fmt.Sprintf("the %s is not a lootbox", p.Inventory[idx].Name)
		}
		return idx, ""
	}
	for i, item := range p.Inventory {
		if item.Type == types.ItemLootbox {
			return i, ""
		}
	}
	return -1, "you are not carrying a lootbox"
}
