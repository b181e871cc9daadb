package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/nathoo/emberfall/engine/rules"
	"github.com/nathoo/emberfall/types"
	"github.com/nathoo/emberfall/world"
)

// move relocates the player through a named exit, marks the destination
// explored, rolls hazard damage and the item-scavenge chance, and closes
// with a look at the new room. Hazard death halts the scavenge roll.
func (e *Engine) move(ctx context.Context, p *types.Player, intent types.Intent) ([]types.Event, error) {
	room, evs, err := e.currentRoom(ctx, p)
	if room == nil {
		return evs, err
	}

	dir := intent.Direction
	if dir == "" {
		dir = intent.Target
	}
	dest, ok := room.Exits[dir]
	if !ok || dest == "" {
		return []types.Event{types.ErrorEvent(fmt.Sprintf(
			"you can't go %q from here (exits: %s)",
			dir, strings.Join(sortedExits(room), ", "),
		))}, nil
	}

	next, err := e.world.Room(ctx, dest)
	if err != nil {
		return nil, err
	}
	if next == nil {
		return []types.Event{types.ErrorEvent(fmt.Sprintf("the way %s leads nowhere", dir))}, nil
	}

	p.Location = dest
	p.MarkExplored(dest)
	out := []types.Event{{
		Type:      types.EventPlayerMoved,
		Direction: dir,
		RoomID:    next.ID,
		RoomName:  next.Name,
	}}

	if dmg := rules.HazardDamage(next.HazardLevel, e.rng); dmg > 0 {
		p.HP -= dmg
		if p.HP < 0 {
			p.HP = 0
		}
		out = append(out, types.Event{
			Type:   types.EventHazardDamage,
			Damage: dmg,
			HP:     p.HP,
			MaxHP:  p.MaxHP,
		})
		if p.HP == 0 {
			return append(out, playerDeath(p)), nil
		}
	}

	if spawned, err := e.scavengeRoll(ctx, next); err != nil {
		return nil, err
	} else if spawned != nil {
		out = append(out, *spawned)
	}

	ents, err := e.world.RoomEntities(ctx, next)
	if err != nil {
		return nil, err
	}
	return append(out, lookEvent(next, ents)), nil
}

// scavengeRoll occasionally spawns a rarity-weighted catalog item on the
// floor of a freshly entered room. Returns nil when nothing spawned.
func (e *Engine) scavengeRoll(ctx context.Context, room *types.Room) (*types.Event, error) {
	if e.rng.Percent() > rules.ScavengeChance {
		return nil, nil
	}
	catalog, err := e.world.Items(ctx)
	if err != nil {
		return nil, err
	}
	idx := rules.RollByRarity(e.rng, catalog)
	if idx < 0 {
		return nil, nil
	}
	inst := world.NewInstance(catalog[idx])
	room.Items = append(room.Items, inst)
	if err := e.world.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	return &types.Event{
		Type:   types.EventItemSpawned,
		Item:   &inst,
		RoomID: room.ID,
	}, nil
}

// look emits a snapshot of the player's current room.
func (e *Engine) look(ctx context.Context, p *types.Player) ([]types.Event, error) {
	room, evs, err := e.currentRoom(ctx, p)
	if room == nil {
		return evs, err
	}
	ents, err := e.world.RoomEntities(ctx, room)
	if err != nil {
		return nil, err
	}
	return []types.Event{lookEvent(room, ents)}, nil
}
