package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/nathoo/emberfall/engine/resolve"
	"github.com/nathoo/emberfall/engine/rules"
	"github.com/nathoo/emberfall/player"
	"github.com/nathoo/emberfall/types"
)

// inventory snapshots the carried items and the current capacity.
func (e *Engine) inventory(p *types.Player) []types.Event {
	return []types.Event{{
		Type:     types.EventInventory,
		Items:    p.Inventory,
		Capacity: player.Capacity(p),
	}}
}

// stats snapshots the character sheet: abilities, progression and skills.
func (e *Engine) stats(p *types.Player) []types.Event {
	statsCopy := p.Stats
	return []types.Event{{
		Type:       types.EventPlayerStats,
		Stats:      &statsCopy,
		Skills:     p.Skills,
		Level:      p.Level,
		XP:         p.XP,
		HP:         p.HP,
		MaxHP:      p.MaxHP,
		StatPoints: p.StatPointsAvailable,
	}}
}

// allocate spends one banked stat point on a named ability score. A
// constitution point raises max HP immediately.
func (e *Engine) allocate(p *types.Player, intent types.Intent) ([]types.Event, error) {
	if p.StatPointsAvailable <= 0 {
		return []types.Event{types.ErrorEvent("you have no stat points to allocate")}, nil
	}

	stat := strings.ToLower(intent.Target)
	if !p.Stats.Add(stat, 1) {
		return []types.Event{types.ErrorEvent(fmt.Sprintf(
			"unknown stat %q (choose one of: %s)",
			intent.Target, strings.Join(types.StatNames, ", "),
		))}, nil
	}
	p.StatPointsAvailable--
	p.MaxHP = rules.MaxHP(p.Level, p.Stats.Constitution)

	value, _ := p.Stats.Get(stat)
	return []types.Event{{
		Type:       types.EventStatAllocated,
		Stat:       stat,
		Value:      value,
		StatPoints: p.StatPointsAvailable,
	}}, nil
}

// talk addresses an entity in the room. Living entities with dialogue
// answer with a uniformly random line; everything else ignores you.
func (e *Engine) talk(ctx context.Context, p *types.Player, intent types.Intent) ([]types.Event, error) {
	room, evs, err := e.currentRoom(ctx, p)
	if room == nil {
		return evs, err
	}
	ents, err := e.world.RoomEntities(ctx, room)
	if err != nil {
		return nil, err
	}

	target, rerr := resolve.Entity(ents, intent.Target)
	if rerr != nil {
		return []types.Event{types.ErrorEvent(rerr.Error())}, nil
	}
	if !target.Alive() {
		return []types.Event{types.ErrorEvent(fmt.Sprintf("the %s is dead", target.Name))}, nil
	}

	line := fmt.Sprintf("The %s ignores you.", target.Name)
	if len(target.Dialogue) > 0 {
		line = target.Dialogue[e.rng.Intn(len(target.Dialogue))]
	}
	return []types.Event{{
		Type:       types.EventNPCTalk,
		TargetID:   target.ID,
		TargetName: target.Name,
		Message:    line,
	}}, nil
}
