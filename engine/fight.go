package engine

import (
	"context"
	"fmt"

	"github.com/nathoo/emberfall/engine/combat"
	"github.com/nathoo/emberfall/engine/resolve"
	"github.com/nathoo/emberfall/engine/rules"
	"github.com/nathoo/emberfall/player"
	"github.com/nathoo/emberfall/types"
	"github.com/nathoo/emberfall/world"
)

// attack resolves one combat exchange against a live target in the room.
// On a kill: XP and the level-up loop, a loot roll onto the floor, and
// permanent removal of non-respawning entities from the room. Returns the
// fought entity's id for the aggro-pass exemption.
func (e *Engine) attack(ctx context.Context, p *types.Player, intent types.Intent) ([]types.Event, string, error) {
	room, evs, err := e.currentRoom(ctx, p)
	if room == nil {
		return evs, "", err
	}
	ents, err := e.world.RoomEntities(ctx, room)
	if err != nil {
		return nil, "", err
	}

	target, rerr := resolve.Entity(ents, intent.Target)
	if rerr != nil {
		return []types.Event{types.ErrorEvent(rerr.Error())}, "", nil
	}
	if !target.Alive() {
		return []types.Event{types.ErrorEvent(fmt.Sprintf("the %s is already dead", target.Name))}, "", nil
	}

	out := combat.Exchange(e.rng, p, target, player.TotalAttack(p), player.TotalDefense(p))
	turn := out.Events

	if err := e.world.SaveEntity(ctx, target); err != nil {
		return nil, "", err
	}

	if out.EntityDied {
		p.Statistics.Kills++
		turn = append(turn, awardXP(p, target.XPReward)...)

		lootEv, err := e.rollKillLoot(ctx, room, target)
		if err != nil {
			return nil, "", err
		}
		if lootEv != nil {
			turn = append(turn, *lootEv)
		}

		if !target.Respawns {
			room.RemoveEntity(target.ID)
		}
		if err := e.world.SaveRoom(ctx, room); err != nil {
			return nil, "", err
		}
	}

	if out.PlayerDied {
		turn = append(turn, playerDeath(p))
	}
	return turn, target.ID, nil
}

// rollKillLoot rolls the dead entity's loot table onto the room floor.
// A missing table or missing catalog item degrades to no loot — the kill
// already stands.
func (e *Engine) rollKillLoot(ctx context.Context, room *types.Room, ent *types.Entity) (*types.Event, error) {
	if ent.LootTable == "" {
		return nil, nil
	}
	table, err := e.world.LootTable(ctx, ent.LootTable)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, nil
	}
	idx := rules.RollLoot(e.rng, table.Entries)
	if idx < 0 {
		return nil, nil
	}
	template, err := e.world.Item(ctx, table.Entries[idx].ItemID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, nil
	}
	inst := world.NewInstance(*template)
	room.Items = append(room.Items, inst)
	return &types.Event{
		Type:       types.EventLootDropped,
		Item:       &inst,
		TargetID:   ent.ID,
		TargetName: ent.Name,
	}, nil
}

// flee rolls a fixed-difficulty skill check to escape the room's
// hostiles. Success relocates through a uniformly random exit and
// re-emits a look; failure hands the first hostile one free attack.
func (e *Engine) flee(ctx context.Context, p *types.Player, intent types.Intent) ([]types.Event, string, error) {
	room, evs, err := e.currentRoom(ctx, p)
	if room == nil {
		return evs, "", err
	}
	ents, err := e.world.RoomEntities(ctx, room)
	if err != nil {
		return nil, "", err
	}

	var hostiles []*types.Entity
	for _, ent := range ents {
		if ent.Alive() && ent.Hostile() {
			hostiles = append(hostiles, ent)
		}
	}
	if len(hostiles) == 0 {
		return []types.Event{types.ErrorEvent("there is nothing to flee from")}, "", nil
	}
	exits := sortedExits(room)
	if len(exits) == 0 {
		return []types.Event{types.ErrorEvent("there is no way out")}, "", nil
	}

	check := rules.RollSkillCheck(e.rng,
		rules.SkillFlee,
		p.Skills[rules.SkillFlee],
		p.Stats.Dexterity,
		rules.FleeDifficulty,
	)
	turn := []types.Event{{
		Type:       types.EventSkillCheck,
		Skill:      check.Skill,
		SkillLevel: check.SkillLevel,
		Roll:       check.Roll,
		Threshold:  check.Threshold,
		Success:    check.Success,
	}}

	if !check.Success {
		turn = append(turn, types.Event{Type: types.EventFleeFailure})
		out := combat.EntityAttack(e.rng, p, hostiles[0], player.TotalDefense(p))
		turn = append(turn, out.Events...)
		if out.PlayerDied {
			turn = append(turn, playerDeath(p))
		}
		return turn, hostiles[0].ID, nil
	}

	turn = append(turn, skillLevelUp(e.rng, p, rules.SkillFlee)...)

	dir := exits[e.rng.Intn(len(exits))]
	dest := room.Exits[dir]
	next, err := e.world.Room(ctx, dest)
	if err != nil {
		return nil, "", err
	}
	if next == nil {
		return []types.Event{types.ErrorEvent(fmt.Sprintf("the way %s leads nowhere", dir))}, "", nil
	}

	p.Location = dest
	p.MarkExplored(dest)
	turn = append(turn, types.Event{
		Type:      types.EventFleeSuccess,
		Direction: dir,
		RoomID:    next.ID,
		RoomName:  next.Name,
	})

	nextEnts, err := e.world.RoomEntities(ctx, next)
	if err != nil {
		return nil, "", err
	}
	return append(turn, lookEvent(next, nextEnts)), "", nil
}

// aggroPass runs after any non-relocating action while the player lives:
// every hostile living entity in the room, except the one already fought
// this turn, attacks once. The pass stops the instant the player drops
// to 0 HP. The caller's single save covers all damage applied here.
func (e *Engine) aggroPass(ctx context.Context, p *types.Player, foughtID string) ([]types.Event, error) {
	room, err := e.world.Room(ctx, p.Location)
	if err != nil || room == nil {
		return nil, err
	}
	ents, err := e.world.RoomEntities(ctx, room)
	if err != nil {
		return nil, err
	}

	var evs []types.Event
	for _, ent := range ents {
		if ent.ID == foughtID || !ent.Alive() || !ent.Hostile() {
			continue
		}
		out := combat.EntityAttack(e.rng, p, ent, player.TotalDefense(p))
		evs = append(evs, out.Events...)
		if out.PlayerDied {
			evs = append(evs, playerDeath(p))
			break
		}
	}
	return evs, nil
}
