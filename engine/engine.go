// Package engine provides the per-turn orchestrator: it loads the acting
// player, dispatches the intent to its handler, runs the post-turn mob
// aggro pass, and returns the ordered event log plus the updated player.
package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/nathoo/emberfall/engine/dice"
	"github.com/nathoo/emberfall/engine/rules"
	"github.com/nathoo/emberfall/player"
	"github.com/nathoo/emberfall/types"
	"github.com/nathoo/emberfall/world"
)

// Engine resolves one turn at a time against the world repository and the
// player store. It holds no per-turn state beyond the single RNG.
type Engine struct {
	world   *world.Repo
	players *player.Store
	rng     *dice.RNG
}

// New creates an engine over the given repositories and random source.
func New(w *world.Repo, players *player.Store, rng *dice.RNG) *Engine {
	return &Engine{world: w, players: players, rng: rng}
}

// Result is the output of one resolved turn: the ordered event log and
// the player as mutated by the turn. Player is nil only when the acting
// player does not exist.
type Result struct {
	Events []types.Event
	Player *types.Player
}

// HandleTurn processes one (playerID, intent) pair to completion.
// Precondition failures surface as error events; only store I/O failures
// return a non-nil error, and those propagate unmodified.
func (e *Engine) HandleTurn(ctx context.Context, playerID string, intent types.Intent) (Result, error) {
	p, err := e.players.Load(ctx, playerID)
	if err != nil {
		return Result{}, err
	}
	if p == nil {
		return Result{Events: []types.Event{types.ErrorEvent("player not found")}}, nil
	}
	if !p.Alive {
		return Result{
			Events: []types.Event{types.ErrorEvent("you are already dead")},
			Player: p,
		}, nil
	}

	prevLocation := p.Location

	// Closed dispatch: every action is a compile-time case, and an
	// unknown tag is a generic error event, never a fallthrough.
	var evs []types.Event
	var fought string
	switch intent.Action {
	case types.ActionMove:
		evs, err = e.move(ctx, p, intent)
	case types.ActionLook:
		evs, err = e.look(ctx, p)
	case types.ActionAttack:
		evs, fought, err = e.attack(ctx, p, intent)
	case types.ActionPickup:
		evs, err = e.pickup(ctx, p, intent)
	case types.ActionUse:
		evs, err = e.use(p, intent)
	case types.ActionEquip:
		evs, err = e.equip(p, intent)
	case types.ActionInventory:
		evs = e.inventory(p)
	case types.ActionStats:
		evs = e.stats(p)
	case types.ActionAllocate:
		evs, err = e.allocate(p, intent)
	case types.ActionOpen:
		evs, err = e.open(ctx, p, intent)
	case types.ActionTalk:
		evs, err = e.talk(ctx, p, intent)
	case types.ActionFlee:
		evs, fought, err = e.flee(ctx, p, intent)
	default:
		evs = []types.Event{types.ErrorEvent(fmt.Sprintf("unknown action %q", intent.Action))}
	}
	if err != nil {
		return Result{}, err
	}

	// Post-turn aggro pass. Movement (including a successful flee) puts
	// the player in a fresh room and skips it; a failed turn (single
	// error event) ends with no retaliation.
	if intent.Action != types.ActionMove && p.Alive && p.Location == prevLocation && !failedTurn(evs) {
		aggroEvs, err := e.aggroPass(ctx, p, fought)
		if err != nil {
			return Result{}, err
		}
		evs = append(evs, aggroEvs...)
	}

	for _, ev := range evs {
		player.AddEvent(p, ev)
	}
	if err := e.players.Save(ctx, p); err != nil {
		return Result{}, err
	}
	return Result{Events: evs, Player: p}, nil
}

// failedTurn reports whether the handler rejected the turn outright.
func failedTurn(evs []types.Event) bool {
	return len(evs) == 1 && evs[0].Type == types.EventError
}

// playerDeath flips the one-way alive flag and emits the death event.
func playerDeath(p *types.Player) types.Event {
	p.Alive = false
	return types.Event{Type: types.EventPlayerDeath, HP: 0, MaxHP: p.MaxHP}
}

// awardXP applies an XP gain and the level-up loop: a single award can
// trigger several level-ups, each granting stat points and a full heal.
func awardXP(p *types.Player, amount int) []types.Event {
	p.XP += amount
	evs := []types.Event{{Type: types.EventXPGained, XP: amount}}

	newLevel, remainder, gained := rules.Advance(p.Level, p.XP)
	if gained == 0 {
		return evs
	}
	for lvl := p.Level + 1; lvl <= newLevel; lvl++ {
		evs = append(evs, types.Event{
			Type:       types.EventLevelUp,
			Level:      lvl,
			StatPoints: rules.StatPointsPerLevel,
		})
	}
	p.Level = newLevel
	p.XP = remainder
	p.StatPointsAvailable += gained * rules.StatPointsPerLevel
	p.MaxHP = rules.MaxHP(p.Level, p.Stats.Constitution)
	p.HP = p.MaxHP
	return evs
}

// skillLevelUp rolls a post-success level-up for a skill and applies it.
func skillLevelUp(rng *dice.RNG, p *types.Player, skill string) []types.Event {
	level := p.Skills[skill]
	if !rules.RollSkillLevelUp(rng, level) {
		return nil
	}
	p.Skills[skill] = level + 1
	return []types.Event{{
		Type:       types.EventSkillLevelUp,
		Skill:      skill,
		SkillLevel: level + 1,
	}}
}

// lookEvent snapshots a room: entities, items, and sorted exits.
func lookEvent(room *types.Room, ents []*types.Entity) types.Event {
	refs := make([]types.EntityRef, 0, len(ents))
	for _, ent := range ents {
		refs = append(refs, types.EntityRef{
			ID:    ent.ID,
			Name:  ent.Name,
			HP:    ent.HP,
			MaxHP: ent.MaxHP,
		})
	}
	return types.Event{
		Type:        types.EventRoomLook,
		RoomID:      room.ID,
		RoomName:    room.Name,
		Description: room.Description,
		Entities:    refs,
		Items:       room.Items,
		Exits:       sortedExits(room),
	}
}

// sortedExits returns the room's open exit directions in stable order.
func sortedExits(room *types.Room) []string {
	dirs := make([]string, 0, len(room.Exits))
	for dir, dest := range room.Exits {
		if dest != "" {
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)
	return dirs
}

// currentRoom loads the player's room, translating a missing document
// into a terminal error event.
func (e *Engine) currentRoom(ctx context.Context, p *types.Player) (*types.Room, []types.Event, error) {
	room, err := e.world.Room(ctx, p.Location)
	if err != nil {
		return nil, nil, err
	}
	if room == nil {
		return nil, []types.Event{types.ErrorEvent(fmt.Sprintf("room %q does not exist", p.Location))}, nil
	}
	return room, nil, nil
}
