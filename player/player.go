// Package player owns the player aggregate's lifecycle against the
// document store, plus the derived-stat accessors the engine reads.
package player

import (
	"context"

	"github.com/samber/oops"

	"github.com/nathoo/emberfall/engine/rules"
	"github.com/nathoo/emberfall/store"
	"github.com/nathoo/emberfall/types"
	"github.com/nathoo/emberfall/world"
)

// EventLogLimit bounds the per-player event log kept as narration context.
// Only the most recent entries are retained.
const EventLogLimit = 20

// Store is the CRUD façade for player documents.
type Store struct {
	db store.Store
}

// NewStore creates a player store over the given document store.
func NewStore(db store.Store) *Store {
	return &Store{db: db}
}

// Create seeds a new player: all six stats at the base value, starting
// skills at level 1, derived HP, empty inventory and equipment, zeroed
// progression. The document is written before returning.
func (s *Store) Create(ctx context.Context, id, name, startRoom string) (*types.Player, error) {
	p := &types.Player{
		ID:    id,
		Name:  name,
		Level: 1,
		Stats: types.Stats{
			Strength:     rules.BaseStat,
			Dexterity:    rules.BaseStat,
			Constitution: rules.BaseStat,
			Intelligence: rules.BaseStat,
			Wisdom:       rules.BaseStat,
			Charisma:     rules.BaseStat,
		},
		Skills: map[string]int{
			rules.SkillImprovise: 1,
			rules.SkillDodge:     1,
			rules.SkillFlee:      1,
		},
		Location:      startRoom,
		Inventory:     []types.ItemInstance{},
		Explored:      []string{startRoom},
		Alive:         true,
		SchemaVersion: types.PlayerSchemaVersion,
	}
	p.MaxHP = rules.MaxHP(p.Level, p.Stats.Constitution)
	p.HP = p.MaxHP

	if err := s.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Load fetches a player document, or nil if it does not exist. Documents
// written under an older schema are migrated in memory; the migrated form
// is persisted on the next Save.
func (s *Store) Load(ctx context.Context, id string) (*types.Player, error) {
	var p types.Player
	found, err := s.db.Get(ctx, world.CollectionPlayers, id, &p)
	if err != nil {
		return nil, oops.Wrapf(err, "load player %s", id)
	}
	if !found {
		return nil, nil
	}
	migrate(&p)
	return &p, nil
}

// Save overwrites the player document.
func (s *Store) Save(ctx context.Context, p *types.Player) error {
	if err := s.db.Set(ctx, world.CollectionPlayers, p.ID, p); err != nil {
		return oops.Wrapf(err, "save player %s", p.ID)
	}
	return nil
}

// Patch merges partial fields into the player document without a full
// overwrite.
func (s *Store) Patch(ctx context.Context, id string, fields map[string]any) error {
	if err := s.db.Update(ctx, world.CollectionPlayers, id, fields); err != nil {
		return oops.Wrapf(err, "patch player %s", id)
	}
	return nil
}

// migrate upgrades a player document loaded under an older schema.
// Runs once at load time instead of null-coalescing in every handler.
func migrate(p *types.Player) {
	if p.SchemaVersion >= types.PlayerSchemaVersion {
		return
	}
	if p.Skills == nil {
		p.Skills = map[string]int{
			rules.SkillImprovise: 1,
			rules.SkillDodge:     1,
			rules.SkillFlee:      1,
		}
	}
	if p.Inventory == nil {
		p.Inventory = []types.ItemInstance{}
	}
	if p.Explored == nil {
		p.Explored = []string{}
	}
	p.SchemaVersion = types.PlayerSchemaVersion
}

// AddEvent appends to the player's event log, truncating to the most
// recent EventLogLimit entries. Narration context only, not a gameplay
// invariant.
func AddEvent(p *types.Player, ev types.Event) {
	p.EventLog = append(p.EventLog, ev)
	if len(p.EventLog) > EventLogLimit {
		p.EventLog = p.EventLog[len(p.EventLog)-EventLogLimit:]
	}
}

// TotalAttack is the equipped weapon's attack stat, 0 when unarmed.
func TotalAttack(p *types.Player) int {
	if p.Equipment.Weapon == nil {
		return 0
	}
	return p.Equipment.Weapon.Stats.Attack
}

// TotalDefense sums the defense stats of the head, chest, and feet slots.
func TotalDefense(p *types.Player) int {
	total := 0
	for _, item := range []*types.ItemInstance{
		p.Equipment.Head, p.Equipment.Chest, p.Equipment.Feet,
	} {
		if item != nil {
			total += item.Stats.Defense
		}
	}
	return total
}

// Capacity is the player's inventory slot count.
func Capacity(p *types.Player) int {
	return rules.InventoryCapacity(p.Stats.Strength)
}
