package player

import (
	"context"
	"testing"

	"github.com/nathoo/emberfall/engine/rules"
	"github.com/nathoo/emberfall/store"
	"github.com/nathoo/emberfall/types"
	"github.com/nathoo/emberfall/world"
)

func newStore() (*Store, context.Context) {
	return NewStore(store.NewMemory()), context.Background()
}

func TestCreate_Defaults(t *testing.T) {
	s, ctx := newStore()
	p, err := s.Create(ctx, "p1", "Tester", "hall")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if p.Level != 1 || p.XP != 0 {
		t.Errorf("level/xp = %d/%d, want 1/0", p.Level, p.XP)
	}
	if p.Stats.Strength != rules.BaseStat || p.Stats.Charisma != rules.BaseStat {
		t.Errorf("stats = %+v, want all at %d", p.Stats, rules.BaseStat)
	}
	for _, skill := range []string{rules.SkillImprovise, rules.SkillDodge, rules.SkillFlee} {
		if p.Skills[skill] != 1 {
			t.Errorf("skill %s = %d, want 1", skill, p.Skills[skill])
		}
	}
	if p.MaxHP != rules.MaxHP(1, rules.BaseStat) || p.HP != p.MaxHP {
		t.Errorf("HP = %d/%d, want full at %d", p.HP, p.MaxHP, rules.MaxHP(1, rules.BaseStat))
	}
	if !p.Alive {
		t.Error("new player should be alive")
	}
	if p.Location != "hall" || !p.HasExplored("hall") {
		t.Errorf("location = %q, explored = %v", p.Location, p.Explored)
	}
	if p.SchemaVersion != types.PlayerSchemaVersion {
		t.Errorf("schema version = %d, want %d", p.SchemaVersion, types.PlayerSchemaVersion)
	}
}

func TestLoad_Roundtrip(t *testing.T) {
	s, ctx := newStore()
	if _, err := s.Create(ctx, "p1", "Tester", "hall"); err != nil {
		t.Fatalf("create: %v", err)
	}

	p, err := s.Load(ctx, "p1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p == nil || p.Name != "Tester" {
		t.Fatalf("loaded %+v, want Tester", p)
	}
}

func TestLoad_Absent(t *testing.T) {
	s, ctx := newStore()
	p, err := s.Load(ctx, "nobody")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p != nil {
		t.Errorf("loaded %+v for an absent id, want nil", p)
	}
}

func TestLoad_MigratesLegacyDocument(t *testing.T) {
	db := store.NewMemory()
	s := NewStore(db)
	ctx := context.Background()

	// A pre-skills document: no skills map, no inventory, version 0.
	legacy := &types.Player{
		ID: "old", Name: "Veteran", Level: 3, HP: 30, MaxHP: 55,
		Location: "hall", Alive: true,
	}
	if err := db.Set(ctx, world.CollectionPlayers, "old", legacy); err != nil {
		t.Fatalf("seed: %v", err)
	}

	p, err := s.Load(ctx, "old")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Skills == nil || p.Skills[rules.SkillDodge] != 1 {
		t.Errorf("skills = %+v, want migrated defaults", p.Skills)
	}
	if p.Inventory == nil {
		t.Error("inventory should migrate to empty, not nil")
	}
	if p.SchemaVersion != types.PlayerSchemaVersion {
		t.Errorf("schema version = %d, want %d", p.SchemaVersion, types.PlayerSchemaVersion)
	}
	// Existing fields survive untouched.
	if p.Level != 3 || p.HP != 30 {
		t.Errorf("level/hp = %d/%d, migration must not clobber data", p.Level, p.HP)
	}
}

func TestPatch_MergesFields(t *testing.T) {
	s, ctx := newStore()
	if _, err := s.Create(ctx, "p1", "Tester", "hall"); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.Patch(ctx, "p1", map[string]any{"location": "cave"}); err != nil {
		t.Fatalf("patch: %v", err)
	}
	p, err := s.Load(ctx, "p1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Location != "cave" {
		t.Errorf("location = %q, want cave", p.Location)
	}
	if p.Name != "Tester" {
		t.Errorf("name = %q, patch must not clobber other fields", p.Name)
	}
}

func TestAddEvent_Truncates(t *testing.T) {
	p := &types.Player{}
	for i := 0; i < EventLogLimit+15; i++ {
		AddEvent(p, types.Event{Type: types.EventRoomLook})
	}
	if len(p.EventLog) != EventLogLimit {
		t.Errorf("event log length = %d, want %d", len(p.EventLog), EventLogLimit)
	}
}

func TestDerivedStats(t *testing.T) {
	p := &types.Player{Stats: types.Stats{Strength: 14}}
	if got := Capacity(p); got != 12 {
		t.Errorf("Capacity = %d, want 12", got)
	}
	if got := TotalAttack(p); got != 0 {
		t.Errorf("TotalAttack unarmed = %d, want 0", got)
	}

	p.Equipment.Weapon = &types.ItemInstance{Stats: types.ItemStats{Attack: 5}}
	p.Equipment.Head = &types.ItemInstance{Stats: types.ItemStats{Defense: 1}}
	p.Equipment.Chest = &types.ItemInstance{Stats: types.ItemStats{Defense: 3}}
	if got := TotalAttack(p); got != 5 {
		t.Errorf("TotalAttack = %d, want 5", got)
	}
	if got := TotalDefense(p); got != 4 {
		t.Errorf("TotalDefense = %d, want 4", got)
	}
}
