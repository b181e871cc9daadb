package loader

import (
	"context"
	"strings"
	"testing"

	"github.com/nathoo/emberfall/store"
	"github.com/nathoo/emberfall/types"
	"github.com/nathoo/emberfall/world"
)

func TestLoad_MinimalWorld(t *testing.T) {
	defs, err := Load("testdata/minimal")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if defs.World.Title != "Minimal Test World" {
		t.Errorf("Title = %q, want %q", defs.World.Title, "Minimal Test World")
	}
	if defs.World.Start != "hall" {
		t.Errorf("Start = %q, want %q", defs.World.Start, "hall")
	}
	hall, ok := defs.Rooms["hall"]
	if !ok {
		t.Fatal("room 'hall' not found")
	}
	if hall.Description != "A grand hall." {
		t.Errorf("hall description = %q", hall.Description)
	}
}

func TestLoad_FullWorld(t *testing.T) {
	defs, err := Load("testdata/full")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if defs.World.Author != "Tester" {
		t.Errorf("Author = %q", defs.World.Author)
	}
	if len(defs.Rooms) != 3 {
		t.Errorf("expected 3 rooms, got %d", len(defs.Rooms))
	}

	courtyard := defs.Rooms["courtyard"]
	if courtyard.Exits["east"] != "crypt" {
		t.Errorf("courtyard east exit = %q", courtyard.Exits["east"])
	}
	if courtyard.HazardLevel != 1 {
		t.Errorf("courtyard hazard = %d, want 1", courtyard.HazardLevel)
	}
	if len(courtyard.Entities) != 1 || courtyard.Entities[0] != "cave_rat" {
		t.Errorf("courtyard entities = %v", courtyard.Entities)
	}

	rat, ok := defs.Entities["cave_rat"]
	if !ok {
		t.Fatal("entity 'cave_rat' not found")
	}
	if rat.HP != 10 || rat.MaxHP != 10 {
		t.Errorf("rat hp = %d/%d, want 10/10", rat.HP, rat.MaxHP)
	}
	if rat.LootTable != "cave_rat_drops" {
		t.Errorf("rat loot table = %q", rat.LootTable)
	}
	if !rat.Respawns {
		t.Error("mobs default to respawning")
	}
	if !rat.Hostile() {
		t.Error("classless mob should be hostile")
	}

	guard, ok := defs.Entities["gate_guard"]
	if !ok {
		t.Fatal("entity 'gate_guard' not found")
	}
	if guard.Class != "villager" {
		t.Errorf("NPC class = %q, want default villager", guard.Class)
	}
	if guard.Hostile() {
		t.Error("NPC should be passive")
	}
	if len(guard.Dialogue) != 2 {
		t.Errorf("guard dialogue = %v", guard.Dialogue)
	}

	// YAML catalog.
	if len(defs.Items) != 3 {
		t.Errorf("expected 3 items, got %d", len(defs.Items))
	}
	dagger := defs.Items["rusty_dagger"]
	if dagger.Type != types.ItemWeapon || dagger.Stats.Attack != 3 {
		t.Errorf("dagger = %+v", dagger)
	}
	potion := defs.Items["health_potion"]
	if potion.Stats.HealAmount != 15 {
		t.Errorf("potion heal = %d, want 15", potion.Stats.HealAmount)
	}

	table, ok := defs.LootTables["cave_rat_drops"]
	if !ok {
		t.Fatal("loot table 'cave_rat_drops' not found")
	}
	if len(table.Entries) != 2 || table.Entries[1].Weight != 70 {
		t.Errorf("table entries = %+v", table.Entries)
	}
}

func TestLoad_BrokenWorldFailsValidation(t *testing.T) {
	_, err := Load("testdata/broken")
	if err == nil {
		t.Fatal("expected validation error")
	}
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	msg := ve.Error()
	if !strings.Contains(msg, "missing_room") {
		t.Errorf("error %q should flag the dangling exit", msg)
	}
	if !strings.Contains(msg, "missing_mob") {
		t.Errorf("error %q should flag the undefined entity", msg)
	}
}

func TestLoad_MissingDir(t *testing.T) {
	if _, err := Load("testdata/does_not_exist"); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestSeed_WritesDocuments(t *testing.T) {
	defs, err := Load("testdata/full")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	db := store.NewMemory()
	ctx := context.Background()

	if err := Seed(ctx, db, defs); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	repo := world.NewRepo(db)
	room, err := repo.Room(ctx, "courtyard")
	if err != nil || room == nil {
		t.Fatalf("seeded room missing: %v %v", room, err)
	}
	ent, err := repo.Entity(ctx, "cave_rat")
	if err != nil || ent == nil {
		t.Fatalf("seeded entity missing: %v %v", ent, err)
	}
	item, err := repo.Item(ctx, "health_potion")
	if err != nil || item == nil {
		t.Fatalf("seeded item missing: %v %v", item, err)
	}
	table, err := repo.LootTable(ctx, "lootbox_iron")
	if err != nil || table == nil {
		t.Fatalf("seeded loot table missing: %v %v", table, err)
	}
}

func TestSeed_PreservesExistingRooms(t *testing.T) {
	defs, err := Load("testdata/full")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	db := store.NewMemory()
	ctx := context.Background()
	repo := world.NewRepo(db)

	if err := Seed(ctx, db, defs); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	// Mutate runtime room state, then reseed.
	room, _ := repo.Room(ctx, "courtyard")
	room.Items = append(room.Items, types.ItemInstance{InstanceID: "dropped", ItemID: "rusty_dagger"})
	if err := repo.SaveRoom(ctx, room); err != nil {
		t.Fatalf("save room: %v", err)
	}
	if err := Seed(ctx, db, defs); err != nil {
		t.Fatalf("reseed failed: %v", err)
	}

	room, _ = repo.Room(ctx, "courtyard")
	if len(room.Items) != 1 {
		t.Errorf("room items = %v, reseed must not clobber runtime state", room.Items)
	}
}
