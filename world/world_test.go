package world

import (
	"context"
	"testing"

	"github.com/nathoo/emberfall/store"
	"github.com/nathoo/emberfall/types"
)

func newRepo() (*Repo, *store.Memory, context.Context) {
	db := store.NewMemory()
	return NewRepo(db), db, context.Background()
}

func TestRoom_Roundtrip(t *testing.T) {
	r, _, ctx := newRepo()
	room := &types.Room{
		ID:    "hall",
		Name:  "Grand Hall",
		Exits: map[string]string{"north": "cave"},
	}
	if err := r.SaveRoom(ctx, room); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := r.Room(ctx, "hall")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil || got.Name != "Grand Hall" || got.Exits["north"] != "cave" {
		t.Errorf("loaded %+v", got)
	}
}

func TestRoom_Absent(t *testing.T) {
	r, _, ctx := newRepo()
	got, err := r.Room(ctx, "nowhere")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != nil {
		t.Errorf("loaded %+v for absent room, want nil", got)
	}
}

func TestRoomEntities_SkipsDangling(t *testing.T) {
	r, _, ctx := newRepo()
	if err := r.SaveEntity(ctx, &types.Entity{ID: "cave_rat", Name: "Cave Rat", HP: 10}); err != nil {
		t.Fatalf("save entity: %v", err)
	}
	room := &types.Room{
		ID:       "cave",
		Entities: []string{"cave_rat", "deleted_mob"},
	}

	ents, err := r.RoomEntities(ctx, room)
	if err != nil {
		t.Fatalf("room entities: %v", err)
	}
	if len(ents) != 1 || ents[0].ID != "cave_rat" {
		t.Errorf("entities = %+v, want just cave_rat", ents)
	}
}

func TestItems_ListsCatalog(t *testing.T) {
	r, db, ctx := newRepo()
	for _, id := range []string{"sword", "potion", "helm"} {
		if err := db.Set(ctx, CollectionItems, id, types.ItemInstance{ItemID: id, Name: id}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	items, err := r.Items(ctx)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) != 3 {
		t.Errorf("catalog size = %d, want 3", len(items))
	}
}

func TestLootTable_Absent(t *testing.T) {
	r, _, ctx := newRepo()
	table, err := r.LootTable(ctx, "lootbox_gold")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if table != nil {
		t.Errorf("loaded %+v for absent table, want nil", table)
	}
}

func TestNewInstance_FreshID(t *testing.T) {
	template := types.ItemInstance{ItemID: "iron_sword", Name: "Iron Sword"}
	a := NewInstance(template)
	b := NewInstance(template)
	if a.InstanceID == "" || b.InstanceID == "" {
		t.Fatal("instances must get ids")
	}
	if a.InstanceID == b.InstanceID {
		t.Error("two instances share an id")
	}
	if a.ItemID != "iron_sword" || a.Name != "Iron Sword" {
		t.Errorf("instance lost template fields: %+v", a)
	}
	if template.InstanceID != "" {
		t.Error("template mutated by instancing")
	}
}
