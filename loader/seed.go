package loader

import (
	"context"

	"github.com/samber/oops"

	"github.com/nathoo/emberfall/store"
	"github.com/nathoo/emberfall/world"
)

// Seed writes the compiled world content into the document store. Rooms
// are only written when absent so runtime state (dropped items, slain
// non-respawning mobs) survives a restart; catalogs and entities are
// overwritten to pick up content changes.
func Seed(ctx context.Context, db store.Store, defs *Defs) error {
	for id, room := range defs.Rooms {
		var existing map[string]any
		found, err := db.Get(ctx, world.CollectionRooms, id, &existing)
		if err != nil {
			return oops.Wrapf(err, "check room %s", id)
		}
		if found {
			continue
		}
		if err := db.Set(ctx, world.CollectionRooms, id, room); err != nil {
			return oops.Wrapf(err, "seed room %s", id)
		}
	}

	for id, ent := range defs.Entities {
		if err := db.Set(ctx, world.CollectionEntities, id, ent); err != nil {
			return oops.Wrapf(err, "seed entity %s", id)
		}
	}

	for id, item := range defs.Items {
		if err := db.Set(ctx, world.CollectionItems, id, item); err != nil {
			return oops.Wrapf(err, "seed item %s", id)
		}
	}

	for id, table := range defs.LootTables {
		if err := db.Set(ctx, world.CollectionLootTables, id, table); err != nil {
			return oops.Wrapf(err, "seed loot table %s", id)
		}
	}

	return nil
}
