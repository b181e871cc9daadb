// Package world gives the engine typed access to the externally-owned
// world documents: rooms, entities, the item catalog, and loot tables.
// It is a thin repository over the document store so the engine's core
// logic stays free of persistence concerns and tests can substitute an
// in-memory store.
package world

import (
	"context"
	"encoding/json"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/nathoo/emberfall/store"
	"github.com/nathoo/emberfall/types"
)

// Collection names in the document store.
const (
	CollectionPlayers    = "players"
	CollectionRooms      = "rooms"
	CollectionEntities   = "entities"
	CollectionItems      = "items"
	CollectionLootTables = "loot_tables"
)

// Repo resolves world documents by id. Absent documents come back nil
// with a nil error; only store I/O failures return errors.
type Repo struct {
	db store.Store
}

// NewRepo creates a repository over the given store.
func NewRepo(db store.Store) *Repo {
	return &Repo{db: db}
}

// Room loads a room document, or nil if it does not exist.
func (r *Repo) Room(ctx context.Context, id string) (*types.Room, error) {
	var room types.Room
	found, err := r.db.Get(ctx, CollectionRooms, id, &room)
	if err != nil {
		return nil, oops.Wrapf(err, "load room %s", id)
	}
	if !found {
		return nil, nil
	}
	return &room, nil
}

// SaveRoom overwrites a room document.
func (r *Repo) SaveRoom(ctx context.Context, room *types.Room) error {
	if err := r.db.Set(ctx, CollectionRooms, room.ID, room); err != nil {
		return oops.Wrapf(err, "save room %s", room.ID)
	}
	return nil
}

// Entity loads an entity document, or nil if it does not exist.
func (r *Repo) Entity(ctx context.Context, id string) (*types.Entity, error) {
	var ent types.Entity
	found, err := r.db.Get(ctx, CollectionEntities, id, &ent)
	if err != nil {
		return nil, oops.Wrapf(err, "load entity %s", id)
	}
	if !found {
		return nil, nil
	}
	return &ent, nil
}

// RoomEntities loads the entity documents present in a room, in presence
// list order. Dangling ids are skipped.
func (r *Repo) RoomEntities(ctx context.Context, room *types.Room) ([]*types.Entity, error) {
	ents := make([]*types.Entity, 0, len(room.Entities))
	for _, id := range room.Entities {
		ent, err := r.Entity(ctx, id)
		if err != nil {
			return nil, err
		}
		if ent != nil {
			ents = append(ents, ent)
		}
	}
	return ents, nil
}

// SaveEntity overwrites an entity document.
func (r *Repo) SaveEntity(ctx context.Context, ent *types.Entity) error {
	if err := r.db.Set(ctx, CollectionEntities, ent.ID, ent); err != nil {
		return oops.Wrapf(err, "save entity %s", ent.ID)
	}
	return nil
}

// Item loads a catalog item template, or nil if it does not exist.
func (r *Repo) Item(ctx context.Context, id string) (*types.ItemInstance, error) {
	var item types.ItemInstance
	found, err := r.db.Get(ctx, CollectionItems, id, &item)
	if err != nil {
		return nil, oops.Wrapf(err, "load item %s", id)
	}
	if !found {
		return nil, nil
	}
	return &item, nil
}

// Items loads the whole item catalog. Used for rarity-weighted spawn rolls.
func (r *Repo) Items(ctx context.Context) ([]types.ItemInstance, error) {
	raws, err := r.db.Query(ctx, CollectionItems, nil)
	if err != nil {
		return nil, oops.Wrapf(err, "query item catalog")
	}
	items := make([]types.ItemInstance, 0, len(raws))
	for _, raw := range raws {
		var item types.ItemInstance
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, oops.Wrapf(err, "decode catalog item")
		}
		items = append(items, item)
	}
	return items, nil
}

// LootTable loads a loot table, or nil if it does not exist.
func (r *Repo) LootTable(ctx context.Context, id string) (*types.LootTable, error) {
	var table types.LootTable
	found, err := r.db.Get(ctx, CollectionLootTables, id, &table)
	if err != nil {
		return nil, oops.Wrapf(err, "load loot table %s", id)
	}
	if !found {
		return nil, nil
	}
	return &table, nil
}

// NewInstance copies a catalog template into a fresh item instance with
// its own id. Instances never share state with the template or each other.
func NewInstance(template types.ItemInstance) types.ItemInstance {
	inst := template
	inst.InstanceID = ulid.Make().String()
	return inst
}
