package loader

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/emberfall/types"
)

// rawRoom holds a room table before compilation.
type rawRoom struct {
	id    string
	table *lua.LTable
}

// rawEntity holds a mob or NPC table before compilation.
type rawEntity struct {
	id    string
	kind  string
	table *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	if b, ok := tbl.RawGetString(key).(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	if t, ok := tbl.RawGetString(key).(*lua.LTable); ok {
		return t
	}
	return nil
}

// tableToStringMap converts a Lua table to a map[string]string.
func tableToStringMap(tbl *lua.LTable) map[string]string {
	if tbl == nil {
		return nil
	}
	m := map[string]string{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			if vs, ok := v.(lua.LString); ok {
				m[string(ks)] = string(vs)
			}
		}
	})
	return m
}

// tableToStringSlice converts a Lua array table to a []string.
func tableToStringSlice(tbl *lua.LTable) []string {
	if tbl == nil {
		return nil
	}
	var out []string
	for i := 1; i <= tbl.MaxN(); i++ {
		if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// compile converts all collected Lua data into Defs.
func compile(coll *collector) (*Defs, error) {
	defs := &Defs{
		Rooms:      map[string]types.Room{},
		Entities:   map[string]types.Entity{},
		Items:      map[string]types.ItemInstance{},
		LootTables: map[string]types.LootTable{},
	}

	if coll.world == nil {
		return nil, fmt.Errorf("no World{} definition found")
	}
	defs.World = WorldDef{
		Title:   getString(coll.world, "title"),
		Author:  getString(coll.world, "author"),
		Version: getString(coll.world, "version"),
		Start:   getString(coll.world, "start"),
		Intro:   getString(coll.world, "intro"),
	}

	for _, raw := range coll.rooms {
		if _, dup := defs.Rooms[raw.id]; dup {
			return nil, fmt.Errorf("duplicate room id %q", raw.id)
		}
		defs.Rooms[raw.id] = compileRoom(raw)
	}

	for _, raw := range coll.entities {
		if _, dup := defs.Entities[raw.id]; dup {
			return nil, fmt.Errorf("duplicate entity id %q", raw.id)
		}
		defs.Entities[raw.id] = compileEntity(raw)
	}

	return defs, nil
}

func compileRoom(raw rawRoom) types.Room {
	tbl := raw.table
	return types.Room{
		ID:          raw.id,
		Name:        getString(tbl, "name"),
		Zone:        getString(tbl, "zone"),
		HazardLevel: getInt(tbl, "hazard"),
		Description: getString(tbl, "description"),
		Exits:       tableToStringMap(getTable(tbl, "exits")),
		Entities:    tableToStringSlice(getTable(tbl, "entities")),
	}
}

func compileEntity(raw rawEntity) types.Entity {
	tbl := raw.table
	ent := types.Entity{
		ID:        raw.id,
		Name:      getString(tbl, "name"),
		HP:        getInt(tbl, "hp"),
		Attack:    getInt(tbl, "attack"),
		Defense:   getInt(tbl, "defense"),
		XPReward:  getInt(tbl, "xp"),
		LootTable: getString(tbl, "loot"),
		Respawns:  getBool(tbl, "respawns", raw.kind == "mob"),
		Class:     getString(tbl, "class"),
		Dialogue:  tableToStringSlice(getTable(tbl, "dialogue")),
	}
	ent.MaxHP = ent.HP
	if raw.kind == "npc" && ent.Class == "" {
		ent.Class = "villager"
	}
	return ent
}
