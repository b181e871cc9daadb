package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the Lua world constructors as globals.
func registerAPI(L *lua.LState, coll *collector) {
	// World { title = "...", start = "..." }
	L.SetGlobal("World", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.world = tbl
		return 0
	}))

	// Room "id" { ... } — curried: Room("id") returns a function that
	// takes the definition table.
	L.SetGlobal("Room", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.rooms = append(coll.rooms, rawRoom{id: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// Mob "id" { ... } — curried, a hostile combatant.
	L.SetGlobal("Mob", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.entities = append(coll.entities, rawEntity{id: id, kind: "mob", table: tbl})
			return 0
		}))
		return 1
	}))

	// NPC "id" { ... } — curried, a passive talker. Defaults to the
	// villager class so it never joins the aggro pass.
	L.SetGlobal("NPC", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.entities = append(coll.entities, rawEntity{id: id, kind: "npc", table: tbl})
			return 0
		}))
		return 1
	}))
}
