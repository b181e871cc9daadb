// Package loader reads world content at startup: Lua files define the
// room graph and its inhabitants, YAML files define the item catalog and
// loot tables. Everything compiles into plain documents; the Lua VM is
// discarded after loading.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/emberfall/types"
)

// Defs holds the compiled world content, keyed by document id. Immutable
// after Load; the store seeder copies it into collections.
type Defs struct {
	World      WorldDef
	Rooms      map[string]types.Room
	Entities   map[string]types.Entity
	Items      map[string]types.ItemInstance
	LootTables map[string]types.LootTable
}

// WorldDef is the top-level World{} block.
type WorldDef struct {
	Title   string
	Author  string
	Version string
	Start   string
	Intro   string
}

// collector accumulates Lua definitions during file execution.
type collector struct {
	world    *lua.LTable
	rooms    []rawRoom
	entities []rawEntity
}

// Load reads all .lua and .yaml files from dir, compiles them into world
// definitions, and validates references.
func Load(dir string) (*Defs, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading world directory %s: %w", dir, err)
	}

	var luaFiles, yamlFiles []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch {
		case strings.HasSuffix(e.Name(), ".lua"):
			luaFiles = append(luaFiles, e.Name())
		case strings.HasSuffix(e.Name(), ".yaml"), strings.HasSuffix(e.Name(), ".yml"):
			yamlFiles = append(yamlFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}
	luaFiles = sortedLuaFiles(luaFiles)
	sort.Strings(yamlFiles)

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range luaFiles {
		if err := L.DoFile(filepath.Join(dir, f)); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	defs, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling world data: %w", err)
	}

	for _, f := range yamlFiles {
		if err := loadCatalogFile(defs, filepath.Join(dir, f)); err != nil {
			return nil, fmt.Errorf("loading catalog %s: %w", f, err)
		}
	}

	if err := validate(defs); err != nil {
		return nil, err
	}
	return defs, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Remove math.randomseed: content files must stay deterministic.
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}

// sortedLuaFiles returns .lua files with world.lua first and the rest
// alphabetical, so the World{} block is defined before anything else.
func sortedLuaFiles(files []string) []string {
	var worldFile string
	var others []string
	for _, f := range files {
		if f == "world.lua" {
			worldFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if worldFile != "" {
		return append([]string{worldFile}, others...)
	}
	return others
}
