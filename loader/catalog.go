package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nathoo/emberfall/types"
)

// catalogFile is the YAML shape of an item catalog / loot table file.
// One file may carry either section or both.
type catalogFile struct {
	Items  []catalogItem  `yaml:"items"`
	Tables []catalogTable `yaml:"tables"`
}

type catalogItem struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Tier  string `yaml:"tier"`
	Slot  string `yaml:"slot"`
	Stats struct {
		Attack  int `yaml:"attack"`
		Defense int `yaml:"defense"`
		Heal    int `yaml:"heal"`
	} `yaml:"stats"`
}

type catalogTable struct {
	ID      string `yaml:"id"`
	Entries []struct {
		Item   string `yaml:"item"`
		Weight int    `yaml:"weight"`
	} `yaml:"entries"`
}

// loadCatalogFile parses one YAML catalog file into defs.
func loadCatalogFile(defs *Defs, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parsing yaml: %w", err)
	}

	for _, it := range file.Items {
		if it.ID == "" {
			return fmt.Errorf("item with empty id")
		}
		if _, dup := defs.Items[it.ID]; dup {
			return fmt.Errorf("duplicate item id %q", it.ID)
		}
		defs.Items[it.ID] = types.ItemInstance{
			ItemID: it.ID,
			Name:   it.Name,
			Type:   types.ItemType(it.Type),
			Tier:   types.Tier(it.Tier),
			Slot:   it.Slot,
			Stats: types.ItemStats{
				Attack:     it.Stats.Attack,
				Defense:    it.Stats.Defense,
				HealAmount: it.Stats.Heal,
			},
		}
	}

	for _, tb := range file.Tables {
		if tb.ID == "" {
			return fmt.Errorf("loot table with empty id")
		}
		if _, dup := defs.LootTables[tb.ID]; dup {
			return fmt.Errorf("duplicate loot table id %q", tb.ID)
		}
		table := types.LootTable{ID: tb.ID}
		for _, e := range tb.Entries {
			table.Entries = append(table.Entries, types.LootEntry{
				ItemID: e.Item,
				Weight: e.Weight,
			})
		}
		defs.LootTables[tb.ID] = table
	}

	return nil
}
