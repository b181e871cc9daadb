package rules

import (
	"github.com/nathoo/emberfall/engine/dice"
	"github.com/nathoo/emberfall/types"
)

// RollLoot picks one entry index from a weighted loot table using
// cumulative-weight sampling: draw a uniform value in [0, total), then
// subtract weights in list order until the remainder goes negative. The
// last entry is a deterministic fallback, so a non-empty table always
// yields an index. Returns -1 for an empty table.
func RollLoot(rng *dice.RNG, entries []types.LootEntry) int {
	if len(entries) == 0 {
		return -1
	}
	total := 0
	for _, e := range entries {
		total += e.Weight
	}
	if total <= 0 {
		return len(entries) - 1
	}
	roll := rng.Intn(total)
	for i, e := range entries {
		roll -= e.Weight
		if roll < 0 {
			return i
		}
	}
	return len(entries) - 1
}

// RollByRarity picks one item index from a catalog slice, weighted by each
// item's tier. Same cumulative-weight scheme and fallback as RollLoot.
// Returns -1 for an empty slice.
func RollByRarity(rng *dice.RNG, items []types.ItemInstance) int {
	if len(items) == 0 {
		return -1
	}
	total := 0
	for _, it := range items {
		total += TierWeight(it.Tier)
	}
	roll := rng.Intn(total)
	for i, it := range items {
		roll -= TierWeight(it.Tier)
		if roll < 0 {
			return i
		}
	}
	return len(items) - 1
}
