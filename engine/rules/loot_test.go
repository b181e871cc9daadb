package rules

import (
	"testing"

	"github.com/nathoo/emberfall/engine/dice"
	"github.com/nathoo/emberfall/types"
)

func TestRollLoot_Empty(t *testing.T) {
	rng := dice.New(1)
	if got := RollLoot(rng, nil); got != -1 {
		t.Errorf("RollLoot(empty) = %d, want -1", got)
	}
}

func TestRollLoot_ZeroTotalWeight(t *testing.T) {
	rng := dice.New(1)
	entries := []types.LootEntry{
		{ItemID: "a", Weight: 0},
		{ItemID: "b", Weight: 0},
	}
	if got := RollLoot(rng, entries); got != 1 {
		t.Errorf("RollLoot(zero weights) = %d, want last index 1", got)
	}
}

func TestRollLoot_SingleEntry(t *testing.T) {
	rng := dice.New(1)
	entries := []types.LootEntry{{ItemID: "only", Weight: 5}}
	for i := 0; i < 100; i++ {
		if got := RollLoot(rng, entries); got != 0 {
			t.Fatalf("RollLoot(single) = %d, want 0", got)
		}
	}
}

func TestRollLoot_Converges(t *testing.T) {
	rng := dice.New(42)
	entries := []types.LootEntry{
		{ItemID: "common", Weight: 70},
		{ItemID: "rare", Weight: 30},
	}
	counts := make([]int, len(entries))
	const n = 10000
	for i := 0; i < n; i++ {
		idx := RollLoot(rng, entries)
		if idx < 0 || idx >= len(entries) {
			t.Fatalf("RollLoot returned out-of-range index %d", idx)
		}
		counts[idx]++
	}
	common := float64(counts[0]) / n
	if common < 0.67 || common > 0.73 {
		t.Errorf("common rate = %v, want ~0.70", common)
	}
}

func TestRollByRarity_Empty(t *testing.T) {
	rng := dice.New(1)
	if got := RollByRarity(rng, nil); got != -1 {
		t.Errorf("RollByRarity(empty) = %d, want -1", got)
	}
}

func TestRollByRarity_Converges(t *testing.T) {
	rng := dice.New(42)
	items := []types.ItemInstance{
		{ItemID: "rusty_dagger", Tier: types.TierIron},
		{ItemID: "kings_blade", Tier: types.TierGold},
	}
	counts := make([]int, len(items))
	const n = 10000
	for i := 0; i < n; i++ {
		counts[RollByRarity(rng, items)]++
	}
	// iron 60 vs gold 3: iron should land ~95% of the time.
	ironRate := float64(counts[0]) / n
	if ironRate < 0.93 || ironRate > 0.97 {
		t.Errorf("iron rate = %v, want ~0.952", ironRate)
	}
	if counts[1] == 0 {
		t.Error("gold never dropped over 10k rolls")
	}
}
