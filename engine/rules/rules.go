// Package rules implements the deterministic game math: stat modifiers,
// damage, progression thresholds, hazard dice, carrying capacity, and
// skill-check probability. Functions are pure except where a *dice.RNG is
// passed in explicitly.
package rules

import (
	"github.com/nathoo/emberfall/engine/dice"
	"github.com/nathoo/emberfall/types"
)

// Tunable base values for player progression.
const (
	BaseHP             = 20
	BaseSlots          = 10
	BaseStat           = 10
	StatPointsPerLevel = 2
	MaxSkillLevel      = 10
)

// Skill names and their fixed difficulties.
const (
	SkillImprovise = "improvise"
	SkillDodge     = "dodge"
	SkillFlee      = "flee"

	FleeDifficulty = 70
)

// ScavengeChance is the percent chance an item spawns when entering a room.
const ScavengeChance = 15

// Modifier converts an ability score to its modifier: floor((stat-10)/2).
// Used everywhere a raw stat must influence a percentage or flat bonus.
func Modifier(stat int) int {
	d := stat - 10
	if d < 0 {
		// Floor division: Go truncates toward zero, so handle the
		// negative half explicitly (stat 7 → -2, not -1).
		return -((-d + 1) / 2)
	}
	return d / 2
}

// MaxHP computes the hit point ceiling for a level and constitution score.
func MaxHP(level, con int) int {
	return BaseHP + 2*con + 5*level
}

// Damage computes attack damage: max(1, attack + Modifier(attackerStat) -
// defense). The floor of 1 prevents zero-damage stalemates.
func Damage(attack, attackerStat, defense int) int {
	dmg := attack + Modifier(attackerStat) - defense
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

// XPToNextLevel returns the XP threshold to leave the given level.
func XPToNextLevel(level int) int {
	return 100 * level
}

// Advance applies the level-up loop: while xp meets the threshold, consume
// it and gain a level. A single award can trigger multiple level-ups.
// Returns the new level, the remainder XP, and the number of levels gained.
func Advance(level, xp int) (newLevel, remXP, gained int) {
	for xp >= XPToNextLevel(level) {
		xp -= XPToNextLevel(level)
		level++
		gained++
	}
	return level, xp, gained
}

// HazardDamage rolls hazard damage for a room: level * d6. Level 0 yields
// 0 without consuming a random draw.
func HazardDamage(level int, rng *dice.RNG) int {
	if level <= 0 {
		return 0
	}
	return level * rng.Roll(6)
}

// InventoryCapacity returns the inventory slot count for a strength score.
func InventoryCapacity(str int) int {
	return BaseSlots + Modifier(str)
}

// ImproviseBonus is the bare-handed attack bonus: floor(skillLevel * 0.5).
func ImproviseBonus(skillLevel int) int {
	return skillLevel / 2
}

// DodgeDifficulty scales the dodge check by the attacker's power.
func DodgeDifficulty(attack int) int {
	return 65 + attack/2
}

// Check records the inputs and outcome of one skill check.
type Check struct {
	Skill      string
	SkillLevel int
	Difficulty int
	Threshold  int
	Roll       int
	Success    bool
}

// RollSkillCheck performs a skill check. The success threshold is
// clamp(base - 5*skillLevel - 3*Modifier(stat), 5, 95), so no check is
// ever auto-pass or auto-fail regardless of stat or skill extremes.
// A d100 roll at or above the threshold succeeds.
func RollSkillCheck(rng *dice.RNG, skill string, skillLevel, stat, baseDifficulty int) Check {
	threshold := baseDifficulty - 5*skillLevel - 3*Modifier(stat)
	if threshold < 5 {
		threshold = 5
	}
	if threshold > 95 {
		threshold = 95
	}
	roll := rng.Percent()
	return Check{
		Skill:      skill,
		SkillLevel: skillLevel,
		Difficulty: baseDifficulty,
		Threshold:  threshold,
		Roll:       roll,
		Success:    roll >= threshold,
	}
}

// SkillLevelUpChance is the probability a skill levels after a successful
// use: max(0.02, 0.15 - 0.02*(level-1)).
func SkillLevelUpChance(level int) float64 {
	chance := 0.15 - 0.02*float64(level-1)
	if chance < 0.02 {
		chance = 0.02
	}
	return chance
}

// RollSkillLevelUp rolls for a skill level-up after a successful use.
// Always false at or above the skill cap, with no random draw consumed.
func RollSkillLevelUp(rng *dice.RNG, level int) bool {
	if level >= MaxSkillLevel {
		return false
	}
	return rng.Float64() < SkillLevelUpChance(level)
}

// tierWeights drive rarity-weighted item selection.
var tierWeights = map[types.Tier]int{
	types.TierIron:   60,
	types.TierBronze: 25,
	types.TierSilver: 12,
	types.TierGold:   3,
}

// TierWeight returns the rarity weight for a tier. Unknown tiers weigh as
// iron so malformed content still rolls.
func TierWeight(tier types.Tier) int {
	if w, ok := tierWeights[tier]; ok {
		return w
	}
	return tierWeights[types.TierIron]
}

// lootboxXP is the XP awarded for opening a lootbox of each tier.
var lootboxXP = map[types.Tier]int{
	types.TierIron:   10,
	types.TierBronze: 25,
	types.TierSilver: 50,
	types.TierGold:   100,
}

// LootboxXP returns the XP award for opening a lootbox of the given tier.
func LootboxXP(tier types.Tier) int {
	if xp, ok := lootboxXP[tier]; ok {
		return xp
	}
	return lootboxXP[types.TierIron]
}
