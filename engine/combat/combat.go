// Package combat resolves a single bounded exchange between the player
// and one entity. It mutates only the two combatants' hit points; the
// caller owns persistence and all XP/loot side effects.
package combat

import (
	"github.com/nathoo/emberfall/engine/dice"
	"github.com/nathoo/emberfall/engine/rules"
	"github.com/nathoo/emberfall/types"
)

// Outcome is the result of one exchange: the ordered events it produced
// and who, if anyone, dropped to zero hit points.
type Outcome struct {
	Events     []types.Event
	EntityDied bool
	PlayerDied bool
}

// Exchange resolves exactly one round: player attack, defender-death
// check, then (if the defender lives) a dodge check and the defender's
// counter-attack, then the player-death check.
//
// weaponAttack is the player's equipped attack value; at 0 the attack is
// bare-handed and the improvise passive bonus applies instead, with a
// possible improvise level-up after the hit lands. playerDefense is the
// player's total equipped defense.
func Exchange(rng *dice.RNG, p *types.Player, ent *types.Entity, weaponAttack, playerDefense int) Outcome {
	var out Outcome

	attack := weaponAttack
	improvising := weaponAttack == 0
	if improvising {
		attack = rules.ImproviseBonus(p.Skills[rules.SkillImprovise])
	}

	dmg := rules.Damage(attack, p.Stats.Strength, ent.Defense)
	ent.HP -= dmg
	if ent.HP < 0 {
		ent.HP = 0
	}
	out.Events = append(out.Events, types.Event{
		Type:       types.EventPlayerAttack,
		TargetID:   ent.ID,
		TargetName: ent.Name,
		Damage:     dmg,
		HP:         ent.HP,
		MaxHP:      ent.MaxHP,
	})

	if improvising {
		out.Events = append(out.Events, maybeSkillLevelUp(rng, p, rules.SkillImprovise)...)
	}

	if ent.HP == 0 {
		out.EntityDied = true
		out.Events = append(out.Events, types.Event{
			Type:       types.EventEntityDeath,
			TargetID:   ent.ID,
			TargetName: ent.Name,
		})
		return out
	}

	counter := counterAttack(rng, p, ent, playerDefense)
	out.Events = append(out.Events, counter.Events...)
	out.PlayerDied = counter.PlayerDied
	return out
}

// EntityAttack resolves an entity striking first, with no player attack
// phase. Used for environmental aggression and failed flee retaliation.
func EntityAttack(rng *dice.RNG, p *types.Player, ent *types.Entity, playerDefense int) Outcome {
	return counterAttack(rng, p, ent, playerDefense)
}

// counterAttack runs the shared dodge-then-damage path for an incoming
// entity attack. A successful dodge fully negates the attack: zero
// damage, no mutation, possible dodge level-up.
func counterAttack(rng *dice.RNG, p *types.Player, ent *types.Entity, playerDefense int) Outcome {
	var out Outcome

	check := rules.RollSkillCheck(rng,
		rules.SkillDodge,
		p.Skills[rules.SkillDodge],
		p.Stats.Dexterity,
		rules.DodgeDifficulty(ent.Attack),
	)
	out.Events = append(out.Events, types.Event{
		Type:       types.EventSkillCheck,
		Skill:      check.Skill,
		SkillLevel: check.SkillLevel,
		Roll:       check.Roll,
		Threshold:  check.Threshold,
		Success:    check.Success,
		TargetID:   ent.ID,
		TargetName: ent.Name,
	})

	if check.Success {
		out.Events = append(out.Events, maybeSkillLevelUp(rng, p, rules.SkillDodge)...)
		return out
	}

	// Entities attack with flat power: no ability score, so no modifier.
	dmg := rules.Damage(ent.Attack, rules.BaseStat, playerDefense)
	p.HP -= dmg
	if p.HP < 0 {
		p.HP = 0
	}
	out.Events = append(out.Events, types.Event{
		Type:       types.EventEntityAttack,
		TargetID:   ent.ID,
		TargetName: ent.Name,
		Damage:     dmg,
		HP:         p.HP,
		MaxHP:      p.MaxHP,
	})
	out.PlayerDied = p.HP == 0
	return out
}

// maybeSkillLevelUp rolls a post-success skill level-up and applies it.
func maybeSkillLevelUp(rng *dice.RNG, p *types.Player, skill string) []types.Event {
	level := p.Skills[skill]
	if !rules.RollSkillLevelUp(rng, level) {
		return nil
	}
	p.Skills[skill] = level + 1
	return []types.Event{{
		Type:       types.EventSkillLevelUp,
		Skill:      skill,
		SkillLevel: level + 1,
	}}
}
