package combat

import (
	"testing"

	"github.com/nathoo/emberfall/engine/dice"
	"github.com/nathoo/emberfall/engine/rules"
	"github.com/nathoo/emberfall/types"
)

func testPlayer() *types.Player {
	return &types.Player{
		ID:    "p1",
		Name:  "Tester",
		Level: 1,
		Stats: types.Stats{
			Strength: 10, Dexterity: 10, Constitution: 10,
			Intelligence: 10, Wisdom: 10, Charisma: 10,
		},
		Skills: map[string]int{
			rules.SkillImprovise: 1,
			rules.SkillDodge:     1,
			rules.SkillFlee:      1,
		},
		HP:    45,
		MaxHP: 45,
		Alive: true,
	}
}

func testEntity(hp int) *types.Entity {
	return &types.Entity{
		ID:      "cave_rat",
		Name:    "Cave Rat",
		HP:      hp,
		MaxHP:   hp,
		Attack:  4,
		Defense: 2,
	}
}

func TestExchange_KillSkipsCounter(t *testing.T) {
	rng := dice.New(1)
	p := testPlayer()
	ent := testEntity(1)

	out := Exchange(rng, p, ent, 5, 0)
	if !out.EntityDied {
		t.Fatal("expected entity to die")
	}
	if out.PlayerDied {
		t.Error("player should not die when the entity drops first")
	}
	if p.HP != 45 {
		t.Errorf("player HP = %d after a clean kill, want 45", p.HP)
	}

	if out.Events[0].Type != types.EventPlayerAttack {
		t.Fatalf("first event = %q, want player_attack", out.Events[0].Type)
	}
	last := out.Events[len(out.Events)-1]
	if last.Type != types.EventEntityDeath {
		t.Errorf("last event = %q, want entity_death", last.Type)
	}
}

func TestExchange_DamageFormula(t *testing.T) {
	rng := dice.New(1)
	p := testPlayer()
	ent := testEntity(50)

	// attack 5, strength modifier 0, defense 2 -> 3 damage.
	out := Exchange(rng, p, ent, 5, 0)
	atk := out.Events[0]
	if atk.Type != types.EventPlayerAttack {
		t.Fatalf("first event = %q, want player_attack", atk.Type)
	}
	if atk.Damage != 3 {
		t.Errorf("damage = %d, want 3", atk.Damage)
	}
	if ent.HP != 47 {
		t.Errorf("entity HP = %d, want 47", ent.HP)
	}
}

func TestExchange_BareHandsMinimumDamage(t *testing.T) {
	rng := dice.New(1)
	p := testPlayer()
	ent := testEntity(50)

	// Improvise level 1 gives no bonus; str 10 gives no modifier. The
	// damage floor still lands 1 through 2 points of armor.
	out := Exchange(rng, p, ent, 0, 0)
	if out.Events[0].Damage != 1 {
		t.Errorf("bare-handed damage = %d, want floor of 1", out.Events[0].Damage)
	}
	if ent.HP != 49 {
		t.Errorf("entity HP = %d, want 49", ent.HP)
	}
}

func TestExchange_CounterAttackPath(t *testing.T) {
	rng := dice.New(3)
	p := testPlayer()
	ent := testEntity(50)

	out := Exchange(rng, p, ent, 5, 1)

	var check *types.Event
	for i := range out.Events {
		if out.Events[i].Type == types.EventSkillCheck {
			check = &out.Events[i]
			break
		}
	}
	if check == nil {
		t.Fatal("expected a dodge skill_check when the entity survives")
	}
	if check.Skill != rules.SkillDodge {
		t.Errorf("check skill = %q, want dodge", check.Skill)
	}

	if check.Success {
		if p.HP != 45 {
			t.Errorf("player HP = %d after successful dodge, want 45", p.HP)
		}
		for _, ev := range out.Events {
			if ev.Type == types.EventEntityAttack {
				t.Error("entity_attack emitted despite successful dodge")
			}
		}
	} else {
		// attack 4, flat power (modifier 0), defense 1 -> 3 damage.
		if p.HP != 42 {
			t.Errorf("player HP = %d after failed dodge, want 42", p.HP)
		}
		found := false
		for _, ev := range out.Events {
			if ev.Type == types.EventEntityAttack {
				found = true
				if ev.Damage != 3 {
					t.Errorf("counter damage = %d, want 3", ev.Damage)
				}
			}
		}
		if !found {
			t.Error("expected entity_attack after failed dodge")
		}
	}
}

func TestEntityAttack_PlayerDeath(t *testing.T) {
	p := testPlayer()
	p.HP = 1
	p.Stats.Dexterity = 1 // dodge threshold pins at the 95 ceiling
	p.Skills[rules.SkillDodge] = 0
	ent := testEntity(50)
	ent.Attack = 30

	// With a 95 threshold the dodge fails on almost every seed; scan for
	// one that rolls low so the outcome is fixed.
	for seed := int64(1); seed < 100; seed++ {
		rng := dice.New(seed)
		probe := rng.Percent()
		if probe >= 95 {
			continue
		}
		out := EntityAttack(dice.New(seed), p, ent, 0)
		if !out.PlayerDied {
			t.Fatal("expected player death at 1 HP against attack 30")
		}
		if p.HP != 0 {
			t.Errorf("player HP = %d, want clamp at 0", p.HP)
		}
		return
	}
	t.Fatal("no failing-dodge seed found in 1..99")
}

func TestEntityAttack_HPClampsAtZero(t *testing.T) {
	for seed := int64(1); seed < 100; seed++ {
		rng := dice.New(seed)
		if rng.Percent() >= 95 {
			continue
		}
		p := testPlayer()
		p.HP = 2
		p.Stats.Dexterity = 1
		p.Skills[rules.SkillDodge] = 0
		ent := testEntity(50)
		ent.Attack = 100

		out := EntityAttack(dice.New(seed), p, ent, 0)
		if p.HP != 0 {
			t.Errorf("player HP = %d, want 0 (never negative)", p.HP)
		}
		if !out.PlayerDied {
			t.Error("expected PlayerDied with overkill damage")
		}
		return
	}
	t.Fatal("no failing-dodge seed found in 1..99")
}
