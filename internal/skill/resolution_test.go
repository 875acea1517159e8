package skill

import (
	"testing"

	"github.com/novaspire/worldcore/internal/component"
	"github.com/novaspire/worldcore/internal/ecs"
)

func TestApplyCosts_ScalesMPBySaveMana(t *testing.T) {
	tmpl := Template{ID: 1, CooldownGroup: -1, Cost: Cost{MP: 40}, GlobalCooldownTk: 5, CooldownTk: 20}
	ctx := CastContext{SaveMana: 50, NowTick: 100}
	vitals := &component.Vitals{HP: 100, MP: 100}
	cooldowns := component.NewCooldowns()

	ApplyCosts(tmpl, ctx, vitals, nil, nil, cooldowns)

	if vitals.MP != 80 {
		t.Fatalf("expected MP reduced by half cost (20), got %d", vitals.MP)
	}
	if cooldowns.GlobalReady(104) {
		t.Fatalf("expected global cooldown still active at tick 104")
	}
	if !cooldowns.SkillReady(1, 121) {
		t.Fatalf("expected skill cooldown elapsed by tick 121")
	}
}

func TestApplyCosts_ExampleScenario2FromSpec(t *testing.T) {
	// spec.md §8 scenario 2: MP 100, save_mana 0, cost 40 MP -> MP 60.
	tmpl := Template{ID: 5, CooldownGroup: -1, Cost: Cost{MP: 40}, CooldownTk: 20}
	ctx := CastContext{SaveMana: 0, NowTick: 1000}
	vitals := &component.Vitals{HP: 100, MP: 100}
	cooldowns := component.NewCooldowns()

	ApplyCosts(tmpl, ctx, vitals, nil, nil, cooldowns)

	if vitals.MP != 60 {
		t.Fatalf("expected MP 60 after full-cost cast, got %d", vitals.MP)
	}
	if cooldowns.SkillReady(5, 1010) {
		t.Fatalf("expected re-cast within cooldown to be rejected")
	}
}

func TestApplyCosts_NeverGoesNegative(t *testing.T) {
	tmpl := Template{ID: 1, CooldownGroup: -1, Cost: Cost{HP: 200, MP: 200}}
	ctx := CastContext{NowTick: 1}
	vitals := &component.Vitals{HP: 50, MP: 50}
	ApplyCosts(tmpl, ctx, vitals, nil, nil, component.NewCooldowns())
	if vitals.HP != 0 || vitals.MP != 0 {
		t.Fatalf("expected vitals clamped to zero, got %+v", vitals)
	}
}

func TestConsumeReagent_NoReagentAlwaysSucceeds(t *testing.T) {
	if !ConsumeReagent(CastContext{}) {
		t.Fatalf("expected no-reagent cast to succeed")
	}
}

func TestConsumeReagent_FailsOnEmptySlot(t *testing.T) {
	ctx := CastContext{Reagent: &Reagent{Slot: &component.Slot{}}}
	if ConsumeReagent(ctx) {
		t.Fatalf("expected empty slot to fail reagent consumption")
	}
}

func TestConsumeReagent_TakesOneStackable(t *testing.T) {
	slot := &component.Slot{Item: &component.Item{Quantity: 3}}
	ctx := CastContext{Reagent: &Reagent{Slot: slot}}
	if !ConsumeReagent(ctx) {
		t.Fatalf("expected reagent to be consumed")
	}
	if slot.Item.Quantity != 2 {
		t.Fatalf("expected quantity decremented to 2, got %d", slot.Item.Quantity)
	}
}

func TestResolveDamage_OneEffectPerTarget(t *testing.T) {
	targets := []ecs.EntityID{ecs.NewEntityID(1, 0), ecs.NewEntityID(2, 0)}
	effects := ResolveDamage(targets, 50)
	if len(effects) != 2 || effects[0].Amount != 50 || effects[1].Amount != 50 {
		t.Fatalf("unexpected damage effects: %+v", effects)
	}
}

func TestRollStatusSuccess_BuffFormula(t *testing.T) {
	ctx := &CastContext{CasterLevel: 40, Roll: func() int { return 50 }}
	target := TargetResist{Level: 40}
	// successRatio(80) < (40-40) + 50 = 50 -> 80 < 50 is false
	if RollStatusSuccess(ctx, 80, true, target) {
		t.Fatalf("expected buff roll to fail when ratio exceeds threshold")
	}
	if !RollStatusSuccess(ctx, 30, true, target) {
		t.Fatalf("expected buff roll to succeed when ratio under threshold")
	}
}

func TestRollStatusSuccess_OtherEffectFormula(t *testing.T) {
	ctx := &CastContext{CasterLevel: 40, CasterInt: 10, Roll: func() int { return 100 }}
	target := TargetResist{Resist: 0, Avoid: 0}
	// num = ratio*(80+10+20)=ratio*110; den = 5; succeeds when num/den <= 100
	if !RollStatusSuccess(ctx, 4, false, target) {
		t.Fatalf("expected low ratio to succeed: (4*110)/5=88 <= 100")
	}
	if RollStatusSuccess(ctx, 10, false, target) {
		t.Fatalf("expected high ratio to fail: (10*110)/5=220 > 100")
	}
}

func TestStatusGatedOnDamage_ResurrectionRequiresDamage(t *testing.T) {
	if statusGatedOnDamage(KindResurrection, nil) {
		t.Fatalf("expected no-damage resurrection to gate status off")
	}
	dmg := []DamageEffect{{Amount: 1}}
	if !statusGatedOnDamage(KindResurrection, dmg) {
		t.Fatalf("expected damage > 0 to allow status")
	}
}

func TestStatusGatedOnDamage_OtherKindsAlwaysAllowed(t *testing.T) {
	if !statusGatedOnDamage(KindDuration, nil) {
		t.Fatalf("expected non-gated kind to always allow status")
	}
}
