package status

import (
	"testing"

	"github.com/novaspire/worldcore/internal/component"
)

func TestRegenTick_AppliesPerSecondAndDecrementsTicks(t *testing.T) {
	effects := component.NewStatusEffects()
	effects.Active[1] = &component.StatusEffect{Type: 1, Regen: &component.RegenCurve{PerSecond: 10, Ticks: 3}}
	vitals := &component.Vitals{HP: 50}
	ability := component.AbilityValues{MaxHealth: 100, MaxMana: 100}

	RegenTick(effects, vitals, ability)

	if vitals.HP != 60 {
		t.Fatalf("expected HP 60 after one regen tick, got %d", vitals.HP)
	}
	if effects.Active[1].Regen.Ticks != 2 {
		t.Fatalf("expected remaining regen ticks decremented to 2, got %d", effects.Active[1].Regen.Ticks)
	}
}

func TestRegenTick_ClampsAtMaxHealth(t *testing.T) {
	effects := component.NewStatusEffects()
	effects.Active[1] = &component.StatusEffect{Type: 1, Regen: &component.RegenCurve{PerSecond: 50, Ticks: 1}}
	vitals := &component.Vitals{HP: 90}
	ability := component.AbilityValues{MaxHealth: 100, MaxMana: 100}

	RegenTick(effects, vitals, ability)

	if vitals.HP != 100 {
		t.Fatalf("expected HP clamped to 100, got %d", vitals.HP)
	}
}

func TestRegenTick_SkipsExhaustedCurve(t *testing.T) {
	effects := component.NewStatusEffects()
	effects.Active[1] = &component.StatusEffect{Type: 1, Regen: &component.RegenCurve{PerSecond: 10, Ticks: 0}}
	vitals := &component.Vitals{HP: 50}
	ability := component.AbilityValues{MaxHealth: 100}

	RegenTick(effects, vitals, ability)

	if vitals.HP != 50 {
		t.Fatalf("expected exhausted regen curve to not apply, got %d", vitals.HP)
	}
}

func TestAdvanceExpiry_RemovesPastEffects(t *testing.T) {
	effects := component.NewStatusEffects()
	effects.Active[1] = &component.StatusEffect{Type: 1, ExpireTick: 100, Value: 5}
	effects.Active[2] = &component.StatusEffect{Type: 2, ExpireTick: 999, Value: 9}

	gone := AdvanceExpiry(effects, 100)

	if len(gone) != 1 || gone[0].Type != 1 || gone[0].Value != 5 {
		t.Fatalf("expected type 1 to expire, got %+v", gone)
	}
	if _, ok := effects.Active[1]; ok {
		t.Fatalf("expected expired effect removed from active set")
	}
	if _, ok := effects.Active[2]; !ok {
		t.Fatalf("expected unexpired effect to remain")
	}
}

func TestClearOnDeath_RemovesEverythingIncludingUndispellable(t *testing.T) {
	effects := component.NewStatusEffects()
	effects.Active[1] = &component.StatusEffect{Type: 1, ClearedBy: component.ClearedByNone}
	effects.Active[2] = &component.StatusEffect{Type: 2, ClearedBy: component.ClearedByGood}

	gone := ClearOnDeath(effects)

	if len(gone) != 2 {
		t.Fatalf("expected all effects cleared on death, got %d", len(gone))
	}
	if len(effects.Active) != 0 {
		t.Fatalf("expected active set empty after death clear")
	}
}

func TestPassiveRecover_AppliesAndClamps(t *testing.T) {
	vitals := &component.Vitals{HP: 95, MP: 95}
	ability := component.AbilityValues{MaxHealth: 100, MaxMana: 100}

	PassiveRecover(vitals, ability, PassiveRegenRate{HP: 10, MP: 10})

	if vitals.HP != 100 || vitals.MP != 100 {
		t.Fatalf("expected clamp to caps, got HP=%d MP=%d", vitals.HP, vitals.MP)
	}
}
