package combat

import (
	"testing"

	"github.com/novaspire/worldcore/internal/component"
	"github.com/novaspire/worldcore/internal/ecs"
)

func TestResolve_DropsEventIfDefenderAlreadyDead(t *testing.T) {
	hp := int32(0)
	cur := component.Command{Kind: component.CommandDie}
	sources := component.NewDamageSources(4)
	out := Resolve(DamageEvent{Amount: 10}, false, &hp, &cur, sources, 1, 10)
	if out.Applied {
		t.Fatalf("expected dropped event for dead defender")
	}
	if len(sources.Entries) != 0 {
		t.Fatalf("expected no damage recorded for dropped event")
	}
}

func TestResolve_SubtractsSaturatingFromHP(t *testing.T) {
	hp := int32(10)
	cur := component.Command{Kind: component.CommandStop}
	sources := component.NewDamageSources(4)
	attacker := ecs.NewEntityID(1, 0)

	out := Resolve(DamageEvent{Attacker: attacker, Amount: 50}, true, &hp, &cur, sources, 1, 10)

	if hp != 0 {
		t.Fatalf("expected HP to saturate at 0, got %d", hp)
	}
	if !out.Died {
		t.Fatalf("expected Died true when HP reaches 0")
	}
	if cur.Kind != component.CommandDie || cur.Killer != attacker {
		t.Fatalf("expected command set to Die with killer recorded, got %+v", cur)
	}
}

func TestResolve_AppendsToDamageSourcesRing(t *testing.T) {
	hp := int32(100)
	cur := component.Command{Kind: component.CommandStop}
	sources := component.NewDamageSources(4)
	attacker := ecs.NewEntityID(2, 0)

	Resolve(DamageEvent{Attacker: attacker, Amount: 30}, true, &hp, &cur, sources, 5, 10)

	if len(sources.Entries) != 1 || sources.Entries[0].TotalDamage != 30 {
		t.Fatalf("expected one entry with 30 damage, got %+v", sources.Entries)
	}
}

func TestResolve_AppliesHitStunUnlessPastLockPoint(t *testing.T) {
	hp := int32(100)
	cur := component.Command{Kind: component.CommandCastSkill, StartTick: 0, CastLockPoint: 10}
	sources := component.NewDamageSources(4)

	out := Resolve(DamageEvent{Amount: 1, ApplyHitStun: true}, true, &hp, &cur, sources, 5, 10)
	if !out.HitStunned || cur.Kind != component.CommandStop {
		t.Fatalf("expected hit-stun to cancel the cast before lock point, got %+v", cur)
	}
}

func TestResolve_NoHitStunPastLockPoint(t *testing.T) {
	hp := int32(100)
	cur := component.Command{Kind: component.CommandCastSkill, StartTick: 0, CastLockPoint: 10}
	sources := component.NewDamageSources(4)

	out := Resolve(DamageEvent{Amount: 1, ApplyHitStun: true}, true, &hp, &cur, sources, 15, 10)
	if out.HitStunned || cur.Kind != component.CommandCastSkill {
		t.Fatalf("expected cast to continue past lock point, got %+v", cur)
	}
}

func TestResolve_DeathSetsCommandDieWithDuration(t *testing.T) {
	hp := int32(5)
	cur := component.Command{Kind: component.CommandAttack}
	sources := component.NewDamageSources(4)
	attacker := ecs.NewEntityID(9, 0)

	Resolve(DamageEvent{Attacker: attacker, Amount: 5}, true, &hp, &cur, sources, 100, 25)

	if cur.Kind != component.CommandDie || cur.DurationTks != 25 || cur.StartTick != 100 {
		t.Fatalf("unexpected death command: %+v", cur)
	}
}
