package skill

import (
	"math/rand"

	"github.com/novaspire/worldcore/internal/component"
	"github.com/novaspire/worldcore/internal/ecs"
	"github.com/novaspire/worldcore/internal/inventory"
)

// Kind is the closed set of skill effect families spec.md §4.4 lists.
// isDamage and isStatus group the damage and status families; nothing in
// this file dispatches on Kind.
type Kind uint8

const (
	KindImmediate Kind = iota
	KindEnforceWeapon
	KindEnforceBullet
	KindFireBullet
	KindAreaTarget
	KindSelfDamage
	KindSelfBound
	KindTargetBound
	KindDuration
	KindSummonPet
	KindWarp
	KindResurrection
	KindSelfAndTarget
)

func (k Kind) isDamage() bool {
	switch k {
	case KindImmediate, KindEnforceWeapon, KindEnforceBullet, KindFireBullet, KindAreaTarget, KindSelfDamage:
		return true
	}
	return false
}

func (k Kind) isStatus() bool {
	switch k {
	case KindSelfBound, KindTargetBound, KindDuration:
		return true
	}
	return false
}

// Reagent is the optional item-cast cost consumed at resolution before
// any other effect (spec.md §4.4: "cast cancels without charging costs"
// on failure to consume it).
type Reagent struct {
	Slot *component.Slot
}

// CastContext is everything resolution needs beyond the Template itself.
type CastContext struct {
	Caster        ecs.EntityID
	CasterLevel   int32
	CasterInt     int32
	SaveMana      int32 // 0..100, percent MP cost reduction
	NowTick       uint64
	CooldownTicks uint64
	Reagent       *Reagent
	StatusDuration uint64
	StatusValue    int32
	Roll           func() int // injected for deterministic tests; defaults to rand
}

func (c *CastContext) roll() int {
	if c.Roll != nil {
		return c.Roll()
	}
	return rand.Intn(100) + 1
}

// DamageEffect is one hit the resolver emits for the combat package to
// apply (spec.md §4.5 picks it up from here).
type DamageEffect struct {
	Target ecs.EntityID
	Amount int64
}

// StatusApplication is one status instance the resolver decided to apply
// after rolling success probability.
type StatusApplication struct {
	Target ecs.EntityID
	Effect component.StatusEffect
}

// Resolution is the full output of resolving one admitted skill use.
type Resolution struct {
	Damage     []DamageEffect
	Statuses   []StatusApplication
	Warp       bool
	SummonPet  bool
	Cancelled  bool // reagent missing; no costs charged, no effects applied
}

// TargetResist is the subset of a target's defensive stats the status
// probability formula in spec.md §4.4 reads.
type TargetResist struct {
	Level  int32
	Resist int32
	Avoid  int32
}

// ApplyCosts subtracts HP/MP/money/fuel from the caster, scaling MP by
// (100-save_mana)% (spec.md §4.4 resolution step 1), and writes the
// global/per-skill/per-group cooldowns (step 2). Cost.Stamina and Cost.XP
// are not charged.
func ApplyCosts(t Template, ctx CastContext, vitals *component.Vitals, money *int64, fuel *int32, cooldowns *component.Cooldowns) {
	mpCost := t.Cost.MP * (100 - ctx.SaveMana) / 100
	vitals.HP -= t.Cost.HP
	vitals.MP -= mpCost
	if vitals.HP < 0 {
		vitals.HP = 0
	}
	if vitals.MP < 0 {
		vitals.MP = 0
	}
	if money != nil {
		*money -= t.Cost.Money
	}
	if fuel != nil {
		*fuel -= t.Cost.Fuel
	}
	cooldowns.SetGlobal(ctx.NowTick, t.GlobalCooldownTk)
	cooldowns.SetSkill(t.ID, ctx.NowTick, t.CooldownTk)
	if t.CooldownGroup >= 0 {
		cooldowns.SetGroup(t.CooldownGroup, ctx.NowTick, t.CooldownTk)
	}
}

// ConsumeReagent implements the item-cast reagent rule: if a reagent is
// required and cannot be taken, the cast cancels without charging any
// cost (spec.md §4.4). Callers must check the returned bool before
// calling ApplyCosts.
func ConsumeReagent(ctx CastContext) bool {
	if ctx.Reagent == nil {
		return true
	}
	return inventory.TakeOne(ctx.Reagent.Slot)
}

// ResolveDamage computes one DamageEffect per affected target for the
// damage-skill kinds (spec.md §4.4 step 3, first bullet). baseDamage is
// the already-computed per-hit amount; callers run this once per
// hit-count.
func ResolveDamage(targets []ecs.EntityID, baseDamage int64) []DamageEffect {
	out := make([]DamageEffect, 0, len(targets))
	for _, tg := range targets {
		out = append(out, DamageEffect{Target: tg, Amount: baseDamage})
	}
	return out
}

// RollStatusSuccess implements the two probability formulas spec.md §4.4
// spells out for status skills, keyed on whether the effect is a buff
// (cleared_by = Good) or a debuff/other effect.
func RollStatusSuccess(ctx *CastContext, successRatio int32, isBuff bool, target TargetResist) bool {
	roll := ctx.roll()
	if isBuff {
		return int(successRatio) < int(target.Level-ctx.CasterLevel)+roll
	}
	num := float64(successRatio) * float64(ctx.CasterLevel*2+ctx.CasterInt+20)
	den := float64(target.Resist)*0.6 + 5 + float64(target.Avoid)
	return num/den <= float64(roll)
}

// Resurrection and SelfAndTarget apply status only when the preceding
// damage step actually dealt damage (spec.md §4.4: "with status only if
// damage > 0").
func statusGatedOnDamage(k Kind, dmg []DamageEffect) bool {
	if k != KindResurrection && k != KindSelfAndTarget {
		return true
	}
	total := int64(0)
	for _, d := range dmg {
		total += d.Amount
	}
	return total > 0
}
