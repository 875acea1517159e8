// Package status implements spec.md phase 4 (status effect regen/expiry)
// and phase 5 (passive HP/MP recovery), building on component.StatusEffects.
package status

import "github.com/novaspire/worldcore/internal/component"

// RegenTick applies one second's worth of regen from every active effect
// that carries a RegenCurve, decrementing its remaining tick count. An
// effect whose curve is exhausted keeps running until its own expiry —
// regen and duration are independent (spec.md §3 "RegenCurve").
func RegenTick(effects *component.StatusEffects, vitals *component.Vitals, ability component.AbilityValues) {
	for _, e := range effects.Active {
		if e.Regen == nil || e.Regen.Ticks == 0 {
			continue
		}
		vitals.HP += e.Regen.PerSecond
		e.Regen.Ticks--
	}
	vitals.Clamp(ability)
}

// Expired is one status effect that left the active set this tick, for
// the caller to broadcast a clear message for (spec.md §4.5-adjacent
// egress phase picks this up).
type Expired struct {
	Type  uint32
	Value int32
}

// AdvanceExpiry removes every effect whose ExpireTick has passed.
func AdvanceExpiry(effects *component.StatusEffects, nowTick uint64) []Expired {
	gone := effects.ExpireBefore(nowTick)
	out := make([]Expired, 0, len(gone))
	for _, e := range gone {
		out = append(out, Expired{Type: e.Type, Value: e.Value})
	}
	return out
}

// ClearOnDeath clears every active effect unconditionally, including
// effects otherwise immune to dispel (spec.md §4.3: death is terminal
// until explicit revive, and revive starts from a clean status slate).
func ClearOnDeath(effects *component.StatusEffects) []Expired {
	gone := effects.ClearAll()
	out := make([]Expired, 0, len(gone))
	for _, e := range gone {
		out = append(out, Expired{Type: e.Type, Value: e.Value})
	}
	return out
}

// PassiveRegenRate is HP/MP recovered per tick while alive, not driving,
// and not sitting (sitting uses a separate, higher rate per spec.md
// phase 5 note: "HP/MP regen when alive and not driving").
type PassiveRegenRate struct {
	HP int32
	MP int32
}

// PassiveRecover applies the phase-5 passive tick, clamping to the
// entity's current ability caps.
func PassiveRecover(vitals *component.Vitals, ability component.AbilityValues, rate PassiveRegenRate) {
	vitals.HP += rate.HP
	vitals.MP += rate.MP
	vitals.Clamp(ability)
}
