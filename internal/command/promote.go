// Package command implements the command state machine (spec.md §4.3):
// promotion of NextCommand into Command at the start of phase 9, and the
// completion/preemption rules each command kind follows.
package command

import (
	"github.com/novaspire/worldcore/internal/component"
	"github.com/novaspire/worldcore/internal/ecs"
)

// Promote runs once per entity at the start of PhaseCommandStep. It
// consumes NextCommand if (a) the current command has completed, or
// (b) the current command is preemptible (spec.md §4.3). Die is terminal
// and is never promoted over.
func Promote(cur *component.Command, next *component.NextCommand, nowTick uint64) {
	if !next.Pending {
		return
	}
	if cur.Kind == component.CommandDie {
		next.Pending = false // Die is terminal until explicit revive (spec.md §3, §8)
		return
	}
	if cur.Completed(nowTick) || cur.Preemptible() {
		*cur = next.Command
		cur.StartTick = nowTick
		next.Pending = false
	}
}

// Revive is the explicit transition out of Die (spec.md §3 "Die is
// terminal until explicit revive").
func Revive(cur *component.Command, nowTick uint64) {
	*cur = component.Command{Kind: component.CommandStop, StartTick: nowTick}
}

// CancelForHitStun implements spec.md §4.3's hit-stun rule: a damage
// event flagged apply_hit_stun cancels the current command unless the
// caster is mid-cast past the lock point. Returns true if the command was
// cancelled (caller is then responsible for rolling back any reserved
// reagent per spec.md §4.3).
func CancelForHitStun(cur *component.Command, nowTick uint64) bool {
	if cur.Kind == component.CommandDie {
		return false
	}
	if cur.Kind == component.CommandCastSkill && cur.IsLockedCast(nowTick) {
		return false
	}
	*cur = component.Command{Kind: component.CommandStop, StartTick: nowTick}
	return true
}

// Kill transitions an entity to Die with the killer attribution and a
// despawn duration (spec.md §4.5 point 6, §3 "Die").
func Kill(cur *component.Command, killer ecs.EntityID, nowTick uint64, dieMotionTicks uint32) {
	cur.Kind = component.CommandDie
	cur.Killer = killer
	cur.StartTick = nowTick
	cur.DurationTks = dieMotionTicks
}
