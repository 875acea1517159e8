// Package combat implements spec.md §4.5: the damage-event queue the
// skill and melee/ranged attack systems feed into, and the XP/loot
// attribution that reads DamageSources at death.
package combat

import (
	"github.com/novaspire/worldcore/internal/command"
	"github.com/novaspire/worldcore/internal/component"
	"github.com/novaspire/worldcore/internal/ecs"
)

// DamageEvent is the queued unit spec.md §4.5 describes: "Damage events
// are queued with {attacker, defender, amount, apply_hit_stun, skill_id?,
// attacker_intelligence?}".
type DamageEvent struct {
	Attacker            ecs.EntityID
	Defender            ecs.EntityID
	Amount              int64
	ApplyHitStun        bool
	SkillID             uint32
	AttackerIntelligence int32
}

// Outcome is what the caller needs to know happened so it can broadcast
// and schedule despawn/grace timers; the combat phase itself never
// touches the visibility or spawn packages directly.
type Outcome struct {
	Applied    bool // false if the event was dropped (defender already dead)
	HitStunned bool
	Died       bool
	Broadcast  bool
}

// DespawnGraceTicks is added on top of the die-motion duration before a
// dead monster is removed from the world (spec.md §4.5: "schedule an
// ExpireTime for monster despawn at die_motion + configured grace").
const DespawnGraceTicks = 50

// Resolve applies one DamageEvent against the defender's mutable state,
// in the exact order spec.md §4.5 lists. alive reports the defender's
// state before this event; cur is the defender's Command, mutated for
// hit-stun or death; sources is the defender's DamageSources ring.
func Resolve(ev DamageEvent, alive bool, hp *int32, cur *component.Command, sources *component.DamageSources, nowTick uint64, dieMotionTicks uint32) Outcome {
	if !alive {
		return Outcome{}
	}

	*hp -= int32(ev.Amount)
	if *hp < 0 {
		*hp = 0
	}

	sources.Record(ev.Attacker, ev.Amount, nowTick)

	out := Outcome{Applied: true, Broadcast: true}
	if ev.ApplyHitStun {
		out.HitStunned = command.CancelForHitStun(cur, nowTick)
	}

	if *hp == 0 {
		command.Kill(cur, ev.Attacker, nowTick, dieMotionTicks)
		out.Died = true
	}

	return out
}
