package component

import "github.com/novaspire/worldcore/internal/ecs"

// CommandKind is the closed variant set from spec.md §4.3.
type CommandKind uint8

const (
	CommandStop CommandKind = iota
	CommandMove
	CommandAttack
	CommandPickupItem
	CommandCastSkill
	CommandSit
	CommandStanding // transient
	CommandEmote
	CommandDie
)

func (k CommandKind) String() string {
	switch k {
	case CommandStop:
		return "Stop"
	case CommandMove:
		return "Move"
	case CommandAttack:
		return "Attack"
	case CommandPickupItem:
		return "PickupItem"
	case CommandCastSkill:
		return "CastSkill"
	case CommandSit:
		return "Sit"
	case CommandStanding:
		return "Standing"
	case CommandEmote:
		return "Emote"
	case CommandDie:
		return "Die"
	default:
		return "Unknown"
	}
}

// CastSubphase distinguishes the two subphases of a CastSkill command
// (spec.md §4.3): charging is the pre-effect motion, casting is the
// effect window.
type CastSubphase uint8

const (
	CastCharging CastSubphase = iota
	CastCasting
)

// Command is the entity's current action plus the timing state needed to
// know when it completes. It is a closed variant struct, not an
// interface, per spec.md §9 — the Kind field selects which payload fields
// are meaningful.
type Command struct {
	Kind CommandKind

	StartTick   uint64
	DurationTks uint32 // duration in ticks, derived from motion data

	// Move
	MoveTo       Position
	MoveTarget   ecs.EntityID
	MoveDistance float32 // optional "stop within" distance
	FollowDist   float32 // optional follow_distance for Move{target}

	// Attack
	AttackTarget ecs.EntityID

	// PickupItem
	PickupTarget ecs.EntityID
	PickupIdleAt uint64 // tick at which the caster became idle in reach

	// CastSkill
	SkillID       uint32
	SkillTarget   ecs.EntityID
	SkillTargetAt Position
	Reagent       *ReagentRef
	CastSubphase  CastSubphase
	CastLockPoint uint32 // ticks into the cast after which it is non-preemptible
	SkillResolved bool   // set once this command's effect (attack hit or cast resolution) has fired

	// Emote
	EmoteMotion uint32
	EmoteStop   bool

	// Die
	Killer ecs.EntityID
}

// ReagentRef names the item-cast reagent reserved for a pending skill so a
// cancelled cast can roll it back (spec.md §4.3 "cancelled skills return
// reserved reagents").
type ReagentRef struct {
	Page InventoryPage
	Slot uint8
}

// NextCommand is the queued replacement, promoted into Command at the
// start of phase 9 when the current command has completed or is
// preemptible (spec.md §4.3).
type NextCommand struct {
	Pending bool
	Command Command
}

// Preemptible reports whether this command may be replaced by a queued
// NextCommand before it completes on its own.
func (c Command) Preemptible() bool {
	switch c.Kind {
	case CommandStop, CommandStanding, CommandSit, CommandEmote:
		return true
	case CommandMove:
		return c.MoveTarget.IsZero() // a locked follow-move is not preemptible
	case CommandCastSkill:
		// Never preemptible via ordinary NextCommand promotion; only
		// death or hit-stun cancel a cast (handled by combat/command
		// directly via CancelForHitStun, not this general check).
		return false
	case CommandDie:
		return false
	default:
		return false
	}
}

// IsLockedCast reports whether a CastSkill command has passed its lock
// point and can now only be cancelled by death or hit-stun, never a plain
// NextCommand promotion (spec.md §4.3, §4.1 phase 9 hit-stun rule).
func (c Command) IsLockedCast(nowTick uint64) bool {
	if c.Kind != CommandCastSkill {
		return false
	}
	return nowTick-c.StartTick >= uint64(c.CastLockPoint)
}

// Completed reports whether the command's nominal duration has elapsed.
// Move and CastSkill have additional completion conditions handled by
// their respective systems (remaining distance, cast window reached).
func (c Command) Completed(nowTick uint64) bool {
	if c.Kind == CommandDie {
		return false // terminal until explicit revive
	}
	return nowTick >= c.StartTick+uint64(c.DurationTks)
}
