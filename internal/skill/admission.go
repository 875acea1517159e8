package skill

import "github.com/novaspire/worldcore/internal/component"

// StatusDisable is a bitmask of status-driven disables checked at
// admission (spec.md §4.4 "Not disabled by status (mute/sleep/faint)").
type StatusDisable uint8

const (
	DisableMute StatusDisable = 1 << iota
	DisableSleep
	DisableFaint
)

// Cost is the set of resources a skill may require (spec.md §4.4
// "All use_ability costs satisfied", §4.4 resolution step 1).
type Cost struct {
	HP    int32
	MP    int32
	Stamina int32
	Money int64
	Fuel  int32
	XP    int64
}

// Template is the static definition of a castable skill (spec.md §6
// static data interface: "skills (by id)"; fields here are the subset
// the admission/resolution logic reads).
type Template struct {
	ID               uint32
	GlobalCooldownTk uint64
	CooldownTk       uint64
	CooldownGroup    int // -1 if none
	Cost             Cost
	RequiredEquip    []component.EquipIndex // any one of these must be equipped; nil = no requirement
	TargetFilter     TargetFilter
	AllowWhileDriving bool
	ChargingTicks    uint32 // pre-effect motion duration
	CastLockPointTk  uint32
}

// AdmissionFailure enumerates the rejection reasons spec.md §4.4's table
// produces, surfaced to the session as a typed result (spec.md §7).
type AdmissionFailure int

const (
	AdmitOK AdmissionFailure = iota
	RejectDead
	RejectGlobalCooldown
	RejectCooldown
	RejectDisabledByStatus
	RejectDriving
	RejectMissingEquipment
	RejectInsufficientCost
	RejectInvalidTarget
)

// CasterState is the admission-time snapshot of the caster (spec.md §4.4
// table, left column).
type CasterState struct {
	Alive          bool
	Disables       StatusDisable
	Driving        bool
	EquippedAt     map[component.EquipIndex]bool
	Cooldowns      *component.Cooldowns
	Vitals         component.Vitals
	Money          int64
	Fuel           int32
	NowTick        uint64
}

// Admit runs the ordered check table from spec.md §4.4. It does not
// subtract costs or write cooldowns — those happen at resolution
// (spec.md §4.4 "On admission, costs and cooldowns are not yet
// subtracted").
func Admit(t Template, caster CasterState, filterMatch bool) AdmissionFailure {
	if !caster.Alive {
		return RejectDead
	}
	if !caster.Cooldowns.GlobalReady(caster.NowTick) {
		return RejectGlobalCooldown
	}
	if !caster.Cooldowns.SkillReady(t.ID, caster.NowTick) {
		return RejectCooldown
	}
	if t.CooldownGroup >= 0 && !caster.Cooldowns.GroupReady(t.CooldownGroup, caster.NowTick) {
		return RejectCooldown
	}
	if caster.Disables&(DisableMute|DisableSleep|DisableFaint) != 0 {
		return RejectDisabledByStatus
	}
	if caster.Driving && !t.AllowWhileDriving {
		return RejectDriving
	}
	if len(t.RequiredEquip) > 0 {
		ok := false
		for _, idx := range t.RequiredEquip {
			if caster.EquippedAt[idx] {
				ok = true
				break
			}
		}
		if !ok {
			return RejectMissingEquipment
		}
	}
	if !costSatisfied(t.Cost, caster) {
		return RejectInsufficientCost
	}
	if !filterMatch {
		return RejectInvalidTarget
	}
	return AdmitOK
}

func costSatisfied(c Cost, caster CasterState) bool {
	if c.HP > 0 && caster.Vitals.HP < c.HP {
		return false
	}
	if c.MP > 0 && caster.Vitals.MP < c.MP {
		return false
	}
	if c.Money > 0 && caster.Money < c.Money {
		return false
	}
	if c.Fuel > 0 && caster.Fuel < c.Fuel {
		return false
	}
	return true
}
