package component

// ClearedBy classifies a status effect for dispel interactions
// (spec.md §3 "Cleared-by type").
type ClearedBy uint8

const (
	ClearedByNone ClearedBy = iota
	ClearedByGood
	ClearedByBad
)

// ReplacementPolicy controls what happens when a status effect of a type
// that is already active is applied again (spec.md §3 invariant: each
// status-effect type has at most one active instance).
type ReplacementPolicy uint8

const (
	ReplaceExtendDuration ReplacementPolicy = iota
	ReplaceOverwrite
	ReplaceKeepLonger
)

// RegenCurve describes a potion-style per-second value applied over the
// life of the effect (spec.md §3).
type RegenCurve struct {
	PerSecond int32
	Ticks     uint32 // remaining ticks of regen application
}

// StatusType identifies which AbilityValues field a generic StatusEffect.Value
// feeds back into during derivation (spec.md §3, e.g. a buff granting
// "+Def 20"). Effects with a Type outside this set (DoT/HoT markers, pure
// flags) simply don't contribute to AbilityBonuses.
const (
	StatusTypeAttack uint32 = iota + 1
	StatusTypeDefence
	StatusTypeHit
	StatusTypeAvoid
	StatusTypeCritical
	StatusTypeResist
	StatusTypeIntelligence
	StatusTypeMoveSpeed
)

// StatusEffect is one active modifier instance.
type StatusEffect struct {
	Type       uint32
	ExpireTick uint64
	Value      int32
	Regen      *RegenCurve
	ClearedBy  ClearedBy
	Policy     ReplacementPolicy
}

// StatusEffects maps effect type to its single active instance.
type StatusEffects struct {
	Active map[uint32]*StatusEffect
}

func NewStatusEffects() *StatusEffects {
	return &StatusEffects{Active: make(map[uint32]*StatusEffect)}
}

// Apply enforces the at-most-one-active-instance invariant, extending or
// replacing the existing instance according to its replacement policy.
func (s *StatusEffects) Apply(effect *StatusEffect) {
	existing, ok := s.Active[effect.Type]
	if !ok {
		s.Active[effect.Type] = effect
		return
	}
	switch existing.Policy {
	case ReplaceExtendDuration:
		if effect.ExpireTick > existing.ExpireTick {
			existing.ExpireTick = effect.ExpireTick
		}
		existing.Value = effect.Value
		existing.Regen = effect.Regen
	case ReplaceKeepLonger:
		if effect.ExpireTick > existing.ExpireTick {
			s.Active[effect.Type] = effect
		}
	default: // ReplaceOverwrite
		s.Active[effect.Type] = effect
	}
}

// ExpireBefore removes and returns every effect whose ExpireTick has
// passed, for phase 4 (Status effects) to broadcast clears for.
func (s *StatusEffects) ExpireBefore(nowTick uint64) []*StatusEffect {
	var expired []*StatusEffect
	for t, e := range s.Active {
		if e.ExpireTick <= nowTick {
			expired = append(expired, e)
			delete(s.Active, t)
		}
	}
	return expired
}

// ClearByType removes every active effect matching the given classification
// (used by dispel skills and the death transition's full-clear).
func (s *StatusEffects) ClearByType(cb ClearedBy) []*StatusEffect {
	var cleared []*StatusEffect
	for t, e := range s.Active {
		if e.ClearedBy == cb {
			cleared = append(cleared, e)
			delete(s.Active, t)
		}
	}
	return cleared
}

// ClearAll removes every active effect unconditionally (death transition).
func (s *StatusEffects) ClearAll() []*StatusEffect {
	var cleared []*StatusEffect
	for t, e := range s.Active {
		cleared = append(cleared, e)
		delete(s.Active, t)
	}
	return cleared
}

// AbilityBonuses sums every active effect's contribution to AbilityValues,
// keyed by StatusType (spec.md §3 "derived from ... active status effects").
func (s *StatusEffects) AbilityBonuses() (attack, defence, hit, avoid, critical, resist, intelligence int32, moveSpeed float32) {
	for _, e := range s.Active {
		switch e.Type {
		case StatusTypeAttack:
			attack += e.Value
		case StatusTypeDefence:
			defence += e.Value
		case StatusTypeHit:
			hit += e.Value
		case StatusTypeAvoid:
			avoid += e.Value
		case StatusTypeCritical:
			critical += e.Value
		case StatusTypeResist:
			resist += e.Value
		case StatusTypeIntelligence:
			intelligence += e.Value
		case StatusTypeMoveSpeed:
			moveSpeed += float32(e.Value)
		}
	}
	return attack, defence, hit, avoid, critical, resist, intelligence, moveSpeed
}
