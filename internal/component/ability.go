package component

// AbilityValues are derived stats recomputed only when a dependency
// changes (level, basic stats, equipment, active status effects); the
// derivation itself must be idempotent and order-independent (spec.md §3).
type AbilityValues struct {
	MaxHealth    int32
	MaxMana      int32
	Attack       int32
	Defence      int32
	Hit          int32
	Avoid        int32
	Critical     int32
	MoveSpeed    float32
	Intelligence int32
	Resist       int32

	Dirty bool // set by any system that changed a dependency; cleared at PhaseAbilityRecompute
}

// Health and Mana are tracked separately from the derived max values so
// current HP/MP can be clamped against a newly recomputed cap without
// losing the pre-recompute value (spec.md §8 invariant: HP ∈ [0,max_health]).
type Vitals struct {
	HP int32
	MP int32
}

// Clamp enforces the HP/MP bounds invariant after MaxHealth/MaxMana change.
func (v *Vitals) Clamp(a AbilityValues) {
	if v.HP > a.MaxHealth {
		v.HP = a.MaxHealth
	}
	if v.HP < 0 {
		v.HP = 0
	}
	if v.MP > a.MaxMana {
		v.MP = a.MaxMana
	}
	if v.MP < 0 {
		v.MP = 0
	}
}

// baseMoveSpeed is the unmodified walk speed, in tiles/sec, before any
// StatusTypeMoveSpeed bonus is applied.
const baseMoveSpeed float32 = 1.0

// DeriveInputs collects every dependency AbilityValues derivation reads
// (spec.md §3: "derived from level, basic stats, equipment, and active
// status effects"). Callers assemble it from Character, Equipment.Bonuses,
// and StatusEffects.AbilityBonuses so Derive itself stays pure.
type DeriveInputs struct {
	Level int32
	Str   int32
	Dex   int32
	Con   int32
	Wis   int32
	Cha   int32
	Intel int32

	EquipAttack  int32
	EquipDefence int32

	StatusAttack       int32
	StatusDefence      int32
	StatusHit          int32
	StatusAvoid        int32
	StatusCritical     int32
	StatusResist       int32
	StatusIntelligence int32
	StatusMoveSpeed    float32
}

// Derive recomputes AbilityValues from its dependencies. It is idempotent
// and order-independent: calling it twice with the same inputs always
// yields the same result, and it never reads the previous AbilityValues
// (spec.md §3 derivation invariant).
func Derive(in DeriveInputs) AbilityValues {
	return AbilityValues{
		MaxHealth:    50 + in.Level*20 + in.Con*10,
		MaxMana:      20 + in.Level*10 + in.Wis*6 + in.Intel*4,
		Attack:       in.Str*2 + in.Level + in.EquipAttack + in.StatusAttack,
		Defence:      in.Con + in.Dex/2 + in.EquipDefence + in.StatusDefence,
		Hit:          in.Dex*2 + in.Level/2 + in.StatusHit,
		Avoid:        in.Dex + in.StatusAvoid,
		Critical:     in.Dex/4 + in.StatusCritical,
		MoveSpeed:    baseMoveSpeed + in.StatusMoveSpeed,
		Intelligence: in.Intel*2 + in.Wis + in.StatusIntelligence,
		Resist:       in.Wis + in.Cha/2 + in.StatusResist,
		Dirty:        false,
	}
}
