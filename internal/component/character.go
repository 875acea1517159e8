package component

// Character stores the persistent identity and basic-stat inputs a
// character entity needs (spec.md §3 "derived from level, basic stats,
// equipment, and active status effects"). Position, vitals, and derived
// ability values live in their own components; Character only carries
// what AbilityValues derivation and persistence need to know about who
// this entity is. Pure data, zero methods — all mutations happen in
// System functions.
type Character struct {
	DBID int32
	Name string

	Level int16
	Exp   int64

	Str   int16
	Dex   int16
	Con   int16
	Wis   int16
	Cha   int16
	Intel int16
}
