package component

// EntityKind is the visibility-filter tag spec.md §3 says determines kind
// "by component set, not a tag" at the data-model level — the tag here is
// the cached classification the grid and visibility filters consume so
// they don't have to probe every component store per candidate.
type EntityKind uint8

const (
	KindCharacter EntityKind = iota
	KindNPC
	KindMonster
	KindItemDrop
	KindEventObject
)

// ClientEntity is present on any entity that must be visible to observers
// (spec.md §3). ShortID is zone-scoped and recycled on despawn by the grid
// package; Sector is kept here only as a cache invalidated every phase 10
// — grid.Grid is the source of truth for "which sector holds which IDs".
type ClientEntity struct {
	ShortID uint16
	Kind    EntityKind
	Sector  SectorCoord
}

// SectorCoord is the grid cell derived from Position (spec.md §3
// ClientEntitySector invariant: sector == floor(position / cell_size)).
type SectorCoord struct {
	X, Y int32
}
