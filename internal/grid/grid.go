// Package grid implements the per-zone client-entity grid (spec.md §4.2):
// a rectangular array of sectors, a bounded short-ID pool keyed by
// entity-kind family, and the per-observer visibility diff. It is owned
// exclusively by the simulation thread (spec.md §5).
package grid

import (
	"github.com/novaspire/worldcore/internal/component"
	"github.com/novaspire/worldcore/internal/ecs"
)

// CellSize is the fixed world extent each sector covers. spec.md §4.2
// gives 2000×2000 world units as an example fixed-rate MMO would use;
// kept as a package constant rather than per-zone config since every
// zone in this server shares one grid resolution.
const CellSize = 2000.0

// Sector converts a world position into its grid cell (spec.md §3
// invariant: sector == floor(position / cell_size)).
func Sector(x, y float32) component.SectorCoord {
	return component.SectorCoord{X: floorDiv(x, CellSize), Y: floorDiv(y, CellSize)}
}

func floorDiv(v, size float32) int32 {
	q := v / size
	i := int32(q)
	if q < 0 && float32(i) != q {
		i--
	}
	return i
}

// Grid is one zone's sector map.
type Grid struct {
	sectors map[component.SectorCoord]map[ecs.EntityID]struct{}
	shortIDs *ShortIDPool
}

func NewGrid() *Grid {
	return &Grid{
		sectors:  make(map[component.SectorCoord]map[ecs.EntityID]struct{}),
		shortIDs: NewShortIDPool(),
	}
}

func (g *Grid) ShortIDs() *ShortIDPool { return g.shortIDs }

// Insert places an entity into the sector matching its position.
func (g *Grid) Insert(id ecs.EntityID, sector component.SectorCoord) {
	set, ok := g.sectors[sector]
	if !ok {
		set = make(map[ecs.EntityID]struct{})
		g.sectors[sector] = set
	}
	set[id] = struct{}{}
}

// Remove takes an entity out of a sector.
func (g *Grid) Remove(id ecs.EntityID, sector component.SectorCoord) {
	set, ok := g.sectors[sector]
	if !ok {
		return
	}
	delete(set, id)
	if len(set) == 0 {
		delete(g.sectors, sector)
	}
}

// Move relocates an entity from one sector to another, a no-op if they
// are the same (the common case every tick for a stationary entity).
func (g *Grid) Move(id ecs.EntityID, from, to component.SectorCoord) {
	if from == to {
		return
	}
	g.Remove(id, from)
	g.Insert(id, to)
}

// window returns the 3x3 block of sectors centered on c (spec.md §4.2
// "Observer window").
func window(c component.SectorCoord) [9]component.SectorCoord {
	var w [9]component.SectorCoord
	i := 0
	for dx := int32(-1); dx <= 1; dx++ {
		for dy := int32(-1); dy <= 1; dy++ {
			w[i] = component.SectorCoord{X: c.X + dx, Y: c.Y + dy}
			i++
		}
	}
	return w
}

// RadiusQuery enumerates entities in the <=9 sectors overlapping a circle
// around center; the caller filters by exact distance (spec.md §4.2).
func (g *Grid) RadiusQuery(center component.SectorCoord) []ecs.EntityID {
	var out []ecs.EntityID
	for _, c := range window(center) {
		for id := range g.sectors[c] {
			out = append(out, id)
		}
	}
	return out
}

// ObserverWindow is the set of sectors considered visible to an observer
// at the given sector (spec.md §4.2).
func ObserverWindow(observerSector component.SectorCoord) [9]component.SectorCoord {
	return window(observerSector)
}

// InWindow reports whether a sector is inside an observer's window —
// the basis for the visibility subset invariant (spec.md §8).
func InWindow(observerSector, candidate component.SectorCoord) bool {
	dx := candidate.X - observerSector.X
	dy := candidate.Y - observerSector.Y
	return dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1
}
