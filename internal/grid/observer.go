package grid

import (
	"github.com/novaspire/worldcore/internal/component"
	"github.com/novaspire/worldcore/internal/ecs"
)

// Observer tracks one client's currently-visible short-ID set (spec.md
// §4.2 "Each observer carries a bitset of IDs currently visible to it").
// A map keyed by (kind,shortID) stands in for the bitset; the invariant
// it must uphold is identical either way.
type Observer struct {
	Sector  component.SectorCoord
	Visible map[assignKey]ecs.EntityID
}

func NewObserver() *Observer {
	return &Observer{Visible: make(map[assignKey]ecs.EntityID)}
}

// Diff is the result of one visibility recompute: which entities entered
// and which left (spec.md §4.2 "Visibility diff").
type Diff struct {
	Entered []ecs.EntityID
	Left    []ecs.EntityID
}

// Candidate is one entity eligible for visibility consideration this
// tick, pre-filtered by team/kind/flags per spec.md §4.2's
// `filter(team, kind, flags)` step — the filter itself lives in the
// visibility package since it needs broader context (team membership,
// GM invisibility) than the grid owns.
type Candidate struct {
	ID     ecs.EntityID
	Kind   component.EntityKind
	Short  uint16
	Sector component.SectorCoord
}

// Recompute computes new_visible = candidates in the observer's window,
// and returns the enter/leave diff against the observer's previous
// visible set, updating Visible in place (spec.md §4.2).
func (o *Observer) Recompute(candidates []Candidate) Diff {
	newVisible := make(map[assignKey]ecs.EntityID, len(o.Visible))
	var diff Diff

	for _, c := range candidates {
		if !InWindow(o.Sector, c.Sector) {
			continue
		}
		key := assignKey{c.Kind, c.Short}
		newVisible[key] = c.ID
		if _, already := o.Visible[key]; !already {
			diff.Entered = append(diff.Entered, c.ID)
		}
	}

	for key, id := range o.Visible {
		if _, stillVisible := newVisible[key]; !stillVisible {
			diff.Left = append(diff.Left, id)
		}
	}

	o.Visible = newVisible
	return diff
}

// HasVisible reports whether an observer currently has a given
// (kind, short ID) pair marked visible. The "Entity" broadcast mode
// tests entity handles with HasVisibleEntity instead.
func (o *Observer) HasVisible(kind component.EntityKind, short uint16) bool {
	_, ok := o.Visible[assignKey{kind, short}]
	return ok
}

// HasVisibleEntity reports whether the given entity handle is anywhere
// in the observer's visible set, regardless of its (kind, short) key.
func (o *Observer) HasVisibleEntity(id ecs.EntityID) bool {
	for _, v := range o.Visible {
		if v == id {
			return true
		}
	}
	return false
}
