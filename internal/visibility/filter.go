// Package visibility implements spec.md §4.2's team/kind/flags candidate
// filter and §4.9's four message-routing modes.
package visibility

import (
	"github.com/novaspire/worldcore/internal/component"
	"github.com/novaspire/worldcore/internal/ecs"
	"github.com/novaspire/worldcore/internal/grid"
)

// Flags are the per-entity visibility modifiers a filter may need beyond
// team and kind (e.g. GM invisibility).
type Flags uint8

const (
	FlagInvisible Flags = 1 << iota
)

// CandidateSource is one entity's raw state before the team/kind/flags
// filter in spec.md §4.2 runs.
type CandidateSource struct {
	ID     ecs.EntityID
	Kind   component.EntityKind
	Short  uint16
	Sector component.SectorCoord
	Team   int32
	Flags  Flags
}

// Filter builds the grid.Candidate slice an Observer.Recompute call
// needs, applying the team/kind/flags rule spec.md §4.2 leaves to this
// package: an invisible entity is never a candidate unless the observer
// shares its team (GMs and allies still see through it).
func Filter(observerTeam int32, sources []CandidateSource) []grid.Candidate {
	out := make([]grid.Candidate, 0, len(sources))
	for _, s := range sources {
		if s.Flags&FlagInvisible != 0 && s.Team != observerTeam {
			continue
		}
		out = append(out, grid.Candidate{ID: s.ID, Kind: s.Kind, Short: s.Short, Sector: s.Sector})
	}
	return out
}
