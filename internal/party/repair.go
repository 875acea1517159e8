package party

import "github.com/novaspire/worldcore/internal/ecs"

// Membership is a member-side weak handle to its party (spec.md §9:
// "Party↔member and Clan↔member are cyclic. Resolve by storing only
// handles (weak) on both sides and validating at access time").
type Membership struct {
	PartyID uint64
	HasParty bool
}

// PartyExists reports whether a party handle still resolves, for
// validating a Membership at access time.
type PartyExists func(id uint64) bool

// Validate clears a stale Membership pointing at a despawned party
// (spec.md §9: "repair invariant violations by clearing the stale
// side"). The member entity itself is left alone, matching the general
// propagation policy in spec.md §4's handler section.
func Validate(m *Membership, exists PartyExists) {
	if !m.HasParty {
		return
	}
	if !exists(m.PartyID) {
		m.PartyID = 0
		m.HasParty = false
	}
}

// RemoveStaleMembers drops every member entity from a Party whose
// reverse Membership no longer points back at it, repairing the other
// half of the cyclic reference.
func RemoveStaleMembers(p *Party, pointsBack func(e ecs.EntityID) bool) {
	kept := p.Members[:0]
	for _, m := range p.Members {
		if pointsBack(m.Entity) {
			kept = append(kept, m)
		}
	}
	p.Members = kept
}
