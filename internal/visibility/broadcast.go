package visibility

import (
	"github.com/novaspire/worldcore/internal/ecs"
	"github.com/novaspire/worldcore/internal/grid"
)

// RouteMode is the closed set of message-routing predicates spec.md
// §4.9 describes.
type RouteMode uint8

const (
	RouteGlobal RouteMode = iota
	RouteZone
	RouteEntity
	RouteDirect
)

// Pending is one queued outbound message awaiting egress-phase routing.
type Pending struct {
	Mode   RouteMode
	ZoneID uint32      // RouteZone
	Target ecs.EntityID // RouteEntity, RouteDirect
	Body   any
}

// Session is the egress-phase view of one connected observer (spec.md
// §4.9: "the egress phase scans observer sessions and copies pending
// messages whose predicates they match").
type Session struct {
	Entity   ecs.EntityID
	ZoneID   uint32
	Observer *grid.Observer
}

// Matches implements the four predicates in spec.md §4.9. Routing is
// pull-model: duplication across observers is expected, and message
// identity is irrelevant.
func (p Pending) Matches(s Session) bool {
	switch p.Mode {
	case RouteGlobal:
		return true
	case RouteZone:
		return s.ZoneID == p.ZoneID
	case RouteEntity:
		return s.Observer.HasVisibleEntity(p.Target)
	case RouteDirect:
		return s.Entity == p.Target
	default:
		return false
	}
}

// Deliver returns, for one session, the subset of pending messages it
// should receive this tick, preserving phase-emission order (spec.md
// §5 "within a phase in an unspecified but deterministic iteration
// order" — callers drain `pending` in the order egress collected it).
func Deliver(s Session, pending []Pending) []any {
	out := make([]any, 0, len(pending))
	for _, p := range pending {
		if p.Matches(s) {
			out = append(out, p.Body)
		}
	}
	return out
}
