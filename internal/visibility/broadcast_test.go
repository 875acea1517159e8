package visibility

import (
	"testing"

	"github.com/novaspire/worldcore/internal/component"
	"github.com/novaspire/worldcore/internal/ecs"
	"github.com/novaspire/worldcore/internal/grid"
)

func TestDeliver_GlobalReachesEverySession(t *testing.T) {
	s := Session{Entity: ecs.NewEntityID(1, 0), Observer: grid.NewObserver()}
	pending := []Pending{{Mode: RouteGlobal, Body: "announce"}}
	out := Deliver(s, pending)
	if len(out) != 1 || out[0] != "announce" {
		t.Fatalf("expected global message delivered, got %+v", out)
	}
}

func TestDeliver_ZoneMatchesOnZoneID(t *testing.T) {
	s := Session{ZoneID: 5, Observer: grid.NewObserver()}
	pending := []Pending{{Mode: RouteZone, ZoneID: 5, Body: "zone-msg"}, {Mode: RouteZone, ZoneID: 9, Body: "other-zone"}}
	out := Deliver(s, pending)
	if len(out) != 1 || out[0] != "zone-msg" {
		t.Fatalf("expected only matching zone message, got %+v", out)
	}
}

func TestDeliver_DirectMatchesOnlyTargetSession(t *testing.T) {
	target := ecs.NewEntityID(3, 0)
	s := Session{Entity: target, Observer: grid.NewObserver()}
	pending := []Pending{{Mode: RouteDirect, Target: target, Body: "for-you"}, {Mode: RouteDirect, Target: ecs.NewEntityID(4, 0), Body: "for-other"}}
	out := Deliver(s, pending)
	if len(out) != 1 || out[0] != "for-you" {
		t.Fatalf("expected only the direct message addressed to this session, got %+v", out)
	}
}

func TestDeliver_EntityMatchesOnlyWhenVisible(t *testing.T) {
	target := ecs.NewEntityID(7, 0)
	obs := grid.NewObserver()
	obs.Recompute([]grid.Candidate{{ID: target, Kind: component.KindMonster, Short: 1, Sector: obs.Sector}})
	s := Session{Observer: obs}

	pending := []Pending{{Mode: RouteEntity, Target: target, Body: "update"}}
	out := Deliver(s, pending)
	if len(out) != 1 {
		t.Fatalf("expected update delivered once entity is visible, got %+v", out)
	}

	s2 := Session{Observer: grid.NewObserver()}
	if out2 := Deliver(s2, pending); len(out2) != 0 {
		t.Fatalf("expected no delivery for observer without the entity visible, got %+v", out2)
	}
}
