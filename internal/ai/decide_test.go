package ai

import (
	"testing"

	"github.com/novaspire/worldcore/internal/component"
	"github.com/novaspire/worldcore/internal/ecs"
)

func candidateLookup(cs ...Candidate) func(ecs.EntityID) (Candidate, bool) {
	return func(id ecs.EntityID) (Candidate, bool) {
		for _, c := range cs {
			if c.ID == id {
				return c, true
			}
		}
		return Candidate{}, false
	}
}

func TestDecideMonster_AttacksWhenInRangeWithCurrentTarget(t *testing.T) {
	target := ecs.NewEntityID(5, 0)
	m := MonsterState{
		Pos:        component.Position{X: 0, Y: 0},
		Target:     target,
		HasTarget:  true,
		AggroRange: 8,
	}
	nearby := []Candidate{{ID: target, Pos: component.Position{X: 1, Y: 0}, Alive: true}}

	d := DecideMonster(m, &HateTable{}, nearby, candidateLookup(nearby...), 2)
	if d.Action != ActionAttack || d.Target != target {
		t.Fatalf("expected attack on current target, got %+v", d)
	}
}

func TestDecideMonster_MovesTowardWhenOutOfRange(t *testing.T) {
	target := ecs.NewEntityID(5, 0)
	m := MonsterState{
		Pos:        component.Position{X: 0, Y: 0},
		Target:     target,
		HasTarget:  true,
		AggroRange: 8,
	}
	nearby := []Candidate{{ID: target, Pos: component.Position{X: 6, Y: 0}, Alive: true}}

	d := DecideMonster(m, &HateTable{}, nearby, candidateLookup(nearby...), 2)
	if d.Action != ActionMoveToward || d.Target != target {
		t.Fatalf("expected move toward target, got %+v", d)
	}
}

func TestDecideMonster_FallsBackToHateListWhenTargetInvalid(t *testing.T) {
	dead := ecs.NewEntityID(5, 0)
	fallback := ecs.NewEntityID(6, 0)
	m := MonsterState{
		Pos:        component.Position{X: 0, Y: 0},
		Target:     dead,
		HasTarget:  true,
		AggroRange: 8,
	}
	hate := &HateTable{}
	hate.Add(fallback, 20)
	nearby := []Candidate{
		{ID: dead, Alive: false},
		{ID: fallback, Pos: component.Position{X: 1, Y: 0}, Alive: true},
	}

	d := DecideMonster(m, hate, nearby, candidateLookup(nearby...), 2)
	if d.Action != ActionAttack || d.Target != fallback {
		t.Fatalf("expected fallback to hate-list target, got %+v", d)
	}
}

func TestDecideMonster_PassiveMonsterWithoutTargetDoesNothing(t *testing.T) {
	m := MonsterState{Pos: component.Position{X: 0, Y: 0}, IsAggressive: false}
	d := DecideMonster(m, &HateTable{}, nil, candidateLookup(), 2)
	if d.Action != ActionNone {
		t.Fatalf("expected no action for passive monster, got %+v", d)
	}
}

func TestDecideMonster_AggressiveScansAndPicksNearest(t *testing.T) {
	near := ecs.NewEntityID(1, 0)
	far := ecs.NewEntityID(2, 0)
	m := MonsterState{Pos: component.Position{X: 0, Y: 0}, IsAggressive: true, AggroRange: 8}
	nearby := []Candidate{
		{ID: far, Pos: component.Position{X: 5, Y: 0}, Alive: true},
		{ID: near, Pos: component.Position{X: 2, Y: 0}, Alive: true},
	}

	d := DecideMonster(m, &HateTable{}, nearby, candidateLookup(nearby...), 1)
	if d.Action != ActionMoveToward || d.Target != near {
		t.Fatalf("expected to target nearest candidate, got %+v", d)
	}
}

func TestDecideMonster_SkipsSafeZoneCandidates(t *testing.T) {
	safe := ecs.NewEntityID(1, 0)
	m := MonsterState{Pos: component.Position{X: 0, Y: 0}, IsAggressive: true, AggroRange: 8}
	nearby := []Candidate{{ID: safe, Pos: component.Position{X: 1, Y: 0}, Alive: true, SafeZone: true}}

	d := DecideMonster(m, &HateTable{}, nearby, candidateLookup(nearby...), 1)
	if d.Action != ActionNone {
		t.Fatalf("expected safe-zone candidate ignored, got %+v", d)
	}
}

func TestDecideGuard_ChasesWantedPlayer(t *testing.T) {
	wanted := ecs.NewEntityID(9, 0)
	g := GuardState{Pos: component.Position{X: 0, Y: 0}, ScanRange: 8, LeashRange: 30}
	nearby := []Candidate{{ID: wanted, Pos: component.Position{X: 4, Y: 0}, Alive: true, Wanted: true}}

	d := DecideGuard(g, nearby, candidateLookup(nearby...))
	if d.Action != ActionMoveToward || d.Target != wanted {
		t.Fatalf("expected guard to chase wanted player, got %+v", d)
	}
}

func TestDecideGuard_LosesAggroBeyondLeashRange(t *testing.T) {
	target := ecs.NewEntityID(9, 0)
	g := GuardState{Pos: component.Position{X: 0, Y: 0}, Target: target, HasTarget: true, LeashRange: 5}
	nearby := []Candidate{{ID: target, Pos: component.Position{X: 40, Y: 0}, Alive: true}}

	d := DecideGuard(g, nearby, candidateLookup(nearby...))
	if d.Action != ActionLoseAggro {
		t.Fatalf("expected guard to lose aggro beyond leash range, got %+v", d)
	}
}

func TestDecideGuard_ReturnsHomeWhenIdle(t *testing.T) {
	g := GuardState{Pos: component.Position{X: 3, Y: 3}, SpawnPos: component.Position{X: 0, Y: 0}, ScanRange: 8}
	d := DecideGuard(g, nil, candidateLookup())
	if d.Action != ActionMoveToward || d.MoveTo != g.SpawnPos {
		t.Fatalf("expected guard to head home, got %+v", d)
	}
}
