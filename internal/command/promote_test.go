package command

import (
	"testing"

	"github.com/novaspire/worldcore/internal/component"
	"github.com/novaspire/worldcore/internal/ecs"
)

func TestPromote_WaitsUntilCompletedForNonPreemptible(t *testing.T) {
	cur := component.Command{Kind: component.CommandAttack, StartTick: 0, DurationTks: 10}
	next := component.NextCommand{Pending: true, Command: component.Command{Kind: component.CommandMove}}

	Promote(&cur, &next, 5) // not yet completed, Attack not preemptible
	if cur.Kind != component.CommandAttack {
		t.Fatalf("expected attack to continue, got %v", cur.Kind)
	}
	if !next.Pending {
		t.Fatalf("expected next command still pending")
	}

	Promote(&cur, &next, 10) // completed now
	if cur.Kind != component.CommandMove {
		t.Fatalf("expected promotion to move, got %v", cur.Kind)
	}
	if next.Pending {
		t.Fatalf("expected next command consumed")
	}
}

func TestPromote_PreemptsStopImmediately(t *testing.T) {
	cur := component.Command{Kind: component.CommandStop, StartTick: 0, DurationTks: 1000}
	next := component.NextCommand{Pending: true, Command: component.Command{Kind: component.CommandAttack}}

	Promote(&cur, &next, 1)

	if cur.Kind != component.CommandAttack {
		t.Fatalf("expected immediate preemption of Stop, got %v", cur.Kind)
	}
}

func TestPromote_DieIsTerminal(t *testing.T) {
	cur := component.Command{Kind: component.CommandDie, StartTick: 0, DurationTks: 1}
	next := component.NextCommand{Pending: true, Command: component.Command{Kind: component.CommandMove}}

	Promote(&cur, &next, 100)

	if cur.Kind != component.CommandDie {
		t.Fatalf("expected Die to remain terminal, got %v", cur.Kind)
	}
	if next.Pending {
		t.Fatalf("expected pending next command dropped, not left queued forever")
	}
}

func TestPromote_CastSkillNonPreemptibleDuringCastWindow(t *testing.T) {
	cur := component.Command{Kind: component.CommandCastSkill, StartTick: 0, DurationTks: 100, CastLockPoint: 5}
	next := component.NextCommand{Pending: true, Command: component.Command{Kind: component.CommandMove}}

	Promote(&cur, &next, 3) // before completion, CastSkill never reports preemptible

	if cur.Kind != component.CommandCastSkill {
		t.Fatalf("expected cast to continue uninterrupted, got %v", cur.Kind)
	}
}

func TestCancelForHitStun_CancelsBeforeLockPoint(t *testing.T) {
	cur := component.Command{Kind: component.CommandCastSkill, StartTick: 0, CastLockPoint: 10}
	cancelled := CancelForHitStun(&cur, 5)
	if !cancelled {
		t.Fatalf("expected cancellation before lock point")
	}
	if cur.Kind != component.CommandStop {
		t.Fatalf("expected command reset to Stop, got %v", cur.Kind)
	}
}

func TestCancelForHitStun_DoesNotCancelPastLockPoint(t *testing.T) {
	cur := component.Command{Kind: component.CommandCastSkill, StartTick: 0, CastLockPoint: 10}
	cancelled := CancelForHitStun(&cur, 15)
	if cancelled {
		t.Fatalf("expected no cancellation past lock point")
	}
	if cur.Kind != component.CommandCastSkill {
		t.Fatalf("expected cast to continue, got %v", cur.Kind)
	}
}

func TestCancelForHitStun_NeverCancelsDie(t *testing.T) {
	cur := component.Command{Kind: component.CommandDie}
	if CancelForHitStun(&cur, 999) {
		t.Fatalf("expected Die never cancelled by hit-stun")
	}
}

func TestRevive_ResetsToStop(t *testing.T) {
	cur := component.Command{Kind: component.CommandDie}
	Revive(&cur, 42)
	if cur.Kind != component.CommandStop {
		t.Fatalf("expected Stop after revive, got %v", cur.Kind)
	}
	if cur.StartTick != 42 {
		t.Fatalf("expected start tick stamped, got %d", cur.StartTick)
	}
}

func TestKill_SetsDieWithKillerAndDuration(t *testing.T) {
	cur := component.Command{Kind: component.CommandAttack}
	killer := ecs.NewEntityID(7, 0)
	Kill(&cur, killer, 100, 20)
	if cur.Kind != component.CommandDie || cur.Killer != killer || cur.DurationTks != 20 {
		t.Fatalf("unexpected command after kill: %+v", cur)
	}
}
