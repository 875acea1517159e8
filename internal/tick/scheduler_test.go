package tick

import (
	"testing"
	"time"
)

type recordingSystem struct {
	phase Phase
	log   *[]Phase
}

func (r recordingSystem) Phase() Phase { return r.phase }
func (r recordingSystem) Update(time.Duration) {
	*r.log = append(*r.log, r.phase)
}

func TestScheduler_RunsPhasesInOrderRegardlessOfRegistrationOrder(t *testing.T) {
	var log []Phase
	s := NewScheduler()
	s.Register(recordingSystem{phase: PhaseSave, log: &log})
	s.Register(recordingSystem{phase: PhaseClockAdvance, log: &log})
	s.Register(recordingSystem{phase: PhaseCombat, log: &log})

	s.Tick(16 * time.Millisecond)

	want := []Phase{PhaseClockAdvance, PhaseCombat, PhaseSave}
	if len(log) != len(want) {
		t.Fatalf("expected %d phases run, got %d", len(want), len(log))
	}
	for i, p := range want {
		if log[i] != p {
			t.Fatalf("phase %d: expected %s got %s", i, p, log[i])
		}
	}
}

func TestScheduler_TickAdvancesClock(t *testing.T) {
	s := NewScheduler()
	s.Tick(50 * time.Millisecond)
	s.Tick(50 * time.Millisecond)
	c := s.Clock()
	if c.Tick != 2 {
		t.Fatalf("expected tick counter 2, got %d", c.Tick)
	}
	if c.Now != 100*time.Millisecond {
		t.Fatalf("expected now=100ms, got %s", c.Now)
	}
}

func TestScheduler_TickPhaseRunsOnlyThatPhase(t *testing.T) {
	var log []Phase
	s := NewScheduler()
	s.Register(recordingSystem{phase: PhaseIngress, log: &log})
	s.Register(recordingSystem{phase: PhaseCombat, log: &log})

	s.TickPhase(PhaseIngress, 2*time.Millisecond)

	if len(log) != 1 || log[0] != PhaseIngress {
		t.Fatalf("expected only PhaseIngress to run, got %v", log)
	}
}
