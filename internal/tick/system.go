package tick

import "time"

// System is the interface every phase handler implements. Update receives
// the fixed tick duration, not wall-clock drift — the scheduler is a
// fixed-rate loop (spec.md §4.1, target 60 Hz).
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}

// SystemFunc adapts a plain function to System for phases with no state
// worth a dedicated type (used heavily by cmd/gameserver wiring).
type SystemFunc struct {
	PhaseValue Phase
	Fn         func(time.Duration)
}

func (f SystemFunc) Phase() Phase          { return f.PhaseValue }
func (f SystemFunc) Update(dt time.Duration) { f.Fn(dt) }
