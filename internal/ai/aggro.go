// Package ai implements phase 6 (PhaseAI): monster and guard decision
// logic that emits a Decision for the command system to turn into a
// NextCommand, plus the hate-list bookkeeping that backs target
// selection and fallback when the current target goes invalid.
package ai

import "github.com/novaspire/worldcore/internal/ecs"

// HateEntry is one attacker's running threat total on a monster.
type HateEntry struct {
	Attacker ecs.EntityID
	Hate     int64
}

// HateTable is a monster's threat list, ordered by insertion but always
// queried by max hate, never by position.
type HateTable struct {
	Entries []HateEntry
}

// Add accumulates hate for attacker, inserting a new entry if absent.
func (t *HateTable) Add(attacker ecs.EntityID, amount int64) {
	for i := range t.Entries {
		if t.Entries[i].Attacker == attacker {
			t.Entries[i].Hate += amount
			return
		}
	}
	t.Entries = append(t.Entries, HateEntry{Attacker: attacker, Hate: amount})
}

// Remove drops attacker from the table, e.g. once it leaves the zone or
// dies.
func (t *HateTable) Remove(attacker ecs.EntityID) {
	for i := range t.Entries {
		if t.Entries[i].Attacker == attacker {
			t.Entries = append(t.Entries[:i], t.Entries[i+1:]...)
			return
		}
	}
}

// Max returns the highest-hate attacker, or a zero handle if the table is
// empty.
func (t *HateTable) Max() ecs.EntityID {
	if len(t.Entries) == 0 {
		return ecs.NewEntityID(0, 0)
	}
	best := t.Entries[0]
	for _, e := range t.Entries[1:] {
		if e.Hate > best.Hate {
			best = e
		}
	}
	return best.Attacker
}
