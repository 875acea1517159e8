package ai

import (
	"github.com/novaspire/worldcore/internal/component"
	"github.com/novaspire/worldcore/internal/ecs"
)

// Action is the closed set of outcomes PhaseAI can hand to the command
// system; it never touches a Command directly so this package stays
// independent of the promotion/preemption rules in internal/command.
type Action uint8

const (
	ActionNone Action = iota
	ActionAttack
	ActionCastSkill
	ActionMoveToward
	ActionWander
	ActionLoseAggro
)

// Decision is the result of one monster's AI tick.
type Decision struct {
	Action  Action
	Target  ecs.EntityID
	SkillID uint32
	MoveTo  component.Position
}

// Candidate is a nearby entity the scan may pick as a new target.
type Candidate struct {
	ID      ecs.EntityID
	Pos     component.Position
	Alive   bool
	SafeZone bool
	Wanted  bool // guard-only: wanted/pink-named player
}

// MonsterState is the subset of a monster's components the decision
// function reads; AggroRange/LeashRange are template-derived constants.
type MonsterState struct {
	Pos         component.Position
	Target      ecs.EntityID
	HasTarget   bool
	IsAggressive bool
	AggroRange  float32
	SkillReady  bool
	SkillID     uint32
}

// chebyshev is the Chebyshev distance (the larger of |dx| and |dy|) used
// for range checks; it needs no sqrt.
func chebyshev(a, b component.Position) float32 {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	if dy > dx {
		return dy
	}
	return dx
}

// SelectTarget resolves a monster's attack target for this tick: keep
// the current target if still valid, else fall back to the next highest
// hate entry, else (for aggressive monsters) scan nearby candidates
// within range, skipping safety zones and the dead.
func SelectTarget(m MonsterState, hate *HateTable, nearby []Candidate, validate func(ecs.EntityID) (Candidate, bool)) (ecs.EntityID, bool) {
	if m.HasTarget {
		if c, ok := validate(m.Target); ok && c.Alive {
			return m.Target, true
		}
		hate.Remove(m.Target)
		if next := hate.Max(); !next.IsZero() {
			if c, ok := validate(next); ok && c.Alive {
				return next, true
			}
			hate.Remove(next)
		}
	}

	if !m.IsAggressive {
		return 0, false
	}

	var best ecs.EntityID
	bestDist := m.AggroRange
	found := false
	for _, c := range nearby {
		if !c.Alive || c.SafeZone {
			continue
		}
		d := chebyshev(m.Pos, c.Pos)
		if d <= m.AggroRange && d < bestDist {
			bestDist = d
			best = c.ID
			found = true
		}
	}
	return best, found
}

// DecideMonster is the monster AI branch (spec.md tickMonsterAI
// equivalent): resolve a target, then pick attack vs. chase vs. wander
// vs. losing aggro based on range.
func DecideMonster(m MonsterState, hate *HateTable, nearby []Candidate, validate func(ecs.EntityID) (Candidate, bool), attackRange float32) Decision {
	target, ok := SelectTarget(m, hate, nearby, validate)
	if !ok {
		if m.HasTarget {
			return Decision{Action: ActionLoseAggro}
		}
		return Decision{Action: ActionNone}
	}

	c, ok := validate(target)
	if !ok {
		return Decision{Action: ActionLoseAggro}
	}

	dist := chebyshev(m.Pos, c.Pos)
	if dist <= attackRange {
		if m.SkillReady && m.SkillID != 0 {
			return Decision{Action: ActionCastSkill, Target: target, SkillID: m.SkillID}
		}
		return Decision{Action: ActionAttack, Target: target}
	}
	return Decision{Action: ActionMoveToward, Target: target, MoveTo: c.Pos}
}

// GuardState is the subset of a guard's components the decision function
// reads.
type GuardState struct {
	Pos        component.Position
	Target     ecs.EntityID
	HasTarget  bool
	SpawnPos   component.Position
	LeashRange float32
	ScanRange  float32
}

// DecideGuard is the guard AI branch (spec.md tickGuardAI equivalent):
// hunt wanted players within scan range, give up if the chase exceeds
// leash range, otherwise return to the spawn point when idle.
func DecideGuard(g GuardState, nearby []Candidate, validate func(ecs.EntityID) (Candidate, bool)) Decision {
	if g.HasTarget {
		c, ok := validate(g.Target)
		if ok && c.Alive && chebyshev(g.Pos, c.Pos) <= g.LeashRange {
			if chebyshev(g.Pos, c.Pos) <= 1 {
				return Decision{Action: ActionAttack, Target: g.Target}
			}
			return Decision{Action: ActionMoveToward, Target: g.Target, MoveTo: c.Pos}
		}
		return Decision{Action: ActionLoseAggro}
	}

	var best ecs.EntityID
	bestDist := g.ScanRange
	found := false
	for _, c := range nearby {
		if !c.Alive || !c.Wanted {
			continue
		}
		d := chebyshev(g.Pos, c.Pos)
		if d <= g.ScanRange && d < bestDist {
			bestDist = d
			best = c.ID
			found = true
		}
	}
	if found {
		return Decision{Action: ActionMoveToward, Target: best}
	}

	if chebyshev(g.Pos, g.SpawnPos) > 0 {
		return Decision{Action: ActionMoveToward, MoveTo: g.SpawnPos}
	}
	return Decision{Action: ActionNone}
}
