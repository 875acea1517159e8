// Package spawn implements spec.md's phase 7 ("monster spawn points
// roll for replenishment") and the despawn-then-respawn timer pair that
// follows a monster's Die command.
package spawn

import "github.com/novaspire/worldcore/internal/ecs"

// LevelEntry is one weighted choice in a spawn point's rotation — e.g. a
// point that spawns mostly weak adds with an occasional elite.
type LevelEntry struct {
	TemplateID uint32
	Level      int32
	Weight     uint32
}

// Point is a monster spawn point (spec.md §6 static data: "zones ...
// including ... spawn points"). Count tracks how many of its rotation
// are currently alive, capped at Max.
type Point struct {
	ID        uint32
	ZoneID    uint32
	X, Y, Z   float32
	Max       int
	Count     int
	Entries   []LevelEntry
	Enabled   bool // toggled by quest reward "enable/disable monster spawns per zone"
}

// Roll picks one LevelEntry by weight, for replenishing one open slot.
// roll must return a value in [0, totalWeight).
func (p *Point) Roll(roll func(totalWeight uint32) uint32) (LevelEntry, bool) {
	if len(p.Entries) == 0 {
		return LevelEntry{}, false
	}
	var total uint32
	for _, e := range p.Entries {
		total += e.Weight
	}
	if total == 0 {
		return LevelEntry{}, false
	}
	r := roll(total)
	for _, e := range p.Entries {
		if r < e.Weight {
			return e, true
		}
		r -= e.Weight
	}
	return p.Entries[len(p.Entries)-1], true
}

// NeedsReplenish reports whether this point has room for another spawn.
func (p *Point) NeedsReplenish() bool {
	return p.Enabled && p.Count < p.Max
}

// DespawnTimer tracks a dead monster's countdown to removal from the
// world, separate from its respawn timer (spec.md §4.5: "schedule an
// ExpireTime for monster despawn at die_motion + configured grace").
type DespawnTimer struct {
	Entity     ecs.EntityID
	RemainTick uint32
}

// RespawnTimer tracks a despawned monster's countdown back to life at
// its spawn point.
type RespawnTimer struct {
	Point      uint32
	RemainTick uint32
}

// TickDespawn decrements every pending despawn timer and returns the
// entities that reached zero this tick.
func TickDespawn(timers []DespawnTimer) (remaining []DespawnTimer, ready []ecs.EntityID) {
	for _, t := range timers {
		if t.RemainTick == 0 {
			ready = append(ready, t.Entity)
			continue
		}
		t.RemainTick--
		if t.RemainTick == 0 {
			ready = append(ready, t.Entity)
			continue
		}
		remaining = append(remaining, t)
	}
	return remaining, ready
}

// TickRespawn decrements every pending respawn timer and returns the
// spawn point IDs ready to roll a replacement this tick.
func TickRespawn(timers []RespawnTimer) (remaining []RespawnTimer, ready []uint32) {
	for _, t := range timers {
		if t.RemainTick == 0 {
			ready = append(ready, t.Point)
			continue
		}
		t.RemainTick--
		if t.RemainTick == 0 {
			ready = append(ready, t.Point)
			continue
		}
		remaining = append(remaining, t)
	}
	return remaining, ready
}
