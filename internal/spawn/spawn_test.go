package spawn

import (
	"testing"

	"github.com/novaspire/worldcore/internal/ecs"
)

func TestRoll_PicksWeightedEntry(t *testing.T) {
	p := &Point{Entries: []LevelEntry{
		{TemplateID: 1, Weight: 10},
		{TemplateID: 2, Weight: 90},
	}}
	got, ok := p.Roll(func(total uint32) uint32 {
		if total != 100 {
			t.Fatalf("expected total weight 100, got %d", total)
		}
		return 50
	})
	if !ok || got.TemplateID != 2 {
		t.Fatalf("expected second entry to win at roll 50, got %+v", got)
	}
}

func TestRoll_EmptyEntriesFails(t *testing.T) {
	p := &Point{}
	if _, ok := p.Roll(func(uint32) uint32 { return 0 }); ok {
		t.Fatalf("expected no roll result for empty rotation")
	}
}

func TestNeedsReplenish(t *testing.T) {
	p := &Point{Enabled: true, Max: 3, Count: 2}
	if !p.NeedsReplenish() {
		t.Fatalf("expected room for one more spawn")
	}
	p.Count = 3
	if p.NeedsReplenish() {
		t.Fatalf("expected no room once at max")
	}
	p.Count = 0
	p.Enabled = false
	if p.NeedsReplenish() {
		t.Fatalf("expected disabled spawn point to never replenish")
	}
}

func TestTickDespawn_FiresAtZero(t *testing.T) {
	e := ecs.NewEntityID(1, 0)
	timers := []DespawnTimer{{Entity: e, RemainTick: 1}}
	remaining, ready := TickDespawn(timers)
	if len(remaining) != 0 || len(ready) != 1 || ready[0] != e {
		t.Fatalf("expected timer to fire this tick, got remaining=%v ready=%v", remaining, ready)
	}
}

func TestTickDespawn_CountsDown(t *testing.T) {
	e := ecs.NewEntityID(1, 0)
	timers := []DespawnTimer{{Entity: e, RemainTick: 2}}
	remaining, ready := TickDespawn(timers)
	if len(ready) != 0 || len(remaining) != 1 || remaining[0].RemainTick != 1 {
		t.Fatalf("expected timer to count down without firing, got remaining=%v ready=%v", remaining, ready)
	}
}

func TestTickRespawn_FiresAtZero(t *testing.T) {
	timers := []RespawnTimer{{Point: 7, RemainTick: 0}}
	remaining, ready := TickRespawn(timers)
	if len(remaining) != 0 || len(ready) != 1 || ready[0] != 7 {
		t.Fatalf("expected immediate fire on zero remain, got remaining=%v ready=%v", remaining, ready)
	}
}
