package component

import (
	"testing"

	"github.com/novaspire/worldcore/internal/ecs"
)

func TestDamageSources_RecordMergesSameAttacker(t *testing.T) {
	d := NewDamageSources(4)
	a := ecs.NewEntityID(1, 0)
	d.Record(a, 10, 1)
	d.Record(a, 5, 2)
	if len(d.Entries) != 1 || d.Entries[0].TotalDamage != 15 || d.Entries[0].LastTime != 2 {
		t.Fatalf("expected merged entry, got %+v", d.Entries)
	}
}

func TestDamageSources_EvictsOldestWhenFull(t *testing.T) {
	d := NewDamageSources(2)
	a1 := ecs.NewEntityID(1, 0)
	a2 := ecs.NewEntityID(2, 0)
	a3 := ecs.NewEntityID(3, 0)
	d.Record(a1, 10, 1)
	d.Record(a2, 10, 2)
	d.Record(a3, 10, 3) // evicts a1 (oldest LastTime)

	if len(d.Entries) != 2 {
		t.Fatalf("expected capacity held at 2, got %d", len(d.Entries))
	}
	for _, e := range d.Entries {
		if e.Attacker == a1 {
			t.Fatalf("expected oldest entry evicted, found %v", a1)
		}
	}
}

func TestDamageSources_EvictionTieBreaksOnLowestHandle(t *testing.T) {
	d := NewDamageSources(2)
	low := ecs.NewEntityID(1, 0)
	high := ecs.NewEntityID(2, 0)
	newcomer := ecs.NewEntityID(3, 0)
	d.Record(high, 10, 5)
	d.Record(low, 10, 5) // same LastTime as high, lower handle
	d.Record(newcomer, 10, 5)

	for _, e := range d.Entries {
		if e.Attacker == low {
			t.Fatalf("expected lowest-handle entry evicted on tie, found %v", low)
		}
	}
}

func TestDamageSources_TopSourceAndTotalDamage(t *testing.T) {
	d := NewDamageSources(4)
	a1 := ecs.NewEntityID(1, 0)
	a2 := ecs.NewEntityID(2, 0)
	d.Record(a1, 30, 1)
	d.Record(a2, 70, 2)

	top, ok := d.TopSource()
	if !ok || top != a2 {
		t.Fatalf("expected a2 as top source, got %v ok=%v", top, ok)
	}
	if got := d.TotalDamage(); got != 100 {
		t.Fatalf("expected total damage 100, got %d", got)
	}
}

func TestDamageSources_TopSourceEmpty(t *testing.T) {
	d := NewDamageSources(4)
	if _, ok := d.TopSource(); ok {
		t.Fatalf("expected no top source for empty ring")
	}
}
