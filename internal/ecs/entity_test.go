package ecs

import "testing"

func TestPool_CreateAssignsSequentialIndices(t *testing.T) {
	p := NewPool()
	a := p.Create()
	b := p.Create()
	if a.Index() != 0 || b.Index() != 1 {
		t.Fatalf("expected sequential indices 0,1 got %d,%d", a.Index(), b.Index())
	}
	if !p.Alive(a) || !p.Alive(b) {
		t.Fatalf("expected both handles alive")
	}
}

func TestPool_DestroyThenRecreateBumpsGeneration(t *testing.T) {
	p := NewPool()
	a := p.Create()
	p.Destroy(a)
	if p.Alive(a) {
		t.Fatalf("destroyed handle reported alive")
	}
	b := p.Create()
	if b.Index() != a.Index() {
		t.Fatalf("expected freed index %d to be reused, got %d", a.Index(), b.Index())
	}
	if b.Generation() == a.Generation() {
		t.Fatalf("expected generation bump, both are %d", a.Generation())
	}
	if p.Alive(a) {
		t.Fatalf("stale handle must not alias the reused index")
	}
}

func TestPool_CountTracksLiveHandles(t *testing.T) {
	p := NewPool()
	ids := make([]EntityID, 5)
	for i := range ids {
		ids[i] = p.Create()
	}
	if p.Count() != 5 {
		t.Fatalf("expected count 5, got %d", p.Count())
	}
	p.Destroy(ids[2])
	if p.Count() != 4 {
		t.Fatalf("expected count 4 after destroy, got %d", p.Count())
	}
}

func TestPool_DestroyUnknownIndexIsNoop(t *testing.T) {
	p := NewPool()
	p.Destroy(NewEntityID(99, 0))
	if p.Count() != 0 {
		t.Fatalf("expected count 0, got %d", p.Count())
	}
}
