package ecs

import "testing"

type widget struct{ n int }

func TestRegistry_RemoveAllClearsEveryStore(t *testing.T) {
	reg := NewRegistry()
	s1 := NewStore[widget]()
	s2 := NewStore[int]()
	reg.Register(s1)
	reg.Register(s2)

	id := NewEntityID(1, 0)
	s1.Set(id, &widget{n: 7})
	s2.Set(id, new(int))

	reg.RemoveAll(id)

	if s1.Has(id) || s2.Has(id) {
		t.Fatalf("expected entity removed from every store")
	}
}

func TestWorld_FlushDestroyQueueReleasesHandle(t *testing.T) {
	w := NewWorld()
	s := NewStore[widget]()
	w.Registry().Register(s)

	id := w.CreateEntity()
	s.Set(id, &widget{n: 1})
	w.MarkForDestruction(id)
	w.FlushDestroyQueue()

	if w.Alive(id) {
		t.Fatalf("expected entity destroyed")
	}
	if s.Has(id) {
		t.Fatalf("expected component removed on destroy")
	}
}
