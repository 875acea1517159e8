package grid

import (
	"container/heap"

	"github.com/novaspire/worldcore/internal/component"
	"github.com/novaspire/worldcore/internal/ecs"
)

// maxShortIDsPerFamily bounds each entity-kind family's pool (spec.md
// §4.2 "a bounded pool of IDs keyed by entity-kind family").
const maxShortIDsPerFamily = 4096

// minHeap is a small free-list min-heap so "pop lowest free ID" is O(log n)
// instead of a linear scan, matching spec.md §4.2's "pop lowest free ID"
// assignment rule.
type minHeap []uint16

func (h minHeap) Len() int            { return len(h) }
func (h minHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h minHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x any)         { *h = append(*h, x.(uint16)) }
func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// familyPool tracks free/assigned short IDs for one entity-kind family.
type familyPool struct {
	free minHeap
	next uint16
}

func newFamilyPool() *familyPool {
	return &familyPool{free: minHeap{}}
}

func (f *familyPool) acquire() (uint16, bool) {
	if f.free.Len() > 0 {
		return heap.Pop(&f.free).(uint16), true
	}
	if f.next >= maxShortIDsPerFamily {
		return 0, false
	}
	id := f.next
	f.next++
	return id, true
}

func (f *familyPool) release(id uint16) {
	heap.Push(&f.free, id)
}

// ShortIDPool assigns zone-scoped short IDs to client entities, one free
// pool per kind family, so a zone crowded with monsters never starves
// player short IDs and vice versa (spec.md §4.2).
type ShortIDPool struct {
	families map[component.EntityKind]*familyPool
	assigned map[assignKey]ecs.EntityID
}

type assignKey struct {
	kind component.EntityKind
	id   uint16
}

func NewShortIDPool() *ShortIDPool {
	return &ShortIDPool{
		families: make(map[component.EntityKind]*familyPool),
		assigned: make(map[assignKey]ecs.EntityID),
	}
}

func (p *ShortIDPool) familyFor(kind component.EntityKind) *familyPool {
	f, ok := p.families[kind]
	if !ok {
		f = newFamilyPool()
		p.families[kind] = f
	}
	return f
}

// Acquire assigns the lowest free ID in the entity's kind family. Returns
// ok=false if that family's pool is exhausted.
func (p *ShortIDPool) Acquire(owner ecs.EntityID, kind component.EntityKind) (uint16, bool) {
	id, ok := p.familyFor(kind).acquire()
	if !ok {
		return 0, false
	}
	p.assigned[assignKey{kind, id}] = owner
	return id, true
}

// Release returns a short ID to its family's free pool.
func (p *ShortIDPool) Release(kind component.EntityKind, id uint16) {
	delete(p.assigned, assignKey{kind, id})
	p.familyFor(kind).release(id)
}

// Owner returns the entity a short ID currently maps to within a kind
// family — spec.md §3 invariant: "Short ID is unique per zone and maps
// back to exactly one entity."
func (p *ShortIDPool) Owner(kind component.EntityKind, id uint16) (ecs.EntityID, bool) {
	owner, ok := p.assigned[assignKey{kind, id}]
	return owner, ok
}
