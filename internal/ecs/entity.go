// Package ecs implements the entity store (spec.md §3 "Entity", §9
// "Entity container"): a homogeneous container of opaque handles with
// components attached per entity and queries over component intersections.
package ecs

// EntityID is an opaque stable handle. It encodes a 32-bit index in the
// lower bits and a 32-bit generation in the upper bits; generation
// increments on destroy so a stale handle never aliases a reused index.
type EntityID uint64

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == 0 }

// Pool manages entity allocation with generational indices and a free list.
type Pool struct {
	generations []uint32
	freeList    []uint32
	nextIndex   uint32
}

func NewPool() *Pool {
	return &Pool{
		generations: make([]uint32, 0, 1024),
		freeList:    make([]uint32, 0, 256),
	}
}

// Create allocates a fresh handle, reusing the most recently freed index
// when one is available.
func (p *Pool) Create() EntityID {
	if len(p.freeList) > 0 {
		idx := p.freeList[len(p.freeList)-1]
		p.freeList = p.freeList[:len(p.freeList)-1]
		return NewEntityID(idx, p.generations[idx])
	}
	idx := p.nextIndex
	p.nextIndex++
	if int(idx) >= len(p.generations) {
		p.generations = append(p.generations, 0)
	}
	return NewEntityID(idx, p.generations[idx])
}

// Alive reports whether a handle's liveness is still current — a query
// the rest of the engine depends on per spec.md §9.
func (p *Pool) Alive(id EntityID) bool {
	idx := id.Index()
	if idx >= p.nextIndex {
		return false
	}
	return p.generations[idx] == id.Generation()
}

func (p *Pool) Destroy(id EntityID) {
	idx := id.Index()
	if idx >= p.nextIndex {
		return
	}
	if p.generations[idx] != id.Generation() {
		return // already destroyed
	}
	p.generations[idx]++
	p.freeList = append(p.freeList, idx)
}

// Count returns how many live handles the pool currently holds.
func (p *Pool) Count() int {
	return int(p.nextIndex) - len(p.freeList)
}
