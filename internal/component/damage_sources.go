package component

import "github.com/novaspire/worldcore/internal/ecs"

// DamageSourceEntry is one attacker's running total on a defender's ring
// (spec.md §3 "DamageSources").
type DamageSourceEntry struct {
	Attacker     ecs.EntityID
	FirstTime    uint64
	LastTime     uint64
	TotalDamage  int64
}

// DamageSources is a bounded ring recording attacker contribution, used
// for threat selection, XP attribution, and loot owner assignment
// (spec.md §3, §4.5). Eviction picks the oldest LastTime; ties break by
// the lowest attacker handle for a deterministic result (spec.md §9 open
// question, resolved here — see DESIGN.md).
type DamageSources struct {
	Capacity int
	Entries  []DamageSourceEntry
}

func NewDamageSources(capacity int) *DamageSources {
	if capacity <= 0 {
		capacity = 8
	}
	return &DamageSources{Capacity: capacity}
}

// Record appends or merges a hit into the ring, evicting the oldest entry
// (tie-broken by lowest attacker handle) if the ring is full and the
// attacker is new.
func (d *DamageSources) Record(attacker ecs.EntityID, amount int64, nowTick uint64) {
	for i := range d.Entries {
		if d.Entries[i].Attacker == attacker {
			d.Entries[i].LastTime = nowTick
			d.Entries[i].TotalDamage += amount
			return
		}
	}
	if len(d.Entries) >= d.Capacity {
		evictIdx := 0
		for i := 1; i < len(d.Entries); i++ {
			if d.Entries[i].LastTime < d.Entries[evictIdx].LastTime ||
				(d.Entries[i].LastTime == d.Entries[evictIdx].LastTime && d.Entries[i].Attacker < d.Entries[evictIdx].Attacker) {
				evictIdx = i
			}
		}
		d.Entries = append(d.Entries[:evictIdx], d.Entries[evictIdx+1:]...)
	}
	d.Entries = append(d.Entries, DamageSourceEntry{
		Attacker:    attacker,
		FirstTime:   nowTick,
		LastTime:    nowTick,
		TotalDamage: amount,
	})
}

// TopSource returns the attacker with the highest total damage, used for
// solo loot ownership (spec.md §4.5).
func (d *DamageSources) TopSource() (ecs.EntityID, bool) {
	if len(d.Entries) == 0 {
		return 0, false
	}
	top := d.Entries[0]
	for _, e := range d.Entries[1:] {
		if e.TotalDamage > top.TotalDamage {
			top = e
		}
	}
	return top.Attacker, true
}

// TotalDamage sums every entry's contribution, the denominator for XP
// proportional attribution (spec.md §4.5).
func (d *DamageSources) TotalDamage() int64 {
	var sum int64
	for _, e := range d.Entries {
		sum += e.TotalDamage
	}
	return sum
}
