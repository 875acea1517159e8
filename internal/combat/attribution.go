package combat

import "github.com/novaspire/worldcore/internal/component"

// XPShare is one contributor's proportional slice of a kill's experience
// (spec.md §4.5: "XP splits across contributing parties proportional to
// contribution").
type XPShare struct {
	Attacker component.DamageSourceEntry
	Amount   int64
}

// SplitXP distributes totalXP across every entry in sources proportional
// to its TotalDamage share. Rounding remainder is dropped, matching the
// teacher's floor-based share convention used elsewhere (spec.md §4.8
// money split uses the same floor rule).
func SplitXP(sources *component.DamageSources, totalXP int64) []XPShare {
	denom := sources.TotalDamage()
	if denom <= 0 {
		return nil
	}
	shares := make([]XPShare, 0, len(sources.Entries))
	for _, e := range sources.Entries {
		amount := totalXP * e.TotalDamage / denom
		if amount <= 0 {
			continue
		}
		shares = append(shares, XPShare{Attacker: e, Amount: amount})
	}
	return shares
}

// LootOwner resolves loot ownership at death: "loot assigns ownership to
// the top damage source's party or to the solo top source" (spec.md
// §4.5). partyOf looks up a contributor's party id; 0 means no party.
func LootOwner(sources *component.DamageSources, partyOf func(entry component.DamageSourceEntry) uint64) (owner component.DamageSourceEntry, partyID uint64, ok bool) {
	top, found := topEntry(sources)
	if !found {
		return component.DamageSourceEntry{}, 0, false
	}
	return top, partyOf(top), true
}

func topEntry(sources *component.DamageSources) (component.DamageSourceEntry, bool) {
	if len(sources.Entries) == 0 {
		return component.DamageSourceEntry{}, false
	}
	top := sources.Entries[0]
	for _, e := range sources.Entries[1:] {
		if e.TotalDamage > top.TotalDamage {
			top = e
		}
	}
	return top, true
}
