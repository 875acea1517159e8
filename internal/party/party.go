// Package party implements spec.md §4.8: party loot distribution rules
// and pickup-ownership admission.
package party

import "github.com/novaspire/worldcore/internal/ecs"

// LootMode is the closed choice a party makes for splitting a pickup.
type LootMode uint8

const (
	LootEqual LootMode = iota
	LootAcquisitionOrder
)

// Member is one online party member eligible for a loot share.
type Member struct {
	Entity ecs.EntityID
	Online bool
}

// Party tracks membership and the acquisition-order counters the
// round-robin rule needs (spec.md §4.8: "the acquisition counter
// advances only on distribution").
type Party struct {
	ID              uint64
	LeaderID        ecs.EntityID
	Members         []Member
	Mode            LootMode
	itemCounter     int // round-robin index, advanced on item distribution
	moneyCounter    int // separate round-robin index for money
}

func onlineMembers(members []Member) []Member {
	online := make([]Member, 0, len(members))
	for _, m := range members {
		if m.Online {
			online = append(online, m)
		}
	}
	return online
}

// MoneyShare splits a money pickup under LootEqual: "money is split
// evenly among online members, with each share being floor(total /
// online) + 1" (spec.md §4.8, taken literally).
func (p *Party) MoneyShare(total int64) map[ecs.EntityID]int64 {
	online := onlineMembers(p.Members)
	if len(online) == 0 {
		return nil
	}
	share := total/int64(len(online)) + 1
	out := make(map[ecs.EntityID]int64, len(online))
	for _, m := range online {
		out[m.Entity] = share
	}
	return out
}

// NextItemRecipient advances the acquisition-order round-robin and
// returns who receives this item. One counter serves every item type;
// there is no separate rotation per item type. Returns false if no
// online member exists.
func (p *Party) NextItemRecipient() (ecs.EntityID, bool) {
	online := onlineMembers(p.Members)
	if len(online) == 0 {
		return ecs.EntityID(0), false
	}
	recipient := online[p.itemCounter%len(online)]
	p.itemCounter++
	return recipient.Entity, true
}

// NextMoneyRecipient advances the separate money round-robin under
// LootAcquisitionOrder.
func (p *Party) NextMoneyRecipient() (ecs.EntityID, bool) {
	online := onlineMembers(p.Members)
	if len(online) == 0 {
		return ecs.EntityID(0), false
	}
	recipient := online[p.moneyCounter%len(online)]
	p.moneyCounter++
	return recipient.Entity, true
}

// PickupResult is what pickup admission decided.
type PickupResult uint8

const (
	PickupOK PickupResult = iota
	PickupNoPermission
)

// DropOwnership is the subset of an ItemDrop's ownership fields pickup
// admission checks (spec.md §4.6 "Item drops").
type DropOwnership struct {
	Owner      ecs.EntityID // zero means unset
	HasOwner   bool
	PartyOwner uint64 // zero means unset
	HasParty   bool
}

// CheckPickup implements spec.md §4.8's admission rule: "the pickup
// entity must match the drop's owner constraints — either the pickup is
// the owner, the pickup's party is the drop's PartyOwner, or the drop
// has no owner."
func CheckPickup(pickup ecs.EntityID, pickupPartyID uint64, drop DropOwnership) PickupResult {
	if !drop.HasOwner && !drop.HasParty {
		return PickupOK
	}
	if drop.HasOwner && drop.Owner == pickup {
		return PickupOK
	}
	if drop.HasParty && drop.PartyOwner == pickupPartyID {
		return PickupOK
	}
	return PickupNoPermission
}
