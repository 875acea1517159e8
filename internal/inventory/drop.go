package inventory

import (
	"github.com/novaspire/worldcore/internal/component"
	"github.com/novaspire/worldcore/internal/ecs"
)

// PickupResult mirrors the admission errors spec.md §7 names for pickup.
type PickupResult int

const (
	PickupOK PickupResult = iota
	PickupNoPermission
)

// Drop is an entity's ItemDrop component (spec.md §4.6): it may carry a
// preferred pickup claimant (Owner) or a party claimant (PartyOwner).
// PartyOwner stores the owning party's numeric ID cast into an EntityID,
// not an actual entity handle — there is no entity behind a party.
type Drop struct {
	Item       *component.Item
	Money      int64 // non-zero for a money-only drop; Item is nil in that case
	Owner      ecs.EntityID // zero = unset
	PartyOwner ecs.EntityID // zero = unset
	ExpireTick uint64
}

// CheckPickup implements spec.md §4.8 "Pickup admission": the pickup
// entity must match the drop's owner constraints — either the pickup is
// the owner, the pickup's party is the drop's PartyOwner, or the drop has
// no owner.
func CheckPickup(d *Drop, pickupEntity, pickupParty ecs.EntityID) PickupResult {
	if d.Owner.IsZero() && d.PartyOwner.IsZero() {
		return PickupOK
	}
	if !d.Owner.IsZero() && d.Owner == pickupEntity {
		return PickupOK
	}
	if !d.PartyOwner.IsZero() && !pickupParty.IsZero() && d.PartyOwner == pickupParty {
		return PickupOK
	}
	return PickupNoPermission
}
