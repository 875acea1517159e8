package inventory

import "github.com/novaspire/worldcore/internal/component"

// EquipResult reports the outcome of an equip attempt without mutating
// anything on failure (spec.md §4.6, §7 "Validation errors on equip").
type EquipResult int

const (
	EquipOK EquipResult = iota
	EquipRejectedInventoryFull
	EquipRejectedWrongType
)

// itemTypeToEquipIndex maps an inventory item's type classification to the
// equipment index it may occupy (spec.md §4.6 "Equip from inventory").
// Only weapon/sub-weapon matter for the two-handed atomicity rule; other
// mappings are a direct 1:1 by convention of the item-type numbering.
func itemTypeToEquipIndex(itemType uint32) (component.EquipIndex, bool) {
	const base = 0xF0
	v := itemType & 0xFF
	if v < base {
		return 0, false
	}
	idx := component.EquipIndex(v - base)
	return idx, true
}

// EquipFromInventory implements spec.md §4.6's equip transaction: the
// inventory slot's item type must map to the target equipment index; a
// two-handed weapon equip first unequips any sub-weapon into inventory,
// and if that fails the whole equip is atomically rejected (spec.md §8
// scenario 4). On success the final step swaps inventory slot <->
// equipment slot in one step — nothing is left half-applied.
func EquipFromInventory(inv *component.Inventory, eq *component.Equipment, page component.InventoryPage, slotIdx int, target component.EquipIndex) EquipResult {
	slots := inv.PageSlots(page)
	if slotIdx < 0 || slotIdx >= len(slots) || slots[slotIdx].Item == nil {
		return EquipRejectedWrongType
	}
	incoming := slots[slotIdx].Item
	wantIdx, ok := itemTypeToEquipIndex(incoming.ItemType)
	if !ok || wantIdx != target {
		return EquipRejectedWrongType
	}

	var freedSubWeaponSlot = -1
	if target == component.EquipWeapon && component.IsTwoHanded(incoming.ItemType) {
		if sub := eq.Get(component.EquipSubWeapon); sub != nil {
			freedSubWeaponSlot = firstEmpty(slots)
			if freedSubWeaponSlot < 0 {
				return EquipRejectedInventoryFull
			}
		}
	}

	// Nothing below this point can fail: commit the swap atomically.
	previouslyEquipped := eq.Get(target)
	eq.Set(target, incoming)
	slots[slotIdx].Item = previouslyEquipped

	if freedSubWeaponSlot >= 0 {
		sub := eq.Get(component.EquipSubWeapon)
		eq.Set(component.EquipSubWeapon, nil)
		slots[freedSubWeaponSlot].Item = sub
	}

	return EquipOK
}

// InsertGem implements spec.md §4.6 "Gem insertion": only equipment with
// HasSocket and no existing gem accepts a Jewel-class item; the jewel is
// consumed 1.
func InsertGem(target *component.Item, jewelSlot *component.Slot, jewelClass uint32) bool {
	if target == nil || !target.HasSocket || target.GemID != 0 {
		return false
	}
	if jewelSlot.Item == nil || jewelSlot.Item.ItemType != jewelClass {
		return false
	}
	target.GemID = jewelSlot.Item.ItemNumber
	TakeOne(jewelSlot)
	return true
}

// StackAmmo implements spec.md §4.6 "Ammo stacking": a partial stack
// moves as much as fits into the ammo slot and leaves the remainder in
// the source slot.
func StackAmmo(ammoSlot *component.Item, source *component.Slot) {
	if ammoSlot == nil || source.Item == nil || !source.Item.IsStackable() {
		return
	}
	if ammoSlot.ItemType != source.Item.ItemType || ammoSlot.ItemNumber != source.Item.ItemNumber {
		return
	}
	capacity := MaxStack - ammoSlot.Quantity
	if capacity == 0 {
		return
	}
	move := source.Item.Quantity
	if move > capacity {
		move = capacity
	}
	ammoSlot.Quantity += move
	TakeQuantity(source, move)
}
