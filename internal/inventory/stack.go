// Package inventory implements spec.md §4.6: stack rules, equip/unequip
// atomicity, ammo stacking, gem insertion, and item drops.
package inventory

import "github.com/novaspire/worldcore/internal/component"

// MaxStack bounds how many units a single stackable slot can hold.
const MaxStack = 999

// TryAddStackable implements spec.md §4.6 "Stack rule": first search for
// a slot whose item compares equal and has capacity for partial
// stacking, then fall back to the first empty slot in that item's page.
// Overflow (what didn't fit anywhere) is returned to the caller.
func TryAddStackable(page []component.Slot, itemType, itemNumber uint32, quantity uint32) (residual uint32) {
	remaining := quantity

	for i := range page {
		s := &page[i]
		if s.Item == nil || !s.Item.IsStackable() {
			continue
		}
		if s.Item.ItemType != itemType || s.Item.ItemNumber != itemNumber {
			continue
		}
		capacity := MaxStack - s.Item.Quantity
		if capacity == 0 {
			continue
		}
		take := remaining
		if take > capacity {
			take = capacity
		}
		s.Item.Quantity += take
		remaining -= take
		if remaining == 0 {
			return 0
		}
	}

	for remaining > 0 {
		idx := firstEmpty(page)
		if idx < 0 {
			return remaining
		}
		take := remaining
		if take > MaxStack {
			take = MaxStack
		}
		page[idx].Item = &component.Item{ItemType: itemType, ItemNumber: itemNumber, Quantity: take}
		remaining -= take
	}
	return 0
}

func firstEmpty(page []component.Slot) int {
	for i, s := range page {
		if s.Item == nil {
			return i
		}
	}
	return -1
}

// TakeQuantity removes up to `amount` units from a slot, clearing the slot
// entirely rather than leaving a zero-count stack (spec.md §3 invariant:
// "taking a subquantity never leaves a zero-count slot"). Returns how
// much was actually taken.
func TakeQuantity(slot *component.Slot, amount uint32) uint32 {
	if slot.Item == nil || !slot.Item.IsStackable() {
		return 0
	}
	take := amount
	if take > slot.Item.Quantity {
		take = slot.Item.Quantity
	}
	slot.Item.Quantity -= take
	if slot.Item.Quantity == 0 {
		slot.Item = nil
	}
	return take
}

// TakeOne removes exactly one item-cast reagent unit, for skill resolution
// step 3 in spec.md §4.4. Returns false (no mutation) if the slot can't
// supply one — callers must not charge costs when this fails.
func TakeOne(slot *component.Slot) bool {
	if slot.Item == nil {
		return false
	}
	if slot.Item.IsStackable() {
		return TakeQuantity(slot, 1) == 1
	}
	slot.Item = nil
	return true
}
