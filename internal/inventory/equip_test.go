package inventory

import (
	"testing"

	"github.com/novaspire/worldcore/internal/component"
)

const (
	weaponItemType    = 0xF0 + uint32(component.EquipWeapon)
	subWeaponItemType = 0xF0 + uint32(component.EquipSubWeapon)
	twoHandedFlag     = 1 << 16
)

func TestEquipFromInventory_TwoHandedUnequipsSubWeapon(t *testing.T) {
	inv := component.NewInventory()
	eq := &component.Equipment{}
	page := inv.PageSlots(component.PageEquipment)
	page[0].Item = &component.Item{ItemType: weaponItemType | twoHandedFlag, ItemNumber: 1}
	eq.Set(component.EquipSubWeapon, &component.Item{ItemType: subWeaponItemType, ItemNumber: 2})

	res := EquipFromInventory(inv, eq, component.PageEquipment, 0, component.EquipWeapon)

	if res != EquipOK {
		t.Fatalf("expected EquipOK, got %v", res)
	}
	if eq.Get(component.EquipSubWeapon) != nil {
		t.Fatalf("expected sub-weapon unequipped")
	}
	if eq.Get(component.EquipWeapon) == nil || eq.Get(component.EquipWeapon).ItemNumber != 1 {
		t.Fatalf("expected weapon equipped")
	}
	foundSub := false
	for _, s := range page {
		if s.Item != nil && s.Item.ItemNumber == 2 {
			foundSub = true
		}
	}
	if !foundSub {
		t.Fatalf("expected unequipped sub-weapon returned to inventory")
	}
}

func TestEquipFromInventory_TwoHandedAtomicFailureWhenInventoryFull(t *testing.T) {
	// spec.md §8 scenario 4: inventory full, every slot occupied,
	// sub-weapon equipped. Equip must be rejected with nothing changed.
	inv := component.NewInventory()
	eq := &component.Equipment{}
	page := inv.PageSlots(component.PageEquipment)
	page[0].Item = &component.Item{ItemType: weaponItemType | twoHandedFlag, ItemNumber: 1}
	for i := 1; i < len(page); i++ {
		page[i].Item = &component.Item{ItemType: 0xAA, ItemNumber: uint32(i), Quantity: 1}
	}
	eq.Set(component.EquipSubWeapon, &component.Item{ItemType: subWeaponItemType, ItemNumber: 2})

	before := snapshotItems(page)
	beforeSub := eq.Get(component.EquipSubWeapon)

	res := EquipFromInventory(inv, eq, component.PageEquipment, 0, component.EquipWeapon)

	if res != EquipRejectedInventoryFull {
		t.Fatalf("expected EquipRejectedInventoryFull, got %v", res)
	}
	after := snapshotItems(page)
	for i := range before {
		if (before[i] == nil) != (after[i] == nil) {
			t.Fatalf("slot %d occupancy changed on rejected equip", i)
		}
		if before[i] != nil && *before[i] != *after[i] {
			t.Fatalf("slot %d contents changed on rejected equip", i)
		}
	}
	if eq.Get(component.EquipSubWeapon) != beforeSub {
		t.Fatalf("sub-weapon slot must be unchanged on rejected equip")
	}
	if eq.Get(component.EquipWeapon) != nil {
		t.Fatalf("weapon slot must remain unchanged on rejected equip")
	}
}

func snapshotItems(page []component.Slot) []*component.Item {
	out := make([]*component.Item, len(page))
	for i, s := range page {
		if s.Item == nil {
			continue
		}
		cp := *s.Item
		out[i] = &cp
	}
	return out
}

func TestInsertGem_OnlySocketedUnfilledEquipmentAccepts(t *testing.T) {
	target := &component.Item{HasSocket: true}
	jewelSlot := &component.Slot{Item: &component.Item{ItemType: 900, ItemNumber: 55, Quantity: 1}}

	ok := InsertGem(target, jewelSlot, 900)

	if !ok {
		t.Fatalf("expected gem insertion to succeed")
	}
	if target.GemID != 55 {
		t.Fatalf("expected gem id 55, got %d", target.GemID)
	}
	if jewelSlot.Item != nil {
		t.Fatalf("expected jewel consumed")
	}
}

func TestInsertGem_RejectsWhenNoSocketOrAlreadyGemmed(t *testing.T) {
	noSocket := &component.Item{HasSocket: false}
	jewel := &component.Slot{Item: &component.Item{ItemType: 900, ItemNumber: 1, Quantity: 1}}
	if InsertGem(noSocket, jewel, 900) {
		t.Fatalf("expected rejection without socket")
	}

	alreadyGemmed := &component.Item{HasSocket: true, GemID: 7}
	if InsertGem(alreadyGemmed, jewel, 900) {
		t.Fatalf("expected rejection when already gemmed")
	}
}

func TestStackAmmo_PartialMoveLeavesRemainder(t *testing.T) {
	ammo := &component.Item{ItemType: 5, ItemNumber: 1, Quantity: MaxStack - 3}
	source := &component.Slot{Item: &component.Item{ItemType: 5, ItemNumber: 1, Quantity: 10}}

	StackAmmo(ammo, source)

	if ammo.Quantity != MaxStack {
		t.Fatalf("expected ammo filled to max, got %d", ammo.Quantity)
	}
	if source.Item == nil || source.Item.Quantity != 7 {
		t.Fatalf("expected 7 remaining in source, got %+v", source.Item)
	}
}
