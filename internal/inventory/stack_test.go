package inventory

import (
	"testing"

	"github.com/novaspire/worldcore/internal/component"
)

func newPage(n int) []component.Slot {
	return make([]component.Slot, n)
}

func TestTryAddStackable_MergesIntoExistingSlot(t *testing.T) {
	page := newPage(4)
	page[0].Item = &component.Item{ItemType: 1, ItemNumber: 10, Quantity: 5}

	residual := TryAddStackable(page, 1, 10, 3)

	if residual != 0 {
		t.Fatalf("expected no residual, got %d", residual)
	}
	if page[0].Item.Quantity != 8 {
		t.Fatalf("expected merged quantity 8, got %d", page[0].Item.Quantity)
	}
}

func TestTryAddStackable_FallsBackToFirstEmptySlot(t *testing.T) {
	page := newPage(2)
	page[0].Item = &component.Item{ItemType: 2, ItemNumber: 99, Quantity: MaxStack} // full, different item too

	residual := TryAddStackable(page, 1, 10, 5)

	if residual != 0 {
		t.Fatalf("expected no residual, got %d", residual)
	}
	if page[1].Item == nil || page[1].Item.Quantity != 5 {
		t.Fatalf("expected new slot with quantity 5, got %+v", page[1].Item)
	}
}

func TestTryAddStackable_OverflowReturnsResidualAndNeverExceedsPageCount(t *testing.T) {
	page := newPage(1)
	page[0].Item = &component.Item{ItemType: 1, ItemNumber: 1, Quantity: MaxStack - 2}

	residual := TryAddStackable(page, 1, 1, 10)

	if residual != 8 {
		t.Fatalf("expected residual 8, got %d", residual)
	}
	if len(page) != 1 {
		t.Fatalf("page must never exceed its fixed slot count")
	}
}

func TestTakeQuantity_NeverLeavesZeroCountSlot(t *testing.T) {
	slot := component.Slot{Item: &component.Item{ItemType: 1, ItemNumber: 1, Quantity: 3}}
	taken := TakeQuantity(&slot, 3)
	if taken != 3 {
		t.Fatalf("expected to take 3, took %d", taken)
	}
	if slot.Item != nil {
		t.Fatalf("expected slot cleared, not left at zero count")
	}
}

func TestTakeOne_NonStackableClearsSlot(t *testing.T) {
	slot := component.Slot{Item: &component.Item{ItemType: 1, ItemNumber: 1, Life: 1000}}
	if !TakeOne(&slot) {
		t.Fatalf("expected TakeOne to succeed")
	}
	if slot.Item != nil {
		t.Fatalf("expected slot cleared")
	}
}

func TestTakeOne_EmptySlotFails(t *testing.T) {
	slot := component.Slot{}
	if TakeOne(&slot) {
		t.Fatalf("expected TakeOne on empty slot to fail")
	}
}
