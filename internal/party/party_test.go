package party

import (
	"testing"

	"github.com/novaspire/worldcore/internal/ecs"
)

func TestMoneyShare_FloorDivisionPlusOne(t *testing.T) {
	a, b, c := ecs.NewEntityID(1, 0), ecs.NewEntityID(2, 0), ecs.NewEntityID(3, 0)
	p := &Party{Members: []Member{{Entity: a, Online: true}, {Entity: b, Online: true}, {Entity: c, Online: false}}}

	shares := p.MoneyShare(100)

	// floor(100/2)+1 = 51, applied per online member.
	if shares[a] != 51 || shares[b] != 51 {
		t.Fatalf("expected each online member to get 51, got %+v", shares)
	}
	if _, ok := shares[c]; ok {
		t.Fatalf("expected offline member to receive no share")
	}
}

func TestMoneyShare_NoOnlineMembersReturnsNil(t *testing.T) {
	p := &Party{Members: []Member{{Entity: ecs.NewEntityID(1, 0), Online: false}}}
	if got := p.MoneyShare(100); got != nil {
		t.Fatalf("expected nil shares with no online members, got %+v", got)
	}
}

func TestNextItemRecipient_RoundRobinsAndAdvances(t *testing.T) {
	a, b := ecs.NewEntityID(1, 0), ecs.NewEntityID(2, 0)
	p := &Party{Members: []Member{{Entity: a, Online: true}, {Entity: b, Online: true}}}

	first, ok := p.NextItemRecipient()
	if !ok || first != a {
		t.Fatalf("expected first recipient a, got %v", first)
	}
	second, _ := p.NextItemRecipient()
	if second != b {
		t.Fatalf("expected second recipient b, got %v", second)
	}
	third, _ := p.NextItemRecipient()
	if third != a {
		t.Fatalf("expected round-robin to wrap to a, got %v", third)
	}
}

func TestNextMoneyRecipient_IndependentCounterFromItems(t *testing.T) {
	a, b := ecs.NewEntityID(1, 0), ecs.NewEntityID(2, 0)
	p := &Party{Members: []Member{{Entity: a, Online: true}, {Entity: b, Online: true}}}

	p.NextItemRecipient() // advances item counter only
	recipient, _ := p.NextMoneyRecipient()
	if recipient != a {
		t.Fatalf("expected money round-robin to start independently at a, got %v", recipient)
	}
}

func TestCheckPickup_NoOwnerAlwaysOK(t *testing.T) {
	if got := CheckPickup(ecs.NewEntityID(1, 0), 0, DropOwnership{}); got != PickupOK {
		t.Fatalf("expected ownerless drop to allow any pickup, got %v", got)
	}
}

func TestCheckPickup_OwnerMatch(t *testing.T) {
	owner := ecs.NewEntityID(1, 0)
	drop := DropOwnership{Owner: owner, HasOwner: true}
	if got := CheckPickup(owner, 0, drop); got != PickupOK {
		t.Fatalf("expected owner to pick up own drop, got %v", got)
	}
	other := ecs.NewEntityID(2, 0)
	if got := CheckPickup(other, 0, drop); got != PickupNoPermission {
		t.Fatalf("expected non-owner without party match to be denied, got %v", got)
	}
}

func TestCheckPickup_PartyOwnerMatch(t *testing.T) {
	drop := DropOwnership{PartyOwner: 42, HasParty: true}
	if got := CheckPickup(ecs.NewEntityID(5, 0), 42, drop); got != PickupOK {
		t.Fatalf("expected matching party to pick up, got %v", got)
	}
	if got := CheckPickup(ecs.NewEntityID(5, 0), 7, drop); got != PickupNoPermission {
		t.Fatalf("expected mismatched party to be denied, got %v", got)
	}
}

func TestValidate_ClearsStaleMembership(t *testing.T) {
	m := &Membership{PartyID: 9, HasParty: true}
	Validate(m, func(id uint64) bool { return false })
	if m.HasParty || m.PartyID != 0 {
		t.Fatalf("expected stale membership cleared, got %+v", m)
	}
}

func TestValidate_KeepsLiveMembership(t *testing.T) {
	m := &Membership{PartyID: 9, HasParty: true}
	Validate(m, func(id uint64) bool { return id == 9 })
	if !m.HasParty || m.PartyID != 9 {
		t.Fatalf("expected live membership untouched, got %+v", m)
	}
}

func TestRemoveStaleMembers_DropsNonReciprocalEntries(t *testing.T) {
	a, b := ecs.NewEntityID(1, 0), ecs.NewEntityID(2, 0)
	p := &Party{Members: []Member{{Entity: a, Online: true}, {Entity: b, Online: true}}}

	RemoveStaleMembers(p, func(e ecs.EntityID) bool { return e == a })

	if len(p.Members) != 1 || p.Members[0].Entity != a {
		t.Fatalf("expected only reciprocal member to remain, got %+v", p.Members)
	}
}
