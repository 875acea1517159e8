package component

import "testing"

func TestCooldowns_GlobalReadyBeforeAndAfterExpiry(t *testing.T) {
	c := NewCooldowns()
	c.SetGlobal(100, 10)
	if c.GlobalReady(105) {
		t.Fatalf("expected global cooldown still active at tick 105")
	}
	if !c.GlobalReady(110) {
		t.Fatalf("expected global cooldown elapsed at tick 110")
	}
}

func TestCooldowns_SkillReadyDefaultsTrueWhenUnset(t *testing.T) {
	c := NewCooldowns()
	if !c.SkillReady(7, 0) {
		t.Fatalf("expected unset skill cooldown to be ready")
	}
	c.SetSkill(7, 0, 20)
	if c.SkillReady(7, 10) {
		t.Fatalf("expected skill 7 still cooling down at tick 10")
	}
	if !c.SkillReady(7, 20) {
		t.Fatalf("expected skill 7 ready at tick 20")
	}
}

func TestCooldowns_GroupOutOfRangeIsAlwaysReady(t *testing.T) {
	c := NewCooldowns()
	c.SetGroup(99, 0, 100) // no-op, out of range
	if !c.GroupReady(99, 0) {
		t.Fatalf("expected out-of-range group to report ready")
	}
}

func TestCooldowns_SetGroupAndGroupReady(t *testing.T) {
	c := NewCooldowns()
	c.SetGroup(2, 50, 30)
	if c.GroupReady(2, 60) {
		t.Fatalf("expected group 2 still cooling down")
	}
	if !c.GroupReady(2, 80) {
		t.Fatalf("expected group 2 ready at tick 80")
	}
}
