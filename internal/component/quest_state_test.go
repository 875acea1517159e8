package component

import "testing"

func TestQuestState_FindByQuestIDLocatesOccupiedSlot(t *testing.T) {
	q := NewQuestState()
	q.Slots[3] = &ActiveQuest{QuestID: 42}

	if got := q.FindByQuestID(42); got != 3 {
		t.Fatalf("expected slot 3, got %d", got)
	}
	if got := q.FindByQuestID(99); got != -1 {
		t.Fatalf("expected -1 for missing quest, got %d", got)
	}
}

func TestQuestState_ClearEmptiesSlot(t *testing.T) {
	q := NewQuestState()
	q.Slots[1] = &ActiveQuest{QuestID: 5}
	q.Clear(1)
	if q.Slots[1] != nil {
		t.Fatalf("expected slot cleared")
	}
}

func TestQuestState_ClearOutOfRangeIsNoop(t *testing.T) {
	q := NewQuestState()
	q.Clear(-1)
	q.Clear(len(q.Slots))
}
