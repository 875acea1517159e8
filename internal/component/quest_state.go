package component

// questSlotCount bounds the fixed-size slot array spec.md §3 calls for.
const questSlotCount = 10

// ActiveQuest is one occupied quest slot (spec.md §3 "QuestState").
type ActiveQuest struct {
	QuestID    uint32
	Variables  [5]int32
	Switches   [4]bool
	Items      []uint32
	ExpireTick *uint64 // nil means no timer
}

// QuestState is the per-character quest slot array plus global banks
// (spec.md §3).
type QuestState struct {
	Slots [questSlotCount]*ActiveQuest

	GlobalSwitches uint64 // bitset
	EpisodeVars    map[uint32]int32
	JobVars        map[uint32]int32
	PlanetVars     map[uint32]int32
	UnionVars      map[uint32]int32
}

func NewQuestState() *QuestState {
	return &QuestState{
		EpisodeVars: make(map[uint32]int32),
		JobVars:     make(map[uint32]int32),
		PlanetVars:  make(map[uint32]int32),
		UnionVars:   make(map[uint32]int32),
	}
}

// FindByQuestID returns the slot index holding a given quest, or -1.
func (q *QuestState) FindByQuestID(questID uint32) int {
	for i, s := range q.Slots {
		if s != nil && s.QuestID == questID {
			return i
		}
	}
	return -1
}

// Clear empties a slot (used by RemoveSelectedQuest rewards).
func (q *QuestState) Clear(slot int) {
	if slot >= 0 && slot < len(q.Slots) {
		q.Slots[slot] = nil
	}
}
