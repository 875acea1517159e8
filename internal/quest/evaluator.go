// Package quest implements spec.md §4.7: a trigger is a list of
// conditions and a list of rewards, evaluated as one closed-variant
// switch rather than a chain of dynamically-dispatched handlers.
package quest

import "github.com/novaspire/worldcore/internal/ecs"

// ConditionKind is the closed set spec.md §4.7 names.
type ConditionKind int

const (
	CondAbilityCompare ConditionKind = iota
	CondItemPresence
	CondQuestSelection
	CondSwitchState
	CondPositionZone
	CondQuestVarCompare
	CondEpisodeVarCompare
	CondJobVarCompare
	CondPlanetVarCompare
	CondUnionVarCompare
	CondWorldTimeWindow
	CondDayWeekWindow
	CondSkillLearned
	CondTeamNumber
	CondServerChannel
	CondEventObjectSelect
	CondNPCSelect
	CondObjectVarCompare
	CondObjectZoneTime
	CondObjectDistance
	CondCompareTwoNPCVars
	CondPartyLeaderLevel
	CondPartyMemberCount
	CondRandomPercent // client-evaluated only; server treats as pass
	CondClanPresence
	CondClanPosition
	CondClanContribution
	CondClanLevel
	CondClanPoints
	CondClanMoney
	CondClanMemberCount
	CondClanSkill
)

// CompareOp is the comparison every *Compare condition family uses.
type CompareOp int

const (
	OpEqual CompareOp = iota
	OpNotEqual
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
)

func compare(op CompareOp, lhs, rhs int64) bool {
	switch op {
	case OpEqual:
		return lhs == rhs
	case OpNotEqual:
		return lhs != rhs
	case OpLess:
		return lhs < rhs
	case OpLessEqual:
		return lhs <= rhs
	case OpGreater:
		return lhs > rhs
	case OpGreaterEqual:
		return lhs >= rhs
	default:
		return false
	}
}

// Condition is one closed-variant check. Not every field is used by
// every Kind; unused fields are zero.
type Condition struct {
	Kind ConditionKind
	Key  uint32 // ability id, item type, quest id, zone id, npc id...
	Key2 uint32 // secondary key, e.g. the variable index within a quest
	Op   CompareOp
	Want int64
	Str  string // strings table key, for channel/day-week names etc.
}

// QuestParameters carries the selection slots downstream conditions and
// rewards read (spec.md §4.7).
type QuestParameters struct {
	Source              ecs.EntityID
	SelectedEventObject ecs.EntityID
	SelectedNPC         ecs.EntityID
	SelectedQuestIndex  int
	NextTriggerName     string
}

// World is the read surface condition evaluation needs. Implementations
// live alongside the ability/inventory/party/clan components; the
// evaluator itself never mutates through this interface.
type World interface {
	AbilityValue(e ecs.EntityID, key uint32) int64
	HasItem(e ecs.EntityID, itemType uint32, questPage bool) bool
	QuestSlot(e ecs.EntityID, questID uint32) (slot int, active bool)
	GlobalSwitch(e ecs.EntityID, bit uint32) bool
	ZoneID(e ecs.EntityID) uint32
	QuestVar(e ecs.EntityID, questID uint32, idx uint32) int64
	EpisodeVar(e ecs.EntityID, id uint32) int64
	JobVar(e ecs.EntityID, id uint32) int64
	PlanetVar(e ecs.EntityID, id uint32) int64
	UnionVar(e ecs.EntityID, id uint32) int64
	WorldMinuteOfDay() int64
	WorldDayOfWeek() int64
	SkillLearned(e ecs.EntityID, skillID uint32) bool
	TeamNumber(e ecs.EntityID) int64
	ServerChannel() int64
	NPCVar(npc ecs.EntityID, idx uint32) int64
	ObjectVar(e ecs.EntityID, idx uint32) int64
	ObjectZoneTicks(e ecs.EntityID) int64
	Distance(a, b ecs.EntityID) int64
	PartyIsLeader(e ecs.EntityID) bool
	PartyLevel(e ecs.EntityID) int64
	PartyMemberCount(e ecs.EntityID) int64
	ClanOf(e ecs.EntityID) (clan uint32, has bool)
	ClanPosition(e ecs.EntityID) int64
	ClanContribution(e ecs.EntityID) int64
	ClanLevel(clan uint32) int64
	ClanPoints(clan uint32) int64
	ClanMoney(clan uint32) int64
	ClanMemberCount(clan uint32) int64
	ClanSkillLearned(clan uint32, skillID uint32) bool
}

// Evaluate runs one Condition against World + QuestParameters (spec.md
// §4.7: "Conditions read (never write) entity state").
func Evaluate(c Condition, w World, p *QuestParameters) bool {
	switch c.Kind {
	case CondAbilityCompare:
		return compare(c.Op, w.AbilityValue(p.Source, c.Key), c.Want)
	case CondItemPresence:
		return w.HasItem(p.Source, c.Key, c.Want != 0)
	case CondQuestSelection:
		slot, active := w.QuestSlot(p.Source, c.Key)
		if active {
			p.SelectedQuestIndex = slot
		}
		return active
	case CondSwitchState:
		return w.GlobalSwitch(p.Source, c.Key) == (c.Want != 0)
	case CondPositionZone:
		return int64(w.ZoneID(p.Source)) == c.Want
	case CondQuestVarCompare:
		return compare(c.Op, w.QuestVar(p.Source, c.Key, c.Key2), c.Want)
	case CondEpisodeVarCompare:
		return compare(c.Op, w.EpisodeVar(p.Source, c.Key), c.Want)
	case CondJobVarCompare:
		return compare(c.Op, w.JobVar(p.Source, c.Key), c.Want)
	case CondPlanetVarCompare:
		return compare(c.Op, w.PlanetVar(p.Source, c.Key), c.Want)
	case CondUnionVarCompare:
		return compare(c.Op, w.UnionVar(p.Source, c.Key), c.Want)
	case CondWorldTimeWindow:
		return compare(c.Op, w.WorldMinuteOfDay(), c.Want)
	case CondDayWeekWindow:
		return compare(c.Op, w.WorldDayOfWeek(), c.Want)
	case CondSkillLearned:
		return w.SkillLearned(p.Source, c.Key)
	case CondTeamNumber:
		return compare(c.Op, w.TeamNumber(p.Source), c.Want)
	case CondServerChannel:
		return compare(c.Op, w.ServerChannel(), c.Want)
	case CondEventObjectSelect:
		p.SelectedEventObject = ecs.EntityID(c.Want)
		return true
	case CondNPCSelect:
		p.SelectedNPC = ecs.EntityID(c.Want)
		return true
	case CondObjectVarCompare:
		return compare(c.Op, w.ObjectVar(p.Source, c.Key), c.Want)
	case CondObjectZoneTime:
		return compare(c.Op, w.ObjectZoneTicks(p.Source), c.Want)
	case CondObjectDistance:
		return compare(c.Op, w.Distance(p.Source, p.SelectedEventObject), c.Want)
	case CondCompareTwoNPCVars:
		return compare(c.Op, w.NPCVar(p.SelectedNPC, c.Key), w.NPCVar(p.SelectedNPC, uint32(c.Want)))
	case CondPartyLeaderLevel:
		return w.PartyIsLeader(p.Source) && compare(c.Op, w.PartyLevel(p.Source), c.Want)
	case CondPartyMemberCount:
		return compare(c.Op, w.PartyMemberCount(p.Source), c.Want)
	case CondRandomPercent:
		return true // server treats client-evaluated randoms as pass
	case CondClanPresence:
		_, has := w.ClanOf(p.Source)
		return has == (c.Want != 0)
	case CondClanPosition:
		return compare(c.Op, w.ClanPosition(p.Source), c.Want)
	case CondClanContribution:
		return compare(c.Op, w.ClanContribution(p.Source), c.Want)
	case CondClanLevel:
		clan, has := w.ClanOf(p.Source)
		return has && compare(c.Op, w.ClanLevel(clan), c.Want)
	case CondClanPoints:
		clan, has := w.ClanOf(p.Source)
		return has && compare(c.Op, w.ClanPoints(clan), c.Want)
	case CondClanMoney:
		clan, has := w.ClanOf(p.Source)
		return has && compare(c.Op, w.ClanMoney(clan), c.Want)
	case CondClanMemberCount:
		clan, has := w.ClanOf(p.Source)
		return has && compare(c.Op, w.ClanMemberCount(clan), c.Want)
	case CondClanSkill:
		clan, has := w.ClanOf(p.Source)
		return has && w.ClanSkillLearned(clan, c.Key)
	default:
		return false
	}
}

// Trigger is conditions + rewards + the failure chain (spec.md §4.7).
type Trigger struct {
	Name       string
	Conditions []Condition
	Rewards    []Reward
	OnFail     string // next_trigger_name followed when a condition fails
}

// Result reports what a trigger run did, for the quest phase to chain
// on (OnFail or a reward-set next trigger) and for the egress phase to
// broadcast QuestTriggerResult.
type Result struct {
	Passed bool
	Next   string
}

// Run evaluates a trigger's conditions in order, short-circuiting on the
// first failure, then fires rewards in order (spec.md §4.7: "all
// conditions pass => all rewards fire in order").
func Run(t Trigger, w World, m Mutator, p *QuestParameters) Result {
	for _, c := range t.Conditions {
		if !Evaluate(c, w, p) {
			return Result{Passed: false, Next: t.OnFail}
		}
	}
	p.NextTriggerName = ""
	for _, r := range t.Rewards {
		Apply(r, w, m, p)
	}
	return Result{Passed: true, Next: p.NextTriggerName}
}
