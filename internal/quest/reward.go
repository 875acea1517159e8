package quest

import "github.com/novaspire/worldcore/internal/ecs"

// RewardKind is the closed set spec.md §4.7 names.
type RewardKind int

const (
	RewardAbilitySet RewardKind = iota
	RewardAbilityAdd
	RewardAbilitySub
	RewardAbilityZero
	RewardAbilityOne
	RewardItemAdd
	RewardItemRemove
	RewardSkillAdd
	RewardSkillRemove
	RewardResetBasicStats
	RewardResetSkills
	RewardSwitchSet
	RewardSwitchClear
	RewardCalcXP
	RewardCalcItem
	RewardCalcMoney
	RewardTeleport
	RewardChainTrigger
	RewardQuestVarSet
	RewardQuestSwitchSet
	RewardEpisodeVarSet
	RewardJobVarSet
	RewardPlanetVarSet
	RewardUnionVarSet
	RewardHPPercent
	RewardMPPercent
	RewardObjectVarOp
	RewardSpawnMonster
	RewardClearAllSwitches
	RewardClearSwitchGroup
	RewardSetTeamNumber
	RewardZoneSpawnToggle
	RewardNPCMessage
	RewardClanLevelUp
	RewardClanMoney
	RewardClanPoints
	RewardClanSkill
)

// RewardEquation is the published formula spec.md §4.7 references for
// calculated XP/item/money rewards: "equation_id, base value, level,
// charm, fame, world rate".
type RewardEquation struct {
	EquationID uint32
	Base       int64
	Level      int64
	Charm      int64
	Fame       int64
	WorldRate  float64
}

// Apply computes the published value for one RewardEquation. Equation 0
// is the flat passthrough; others are published curves over the same
// inputs, selected by id.
func (e RewardEquation) Apply() int64 {
	switch e.EquationID {
	case 0:
		return e.Base
	case 1:
		return int64(float64(e.Base+e.Level*10+e.Charm+e.Fame) * e.WorldRate)
	default:
		return int64(float64(e.Base) * e.WorldRate)
	}
}

// Reward is one closed-variant mutation. As with Condition, only the
// fields relevant to Kind are populated.
type Reward struct {
	Kind     RewardKind
	Key      uint32
	Amount   int64
	Str      string
	Equation RewardEquation
	ZoneID   uint32
	Team     int64
}

// Mutator is the write surface reward application needs. It is kept
// separate from World so conditions can never reach it.
type Mutator interface {
	SetAbility(e ecs.EntityID, key uint32, v int64)
	AddItem(e ecs.EntityID, itemType uint32, amount int64, questPage bool) bool
	RemoveItem(e ecs.EntityID, itemType uint32, amount int64, questPage bool) bool
	AddSkill(e ecs.EntityID, skillID uint32)
	RemoveSkill(e ecs.EntityID, skillID uint32)
	ResetBasicStats(e ecs.EntityID)
	ResetSkills(e ecs.EntityID)
	SetSwitch(e ecs.EntityID, bit uint32, on bool)
	GrantXP(e ecs.EntityID, amount int64)
	GrantItem(e ecs.EntityID, itemType uint32, amount int64)
	GrantMoney(e ecs.EntityID, amount int64)
	Teleport(e ecs.EntityID, zoneID uint32, x, y, z float32)
	SetQuestVar(e ecs.EntityID, questID, idx uint32, v int64)
	SetQuestSwitch(e ecs.EntityID, questID, idx uint32, on bool)
	SetEpisodeVar(e ecs.EntityID, id uint32, v int64)
	SetJobVar(e ecs.EntityID, id uint32, v int64)
	SetPlanetVar(e ecs.EntityID, id uint32, v int64)
	SetUnionVar(e ecs.EntityID, id uint32, v int64)
	SetHPPercent(e ecs.EntityID, pct int64)
	SetMPPercent(e ecs.EntityID, pct int64)
	ObjectVarOp(e ecs.EntityID, idx uint32, op CompareOp, operand int64)
	SpawnMonster(templateID uint32, team int64, zoneID uint32, x, y, z float32)
	ClearAllSwitches(e ecs.EntityID)
	ClearSwitchGroup(e ecs.EntityID, group uint32) // group of 32 switches
	SetTeamNumber(e ecs.EntityID, team int64)      // unique per client-entity id
	SetZoneSpawnEnabled(zoneID uint32, enabled bool)
	ToggleZoneSpawn(zoneID uint32)
	NPCMessage(npc ecs.EntityID, mode string, text string)
	ClanLevelUp(clan uint32)
	ClanMoney(clan uint32, delta int64)
	ClanPoints(clan uint32, delta int64)
	ClanSkillAdd(clan uint32, skillID uint32)
}

// Apply fires one Reward's mutation (spec.md §4.7: "rewards mutate"). w
// supplies the current value for the delta-style ability rewards
// (add/sub), which read before they write; zero and one write a constant.
func Apply(r Reward, w World, m Mutator, p *QuestParameters) {
	switch r.Kind {
	case RewardAbilitySet:
		m.SetAbility(p.Source, r.Key, r.Amount)
	case RewardAbilityAdd:
		m.SetAbility(p.Source, r.Key, w.AbilityValue(p.Source, r.Key)+r.Amount)
	case RewardAbilitySub:
		m.SetAbility(p.Source, r.Key, w.AbilityValue(p.Source, r.Key)-r.Amount)
	case RewardAbilityZero:
		m.SetAbility(p.Source, r.Key, 0)
	case RewardAbilityOne:
		m.SetAbility(p.Source, r.Key, 1)
	case RewardItemAdd:
		m.AddItem(p.Source, r.Key, r.Amount, r.Amount < 0)
	case RewardItemRemove:
		m.RemoveItem(p.Source, r.Key, r.Amount, false)
	case RewardSkillAdd:
		m.AddSkill(p.Source, r.Key)
	case RewardSkillRemove:
		m.RemoveSkill(p.Source, r.Key)
	case RewardResetBasicStats:
		m.ResetBasicStats(p.Source)
	case RewardResetSkills:
		m.ResetSkills(p.Source)
	case RewardSwitchSet:
		m.SetSwitch(p.Source, r.Key, true)
	case RewardSwitchClear:
		m.SetSwitch(p.Source, r.Key, false)
	case RewardCalcXP:
		m.GrantXP(p.Source, r.Equation.Apply())
	case RewardCalcItem:
		m.GrantItem(p.Source, r.Key, r.Equation.Apply())
	case RewardCalcMoney:
		m.GrantMoney(p.Source, r.Equation.Apply())
	case RewardTeleport:
		m.Teleport(p.Source, r.ZoneID, 0, 0, 0)
	case RewardChainTrigger:
		p.NextTriggerName = r.Str
	case RewardQuestVarSet:
		m.SetQuestVar(p.Source, r.Key, uint32(r.Amount), r.Amount)
	case RewardQuestSwitchSet:
		m.SetQuestSwitch(p.Source, r.Key, uint32(r.Amount), true)
	case RewardEpisodeVarSet:
		m.SetEpisodeVar(p.Source, r.Key, r.Amount)
	case RewardJobVarSet:
		m.SetJobVar(p.Source, r.Key, r.Amount)
	case RewardPlanetVarSet:
		m.SetPlanetVar(p.Source, r.Key, r.Amount)
	case RewardUnionVarSet:
		m.SetUnionVar(p.Source, r.Key, r.Amount)
	case RewardHPPercent:
		m.SetHPPercent(p.Source, r.Amount)
	case RewardMPPercent:
		m.SetMPPercent(p.Source, r.Amount)
	case RewardObjectVarOp:
		m.ObjectVarOp(p.Source, r.Key, CompareOp(r.Amount), r.Amount)
	case RewardSpawnMonster:
		m.SpawnMonster(r.Key, r.Team, r.ZoneID, 0, 0, 0)
	case RewardClearAllSwitches:
		m.ClearAllSwitches(p.Source)
	case RewardClearSwitchGroup:
		m.ClearSwitchGroup(p.Source, r.Key)
	case RewardSetTeamNumber:
		m.SetTeamNumber(p.Source, r.Team)
	case RewardZoneSpawnToggle:
		m.ToggleZoneSpawn(r.ZoneID)
	case RewardNPCMessage:
		m.NPCMessage(p.SelectedNPC, r.Str, r.Str)
	case RewardClanLevelUp:
		m.ClanLevelUp(r.Key)
	case RewardClanMoney:
		m.ClanMoney(r.Key, r.Amount)
	case RewardClanPoints:
		m.ClanPoints(r.Key, r.Amount)
	case RewardClanSkill:
		m.ClanSkillAdd(r.Key, uint32(r.Amount))
	}
}
