package game

import (
	"github.com/novaspire/worldcore/internal/component"
	"github.com/novaspire/worldcore/internal/ecs"
	"github.com/novaspire/worldcore/internal/inventory"
	"github.com/novaspire/worldcore/internal/party"
	"github.com/novaspire/worldcore/internal/quest"
)

// Ability keys the quest World/Mutator adapter exposes to
// CondAbilityCompare / RewardAbilitySet and friends (spec.md §4.7's
// "ability id" is opaque to the evaluator; this orchestrator is free to
// assign the numbering).
const (
	AbilityKeyLevel AbilityKey = iota + 1
	AbilityKeyHP
	AbilityKeyMP
	AbilityKeyMaxHealth
	AbilityKeyMaxMana
	AbilityKeyAttack
	AbilityKeyDefence
	AbilityKeyStr
	AbilityKeyDex
	AbilityKeyCon
	AbilityKeyWis
	AbilityKeyCha
	AbilityKeyIntel
)

type AbilityKey = uint32

// questWorld adapts Sim's component stores to quest.World and
// quest.Mutator so PhaseQuest can call quest.Run without the pure quest
// package importing anything about entities or components (spec.md §4.7:
// "World is the read surface, Mutator the write surface").
type questWorld struct {
	s *Sim
}

func newQuestWorld(s *Sim) *questWorld { return &questWorld{s: s} }

func (w *questWorld) AbilityValue(e ecs.EntityID, key uint32) int64 {
	ch, hasChar := w.s.Characters.Get(e)
	ab, hasAb := w.s.Abilities.Get(e)
	v, hasV := w.s.Vitals.Get(e)
	switch key {
	case AbilityKeyLevel:
		if hasChar {
			return int64(ch.Level)
		}
	case AbilityKeyHP:
		if hasV {
			return int64(v.HP)
		}
	case AbilityKeyMP:
		if hasV {
			return int64(v.MP)
		}
	case AbilityKeyMaxHealth:
		if hasAb {
			return int64(ab.MaxHealth)
		}
	case AbilityKeyMaxMana:
		if hasAb {
			return int64(ab.MaxMana)
		}
	case AbilityKeyAttack:
		if hasAb {
			return int64(ab.Attack)
		}
	case AbilityKeyDefence:
		if hasAb {
			return int64(ab.Defence)
		}
	case AbilityKeyStr:
		if hasChar {
			return int64(ch.Str)
		}
	case AbilityKeyDex:
		if hasChar {
			return int64(ch.Dex)
		}
	case AbilityKeyCon:
		if hasChar {
			return int64(ch.Con)
		}
	case AbilityKeyWis:
		if hasChar {
			return int64(ch.Wis)
		}
	case AbilityKeyCha:
		if hasChar {
			return int64(ch.Cha)
		}
	case AbilityKeyIntel:
		if hasChar {
			return int64(ch.Intel)
		}
	}
	return 0
}

func (w *questWorld) HasItem(e ecs.EntityID, itemType uint32, questPage bool) bool {
	inv, ok := w.s.Inventories.Get(e)
	if !ok {
		return false
	}
	pages := []component.InventoryPage{component.PageQuest}
	if !questPage {
		pages = []component.InventoryPage{component.PageEquipment, component.PageConsumables, component.PageMaterials, component.PageVehicles}
	}
	for _, p := range pages {
		for _, slot := range inv.PageSlots(p) {
			if slot.Item != nil && slot.Item.ItemType == itemType {
				return true
			}
		}
	}
	return false
}

func (w *questWorld) QuestSlot(e ecs.EntityID, questID uint32) (int, bool) {
	qs, ok := w.s.Quests.Get(e)
	if !ok {
		return 0, false
	}
	slot := qs.FindByQuestID(questID)
	return slot, slot >= 0
}

func (w *questWorld) GlobalSwitch(e ecs.EntityID, bit uint32) bool {
	qs, ok := w.s.Quests.Get(e)
	if !ok {
		return false
	}
	return qs.GlobalSwitches&(1<<bit) != 0
}

func (w *questWorld) ZoneID(e ecs.EntityID) uint32 {
	pos, ok := w.s.Positions.Get(e)
	if !ok {
		return 0
	}
	return pos.ZoneID
}

func (w *questWorld) QuestVar(e ecs.EntityID, questID uint32, idx uint32) int64 {
	qs, ok := w.s.Quests.Get(e)
	if !ok || int(idx) >= len(component.ActiveQuest{}.Variables) {
		return 0
	}
	slot := qs.FindByQuestID(questID)
	if slot < 0 {
		return 0
	}
	return int64(qs.Slots[slot].Variables[idx])
}

func (w *questWorld) EpisodeVar(e ecs.EntityID, id uint32) int64 {
	qs, ok := w.s.Quests.Get(e)
	if !ok {
		return 0
	}
	return int64(qs.EpisodeVars[id])
}

func (w *questWorld) JobVar(e ecs.EntityID, id uint32) int64 {
	qs, ok := w.s.Quests.Get(e)
	if !ok {
		return 0
	}
	return int64(qs.JobVars[id])
}

func (w *questWorld) PlanetVar(e ecs.EntityID, id uint32) int64 {
	qs, ok := w.s.Quests.Get(e)
	if !ok {
		return 0
	}
	return int64(qs.PlanetVars[id])
}

func (w *questWorld) UnionVar(e ecs.EntityID, id uint32) int64 {
	qs, ok := w.s.Quests.Get(e)
	if !ok {
		return 0
	}
	return int64(qs.UnionVars[id])
}

// WorldMinuteOfDay and WorldDayOfWeek have no backing calendar service in
// this module (spec.md Non-goals excludes static game-data / day-night
// cycle content); time-window quest conditions always read the epoch.
func (w *questWorld) WorldMinuteOfDay() int64 { return 0 }
func (w *questWorld) WorldDayOfWeek() int64   { return 0 }

// SkillLearned has no per-character learned-skill ledger in this module
// (spell book management lives in the session/persistence layer this
// core doesn't own); quests gating on it always see "not learned".
func (w *questWorld) SkillLearned(e ecs.EntityID, skillID uint32) bool { return false }

func (w *questWorld) TeamNumber(e ecs.EntityID) int64 {
	ce, ok := w.s.Clients.Get(e)
	if !ok {
		return 0
	}
	return int64(ce.Kind)
}

func (w *questWorld) ServerChannel() int64 { return 0 }

func (w *questWorld) NPCVar(npc ecs.EntityID, idx uint32) int64 { return 0 }

func (w *questWorld) ObjectVar(e ecs.EntityID, idx uint32) int64 { return 0 }

func (w *questWorld) ObjectZoneTicks(e ecs.EntityID) int64 { return 0 }

func (w *questWorld) Distance(a, b ecs.EntityID) int64 {
	pa, okA := w.s.Positions.Get(a)
	pb, okB := w.s.Positions.Get(b)
	if !okA || !okB {
		return 1 << 30
	}
	return int64(pa.DistanceSq(*pb))
}

func (w *questWorld) partyOf(e ecs.EntityID) (*party.Party, bool) {
	m, ok := w.s.Memberships.Get(e)
	if !ok || !m.HasParty {
		return nil, false
	}
	return w.s.Parties.Get(m.PartyID)
}

func (w *questWorld) PartyIsLeader(e ecs.EntityID) bool {
	p, ok := w.partyOf(e)
	return ok && p.LeaderID == e
}

func (w *questWorld) PartyLevel(e ecs.EntityID) int64 {
	p, ok := w.partyOf(e)
	if !ok {
		return 0
	}
	ch, _ := w.s.Characters.Get(p.LeaderID)
	if ch == nil {
		return 0
	}
	return int64(ch.Level)
}

func (w *questWorld) PartyMemberCount(e ecs.EntityID) int64 {
	p, ok := w.partyOf(e)
	if !ok {
		return 0
	}
	return int64(len(p.Members))
}

// Clan conditions have no live clan aggregate in the simulation core —
// clan membership and treasury are persistence-layer state
// (internal/persist.ClanRepo) this module never loads into components,
// so every clan-keyed quest condition reads as absent.
func (w *questWorld) ClanOf(e ecs.EntityID) (uint32, bool)     { return 0, false }
func (w *questWorld) ClanPosition(e ecs.EntityID) int64        { return 0 }
func (w *questWorld) ClanContribution(e ecs.EntityID) int64    { return 0 }
func (w *questWorld) ClanLevel(clan uint32) int64              { return 0 }
func (w *questWorld) ClanPoints(clan uint32) int64             { return 0 }
func (w *questWorld) ClanMoney(clan uint32) int64              { return 0 }
func (w *questWorld) ClanMemberCount(clan uint32) int64        { return 0 }
func (w *questWorld) ClanSkillLearned(clan uint32, id uint32) bool { return false }

// questMutator is the write half of the same adapter.
type questMutator struct {
	s *Sim
}

func newQuestMutator(s *Sim) *questMutator { return &questMutator{s: s} }

func (m *questMutator) SetAbility(e ecs.EntityID, key uint32, v int64) {
	ch, hasChar := m.s.Characters.Get(e)
	vit, hasV := m.s.Vitals.Get(e)
	switch key {
	case AbilityKeyHP:
		if hasV {
			vit.HP = int32(v)
		}
	case AbilityKeyMP:
		if hasV {
			vit.MP = int32(v)
		}
	case AbilityKeyStr:
		if hasChar {
			ch.Str = int16(v)
			m.markDirty(e)
		}
	case AbilityKeyDex:
		if hasChar {
			ch.Dex = int16(v)
			m.markDirty(e)
		}
	case AbilityKeyCon:
		if hasChar {
			ch.Con = int16(v)
			m.markDirty(e)
		}
	case AbilityKeyWis:
		if hasChar {
			ch.Wis = int16(v)
			m.markDirty(e)
		}
	case AbilityKeyCha:
		if hasChar {
			ch.Cha = int16(v)
			m.markDirty(e)
		}
	case AbilityKeyIntel:
		if hasChar {
			ch.Intel = int16(v)
			m.markDirty(e)
		}
	}
}

func (m *questMutator) markDirty(e ecs.EntityID) {
	if ab, ok := m.s.Abilities.Get(e); ok {
		ab.Dirty = true
	}
}

func (m *questMutator) AddItem(e ecs.EntityID, itemType uint32, amount int64, questPage bool) bool {
	inv, ok := m.s.Inventories.Get(e)
	if !ok || amount <= 0 {
		return false
	}
	page := component.PageMaterials
	if questPage {
		page = component.PageQuest
	}
	residual := addStackable(inv, page, itemType, uint32(amount))
	return residual == 0
}

func (m *questMutator) RemoveItem(e ecs.EntityID, itemType uint32, amount int64, questPage bool) bool {
	inv, ok := m.s.Inventories.Get(e)
	if !ok || amount <= 0 {
		return false
	}
	page := component.PageMaterials
	if questPage {
		page = component.PageQuest
	}
	remaining := uint32(amount)
	slots := inv.PageSlots(page)
	for i := range slots {
		slot := &slots[i]
		if slot.Item == nil || slot.Item.ItemType != itemType {
			continue
		}
		remaining -= inventory.TakeQuantity(slot, remaining)
		if remaining == 0 {
			return true
		}
	}
	return remaining == 0
}

func (m *questMutator) AddSkill(e ecs.EntityID, skillID uint32)    {}
func (m *questMutator) RemoveSkill(e ecs.EntityID, skillID uint32) {}

func (m *questMutator) ResetBasicStats(e ecs.EntityID) {
	if ch, ok := m.s.Characters.Get(e); ok {
		ch.Str, ch.Dex, ch.Con, ch.Wis, ch.Cha, ch.Intel = 1, 1, 1, 1, 1, 1
		m.markDirty(e)
	}
}

func (m *questMutator) ResetSkills(e ecs.EntityID) {}

func (m *questMutator) SetSwitch(e ecs.EntityID, bit uint32, on bool) {
	qs, ok := m.s.Quests.Get(e)
	if !ok {
		return
	}
	if on {
		qs.GlobalSwitches |= 1 << bit
	} else {
		qs.GlobalSwitches &^= 1 << bit
	}
}

func (m *questMutator) GrantXP(e ecs.EntityID, amount int64) {
	if ch, ok := m.s.Characters.Get(e); ok {
		ch.Exp += amount
	}
}

func (m *questMutator) GrantItem(e ecs.EntityID, itemType uint32, amount int64) {
	m.AddItem(e, itemType, amount, false)
}

func (m *questMutator) GrantMoney(e ecs.EntityID, amount int64) {
	if inv, ok := m.s.Inventories.Get(e); ok {
		inv.Money += amount
	}
}

func (m *questMutator) Teleport(e ecs.EntityID, zoneID uint32, x, y, z float32) {
	if pos, ok := m.s.Positions.Get(e); ok {
		pos.X, pos.Y, pos.Z, pos.ZoneID = x, y, z, zoneID
	}
}

func (m *questMutator) SetQuestVar(e ecs.EntityID, questID, idx uint32, v int64) {
	qs, ok := m.s.Quests.Get(e)
	if !ok || int(idx) >= len(component.ActiveQuest{}.Variables) {
		return
	}
	slot := qs.FindByQuestID(questID)
	if slot < 0 {
		return
	}
	qs.Slots[slot].Variables[idx] = int32(v)
}

func (m *questMutator) SetQuestSwitch(e ecs.EntityID, questID, idx uint32, on bool) {
	qs, ok := m.s.Quests.Get(e)
	if !ok || int(idx) >= len(component.ActiveQuest{}.Switches) {
		return
	}
	slot := qs.FindByQuestID(questID)
	if slot < 0 {
		return
	}
	qs.Slots[slot].Switches[idx] = on
}

func (m *questMutator) SetEpisodeVar(e ecs.EntityID, id uint32, v int64) {
	if qs, ok := m.s.Quests.Get(e); ok {
		qs.EpisodeVars[id] = int32(v)
	}
}

func (m *questMutator) SetJobVar(e ecs.EntityID, id uint32, v int64) {
	if qs, ok := m.s.Quests.Get(e); ok {
		qs.JobVars[id] = int32(v)
	}
}

func (m *questMutator) SetPlanetVar(e ecs.EntityID, id uint32, v int64) {
	if qs, ok := m.s.Quests.Get(e); ok {
		qs.PlanetVars[id] = int32(v)
	}
}

func (m *questMutator) SetUnionVar(e ecs.EntityID, id uint32, v int64) {
	if qs, ok := m.s.Quests.Get(e); ok {
		qs.UnionVars[id] = int32(v)
	}
}

func (m *questMutator) SetHPPercent(e ecs.EntityID, pct int64) {
	v, okV := m.s.Vitals.Get(e)
	ab, okAb := m.s.Abilities.Get(e)
	if okV && okAb {
		v.HP = int32(int64(ab.MaxHealth) * pct / 100)
	}
}

func (m *questMutator) SetMPPercent(e ecs.EntityID, pct int64) {
	v, okV := m.s.Vitals.Get(e)
	ab, okAb := m.s.Abilities.Get(e)
	if okV && okAb {
		v.MP = int32(int64(ab.MaxMana) * pct / 100)
	}
}

func (m *questMutator) ObjectVarOp(e ecs.EntityID, idx uint32, op quest.CompareOp, operand int64) {}

func (m *questMutator) SpawnMonster(templateID uint32, team int64, zoneID uint32, x, y, z float32) {
	m.s.SpawnQueue = append(m.s.SpawnQueue, SpawnRequest{Template: templateID, ZoneID: zoneID, X: x, Y: y, Z: z})
}

func (m *questMutator) ClearAllSwitches(e ecs.EntityID) {
	if qs, ok := m.s.Quests.Get(e); ok {
		qs.GlobalSwitches = 0
	}
}

func (m *questMutator) ClearSwitchGroup(e ecs.EntityID, group uint32) {
	qs, ok := m.s.Quests.Get(e)
	if !ok {
		return
	}
	qs.GlobalSwitches &^= uint64(0xFFFFFFFF) << (group * 32)
}

func (m *questMutator) SetTeamNumber(e ecs.EntityID, team int64) {}

func (m *questMutator) SetZoneSpawnEnabled(zoneID uint32, enabled bool) {
	if sp, ok := m.s.Spawns.Points[zoneID]; ok {
		sp.Enabled = enabled
	}
}

func (m *questMutator) ToggleZoneSpawn(zoneID uint32) {
	if sp, ok := m.s.Spawns.Points[zoneID]; ok {
		sp.Enabled = !sp.Enabled
	}
}

func (m *questMutator) NPCMessage(npc ecs.EntityID, mode string, text string) {
	m.s.Egress.Push(EgressMessage{Target: npc, Body: text})
}

// Clan mutations are no-ops for the same reason ClanOf always reports
// absent: the live clan aggregate is persistence-layer state outside
// this module's component stores.
func (m *questMutator) ClanLevelUp(clan uint32)                    {}
func (m *questMutator) ClanMoney(clan uint32, delta int64)         {}
func (m *questMutator) ClanPoints(clan uint32, delta int64)        {}
func (m *questMutator) ClanSkillAdd(clan uint32, skillID uint32)   {}

func addStackable(inv *component.Inventory, page component.InventoryPage, itemType uint32, qty uint32) uint32 {
	return inventory.TryAddStackable(inv.PageSlots(page), itemType, itemType, qty)
}
