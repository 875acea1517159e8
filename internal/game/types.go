package game

import (
	"github.com/novaspire/worldcore/internal/ai"
	"github.com/novaspire/worldcore/internal/component"
	"github.com/novaspire/worldcore/internal/ecs"
	"github.com/novaspire/worldcore/internal/party"
	"github.com/novaspire/worldcore/internal/quest"
	"github.com/novaspire/worldcore/internal/skill"
	"github.com/novaspire/worldcore/internal/spawn"
)

// MonsterBrain is a monster entity's AI bookkeeping: the hate table plus
// the template-derived constants ai.DecideMonster needs and cannot infer
// from components alone (spec.md §4.5, §6 static data "monsters (by
// template id)"). It lives in this package, not internal/component,
// because it references ai.HateTable directly.
type MonsterBrain struct {
	Hate         ai.HateTable
	IsAggressive bool
	AggroRange   float32
	AttackRange  float32
	SkillID      uint32
	SpawnPoint   uint32 // originating spawn.Point.ID; 0 for quest-spawned monsters, which never auto-replenish
}

// GuardBrain is a guard entity's AI bookkeeping (spec.md §4.5 guard
// branch): leash/scan ranges and the spawn point it returns to.
type GuardBrain struct {
	SpawnAt    component.Position
	LeashRange float32
	ScanRange  float32
}

// SkillCast holds the per-cast context skill.CastContext needs beyond
// what Command already carries, keyed by the caster entity for the
// duration of one CastSkill command.
type SkillCast struct {
	Template skill.Template
	Context  skill.CastContext
}

// PartyDirectory owns every live party by ID; parties are not
// per-entity components (a party has no single owning entity), so they
// are not modeled as an ecs.Store (spec.md §9: "Party is an independent
// aggregate, not an entity component").
type PartyDirectory struct {
	parties map[uint64]*party.Party
	nextID  uint64
}

func NewPartyDirectory() *PartyDirectory {
	return &PartyDirectory{parties: make(map[uint64]*party.Party)}
}

func (d *PartyDirectory) Get(id uint64) (*party.Party, bool) {
	p, ok := d.parties[id]
	return p, ok
}

func (d *PartyDirectory) Exists(id uint64) bool {
	_, ok := d.parties[id]
	return ok
}

func (d *PartyDirectory) Create(leader ecs.EntityID) *party.Party {
	d.nextID++
	p := &party.Party{
		ID:       d.nextID,
		LeaderID: leader,
		Members:  []party.Member{{Entity: leader, Online: true}},
	}
	d.parties[p.ID] = p
	return p
}

func (d *PartyDirectory) Disband(id uint64) {
	delete(d.parties, id)
}

// Each visits every live party, for the per-tick repair/loot barrier in
// PhasePartyClan.
func (d *PartyDirectory) Each(fn func(*party.Party)) {
	for _, p := range d.parties {
		fn(p)
	}
}

// SpawnState owns one zone's spawn points and the despawn/respawn timer
// queues PhaseSpawning drives every tick (spec.md §4.5 point 6, phase 7).
type SpawnState struct {
	Points   map[uint32]*spawn.Point
	Despawns []spawn.DespawnTimer
	Respawns []spawn.RespawnTimer
}

func NewSpawnState() *SpawnState {
	return &SpawnState{Points: make(map[uint32]*spawn.Point)}
}

// SpawnRequest is one roll result waiting for PhaseSpawning to actually
// materialize an entity; kept as plain data so spawning a monster stays
// a simulation-thread-only operation (spec.md §5).
type SpawnRequest struct {
	Point    uint32
	Template uint32
	Level    int32
	ZoneID   uint32
	X, Y, Z  float32
}

// QuestTriggerEvent carries a trigger name to evaluate plus the entity
// that caused it; quest.Trigger itself has no entity association, and
// PhaseQuest needs one to stamp QuestParameters.Source before calling
// quest.Run (spec.md §4.7).
type QuestTriggerEvent struct {
	Source  ecs.EntityID
	Trigger quest.Trigger
	Params  quest.QuestParameters
}
