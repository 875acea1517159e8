// Package game is the simulation orchestrator: it owns every component
// store and the inter-phase event queues, and registers one tick.System
// per phase that delegates to the pure packages (command, combat, skill,
// status, spawn, ai, quest, party, visibility, save) built around spec.md
// §4.1's tick. Nothing in the pure packages imports this one — the
// dependency runs one way, the way the teacher's coresys.System
// implementations depend on world.State rather than the reverse.
package game

import (
	"context"

	"github.com/novaspire/worldcore/internal/combat"
	"github.com/novaspire/worldcore/internal/component"
	"github.com/novaspire/worldcore/internal/ecs"
	"github.com/novaspire/worldcore/internal/evq"
	"github.com/novaspire/worldcore/internal/grid"
	"github.com/novaspire/worldcore/internal/inventory"
	netpkg "github.com/novaspire/worldcore/internal/net"
	"github.com/novaspire/worldcore/internal/party"
	"github.com/novaspire/worldcore/internal/save"
	"github.com/novaspire/worldcore/internal/skill"
	"github.com/novaspire/worldcore/internal/tick"
	"github.com/novaspire/worldcore/internal/visibility"
)

// Sim holds the live world: the entity pool, every component store, the
// spatial grid, and the queues phases communicate through.
type Sim struct {
	World *ecs.World
	Grid  *grid.Grid

	Positions   *ecs.Store[component.Position]
	Clients     *ecs.Store[component.ClientEntity]
	Commands    *ecs.Store[component.Command]
	NextCmds    *ecs.Store[component.NextCommand]
	Abilities   *ecs.Store[component.AbilityValues]
	Vitals      *ecs.Store[component.Vitals]
	Characters  *ecs.Store[component.Character]
	Inventories *ecs.Store[component.Inventory]
	Equipment   *ecs.Store[component.Equipment]
	Effects     *ecs.Store[component.StatusEffects]
	Cooldowns   *ecs.Store[component.Cooldowns]
	Sources     *ecs.Store[component.DamageSources]
	Quests      *ecs.Store[component.QuestState]
	Observers   *ecs.Store[grid.Observer]
	Drops       *ecs.Store[inventory.Drop]
	Memberships *ecs.Store[party.Membership]
	Casts       *ecs.Store[SkillCast]
	MonsterAI   *ecs.Store[MonsterBrain]
	GuardAI     *ecs.Store[GuardBrain]

	Damage    *evq.Queue[combat.DamageEvent]
	Triggers  *evq.Queue[QuestTriggerEvent]
	Egress    *evq.Queue[EgressMessage]
	SaveQueue *evq.Queue[ecs.EntityID]

	Parties    *PartyDirectory
	Spawns     *SpawnState
	SpawnQueue []SpawnRequest
	Skills     map[uint32]skill.Template
	Sessions   *netpkg.Registry

	SavePool *save.Pool
}

// EgressMessage is one phase-21 outbound item queued for delivery (spec.md
// phase 21 "flush pending per-entity/zone/broadcast messages"); the actual
// wire encoding is outside this module's scope. Mode/ZoneID/Target mirror
// visibility.Pending's routing predicates; a phase pushing a message picks
// whichever of ZoneID/Target its RouteMode needs and leaves the rest zero.
type EgressMessage struct {
	Mode   visibility.RouteMode
	ZoneID uint32
	Target ecs.EntityID
	Body   any
}

// NewSim wires every store into the shared registry so entity destruction
// clears all of them at once, and builds the empty queues each phase
// drains or fills.
func NewSim(writer save.Writer, saveConcurrency int) *Sim {
	s := &Sim{
		World:       ecs.NewWorld(),
		Grid:        grid.NewGrid(),
		Positions:   ecs.NewStore[component.Position](),
		Clients:     ecs.NewStore[component.ClientEntity](),
		Commands:    ecs.NewStore[component.Command](),
		NextCmds:    ecs.NewStore[component.NextCommand](),
		Abilities:   ecs.NewStore[component.AbilityValues](),
		Vitals:      ecs.NewStore[component.Vitals](),
		Characters:  ecs.NewStore[component.Character](),
		Inventories: ecs.NewStore[component.Inventory](),
		Equipment:   ecs.NewStore[component.Equipment](),
		Effects:     ecs.NewStore[component.StatusEffects](),
		Cooldowns:   ecs.NewStore[component.Cooldowns](),
		Sources:     ecs.NewStore[component.DamageSources](),
		Quests:      ecs.NewStore[component.QuestState](),
		Observers:   ecs.NewStore[grid.Observer](),
		Drops:       ecs.NewStore[inventory.Drop](),
		Memberships: ecs.NewStore[party.Membership](),
		Casts:       ecs.NewStore[SkillCast](),
		MonsterAI:   ecs.NewStore[MonsterBrain](),
		GuardAI:     ecs.NewStore[GuardBrain](),
		Damage:      evq.NewQueue[combat.DamageEvent](),
		Triggers:    evq.NewQueue[QuestTriggerEvent](),
		Egress:      evq.NewQueue[EgressMessage](),
		SaveQueue:   evq.NewQueue[ecs.EntityID](),
		Parties:     NewPartyDirectory(),
		Spawns:      NewSpawnState(),
		Skills:      make(map[uint32]skill.Template),
		Sessions:    netpkg.NewRegistry(),
		SavePool:    save.NewPool(saveConcurrency, writer),
	}
	for _, r := range []ecs.Removable{
		s.Positions, s.Clients, s.Commands, s.NextCmds, s.Abilities, s.Vitals, s.Characters,
		s.Inventories, s.Equipment, s.Effects, s.Cooldowns, s.Sources, s.Quests, s.Observers,
		s.Drops, s.Memberships, s.Casts, s.MonsterAI, s.GuardAI,
	} {
		s.World.Registry().Register(r)
	}
	return s
}

// NewScheduler builds the 22-phase tick.Scheduler wired against this Sim.
func NewScheduler(s *Sim, ctx context.Context) *tick.Scheduler {
	sched := tick.NewScheduler()
	for _, sys := range phaseSystems(s, ctx) {
		sched.Register(sys)
	}
	return sched
}
