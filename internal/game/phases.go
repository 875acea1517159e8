package game

import (
	"context"
	"math/rand"
	"time"

	"github.com/novaspire/worldcore/internal/ai"
	"github.com/novaspire/worldcore/internal/combat"
	"github.com/novaspire/worldcore/internal/command"
	"github.com/novaspire/worldcore/internal/component"
	"github.com/novaspire/worldcore/internal/ecs"
	"github.com/novaspire/worldcore/internal/grid"
	"github.com/novaspire/worldcore/internal/inventory"
	netpkg "github.com/novaspire/worldcore/internal/net"
	"github.com/novaspire/worldcore/internal/party"
	"github.com/novaspire/worldcore/internal/quest"
	"github.com/novaspire/worldcore/internal/save"
	"github.com/novaspire/worldcore/internal/skill"
	"github.com/novaspire/worldcore/internal/spawn"
	"github.com/novaspire/worldcore/internal/status"
	"github.com/novaspire/worldcore/internal/tick"
	"github.com/novaspire/worldcore/internal/visibility"
)

// Constants the static data tables (internal/data, out of this module's
// scope) would otherwise supply per template/skill/zone. Kept as named
// values here rather than magic numbers so their source is obvious.
const (
	dieMotionTicks             = 20
	monsterAttackIntervalTicks = 20
	monsterMoveIntervalTicks   = 10
	monsterRespawnDelayTicks   = 600
	monsterKillXP              = 50
	monsterKillMoneyDrop       = 10
	dropExpireTicks            = 1200
	pickupIdleDurationTicks    = 5
	pickupReachDistSq          = float32(4.0)
)

// phaseSystem adapts a plain function to tick.System for one named phase.
type phaseSystem struct {
	phase tick.Phase
	run   func(dt time.Duration)
}

func (p phaseSystem) Phase() tick.Phase       { return p.phase }
func (p phaseSystem) Update(dt time.Duration) { p.run(dt) }

// phaseSystems builds the 22 registered systems in spec.md §4.1 order.
// Each closure captures Sim and operates over its component stores,
// delegating every decision to the pure packages this orchestrator wires
// together.
func phaseSystems(s *Sim, ctx context.Context) []tick.System {
	var nowTick uint64

	return []tick.System{
		phaseSystem{tick.PhaseClockAdvance, func(dt time.Duration) {
			nowTick++
		}},

		phaseSystem{tick.PhaseIngress, func(dt time.Duration) {
			s.Sessions.Each(func(sess *netpkg.Session) {
				for _, in := range sess.DrainInbound() {
					next := s.NextCmds.GetOrAttach(sess.Entity)
					next.Pending = true
					next.Command = in.Command
				}
			})
		}},

		phaseSystem{tick.PhaseExpiry, func(dt time.Duration) {
			s.World.FlushDestroyQueue()
		}},

		phaseSystem{tick.PhaseStatusEffects, func(dt time.Duration) {
			s.Effects.Each(func(id ecs.EntityID, eff *component.StatusEffects) {
				if ab, ok := s.Abilities.Get(id); ok {
					if v, ok := s.Vitals.Get(id); ok {
						status.RegenTick(eff, v, *ab)
					}
				}
				status.AdvanceExpiry(eff, nowTick)
			})
		}},

		phaseSystem{tick.PhasePassiveRecovery, func(dt time.Duration) {
			s.Vitals.Each(func(id ecs.EntityID, v *component.Vitals) {
				cur, ok := s.Commands.Get(id)
				if !ok || cur.Kind == component.CommandDie {
					return
				}
				ab, ok := s.Abilities.Get(id)
				if !ok {
					return
				}
				status.PassiveRecover(v, *ab, status.PassiveRegenRate{HP: 1, MP: 1})
			})
		}},

		phaseSystem{tick.PhaseAI, func(dt time.Duration) {
			validate := func(id ecs.EntityID) (ai.Candidate, bool) { return aiCandidateFor(s, id) }

			s.MonsterAI.Each(func(id ecs.EntityID, brain *MonsterBrain) {
				pos, ok := s.Positions.Get(id)
				if !ok || !s.World.Alive(id) {
					return
				}
				if v, ok := s.Vitals.Get(id); ok && v.HP <= 0 {
					return
				}
				target, hasTarget := currentAttackTarget(s, id)
				mstate := ai.MonsterState{
					Pos: *pos, Target: target, HasTarget: hasTarget,
					IsAggressive: brain.IsAggressive, AggroRange: brain.AggroRange,
					SkillReady: brain.SkillID != 0, SkillID: brain.SkillID,
				}
				dec := ai.DecideMonster(mstate, &brain.Hate, aiCandidates(s, id, *pos), validate, brain.AttackRange)
				applyAIDecision(s, id, dec)
			})

			s.GuardAI.Each(func(id ecs.EntityID, brain *GuardBrain) {
				pos, ok := s.Positions.Get(id)
				if !ok || !s.World.Alive(id) {
					return
				}
				target, hasTarget := currentAttackTarget(s, id)
				gstate := ai.GuardState{
					Pos: *pos, Target: target, HasTarget: hasTarget,
					SpawnPos: brain.SpawnAt, LeashRange: brain.LeashRange, ScanRange: brain.ScanRange,
				}
				dec := ai.DecideGuard(gstate, aiCandidates(s, id, *pos), validate)
				applyAIDecision(s, id, dec)
			})
		}},

		phaseSystem{tick.PhaseSpawning, func(dt time.Duration) {
			remainingD, readyD := spawn.TickDespawn(s.Spawns.Despawns)
			s.Spawns.Despawns = remainingD
			for _, id := range readyD {
				if brain, ok := s.MonsterAI.Get(id); ok && brain.SpawnPoint != 0 {
					if pt, ok := s.Spawns.Points[brain.SpawnPoint]; ok {
						pt.Count--
						if pt.Count < 0 {
							pt.Count = 0
						}
						s.Spawns.Respawns = append(s.Spawns.Respawns, spawn.RespawnTimer{Point: pt.ID, RemainTick: monsterRespawnDelayTicks})
					}
				}
				s.World.MarkForDestruction(id)
			}

			remainingR, readyR := spawn.TickRespawn(s.Spawns.Respawns)
			s.Spawns.Respawns = remainingR
			for _, pointID := range readyR {
				if pt, ok := s.Spawns.Points[pointID]; ok && pt.NeedsReplenish() {
					rollSpawnPoint(s, pt)
				}
			}

			queued := s.SpawnQueue
			s.SpawnQueue = nil
			for _, req := range queued {
				materializeSpawn(s, req)
			}
		}},

		phaseSystem{tick.PhaseMotionRefresh, func(dt time.Duration) {
			s.Abilities.Each(func(id ecs.EntityID, ab *component.AbilityValues) {
				if ab.Dirty {
					// No animation timings are recomputed: this phase
					// reads the Dirty flag and changes nothing, and no
					// other code refreshes motion timings.
				}
			})
		}},

		phaseSystem{tick.PhaseCommandStep, func(dt time.Duration) {
			s.Commands.Each(func(id ecs.EntityID, cur *component.Command) {
				next := s.NextCmds.GetOrAttach(id)
				command.Promote(cur, next, nowTick)

				if cur.Kind != component.CommandCastSkill {
					return
				}
				if cur.StartTick == nowTick && !cur.SkillResolved {
					admitCastSkill(s, id, cur, nowTick)
					return
				}
				if cast, ok := s.Casts.Get(id); ok && cur.CastSubphase == component.CastCharging {
					if nowTick-cur.StartTick >= uint64(cast.Template.ChargingTicks) {
						cur.CastSubphase = component.CastCasting
					}
				}
			})
		}},

		phaseSystem{tick.PhaseMovement, func(dt time.Duration) {
			s.Commands.Each(func(id ecs.EntityID, cur *component.Command) {
				if cur.Kind != component.CommandMove {
					return
				}
				pos, ok := s.Positions.Get(id)
				if !ok {
					return
				}
				old := *pos
				*pos = command.Step(*pos, cur.MoveTo, 1.0)
				if old.X == pos.X && old.Y == pos.Y {
					return
				}
				ce, ok := s.Clients.Get(id)
				if !ok {
					return
				}
				newSector := grid.Sector(pos.X, pos.Y)
				if newSector != ce.Sector {
					s.Grid.Move(id, ce.Sector, newSector)
					ce.Sector = newSector
				}
			})
		}},

		phaseSystem{tick.PhaseItemDropPickup, func(dt time.Duration) {
			s.Commands.Each(func(id ecs.EntityID, cur *component.Command) {
				if cur.Kind != component.CommandPickupItem {
					return
				}
				drop, ok := s.Drops.Get(cur.PickupTarget)
				if !ok {
					cur.Kind = component.CommandStop
					return
				}
				pickerPos, okP := s.Positions.Get(id)
				dropPos, okD := s.Positions.Get(cur.PickupTarget)
				inReach := okP && okD && pickerPos.DistanceSq(*dropPos) <= pickupReachDistSq
				if inReach && cur.PickupIdleAt == 0 {
					cur.PickupIdleAt = nowTick
				} else if !inReach {
					cur.PickupIdleAt = 0
				}
				if !command.PickupReady(*cur, nowTick, pickupIdleDurationTicks, inReach) {
					return
				}
				attemptPickup(s, id, cur.PickupTarget, drop)
				cur.Kind = component.CommandStop
			})
		}},

		phaseSystem{tick.PhaseCombat, func(dt time.Duration) {
			emitAttackDamage(s, nowTick)
			for _, ev := range s.Damage.Drain() {
				defAlive := s.World.Alive(ev.Defender)
				hp, ok := s.Vitals.Get(ev.Defender)
				if !ok {
					continue
				}
				cur := s.Commands.GetOrAttach(ev.Defender)
				sources, ok := s.Sources.Get(ev.Defender)
				if !ok {
					sources = component.NewDamageSources(8)
					s.Sources.Set(ev.Defender, sources)
				}
				outcome := combat.Resolve(ev, defAlive, &hp.HP, cur, sources, nowTick, dieMotionTicks)
				if outcome.Died {
					onEntityDied(s, ev.Defender, sources, nowTick)
				}
			}
		}},

		phaseSystem{tick.PhaseSkillEffects, func(dt time.Duration) {
			s.Commands.Each(func(id ecs.EntityID, cur *component.Command) {
				if cur.Kind != component.CommandCastSkill || cur.CastSubphase != component.CastCasting || cur.SkillResolved {
					return
				}
				cast, ok := s.Casts.Get(id)
				if !ok {
					cur.SkillResolved = true
					return
				}
				resolveSkillCast(s, id, cur, cast, nowTick)
			})
		}},

		phaseSystem{tick.PhaseItemLife, func(dt time.Duration) {
			// Does nothing: no code consumes weapon or armor life
			// from this tick's hits.
		}},

		phaseSystem{tick.PhaseEquipmentEvents, func(dt time.Duration) {
			s.Abilities.Each(func(id ecs.EntityID, ab *component.AbilityValues) {
				if _, ok := s.Equipment.Get(id); ok {
					ab.Dirty = true
				}
			})
		}},

		phaseSystem{tick.PhaseInventoryUseItem, func(dt time.Duration) {
			// Does nothing: no code resolves use-item consumption.
		}},

		phaseSystem{tick.PhaseQuest, func(dt time.Duration) {
			world := newQuestWorld(s)
			mutator := newQuestMutator(s)
			for _, qte := range s.Triggers.Drain() {
				params := qte.Params
				params.Source = qte.Source
				quest.Run(qte.Trigger, world, mutator, &params)
			}
		}},

		phaseSystem{tick.PhasePartyClan, func(dt time.Duration) {
			s.Memberships.Each(func(id ecs.EntityID, m *party.Membership) {
				party.Validate(m, s.Parties.Exists)
			})
			s.Parties.Each(func(p *party.Party) {
				party.RemoveStaleMembers(p, func(e ecs.EntityID) bool {
					m, ok := s.Memberships.Get(e)
					return ok && m.HasParty && m.PartyID == p.ID
				})
			})
		}},

		phaseSystem{tick.PhaseAbilityRecompute, func(dt time.Duration) {
			s.Abilities.Each(func(id ecs.EntityID, ab *component.AbilityValues) {
				if !ab.Dirty {
					return
				}
				*ab = deriveAbilities(s, id)
				if v, ok := s.Vitals.Get(id); ok {
					v.Clamp(*ab)
				}
			})
		}},

		phaseSystem{tick.PhaseVisibility, func(dt time.Duration) {
			s.Observers.Each(func(id ecs.EntityID, obs *grid.Observer) {
				var candidates []grid.Candidate
				for _, sector := range grid.ObserverWindow(obs.Sector) {
					for _, other := range s.Grid.RadiusQuery(sector) {
						ce, ok := s.Clients.Get(other)
						if !ok {
							continue
						}
						candidates = append(candidates, grid.Candidate{
							ID: other, Kind: ce.Kind, Short: ce.ShortID, Sector: ce.Sector,
						})
					}
				}
				obs.Recompute(candidates)
			})
		}},

		phaseSystem{tick.PhaseEgress, func(dt time.Duration) {
			drained := s.Egress.Drain()
			if len(drained) == 0 {
				return
			}
			pending := make([]visibility.Pending, len(drained))
			for i, msg := range drained {
				pending[i] = visibility.Pending{Mode: msg.Mode, ZoneID: msg.ZoneID, Target: msg.Target, Body: msg.Body}
			}
			s.Sessions.Each(func(sess *netpkg.Session) {
				obs, ok := s.Observers.Get(sess.Entity)
				if !ok {
					obs = &grid.Observer{}
				}
				for _, body := range visibility.Deliver(visibility.Session{Entity: sess.Entity, ZoneID: sess.ZoneID, Observer: obs}, pending) {
					sess.Push(body)
				}
			})
		}},

		phaseSystem{tick.PhaseSave, func(dt time.Duration) {
			dirty := s.SaveQueue.Drain()
			if len(dirty) == 0 {
				return
			}
			reqs := make([]save.Request, len(dirty))
			for i, id := range dirty {
				reqs[i] = save.Request{Entity: id}
			}
			go s.SavePool.Run(ctx, reqs)
		}},
	}
}

// currentAttackTarget reports the AttackTarget an entity's current
// command already carries, so a fresh AI decision can validate it via
// ai.SelectTarget's keep-current-target branch instead of forgetting a
// target it picked only ticks ago.
func currentAttackTarget(s *Sim, id ecs.EntityID) (ecs.EntityID, bool) {
	cur, ok := s.Commands.Get(id)
	if !ok || cur.Kind != component.CommandAttack {
		return 0, false
	}
	return cur.AttackTarget, true
}

// aiCandidateFor adapts one entity's components into ai.Candidate, the
// validate callback ai.SelectTarget/DecideMonster/DecideGuard need to
// re-check a target or nearby entity without holding a live reference.
func aiCandidateFor(s *Sim, id ecs.EntityID) (ai.Candidate, bool) {
	pos, ok := s.Positions.Get(id)
	if !ok {
		return ai.Candidate{}, false
	}
	alive := s.World.Alive(id)
	if v, ok := s.Vitals.Get(id); ok {
		alive = alive && v.HP > 0
	}
	return ai.Candidate{ID: id, Pos: *pos, Alive: alive}, true
}

// aiCandidates scans the 3x3 sector window around pos for nearby
// entities, the same window PhaseVisibility uses for observer candidate
// scans (spec.md §4.2).
func aiCandidates(s *Sim, self ecs.EntityID, pos component.Position) []ai.Candidate {
	sector := grid.Sector(pos.X, pos.Y)
	ids := s.Grid.RadiusQuery(sector)
	out := make([]ai.Candidate, 0, len(ids))
	for _, id := range ids {
		if id == self {
			continue
		}
		if c, ok := aiCandidateFor(s, id); ok {
			out = append(out, c)
		}
	}
	return out
}

// applyAIDecision translates one ai.Decision into a queued NextCommand.
// It is safe to call every tick even while the current command has not
// completed: command.Promote only applies the queued command once the
// current one finishes or is preemptible.
func applyAIDecision(s *Sim, id ecs.EntityID, dec ai.Decision) {
	next := s.NextCmds.GetOrAttach(id)
	switch dec.Action {
	case ai.ActionAttack:
		next.Pending = true
		next.Command = component.Command{Kind: component.CommandAttack, AttackTarget: dec.Target, DurationTks: monsterAttackIntervalTicks}
	case ai.ActionCastSkill:
		next.Pending = true
		next.Command = component.Command{Kind: component.CommandCastSkill, SkillID: dec.SkillID, SkillTarget: dec.Target}
	case ai.ActionMoveToward:
		next.Pending = true
		next.Command = component.Command{Kind: component.CommandMove, MoveTo: dec.MoveTo, MoveTarget: dec.Target, DurationTks: monsterMoveIntervalTicks}
	case ai.ActionLoseAggro, ai.ActionNone, ai.ActionWander:
		next.Pending = true
		next.Command = component.Command{Kind: component.CommandStop}
	}
}

// rollSpawnPoint rolls one level-table entry and queues the resulting
// SpawnRequest; it does not materialize the entity itself so every
// spawn, whether point-rolled or quest-triggered, goes through the same
// SpawnQueue barrier.
func rollSpawnPoint(s *Sim, pt *spawn.Point) bool {
	entry, ok := pt.Roll(func(total uint32) uint32 { return uint32(rand.Int63n(int64(total))) })
	if !ok {
		return false
	}
	pt.Count++
	s.SpawnQueue = append(s.SpawnQueue, SpawnRequest{
		Point: pt.ID, Template: entry.TemplateID, Level: entry.Level,
		ZoneID: pt.ZoneID, X: pt.X, Y: pt.Y, Z: pt.Z,
	})
	return true
}

// materializeSpawn creates the entity a queued SpawnRequest describes:
// position, spatial grid membership, derived stats, and the monster AI
// bookkeeping PhaseAI needs. Stat tables by template id are static data
// (internal/data, out of scope); level is the only input Derive has.
func materializeSpawn(s *Sim, req SpawnRequest) {
	id := s.World.CreateEntity()
	pos := &component.Position{X: req.X, Y: req.Y, Z: req.Z, ZoneID: req.ZoneID}
	s.Positions.Set(id, pos)

	sector := grid.Sector(req.X, req.Y)
	short, ok := s.Grid.ShortIDs().Acquire(id, component.KindMonster)
	if !ok {
		s.World.MarkForDestruction(id)
		return
	}
	s.Clients.Set(id, &component.ClientEntity{ShortID: short, Kind: component.KindMonster, Sector: sector})
	s.Grid.Insert(id, sector)

	ab := component.Derive(component.DeriveInputs{Level: req.Level})
	s.Abilities.Set(id, &ab)
	s.Vitals.Set(id, &component.Vitals{HP: ab.MaxHealth, MP: ab.MaxMana})
	s.Commands.Set(id, &component.Command{Kind: component.CommandStop})
	s.NextCmds.Set(id, &component.NextCommand{})
	s.Sources.Set(id, component.NewDamageSources(8))
	s.MonsterAI.Set(id, &MonsterBrain{IsAggressive: true, AggroRange: 10, AttackRange: 1, SpawnPoint: req.Point})
}

// admitCastSkill runs skill.Admit against the entity's live state the
// tick a CastSkill command is freshly promoted, stashing the per-cast
// context PhaseSkillEffects will need to resolve it. A rejection
// collapses the command back to Stop rather than letting it run its
// charging motion for nothing.
func admitCastSkill(s *Sim, id ecs.EntityID, cur *component.Command, nowTick uint64) {
	tmpl, ok := s.Skills[cur.SkillID]
	if !ok {
		cur.Kind = component.CommandStop
		return
	}

	ab, _ := s.Abilities.Get(id)
	vit, _ := s.Vitals.Get(id)
	eq, _ := s.Equipment.Get(id)
	inv, _ := s.Inventories.Get(id)
	cd := s.Cooldowns.GetOrAttach(id)
	ce, _ := s.Clients.Get(id)

	equippedAt := make(map[component.EquipIndex]bool, len(tmpl.RequiredEquip))
	if eq != nil {
		for _, idx := range tmpl.RequiredEquip {
			equippedAt[idx] = eq.Get(idx) != nil
		}
	}

	caster := skill.CasterState{
		Alive:      vit != nil && vit.HP > 0,
		EquippedAt: equippedAt,
		Cooldowns:  cd,
		NowTick:    nowTick,
	}
	if vit != nil {
		caster.Vitals = *vit
	}
	if inv != nil {
		caster.Money = inv.Money
	}

	casterKind := component.KindCharacter
	if ce != nil {
		casterKind = ce.Kind
	}
	casterPartyID := partyIDOf(s, id)
	casterCtx := skill.CasterContext{
		Self:    skill.ActorRef{Kind: casterKind, Alive: caster.Alive},
		PartyID: casterPartyID,
	}

	targetKind := component.KindCharacter
	targetAlive := false
	if tce, ok := s.Clients.Get(cur.SkillTarget); ok {
		targetKind = tce.Kind
	}
	if tv, ok := s.Vitals.Get(cur.SkillTarget); ok {
		targetAlive = tv.HP > 0
	}
	targetCtx := skill.TargetContext{
		Self:    skill.ActorRef{Kind: targetKind, Alive: targetAlive},
		PartyID: partyIDOf(s, cur.SkillTarget),
	}

	filterMatch := tmpl.TargetFilter.Matches(casterCtx, targetCtx)
	if result := skill.Admit(tmpl, caster, filterMatch); result != skill.AdmitOK {
		cur.Kind = component.CommandStop
		return
	}

	cur.CastSubphase = component.CastCharging
	cur.CastLockPoint = tmpl.CastLockPointTk
	cur.DurationTks = tmpl.ChargingTicks + 1
	cur.SkillResolved = false

	level := int32(0)
	intel := int32(0)
	if ch, ok := s.Characters.Get(id); ok {
		level = int32(ch.Level)
	}
	if ab != nil {
		intel = ab.Intelligence
	}
	s.Casts.Set(id, &SkillCast{
		Template: tmpl,
		Context: skill.CastContext{
			Caster:        id,
			CasterLevel:   level,
			CasterInt:     intel,
			NowTick:       nowTick,
			CooldownTicks: tmpl.CooldownTk,
		},
	})
}

// partyIDOf returns 0 for an entity with no party membership, matching
// skill.CasterContext/TargetContext's "0 = no party" convention.
func partyIDOf(s *Sim, id ecs.EntityID) uint64 {
	if m, ok := s.Memberships.Get(id); ok && m.HasParty {
		return m.PartyID
	}
	return 0
}

// resolveSkillCast runs the resolution pipeline (spec.md §4.4 step 1-3)
// once a cast reaches its casting subphase: consume the reagent, charge
// costs and cooldowns, then compute and queue damage.
func resolveSkillCast(s *Sim, id ecs.EntityID, cur *component.Command, cast *SkillCast, nowTick uint64) {
	defer func() { cur.SkillResolved = true }()

	ctx := cast.Context
	ctx.NowTick = nowTick
	if cur.Reagent != nil {
		inv := s.Inventories.GetOrAttach(id)
		slot := &inv.Pages[cur.Reagent.Page][cur.Reagent.Slot]
		ctx.Reagent = &skill.Reagent{Slot: slot}
	}
	if !skill.ConsumeReagent(ctx) {
		return
	}

	vit := s.Vitals.GetOrAttach(id)
	inv := s.Inventories.GetOrAttach(id)
	cd := s.Cooldowns.GetOrAttach(id)
	skill.ApplyCosts(cast.Template, ctx, vit, &inv.Money, nil, cd)

	if cast.Template.TargetFilter == skill.FilterOnlySelf || cur.SkillTarget.IsZero() {
		return
	}

	atkAb, _ := s.Abilities.Get(id)
	defAb, hasDef := s.Abilities.Get(cur.SkillTarget)
	baseDamage := int64(0)
	if hasDef && atkAb != nil {
		baseDamage = int64(atkAb.Attack - defAb.Defence)
		if baseDamage < 1 {
			baseDamage = 1
		}
	}
	for _, eff := range skill.ResolveDamage([]ecs.EntityID{cur.SkillTarget}, baseDamage) {
		s.Damage.Push(combat.DamageEvent{
			Attacker: id, Defender: eff.Target, Amount: eff.Amount,
			ApplyHitStun: true, SkillID: cast.Template.ID, AttackerIntelligence: ctx.CasterInt,
		})
	}

	if ctx.StatusDuration == 0 {
		return
	}
	resist := skill.TargetResist{Resist: defAb.Resist, Avoid: defAb.Avoid}
	if tch, ok := s.Characters.Get(cur.SkillTarget); ok {
		resist.Level = int32(tch.Level)
	}
	if skill.RollStatusSuccess(&ctx, 100, false, resist) {
		s.Effects.GetOrAttach(cur.SkillTarget).Apply(&component.StatusEffect{
			Type:       component.StatusTypeDefence,
			ExpireTick: nowTick + ctx.StatusDuration,
			Value:      ctx.StatusValue,
		})
	}
}

// emitAttackDamage fires one melee hit for every CommandAttack that was
// freshly promoted this tick, the missing half of spec.md §8 Scenario 1
// ("attack kills a monster"): without it PhaseCombat never receives a
// DamageEvent to resolve.
func emitAttackDamage(s *Sim, nowTick uint64) {
	s.Commands.Each(func(id ecs.EntityID, cur *component.Command) {
		if cur.Kind != component.CommandAttack || cur.StartTick != nowTick || cur.SkillResolved || !s.World.Alive(id) {
			return
		}
		atkAb, ok := s.Abilities.Get(id)
		if !ok {
			return
		}
		if !s.World.Alive(cur.AttackTarget) {
			return
		}
		defAb, ok := s.Abilities.Get(cur.AttackTarget)
		if !ok {
			return
		}
		dmg := int64(atkAb.Attack - defAb.Defence)
		if dmg < 1 {
			dmg = 1
		}
		s.Damage.Push(combat.DamageEvent{Attacker: id, Defender: cur.AttackTarget, Amount: dmg, ApplyHitStun: true})
		cur.SkillResolved = true
	})
}

// onEntityDied runs the post-death bookkeeping spec.md §4.5/§8 describe:
// split XP among damage sources, and for monsters schedule the
// despawn-then-respawn timer pair and drop a loot-owner-gated pickup.
func onEntityDied(s *Sim, defender ecs.EntityID, sources *component.DamageSources, nowTick uint64) {
	for _, sh := range combat.SplitXP(sources, monsterKillXP) {
		if ch, ok := s.Characters.Get(sh.Attacker.Attacker); ok {
			ch.Exp += sh.Amount
		}
	}

	if _, isMonster := s.MonsterAI.Get(defender); !isMonster {
		return
	}
	s.Spawns.Despawns = append(s.Spawns.Despawns, spawn.DespawnTimer{Entity: defender, RemainTick: combat.DespawnGraceTicks})

	owner, partyID, ok := combat.LootOwner(sources, func(e component.DamageSourceEntry) uint64 {
		return partyIDOf(s, e.Attacker)
	})
	if !ok {
		return
	}

	drop := &inventory.Drop{Money: monsterKillMoneyDrop, ExpireTick: nowTick + dropExpireTicks}
	if partyID != 0 {
		drop.PartyOwner = ecs.EntityID(partyID)
	} else {
		drop.Owner = owner.Attacker
	}

	dropID := s.World.CreateEntity()
	s.Drops.Set(dropID, drop)
	pos, ok := s.Positions.Get(defender)
	if !ok {
		return
	}
	dropPos := *pos
	s.Positions.Set(dropID, &dropPos)
	sector := grid.Sector(dropPos.X, dropPos.Y)
	if short, ok := s.Grid.ShortIDs().Acquire(dropID, component.KindItemDrop); ok {
		s.Clients.Set(dropID, &component.ClientEntity{ShortID: short, Kind: component.KindItemDrop, Sector: sector})
		s.Grid.Insert(dropID, sector)
	}
}

// attemptPickup runs spec.md §4.8's admission gate and loot distribution
// for one ready PickupItem command. Party-aware splitting applies only
// when the picker is actually in a party; a solo picker just takes it.
func attemptPickup(s *Sim, picker, dropID ecs.EntityID, drop *inventory.Drop) {
	pickerPartyID := partyIDOf(s, picker)
	ownership := party.DropOwnership{
		Owner: drop.Owner, HasOwner: !drop.Owner.IsZero(),
		PartyOwner: uint64(drop.PartyOwner), HasParty: !drop.PartyOwner.IsZero(),
	}
	if party.CheckPickup(picker, pickerPartyID, ownership) != party.PickupOK {
		return
	}

	var p *party.Party
	if pickerPartyID != 0 {
		p, _ = s.Parties.Get(pickerPartyID)
	}

	switch {
	case drop.Money > 0:
		if p != nil {
			for entity, amount := range p.MoneyShare(drop.Money) {
				if inv, ok := s.Inventories.Get(entity); ok {
					inv.Money += amount
				}
			}
		} else if inv, ok := s.Inventories.Get(picker); ok {
			inv.Money += drop.Money
		}
	case drop.Item != nil:
		recipient := picker
		if p != nil {
			if next, ok := p.NextItemRecipient(); ok {
				recipient = next
			}
		}
		if inv, ok := s.Inventories.Get(recipient); ok {
			inventory.TryAddStackable(inv.PageSlots(component.PageMaterials), drop.Item.ItemType, drop.Item.ItemNumber, drop.Item.Quantity)
		}
	}

	s.World.MarkForDestruction(dropID)
}

// deriveAbilities gathers an entity's current level/basic stats,
// equipment bonuses, and status-effect bonuses into component.Derive's
// input shape (spec.md §3: AbilityValues are derived, never hand-set).
func deriveAbilities(s *Sim, id ecs.EntityID) component.AbilityValues {
	var in component.DeriveInputs
	if ch, ok := s.Characters.Get(id); ok {
		in.Level = int32(ch.Level)
		in.Str, in.Dex, in.Con = int32(ch.Str), int32(ch.Dex), int32(ch.Con)
		in.Wis, in.Cha, in.Intel = int32(ch.Wis), int32(ch.Cha), int32(ch.Intel)
	}
	if eq, ok := s.Equipment.Get(id); ok {
		in.EquipAttack, in.EquipDefence, _ = eq.Bonuses()
	}
	if eff, ok := s.Effects.Get(id); ok {
		in.StatusAttack, in.StatusDefence, in.StatusHit, in.StatusAvoid, in.StatusCritical, in.StatusResist, in.StatusIntelligence, in.StatusMoveSpeed = eff.AbilityBonuses()
	}
	return component.Derive(in)
}
