package tick

// Phase defines execution ordering within a single tick (spec.md §4.1).
// Within a phase, operations over entities are order-independent; a
// barrier sits between phases so later phases observe every mutation
// made by earlier ones.
type Phase int

const (
	PhaseClockAdvance     Phase = iota // 1. update world tick counter and now
	PhaseIngress                       // 2. drain per-session input queues into events
	PhaseExpiry                        // 3. despawn expired entities, expire Owner tags
	PhaseStatusEffects                 // 4. per-second regen, expiry, clears
	PhasePassiveRecovery              // 5. HP/MP regen when alive and not driving
	PhaseAI                            // 6. monster/bot behavior emits NextCommand + events
	PhaseSpawning                      // 7. monster spawn points roll for replenishment
	PhaseMotionRefresh                 // 8. recompute animation timings on equip/move-mode change
	PhaseCommandStep                   // 9. promote NextCommand, advance command, emit events
	PhaseMovement                      // 10. straight-line interpolation, sector update
	PhaseItemDropPickup                // 11. resolve pickup events, party distribution
	PhaseCombat                        // 12. resolve damage events into health + death
	PhaseSkillEffects                  // 13. resolve pending skill events
	PhaseItemLife                      // 14. consume weapon/armor life from hits
	PhaseEquipmentEvents               // 15. apply equip/unequip state changes
	PhaseInventoryUseItem              // 16. resolve use-item consumption
	PhaseQuest                         // 17. evaluate trigger events
	PhasePartyClan                     // 18. apply membership events, recompute averages
	PhaseAbilityRecompute              // 19. recompute derived values for dirty entities
	PhaseVisibility                    // 20. update per-observer visible sets
	PhaseEgress                        // 21. flush pending per-entity/zone/broadcast messages
	PhaseSave                          // 22. push dirty entities onto the save queue
)

// phaseNames mirrors the Phase ordinals above for logging.
var phaseNames = [...]string{
	"ClockAdvance", "Ingress", "Expiry", "StatusEffects", "PassiveRecovery",
	"AI", "Spawning", "MotionRefresh", "CommandStep", "Movement",
	"ItemDropPickup", "Combat", "SkillEffects", "ItemLife", "EquipmentEvents",
	"InventoryUseItem", "Quest", "PartyClan", "AbilityRecompute",
	"Visibility", "Egress", "Save",
}

func (p Phase) String() string {
	if int(p) < 0 || int(p) >= len(phaseNames) {
		return "Unknown"
	}
	return phaseNames[p]
}
