// Package skill implements spec.md §4.4: admission checks, cast timing,
// resolution effects, and the closed target-filter set every skill
// carries exactly one of.
package skill

import "github.com/novaspire/worldcore/internal/component"

// TargetFilter is the closed set from spec.md §4.4.
type TargetFilter uint8

const (
	FilterOnlySelf TargetFilter = iota
	FilterGroup
	FilterGuild
	FilterAllied
	FilterMonster
	FilterEnemy
	FilterEnemyCharacter
	FilterCharacter
	FilterCharacterOrMonster
	FilterDeadAlliedCharacter
	FilterEnemyMonster
)

// CasterContext is the minimal caster-side state a target filter needs.
type CasterContext struct {
	Self     ActorRef
	PartyID  uint64
	ClanID   uint64
}

// TargetContext is the minimal target-side state a target filter needs.
type TargetContext struct {
	Self    ActorRef
	PartyID uint64
	ClanID  uint64
}

// ActorRef is the handful of fields every target-filter rule reads.
type ActorRef struct {
	Kind  component.EntityKind
	Team  int32
	Alive bool
}

// Matches implements the target-filter table in spec.md §4.4.
func (f TargetFilter) Matches(caster CasterContext, target TargetContext) bool {
	isCharacter := target.Self.Kind == component.KindCharacter
	isMonster := target.Self.Kind == component.KindMonster
	sameTeam := caster.Self.Team == target.Self.Team
	enemyTeam := caster.Self.Team != target.Self.Team

	switch f {
	case FilterOnlySelf:
		return caster.Self == target.Self
	case FilterGroup:
		return caster.PartyID != 0 && caster.PartyID == target.PartyID && target.Self.Alive
	case FilterGuild:
		return caster.ClanID != 0 && caster.ClanID == target.ClanID
	case FilterAllied:
		return sameTeam && target.Self.Alive
	case FilterMonster:
		return isMonster && target.Self.Alive
	case FilterEnemy:
		return enemyTeam && target.Self.Alive
	case FilterEnemyCharacter:
		return enemyTeam && isCharacter && target.Self.Alive
	case FilterCharacter:
		return isCharacter
	case FilterCharacterOrMonster:
		return isCharacter || isMonster
	case FilterDeadAlliedCharacter:
		return sameTeam && isCharacter && !target.Self.Alive
	case FilterEnemyMonster:
		return enemyTeam && isMonster && target.Self.Alive
	default:
		return false
	}
}
