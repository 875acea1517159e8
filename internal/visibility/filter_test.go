package visibility

import (
	"testing"

	"github.com/novaspire/worldcore/internal/component"
	"github.com/novaspire/worldcore/internal/ecs"
)

func TestFilter_DropsInvisibleFromOtherTeams(t *testing.T) {
	ally := CandidateSource{ID: ecs.NewEntityID(1, 0), Team: 1, Flags: FlagInvisible}
	enemy := CandidateSource{ID: ecs.NewEntityID(2, 0), Team: 2}

	got := Filter(1, []CandidateSource{ally, enemy})

	if len(got) != 2 {
		t.Fatalf("expected invisible ally still visible to own team, got %d candidates", len(got))
	}
}

func TestFilter_HidesInvisibleFromOtherTeam(t *testing.T) {
	enemy := CandidateSource{ID: ecs.NewEntityID(1, 0), Team: 2, Flags: FlagInvisible}

	got := Filter(1, []CandidateSource{enemy})

	if len(got) != 0 {
		t.Fatalf("expected invisible enemy filtered out, got %d candidates", len(got))
	}
}

func TestFilter_PassesThroughVisibleEntities(t *testing.T) {
	c := CandidateSource{ID: ecs.NewEntityID(1, 0), Kind: component.KindMonster, Short: 5, Team: 1}
	got := Filter(1, []CandidateSource{c})
	if len(got) != 1 || got[0].Short != 5 {
		t.Fatalf("expected candidate passed through unchanged, got %+v", got)
	}
}
