package game

import (
	"context"
	"testing"

	"github.com/samdwyer/hexmarch/data"
	"github.com/samdwyer/hexmarch/internal/battle"
	"github.com/samdwyer/hexmarch/internal/config"
	"github.com/samdwyer/hexmarch/internal/hexgrid"
)

func TestSetupBuildsEncounterFromScenario(t *testing.T) {
	ctx := context.Background()
	scenario, err := data.FindScenario("border_skirmish")
	if err != nil {
		t.Fatal(err)
	}

	e, err := Setup(ctx, config.Default(), scenario, nil)
	if err != nil {
		t.Fatal(err)
	}

	if e.Round() != 1 || e.Phase() == battle.PhaseCombatOver {
		t.Errorf("fresh encounter: round=%d phase=%v", e.Round(), e.Phase())
	}
	snaps := e.Snapshot()
	want := len(scenario.PlayerUnits) + len(scenario.EnemyUnits)
	if len(snaps) != want {
		t.Fatalf("deployed %d units, want %d", len(snaps), want)
	}

	// Every unit's logical cell round-trips through battlefield occupancy.
	for _, s := range snaps {
		id, ok := e.Field().OccupantAt(s.Pos)
		if !ok || id != s.ID {
			t.Errorf("unit %d at %v: occupant = %d (%v)", s.ID, s.Pos, id, ok)
		}
	}
}

func TestSetupTerrainDeterministicPerSeed(t *testing.T) {
	ctx := context.Background()
	scenario, err := data.FindScenario("forest_ambush")
	if err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	a, err := Setup(ctx, cfg, scenario, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Setup(ctx, cfg, scenario, nil)
	if err != nil {
		t.Fatal(err)
	}

	for row := 0; row < cfg.Battle.Rows; row++ {
		for col := 0; col < cfg.Battle.Cols; col++ {
			c := hexgrid.Coord{Col: col, Row: row}
			if a.Field().TerrainAt(c).ID != b.Field().TerrainAt(c).ID {
				t.Fatalf("terrain diverged at %v for seed %d", c, scenario.Seed)
			}
		}
	}
}

func TestSetupRejectsUnknownScenarioContent(t *testing.T) {
	ctx := context.Background()
	bad := data.Scenario{
		ID: "bad", Name: "Bad", Biome: "plains", Seed: 1,
		PlayerUnits: []string{"war_elephant"},
		EnemyUnits:  []string{"infantry"},
	}
	if _, err := Setup(ctx, config.Default(), bad, nil); err == nil {
		t.Error("unknown unit type did not fail setup")
	}

	// An unknown biome breaks a battlefield invariant and fails loudly.
	badBiome := data.Scenario{
		ID: "bog", Name: "Bog", Biome: "lava", Seed: 1,
		PlayerUnits: []string{"infantry"},
		EnemyUnits:  []string{"infantry"},
	}
	failed := func() (failed bool) {
		defer func() {
			if recover() != nil {
				failed = true
			}
		}()
		_, err := Setup(ctx, config.Default(), badBiome, nil)
		return err != nil
	}()
	if !failed {
		t.Error("unknown biome neither errored nor panicked")
	}
}
