package ai

import (
	"testing"

	"github.com/samdwyer/hexmarch/internal/entity"
	"github.com/samdwyer/hexmarch/internal/gamedata"
	"github.com/samdwyer/hexmarch/internal/hexgrid"
	"github.com/samdwyer/hexmarch/internal/world"
)

const attackCost = 4

var testLayout = hexgrid.Layout{Size: 30, OriginX: 50, OriginY: 50}

func testRegistry() *gamedata.TerrainRegistry {
	return gamedata.NewTerrainRegistry([]gamedata.TerrainDef{
		{ID: "plains", Name: "Plains", MoveCost: 1, SpawnWeight: 1},
		{ID: "swamp", Name: "Swamp", MoveCost: 3, SpawnWeight: 1},
	})
}

func openField(t *testing.T) *world.Battlefield {
	t.Helper()
	return world.New(10, 10, "plains", testRegistry())
}

func infantry(id int, pos hexgrid.Coord) *entity.Unit {
	def := gamedata.UnitDef{
		ID: "infantry", Name: "Infantry", MaxHP: 50,
		MeleeAttack: 50, MeleeDefense: 5,
		ActionPoints: 9, AttackRange: 1, Initiative: 100,
		Tags: []gamedata.Tag{gamedata.TagMelee},
	}
	return entity.New(id, def, entity.AllegianceEnemy, pos, testLayout)
}

func archer(id int, pos hexgrid.Coord) *entity.Unit {
	def := gamedata.UnitDef{
		ID: "archer", Name: "Archer", MaxHP: 35,
		MeleeAttack: 20, RangedAttack: 55, RangedDefense: 8,
		ActionPoints: 9, AttackRange: 4, Initiative: 115,
		Tags: []gamedata.Tag{gamedata.TagRanged},
	}
	return entity.New(id, def, entity.AllegianceEnemy, pos, testLayout)
}

func place(t *testing.T, f *world.Battlefield, units ...*entity.Unit) {
	t.Helper()
	for _, u := range units {
		if err := f.PlaceUnit(u.ID, u.Pos); err != nil {
			t.Fatal(err)
		}
	}
}

func TestChooseAttackLowestHPInRange(t *testing.T) {
	f := openField(t)
	c := NewController(attackCost)

	u := infantry(1, hexgrid.Coord{Col: 4, Row: 4})
	strong := infantry(2, hexgrid.Coord{Col: 4, Row: 3})
	weak := infantry(3, hexgrid.Coord{Col: 4, Row: 5})
	weak.HP = 10
	place(t, f, u, strong, weak)

	got := c.ChooseAction(u, f, []*entity.Unit{strong, weak})
	if got.Type != ActionAttack || got.TargetID != weak.ID {
		t.Errorf("ChooseAction = %+v, want attack on unit %d", got, weak.ID)
	}
}

func TestChooseAttackTieBreaksOnLowestID(t *testing.T) {
	f := openField(t)
	c := NewController(attackCost)

	u := infantry(1, hexgrid.Coord{Col: 4, Row: 4})
	a := infantry(3, hexgrid.Coord{Col: 4, Row: 3})
	b := infantry(2, hexgrid.Coord{Col: 4, Row: 5})
	place(t, f, u, a, b)

	// Equal HP either way round: lowest id wins.
	got := c.ChooseAction(u, f, []*entity.Unit{a, b})
	if got.Type != ActionAttack || got.TargetID != 2 {
		t.Errorf("ChooseAction = %+v, want attack on unit 2", got)
	}
	got = c.ChooseAction(u, f, []*entity.Unit{b, a})
	if got.Type != ActionAttack || got.TargetID != 2 {
		t.Errorf("reordered targets: ChooseAction = %+v, want attack on unit 2", got)
	}
}

func TestRangedAttackUsesAttackRange(t *testing.T) {
	f := openField(t)
	c := NewController(attackCost)

	u := archer(1, hexgrid.Coord{Col: 2, Row: 2})
	target := infantry(2, hexgrid.Coord{Col: 2, Row: 6}) // hex distance 4
	place(t, f, u, target)

	got := c.ChooseAction(u, f, []*entity.Unit{target})
	if got.Type != ActionAttack || got.TargetID != target.ID {
		t.Errorf("ChooseAction = %+v, want ranged attack at distance 4", got)
	}
}

func TestChooseMoveTowardNearestTarget(t *testing.T) {
	f := openField(t)
	c := NewController(attackCost)

	u := infantry(1, hexgrid.Coord{Col: 2, Row: 2})
	near := infantry(2, hexgrid.Coord{Col: 2, Row: 5})
	far := infantry(3, hexgrid.Coord{Col: 2, Row: 8})
	place(t, f, u, near, far)

	got := c.ChooseAction(u, f, []*entity.Unit{far, near})
	if got.Type != ActionMove {
		t.Fatalf("ChooseAction = %+v, want move", got)
	}
	// Path to (2,5) is [(2,3) (2,4) (2,5)]; stop short of the target.
	want := hexgrid.Coord{Col: 2, Row: 4}
	if got.Dest != want {
		t.Errorf("move dest = %v, want %v", got.Dest, want)
	}
}

func TestChooseMoveTrimsToAPBudget(t *testing.T) {
	f := openField(t)
	c := NewController(attackCost)

	u := infantry(1, hexgrid.Coord{Col: 2, Row: 2})
	u.AP = 2
	target := infantry(2, hexgrid.Coord{Col: 2, Row: 8})
	place(t, f, u, target)

	// Budget 2 cannot reach the target, so the unit cannot pick it as a
	// path goal at all and passes instead of inching forward blindly.
	got := c.ChooseAction(u, f, []*entity.Unit{target})
	if got.Type != ActionPass {
		t.Errorf("ChooseAction = %+v, want pass when no target within budget", got)
	}
}

func TestNoAttackWithoutActionPoints(t *testing.T) {
	f := openField(t)
	c := NewController(attackCost)

	u := infantry(1, hexgrid.Coord{Col: 4, Row: 4})
	u.AP = attackCost - 1
	adjacent := infantry(2, hexgrid.Coord{Col: 4, Row: 5})
	place(t, f, u, adjacent)

	// Adjacent with too little AP to swing: path to the goal is a single
	// step onto the target's own cell, which leaves nowhere to walk.
	got := c.ChooseAction(u, f, []*entity.Unit{adjacent})
	if got.Type != ActionPass {
		t.Errorf("ChooseAction = %+v, want pass with insufficient AP", got)
	}
}

func TestDeadTargetsIgnored(t *testing.T) {
	f := openField(t)
	c := NewController(attackCost)

	u := infantry(1, hexgrid.Coord{Col: 4, Row: 4})
	corpse := infantry(2, hexgrid.Coord{Col: 4, Row: 5})
	corpse.TakeDamage(corpse.HP)
	live := infantry(3, hexgrid.Coord{Col: 4, Row: 7})
	place(t, f, u, live)

	got := c.ChooseAction(u, f, []*entity.Unit{corpse, live})
	if got.Type != ActionMove {
		t.Errorf("ChooseAction = %+v, want move toward the living target", got)
	}

	got = c.ChooseAction(u, f, []*entity.Unit{corpse})
	if got.Type != ActionPass {
		t.Errorf("ChooseAction = %+v, want pass with only dead targets", got)
	}
}

func TestChooseActionDeterministic(t *testing.T) {
	f := openField(t)
	c := NewController(attackCost)

	u := infantry(1, hexgrid.Coord{Col: 2, Row: 2})
	a := infantry(2, hexgrid.Coord{Col: 6, Row: 6})
	b := infantry(3, hexgrid.Coord{Col: 7, Row: 2})
	place(t, f, u, a, b)

	first := c.ChooseAction(u, f, []*entity.Unit{a, b})
	for i := 0; i < 10; i++ {
		again := c.ChooseAction(u, f, []*entity.Unit{b, a})
		if again != first {
			t.Fatalf("run %d: action %+v != %+v", i, again, first)
		}
	}
}
