package entity

import (
	"testing"

	"github.com/samdwyer/hexmarch/internal/gamedata"
	"github.com/samdwyer/hexmarch/internal/hexgrid"
)

var testLayout = hexgrid.Layout{Size: 30, OriginX: 50, OriginY: 50}

func meleeDef() gamedata.UnitDef {
	return gamedata.UnitDef{
		ID: "infantry", Name: "Infantry", MaxHP: 50,
		MeleeAttack: 50, MeleeDefense: 5,
		Initiative: 100, ActionPoints: 9, AttackRange: 1,
		Tags: []gamedata.Tag{gamedata.TagMelee},
	}
}

func rangedDef() gamedata.UnitDef {
	return gamedata.UnitDef{
		ID: "archer", Name: "Archer", MaxHP: 35,
		MeleeAttack: 20, RangedAttack: 55, RangedDefense: 8,
		Initiative: 115, ActionPoints: 9, AttackRange: 4,
		Tags: []gamedata.Tag{gamedata.TagRanged},
	}
}

func TestNewUnitDisplayMatchesLogical(t *testing.T) {
	pos := hexgrid.Coord{Col: 3, Row: 4}
	u := New(1, meleeDef(), AllegiancePlayer, pos, testLayout)

	wantX, wantY := testLayout.ToPixel(pos)
	if u.DisplayX != wantX || u.DisplayY != wantY {
		t.Errorf("display (%v, %v), want cell center (%v, %v)", u.DisplayX, u.DisplayY, wantX, wantY)
	}
	if u.HP != 50 || u.AP != 9 || !u.Alive {
		t.Errorf("fresh unit state HP=%d AP=%d alive=%v", u.HP, u.AP, u.Alive)
	}
}

func TestTakeDamage(t *testing.T) {
	u := New(1, meleeDef(), AllegiancePlayer, hexgrid.Coord{}, testLayout)

	if died := u.TakeDamage(20); died {
		t.Error("20 damage against 50 HP reported a kill")
	}
	if u.HP != 30 {
		t.Errorf("HP = %d, want 30", u.HP)
	}

	// Overkill clamps at zero and flips Alive in the same step.
	if died := u.TakeDamage(100); !died {
		t.Error("lethal damage did not report a kill")
	}
	if u.HP != 0 || u.Alive {
		t.Errorf("dead unit HP=%d alive=%v, want 0/false", u.HP, u.Alive)
	}
}

func TestCanActAndSpendAP(t *testing.T) {
	u := New(1, meleeDef(), AllegiancePlayer, hexgrid.Coord{}, testLayout)

	if !u.CanAct() {
		t.Fatal("fresh unit cannot act")
	}
	u.SpendAP(9)
	if u.CanAct() {
		t.Error("unit with 0 AP can still act")
	}
	u.ResetTurn()
	if u.AP != 9 || !u.CanAct() {
		t.Errorf("after ResetTurn AP=%d canAct=%v", u.AP, u.CanAct())
	}

	u.TakeDamage(1000)
	if u.CanAct() {
		t.Error("dead unit can act")
	}
}

func TestSpendAPOverdraftPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("overspending AP did not panic")
		}
	}()
	u := New(1, meleeDef(), AllegiancePlayer, hexgrid.Coord{}, testLayout)
	u.SpendAP(10)
}

func TestAttackKindAndRange(t *testing.T) {
	melee := New(1, meleeDef(), AllegiancePlayer, hexgrid.Coord{}, testLayout)
	ranged := New(2, rangedDef(), AllegianceEnemy, hexgrid.Coord{}, testLayout)

	if melee.AttackKind() != AttackMelee || melee.AttackRange() != 1 {
		t.Errorf("melee unit kind=%v range=%d", melee.AttackKind(), melee.AttackRange())
	}
	if ranged.AttackKind() != AttackRanged || ranged.AttackRange() != 4 {
		t.Errorf("ranged unit kind=%v range=%d", ranged.AttackKind(), ranged.AttackRange())
	}

	if got := ranged.Offense(AttackRanged); got != 55 {
		t.Errorf("ranged offense = %d, want 55", got)
	}
	if got := ranged.Defense(AttackRanged); got != 8 {
		t.Errorf("ranged defense = %d, want 8", got)
	}
	if got := melee.Offense(AttackMelee); got != 50 {
		t.Errorf("melee offense = %d, want 50", got)
	}
}
