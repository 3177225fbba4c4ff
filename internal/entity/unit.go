// Package entity provides the combat units that fight on the battlefield.
package entity

import (
	"fmt"

	"github.com/samdwyer/hexmarch/internal/gamedata"
	"github.com/samdwyer/hexmarch/internal/hexgrid"
)

// Allegiance groups units into the two sides used for victory evaluation.
type Allegiance int

const (
	// AllegiancePlayer marks units controlled by the player.
	AllegiancePlayer Allegiance = iota
	// AllegianceEnemy marks units controlled by the AI.
	AllegianceEnemy
)

// String returns a human-readable allegiance name.
func (a Allegiance) String() string {
	switch a {
	case AllegiancePlayer:
		return "player"
	case AllegianceEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// AttackKind selects which offense/defense stat pair an attack uses.
type AttackKind int

const (
	// AttackMelee uses melee attack against melee defense.
	AttackMelee AttackKind = iota
	// AttackRanged uses ranged attack against ranged defense.
	AttackRanged
)

// String returns a human-readable attack kind.
func (k AttackKind) String() string {
	switch k {
	case AttackMelee:
		return "melee"
	case AttackRanged:
		return "ranged"
	default:
		return "unknown"
	}
}

// Unit is a single combatant. Pos is the logical grid position and is the
// source of truth for all rules; DisplayX/DisplayY exist only for rendering
// and are mutated by the animation layer, at creation, and on forced resync.
type Unit struct {
	ID         int
	Def        gamedata.UnitDef
	Allegiance Allegiance

	HP    int
	AP    int // action points remaining this turn
	Pos   hexgrid.Coord
	Alive bool

	DisplayX float64
	DisplayY float64
}

// New creates a unit of the given type at the given cell. The display
// position starts at the cell's pixel center.
func New(id int, def gamedata.UnitDef, side Allegiance, pos hexgrid.Coord, layout hexgrid.Layout) *Unit {
	x, y := layout.ToPixel(pos)
	return &Unit{
		ID:         id,
		Def:        def,
		Allegiance: side,
		HP:         def.MaxHP,
		AP:         def.ActionPoints,
		Pos:        pos,
		Alive:      true,
		DisplayX:   x,
		DisplayY:   y,
	}
}

// Label returns the unit's log identity, e.g. "Archer #4".
func (u *Unit) Label() string {
	return fmt.Sprintf("%s #%d", u.Def.Name, u.ID)
}

// TakeDamage subtracts damage from HP, clamping at zero. A unit reaching
// zero HP dies in the same step. Returns true if this damage killed it.
func (u *Unit) TakeDamage(amount int) bool {
	u.HP -= amount
	if u.HP <= 0 {
		u.HP = 0
		u.Alive = false
		return true
	}
	return false
}

// CanAct reports whether the unit may still act this turn.
func (u *Unit) CanAct() bool {
	return u.Alive && u.AP > 0
}

// SpendAP deducts action points. Spending more than the unit has is a
// validation bug in the caller, so it fails loudly.
func (u *Unit) SpendAP(n int) {
	if n > u.AP {
		panic(fmt.Sprintf("%s spending %d AP with only %d left", u.Label(), n, u.AP))
	}
	u.AP -= n
}

// ResetTurn refills action points at the start of a round.
func (u *Unit) ResetTurn() {
	u.AP = u.Def.ActionPoints
}

// AttackKind returns the stat pair this unit attacks with.
func (u *Unit) AttackKind() AttackKind {
	if u.Def.HasTag(gamedata.TagRanged) {
		return AttackRanged
	}
	return AttackMelee
}

// AttackRange returns the maximum hex distance at which this unit can attack.
func (u *Unit) AttackRange() int {
	if u.Def.HasTag(gamedata.TagRanged) {
		return u.Def.AttackRange
	}
	return 1
}

// Offense returns the attack stat for the given kind.
func (u *Unit) Offense(kind AttackKind) int {
	if kind == AttackRanged {
		return u.Def.RangedAttack
	}
	return u.Def.MeleeAttack
}

// Defense returns the defense stat for the given kind, before terrain.
func (u *Unit) Defense(kind AttackKind) int {
	if kind == AttackRanged {
		return u.Def.RangedDefense
	}
	return u.Def.MeleeDefense
}

// HPFraction returns current HP as a fraction of max, in [0, 1].
func (u *Unit) HPFraction() float64 {
	if u.Def.MaxHP <= 0 {
		return 0
	}
	return float64(u.HP) / float64(u.Def.MaxHP)
}

// SetDisplay moves the unit's visual position. Reserved for the animation
// layer and forced resyncs; game rules never read display coordinates.
func (u *Unit) SetDisplay(x, y float64) {
	u.DisplayX = x
	u.DisplayY = y
}
