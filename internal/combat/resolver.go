// Package combat resolves attacks between units.
package combat

import (
	"fmt"

	"github.com/samdwyer/hexmarch/internal/entity"
	"github.com/samdwyer/hexmarch/internal/gamedata"
)

// Result describes one resolved attack.
type Result struct {
	Kind    entity.AttackKind
	Damage  int
	Slain   bool
	Message string // combat-log line
}

// Resolver calculates and applies attack damage. The residual damage floor
// is policy, so it comes from configuration rather than being hard-coded.
type Resolver struct {
	minDamage int
}

// NewResolver creates a resolver with the given minimum residual damage.
func NewResolver(minDamage int) *Resolver {
	return &Resolver{minDamage: minDamage}
}

// Damage computes the damage an attack would deal without applying it:
// attacker offense for its attack kind, minus the defender's matching
// defense stat plus the defense modifier of the terrain the defender
// occupies, floored at the configured minimum.
func (r *Resolver) Damage(attacker, defender *entity.Unit, terrain gamedata.TerrainDef) int {
	kind := attacker.AttackKind()
	defense := defender.Defense(kind)
	if kind == entity.AttackRanged {
		defense += terrain.RangedDefense
	} else {
		defense += terrain.MeleeDefense
	}
	damage := attacker.Offense(kind) - defense
	if damage < r.minDamage {
		damage = r.minDamage
	}
	return damage
}

// Resolve applies an attack from attacker to defender standing on the given
// terrain. Logical state (HP, alive flag) is committed before returning;
// animation playback never delays it.
func (r *Resolver) Resolve(attacker, defender *entity.Unit, terrain gamedata.TerrainDef) Result {
	kind := attacker.AttackKind()
	damage := r.Damage(attacker, defender, terrain)
	slain := defender.TakeDamage(damage)

	msg := fmt.Sprintf("%s hits %s for %d damage", attacker.Label(), defender.Label(), damage)
	if slain {
		msg += fmt.Sprintf("; %s is slain", defender.Label())
	}
	return Result{Kind: kind, Damage: damage, Slain: slain, Message: msg}
}
