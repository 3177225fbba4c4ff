// Package ai selects actions for enemy-controlled units.
//
// The controller is a single-pass heuristic: one discrete decision per
// invocation, no lookahead, and no hidden randomness, so identical inputs
// always produce the identical action.
package ai

import (
	"sort"

	"github.com/samdwyer/hexmarch/internal/entity"
	"github.com/samdwyer/hexmarch/internal/hexgrid"
	"github.com/samdwyer/hexmarch/internal/world"
)

// ActionType discriminates the decision variants.
type ActionType int

const (
	// ActionPass ends the unit's turn with nothing left to do.
	ActionPass ActionType = iota
	// ActionAttack attacks TargetID from the current position.
	ActionAttack
	// ActionMove walks toward a target, stopping at Dest.
	ActionMove
)

// String returns a human-readable action name.
func (t ActionType) String() string {
	switch t {
	case ActionPass:
		return "pass"
	case ActionAttack:
		return "attack"
	case ActionMove:
		return "move"
	default:
		return "unknown"
	}
}

// Action is one discrete decision.
type Action struct {
	Type     ActionType
	TargetID int           // set for ActionAttack
	Dest     hexgrid.Coord // set for ActionMove
}

// Controller chooses actions for AI units. The attack action-point cost is
// engine policy and injected from configuration.
type Controller struct {
	attackCost int
}

// NewController creates an AI controller.
func NewController(attackCost int) *Controller {
	return &Controller{attackCost: attackCost}
}

// ChooseAction picks the unit's next action against the given candidate
// targets. Priority: attack the lowest-HP target already in range (ties to
// the lowest id); otherwise advance toward the target with the cheapest
// path within the unit's remaining action points (ties to the lowest id);
// otherwise pass.
func (c *Controller) ChooseAction(u *entity.Unit, field *world.Battlefield, targets []*entity.Unit) Action {
	live := make([]*entity.Unit, 0, len(targets))
	for _, t := range targets {
		if t.Alive {
			live = append(live, t)
		}
	}
	sort.Slice(live, func(i, j int) bool { return live[i].ID < live[j].ID })
	if len(live) == 0 {
		return Action{Type: ActionPass}
	}

	if u.AP >= c.attackCost {
		if target := pickInRange(u, live); target != nil {
			return Action{Type: ActionAttack, TargetID: target.ID}
		}
	}

	if dest, ok := c.pickApproach(u, field, live); ok {
		return Action{Type: ActionMove, Dest: dest}
	}
	return Action{Type: ActionPass}
}

// pickInRange returns the lowest-HP target within attack range, or nil.
// Targets must be sorted by id so the tie-break is by lowest id.
func pickInRange(u *entity.Unit, targets []*entity.Unit) *entity.Unit {
	var best *entity.Unit
	for _, t := range targets {
		if hexgrid.Distance(u.Pos, t.Pos) > u.AttackRange() {
			continue
		}
		if best == nil || t.HP < best.HP {
			best = t
		}
	}
	return best
}

// pickApproach finds the target with the cheapest path within the unit's
// action-point budget and returns the furthest affordable cell along that
// path, short of the target's own cell. Targets must be sorted by id so
// cost ties break to the lowest id.
func (c *Controller) pickApproach(u *entity.Unit, field *world.Battlefield, targets []*entity.Unit) (hexgrid.Coord, bool) {
	var (
		bestPath []hexgrid.Coord
		bestCost int
		found    bool
	)
	for _, t := range targets {
		path := field.FindPath(u.Pos, t.Pos, u.AP)
		if path == nil {
			continue
		}
		cost := field.PathCost(path)
		if !found || cost < bestCost {
			bestPath, bestCost = path, cost
			found = true
		}
	}
	if !found {
		return hexgrid.Coord{}, false
	}

	// Stop short of the target's cell, trimmed to what the unit can afford.
	walkable := bestPath[:len(bestPath)-1]
	budget := u.AP
	steps := 0
	for _, cell := range walkable {
		cost := field.MoveCost(cell)
		if cost > budget {
			break
		}
		budget -= cost
		steps++
	}
	if steps == 0 {
		return hexgrid.Coord{}, false
	}
	return walkable[steps-1], true
}
