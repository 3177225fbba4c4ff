package battle

import (
	"sort"

	"github.com/google/uuid"

	"github.com/samdwyer/hexmarch/internal/entity"
	"github.com/samdwyer/hexmarch/internal/hexgrid"
)

// UnitSnapshot is a read-only view of one unit for rendering and for the
// end-of-encounter summary.
type UnitSnapshot struct {
	ID         int
	Type       string
	Name       string
	Allegiance entity.Allegiance
	HP         int
	MaxHP      int
	AP         int
	Alive      bool
	Pos        hexgrid.Coord
	DisplayX   float64
	DisplayY   float64
}

// Result is the encounter summary handed to the strategic layer.
type Result struct {
	EncounterID uuid.UUID
	Outcome     Outcome
	Survivors   []UnitSnapshot
	Losses      int // units destroyed, both sides
}

func snapshotOf(u *entity.Unit) UnitSnapshot {
	return UnitSnapshot{
		ID:         u.ID,
		Type:       u.Def.ID,
		Name:       u.Def.Name,
		Allegiance: u.Allegiance,
		HP:         u.HP,
		MaxHP:      u.Def.MaxHP,
		AP:         u.AP,
		Alive:      u.Alive,
		Pos:        u.Pos,
		DisplayX:   u.DisplayX,
		DisplayY:   u.DisplayY,
	}
}

// Snapshot returns per-unit views for drawing, ordered by unit id. Dead
// units stay listed while their queued animations are still playing, so the
// renderer never drops a unit mid-strike.
func (e *Engine) Snapshot() []UnitSnapshot {
	out := make([]UnitSnapshot, 0, len(e.units))
	for _, u := range e.units {
		if !u.Alive && !e.queue.HasPending(u.ID) {
			continue
		}
		out = append(out, snapshotOf(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Result returns the encounter summary once the encounter is over.
func (e *Engine) Result() (Result, bool) {
	if e.result == nil {
		return Result{}, false
	}
	return *e.result, true
}

// buildResult freezes the summary: every living unit survives, every dead
// one counts as a loss.
func (e *Engine) buildResult() *Result {
	r := &Result{EncounterID: e.encounterID, Outcome: e.outcome}
	ids := make([]int, 0, len(e.units))
	for id := range e.units {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		u := e.units[id]
		if u.Alive {
			r.Survivors = append(r.Survivors, snapshotOf(u))
		} else {
			r.Losses++
		}
	}
	return r
}

// ReachableForActor returns the cells the acting player unit can still walk
// to this turn, with their path costs. Nil when it is not a player's turn.
func (e *Engine) ReachableForActor() map[hexgrid.Coord]int {
	if !e.IsPlayerTurn() {
		return nil
	}
	u := e.units[e.order[e.actorIdx]]
	return e.field.Reachable(u.Pos, u.AP)
}
