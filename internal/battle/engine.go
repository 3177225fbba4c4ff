package battle

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/hexmarch/internal/ai"
	"github.com/samdwyer/hexmarch/internal/anim"
	"github.com/samdwyer/hexmarch/internal/combat"
	"github.com/samdwyer/hexmarch/internal/config"
	"github.com/samdwyer/hexmarch/internal/entity"
	"github.com/samdwyer/hexmarch/internal/hexgrid"
	"github.com/samdwyer/hexmarch/internal/telemetry"
	"github.com/samdwyer/hexmarch/internal/world"
)

// Engine runs one encounter. It owns the initiative queue and is the only
// component that mutates battlefield occupancy. Logical state always commits
// inside the call that issues an action; animations replay it afterward.
type Engine struct {
	battleCfg config.BattleConfig
	animCfg   config.AnimConfig
	layout    hexgrid.Layout

	field    *world.Battlefield
	units    map[int]*entity.Unit
	resolver *combat.Resolver
	brain    *ai.Controller
	queue    *anim.Queue

	encounterID uuid.UUID
	phase       Phase
	outcome     Outcome
	round       int
	order       []int // alive unit ids in initiative order
	actorIdx    int
	turnDone    bool
	log         []string
	result      *Result

	logger *zap.Logger
}

// New creates an engine, deploys the roster onto the battlefield, and opens
// the first round. Roster positions come from each unit's Pos; a deployment
// conflict is an input error.
func New(ctx context.Context, cfg *config.Config, field *world.Battlefield, roster []*entity.Unit, logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	e := &Engine{
		battleCfg: cfg.Battle,
		animCfg:   cfg.Anim,
		layout: hexgrid.Layout{
			Size:    cfg.Hex.Size,
			OriginX: cfg.Hex.OriginX,
			OriginY: cfg.Hex.OriginY,
		},
		field:       field,
		units:       make(map[int]*entity.Unit, len(roster)),
		resolver:    combat.NewResolver(cfg.Battle.MinDamage),
		brain:       ai.NewController(cfg.Battle.AttackCost),
		queue:       anim.NewQueue(),
		encounterID: uuid.New(),
		phase:       PhaseRoundStart,
		logger:      logger,
	}

	players, enemies := 0, 0
	for _, u := range roster {
		if _, dup := e.units[u.ID]; dup {
			return nil, fmt.Errorf("duplicate unit id %d in roster", u.ID)
		}
		if err := field.PlaceUnit(u.ID, u.Pos); err != nil {
			return nil, fmt.Errorf("deploying %s: %w", u.Label(), err)
		}
		e.units[u.ID] = u
		if u.Allegiance == entity.AllegiancePlayer {
			players++
		} else {
			enemies++
		}
	}
	if players == 0 || enemies == 0 {
		return nil, fmt.Errorf("roster needs both sides, got %d player and %d enemy units", players, enemies)
	}

	tracer := telemetry.Tracer("battle")
	_, span := tracer.Start(ctx, "battle.start")
	span.SetAttributes(
		attribute.String("encounter_id", e.encounterID.String()),
		attribute.Int("player_units", players),
		attribute.Int("enemy_units", enemies),
		attribute.Int("battlefield.cols", field.Cols),
		attribute.Int("battlefield.rows", field.Rows),
	)
	span.End()

	logger.Info("encounter started",
		zap.String("encounter_id", e.encounterID.String()),
		zap.Int("player_units", players),
		zap.Int("enemy_units", enemies),
	)

	e.startRound()
	return e, nil
}

// EncounterID identifies this encounter in logs and traces.
func (e *Engine) EncounterID() uuid.UUID { return e.encounterID }

// Phase returns the current engine phase.
func (e *Engine) Phase() Phase { return e.phase }

// Outcome returns the encounter outcome, OutcomeNone while running.
func (e *Engine) Outcome() Outcome { return e.outcome }

// Round returns the current round number, starting at 1.
func (e *Engine) Round() int { return e.round }

// Layout returns the pixel layout shared by every component this encounter.
func (e *Engine) Layout() hexgrid.Layout { return e.layout }

// Field returns the battlefield for read-only queries such as rendering.
func (e *Engine) Field() *world.Battlefield { return e.field }

// Log returns the append-only combat log.
func (e *Engine) Log() []string {
	out := make([]string, len(e.log))
	copy(out, e.log)
	return out
}

// CurrentActor returns the id of the unit whose turn it is.
func (e *Engine) CurrentActor() (int, bool) {
	if e.phase == PhaseCombatOver || e.actorIdx >= len(e.order) {
		return 0, false
	}
	return e.order[e.actorIdx], true
}

// IsPlayerTurn reports whether the engine is waiting on a player intent.
func (e *Engine) IsPlayerTurn() bool {
	id, ok := e.CurrentActor()
	return ok && e.phase == PhaseUnitActing && e.units[id].Allegiance == entity.AllegiancePlayer
}

// startRound rebuilds initiative from the alive units, refills action
// points, and hands the turn to the first actor.
func (e *Engine) startRound() {
	e.round++
	e.order = e.order[:0]
	for id, u := range e.units {
		if u.Alive {
			e.order = append(e.order, id)
		}
	}
	sort.Slice(e.order, func(i, j int) bool {
		a, b := e.units[e.order[i]], e.units[e.order[j]]
		if a.Def.Initiative != b.Def.Initiative {
			return a.Def.Initiative > b.Def.Initiative
		}
		return a.ID < b.ID
	})
	for _, id := range e.order {
		e.units[id].ResetTurn()
	}
	e.actorIdx = 0
	e.turnDone = false
	e.phase = PhaseUnitActing
	e.appendLog(fmt.Sprintf("Round %d begins", e.round))
	e.logger.Debug("round started", zap.Int("round", e.round), zap.Int("actors", len(e.order)))
}

// Update is the engine's only clock. It advances animation playback, then,
// once the queue is idle, settles the pending turn transition or lets the
// next AI actor decide. A non-positive dt changes nothing.
func (e *Engine) Update(ctx context.Context, dt float64) {
	if dt <= 0 || e.phase == PhaseCombatOver {
		e.queue.Update(dt)
		return
	}
	e.queue.Update(dt)
	if !e.queue.IsIdle() {
		return
	}

	switch e.phase {
	case PhaseAnimationSettling:
		actor := e.units[e.order[e.actorIdx]]
		if e.turnDone || !actor.CanAct() {
			e.advanceTurn(ctx)
			return
		}
		e.phase = PhaseUnitActing

	case PhaseUnitActing:
		id := e.order[e.actorIdx]
		if e.units[id].Allegiance == entity.AllegianceEnemy {
			e.actAI(ctx, e.units[id])
		}
	}
}

// SkipAnimation fast-forwards the active animation to its end state. Logic
// has already committed, so this only touches display positions.
func (e *Engine) SkipAnimation() {
	e.queue.SkipCurrent()
}

// AnimationsPending returns the number of animations not yet completed.
func (e *Engine) AnimationsPending() int {
	return e.queue.Len()
}

// SubmitMove asks the current player unit to walk to dest. Rejected when it
// is not a player unit's turn, the cell is occupied or out of bounds, or no
// path exists within the unit's remaining action points.
func (e *Engine) SubmitMove(ctx context.Context, dest hexgrid.Coord) IntentStatus {
	if !e.IsPlayerTurn() {
		return IntentRejected
	}
	u := e.units[e.order[e.actorIdx]]
	if !e.field.InBounds(dest) || e.field.IsOccupied(dest) {
		return IntentRejected
	}
	return e.doMove(ctx, u, dest)
}

// SubmitAttack asks the current player unit to attack the given enemy.
// Rejected when it is not a player unit's turn, the target is invalid or
// out of range, or the unit lacks the action points.
func (e *Engine) SubmitAttack(ctx context.Context, targetID int) IntentStatus {
	if !e.IsPlayerTurn() {
		return IntentRejected
	}
	u := e.units[e.order[e.actorIdx]]
	target, ok := e.units[targetID]
	if !ok || !target.Alive || target.Allegiance == u.Allegiance {
		return IntentRejected
	}
	return e.doAttack(ctx, u, target)
}

// SubmitEndTurn ends the current player unit's turn voluntarily. The turn
// actually advances once queued animations finish playing.
func (e *Engine) SubmitEndTurn() IntentStatus {
	if !e.IsPlayerTurn() {
		return IntentRejected
	}
	e.turnDone = true
	e.phase = PhaseAnimationSettling
	return IntentAccepted
}

// SubmitRetreat withdraws the player army and ends the encounter.
func (e *Engine) SubmitRetreat(ctx context.Context) IntentStatus {
	if !e.IsPlayerTurn() {
		return IntentRejected
	}
	e.appendLog("The player army retreats")
	e.finish(ctx, OutcomeRetreat)
	return IntentAccepted
}

// doMove commits a walk: occupancy and logical position move immediately,
// action points drop by the path's terrain cost, and one Move animation per
// step replays it. Every step's start pixel derives from the logical cell,
// never from the unit's current display position.
func (e *Engine) doMove(ctx context.Context, u *entity.Unit, dest hexgrid.Coord) IntentStatus {
	path := e.field.FindPath(u.Pos, dest, u.AP)
	if path == nil {
		return IntentRejected
	}
	cost := e.field.PathCost(path)

	tracer := telemetry.Tracer("battle")
	_, span := tracer.Start(ctx, "battle.turn")
	span.SetAttributes(
		attribute.String("actor", u.Label()),
		attribute.String("action", "move"),
		attribute.Int("round", e.round),
		attribute.Int("steps", len(path)),
		attribute.Int("ap_cost", cost),
	)
	span.End()

	e.field.MoveOccupant(u.Pos, dest)
	prev := u.Pos
	for _, step := range path {
		sx, sy := e.layout.ToPixel(prev)
		tx, ty := e.layout.ToPixel(step)
		e.queue.Enqueue(anim.NewMove(u, sx, sy, tx, ty, e.animCfg.MoveSpeed, e.layout.Height()))
		prev = step
	}
	u.Pos = dest
	u.SpendAP(cost)

	e.appendLog(fmt.Sprintf("%s moves to (%d, %d)", u.Label(), dest.Col, dest.Row))
	e.logger.Debug("move committed",
		zap.String("actor", u.Label()),
		zap.Int("steps", len(path)),
		zap.Int("ap_left", u.AP),
	)
	e.phase = PhaseAnimationSettling
	return IntentAccepted
}

// doAttack commits an attack: damage lands now, one Strike animation replays
// it. A slain defender leaves the grid in the same step; it stays visible
// until its queued animations finish.
func (e *Engine) doAttack(ctx context.Context, u, target *entity.Unit) IntentStatus {
	if u.AP < e.battleCfg.AttackCost {
		return IntentRejected
	}
	if hexgrid.Distance(u.Pos, target.Pos) > u.AttackRange() {
		return IntentRejected
	}

	res := e.resolver.Resolve(u, target, e.field.TerrainAt(target.Pos))
	u.SpendAP(e.battleCfg.AttackCost)

	hx, hy := e.layout.ToPixel(u.Pos)
	tx, ty := e.layout.ToPixel(target.Pos)
	e.queue.Enqueue(anim.NewStrike(u, target.ID, hx, hy, tx, ty, e.animCfg.AttackOffset, e.animCfg.AttackDuration))

	if res.Slain {
		e.field.RemoveUnit(target.Pos)
	}
	e.appendLog(res.Message)

	tracer := telemetry.Tracer("battle")
	_, span := tracer.Start(ctx, "battle.turn")
	span.SetAttributes(
		attribute.String("actor", u.Label()),
		attribute.String("action", "attack"),
		attribute.String("target", target.Label()),
		attribute.String("attack_kind", res.Kind.String()),
		attribute.Int("round", e.round),
		attribute.Int("damage", res.Damage),
		attribute.Bool("slain", res.Slain),
	)
	span.End()

	e.logger.Info("attack resolved",
		zap.String("actor", u.Label()),
		zap.String("target", target.Label()),
		zap.Int("damage", res.Damage),
		zap.Bool("slain", res.Slain),
	)
	e.phase = PhaseAnimationSettling
	return IntentAccepted
}

// actAI lets the current AI unit make one decision. The next decision waits
// for the resulting animations to settle.
func (e *Engine) actAI(ctx context.Context, u *entity.Unit) {
	targets := make([]*entity.Unit, 0, len(e.units))
	for _, t := range e.units {
		if t.Alive && t.Allegiance != u.Allegiance {
			targets = append(targets, t)
		}
	}

	action := e.brain.ChooseAction(u, e.field, targets)
	switch action.Type {
	case ai.ActionAttack:
		if e.doAttack(ctx, u, e.units[action.TargetID]) == IntentAccepted {
			return
		}
	case ai.ActionMove:
		if !e.field.IsOccupied(action.Dest) && e.doMove(ctx, u, action.Dest) == IntentAccepted {
			return
		}
	}
	// Pass, or a decision the battlefield no longer admits.
	e.logger.Debug("actor passes", zap.String("actor", u.Label()))
	e.turnDone = true
	e.phase = PhaseAnimationSettling
}

// advanceTurn excises dead units from the initiative queue, checks for an
// ended encounter, and hands the turn to the next living actor, wrapping to
// a new round after the last. The next actor is resolved against the
// current alive set, so a mid-round death never skews iteration.
func (e *Engine) advanceTurn(ctx context.Context) {
	next := -1
	pruned := make([]int, 0, len(e.order))
	for i, id := range e.order {
		if !e.units[id].Alive {
			continue
		}
		if i > e.actorIdx && next == -1 {
			next = len(pruned)
		}
		pruned = append(pruned, id)
	}
	e.order = pruned

	if e.checkOutcome(ctx) {
		return
	}
	e.turnDone = false
	if next == -1 {
		e.startRound()
		return
	}
	e.actorIdx = next
	e.phase = PhaseUnitActing
}

// checkOutcome ends the encounter when one side has no living units.
func (e *Engine) checkOutcome(ctx context.Context) bool {
	players, enemies := 0, 0
	for _, u := range e.units {
		if !u.Alive {
			continue
		}
		if u.Allegiance == entity.AllegiancePlayer {
			players++
		} else {
			enemies++
		}
	}
	switch {
	case players == 0:
		e.appendLog("Defeat! The player army is destroyed")
		e.finish(ctx, OutcomeDefeat)
		return true
	case enemies == 0:
		e.appendLog("Victory! The enemy army is destroyed")
		e.finish(ctx, OutcomeVictory)
		return true
	}
	return false
}

// finish moves to the terminal phase and freezes the result summary.
func (e *Engine) finish(ctx context.Context, outcome Outcome) {
	e.outcome = outcome
	e.phase = PhaseCombatOver
	e.result = e.buildResult()

	tracer := telemetry.Tracer("battle")
	_, span := tracer.Start(ctx, "battle.end")
	span.SetAttributes(
		attribute.String("encounter_id", e.encounterID.String()),
		attribute.String("outcome", outcome.String()),
		attribute.Int("rounds", e.round),
		attribute.Int("survivors", len(e.result.Survivors)),
		attribute.Int("losses", e.result.Losses),
	)
	span.End()

	e.logger.Info("encounter ended",
		zap.String("encounter_id", e.encounterID.String()),
		zap.String("outcome", outcome.String()),
		zap.Int("rounds", e.round),
		zap.Int("losses", e.result.Losses),
	)
}

func (e *Engine) appendLog(msg string) {
	e.log = append(e.log, msg)
}
