// Package game runs an interactive encounter session: scenario setup, the
// tick loop, terminal input, and rendering.
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/samdwyer/hexmarch/data"
	"github.com/samdwyer/hexmarch/internal/battle"
	"github.com/samdwyer/hexmarch/internal/config"
	"github.com/samdwyer/hexmarch/internal/gamedata"
	"github.com/samdwyer/hexmarch/internal/hexgrid"
	"github.com/samdwyer/hexmarch/internal/ui"
	"github.com/samdwyer/hexmarch/internal/world"
)

// tickInterval paces the simulation clock; animation smoothness is bounded
// by the terminal anyway.
const tickInterval = 33 * time.Millisecond

// Game drives one encounter on a terminal screen.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	engine   *battle.Engine
	logger   *zap.Logger
	running  bool
}

// Setup builds a ready-to-run engine from a scenario: terrain generation,
// deployment, and engine construction. Split from New so headless callers
// and tests can exercise it without a terminal.
func Setup(ctx context.Context, cfg *config.Config, scenario data.Scenario, logger *zap.Logger) (*battle.Engine, error) {
	terrainReg, err := gamedata.LoadTerrainRegistry()
	if err != nil {
		return nil, fmt.Errorf("loading terrain: %w", err)
	}
	unitReg, err := gamedata.LoadUnitRegistry()
	if err != nil {
		return nil, fmt.Errorf("loading units: %w", err)
	}

	field := world.New(cfg.Battle.Cols, cfg.Battle.Rows, scenario.Biome, terrainReg)
	field.Generate(ctx, scenario.Biome, scenario.Seed)

	layout := hexgrid.Layout{Size: cfg.Hex.Size, OriginX: cfg.Hex.OriginX, OriginY: cfg.Hex.OriginY}
	roster, err := battle.DeployRoster(unitReg, layout, cfg.Battle.Cols, cfg.Battle.Rows, scenario.PlayerUnits, scenario.EnemyUnits)
	if err != nil {
		return nil, fmt.Errorf("deploying %q: %w", scenario.ID, err)
	}

	engine, err := battle.New(ctx, cfg, field, roster, logger)
	if err != nil {
		return nil, fmt.Errorf("starting encounter %q: %w", scenario.ID, err)
	}
	return engine, nil
}

// New creates a game session for the given scenario on a fresh terminal
// screen.
func New(ctx context.Context, cfg *config.Config, scenario data.Scenario, logger *zap.Logger) (*Game, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	engine, err := Setup(ctx, cfg, scenario, logger)
	if err != nil {
		return nil, err
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}

	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen, engine.Layout()),
		engine:   engine,
		logger:   logger,
		running:  true,
	}, nil
}

// Run executes the tick loop until the player quits. Each tick drains
// pending input, advances the engine by the elapsed wall time, and redraws.
func (g *Game) Run(ctx context.Context) error {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	last := time.Now()
	for g.running {
		select {
		case <-ctx.Done():
			g.running = false
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			for g.screen.HasPendingEvent() {
				g.handleEvent(ctx, g.screen.PollEvent())
			}
			g.engine.Update(ctx, dt)
			g.renderer.Render(g.engine)
		}
	}

	g.screen.Close()
	if res, ok := g.engine.Result(); ok {
		g.logger.Info("session finished",
			zap.String("outcome", res.Outcome.String()),
			zap.Int("survivors", len(res.Survivors)),
			zap.Int("losses", res.Losses),
		)
	}
	return nil
}

// handleEvent processes a single terminal event.
func (g *Game) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.screen.Sync()

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			g.running = false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				g.running = false
			case ' ':
				g.engine.SkipAnimation()
			case 'e', 'E':
				g.engine.SubmitEndTurn()
			case 'r', 'R':
				g.engine.SubmitRetreat(ctx)
			}
		}

	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 == 0 {
			return
		}
		g.handleClick(ctx, ev)
	}
}

// handleClick turns a left click into an intent: an occupied cell is an
// attack on its occupant, a free cell is a move. The engine validates; a
// rejection simply leaves the battlefield unchanged.
func (g *Game) handleClick(ctx context.Context, ev *tcell.EventMouse) {
	x, y := ev.Position()
	field := g.engine.Field()
	cell, ok := g.renderer.CellAt(x, y, field.Cols, field.Rows)
	if !ok {
		return
	}
	if id, occupied := field.OccupantAt(cell); occupied {
		g.engine.SubmitAttack(ctx, id)
		return
	}
	g.engine.SubmitMove(ctx, cell)
}

// Close releases the terminal.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
