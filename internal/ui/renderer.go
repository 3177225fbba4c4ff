package ui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/samdwyer/hexmarch/internal/battle"
	"github.com/samdwyer/hexmarch/internal/entity"
	"github.com/samdwyer/hexmarch/internal/gamedata"
	"github.com/samdwyer/hexmarch/internal/hexgrid"
)

// Character-cell spacing of the staggered hex grid: four columns per hex
// column, two rows per hex row, odd columns raised by one.
const (
	gridLeft   = 2
	gridTop    = 3
	cellStepX  = 4
	cellStepY  = 2
	logTailLen = 5
)

// Renderer draws an encounter to the terminal. The engine's pixel layout is
// the single source of geometry; the renderer only rescales it to character
// cells, so animated display positions land between hexes mid-flight.
type Renderer struct {
	screen *Screen
	layout hexgrid.Layout
}

// NewRenderer creates a renderer for the given screen and engine layout.
func NewRenderer(screen *Screen, layout hexgrid.Layout) *Renderer {
	return &Renderer{screen: screen, layout: layout}
}

// toScreen rescales an engine pixel coordinate to a terminal cell.
func (r *Renderer) toScreen(x, y float64) (int, int) {
	colSpacing := r.layout.Width() * 0.75
	sx := gridLeft + int(math.Round(((x-r.layout.OriginX)/colSpacing-1)*cellStepX))
	sy := gridTop + int(math.Round(((y-r.layout.OriginY)/r.layout.Height()-1)*cellStepY))
	return sx, sy
}

// CellAt maps a terminal position (e.g. a mouse click) back to a hex cell.
func (r *Renderer) CellAt(sx, sy int, cols, rows int) (hexgrid.Coord, bool) {
	colSpacing := r.layout.Width() * 0.75
	px := r.layout.OriginX + (float64(sx-gridLeft)/cellStepX+1)*colSpacing
	py := r.layout.OriginY + (float64(sy-gridTop)/cellStepY+1)*r.layout.Height()
	return r.layout.ToCoord(px, py, cols, rows)
}

// Render draws the battlefield, units, status line, and combat log tail.
func (r *Renderer) Render(e *battle.Engine) {
	r.screen.Clear()

	field := e.Field()
	reach := e.ReachableForActor()

	for row := 0; row < field.Rows; row++ {
		for col := 0; col < field.Cols; col++ {
			c := hexgrid.Coord{Col: col, Row: row}
			terrain := field.TerrainAt(c)
			px, py := r.layout.ToPixel(c)
			sx, sy := r.toScreen(px, py)

			style := tcell.StyleDefault
			if terrain.Color != "" {
				style = style.Foreground(colorOrDefault(terrain.Color))
			}
			if _, ok := reach[c]; ok {
				style = style.Background(tcell.ColorDarkSlateGray)
			}
			r.screen.SetContent(sx, sy, terrainRune(terrain.Symbol), style)
		}
	}

	actorID, hasActor := e.CurrentActor()
	for _, u := range e.Snapshot() {
		sx, sy := r.toScreen(u.DisplayX, u.DisplayY)
		style := tcell.StyleDefault.Foreground(hpColor(u)).Bold(true)
		if hasActor && u.ID == actorID {
			style = style.Underline(true)
		}
		r.screen.SetContent(sx, sy, unitRune(u), style)
	}

	r.renderStatus(e)
	r.renderLogTail(e, gridTop+field.Rows*cellStepY+1)

	r.screen.Show()
}

// renderStatus draws the top status line: round, phase, and the actor.
func (r *Renderer) renderStatus(e *battle.Engine) {
	status := fmt.Sprintf("Round %d  [%s]", e.Round(), e.Phase())
	if id, ok := e.CurrentActor(); ok {
		for _, u := range e.Snapshot() {
			if u.ID == id {
				status += fmt.Sprintf("  %s #%d  HP %d/%d  AP %d", u.Name, u.ID, u.HP, u.MaxHP, u.AP)
				break
			}
		}
	}
	if e.Outcome() != battle.OutcomeNone {
		status = fmt.Sprintf("Combat over: %s  (q to quit)", e.Outcome())
	}
	r.drawText(0, 0, status, tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))
	if e.IsPlayerTurn() {
		help := "click: move/attack   space: skip anim   e: end turn   r: retreat   q: quit"
		r.drawText(0, 1, help, tcell.StyleDefault.Foreground(tcell.ColorGray))
	}
}

// renderLogTail draws the last few combat log lines below the grid.
func (r *Renderer) renderLogTail(e *battle.Engine, y int) {
	log := e.Log()
	start := 0
	if len(log) > logTailLen {
		start = len(log) - logTailLen
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorSilver)
	for i, line := range log[start:] {
		r.drawText(0, y+i, line, style)
	}
}

func (r *Renderer) drawText(x, y int, msg string, style tcell.Style) {
	for i, ch := range msg {
		r.screen.SetContent(x+i, y, ch, style)
	}
}

// hpColor blends red (empty) to green (full) by remaining HP.
func hpColor(u battle.UnitSnapshot) tcell.Color {
	frac := 0.0
	if u.MaxHP > 0 {
		frac = float64(u.HP) / float64(u.MaxHP)
	}
	c := colorful.Color{R: 0.9, G: 0.1, B: 0.1}.BlendRgb(colorful.Color{R: 0.1, G: 0.9, B: 0.1}, frac)
	return tcell.NewRGBColor(int32(c.R*255), int32(c.G*255), int32(c.B*255))
}

// unitRune is the unit's type initial: uppercase for the player's army,
// lowercase for the enemy's.
func unitRune(u battle.UnitSnapshot) rune {
	ch := '?'
	for _, first := range u.Name {
		ch = first
		break
	}
	if u.Allegiance == entity.AllegiancePlayer {
		if ch >= 'a' && ch <= 'z' {
			ch -= 'a' - 'A'
		}
		return ch
	}
	if ch >= 'A' && ch <= 'Z' {
		ch += 'a' - 'A'
	}
	return ch
}

func terrainRune(symbol string) rune {
	for _, ch := range symbol {
		return ch
	}
	return '.'
}

// colorOrDefault parses a hex color, falling back to the terminal default
// when the data is malformed. A bad color is cosmetic, not fatal.
func colorOrDefault(hex string) tcell.Color {
	c, err := gamedata.ParseHexColor(hex)
	if err != nil {
		return tcell.ColorDefault
	}
	return c
}
