// Package world provides the battlefield grid: terrain and unit occupancy.
package world

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/hexmarch/internal/gamedata"
	"github.com/samdwyer/hexmarch/internal/hexgrid"
	"github.com/samdwyer/hexmarch/internal/telemetry"
)

// NoUnit is the occupant value of an empty cell.
const NoUnit = 0

// Cell is one battlefield hex: a terrain id and at most one occupant.
// The occupant is a lookup key into the engine's roster, never a pointer.
type Cell struct {
	Terrain  string
	Occupant int
}

// Battlefield owns the grid. Occupancy is mutated only through PlaceUnit,
// RemoveUnit, and MoveOccupant; the battlefield never touches unit stats.
type Battlefield struct {
	Cols    int
	Rows    int
	cells   [][]Cell
	terrain *gamedata.TerrainRegistry
}

// New creates a battlefield of the given size with uniform base terrain.
func New(cols, rows int, baseTerrain string, reg *gamedata.TerrainRegistry) *Battlefield {
	if _, ok := reg.Get(baseTerrain); !ok {
		panic(fmt.Sprintf("unknown base terrain %q", baseTerrain))
	}
	cells := make([][]Cell, rows)
	for y := range cells {
		cells[y] = make([]Cell, cols)
		for x := range cells[y] {
			cells[y][x] = Cell{Terrain: baseTerrain, Occupant: NoUnit}
		}
	}
	return &Battlefield{Cols: cols, Rows: rows, cells: cells, terrain: reg}
}

// featureChance is the fraction of cells that deviate from the biome's
// base terrain during generation.
const featureChance = 0.35

// Generate populates the terrain layer: every cell starts as the biome's
// base terrain and a weighted sprinkle of other terrain is layered on top.
// Deterministic for a given seed.
func (f *Battlefield) Generate(ctx context.Context, biome string, seed int64) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "battlefield.generate")
	defer span.End()

	start := time.Now()
	rng := rand.New(rand.NewSource(seed))

	base, ok := f.terrain.Get(biome)
	if !ok {
		panic(fmt.Sprintf("unknown biome terrain %q", biome))
	}

	features := 0
	for y := 0; y < f.Rows; y++ {
		for x := 0; x < f.Cols; x++ {
			f.cells[y][x].Terrain = base.ID
			if rng.Float64() < featureChance {
				picked := f.terrain.PickWeighted(rng)
				f.cells[y][x].Terrain = picked.ID
				if picked.ID != base.ID {
					features++
				}
			}
		}
	}

	span.SetAttributes(
		attribute.String("battlefield.biome", biome),
		attribute.Int64("battlefield.seed", seed),
		attribute.Int("battlefield.cols", f.Cols),
		attribute.Int("battlefield.rows", f.Rows),
		attribute.Int("battlefield.feature_cells", features),
		attribute.Int64("battlefield.generation_us", time.Since(start).Microseconds()),
	)
}

// InBounds reports whether the coordinate lies on the grid.
func (f *Battlefield) InBounds(c hexgrid.Coord) bool {
	return c.Col >= 0 && c.Col < f.Cols && c.Row >= 0 && c.Row < f.Rows
}

func (f *Battlefield) cellAt(c hexgrid.Coord) *Cell {
	if !f.InBounds(c) {
		panic(fmt.Sprintf("coordinate %v outside %dx%d battlefield", c, f.Cols, f.Rows))
	}
	return &f.cells[c.Row][c.Col]
}

// TerrainAt returns the terrain definition of a cell.
func (f *Battlefield) TerrainAt(c hexgrid.Coord) gamedata.TerrainDef {
	return f.terrain.MustGet(f.cellAt(c).Terrain)
}

// MoveCost returns the action-point cost of entering a cell.
func (f *Battlefield) MoveCost(c hexgrid.Coord) int {
	return f.TerrainAt(c).MoveCost
}

// IsOccupied reports whether a cell holds a unit.
func (f *Battlefield) IsOccupied(c hexgrid.Coord) bool {
	return f.cellAt(c).Occupant != NoUnit
}

// OccupantAt returns the unit id occupying a cell, if any.
func (f *Battlefield) OccupantAt(c hexgrid.Coord) (int, bool) {
	id := f.cellAt(c).Occupant
	return id, id != NoUnit
}

// PlaceUnit puts a unit id on a cell. Used at encounter setup, where a
// bad deployment is a recoverable input error rather than a broken invariant.
func (f *Battlefield) PlaceUnit(id int, c hexgrid.Coord) error {
	if id == NoUnit {
		panic("placing the zero unit id")
	}
	if !f.InBounds(c) {
		return fmt.Errorf("cell %v outside %dx%d battlefield", c, f.Cols, f.Rows)
	}
	if cell := f.cellAt(c); cell.Occupant != NoUnit {
		return fmt.Errorf("cell %v already occupied by unit %d", c, cell.Occupant)
	}
	f.cellAt(c).Occupant = id
	return nil
}

// RemoveUnit clears a cell's occupant. Removing from an empty cell means
// occupancy already diverged from the roster, so it fails loudly.
func (f *Battlefield) RemoveUnit(c hexgrid.Coord) {
	cell := f.cellAt(c)
	if cell.Occupant == NoUnit {
		panic(fmt.Sprintf("removing unit from empty cell %v", c))
	}
	cell.Occupant = NoUnit
}

// MoveOccupant relocates a unit between cells. Callers validate the move
// first; a conflict here is a broken invariant.
func (f *Battlefield) MoveOccupant(from, to hexgrid.Coord) {
	src := f.cellAt(from)
	dst := f.cellAt(to)
	if src.Occupant == NoUnit {
		panic(fmt.Sprintf("moving occupant of empty cell %v", from))
	}
	if dst.Occupant != NoUnit {
		panic(fmt.Sprintf("moving unit %d onto occupied cell %v", src.Occupant, to))
	}
	dst.Occupant = src.Occupant
	src.Occupant = NoUnit
}

// Neighbors returns the in-bounds neighbors of a cell in the grid's fixed
// direction order.
func (f *Battlefield) Neighbors(c hexgrid.Coord) []hexgrid.Coord {
	all := hexgrid.Neighbors(c)
	out := make([]hexgrid.Coord, 0, 6)
	for _, n := range all {
		if f.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}
