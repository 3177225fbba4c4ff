// Package hexgrid provides coordinate math for a flat-top hex grid with
// even-q vertical offset layout (odd columns shifted up half a hex height).
// It is the single source of layout truth: every conversion between grid,
// cube, and pixel space goes through this package.
package hexgrid

import (
	"math"
	"sort"
)

// Coord is an offset grid coordinate: Col is the column, Row the row.
type Coord struct {
	Col int
	Row int
}

// Cube is the redundant three-axis hex coordinate (Q+R+S == 0).
// Used for exact distance calculations.
type Cube struct {
	Q int
	R int
	S int
}

// Cube converts an offset coordinate to cube coordinates.
func (c Coord) Cube() Cube {
	q := c.Col
	r := c.Row - (c.Col+(c.Col&1))/2
	return Cube{Q: q, R: r, S: -q - r}
}

// Distance returns the hex distance between two offset coordinates.
func Distance(a, b Coord) int {
	ac, bc := a.Cube(), b.Cube()
	return (abs(ac.Q-bc.Q) + abs(ac.R-bc.R) + abs(ac.S-bc.S)) / 2
}

// Direction indexes into the neighbor set. The order is fixed so that
// every traversal of neighbors is deterministic.
const (
	DirN = iota
	DirS
	DirNW
	DirNE
	DirSW
	DirSE
)

// Neighbors returns the 6 adjacent coordinates in fixed order
// (N, S, NW, NE, SW, SE). No bounds filtering is applied here;
// callers that own a grid clip to their own extent.
func Neighbors(c Coord) [6]Coord {
	x, y := c.Col, c.Row
	if x%2 == 0 {
		return [6]Coord{
			{x, y - 1},     // N
			{x, y + 1},     // S
			{x - 1, y},     // NW
			{x + 1, y},     // NE
			{x - 1, y + 1}, // SW
			{x + 1, y + 1}, // SE
		}
	}
	// Odd columns sit half a hex higher, which shifts the diagonal set.
	return [6]Coord{
		{x, y - 1},     // N
		{x, y + 1},     // S
		{x - 1, y - 1}, // NW
		{x + 1, y - 1}, // NE
		{x - 1, y},     // SW
		{x + 1, y},     // SE
	}
}

// Layout describes how the grid maps onto pixel space: hex radius and the
// pixel position of the grid origin.
type Layout struct {
	Size    float64 // hex radius (center to corner)
	OriginX float64
	OriginY float64
}

// Width returns the pixel width of one hex (flat-top: 2 * size).
func (l Layout) Width() float64 { return l.Size * 2 }

// Height returns the pixel height of one hex (flat-top: sqrt(3) * size).
func (l Layout) Height() float64 { return l.Size * math.Sqrt(3) }

// ToPixel converts a grid coordinate to the pixel center of its hex.
// Horizontal spacing between columns is 3/4 of the hex width; odd columns
// are raised by half a hex height so the columns interlock.
func (l Layout) ToPixel(c Coord) (float64, float64) {
	h := l.Height()
	yOffset := 0.0
	if c.Col%2 != 0 {
		yOffset = h / 2
	}
	x := l.OriginX + float64(c.Col+1)*(l.Width()*3/4)
	y := l.OriginY + float64(c.Row+1)*h - yOffset
	return x, y
}

// ToCoord converts a pixel position back to the grid coordinate whose center
// is nearest, restricted to a cols x rows grid. The offset layout makes a
// closed-form inverse ambiguous near cell borders, so an approximate cell is
// computed first and the 3x3 candidate neighborhood is searched for the
// nearest center. Returns false if the position resolves outside the grid.
func (l Layout) ToCoord(x, y float64, cols, rows int) (Coord, bool) {
	h := l.Height()
	adjX := x - l.OriginX
	adjY := y - l.OriginY

	approxCol := int(math.Floor((adjX - l.Size) / (l.Width() * 3 / 4)))
	approxRow := int(math.Floor((adjY - h/2) / h))

	type candidate struct {
		dist float64
		c    Coord
	}
	var candidates []candidate
	for dc := -1; dc <= 1; dc++ {
		for dr := -1; dr <= 1; dr++ {
			cand := Coord{Col: approxCol + dc, Row: approxRow + dr}
			if cand.Col < 0 || cand.Col >= cols || cand.Row < 0 || cand.Row >= rows {
				continue
			}
			cx, cy := l.ToPixel(cand)
			d := math.Hypot(x-cx, y-cy)
			candidates = append(candidates, candidate{dist: d, c: cand})
		}
	}
	if len(candidates) == 0 {
		return Coord{}, false
	}
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.dist != b.dist {
			return a.dist < b.dist
		}
		if a.c.Col != b.c.Col {
			return a.c.Col < b.c.Col
		}
		return a.c.Row < b.c.Row
	})
	return candidates[0].c, true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
