package hexgrid

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

const (
	testCols = 10
	testRows = 10
)

var testLayout = Layout{Size: 30, OriginX: 50, OriginY: 50}

func TestCubeInvariant(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := Coord{
			Col: rapid.IntRange(-50, 50).Draw(rt, "col"),
			Row: rapid.IntRange(-50, 50).Draw(rt, "row"),
		}
		cube := c.Cube()
		if cube.Q+cube.R+cube.S != 0 {
			rt.Fatalf("cube axes of %v do not sum to zero: %+v", c, cube)
		}
	})
}

func TestPixelRoundTrip(t *testing.T) {
	// Every cell center must convert back to exactly that cell.
	for col := 0; col < testCols; col++ {
		for row := 0; row < testRows; row++ {
			c := Coord{Col: col, Row: row}
			x, y := testLayout.ToPixel(c)
			got, ok := testLayout.ToCoord(x, y, testCols, testRows)
			if !ok {
				t.Fatalf("ToCoord(ToPixel(%v)) resolved outside the grid", c)
			}
			if got != c {
				t.Errorf("ToCoord(ToPixel(%v)) = %v", c, got)
			}
		}
	}
}

func TestPixelRoundTripJittered(t *testing.T) {
	// Points near a cell center (well inside the hex) still resolve to it.
	rapid.Check(t, func(rt *rapid.T) {
		c := Coord{
			Col: rapid.IntRange(0, testCols-1).Draw(rt, "col"),
			Row: rapid.IntRange(0, testRows-1).Draw(rt, "row"),
		}
		jx := rapid.Float64Range(-10, 10).Draw(rt, "jx")
		jy := rapid.Float64Range(-10, 10).Draw(rt, "jy")
		x, y := testLayout.ToPixel(c)
		got, ok := testLayout.ToCoord(x+jx, y+jy, testCols, testRows)
		if !ok || got != c {
			rt.Fatalf("point near center of %v resolved to %v (ok=%v)", c, got, ok)
		}
	})
}

func TestDistanceMetricLaws(t *testing.T) {
	coordGen := rapid.Custom(func(rt *rapid.T) Coord {
		return Coord{
			Col: rapid.IntRange(0, testCols-1).Draw(rt, "col"),
			Row: rapid.IntRange(0, testRows-1).Draw(rt, "row"),
		}
	})
	rapid.Check(t, func(rt *rapid.T) {
		a := coordGen.Draw(rt, "a")
		b := coordGen.Draw(rt, "b")
		c := coordGen.Draw(rt, "c")

		if Distance(a, a) != 0 {
			rt.Fatalf("Distance(%v, %v) != 0", a, a)
		}
		if a != b && Distance(a, b) == 0 {
			rt.Fatalf("Distance(%v, %v) == 0 for distinct cells", a, b)
		}
		if Distance(a, b) != Distance(b, a) {
			rt.Fatalf("distance not symmetric for %v, %v", a, b)
		}
		if Distance(a, c) > Distance(a, b)+Distance(b, c) {
			rt.Fatalf("triangle inequality violated for %v, %v, %v", a, b, c)
		}
	})
}

func TestNeighborsAreDistanceOne(t *testing.T) {
	for col := 0; col < testCols; col++ {
		for row := 0; row < testRows; row++ {
			c := Coord{Col: col, Row: row}
			for _, n := range Neighbors(c) {
				if d := Distance(c, n); d != 1 {
					t.Errorf("Distance(%v, neighbor %v) = %d, want 1", c, n, d)
				}
			}
		}
	}
}

func TestNeighborsReciprocal(t *testing.T) {
	// If n is a neighbor of c, then c is a neighbor of n.
	contains := func(set [6]Coord, c Coord) bool {
		for _, s := range set {
			if s == c {
				return true
			}
		}
		return false
	}
	for col := -3; col < 3; col++ {
		for row := -3; row < 3; row++ {
			c := Coord{Col: col, Row: row}
			for _, n := range Neighbors(c) {
				if !contains(Neighbors(n), c) {
					t.Errorf("%v lists %v as neighbor but not vice versa", c, n)
				}
			}
		}
	}
}

func TestNeighborOrderFixed(t *testing.T) {
	tests := []struct {
		name string
		c    Coord
		want [6]Coord
	}{
		{
			name: "even column",
			c:    Coord{Col: 2, Row: 2},
			want: [6]Coord{{2, 1}, {2, 3}, {1, 2}, {3, 2}, {1, 3}, {3, 3}},
		},
		{
			name: "odd column",
			c:    Coord{Col: 3, Row: 2},
			want: [6]Coord{{3, 1}, {3, 3}, {2, 1}, {4, 1}, {2, 2}, {4, 2}},
		},
	}
	for _, tt := range tests {
		if got := Neighbors(tt.c); got != tt.want {
			t.Errorf("%s: Neighbors(%v) = %v, want %v", tt.name, tt.c, got, tt.want)
		}
	}
}

func TestOddColumnsRaised(t *testing.T) {
	_, evenY := testLayout.ToPixel(Coord{Col: 0, Row: 0})
	_, oddY := testLayout.ToPixel(Coord{Col: 1, Row: 0})
	if oddY >= evenY {
		t.Errorf("odd column center y = %v, want above even column y = %v", oddY, evenY)
	}
	// Rounding differs between the two cell centers, so compare within an
	// epsilon rather than exactly.
	if diff := evenY - oddY; math.Abs(diff-testLayout.Height()/2) > 1e-9 {
		t.Errorf("odd column offset = %v, want half hex height %v", diff, testLayout.Height()/2)
	}
}

func TestToCoordOutsideGrid(t *testing.T) {
	if _, ok := testLayout.ToCoord(-5000, -5000, testCols, testRows); ok {
		t.Error("ToCoord far outside the grid reported a cell")
	}
}
