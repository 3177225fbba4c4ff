package world

import (
	"github.com/samdwyer/hexmarch/internal/hexgrid"
)

// FindPath searches breadth-first for a path from start to goal with total
// terrain cost at most maxCost. Intermediate cells must be unoccupied; the
// goal cell is exempt from the occupancy check so paths can lead "to" a
// target unit. Neighbor expansion uses the grid's fixed direction order, so
// ties always break the same way. Returns the cells from just after start
// through goal, or nil if the goal is unreachable within budget.
func (f *Battlefield) FindPath(start, goal hexgrid.Coord, maxCost int) []hexgrid.Coord {
	if !f.InBounds(start) || !f.InBounds(goal) || start == goal {
		return nil
	}

	type node struct {
		pos  hexgrid.Coord
		cost int
	}
	parent := map[hexgrid.Coord]hexgrid.Coord{start: start}
	queue := []node{{pos: start, cost: 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, n := range f.Neighbors(cur.pos) {
			if _, seen := parent[n]; seen {
				continue
			}
			if n != goal && f.IsOccupied(n) {
				continue
			}
			cost := cur.cost + f.MoveCost(n)
			if cost > maxCost {
				continue
			}
			parent[n] = cur.pos
			if n == goal {
				return reconstruct(parent, start, goal)
			}
			queue = append(queue, node{pos: n, cost: cost})
		}
	}
	return nil
}

// reconstruct walks the parent links back from goal and returns the path
// excluding start, including goal.
func reconstruct(parent map[hexgrid.Coord]hexgrid.Coord, start, goal hexgrid.Coord) []hexgrid.Coord {
	var rev []hexgrid.Coord
	for c := goal; c != start; c = parent[c] {
		rev = append(rev, c)
	}
	path := make([]hexgrid.Coord, len(rev))
	for i, c := range rev {
		path[len(rev)-1-i] = c
	}
	return path
}

// PathCost sums the terrain move cost of every cell along a path.
func (f *Battlefield) PathCost(path []hexgrid.Coord) int {
	total := 0
	for _, c := range path {
		total += f.MoveCost(c)
	}
	return total
}

// Reachable floods outward from start and returns every unoccupied cell
// reachable within the given cost budget, mapped to its cost. The start
// cell itself is excluded.
func (f *Battlefield) Reachable(start hexgrid.Coord, budget int) map[hexgrid.Coord]int {
	if !f.InBounds(start) {
		return nil
	}

	type node struct {
		pos  hexgrid.Coord
		cost int
	}
	costs := map[hexgrid.Coord]int{start: 0}
	queue := []node{{pos: start, cost: 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, n := range f.Neighbors(cur.pos) {
			if _, seen := costs[n]; seen {
				continue
			}
			if f.IsOccupied(n) {
				continue
			}
			cost := cur.cost + f.MoveCost(n)
			if cost > budget {
				continue
			}
			costs[n] = cost
			queue = append(queue, node{pos: n, cost: cost})
		}
	}

	delete(costs, start)
	return costs
}
