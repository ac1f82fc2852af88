package engine

import (
	"github.com/bdwalton/gopiet/codel"
	"github.com/bdwalton/gopiet/grid"
)

// moveResult is the outcome of walking from the current region's exit codel
// (or the bare current position, if not on a Color codel) in the direction
// of DP, per spec.md §4.4 step 3/4.
type moveResult struct {
	coord                grid.Coord
	traveledThroughWhite bool
	reachedNewBlock      bool
}

// findNext implements spec.md §4.4 steps 1-4: compute the starting coord
// (the origin region's DP/CC exit, or the bare position if there is no
// origin region), then walk one codel at a time in direction DP,
// classifying Black/out-of-bounds as obstruction, White as pass-through,
// and a new Color region as success.
func (e *Engine) findNext() (moveResult, bool) {
	origin := e.grid.RegionAt(e.pos)

	coord := e.pos
	if origin != nil {
		coord = origin.Exit.At(e.dp, e.cc)
	}

	dx, dy := e.dp.Delta()
	moved := false
	throughWhite := false

	for {
		next := grid.Coord{X: coord.X + dx, Y: coord.Y + dy}
		if !e.grid.InBounds(next) {
			return e.obstructedResult(origin, coord, moved)
		}

		switch c := e.grid.At(next); c.Kind {
		case codel.KindBlack:
			return e.obstructedResult(origin, coord, moved)

		case codel.KindWhite:
			coord = next
			moved = true
			throughWhite = true
			continue

		default: // codel.KindColor
			region := e.grid.RegionAt(next)
			if origin == nil || region != origin {
				return moveResult{
					coord:                next,
					traveledThroughWhite: origin == nil || throughWhite,
					reachedNewBlock:      true,
				}, true
			}
			// Re-entered the origin region after crossing white;
			// keep walking.
			coord = next
			moved = true
		}
	}
}

// obstructedResult implements spec.md §4.4 step 4: if the walk ends
// blocked while still inside (or never having left) the origin region,
// the move fails outright; otherwise it succeeds with reachedNewBlock
// false, since movement did occur before the obstruction.
func (e *Engine) obstructedResult(origin *grid.Region, coord grid.Coord, moved bool) (moveResult, bool) {
	if origin != nil {
		stillInOrigin := e.grid.InBounds(coord) && e.grid.RegionAt(coord) == origin
		if stillInOrigin || !moved {
			return moveResult{}, false
		}
	} else if !moved {
		return moveResult{}, false
	}
	return moveResult{coord: coord, traveledThroughWhite: true, reachedNewBlock: false}, true
}
