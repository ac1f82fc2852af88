package grid

// ExitTable holds, for a single region, the exit codel selected for each of
// the 4 DP values x 2 CC values, per spec.md §3/§4.3. It is built once by
// buildExitTable and never mutated afterward.
type ExitTable [4][2]Coord

// At returns the exit coordinate for the given DP/CC pair.
func (t ExitTable) At(dp Direction, cc Chooser) Coord {
	return t[dp][cc]
}

// buildExitTable computes, for each direction, the subset of r's members
// farthest in that direction, then the CC=Left/Right tie-break within that
// subset, per spec.md §3 (two scans of the members per direction):
//
//	DP=Up:    min y; Left picks min x, Right picks max x.
//	DP=Right: max x; Left picks min y, Right picks max y.
//	DP=Down:  max y; Left picks max x, Right picks min x.
//	DP=Left:  min x; Left picks max y, Right picks min y.
func (r *Region) buildExitTable(g *Grid) {
	if len(r.Members) == 0 {
		return
	}

	for _, dp := range [...]Direction{Up, Right, Down, Left} {
		left, right := farthestPair(r.Members, dp)
		r.Exit[dp][CCLeft] = left
		r.Exit[dp][CCRight] = right
	}
}

// farthestPair returns the CC=Left and CC=Right exit codels for dp, applying
// the axis-then-side tie-break rules of spec.md §3. A one-codel region
// trivially yields the same coordinate for both; a rectangular region
// collapses to one of its four corners.
func farthestPair(members []Coord, dp Direction) (left, right Coord) {
	best := members[0]

	for _, m := range members[1:] {
		if fartherOnAxis(dp, m, best) {
			best = m
		}
	}

	// Gather every member tied with best on the DP axis, then pick the
	// CC=Left/Right extremes among them on the perpendicular axis.
	axisLeft, axisRight := best, best
	for _, m := range members {
		if !sameAxisExtreme(dp, m, best) {
			continue
		}
		if fartherOnSide(dp, CCLeft, m, axisLeft) {
			axisLeft = m
		}
		if fartherOnSide(dp, CCRight, m, axisRight) {
			axisRight = m
		}
	}

	return axisLeft, axisRight
}

// fartherOnAxis reports whether candidate is farther than cur in direction
// dp's axis (min y for Up, max x for Right, max y for Down, min x for
// Left).
func fartherOnAxis(dp Direction, candidate, cur Coord) bool {
	switch dp {
	case Up:
		return candidate.Y < cur.Y
	case Right:
		return candidate.X > cur.X
	case Down:
		return candidate.Y > cur.Y
	default: // Left
		return candidate.X < cur.X
	}
}

// sameAxisExtreme reports whether candidate matches best on dp's axis
// coordinate (the value fartherOnAxis compares).
func sameAxisExtreme(dp Direction, candidate, best Coord) bool {
	switch dp {
	case Up, Down:
		return candidate.Y == best.Y
	default: // Right, Left
		return candidate.X == best.X
	}
}

// fartherOnSide reports whether candidate is farther than cur along the
// CC-selected perpendicular side for direction dp.
func fartherOnSide(dp Direction, cc Chooser, candidate, cur Coord) bool {
	switch dp {
	case Up:
		if cc == CCLeft {
			return candidate.X < cur.X
		}
		return candidate.X > cur.X
	case Right:
		if cc == CCLeft {
			return candidate.Y < cur.Y
		}
		return candidate.Y > cur.Y
	case Down:
		if cc == CCLeft {
			return candidate.X > cur.X
		}
		return candidate.X < cur.X
	default: // Left
		if cc == CCLeft {
			return candidate.Y > cur.Y
		}
		return candidate.Y < cur.Y
	}
}
