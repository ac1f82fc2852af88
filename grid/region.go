package grid

import "github.com/bdwalton/gopiet/codel"

// Region is a maximal 4-connected set of Color codels sharing (Hue, Light).
// Member order is not observable; only Size (used by the Push instruction)
// and the precomputed ExitTable are.
type Region struct {
	ID      int
	Hue     codel.Hue
	Light   codel.Light
	Members []Coord
	Exit    ExitTable
}

// Size is the codel count of the region; this is the value Push places on
// the stack per spec.md §4.5.
func (r *Region) Size() int {
	return len(r.Members)
}

// analyze performs the flood fill described in spec.md §4.2: for every
// unvisited Color codel, it walks 4-connected neighbors sharing (Hue,
// Light) into a new Region and writes the region id back onto every member
// codel. Row-major sweep order makes region ids (and hence iteration order
// of g.Regions) deterministic given the grid.
func analyze(g *Grid) {
	visited := make([]bool, len(g.cells))

	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			start := Coord{x, y}
			idx := g.index(start)
			if visited[idx] {
				continue
			}
			c := g.At(start)
			if c.Kind != codel.KindColor {
				visited[idx] = true
				continue
			}

			r := &Region{ID: len(g.Regions), Hue: c.Hue, Light: c.Light}
			floodFill(g, start, c, visited, r)
			g.Regions = append(g.Regions, r)
		}
	}
}

// floodFill collects every codel 4-connected to start that shares start's
// (Hue, Light) into r, marking each visited and back-annotating its
// RegionID. Implemented with an explicit queue (not recursion) so that
// pathologically large same-color fields — a common piet idiom for
// single-region "canvas" images — don't blow the goroutine stack.
func floodFill(g *Grid, start Coord, want codel.Codel, visited []bool, r *Region) {
	queue := []Coord{start}
	visited[g.index(start)] = true

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		cl := g.At(cur)
		cl.RegionID = r.ID
		g.set(cur, cl)
		r.Members = append(r.Members, cur)

		for _, d := range [...]Direction{Up, Right, Down, Left} {
			dx, dy := d.Delta()
			next := Coord{cur.X + dx, cur.Y + dy}
			if !g.InBounds(next) {
				continue
			}
			ni := g.index(next)
			if visited[ni] {
				continue
			}
			nc := g.At(next)
			if nc.Kind != codel.KindColor || nc.Hue != want.Hue || nc.Light != want.Light {
				continue
			}
			visited[ni] = true
			queue = append(queue, next)
		}
	}
}
