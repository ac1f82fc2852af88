// Package grid implements the region analyzer and exit table builder of
// spec.md §4.2/§4.3: flood-filling a decoded codel grid into maximal
// same-color regions and precomputing each region's eight DP/CC exit
// codels.
package grid

import (
	"fmt"

	"github.com/bdwalton/gopiet/codel"
)

// Coord is a grid coordinate; the origin is top-left, +X right, +Y down.
type Coord struct {
	X, Y int
}

// Direction is the Direction Pointer (DP): one of Up, Right, Down, Left.
type Direction uint8

const (
	Up Direction = iota
	Right
	Down
	Left
)

func (d Direction) String() string {
	names := [...]string{"Up", "Right", "Down", "Left"}
	return names[d%4]
}

// Clockwise rotates the direction pointer clockwise by one step.
func (d Direction) Clockwise() Direction {
	return (d + 1) % 4
}

// Delta returns the (dx, dy) unit step for this direction.
func (d Direction) Delta() (int, int) {
	switch d {
	case Up:
		return 0, -1
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	default: // Left
		return -1, 0
	}
}

// Chooser is the Codel Chooser (CC): Left or Right.
type Chooser uint8

const (
	CCLeft Chooser = iota
	CCRight
)

func (c Chooser) String() string {
	if c == CCLeft {
		return "Left"
	}
	return "Right"
}

// Flip toggles the codel chooser.
func (c Chooser) Flip() Chooser {
	return 1 - c
}

// Grid is the two-dimensional array of codels the engine walks. Rows x
// cols, origin top-left. It is built once (two-phase construction per
// spec.md §9) and is immutable after NewGrid returns: region ids and exit
// tables never change over the program's lifetime.
type Grid struct {
	width, height int
	cells         []codel.Codel // row-major, len == width*height
	Regions       []*Region
}

// NewGrid builds the codel grid from already-decoded RGB rows (the host's
// responsibility; see spec.md §6), runs the region analyzer to assign
// RegionID to every Color codel, and builds each region's exit table. rows
// must be rectangular: len(rows) rows of identical len(rows[i]) columns.
func NewGrid(rows [][][3]uint8, opts codel.Options, diag func(string)) (*Grid, error) {
	height := len(rows)
	if height == 0 {
		return nil, fmt.Errorf("grid: empty input has no rows")
	}
	width := len(rows[0])
	if width == 0 {
		return nil, fmt.Errorf("grid: empty input has no columns")
	}

	g := &Grid{width: width, height: height, cells: make([]codel.Codel, width*height)}
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("grid: row %d has %d columns, want %d", y, len(row), width)
		}
		for x, rgb := range row {
			g.set(Coord{x, y}, codel.FromRGB(rgb[0], rgb[1], rgb[2], opts, diag))
		}
	}

	analyze(g)
	for _, r := range g.Regions {
		r.buildExitTable(g)
	}

	return g, nil
}

// Width and Height report the grid's dimensions in codels.
func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// InBounds reports whether c lies within the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

func (g *Grid) index(c Coord) int {
	return c.Y*g.width + c.X
}

// At returns the codel at c. The caller must check InBounds first.
func (g *Grid) At(c Coord) codel.Codel {
	return g.cells[g.index(c)]
}

func (g *Grid) set(c Coord, v codel.Codel) {
	g.cells[g.index(c)] = v
}

// RegionAt returns the region containing c, or nil if c is not a Color
// codel (White, Black, or out of bounds).
func (g *Grid) RegionAt(c Coord) *Region {
	if !g.InBounds(c) {
		return nil
	}
	cl := g.At(c)
	if !cl.HasRegion() {
		return nil
	}
	return g.Regions[cl.RegionID]
}
