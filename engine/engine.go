// Package engine implements the execution engine and stack machine of
// spec.md §4.4/§4.5: stepping a pair of rotating pointers (DP, CC) over a
// *grid.Grid, decoding color transitions into instructions, and running
// them against a 64-bit integer stack.
package engine

import (
	"bufio"
	"fmt"
	"io"

	"github.com/bdwalton/gopiet/grid"
)

// pointerKind names which of DP/CC was toggled most recently, so Advance
// can alternate between them per spec.md §4.4.
type pointerKind uint8

const (
	ptrDP pointerKind = iota
	ptrCC
)

// maxToggles is the number of consecutive fruitless toggles that halts the
// program (spec.md §4.4, the "no escape" rule).
const maxToggles = 8

// Options is the construction boundary contract of spec.md §6.
type Options struct {
	// MaxSteps bounds the number of Advance calls, including calls that
	// only toggle a pointer; ignored when UnlimitedSteps is set.
	MaxSteps uint64
	// UnlimitedSteps disables the MaxSteps bound.
	UnlimitedSteps bool
	// Verbose records the host's intent to log each step; the engine
	// itself never consults it; the host decides whether to call
	// SetDiag based on it (and on any trace destination it configures).
	Verbose bool
}

// Engine is the machine state of spec.md §3: DP, CC, position, stack,
// step/toggle counters and the alive flag. The grid, region table and exit
// tables it walks are owned and immutable once New returns.
type Engine struct {
	grid *grid.Grid
	opts Options

	dp  grid.Direction
	cc  grid.Chooser
	pos grid.Coord

	stack []int64

	steps       uint64
	toggles     uint64
	alive       bool
	lastToggled pointerKind

	in  *bufio.Reader
	out io.Writer

	// diag, if non-nil, receives one formatted line per step. Installed
	// by SetDiag; opts.Verbose plays no role here.
	diag func(string)
}

// New constructs an engine over g with the initial state spec.md §6
// mandates: DP=Right, CC=Left, position=(0,0), empty stack, alive.
func New(g *grid.Grid, opts Options, stdin io.Reader, stdout io.Writer) *Engine {
	if stdin == nil {
		stdin = io.LimitReader(nil, 0)
	}
	e := &Engine{
		grid:        g,
		opts:        opts,
		dp:          grid.Right,
		cc:          grid.CCLeft,
		pos:         grid.Coord{X: 0, Y: 0},
		alive:       true,
		lastToggled: ptrDP,
		in:          bufio.NewReader(stdin),
		out:         stdout,
	}
	return e
}

// SetDiag installs the diagnostic sink the engine calls once per step. The
// host CLI calls this to route step traces to stderr or a trace file; it
// decides whether and when to call SetDiag at all (Options.Verbose only
// records the host's intent at construction time and is never consulted
// here). An engine built via New without a subsequent SetDiag call discards
// diagnostics.
func (e *Engine) SetDiag(fn func(string)) {
	e.diag = fn
}

// IsAlive reports whether the engine will perform further work on Advance.
func (e *Engine) IsAlive() bool {
	return e.alive
}

// Steps returns the number of Advance calls made so far.
func (e *Engine) Steps() uint64 { return e.steps }

// Toggles returns the number of consecutive pointer toggles since the
// engine last entered a new color block (reset to 0 only then; a white
// transit that ends on a non-color codel toggles and keeps counting).
func (e *Engine) Toggles() uint64 { return e.toggles }

// String renders the current machine state in one line, for diagnostics
// only; it has no effect on execution.
func (e *Engine) String() string {
	return fmt.Sprintf("DP=%s CC=%s pos=(%d,%d) stack=%v steps=%d", e.dp, e.cc, e.pos.X, e.pos.Y, e.stack, e.steps)
}

func (e *Engine) logStep(msg string) {
	if e.diag != nil {
		e.diag(fmt.Sprintf("%s: %s", e, msg))
	}
}

// Advance performs one step of spec.md §4.4: it increments the step
// counter, checks the termination conditions, attempts to find the next
// codel, and either executes the decoded instruction, moves without
// executing (white transit), or toggles a pointer on failure.
func (e *Engine) Advance() {
	if !e.alive {
		return
	}

	e.steps++
	if !e.opts.UnlimitedSteps && e.steps > e.opts.MaxSteps {
		e.alive = false
		e.logStep("step limit reached, halting")
		return
	}
	if e.toggles >= maxToggles {
		e.alive = false
		e.logStep("eight consecutive toggles without a move, halting")
		return
	}

	res, ok := e.findNext()
	if !ok {
		e.toggle()
		e.logStep("blocked, toggled pointer")
		return
	}

	origin := e.grid.RegionAt(e.pos)
	e.pos = res.coord

	if !res.reachedNewBlock {
		e.toggle()
		e.logStep("white transit ended off-color, toggled pointer")
		return
	}

	e.toggles = 0
	if res.traveledThroughWhite {
		e.logStep("moved through white, no instruction")
		return
	}

	dest := e.grid.RegionAt(e.pos)
	if origin == nil || dest == nil || origin == dest {
		// Defensive: white transits have already returned above, and
		// findNext only reports a direct move into a different region,
		// so this is not reached in practice; a (0,0) delta would be a
		// no-op regardless.
		e.logStep("zero color delta, no instruction")
		return
	}

	lightDiff := (int(dest.Light) + 3 - int(origin.Light)) % 3
	hueDiff := (int(dest.Hue) + 6 - int(origin.Hue)) % 6
	e.execute(lightDiff, hueDiff, origin)
	e.logStep(fmt.Sprintf("executed (L=%d,H=%d)", lightDiff, hueDiff))
}

// toggle alternates which pointer it rotates, per spec.md §4.4: after a CC
// flip it rotates DP next, and vice versa.
func (e *Engine) toggle() {
	if e.lastToggled == ptrDP {
		e.cc = e.cc.Flip()
		e.lastToggled = ptrCC
	} else {
		e.dp = e.dp.Clockwise()
		e.lastToggled = ptrDP
	}
	e.toggles++
}
