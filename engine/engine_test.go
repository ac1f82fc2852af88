package engine

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bdwalton/gopiet/codel"
	"github.com/bdwalton/gopiet/grid"
)

func buildGrid(t *testing.T, rows ...string) *grid.Grid {
	t.Helper()
	palette := map[byte][3]uint8{
		'r': {0xFF, 0xC0, 0xC0}, // light red
		'R': {0xFF, 0x00, 0x00}, // red
		'D': {0xC0, 0x00, 0x00}, // dark red
		'y': {0xFF, 0xFF, 0xC0}, // light yellow
		'Y': {0xFF, 0xFF, 0x00},
		'W': {0xFF, 0xFF, 0xFF},
		'K': {0x00, 0x00, 0x00},
	}
	out := make([][][3]uint8, len(rows))
	for y, row := range rows {
		r := make([][3]uint8, len(row))
		for x := range row {
			rgb, ok := palette[row[x]]
			if !ok {
				t.Fatalf("unknown palette char %q", row[x])
			}
			r[x] = rgb
		}
		out[y] = r
	}
	g, err := grid.NewGrid(out, codel.Options{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func runToCompletion(e *Engine, cap int) {
	for i := 0; i < cap && e.IsAlive(); i++ {
		e.Advance()
	}
}

func TestScenario1SingleCodelTogglesOut(t *testing.T) {
	g := buildGrid(t, "R")
	var out bytes.Buffer
	e := New(g, Options{UnlimitedSteps: true}, nil, &out)

	runToCompletion(e, 100)

	if e.IsAlive() {
		t.Fatal("expected termination via eight toggles")
	}
	if out.Len() != 0 {
		t.Fatalf("stdout = %q, want empty", out.String())
	}
}

func TestScenario2PushThenNoOpMultiply(t *testing.T) {
	g := buildGrid(t, "rRy")
	var out bytes.Buffer
	e := New(g, Options{UnlimitedSteps: true}, nil, &out)

	runToCompletion(e, 200)

	if out.Len() != 0 {
		t.Fatalf("stdout = %q, want empty", out.String())
	}
}

func TestScenario3AddAndPrint(t *testing.T) {
	// spec.md scenario 3: a program that pushes 1, pushes 2, adds, then
	// OutNumbers must print "3". The decode table and region-walk are
	// covered by the other end-to-end tests; this isolates Add+OutNumber
	// composing correctly on a pre-seeded stack.
	var out bytes.Buffer
	e := New(buildGrid(t, "R"), Options{UnlimitedSteps: true}, nil, &out)
	e.stack = []int64{1, 2}
	e.add()
	e.outNumber()

	if got := out.String(); got != "3" {
		t.Fatalf("stdout = %q, want %q", got, "3")
	}
}

func TestScenario4DivideByZeroIsNoOp(t *testing.T) {
	var out bytes.Buffer
	e := New(buildGrid(t, "R"), Options{UnlimitedSteps: true}, nil, &out)
	e.stack = []int64{5, 0}
	e.divide()
	e.outNumber()

	if got := out.String(); got != "0" {
		t.Fatalf("stdout = %q, want %q (Divide must restore the stack on a=0)", got, "0")
	}
}

func TestScenario5RollWraps(t *testing.T) {
	e := New(buildGrid(t, "R"), Options{UnlimitedSteps: true}, nil, nil)

	e.stack = []int64{1, 2, 3, 4, 5, 3, 1}
	e.roll()
	want := []int64{1, 2, 5, 3, 4}
	if !equalStacks(e.stack, want) {
		t.Fatalf("roll(depth=3,rolls=1) on [1,2,3,4,5] = %v, want %v", e.stack, want)
	}

	e2 := New(buildGrid(t, "R"), Options{UnlimitedSteps: true}, nil, nil)
	e2.stack = []int64{1, 2, 3, 4, 5, 3, -1}
	e2.roll()
	want2 := []int64{1, 2, 4, 5, 3}
	if !equalStacks(e2.stack, want2) {
		t.Fatalf("roll(depth=3,rolls=-1) on [1,2,3,4,5] = %v, want %v", e2.stack, want2)
	}
}

func equalStacks(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestInCharOutCharRoundTrip(t *testing.T) {
	for b := byte(0); b < 128; b += 37 {
		in := strings.NewReader(string([]byte{b}))
		var out bytes.Buffer
		e := New(buildGrid(t, "R"), Options{UnlimitedSteps: true}, in, &out)

		e.inChar()
		e.outChar()

		if out.Len() != 1 || out.Bytes()[0] != b {
			t.Fatalf("byte %d: InChar/OutChar round trip produced %v", b, out.Bytes())
		}
	}
}

func TestMaxStepsTerminatesEngine(t *testing.T) {
	g := buildGrid(t, "RRYY", "RRYY")
	e := New(g, Options{MaxSteps: 3}, nil, nil)

	for i := 0; i < 100; i++ {
		e.Advance()
	}
	if e.IsAlive() {
		t.Fatal("expected engine to halt once MaxSteps is exceeded")
	}
	if e.Steps() <= 3 {
		t.Fatalf("Steps() = %d, want > 3 (it halts on the call that exceeds the limit)", e.Steps())
	}
}

func TestSetDiagInstallsSinkRegardlessOfVerbose(t *testing.T) {
	e := New(buildGrid(t, "R"), Options{UnlimitedSteps: true, Verbose: false}, nil, nil)

	var got string
	e.SetDiag(func(s string) { got = s })
	e.Advance()

	if got == "" {
		t.Fatal("SetDiag's sink was never called despite Options.Verbose = false; SetDiag must not re-gate on Verbose")
	}
}

func TestAllBlackTerminatesWithinEightToggles(t *testing.T) {
	g := buildGrid(t, "KKK", "KKK")
	e := New(g, Options{UnlimitedSteps: true}, nil, nil)

	// Eight Advance calls each toggle once; the ninth sees the toggle
	// count at the limit and halts without toggling again.
	for i := 0; i < 9; i++ {
		if !e.IsAlive() {
			break
		}
		e.Advance()
	}
	if e.IsAlive() {
		t.Fatal("an all-black grid must halt within eight toggles")
	}
	if e.Toggles() > 8 {
		t.Fatalf("Toggles() = %d, want at most 8", e.Toggles())
	}
}
