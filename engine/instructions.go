package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bdwalton/gopiet/grid"
)

// instruction names one cell of the decode table in spec.md §4.4.
type instruction uint8

const (
	nop instruction = iota
	iPush
	iPop
	iAdd
	iSubtract
	iMultiply
	iDivide
	iMod
	iNot
	iGreater
	iPointer
	iSwitch
	iDuplicate
	iRoll
	iInNumber
	iInChar
	iOutNumber
	iOutChar
)

// decodeTable is the (light_diff, hue_diff) -> instruction table of
// spec.md §4.4, indexed [light][hue].
var decodeTable = [3][6]instruction{
	{nop, iAdd, iDivide, iGreater, iDuplicate, iInChar},
	{iPush, iSubtract, iMod, iPointer, iRoll, iOutNumber},
	{iPop, iMultiply, iNot, iSwitch, iInNumber, iOutChar},
}

// execute decodes (lightDiff, hueDiff) and runs the corresponding
// instruction against the stack and pointers. origin is the region being
// left, whose Size feeds Push. Every instruction whose precondition fails
// is a safe no-op that leaves the stack exactly as it was.
func (e *Engine) execute(lightDiff, hueDiff int, origin *grid.Region) {
	switch decodeTable[lightDiff][hueDiff] {
	case nop:
		// no-op: light_diff == 0 && hue_diff == 0
	case iPush:
		e.push(origin)
	case iPop:
		e.pop()
	case iAdd:
		e.add()
	case iSubtract:
		e.subtract()
	case iMultiply:
		e.multiply()
	case iDivide:
		e.divide()
	case iMod:
		e.mod()
	case iNot:
		e.not()
	case iGreater:
		e.greater()
	case iPointer:
		e.pointer()
	case iSwitch:
		e.switchCC()
	case iDuplicate:
		e.duplicate()
	case iRoll:
		e.roll()
	case iInNumber:
		e.inNumber()
	case iInChar:
		e.inChar()
	case iOutNumber:
		e.outNumber()
	case iOutChar:
		e.outChar()
	}
}

func (e *Engine) push(origin *grid.Region) {
	e.stack = append(e.stack, int64(origin.Size()))
}

func (e *Engine) pop() {
	if len(e.stack) == 0 {
		return
	}
	e.stack = e.stack[:len(e.stack)-1]
}

// popTwo returns (b, a) — the second-from-top and top values — without
// mutating the stack, plus whether there were enough values.
func (e *Engine) popTwo() (b, a int64, ok bool) {
	n := len(e.stack)
	if n < 2 {
		return 0, 0, false
	}
	return e.stack[n-2], e.stack[n-1], true
}

// dropTwoPush removes the top two values and pushes v; callers must have
// already confirmed popTwo's ok.
func (e *Engine) dropTwoPush(v int64) {
	e.stack = append(e.stack[:len(e.stack)-2], v)
}

func (e *Engine) add() {
	if b, a, ok := e.popTwo(); ok {
		e.dropTwoPush(b + a)
	}
}

func (e *Engine) subtract() {
	if b, a, ok := e.popTwo(); ok {
		e.dropTwoPush(b - a)
	}
}

func (e *Engine) multiply() {
	if b, a, ok := e.popTwo(); ok {
		e.dropTwoPush(b * a)
	}
}

func (e *Engine) divide() {
	b, a, ok := e.popTwo()
	if !ok || a == 0 {
		return
	}
	e.dropTwoPush(b / a)
}

// mod implements Euclidean mod: the result has the sign of a (the
// divisor) and is non-negative when a > 0, per spec.md §4.5.
func (e *Engine) mod() {
	b, a, ok := e.popTwo()
	if !ok || a == 0 {
		return
	}
	m := b % a
	if m != 0 && (m < 0) != (a < 0) {
		m += a
	}
	e.dropTwoPush(m)
}

func (e *Engine) not() {
	n := len(e.stack)
	if n < 1 {
		return
	}
	if e.stack[n-1] == 0 {
		e.stack[n-1] = 1
	} else {
		e.stack[n-1] = 0
	}
}

func (e *Engine) greater() {
	b, a, ok := e.popTwo()
	if !ok {
		return
	}
	var v int64
	if b > a {
		v = 1
	}
	e.dropTwoPush(v)
}

// pointer rotates DP clockwise by a mod 4, per spec.md §4.5; negative a
// maps -1->3, -2->2, -3->1 (i.e. true Euclidean mod 4).
func (e *Engine) pointer() {
	n := len(e.stack)
	if n < 1 {
		return
	}
	a := e.stack[n-1]
	e.stack = e.stack[:n-1]

	steps := int(a % 4)
	if steps < 0 {
		steps += 4
	}
	for i := 0; i < steps; i++ {
		e.dp = e.dp.Clockwise()
	}
}

// switchCC flips CC if a is odd (including negative odds), per spec.md
// §4.5.
func (e *Engine) switchCC() {
	n := len(e.stack)
	if n < 1 {
		return
	}
	a := e.stack[n-1]
	e.stack = e.stack[:n-1]

	if a%2 != 0 {
		e.cc = e.cc.Flip()
	}
}

func (e *Engine) duplicate() {
	n := len(e.stack)
	if n < 1 {
		return
	}
	e.stack = append(e.stack, e.stack[n-1])
}

// roll implements the stack rotation of spec.md §4.5: pop rolls, then
// depth; depth <= 0 or an insufficient stack restores both values and is
// a no-op. A positive roll buries the top element depth-1 positions down
// (at the bottom of the rolled window), repeated r times; a negative roll
// does the inverse.
func (e *Engine) roll() {
	n := len(e.stack)
	if n < 2 {
		return
	}
	rolls := e.stack[n-1]
	depth := e.stack[n-2]

	if depth <= 0 || int64(n-2) < depth {
		return
	}

	e.stack = e.stack[:n-2]
	d := int(depth)
	base := len(e.stack) - d
	window := e.stack[base:]

	r := int(rolls % depth)
	if r < 0 {
		r += d
	}
	if r > 0 {
		rotateRight(window, r)
	}
}

// rotateRight rotates s right (toward higher indices, i.e. toward the top
// of the stack) by r positions in place.
func rotateRight(s []int64, r int) {
	r %= len(s)
	if r == 0 {
		return
	}
	reverse(s)
	reverse(s[:r])
	reverse(s[r:])
}

func reverse(s []int64) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func (e *Engine) inNumber() {
	line, err := e.in.ReadString('\n')
	if err != nil && line == "" {
		return
	}
	v, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	if err != nil {
		return
	}
	e.stack = append(e.stack, v)
}

func (e *Engine) inChar() {
	b, err := e.in.ReadByte()
	if err != nil {
		return
	}
	e.stack = append(e.stack, int64(b))
}

func (e *Engine) outNumber() {
	n := len(e.stack)
	if n < 1 {
		return
	}
	v := e.stack[n-1]
	e.stack = e.stack[:n-1]
	fmt.Fprintf(e.out, "%d", v)
}

func (e *Engine) outChar() {
	n := len(e.stack)
	if n < 1 {
		return
	}
	v := e.stack[n-1]
	if v < 0 || v > 0xFFFFFFFF || !validScalar(rune(v)) {
		return
	}
	e.stack = e.stack[:n-1]
	fmt.Fprintf(e.out, "%c", rune(v))
}

// validScalar reports whether r is a valid Unicode scalar value (i.e. not
// a surrogate half and within range), per spec.md §4.5's OutChar
// precondition.
func validScalar(r rune) bool {
	return r >= 0 && r <= 0x10FFFF && !(r >= 0xD800 && r <= 0xDFFF)
}
