// Package codel implements the color model of a Piet program: mapping a
// decoded RGB triple to the tagged codel kind (Color, White or Black) that
// the region analyzer and execution engine operate on.
package codel

import (
	"fmt"
	"image/color"
)

// Hue indexes the six canonical piet hues.
type Hue uint8

const (
	Red Hue = iota
	Yellow
	Green
	Cyan
	Blue
	Magenta
)

func (h Hue) String() string {
	names := [...]string{"Red", "Yellow", "Green", "Cyan", "Blue", "Magenta"}
	if int(h) >= len(names) {
		return fmt.Sprintf("Hue(%d)", uint8(h))
	}
	return names[h]
}

// Light indexes the three lightness levels a hue can appear at.
type Light uint8

const (
	Pale Light = iota // light
	Normal
	Dark
)

func (l Light) String() string {
	names := [...]string{"Light", "Normal", "Dark"}
	if int(l) >= len(names) {
		return fmt.Sprintf("Light(%d)", uint8(l))
	}
	return names[l]
}

// Kind discriminates the three disjoint codel shapes. Color carries
// (Hue, Light) plus a region id assigned by the region analyzer; White and
// Black carry neither.
type Kind uint8

const (
	KindColor Kind = iota
	KindWhite
	KindBlack
)

// noRegion marks a Color codel that has not yet been back-annotated by the
// region analyzer.
const noRegion = -1

// Codel is the tagged variant described in spec.md §3: a Color{Hue, Light,
// RegionID}, a White, or a Black. Do not construct one with a Kind other
// than KindColor and a negative RegionID and expect RegionID to mean
// anything until the region analyzer has run.
type Codel struct {
	Kind     Kind
	Hue      Hue
	Light    Light
	RegionID int
}

// White returns a White codel.
func White() Codel { return Codel{Kind: KindWhite, RegionID: noRegion} }

// Black returns a Black codel.
func Black() Codel { return Codel{Kind: KindBlack, RegionID: noRegion} }

// Color returns a Color codel at the given hue/light, not yet assigned to a
// region.
func Color(h Hue, l Light) Codel {
	return Codel{Kind: KindColor, Hue: h, Light: l, RegionID: noRegion}
}

// HasRegion reports whether the region analyzer has back-annotated this
// codel with a region id.
func (c Codel) HasRegion() bool {
	return c.Kind == KindColor && c.RegionID != noRegion
}

func (c Codel) String() string {
	switch c.Kind {
	case KindWhite:
		return "White"
	case KindBlack:
		return "Black"
	default:
		return fmt.Sprintf("%s-%s", c.Light, c.Hue)
	}
}

// canonical maps the 18 canonical piet RGB triples plus pure white/black to
// their Codel. Populated by init from the table in spec.md §4.1.
var canonical = map[color.RGBA]Codel{}

func init() {
	hexes := [6][3]uint32{
		{0xFFC0C0, 0xFF0000, 0xC00000}, // red
		{0xFFFFC0, 0xFFFF00, 0xC0C000}, // yellow
		{0xC0FFC0, 0x00FF00, 0x00C000}, // green
		{0xC0FFFF, 0x00FFFF, 0x00C0C0}, // cyan
		{0xC0C0FF, 0x0000FF, 0x0000C0}, // blue
		{0xFFC0FF, 0xFF00FF, 0xC000C0}, // magenta
	}
	for h, lights := range hexes {
		for l, hex := range lights {
			canonical[rgbaFromHex(hex)] = Color(Hue(h), Light(l))
		}
	}
	canonical[rgbaFromHex(0xFFFFFF)] = White()
	canonical[rgbaFromHex(0x000000)] = Black()
}

func rgbaFromHex(hex uint32) color.RGBA {
	return color.RGBA{
		R: uint8(hex >> 16),
		G: uint8(hex >> 8),
		B: uint8(hex),
		A: 0xFF,
	}
}

// Options carries the small set of fields the color model consults; it is
// the boundary contract of spec.md §6.
type Options struct {
	// UnknownWhite resolves an unrecognized RGB triple to White instead
	// of Black.
	UnknownWhite bool
}

// FromRGB maps an RGB triple to its Codel per spec.md §4.1. Unrecognized
// colors fail soft: the caller's diagnostic sink (if any) is invoked and
// the codel resolves to White or Black per opts.UnknownWhite.
func FromRGB(r, g, b uint8, opts Options, diag func(string)) Codel {
	c, ok := canonical[color.RGBA{R: r, G: g, B: b, A: 0xFF}]
	if ok {
		return c
	}
	if diag != nil {
		diag(fmt.Sprintf("unrecognized codel color #%02X%02X%02X, resolving to %s", r, g, b, fallbackName(opts.UnknownWhite)))
	}
	if opts.UnknownWhite {
		return White()
	}
	return Black()
}

func fallbackName(unknownWhite bool) string {
	if unknownWhite {
		return "White"
	}
	return "Black"
}
