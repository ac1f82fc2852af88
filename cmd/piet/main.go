// Command piet runs a Piet program stored as a PNG, GIF or QOI image.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/bdwalton/gopiet/codel"
	"github.com/bdwalton/gopiet/engine"
	"github.com/bdwalton/gopiet/grid"
	"github.com/bdwalton/gopiet/loader"
)

var (
	codelSize    = flag.Int("c", 1, "Codel size in pixels (also --codel-size).")
	codelSizeAlt = flag.Int("codel-size", 1, "Codel size in pixels.")
	maxSteps     = flag.Uint64("e", 0, "Maximum number of steps to execute; 0 means unlimited (also --max-steps).")
	maxStepsAlt  = flag.Uint64("max-steps", 0, "Maximum number of steps to execute; 0 means unlimited.")
	verbose      = flag.Bool("v", false, "Enable verbose diagnostics on stderr (also --verbose).")
	verboseAlt   = flag.Bool("verbose", false, "Enable verbose diagnostics on stderr.")
	unknownWhite = flag.Bool("unknown-white", false, "Resolve unrecognized codel colors to White instead of Black.")
	trace        = flag.String("t", "", "Write a step-by-step execution trace to this path (also --trace). A .zst suffix streams it through zstd.")
	traceAlt     = flag.String("trace", "", "Write a step-by-step execution trace to this path. A .zst suffix streams it through zstd.")
)

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: piet [flags] <image>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	imgPath := flag.Arg(0)

	size := firstNonDefault(*codelSize, *codelSizeAlt, 1)
	steps := firstNonDefaultU64(*maxSteps, *maxStepsAlt, 0)
	isVerbose := *verbose || *verboseAlt
	tracePath := firstNonEmpty(*trace, *traceAlt)

	rows, err := loader.Load(imgPath, size)
	if err != nil {
		log.Fatalf("piet: %v", err)
	}

	diag := func(s string) {
		if isVerbose {
			fmt.Fprintln(os.Stderr, s)
		}
	}

	g, err := grid.NewGrid(rows, codel.Options{UnknownWhite: *unknownWhite}, diag)
	if err != nil {
		log.Fatalf("piet: %v", err)
	}

	e := engine.New(g, engine.Options{
		MaxSteps:       steps,
		UnlimitedSteps: steps == 0,
		Verbose:        isVerbose,
	}, os.Stdin, os.Stdout)

	if tracePath != "" {
		w, closer, err := loader.OpenTrace(tracePath)
		if err != nil {
			log.Fatalf("piet: %v", err)
		}
		defer closer.Close()
		e.SetDiag(func(s string) { fmt.Fprintln(w, s) })
	} else if isVerbose {
		e.SetDiag(func(s string) { fmt.Fprintln(os.Stderr, s) })
	}

	for e.IsAlive() {
		e.Advance()
	}
}

// firstNonDefault returns the short-flag value if it differs from def
// (meaning the caller set -c), else the long-flag value, mirroring the
// dual short/long flag pairs used across the pack's CLIs.
func firstNonDefault(short, long, def int) int {
	if short != def {
		return short
	}
	return long
}

func firstNonDefaultU64(short, long, def uint64) uint64 {
	if short != def {
		return short
	}
	return long
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
