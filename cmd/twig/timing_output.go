package main

import (
	"fmt"
	"io"

	"twig/internal/observ"
)

// printTimings writes the phase table when --timings is set and --quiet is not.
func printTimings(out io.Writer, timer *observ.Timer) {
	if out == nil || timer == nil || !current.timings || current.quiet {
		return
	}
	fmt.Fprint(out, timer.Summary())
}
