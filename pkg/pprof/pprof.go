// Package pprof adds profiling support to rangebar.
package pprof

import (
	"fmt"
	"io"
	"os"
	"runtime/pprof"
)

// Profiles names the files that profiles are written to. Empty names disable
// the corresponding profiles.
type Profiles struct {
	CPU    string
	Allocs string
}

// Start starts the profiles and returns a function that finishes them. A
// profile whose file cannot be created is skipped with a warning written to
// stderr.
func (p Profiles) Start(stderr io.Writer) (stop func()) {
	var cleanups []func()
	if p.CPU != "" {
		f, err := os.Create(p.CPU)
		if err != nil {
			fmt.Fprintln(stderr, "Warning: cannot create CPU profile:", err)
			fmt.Fprintln(stderr, "Continuing without CPU profiling.")
		} else if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintln(stderr, "Warning: cannot start CPU profile:", err)
			f.Close()
		} else {
			cleanups = append(cleanups, func() {
				pprof.StopCPUProfile()
				f.Close()
			})
		}
	}
	if p.Allocs != "" {
		f, err := os.Create(p.Allocs)
		if err != nil {
			fmt.Fprintln(stderr, "Warning: cannot create memory allocation profile:", err)
			fmt.Fprintln(stderr, "Continuing without memory allocation profiling.")
		} else {
			cleanups = append(cleanups, func() {
				pprof.Lookup("allocs").WriteTo(f, 0)
				f.Close()
			})
		}
	}
	return func() {
		for _, cleanup := range cleanups {
			cleanup()
		}
	}
}
