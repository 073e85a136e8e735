// Command fieldsim advances a Gaussian field through the local-eigenbasis
// transform pipeline and prints per-step statistics.
//
// Usage:
//
//	fieldsim [flags]
//
// The field has -size channels sampled on -points grid points. Every point
// gets -kernels synthetic kernel matrices. The rate function detransforms
// the state, applies the selected spectral operator to every channel and
// transforms the result back.
//
// Examples:
//
//	fieldsim
//	fieldsim -op fd2 -steps 20 -dt 1e-4
//	fieldsim -points 128 -size 4 -workers 4 -sorted
//	fieldsim -list
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-fieldsim/dsp/deriv"
	"github.com/cwbudde/algo-fieldsim/dsp/gauss"
)

type operatorEntry struct {
	name  string
	desc  string
	sign  float64
	build func(x []float64, dx, sigma float64) ([]complex128, error)
}

var registry = []operatorEntry{
	{"fd1", "advection with the 11-point first derivative", -1, func(x []float64, dx, _ float64) ([]complex128, error) {
		return deriv.FirstDerivativeFor(x, dx, 1)
	}},
	{"fd1sq", "diffusion with the first derivative applied twice", 1, func(x []float64, dx, _ float64) ([]complex128, error) {
		return deriv.FirstDerivativeFor(x, dx, 2)
	}},
	{"fd2", "diffusion with the 7-point second derivative", 1, func(x []float64, dx, _ float64) ([]complex128, error) {
		return deriv.SecondDerivativeFor(x, dx)
	}},
	{"gauss", "advection with a Gaussian-smoothed derivative", 1, func(x []float64, _, sigma float64) ([]complex128, error) {
		return gauss.BellDerivativeSpectrum(x, 0, sigma)
	}},
}

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	if cfg.list {
		printList(os.Stdout)
		return
	}

	if err := run(cfg, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printList(w io.Writer) {
	entries := append([]operatorEntry(nil), registry...)
	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\n", e.name, e.desc)
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

func lookupOperator(name string) (operatorEntry, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, e := range registry {
		if e.name == name {
			return e, true
		}
	}
	return operatorEntry{}, false
}
