package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/cwbudde/algo-fieldsim/dsp/field"
)

type config struct {
	points   int
	size     int
	kernels  int
	steps    int
	dx       float64
	dt       float64
	sigma    float64
	axis     field.Axis
	workers  int
	sorted   bool
	operator string
	list     bool
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var cfg config
	var axis string

	fs := flag.NewFlagSet("fieldsim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&cfg.points, "points", 64, "number of spatial grid points")
	fs.IntVar(&cfg.size, "size", 3, "channels per point (kernel matrix side length)")
	fs.IntVar(&cfg.kernels, "kernels", 2, "kernel matrices (coefficients) per point")
	fs.IntVar(&cfg.steps, "steps", 10, "number of time steps")
	fs.Float64Var(&cfg.dx, "dx", 0.1, "grid spacing")
	fs.Float64Var(&cfg.dt, "dt", 1e-3, "time step")
	fs.Float64Var(&cfg.sigma, "sigma", 0.5, "width of the initial Gaussian and of the gauss operator")
	fs.StringVar(&axis, "axis", "modes", "FFT axis: modes or points")
	fs.IntVar(&cfg.workers, "workers", 1, "goroutines for the per-point loop")
	fs.BoolVar(&cfg.sorted, "sorted", false, "sort eigenpairs by real then imaginary part")
	fs.StringVar(&cfg.operator, "op", "fd1", "spatial operator (see -list)")
	fs.BoolVar(&cfg.list, "list", false, "list available operators")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: fieldsim [flags]\n\n")
		fmt.Fprintf(stderr, "Integrates a Gaussian field through the local-eigenbasis transform.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	switch strings.ToLower(axis) {
	case "modes":
		cfg.axis = field.AxisModes
	case "points":
		cfg.axis = field.AxisPoints
	default:
		return config{}, fmt.Errorf("unknown axis %q (want modes or points)", axis)
	}

	if cfg.list {
		return cfg, nil
	}
	if _, ok := lookupOperator(cfg.operator); !ok {
		return config{}, fmt.Errorf("unknown operator %q (use -list to see available)", cfg.operator)
	}
	if cfg.points <= 0 || cfg.size <= 0 || cfg.kernels <= 0 {
		return config{}, fmt.Errorf("grid dimensions must be > 0: points=%d size=%d kernels=%d", cfg.points, cfg.size, cfg.kernels)
	}
	if cfg.steps < 0 {
		return config{}, fmt.Errorf("steps must be >= 0: %d", cfg.steps)
	}
	if cfg.dx <= 0 || cfg.sigma <= 0 {
		return config{}, fmt.Errorf("dx and sigma must be > 0")
	}
	return cfg, nil
}
