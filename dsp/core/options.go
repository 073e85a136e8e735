package core

// SolverConfig defines settings shared by the per-point eigenbasis stages.
type SolverConfig struct {
	// Workers bounds the number of goroutines used by per-point loops.
	// Values <= 1 run the loop on the calling goroutine.
	Workers int

	// SortEigenvalues imposes a canonical eigenpair order (real part, then
	// imaginary part). When false the solver order is kept.
	SortEigenvalues bool
}

// SolverOption mutates a SolverConfig.
type SolverOption func(*SolverConfig)

// DefaultSolverConfig returns a sequential configuration that keeps the
// solver's native eigenvalue order.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		Workers: 1,
	}
}

// WithWorkers sets the number of goroutines for per-point loops.
func WithWorkers(n int) SolverOption {
	return func(cfg *SolverConfig) {
		if n > 0 {
			cfg.Workers = n
		}
	}
}

// WithSortedEigenvalues enables canonical eigenpair ordering.
func WithSortedEigenvalues() SolverOption {
	return func(cfg *SolverConfig) {
		cfg.SortEigenvalues = true
	}
}

// ApplySolverOptions applies zero or more options to the default config.
func ApplySolverOptions(opts ...SolverOption) SolverConfig {
	cfg := DefaultSolverConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
