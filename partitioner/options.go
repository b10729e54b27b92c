package partitioner

// Option customizes a Builder. Mirrors builder.BuilderOption's shape:
// a function that mutates a config, applied in order by New.
type Option func(cfg *config)

// config holds the configurable parameters for a single build.
type config struct {
	splitCostFactor      float64
	collapseOrphanLeaves bool
	observer             DiagnosticsObserver
	verbose              bool
}

// defaultSplitCostFactor is spec.md §6's "typical value 7" for the one
// tunable the external interface exposes.
const defaultSplitCostFactor = 7.0

func newConfig(opts ...Option) *config {
	cfg := &config{
		splitCostFactor:      defaultSplitCostFactor,
		collapseOrphanLeaves: true,
		observer:             DiagnosticsObserverBase{},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithSplitCostFactor overrides the split-cost factor F used by the
// cost evaluator (spec.md §4.3). Equivalent to the external interface's
// setSplitCostFactor.
func WithSplitCostFactor(f float64) Option {
	return func(cfg *config) { cfg.splitCostFactor = f }
}

// WithCollapseOrphanLeaves toggles spec.md §4.9 step 2's
// DENG_BSP_COLLAPSE_ORPHANED_LEAFS behavior (spec.md §9 Open Question
// 1). Defaults to true; held fixed for the lifetime of one Builder.
func WithCollapseOrphanLeaves(enabled bool) Option {
	return func(cfg *config) { cfg.collapseOrphanLeaves = enabled }
}

// WithObserver registers obs to receive the build's non-fatal
// notifications (spec.md §6). If obs is nil, this option is a no-op and
// the previously configured observer (or the default no-op) is kept.
func WithObserver(obs DiagnosticsObserver) Option {
	return func(cfg *config) {
		if obs != nil {
			cfg.observer = obs
		}
	}
}

// WithVerbose enables fmt.Printf-based progress logging, in the same
// spirit as flow.FlowOptions.Verbose.
func WithVerbose(v bool) Option {
	return func(cfg *config) { cfg.verbose = v }
}
