package config

import (
	"time"

	"github.com/andrescamacho/blueprint-optimizer/internal/domain/production"
)

// OptimizerConfig holds search and evaluation settings
type OptimizerConfig struct {
	// Size of the per-blueprint worker pool
	Workers int `mapstructure:"workers" validate:"min=1"`

	// Horizon of the quality (sum of id × yield) scenario
	QualityHorizon int `mapstructure:"quality_horizon" validate:"horizon"`

	// Horizon of the product scenario
	ProductHorizon int `mapstructure:"product_horizon" validate:"horizon"`

	// Number of leading blueprints scored by the product scenario
	PrefixLimit int `mapstructure:"prefix_limit" validate:"min=0"`

	// Enumerate every affordable machine instead of always commissioning
	// a terminal machine when one is affordable
	ExhaustiveBranching bool `mapstructure:"exhaustive_branching"`

	// Skip the optimistic upper bound prune
	DisableUpperBound bool `mapstructure:"disable_upper_bound"`

	// Minimum time between progress log lines
	ProgressInterval time.Duration `mapstructure:"progress_interval"`
}

// SearchOptions converts the pruning toggles into domain search options
func (c OptimizerConfig) SearchOptions() production.SearchOptions {
	return production.SearchOptions{
		GreedyTerminal: !c.ExhaustiveBranching,
		UseUpperBound:  !c.DisableUpperBound,
	}
}

// Scenario is a named (mode, horizon, prefix) preset
type Scenario struct {
	Mode        production.AggregationMode
	Horizon     int
	PrefixLimit int
}

// QualityScenario returns the preset scoring every blueprint by id × yield
func (c OptimizerConfig) QualityScenario() Scenario {
	return Scenario{Mode: production.AggregateQuality, Horizon: c.QualityHorizon}
}

// ProductScenario returns the preset multiplying yields of the list prefix
func (c OptimizerConfig) ProductScenario() Scenario {
	return Scenario{Mode: production.AggregateProduct, Horizon: c.ProductHorizon, PrefixLimit: c.PrefixLimit}
}
