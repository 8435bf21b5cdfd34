package core

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Thresholds are optional CI gates loaded from a TOML file. A nil field means
// the corresponding gate is disabled.
type Thresholds struct {
	MinPointwisePct *float64 `toml:"min_pointwise_pct"`
	MaxBrokePct     *float64 `toml:"max_broke_pct"`
}

func LoadThresholds(path string) (Thresholds, error) {
	var thresholds Thresholds
	if _, err := toml.DecodeFile(path, &thresholds); err != nil {
		return thresholds, fmt.Errorf("failed to load thresholds from '%s': %w", path, err)
	}
	return thresholds, nil
}

// Check returns an error describing the first violated gate, or nil.
func (t Thresholds) Check(summary *Summary) error {
	if t.MinPointwisePct != nil && summary.PointwisePct < *t.MinPointwisePct {
		return fmt.Errorf("pointwise pass rate %.1f%% is below the minimum of %.1f%%",
			summary.PointwisePct, *t.MinPointwisePct)
	}
	if t.MaxBrokePct != nil && summary.BrokePct > *t.MaxBrokePct {
		return fmt.Errorf("broke rate %.1f%% is above the maximum of %.1f%%",
			summary.BrokePct, *t.MaxBrokePct)
	}
	return nil
}
