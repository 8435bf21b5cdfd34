package core

import "time"

// Summary holds the result of comparing a pointwise-rewrite build log against
// an unmodified-baseline build log.
type Summary struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	TotalFunctions   int `json:"total_functions"`
	PointwisePassed  int `json:"pointwise_passed"`
	UnmodifiedPassed int `json:"unmodified_passed"`

	// Improved are functions that pass only after pointwise rewriting; Broke
	// are functions that passed unmodified but fail after rewriting.
	Improved []string `json:"improved"`
	Broke    []string `json:"broke"`

	PointwisePct  float64 `json:"pointwise_pct"`
	UnmodifiedPct float64 `json:"unmodified_pct"`
	ImprovedPct   float64 `json:"improved_pct"`
	BrokePct      float64 `json:"broke_pct"`
}

// UnmodifiedFailed is the denominator for the improved percentage.
func (s *Summary) UnmodifiedFailed() int {
	return s.TotalFunctions - s.UnmodifiedPassed
}
