package metrics

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/reaandrew/rewritestats/core"
)

// CalcPct returns n/d as a percentage. A zero denominator yields 0 rather
// than an error so that empty logs still produce a report.
func CalcPct(n int, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d) * 100
}

// Options controls aggregation behavior.
type Options struct {
	// Strict additionally requires the two reports to cover the same
	// identifiers, not just the same number of functions.
	Strict bool
}

// Aggregate compares the pointwise report against the unmodified baseline and
// produces the run summary. The two reports must have equal cardinality;
// improved/broke are never computed from mismatched reports.
func Aggregate(pointwise core.FuncErrorReport, unmodified core.FuncErrorReport, opts Options) (*core.Summary, error) {
	if len(pointwise) != len(unmodified) {
		return nil, &core.ReportSizeMismatchError{
			PointwiseTotal:  len(pointwise),
			UnmodifiedTotal: len(unmodified),
		}
	}
	if opts.Strict {
		if err := checkIdentifiers(pointwise, unmodified); err != nil {
			return nil, err
		}
	}

	pointwiseOk := pointwise.PassSet()
	unmodifiedOk := unmodified.PassSet()
	improved := pointwiseOk.Minus(unmodifiedOk)
	broke := unmodifiedOk.Minus(pointwiseOk)

	total := len(pointwise)
	unmodifiedBad := total - len(unmodifiedOk)

	return &core.Summary{
		RunID:            uuid.New().String(),
		GeneratedAt:      time.Now().UTC(),
		TotalFunctions:   total,
		PointwisePassed:  len(pointwiseOk),
		UnmodifiedPassed: len(unmodifiedOk),
		Improved:         improved.Names(),
		Broke:            broke.Names(),
		PointwisePct:     CalcPct(len(pointwiseOk), total),
		UnmodifiedPct:    CalcPct(len(unmodifiedOk), total),
		ImprovedPct:      CalcPct(len(improved), unmodifiedBad),
		BrokePct:         CalcPct(len(broke), len(unmodifiedOk)),
	}, nil
}

func checkIdentifiers(pointwise core.FuncErrorReport, unmodified core.FuncErrorReport) error {
	var onlyPointwise, onlyUnmodified []string
	for fn := range pointwise {
		if _, ok := unmodified[fn]; !ok {
			onlyPointwise = append(onlyPointwise, fn)
		}
	}
	for fn := range unmodified {
		if _, ok := pointwise[fn]; !ok {
			onlyUnmodified = append(onlyUnmodified, fn)
		}
	}
	if len(onlyPointwise) > 0 || len(onlyUnmodified) > 0 {
		sort.Strings(onlyPointwise)
		sort.Strings(onlyUnmodified)
		return &core.IdentifierMismatchError{
			OnlyPointwise:  onlyPointwise,
			OnlyUnmodified: onlyUnmodified,
		}
	}
	return nil
}

// Records flattens both reports into per-function rows for persistence.
func Records(pointwise core.FuncErrorReport, unmodified core.FuncErrorReport) []core.FunctionRecord {
	records := make([]core.FunctionRecord, 0, len(pointwise)+len(unmodified))
	for _, fn := range pointwise.Names() {
		records = append(records, core.FunctionRecord{Log: core.LogPointwise, Name: fn, Errors: pointwise[fn]})
	}
	for _, fn := range unmodified.Names() {
		records = append(records, core.FunctionRecord{Log: core.LogUnmodified, Name: fn, Errors: unmodified[fn]})
	}
	return records
}
