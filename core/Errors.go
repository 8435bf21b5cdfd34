package core

import (
	"fmt"
	"strings"
)

// DuplicateEntryError signals that one build log reported the same function
// twice, which means the log is malformed or two runs were concatenated.
type DuplicateEntryError struct {
	Func string
}

func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("duplicate entry for %q", e.Func)
}

// ReportSizeMismatchError signals that the two logs do not cover the same
// number of functions, so they were not generated from the same run.
type ReportSizeMismatchError struct {
	PointwiseTotal  int
	UnmodifiedTotal int
}

func (e *ReportSizeMismatchError) Error() string {
	return fmt.Sprintf("report size mismatch: pointwise log has %d functions, unmodified log has %d",
		e.PointwiseTotal, e.UnmodifiedTotal)
}

// IdentifierMismatchError is raised only in strict mode, when the two reports
// have equal size but disagree on which functions they cover.
type IdentifierMismatchError struct {
	OnlyPointwise  []string
	OnlyUnmodified []string
}

func (e *IdentifierMismatchError) Error() string {
	return fmt.Sprintf("reports cover different functions: only in pointwise log: [%s]; only in unmodified log: [%s]",
		strings.Join(sample(e.OnlyPointwise), ", "), strings.Join(sample(e.OnlyUnmodified), ", "))
}

const maxSampledIdentifiers = 5

func sample(names []string) []string {
	if len(names) <= maxSampledIdentifiers {
		return names
	}
	sampled := make([]string, maxSampledIdentifiers, maxSampledIdentifiers+1)
	copy(sampled, names[:maxSampledIdentifiers])
	sampled = append(sampled, fmt.Sprintf("and %d more", len(names)-maxSampledIdentifiers))
	return sampled
}
