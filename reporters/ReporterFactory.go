package reporters

import (
	"fmt"

	"github.com/reaandrew/rewritestats/core"
)

// CreateReporter maps a --report format name to a reporter implementation.
func CreateReporter(format string, outputDir string, queries core.SqlQueries, dbPath string) (core.Reporter, error) {
	switch format {
	case "text":
		return NewTextReporter(), nil
	case "json":
		return JsonReporter{Queries: queries, OutputDir: outputDir, DBPath: dbPath}, nil
	case "xlsx":
		return XlsxReporter{Queries: queries, OutputDir: outputDir, DBPath: dbPath}, nil
	}
	return nil, fmt.Errorf("unknown report format: %s", format)
}
