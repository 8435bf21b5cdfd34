package parsers

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"

	"github.com/gobwas/glob"
	"github.com/reaandrew/rewritestats/core"
	log "github.com/sirupsen/logrus"
)

// funcErrorsRegex matches the only semantically significant line in a build
// log, e.g. "got 3 errors for src/foo.rs:bar". Everything else is noise from
// the compiler and the driver scripts.
var funcErrorsRegex = regexp.MustCompile(`^got ([0-9]+) errors for ([^ \n]+)$`)

// BuildLogParser extracts per-function error counts from a build log.
type BuildLogParser struct {
	includes []glob.Glob
	excludes []glob.Glob
}

// NewBuildLogParser compiles the optional include/exclude identifier patterns.
func NewBuildLogParser(includePatterns []string, excludePatterns []string) (*BuildLogParser, error) {
	includes, err := compilePatterns(includePatterns)
	if err != nil {
		return nil, err
	}
	excludes, err := compilePatterns(excludePatterns)
	if err != nil {
		return nil, err
	}
	return &BuildLogParser{includes: includes, excludes: excludes}, nil
}

func compilePatterns(patterns []string) ([]glob.Glob, error) {
	var compiled []glob.Glob
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid identifier pattern '%s': %w", pattern, err)
		}
		compiled = append(compiled, g)
	}
	return compiled, nil
}

// ParseFile opens path and parses it, closing the file before returning.
func (p *BuildLogParser) ParseFile(path string) (core.FuncErrorReport, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	report, err := p.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse build log '%s': %w", path, err)
	}
	return report, nil
}

// Parse scans the log line by line. Lines that do not match the error-count
// pattern are ignored; a matched identifier that was already registered is a
// fatal DuplicateEntryError. Identifiers rejected by the include/exclude
// filters are treated as if their lines never matched.
func (p *BuildLogParser) Parse(reader io.Reader) (core.FuncErrorReport, error) {
	report := make(core.FuncErrorReport)

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		groups := funcErrorsRegex.FindStringSubmatch(scanner.Text())
		if groups == nil {
			continue
		}

		fn := groups[2]
		if !p.selected(fn) {
			continue
		}

		errs, err := strconv.Atoi(groups[1])
		if err != nil {
			// Unreachable with the digit-only capture, but Atoi still
			// returns an error for counts that overflow int.
			return nil, fmt.Errorf("invalid error count '%s' for %s: %w", groups[1], fn, err)
		}

		if _, exists := report[fn]; exists {
			return nil, &core.DuplicateEntryError{Func: fn}
		}
		report[fn] = errs
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read build log: %w", err)
	}

	log.Debugf("Parsed %d function entries", len(report))
	return report, nil
}

func (p *BuildLogParser) selected(fn string) bool {
	if len(p.includes) > 0 {
		matched := false
		for _, g := range p.includes {
			if g.Match(fn) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	for _, g := range p.excludes {
		if g.Match(fn) {
			return false
		}
	}
	return true
}
