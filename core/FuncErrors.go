package core

import "sort"

// FuncErrorReport maps a function identifier to the number of compile errors
// reported for it in a single build log.
type FuncErrorReport map[string]int

// PassSet returns the identifiers with exactly zero errors.
func (r FuncErrorReport) PassSet() PassSet {
	pass := make(PassSet)
	for fn, errs := range r {
		if errs == 0 {
			pass[fn] = struct{}{}
		}
	}
	return pass
}

// Names returns all identifiers in the report, sorted.
func (r FuncErrorReport) Names() []string {
	names := make([]string, 0, len(r))
	for fn := range r {
		names = append(names, fn)
	}
	sort.Strings(names)
	return names
}

type PassSet map[string]struct{}

func (p PassSet) Contains(fn string) bool {
	_, ok := p[fn]
	return ok
}

// Minus returns the members of p that are not members of other.
func (p PassSet) Minus(other PassSet) PassSet {
	diff := make(PassSet)
	for fn := range p {
		if !other.Contains(fn) {
			diff[fn] = struct{}{}
		}
	}
	return diff
}

// Names returns the members of the set, sorted.
func (p PassSet) Names() []string {
	names := make([]string, 0, len(p))
	for fn := range p {
		names = append(names, fn)
	}
	sort.Strings(names)
	return names
}
