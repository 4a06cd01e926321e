// Package library manages catalogs of named expressions: loading them
// from YAML or JSON files, compiling them in bulk, and persisting them
// through a pluggable store.
//
// The core language is I/O-free; this package is the host-side tooling
// around it for applications that keep their expressions in
// configuration rather than in code.
package library

import (
	"errors"
	"fmt"
	"sort"

	"github.com/firehammersolutions/jexl/pkg/jexl"
)

// Catalog maps expression names to their source text.
type Catalog map[string]string

// Names returns the catalog's expression names, sorted.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Compile compiles every expression in the catalog against j. All
// failures are collected and joined, so one bad expression reports
// alongside the rest instead of masking them; on any failure the result
// map is nil.
func (c Catalog) Compile(j *jexl.Jexl) (map[string]*jexl.Expression, error) {
	compiled := make(map[string]*jexl.Expression, len(c))
	var errs []error
	for _, name := range c.Names() {
		expr, err := j.Compile(c[name])
		if err != nil {
			errs = append(errs, fmt.Errorf("expression %q: %w", name, err))
			continue
		}
		compiled[name] = expr
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return compiled, nil
}

// Save writes every catalog entry to the store.
func (c Catalog) Save(store Store) error {
	for _, name := range c.Names() {
		if err := store.Put(name, c[name]); err != nil {
			return fmt.Errorf("save expression %q: %w", name, err)
		}
	}
	return nil
}
