package discovery

import (
	"iter"
	"path/filepath"
	"slices"

	"testflo/internal/domain"
	"testflo/internal/source"
)

// Introspect yields the tests declared in the unit at path: every matching
// method of its test cases and every matching free function. A package
// init unit, or a package, yields the tests of its directory instead.
// Units that fail to load are logged and yield nothing.
func (d *Discoverer) Introspect(path string) iter.Seq[domain.Identifier] {
	return func(yield func(domain.Identifier) bool) {
		canonical, unit, err := d.loader.Load(path)
		if err != nil {
			d.logger.Error().Err(err).Str("unit", path).Msg("failed to load unit")
			return
		}

		if unit.IsPackage() || d.isPackageInit(canonical) {
			dir := canonical
			if !unit.IsPackage() {
				dir = filepath.Dir(canonical)
			}
			for id := range d.dirIter(dir) {
				if !yield(id) {
					return
				}
			}
			return
		}

		for _, member := range unit.Members() {
			switch member.Kind {
			case source.KindCase:
				c, ok := unit.Case(member.Name)
				if !ok {
					continue
				}
				for _, id := range d.Enumerate(path, c) {
					if !yield(id) {
						return
					}
				}
			case source.KindFunction:
				if d.filter.Match(d.methodPattern, member.Name) {
					if !yield(domain.NewIdentifier(path, member.Name)) {
						return
					}
				}
			}
		}
	}
}

// Enumerate returns the identifiers of the methods of c matching the
// method pattern, sorted.
func (d *Discoverer) Enumerate(path string, c *source.Case) []domain.Identifier {
	var ids []domain.Identifier
	for _, method := range c.Methods() {
		if d.filter.Match(d.methodPattern, method) {
			ids = append(ids, domain.NewIdentifier(path, c.Name, method))
		}
	}
	slices.Sort(ids)
	return ids
}
