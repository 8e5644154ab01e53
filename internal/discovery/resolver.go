package discovery

import (
	"iter"

	"testflo/internal/domain"
)

// Resolve expands one identifier:
//
//	unit, unit:        every test of the unit
//	unit:case.method   itself, unchecked
//	unit:case          the sorted matching methods of case
//	unit:function      itself, left for the runner to validate
//
// A name that is not a test case falls back to being yielded unchanged.
func (d *Discoverer) Resolve(id domain.Identifier) iter.Seq[domain.Identifier] {
	return func(yield func(domain.Identifier) bool) {
		unit, name, method := id.Parts()
		if _, rest, _ := id.Split(); rest == "" {
			for found := range d.Introspect(unit) {
				if !yield(found) {
					return
				}
			}
			return
		}

		if method != "" {
			yield(id)
			return
		}

		canonical, u, err := d.loader.Load(unit)
		if err != nil {
			d.logger.Error().Err(err).Str("unit", unit).Msg("failed to load unit")
			return
		}

		c, ok := d.loader.LookupCase(u, name)
		if !ok {
			d.logger.Debug().Str("id", id.String()).Msg("not a test case, passing through")
			yield(id)
			return
		}

		for _, found := range d.Enumerate(canonical, c) {
			if !yield(found) {
				return
			}
		}
	}
}
