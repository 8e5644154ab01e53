package discovery

import (
	"iter"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"testflo/internal/config"
	"testflo/internal/domain"
	"testflo/internal/source"
)

// UnitWalker enumerates candidate unit files below a directory
type UnitWalker interface {
	Walk(root, pattern string) iter.Seq[string]
}

// Loader loads units and looks up their test cases
type Loader interface {
	Load(path string) (string, *source.Unit, error)
	LookupCase(u *source.Unit, name string) (*source.Case, bool)
}

// DiscoveredSet records the identifiers already emitted by one discovery run
type DiscoveredSet map[domain.Identifier]struct{}

// Add records id and reports whether it was new
func (s DiscoveredSet) Add(id domain.Identifier) bool {
	if _, ok := s[id]; ok {
		return false
	}
	s[id] = struct{}{}
	return true
}

// Discoverer expands directories and partial identifiers into runnable
// test identifiers
type Discoverer struct {
	unitPattern   string
	methodPattern string
	packageInit   string

	walker UnitWalker
	loader Loader
	filter *Filter
	logger zerolog.Logger
}

// NewDiscoverer creates a new Discoverer
func NewDiscoverer(cfg *config.Config, walker UnitWalker, loader Loader, logger zerolog.Logger) *Discoverer {
	return &Discoverer{
		unitPattern:   cfg.UnitPattern,
		methodPattern: cfg.MethodPattern,
		packageInit:   cfg.PackageInit,
		walker:        walker,
		loader:        loader,
		filter:        NewFilter(),
		logger:        logger,
	}
}

// Discover returns the identifiers found for inputs, each either a
// directory or an identifier. Every identifier is emitted once, in the
// order it is first found.
func (d *Discoverer) Discover(inputs []string) iter.Seq[domain.Identifier] {
	return func(yield func(domain.Identifier) bool) {
		seen := make(DiscoveredSet)

		for _, input := range inputs {
			var ids iter.Seq[domain.Identifier]
			if isDir(input) {
				ids = d.dirIter(input)
			} else {
				ids = d.Resolve(domain.Identifier(input))
			}

			for id := range ids {
				if !seen.Add(id) {
					continue
				}
				if !yield(id) {
					return
				}
			}
		}
	}
}

// dirIter yields the tests of every unit below dir. Package init files are
// skipped; their directory is being walked already.
func (d *Discoverer) dirIter(dir string) iter.Seq[domain.Identifier] {
	return func(yield func(domain.Identifier) bool) {
		d.logger.Debug().Str("dir", dir).Msg("scanning directory")

		for path := range d.walker.Walk(dir, d.unitPattern) {
			if d.isPackageInit(path) {
				continue
			}
			for id := range d.Introspect(path) {
				if !yield(id) {
					return
				}
			}
		}
	}
}

func (d *Discoverer) isPackageInit(path string) bool {
	return d.filter.Match(d.packageInit, filepath.Base(path))
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
