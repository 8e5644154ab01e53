package discovery

import (
	"io/fs"
	"iter"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Walker lazily enumerates unit files below a directory
type Walker struct {
	exclude []string
	filter  *Filter
	logger  zerolog.Logger
}

// NewWalker creates a new Walker skipping directories whose name matches
// any of the exclude patterns
func NewWalker(exclude []string, logger zerolog.Logger) *Walker {
	return &Walker{
		exclude: exclude,
		filter:  NewFilter(),
		logger:  logger,
	}
}

// Walk yields the files under root whose base name matches pattern, in
// lexical order. The root itself is never excluded.
func (w *Walker) Walk(root, pattern string) iter.Seq[string] {
	return func(yield func(string) bool) {
		clean := filepath.Clean(root)

		err := filepath.WalkDir(clean, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				w.logger.Error().Err(err).Str("path", path).Msg("cannot scan path")
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() {
				if path != clean && w.filter.MatchAny(w.exclude, d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}

			if !w.filter.Match(pattern, d.Name()) {
				return nil
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil {
			w.logger.Error().Err(err).Str("root", clean).Msg("scan aborted")
		}
	}
}
