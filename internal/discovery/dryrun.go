package discovery

import (
	"fmt"
	"io"
	"iter"

	"testflo/internal/domain"
)

// DryRun writes every identifier to w as it passes through
func DryRun(w io.Writer, ids iter.Seq[domain.Identifier]) iter.Seq[domain.Identifier] {
	return func(yield func(domain.Identifier) bool) {
		for id := range ids {
			fmt.Fprintln(w, id)
			if !yield(id) {
				return
			}
		}
	}
}
