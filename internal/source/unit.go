package source

import (
	"fmt"
	"slices"
)

// Kind classifies a top-level member of a unit
type Kind int

const (
	KindOther Kind = iota
	KindCase
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindCase:
		return "case"
	case KindFunction:
		return "function"
	default:
		return "other"
	}
}

// Member is a named top-level declaration of a unit
type Member struct {
	Name string
	Kind Kind
}

// Case is a test-case type: a struct embedding testify's suite.Suite,
// directly or through another case type of the same package.
type Case struct {
	Name string
	// Entry is the Test function that runs the suite through suite.Run.
	// Empty when the package has none.
	Entry   string
	methods []string
}

// Methods returns the exported methods of the case, including promoted
// ones, in no particular order.
func (c *Case) Methods() []string {
	return slices.Clone(c.methods)
}

// Unit is a loaded Go source file
type Unit struct {
	Path    string // Canonical path of the file, or of the directory for package units
	Package string // Go package name

	pkg     bool
	members []Member
	cases   map[string]*Case
}

// IsPackage reports whether the unit stands for a whole directory rather
// than a single file.
func (u *Unit) IsPackage() bool {
	return u.pkg
}

// Members returns the top-level declarations in declaration order
func (u *Unit) Members() []Member {
	return slices.Clone(u.members)
}

// Case returns the case type declared in the unit under name
func (u *Unit) Case(name string) (*Case, bool) {
	c, ok := u.cases[name]
	return c, ok
}

// LoadError reports a unit that could not be loaded
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
