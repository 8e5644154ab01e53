package domain

import (
	"path/filepath"
	"strings"
)

// Identifier names a discoverable test unit, case, method or function.
//
// Accepted forms are:
//
//	unit
//	unit:case
//	unit:case.method
//	unit:function
//
// where unit is either a file system path or an import path. ':' and '.'
// are the only separators and there is no escaping.
type Identifier string

// NewIdentifier joins a unit path and a member name. With two names the
// result is unit:case.method.
func NewIdentifier(unit string, names ...string) Identifier {
	if len(names) == 0 {
		return Identifier(unit)
	}
	return Identifier(unit + ":" + strings.Join(names, "."))
}

// Split separates the unit from the rest at the first ':'.
func (id Identifier) Split() (unit, rest string, hasRest bool) {
	return strings.Cut(string(id), ":")
}

// Parts splits the identifier into unit, case (or function) name and method.
func (id Identifier) Parts() (unit, name, method string) {
	unit, rest, _ := id.Split()
	name, method, _ = strings.Cut(rest, ".")
	return unit, name, method
}

// Unit returns the unit portion of the identifier.
func (id Identifier) Unit() string {
	unit, _, _ := id.Split()
	return unit
}

// FullyQualified reports whether the identifier names a method. Such
// identifiers are never resolved further.
func (id Identifier) FullyQualified() bool {
	_, _, method := id.Parts()
	return method != ""
}

// ShortName returns the identifier with the unit reduced to its base name.
func (id Identifier) ShortName() string {
	unit, rest, hasRest := id.Split()
	base := filepath.Base(unit)
	if !hasRest {
		return base
	}
	return base + ":" + rest
}

func (id Identifier) String() string {
	return string(id)
}
