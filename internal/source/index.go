package source

import (
	"go/ast"
	"go/token"
	"strconv"
)

const testifySuitePath = "github.com/stretchr/testify/suite"

type structInfo struct {
	embedsSuite bool
	embedded    []string // locally declared embedded types
}

// packageIndex holds what the classification of a unit needs to know about
// its whole package.
type packageIndex struct {
	structs    map[string]*structInfo
	methods    map[string][]string // receiver type -> exported methods
	entries    map[string]string   // case type -> Test function calling suite.Run
	entryFuncs map[string]bool
}

func indexPackage(files []*ast.File) *packageIndex {
	idx := &packageIndex{
		structs:    make(map[string]*structInfo),
		methods:    make(map[string][]string),
		entries:    make(map[string]string),
		entryFuncs: make(map[string]bool),
	}

	for _, file := range files {
		alias := suiteAlias(file)
		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.GenDecl:
				for _, spec := range d.Specs {
					if s, ok := spec.(*ast.TypeSpec); ok {
						if st, ok := s.Type.(*ast.StructType); ok {
							idx.structs[s.Name.Name] = inspectStruct(st, alias)
						}
					}
				}
			case *ast.FuncDecl:
				if d.Recv != nil {
					idx.addMethod(d)
					continue
				}
				if alias != "" && d.Body != nil {
					idx.addEntry(d, alias)
				}
			}
		}
	}

	return idx
}

func inspectStruct(st *ast.StructType, alias string) *structInfo {
	info := &structInfo{}
	for _, field := range st.Fields.List {
		if len(field.Names) > 0 {
			continue
		}
		switch t := unstar(field.Type).(type) {
		case *ast.SelectorExpr:
			if x, ok := t.X.(*ast.Ident); ok && alias != "" && x.Name == alias && t.Sel.Name == "Suite" {
				info.embedsSuite = true
			}
		case *ast.Ident:
			info.embedded = append(info.embedded, t.Name)
		}
	}
	return info
}

func (idx *packageIndex) addMethod(fn *ast.FuncDecl) {
	if len(fn.Recv.List) == 0 || !ast.IsExported(fn.Name.Name) {
		return
	}
	recv, ok := unstar(fn.Recv.List[0].Type).(*ast.Ident)
	if !ok {
		return
	}
	idx.methods[recv.Name] = append(idx.methods[recv.Name], fn.Name.Name)
}

// addEntry records fn as the entry point of every suite it hands to
// suite.Run.
func (idx *packageIndex) addEntry(fn *ast.FuncDecl, alias string) {
	ast.Inspect(fn.Body, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok || len(call.Args) < 2 {
			return true
		}
		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok || sel.Sel.Name != "Run" {
			return true
		}
		if x, ok := sel.X.(*ast.Ident); !ok || x.Name != alias {
			return true
		}
		if name := suiteArgType(call.Args[1]); name != "" {
			if _, seen := idx.entries[name]; !seen {
				idx.entries[name] = fn.Name.Name
			}
			idx.entryFuncs[fn.Name.Name] = true
		}
		return true
	})
}

func (idx *packageIndex) isCase(name string, visited map[string]bool) bool {
	if visited[name] {
		return false
	}
	visited[name] = true

	info, ok := idx.structs[name]
	if !ok {
		return false
	}
	if info.embedsSuite {
		return true
	}
	for _, embedded := range info.embedded {
		if idx.isCase(embedded, visited) {
			return true
		}
	}
	return false
}

// methodSet returns the methods of name plus those promoted from embedded
// local types. Own methods shadow promoted ones.
func (idx *packageIndex) methodSet(name string, visited map[string]bool) []string {
	if visited[name] {
		return nil
	}
	visited[name] = true

	seen := make(map[string]bool)
	var methods []string
	for _, m := range idx.methods[name] {
		if !seen[m] {
			seen[m] = true
			methods = append(methods, m)
		}
	}

	if info, ok := idx.structs[name]; ok {
		for _, embedded := range info.embedded {
			for _, m := range idx.methodSet(embedded, visited) {
				if !seen[m] {
					seen[m] = true
					methods = append(methods, m)
				}
			}
		}
	}

	return methods
}

// suiteAlias returns the name under which file imports testify's suite
// package, or "" when it does not.
func suiteAlias(file *ast.File) string {
	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil || path != testifySuitePath {
			continue
		}
		if imp.Name == nil {
			return "suite"
		}
		if imp.Name.Name == "_" || imp.Name.Name == "." {
			return ""
		}
		return imp.Name.Name
	}
	return ""
}

// suiteArgType extracts T from new(T), &T{} or T{}
func suiteArgType(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.CallExpr:
		if fn, ok := e.Fun.(*ast.Ident); ok && fn.Name == "new" && len(e.Args) == 1 {
			if t, ok := e.Args[0].(*ast.Ident); ok {
				return t.Name
			}
		}
	case *ast.UnaryExpr:
		if e.Op == token.AND {
			return suiteArgType(e.X)
		}
	case *ast.CompositeLit:
		if t, ok := e.Type.(*ast.Ident); ok {
			return t.Name
		}
	}
	return ""
}

func unstar(expr ast.Expr) ast.Expr {
	if star, ok := expr.(*ast.StarExpr); ok {
		return star.X
	}
	return expr
}
