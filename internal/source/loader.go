package source

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/mod/modfile"
)

// Loader turns Go source paths into introspectable units. Paths that do not
// exist on disk are resolved as import paths of the enclosing module.
type Loader struct {
	moduleDir string
	logger    zerolog.Logger
}

// NewLoader creates a Loader. moduleDir is where the search for go.mod
// starts; empty means the working directory.
func NewLoader(moduleDir string, logger zerolog.Logger) *Loader {
	return &Loader{
		moduleDir: moduleDir,
		logger:    logger,
	}
}

// Load parses the unit at path and returns its canonical path. A directory
// yields a package unit without members. Failures are *LoadError.
func (l *Loader) Load(path string) (string, *Unit, error) {
	resolved, info, err := l.resolve(path)
	if err != nil {
		return "", nil, &LoadError{Path: path, Err: err}
	}

	if info.IsDir() {
		return resolved, &Unit{Path: resolved, pkg: true}, nil
	}

	unit, err := l.loadFile(resolved)
	if err != nil {
		return "", nil, &LoadError{Path: path, Err: err}
	}

	l.logger.Debug().
		Str("unit", resolved).
		Int("members", len(unit.members)).
		Int("cases", len(unit.cases)).
		Msg("loaded unit")

	return resolved, unit, nil
}

// LookupCase returns the case type called name in u. It reports false when
// the name is unknown or does not denote a case type.
func (l *Loader) LookupCase(u *Unit, name string) (*Case, bool) {
	if u == nil || u.pkg {
		return nil, false
	}
	return u.Case(name)
}

// SuiteEntry returns the name of the Test function running caseName
func (l *Loader) SuiteEntry(path, caseName string) (string, error) {
	_, unit, err := l.Load(path)
	if err != nil {
		return "", err
	}

	c, ok := l.LookupCase(unit, caseName)
	if !ok {
		return "", fmt.Errorf("%s is not a test suite in %s", caseName, path)
	}
	if c.Entry == "" {
		return "", fmt.Errorf("no Test function runs suite %s", caseName)
	}

	return c.Entry, nil
}

func (l *Loader) resolve(path string) (string, os.FileInfo, error) {
	clean := filepath.Clean(path)
	if info, err := os.Stat(clean); err == nil {
		return clean, info, nil
	}

	root, modulePath, err := l.findModule()
	if err != nil {
		return "", nil, fmt.Errorf("no such file, and no module to resolve it in: %w", err)
	}

	rel, ok := trimModulePath(filepath.ToSlash(path), modulePath)
	if !ok {
		return "", nil, fmt.Errorf("no such file or package in module %s", modulePath)
	}

	candidate := filepath.Join(root, filepath.FromSlash(rel))
	info, err := os.Stat(candidate)
	if err != nil {
		return "", nil, fmt.Errorf("resolve import path: %w", err)
	}

	return candidate, info, nil
}

// findModule walks up from the module directory to the nearest go.mod and
// returns its directory and module path.
func (l *Loader) findModule() (string, string, error) {
	dir := l.moduleDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", "", err
		}
		dir = wd
	}

	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", "", err
	}

	for {
		goModPath := filepath.Join(dir, "go.mod")
		content, err := os.ReadFile(goModPath)
		if err == nil {
			modFile, err := modfile.Parse(goModPath, content, nil)
			if err != nil {
				return "", "", fmt.Errorf("failed to parse go.mod: %w", err)
			}
			if modFile.Module == nil || modFile.Module.Mod.Path == "" {
				return "", "", fmt.Errorf("could not find module name in %s", goModPath)
			}
			return dir, modFile.Module.Mod.Path, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", "", fmt.Errorf("failed to read go.mod: %w", err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", errors.New("go.mod not found")
		}
		dir = parent
	}
}

func trimModulePath(path, modulePath string) (string, bool) {
	if path == modulePath {
		return ".", true
	}
	if rel, ok := strings.CutPrefix(path, modulePath+"/"); ok {
		return rel, true
	}
	return "", false
}

func (l *Loader) loadFile(path string) (*Unit, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}

	files := append([]*ast.File{file}, l.siblings(fset, path, file.Name.Name)...)
	idx := indexPackage(files)

	unit := &Unit{
		Path:    path,
		Package: file.Name.Name,
		cases:   make(map[string]*Case),
	}

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					name := s.Name.Name
					if !idx.isCase(name, map[string]bool{}) {
						unit.members = append(unit.members, Member{Name: name, Kind: KindOther})
						continue
					}
					unit.members = append(unit.members, Member{Name: name, Kind: KindCase})
					unit.cases[name] = &Case{
						Name:    name,
						Entry:   idx.entries[name],
						methods: idx.methodSet(name, map[string]bool{}),
					}
				case *ast.ValueSpec:
					for _, n := range s.Names {
						if n.Name != "_" {
							unit.members = append(unit.members, Member{Name: n.Name, Kind: KindOther})
						}
					}
				}
			}
		case *ast.FuncDecl:
			// Methods belong to their case type
			if d.Recv != nil {
				continue
			}
			kind := KindFunction
			if d.Name.Name == "TestMain" || idx.entryFuncs[d.Name.Name] {
				kind = KindOther
			}
			unit.members = append(unit.members, Member{Name: d.Name.Name, Kind: kind})
		}
	}

	return unit, nil
}

// siblings parses the other Go files of the unit's package. Method sets in
// Go may be spread across files.
func (l *Loader) siblings(fset *token.FileSet, path, pkgName string) []*ast.File {
	dir := filepath.Dir(path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		l.logger.Debug().Err(err).Str("dir", dir).Msg("cannot list package directory")
		return nil
	}

	var files []*ast.File
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") || entry.Name() == filepath.Base(path) {
			continue
		}

		siblingPath := filepath.Join(dir, entry.Name())
		f, err := parser.ParseFile(fset, siblingPath, nil, parser.SkipObjectResolution)
		if err != nil {
			l.logger.Debug().Err(err).Str("file", siblingPath).Msg("skipping unparsable sibling")
			continue
		}
		if f.Name.Name == pkgName {
			files = append(files, f)
		}
	}

	return files
}
