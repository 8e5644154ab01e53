package discovery

import (
	"bytes"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testflo/internal/config"
	"testflo/internal/domain"
	"testflo/internal/source"
	"testflo/internal/testutil"
)

func newTestDiscoverer(cfg *config.Config, logger zerolog.Logger) *Discoverer {
	return NewDiscoverer(cfg, NewWalker(cfg.DirExclude, logger), source.NewLoader("", logger), logger)
}

func ids(values ...string) []domain.Identifier {
	out := make([]domain.Identifier, len(values))
	for i, v := range values {
		out[i] = domain.Identifier(v)
	}
	return out
}

func TestDiscoverer_Scenario(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"pkg/math_test.go": testutil.MathSuiteSource,
	})
	testutil.Chdir(t, root)

	d := newTestDiscoverer(config.New(), zerolog.Nop())

	got := slices.Collect(d.Discover([]string{"pkg/"}))
	assert.Equal(t, ids(
		"pkg/math_test.go:MathSuite.TestAdd",
		"pkg/math_test.go:MathSuite.TestSub",
		"pkg/math_test.go:TestExtra",
	), got)
}

func TestDiscoverer_NoDuplicates(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"pkg/math_test.go":  testutil.MathSuiteSource,
		"pkg/sub/b_test.go": "package sub\n\nimport \"testing\"\n\nfunc TestB(t *testing.T) {}\n",
	})
	testutil.Chdir(t, root)

	d := newTestDiscoverer(config.New(), zerolog.Nop())
	inputs := []string{
		"pkg/math_test.go:MathSuite.TestSub",
		"pkg",
		"pkg/sub",
		"pkg/math_test.go",
		"pkg/math_test.go:MathSuite",
		"pkg/math_test.go:TestExtra",
	}

	got := slices.Collect(d.Discover(inputs))
	assert.Equal(t, ids(
		"pkg/math_test.go:MathSuite.TestSub",
		"pkg/math_test.go:MathSuite.TestAdd",
		"pkg/math_test.go:TestExtra",
		"pkg/sub/b_test.go:TestB",
	), got)

	t.Run("order is stable across runs", func(t *testing.T) {
		again := slices.Collect(d.Discover(inputs))
		assert.Equal(t, got, again)
	})
}

func TestDiscoverer_PackageInit(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"app/doc.go": "// Package app is documented here.\npackage app\n",
		"app/main_test.go": `package app

import (
	"os"
	"testing"
)

func TestMain(m *testing.M) { os.Exit(m.Run()) }

func TestInsideApp(t *testing.T) {}
`,
		"app/nested/inner_test.go": "package nested\n\nimport \"testing\"\n\nfunc TestInner(t *testing.T) {}\n",
	})
	testutil.Chdir(t, root)

	d := newTestDiscoverer(config.New(), zerolog.Nop())
	want := ids("app/main_test.go:TestInsideApp", "app/nested/inner_test.go:TestInner")

	t.Run("directory", func(t *testing.T) {
		assert.Equal(t, want, slices.Collect(d.Discover([]string{"app"})))
	})

	t.Run("init file recurses into its directory", func(t *testing.T) {
		assert.Equal(t, want, slices.Collect(d.Discover([]string{"app/doc.go"})))
	})

	t.Run("configured init file is skipped by the walk", func(t *testing.T) {
		cfg := config.New()
		cfg.PackageInit = "main_test.go"
		custom := newTestDiscoverer(cfg, zerolog.Nop())
		assert.Equal(t, ids("app/nested/inner_test.go:TestInner"), slices.Collect(custom.Discover([]string{"app"})))
	})
}

func TestDiscoverer_MainPackageTests(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"cmd/tool/main.go":      "package main\n\nfunc main() {}\n",
		"cmd/tool/main_test.go": "package main\n\nimport \"testing\"\n\nfunc TestParseArgs(t *testing.T) {}\n",
	})
	testutil.Chdir(t, root)

	d := newTestDiscoverer(config.New(), zerolog.Nop())
	want := ids("cmd/tool/main_test.go:TestParseArgs")

	assert.Equal(t, want, slices.Collect(d.Discover([]string{"cmd/tool"})))
	assert.Equal(t, want, slices.Collect(d.Discover([]string{"cmd/tool/main_test.go"})))
}

func TestDiscoverer_ImportPath(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"go.mod":           "module example.com/calc\n\ngo 1.23\n",
		"pkg/math_test.go": testutil.MathSuiteSource,
	})
	testutil.Chdir(t, root)

	d := newTestDiscoverer(config.New(), zerolog.Nop())

	got := slices.Collect(d.Discover([]string{"example.com/calc/pkg/math_test.go:TestExtra"}))
	assert.Equal(t, ids("example.com/calc/pkg/math_test.go:TestExtra"), got)

	got = slices.Collect(d.Discover([]string{"example.com/calc/pkg"}))
	assert.Len(t, got, 3)
}

func TestDiscoverer_LoadErrorIsNotFatal(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"pkg/a_broken_test.go": "package pkg\n\nfunc TestX( {\n",
		"pkg/math_test.go":     testutil.MathSuiteSource,
	})
	testutil.Chdir(t, root)

	var logs bytes.Buffer
	d := newTestDiscoverer(config.New(), zerolog.New(&logs))

	got := slices.Collect(d.Discover([]string{"pkg", "missing_test.go:Suite"}))
	assert.Len(t, got, 3)
	assert.Contains(t, logs.String(), "failed to load unit")
	assert.Contains(t, logs.String(), "a_broken_test.go")
	assert.Contains(t, logs.String(), "missing_test.go")
}

func TestDiscoverer_Exclusions(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"src/a_test.go":                "package src\n\nimport \"testing\"\n\nfunc TestA(t *testing.T) {}\n",
		"src/vendor/v_test.go":         "package v\n\nimport \"testing\"\n\nfunc TestV(t *testing.T) {}\n",
		"src/testdata/fixture_test.go": "package fixture\n\nimport \"testing\"\n\nfunc TestF(t *testing.T) {}\n",
		"src/.hidden/h_test.go":        "package h\n\nimport \"testing\"\n\nfunc TestH(t *testing.T) {}\n",
		"src/gen/g_test.go":            "package gen\n\nimport \"testing\"\n\nfunc TestG(t *testing.T) {}\n",
		"src/helper.go":                "package src\n\nfunc TestNotInTestFile() {}\n",
	})
	testutil.Chdir(t, root)

	cfg := config.New()
	cfg.DirExclude = append(cfg.DirExclude, "gen")
	d := newTestDiscoverer(cfg, zerolog.Nop())

	got := slices.Collect(d.Discover([]string{"src"}))
	assert.Equal(t, ids("src/a_test.go:TestA"), got)
}

func TestDiscoverer_MethodPattern(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"pkg/math_test.go": testutil.MathSuiteSource,
	})
	testutil.Chdir(t, root)

	cfg := config.New()
	cfg.MethodPattern = "Test[AE]*"
	d := newTestDiscoverer(cfg, zerolog.Nop())

	got := slices.Collect(d.Discover([]string{"pkg"}))
	assert.Equal(t, ids(
		"pkg/math_test.go:MathSuite.TestAdd",
		"pkg/math_test.go:TestExtra",
	), got)
}

func TestDiscoverer_EarlyStop(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"pkg/math_test.go": testutil.MathSuiteSource,
	})
	testutil.Chdir(t, root)

	d := newTestDiscoverer(config.New(), zerolog.Nop())

	var got []domain.Identifier
	for id := range d.Discover([]string{"pkg"}) {
		got = append(got, id)
		if len(got) == 1 {
			break
		}
	}
	assert.Equal(t, ids("pkg/math_test.go:MathSuite.TestAdd"), got)
}

func TestDiscoverer_IndependentRuns(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"pkg/math_test.go": testutil.MathSuiteSource,
	})
	testutil.Chdir(t, root)

	d := newTestDiscoverer(config.New(), zerolog.Nop())

	// Interleave two runs; each keeps its own set
	next1, stop1 := pullIDs(d, []string{"pkg"})
	defer stop1()
	next2, stop2 := pullIDs(d, []string{"pkg"})
	defer stop2()

	for i := 0; i < 3; i++ {
		a, ok1 := next1()
		b, ok2 := next2()
		require.True(t, ok1)
		require.True(t, ok2)
		assert.Equal(t, a, b)
	}
	_, ok := next1()
	assert.False(t, ok)
}

func TestDryRun(t *testing.T) {
	var out bytes.Buffer
	in := slices.Values(ids("a_test.go:TestA", "b_test.go:S.TestB"))

	got := slices.Collect(DryRun(&out, in))
	assert.Equal(t, ids("a_test.go:TestA", "b_test.go:S.TestB"), got)
	assert.Equal(t, "a_test.go:TestA\nb_test.go:S.TestB\n", out.String())
}

func TestWalker_Walk(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"testdata/b_test.go":     "package b\n",
		"testdata/a_test.go":     "package a\n",
		"testdata/vendor/v.go":   "package v\n",
		"testdata/sub/c_test.go": "package c\n",
	})
	w := NewWalker([]string{"testdata", "vendor"}, zerolog.Nop())

	// The root is walked even though its name is excluded
	got := slices.Collect(w.Walk(filepath.Join(root, "testdata"), "*_test.go"))
	assert.Equal(t, []string{
		filepath.Join(root, "testdata", "a_test.go"),
		filepath.Join(root, "testdata", "b_test.go"),
		filepath.Join(root, "testdata", "sub", "c_test.go"),
	}, got)
}

func TestWalker_ConcurrentIteration(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"x/a_test.go": "package x\n",
		"x/b_test.go": "package x\n",
	})
	w := NewWalker(nil, zerolog.Nop())
	sep := string(filepath.Separator)
	seq := w.Walk(root+sep+"x"+sep+"."+sep, "*_test.go")

	var wg sync.WaitGroup
	results := make([][]string, 4)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = slices.Collect(seq)
		}()
	}
	wg.Wait()

	want := []string{filepath.Join(root, "x", "a_test.go"), filepath.Join(root, "x", "b_test.go")}
	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
