// Package testutil builds on-disk Go source trees for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// MathSuiteSource declares a testify suite with methods out of order, a
// free test function and a helper.
const MathSuiteSource = `package pkg

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type MathSuite struct {
	suite.Suite
}

func (s *MathSuite) TestSub() {}

func (s *MathSuite) TestAdd() {}

func (s *MathSuite) helper() {}

func (s *MathSuite) SetupTest() {}

func TestMathSuite(t *testing.T) {
	suite.Run(t, new(MathSuite))
}

func TestExtra(t *testing.T) {}

func helper() {}
`

// WriteTree creates files under a fresh temporary directory and returns
// its path. Keys are slash separated paths relative to the root.
func WriteTree(t testing.TB, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		fullPath := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", name, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return root
}

// Chdir switches the working directory for the duration of the test
func Chdir(t testing.TB, dir string) {
	t.Helper()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})
}
