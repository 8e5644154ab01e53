package execution

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"testflo/internal/config"
	"testflo/internal/domain"
	"testflo/internal/parser"
	"testflo/internal/source"
)

// Locator finds the package and suite entry point of a test
type Locator interface {
	Load(path string) (string, *source.Unit, error)
	SuiteEntry(path, caseName string) (string, error)
}

// Runner runs one test through `go test -json`
type Runner struct {
	config  *config.Config
	locator Locator
	parser  parser.Parser
	logger  zerolog.Logger
	now     func() time.Time
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config, locator Locator, p parser.Parser, logger zerolog.Logger) *Runner {
	return &Runner{
		config:  cfg,
		locator: locator,
		parser:  p,
		logger:  logger,
		now:     time.Now,
	}
}

// Run executes the test named by id. Every problem, including ones that
// keep the test from starting, is reported as a failed result.
func (r *Runner) Run(ctx context.Context, id domain.Identifier) domain.TestResult {
	start := r.now()
	fail := func(format string, args ...any) domain.TestResult {
		return domain.NewTestResult(id, domain.StatusFail, fmt.Sprintf(format, args...), start, r.now())
	}

	unit, name, method := id.Parts()
	if name == "" {
		return fail("%s names a whole unit; run it through discovery to select its tests", id)
	}

	canonical, loaded, err := r.locator.Load(unit)
	if err != nil {
		return fail("%v", err)
	}
	dir := filepath.Dir(canonical)
	if loaded.IsPackage() {
		dir = canonical
	}

	testName, pattern := name, runPattern(name)
	if method != "" {
		entry, err := r.locator.SuiteEntry(canonical, name)
		if err != nil {
			return fail("%v", err)
		}
		testName = entry + "/" + method
		pattern = runPattern(entry) + "/" + runPattern(method)
	}

	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	args := r.buildArgs(pattern)
	r.logger.Debug().
		Str("test", id.String()).
		Str("dir", dir).
		Strs("args", args).
		Msg("running test")

	cmd := exec.CommandContext(ctx, r.config.GoBinary, args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()

	if ctxErr := ctx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
		return fail("timed out after %s\n%s", r.config.Timeout, strings.TrimSpace(string(output)))
	}
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return fail("failed to run %s: %v", r.config.GoBinary, err)
	}

	status, msg := r.parser.Parse(output, testName)
	return domain.NewTestResult(id, status, msg, start, r.now())
}

func (r *Runner) buildArgs(pattern string) []string {
	args := []string{"test", "-json", "-count", "1", "-run", pattern}
	args = append(args, r.config.GoArgs...)
	return append(args, ".")
}

func runPattern(name string) string {
	return "^" + name + "$"
}
