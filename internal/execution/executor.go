package execution

import (
	"context"
	"iter"

	"github.com/rs/zerolog"

	"testflo/internal/domain"
)

// Executor turns a stream of identifiers into a stream of results
type Executor interface {
	Stage(ctx context.Context, ids iter.Seq[domain.Identifier]) iter.Seq[domain.TestResult]
}

// TestRunner runs a single test
type TestRunner interface {
	Run(ctx context.Context, id domain.Identifier) domain.TestResult
}

// SequentialExecutor runs tests one at a time, in the order they arrive
type SequentialExecutor struct {
	runner        TestRunner
	stopOnFailure bool
	logger        zerolog.Logger
}

// ExecutorOption configures a SequentialExecutor
type ExecutorOption func(*SequentialExecutor)

// WithStopOnFailure stops pulling identifiers after the first failure
func WithStopOnFailure(stop bool) ExecutorOption {
	return func(e *SequentialExecutor) {
		e.stopOnFailure = stop
	}
}

// NewSequentialExecutor creates a new SequentialExecutor
func NewSequentialExecutor(runner TestRunner, logger zerolog.Logger, opts ...ExecutorOption) *SequentialExecutor {
	e := &SequentialExecutor{runner: runner, logger: logger}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Stage runs each identifier as it is pulled. Ending the stage early, by
// cancellation or by a failure with stop-on-failure set, still ends the
// output stream normally so downstream stages can report.
func (e *SequentialExecutor) Stage(ctx context.Context, ids iter.Seq[domain.Identifier]) iter.Seq[domain.TestResult] {
	return func(yield func(domain.TestResult) bool) {
		for id := range ids {
			if err := ctx.Err(); err != nil {
				e.logger.Warn().Err(err).Msg("test run cancelled")
				return
			}

			result := e.runner.Run(ctx, id)
			e.logger.Debug().
				Str("test", id.String()).
				Str("status", result.Status.String()).
				Dur("elapsed", result.Elapsed()).
				Msg("test finished")

			if !yield(result) {
				return
			}

			if e.stopOnFailure && result.Status == domain.StatusFail {
				e.logger.Debug().Str("test", id.String()).Msg("stopping after first failure")
				return
			}
		}
	}
}
