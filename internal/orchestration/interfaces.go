package orchestration

import (
	"io"
	"math/big"
	"sync"
	"time"

	"github.com/agbru/primecheck/internal/prime"
	"github.com/agbru/primecheck/internal/progress"
)

// CheckResult is the outcome of one strategy run.
type CheckResult struct {
	// Key is the registry name of the strategy ("trial", "rho", ...).
	Key string
	// Name is the strategy's human-readable description.
	Name string
	// Verdict is meaningful only when Err is nil.
	Verdict  prime.Verdict
	Duration time.Duration
	Err      error
}

// PresentationOptions configures how the final result is shown.
type PresentationOptions struct {
	N       *big.Int
	Quiet   bool
	Details bool
	Explain bool
}

// ProgressReporter displays progress while strategies run. DisplayProgress
// is started in its own goroutine, must call wg.Done when it returns, and
// must keep draining progressChan until it is closed.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCheckers int, out io.Writer)
}

// NullProgressReporter drains the channel silently. Used by --quiet and tests.
type NullProgressReporter struct{}

// DisplayProgress drains progressChan.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter renders results.
type ResultPresenter interface {
	// PresentComparisonTable lists every strategy's outcome.
	PresentComparisonTable(results []CheckResult, out io.Writer)
	// PresentResult shows the retained verdict.
	PresentResult(result CheckResult, opts PresentationOptions, out io.Writer)
}

// ErrorHandler reports a failed check and returns the exit code.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
