//go:generate mockgen -source=checker.go -destination=mocks/mock_checker.go -package=mocks

package prime

import (
	"context"
	"errors"
	"math/big"

	"github.com/agbru/primecheck/internal/progress"
)

// ErrNilCandidate is returned by Checker.Check when no candidate is given.
var ErrNilCandidate = errors.New("prime: nil candidate")

// Checker is the public interface of a primality strategy. It carries the
// Check contract plus cancellation and progress reporting, so the
// orchestration layer can run several strategies side by side.
type Checker interface {
	// Check evaluates n. Progress updates tagged with index are sent on
	// progressChan when it is non-nil. The only possible error is the
	// context's error, returned when the scan is interrupted.
	Check(ctx context.Context, progressChan chan<- progress.ProgressUpdate, index int, n *big.Int) (Verdict, error)
	// Name returns a human-readable strategy description.
	Name() string
}

// coreChecker is implemented by the strategies themselves. The
// PrimeChecker wrapper adapts it to Checker.
type coreChecker interface {
	CheckCore(ctx context.Context, report progress.ProgressCallback, n *big.Int) (Verdict, error)
	Name() string
}

// PrimeChecker adapts a core strategy to the Checker interface.
type PrimeChecker struct {
	core coreChecker
}

// NewChecker wraps a core strategy.
func NewChecker(core coreChecker) Checker {
	if core == nil {
		panic("prime: NewChecker called with nil core strategy")
	}
	return &PrimeChecker{core: core}
}

// Name returns the strategy description.
func (c *PrimeChecker) Name() string {
	return c.core.Name()
}

// Check runs the wrapped strategy, throttling progress updates and sending
// a final 100% update on success.
func (c *PrimeChecker) Check(ctx context.Context, progressChan chan<- progress.ProgressUpdate, index int, n *big.Int) (Verdict, error) {
	if n == nil {
		return Verdict{}, ErrNilCandidate
	}
	report := progress.Throttled(progress.ChannelCallback(progressChan, index))
	v, err := c.core.CheckCore(ctx, report, n)
	if err != nil {
		return Verdict{}, err
	}
	report(1.0)
	return v, nil
}
