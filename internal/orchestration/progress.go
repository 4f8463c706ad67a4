package orchestration

import (
	"time"

	"github.com/agbru/primecheck/internal/format"
	"github.com/agbru/primecheck/internal/progress"
)

// ProgressAggregator folds per-strategy progress updates into an average
// and an ETA. The CLI spinner and the TUI both consume it.
type ProgressAggregator struct {
	state       *format.ProgressWithETA
	numCheckers int
}

// NewProgressAggregator returns nil when numCheckers <= 0.
func NewProgressAggregator(numCheckers int) *ProgressAggregator {
	if numCheckers <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:       format.NewProgressWithETA(numCheckers),
		numCheckers: numCheckers,
	}
}

// AggregatedProgress is the view after one update.
type AggregatedProgress struct {
	CheckerIndex    int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// Update applies one update.
func (a *ProgressAggregator) Update(update progress.ProgressUpdate) AggregatedProgress {
	avg, eta := a.state.UpdateWithETA(update.CheckerIndex, update.Value)
	return AggregatedProgress{
		CheckerIndex:    update.CheckerIndex,
		Value:           update.Value,
		AverageProgress: avg,
		ETA:             eta,
	}
}

// CalculateAverage returns the current average without updating.
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// GetETA returns the current estimate without updating.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// NumCheckers returns the number of strategies tracked.
func (a *ProgressAggregator) NumCheckers() int {
	return a.numCheckers
}

// IsMultiChecker reports whether more than one strategy is tracked.
func (a *ProgressAggregator) IsMultiChecker() bool {
	return a.numCheckers > 1
}

// DrainChannel discards every update until the channel closes.
func DrainChannel(progressChan <-chan progress.ProgressUpdate) {
	for range progressChan {
	}
}
