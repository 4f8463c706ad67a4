package cli

import (
	"fmt"
	"io"
	"math/big"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/primecheck/internal/format"
	"github.com/agbru/primecheck/internal/orchestration"
	"github.com/agbru/primecheck/internal/progress"
	"github.com/agbru/primecheck/internal/ui"
)

const (
	// ProgressRefreshRate is how often the spinner line is redrawn.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the bar width in runes.
	ProgressBarWidth = 30
	// TruncationLimit is the digit count above which candidates are
	// abbreviated in progress and table lines.
	TruncationLimit = 60
	// DisplayEdges is the number of digits kept on each side when
	// abbreviating.
	DisplayEdges = 20
)

// Spinner abstracts the terminal spinner so DisplayProgress can be tested.
type Spinner interface {
	Start()
	Stop()
	UpdateSuffix(suffix string)
}

type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start()                     { rs.s.Start() }
func (rs *realSpinner) Stop()                      { rs.s.Stop() }
func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

// newSpinner is replaced in tests.
var newSpinner = func(out io.Writer) Spinner {
	s := spinner.New(spinner.CharSets[14], ProgressRefreshRate, spinner.WithWriter(out))
	return &realSpinner{s}
}

// progressLine renders the spinner suffix.
func progressLine(avg float64, eta time.Duration, multi bool) string {
	label := "Scanning divisors"
	if multi {
		label = "Scanning divisors (average)"
	}
	return fmt.Sprintf(" %s%s%s %s", ui.ColorDim(), label, ui.ColorReset(),
		format.FormatProgressBarWithETA(avg, eta, ProgressBarWidth))
}

// DisplayProgress shows a spinner with an aggregated progress bar until
// progressChan is closed, then prints the final state. It implements
// orchestration.ProgressReporter through CLIProgressReporter.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCheckers int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numCheckers)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(out)
	s.UpdateSuffix(progressLine(0, 0, agg.IsMultiChecker()))
	s.Start()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				fmt.Fprintln(out, progressLine(agg.CalculateAverage(), 0, agg.IsMultiChecker()))
				return
			}
			agg.Update(update)
		case <-ticker.C:
			s.UpdateSuffix(progressLine(agg.CalculateAverage(), agg.GetETA(), agg.IsMultiChecker()))
		}
	}
}

// displayCandidate renders n with thousands separators, or abbreviated
// when it is too long to read.
func displayCandidate(n *big.Int) string {
	if format.Digits(n) > TruncationLimit {
		return FormatCandidate(n.String())
	}
	return format.FormatBigInt(n)
}

// FormatCandidate abbreviates very long candidates ("12345…67890 (85 digits)").
func FormatCandidate(s string) string {
	digits := len(s)
	if len(s) > 0 && s[0] == '-' {
		digits--
	}
	if digits <= TruncationLimit {
		return s
	}
	return fmt.Sprintf("%s…%s (%d digits)", s[:DisplayEdges], s[len(s)-DisplayEdges:], digits)
}
