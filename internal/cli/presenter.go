package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	apperrors "github.com/agbru/primecheck/internal/errors"
	"github.com/agbru/primecheck/internal/format"
	"github.com/agbru/primecheck/internal/metrics"
	"github.com/agbru/primecheck/internal/orchestration"
	"github.com/agbru/primecheck/internal/progress"
	"github.com/agbru/primecheck/internal/ui"
)

// CLIProgressReporter shows a spinner and progress bar.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress implements orchestration.ProgressReporter.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCheckers int, out io.Writer) {
	DisplayProgress(wg, progressChan, numCheckers, out)
}

// CLIResultPresenter renders results for the terminal.
type CLIResultPresenter struct {
	// MemoryBefore, when set, is compared against a fresh snapshot in
	// details mode.
	MemoryBefore *metrics.MemorySnapshot
}

var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
)

// PresentComparisonTable prints one row per strategy. Padding is computed
// on the uncoloured text so ANSI sequences do not break alignment.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.CheckResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	nameW, durW := len("Strategy"), len("Duration")
	for _, res := range results {
		nameW = max(nameW, len([]rune(res.Name)))
		durW = max(durW, len([]rune(tableDuration(res.Duration))))
	}

	fmt.Fprintf(out, "%sStrategy%s%s   %sDuration%s%s   %sVerdict%s\n",
		ui.ColorUnderline(), ui.ColorReset(), pad(nameW-len("Strategy")),
		ui.ColorUnderline(), ui.ColorReset(), pad(durW-len("Duration")),
		ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		var status string
		switch {
		case res.Err != nil:
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		case res.Verdict.IsPrime():
			status = fmt.Sprintf("%s✅ %s%s", ui.ColorGreen(), res.Verdict, ui.ColorReset())
		default:
			status = fmt.Sprintf("%s✅ %s%s", ui.ColorYellow(), res.Verdict, ui.ColorReset())
		}
		d := tableDuration(res.Duration)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), pad(nameW-len([]rune(res.Name))),
			ui.ColorYellow(), d, ui.ColorReset(), pad(durW-len([]rune(d))),
			status)
	}
}

func tableDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

func pad(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%*s", n, "")
}

// PresentResult prints the retained verdict.
func (p CLIResultPresenter) PresentResult(result orchestration.CheckResult, opts orchestration.PresentationOptions, out io.Writer) {
	DisplayResult(out, opts.N, result, OutputConfig{
		Quiet:   opts.Quiet,
		Details: opts.Details,
		Explain: opts.Explain,
	})
	if opts.Details && !opts.Quiet {
		after := metrics.NewMemoryCollector().Snapshot()
		before := after
		if p.MemoryBefore != nil {
			before = *p.MemoryBefore
		}
		DisplayMemoryStats(metrics.Delta(before, after), after, out)
	}
}

// HandleError implements orchestration.ErrorHandler.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCheckError(err, duration, out, ui.ErrorColors{})
}

// DisplayMemoryStats prints allocation activity for --details.
func DisplayMemoryStats(d metrics.MemoryDelta, now metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Peak heap:       %s\n", format.FormatBytes(d.PeakHeap))
	fmt.Fprintf(out, "  Allocated:       %s\n", format.FormatBytes(d.Allocated))
	fmt.Fprintf(out, "  GC cycles:       %d\n", d.GCCycles)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(now.PauseTotalNs)/1e6)
}
