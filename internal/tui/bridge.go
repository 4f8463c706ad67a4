package tui

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/primecheck/internal/errors"
	"github.com/agbru/primecheck/internal/orchestration"
	"github.com/agbru/primecheck/internal/progress"
)

// programRef is a shared reference to the tea.Program. bubbletea copies
// the model on every Update, so the bridge goroutines need a pointer that
// survives the copies.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the program reference.
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send forwards msg to the program. It is a no-op before SetProgram.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter forwards aggregated progress as ProgressMsg.
type TUIProgressReporter struct {
	ref        *programRef
	generation uint64
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress drains progressChan until it is closed.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCheckers int, _ io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numCheckers)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}
	for update := range progressChan {
		ap := agg.Update(update)
		t.ref.Send(ProgressMsg{
			CheckerIndex:    ap.CheckerIndex,
			Value:           ap.Value,
			AverageProgress: ap.AverageProgress,
			ETA:             ap.ETA,
			Generation:      t.generation,
		})
	}
	t.ref.Send(ProgressDoneMsg{Generation: t.generation})
}

// TUIResultPresenter captures what AnalyzeComparisonResults presents so
// the model can render it on completion.
type TUIResultPresenter struct {
	table []orchestration.CheckResult
	final *orchestration.CheckResult
	err   error
}

var (
	_ orchestration.ResultPresenter = (*TUIResultPresenter)(nil)
	_ orchestration.ErrorHandler    = (*TUIResultPresenter)(nil)
)

// PresentComparisonTable records the comparison rows.
func (t *TUIResultPresenter) PresentComparisonTable(results []orchestration.CheckResult, _ io.Writer) {
	t.table = append([]orchestration.CheckResult(nil), results...)
}

// PresentResult records the retained result.
func (t *TUIResultPresenter) PresentResult(result orchestration.CheckResult, _ orchestration.PresentationOptions, _ io.Writer) {
	r := result
	t.final = &r
}

// HandleError records err and returns its exit code.
func (t *TUIResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	t.err = err
	return apperrors.HandleCheckError(err, duration, io.Discard, nil)
}
