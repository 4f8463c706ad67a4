package orchestration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"math/big"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/goleak"

	apperrors "github.com/agbru/primecheck/internal/errors"
	"github.com/agbru/primecheck/internal/metrics"
	"github.com/agbru/primecheck/internal/prime"
	"github.com/agbru/primecheck/internal/prime/mocks"
	"github.com/agbru/primecheck/internal/progress"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// recordingPresenter captures what AnalyzeComparisonResults asked it to show.
type recordingPresenter struct {
	tableShown bool
	presented  *CheckResult
}

func (p *recordingPresenter) PresentComparisonTable(results []CheckResult, out io.Writer) {
	p.tableShown = true
}

func (p *recordingPresenter) PresentResult(result CheckResult, opts PresentationOptions, out io.Writer) {
	r := result
	p.presented = &r
}

type codeHandler struct{}

func (codeHandler) HandleError(err error, _ time.Duration, _ io.Writer) int {
	return apperrors.ExitCodeFor(err)
}

// forgedVerdict builds a verdict no correct strategy would return.
func forgedVerdict(t *testing.T, doc string) prime.Verdict {
	t.Helper()
	var v prime.Verdict
	if err := json.Unmarshal([]byte(doc), &v); err != nil {
		t.Fatal(err)
	}
	return v
}

func mockSelection(ctrl *gomock.Controller, key string, v prime.Verdict, err error, delay time.Duration) Selection {
	m := mocks.NewMockChecker(ctrl)
	m.EXPECT().Name().Return("Mock " + key).AnyTimes()
	m.EXPECT().Check(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, ch chan<- progress.ProgressUpdate, index int, n *big.Int) (prime.Verdict, error) {
			if delay > 0 {
				select {
				case <-time.After(delay):
				case <-ctx.Done():
					return prime.Verdict{}, ctx.Err()
				}
			}
			progress.ChannelCallback(ch, index)(1.0)
			return v, err
		})
	return Selection{Key: key, Checker: m}
}

func TestExecuteChecks(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	n := big.NewInt(899)
	want := prime.Check(n)
	boom := errors.New("boom")

	selected := []Selection{
		mockSelection(ctrl, "a", want, nil, 0),
		mockSelection(ctrl, "b", prime.Verdict{}, boom, 0),
		mockSelection(ctrl, "c", want, nil, time.Millisecond),
	}
	results := ExecuteChecks(context.Background(), selected, n, NullProgressReporter{}, io.Discard)

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	gotKeys := []string{results[0].Key, results[1].Key, results[2].Key}
	if diff := cmp.Diff([]string{"a", "b", "c"}, gotKeys); diff != "" {
		t.Errorf("results out of selection order (-want +got):\n%s", diff)
	}
	if !results[0].Verdict.Equal(want) || results[0].Err != nil {
		t.Errorf("result a = %+v", results[0])
	}
	var ce apperrors.CheckError
	if !errors.As(results[1].Err, &ce) || ce.Strategy != "b" || !errors.Is(results[1].Err, boom) {
		t.Errorf("result b error = %v, want CheckError wrapping boom", results[1].Err)
	}
	if results[2].Name != "Mock c" {
		t.Errorf("Name = %q", results[2].Name)
	}
}

func TestExecuteChecksRealStrategies(t *testing.T) {
	t.Parallel()
	n := big.NewInt(1000003)
	results := ExecuteChecks(context.Background(), GetCheckersToRun(AlgoAll, prime.NewDefaultFactory()), n, nil, io.Discard)
	if len(results) < 3 {
		t.Fatalf("expected at least trial, wheel and rho, got %d", len(results))
	}
	for _, r := range results {
		if r.Err != nil || !r.Verdict.IsPrime() {
			t.Errorf("%s: verdict %v, err %v", r.Key, r.Verdict, r.Err)
		}
	}
	if err := FindMismatch(results, n); err != nil {
		t.Errorf("unexpected mismatch: %v", err)
	}
}

// collectingReporter hands every update to the function.
type collectingReporter func(numCheckers int, u progress.ProgressUpdate)

func (c collectingReporter) DisplayProgress(wg *sync.WaitGroup, ch <-chan progress.ProgressUpdate, numCheckers int, _ io.Writer) {
	defer wg.Done()
	for u := range ch {
		c(numCheckers, u)
	}
}

func TestExecuteChecksProgressReporterSeesUpdates(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	n := big.NewInt(97)

	var mu sync.Mutex
	var seen []progress.ProgressUpdate
	reporter := collectingReporter(func(num int, u progress.ProgressUpdate) {
		if num != 2 {
			t.Errorf("numCheckers = %d, want 2", num)
		}
		mu.Lock()
		seen = append(seen, u)
		mu.Unlock()
	})

	selected := []Selection{
		mockSelection(ctrl, "x", prime.Check(n), nil, 0),
		mockSelection(ctrl, "y", prime.Check(n), nil, 0),
	}
	ExecuteChecks(context.Background(), selected, n, reporter, io.Discard)

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 2 {
		t.Fatalf("got %d updates, want 2", len(seen))
	}
	for _, u := range seen {
		if u.Value != 1.0 {
			t.Errorf("update %+v, want value 1.0", u)
		}
	}
}

func TestExecuteChecksCancellation(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	selected := []Selection{mockSelection(ctrl, "slow", prime.CheckInt64(7), nil, time.Minute)}
	results := ExecuteChecks(ctx, selected, big.NewInt(7), NullProgressReporter{}, io.Discard)
	if !errors.Is(results[0].Err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", results[0].Err)
	}
	if code := apperrors.ExitCodeFor(results[0].Err); code != apperrors.ExitErrorTimeout {
		t.Errorf("exit code = %d, want timeout", code)
	}
}

func TestExecuteChecksTimeoutLimit(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	selected := []Selection{
		mockSelection(ctrl, "slow", prime.CheckInt64(7), nil, time.Minute),
		mockSelection(ctrl, "fast", prime.CheckInt64(7), nil, 0),
	}
	results := ExecuteChecks(ctx, selected, big.NewInt(7), NullProgressReporter{}, io.Discard,
		WithTimeoutLimit(10*time.Millisecond))

	var timeout apperrors.TimeoutError
	if !errors.As(results[0].Err, &timeout) {
		t.Fatalf("err = %v, want TimeoutError", results[0].Err)
	}
	if timeout.Operation != "slow" || timeout.Limit != 10*time.Millisecond {
		t.Errorf("TimeoutError = %+v", timeout)
	}
	if !errors.Is(results[0].Err, context.DeadlineExceeded) {
		t.Error("TimeoutError should still match context.DeadlineExceeded")
	}
	if results[1].Err != nil {
		t.Errorf("fast strategy err = %v", results[1].Err)
	}
}

func TestExecuteChecksTracingAndMetrics(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	rec := metrics.NewRecorder()
	n := big.NewInt(100)
	selected := []Selection{
		mockSelection(ctrl, "ok", prime.Check(n), nil, 0),
		mockSelection(ctrl, "bad", prime.Verdict{}, errors.New("kaput"), 0),
	}
	ExecuteChecks(context.Background(), selected, n, NullProgressReporter{}, io.Discard,
		WithTracer(tp.Tracer(TracerName)), WithRecorder(rec))

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	statuses := map[string]codes.Code{}
	for _, s := range spans {
		if s.Name != "prime.Check" {
			t.Errorf("span name = %q", s.Name)
		}
		for _, a := range s.Attributes {
			if a.Key == "strategy.key" {
				statuses[a.Value.AsString()] = s.Status.Code
			}
		}
	}
	if statuses["ok"] != codes.Ok || statuses["bad"] != codes.Error {
		t.Errorf("span statuses = %v", statuses)
	}

	var buf bytes.Buffer
	if err := writeGathered(rec, &buf); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`primecheck_checks_total{strategy="ok",verdict="composite"} 1`,
		`primecheck_checks_total{strategy="bad",verdict="error"} 1`,
		`primecheck_candidate_bits 7`,
	} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestValidateVerdict(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		n       int64
		v       string
		wantErr bool
	}{
		{"genuine composite", 899, `{"is_prime":false,"witness_divisor":29,"checked_bound":29}`, false},
		{"genuine prime", 97, `{"is_prime":true,"witness_divisor":null,"checked_bound":9}`, false},
		{"below two", 1, `{"is_prime":false,"witness_divisor":null,"checked_bound":0}`, false},
		{"below two claimed prime", -7, `{"is_prime":true,"witness_divisor":null,"checked_bound":0}`, true},
		{"non-dividing witness", 899, `{"is_prime":false,"witness_divisor":7,"checked_bound":7}`, true},
		{"trivial witness", 899, `{"is_prime":false,"witness_divisor":899,"checked_bound":899}`, true},
		{"composite without witness", 100, `{"is_prime":false,"witness_divisor":null,"checked_bound":10}`, true},
		{"prime with witness", 97, `{"is_prime":true,"witness_divisor":2,"checked_bound":9}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateVerdict(big.NewInt(tt.n), forgedVerdict(t, tt.v))
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateVerdict error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFindMismatch(t *testing.T) {
	t.Parallel()
	n := big.NewInt(899)
	good := CheckResult{Key: "trial", Verdict: prime.Check(n)}
	// Pollard's rho may legitimately find 31 instead of 29.
	otherWitness := CheckResult{Key: "rho", Verdict: forgedVerdict(t, `{"is_prime":false,"witness_divisor":31,"checked_bound":31}`)}
	liar := CheckResult{Key: "liar", Verdict: forgedVerdict(t, `{"is_prime":true,"witness_divisor":null,"checked_bound":29}`)}
	failed := CheckResult{Key: "failed", Err: errors.New("x"), Verdict: forgedVerdict(t, `{"is_prime":true,"witness_divisor":null,"checked_bound":0}`)}

	if err := FindMismatch([]CheckResult{good, otherWitness, failed}, n); err != nil {
		t.Errorf("different valid witnesses should agree: %v", err)
	}
	if err := FindMismatch([]CheckResult{good, liar}, n); !errors.Is(err, ErrMismatch) {
		t.Errorf("expected ErrMismatch, got %v", err)
	}
}

func TestAnalyzeComparisonResults(t *testing.T) {
	t.Parallel()
	n := big.NewInt(899)
	v := prime.Check(n)

	t.Run("single success skips table", func(t *testing.T) {
		t.Parallel()
		p := &recordingPresenter{}
		code := AnalyzeComparisonResults([]CheckResult{{Key: "trial", Verdict: v}}, PresentationOptions{N: n}, p, codeHandler{}, io.Discard)
		if code != apperrors.ExitSuccess || p.tableShown || p.presented == nil {
			t.Errorf("code=%d table=%v presented=%v", code, p.tableShown, p.presented)
		}
	})

	t.Run("fastest success presented", func(t *testing.T) {
		t.Parallel()
		p := &recordingPresenter{}
		var out bytes.Buffer
		results := []CheckResult{
			{Key: "slow", Verdict: v, Duration: time.Second},
			{Key: "broken", Err: errors.New("x"), Duration: time.Nanosecond},
			{Key: "fast", Verdict: v, Duration: time.Millisecond},
		}
		code := AnalyzeComparisonResults(results, PresentationOptions{N: n}, p, codeHandler{}, &out)
		if code != apperrors.ExitSuccess {
			t.Fatalf("code = %d", code)
		}
		if !p.tableShown || p.presented.Key != "fast" {
			t.Errorf("table=%v presented=%+v", p.tableShown, p.presented)
		}
		if results[2].Key != "broken" {
			t.Errorf("failures should sort last, got %s", results[2].Key)
		}
		if !strings.Contains(out.String(), "All verdicts are consistent") {
			t.Errorf("output = %q", out.String())
		}
	})

	t.Run("mismatch", func(t *testing.T) {
		t.Parallel()
		p := &recordingPresenter{}
		results := []CheckResult{
			{Key: "trial", Verdict: v},
			{Key: "liar", Verdict: forgedVerdict(t, `{"is_prime":true,"witness_divisor":null,"checked_bound":29}`)},
		}
		code := AnalyzeComparisonResults(results, PresentationOptions{N: n}, p, codeHandler{}, io.Discard)
		if code != apperrors.ExitErrorMismatch || p.presented != nil {
			t.Errorf("code=%d presented=%v", code, p.presented)
		}
	})

	t.Run("all failed", func(t *testing.T) {
		t.Parallel()
		p := &recordingPresenter{}
		results := []CheckResult{{Key: "trial", Err: apperrors.CheckError{Strategy: "trial", Cause: context.Canceled}}}
		code := AnalyzeComparisonResults(results, PresentationOptions{N: n}, p, codeHandler{}, io.Discard)
		if code != apperrors.ExitErrorCanceled {
			t.Errorf("code = %d, want %d", code, apperrors.ExitErrorCanceled)
		}
	})
}

func TestGetCheckersToRun(t *testing.T) {
	t.Parallel()
	f := prime.NewDefaultFactory()

	all := GetCheckersToRun("ALL", f)
	if len(all) != len(f.List()) {
		t.Fatalf("all selected %d, want %d", len(all), len(f.List()))
	}
	keys := make([]string, len(all))
	for i, s := range all {
		keys[i] = s.Key
	}
	if diff := cmp.Diff(f.List(), keys); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}

	one := GetCheckersToRun(" wheel ", f)
	if len(one) != 1 || one[0].Key != "wheel" {
		t.Errorf("wheel selection = %+v", one)
	}
	if got := GetCheckersToRun("sieve", f); got != nil {
		t.Errorf("unknown algo should select nothing, got %+v", got)
	}
}

func TestProgressAggregator(t *testing.T) {
	t.Parallel()
	if NewProgressAggregator(0) != nil {
		t.Error("zero strategies should give a nil aggregator")
	}
	a := NewProgressAggregator(2)
	if !a.IsMultiChecker() || a.NumCheckers() != 2 {
		t.Error("expected a two-strategy aggregator")
	}
	got := a.Update(progress.ProgressUpdate{CheckerIndex: 1, Value: 0.5})
	if got.AverageProgress != 0.25 || got.CheckerIndex != 1 || got.Value != 0.5 {
		t.Errorf("update = %+v", got)
	}
	if a.CalculateAverage() != 0.25 {
		t.Errorf("average = %f", a.CalculateAverage())
	}
	if a.GetETA() < 0 {
		t.Error("ETA should not be negative")
	}
}

func TestDrainChannel(t *testing.T) {
	t.Parallel()
	ch := make(chan progress.ProgressUpdate, 3)
	for i := range 3 {
		ch <- progress.ProgressUpdate{CheckerIndex: i}
	}
	close(ch)
	DrainChannel(ch)
	if len(ch) != 0 {
		t.Error("channel should be empty")
	}
}
