package orchestration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/primecheck/internal/errors"
	"github.com/agbru/primecheck/internal/logging"
	"github.com/agbru/primecheck/internal/metrics"
	"github.com/agbru/primecheck/internal/prime"
	"github.com/agbru/primecheck/internal/progress"
)

// TracerName is the instrumentation scope of the spans created here.
const TracerName = "github.com/agbru/primecheck/internal/orchestration"

// ProgressBufferMultiplier sizes the progress channel per strategy.
const ProgressBufferMultiplier = 5

// ErrMismatch reports strategies that disagreed or returned an invalid
// verdict.
var ErrMismatch = errors.New("strategies returned inconsistent verdicts")

type execConfig struct {
	tracer   trace.Tracer
	recorder *metrics.Recorder
	logger   logging.Logger
	limit    time.Duration
}

// ExecOption configures ExecuteChecks.
type ExecOption func(*execConfig)

// WithTracer sets the tracer. The default is the global provider's.
func WithTracer(t trace.Tracer) ExecOption {
	return func(c *execConfig) { c.tracer = t }
}

// WithRecorder records one Prometheus observation per result.
func WithRecorder(r *metrics.Recorder) ExecOption {
	return func(c *execConfig) { c.recorder = r }
}

// WithLogger logs each strategy's start and outcome at debug level.
func WithLogger(l logging.Logger) ExecOption {
	return func(c *execConfig) { c.logger = l }
}

// WithTimeoutLimit reports strategies stopped by the context deadline as
// apperrors.TimeoutError carrying limit.
func WithTimeoutLimit(limit time.Duration) ExecOption {
	return func(c *execConfig) { c.limit = limit }
}

// ExecuteChecks runs every selected strategy on n concurrently and returns
// their results in selection order. A failing strategy does not cancel the
// others; each result carries its own error.
func ExecuteChecks(ctx context.Context, selected []Selection, n *big.Int, reporter ProgressReporter, out io.Writer, opts ...ExecOption) []CheckResult {
	cfg := execConfig{logger: logging.Nop{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.tracer == nil {
		cfg.tracer = otel.Tracer(TracerName)
	}
	if reporter == nil {
		reporter = NullProgressReporter{}
	}
	if cfg.recorder != nil && n != nil {
		cfg.recorder.SetCandidateBits(n.BitLen())
	}

	g, ctx := errgroup.WithContext(ctx)
	results := make([]CheckResult, len(selected))
	progressChan := make(chan progress.ProgressUpdate, len(selected)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(selected), out)

	for i, sel := range selected {
		g.Go(func() error {
			results[i] = runOne(ctx, cfg, sel, i, n, progressChan)
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()
	return results
}

func runOne(ctx context.Context, cfg execConfig, sel Selection, index int, n *big.Int, progressChan chan<- progress.ProgressUpdate) CheckResult {
	name := sel.Checker.Name()
	ctx, span := cfg.tracer.Start(ctx, "prime.Check",
		trace.WithAttributes(
			attribute.String("strategy.key", sel.Key),
			attribute.String("strategy.name", name),
			attribute.Int("candidate.bits", n.BitLen()),
		))
	defer span.End()

	cfg.logger.Debug("strategy started", logging.String("strategy", sel.Key), logging.Int("index", index))
	start := time.Now()
	v, err := sel.Checker.Check(ctx, progressChan, index, n)
	res := CheckResult{Key: sel.Key, Name: name, Verdict: v, Duration: time.Since(start)}

	label := verdictLabel(v)
	if err != nil {
		res.Err = apperrors.CheckError{Strategy: sel.Key, Cause: err}
		if cfg.limit > 0 && errors.Is(err, context.DeadlineExceeded) {
			res.Err = apperrors.TimeoutError{Operation: sel.Key, Limit: cfg.limit, Cause: res.Err}
		}
		label = metrics.LabelError
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		cfg.logger.Error("strategy failed", err, logging.String("strategy", sel.Key), logging.Duration("duration", res.Duration))
	} else {
		span.SetAttributes(attribute.Bool("verdict.is_prime", v.IsPrime()))
		if d, ok := v.Witness(); ok {
			span.SetAttributes(attribute.String("verdict.witness", d.String()))
		}
		span.SetStatus(codes.Ok, "")
		cfg.logger.Debug("strategy finished",
			logging.String("strategy", sel.Key),
			logging.String("verdict", v.String()),
			logging.Duration("duration", res.Duration))
	}
	if cfg.recorder != nil {
		cfg.recorder.ObserveCheck(sel.Key, label, res.Duration)
	}
	return res
}

func verdictLabel(v prime.Verdict) string {
	switch {
	case v.IsPrime():
		return metrics.LabelPrime
	case v.HasWitness():
		return metrics.LabelComposite
	default:
		return metrics.LabelNotPrime
	}
}

// ValidateVerdict checks v against n: numbers below 2 are never prime and
// carry no witness, a witness d satisfies 1 < d < n and divides n, and a
// prime verdict carries no witness.
func ValidateVerdict(n *big.Int, v prime.Verdict) error {
	one := big.NewInt(1)
	if n.Cmp(one) <= 0 {
		if v.IsPrime() || v.HasWitness() {
			return fmt.Errorf("%s is below 2 but verdict is %q", n, v)
		}
		return nil
	}
	d, ok := v.Witness()
	switch {
	case v.IsPrime() && ok:
		return fmt.Errorf("prime verdict for %s carries witness %s", n, d)
	case !v.IsPrime() && !ok:
		return fmt.Errorf("composite verdict for %s has no witness", n)
	case ok && (d.Cmp(one) <= 0 || d.Cmp(n) >= 0):
		return fmt.Errorf("witness %s is not a proper divisor candidate of %s", d, n)
	case ok && new(big.Int).Rem(n, d).Sign() != 0:
		return fmt.Errorf("witness %s does not divide %s", d, n)
	}
	return nil
}

// FindMismatch returns an error wrapping ErrMismatch when a successful
// result is invalid for n or disagrees with another on primality. Failed
// results are ignored.
func FindMismatch(results []CheckResult, n *big.Int) error {
	var ref *CheckResult
	for i := range results {
		res := &results[i]
		if res.Err != nil {
			continue
		}
		if err := ValidateVerdict(n, res.Verdict); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMismatch, res.Key, err)
		}
		if ref == nil {
			ref = res
			continue
		}
		if res.Verdict.IsPrime() != ref.Verdict.IsPrime() {
			return fmt.Errorf("%w: %s says %q, %s says %q", ErrMismatch, ref.Key, ref.Verdict, res.Key, res.Verdict)
		}
	}
	return nil
}

// SortResults orders successes before failures, then by duration.
func SortResults(results []CheckResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})
}

// AnalyzeComparisonResults sorts results, prints the comparison table when
// more than one strategy ran, cross-validates the verdicts and presents
// the fastest successful one. It returns the process exit code.
func AnalyzeComparisonResults(results []CheckResult, opts PresentationOptions, presenter ResultPresenter, handler ErrorHandler, out io.Writer) int {
	SortResults(results)

	var firstValid *CheckResult
	var firstErr CheckResult
	for i := range results {
		if results[i].Err == nil {
			if firstValid == nil {
				firstValid = &results[i]
			}
		} else if firstErr.Err == nil {
			firstErr = results[i]
		}
	}

	multi := len(results) > 1
	if multi {
		presenter.PresentComparisonTable(results, out)
	}

	if firstValid == nil {
		if multi {
			fmt.Fprintf(out, "\nGlobal Status: Failure. No strategy could complete the check.\n")
		}
		return handler.HandleError(firstErr.Err, firstErr.Duration, out)
	}

	if err := FindMismatch(results, opts.N); err != nil {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %v\n", err)
		return apperrors.ExitErrorMismatch
	}

	if multi {
		fmt.Fprintf(out, "\nGlobal Status: Success. All verdicts are consistent.\n")
	}
	presenter.PresentResult(*firstValid, opts, out)
	return apperrors.ExitSuccess
}
